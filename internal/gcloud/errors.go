package gcloud

import (
	"errors"
	"net/http"
	"strings"

	"google.golang.org/api/googleapi"
)

// FailureCategory is a coarse classification of a control-plane failure.
// The orchestrator branches on categories, never on provider error text.
type FailureCategory int

const (
	// FailureUnknown covers anything the classifier cannot place.
	FailureUnknown FailureCategory = iota
	// FailureQuotaExceeded: project or resource quota is exhausted.
	FailureQuotaExceeded
	// FailureAlreadyExists: the resource exists; usually benign.
	FailureAlreadyExists
	// FailureBillingRequired: the operation needs an active billing account.
	FailureBillingRequired
	// FailurePermissionDenied: the caller lacks a required permission.
	FailurePermissionDenied
	// FailureNotFound: the named resource or service does not exist.
	FailureNotFound
	// FailurePolicyBlocked: an organization policy constraint blocks the
	// operation (service account key creation, typically).
	FailurePolicyBlocked
	// FailureInvalidArgument: the request itself is malformed.
	FailureInvalidArgument
)

// String returns a short identifier for logs and summaries.
func (c FailureCategory) String() string {
	switch c {
	case FailureQuotaExceeded:
		return "quota-exceeded"
	case FailureAlreadyExists:
		return "already-exists"
	case FailureBillingRequired:
		return "billing-required"
	case FailurePermissionDenied:
		return "permission-denied"
	case FailureNotFound:
		return "not-found"
	case FailurePolicyBlocked:
		return "policy-blocked"
	case FailureInvalidArgument:
		return "invalid-argument"
	default:
		return "unknown"
	}
}

// Classifier maps a control-plane error to a FailureCategory. The default
// implementation inspects structured googleapi errors first and falls back
// to keyword matching on the error text; callers may swap it for tests.
type Classifier func(err error) FailureCategory

// Classify is the default Classifier.
func Classify(err error) FailureCategory {
	if err == nil {
		return FailureUnknown
	}

	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		if cat, ok := classifyAPIError(apiErr); ok {
			return cat
		}
	}

	return classifyText(err.Error())
}

// classifyAPIError classifies a structured googleapi error. The bool result
// is false when the status alone is ambiguous and text matching should run.
func classifyAPIError(apiErr *googleapi.Error) (FailureCategory, bool) {
	switch apiErr.Code {
	case http.StatusConflict:
		return FailureAlreadyExists, true
	case http.StatusNotFound:
		return FailureNotFound, true
	case http.StatusTooManyRequests:
		return FailureQuotaExceeded, true
	case http.StatusForbidden:
		// 403 covers quota, billing, org policy, and plain IAM denials.
		// Disambiguate via the message before settling on permission-denied.
		if cat := classifyText(apiErr.Message); cat != FailureUnknown && cat != FailurePermissionDenied {
			return cat, true
		}
		return FailurePermissionDenied, true
	case http.StatusBadRequest, http.StatusPreconditionFailed:
		// Key creation blocked by iam.disableServiceAccountKeyCreation
		// surfaces as FAILED_PRECONDITION with the constraint name in the
		// message.
		if cat := classifyText(apiErr.Message); cat == FailurePolicyBlocked {
			return cat, true
		}
		if apiErr.Code == http.StatusBadRequest {
			return FailureInvalidArgument, true
		}
	}
	return FailureUnknown, false
}

// classifyText is the brittle fallback: keyword matching on provider error
// text. Checked in order of specificity.
func classifyText(msg string) FailureCategory {
	m := strings.ToLower(msg)
	switch {
	case strings.Contains(m, "disableserviceaccountkeycreation"),
		strings.Contains(m, "constraints/iam"),
		strings.Contains(m, "organization policy"),
		strings.Contains(m, "org policy"):
		return FailurePolicyBlocked
	case strings.Contains(m, "billing account"),
		strings.Contains(m, "billing must be enabled"),
		strings.Contains(m, "billing is not enabled"),
		strings.Contains(m, "billing"):
		return FailureBillingRequired
	case strings.Contains(m, "quota"),
		strings.Contains(m, "limit exceeded"):
		return FailureQuotaExceeded
	case strings.Contains(m, "already exists"),
		strings.Contains(m, "alreadyexists"),
		strings.Contains(m, "duplicate"):
		return FailureAlreadyExists
	case strings.Contains(m, "permission"),
		strings.Contains(m, "forbidden"),
		strings.Contains(m, "access denied"):
		return FailurePermissionDenied
	case strings.Contains(m, "not found"),
		strings.Contains(m, "does not exist"),
		strings.Contains(m, "invalid service name"):
		return FailureNotFound
	case strings.Contains(m, "invalid"):
		return FailureInvalidArgument
	default:
		return FailureUnknown
	}
}

// IsAlreadyExists reports whether err classifies as an existing resource.
func IsAlreadyExists(err error) bool {
	return Classify(err) == FailureAlreadyExists
}

// IsPolicyBlocked reports whether err classifies as blocked by an
// organization policy.
func IsPolicyBlocked(err error) bool {
	return Classify(err) == FailurePolicyBlocked
}

// IsQuotaExceeded reports whether err classifies as a quota failure.
func IsQuotaExceeded(err error) bool {
	return Classify(err) == FailureQuotaExceeded
}
