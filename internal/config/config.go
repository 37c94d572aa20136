package config

import (
	"fmt"
	"regexp"
	"strings"
)

// domainRegex validates a bare DNS domain (no scheme, no path).
var domainRegex = regexp.MustCompile(`^[a-z0-9][a-z0-9-]*(\.[a-z0-9][a-z0-9-]*)+$`)

// emailRegex is a loose sanity check, not full RFC validation.
var emailRegex = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// Request holds everything the operator supplies for one provisioning run.
// It is immutable once validated; steps read it but never write it.
type Request struct {
	// Domain is the Workspace domain being migrated (e.g. "acme.com").
	Domain string `yaml:"domain"`

	// AdminEmail is the Workspace super-admin identity. Roles granted
	// during recovery are bound to this user.
	AdminEmail string `yaml:"adminEmail"`

	// ProjectID is the project to create or adopt. Derived from Domain
	// when empty.
	ProjectID string `yaml:"projectId,omitempty"`

	// OrganizationID optionally parents the project and short-circuits
	// organization discovery during key recovery.
	OrganizationID string `yaml:"organizationId,omitempty"`

	// BillingAccountID optionally links billing after project creation.
	BillingAccountID string `yaml:"billingAccountId,omitempty"`

	// OutputDir receives the key file, the reference file, and the run log.
	OutputDir string `yaml:"outputDir,omitempty"`
}

// Validate checks the request. Domain and AdminEmail are mandatory;
// everything else has a default or is optional.
func (r *Request) Validate() error {
	if err := ValidateDomain(r.Domain); err != nil {
		return err
	}
	if err := ValidateEmail(r.AdminEmail); err != nil {
		return err
	}
	if r.OutputDir == "" {
		return fmt.Errorf("output directory must not be empty")
	}
	return nil
}

// ApplyDefaults fills derivable fields left empty by the operator.
func (r *Request) ApplyDefaults() {
	r.Domain = strings.ToLower(strings.TrimSpace(r.Domain))
	r.AdminEmail = strings.ToLower(strings.TrimSpace(r.AdminEmail))
	if r.ProjectID == "" && r.Domain != "" {
		r.ProjectID = DeriveProjectID(r.Domain)
	}
	if r.OutputDir == "" {
		r.OutputDir = "."
	}
}

// SanitizedDomain returns the domain with every non-alphanumeric rune
// replaced by an underscore, for use in deterministic file names.
func (r *Request) SanitizedDomain() string {
	return SanitizeDomain(r.Domain)
}

// ValidateDomain checks a bare DNS domain.
func ValidateDomain(domain string) error {
	if domain == "" {
		return fmt.Errorf("domain must not be empty")
	}
	if !domainRegex.MatchString(strings.ToLower(domain)) {
		return fmt.Errorf("%q is not a valid domain (expected something like acme.com)", domain)
	}
	return nil
}

// ValidateEmail checks an admin email address.
func ValidateEmail(email string) error {
	if email == "" {
		return fmt.Errorf("admin email must not be empty")
	}
	if !emailRegex.MatchString(email) {
		return fmt.Errorf("%q is not a valid email address", email)
	}
	return nil
}

// SanitizeDomain maps a domain to a filesystem-safe token.
func SanitizeDomain(domain string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(domain) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		} else {
			b.WriteRune('_')
		}
	}
	return b.String()
}

// DeriveProjectID builds a deterministic project id from the domain,
// respecting the provider's 6-30 char lowercase limit.
func DeriveProjectID(domain string) string {
	id := ProjectIDPrefix + strings.ReplaceAll(SanitizeDomain(domain), "_", "-")
	id = strings.Trim(id, "-")
	if len(id) > 30 {
		id = strings.Trim(id[:30], "-")
	}
	return id
}
