package report

import (
	"github.com/migratory/gwsetup/internal/provisioning"
)

// Emit writes the reference file and prints the run summary. It runs
// unconditionally at the end of every run, including fatally aborted ones,
// so the operator always leaves with the recorded state and the manual
// path forward.
func Emit(c *provisioning.Context) error {
	refPath, refErr := WriteReference(c)

	out := c.Out
	out.Blank()
	out.Title("Run summary")

	for _, r := range c.State.Records {
		switch r.Outcome {
		case provisioning.OutcomeSuccess:
			out.Success("%-22s %s", r.Step, detailOr(r.Detail, "automated"))
		case provisioning.OutcomeFallback:
			out.Warn("%-22s %s", r.Step, detailOr(r.Detail, "automated with fallback"))
		case provisioning.OutcomeDegraded:
			out.Fail("%-22s %s", r.Step, detailOr(r.Detail, "manual follow-up required"))
		case provisioning.OutcomeFatal:
			out.Fail("%-22s FATAL: %s", r.Step, r.Detail)
		}
	}

	out.Blank()
	out.Section("Resources")
	out.Info("project:            %s", c.State.Project.ID)
	out.Info("service account:    %s", c.State.ServiceAccount.Email)
	out.Info("delegation client:  %s", valueOr(c.State.DelegationClientID, "<unresolved>"))
	if c.State.KeyPath != "" {
		out.Info("key file:           %s", c.State.KeyPath)
	} else {
		out.Warn("key file:           not created")
	}
	if refErr == nil {
		out.Info("reference file:     %s", refPath)
	} else {
		out.Warn("reference file:     could not be written: %v", refErr)
	}

	if rec := c.State.Recovery; rec != nil {
		out.Blank()
		out.Section("Policy recovery")
		out.Info("organization:       %s", valueOr(rec.OrganizationID, "<unknown>"))
		out.Info("attempts:           %d (total wait %v)", rec.Attempts, rec.TotalWait)
		if rec.PolicyDisabled && !rec.PolicyRestored {
			out.Warn("the key-creation constraint is still unenforced")
		}
	}

	out.Blank()
	out.Section("Teardown")
	out.Info("to remove everything this run created:")
	out.Command(provisioning.TeardownCommand(c.State.Project.ID))
	out.Blank()

	return refErr
}

func detailOr(detail, fallback string) string {
	if detail != "" {
		return detail
	}
	return fallback
}

func valueOr(v, fallback string) string {
	if v != "" {
		return v
	}
	return fallback
}
