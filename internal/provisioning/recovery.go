package provisioning

import (
	"fmt"

	"github.com/migratory/gwsetup/internal/config"
	"github.com/migratory/gwsetup/internal/gcloud"
	"github.com/migratory/gwsetup/internal/util/retry"
)

// recoverKeyCreation is the policy-blocked recovery sub-flow: grant the
// admin the org-policy role, lift the blocking constraint, retry key
// creation on a bounded schedule, then optionally restore the constraint.
// Nothing in here may abort the overall run; the worst case leaves the key
// outcome empty and returns control to the summary.
func recoverKeyCreation(c *Context, email string) StepResult {
	rec := &RecoveryState{}
	c.State.Recovery = rec

	// Manual path first, always.
	c.Out.Instructions("To resolve this manually:",
		keyPolicyManualSteps(c.Request.OrganizationID, email, c.State.Project.ID, keyFilePath(c)))

	attempt, err := c.Prompt.Confirm(c,
		"Attempt automatic resolution?",
		"gwsetup can grant the org-policy admin role to "+c.Request.AdminEmail+", lift the constraint, retry, and restore it afterwards.",
		false)
	if err != nil || !attempt {
		return Degraded(nil, "key blocked by org policy; resolve manually")
	}

	orgID, sr := resolveOrganizationID(c)
	if orgID == "" {
		return sr
	}
	rec.OrganizationID = orgID

	// Role grant is idempotent-tolerant: a failure usually means the grant
	// already exists or is propagating, so continue either way after the
	// propagation pause.
	member := "user:" + c.Request.AdminEmail
	if err := c.Cloud.GrantOrgRole(c, orgID, member, config.OrgPolicyAdminRole); err != nil {
		c.Out.Warn("granting %s failed (continuing): %v", config.OrgPolicyAdminRole, err)
	} else {
		rec.RoleGranted = true
		c.Out.Success("granted %s to %s", config.OrgPolicyAdminRole, c.Request.AdminEmail)
	}
	c.Out.Info("waiting %v for the role to propagate", c.Timeouts.RolePropagation)
	c.pause(c.Timeouts.RolePropagation)

	if !disableKeyPolicy(c, rec, orgID) {
		return Degraded(nil, "key blocked by org policy; could not lift the constraint")
	}

	schedule := retry.Schedule(c.Timeouts.KeyRetrySchedule)
	res, err := retry.WithSchedule(c, schedule, func() error {
		c.Observer.Event(Event{Type: EventRecoveryAttempt, Step: "service-account-key"})
		c.Out.Info("retrying key creation")
		return createKeyFile(c, email)
	})
	rec.Attempts = res.Attempts
	rec.TotalWait = res.Waited

	if err != nil {
		c.Out.Fail("key creation still failing after %d attempts over %v", res.Attempts, res.Waited)
		c.Out.Info("the policy change may still be propagating; retry later with:")
		c.Out.Command(createKeyCommand(email, c.State.Project.ID, keyFilePath(c)))
		restoreKeyPolicy(c, rec, orgID)
		return Degraded(err, "key not created after %d recovery attempts", res.Attempts)
	}

	rec.KeyCreated = true
	c.Out.Success("key created after %d attempt(s), written to %s", res.Attempts, c.State.KeyPath)

	restoreKeyPolicy(c, rec, orgID)
	return Fallbackf("key created via policy recovery (%d attempts)", res.Attempts)
}

// resolveOrganizationID finds the organization to operate on: the request,
// then the project's ancestry, then the operator. An empty id aborts only
// the sub-flow.
func resolveOrganizationID(c *Context) (string, StepResult) {
	if c.Request.OrganizationID != "" {
		return c.Request.OrganizationID, StepResult{}
	}

	ancestors, err := c.Cloud.GetAncestry(c, c.State.Project.ID)
	if err != nil {
		c.Out.Warn("ancestry lookup failed: %v", err)
	}
	for _, a := range ancestors {
		if a.Type == "organization" {
			c.Out.Info("organization %s detected from project ancestry", a.ID)
			return a.ID, StepResult{}
		}
	}

	orgID, perr := c.Prompt.Input(c,
		"Organization id",
		"The numeric organization id the blocking policy lives under",
		"123456789")
	if perr != nil || orgID == "" {
		return "", Degraded(fmt.Errorf("no organization id available"), "key blocked by org policy; organization unknown")
	}
	return orgID, StepResult{}
}

// disableKeyPolicy lifts the constraint: explicit not-enforced policy
// first, legacy clear second, operator confirmation as the optimistic
// last resort.
func disableKeyPolicy(c *Context, rec *RecoveryState, orgID string) bool {
	err := c.Cloud.SetKeyCreationPolicy(c, orgID, false)
	if err == nil {
		rec.PolicyDisabled = true
		c.Out.Success("key-creation constraint lifted on organization %s", orgID)
		return true
	}
	c.Out.Warn("lifting the constraint failed: %v", err)

	err = c.Cloud.ClearKeyCreationPolicy(c, orgID)
	if err == nil {
		rec.PolicyDisabled = true
		c.Out.Success("key-creation policy cleared on organization %s", orgID)
		return true
	}
	c.Out.Warn("clearing the policy failed too: %v", err)

	c.Out.Instructions("Disable the policy manually, then confirm:", []string{
		disablePolicyCommand(orgID),
		"or: " + disablePolicyLegacyCommand(orgID),
	})
	confirmed, err := c.Prompt.Confirm(c,
		"Is the policy disabled now?",
		"Confirm once you (or an org admin) have disabled enforcement.",
		false)
	if err != nil || !confirmed {
		return false
	}
	rec.PolicyDisabled = true
	return true
}

// restoreKeyPolicy optionally re-enforces the constraint. Best-effort
// security hygiene: declining or failing never changes the key outcome.
func restoreKeyPolicy(c *Context, rec *RecoveryState, orgID string) {
	if !rec.PolicyDisabled {
		return
	}

	restore, err := c.Prompt.Confirm(c,
		"Restore the key-creation constraint?",
		"Recommended: re-enforce "+gcloud.KeyCreationConstraint+" now that the key exists.",
		true)
	if err != nil || !restore {
		c.Out.Warn("leaving the constraint unenforced; restore it later with:")
		c.Out.Command(restorePolicyCommand(orgID))
		return
	}

	err = c.Cloud.SetKeyCreationPolicy(c, orgID, true)
	if err == nil {
		rec.PolicyRestored = true
		c.Out.Success("key-creation constraint re-enforced")
		return
	}
	c.Out.Warn("re-enforcing the constraint failed: %v", err)

	if err := c.Cloud.ClearKeyCreationPolicy(c, orgID); err == nil {
		rec.PolicyRestored = true
		c.Out.Warn("explicit policy cleared; the organization default applies again")
		return
	}

	c.Out.Warn("could not restore the constraint; do it manually:")
	c.Out.Command(restorePolicyCommand(orgID))
}
