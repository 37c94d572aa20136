package provisioning

import (
	"fmt"
)

// delegation resolves the service account's unique id and enables
// domain-wide delegation on it. The unique id and a valid access
// credential are hard prerequisites for everything downstream (it IS the
// client id the Workspace admin authorizes), so missing either is fatal.
// The delegation flag itself failing to stick is only a degradation.
type delegation struct{}

func (delegation) Name() string { return "domain-wide-delegation" }

func (delegation) Run(c *Context) StepResult {
	email := c.State.ServiceAccount.Email
	if email == "" {
		return Fatalf(nil, "no service account recorded")
	}

	// Warn-only: if the IAM API really is unavailable the resolve below
	// fails with the true error.
	if err := requireService(c, "iam.googleapis.com"); err != nil {
		c.Out.Warn("iam.googleapis.com availability not confirmed: %v", err)
	}

	// Re-resolve rather than trusting the create step's response: the
	// account may have pre-existed with fields we never saw.
	sa, err := c.Cloud.GetServiceAccount(c, email)
	if err != nil {
		return Fatalf(err, "service account %s is not usable", email)
	}
	if sa.UniqueID == "" {
		return Fatalf(fmt.Errorf("provider returned no unique id for %s", email), "delegation identifier unavailable")
	}
	c.State.ServiceAccount = *sa
	c.State.DelegationClientID = sa.UniqueID

	token, err := c.Cloud.AccessToken(c)
	if err != nil || token == "" {
		return Fatalf(err, "no valid access credential for the delegation call")
	}

	clientID, err := c.Cloud.EnableDelegation(c, email)
	if err != nil || clientID == "" {
		if err != nil {
			c.Out.Fail("enabling delegation failed: %v", err)
		} else {
			c.Out.Warn("provider accepted the update but did not confirm the delegation flag")
		}
		c.Out.Instructions("Enable domain-wide delegation manually:", delegationManualSteps(email))
		return Degraded(err, "delegation not confirmed; enable it manually (client id %s)", sa.UniqueID)
	}

	c.State.DelegationClientID = clientID
	c.State.DelegationEnabled = true
	c.Out.Success("domain-wide delegation enabled (client id %s)", clientID)
	return Success()
}
