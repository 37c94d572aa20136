package provisioning

import (
	"strconv"

	"github.com/migratory/gwsetup/internal/config"
	"github.com/migratory/gwsetup/internal/gcloud"
)

// consentBrand configures the OAuth consent screen ("brand"). The IAP API
// keys brands by project number; when the number cannot be resolved the
// project id is used with a warning. Failure here never stops the run.
type consentBrand struct{}

func (consentBrand) Name() string { return "oauth-consent" }

func (consentBrand) Run(c *Context) StepResult {
	parent := strconv.FormatInt(c.State.Project.Number, 10)
	if c.State.Project.Number == 0 {
		p, err := c.Cloud.GetProject(c, c.State.Project.ID)
		if err == nil && p.Number != 0 {
			c.State.Project.Number = p.Number
			parent = strconv.FormatInt(p.Number, 10)
		} else {
			c.Out.Warn("could not resolve the project number, falling back to the project id")
			parent = c.State.Project.ID
		}
	}

	// Brand creation needs IAP; verify the specific prerequisite instead
	// of trusting the aggregate enablement gate.
	if err := requireService(c, "iap.googleapis.com"); err != nil {
		c.Out.Fail("iap.googleapis.com is not available: %v", err)
		c.Out.Instructions("Configure the consent screen manually:", consentManualSteps(c.State.Project.ID, c.Request.AdminEmail))
		return Degraded(err, "consent screen needs manual configuration")
	}

	err := c.Cloud.CreateBrand(c, parent, config.ProjectDisplayName, c.Request.AdminEmail)
	switch {
	case err == nil:
		c.Out.Success("OAuth consent screen configured")
		return Success()

	case c.Classify(err) == gcloud.FailureAlreadyExists:
		c.Out.Info("OAuth consent screen already configured")
		return Fallbackf("consent screen already existed")

	default:
		c.Out.Fail("creating consent brand failed: %v", err)
		c.Out.Instructions("Configure the consent screen manually:", consentManualSteps(c.State.Project.ID, c.Request.AdminEmail))
		return Degraded(err, "consent screen needs manual configuration")
	}
}
