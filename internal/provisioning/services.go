package provisioning

import (
	"fmt"

	"github.com/migratory/gwsetup/internal/config"
)

// enableServices enables the fixed migration service list, one service at a
// time so partial-failure accounting stays deterministic. Individual
// failures never stop the loop; only the all-failed systemic case raises
// an abort gate.
type enableServices struct{}

func (enableServices) Name() string { return "enable-services" }

func (enableServices) Run(c *Context) StepResult {
	projectID := c.State.Project.ID

	for _, service := range config.MigrationServices {
		err := c.Cloud.EnableService(c, projectID, service)
		e := Enablement{Service: service, Err: err}
		if err != nil {
			e.Category = c.Classify(err)
			c.Out.Fail("%s: %s (%v)", service, e.Category, err)
		} else {
			c.Out.Success("%s enabled", service)
		}
		c.State.Enablements = append(c.State.Enablements, e)
	}

	failed := c.State.FailedEnablements()
	switch {
	case len(failed) == 0:
		c.Out.Success("all %d services enabled", len(config.MigrationServices))
		return Success()

	case len(failed) < len(config.MigrationServices):
		c.Out.Warn("%d of %d services failed to enable; enable them manually:",
			len(failed), len(config.MigrationServices))
		for _, e := range failed {
			c.Out.Command(enableServiceCommand(e.Service, projectID))
		}
		return Degraded(failed[0].Err, "%d of %d services need manual enablement", len(failed), len(config.MigrationServices))

	default:
		// Every single enablement failing is a systemic signal: missing
		// billing, missing permissions, or an org policy.
		c.Out.Fail("all %d service enablements failed; this usually means missing billing, missing permissions, or an org policy", len(failed))
		for _, e := range failed {
			c.Out.Command(enableServiceCommand(e.Service, projectID))
		}

		cont, err := c.Prompt.Confirm(c,
			"Continue anyway?",
			"No service could be enabled. Later steps will likely fail too.",
			false)
		if err != nil || !cont {
			return Fatalf(fmt.Errorf("all %d service enablements failed", len(failed)), "aborted at operator request")
		}
		return Degraded(failed[0].Err, "all %d services need manual enablement", len(failed))
	}
}

// requireService checks that a specific prerequisite service is enabled,
// enabling it on the fly when it is not. Steps that depend on one concrete
// API call this instead of trusting the aggregate gate above, then pause
// for propagation when a fresh enable was needed.
func requireService(c *Context, service string) error {
	enabled, err := c.Cloud.ServiceEnabled(c, c.State.Project.ID, service)
	if err == nil && enabled {
		return nil
	}
	if err != nil {
		c.Out.Warn("could not check %s (%v); attempting to enable it", service, err)
	}

	if err := c.Cloud.EnableService(c, c.State.Project.ID, service); err != nil {
		return err
	}
	c.Out.Info("enabled %s, waiting %v for propagation", service, c.Timeouts.ServicePropagation)
	c.pause(c.Timeouts.ServicePropagation)
	return nil
}
