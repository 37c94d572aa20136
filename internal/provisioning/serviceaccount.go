package provisioning

import (
	"github.com/migratory/gwsetup/internal/config"
	"github.com/migratory/gwsetup/internal/gcloud"
)

// serviceAccount creates the migration service account. Creation is
// idempotent-by-catch: an already-exists failure resolves to the
// deterministic email instead of aborting. The editor role bind that
// follows is best effort.
type serviceAccount struct{}

func (serviceAccount) Name() string { return "service-account" }

func (serviceAccount) Run(c *Context) StepResult {
	projectID := c.State.Project.ID
	result := Success()

	sa, err := c.Cloud.CreateServiceAccount(c, projectID,
		config.ServiceAccountID,
		config.ServiceAccountDisplayName,
		config.ServiceAccountDescription)
	switch {
	case err == nil:
		c.State.ServiceAccount = *sa
		c.Out.Success("created service account %s", sa.Email)

	case c.Classify(err) == gcloud.FailureAlreadyExists:
		email := gcloud.ServiceAccountEmail(config.ServiceAccountID, projectID)
		c.State.ServiceAccount = gcloud.ServiceAccount{Email: email}
		c.Out.Info("service account already exists, using %s", email)
		result = Fallbackf("reused existing service account %s", email)

	default:
		// Record the deterministic email anyway; the delegation step
		// re-resolves it and turns an unusable account into a fatal there.
		email := gcloud.ServiceAccountEmail(config.ServiceAccountID, projectID)
		c.State.ServiceAccount = gcloud.ServiceAccount{Email: email}
		c.Out.Fail("creating service account failed: %v", err)
		return Degraded(err, "service account %s could not be created", email)
	}

	member := "serviceAccount:" + c.State.ServiceAccount.Email
	if err := c.Cloud.BindProjectRole(c, projectID, member, config.ProjectEditorRole); err != nil {
		c.Out.Warn("binding %s failed (continuing): %v", config.ProjectEditorRole, err)
	} else {
		c.Out.Success("bound %s to %s", config.ProjectEditorRole, c.State.ServiceAccount.Email)
	}

	return result
}
