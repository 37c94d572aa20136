package provisioning

import (
	"fmt"

	"github.com/migratory/gwsetup/internal/config"
	"github.com/migratory/gwsetup/internal/gcloud"
)

// createProject creates the migration project, or adopts an existing one
// the operator names when creation fails.
type createProject struct{}

func (createProject) Name() string { return "create-project" }

func (createProject) Run(c *Context) StepResult {
	projectID := c.Request.ProjectID

	err := c.Cloud.CreateProject(c, projectID, config.ProjectDisplayName, c.Request.OrganizationID)
	if err == nil {
		c.State.Project.ID = projectID
		c.Out.Success("created project %s", projectID)
		return Success()
	}

	switch c.Classify(err) {
	case gcloud.FailureQuotaExceeded:
		c.Out.Fail("project quota exceeded: %v", err)
		c.Out.Info("you can free quota by deleting unused projects, or adopt an existing one")
	case gcloud.FailureAlreadyExists:
		c.Out.Fail("project id %s is taken: %v", projectID, err)
	default:
		c.Out.Fail("creating project failed: %v", err)
	}

	adopted, perr := c.Prompt.Input(c,
		"Existing project id",
		"Supply an existing project to use instead, or leave empty to abort the run",
		projectID)
	if perr != nil || adopted == "" {
		return Fatalf(err, "no project available")
	}

	c.State.Project.ID = adopted
	c.State.ProjectAdopted = true
	c.Out.Warn("adopting existing project %s", adopted)
	return Fallbackf("adopted existing project %s", adopted)
}

// verifyProject confirms the recorded project is reachable and active.
// Everything downstream requires this, so failure is fatal.
type verifyProject struct{}

func (verifyProject) Name() string { return "verify-project" }

func (verifyProject) Run(c *Context) StepResult {
	projectID := c.State.Project.ID
	if projectID == "" {
		return Fatalf(nil, "no project recorded by create-project")
	}

	p, err := c.Cloud.GetProject(c, projectID)
	if err != nil {
		return Fatalf(err, "project %s is not reachable", projectID)
	}

	// Defensive re-assert: trust the described id over the recorded one.
	if p.ID == "" {
		p.ID = projectID
	} else if p.ID != projectID {
		c.Out.Warn("active project reported as %s, expected %s; using %s", p.ID, projectID, p.ID)
	}
	if p.LifecycleState != "" && p.LifecycleState != "ACTIVE" {
		return Fatalf(fmt.Errorf("lifecycle state is %s", p.LifecycleState), "project %s is not active", projectID)
	}

	c.State.Project = *p
	c.Out.Success("project %s verified (number %d)", p.ID, p.Number)
	return Success()
}
