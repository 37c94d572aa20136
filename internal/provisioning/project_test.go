package provisioning

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/migratory/gwsetup/internal/gcloud"
)

func TestCreateProjectSuccess(t *testing.T) {
	t.Parallel()

	cloud := &fakeCloud{}
	c := testContext(t, cloud, nil)

	res := createProject{}.Run(c)

	assert.Equal(t, OutcomeSuccess, res.Outcome)
	assert.Equal(t, c.Request.ProjectID, c.State.Project.ID)
	assert.False(t, c.State.ProjectAdopted)
}

func TestCreateProjectQuotaExceededAdoptsExisting(t *testing.T) {
	t.Parallel()

	cloud := &fakeCloud{
		createProject: func(string, string, string) error {
			return errors.New("googleapi: Error 403: project creation quota exceeded")
		},
	}
	prompt := &fakePrompter{inputs: []string{"acme-proj-1"}}
	c := testContext(t, cloud, prompt)

	res := createProject{}.Run(c)

	assert.Equal(t, OutcomeFallback, res.Outcome)
	assert.Equal(t, "acme-proj-1", c.State.Project.ID)
	assert.True(t, c.State.ProjectAdopted)
	assert.Contains(t, res.Detail, "acme-proj-1")
}

func TestCreateProjectNoFallbackIsFatal(t *testing.T) {
	t.Parallel()

	cloud := &fakeCloud{
		createProject: func(string, string, string) error {
			return errors.New("googleapi: Error 403: project creation quota exceeded")
		},
	}
	c := testContext(t, cloud, &fakePrompter{}) // no input queued: operator aborts

	res := createProject{}.Run(c)

	assert.Equal(t, OutcomeFatal, res.Outcome)
	require.Error(t, res.Err)
}

func TestVerifyProjectActive(t *testing.T) {
	t.Parallel()

	cloud := &fakeCloud{}
	c := testContext(t, cloud, nil)
	c.State.Project.ID = c.Request.ProjectID

	res := verifyProject{}.Run(c)

	assert.Equal(t, OutcomeSuccess, res.Outcome)
	assert.Equal(t, int64(987654), c.State.Project.Number)
	assert.Equal(t, "ACTIVE", c.State.Project.LifecycleState)
}

func TestVerifyProjectUnreachableIsFatal(t *testing.T) {
	t.Parallel()

	cloud := &fakeCloud{
		getProject: func(string) (*gcloud.Project, error) {
			return nil, errors.New("googleapi: Error 404: project not found")
		},
	}
	c := testContext(t, cloud, nil)
	c.State.Project.ID = c.Request.ProjectID

	res := verifyProject{}.Run(c)

	assert.Equal(t, OutcomeFatal, res.Outcome)
}

func TestVerifyProjectNotActiveIsFatal(t *testing.T) {
	t.Parallel()

	cloud := &fakeCloud{
		getProject: func(id string) (*gcloud.Project, error) {
			return &gcloud.Project{ID: id, LifecycleState: "DELETE_REQUESTED"}, nil
		},
	}
	c := testContext(t, cloud, nil)
	c.State.Project.ID = c.Request.ProjectID

	res := verifyProject{}.Run(c)

	assert.Equal(t, OutcomeFatal, res.Outcome)
}

func TestVerifyProjectWithoutRecordedIDIsFatal(t *testing.T) {
	t.Parallel()

	c := testContext(t, &fakeCloud{}, nil)

	res := verifyProject{}.Run(c)

	assert.Equal(t, OutcomeFatal, res.Outcome)
}

func TestVerifyProjectTrustsDescribedID(t *testing.T) {
	t.Parallel()

	cloud := &fakeCloud{
		getProject: func(string) (*gcloud.Project, error) {
			return &gcloud.Project{ID: "acme-actual", Number: 42, LifecycleState: "ACTIVE"}, nil
		},
	}
	c := testContext(t, cloud, nil)
	c.State.Project.ID = "acme-requested"

	res := verifyProject{}.Run(c)

	assert.Equal(t, OutcomeSuccess, res.Outcome)
	assert.Equal(t, "acme-actual", c.State.Project.ID)
}
