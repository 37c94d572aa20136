package provisioning

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/migratory/gwsetup/internal/gcloud"
)

func TestConsentBrandCreated(t *testing.T) {
	t.Parallel()

	cloud := &fakeCloud{}
	c := testContext(t, cloud, nil)
	verifiedState(c)

	res := consentBrand{}.Run(c)

	assert.Equal(t, OutcomeSuccess, res.Outcome)
	// Brands are keyed by project number.
	assert.Equal(t, 1, cloud.callCount("CreateBrand:987654"))
}

func TestConsentBrandResolvesMissingProjectNumber(t *testing.T) {
	t.Parallel()

	cloud := &fakeCloud{
		getProject: func(id string) (*gcloud.Project, error) {
			return &gcloud.Project{ID: id, Number: 555666, LifecycleState: "ACTIVE"}, nil
		},
	}
	c := testContext(t, cloud, nil)
	verifiedState(c)
	c.State.Project.Number = 0

	res := consentBrand{}.Run(c)

	assert.Equal(t, OutcomeSuccess, res.Outcome)
	assert.Equal(t, int64(555666), c.State.Project.Number)
	assert.Equal(t, 1, cloud.callCount("CreateBrand:555666"))
}

func TestConsentBrandFallsBackToProjectID(t *testing.T) {
	t.Parallel()

	cloud := &fakeCloud{
		getProject: func(string) (*gcloud.Project, error) {
			return nil, errors.New("googleapi: Error 403: permission denied")
		},
	}
	c := testContext(t, cloud, nil)
	verifiedState(c)
	c.State.Project.Number = 0

	res := consentBrand{}.Run(c)

	assert.Equal(t, OutcomeSuccess, res.Outcome)
	assert.Equal(t, 1, cloud.callCount("CreateBrand:"+c.State.Project.ID))
}

func TestConsentBrandAlreadyExists(t *testing.T) {
	t.Parallel()

	cloud := &fakeCloud{
		createBrand: func(string, string, string) error {
			return errors.New("googleapi: Error 409: requested entity already exists")
		},
	}
	c := testContext(t, cloud, nil)
	verifiedState(c)

	res := consentBrand{}.Run(c)

	assert.Equal(t, OutcomeFallback, res.Outcome)
}

func TestConsentBrandFailureDegrades(t *testing.T) {
	t.Parallel()

	cloud := &fakeCloud{
		createBrand: func(string, string, string) error {
			return errors.New("googleapi: Error 400: support email is invalid")
		},
	}
	c := testContext(t, cloud, nil)
	verifiedState(c)

	res := consentBrand{}.Run(c)

	assert.Equal(t, OutcomeDegraded, res.Outcome)
}

func TestConsentBrandDegradesWhenIAPUnavailable(t *testing.T) {
	t.Parallel()

	cloud := &fakeCloud{
		serviceEnabled: func(string, string) (bool, error) { return false, nil },
		enableService: func(_, service string) error {
			return errors.New("googleapi: Error 403: forbidden")
		},
	}
	c := testContext(t, cloud, nil)
	verifiedState(c)

	res := consentBrand{}.Run(c)

	assert.Equal(t, OutcomeDegraded, res.Outcome)
	assert.Zero(t, cloud.callCount("CreateBrand"), "no brand call without the IAP API")
}
