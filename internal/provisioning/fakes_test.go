package provisioning

import (
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/migratory/gwsetup/internal/config"
	"github.com/migratory/gwsetup/internal/gcloud"
	"github.com/migratory/gwsetup/internal/ui"
)

// fakeCloud implements gcloud.ControlPlane with overridable behavior. A
// nil field means the call succeeds with a plausible default.
type fakeCloud struct {
	createProject    func(projectID, displayName, orgID string) error
	getProject       func(projectID string) (*gcloud.Project, error)
	getAncestry      func(projectID string) ([]gcloud.Ancestor, error)
	enableService    func(projectID, service string) error
	serviceEnabled   func(projectID, service string) (bool, error)
	createSA         func(projectID, accountID, displayName, description string) (*gcloud.ServiceAccount, error)
	getSA            func(email string) (*gcloud.ServiceAccount, error)
	createKey        func(email string) ([]byte, error)
	bindProjectRole  func(projectID, member, role string) error
	grantOrgRole     func(orgID, member, role string) error
	setKeyPolicy     func(orgID string, enforced bool) error
	clearKeyPolicy   func(orgID string) error
	linkBilling      func(projectID, billingID string) error
	createBrand      func(number, title, email string) error
	enableDelegation func(email string) (string, error)
	accessToken      func() (string, error)

	// call log, for asserting order and arguments
	calls []string
}

var _ gcloud.ControlPlane = (*fakeCloud)(nil)

func (f *fakeCloud) log(call string) { f.calls = append(f.calls, call) }

func (f *fakeCloud) CreateProject(_ context.Context, projectID, displayName, orgID string) error {
	f.log("CreateProject:" + projectID)
	if f.createProject != nil {
		return f.createProject(projectID, displayName, orgID)
	}
	return nil
}

func (f *fakeCloud) GetProject(_ context.Context, projectID string) (*gcloud.Project, error) {
	f.log("GetProject:" + projectID)
	if f.getProject != nil {
		return f.getProject(projectID)
	}
	return &gcloud.Project{ID: projectID, Number: 987654, LifecycleState: "ACTIVE"}, nil
}

func (f *fakeCloud) GetAncestry(_ context.Context, projectID string) ([]gcloud.Ancestor, error) {
	f.log("GetAncestry:" + projectID)
	if f.getAncestry != nil {
		return f.getAncestry(projectID)
	}
	return []gcloud.Ancestor{{Type: "project", ID: projectID}}, nil
}

func (f *fakeCloud) EnableService(_ context.Context, projectID, service string) error {
	f.log("EnableService:" + service)
	if f.enableService != nil {
		return f.enableService(projectID, service)
	}
	return nil
}

func (f *fakeCloud) ServiceEnabled(_ context.Context, projectID, service string) (bool, error) {
	f.log("ServiceEnabled:" + service)
	if f.serviceEnabled != nil {
		return f.serviceEnabled(projectID, service)
	}
	return true, nil
}

func (f *fakeCloud) CreateServiceAccount(_ context.Context, projectID, accountID, displayName, description string) (*gcloud.ServiceAccount, error) {
	f.log("CreateServiceAccount:" + accountID)
	if f.createSA != nil {
		return f.createSA(projectID, accountID, displayName, description)
	}
	return &gcloud.ServiceAccount{
		Email:    gcloud.ServiceAccountEmail(accountID, projectID),
		UniqueID: "111000111",
	}, nil
}

func (f *fakeCloud) GetServiceAccount(_ context.Context, email string) (*gcloud.ServiceAccount, error) {
	f.log("GetServiceAccount:" + email)
	if f.getSA != nil {
		return f.getSA(email)
	}
	return &gcloud.ServiceAccount{Email: email, UniqueID: "111000111"}, nil
}

func (f *fakeCloud) CreateServiceAccountKey(_ context.Context, email string) ([]byte, error) {
	f.log("CreateServiceAccountKey:" + email)
	if f.createKey != nil {
		return f.createKey(email)
	}
	return []byte(`{"type":"service_account"}`), nil
}

func (f *fakeCloud) BindProjectRole(_ context.Context, projectID, member, role string) error {
	f.log("BindProjectRole:" + role)
	if f.bindProjectRole != nil {
		return f.bindProjectRole(projectID, member, role)
	}
	return nil
}

func (f *fakeCloud) GrantOrgRole(_ context.Context, orgID, member, role string) error {
	f.log("GrantOrgRole:" + orgID + ":" + role)
	if f.grantOrgRole != nil {
		return f.grantOrgRole(orgID, member, role)
	}
	return nil
}

func (f *fakeCloud) SetKeyCreationPolicy(_ context.Context, orgID string, enforced bool) error {
	if enforced {
		f.log("SetKeyCreationPolicy:" + orgID + ":enforce")
	} else {
		f.log("SetKeyCreationPolicy:" + orgID + ":lift")
	}
	if f.setKeyPolicy != nil {
		return f.setKeyPolicy(orgID, enforced)
	}
	return nil
}

func (f *fakeCloud) ClearKeyCreationPolicy(_ context.Context, orgID string) error {
	f.log("ClearKeyCreationPolicy:" + orgID)
	if f.clearKeyPolicy != nil {
		return f.clearKeyPolicy(orgID)
	}
	return nil
}

func (f *fakeCloud) LinkBilling(_ context.Context, projectID, billingID string) error {
	f.log("LinkBilling:" + billingID)
	if f.linkBilling != nil {
		return f.linkBilling(projectID, billingID)
	}
	return nil
}

func (f *fakeCloud) CreateBrand(_ context.Context, number, title, email string) error {
	f.log("CreateBrand:" + number)
	if f.createBrand != nil {
		return f.createBrand(number, title, email)
	}
	return nil
}

func (f *fakeCloud) EnableDelegation(_ context.Context, email string) (string, error) {
	f.log("EnableDelegation:" + email)
	if f.enableDelegation != nil {
		return f.enableDelegation(email)
	}
	return "111000111", nil
}

func (f *fakeCloud) AccessToken(_ context.Context) (string, error) {
	f.log("AccessToken")
	if f.accessToken != nil {
		return f.accessToken()
	}
	return "ya29.test-token", nil
}

// callCount returns how many logged calls have the given prefix.
func (f *fakeCloud) callCount(prefix string) int {
	n := 0
	for _, c := range f.calls {
		if strings.HasPrefix(c, prefix) {
			n++
		}
	}
	return n
}

// fakePrompter scripts operator answers. Confirms are matched by title
// substring; unmatched prompts return their default. Inputs are consumed
// from a queue.
type fakePrompter struct {
	confirms map[string]bool
	inputs   []string
}

var _ ui.Prompter = (*fakePrompter)(nil)

func (p *fakePrompter) Confirm(_ context.Context, title, _ string, def bool) (bool, error) {
	for key, answer := range p.confirms {
		if strings.Contains(title, key) {
			return answer, nil
		}
	}
	return def, nil
}

func (p *fakePrompter) Input(_ context.Context, _, _, _ string) (string, error) {
	if len(p.inputs) == 0 {
		return "", nil
	}
	next := p.inputs[0]
	p.inputs = p.inputs[1:]
	return next, nil
}

// testContext builds a run context with near-zero durations, discarded
// output, and a temp output directory.
func testContext(t *testing.T, cloud gcloud.ControlPlane, prompt ui.Prompter) *Context {
	t.Helper()

	if prompt == nil {
		prompt = &fakePrompter{}
	}

	req := &config.Request{
		Domain:     "acme.com",
		AdminEmail: "admin@acme.com",
		OutputDir:  t.TempDir(),
	}
	req.ApplyDefaults()

	return &Context{
		Context:  context.Background(),
		Request:  req,
		State:    NewState(),
		Cloud:    cloud,
		Classify: gcloud.Classify,
		Prompt:   prompt,
		Out:      ui.NewPrinter(io.Discard),
		Observer: NewLogObserver(io.Discard),
		Timeouts: &config.Timeouts{
			RolePropagation:    time.Millisecond,
			ServicePropagation: time.Millisecond,
			KeyRetrySchedule:   []time.Duration{time.Millisecond, 2 * time.Millisecond},
		},
	}
}

// verifiedState seeds the state a mid-sequence step expects: an active
// project and a resolved service account.
func verifiedState(c *Context) {
	c.State.Project = gcloud.Project{ID: c.Request.ProjectID, Number: 987654, LifecycleState: "ACTIVE"}
	c.State.ServiceAccount = gcloud.ServiceAccount{
		Email:    gcloud.ServiceAccountEmail(config.ServiceAccountID, c.Request.ProjectID),
		UniqueID: "111000111",
	}
}
