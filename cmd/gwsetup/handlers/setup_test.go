package handlers

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/migratory/gwsetup/internal/config"
	"github.com/migratory/gwsetup/internal/gcloud"
)

// saveAndRestoreFactories snapshots the injectable factory variables and
// restores them on cleanup so tests can replace them freely.
func saveAndRestoreFactories(t *testing.T) {
	t.Helper()

	origNewCloudClient := newCloudClient
	origLoadRequest := loadRequest
	origWriteRequest := writeRequest
	origRunWizard := runWizard
	origInteractive := interactive
	origStdout := stdout

	t.Cleanup(func() {
		newCloudClient = origNewCloudClient
		loadRequest = origLoadRequest
		writeRequest = origWriteRequest
		runWizard = origRunWizard
		interactive = origInteractive
		stdout = origStdout
	})
}

// happyCloud is a ControlPlane where every call succeeds.
type happyCloud struct {
	createProjectErr error
}

var _ gcloud.ControlPlane = (*happyCloud)(nil)

func (h *happyCloud) CreateProject(context.Context, string, string, string) error {
	return h.createProjectErr
}

func (h *happyCloud) GetProject(_ context.Context, id string) (*gcloud.Project, error) {
	return &gcloud.Project{ID: id, Number: 987654, LifecycleState: "ACTIVE"}, nil
}

func (h *happyCloud) GetAncestry(_ context.Context, id string) ([]gcloud.Ancestor, error) {
	return []gcloud.Ancestor{{Type: "project", ID: id}}, nil
}

func (h *happyCloud) EnableService(context.Context, string, string) error { return nil }

func (h *happyCloud) ServiceEnabled(context.Context, string, string) (bool, error) {
	return true, nil
}

func (h *happyCloud) CreateServiceAccount(_ context.Context, projectID, accountID, _, _ string) (*gcloud.ServiceAccount, error) {
	return &gcloud.ServiceAccount{
		Email:    gcloud.ServiceAccountEmail(accountID, projectID),
		UniqueID: "111000111",
	}, nil
}

func (h *happyCloud) GetServiceAccount(_ context.Context, email string) (*gcloud.ServiceAccount, error) {
	return &gcloud.ServiceAccount{Email: email, UniqueID: "111000111"}, nil
}

func (h *happyCloud) CreateServiceAccountKey(context.Context, string) ([]byte, error) {
	return []byte(`{"type":"service_account"}`), nil
}

func (h *happyCloud) BindProjectRole(context.Context, string, string, string) error { return nil }
func (h *happyCloud) GrantOrgRole(context.Context, string, string, string) error    { return nil }
func (h *happyCloud) SetKeyCreationPolicy(context.Context, string, bool) error      { return nil }
func (h *happyCloud) ClearKeyCreationPolicy(context.Context, string) error          { return nil }
func (h *happyCloud) LinkBilling(context.Context, string, string) error             { return nil }
func (h *happyCloud) CreateBrand(context.Context, string, string, string) error     { return nil }

func (h *happyCloud) EnableDelegation(context.Context, string) (string, error) {
	return "111000111", nil
}

func (h *happyCloud) AccessToken(context.Context) (string, error) { return "ya29.token", nil }

func writeRequestFile(t *testing.T, dir string) string {
	t.Helper()

	path := filepath.Join(dir, "gwsetup.yaml")
	req := &config.Request{
		Domain:     "acme.com",
		AdminEmail: "admin@acme.com",
		OutputDir:  dir,
	}
	require.NoError(t, config.WriteRequest(req, path))
	return path
}

func TestSetupEndToEnd(t *testing.T) {
	saveAndRestoreFactories(t)

	dir := t.TempDir()
	newCloudClient = func(context.Context) (gcloud.ControlPlane, error) { return &happyCloud{}, nil }
	interactive = func() bool { return false }
	stdout = io.Discard

	err := Setup(context.Background(), SetupOptions{ConfigPath: writeRequestFile(t, dir)})
	require.NoError(t, err)

	// The run leaves all three artifacts behind.
	assert.FileExists(t, filepath.Join(dir, "acme_com"+config.KeyFileSuffix))
	assert.FileExists(t, filepath.Join(dir, "acme_com"+config.ReferenceFileSuffix))
	assert.FileExists(t, filepath.Join(dir, config.RunLogName))

	info, err := os.Stat(filepath.Join(dir, "acme_com"+config.KeyFileSuffix))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestSetupFatalStillEmitsSummary(t *testing.T) {
	saveAndRestoreFactories(t)

	dir := t.TempDir()
	cloud := &happyCloud{createProjectErr: errors.New("googleapi: Error 403: project creation quota exceeded")}
	newCloudClient = func(context.Context) (gcloud.ControlPlane, error) { return cloud, nil }
	interactive = func() bool { return false }

	var out bytes.Buffer
	stdout = &out

	// Non-interactive, so the adopt prompt answers empty and the run aborts.
	err := Setup(context.Background(), SetupOptions{ConfigPath: writeRequestFile(t, dir)})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "create-project")

	assert.Contains(t, out.String(), "Run summary", "the summary must survive a fatal abort")
	assert.FileExists(t, filepath.Join(dir, "acme_com"+config.ReferenceFileSuffix))
	assert.NoFileExists(t, filepath.Join(dir, "acme_com"+config.KeyFileSuffix))
}

func TestSetupIncompleteRequestNonInteractive(t *testing.T) {
	saveAndRestoreFactories(t)

	interactive = func() bool { return false }
	newCloudClient = func(context.Context) (gcloud.ControlPlane, error) {
		t.Fatal("no client should be built for an invalid request")
		return nil, nil
	}
	stdout = io.Discard

	err := Setup(context.Background(), SetupOptions{
		OutputDir: t.TempDir(),
		Domain:    "acme.com",
		// AdminEmail missing, no terminal to ask on.
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "incomplete request")
}

func TestSetupFlagsOverrideRequestFile(t *testing.T) {
	saveAndRestoreFactories(t)

	dir := t.TempDir()
	path := writeRequestFile(t, dir)
	interactive = func() bool { return false }
	stdout = io.Discard

	req, err := resolveRequest(context.Background(), SetupOptions{
		ConfigPath: path,
		ProjectID:  "override-proj",
	})
	require.NoError(t, err)
	assert.Equal(t, "override-proj", req.ProjectID)
	assert.Equal(t, "acme.com", req.Domain, "file values survive where no flag is given")
}

func TestSetupWizardAnswersPersisted(t *testing.T) {
	saveAndRestoreFactories(t)

	dir := t.TempDir()
	interactive = func() bool { return true }
	stdout = io.Discard

	runWizard = func(_ context.Context, req *config.Request) error {
		req.Domain = "acme.com"
		req.AdminEmail = "admin@acme.com"
		req.OutputDir = dir
		return nil
	}

	var savedPath string
	writeRequest = func(_ *config.Request, path string) error {
		savedPath = path
		return nil
	}

	req, err := resolveRequest(context.Background(), SetupOptions{})
	require.NoError(t, err)
	assert.Equal(t, "acme.com", req.Domain)
	assert.Equal(t, config.DefaultRequestFile, savedPath)
}

func TestSetupYesSkipsWizard(t *testing.T) {
	saveAndRestoreFactories(t)

	interactive = func() bool { return true }
	stdout = io.Discard
	runWizard = func(context.Context, *config.Request) error {
		t.Fatal("wizard must not run with --yes")
		return nil
	}

	_, err := resolveRequest(context.Background(), SetupOptions{
		AssumeDefaults: true,
		Domain:         "acme.com",
		AdminEmail:     "admin@acme.com",
		OutputDir:      t.TempDir(),
	})
	require.NoError(t, err)
}

func TestSetupClientFailureSurfaces(t *testing.T) {
	saveAndRestoreFactories(t)

	interactive = func() bool { return false }
	stdout = io.Discard
	newCloudClient = func(context.Context) (gcloud.ControlPlane, error) {
		return nil, errors.New("loading default credentials")
	}

	err := Setup(context.Background(), SetupOptions{
		Domain:     "acme.com",
		AdminEmail: "admin@acme.com",
		OutputDir:  t.TempDir(),
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "default credentials")
}
