package provisioning

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/migratory/gwsetup/internal/config"
	"github.com/migratory/gwsetup/internal/gcloud"
)

// serviceAccountKey creates the credential key file the migration product
// authenticates with. A policy-blocked failure routes into the recovery
// sub-flow; any other failure degrades with the manual command.
type serviceAccountKey struct{}

func (serviceAccountKey) Name() string { return "service-account-key" }

func (serviceAccountKey) Run(c *Context) StepResult {
	email := c.State.ServiceAccount.Email

	if err := requireService(c, "iam.googleapis.com"); err != nil {
		c.Out.Warn("iam.googleapis.com availability not confirmed: %v", err)
	}

	err := createKeyFile(c, email)
	if err == nil {
		c.Out.Success("key written to %s", c.State.KeyPath)
		return Success()
	}

	if c.Classify(err) == gcloud.FailurePolicyBlocked {
		c.Out.Fail("key creation is blocked by an organization policy: %v", err)
		return recoverKeyCreation(c, email)
	}

	c.Out.Fail("key creation failed: %v", err)
	c.Out.Info("create it manually once the cause is fixed:")
	c.Out.Command(createKeyCommand(email, c.State.Project.ID, keyFilePath(c)))
	return Degraded(err, "key not created; create it manually")
}

// keyFilePath returns the deterministic final key location.
func keyFilePath(c *Context) string {
	return filepath.Join(c.Request.OutputDir, c.Request.SanitizedDomain()+config.KeyFileSuffix)
}

// createKeyFile creates a key and persists it: temp file first, then an
// atomic rename to the deterministic name, then owner-only permissions.
// On success the path is recorded in State.
func createKeyFile(c *Context, email string) error {
	material, err := c.Cloud.CreateServiceAccountKey(c, email)
	if err != nil {
		return err
	}

	dir := c.Request.OutputDir
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".gwsetup-key-*.json")
	if err != nil {
		return fmt.Errorf("creating temp key file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(material); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("writing key material: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("closing temp key file: %w", err)
	}

	final := keyFilePath(c)
	if err := os.Rename(tmpName, final); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("moving key into place: %w", err)
	}
	if err := os.Chmod(final, 0o600); err != nil {
		return fmt.Errorf("restricting key permissions: %w", err)
	}

	c.State.KeyPath = final
	return nil
}
