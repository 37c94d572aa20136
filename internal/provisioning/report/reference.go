package report

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/migratory/gwsetup/internal/config"
	"github.com/migratory/gwsetup/internal/provisioning"
)

// WriteReference writes the plaintext reference file: the delegation
// client id, the combined OAuth scope list in admin-console format, and
// the manual follow-up steps. Returns the file path.
func WriteReference(c *provisioning.Context) (string, error) {
	path := filepath.Join(c.Request.OutputDir, c.Request.SanitizedDomain()+config.ReferenceFileSuffix)

	var b strings.Builder
	fmt.Fprintf(&b, "gwsetup reference for %s\n", c.Request.Domain)
	fmt.Fprintf(&b, "Project: %s\n", c.State.Project.ID)
	fmt.Fprintf(&b, "Service account: %s\n", c.State.ServiceAccount.Email)
	fmt.Fprintf(&b, "Delegation client ID: %s\n", c.State.DelegationClientID)
	b.WriteString("\n")

	b.WriteString("OAuth scopes (paste as one line in the admin console):\n")
	b.WriteString(strings.Join(config.DelegationScopes, ",") + "\n\n")

	b.WriteString("Manual steps:\n")
	for i, step := range manualSteps(c) {
		fmt.Fprintf(&b, "%d. %s\n", i+1, step)
	}

	if err := os.MkdirAll(c.Request.OutputDir, 0o755); err != nil {
		return "", fmt.Errorf("creating output directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return "", fmt.Errorf("writing reference file: %w", err)
	}
	return path, nil
}

// manualSteps builds the numbered follow-up list from the recorded run
// state: what is already automated is omitted.
func manualSteps(c *provisioning.Context) []string {
	var steps []string

	if !c.State.DelegationEnabled {
		steps = append(steps,
			fmt.Sprintf("Enable domain-wide delegation for %s in the cloud console (IAM > Service Accounts > Advanced settings)",
				c.State.ServiceAccount.Email))
	}
	steps = append(steps,
		fmt.Sprintf("Open %s and authorize client ID %s with the scope list above",
			config.AdminConsoleDelegationURL, c.State.DelegationClientID))

	if c.State.KeyPath == "" {
		steps = append(steps,
			fmt.Sprintf("Create a service account key for %s and store it securely", c.State.ServiceAccount.Email))
	} else {
		steps = append(steps,
			fmt.Sprintf("Upload the key file %s to the migration product when prompted", c.State.KeyPath))
	}

	steps = append(steps, chatAppSteps(c.State.Project.ID)...)
	return steps
}

// chatAppSteps is the chat-app configuration no API can automate.
func chatAppSteps(projectID string) []string {
	return []string{
		fmt.Sprintf("Open https://console.cloud.google.com/apis/api/chat.googleapis.com/hangouts-chat?project=%s", projectID),
		"Configure the Chat app name, avatar, and description",
		"Disable interactive features under 'Interactivity' and save",
	}
}
