package provisioning

import (
	"fmt"
	"strings"

	"github.com/migratory/gwsetup/internal/config"
	"github.com/migratory/gwsetup/internal/gcloud"
)

// Manual-fallback instruction blocks. Every degraded step prints the exact
// commands or console steps an operator can run instead; the run never
// fails silently.

func enableServiceCommand(service, projectID string) string {
	return fmt.Sprintf("gcloud services enable %s --project %s", service, projectID)
}

func createKeyCommand(email, projectID, path string) string {
	return fmt.Sprintf("gcloud iam service-accounts keys create %s --iam-account %s --project %s", path, email, projectID)
}

// TeardownCommand is the command an operator runs to remove everything a
// partial or unwanted run created. Printed in the summary; there is no
// automated rollback.
func TeardownCommand(projectID string) string {
	return fmt.Sprintf("gcloud projects delete %s", projectID)
}

func disablePolicyCommand(orgID string) string {
	return fmt.Sprintf("gcloud org-policies reset %s --organization=%s",
		strings.TrimPrefix(gcloud.KeyCreationConstraint, "constraints/"), orgID)
}

func disablePolicyLegacyCommand(orgID string) string {
	return fmt.Sprintf("gcloud resource-manager org-policies disable-enforce %s --organization=%s",
		gcloud.KeyCreationConstraint, orgID)
}

func restorePolicyCommand(orgID string) string {
	return fmt.Sprintf("gcloud resource-manager org-policies enable-enforce %s --organization=%s",
		gcloud.KeyCreationConstraint, orgID)
}

// delegationManualSteps describes enabling domain-wide delegation by hand
// when the API route did not confirm it.
func delegationManualSteps(email string) []string {
	return []string{
		fmt.Sprintf("Open https://console.cloud.google.com/iam-admin/serviceaccounts and select %s", email),
		"Under 'Advanced settings', note the OAuth 2 client ID",
		fmt.Sprintf("Open %s and add the client ID with the scopes from the reference file", config.AdminConsoleDelegationURL),
	}
}

// consentManualSteps describes configuring the OAuth consent screen by hand.
func consentManualSteps(projectID, supportEmail string) []string {
	return []string{
		fmt.Sprintf("Open https://console.cloud.google.com/apis/credentials/consent?project=%s", projectID),
		"Choose 'Internal' as the user type",
		fmt.Sprintf("Set the application name to %q and the support email to %s", config.ProjectDisplayName, supportEmail),
	}
}

// keyPolicyManualSteps describes lifting the key-creation block by hand.
func keyPolicyManualSteps(orgID, email, projectID, path string) []string {
	org := orgID
	if org == "" {
		org = "<ORGANIZATION_ID>"
	}
	return []string{
		fmt.Sprintf("Ask an Organization Policy Administrator to run: %s", disablePolicyCommand(org)),
		fmt.Sprintf("Or, with the legacy CLI: %s", disablePolicyLegacyCommand(org)),
		fmt.Sprintf("Wait a few minutes, then run: %s", createKeyCommand(email, projectID, path)),
		fmt.Sprintf("Finally, restore the policy: %s", restorePolicyCommand(org)),
	}
}
