package gcloud

import (
	"context"
	"encoding/base64"
	"fmt"

	"google.golang.org/api/iam/v1"
)

// CreateServiceAccount creates a service account in the project. An
// already-exists failure is surfaced as-is; the orchestrator treats it as
// benign and proceeds with the deterministic email.
func (c *Client) CreateServiceAccount(ctx context.Context, projectID, accountID, displayName, description string) (*ServiceAccount, error) {
	req := &iam.CreateServiceAccountRequest{
		AccountId: accountID,
		ServiceAccount: &iam.ServiceAccount{
			DisplayName: displayName,
			Description: description,
		},
	}

	sa, err := c.iam.Projects.ServiceAccounts.Create("projects/"+projectID, req).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("creating service account %q: %w", accountID, err)
	}
	return &ServiceAccount{
		Email:       sa.Email,
		UniqueID:    sa.UniqueId,
		DisplayName: sa.DisplayName,
	}, nil
}

// GetServiceAccount resolves a service account by email, including its
// unique id.
func (c *Client) GetServiceAccount(ctx context.Context, email string) (*ServiceAccount, error) {
	sa, err := c.iam.Projects.ServiceAccounts.Get("projects/-/serviceAccounts/" + email).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("describing service account %q: %w", email, err)
	}
	return &ServiceAccount{
		Email:       sa.Email,
		UniqueID:    sa.UniqueId,
		DisplayName: sa.DisplayName,
	}, nil
}

// CreateServiceAccountKey creates a new key for the service account and
// returns the decoded JSON key material. Key creation is the one operation
// an organization policy commonly blocks; callers classify the error.
func (c *Client) CreateServiceAccountKey(ctx context.Context, email string) ([]byte, error) {
	name := "projects/-/serviceAccounts/" + email

	key, err := c.iam.Projects.ServiceAccounts.Keys.Create(name, &iam.CreateServiceAccountKeyRequest{}).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("creating key for %q: %w", email, err)
	}

	material, err := base64.StdEncoding.DecodeString(key.PrivateKeyData)
	if err != nil {
		return nil, fmt.Errorf("decoding key material for %q: %w", email, err)
	}
	return material, nil
}

// ServiceAccountEmail derives the deterministic email a service account
// gets within a project. Used when creation reports already-exists.
func ServiceAccountEmail(accountID, projectID string) string {
	return fmt.Sprintf("%s@%s.iam.gserviceaccount.com", accountID, projectID)
}
