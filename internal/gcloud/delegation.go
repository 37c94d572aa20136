package gcloud

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// iamRESTEndpoint is the IAM REST surface used for the raw delegation call.
const iamRESTEndpoint = "https://iam.googleapis.com"

// delegationResource is the subset of the service account resource sent and
// read back during the delegation replace.
type delegationResource struct {
	Email          string `json:"email,omitempty"`
	DisplayName    string `json:"displayName,omitempty"`
	Description    string `json:"description,omitempty"`
	OAuth2ClientID string `json:"oauth2ClientId,omitempty"`
}

// EnableDelegation enables domain-wide delegation on the service account by
// replacing the full resource with a PUT. The partial-update path for this
// field is deprecated upstream and silently drops it, so the full replace
// is the only reliable route. The returned client id is the identifier a
// Workspace admin authorizes in the admin console; an empty value means the
// provider did not confirm the change and the caller must fall back to
// manual instructions.
func (c *Client) EnableDelegation(ctx context.Context, email string) (string, error) {
	current, err := c.GetServiceAccount(ctx, email)
	if err != nil {
		return "", err
	}

	body, err := json.Marshal(delegationResource{
		Email:       current.Email,
		DisplayName: current.DisplayName,
	})
	if err != nil {
		return "", fmt.Errorf("encoding delegation request: %w", err)
	}

	url := fmt.Sprintf("%s/v1/projects/-/serviceAccounts/%s", c.iamEndpoint, email)
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("building delegation request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("replacing service account %q: %w", email, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("reading delegation response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("replacing service account %q: HTTP %d: %s", email, resp.StatusCode, respBody)
	}

	var updated delegationResource
	if err := json.Unmarshal(respBody, &updated); err != nil {
		return "", fmt.Errorf("decoding delegation response: %w", err)
	}

	// A 2xx without the client id means the flag did not stick.
	return updated.OAuth2ClientID, nil
}
