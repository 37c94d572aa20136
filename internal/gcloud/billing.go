package gcloud

import (
	"context"
	"fmt"

	"google.golang.org/api/cloudbilling/v1"
)

// LinkBilling associates a billing account with the project. The
// orchestrator treats failures here as warnings only.
func (c *Client) LinkBilling(ctx context.Context, projectID, billingAccountID string) error {
	info := &cloudbilling.ProjectBillingInfo{
		BillingAccountName: "billingAccounts/" + billingAccountID,
	}

	_, err := c.billing.Projects.UpdateBillingInfo("projects/"+projectID, info).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("linking billing account %q to project %q: %w", billingAccountID, projectID, err)
	}
	return nil
}
