package gcloud

import (
	"context"
	"fmt"

	"google.golang.org/api/iap/v1"
)

// CreateBrand creates the OAuth consent brand for the project. The IAP API
// keys brands by project NUMBER, not id. An already-exists failure means
// the consent screen was configured before and is treated as success by
// the caller.
func (c *Client) CreateBrand(ctx context.Context, projectNumber, title, supportEmail string) error {
	brand := &iap.Brand{
		ApplicationTitle: title,
		SupportEmail:     supportEmail,
	}

	_, err := c.iap.Projects.Brands.Create("projects/"+projectNumber, brand).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("creating consent brand for project %s: %w", projectNumber, err)
	}
	return nil
}
