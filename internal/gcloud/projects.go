package gcloud

import (
	"context"
	"fmt"

	"google.golang.org/api/cloudresourcemanager/v1"
)

// CreateProject creates a new project, optionally parented under an
// organization. The call returns once the creation operation is accepted;
// GetProject confirms reachability afterwards.
func (c *Client) CreateProject(ctx context.Context, projectID, displayName, organizationID string) error {
	project := &cloudresourcemanager.Project{
		ProjectId: projectID,
		Name:      displayName,
	}
	if organizationID != "" {
		project.Parent = &cloudresourcemanager.ResourceId{
			Type: "organization",
			Id:   organizationID,
		}
	}

	op, err := c.crm.Projects.Create(project).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("creating project %q: %w", projectID, err)
	}
	if err := c.waitCRMOperation(ctx, op.Name); err != nil {
		return fmt.Errorf("creating project %q: %w", projectID, err)
	}
	return nil
}

// GetProject describes a project, resolving its number and lifecycle state.
func (c *Client) GetProject(ctx context.Context, projectID string) (*Project, error) {
	p, err := c.crm.Projects.Get(projectID).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("describing project %q: %w", projectID, err)
	}
	return &Project{
		ID:             p.ProjectId,
		Number:         p.ProjectNumber,
		LifecycleState: p.LifecycleState,
	}, nil
}

// GetAncestry returns the project's resource hierarchy chain, ordered from
// the project itself up to the root.
func (c *Client) GetAncestry(ctx context.Context, projectID string) ([]Ancestor, error) {
	resp, err := c.crm.Projects.GetAncestry(projectID, &cloudresourcemanager.GetAncestryRequest{}).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("fetching ancestry for project %q: %w", projectID, err)
	}

	ancestors := make([]Ancestor, 0, len(resp.Ancestor))
	for _, a := range resp.Ancestor {
		if a.ResourceId == nil {
			continue
		}
		ancestors = append(ancestors, Ancestor{Type: a.ResourceId.Type, ID: a.ResourceId.Id})
	}
	return ancestors, nil
}

// waitCRMOperation polls a resource-manager operation until it finishes.
func (c *Client) waitCRMOperation(ctx context.Context, name string) error {
	for {
		op, err := c.crm.Operations.Get(name).Context(ctx).Do()
		if err != nil {
			return fmt.Errorf("polling operation %q: %w", name, err)
		}
		if op.Done {
			if op.Error != nil {
				return fmt.Errorf("operation %q failed: %s (code %d)", name, op.Error.Message, op.Error.Code)
			}
			return nil
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-operationPollTick():
		}
	}
}
