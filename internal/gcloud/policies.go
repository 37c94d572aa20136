package gcloud

import (
	"context"
	"fmt"

	"google.golang.org/api/cloudresourcemanager/v1"
)

// KeyCreationConstraint is the organization policy constraint that blocks
// service account key creation org-wide.
const KeyCreationConstraint = "constraints/iam.disableServiceAccountKeyCreation"

// BindProjectRole adds member to role on the project via a read-modify-write
// of the project IAM policy. Adding a member that is already bound is a
// no-op on the provider side.
func (c *Client) BindProjectRole(ctx context.Context, projectID, member, role string) error {
	policy, err := c.crm.Projects.GetIamPolicy(projectID, &cloudresourcemanager.GetIamPolicyRequest{}).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("reading IAM policy for project %q: %w", projectID, err)
	}

	addBinding(policy, member, role)

	_, err = c.crm.Projects.SetIamPolicy(projectID, &cloudresourcemanager.SetIamPolicyRequest{Policy: policy}).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("binding %s to %s on project %q: %w", role, member, projectID, err)
	}
	return nil
}

// GrantOrgRole adds member to role at the organization scope.
func (c *Client) GrantOrgRole(ctx context.Context, organizationID, member, role string) error {
	resource := "organizations/" + organizationID

	policy, err := c.crm.Organizations.GetIamPolicy(resource, &cloudresourcemanager.GetIamPolicyRequest{}).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("reading IAM policy for %s: %w", resource, err)
	}

	addBinding(policy, member, role)

	_, err = c.crm.Organizations.SetIamPolicy(resource, &cloudresourcemanager.SetIamPolicyRequest{Policy: policy}).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("binding %s to %s on %s: %w", role, member, resource, err)
	}
	return nil
}

// SetKeyCreationPolicy sets the enforcement state of the key-creation
// constraint at the organization scope. enforced=false lifts the block;
// enforced=true restores it.
func (c *Client) SetKeyCreationPolicy(ctx context.Context, organizationID string, enforced bool) error {
	req := &cloudresourcemanager.SetOrgPolicyRequest{
		Policy: &cloudresourcemanager.OrgPolicy{
			Constraint:    KeyCreationConstraint,
			BooleanPolicy: &cloudresourcemanager.BooleanPolicy{Enforced: enforced},
		},
	}

	_, err := c.crm.Organizations.SetOrgPolicy("organizations/"+organizationID, req).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("setting %s (enforced=%t) on organization %s: %w", KeyCreationConstraint, enforced, organizationID, err)
	}
	return nil
}

// ClearKeyCreationPolicy removes the explicit key-creation policy at the
// organization scope, reverting to the constraint default. This is the
// legacy fallback when setting an explicit policy fails.
func (c *Client) ClearKeyCreationPolicy(ctx context.Context, organizationID string) error {
	req := &cloudresourcemanager.ClearOrgPolicyRequest{
		Constraint: KeyCreationConstraint,
	}

	_, err := c.crm.Organizations.ClearOrgPolicy("organizations/"+organizationID, req).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("clearing %s on organization %s: %w", KeyCreationConstraint, organizationID, err)
	}
	return nil
}

// addBinding appends member to the binding for role, creating the binding
// if absent. Duplicate members are left alone.
func addBinding(policy *cloudresourcemanager.Policy, member, role string) {
	for _, b := range policy.Bindings {
		if b.Role != role {
			continue
		}
		for _, m := range b.Members {
			if m == member {
				return
			}
		}
		b.Members = append(b.Members, member)
		return
	}
	policy.Bindings = append(policy.Bindings, &cloudresourcemanager.Binding{
		Role:    role,
		Members: []string{member},
	})
}
