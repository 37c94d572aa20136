package wizard

import (
	"context"
	"fmt"

	"github.com/charmbracelet/huh"

	"github.com/migratory/gwsetup/internal/config"
)

// Run fills the empty fields of req by asking the operator. Already-set
// fields are kept as-is, so flags and a request file take precedence.
func Run(ctx context.Context, req *config.Request) error {
	if err := runIdentityGroup(ctx, req); err != nil {
		return fmt.Errorf("workspace identity: %w", err)
	}
	if err := runCloudGroup(ctx, req); err != nil {
		return fmt.Errorf("cloud settings: %w", err)
	}
	return nil
}

// runIdentityGroup prompts for the Workspace domain and admin email.
func runIdentityGroup(ctx context.Context, req *config.Request) error {
	var fields []huh.Field

	if req.Domain == "" {
		fields = append(fields, huh.NewInput().
			Title("Workspace Domain").
			Description("The Google Workspace domain being migrated").
			Placeholder("acme.com").
			Value(&req.Domain).
			Validate(config.ValidateDomain))
	}
	if req.AdminEmail == "" {
		fields = append(fields, huh.NewInput().
			Title("Admin Email").
			Description("A Workspace super-admin in that domain").
			Placeholder("admin@acme.com").
			Value(&req.AdminEmail).
			Validate(config.ValidateEmail))
	}

	if len(fields) == 0 {
		return nil
	}

	return huh.NewForm(
		huh.NewGroup(fields...).Title("Workspace Identity"),
	).RunWithContext(ctx)
}

// runCloudGroup prompts for the optional cloud-side settings.
func runCloudGroup(ctx context.Context, req *config.Request) error {
	var fields []huh.Field

	if req.OrganizationID == "" {
		fields = append(fields, huh.NewInput().
			Title("Organization ID (Optional)").
			Description("Numeric organization id to parent the project under. Leave empty for no organization.").
			Placeholder("123456789").
			Value(&req.OrganizationID))
	}
	if req.BillingAccountID == "" {
		fields = append(fields, huh.NewInput().
			Title("Billing Account (Optional)").
			Description("Billing account id to link, e.g. 012345-6789AB-CDEF01. Leave empty to skip.").
			Placeholder("012345-6789AB-CDEF01").
			Value(&req.BillingAccountID))
	}
	if req.OutputDir == "" {
		fields = append(fields, huh.NewInput().
			Title("Output Directory").
			Description("Where the key and reference files are written").
			Placeholder(".").
			Value(&req.OutputDir))
	}

	if len(fields) == 0 {
		return nil
	}

	return huh.NewForm(
		huh.NewGroup(fields...).Title("Cloud Settings"),
	).RunWithContext(ctx)
}
