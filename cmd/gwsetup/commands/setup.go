package commands

import (
	"github.com/spf13/cobra"

	"github.com/migratory/gwsetup/cmd/gwsetup/handlers"
)

// Setup returns the command for provisioning the migration project.
//
// This command runs the full provisioning sequence: project creation, API
// enablement, service account with domain-wide delegation, OAuth consent
// screen, and the credential key file. Missing inputs are collected
// interactively; every automation gap ends up in the reference file.
//
// Optional flags:
//
//	--config, -c: Path to a request YAML file (default: auto-detect gwsetup.yaml)
//	--yes, -y:    Never prompt; take the conservative default everywhere
//	--output, -o: Directory for the key, reference, and log files
func Setup() *cobra.Command {
	var opts handlers.SetupOptions

	cmd := &cobra.Command{
		Use:   "setup",
		Short: "Provision the migration project, service account, and key",
		Long: `Provision everything the migration needs on the Google Cloud side.

The command creates (or adopts) a dedicated project, enables the required
APIs, creates a service account with domain-wide delegation, configures
the OAuth consent screen, and writes the service account key file.

Inputs missing from flags and the request file are collected
interactively. Steps that cannot be automated print the exact manual
commands and are listed again in the reference file at the end.

Examples:
  # Interactive run, answers persisted to gwsetup.yaml
  gwsetup setup

  # Reuse a previous run's answers
  gwsetup setup -c gwsetup.yaml

  # Unattended run (conservative defaults, no recovery prompts)
  gwsetup setup -c gwsetup.yaml --yes`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Setup(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVarP(&opts.ConfigPath, "config", "c", "", "Path to request file (default: gwsetup.yaml)")
	cmd.Flags().BoolVarP(&opts.AssumeDefaults, "yes", "y", false, "Never prompt; take the conservative default everywhere")
	cmd.Flags().StringVarP(&opts.OutputDir, "output", "o", "", "Directory for the key, reference, and log files")
	cmd.Flags().StringVar(&opts.Domain, "domain", "", "Workspace domain being migrated")
	cmd.Flags().StringVar(&opts.AdminEmail, "admin-email", "", "Workspace super-admin email")
	cmd.Flags().StringVar(&opts.ProjectID, "project", "", "Project id to create or adopt (default: derived from the domain)")
	cmd.Flags().StringVar(&opts.OrganizationID, "organization", "", "Numeric organization id to parent the project under")
	cmd.Flags().StringVar(&opts.BillingAccountID, "billing-account", "", "Billing account id to link")

	return cmd
}
