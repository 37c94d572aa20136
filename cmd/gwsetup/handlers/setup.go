// Package handlers implements the business logic for CLI commands.
//
// This package contains handler functions that are called by command
// definitions in the commands package. Handlers are framework-agnostic and
// can be tested independently of the CLI framework.
package handlers

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/migratory/gwsetup/internal/config"
	"github.com/migratory/gwsetup/internal/config/wizard"
	"github.com/migratory/gwsetup/internal/gcloud"
	"github.com/migratory/gwsetup/internal/provisioning"
	"github.com/migratory/gwsetup/internal/provisioning/report"
	"github.com/migratory/gwsetup/internal/ui"
)

// SetupOptions carries the setup command's flag values. Flag values take
// precedence over the request file; the wizard fills what remains.
type SetupOptions struct {
	ConfigPath       string
	AssumeDefaults   bool
	OutputDir        string
	Domain           string
	AdminEmail       string
	ProjectID        string
	OrganizationID   string
	BillingAccountID string
}

// Factory function variables - can be replaced in tests for dependency injection.
var (
	// newCloudClient creates the control-plane client from default credentials.
	newCloudClient = func(ctx context.Context) (gcloud.ControlPlane, error) {
		return gcloud.NewClient(ctx)
	}

	// loadRequest reads a request file.
	loadRequest = config.LoadRequest

	// writeRequest persists wizard answers for re-runs.
	writeRequest = config.WriteRequest

	// runWizard collects the missing request fields interactively.
	runWizard = wizard.Run

	// interactive reports whether a terminal is attached.
	interactive = ui.Interactive

	// stdout is the styled output target.
	stdout io.Writer = os.Stdout
)

// Setup runs the full provisioning sequence.
//
// The run proceeds through the fixed step pipeline; degraded steps leave
// manual instructions behind and the run continues. The summary and the
// reference file are emitted in every case, including a fatal abort, so
// the operator always sees what exists and what is still missing.
func Setup(ctx context.Context, opts SetupOptions) error {
	req, err := resolveRequest(ctx, opts)
	if err != nil {
		return err
	}

	cloud, err := newCloudClient(ctx)
	if err != nil {
		return err
	}

	out := ui.NewPrinter(stdout)
	logFile, logErr := openRunLog(req.OutputDir)
	if logErr != nil {
		out.Warn("run log unavailable: %v", logErr)
	} else {
		out = out.WithTee(logFile)
		defer logFile.Close()
	}

	out.Title("gwsetup: provisioning " + req.Domain)

	c := provisioning.NewContext(ctx, req, cloud, newPrompter(opts), out, logTarget(logFile))

	runErr := provisioning.RunSteps(c, provisioning.DefaultSteps())
	if runErr != nil {
		out.Fail("provisioning aborted: %v", runErr)
	}

	// The summary always runs; a failed reference write must not mask the
	// run error.
	if emitErr := report.Emit(c); emitErr != nil && runErr == nil {
		return emitErr
	}
	return runErr
}

// resolveRequest builds the validated request from flags, the request
// file, and (when a terminal is attached) the wizard.
func resolveRequest(ctx context.Context, opts SetupOptions) (*config.Request, error) {
	req, fromFile, err := loadBaseRequest(opts.ConfigPath)
	if err != nil {
		return nil, err
	}
	overlayFlags(req, opts)

	if interactive() && !opts.AssumeDefaults {
		if err := runWizard(ctx, req); err != nil {
			return nil, fmt.Errorf("collecting inputs: %w", err)
		}
		// Persist the answers so a retry does not re-ask. Best effort.
		if !fromFile {
			if err := writeRequest(req, config.DefaultRequestFile); err == nil {
				fmt.Fprintf(stdout, "answers saved to %s\n", config.DefaultRequestFile)
			}
		}
	}

	req.ApplyDefaults()
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("incomplete request (supply flags, a request file, or run interactively): %w", err)
	}
	return req, nil
}

// loadBaseRequest loads the request file: the explicit --config path, the
// default file when present, or an empty request.
func loadBaseRequest(path string) (*config.Request, bool, error) {
	if path != "" {
		req, err := loadRequest(path)
		if err != nil {
			return nil, false, err
		}
		return req, true, nil
	}

	if _, err := os.Stat(config.DefaultRequestFile); err == nil {
		req, err := loadRequest(config.DefaultRequestFile)
		if err != nil {
			return nil, false, err
		}
		return req, true, nil
	}

	return &config.Request{}, false, nil
}

// overlayFlags copies non-empty flag values over the request.
func overlayFlags(req *config.Request, opts SetupOptions) {
	if opts.Domain != "" {
		req.Domain = opts.Domain
	}
	if opts.AdminEmail != "" {
		req.AdminEmail = opts.AdminEmail
	}
	if opts.ProjectID != "" {
		req.ProjectID = opts.ProjectID
	}
	if opts.OrganizationID != "" {
		req.OrganizationID = opts.OrganizationID
	}
	if opts.BillingAccountID != "" {
		req.BillingAccountID = opts.BillingAccountID
	}
	if opts.OutputDir != "" {
		req.OutputDir = opts.OutputDir
	}
}

// newPrompter picks the prompter for the run: scripted conservative
// defaults for --yes and non-TTY runs, interactive forms otherwise.
func newPrompter(opts SetupOptions) ui.Prompter {
	if opts.AssumeDefaults || !interactive() {
		return ui.StaticPrompter{}
	}
	return ui.HuhPrompter{}
}

// openRunLog opens the append-only run log in the output directory.
func openRunLog(dir string) (*os.File, error) {
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return os.OpenFile(filepath.Join(dir, config.RunLogName), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
}

// logTarget returns the observer target: the run log when available,
// otherwise a discard sink.
func logTarget(f *os.File) io.Writer {
	if f == nil {
		return io.Discard
	}
	return f
}
