package provisioning

import (
	"context"
	"io"
	"time"

	"github.com/migratory/gwsetup/internal/config"
	"github.com/migratory/gwsetup/internal/gcloud"
	"github.com/migratory/gwsetup/internal/ui"
)

// Context wraps all dependencies and state needed by provisioning steps.
// There is exactly one Context per run; steps update State through it
// rather than through package globals.
type Context struct {
	context.Context

	Request  *config.Request
	State    *State
	Cloud    gcloud.ControlPlane
	Classify gcloud.Classifier
	Prompt   ui.Prompter
	Out      *ui.Printer
	Observer Observer
	Timeouts *config.Timeouts
}

// NewContext creates a provisioning context with console output and
// env-derived timeouts.
func NewContext(
	ctx context.Context,
	req *config.Request,
	cloud gcloud.ControlPlane,
	prompt ui.Prompter,
	out *ui.Printer,
	logTarget io.Writer,
) *Context {
	return &Context{
		Context:  ctx,
		Request:  req,
		State:    NewState(),
		Cloud:    cloud,
		Classify: gcloud.Classify,
		Prompt:   prompt,
		Out:      out,
		Observer: NewLogObserver(logTarget),
		Timeouts: config.LoadTimeouts(),
	}
}

// pause sleeps for d, returning early if the run is cancelled.
func (c *Context) pause(d time.Duration) {
	if d <= 0 {
		return
	}
	select {
	case <-c.Done():
	case <-time.After(d):
	}
}
