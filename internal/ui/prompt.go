package ui

import (
	"context"
	"os"

	"github.com/charmbracelet/huh"
	"github.com/mattn/go-isatty"
)

// Prompter asks the operator questions mid-run. Step code depends on this
// interface so tests can script answers.
type Prompter interface {
	// Confirm asks a yes/no question, returning def when the operator
	// just accepts the default.
	Confirm(ctx context.Context, title, description string, def bool) (bool, error)

	// Input asks for a free-text value. An empty answer is legal and
	// means "none".
	Input(ctx context.Context, title, description, placeholder string) (string, error)
}

// Interactive reports whether stdin is attached to a terminal.
func Interactive() bool {
	fd := os.Stdin.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// HuhPrompter implements Prompter with charmbracelet/huh forms.
type HuhPrompter struct{}

var _ Prompter = HuhPrompter{}

// Confirm implements Prompter.
func (HuhPrompter) Confirm(ctx context.Context, title, description string, def bool) (bool, error) {
	answer := def
	err := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(title).
				Description(description).
				Value(&answer),
		),
	).RunWithContext(ctx)
	if err != nil {
		return def, err
	}
	return answer, nil
}

// Input implements Prompter.
func (HuhPrompter) Input(ctx context.Context, title, description, placeholder string) (string, error) {
	var answer string
	err := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title(title).
				Description(description).
				Placeholder(placeholder).
				Value(&answer),
		),
	).RunWithContext(ctx)
	if err != nil {
		return "", err
	}
	return answer, nil
}

// StaticPrompter answers every Confirm with its default and every Input
// with the empty string. Used for --yes runs and non-TTY environments,
// which deliberately take the conservative path (no auto-recovery, no
// continue-on-systemic-failure).
type StaticPrompter struct{}

var _ Prompter = StaticPrompter{}

// Confirm implements Prompter.
func (StaticPrompter) Confirm(_ context.Context, _, _ string, def bool) (bool, error) {
	return def, nil
}

// Input implements Prompter.
func (StaticPrompter) Input(_ context.Context, _, _, _ string) (string, error) {
	return "", nil
}
