// Package ui provides terminal output styling and operator prompts.
//
// Step code talks to the [Printer] for styled status lines and to the
// [Prompter] interface for yes/no and free-text questions. The interactive
// implementation uses charmbracelet/huh; non-interactive runs (--yes, or
// stdin not a TTY) use [StaticPrompter], which answers every prompt with
// its default.
package ui
