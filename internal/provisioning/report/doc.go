// Package report emits the end-of-run artifacts: the operator-facing
// summary (per-step status, resource identifiers, file paths, teardown
// command) and the reference file a Workspace admin needs to finish the
// manual steps. Emission always runs, whatever the steps left behind.
package report
