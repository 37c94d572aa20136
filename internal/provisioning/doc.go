// Package provisioning drives the ordered provisioning sequence for
// Workspace migration setup: project, billing, service enablement, service
// account, domain-wide delegation, consent brand, and key material.
//
// Each step implements [Step] and returns a tagged [StepResult]. The
// sequencer continues on Success, Fallback, and Degraded results and stops
// only on Fatal ones; degraded steps record manual follow-up instructions
// that the run summary reports at the end. There is no rollback: a
// partially completed run leaves partially created cloud resources, and
// the summary prints the teardown command instead.
//
// The policy-blocked key recovery sub-flow (recovery.go) is the one place
// the orchestrator mutates organization-level state, and it is bounded,
// reversible, and operator-gated throughout.
package provisioning
