// Package gcloud provides a wrapper around the Google Cloud control-plane
// APIs used during Workspace migration setup.
//
// The package is organized into domain-specific modules:
//
//   - client.go: Client initialization and the per-concern interfaces
//   - projects.go: Project creation, lookup, and ancestry
//   - services.go: Service (API) enablement via Service Usage
//   - accounts.go: Service accounts and key material
//   - policies.go: Project/organization IAM bindings and org policies
//   - billing.go: Billing account linkage
//   - consent.go: OAuth consent brand via IAP
//   - delegation.go: Domain-wide delegation flag on a service account
//   - errors.go: Failure classification for the orchestrator
//
// All operations are thin request/response calls; retry and recovery
// decisions belong to the provisioning package, not here. Failures are
// classified into a small closed category set so the orchestrator can
// branch without parsing provider error text itself.
package gcloud
