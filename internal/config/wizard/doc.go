// Package wizard interactively collects the provisioning request fields
// the operator did not supply via flags or a request file. Fields that
// already hold a value are never asked again.
package wizard
