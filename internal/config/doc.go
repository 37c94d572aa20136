// Package config defines the provisioning request collected from the
// operator, the fixed service/role/scope catalogs for Workspace migration
// setup, and env-tunable timing knobs.
package config
