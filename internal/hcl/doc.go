// Package hcl implements the config.Loader interface for HCL options files
// (conventionally dist.hcl). The file is optional; it supplies packaging
// defaults that command-line flags override.
package hcl
