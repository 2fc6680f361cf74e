// Package config defines the format-agnostic options model and the Loader
// interface that file-format adapters implement.
package config
