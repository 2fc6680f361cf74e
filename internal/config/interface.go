package config

import "context"

// Loader translates an options file on disk into the unified Model. Concrete
// implementations own the file format.
type Loader interface {
	Load(ctx context.Context, path string) (*Model, error)
}
