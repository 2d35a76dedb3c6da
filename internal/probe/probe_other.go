//go:build !linux

package probe

import (
	"context"
	"errors"
)

// Dir is only supported on linux, where the kernel produces getdents64
// records.
func Dir(ctx context.Context, path string, concurrency int) (*Result, error) {
	return nil, errors.New("probing directories is only supported on linux")
}
