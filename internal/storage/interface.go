package storage

import (
	"context"
	"io"
)

// Storage archives successfully imported workbooks.
type Storage interface {
	Upload(ctx context.Context, key string, data io.Reader) error
}
