package storage

import (
	"context"
	"errors"
)

// ErrObjectNotFound is returned by Read and Remove for a location that
// holds no bytes.
var ErrObjectNotFound = errors.New("storage: object not found")

// Storage keeps uploaded file bytes. A location returned by Write stays
// valid until Remove is called with it.
type Storage interface {
	Write(ctx context.Context, name string, data []byte) (string, error)
	Read(ctx context.Context, location string) ([]byte, error)
	Exists(ctx context.Context, location string) (bool, error)
	Remove(ctx context.Context, location string) error
}
