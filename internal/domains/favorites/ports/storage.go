package ports

import "context"

// Storage is durable key/value storage for serialized favorites snapshots.
// Read reports found=false for keys that were never written.
type Storage interface {
	Read(ctx context.Context, key string) (data []byte, found bool, err error)
	Write(ctx context.Context, key string, data []byte) error
}
