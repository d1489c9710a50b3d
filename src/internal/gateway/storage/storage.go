package storage

import "context"

// Uploader turns a local file into a durable public URL. The core persists
// only the URL, never raw bytes.
type Uploader interface {
	Upload(ctx context.Context, localPath string) (string, error)
}
