// Package filestorage is the object-storage collaborator boundary. The
// core hands it raw bytes and a folder name and gets back a URL; any
// failure surfaces as a "file not available" outcome at the caller, never
// a crash.
package filestorage

import "context"

// Storage stores uploaded file content and serves it back by URL.
type Storage interface {
	// Store writes the file bytes under the given folder and returns the
	// publicly accessible URL for the stored object.
	Store(ctx context.Context, content []byte, folder, filename string) (string, error)

	// Remove deletes a previously stored object by its URL. Removing a
	// missing object is not an error.
	Remove(ctx context.Context, url string) error
}
