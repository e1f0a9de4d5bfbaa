// Package storage persists the serialized session list.
//
// The session store treats persistence as a single opaque blob: every
// mutation saves the complete, current snapshot and startup loads it back.
// Two backends are provided: a JSON file under the parley data directory
// (the default) and a SQLite database for users who prefer a single
// queryable artifact.
package storage

// Backend stores and retrieves the serialized session list as one blob.
type Backend interface {
	// Load returns the persisted blob, or (nil, nil) when nothing has
	// been persisted yet.
	Load() ([]byte, error)

	// Save replaces the persisted blob with data.
	Save(data []byte) error
}
