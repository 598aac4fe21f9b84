package types

import "errors"

// Engine is the storage contract shared by the flat-file and relational
// backends. Callers receive one Engine at startup and never branch on which
// backend is behind it.
type Engine interface {
	// All returns every tracked entity keyed by composite key, filtered to
	// kind when kind is non-empty. The map is owned by the caller; the
	// entities are the live instances. No ordering is implied.
	All(kind Kind) (map[string]Entity, error)

	// New registers e under its composite key, replacing any entity already
	// registered there. Relational backends only stage the change.
	New(e Entity)

	// Delete removes e from tracking. A nil or untracked entity is a no-op.
	Delete(e Entity)

	// Save makes every pending change durable.
	Save() error

	// Reload (re)initializes the backing state: rehydrates the flat file or
	// opens a fresh database session.
	Reload() error

	// Close releases backend resources. Idempotent.
	Close() error
}

// Resetter is implemented by backends that can drop their whole schema.
// Dropping is destructive and never happens as a side effect of Reload.
type Resetter interface {
	DropAll() error
}

// Engine errors.
var (
	ErrNotFound     = errors.New("entity not found")
	ErrUnknownKind  = errors.New("unknown entity kind")
	ErrUnknownClass = errors.New("unknown __class__ discriminator")
	ErrCorruptStore = errors.New("corrupt storage file")
	ErrClosed       = errors.New("storage engine is closed")
)
