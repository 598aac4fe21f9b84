package types

import (
	"time"

	"github.com/google/uuid"
)

// TimeFormat is the layout used for created_at and updated_at in every
// serialized form.
const TimeFormat = "2006-01-02T15:04:05.000000"

// ClassField is the discriminator key carried by every serialized record.
const ClassField = "__class__"

// Entity is implemented by all six domain types. Entities never hold a
// reference to the storage engine; relationship traversal belongs to the
// storage package.
type Entity interface {
	// Kind returns the entity kind.
	Kind() Kind

	// Base returns the shared identity and timestamps.
	Base() *BaseModel

	// ToMap returns the serializable field mapping, including the __class__
	// discriminator. Write-only fields such as a user's password appear only
	// when includeSensitive is true.
	ToMap(includeSensitive bool) map[string]any
}

// BaseModel holds the fields shared by every entity.
type BaseModel struct {
	ID        string    `mapstructure:"id"`
	CreatedAt time.Time `mapstructure:"created_at"`
	UpdatedAt time.Time `mapstructure:"updated_at"`
}

// NewBase returns a BaseModel with a fresh ID and both timestamps set to now.
func NewBase() BaseModel {
	now := Now()
	return BaseModel{ID: NewID(), CreatedAt: now, UpdatedAt: now}
}

// Base returns b. Embedding BaseModel satisfies this part of Entity.
func (b *BaseModel) Base() *BaseModel {
	return b
}

// Touch refreshes UpdatedAt. Called on every mutating save.
func (b *BaseModel) Touch() {
	b.UpdatedAt = Now()
}

// fillDefaults generates whatever identity fields a decoded mapping lacked.
func (b *BaseModel) fillDefaults() {
	if b.ID == "" {
		b.ID = NewID()
	}
	if b.CreatedAt.IsZero() {
		b.CreatedAt = Now()
	}
	if b.UpdatedAt.IsZero() {
		b.UpdatedAt = b.CreatedAt
	}
}

// baseMap starts a serialized record for kind.
func (b *BaseModel) baseMap(kind Kind) map[string]any {
	return map[string]any{
		ClassField:   string(kind),
		"id":         b.ID,
		"created_at": b.CreatedAt.Format(TimeFormat),
		"updated_at": b.UpdatedAt.Format(TimeFormat),
	}
}

// Now returns the current UTC time at the precision the serialized forms keep.
func Now() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}

// NewID generates a new UUID v7 entity ID.
func NewID() string {
	id, err := uuid.NewV7()
	if err != nil {
		// Fallback to UUID v4 if v7 generation fails
		return uuid.New().String()
	}
	return id.String()
}
