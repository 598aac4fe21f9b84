package types

import (
	"fmt"
	"strings"
)

// Kind names one of the six entity types. It doubles as the value of the
// __class__ discriminator in persisted records.
type Kind string

// Entity kinds.
const (
	KindState   Kind = "State"
	KindCity    Kind = "City"
	KindUser    Kind = "User"
	KindPlace   Kind = "Place"
	KindAmenity Kind = "Amenity"
	KindReview  Kind = "Review"
)

// Kinds lists every entity kind in dependency order: a kind only references
// kinds that appear before it.
var Kinds = []Kind{
	KindState,
	KindUser,
	KindAmenity,
	KindCity,
	KindPlace,
	KindReview,
}

// resourceNames maps each kind to its plural REST resource name.
var resourceNames = map[Kind]string{
	KindState:   "states",
	KindCity:    "cities",
	KindUser:    "users",
	KindPlace:   "places",
	KindAmenity: "amenities",
	KindReview:  "reviews",
}

// Resource returns the plural resource name for the kind (e.g. "cities").
func (k Kind) Resource() string {
	return resourceNames[k]
}

// Valid reports whether k is one of the six known kinds.
func (k Kind) Valid() bool {
	_, ok := resourceNames[k]
	return ok
}

// ParseKind resolves a kind from its name ("City") or its resource name
// ("cities"). Matching is case-insensitive.
// Returns ErrUnknownKind for anything else.
func ParseKind(s string) (Kind, error) {
	for k, res := range resourceNames {
		if strings.EqualFold(s, string(k)) || strings.EqualFold(s, res) {
			return k, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownKind, s)
}

// CompositeKey returns the store-wide key "{Kind}.{id}".
func CompositeKey(kind Kind, id string) string {
	return string(kind) + "." + id
}

// Key returns the composite key of e.
func Key(e Entity) string {
	return CompositeKey(e.Kind(), e.Base().ID)
}
