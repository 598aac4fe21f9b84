package types

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-viper/mapstructure/v2"
)

// protectedFields are never overwritten by Apply.
var protectedFields = []string{"id", "created_at", "updated_at", ClassField}

var timeType = reflect.TypeOf(time.Time{})

// FieldError reports a value that could not be decoded into an entity field.
type FieldError struct {
	Kind  Kind
	Field string
	Err   error
}

func (e *FieldError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("%s: %v", e.Kind, e.Err)
	}
	return fmt.Sprintf("%s.%s: %v", e.Kind, e.Field, e.Err)
}

func (e *FieldError) Unwrap() error {
	return e.Err
}

// normalizer is implemented by entities that canonicalize fields after
// decoding.
type normalizer interface {
	normalize()
}

// zero returns an empty entity of the given kind. This switch is the single
// place where a kind tag turns into a concrete type.
func zero(kind Kind) (Entity, error) {
	switch kind {
	case KindState:
		return &State{}, nil
	case KindCity:
		return &City{}, nil
	case KindUser:
		return &User{}, nil
	case KindPlace:
		return &Place{}, nil
	case KindAmenity:
		return &Amenity{}, nil
	case KindReview:
		return &Review{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}
}

// New builds an entity of kind from a field mapping, as read from storage or
// from a request body. Missing id and timestamps are generated. Unknown keys
// are ignored; numeric and string values are converted leniently.
func New(kind Kind, fields map[string]any) (Entity, error) {
	e, err := zero(kind)
	if err != nil {
		return nil, err
	}
	if err := decode(fields, e); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", kind, err)
	}
	e.Base().fillDefaults()
	if n, ok := e.(normalizer); ok {
		n.normalize()
	}
	return e, nil
}

// FromRecord rebuilds an entity from a persisted record, dispatching on its
// __class__ discriminator. A missing or unrecognized tag returns
// ErrUnknownClass.
func FromRecord(record map[string]any) (Entity, error) {
	tag, ok := record[ClassField].(string)
	if !ok {
		return nil, fmt.Errorf("%w: missing %s", ErrUnknownClass, ClassField)
	}
	kind := Kind(tag)
	if !kind.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrUnknownClass, tag)
	}
	return New(kind, record)
}

// Apply overlays fields onto e. The id, timestamps, and any key listed in
// ignore are skipped. Keys that match no field are ignored. The overlay is
// decoded into a copy first, so e is left unchanged when any value fails to
// decode.
func Apply(e Entity, fields map[string]any, ignore ...string) error {
	filtered := make(map[string]any, len(fields))
	for k, v := range fields {
		filtered[k] = v
	}
	for _, k := range protectedFields {
		delete(filtered, k)
	}
	for _, k := range ignore {
		delete(filtered, k)
	}

	next, err := New(e.Kind(), e.ToMap(true))
	if err != nil {
		return fmt.Errorf("copying %s: %w", Key(e), err)
	}
	if err := decode(filtered, next); err != nil {
		return fmt.Errorf("updating %s: %w", e.Kind(), err)
	}
	if n, ok := next.(normalizer); ok {
		n.normalize()
	}
	*next.Base() = *e.Base()
	reflect.ValueOf(e).Elem().Set(reflect.ValueOf(next).Elem())
	return nil
}

// decode runs mapstructure over fields. A failure is returned as a
// *FieldError naming the first field that could not be decoded.
func decode(fields map[string]any, out Entity) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           out,
		WeaklyTypedInput: true,
		DecodeHook:       stringToTimeHook,
	})
	if err != nil {
		return err
	}
	if err := dec.Decode(fields); err != nil {
		fe := &FieldError{Kind: out.Kind(), Err: err}
		var de *mapstructure.DecodeError
		if errors.As(err, &de) {
			fe.Field, _, _ = strings.Cut(de.Name(), "[")
			fe.Err = de.Unwrap()
		}
		return fe
	}
	return nil
}

// stringToTimeHook parses timestamps written with TimeFormat, falling back to
// RFC 3339.
func stringToTimeHook(_ reflect.Type, to reflect.Type, data any) (any, error) {
	if to != timeType {
		return data, nil
	}
	var s string
	switch v := data.(type) {
	case string:
		s = v
	case []byte:
		s = string(v)
	default:
		return data, nil
	}
	if t, err := time.Parse(TimeFormat, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return nil, fmt.Errorf("parsing time %q: %w", s, err)
	}
	return t.UTC(), nil
}
