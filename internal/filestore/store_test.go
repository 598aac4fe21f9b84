package filestore

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/hbnb/pkg/types"
)

func newStore(t *testing.T) *Store {
	t.Helper()
	return New(filepath.Join(t.TempDir(), "file.json"))
}

func mustNew(t *testing.T, kind types.Kind, fields map[string]any) types.Entity {
	t.Helper()
	e, err := types.New(kind, fields)
	require.NoError(t, err)
	return e
}

func TestStore_EmptyStore(t *testing.T) {
	s := newStore(t)

	all, err := s.All("")
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestStore_ReloadMissingFileIsEmpty(t *testing.T) {
	s := newStore(t)

	require.NoError(t, s.Reload())
	all, err := s.All("")
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestStore_ReloadDropsUnsaved(t *testing.T) {
	s := newStore(t)
	saved := mustNew(t, types.KindState, map[string]any{"name": "California"})
	s.New(saved)
	require.NoError(t, s.Save())

	s.New(mustNew(t, types.KindState, map[string]any{"name": "Nevada"}))
	require.NoError(t, s.Reload())

	all, err := s.All(types.KindState)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "California", all[types.Key(saved)].(*types.State).Name)
}

func TestStore_ReloadWithoutFileDropsUnsaved(t *testing.T) {
	s := newStore(t)
	s.New(mustNew(t, types.KindState, map[string]any{"name": "Nevada"}))

	require.NoError(t, s.Reload())
	all, err := s.All("")
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestStore_NewAndAllFilter(t *testing.T) {
	s := newStore(t)
	state := mustNew(t, types.KindState, map[string]any{"name": "California"})
	city := mustNew(t, types.KindCity, map[string]any{"name": "Fresno", "state_id": state.Base().ID})
	s.New(state)
	s.New(city)

	all, err := s.All("")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	states, err := s.All(types.KindState)
	require.NoError(t, err)
	require.Len(t, states, 1)
	assert.Same(t, state, states[types.Key(state)])
}

func TestStore_NewSameKeyOverwrites(t *testing.T) {
	s := newStore(t)
	first := mustNew(t, types.KindAmenity, map[string]any{"id": "a-1", "name": "Wifi"})
	second := mustNew(t, types.KindAmenity, map[string]any{"id": "a-1", "name": "Pool"})

	s.New(first)
	s.New(second)

	all, err := s.All("")
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "Pool", all["Amenity.a-1"].(*types.Amenity).Name)
}

func TestStore_SameIDDifferentKinds(t *testing.T) {
	s := newStore(t)
	s.New(mustNew(t, types.KindState, map[string]any{"id": "x"}))
	s.New(mustNew(t, types.KindAmenity, map[string]any{"id": "x"}))

	all, err := s.All("")
	require.NoError(t, err)
	assert.Len(t, all, 2)
	assert.Contains(t, all, "State.x")
	assert.Contains(t, all, "Amenity.x")
}

func TestStore_DeleteIsIdempotent(t *testing.T) {
	s := newStore(t)
	keep := mustNew(t, types.KindState, map[string]any{"name": "Oregon"})
	gone := mustNew(t, types.KindState, map[string]any{"name": "Utah"})
	s.New(keep)
	s.New(gone)

	s.Delete(gone)
	s.Delete(gone)
	s.Delete(nil)
	s.Delete(mustNew(t, types.KindUser, nil))

	all, err := s.All("")
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Contains(t, all, types.Key(keep))
}

func TestStore_SaveWritesDiscriminatedRecords(t *testing.T) {
	s := newStore(t)
	u := mustNew(t, types.KindUser, map[string]any{"email": "a@b.c", "password": "hash"})
	s.New(u)
	require.NoError(t, s.Save())

	data, err := os.ReadFile(s.Path())
	require.NoError(t, err)

	var records map[string]map[string]any
	require.NoError(t, json.Unmarshal(data, &records))
	rec, ok := records[types.Key(u)]
	require.True(t, ok)
	assert.Equal(t, "User", rec[types.ClassField])
	assert.Equal(t, "hash", rec["password"], "durable form keeps the password")
}

func TestStore_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "file.json")
	s := New(path)

	entities := []types.Entity{
		mustNew(t, types.KindState, map[string]any{"name": "California"}),
		mustNew(t, types.KindCity, map[string]any{"name": "San Jose", "state_id": "s"}),
		mustNew(t, types.KindUser, map[string]any{"email": "u@x.io", "password": "pw", "first_name": "Bo"}),
		mustNew(t, types.KindPlace, map[string]any{"name": "Loft", "city_id": "c", "user_id": "u",
			"price_by_night": 80, "latitude": 1.5, "amenity_ids": []any{"a"}}),
		mustNew(t, types.KindAmenity, map[string]any{"name": "Wifi"}),
		mustNew(t, types.KindReview, map[string]any{"text": "nice", "place_id": "p", "user_id": "u"}),
	}
	for _, e := range entities {
		s.New(e)
	}
	require.NoError(t, s.Save())

	fresh := New(path)
	require.NoError(t, fresh.Reload())
	all, err := fresh.All("")
	require.NoError(t, err)
	require.Len(t, all, len(entities))

	for _, e := range entities {
		got, ok := all[types.Key(e)]
		require.True(t, ok, "missing %s", types.Key(e))
		assert.Equal(t, e.Kind(), got.Kind())
		assert.Equal(t, e.ToMap(true), got.ToMap(true))
	}
}

func TestStore_CaliforniaScenario(t *testing.T) {
	path := filepath.Join(t.TempDir(), "file.json")
	s := New(path)
	s.New(mustNew(t, types.KindState, map[string]any{"name": "California"}))
	require.NoError(t, s.Save())

	fresh := New(path)
	require.NoError(t, fresh.Reload())
	states, err := fresh.All(types.KindState)
	require.NoError(t, err)
	require.Len(t, states, 1)
	for _, e := range states {
		assert.Equal(t, "California", e.(*types.State).Name)
		assert.NotEmpty(t, e.Base().ID)
	}
}

func TestStore_MutationInPlaceIsSaved(t *testing.T) {
	path := filepath.Join(t.TempDir(), "file.json")
	s := New(path)
	state := mustNew(t, types.KindState, map[string]any{"name": "Old"}).(*types.State)
	s.New(state)
	require.NoError(t, s.Save())

	state.Name = "New"
	require.NoError(t, s.Save())

	fresh := New(path)
	require.NoError(t, fresh.Reload())
	all, err := fresh.All(types.KindState)
	require.NoError(t, err)
	assert.Equal(t, "New", all[types.Key(state)].(*types.State).Name)
}

func TestStore_ReloadCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "file.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	err := New(path).Reload()
	assert.ErrorIs(t, err, types.ErrCorruptStore)
}

func TestStore_ReloadUnknownClass(t *testing.T) {
	path := filepath.Join(t.TempDir(), "file.json")
	content := `{"BaseModel.1": {"__class__": "BaseModel", "id": "1"}}`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	s := New(path)
	kept := mustNew(t, types.KindState, map[string]any{"name": "California"})
	s.New(kept)
	err := s.Reload()
	assert.ErrorIs(t, err, types.ErrCorruptStore)
	assert.ErrorIs(t, err, types.ErrUnknownClass)

	all, _ := s.All("")
	assert.Len(t, all, 1)
	assert.Contains(t, all, types.Key(kept))
}

func TestStore_CloseIsNoop(t *testing.T) {
	s := newStore(t)
	s.New(mustNew(t, types.KindState, nil))
	require.NoError(t, s.Close())
	require.NoError(t, s.Close())

	all, err := s.All("")
	require.NoError(t, err)
	assert.Len(t, all, 1)
}
