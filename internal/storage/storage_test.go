package storage

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/hbnb/pkg/types"
)

// backends lists a config for each backend, rooted in a fresh directory.
func backends(t *testing.T) map[string]types.Config {
	return map[string]types.Config{
		"file": {
			Storage:  types.StorageFile,
			DataDir:  t.TempDir(),
			FileName: "file.json",
		},
		"sqlite": {
			Storage: types.StorageDB,
			DataDir: t.TempDir(),
			DB:      types.DBConfig{Driver: types.DriverSQLite, SQLiteFile: "hbnb.db"},
		},
	}
}

func open(t *testing.T, cfg types.Config) types.Engine {
	t.Helper()
	engine, err := Open(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { engine.Close() })
	return engine
}

func mustNew(t *testing.T, kind types.Kind, fields map[string]any) types.Entity {
	t.Helper()
	e, err := types.New(kind, fields)
	require.NoError(t, err)
	return e
}

// fixture is a small graph: two states, three cities, two users, two
// amenities, three places and three reviews.
type fixture struct {
	california, nevada    *types.State
	sf, la, reno          *types.City
	alice, bob            *types.User
	wifi, pool            *types.Amenity
	loft, villa, cabin    *types.Place
	review1, review2, rv3 *types.Review
}

func seed(t *testing.T, engine types.Engine) fixture {
	t.Helper()
	var f fixture
	f.california = mustNew(t, types.KindState, map[string]any{"id": "st-ca", "name": "California"}).(*types.State)
	f.nevada = mustNew(t, types.KindState, map[string]any{"id": "st-nv", "name": "Nevada"}).(*types.State)
	f.sf = mustNew(t, types.KindCity, map[string]any{"id": "ci-sf", "name": "San Francisco", "state_id": "st-ca"}).(*types.City)
	f.la = mustNew(t, types.KindCity, map[string]any{"id": "ci-la", "name": "Los Angeles", "state_id": "st-ca"}).(*types.City)
	f.reno = mustNew(t, types.KindCity, map[string]any{"id": "ci-reno", "name": "Reno", "state_id": "st-nv"}).(*types.City)
	f.alice = mustNew(t, types.KindUser, map[string]any{"id": "us-a", "email": "alice@x.io", "password": "h1"}).(*types.User)
	f.bob = mustNew(t, types.KindUser, map[string]any{"id": "us-b", "email": "bob@x.io", "password": "h2"}).(*types.User)
	f.wifi = mustNew(t, types.KindAmenity, map[string]any{"id": "am-wifi", "name": "Wifi"}).(*types.Amenity)
	f.pool = mustNew(t, types.KindAmenity, map[string]any{"id": "am-pool", "name": "Pool"}).(*types.Amenity)
	f.loft = mustNew(t, types.KindPlace, map[string]any{"id": "pl-loft", "name": "Loft", "city_id": "ci-sf", "user_id": "us-a",
		"amenity_ids": []string{"am-pool", "am-wifi"}}).(*types.Place)
	f.villa = mustNew(t, types.KindPlace, map[string]any{"id": "pl-villa", "name": "Villa", "city_id": "ci-la", "user_id": "us-b",
		"amenity_ids": []string{"am-wifi"}}).(*types.Place)
	f.cabin = mustNew(t, types.KindPlace, map[string]any{"id": "pl-cabin", "name": "Cabin", "city_id": "ci-reno", "user_id": "us-a"}).(*types.Place)
	f.review1 = mustNew(t, types.KindReview, map[string]any{"id": "rv-1", "text": "Nice", "place_id": "pl-loft", "user_id": "us-b"}).(*types.Review)
	f.review2 = mustNew(t, types.KindReview, map[string]any{"id": "rv-2", "text": "Loud", "place_id": "pl-villa", "user_id": "us-a"}).(*types.Review)
	f.rv3 = mustNew(t, types.KindReview, map[string]any{"id": "rv-3", "text": "Cold", "place_id": "pl-cabin", "user_id": "us-b"}).(*types.Review)

	for _, e := range []types.Entity{
		f.california, f.nevada, f.sf, f.la, f.reno, f.alice, f.bob, f.wifi, f.pool,
		f.loft, f.villa, f.cabin, f.review1, f.review2, f.rv3,
	} {
		engine.New(e)
	}
	require.NoError(t, engine.Save())
	return f
}

func ids[T types.Entity](es []T) []string {
	out := make([]string, len(es))
	for i, e := range es {
		out[i] = e.Base().ID
	}
	return out
}

func TestOpen_InvalidConfig(t *testing.T) {
	_, err := Open(types.Config{})
	assert.ErrorIs(t, err, types.ErrStorageEmpty)

	_, err = Open(types.Config{Storage: "cloud"})
	assert.ErrorIs(t, err, types.ErrStorageUnknown)

	_, err = Open(types.Config{Storage: types.StorageFile, ResetSchema: true})
	assert.ErrorIs(t, err, types.ErrResetNotAllowed)
}

func TestOpen_CorruptFileFails(t *testing.T) {
	cfg := backends(t)["file"]
	require.NoError(t, writeFile(FilePath(cfg), "{not json"))

	_, err := Open(cfg)
	assert.ErrorIs(t, err, types.ErrCorruptStore)
}

func TestFilePath(t *testing.T) {
	assert.Equal(t, "file.json", FilePath(types.Config{}))
	assert.Equal(t, filepath.Join("/data", "store.json"), FilePath(types.Config{DataDir: "/data", FileName: "store.json"}))
	assert.Equal(t, "/abs/store.json", FilePath(types.Config{DataDir: "/data", FileName: "/abs/store.json"}))
}

func TestOpen_ResetSchemaInTestMode(t *testing.T) {
	cfg := backends(t)["sqlite"]
	engine := open(t, cfg)
	seed(t, engine)
	require.NoError(t, engine.Close())

	cfg.Env = types.EnvTest
	cfg.ResetSchema = true
	engine = open(t, cfg)
	n, err := Count(engine, "")
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestReset_RefusedOutsideTestMode(t *testing.T) {
	cfg := backends(t)["sqlite"]
	engine := open(t, cfg)
	assert.ErrorIs(t, Reset(cfg, engine), types.ErrResetNotAllowed)
}

func TestQueries(t *testing.T) {
	for name, cfg := range backends(t) {
		t.Run(name, func(t *testing.T) {
			engine := open(t, cfg)
			f := seed(t, engine)

			got, err := Get(engine, types.KindState, "st-ca")
			require.NoError(t, err)
			assert.Equal(t, "California", got.(*types.State).Name)

			_, err = Get(engine, types.KindState, "missing")
			assert.ErrorIs(t, err, types.ErrNotFound)
			_, err = Get(engine, types.KindCity, "st-ca")
			assert.ErrorIs(t, err, types.ErrNotFound, "ids are looked up per kind")

			n, err := Count(engine, "")
			require.NoError(t, err)
			assert.Equal(t, 15, n)
			n, err = Count(engine, types.KindPlace)
			require.NoError(t, err)
			assert.Equal(t, 3, n)

			cities, err := CitiesOf(engine, f.california.ID)
			require.NoError(t, err)
			assert.ElementsMatch(t, []string{"ci-sf", "ci-la"}, ids(cities))

			places, err := PlacesOf(engine, f.reno.ID)
			require.NoError(t, err)
			assert.Equal(t, []string{"pl-cabin"}, ids(places))

			places, err = PlacesOfUser(engine, f.alice.ID)
			require.NoError(t, err)
			assert.ElementsMatch(t, []string{"pl-loft", "pl-cabin"}, ids(places))

			reviews, err := ReviewsOf(engine, f.loft.ID)
			require.NoError(t, err)
			assert.Equal(t, []string{"rv-1"}, ids(reviews))

			reviews, err = ReviewsOfUser(engine, f.bob.ID)
			require.NoError(t, err)
			assert.ElementsMatch(t, []string{"rv-1", "rv-3"}, ids(reviews))

			amenities, err := AmenitiesOf(engine, f.loft)
			require.NoError(t, err)
			assert.ElementsMatch(t, []string{"am-wifi", "am-pool"}, ids(amenities))

			list, err := List(engine, types.KindAmenity)
			require.NoError(t, err)
			assert.Len(t, list, 2)
		})
	}
}

func TestList_SortedByCreation(t *testing.T) {
	engine := open(t, backends(t)["file"])
	engine.New(mustNew(t, types.KindState, map[string]any{"id": "b", "created_at": "2024-01-02T00:00:00.000000"}))
	engine.New(mustNew(t, types.KindState, map[string]any{"id": "c", "created_at": "2024-01-01T00:00:00.000000"}))
	engine.New(mustNew(t, types.KindState, map[string]any{"id": "a", "created_at": "2024-01-02T00:00:00.000000"}))

	list, err := List(engine, types.KindState)
	require.NoError(t, err)
	assert.Equal(t, []string{"c", "a", "b"}, ids(list))
}

func TestSaveEntity_TouchesAndPersists(t *testing.T) {
	for name, cfg := range backends(t) {
		t.Run(name, func(t *testing.T) {
			engine := open(t, cfg)
			state := mustNew(t, types.KindState, map[string]any{"name": "Oregon", "updated_at": "2020-01-01T00:00:00.000000"}).(*types.State)
			before := state.UpdatedAt

			require.NoError(t, SaveEntity(engine, state))
			assert.True(t, state.UpdatedAt.After(before))

			require.NoError(t, engine.Close())
			reopened := open(t, cfg)
			got, err := Get(reopened, types.KindState, state.ID)
			require.NoError(t, err)
			assert.Equal(t, state.ToMap(true), got.ToMap(true))
		})
	}
}

func TestDeleteEntity_Cascades(t *testing.T) {
	for name, cfg := range backends(t) {
		t.Run(name, func(t *testing.T) {
			engine := open(t, cfg)
			f := seed(t, engine)

			require.NoError(t, DeleteEntity(engine, f.california))

			remaining := func(kind types.Kind) []string {
				list, err := List(engine, kind)
				require.NoError(t, err)
				return ids(list)
			}
			assert.Equal(t, []string{"st-nv"}, remaining(types.KindState))
			assert.Equal(t, []string{"ci-reno"}, remaining(types.KindCity))
			assert.Equal(t, []string{"pl-cabin"}, remaining(types.KindPlace))
			assert.Equal(t, []string{"rv-3"}, remaining(types.KindReview))
			assert.Len(t, remaining(types.KindUser), 2)
		})
	}
}

func TestDeleteEntity_UserAndAmenity(t *testing.T) {
	for name, cfg := range backends(t) {
		t.Run(name, func(t *testing.T) {
			engine := open(t, cfg)
			f := seed(t, engine)

			require.NoError(t, DeleteEntity(engine, f.wifi))
			require.NoError(t, DeleteEntity(engine, f.alice))

			require.NoError(t, engine.Close())
			engine = open(t, cfg)

			places, err := List(engine, types.KindPlace)
			require.NoError(t, err)
			require.Equal(t, []string{"pl-villa"}, ids(places))
			assert.Empty(t, places[0].(*types.Place).AmenityIDs)

			reviews, err := List(engine, types.KindReview)
			require.NoError(t, err)
			assert.Empty(t, reviews, "reviews of the user's places go too")
		})
	}
}

func TestDeleteEntity_AbsentIsNoop(t *testing.T) {
	for name, cfg := range backends(t) {
		t.Run(name, func(t *testing.T) {
			engine := open(t, cfg)
			seed(t, engine)

			require.NoError(t, DeleteEntity(engine, nil))
			require.NoError(t, DeleteEntity(engine, mustNew(t, types.KindAmenity, map[string]any{"name": "Ghost"})))

			n, err := Count(engine, "")
			require.NoError(t, err)
			assert.Equal(t, 15, n)
		})
	}
}

func TestSearchPlaces(t *testing.T) {
	for name, cfg := range backends(t) {
		t.Run(name, func(t *testing.T) {
			engine := open(t, cfg)
			seed(t, engine)

			tests := []struct {
				name  string
				query SearchQuery
				want  []string
			}{
				{"empty query returns all", SearchQuery{}, []string{"pl-loft", "pl-villa", "pl-cabin"}},
				{"empty lists do not filter", SearchQuery{States: []string{}, Cities: []string{}}, []string{"pl-loft", "pl-villa", "pl-cabin"}},
				{"by state", SearchQuery{States: []string{"st-ca"}}, []string{"pl-loft", "pl-villa"}},
				{"by city", SearchQuery{Cities: []string{"ci-reno"}}, []string{"pl-cabin"}},
				{"state and city intersect", SearchQuery{States: []string{"st-ca"}, Cities: []string{"ci-la", "ci-reno"}}, []string{"pl-villa"}},
				{"all amenities required", SearchQuery{Amenities: []string{"am-wifi", "am-pool"}}, []string{"pl-loft"}},
				{"amenity with state", SearchQuery{States: []string{"st-ca"}, Amenities: []string{"am-wifi"}}, []string{"pl-loft", "pl-villa"}},
				{"unknown state skipped", SearchQuery{States: []string{"nope", "st-nv"}}, []string{"pl-cabin"}},
				{"unknown amenity matches nothing", SearchQuery{Amenities: []string{"nope"}}, []string{}},
			}
			for _, tt := range tests {
				t.Run(tt.name, func(t *testing.T) {
					got, err := SearchPlaces(engine, tt.query)
					require.NoError(t, err)
					assert.ElementsMatch(t, tt.want, ids(got))
				})
			}
		})
	}
}

// TestBackendSubstitutability runs one operation sequence against both
// backends and compares the resulting stores field by field.
func TestBackendSubstitutability(t *testing.T) {
	results := make(map[string]map[string]map[string]any)
	for name, cfg := range backends(t) {
		engine := open(t, cfg)
		f := seed(t, engine)

		f.villa.AddAmenity(f.pool.ID)
		f.villa.Name = "Villa Rosa"
		engine.New(f.villa)
		engine.Delete(f.review2)
		engine.Delete(f.review2)
		require.NoError(t, engine.Save())
		require.NoError(t, engine.Close())

		reopened := open(t, cfg)
		all, err := reopened.All("")
		require.NoError(t, err)
		snapshot := make(map[string]map[string]any, len(all))
		for key, e := range all {
			snapshot[key] = e.ToMap(true)
		}
		results[name] = snapshot
	}

	require.Len(t, results["file"], 14)
	assert.Equal(t, results["file"], results["sqlite"])
}

func TestBackendSubstitutability_AmenityIDs(t *testing.T) {
	got := make(map[string][]string)
	for name, cfg := range backends(t) {
		engine := open(t, cfg)
		place := mustNew(t, types.KindPlace, map[string]any{
			"id": "pl-1", "name": "Loft",
			"amenity_ids": []any{"am-z", "am-a", "am-z"},
		})
		require.NoError(t, SaveEntity(engine, place))

		other := mustNew(t, types.KindPlace, map[string]any{"id": "pl-2", "name": "Cabin"})
		require.NoError(t, SaveEntity(engine, other))
		require.NoError(t, types.Apply(other, map[string]any{"amenity_ids": []any{"am-m", "am-b", "am-b"}}))
		require.NoError(t, SaveEntity(engine, other))
		require.NoError(t, engine.Close())

		reopened := open(t, cfg)
		p1, err := Get(reopened, types.KindPlace, "pl-1")
		require.NoError(t, err, name)
		p2, err := Get(reopened, types.KindPlace, "pl-2")
		require.NoError(t, err, name)
		got[name] = append(p1.(*types.Place).AmenityIDs, p2.(*types.Place).AmenityIDs...)
	}

	assert.Equal(t, []string{"am-a", "am-z", "am-b", "am-m"}, got["file"])
	assert.Equal(t, got["file"], got["sqlite"])
}

func TestBackendSubstitutability_ReloadDropsUnsaved(t *testing.T) {
	for name, cfg := range backends(t) {
		t.Run(name, func(t *testing.T) {
			engine := open(t, cfg)
			saved := mustNew(t, types.KindState, map[string]any{"name": "California"})
			require.NoError(t, SaveEntity(engine, saved))

			engine.New(mustNew(t, types.KindState, map[string]any{"name": "Nevada"}))
			require.NoError(t, engine.Reload())

			n, err := Count(engine, types.KindState)
			require.NoError(t, err)
			assert.Equal(t, 1, n)
		})
	}
}
