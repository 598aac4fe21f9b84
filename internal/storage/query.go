package storage

import (
	"sort"

	"github.com/mesh-intelligence/hbnb/pkg/types"
)

// Get returns the entity of kind with id, or types.ErrNotFound.
func Get(engine types.Engine, kind types.Kind, id string) (types.Entity, error) {
	all, err := engine.All(kind)
	if err != nil {
		return nil, err
	}
	e, ok := all[types.CompositeKey(kind, id)]
	if !ok {
		return nil, types.ErrNotFound
	}
	return e, nil
}

// Count returns the number of entities of kind, or of every kind when kind
// is empty.
func Count(engine types.Engine, kind types.Kind) (int, error) {
	all, err := engine.All(kind)
	if err != nil {
		return 0, err
	}
	return len(all), nil
}

// List returns every entity of kind sorted by creation time, then id.
func List(engine types.Engine, kind types.Kind) ([]types.Entity, error) {
	return filter(engine, kind, func(types.Entity) bool { return true })
}

// CitiesOf returns the cities of a state.
func CitiesOf(engine types.Engine, stateID string) ([]*types.City, error) {
	return filterAs(engine, types.KindCity, func(c *types.City) bool { return c.StateID == stateID })
}

// PlacesOf returns the places in a city.
func PlacesOf(engine types.Engine, cityID string) ([]*types.Place, error) {
	return filterAs(engine, types.KindPlace, func(p *types.Place) bool { return p.CityID == cityID })
}

// PlacesOfUser returns the places a user owns.
func PlacesOfUser(engine types.Engine, userID string) ([]*types.Place, error) {
	return filterAs(engine, types.KindPlace, func(p *types.Place) bool { return p.UserID == userID })
}

// ReviewsOf returns the reviews of a place.
func ReviewsOf(engine types.Engine, placeID string) ([]*types.Review, error) {
	return filterAs(engine, types.KindReview, func(r *types.Review) bool { return r.PlaceID == placeID })
}

// ReviewsOfUser returns the reviews a user wrote.
func ReviewsOfUser(engine types.Engine, userID string) ([]*types.Review, error) {
	return filterAs(engine, types.KindReview, func(r *types.Review) bool { return r.UserID == userID })
}

// AmenitiesOf resolves the amenity ids of a place. Ids that no longer name
// an amenity are skipped.
func AmenitiesOf(engine types.Engine, place *types.Place) ([]*types.Amenity, error) {
	return filterAs(engine, types.KindAmenity, func(a *types.Amenity) bool { return place.HasAmenity(a.ID) })
}

// filter scans kind and returns the matches in creation order.
func filter(engine types.Engine, kind types.Kind, keep func(types.Entity) bool) ([]types.Entity, error) {
	all, err := engine.All(kind)
	if err != nil {
		return nil, err
	}
	out := make([]types.Entity, 0, len(all))
	for _, e := range all {
		if keep(e) {
			out = append(out, e)
		}
	}
	sortEntities(out)
	return out, nil
}

// filterAs is filter for one concrete entity type.
func filterAs[T types.Entity](engine types.Engine, kind types.Kind, keep func(T) bool) ([]T, error) {
	matches, err := filter(engine, kind, func(e types.Entity) bool {
		v, ok := e.(T)
		return ok && keep(v)
	})
	if err != nil {
		return nil, err
	}
	out := make([]T, len(matches))
	for i, e := range matches {
		out[i] = e.(T)
	}
	return out, nil
}

func sortEntities(es []types.Entity) {
	sort.Slice(es, func(i, j int) bool {
		a, b := es[i].Base(), es[j].Base()
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.Before(b.CreatedAt)
		}
		if a.ID != b.ID {
			return a.ID < b.ID
		}
		return es[i].Kind() < es[j].Kind()
	})
}
