package storage

import (
	"github.com/mesh-intelligence/hbnb/pkg/types"
)

// SearchQuery is the body of a place search. Each list is optional; an empty
// list does not filter.
type SearchQuery struct {
	States    []string `json:"states"`
	Cities    []string `json:"cities"`
	Amenities []string `json:"amenities"`
}

// SearchPlaces returns the places located in any of the listed cities, or in
// a city of any listed state, that offer every listed amenity. When both
// states and cities are given, a place must satisfy both. Unknown ids match
// nothing.
func SearchPlaces(engine types.Engine, q SearchQuery) ([]*types.Place, error) {
	var stateCities map[string]bool
	if len(q.States) > 0 {
		stateCities = make(map[string]bool)
		for _, stateID := range q.States {
			cities, err := CitiesOf(engine, stateID)
			if err != nil {
				return nil, err
			}
			for _, c := range cities {
				stateCities[c.ID] = true
			}
		}
	}

	var cities map[string]bool
	if len(q.Cities) > 0 {
		cities = make(map[string]bool, len(q.Cities))
		for _, id := range q.Cities {
			cities[id] = true
		}
	}

	return filterAs(engine, types.KindPlace, func(p *types.Place) bool {
		if stateCities != nil && !stateCities[p.CityID] {
			return false
		}
		if cities != nil && !cities[p.CityID] {
			return false
		}
		for _, a := range q.Amenities {
			if !p.HasAmenity(a) {
				return false
			}
		}
		return true
	})
}
