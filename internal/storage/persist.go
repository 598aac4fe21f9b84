package storage

import (
	"fmt"

	"github.com/mesh-intelligence/hbnb/pkg/types"
)

// SaveEntity refreshes updated_at, registers e and commits.
func SaveEntity(engine types.Engine, e types.Entity) error {
	e.Base().Touch()
	engine.New(e)
	if err := engine.Save(); err != nil {
		return fmt.Errorf("saving %s: %w", types.Key(e), err)
	}
	return nil
}

// DeleteEntity removes e together with everything that depends on it, then
// commits. Deleting a state removes its cities and, through them, their
// places and reviews; deleting a user removes the user's places and reviews;
// deleting an amenity unlinks it from every place.
func DeleteEntity(engine types.Engine, e types.Entity) error {
	if e == nil {
		return nil
	}
	if err := cascade(engine, e); err != nil {
		return fmt.Errorf("deleting %s: %w", types.Key(e), err)
	}
	if err := engine.Save(); err != nil {
		return fmt.Errorf("deleting %s: %w", types.Key(e), err)
	}
	return nil
}

func cascade(engine types.Engine, e types.Entity) error {
	var dependents []types.Entity

	switch v := e.(type) {
	case *types.State:
		cities, err := CitiesOf(engine, v.ID)
		if err != nil {
			return err
		}
		for _, c := range cities {
			dependents = append(dependents, c)
		}
	case *types.City:
		places, err := PlacesOf(engine, v.ID)
		if err != nil {
			return err
		}
		for _, p := range places {
			dependents = append(dependents, p)
		}
	case *types.User:
		places, err := PlacesOfUser(engine, v.ID)
		if err != nil {
			return err
		}
		for _, p := range places {
			dependents = append(dependents, p)
		}
		reviews, err := ReviewsOfUser(engine, v.ID)
		if err != nil {
			return err
		}
		for _, r := range reviews {
			dependents = append(dependents, r)
		}
	case *types.Place:
		reviews, err := ReviewsOf(engine, v.ID)
		if err != nil {
			return err
		}
		for _, r := range reviews {
			dependents = append(dependents, r)
		}
	case *types.Amenity:
		places, err := filterAs(engine, types.KindPlace, func(p *types.Place) bool { return p.HasAmenity(v.ID) })
		if err != nil {
			return err
		}
		for _, p := range places {
			p.RemoveAmenity(v.ID)
			p.Touch()
			engine.New(p)
		}
	}

	for _, d := range dependents {
		if err := cascade(engine, d); err != nil {
			return err
		}
	}
	engine.Delete(e)
	return nil
}
