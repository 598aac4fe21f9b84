package api

import (
	"encoding/json"
	"net/http"

	"github.com/mesh-intelligence/hbnb/internal/storage"
	"github.com/mesh-intelligence/hbnb/pkg/types"
)

func (s *Server) listPlaces(w http.ResponseWriter, r *http.Request) {
	city, ok := s.fetch(w, r, types.KindCity, varCity)
	if !ok {
		return
	}
	places, err := storage.PlacesOf(s.engine, city.Base().ID)
	if err != nil {
		writeFailure(w, r, err)
		return
	}
	writeEntities(w, places)
}

// createPlace requires an existing owner. Amenity links are managed through
// the place amenities endpoints, not the body.
func (s *Server) createPlace(w http.ResponseWriter, r *http.Request) {
	city, ok := s.fetch(w, r, types.KindCity, varCity)
	if !ok {
		return
	}
	body, ok := readBody(w, r)
	if !ok || !requireFields(w, body, "user_id") {
		return
	}
	if !s.exists(w, r, types.KindUser, body["user_id"]) {
		return
	}
	if !requireFields(w, body, "name") {
		return
	}
	s.create(w, r, types.KindPlace, body, map[string]any{
		"city_id":     city.Base().ID,
		"amenity_ids": []string{},
	})
}

func (s *Server) getPlace(w http.ResponseWriter, r *http.Request) {
	s.show(types.KindPlace, varPlace)(w, r)
}

func (s *Server) updatePlace(w http.ResponseWriter, r *http.Request) {
	s.update(types.KindPlace, varPlace, "user_id", "city_id", "amenity_ids")(w, r)
}

func (s *Server) deletePlace(w http.ResponseWriter, r *http.Request) {
	s.remove(types.KindPlace, varPlace)(w, r)
}

// searchPlaces filters places by states, cities and amenities.
func (s *Server) searchPlaces(w http.ResponseWriter, r *http.Request) {
	var q storage.SearchQuery
	if err := json.NewDecoder(r.Body).Decode(&q); err != nil {
		writeError(w, http.StatusBadRequest, msgNotJSON)
		return
	}
	places, err := storage.SearchPlaces(s.engine, q)
	if err != nil {
		writeFailure(w, r, err)
		return
	}
	writeEntities(w, places)
}

func (s *Server) listPlaceAmenities(w http.ResponseWriter, r *http.Request) {
	place, ok := fetchAs[*types.Place](s, w, r, types.KindPlace, varPlace)
	if !ok {
		return
	}
	amenities, err := storage.AmenitiesOf(s.engine, place)
	if err != nil {
		writeFailure(w, r, err)
		return
	}
	writeEntities(w, amenities)
}

// linkAmenity answers 200 when the amenity is already linked and 201 when
// this request links it.
func (s *Server) linkAmenity(w http.ResponseWriter, r *http.Request) {
	place, ok := fetchAs[*types.Place](s, w, r, types.KindPlace, varPlace)
	if !ok {
		return
	}
	amenity, ok := s.fetch(w, r, types.KindAmenity, varAmenity)
	if !ok {
		return
	}
	if !place.AddAmenity(amenity.Base().ID) {
		writeEntity(w, http.StatusOK, amenity)
		return
	}
	if err := storage.SaveEntity(s.engine, place); err != nil {
		place.RemoveAmenity(amenity.Base().ID)
		writeFailure(w, r, err)
		return
	}
	writeEntity(w, http.StatusCreated, amenity)
}

func (s *Server) unlinkAmenity(w http.ResponseWriter, r *http.Request) {
	place, ok := fetchAs[*types.Place](s, w, r, types.KindPlace, varPlace)
	if !ok {
		return
	}
	amenity, ok := s.fetch(w, r, types.KindAmenity, varAmenity)
	if !ok {
		return
	}
	if !place.RemoveAmenity(amenity.Base().ID) {
		writeError(w, http.StatusNotFound, msgNotFound)
		return
	}
	if err := storage.SaveEntity(s.engine, place); err != nil {
		place.AddAmenity(amenity.Base().ID)
		writeFailure(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{})
}
