package api

import (
	"net/http"

	"github.com/mesh-intelligence/hbnb/internal/storage"
	"github.com/mesh-intelligence/hbnb/pkg/types"
)

func (s *Server) listStates(w http.ResponseWriter, r *http.Request) {
	s.list(types.KindState)(w, r)
}

func (s *Server) getState(w http.ResponseWriter, r *http.Request) {
	s.show(types.KindState, varState)(w, r)
}

func (s *Server) createState(w http.ResponseWriter, r *http.Request) {
	body, ok := readBody(w, r)
	if !ok || !requireFields(w, body, "name") {
		return
	}
	s.create(w, r, types.KindState, body, nil)
}

func (s *Server) updateState(w http.ResponseWriter, r *http.Request) {
	s.update(types.KindState, varState)(w, r)
}

func (s *Server) deleteState(w http.ResponseWriter, r *http.Request) {
	s.remove(types.KindState, varState)(w, r)
}

func (s *Server) listCities(w http.ResponseWriter, r *http.Request) {
	state, ok := s.fetch(w, r, types.KindState, varState)
	if !ok {
		return
	}
	cities, err := storage.CitiesOf(s.engine, state.Base().ID)
	if err != nil {
		writeFailure(w, r, err)
		return
	}
	writeEntities(w, cities)
}

func (s *Server) createCity(w http.ResponseWriter, r *http.Request) {
	state, ok := s.fetch(w, r, types.KindState, varState)
	if !ok {
		return
	}
	body, ok := readBody(w, r)
	if !ok || !requireFields(w, body, "name") {
		return
	}
	s.create(w, r, types.KindCity, body, map[string]any{"state_id": state.Base().ID})
}

func (s *Server) getCity(w http.ResponseWriter, r *http.Request) {
	s.show(types.KindCity, varCity)(w, r)
}

func (s *Server) updateCity(w http.ResponseWriter, r *http.Request) {
	s.update(types.KindCity, varCity, "state_id")(w, r)
}

func (s *Server) deleteCity(w http.ResponseWriter, r *http.Request) {
	s.remove(types.KindCity, varCity)(w, r)
}

func (s *Server) listAmenities(w http.ResponseWriter, r *http.Request) {
	s.list(types.KindAmenity)(w, r)
}

func (s *Server) getAmenity(w http.ResponseWriter, r *http.Request) {
	s.show(types.KindAmenity, varAmenity)(w, r)
}

func (s *Server) createAmenity(w http.ResponseWriter, r *http.Request) {
	body, ok := readBody(w, r)
	if !ok || !requireFields(w, body, "name") {
		return
	}
	s.create(w, r, types.KindAmenity, body, nil)
}

func (s *Server) updateAmenity(w http.ResponseWriter, r *http.Request) {
	s.update(types.KindAmenity, varAmenity)(w, r)
}

func (s *Server) deleteAmenity(w http.ResponseWriter, r *http.Request) {
	s.remove(types.KindAmenity, varAmenity)(w, r)
}
