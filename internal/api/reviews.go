package api

import (
	"net/http"

	"github.com/mesh-intelligence/hbnb/internal/storage"
	"github.com/mesh-intelligence/hbnb/pkg/types"
)

func (s *Server) listReviews(w http.ResponseWriter, r *http.Request) {
	place, ok := s.fetch(w, r, types.KindPlace, varPlace)
	if !ok {
		return
	}
	reviews, err := storage.ReviewsOf(s.engine, place.Base().ID)
	if err != nil {
		writeFailure(w, r, err)
		return
	}
	writeEntities(w, reviews)
}

func (s *Server) createReview(w http.ResponseWriter, r *http.Request) {
	place, ok := s.fetch(w, r, types.KindPlace, varPlace)
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
	if !requireFields(w, body, "text") {
		return
	}
	s.create(w, r, types.KindReview, body, map[string]any{"place_id": place.Base().ID})
}

func (s *Server) getReview(w http.ResponseWriter, r *http.Request) {
	s.show(types.KindReview, varReview)(w, r)
}

func (s *Server) updateReview(w http.ResponseWriter, r *http.Request) {
	s.update(types.KindReview, varReview, "user_id", "place_id")(w, r)
}

func (s *Server) deleteReview(w http.ResponseWriter, r *http.Request) {
	s.remove(types.KindReview, varReview)(w, r)
}
