package api

import (
	"net/http"

	"github.com/gorilla/mux"
)

// Path variables.
const (
	varState   = "state_id"
	varCity    = "city_id"
	varAmenity = "amenity_id"
	varUser    = "user_id"
	varPlace   = "place_id"
	varReview  = "review_id"
)

func (s *Server) routes() http.Handler {
	r := mux.NewRouter()
	r.NotFoundHandler = http.HandlerFunc(notFound)
	r.MethodNotAllowedHandler = http.HandlerFunc(methodNotAllowed)

	v1 := r.PathPrefix("/api/v1").Subrouter()
	v1.NotFoundHandler = r.NotFoundHandler
	v1.MethodNotAllowedHandler = r.MethodNotAllowedHandler
	v1.Use(s.serialize)

	v1.HandleFunc("/status", s.status).Methods(http.MethodGet)
	v1.HandleFunc("/stats", s.stats).Methods(http.MethodGet)

	v1.HandleFunc("/states", s.listStates).Methods(http.MethodGet)
	v1.HandleFunc("/states", s.createState).Methods(http.MethodPost)
	v1.HandleFunc("/states/{state_id}", s.getState).Methods(http.MethodGet)
	v1.HandleFunc("/states/{state_id}", s.updateState).Methods(http.MethodPut)
	v1.HandleFunc("/states/{state_id}", s.deleteState).Methods(http.MethodDelete)

	v1.HandleFunc("/states/{state_id}/cities", s.listCities).Methods(http.MethodGet)
	v1.HandleFunc("/states/{state_id}/cities", s.createCity).Methods(http.MethodPost)
	v1.HandleFunc("/cities/{city_id}", s.getCity).Methods(http.MethodGet)
	v1.HandleFunc("/cities/{city_id}", s.updateCity).Methods(http.MethodPut)
	v1.HandleFunc("/cities/{city_id}", s.deleteCity).Methods(http.MethodDelete)

	v1.HandleFunc("/amenities", s.listAmenities).Methods(http.MethodGet)
	v1.HandleFunc("/amenities", s.createAmenity).Methods(http.MethodPost)
	v1.HandleFunc("/amenities/{amenity_id}", s.getAmenity).Methods(http.MethodGet)
	v1.HandleFunc("/amenities/{amenity_id}", s.updateAmenity).Methods(http.MethodPut)
	v1.HandleFunc("/amenities/{amenity_id}", s.deleteAmenity).Methods(http.MethodDelete)

	v1.HandleFunc("/users", s.listUsers).Methods(http.MethodGet)
	v1.HandleFunc("/users", s.createUser).Methods(http.MethodPost)
	v1.HandleFunc("/users/{user_id}", s.getUser).Methods(http.MethodGet)
	v1.HandleFunc("/users/{user_id}", s.updateUser).Methods(http.MethodPut)
	v1.HandleFunc("/users/{user_id}", s.deleteUser).Methods(http.MethodDelete)

	v1.HandleFunc("/cities/{city_id}/places", s.listPlaces).Methods(http.MethodGet)
	v1.HandleFunc("/cities/{city_id}/places", s.createPlace).Methods(http.MethodPost)
	v1.HandleFunc("/places/{place_id}", s.getPlace).Methods(http.MethodGet)
	v1.HandleFunc("/places/{place_id}", s.updatePlace).Methods(http.MethodPut)
	v1.HandleFunc("/places/{place_id}", s.deletePlace).Methods(http.MethodDelete)
	v1.HandleFunc("/places_search", s.searchPlaces).Methods(http.MethodPost)

	v1.HandleFunc("/places/{place_id}/reviews", s.listReviews).Methods(http.MethodGet)
	v1.HandleFunc("/places/{place_id}/reviews", s.createReview).Methods(http.MethodPost)
	v1.HandleFunc("/reviews/{review_id}", s.getReview).Methods(http.MethodGet)
	v1.HandleFunc("/reviews/{review_id}", s.updateReview).Methods(http.MethodPut)
	v1.HandleFunc("/reviews/{review_id}", s.deleteReview).Methods(http.MethodDelete)

	v1.HandleFunc("/places/{place_id}/amenities", s.listPlaceAmenities).Methods(http.MethodGet)
	v1.HandleFunc("/places/{place_id}/amenities/{amenity_id}", s.linkAmenity).Methods(http.MethodPost)
	v1.HandleFunc("/places/{place_id}/amenities/{amenity_id}", s.unlinkAmenity).Methods(http.MethodDelete)

	return r
}

func notFound(w http.ResponseWriter, _ *http.Request) {
	writeError(w, http.StatusNotFound, msgNotFound)
}

func methodNotAllowed(w http.ResponseWriter, _ *http.Request) {
	writeError(w, http.StatusMethodNotAllowed, msgMethodNotAllowed)
}
