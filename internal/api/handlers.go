package api

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mesh-intelligence/hbnb/internal/storage"
	"github.com/mesh-intelligence/hbnb/pkg/types"
)

// Keys a client may send but never sets on create.
var generatedFields = []string{"id", "created_at", "updated_at", types.ClassField}

// fetch loads the entity of kind named by the path variable. On failure the
// response has been written and ok is false.
func (s *Server) fetch(w http.ResponseWriter, r *http.Request, kind types.Kind, pathVar string) (types.Entity, bool) {
	e, err := storage.Get(s.engine, kind, mux.Vars(r)[pathVar])
	if err != nil {
		writeFailure(w, r, err)
		return nil, false
	}
	return e, true
}

// fetchAs is fetch for one concrete entity type.
func fetchAs[T types.Entity](s *Server, w http.ResponseWriter, r *http.Request, kind types.Kind, pathVar string) (T, bool) {
	var zero T
	e, ok := s.fetch(w, r, kind, pathVar)
	if !ok {
		return zero, false
	}
	v, ok := e.(T)
	if !ok {
		writeError(w, http.StatusNotFound, msgNotFound)
		return zero, false
	}
	return v, true
}

// exists reports whether an entity of kind with the given id exists. A 404
// has been written when it does not.
func (s *Server) exists(w http.ResponseWriter, r *http.Request, kind types.Kind, id any) bool {
	sid, _ := id.(string)
	if _, err := storage.Get(s.engine, kind, sid); err != nil {
		writeFailure(w, r, err)
		return false
	}
	return true
}

func (s *Server) list(kind types.Kind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		es, err := storage.List(s.engine, kind)
		if err != nil {
			writeFailure(w, r, err)
			return
		}
		writeEntities(w, es)
	}
}

func (s *Server) show(kind types.Kind, pathVar string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		e, ok := s.fetch(w, r, kind, pathVar)
		if !ok {
			return
		}
		writeEntity(w, http.StatusOK, e)
	}
}

func (s *Server) remove(kind types.Kind, pathVar string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		e, ok := s.fetch(w, r, kind, pathVar)
		if !ok {
			return
		}
		if err := storage.DeleteEntity(s.engine, e); err != nil {
			writeFailure(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{})
	}
}

// update overlays the request body onto the entity, skipping ignore, and
// saves it. A body that fails to decode leaves the entity unchanged.
func (s *Server) update(kind types.Kind, pathVar string, ignore ...string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		e, ok := s.fetch(w, r, kind, pathVar)
		if !ok {
			return
		}
		body, ok := readBody(w, r)
		if !ok {
			return
		}
		s.apply(w, r, e, body, ignore...)
	}
}

func (s *Server) apply(w http.ResponseWriter, r *http.Request, e types.Entity, body map[string]any, ignore ...string) {
	if err := types.Apply(e, body, ignore...); err != nil {
		writeInvalid(w, r, err)
		return
	}
	if err := storage.SaveEntity(s.engine, e); err != nil {
		writeFailure(w, r, err)
		return
	}
	writeEntity(w, http.StatusOK, e)
}

// create builds a new entity of kind from body, with the server-generated
// fields taken out, overrides applied on top, and saves it.
func (s *Server) create(w http.ResponseWriter, r *http.Request, kind types.Kind, body map[string]any, overrides map[string]any) {
	fields := make(map[string]any, len(body)+len(overrides))
	for k, v := range body {
		fields[k] = v
	}
	for _, k := range generatedFields {
		delete(fields, k)
	}
	for k, v := range overrides {
		fields[k] = v
	}
	e, err := types.New(kind, fields)
	if err != nil {
		writeInvalid(w, r, err)
		return
	}
	s.persistNew(w, r, e)
}

func (s *Server) persistNew(w http.ResponseWriter, r *http.Request, e types.Entity) {
	if err := storage.SaveEntity(s.engine, e); err != nil {
		s.engine.Delete(e)
		writeFailure(w, r, err)
		return
	}
	writeEntity(w, http.StatusCreated, e)
}
