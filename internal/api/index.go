package api

import (
	"net/http"

	"github.com/mesh-intelligence/hbnb/internal/storage"
	"github.com/mesh-intelligence/hbnb/pkg/types"
)

func (s *Server) status(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "OK"})
}

// stats reports the number of entities per resource name.
func (s *Server) stats(w http.ResponseWriter, r *http.Request) {
	counts := make(map[string]int, len(types.Kinds))
	for _, kind := range types.Kinds {
		n, err := storage.Count(s.engine, kind)
		if err != nil {
			writeFailure(w, r, err)
			return
		}
		counts[kind.Resource()] = n
	}
	writeJSON(w, http.StatusOK, counts)
}
