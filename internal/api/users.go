package api

import (
	"net/http"
	"strings"

	"github.com/mesh-intelligence/hbnb/internal/storage"
	"github.com/mesh-intelligence/hbnb/pkg/types"
)

func (s *Server) listUsers(w http.ResponseWriter, r *http.Request) {
	s.list(types.KindUser)(w, r)
}

func (s *Server) getUser(w http.ResponseWriter, r *http.Request) {
	s.show(types.KindUser, varUser)(w, r)
}

func (s *Server) deleteUser(w http.ResponseWriter, r *http.Request) {
	s.remove(types.KindUser, varUser)(w, r)
}

// createUser hashes the submitted password before storing the user.
// Emails are unique, compared case-insensitively.
func (s *Server) createUser(w http.ResponseWriter, r *http.Request) {
	body, ok := readBody(w, r)
	if !ok || !requireFields(w, body, "email", "password") {
		return
	}
	email, _ := body["email"].(string)
	if email == "" {
		writeMissing(w, "email")
		return
	}
	password, _ := body["password"].(string)
	if password == "" {
		writeMissing(w, "password")
		return
	}

	taken, err := s.emailTaken(email)
	if err != nil {
		writeFailure(w, r, err)
		return
	}
	if taken {
		writeError(w, http.StatusConflict, msgEmailTaken)
		return
	}

	fields := make(map[string]any, len(body))
	for k, v := range body {
		fields[k] = v
	}
	for _, k := range generatedFields {
		delete(fields, k)
	}
	delete(fields, "password")
	e, err := types.New(types.KindUser, fields)
	if err != nil {
		writeInvalid(w, r, err)
		return
	}
	user := e.(*types.User)
	if err := user.SetPassword(password); err != nil {
		writeError(w, http.StatusBadRequest, msgInvalidPassword)
		return
	}
	s.persistNew(w, r, user)
}

// updateUser ignores email changes. A submitted password is hashed and
// applied together with the other fields.
func (s *Server) updateUser(w http.ResponseWriter, r *http.Request) {
	user, ok := fetchAs[*types.User](s, w, r, types.KindUser, varUser)
	if !ok {
		return
	}
	body, ok := readBody(w, r)
	if !ok {
		return
	}
	if raw, present := body["password"]; present {
		password, _ := raw.(string)
		hash, err := types.HashPassword(password)
		if err != nil {
			writeError(w, http.StatusBadRequest, msgInvalidPassword)
			return
		}
		body["password"] = hash
	}
	s.apply(w, r, user, body, "email")
}

func (s *Server) emailTaken(email string) (bool, error) {
	users, err := storage.List(s.engine, types.KindUser)
	if err != nil {
		return false, err
	}
	for _, e := range users {
		if strings.EqualFold(e.(*types.User).Email, email) {
			return true, nil
		}
	}
	return false, nil
}
