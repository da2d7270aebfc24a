package httpserver

import (
	"net/http"

	authzv1 "scribe/contracts/gen/authz/v1"
)

func (s *Server) handleListUsers(w http.ResponseWriter, r *http.Request, actor authzv1.Actor) {
	resp, err := s.identity.Handler.ListUsersHandler(r.Context(), actor)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGetUser(w http.ResponseWriter, r *http.Request, actor authzv1.Actor) {
	resp, err := s.identity.Handler.GetUserHandler(r.Context(), actor, r.PathValue("id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// handleDeleteUser removes the account. Its posts go with it through the
// storage cascade, or through the memory store when that driver is active.
func (s *Server) handleDeleteUser(w http.ResponseWriter, r *http.Request, actor authzv1.Actor) {
	userID := r.PathValue("id")
	resp, err := s.identity.Handler.DeleteUserHandler(r.Context(), actor, userID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if s.posts.Store != nil {
		if _, err := s.posts.Store.DeletePostsByAuthor(r.Context(), userID); err != nil {
			s.writeError(w, r, err)
			return
		}
	}
	writeJSON(w, http.StatusOK, resp)
}
