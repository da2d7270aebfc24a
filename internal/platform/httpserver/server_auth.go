package httpserver

import (
	"net/http"

	httptransport "scribe/contexts/identity-access/identity-service/transport/http"
)

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req httptransport.RegisterRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}
	resp, err := s.identity.Handler.RegisterHandler(r.Context(), req)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req httptransport.LoginRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}
	resp, err := s.identity.Handler.LoginHandler(r.Context(), req)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}
