package httpserver

import (
	"net/http"

	httptransport "scribe/contexts/publishing/post-service/transport/http"
	authzv1 "scribe/contracts/gen/authz/v1"
)

func (s *Server) handleListPosts(w http.ResponseWriter, r *http.Request) {
	resp, err := s.posts.Handler.ListPostsHandler(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGetPost(w http.ResponseWriter, r *http.Request) {
	resp, err := s.posts.Handler.GetPostHandler(r.Context(), r.PathValue("id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleCreatePost(w http.ResponseWriter, r *http.Request, actor authzv1.Actor) {
	var req httptransport.CreatePostRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}
	resp, err := s.posts.Handler.CreatePostHandler(r.Context(), actor, req)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleUpdatePost(w http.ResponseWriter, r *http.Request, actor authzv1.Actor) {
	var req httptransport.UpdatePostRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}
	resp, err := s.posts.Handler.UpdatePostHandler(r.Context(), actor, r.PathValue("id"), req)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleDeletePost(w http.ResponseWriter, r *http.Request, actor authzv1.Actor) {
	resp, err := s.posts.Handler.DeletePostHandler(r.Context(), actor, r.PathValue("id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}
