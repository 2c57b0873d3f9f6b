package server

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"github.com/findyourco/cofounder-connect/internal/db"
	"github.com/findyourco/cofounder-connect/internal/server/middleware"
	"github.com/findyourco/cofounder-connect/internal/types"
)

// handleCreatePost appends a post to the community feed.
func (s *Server) handleCreatePost(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req types.CreatePostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, extractValidationErrors(err))
		return
	}

	post, err := s.store.CreatePost(r.Context(), &db.Post{
		UserID:       userID,
		PostContent:  req.PostContent,
		Tags:         req.Tags,
		FundingStage: req.FundingStage,
		Location:     req.Location,
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, post)
}

// handleListPosts returns the feed, newest first. ?mine=true narrows it to
// the caller's own posts; ?limit caps the page size.
func (s *Server) handleListPosts(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var filter *uuid.UUID
	if r.URL.Query().Get("mine") == "true" {
		filter = &userID
	}

	limit := 50
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 || n > 200 {
			writeError(w, http.StatusBadRequest, "limit must be between 1 and 200")
			return
		}
		limit = n
	}

	posts, err := s.store.ListPosts(r.Context(), filter, limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if posts == nil {
		posts = []db.Post{}
	}

	writeJSON(w, http.StatusOK, posts)
}
