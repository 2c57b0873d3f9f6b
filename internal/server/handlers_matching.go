package server

import (
	"log"
	"net/http"

	"github.com/findyourco/cofounder-connect/internal/db"
	"github.com/findyourco/cofounder-connect/internal/matching"
	"github.com/findyourco/cofounder-connect/internal/server/middleware"
)

// handleGetMatches runs the matching pipeline for the caller and returns
// ranked candidate cards. The direction depends on the caller's role:
// founders get employees, employees get startups.
//
// Pipeline failures (inference, parsing, missing pool data) are logged and
// collapsed into an empty list so the feed degrades instead of erroring.
func (s *Server) handleGetMatches(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	profile, err := s.store.GetProfileByAuthUser(r.Context(), userID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if profile == nil {
		noProfile := &ErrNoProfile{}
		writeError(w, HTTPStatus(noProfile), noProfile.Error())
		return
	}

	var cards []matching.MatchCard
	switch profile.Role {
	case db.RoleFounder:
		cards, err = s.matcher.FindEmployeesForFounder(r.Context(), userID)
	case db.RoleEmployee:
		cards, err = s.matcher.FindStartupsForEmployee(r.Context(), userID)
	default:
		mismatch := &ErrRoleMismatch{Role: profile.Role}
		writeError(w, HTTPStatus(mismatch), mismatch.Error())
		return
	}
	if err != nil {
		log.Printf("matching failed for user %s: %v", userID, err)
		cards = nil
	}
	if cards == nil {
		cards = []matching.MatchCard{}
	}

	writeJSON(w, http.StatusOK, cards)
}
