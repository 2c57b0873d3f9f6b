package server

import (
	"encoding/json"
	"net/http"

	"github.com/findyourco/cofounder-connect/internal/db"
	"github.com/findyourco/cofounder-connect/internal/server/middleware"
	"github.com/findyourco/cofounder-connect/internal/types"
)

// ---------------------------------------------------------------------
// Role selection and profile reads
// ---------------------------------------------------------------------

// handleSelectRole creates the caller's profile row. The role is fixed on
// first selection; repeating the call returns the existing row unchanged.
func (s *Server) handleSelectRole(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req types.SelectRoleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, extractValidationErrors(err))
		return
	}

	profile, err := s.store.CreateProfile(r.Context(), userID, req.Role)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, profile)
}

// handleGetMyProfile returns the caller's profile row plus whichever
// role-specific records exist.
func (s *Server) handleGetMyProfile(w http.ResponseWriter, r *http.Request) {
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
		err := &ErrNoProfile{}
		writeError(w, HTTPStatus(err), err.Error())
		return
	}

	out := map[string]any{"profile": profile}

	switch profile.Role {
	case db.RoleFounder:
		founder, err := s.store.GetFounderByProfile(r.Context(), profile.ID)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "Database error: "+err.Error())
			return
		}
		out["founder"] = founder
		if founder != nil {
			startup, err := s.store.GetStartupByFounder(r.Context(), founder.ID)
			if err != nil {
				writeError(w, http.StatusInternalServerError, "Database error: "+err.Error())
				return
			}
			out["startup"] = startup
		}
	case db.RoleEmployee:
		employee, err := s.store.GetEmployeeByProfile(r.Context(), profile.ID)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "Database error: "+err.Error())
			return
		}
		out["employee"] = employee
		if employee != nil {
			skills, err := s.store.GetSkillsByEmployee(r.Context(), employee.ID)
			if err != nil {
				writeError(w, http.StatusInternalServerError, "Database error: "+err.Error())
				return
			}
			out["skills"] = skills
		}
	}

	writeJSON(w, http.StatusOK, out)
}

// ---------------------------------------------------------------------
// Onboarding upserts
// ---------------------------------------------------------------------

// requireProfile loads the caller's profile and checks its role. Writes the
// error response itself and returns nil when the request cannot proceed.
func (s *Server) requireProfile(w http.ResponseWriter, r *http.Request, role string) *db.Profile {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return nil
	}

	profile, err := s.store.GetProfileByAuthUser(r.Context(), userID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return nil
	}
	if profile == nil {
		noProfile := &ErrNoProfile{}
		writeError(w, HTTPStatus(noProfile), noProfile.Error())
		return nil
	}
	if profile.Role != role {
		mismatch := &ErrRoleMismatch{Role: profile.Role}
		writeError(w, HTTPStatus(mismatch), mismatch.Error())
		return nil
	}
	return profile
}

func (s *Server) handleUpsertFounder(w http.ResponseWriter, r *http.Request) {
	profile := s.requireProfile(w, r, db.RoleFounder)
	if profile == nil {
		return
	}

	var req types.FounderProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, extractValidationErrors(err))
		return
	}

	founder, err := s.store.UpsertFounderProfile(r.Context(), &db.FounderProfile{
		ProfileID:            profile.ID,
		FullName:             req.FullName,
		ShortBio:             req.ShortBio,
		ExperienceBackground: req.ExperienceBackground,
		LinkedInURL:          req.LinkedInURL,
		City:                 req.City,
		Country:              req.Country,
		LookingFor:           req.LookingFor,
		ProfilePhoto:         req.ProfilePhoto,
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	writeJSON(w, http.StatusOK, founder)
}

func (s *Server) handleUpsertStartup(w http.ResponseWriter, r *http.Request) {
	profile := s.requireProfile(w, r, db.RoleFounder)
	if profile == nil {
		return
	}

	var req types.StartupProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, extractValidationErrors(err))
		return
	}

	// The startup hangs off the founder profile, which must exist first
	founder, err := s.store.GetFounderByProfile(r.Context(), profile.ID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if founder == nil {
		writeError(w, http.StatusPreconditionFailed, "founder profile must be created before the startup")
		return
	}

	startup, err := s.store.UpsertStartupProfile(r.Context(), &db.StartupProfile{
		FounderProfileID: founder.ID,
		StartupName:      req.StartupName,
		OneLinePitch:     req.OneLinePitch,
		Description:      req.Description,
		Industry:         req.Industry,
		Stage:            req.Stage,
		TechStack:        req.TechStack,
		WebsiteURL:       req.WebsiteURL,
		ProblemStatement: req.ProblemStatement,
		TargetMarket:     req.TargetMarket,
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	writeJSON(w, http.StatusOK, startup)
}

func (s *Server) handleUpsertEmployee(w http.ResponseWriter, r *http.Request) {
	profile := s.requireProfile(w, r, db.RoleEmployee)
	if profile == nil {
		return
	}

	var req types.EmployeeProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, extractValidationErrors(err))
		return
	}

	employee, err := s.store.UpsertEmployeeProfile(r.Context(), &db.EmployeeProfile{
		ProfileID:       profile.ID,
		FullName:        req.FullName,
		ShortBio:        req.ShortBio,
		CurrentPosition: req.CurrentPosition,
		CareerGoal:      req.CareerGoal,
		LinkedInURL:     req.LinkedInURL,
		GitHubURL:       req.GitHubURL,
		PortfolioURL:    req.PortfolioURL,
		City:            req.City,
		Country:         req.Country,
		ProfilePhoto:    req.ProfilePhoto,
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	writeJSON(w, http.StatusOK, employee)
}

func (s *Server) handleUpsertSkills(w http.ResponseWriter, r *http.Request) {
	profile := s.requireProfile(w, r, db.RoleEmployee)
	if profile == nil {
		return
	}

	var req types.EmployeeSkillsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, extractValidationErrors(err))
		return
	}

	// The skill sheet hangs off the employee profile, which must exist first
	employee, err := s.store.GetEmployeeByProfile(r.Context(), profile.ID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if employee == nil {
		writeError(w, http.StatusPreconditionFailed, "employee profile must be created before skills")
		return
	}

	skills, err := s.store.UpsertEmployeeSkills(r.Context(), &db.EmployeeSkills{
		EmployeeProfileID: employee.ID,
		SkillTags:         req.SkillTags,
		ExpertiseSummary:  req.ExpertiseSummary,
		YearsOfExperience: req.YearsOfExperience,
		TechStack:         req.TechStack,
		OpenToRoles:       req.OpenToRoles,
		Availability:      req.Availability,
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	writeJSON(w, http.StatusOK, skills)
}
