// Package types provides request and response shapes for the REST API.
package types

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// CreateUserRequest represents the request to register a new account.
type CreateUserRequest struct {
	Name     string `json:"name" validate:"required,min=1"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

// LoginRequest represents the login request.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// UpdatePasswordRequest changes the caller's password.
type UpdatePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=8"`
}

// User represents an account for API responses (password hash excluded).
type User struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// LoginResponse carries the account plus its bearer token.
type LoginResponse struct {
	User  *User  `json:"user"`
	Token string `json:"token"`
}

// SelectRoleRequest picks the caller's role at onboarding. The role cannot be
// changed once set.
type SelectRoleRequest struct {
	Role string `json:"role" validate:"required,oneof=founder employee"`
}

// FounderProfileRequest upserts the caller's founder profile.
type FounderProfileRequest struct {
	FullName             string `json:"full_name" validate:"required,min=1"`
	ShortBio             string `json:"short_bio"`
	ExperienceBackground string `json:"experience_background"`
	LinkedInURL          string `json:"linkedin_url" validate:"omitempty,url"`
	City                 string `json:"city"`
	Country              string `json:"country"`
	LookingFor           string `json:"looking_for"`
	ProfilePhoto         string `json:"profile_photo"`
}

// StartupProfileRequest upserts the caller's startup.
type StartupProfileRequest struct {
	StartupName      string   `json:"startup_name" validate:"required,min=1"`
	OneLinePitch     string   `json:"one_line_pitch"`
	Description      string   `json:"description"`
	Industry         string   `json:"industry"`
	Stage            string   `json:"stage"`
	TechStack        []string `json:"tech_stack"`
	WebsiteURL       string   `json:"website_url" validate:"omitempty,url"`
	ProblemStatement string   `json:"problem_statement"`
	TargetMarket     string   `json:"target_market"`
}

// EmployeeProfileRequest upserts the caller's employee profile.
type EmployeeProfileRequest struct {
	FullName        string `json:"full_name" validate:"required,min=1"`
	ShortBio        string `json:"short_bio"`
	CurrentPosition string `json:"current_position"`
	CareerGoal      string `json:"career_goal"`
	LinkedInURL     string `json:"linkedin_url" validate:"omitempty,url"`
	GitHubURL       string `json:"github_url" validate:"omitempty,url"`
	PortfolioURL    string `json:"portfolio_url" validate:"omitempty,url"`
	City            string `json:"city"`
	Country         string `json:"country"`
	ProfilePhoto    string `json:"profile_photo"`
}

// EmployeeSkillsRequest upserts the caller's skill sheet.
type EmployeeSkillsRequest struct {
	SkillTags         []string `json:"skill_tags"`
	ExpertiseSummary  string   `json:"expertise_summary"`
	YearsOfExperience int      `json:"years_of_experience" validate:"min=0"`
	TechStack         []string `json:"tech_stack"`
	OpenToRoles       []string `json:"open_to_roles"`
	Availability      string   `json:"availability"`
}

// CreatePostRequest appends a post to the feed.
type CreatePostRequest struct {
	PostContent  string   `json:"post_content" validate:"required,min=1"`
	Tags         []string `json:"tags"`
	FundingStage []string `json:"funding_stage"`
	Location     string   `json:"location"`
}

var validate = validator.New()

// Validate validates the CreateUserRequest using the validator.
func (r *CreateUserRequest) Validate() error { return validate.Struct(r) }

// Validate validates the LoginRequest using the validator.
func (r *LoginRequest) Validate() error { return validate.Struct(r) }

// Validate validates the UpdatePasswordRequest using the validator.
func (r *UpdatePasswordRequest) Validate() error { return validate.Struct(r) }

// Validate validates the SelectRoleRequest using the validator.
func (r *SelectRoleRequest) Validate() error { return validate.Struct(r) }

// Validate validates the FounderProfileRequest using the validator.
func (r *FounderProfileRequest) Validate() error { return validate.Struct(r) }

// Validate validates the StartupProfileRequest using the validator.
func (r *StartupProfileRequest) Validate() error { return validate.Struct(r) }

// Validate validates the EmployeeProfileRequest using the validator.
func (r *EmployeeProfileRequest) Validate() error { return validate.Struct(r) }

// Validate validates the EmployeeSkillsRequest using the validator.
func (r *EmployeeSkillsRequest) Validate() error { return validate.Struct(r) }

// Validate validates the CreatePostRequest using the validator.
func (r *CreatePostRequest) Validate() error { return validate.Struct(r) }
