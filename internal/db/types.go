package db

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
)

// Role values stored on a profile row. A profile's role is fixed at
// role-selection time and never changes afterwards.
const (
	RoleFounder  = "founder"
	RoleEmployee = "employee"
)

// User represents an authenticated identity (email + password login).
type User struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-" db:"password_hash"` // Never serialize to JSON
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Profile links an authenticated user to a role. One profile per identity.
type Profile struct {
	ID         uuid.UUID `json:"id"`
	AuthUserID uuid.UUID `json:"auth_user_id"`
	Role       string    `json:"role"` // founder | employee
	CreatedAt  time.Time `json:"created_at"`
}

// FounderProfile holds a founder's public profile. One-to-one with a
// founder-role Profile.
type FounderProfile struct {
	ID                   uuid.UUID `json:"id"`
	ProfileID            uuid.UUID `json:"profile_id"`
	FullName             string    `json:"full_name"`
	ShortBio             string    `json:"short_bio,omitempty"`
	ExperienceBackground string    `json:"experience_background,omitempty"`
	LinkedInURL          string    `json:"linkedin_url,omitempty"`
	City                 string    `json:"city,omitempty"`
	Country              string    `json:"country,omitempty"`
	LookingFor           string    `json:"looking_for,omitempty"`
	ProfilePhoto         string    `json:"profile_photo,omitempty"`
}

// StartupProfile describes the (at most one) startup attached to a founder.
type StartupProfile struct {
	ID               uuid.UUID   `json:"id"`
	FounderProfileID uuid.UUID   `json:"founder_profile_id"`
	StartupName      string      `json:"startup_name"`
	OneLinePitch     string      `json:"one_line_pitch,omitempty"`
	Description      string      `json:"description,omitempty"`
	Industry         string      `json:"industry,omitempty"`
	Stage            string      `json:"stage,omitempty"`
	TechStack        StringArray `json:"tech_stack"`
	WebsiteURL       string      `json:"website_url,omitempty"`
	ProblemStatement string      `json:"problem_statement,omitempty"`
	TargetMarket     string      `json:"target_market,omitempty"`
}

// EmployeeProfile holds a candidate's public profile. One-to-one with an
// employee-role Profile.
type EmployeeProfile struct {
	ID              uuid.UUID `json:"id"`
	ProfileID       uuid.UUID `json:"profile_id"`
	FullName        string    `json:"full_name"`
	ShortBio        string    `json:"short_bio,omitempty"`
	CurrentPosition string    `json:"current_position,omitempty"`
	CareerGoal      string    `json:"career_goal,omitempty"`
	LinkedInURL     string    `json:"linkedin_url,omitempty"`
	GitHubURL       string    `json:"github_url,omitempty"`
	PortfolioURL    string    `json:"portfolio_url,omitempty"`
	City            string    `json:"city,omitempty"`
	Country         string    `json:"country,omitempty"`
	ProfilePhoto    string    `json:"profile_photo,omitempty"`
}

// EmployeeSkills holds a candidate's skill sheet. One-to-one with EmployeeProfile.
type EmployeeSkills struct {
	ID                uuid.UUID   `json:"id"`
	EmployeeProfileID uuid.UUID   `json:"employee_profile_id"`
	SkillTags         StringArray `json:"skill_tags"`
	ExpertiseSummary  string      `json:"expertise_summary,omitempty"`
	YearsOfExperience int         `json:"years_of_experience,omitempty"`
	TechStack         StringArray `json:"tech_stack"`
	OpenToRoles       StringArray `json:"open_to_roles"`
	Availability      string      `json:"availability,omitempty"`
}

// Post is a feed entry. Posts are append-only: there is no edit or delete path.
type Post struct {
	ID           uuid.UUID   `json:"id"`
	UserID       uuid.UUID   `json:"user_id"`
	PostContent  string      `json:"post_content"`
	Tags         StringArray `json:"tags"`
	FundingStage StringArray `json:"funding_stage"`
	Location     string      `json:"location,omitempty"`
	CreatedAt    time.Time   `json:"created_at"`
}

// EmployeeWithSkills pairs an employee profile with its skill sheet for the
// candidate pool. Skills is nil when the employee never filled one in.
type EmployeeWithSkills struct {
	Profile EmployeeProfile
	Skills  *EmployeeSkills
}

// StartupWithFounder pairs a startup with its founder for the candidate pool.
type StartupWithFounder struct {
	Startup StartupProfile
	Founder *FounderProfile
}

// StringArray handles JSONB string arrays
type StringArray []string

// Scan implements the Scanner interface for StringArray
func (a *StringArray) Scan(src interface{}) error {
	if src == nil {
		*a = []string{}
		return nil
	}
	source, ok := src.([]byte)
	if !ok {
		return errors.New("type assertion .([]byte) failed")
	}
	return json.Unmarshal(source, a)
}

// Value implements the Valuer interface for StringArray
func (a StringArray) Value() (driver.Value, error) {
	if a == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(a)
}
