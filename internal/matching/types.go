// Package matching implements the AI match pipeline: it bundles the caller's
// profile with the full candidate pool, sends it to the inference model,
// defensively parses the response, and folds each scored result into a single
// display shape.
package matching

import (
	"github.com/findyourco/cofounder-connect/internal/db"
)

// Direction selects which way the pipeline matches.
type Direction string

// Matching directions. A profile's role gates which direction is legal.
const (
	FounderToEmployees Direction = "founder_to_employees"
	EmployeeToStartups Direction = "employee_to_startups"
)

// MatchResult is the raw, role-specific record parsed out of the model's
// response. Exactly one of the employee-shaped or startup-shaped ID fields is
// populated per entry; IDs stay strings because the model echoes them back
// and is not trusted to produce valid UUIDs.
type MatchResult struct {
	EmployeeID   string `json:"employeeId,omitempty"`
	EmployeeName string `json:"employeeName,omitempty"`

	StartupID   string `json:"startupId,omitempty"`
	StartupName string `json:"startupName,omitempty"`
	FounderID   string `json:"founderId,omitempty"`

	FitPercentage   float64 `json:"fitPercentage"`
	RecommendedRole string  `json:"recommendedRole,omitempty"`
	SuggestedRole   string  `json:"suggestedRole,omitempty"`
	Reasoning       string  `json:"reasoning,omitempty"`
}

// MatchCard is the unified display shape both MatchResult variants fold into.
type MatchCard struct {
	ID                string   `json:"id"`
	Name              string   `json:"name"`
	Role              string   `json:"role"`
	MatchPercentage   float64  `json:"matchPercentage"`
	Bio               string   `json:"bio"`
	Skills            []string `json:"skills"`
	Location          string   `json:"location"`
	Education         string   `json:"education"`
	PreviousCompanies []string `json:"previousCompanies"`
	Interests         []string `json:"interests"`
	Reasoning         string   `json:"reasoning"`
	Verified          bool     `json:"verified"`
	Avatar            string   `json:"avatar"`
}

// Details is the per-candidate detail bundle looked up after parsing. The
// employee fields are set for founder-direction results, the startup fields
// for employee-direction results. A failed lookup leaves fields nil; the
// normalizer then emits a fallback card instead of failing the batch.
type Details struct {
	Profile *db.EmployeeProfile
	Skills  *db.EmployeeSkills

	Startup *db.StartupProfile
	Founder *db.FounderProfile
}
