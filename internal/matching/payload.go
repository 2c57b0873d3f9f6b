package matching

import (
	"encoding/json"
	"fmt"

	"github.com/findyourco/cofounder-connect/internal/db"
	"github.com/findyourco/cofounder-connect/internal/enrich"
)

// The payload embeds the entire candidate pool verbatim, so inference cost
// and latency scale linearly with table size. No chunking or pre-filtering
// happens here.

type employeeEntry struct {
	db.EmployeeProfile
	Skills any `json:"skills"`
}

type founderPayload struct {
	Founder        any                 `json:"founder"`
	Startup        any                 `json:"startup"`
	StartupWebsite *enrich.SiteSummary `json:"startup_website,omitempty"`
	Employees      []employeeEntry     `json:"employees"`
}

type employeeSelf struct {
	Profile *db.EmployeeProfile `json:"profile"`
	Skills  *db.EmployeeSkills  `json:"skills"`
}

type startupEntry struct {
	Startup *db.StartupProfile `json:"startup"`
	Founder any                `json:"founder"`
}

type employeePayload struct {
	Employee employeeSelf   `json:"employee"`
	Startups []startupEntry `json:"startups"`
}

// emptyObject stands in for missing one-to-one rows so the model always sees
// an object, never null.
var emptyObject = map[string]any{}

// BuildFounderPayload assembles the founder-direction request body:
// {founder, startup, employees:[...]} with each employee's skills embedded
// (empty object when the employee has no skill sheet).
func BuildFounderPayload(founder *db.FounderProfile, startup *db.StartupProfile, site *enrich.SiteSummary, pool []db.EmployeeWithSkills) ([]byte, error) {
	payload := founderPayload{
		Founder:        emptyObject,
		Startup:        emptyObject,
		StartupWebsite: site,
		Employees:      make([]employeeEntry, 0, len(pool)),
	}
	if founder != nil {
		payload.Founder = founder
	}
	if startup != nil {
		payload.Startup = startup
	}

	for _, e := range pool {
		entry := employeeEntry{EmployeeProfile: e.Profile, Skills: emptyObject}
		if e.Skills != nil {
			entry.Skills = e.Skills
		}
		payload.Employees = append(payload.Employees, entry)
	}

	body, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal founder payload: %w", err)
	}
	return body, nil
}

// BuildEmployeePayload assembles the employee-direction request body:
// {employee:{profile,skills}, startups:[{startup,founder},...]} with each
// startup's founder embedded (empty object when the founder row is missing).
func BuildEmployeePayload(employee *db.EmployeeProfile, skills *db.EmployeeSkills, pool []db.StartupWithFounder) ([]byte, error) {
	payload := employeePayload{
		Employee: employeeSelf{Profile: employee, Skills: skills},
		Startups: make([]startupEntry, 0, len(pool)),
	}

	for i := range pool {
		entry := startupEntry{Startup: &pool[i].Startup, Founder: emptyObject}
		if pool[i].Founder != nil {
			entry.Founder = pool[i].Founder
		}
		payload.Startups = append(payload.Startups, entry)
	}

	body, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal employee payload: %w", err)
	}
	return body, nil
}
