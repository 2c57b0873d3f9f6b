package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const employeeColumns = `id, profile_id, full_name, short_bio, current_position, career_goal,
	linkedin_url, github_url, portfolio_url, city, country, profile_photo`

func scanEmployee(row pgx.Row) (*EmployeeProfile, error) {
	var e EmployeeProfile
	err := row.Scan(&e.ID, &e.ProfileID, &e.FullName, &e.ShortBio, &e.CurrentPosition, &e.CareerGoal,
		&e.LinkedInURL, &e.GitHubURL, &e.PortfolioURL, &e.City, &e.Country, &e.ProfilePhoto)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// GetEmployeeByProfile retrieves an employee profile by its owning profile ID.
// Returns nil if none exists.
func (db *DB) GetEmployeeByProfile(ctx context.Context, profileID uuid.UUID) (*EmployeeProfile, error) {
	e, err := scanEmployee(db.pool.QueryRow(ctx,
		`SELECT `+employeeColumns+` FROM employee_profiles WHERE profile_id = $1`,
		profileID,
	))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get employee profile: %w", err)
	}
	return e, nil
}

// GetEmployeeByID retrieves an employee profile by ID. Returns nil if none exists.
func (db *DB) GetEmployeeByID(ctx context.Context, id uuid.UUID) (*EmployeeProfile, error) {
	e, err := scanEmployee(db.pool.QueryRow(ctx,
		`SELECT `+employeeColumns+` FROM employee_profiles WHERE id = $1`,
		id,
	))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get employee profile: %w", err)
	}
	return e, nil
}

// UpsertEmployeeProfile creates or overwrites the employee profile for a profile ID.
func (db *DB) UpsertEmployeeProfile(ctx context.Context, e *EmployeeProfile) (*EmployeeProfile, error) {
	result, err := scanEmployee(db.pool.QueryRow(ctx,
		`INSERT INTO employee_profiles (profile_id, full_name, short_bio, current_position, career_goal,
		     linkedin_url, github_url, portfolio_url, city, country, profile_photo)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		 ON CONFLICT (profile_id) DO UPDATE SET
		     full_name = $2, short_bio = $3, current_position = $4, career_goal = $5,
		     linkedin_url = $6, github_url = $7, portfolio_url = $8, city = $9,
		     country = $10, profile_photo = $11
		 RETURNING `+employeeColumns,
		e.ProfileID, e.FullName, e.ShortBio, e.CurrentPosition, e.CareerGoal,
		e.LinkedInURL, e.GitHubURL, e.PortfolioURL, e.City, e.Country, e.ProfilePhoto,
	))
	if err != nil {
		return nil, fmt.Errorf("failed to upsert employee profile: %w", err)
	}
	return result, nil
}

const skillsColumns = `id, employee_profile_id, skill_tags, expertise_summary,
	years_of_experience, tech_stack, open_to_roles, availability`

func scanSkills(row pgx.Row) (*EmployeeSkills, error) {
	var s EmployeeSkills
	err := row.Scan(&s.ID, &s.EmployeeProfileID, &s.SkillTags, &s.ExpertiseSummary,
		&s.YearsOfExperience, &s.TechStack, &s.OpenToRoles, &s.Availability)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// GetSkillsByEmployee retrieves the skill sheet for an employee profile.
// Returns nil if the employee never filled one in.
func (db *DB) GetSkillsByEmployee(ctx context.Context, employeeProfileID uuid.UUID) (*EmployeeSkills, error) {
	s, err := scanSkills(db.pool.QueryRow(ctx,
		`SELECT `+skillsColumns+` FROM employee_skills WHERE employee_profile_id = $1`,
		employeeProfileID,
	))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get employee skills: %w", err)
	}
	return s, nil
}

// UpsertEmployeeSkills creates or overwrites the skill sheet for an employee profile.
func (db *DB) UpsertEmployeeSkills(ctx context.Context, s *EmployeeSkills) (*EmployeeSkills, error) {
	result, err := scanSkills(db.pool.QueryRow(ctx,
		`INSERT INTO employee_skills (employee_profile_id, skill_tags, expertise_summary,
		     years_of_experience, tech_stack, open_to_roles, availability)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 ON CONFLICT (employee_profile_id) DO UPDATE SET
		     skill_tags = $2, expertise_summary = $3, years_of_experience = $4,
		     tech_stack = $5, open_to_roles = $6, availability = $7
		 RETURNING `+skillsColumns,
		s.EmployeeProfileID, s.SkillTags, s.ExpertiseSummary,
		s.YearsOfExperience, s.TechStack, s.OpenToRoles, s.Availability,
	))
	if err != nil {
		return nil, fmt.Errorf("failed to upsert employee skills: %w", err)
	}
	return result, nil
}

// ListEmployeesWithSkills fetches every employee profile joined with its skill
// sheet. Like the startup pool, the full table lands in memory for the
// inference payload.
func (db *DB) ListEmployeesWithSkills(ctx context.Context) ([]EmployeeWithSkills, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT e.id, e.profile_id, e.full_name, e.short_bio, e.current_position, e.career_goal,
		        e.linkedin_url, e.github_url, e.portfolio_url, e.city, e.country, e.profile_photo,
		        s.id, s.employee_profile_id, s.skill_tags, s.expertise_summary,
		        s.years_of_experience, s.tech_stack, s.open_to_roles, s.availability
		 FROM employee_profiles e
		 LEFT JOIN employee_skills s ON s.employee_profile_id = e.id`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	defer rows.Close()

	var out []EmployeeWithSkills
	for rows.Next() {
		var e EmployeeProfile
		var sID, sEmployeeID *uuid.UUID
		var skillTags, techStack, openToRoles StringArray
		var expertise, availability *string
		var years *int
		err := rows.Scan(&e.ID, &e.ProfileID, &e.FullName, &e.ShortBio, &e.CurrentPosition, &e.CareerGoal,
			&e.LinkedInURL, &e.GitHubURL, &e.PortfolioURL, &e.City, &e.Country, &e.ProfilePhoto,
			&sID, &sEmployeeID, &skillTags, &expertise,
			&years, &techStack, &openToRoles, &availability)
		if err != nil {
			return nil, fmt.Errorf("failed to scan employee row: %w", err)
		}

		entry := EmployeeWithSkills{Profile: e}
		if sID != nil {
			entry.Skills = &EmployeeSkills{
				ID:                *sID,
				EmployeeProfileID: *sEmployeeID,
				SkillTags:         skillTags,
				ExpertiseSummary:  deref(expertise),
				YearsOfExperience: derefInt(years),
				TechStack:         techStack,
				OpenToRoles:       openToRoles,
				Availability:      deref(availability),
			}
		}
		out = append(out, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read employee rows: %w", err)
	}
	return out, nil
}

func derefInt(i *int) int {
	if i == nil {
		return 0
	}
	return *i
}
