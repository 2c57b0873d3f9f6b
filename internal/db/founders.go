package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const founderColumns = `id, profile_id, full_name, short_bio, experience_background,
	linkedin_url, city, country, looking_for, profile_photo`

func scanFounder(row pgx.Row) (*FounderProfile, error) {
	var f FounderProfile
	err := row.Scan(&f.ID, &f.ProfileID, &f.FullName, &f.ShortBio, &f.ExperienceBackground,
		&f.LinkedInURL, &f.City, &f.Country, &f.LookingFor, &f.ProfilePhoto)
	if err != nil {
		return nil, err
	}
	return &f, nil
}

// GetFounderByProfile retrieves a founder profile by its owning profile ID.
// Returns nil if none exists.
func (db *DB) GetFounderByProfile(ctx context.Context, profileID uuid.UUID) (*FounderProfile, error) {
	f, err := scanFounder(db.pool.QueryRow(ctx,
		`SELECT `+founderColumns+` FROM founder_profiles WHERE profile_id = $1`,
		profileID,
	))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get founder profile: %w", err)
	}
	return f, nil
}

// GetFounderByID retrieves a founder profile by its own ID. Returns nil if none exists.
func (db *DB) GetFounderByID(ctx context.Context, id uuid.UUID) (*FounderProfile, error) {
	f, err := scanFounder(db.pool.QueryRow(ctx,
		`SELECT `+founderColumns+` FROM founder_profiles WHERE id = $1`,
		id,
	))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get founder profile: %w", err)
	}
	return f, nil
}

// UpsertFounderProfile creates or overwrites the founder profile for a profile ID.
// Re-onboarding overwrites the previous row; there is no deletion path.
func (db *DB) UpsertFounderProfile(ctx context.Context, f *FounderProfile) (*FounderProfile, error) {
	result, err := scanFounder(db.pool.QueryRow(ctx,
		`INSERT INTO founder_profiles (profile_id, full_name, short_bio, experience_background,
		     linkedin_url, city, country, looking_for, profile_photo)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		 ON CONFLICT (profile_id) DO UPDATE SET
		     full_name = $2, short_bio = $3, experience_background = $4,
		     linkedin_url = $5, city = $6, country = $7, looking_for = $8, profile_photo = $9
		 RETURNING `+founderColumns,
		f.ProfileID, f.FullName, f.ShortBio, f.ExperienceBackground,
		f.LinkedInURL, f.City, f.Country, f.LookingFor, f.ProfilePhoto,
	))
	if err != nil {
		return nil, fmt.Errorf("failed to upsert founder profile: %w", err)
	}
	return result, nil
}

const startupColumns = `id, founder_profile_id, startup_name, one_line_pitch, description,
	industry, stage, tech_stack, website_url, problem_statement, target_market`

func scanStartup(row pgx.Row) (*StartupProfile, error) {
	var s StartupProfile
	err := row.Scan(&s.ID, &s.FounderProfileID, &s.StartupName, &s.OneLinePitch, &s.Description,
		&s.Industry, &s.Stage, &s.TechStack, &s.WebsiteURL, &s.ProblemStatement, &s.TargetMarket)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// GetStartupByFounder retrieves the startup attached to a founder profile.
// Returns nil if the founder has no startup yet.
func (db *DB) GetStartupByFounder(ctx context.Context, founderProfileID uuid.UUID) (*StartupProfile, error) {
	s, err := scanStartup(db.pool.QueryRow(ctx,
		`SELECT `+startupColumns+` FROM startup_profiles WHERE founder_profile_id = $1`,
		founderProfileID,
	))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get startup profile: %w", err)
	}
	return s, nil
}

// GetStartupByID retrieves a startup profile by ID. Returns nil if none exists.
func (db *DB) GetStartupByID(ctx context.Context, id uuid.UUID) (*StartupProfile, error) {
	s, err := scanStartup(db.pool.QueryRow(ctx,
		`SELECT `+startupColumns+` FROM startup_profiles WHERE id = $1`,
		id,
	))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get startup profile: %w", err)
	}
	return s, nil
}

// UpsertStartupProfile creates or overwrites the startup for a founder profile.
func (db *DB) UpsertStartupProfile(ctx context.Context, s *StartupProfile) (*StartupProfile, error) {
	result, err := scanStartup(db.pool.QueryRow(ctx,
		`INSERT INTO startup_profiles (founder_profile_id, startup_name, one_line_pitch, description,
		     industry, stage, tech_stack, website_url, problem_statement, target_market)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		 ON CONFLICT (founder_profile_id) DO UPDATE SET
		     startup_name = $2, one_line_pitch = $3, description = $4, industry = $5,
		     stage = $6, tech_stack = $7, website_url = $8, problem_statement = $9, target_market = $10
		 RETURNING `+startupColumns,
		s.FounderProfileID, s.StartupName, s.OneLinePitch, s.Description,
		s.Industry, s.Stage, s.TechStack, s.WebsiteURL, s.ProblemStatement, s.TargetMarket,
	))
	if err != nil {
		return nil, fmt.Errorf("failed to upsert startup profile: %w", err)
	}
	return result, nil
}

// ListStartupsWithFounders fetches every startup joined with its founder
// profile. The whole table is pulled into memory: the matching pipeline embeds
// the full candidate pool in the inference payload without pagination.
func (db *DB) ListStartupsWithFounders(ctx context.Context) ([]StartupWithFounder, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT s.id, s.founder_profile_id, s.startup_name, s.one_line_pitch, s.description,
		        s.industry, s.stage, s.tech_stack, s.website_url, s.problem_statement, s.target_market,
		        f.id, f.profile_id, f.full_name, f.short_bio, f.experience_background,
		        f.linkedin_url, f.city, f.country, f.looking_for, f.profile_photo
		 FROM startup_profiles s
		 LEFT JOIN founder_profiles f ON f.id = s.founder_profile_id`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list startups: %w", err)
	}
	defer rows.Close()

	var out []StartupWithFounder
	for rows.Next() {
		var s StartupProfile
		var fID, fProfileID *uuid.UUID
		var fullName, shortBio, background, linkedin, city, country, lookingFor, photo *string
		err := rows.Scan(&s.ID, &s.FounderProfileID, &s.StartupName, &s.OneLinePitch, &s.Description,
			&s.Industry, &s.Stage, &s.TechStack, &s.WebsiteURL, &s.ProblemStatement, &s.TargetMarket,
			&fID, &fProfileID, &fullName, &shortBio, &background,
			&linkedin, &city, &country, &lookingFor, &photo)
		if err != nil {
			return nil, fmt.Errorf("failed to scan startup row: %w", err)
		}

		entry := StartupWithFounder{Startup: s}
		if fID != nil {
			entry.Founder = &FounderProfile{
				ID:                   *fID,
				ProfileID:            *fProfileID,
				FullName:             deref(fullName),
				ShortBio:             deref(shortBio),
				ExperienceBackground: deref(background),
				LinkedInURL:          deref(linkedin),
				City:                 deref(city),
				Country:              deref(country),
				LookingFor:           deref(lookingFor),
				ProfilePhoto:         deref(photo),
			}
		}
		out = append(out, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read startup rows: %w", err)
	}
	return out, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
