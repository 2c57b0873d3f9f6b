package matching

import (
	"context"
	"log"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/findyourco/cofounder-connect/internal/db"
	"github.com/findyourco/cofounder-connect/internal/enrich"
	"github.com/findyourco/cofounder-connect/internal/llm"
)

// defaultFanout caps concurrent per-candidate detail lookups.
const defaultFanout = 4

// Store is the read surface the pipeline needs from the database.
type Store interface {
	GetProfileByAuthUser(ctx context.Context, authUserID uuid.UUID) (*db.Profile, error)
	GetFounderByProfile(ctx context.Context, profileID uuid.UUID) (*db.FounderProfile, error)
	GetStartupByFounder(ctx context.Context, founderProfileID uuid.UUID) (*db.StartupProfile, error)
	GetEmployeeByProfile(ctx context.Context, profileID uuid.UUID) (*db.EmployeeProfile, error)
	GetSkillsByEmployee(ctx context.Context, employeeProfileID uuid.UUID) (*db.EmployeeSkills, error)
	ListEmployeesWithSkills(ctx context.Context) ([]db.EmployeeWithSkills, error)
	ListStartupsWithFounders(ctx context.Context) ([]db.StartupWithFounder, error)
	GetEmployeeByID(ctx context.Context, id uuid.UUID) (*db.EmployeeProfile, error)
	GetStartupByID(ctx context.Context, id uuid.UUID) (*db.StartupProfile, error)
	GetFounderByID(ctx context.Context, id uuid.UUID) (*db.FounderProfile, error)
}

// SiteEnricher summarizes a startup's website for the inference payload.
type SiteEnricher interface {
	Summarize(ctx context.Context, rawURL string) (*enrich.SiteSummary, error)
}

// Matcher runs the match pipeline for one caller at a time. It holds no
// per-request state; results live only for the duration of a call.
type Matcher struct {
	store    Store
	client   llm.Client
	enricher SiteEnricher
	fanout   int
}

// Option configures a Matcher.
type Option func(*Matcher)

// WithEnricher attaches a website enricher for founder-direction payloads.
func WithEnricher(e SiteEnricher) Option {
	return func(m *Matcher) { m.enricher = e }
}

// WithFanout overrides the detail-lookup concurrency cap.
func WithFanout(n int) Option {
	return func(m *Matcher) {
		if n > 0 {
			m.fanout = n
		}
	}
}

// New creates a Matcher.
func New(store Store, client llm.Client, opts ...Option) *Matcher {
	m := &Matcher{
		store:  store,
		client: client,
		fanout: defaultFanout,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// FindEmployeesForFounder matches a founder's startup against every employee
// in the pool. The caller must hold the founder role; any failure up to and
// including response parsing aborts the whole call.
func (m *Matcher) FindEmployeesForFounder(ctx context.Context, authUserID uuid.UUID) ([]MatchCard, error) {
	profile, err := m.store.GetProfileByAuthUser(ctx, authUserID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, ErrProfileNotFound
	}
	if profile.Role != db.RoleFounder {
		return nil, &WrongRoleError{Want: db.RoleFounder, Got: profile.Role}
	}

	founder, err := m.store.GetFounderByProfile(ctx, profile.ID)
	if err != nil {
		return nil, err
	}

	var startup *db.StartupProfile
	if founder != nil {
		startup, err = m.store.GetStartupByFounder(ctx, founder.ID)
		if err != nil {
			return nil, err
		}
	}

	site := m.summarizeWebsite(ctx, startup)

	pool, err := m.store.ListEmployeesWithSkills(ctx)
	if err != nil {
		return nil, err
	}

	payload, err := BuildFounderPayload(founder, startup, site, pool)
	if err != nil {
		return nil, err
	}

	results, err := m.infer(ctx, FounderToEmployees, payload)
	if err != nil {
		return nil, err
	}

	return m.assembleCards(ctx, results, m.lookupEmployeeDetails), nil
}

// FindStartupsForEmployee matches an employee against every startup in the
// pool. The caller must hold the employee role and have both a profile and a
// skill sheet on file.
func (m *Matcher) FindStartupsForEmployee(ctx context.Context, authUserID uuid.UUID) ([]MatchCard, error) {
	profile, err := m.store.GetProfileByAuthUser(ctx, authUserID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, ErrProfileNotFound
	}
	if profile.Role != db.RoleEmployee {
		return nil, &WrongRoleError{Want: db.RoleEmployee, Got: profile.Role}
	}

	employee, err := m.store.GetEmployeeByProfile(ctx, profile.ID)
	if err != nil {
		return nil, err
	}
	if employee == nil {
		return nil, ErrEmployeeNotFound
	}

	skills, err := m.store.GetSkillsByEmployee(ctx, employee.ID)
	if err != nil {
		return nil, err
	}
	if skills == nil {
		return nil, ErrSkillsNotFound
	}

	pool, err := m.store.ListStartupsWithFounders(ctx)
	if err != nil {
		return nil, err
	}

	payload, err := BuildEmployeePayload(employee, skills, pool)
	if err != nil {
		return nil, err
	}

	results, err := m.infer(ctx, EmployeeToStartups, payload)
	if err != nil {
		return nil, err
	}

	return m.assembleCards(ctx, results, m.lookupStartupDetails), nil
}

// infer runs one prompt through the model and parses the sorted match list.
func (m *Matcher) infer(ctx context.Context, direction Direction, payload []byte) ([]MatchResult, error) {
	raw, err := m.client.GenerateJSON(ctx, BuildPrompt(direction, payload))
	if err != nil {
		return nil, &InferenceError{Err: err}
	}
	return ParseMatchResponse(direction, raw)
}

// summarizeWebsite enriches the payload with the startup's landing page.
// Failures are non-fatal: matching proceeds on stored fields alone.
func (m *Matcher) summarizeWebsite(ctx context.Context, startup *db.StartupProfile) *enrich.SiteSummary {
	if m.enricher == nil || startup == nil || startup.WebsiteURL == "" {
		return nil
	}
	site, err := m.enricher.Summarize(ctx, startup.WebsiteURL)
	if err != nil {
		log.Printf("Website enrichment skipped for %s: %v", startup.WebsiteURL, err)
		return nil
	}
	return site
}

// assembleCards fans out per-candidate detail lookups with bounded
// concurrency and folds each result into a card. Results arrive sorted by fit
// score; writing by index keeps that order after parallel completion. A
// failed lookup degrades that one entry to a fallback card instead of
// failing the batch.
func (m *Matcher) assembleCards(ctx context.Context, results []MatchResult, lookup func(context.Context, MatchResult) Details) []MatchCard {
	cards := make([]MatchCard, len(results))

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(m.fanout)
	for i, result := range results {
		g.Go(func() error {
			cards[i] = StructureMatchOutput(result, lookup(gCtx, result))
			return nil
		})
	}
	// Lookups swallow their own errors, so Wait only reflects ctx cancellation.
	_ = g.Wait()

	return cards
}

func (m *Matcher) lookupEmployeeDetails(ctx context.Context, result MatchResult) Details {
	var details Details

	id, err := uuid.Parse(result.EmployeeID)
	if err != nil {
		return details
	}

	profile, err := m.store.GetEmployeeByID(ctx, id)
	if err != nil || profile == nil {
		return details
	}
	details.Profile = profile

	if skills, err := m.store.GetSkillsByEmployee(ctx, profile.ID); err == nil {
		details.Skills = skills
	}
	return details
}

func (m *Matcher) lookupStartupDetails(ctx context.Context, result MatchResult) Details {
	var details Details

	id, err := uuid.Parse(result.StartupID)
	if err != nil {
		return details
	}

	startup, err := m.store.GetStartupByID(ctx, id)
	if err != nil || startup == nil {
		return details
	}
	details.Startup = startup

	if founder, err := m.store.GetFounderByID(ctx, startup.FounderProfileID); err == nil {
		details.Founder = founder
	}
	return details
}
