package matching

import "strings"

// StructureMatchOutput folds one raw match result plus its looked-up detail
// bundle into the unified card shape. Pure function, no I/O.
//
// Branch selection follows which ID field the model populated: employee-shaped
// results need details.Profile, startup-shaped results need details.Startup.
// Anything else falls through to a defaulted, unverified card.
func StructureMatchOutput(result MatchResult, details Details) MatchCard {
	// Employee card
	if result.EmployeeID != "" && details.Profile != nil {
		p := details.Profile
		card := MatchCard{
			ID:                result.EmployeeID,
			Name:              p.FullName,
			Role:              firstNonEmpty(result.RecommendedRole, p.CurrentPosition, "employee"),
			MatchPercentage:   result.FitPercentage,
			Bio:               p.ShortBio,
			Skills:            []string{},
			Location:          joinLocation(p.City, p.Country),
			PreviousCompanies: []string{},
			Interests:         []string{},
			Reasoning:         result.Reasoning,
			Verified:          true,
			Avatar:            avatarInitials(p.FullName),
		}
		if s := details.Skills; s != nil {
			if s.SkillTags != nil {
				card.Skills = s.SkillTags
			}
			if s.OpenToRoles != nil {
				card.Interests = s.OpenToRoles
			}
		}
		return card
	}

	// Startup card
	if result.StartupID != "" && details.Startup != nil {
		s := details.Startup
		card := MatchCard{
			ID:                result.StartupID,
			Name:              s.StartupName,
			Role:              firstNonEmpty(result.SuggestedRole, "founder"),
			MatchPercentage:   result.FitPercentage,
			Bio:               firstNonEmpty(s.OneLinePitch, s.Description),
			Skills:            []string{},
			PreviousCompanies: []string{},
			Interests:         []string{},
			Reasoning:         result.Reasoning,
			Verified:          true,
			Avatar:            avatarInitials(s.StartupName),
		}
		if s.TechStack != nil {
			card.Skills = s.TechStack
		}
		if s.Industry != "" {
			card.Interests = []string{s.Industry}
		}
		if f := details.Founder; f != nil {
			card.Location = joinLocation(f.City, f.Country)
			card.Education = f.ExperienceBackground
		}
		return card
	}

	// Fallback: unknown shape or missing detail bundle
	return MatchCard{
		ID:                firstNonEmpty(result.EmployeeID, result.StartupID),
		MatchPercentage:   result.FitPercentage,
		Skills:            []string{},
		PreviousCompanies: []string{},
		Interests:         []string{},
		Reasoning:         result.Reasoning,
		Verified:          false,
		Avatar:            "??",
	}
}

// avatarInitials derives the up-to-2-letter uppercase initials of a name:
// "Sarah Chen" -> "SC", "Cher" -> "C", empty -> "??".
func avatarInitials(name string) string {
	tokens := strings.Fields(name)
	if len(tokens) == 0 {
		return "??"
	}

	var sb strings.Builder
	for _, token := range tokens {
		sb.WriteString(string([]rune(token)[:1]))
	}
	initials := strings.ToUpper(sb.String())
	runes := []rune(initials)
	if len(runes) > 2 {
		runes = runes[:2]
	}
	return string(runes)
}

// joinLocation joins city and country with ", ", dropping empty parts.
func joinLocation(city, country string) string {
	parts := make([]string, 0, 2)
	if city != "" {
		parts = append(parts, city)
	}
	if country != "" {
		parts = append(parts, country)
	}
	return strings.Join(parts, ", ")
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
