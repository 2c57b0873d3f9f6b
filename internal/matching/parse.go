package matching

import (
	"encoding/json"
	"errors"
	"sort"
	"strings"
)

// ExtractArraySegment locates the candidate JSON array inside the model's
// free-text output: the substring from the first '[' to the last ']'
// inclusive. The heuristic tolerates leading and trailing prose but will
// mis-slice if independent array literals follow the real payload; schema
// validation downstream catches most of those cases.
func ExtractArraySegment(raw string) (string, error) {
	start := strings.Index(raw, "[")
	end := strings.LastIndex(raw, "]")
	if start < 0 || end < start {
		return "", errors.New("no JSON array found in output")
	}
	return raw[start : end+1], nil
}

// ParseMatchResponse turns the model's raw text output into a sorted match
// list. The extracted array segment is schema-validated for the direction
// before unmarshalling, so shape surprises surface as a ParseError carrying
// the offending text rather than as zero-valued records.
func ParseMatchResponse(direction Direction, raw string) ([]MatchResult, error) {
	segment, err := ExtractArraySegment(raw)
	if err != nil {
		return nil, &ParseError{Raw: raw, Err: err}
	}

	if err := ValidateMatchArray(direction, []byte(segment)); err != nil {
		return nil, &ParseError{Raw: raw, Err: err}
	}

	var results []MatchResult
	if err := json.Unmarshal([]byte(segment), &results); err != nil {
		return nil, &ParseError{Raw: raw, Err: err}
	}

	SortByFit(results)
	return results, nil
}

// SortByFit orders results by descending fitPercentage. The sort is stable:
// entries with equal scores keep the model's relative order.
func SortByFit(results []MatchResult) {
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].FitPercentage > results[j].FitPercentage
	})
}
