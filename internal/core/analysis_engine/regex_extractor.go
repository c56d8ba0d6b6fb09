package analysis_engine

import (
	"context"
	"regexp"
	"strings"
	"unicode"

	"github.com/resumepilot/resumepilot/internal/core"
	"github.com/resumepilot/resumepilot/internal/models"
)

var _ core.EntityExtractor = (*RegexExtractor)(nil)

var (
	emailPattern = regexp.MustCompile(`[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}`)
	phonePattern = regexp.MustCompile(`(\+\d{1,3}[\s.\-]?)?(\(\d{2,4}\)[\s.\-]?)?\d{2,4}[\s.\-]?\d{3,4}[\s.\-]?\d{3,4}`)
)

// How far into the document the name heuristic looks.
const nameScanLines = 10

// RegexExtractor is the deterministic fallback strategy. It works on any
// text with no external collaborator, so it can never be unavailable.
type RegexExtractor struct{}

func NewRegexExtractor() *RegexExtractor {
	return &RegexExtractor{}
}

// ValidateInput reports whether the text is worth extracting from. It gates
// the strategies without raising.
func ValidateInput(text string) bool {
	return strings.TrimSpace(text) != ""
}

func (e *RegexExtractor) ExtractEntities(_ context.Context, text string) (*models.ExtractedEntities, error) {
	entities := &models.ExtractedEntities{
		Method: models.MethodRegex,
		Skills: MatchSkills(text),
	}

	entities.Email = emailPattern.FindString(text)
	entities.Phone = strings.TrimSpace(phonePattern.FindString(text))
	entities.Name = pickName(text)

	entities.TotalFound = len(entities.Skills)
	if entities.Name != "" {
		entities.TotalFound++
	}
	if entities.Email != "" {
		entities.TotalFound++
	}
	if entities.Phone != "" {
		entities.TotalFound++
	}

	return entities, nil
}

// pickName returns the first capitalized two-token line near the document
// start that is not an email or phone line. Resume headers put the
// candidate's name there far more often than anything else.
func pickName(text string) string {
	lines := strings.Split(text, "\n")
	if len(lines) > nameScanLines {
		lines = lines[:nameScanLines]
	}

	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" || emailPattern.MatchString(line) || phonePattern.MatchString(line) {
			continue
		}
		tokens := strings.Fields(line)
		if len(tokens) != 2 {
			continue
		}
		if isCapitalizedWord(tokens[0]) && isCapitalizedWord(tokens[1]) {
			return line
		}
	}
	return ""
}

func isCapitalizedWord(s string) bool {
	runes := []rune(s)
	if len(runes) < 2 {
		return false
	}
	if !unicode.IsUpper(runes[0]) {
		return false
	}
	for _, r := range runes[1:] {
		if !unicode.IsLetter(r) && r != '-' && r != '\'' {
			return false
		}
	}
	return true
}
