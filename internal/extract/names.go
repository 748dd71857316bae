package extract

import (
	"regexp"
	"strings"
)

// combinedPattern targets intake cover sheets where the form labels
// "Patient Name" and "Patient Date of Birth" precede the actual values:
// the two capitalized words after the second label are the name pair.
var combinedPattern = regexp.MustCompile(
	`(?i:Patient Name)[^:]*?(?i:Patient Date of Birth)\s*([A-Z][a-z]+)\s+([A-Z][a-z]+)`)

// reservedCombined filters form words that the combined pattern's loose
// capture would otherwise mistake for names.
var reservedCombined = map[string]struct{}{
	"patient": {}, "name": {}, "first": {}, "last": {},
	"given": {}, "surname": {}, "and": {}, "address": {},
}

// reservedFallback is the narrower filter applied to fallback candidates.
var reservedFallback = map[string]struct{}{
	"patient": {}, "name": {}, "first": {}, "last": {},
	"given": {}, "surname": {},
}

// Fallback rules, tried strictly in order; each rule gets one search and a
// rejected candidate moves on to the next rule, not the next occurrence.
// The bare two-capitalized-words rule is last because it is the loosest.
var firstNameRules = []*regexp.Regexp{
	regexp.MustCompile(`(?i:Name)[:\s]*([A-Za-z]+)\s+[A-Za-z]+`),
	regexp.MustCompile(`(?i:First Name)[:\s]*([A-Za-z]+)`),
	regexp.MustCompile(`(?i:Given Name)[:\s]*([A-Za-z]+)`),
	regexp.MustCompile(`(?i:Patient First Name)[:\s]*([A-Za-z]+)`),
	regexp.MustCompile(`(?i:First)[:\s]*([A-Za-z]+)`),
	regexp.MustCompile(`(?i:F\.?Name)[:\s]*([A-Za-z]+)`),
	regexp.MustCompile(`(?i:Patient)[:\s]*([A-Za-z]+)\s+[A-Za-z]+`),
	regexp.MustCompile(`([A-Z][a-z]+)\s+[A-Z][a-z]+`),
}

var lastNameRules = []*regexp.Regexp{
	regexp.MustCompile(`(?i:Name)[:\s]*[A-Za-z]+\s+([A-Za-z]+)`),
	regexp.MustCompile(`(?i:Last Name)[:\s]*([A-Za-z]+)`),
	regexp.MustCompile(`(?i:Surname)[:\s]*([A-Za-z]+)`),
	regexp.MustCompile(`(?i:Patient Last Name)[:\s]*([A-Za-z]+)`),
	regexp.MustCompile(`(?i:Last)[:\s]*([A-Za-z]+)`),
	regexp.MustCompile(`(?i:L\.?Name)[:\s]*([A-Za-z]+)`),
	regexp.MustCompile(`(?i:Patient)[:\s]*[A-Za-z]+\s+([A-Za-z]+)`),
	regexp.MustCompile(`[A-Z][a-z]+\s+([A-Z][a-z]+)`),
}

// ExtractFirstName finds a first-name candidate in free text.
// Returns ErrNotFound when no rule yields an accepted candidate.
func ExtractFirstName(text string) (string, error) {
	if first, _, ok := matchCombined(text); ok {
		return first, nil
	}
	return extractName(text, firstNameRules)
}

// ExtractLastName finds a last-name candidate in free text.
func ExtractLastName(text string) (string, error) {
	if _, last, ok := matchCombined(text); ok {
		return last, nil
	}
	return extractName(text, lastNameRules)
}

// matchCombined applies the combined pattern. The pair is accepted only
// when neither candidate is a reserved form word.
func matchCombined(text string) (first, last string, ok bool) {
	m := combinedPattern.FindStringSubmatch(text)
	if m == nil {
		return "", "", false
	}
	first = strings.TrimSpace(m[1])
	last = strings.TrimSpace(m[2])
	if isReserved(first, reservedCombined) || isReserved(last, reservedCombined) {
		return "", "", false
	}
	return first, last, true
}

func extractName(text string, rules []*regexp.Regexp) (string, error) {
	for _, re := range rules {
		m := re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		name := strings.TrimSpace(m[1])
		if isReserved(name, reservedFallback) {
			continue
		}
		return name, nil
	}
	return "", ErrNotFound
}

func isReserved(word string, set map[string]struct{}) bool {
	_, ok := set[strings.ToLower(word)]
	return ok
}
