package extract

import (
	"regexp"
	"time"
)

// dateFormats are tried in order; the first successful parse wins. The
// non-padded layouts accept both "06/15/1985" and "6/15/1985". The
// two-digit-year layouts follow Go's time.Parse pivot: 69-99 resolve to
// 19xx and 00-68 to 20xx, so "12/31/68" is 2068 and "01/01/69" is 1969.
var dateFormats = []string{
	"1/2/2006",
	"1/2/06",
	"1-2-2006",
	"1-2-06",
	"2006-01-02",
}

// ParseDate normalizes a date substring already isolated by the caller.
// Returns ErrNotFound when no supported format matches. Calendar validity
// is the only bound; future dates and implausible ages are accepted.
func ParseDate(candidate string) (time.Time, error) {
	for _, layout := range dateFormats {
		if t, err := time.Parse(layout, candidate); err == nil {
			return t, nil
		}
	}
	return time.Time{}, ErrNotFound
}

// dobPatterns isolate a date-of-birth candidate from free text, most
// specific label first. Each pattern gets one search; an unparseable
// candidate falls through to the next pattern.
var dobPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)Date of Birth[:\s]*(\d{1,2}[/-]\d{1,2}[/-]\d{2,4})`),
	regexp.MustCompile(`(?i)DOB[:\s]*(\d{1,2}[/-]\d{1,2}[/-]\d{2,4})`),
	regexp.MustCompile(`(?i)Birth Date[:\s]*(\d{1,2}[/-]\d{1,2}[/-]\d{2,4})`),
	regexp.MustCompile(`(?i)Born[:\s]*(\d{1,2}[/-]\d{1,2}[/-]\d{2,4})`),
	regexp.MustCompile(`(?i)Birth[:\s]*(\d{1,2}[/-]\d{1,2}[/-]\d{2,4})`),
	regexp.MustCompile(`(\d{1,2}[/-]\d{1,2}[/-]\d{2,4})`),
	regexp.MustCompile(`(\d{4}-\d{2}-\d{2})`),
}

// ExtractDateOfBirth finds and parses a date of birth in free text.
func ExtractDateOfBirth(text string) (time.Time, error) {
	for _, re := range dobPatterns {
		m := re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		if t, err := ParseDate(m[1]); err == nil {
			return t, nil
		}
	}
	return time.Time{}, ErrNotFound
}
