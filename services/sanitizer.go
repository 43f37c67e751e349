package services

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"homicide-report/models"
	"homicide-report/utils"
)

const (
	// Plausible victim age window. Records outside it are discarded.
	minAge = 1
	maxAge = 100
)

// nonDigitRegexp strips everything but digits from a raw age string,
// the fallback for values like "34 years" or "approx. 34".
var nonDigitRegexp = regexp.MustCompile(`\D`)

// SanitizeStats records how many raw incidents were dropped and why.
type SanitizeStats struct {
	DroppedUnparseable int
	DroppedOutOfRange  int
}

// Sanitizer transforms RawIncidents into clean, validated Incidents.
type Sanitizer struct {
	logger *utils.Logger
}

// NewSanitizer creates a Sanitizer with the given logger.
func NewSanitizer(logger *utils.Logger) *Sanitizer {
	return &Sanitizer{logger: logger}
}

// Sanitize validates the age field of each raw incident and returns the
// surviving records in input order, together with drop counts. Records
// whose age is missing, unparseable or non-positive are counted under
// DroppedUnparseable; parseable ages outside [1,100] under
// DroppedOutOfRange. Nothing here is an error: malformed records are
// dropped locally and the pipeline carries on.
func (s *Sanitizer) Sanitize(raw []*models.RawIncident) ([]*models.Incident, SanitizeStats) {
	var stats SanitizeStats
	result := make([]*models.Incident, 0, len(raw))

	for _, r := range raw {
		age, ok := s.parseAge(r.RawAge)
		if !ok || age <= 0 {
			s.logger.Debug("[sanitizer] Dropping incident with unusable age %q: %s", r.RawAge, r.Name)
			stats.DroppedUnparseable++
			continue
		}
		if age < minAge || age > maxAge {
			s.logger.Debug("[sanitizer] Dropping incident with implausible age %d: %s", age, r.Name)
			stats.DroppedOutOfRange++
			continue
		}

		result = append(result, &models.Incident{
			Source:    r.Source,
			Name:      strings.TrimSpace(r.Name),
			Age:       age,
			Date:      strings.TrimSpace(r.Date),
			Address:   strings.TrimSpace(r.Address),
			Method:    normaliseMethod(r.Method),
			CCTV:      normaliseCCTV(r.CCTV),
			Closed:    normaliseClosed(r.Closed),
			URL:       strings.TrimSpace(r.URL),
			CreatedAt: time.Now(),
		})
	}

	s.logger.Info("[sanitizer] Cleaned %d → %d incidents (unparseable age: %d, out of range: %d)",
		len(raw), len(result), stats.DroppedUnparseable, stats.DroppedOutOfRange)
	return result, stats
}

// parseAge extracts an integer age from a raw string.
// Examples:
//   "34"        → 34
//   " 34 "      → 34
//   "34 years"  → 34 (digit-strip fallback)
//   "thirty"    → missing
//   ""          → missing
func (s *Sanitizer) parseAge(raw string) (int, bool) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return 0, false
	}

	if n, err := strconv.Atoi(trimmed); err == nil {
		return n, true
	}
	if f, err := strconv.ParseFloat(trimmed, 64); err == nil {
		return int(f), true
	}

	digits := nonDigitRegexp.ReplaceAllString(trimmed, "")
	if digits == "" {
		return 0, false
	}
	n, err := strconv.Atoi(digits)
	if err != nil {
		return 0, false
	}
	return n, true
}

// normaliseMethod lower-cases and collapses whitespace so that
// "Shooting" and "shooting " group together in the frequency table.
func normaliseMethod(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

func normaliseCCTV(s string) string {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "yes", "y", "true":
		return models.CCTVYes
	case "no", "n", "false":
		return models.CCTVNo
	default:
		return models.CCTVUnknown
	}
}

func normaliseClosed(s string) string {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "yes", "closed", "solved":
		return models.CaseClosed
	case "no", "open", "unsolved":
		return models.CaseOpen
	default:
		return models.CasePending
	}
}
