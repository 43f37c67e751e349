package sample

import (
	"fmt"
	"math/rand"
	"time"

	"homicide-report/models"
	"homicide-report/utils"
)

const source = "sample"

var methods = []string{
	"stabbing", "shooting", "blunt trauma", "strangulation", "", "arson",
}

var areas = []string{
	"Hackney", "Croydon", "Brent", "Tower Hamlets", "Southwark",
	"Newham", "Lambeth", "Haringey", "Enfield", "Greenwich",
}

var cctvValues = []string{"yes", "no", "unknown"}
var closedValues = []string{"yes", "no", "pending"}

// Generator produces synthetic raw incidents for runs where the live
// source is unavailable or deliberately skipped. The output deliberately
// includes malformed and implausible age values so the full pipeline is
// exercised.
type Generator struct {
	logger *utils.Logger
	rng    *rand.Rand
}

// New creates a Generator seeded from the clock.
func New(logger *utils.Logger) *Generator {
	return &Generator{
		logger: logger,
		rng:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// NewSeeded creates a Generator with a fixed seed, for reproducible runs.
func NewSeeded(logger *utils.Logger, seed int64) *Generator {
	return &Generator{
		logger: logger,
		rng:    rand.New(rand.NewSource(seed)),
	}
}

// Generate returns n synthetic raw incidents. Roughly one in eight has a
// dirty age value (empty, textual, suffixed or out of range).
func (g *Generator) Generate(n int) []*models.RawIncident {
	incidents := make([]*models.RawIncident, 0, n)

	for i := 0; i < n; i++ {
		age := g.ageValue(i)
		incidents = append(incidents, &models.RawIncident{
			Name:      fmt.Sprintf("Case %04d", i+1),
			RawAge:    age,
			Date:      g.dateValue(),
			Address:   areas[g.rng.Intn(len(areas))],
			Method:    methods[g.rng.Intn(len(methods))],
			CCTV:      cctvValues[g.rng.Intn(len(cctvValues))],
			Closed:    closedValues[g.rng.Intn(len(closedValues))],
			URL:       fmt.Sprintf("https://example.org/case/%d", i+1),
			Source:    source,
			ScrapedAt: time.Now(),
		})
	}

	g.logger.Info("[sample] Generated %d synthetic incidents", len(incidents))
	return incidents
}

func (g *Generator) ageValue(i int) string {
	// Every eighth record gets a dirty value.
	if i%8 == 7 {
		switch g.rng.Intn(4) {
		case 0:
			return ""
		case 1:
			return "unknown"
		case 2:
			return fmt.Sprintf("%d years", 18+g.rng.Intn(50))
		default:
			return fmt.Sprintf("%d", 101+g.rng.Intn(900))
		}
	}
	// Skewed towards young adults, like the real dataset.
	if g.rng.Intn(3) > 0 {
		return fmt.Sprintf("%d", 16+g.rng.Intn(30))
	}
	return fmt.Sprintf("%d", 1+g.rng.Intn(90))
}

func (g *Generator) dateValue() string {
	days := g.rng.Intn(365)
	return time.Now().AddDate(0, 0, -days).Format("2006-01-02")
}
