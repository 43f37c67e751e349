package services

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"homicide-report/models"
	"homicide-report/utils"
)

// ErrEmptyDataset signals that aggregation had nothing to aggregate.
// Callers should render a "no valid data" notice rather than abort.
var ErrEmptyDataset = errors.New("no valid incidents to analyse")

const ageBinCount = 10

// ReportService computes the age-distribution and method-frequency
// reports over a cleaned incident set.
type ReportService struct {
	logger *utils.Logger
}

// NewReportService creates a ReportService with the given logger.
func NewReportService(logger *utils.Logger) *ReportService {
	return &ReportService{logger: logger}
}

// Generate runs both aggregations and assembles the full report.
// Returns ErrEmptyDataset when no incident survived sanitisation.
func (s *ReportService) Generate(totalRaw int, clean []*models.Incident, stats SanitizeStats) (*models.DistributionReport, error) {
	ageRows, ageStats, err := s.AggregateAges(clean)
	if err != nil {
		return nil, err
	}

	return &models.DistributionReport{
		TotalRaw:           totalRaw,
		TotalClean:         len(clean),
		DroppedUnparseable: stats.DroppedUnparseable,
		DroppedOutOfRange:  stats.DroppedOutOfRange,
		AgeRows:            ageRows,
		AgeStats:           ageStats,
		MethodRows:         s.AggregateMethods(clean),
	}, nil
}

// AggregateAges bins the validated ages into ten fixed decade ranges and
// returns one FrequencyRow per non-empty bin (ordered by bin lower bound)
// plus summary statistics over the same ages.
func (s *ReportService) AggregateAges(clean []*models.Incident) ([]models.FrequencyRow, *models.SummaryStats, error) {
	if len(clean) == 0 {
		return nil, nil, ErrEmptyDataset
	}

	var counts [ageBinCount]int
	ages := make([]int, 0, len(clean))
	for _, inc := range clean {
		counts[ageBinIndex(inc.Age)]++
		ages = append(ages, inc.Age)
	}

	total := len(clean)
	rows := make([]models.FrequencyRow, 0, ageBinCount)
	for bin, count := range counts {
		if count == 0 {
			continue
		}
		rows = append(rows, models.FrequencyRow{
			Category: ageBinLabel(bin),
			Count:    count,
			Percent:  round1(float64(count) / float64(total) * 100),
		})
	}

	return rows, summarise(ages), nil
}

// ageBinIndex maps a valid age to its decade bin. Age 100 belongs to the
// last bin, which is closed on both ends.
func ageBinIndex(age int) int {
	if age >= 100 {
		return ageBinCount - 1
	}
	return age / 10
}

func ageBinLabel(bin int) string {
	if bin == ageBinCount-1 {
		return "90-100"
	}
	return fmt.Sprintf("%d-%d", bin*10, bin*10+9)
}

// summarise computes descriptive statistics over the age values.
// Standard deviation uses the n-1 divisor; a single observation is
// reported as 0 rather than NaN.
func summarise(ages []int) *models.SummaryStats {
	n := len(ages)

	sorted := make([]int, n)
	copy(sorted, ages)
	sort.Ints(sorted)

	var sum int
	for _, a := range ages {
		sum += a
	}
	mean := float64(sum) / float64(n)

	var median float64
	if n%2 == 1 {
		median = float64(sorted[n/2])
	} else {
		median = float64(sorted[n/2-1]+sorted[n/2]) / 2
	}

	stddev := 0.0
	if n > 1 {
		var sq float64
		for _, a := range ages {
			d := float64(a) - mean
			sq += d * d
		}
		stddev = math.Sqrt(sq / float64(n-1))
	}

	return &models.SummaryStats{
		Count:  n,
		Mean:   round1(mean),
		Median: round1(median),
		Min:    sorted[0],
		Max:    sorted[n-1],
		StdDev: round1(stddev),
	}
}

func round1(f float64) float64 {
	return math.Round(f*10) / 10
}
