package services

import (
	"fmt"
	"math"
	"strings"

	"homicide-report/models"
)

// barWidth is the length in runes of a full-scale histogram bar.
// Each table scales its bars against its own largest count.
const barWidth = 40

// renderTable renders a frequency table as fixed-width text: a header
// line, then per row the category label, right-justified count,
// percentage to one decimal and a bar proportional to the count.
func renderTable(label string, rows []models.FrequencyRow) string {
	var b strings.Builder

	fmt.Fprintf(&b, "  %-14s %6s %7s\n", label, "Count", "Pct")

	maxCount := 0
	for _, r := range rows {
		if r.Count > maxCount {
			maxCount = r.Count
		}
	}

	for _, r := range rows {
		bar := strings.Repeat("█", barLength(r.Count, maxCount))
		fmt.Fprintf(&b, "  %-14s %6d %6.1f%%  %s\n", truncate(r.Category, 14), r.Count, r.Percent, bar)
	}
	return b.String()
}

// barLength scales a count against the table maximum to at most
// barWidth runes. A zero-count row gets an empty bar.
func barLength(count, maxCount int) int {
	if maxCount <= 0 {
		return 0
	}
	return int(math.Round(float64(count) / float64(maxCount) * barWidth))
}

// renderSummary renders the descriptive statistics as labelled lines.
func renderSummary(s *models.SummaryStats) string {
	var b strings.Builder
	fmt.Fprintf(&b, "  Victims analysed   : %d\n", s.Count)
	fmt.Fprintf(&b, "  Mean age           : %.1f\n", s.Mean)
	fmt.Fprintf(&b, "  Median age         : %.1f\n", s.Median)
	fmt.Fprintf(&b, "  Youngest           : %d\n", s.Min)
	fmt.Fprintf(&b, "  Oldest             : %d\n", s.Max)
	fmt.Fprintf(&b, "  Std deviation      : %.1f\n", s.StdDev)
	return b.String()
}

// Print writes the full report to stdout.
func (s *ReportService) Print(r *models.DistributionReport) {
	sep := strings.Repeat("═", 68)
	thin := strings.Repeat("─", 68)

	fmt.Printf("\n\033[1;35m%s\033[0m\n", sep)
	fmt.Printf("\033[1;35m  📊 HOMICIDE VICTIM AGE DISTRIBUTION\033[0m\n")
	fmt.Printf("\033[1;35m%s\033[0m\n\n", sep)

	fmt.Printf("\033[1;33m  Dataset\033[0m\n")
	fmt.Printf("  %s\n", thin)
	fmt.Printf("  Raw incidents          : \033[1m%d\033[0m\n", r.TotalRaw)
	fmt.Printf("  Valid incidents        : \033[1m%d\033[0m\n", r.TotalClean)
	fmt.Printf("  Dropped (bad age)      : \033[1m%d\033[0m\n", r.DroppedUnparseable)
	fmt.Printf("  Dropped (out of range) : \033[1m%d\033[0m\n", r.DroppedOutOfRange)
	fmt.Println()

	fmt.Printf("\033[1;33m  Age Distribution\033[0m\n")
	fmt.Printf("  %s\n", thin)
	fmt.Print(renderTable("Age range", r.AgeRows))
	fmt.Println()

	fmt.Printf("\033[1;33m  Summary Statistics\033[0m\n")
	fmt.Printf("  %s\n", thin)
	fmt.Print(renderSummary(r.AgeStats))
	fmt.Println()

	fmt.Printf("\033[1;33m  Method of Killing\033[0m\n")
	fmt.Printf("  %s\n", thin)
	if len(r.MethodRows) == 0 {
		fmt.Printf("  No method data recorded\n")
	} else {
		fmt.Print(renderTable("Method", r.MethodRows))
	}

	fmt.Printf("\n\033[1;35m%s\033[0m\n\n", sep)
}

// PrintEmpty writes the no-data notice used when nothing survived
// sanitisation.
func (s *ReportService) PrintEmpty(stats SanitizeStats) {
	fmt.Printf("\n  No valid incident records to analyse ")
	fmt.Printf("(unparseable age: %d, out of range: %d)\n\n",
		stats.DroppedUnparseable, stats.DroppedOutOfRange)
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
