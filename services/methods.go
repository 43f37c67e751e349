package services

import (
	"sort"

	"homicide-report/models"
)

// AggregateMethods builds a frequency table over the incident method
// field. Incidents without method data are excluded entirely, from the
// percentages as well as the counts. Rows are ordered by count
// descending; ties keep the order the methods were first seen in the
// input. An empty table is a valid result, not an error.
func (s *ReportService) AggregateMethods(clean []*models.Incident) []models.FrequencyRow {
	counts := make(map[string]int)
	order := make([]string, 0)

	total := 0
	for _, inc := range clean {
		if inc.Method == "" {
			continue
		}
		if _, seen := counts[inc.Method]; !seen {
			order = append(order, inc.Method)
		}
		counts[inc.Method]++
		total++
	}

	if total == 0 {
		return nil
	}

	rows := make([]models.FrequencyRow, 0, len(order))
	for _, method := range order {
		rows = append(rows, models.FrequencyRow{
			Category: method,
			Count:    counts[method],
			Percent:  round1(float64(counts[method]) / float64(total) * 100),
		})
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Count > rows[j].Count
	})
	return rows
}
