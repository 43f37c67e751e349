package services

import (
	"errors"
	"testing"

	"homicide-report/models"
)

func incidentsWithAges(ages ...int) []*models.Incident {
	incidents := make([]*models.Incident, 0, len(ages))
	for _, a := range ages {
		incidents = append(incidents, &models.Incident{Age: a})
	}
	return incidents
}

func TestAggregateAgesEmpty(t *testing.T) {
	svc := NewReportService(newTestLogger())

	_, _, err := svc.AggregateAges(nil)
	if !errors.Is(err, ErrEmptyDataset) {
		t.Errorf("expected ErrEmptyDataset, got %v", err)
	}
}

func TestAgeBinPartition(t *testing.T) {
	// Every valid age maps to exactly one of the ten bins.
	for age := 1; age <= 100; age++ {
		bin := ageBinIndex(age)
		if bin < 0 || bin >= ageBinCount {
			t.Fatalf("ageBinIndex(%d) = %d, out of bounds", age, bin)
		}
	}
	if ageBinIndex(9) != 0 {
		t.Errorf("age 9 should fall in the first bin")
	}
	if ageBinIndex(10) != 1 {
		t.Errorf("age 10 should fall in the second bin")
	}
	if ageBinIndex(100) != 9 {
		t.Errorf("age 100 should fall in the last bin (closed upper bound)")
	}

	wantLabels := []string{
		"0-9", "10-19", "20-29", "30-39", "40-49",
		"50-59", "60-69", "70-79", "80-89", "90-100",
	}
	for i, want := range wantLabels {
		if got := ageBinLabel(i); got != want {
			t.Errorf("ageBinLabel(%d) = %q; want %q", i, got, want)
		}
	}
}

func TestAggregateAgesFrequencies(t *testing.T) {
	svc := NewReportService(newTestLogger())

	rows, stats, err := svc.AggregateAges(incidentsWithAges(25, 8, 25))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(rows) != 2 {
		t.Fatalf("expected 2 non-empty bins, got %d", len(rows))
	}
	if rows[0].Category != "0-9" || rows[0].Count != 1 || rows[0].Percent != 33.3 {
		t.Errorf("row 0 = %+v; want {0-9 1 33.3}", rows[0])
	}
	if rows[1].Category != "20-29" || rows[1].Count != 2 || rows[1].Percent != 66.7 {
		t.Errorf("row 1 = %+v; want {20-29 2 66.7}", rows[1])
	}

	if stats.Count != 3 {
		t.Errorf("Count = %d; want 3", stats.Count)
	}
	if stats.Mean != 19.3 {
		t.Errorf("Mean = %.1f; want 19.3", stats.Mean)
	}
	if stats.Median != 25 {
		t.Errorf("Median = %.1f; want 25", stats.Median)
	}
	if stats.Min != 8 || stats.Max != 25 {
		t.Errorf("Min/Max = %d/%d; want 8/25", stats.Min, stats.Max)
	}
}

func TestAggregateAgesCountsSumToTotal(t *testing.T) {
	svc := NewReportService(newTestLogger())

	ages := []int{1, 5, 12, 18, 25, 25, 33, 47, 52, 68, 71, 89, 90, 100}
	rows, _, err := svc.AggregateAges(incidentsWithAges(ages...))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	sum := 0
	for _, r := range rows {
		sum += r.Count
		if r.Percent < 0 || r.Percent > 100 {
			t.Errorf("percentage out of range: %+v", r)
		}
	}
	if sum != len(ages) {
		t.Errorf("bin counts sum to %d; want %d", sum, len(ages))
	}

	// Rows come back ordered by bin lower bound.
	wantOrder := []string{"0-9", "10-19", "20-29", "30-39", "40-49", "50-59", "60-69", "70-79", "80-89", "90-100"}
	for i, r := range rows {
		if r.Category != wantOrder[i] {
			t.Errorf("rows[%d].Category = %q; want %q", i, r.Category, wantOrder[i])
		}
	}
}

func TestAggregateAgesSingleRecord(t *testing.T) {
	svc := NewReportService(newTestLogger())

	rows, stats, err := svc.AggregateAges(incidentsWithAges(30))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rows) != 1 || rows[0].Category != "30-39" || rows[0].Percent != 100.0 {
		t.Errorf("rows = %+v; want single 30-39 row at 100%%", rows)
	}

	want := models.SummaryStats{Count: 1, Mean: 30, Median: 30, Min: 30, Max: 30, StdDev: 0}
	if *stats != want {
		t.Errorf("stats = %+v; want %+v", *stats, want)
	}
}

func TestAggregateAgesStdDev(t *testing.T) {
	svc := NewReportService(newTestLogger())

	// Sample standard deviation of {20, 30, 40} is 10.
	_, stats, err := svc.AggregateAges(incidentsWithAges(20, 30, 40))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stats.StdDev != 10.0 {
		t.Errorf("StdDev = %.1f; want 10.0", stats.StdDev)
	}
	if stats.Median != 30 {
		t.Errorf("Median = %.1f; want 30", stats.Median)
	}
}

func TestAggregateAgesEvenMedian(t *testing.T) {
	svc := NewReportService(newTestLogger())

	_, stats, err := svc.AggregateAges(incidentsWithAges(20, 25, 30, 40))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stats.Median != 27.5 {
		t.Errorf("Median = %.1f; want 27.5", stats.Median)
	}
}

func TestGenerateReport(t *testing.T) {
	svc := NewReportService(newTestLogger())

	clean := []*models.Incident{
		{Age: 25, Method: "stabbing"},
		{Age: 8},
		{Age: 25, Method: "stabbing"},
	}
	stats := SanitizeStats{DroppedUnparseable: 2}

	report, err := svc.Generate(5, clean, stats)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if report.TotalRaw != 5 || report.TotalClean != 3 {
		t.Errorf("totals = %d/%d; want 5/3", report.TotalRaw, report.TotalClean)
	}
	if report.DroppedUnparseable != 2 || report.DroppedOutOfRange != 0 {
		t.Errorf("drop counts = %d/%d; want 2/0", report.DroppedUnparseable, report.DroppedOutOfRange)
	}
	if len(report.AgeRows) != 2 {
		t.Errorf("expected 2 age rows, got %d", len(report.AgeRows))
	}
	if len(report.MethodRows) != 1 || report.MethodRows[0].Category != "stabbing" {
		t.Errorf("method rows = %+v; want single stabbing row", report.MethodRows)
	}
}

func TestGenerateReportEmpty(t *testing.T) {
	svc := NewReportService(newTestLogger())

	_, err := svc.Generate(4, nil, SanitizeStats{DroppedUnparseable: 4})
	if !errors.Is(err, ErrEmptyDataset) {
		t.Errorf("expected ErrEmptyDataset, got %v", err)
	}
}
