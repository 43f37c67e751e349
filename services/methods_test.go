package services

import (
	"testing"

	"homicide-report/models"
)

func incidentsWithMethods(methods ...string) []*models.Incident {
	incidents := make([]*models.Incident, 0, len(methods))
	for _, m := range methods {
		incidents = append(incidents, &models.Incident{Age: 30, Method: m})
	}
	return incidents
}

func TestAggregateMethodsOrdering(t *testing.T) {
	svc := NewReportService(newTestLogger())

	rows := svc.AggregateMethods(incidentsWithMethods("A", "B", "A", "C", "B", "A"))
	if len(rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(rows))
	}

	want := []models.FrequencyRow{
		{Category: "A", Count: 3, Percent: 50.0},
		{Category: "B", Count: 2, Percent: 33.3},
		{Category: "C", Count: 1, Percent: 16.7},
	}
	for i, w := range want {
		if rows[i] != w {
			t.Errorf("rows[%d] = %+v; want %+v", i, rows[i], w)
		}
	}
}

func TestAggregateMethodsTieOrder(t *testing.T) {
	svc := NewReportService(newTestLogger())

	// Ties keep first-seen input order: zebra before apple despite sorting.
	rows := svc.AggregateMethods(incidentsWithMethods("zebra", "apple", "mango", "mango"))
	if len(rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(rows))
	}
	if rows[0].Category != "mango" {
		t.Errorf("rows[0] = %q; want mango (highest count)", rows[0].Category)
	}
	if rows[1].Category != "zebra" || rows[2].Category != "apple" {
		t.Errorf("tie order = [%q, %q]; want [zebra, apple]", rows[1].Category, rows[2].Category)
	}
}

func TestAggregateMethodsExcludesEmpty(t *testing.T) {
	svc := NewReportService(newTestLogger())

	// Empty methods count towards neither numerator nor denominator.
	rows := svc.AggregateMethods(incidentsWithMethods("stabbing", "", "", "shooting"))
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	for _, r := range rows {
		if r.Percent != 50.0 {
			t.Errorf("%s percent = %.1f; want 50.0", r.Category, r.Percent)
		}
	}
}

func TestAggregateMethodsNoData(t *testing.T) {
	svc := NewReportService(newTestLogger())

	if rows := svc.AggregateMethods(incidentsWithMethods("", "", "")); len(rows) != 0 {
		t.Errorf("expected empty table, got %+v", rows)
	}
	if rows := svc.AggregateMethods(nil); len(rows) != 0 {
		t.Errorf("expected empty table for nil input, got %+v", rows)
	}
}
