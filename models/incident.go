package models

import "time"

// RawIncident holds one homicide case exactly as obtained from the source,
// before any validation. Every field of interest is a string and may be
// empty or garbage; this is written to CSV before cleaning.
type RawIncident struct {
	Name      string
	RawAge    string
	Date      string
	Address   string
	Method    string
	CCTV      string
	Closed    string
	URL       string
	Source    string
	ScrapedAt time.Time
}

// Incident is the cleaned, validated record ready for PostgreSQL storage
// and analysis. Age is always in [1,100]; CCTV and Closed are normalised
// to their tri-state vocabularies.
type Incident struct {
	ID        int64
	Source    string
	Name      string
	Age       int
	Date      string
	Address   string
	Method    string
	CCTV      string
	Closed    string
	URL       string
	CreatedAt time.Time
}

// Tri-state values for Incident.CCTV and Incident.Closed.
const (
	CCTVYes     = "yes"
	CCTVNo      = "no"
	CCTVUnknown = "unknown"

	CaseClosed  = "yes"
	CaseOpen    = "no"
	CasePending = "pending"
)

// FrequencyRow is one row of a frequency table: an age-bin label or a
// method name, how many incidents fell into it, and that count as a
// percentage of the table total (rounded to one decimal).
type FrequencyRow struct {
	Category string
	Count    int
	Percent  float64
}

// SummaryStats are descriptive statistics over the validated ages.
// Mean, Median and StdDev are rounded to one decimal; StdDev is the
// sample standard deviation (n-1 divisor), reported as 0 when n=1.
type SummaryStats struct {
	Count  int
	Mean   float64
	Median float64
	Min    int
	Max    int
	StdDev float64
}

// DistributionReport is the structured output of the analysis stage,
// handed to the renderer.
type DistributionReport struct {
	TotalRaw           int
	TotalClean         int
	DroppedUnparseable int
	DroppedOutOfRange  int
	AgeRows            []FrequencyRow
	AgeStats           *SummaryStats
	MethodRows         []FrequencyRow
}
