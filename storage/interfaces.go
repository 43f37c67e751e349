package storage

import "homicide-report/models"

// IncidentWriter is the interface any clean-record storage backend must satisfy.
type IncidentWriter interface {
	Write(incidents []*models.Incident) error
	Close() error
}

// RawIncidentWriter is the interface for persisting unprocessed scraped data.
type RawIncidentWriter interface {
	WriteRaw(incidents []*models.RawIncident) error
	Close() error
}
