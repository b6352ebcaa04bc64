package intake

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/fiskal/receipt-intake/internal/ocr"
)

// IDGenerator generates unique IDs for records
type IDGenerator interface {
	Generate() string
}

// TimeSource provides the current time
type TimeSource interface {
	Now() time.Time
}

// defaultIDGenerator generates IDs using UnixNano timestamp
type defaultIDGenerator struct{}

func (g *defaultIDGenerator) Generate() string {
	return fmt.Sprintf("%d", time.Now().UnixNano())
}

// defaultTimeSource provides the current time
type defaultTimeSource struct{}

func (t *defaultTimeSource) Now() time.Time {
	return time.Now()
}

// Service drives receipt intake: it feeds recognized text through the
// processor, consults the store for duplicate fingerprints, persists
// the resulting records and applies review decisions.
type Service struct {
	db              DB
	source          ocr.TextSource
	processor       *Processor
	defaultCurrency string
	idGenerator     IDGenerator
	timeSource      TimeSource
}

// NewService creates a new Service with default ID generator and time
// source. source may be nil when the deployment only accepts
// pre-recognized text.
func NewService(db DB, source ocr.TextSource, processor *Processor, defaultCurrency string) *Service {
	return &Service{
		db:              db,
		source:          source,
		processor:       processor,
		defaultCurrency: defaultCurrency,
		idGenerator:     &defaultIDGenerator{},
		timeSource:      &defaultTimeSource{},
	}
}

// NewServiceWithDeps creates a new Service with custom dependencies for testing
func NewServiceWithDeps(db DB, source ocr.TextSource, processor *Processor, defaultCurrency string, idGen IDGenerator, timeSrc TimeSource) *Service {
	return &Service{
		db:              db,
		source:          source,
		processor:       processor,
		defaultCurrency: defaultCurrency,
		idGenerator:     idGen,
		timeSource:      timeSrc,
	}
}

// ProcessImage sends a receipt image to the text source and runs the
// recognized lines through intake. A recognition failure is mapped to
// a persisted Error record, not a returned error: callers branch on
// status.
func (s *Service) ProcessImage(data []byte, contentType, currency string) (*Record, error) {
	if s.source == nil {
		return nil, fmt.Errorf("no text source configured")
	}

	lines, err := s.source.RecognizeText(data, contentType)
	if err != nil {
		slog.Error("Failed to recognize receipt text",
			"content_type", contentType,
			"file_size", len(data),
			"error", err,
		)
		lines = nil
	}

	return s.ProcessLines(lines, currency)
}

// ProcessLines runs pre-recognized text lines through intake and
// persists the resulting record. An empty currency falls back to the
// service's reference currency.
func (s *Service) ProcessLines(lines []string, currency string) (*Record, error) {
	if currency == "" {
		currency = s.defaultCurrency
	}

	rec := s.processor.Process(lines, currency)
	rec.ID = s.idGenerator.Generate()
	now := s.timeSource.Now()
	rec.CreatedAt = now
	rec.UpdatedAt = now

	if rec.Fingerprint != "" {
		seen, err := s.db.SeenFingerprint(rec.Fingerprint)
		if err != nil {
			return nil, fmt.Errorf("checking duplicate fingerprint: %w", err)
		}
		rec.Duplicate = seen
	}

	if err := s.db.SaveRecord(rec); err != nil {
		return nil, fmt.Errorf("saving record: %w", err)
	}

	if rec.Fingerprint != "" && !rec.Duplicate {
		if err := s.db.MarkFingerprint(rec.Fingerprint, rec.ID); err != nil {
			return nil, fmt.Errorf("marking fingerprint: %w", err)
		}
	}

	return rec, nil
}

// GetRecord retrieves a record by ID
func (s *Service) GetRecord(id string) (*Record, error) {
	rec, err := s.db.GetRecord(id)
	if err != nil {
		return nil, fmt.Errorf("getting record: %w", err)
	}
	return rec, nil
}

// ListRecords returns all records
func (s *Service) ListRecords() ([]*Record, error) {
	records, err := s.db.ListRecords()
	if err != nil {
		return nil, fmt.Errorf("listing records: %w", err)
	}
	return records, nil
}

// DeleteRecord removes a record
func (s *Service) DeleteRecord(id string) error {
	if err := s.db.DeleteRecord(id); err != nil {
		return fmt.Errorf("deleting record: %w", err)
	}
	return nil
}

// Approve marks a reviewed record as accepted.
func (s *Service) Approve(id string) (*Record, error) {
	return s.transition(id, StatusApproved)
}

// Reject marks a reviewed record as declined.
func (s *Service) Reject(id string) (*Record, error) {
	return s.transition(id, StatusRejected)
}

// transition validates and applies a status change. Terminal records
// are never regressed; an invalid move is an error, not a silent
// overwrite.
func (s *Service) transition(id string, next Status) (*Record, error) {
	rec, err := s.db.GetRecord(id)
	if err != nil {
		return nil, fmt.Errorf("getting record: %w", err)
	}

	if !rec.Status.CanTransitionTo(next) {
		return nil, fmt.Errorf("record %s cannot move from %s to %s", id, rec.Status, next)
	}

	rec.Status = next
	rec.UpdatedAt = s.timeSource.Now()
	if err := s.db.SaveRecord(rec); err != nil {
		return nil, fmt.Errorf("saving record: %w", err)
	}
	return rec, nil
}
