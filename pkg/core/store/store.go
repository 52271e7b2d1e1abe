package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"hagwon_strategy/pkg/models"
)

// ErrNotFound is returned for unknown ids.
var ErrNotFound = errors.New("record not found")

// ProfileStore persists academy input records.
type ProfileStore interface {
	PutProfile(ctx context.Context, rec *models.ProfileRecord) (string, error)
	GetProfile(ctx context.Context, id string) (*models.ProfileRecord, error)
}

// ReportStore persists saved report snapshots.
type ReportStore interface {
	SaveReport(ctx context.Context, rep *models.SavedReport) (string, error)
	ListReports(ctx context.Context) ([]models.SavedReport, error)
	GetReport(ctx context.Context, id string) (*models.SavedReport, error)
	DeleteReport(ctx context.Context, id string) error
}

// Store is what the binaries open.
type Store interface {
	ProfileStore
	ReportStore
	Close() error
}

// Drivers accepted by Open.
const (
	DriverMemory   = "memory"
	DriverBadger   = "badger"
	DriverPostgres = "postgres"
)

// Options selects and configures a driver.
type Options struct {
	Driver      string
	BadgerDir   string
	DatabaseURL string
}

// Open returns the store for opts.Driver.
func Open(ctx context.Context, opts Options) (Store, error) {
	switch strings.ToLower(opts.Driver) {
	case "", DriverMemory:
		return NewMemoryStore(), nil
	case DriverBadger:
		return OpenBadger(opts.BadgerDir)
	case DriverPostgres:
		return OpenPostgres(ctx, opts.DatabaseURL)
	}
	return nil, fmt.Errorf("unknown store driver %q", opts.Driver)
}

// prepareProfile validates rec and fills id and timestamp.
func prepareProfile(rec *models.ProfileRecord) error {
	if rec == nil {
		return models.NewValidationError(nil)
	}
	if err := models.Validate(rec); err != nil {
		return err
	}
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}
	return nil
}

func prepareReport(rep *models.SavedReport) error {
	if rep == nil || len(rep.Report) == 0 {
		return models.NewValidationError(nil, models.FieldError{Field: "report_data", Error: "report_data is required"})
	}
	if rep.ID == "" {
		rep.ID = uuid.NewString()
	}
	if rep.CreatedAt.IsZero() {
		rep.CreatedAt = time.Now().UTC()
	}
	if rep.Title == "" {
		rep.Title = ReportTitle(rep.CreatedAt, rep.Location)
	}
	return nil
}

// ReportTitle is the default saved-report title, e.g.
// "2025-03-02 전략 리포트 (신도시 중심상가)".
func ReportTitle(at time.Time, location string) string {
	loc := strings.TrimSpace(location)
	if loc == "" {
		loc = "분석"
	}
	return fmt.Sprintf("%s 전략 리포트 (%s)", at.Format("2006-01-02"), loc)
}
