package store

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/dgraph-io/badger/v4"
	"github.com/phuslu/log"
	"github.com/timshannon/badgerhold/v4"

	"hagwon_strategy/pkg/models"
)

// BadgerStore is the embedded on-disk store for single-machine installs.
type BadgerStore struct {
	store *badgerhold.Store
}

var _ Store = (*BadgerStore)(nil)

// OpenBadger opens (creating if needed) a badger database in dir.
func OpenBadger(dir string) (*BadgerStore, error) {
	if dir == "" {
		return nil, fmt.Errorf("badger store: directory not set")
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	options := badgerhold.DefaultOptions
	options.Dir = dir
	options.ValueDir = dir
	options.Logger = nil

	store, err := badgerhold.Open(options)
	if err != nil {
		return nil, fmt.Errorf("failed to open badger database: %w", err)
	}
	log.Debug().Str("path", dir).Msg("badger store opened")
	return &BadgerStore{store: store}, nil
}

func (b *BadgerStore) PutProfile(ctx context.Context, rec *models.ProfileRecord) (string, error) {
	if err := prepareProfile(rec); err != nil {
		return "", err
	}
	if err := b.store.Upsert(rec.ID, rec); err != nil {
		return "", fmt.Errorf("save profile: %w", err)
	}
	return rec.ID, nil
}

func (b *BadgerStore) GetProfile(ctx context.Context, id string) (*models.ProfileRecord, error) {
	var rec models.ProfileRecord
	if err := b.store.Get(id, &rec); err != nil {
		if errors.Is(err, badgerhold.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("load profile: %w", err)
	}
	return &rec, nil
}

func (b *BadgerStore) SaveReport(ctx context.Context, rep *models.SavedReport) (string, error) {
	if err := prepareReport(rep); err != nil {
		return "", err
	}
	if err := b.store.Upsert(rep.ID, rep); err != nil {
		return "", fmt.Errorf("save report: %w", err)
	}
	return rep.ID, nil
}

func (b *BadgerStore) ListReports(ctx context.Context) ([]models.SavedReport, error) {
	var reports []models.SavedReport
	if err := b.store.Find(&reports, nil); err != nil {
		return nil, fmt.Errorf("list reports: %w", err)
	}
	sortNewestFirst(reports)
	if reports == nil {
		reports = []models.SavedReport{}
	}
	return reports, nil
}

func (b *BadgerStore) GetReport(ctx context.Context, id string) (*models.SavedReport, error) {
	var rep models.SavedReport
	if err := b.store.Get(id, &rep); err != nil {
		if errors.Is(err, badgerhold.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("load report: %w", err)
	}
	return &rep, nil
}

func (b *BadgerStore) DeleteReport(ctx context.Context, id string) error {
	if err := b.store.Delete(id, &models.SavedReport{}); err != nil {
		if errors.Is(err, badgerhold.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("delete report: %w", err)
	}
	return nil
}

func (b *BadgerStore) Close() error {
	if b.store != nil {
		return b.store.Close()
	}
	return nil
}

const gcDiscardRatio = 0.5

// Compact reclaims value-log space. Badger only rewrites one file per
// call, so it runs until nothing is left to rewrite.
func (b *BadgerStore) Compact() error {
	db := b.store.Badger()
	for rewrites := 0; ; rewrites++ {
		err := db.RunValueLogGC(gcDiscardRatio)
		switch {
		case errors.Is(err, badger.ErrNoRewrite), errors.Is(err, badger.ErrRejected):
			log.Debug().Int("rewrites", rewrites).Msg("badger value log gc done")
			return nil
		case err != nil:
			return fmt.Errorf("badger value log gc: %w", err)
		}
	}
}
