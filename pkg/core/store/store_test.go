package store

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hagwon_strategy/pkg/models"
)

func sampleRecord() *models.ProfileRecord {
	rec := &models.ProfileRecord{
		Profile: models.AcademyProfile{
			Name:          "해솔영어",
			Instructors:   4,
			TargetSegment: "초등 저학년",
			Location:      "신도시 중심상가 학원가",
			Persona:       models.PersonaCare,
		},
		Competitors: []models.Competitor{{Name: "리더스영어", Fee: 30, Strength: "원어민 100% 수업"}},
	}
	rec.Profile.Facility.Classrooms = 6
	rec.Profile.Facility.MaxCapacityPerRoom = 10
	rec.Profile.Students.ElemLow = 30
	rec.Profile.Tuition.Elementary = 280000
	return rec
}

// runStoreContract exercises every Store operation; each driver must pass it.
func runStoreContract(t *testing.T, s Store) {
	ctx := context.Background()

	// 1. profiles round-trip
	id, err := s.PutProfile(ctx, sampleRecord())
	require.NoError(t, err)
	require.NotEmpty(t, id)

	got, err := s.GetProfile(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "해솔영어", got.Profile.Name)
	assert.Equal(t, models.PersonaCare, got.Profile.Persona)
	assert.Equal(t, 30, got.Profile.Students.ElemLow)
	require.Len(t, got.Competitors, 1)
	assert.Equal(t, models.Fee(30), got.Competitors[0].Fee)
	assert.False(t, got.CreatedAt.IsZero())

	// 2. put with an explicit id overwrites
	rec := sampleRecord()
	rec.ID = id
	rec.Profile.Name = "해솔영어 본원"
	_, err = s.PutProfile(ctx, rec)
	require.NoError(t, err)
	got, err = s.GetProfile(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "해솔영어 본원", got.Profile.Name)

	// 3. missing and invalid
	_, err = s.GetProfile(ctx, "does-not-exist")
	assert.True(t, errors.Is(err, ErrNotFound))

	bad := sampleRecord()
	bad.Profile.Instructors = -1
	_, err = s.PutProfile(ctx, bad)
	assert.True(t, errors.Is(err, models.ErrInvalidInput))

	// 4. reports
	older := &models.SavedReport{
		InputID:   id,
		Report:    json.RawMessage(`{"sections":[]}`),
		Location:  "신도시 중심상가 학원가",
		CreatedAt: time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC),
	}
	olderID, err := s.SaveReport(ctx, older)
	require.NoError(t, err)
	assert.Equal(t, "2025-03-01 전략 리포트 (신도시 중심상가 학원가)", older.Title)

	newer := &models.SavedReport{
		Title:     "직접 지은 제목",
		Report:    json.RawMessage(`{"sections":[1]}`),
		CreatedAt: time.Date(2025, 3, 2, 9, 0, 0, 0, time.UTC),
	}
	newerID, err := s.SaveReport(ctx, newer)
	require.NoError(t, err)

	list, err := s.ListReports(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, newerID, list[0].ID)
	assert.Equal(t, olderID, list[1].ID)
	assert.Equal(t, id, list[1].InputID)

	rep, err := s.GetReport(ctx, olderID)
	require.NoError(t, err)
	assert.JSONEq(t, `{"sections":[]}`, string(rep.Report))

	_, err = s.SaveReport(ctx, &models.SavedReport{Title: "빈 리포트"})
	assert.True(t, errors.Is(err, models.ErrInvalidInput))

	// 5. delete
	require.NoError(t, s.DeleteReport(ctx, olderID))
	assert.True(t, errors.Is(s.DeleteReport(ctx, olderID), ErrNotFound))
	_, err = s.GetReport(ctx, olderID)
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestMemoryStore(t *testing.T) {
	s := NewMemoryStore()
	defer s.Close()
	runStoreContract(t, s)
}

func TestMemoryStore_ReturnsCopies(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	id, err := s.PutProfile(ctx, sampleRecord())
	require.NoError(t, err)

	got, _ := s.GetProfile(ctx, id)
	got.Competitors[0].Name = "변경됨"
	again, _ := s.GetProfile(ctx, id)
	assert.Equal(t, "리더스영어", again.Competitors[0].Name)
}

func TestBadgerStore(t *testing.T) {
	s, err := OpenBadger(t.TempDir())
	require.NoError(t, err)
	defer s.Close()
	runStoreContract(t, s)
}

func TestPostgresStore(t *testing.T) {
	url := os.Getenv("DATABASE_URL")
	if url == "" {
		t.Skip("DATABASE_URL not set")
	}
	ctx := context.Background()
	s, err := OpenPostgres(ctx, url)
	require.NoError(t, err)
	defer s.Close()
	_, err = s.pool.Exec(ctx, `TRUNCATE saved_reports, input_data`)
	require.NoError(t, err)
	runStoreContract(t, s)
}

func TestOpen(t *testing.T) {
	ctx := context.Background()
	s, err := Open(ctx, Options{Driver: "memory"})
	require.NoError(t, err)
	assert.IsType(t, &MemoryStore{}, s)

	s, err = Open(ctx, Options{Driver: "badger", BadgerDir: t.TempDir()})
	require.NoError(t, err)
	assert.IsType(t, &BadgerStore{}, s)
	require.NoError(t, s.Close())

	_, err = Open(ctx, Options{Driver: "postgres"})
	assert.Error(t, err)
	_, err = Open(ctx, Options{Driver: "mongo"})
	assert.Error(t, err)
}

func TestReportTitle(t *testing.T) {
	at := time.Date(2025, 11, 5, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "2025-11-05 전략 리포트 (분석)", ReportTitle(at, "  "))
}

func TestMaintenance(t *testing.T) {
	assert.Nil(t, NewMaintenance(NewMemoryStore()))

	b, err := OpenBadger(t.TempDir())
	require.NoError(t, err)
	defer b.Close()

	_, err = b.PutProfile(context.Background(), sampleRecord())
	require.NoError(t, err)
	require.NoError(t, b.Compact())

	m := NewMaintenance(b)
	require.NotNil(t, m)
	assert.Error(t, m.Start("not a schedule"))
	require.NoError(t, m.Start("@every 1h"))
	m.RunNow()
	m.Stop()
}
