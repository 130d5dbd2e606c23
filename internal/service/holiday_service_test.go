package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/sma-absensi-api/internal/models"
	appErrors "github.com/noah-isme/sma-absensi-api/pkg/errors"
)

type mockHolidayRepo struct {
	holidays []models.Holiday
	inserted []string
	deleted  []string
}

func (m *mockHolidayRepo) List(ctx context.Context) ([]models.Holiday, error) {
	return m.holidays, nil
}

func (m *mockHolidayRepo) Insert(ctx context.Context, date string) error {
	m.inserted = append(m.inserted, date)
	return nil
}

func (m *mockHolidayRepo) Delete(ctx context.Context, date string) error {
	m.deleted = append(m.deleted, date)
	return nil
}

func TestHolidayServiceList(t *testing.T) {
	repo := &mockHolidayRepo{holidays: []models.Holiday{{Date: "2026-01-01"}, {Date: "2026-03-21"}}}
	svc := NewHolidayService(repo, zap.NewNop())

	dates, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"2026-01-01", "2026-03-21"}, dates)
}

func TestHolidayServiceToggle(t *testing.T) {
	repo := &mockHolidayRepo{}
	svc := NewHolidayService(repo, zap.NewNop())

	require.NoError(t, svc.Toggle(context.Background(), "2026-01-01", true))
	require.NoError(t, svc.Toggle(context.Background(), "2026-01-01", false))
	assert.Equal(t, []string{"2026-01-01"}, repo.inserted)
	assert.Equal(t, []string{"2026-01-01"}, repo.deleted)
}

func TestHolidayServiceToggleInvalidDate(t *testing.T) {
	svc := NewHolidayService(&mockHolidayRepo{}, zap.NewNop())

	err := svc.Toggle(context.Background(), "bukan-tanggal", true)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}
