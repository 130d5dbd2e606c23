package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/sma-absensi-api/internal/models"
	appErrors "github.com/noah-isme/sma-absensi-api/pkg/errors"
)

type mockClassRepo struct {
	classes   []models.Class
	created   []models.Class
	updated   []models.Class
	deleted   []string
	updateErr error
	deleteErr error
}

func (m *mockClassRepo) List(ctx context.Context) ([]models.Class, error) { return m.classes, nil }

func (m *mockClassRepo) Create(ctx context.Context, class *models.Class) error {
	m.created = append(m.created, *class)
	return nil
}

func (m *mockClassRepo) Update(ctx context.Context, class *models.Class) error {
	if m.updateErr != nil {
		return m.updateErr
	}
	m.updated = append(m.updated, *class)
	return nil
}

func (m *mockClassRepo) Delete(ctx context.Context, id string) error {
	if m.deleteErr != nil {
		return m.deleteErr
	}
	m.deleted = append(m.deleted, id)
	return nil
}

func TestClassServiceCreateNormalizesSchedule(t *testing.T) {
	repo := &mockClassRepo{}
	svc := NewClassService(repo, nil, zap.NewNop())

	class, err := svc.Create(context.Background(), CreateClassRequest{Name: "Kelas 7A", Schedule: []int{5, 1, 3, 3}})
	require.NoError(t, err)
	assert.Equal(t, pq.Int64Array{1, 3, 5}, class.Schedule)
	require.Len(t, repo.created, 1)
}

func TestClassServiceCreateRejectsInvalidSchedule(t *testing.T) {
	svc := NewClassService(&mockClassRepo{}, nil, zap.NewNop())

	_, err := svc.Create(context.Background(), CreateClassRequest{Name: "Kelas 7A", Schedule: []int{6}})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestClassServiceCreateRequiresName(t *testing.T) {
	svc := NewClassService(&mockClassRepo{}, nil, zap.NewNop())

	_, err := svc.Create(context.Background(), CreateClassRequest{})
	require.Error(t, err)
}

func TestClassServiceUpdateNotFound(t *testing.T) {
	repo := &mockClassRepo{updateErr: sql.ErrNoRows}
	svc := NewClassService(repo, nil, zap.NewNop())

	_, err := svc.Update(context.Background(), "kelas-x", UpdateClassRequest{Name: "Kelas X"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestClassServiceDelete(t *testing.T) {
	repo := &mockClassRepo{}
	svc := NewClassService(repo, nil, zap.NewNop())

	require.NoError(t, svc.Delete(context.Background(), "kelas-7a"))
	assert.Equal(t, []string{"kelas-7a"}, repo.deleted)

	repo.deleteErr = sql.ErrNoRows
	err := svc.Delete(context.Background(), "kelas-x")
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}
