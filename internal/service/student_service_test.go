package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/sma-absensi-api/internal/models"
	appErrors "github.com/noah-isme/sma-absensi-api/pkg/errors"
)

type mockStudentRepo struct {
	students  []models.Student
	created   []models.Student
	updated   []models.Student
	deleted   []string
	updateErr error
}

func (m *mockStudentRepo) List(ctx context.Context) ([]models.Student, error) {
	return m.students, nil
}

func (m *mockStudentRepo) Create(ctx context.Context, student *models.Student) error {
	m.created = append(m.created, *student)
	return nil
}

func (m *mockStudentRepo) Update(ctx context.Context, student *models.Student) error {
	if m.updateErr != nil {
		return m.updateErr
	}
	m.updated = append(m.updated, *student)
	return nil
}

func (m *mockStudentRepo) Delete(ctx context.Context, id string) error {
	m.deleted = append(m.deleted, id)
	return nil
}

func TestStudentServiceCreate(t *testing.T) {
	repo := &mockStudentRepo{}
	svc := NewStudentService(repo, nil, zap.NewNop())

	student, err := svc.Create(context.Background(), CreateStudentRequest{ClassID: "kelas-7a", Name: "Aisyah", NIS: "2401"})
	require.NoError(t, err)
	assert.Equal(t, "kelas-7a", student.ClassID)
	require.Len(t, repo.created, 1)
}

func TestStudentServiceCreateRequiresClassAndName(t *testing.T) {
	svc := NewStudentService(&mockStudentRepo{}, nil, zap.NewNop())

	_, err := svc.Create(context.Background(), CreateStudentRequest{Name: "Aisyah"})
	require.Error(t, err)
	_, err = svc.Create(context.Background(), CreateStudentRequest{ClassID: "kelas-7a"})
	require.Error(t, err)
}

func TestStudentServiceUpdateMovesClass(t *testing.T) {
	repo := &mockStudentRepo{}
	svc := NewStudentService(repo, nil, zap.NewNop())

	student, err := svc.Update(context.Background(), "siswa-1", UpdateStudentRequest{ClassID: "kelas-7b", Name: "Aisyah"})
	require.NoError(t, err)
	assert.Equal(t, "kelas-7b", student.ClassID)
	require.Len(t, repo.updated, 1)
}

func TestStudentServiceUpdateNotFound(t *testing.T) {
	repo := &mockStudentRepo{updateErr: sql.ErrNoRows}
	svc := NewStudentService(repo, nil, zap.NewNop())

	_, err := svc.Update(context.Background(), "siswa-x", UpdateStudentRequest{ClassID: "kelas-7a", Name: "Aisyah"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}
