package memory

import (
	"context"

	"github.com/lib/pq"

	"github.com/noah-isme/sma-absensi-api/internal/models"
)

// Seeded returns a store preloaded with the fixed demo dataset used when no
// database is configured: two classes, a small roster, one assignment and the
// New Year holiday.
func Seeded() *Store {
	s := NewStore()
	ctx := context.Background()

	classA := &models.Class{ID: "kelas-7a", Name: "Kelas 7A", Schedule: pq.Int64Array{1, 2, 3, 4, 5}}
	classB := &models.Class{ID: "kelas-7b", Name: "Kelas 7B", Schedule: pq.Int64Array{1, 3, 5}}
	_ = s.Classes().Create(ctx, classA)
	_ = s.Classes().Create(ctx, classB)

	students := []*models.Student{
		{ID: "siswa-1", ClassID: classA.ID, Name: "Ahmad Fauzi", NIS: "2401", NISN: "0091234561"},
		{ID: "siswa-2", ClassID: classA.ID, Name: "Bunga Lestari", NIS: "2402", NISN: "0091234562"},
		{ID: "siswa-3", ClassID: classA.ID, Name: "Citra Dewi", NIS: "2403", NISN: "0091234563"},
		{ID: "siswa-4", ClassID: classB.ID, Name: "Dimas Prasetyo", NIS: "2404", NISN: "0091234564"},
		{ID: "siswa-5", ClassID: classB.ID, Name: "Eka Putri", NIS: "2405", NISN: "0091234565"},
	}
	for _, student := range students {
		_ = s.Students().Create(ctx, student)
	}

	_ = s.Assignments().Create(ctx, &models.Assignment{
		ID:          "tugas-1",
		ClassID:     classA.ID,
		Title:       "Tugas Matematika Bab 1",
		Description: "Latihan soal halaman 20-22",
		DueDate:     "2026-01-16",
	})
	_ = s.Submissions().Upsert(ctx, &models.Submission{
		AssignmentID: "tugas-1",
		StudentID:    "siswa-1",
		IsSubmitted:  true,
		Score:        "90",
	})

	_ = s.Holidays().Insert(ctx, "2026-01-01")

	return s
}
