package models

import "time"

// Student is a learner owned by exactly one class. NIS is the local student
// number, NISN the national one.
type Student struct {
	ID        string    `db:"id" json:"id"`
	ClassID   string    `db:"class_id" json:"class_id"`
	Name      string    `db:"name" json:"name"`
	NIS       string    `db:"nis" json:"nis"`
	NISN      string    `db:"nisn" json:"nisn"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}
