package types

import (
	"time"

	"github.com/google/uuid"
)

type Subject struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name       string    `gorm:"not null;column:name" json:"name"`
	SemesterID uuid.UUID `gorm:"type:uuid;not null;index;column:semester_id" json:"semesterId"`

	CreatedAt time.Time `gorm:"not null;index" json:"createdAt"`
	UpdatedAt time.Time `gorm:"not null" json:"-"`
}

func (Subject) TableName() string { return "subjects" }
