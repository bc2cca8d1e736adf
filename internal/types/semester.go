package types

import (
	"time"

	"github.com/google/uuid"
)

// Semester sits under a Stream. Number is a positive term index;
// duplicates within a stream are allowed by the schema.
type Semester struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Number   int       `gorm:"not null;column:number" json:"number"`
	StreamID uuid.UUID `gorm:"type:uuid;not null;index;column:stream_id" json:"streamId"`

	CreatedAt time.Time `gorm:"not null;index" json:"createdAt"`
	UpdatedAt time.Time `gorm:"not null" json:"-"`
}

func (Semester) TableName() string { return "semesters" }
