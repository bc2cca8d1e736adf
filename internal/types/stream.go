package types

import (
	"time"

	"github.com/google/uuid"
)

// Stream is the root of the catalog hierarchy. Children are never held
// as a collection on the parent; they are found through the semester
// repo's stream_id index.
type Stream struct {
	ID   uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name string    `gorm:"not null;column:name" json:"name"`

	CreatedAt time.Time `gorm:"not null;index" json:"createdAt"`
	UpdatedAt time.Time `gorm:"not null" json:"-"`
}

func (Stream) TableName() string { return "streams" }
