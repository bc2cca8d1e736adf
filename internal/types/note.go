package types

import (
	"time"

	"github.com/google/uuid"
)

// Note is a titled file attachment under a Subject. FileURL is the
// public locator handed to clients; StorageKey is the bucket object
// path and is what blob deletion uses. Both are immutable after create.
type Note struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Title      string    `gorm:"not null;column:title" json:"title"`
	FileURL    string    `gorm:"not null;column:file_url" json:"fileUrl"`
	StorageKey string    `gorm:"not null;column:storage_key" json:"-"`
	SubjectID  uuid.UUID `gorm:"type:uuid;not null;index;column:subject_id" json:"subjectId"`

	CreatedAt time.Time `gorm:"not null;index" json:"createdAt"`
	UpdatedAt time.Time `gorm:"not null" json:"-"`
}

func (Note) TableName() string { return "notes" }

// NoteResponse is the note projection returned over the wire: the
// subject name rides along so clients can render without a second
// lookup.
type NoteResponse struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	FileURL     string    `json:"fileUrl"`
	SubjectID   uuid.UUID `json:"subjectId"`
	SubjectName string    `json:"subjectName"`
}
