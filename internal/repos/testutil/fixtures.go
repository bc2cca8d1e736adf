package testutil

import (
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/notehive/notehive-backend/internal/types"
)

func SeedStream(tb testing.TB, gdb *gorm.DB, name string) *types.Stream {
	tb.Helper()
	stream := &types.Stream{ID: uuid.New(), Name: name}
	if err := gdb.Create(stream).Error; err != nil {
		tb.Fatalf("seed stream: %v", err)
	}
	return stream
}

func SeedSemester(tb testing.TB, gdb *gorm.DB, streamID uuid.UUID, number int) *types.Semester {
	tb.Helper()
	semester := &types.Semester{ID: uuid.New(), Number: number, StreamID: streamID}
	if err := gdb.Create(semester).Error; err != nil {
		tb.Fatalf("seed semester: %v", err)
	}
	return semester
}

func SeedSubject(tb testing.TB, gdb *gorm.DB, semesterID uuid.UUID, name string) *types.Subject {
	tb.Helper()
	subject := &types.Subject{ID: uuid.New(), Name: name, SemesterID: semesterID}
	if err := gdb.Create(subject).Error; err != nil {
		tb.Fatalf("seed subject: %v", err)
	}
	return subject
}

func SeedNote(tb testing.TB, gdb *gorm.DB, subjectID uuid.UUID, title, storageKey string) *types.Note {
	tb.Helper()
	note := &types.Note{
		ID:         uuid.New(),
		Title:      title,
		FileURL:    "https://storage.googleapis.com/test-bucket/" + storageKey,
		StorageKey: storageKey,
		SubjectID:  subjectID,
	}
	if err := gdb.Create(note).Error; err != nil {
		tb.Fatalf("seed note: %v", err)
	}
	return note
}

func SeedUser(tb testing.TB, gdb *gorm.DB, email, password string, role types.Role) *types.User {
	tb.Helper()
	user := &types.User{
		ID:       uuid.New(),
		Name:     "Test User",
		Email:    email,
		Password: password,
		Role:     role,
	}
	if err := gdb.Create(user).Error; err != nil {
		tb.Fatalf("seed user: %v", err)
	}
	return user
}
