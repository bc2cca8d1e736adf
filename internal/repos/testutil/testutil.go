package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"

	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/notehive/notehive-backend/internal/db"
	"github.com/notehive/notehive-backend/internal/logger"
)

var dbSeq int64

// Logger returns a logger that discards everything.
func Logger(tb testing.TB) *logger.Logger {
	tb.Helper()
	return &logger.Logger{SugaredLogger: zap.NewNop().Sugar()}
}

// DB opens a fresh in-memory sqlite database migrated to the current
// schema. Every call gets its own database, so parallel tests never
// share state.
func DB(tb testing.TB) *gorm.DB {
	tb.Helper()
	dsn := fmt.Sprintf("file:testdb%d?mode=memory&cache=shared", atomic.AddInt64(&dbSeq, 1))
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		tb.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := gdb.DB()
	if err != nil {
		tb.Fatalf("unwrap sql.DB: %v", err)
	}
	// the shared-cache memory db disappears when its last conn closes
	sqlDB.SetMaxOpenConns(1)
	tb.Cleanup(func() { _ = sqlDB.Close() })

	if err := db.AutoMigrateAll(gdb); err != nil {
		tb.Fatalf("migrate: %v", err)
	}
	return gdb
}
