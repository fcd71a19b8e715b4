package usecases

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"quokkalist/internal/shared/db"
	"quokkalist/internal/shared/logger"
)

func newTestTxManager(t *testing.T) *db.TransactionManager {
	t.Helper()
	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	return db.NewTransactionManager(gdb)
}

func newTestLogger() logger.Interface {
	return logger.NewLogger()
}

func timeNowUTC() time.Time {
	return time.Now().UTC()
}
