package services

import (
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	_ "modernc.org/sqlite"

	"github.com/samedayramps/app-samedayramps/internal/domain"
	"github.com/samedayramps/app-samedayramps/internal/views"
)

// newTestDB opens an in-memory SQLite database migrated with all models.
// A single connection keeps every query on the same in-memory instance.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	sqlDB, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(sqlite.Dialector{DriverName: "sqlite", Conn: sqlDB}, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&domain.User{},
		&domain.Lead{},
		&domain.Quote{},
		&domain.BusinessSettings{},
	))

	return db
}

// recordingBus returns a bus plus a pointer to the views it has invalidated.
func recordingBus() (*views.Bus, *[]string) {
	bus := views.NewBus()
	var invalidated []string
	bus.Subscribe(func(view string) {
		invalidated = append(invalidated, view)
	})
	return bus, &invalidated
}

func validLeadInput() *LeadInput {
	return &LeadInput{
		FirstName:        "Jordan",
		LastName:         "Avery",
		Email:            "jordan@example.com",
		Phone:            "555-0101",
		InstallTimeframe: "ASAP",
		MobilityAids:     []string{domain.MobilityAidWheelchair},
		InstallAddress:   "123 Main St, Dallas, TX",
	}
}
