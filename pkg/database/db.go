package database

import (
	"os"
	"time"

	"github.com/rs/zerolog/log"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/AhiyaSchneider/server-FinalProject/pkg/store"
)

// User represents the users table
type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Username     string    `gorm:"unique;not null" json:"username"`
	PasswordHash string    `gorm:"not null" json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// Worker represents the workers table
type Worker struct {
	ID     uint   `gorm:"primaryKey" json:"id"`
	Name   string `gorm:"not null" json:"name"`
	Skills string `gorm:"not null" json:"skills"`
	Shift  string `json:"shift,omitempty"`
}

// UsageRecord represents the usage_records table: one row per user per day
type UsageRecord struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	Username     string `gorm:"uniqueIndex:idx_user_date;not null" json:"username"`
	Date         string `gorm:"uniqueIndex:idx_user_date;not null" json:"date"`
	RequestCount int    `gorm:"default:0" json:"request_count"`
	TotalShifts  int    `gorm:"default:0" json:"total_shifts"`
	TotalWorkers int    `gorm:"default:0" json:"total_workers"`
}

// InitDB initializes the database connection and migrates the schema
func InitDB() *gorm.DB {
	var db *gorm.DB
	var err error

	dsn := os.Getenv("DATABASE_URL")
	if dsn != "" {
		db, err = gorm.Open(postgres.New(postgres.Config{
			DSN:                  dsn,
			PreferSimpleProtocol: true,
		}), &gorm.Config{
			PrepareStmt: false,
		})
	} else {
		dbPath := os.Getenv("DATA_PATH")
		if dbPath == "" {
			dbPath = "scheduler.db"
		}
		db, err = gorm.Open(sqlite.Open(dbPath), &gorm.Config{})
	}

	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect database")
	}

	Migrate(db)

	return db
}

// Migrate runs the schema auto-migration for all tables.
func Migrate(db *gorm.DB) {
	db.AutoMigrate(
		&User{},
		&Worker{},
		&UsageRecord{},
		&store.UserSchedule{},
		&store.ScheduleVersion{},
		&store.ShiftRecord{},
		&store.WorkerAssignment{},
	)
}
