// Package store persists schedule runs as an append-only, versioned history
// per user. Each commit writes the run's shift results as immutable records
// and appends one numbered version; histories are capped at MaxVersions
// with FIFO eviction of the oldest version.
package store

import (
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/AhiyaSchneider/server-FinalProject/pkg/models"
)

// MaxVersions is the history depth retained per user.
const MaxVersions = 5

// ErrNoHistory is returned when a user has no committed schedules.
var ErrNoHistory = errors.New("no schedule history for user")

// PersistenceError reports a storage failure. Shift records written during
// a failed commit are rolled back with the transaction; nothing is
// partially applied.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence error during %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

// ShiftRecord is the persisted form of one shift result. Records are
// immutable once written; evicting a version leaves its records behind as
// reclaimable orphans rather than cascade-deleting them.
type ShiftRecord struct {
	ID                uint               `gorm:"primaryKey" json:"-"`
	RecordID          string             `gorm:"uniqueIndex;not null" json:"recordId"`
	ScheduleVersionID uint               `gorm:"index" json:"-"`
	Date              string             `json:"date"`
	StartTime         string             `json:"startTime"`
	EndTime           string             `json:"endTime"`
	Skill             string             `json:"skill"`
	Shortfall         int                `json:"shortfall"`
	Message           string             `json:"message"`
	Workers           []WorkerAssignment `gorm:"foreignKey:ShiftRecordID" json:"workers"`
}

// WorkerAssignment is one worker within a persisted shift record.
type WorkerAssignment struct {
	ID            uint   `gorm:"primaryKey" json:"-"`
	ShiftRecordID uint   `gorm:"index;not null" json:"-"`
	Position      int    `gorm:"not null" json:"-"`
	WorkerID      string `json:"workerId"`
	WorkerName    string `json:"workerName"`
	HourlyCost    int    `json:"hourlyCost"`
}

// UserSchedule is the versioned history head for one username.
type UserSchedule struct {
	ID       uint              `gorm:"primaryKey"`
	Username string            `gorm:"uniqueIndex;not null"`
	Versions []ScheduleVersion `gorm:"foreignKey:UserScheduleID"`
}

// ScheduleVersion is one numbered snapshot in a user's history. Version
// numbers are strictly increasing and gapless per user.
type ScheduleVersion struct {
	ID             uint          `gorm:"primaryKey"`
	UserScheduleID uint          `gorm:"index;not null"`
	Version        int           `gorm:"not null"`
	Shifts         []ShiftRecord `gorm:"foreignKey:ScheduleVersionID"`
}

// Store owns the schedule history tables.
type Store struct {
	db *gorm.DB

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// New creates a store on an initialized database.
func New(db *gorm.DB) *Store {
	return &Store{
		db:    db,
		locks: make(map[string]*sync.Mutex),
	}
}

// userLock returns the mutex serializing commits for one username. Two
// concurrent commits racing on the same history would otherwise read the
// same last version and both claim the same next number.
func (s *Store) userLock(username string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.locks[username]
	if !ok {
		l = &sync.Mutex{}
		s.locks[username] = l
	}
	return l
}

// Commit persists a run as the next version of the user's history and
// returns the assigned version number. The whole commit runs in one
// transaction under the user's lock.
func (s *Store) Commit(run models.ScheduleRun, username string) (int, error) {
	l := s.userLock(username)
	l.Lock()
	defer l.Unlock()

	version := 0
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var hist UserSchedule
		if err := tx.Where(UserSchedule{Username: username}).FirstOrCreate(&hist).Error; err != nil {
			return err
		}

		next := 1
		var last ScheduleVersion
		err := tx.Where("user_schedule_id = ?", hist.ID).Order("version desc").First(&last).Error
		if err == nil {
			next = last.Version + 1
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		ver := ScheduleVersion{
			UserScheduleID: hist.ID,
			Version:        next,
			Shifts:         toRecords(run),
		}
		if err := tx.Create(&ver).Error; err != nil {
			return err
		}

		var versions []ScheduleVersion
		if err := tx.Where("user_schedule_id = ?", hist.ID).Order("version asc").Find(&versions).Error; err != nil {
			return err
		}
		for _, old := range overflow(versions, MaxVersions) {
			// Version row only; its shift records orphan.
			if err := tx.Delete(&ScheduleVersion{}, old.ID).Error; err != nil {
				return err
			}
		}

		version = next
		return nil
	})
	if err != nil {
		return 0, &PersistenceError{Op: "commit", Err: err}
	}
	return version, nil
}

// overflow returns the oldest entries beyond the capacity of the bounded
// version history, oldest first. Input must be sorted ascending by version.
func overflow(versions []ScheduleVersion, capacity int) []ScheduleVersion {
	if len(versions) <= capacity {
		return nil
	}
	return versions[:len(versions)-capacity]
}

// History returns a user's retained versions, ascending by version number,
// or ErrNoHistory if the user never committed a schedule.
func (s *Store) History(username string) (models.HistoryResponse, error) {
	var hist UserSchedule
	err := s.db.
		Preload("Versions", func(db *gorm.DB) *gorm.DB { return db.Order("version asc") }).
		Preload("Versions.Shifts", func(db *gorm.DB) *gorm.DB { return db.Order("id asc") }).
		Preload("Versions.Shifts.Workers", func(db *gorm.DB) *gorm.DB { return db.Order("position asc") }).
		Where("username = ?", username).
		First(&hist).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.HistoryResponse{}, ErrNoHistory
	}
	if err != nil {
		return models.HistoryResponse{}, &PersistenceError{Op: "history", Err: err}
	}

	resp := models.HistoryResponse{
		Username: hist.Username,
		Versions: make([]models.VersionEntry, 0, len(hist.Versions)),
	}
	for _, v := range hist.Versions {
		entry := models.VersionEntry{
			Version:   v.Version,
			Schedules: make([]models.ShiftResult, 0, len(v.Shifts)),
		}
		for _, rec := range v.Shifts {
			entry.Schedules = append(entry.Schedules, toResult(rec))
		}
		resp.Versions = append(resp.Versions, entry)
	}
	return resp, nil
}

func toRecords(run models.ScheduleRun) []ShiftRecord {
	records := make([]ShiftRecord, 0, len(run))
	for _, shift := range run {
		workers := make([]WorkerAssignment, 0, len(shift.Workers))
		for i, a := range shift.Workers {
			workers = append(workers, WorkerAssignment{
				Position:   i,
				WorkerID:   a.WorkerID,
				WorkerName: a.WorkerName,
				HourlyCost: a.HourlyCost,
			})
		}
		records = append(records, ShiftRecord{
			RecordID:  uuid.NewString(),
			Date:      shift.Date,
			StartTime: shift.StartTime,
			EndTime:   shift.EndTime,
			Skill:     shift.Skill,
			Shortfall: shift.Shortfall,
			Message:   shift.Message,
			Workers:   workers,
		})
	}
	return records
}

func toResult(rec ShiftRecord) models.ShiftResult {
	workers := make([]models.Assignment, 0, len(rec.Workers))
	for _, w := range rec.Workers {
		workers = append(workers, models.Assignment{
			WorkerID:   w.WorkerID,
			WorkerName: w.WorkerName,
			HourlyCost: w.HourlyCost,
		})
	}
	return models.ShiftResult{
		Date:      rec.Date,
		StartTime: rec.StartTime,
		EndTime:   rec.EndTime,
		Skill:     rec.Skill,
		Workers:   workers,
		Shortfall: rec.Shortfall,
		Message:   rec.Message,
	}
}
