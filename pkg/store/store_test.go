package store_test

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/AhiyaSchneider/server-FinalProject/pkg/models"
	"github.com/AhiyaSchneider/server-FinalProject/pkg/store"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	// Shared cache keeps every pooled connection on the same in-memory DB.
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&store.UserSchedule{},
		&store.ScheduleVersion{},
		&store.ShiftRecord{},
		&store.WorkerAssignment{},
	))
	return db
}

func sampleRun(tag string) models.ScheduleRun {
	return models.ScheduleRun{
		{
			Date:      "2024-01-01",
			StartTime: "09:00",
			EndTime:   "17:00",
			Skill:     "Nurse",
			Workers: []models.Assignment{
				{WorkerID: "W1", WorkerName: "Alice " + tag, HourlyCost: 20},
				{WorkerID: "W2", WorkerName: "Bob " + tag, HourlyCost: 25},
			},
			Message: "Demand for Nurse on 2024-01-01 (09:00-17:00) fully met",
		},
	}
}

func TestCommit_VersionNumbering(t *testing.T) {
	s := store.New(newTestDB(t))

	v1, err := s.Commit(sampleRun("a"), "alice")
	require.NoError(t, err)
	assert.Equal(t, 1, v1)

	v2, err := s.Commit(sampleRun("b"), "alice")
	require.NoError(t, err)
	assert.Equal(t, 2, v2)

	// Another user's history starts at 1 independently
	v, err := s.Commit(sampleRun("c"), "bob")
	require.NoError(t, err)
	assert.Equal(t, 1, v)
}

func TestCommit_EvictsOldestBeyondCap(t *testing.T) {
	db := newTestDB(t)
	s := store.New(db)

	for i := 0; i < store.MaxVersions+1; i++ {
		_, err := s.Commit(sampleRun(fmt.Sprintf("%d", i)), "alice")
		require.NoError(t, err)
	}

	history, err := s.History("alice")
	require.NoError(t, err)
	require.Len(t, history.Versions, store.MaxVersions)

	// The 5 most recent versions remain, consecutively numbered
	for i, entry := range history.Versions {
		assert.Equal(t, i+2, entry.Version)
	}

	// Evicted shift records orphan rather than cascade-delete
	var recordCount int64
	require.NoError(t, db.Model(&store.ShiftRecord{}).Count(&recordCount).Error)
	assert.Equal(t, int64(store.MaxVersions+1), recordCount)
}

func TestCommit_ConcurrentSameUser(t *testing.T) {
	s := store.New(newTestDB(t))

	const runs = 8
	versions := make([]int, runs)
	errs := make([]error, runs)

	var wg sync.WaitGroup
	for i := 0; i < runs; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			versions[i], errs[i] = s.Commit(sampleRun(fmt.Sprintf("%d", i)), "alice")
		}(i)
	}
	wg.Wait()

	seen := make(map[int]bool)
	for i := 0; i < runs; i++ {
		require.NoError(t, errs[i])
		assert.False(t, seen[versions[i]], "version %d assigned twice", versions[i])
		seen[versions[i]] = true
	}
}

func TestCommit_RollbackOnFailure(t *testing.T) {
	db := newTestDB(t)
	s := store.New(db)

	// Force the insert to fail mid-commit
	require.NoError(t, db.Migrator().DropTable(&store.WorkerAssignment{}))

	_, err := s.Commit(sampleRun("a"), "alice")
	require.Error(t, err)

	var perr *store.PersistenceError
	require.ErrorAs(t, err, &perr)

	// Nothing partially applied: not even the history head survives
	_, err = s.History("alice")
	assert.ErrorIs(t, err, store.ErrNoHistory)
}

func TestHistory(t *testing.T) {
	s := store.New(newTestDB(t))

	_, err := s.History("nobody")
	assert.ErrorIs(t, err, store.ErrNoHistory)

	run := sampleRun("a")
	_, err = s.Commit(run, "alice")
	require.NoError(t, err)

	history, err := s.History("alice")
	require.NoError(t, err)
	assert.Equal(t, "alice", history.Username)
	require.Len(t, history.Versions, 1)
	assert.Equal(t, 1, history.Versions[0].Version)
	require.Len(t, history.Versions[0].Schedules, 1)

	got := history.Versions[0].Schedules[0]
	assert.Equal(t, run[0].Date, got.Date)
	assert.Equal(t, run[0].Message, got.Message)
	// Assignment order survives the round trip
	require.Len(t, got.Workers, 2)
	assert.Equal(t, "W1", got.Workers[0].WorkerID)
	assert.Equal(t, "W2", got.Workers[1].WorkerID)
}
