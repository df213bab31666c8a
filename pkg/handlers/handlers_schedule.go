package handlers

import (
	"errors"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/AhiyaSchneider/server-FinalProject/pkg/csvdata"
	"github.com/AhiyaSchneider/server-FinalProject/pkg/database"
	"github.com/AhiyaSchneider/server-FinalProject/pkg/metrics"
	"github.com/AhiyaSchneider/server-FinalProject/pkg/models"
	"github.com/AhiyaSchneider/server-FinalProject/pkg/scheduler"
	"github.com/AhiyaSchneider/server-FinalProject/pkg/store"
)

// Upload accepts the three CSV datasets in one multipart request, computes
// a schedule and commits it as the user's next version. All three files
// must be present: the engine only ever sees fully assembled datasets.
func (h *Handler) Upload(c *gin.Context) {
	username := c.PostForm("username")
	if username == "" {
		username = c.GetString("username")
	}
	if username == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Username is required"})
		return
	}

	demandFile, _ := c.FormFile("demandFile")
	costFile, _ := c.FormFile("costFile")
	workersFile, _ := c.FormFile("workersFile")
	if demandFile == nil || costFile == nil || workersFile == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "demandFile, costFile and workersFile are all required"})
		return
	}

	demandRows, err := parseUpload(demandFile)
	if err != nil {
		metrics.ParseErrors.WithLabelValues("demand").Inc()
		c.JSON(http.StatusBadRequest, gin.H{"error": "demand: " + err.Error()})
		return
	}
	costRows, err := parseUpload(costFile)
	if err != nil {
		metrics.ParseErrors.WithLabelValues("cost").Inc()
		c.JSON(http.StatusBadRequest, gin.H{"error": "cost: " + err.Error()})
		return
	}
	workerRows, err := parseUpload(workersFile)
	if err != nil {
		metrics.ParseErrors.WithLabelValues("workers").Inc()
		c.JSON(http.StatusBadRequest, gin.H{"error": "workers: " + err.Error()})
		return
	}

	slots, err := scheduler.BuildDemand(demandRows)
	if err != nil {
		metrics.ParseErrors.WithLabelValues("demand").Inc()
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	costs, err := scheduler.BuildCostTable(costRows)
	if err != nil {
		metrics.ParseErrors.WithLabelValues("cost").Inc()
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	workers, err := scheduler.BuildWorkers(workerRows)
	if err != nil {
		metrics.ParseErrors.WithLabelValues("workers").Inc()
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	assignStart := time.Now()
	run := scheduler.Assign(slots, workers, costs)
	metrics.AssignDuration.Observe(time.Since(assignStart).Seconds())

	shortfalls := 0
	for _, shift := range run {
		if shift.Shortfall > 0 {
			shortfalls++
			metrics.ShortfallSlots.Inc()
			log.Warn().
				Str("username", username).
				Str("skill", shift.Skill).
				Str("date", shift.Date).
				Str("window", shift.StartTime+"-"+shift.EndTime).
				Int("shortfall", shift.Shortfall).
				Msg("demand slot understaffed")
		}
	}

	commitStart := time.Now()
	version, err := h.Store.Commit(run, username)
	metrics.CommitDuration.Observe(time.Since(commitStart).Seconds())
	if err != nil {
		var perr *store.PersistenceError
		if errors.As(err, &perr) {
			log.Error().Err(err).Str("username", username).Msg("schedule commit failed")
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not save schedule"})
		return
	}

	metrics.SchedulesCreated.Inc()
	log.Info().
		Str("username", username).
		Int("version", version).
		Int("shifts", len(run)).
		Int("understaffed", shortfalls).
		Msg("schedule committed")

	h.RecordUsage(username, len(run), totalAssigned(run))

	c.JSON(http.StatusOK, scheduler.Assemble(run, version))
}

// GetSchedule returns the persisted version history for a username.
func (h *Handler) GetSchedule(c *gin.Context) {
	username := c.Param("username")

	history, err := h.Store.History(username)
	if errors.Is(err, store.ErrNoHistory) {
		c.JSON(http.StatusNotFound, gin.H{"error": "No schedules found for user"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not fetch schedules"})
		return
	}

	c.JSON(http.StatusOK, history)
}

// RecordUsage records per-user daily usage using an efficient upsert
func (h *Handler) RecordUsage(username string, shiftCount, workerCount int) {
	today := time.Now().Format("2006-01-02")

	// Single-query upsert, supported by both Postgres and SQLite
	h.DB.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "username"}, {Name: "date"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"request_count": gorm.Expr("request_count + ?", 1),
			"total_shifts":  gorm.Expr("total_shifts + ?", shiftCount),
			"total_workers": gorm.Expr("total_workers + ?", workerCount),
		}),
	}).Create(&database.UsageRecord{
		Username:     username,
		Date:         today,
		RequestCount: 1,
		TotalShifts:  shiftCount,
		TotalWorkers: workerCount,
	})
}

func parseUpload(fh *multipart.FileHeader) ([]csvdata.Row, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return csvdata.Parse(f)
}

func totalAssigned(run models.ScheduleRun) int {
	total := 0
	for _, shift := range run {
		total += len(shift.Workers)
	}
	return total
}
