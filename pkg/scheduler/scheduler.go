// Package scheduler implements the greedy assignment engine: it translates
// raw demand, cost and worker tables into cost-minimal shift assignments.
// Assignment is a deterministic per-slot heuristic, not an optimal solver,
// and it does not prevent a worker from being booked into two overlapping
// slots within one run.
package scheduler

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/AhiyaSchneider/server-FinalProject/pkg/csvdata"
	"github.com/AhiyaSchneider/server-FinalProject/pkg/models"
)

// BuildDemand converts demand rows into demand slots, splitting the
// "Time Interval" column into start and end times.
func BuildDemand(rows []csvdata.Row) ([]models.DemandSlot, error) {
	slots := make([]models.DemandSlot, 0, len(rows))
	for i, row := range rows {
		interval := row.Get("Time Interval")
		parts := strings.Split(interval, "-")
		if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
			return nil, &ValidationError{Dataset: "demand", Row: i + 1, Err: ErrBadTimeInterval}
		}

		count, err := strconv.Atoi(row.Get("Demand"))
		if err != nil || count < 0 {
			return nil, &ValidationError{Dataset: "demand", Row: i + 1, Err: ErrBadDemandCount}
		}

		slots = append(slots, models.DemandSlot{
			Date:          row.Get("Date"),
			StartTime:     strings.TrimSpace(parts[0]),
			EndTime:       strings.TrimSpace(parts[1]),
			Skill:         row.Get("Worker Type"),
			RequiredCount: count,
		})
	}
	return slots, nil
}

// BuildWorkers converts worker rows into worker records. Header naming
// varies across upstream datasets, so Name and Skill accept fallbacks.
func BuildWorkers(rows []csvdata.Row) ([]models.WorkerRecord, error) {
	workers := make([]models.WorkerRecord, 0, len(rows))
	for i, row := range rows {
		id := row.Get("Worker ID")
		if id == "" {
			return nil, &ValidationError{Dataset: "workers", Row: i + 1, Err: ErrMissingWorkerID}
		}
		workers = append(workers, models.WorkerRecord{
			WorkerID:       id,
			Name:           row.Get("Worker Name", "Name"),
			Skill:          row.Get("Skill", "Skills"),
			AvailableFrom:  row.Get("Available From"),
			AvailableUntil: row.Get("Available Until"),
		})
	}
	return workers, nil
}

// CostTable resolves hourly rates by worker ID or by skill. Worker-keyed
// entries win over skill-keyed ones; a worker with no entry under either
// key resolves to the unknown-cost sentinel.
type CostTable struct {
	byWorker map[string]int
	bySkill  map[string]int
}

// BuildCostTable converts cost rows into a lookup table. Each row carries
// an "Hourly Cost" keyed by "Worker ID" or "Skill", depending on the shape
// of the uploaded dataset.
func BuildCostTable(rows []csvdata.Row) (*CostTable, error) {
	t := &CostTable{
		byWorker: make(map[string]int),
		bySkill:  make(map[string]int),
	}
	for i, row := range rows {
		cost, err := strconv.Atoi(row.Get("Hourly Cost"))
		if err != nil {
			return nil, &ValidationError{Dataset: "cost", Row: i + 1, Err: ErrBadHourlyCost}
		}
		switch {
		case row.Get("Worker ID") != "":
			t.byWorker[row.Get("Worker ID")] = cost
		case row.Get("Skill") != "":
			t.bySkill[row.Get("Skill")] = cost
		default:
			return nil, &ValidationError{Dataset: "cost", Row: i + 1, Err: ErrMissingCostKey}
		}
	}
	return t, nil
}

// Resolve looks up the hourly rate for a worker staffing a slot of the
// given skill. Absent entries resolve to unknown, never to zero: unpriced
// workers must sort last, not first.
func (t *CostTable) Resolve(workerID, skill string) models.Cost {
	if c, ok := t.byWorker[workerID]; ok {
		return models.KnownCost(c)
	}
	if c, ok := t.bySkill[skill]; ok {
		return models.KnownCost(c)
	}
	return models.UnknownCost
}

// Eligible reports whether a worker can staff a slot: exact skill match and
// an availability window covering the whole slot. Times compare as raw
// strings, so inputs must use a sortable zero-padded format. Workers with
// missing availability are never eligible.
func Eligible(w models.WorkerRecord, slot models.DemandSlot) bool {
	if w.Skill != slot.Skill {
		return false
	}
	if w.AvailableFrom == "" || w.AvailableUntil == "" {
		return false
	}
	return w.AvailableFrom <= slot.StartTime && w.AvailableUntil >= slot.EndTime
}

// Assign staffs each demand slot in input order: filter eligible workers,
// resolve their costs, stable-sort ascending by cost and take the first
// RequiredCount. Fully deterministic for identical inputs.
func Assign(slots []models.DemandSlot, workers []models.WorkerRecord, costs *CostTable) models.ScheduleRun {
	run := make(models.ScheduleRun, 0, len(slots))

	for _, slot := range slots {
		type candidate struct {
			worker models.WorkerRecord
			cost   models.Cost
		}

		var candidates []candidate
		for _, w := range workers {
			if Eligible(w, slot) {
				candidates = append(candidates, candidate{worker: w, cost: costs.Resolve(w.WorkerID, slot.Skill)})
			}
		}

		// Stable keeps dataset order among equal-cost workers.
		sort.SliceStable(candidates, func(i, j int) bool {
			return candidates[i].cost.Less(candidates[j].cost)
		})

		take := slot.RequiredCount
		if take > len(candidates) {
			take = len(candidates)
		}

		assigned := make([]models.Assignment, 0, take)
		for _, c := range candidates[:take] {
			assigned = append(assigned, models.Assignment{
				WorkerID:   c.worker.WorkerID,
				WorkerName: c.worker.Name,
				HourlyCost: c.cost.Amount0(),
			})
		}

		shortfall := slot.RequiredCount - take
		message := fmt.Sprintf("Demand for %s on %s (%s-%s) fully met",
			slot.Skill, slot.Date, slot.StartTime, slot.EndTime)
		if shortfall > 0 {
			message = fmt.Sprintf("Not enough workers to meet demand for %s on %s (%s-%s): short %d",
				slot.Skill, slot.Date, slot.StartTime, slot.EndTime, shortfall)
		}

		run = append(run, models.ShiftResult{
			Date:      slot.Date,
			StartTime: slot.StartTime,
			EndTime:   slot.EndTime,
			Skill:     slot.Skill,
			Workers:   assigned,
			Shortfall: shortfall,
			Message:   message,
		})
	}

	return run
}

// Assemble packages a run and its committed version number into the
// response shape. No logic beyond shape translation.
func Assemble(run models.ScheduleRun, version int) models.ScheduleResponse {
	return models.ScheduleResponse{
		Message:  "Schedule created successfully",
		Version:  version,
		Schedule: run,
	}
}
