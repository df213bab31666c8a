package models

// DemandSlot represents one staffing requirement: a date, a time window and
// how many workers of a given skill it needs. Times are kept as the raw
// zero-padded "HH:MM" strings from the input so they compare lexically.
type DemandSlot struct {
	Date          string `json:"date"`
	StartTime     string `json:"startTime"`
	EndTime       string `json:"endTime"`
	Skill         string `json:"skill"`
	RequiredCount int    `json:"requiredCount"`
}

// WorkerRecord represents a worker available for assignment
type WorkerRecord struct {
	WorkerID       string `json:"workerId"`
	Name           string `json:"workerName"`
	Skill          string `json:"skill"`
	AvailableFrom  string `json:"availableFrom"`
	AvailableUntil string `json:"availableUntil"`
}

// Cost is an hourly rate that may be unknown. An unknown cost sorts after
// every known cost, so unpriced workers are picked only when no priced
// alternative remains. The zero value is Unknown.
type Cost struct {
	Amount int
	Known  bool
}

// KnownCost returns a resolved hourly rate.
func KnownCost(amount int) Cost {
	return Cost{Amount: amount, Known: true}
}

// UnknownCost is the sentinel for "no cost entry found".
var UnknownCost = Cost{}

// Less orders costs ascending, with unknown costs last.
func (c Cost) Less(other Cost) bool {
	if c.Known != other.Known {
		return c.Known
	}
	return c.Known && c.Amount < other.Amount
}

// Amount0 returns the amount for serialization, 0 when unknown.
func (c Cost) Amount0() int {
	if !c.Known {
		return 0
	}
	return c.Amount
}

// Assignment is one worker placed into one shift
type Assignment struct {
	WorkerID   string `json:"workerId"`
	WorkerName string `json:"workerName"`
	HourlyCost int    `json:"hourlyCost"`
}

// ShiftResult is the outcome of staffing one demand slot. Shortfall counts
// the headcount that could not be filled; it is a result, not an error.
type ShiftResult struct {
	Date      string       `json:"date"`
	StartTime string       `json:"startTime"`
	EndTime   string       `json:"endTime"`
	Skill     string       `json:"skill"`
	Workers   []Assignment `json:"workers"`
	Shortfall int          `json:"shortfall"`
	Message   string       `json:"message"`
}

// ScheduleRun is the ordered set of shift results produced by one engine
// invocation, in the same order as the input demand rows.
type ScheduleRun []ShiftResult

// ScheduleResponse is the data structure for the scheduling result
type ScheduleResponse struct {
	Message  string        `json:"message"`
	Version  int           `json:"version"`
	Schedule []ShiftResult `json:"schedule"`
}

// VersionEntry is one numbered snapshot in a user's history
type VersionEntry struct {
	Version   int           `json:"version"`
	Schedules []ShiftResult `json:"schedules"`
}

// HistoryResponse is a user's full retained schedule history
type HistoryResponse struct {
	Username string         `json:"username"`
	Versions []VersionEntry `json:"versions"`
}
