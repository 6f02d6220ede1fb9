package reload

import (
	"slices"
	"strings"
	"sync"
	"time"

	id "facilities/pkg/domain"
)

// Problem is a per-facility issue recorded during a pass. Problems never
// stop a pass on their own.
type Problem struct {
	FacilityID  string `json:"facilityId"`
	Description string `json:"description"`
}

// Timing holds the pass checkpoints. CompleteCollection is the pass clock used
// for every lastUpdated stamp and grace-period comparison.
type Timing struct {
	Start               time.Time `json:"start"`
	CompleteCollection  time.Time `json:"completeCollection"`
	Complete            time.Time `json:"complete"`
	TotalDurationMillis int64     `json:"totalDurationMillis"`
}

// Report is the frozen outcome of a pass. Identifier lists are sorted so the
// JSON form is deterministic; they are sets.
type Report struct {
	ReloadID          string    `json:"reloadId"`
	TotalFacilities   int       `json:"totalFacilities"`
	FacilitiesCreated []string  `json:"facilitiesCreated"`
	FacilitiesUpdated []string  `json:"facilitiesUpdated"`
	FacilitiesMissing []string  `json:"facilitiesMissing"`
	FacilitiesRemoved []string  `json:"facilitiesRemoved"`
	FacilitiesRevived []string  `json:"facilitiesRevived"`
	Problems          []Problem `json:"problems"`
	Timing            Timing    `json:"timing"`
}

// outcome classifies what a pass did to one facility.
type outcome string

const (
	outcomeCreated outcome = "created"
	outcomeUpdated outcome = "updated"
	outcomeMissing outcome = "missing"
	outcomeRemoved outcome = "removed"
	outcomeRevived outcome = "revived"
)

// Result accumulates a pass. All methods are safe for concurrent use by the
// pass workers.
type Result struct {
	mu       sync.Mutex
	reloadID string
	total    int
	outcomes map[outcome][]string
	problems []Problem
	timing   Timing
}

func newResult(reloadID string, total int) *Result {
	return &Result{
		reloadID: reloadID,
		total:    total,
		outcomes: make(map[outcome][]string, 5),
	}
}

func (r *Result) record(o outcome, facilityID id.FacilityID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.outcomes[o] = append(r.outcomes[o], facilityID.String())
}

func (r *Result) addProblem(facilityID, description string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.problems = append(r.problems, Problem{FacilityID: facilityID, Description: description})
}

func (r *Result) markStart(t time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.timing.Start = t
}

func (r *Result) markCollectionComplete(t time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.timing.CompleteCollection = t
}

func (r *Result) markComplete(t time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.timing.Complete = t
	r.timing.TotalDurationMillis = t.Sub(r.timing.Start).Milliseconds()
}

// Report freezes the accumulated state into a sorted snapshot.
func (r *Result) Report() *Report {
	r.mu.Lock()
	defer r.mu.Unlock()

	problems := slices.Clone(r.problems)
	if problems == nil {
		problems = []Problem{}
	}
	slices.SortStableFunc(problems, func(a, b Problem) int {
		return strings.Compare(a.FacilityID, b.FacilityID)
	})

	return &Report{
		ReloadID:          r.reloadID,
		TotalFacilities:   r.total,
		FacilitiesCreated: r.sorted(outcomeCreated),
		FacilitiesUpdated: r.sorted(outcomeUpdated),
		FacilitiesMissing: r.sorted(outcomeMissing),
		FacilitiesRemoved: r.sorted(outcomeRemoved),
		FacilitiesRevived: r.sorted(outcomeRevived),
		Problems:          problems,
		Timing:            r.timing,
	}
}

func (r *Result) sorted(o outcome) []string {
	ids := slices.Clone(r.outcomes[o])
	if ids == nil {
		return []string{}
	}
	slices.Sort(ids)
	return ids
}
