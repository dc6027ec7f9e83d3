// Package cascade computes the date shifts a sub-project reschedule implies
// for its child tasks. It is pure computation: the caller owns the batch
// apply and the remote fan-out, so the cascade is testable without any
// mutation or network machinery.
package cascade

import (
	"sort"
	"time"

	"github.com/alexanderramin/chrona/internal/domain"
)

// DatePatch republishes a new date for one task.
type DatePatch struct {
	TaskID  string
	NewDate time.Time
}

// ShiftTasks returns one patch per task grouped under the sub-project,
// shifting each task's own date by the signed day delta between the old and
// new start dates. End-date-only edits and zero deltas produce no patches.
// Tasks whose sub-project reference points at a different project are
// treated as ungrouped and never shifted.
func ShiftTasks(old, updated *domain.SubProject, tasks []*domain.Task) []DatePatch {
	delta := domain.DaysBetween(old.StartDate, updated.StartDate)
	if delta == 0 {
		return nil
	}

	var patches []DatePatch
	for _, t := range tasks {
		if !t.GroupedUnder(old) {
			continue
		}
		patches = append(patches, DatePatch{
			TaskID:  t.ID,
			NewDate: domain.AddDays(t.Date, delta),
		})
	}
	// Deterministic order for batched application.
	sort.Slice(patches, func(i, j int) bool { return patches[i].TaskID < patches[j].TaskID })
	return patches
}
