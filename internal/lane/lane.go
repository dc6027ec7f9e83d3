// Package lane assigns a project's sub-projects to display lanes so that no
// two ranges sharing a lane overlap in time, using the minimum number of
// lanes. Classic interval partitioning: the lane count equals the maximum
// number of sub-projects active on any single day.
package lane

import (
	"sort"
	"time"

	"github.com/alexanderramin/chrona/internal/domain"
)

// Lane is one horizontal display track.
type Lane struct {
	Index       int
	SubProjects []*domain.SubProject
}

// Pack partitions sub-projects into ordered lanes. Deterministic: candidates
// are sorted by start date, then end date, then id, and each is placed in the
// first lane whose last occupant ends before the candidate starts.
func Pack(subProjects []*domain.SubProject) []Lane {
	if len(subProjects) == 0 {
		return nil
	}

	sorted := make([]*domain.SubProject, len(subProjects))
	copy(sorted, subProjects)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		if !domain.SameDay(a.StartDate, b.StartDate) {
			return a.StartDate.Before(b.StartDate)
		}
		if !domain.SameDay(a.EndDate, b.EndDate) {
			return a.EndDate.Before(b.EndDate)
		}
		return a.ID < b.ID
	})

	var lanes []Lane
	ends := make([]time.Time, 0, 4) // current occupant end per lane

	for _, sp := range sorted {
		placed := false
		for i := range lanes {
			if domain.DayOf(ends[i]).Before(domain.DayOf(sp.StartDate)) {
				lanes[i].SubProjects = append(lanes[i].SubProjects, sp)
				ends[i] = sp.EndDate
				placed = true
				break
			}
		}
		if !placed {
			lanes = append(lanes, Lane{Index: len(lanes), SubProjects: []*domain.SubProject{sp}})
			ends = append(ends, sp.EndDate)
		}
	}
	return lanes
}
