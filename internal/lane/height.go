package lane

import (
	"github.com/alexanderramin/chrona/internal/domain"
)

// Metrics are the fixed geometry constants for lane heights.
type Metrics struct {
	MinHeight    int
	HeaderHeight int
	Padding      int
	ItemUnit     int // height contributed by each stacked task
	GapUnit      int // gap contributed by each stacked task
}

// DefaultMetrics matches the standard row geometry of the timeline view.
var DefaultMetrics = Metrics{
	MinHeight:    48,
	HeaderHeight: 24,
	Padding:      8,
	ItemUnit:     22,
	GapUnit:      4,
}

// Height returns the pixel height for a stack of count same-day tasks.
func (m Metrics) Height(count int) int {
	h := m.HeaderHeight + m.Padding + count*m.ItemUnit + count*m.GapUnit
	if h < m.MinHeight {
		return m.MinHeight
	}
	return h
}

// Heights computes each lane's height from the deepest same-day task stack
// across the lane's sub-projects. A task counts toward a sub-project only if
// its reference is valid for that sub-project's own project; dangling
// references are ignored here and rendered as ungrouped elsewhere.
func Heights(lanes []Lane, tasks []*domain.Task, m Metrics) []int {
	heights := make([]int, len(lanes))
	for i, ln := range lanes {
		maxCount := 0
		for _, sp := range ln.SubProjects {
			if c := maxSameDayCount(sp, tasks); c > maxCount {
				maxCount = c
			}
		}
		heights[i] = m.Height(maxCount)
	}
	return heights
}

// maxSameDayCount returns the largest number of the sub-project's tasks
// falling on a single day.
func maxSameDayCount(sp *domain.SubProject, tasks []*domain.Task) int {
	perDay := map[string]int{}
	max := 0
	for _, t := range tasks {
		if !t.GroupedUnder(sp) {
			continue
		}
		day := domain.FormatDay(t.Date)
		perDay[day]++
		if perDay[day] > max {
			max = perDay[day]
		}
	}
	return max
}
