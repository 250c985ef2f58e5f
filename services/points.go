package services

import (
	"labtrack-backend/models"
)

// AccumulatePoints totals the points each assigned worker earns for the given
// activities, looking up each activity's name in the point table. Activities
// without a table entry award 0 points; workers whose total is 0 are omitted.
func AccumulatePoints(activities []models.Activity, table map[string]int) map[uint]int {
	totals := make(map[uint]int)
	for _, a := range activities {
		points := table[a.Activity]
		if points == 0 {
			continue
		}
		for _, u := range a.Assignees {
			totals[u.ID] += points
		}
	}
	return totals
}
