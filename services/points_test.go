package services

import (
	"testing"

	"labtrack-backend/models"
)

func TestAccumulatePoints(t *testing.T) {
	userA := models.User{ID: 1, Name: "ana"}
	userB := models.User{ID: 2, Name: "bruno"}

	table := map[string]int{"Calibracion": 1, "Ensayo": 2}

	t.Run("points follow the table, missing entries award zero", func(t *testing.T) {
		activities := []models.Activity{
			{Activity: "Calibracion", Assignees: []models.User{userA}},
			{Activity: "Emision", Assignees: []models.User{userB}},
		}

		totals := AccumulatePoints(activities, table)
		if len(totals) != 1 {
			t.Fatalf("expected 1 worker with points, got %d", len(totals))
		}
		if totals[userA.ID] != 1 {
			t.Fatalf("expected 1 point for ana, got %d", totals[userA.ID])
		}
		if _, ok := totals[userB.ID]; ok {
			t.Fatal("expected bruno to earn nothing")
		}
	})

	t.Run("points accumulate across activities and workers", func(t *testing.T) {
		activities := []models.Activity{
			{Activity: "Calibracion", Assignees: []models.User{userA, userB}},
			{Activity: "Ensayo", Assignees: []models.User{userA}},
		}

		totals := AccumulatePoints(activities, table)
		if totals[userA.ID] != 3 {
			t.Fatalf("expected 3 points for ana, got %d", totals[userA.ID])
		}
		if totals[userB.ID] != 1 {
			t.Fatalf("expected 1 point for bruno, got %d", totals[userB.ID])
		}
	})

	t.Run("no rules means no payouts", func(t *testing.T) {
		activities := []models.Activity{
			{Activity: "Calibracion", Assignees: []models.User{userA}},
		}
		totals := AccumulatePoints(activities, map[string]int{})
		if len(totals) != 0 {
			t.Fatalf("expected no payouts, got %v", totals)
		}
	})
}
