package services

import (
	"strings"
	"testing"
	"time"

	"labtrack-backend/models"
)

func baseWorkOrder() models.WorkOrder {
	return models.WorkOrder{
		ID:         1,
		CustomID:   "2608291 C ACME",
		Date:       time.Date(2026, 8, 29, 0, 0, 0, 0, time.UTC),
		Type:       "Calibracion",
		ClientID:   3,
		Product:    "Balanza",
		Brand:      "Mettler",
		Status:     models.WorkOrderStatusPending,
		Authorized: false,
	}
}

func TestDiffWorkOrders(t *testing.T) {
	t.Run("identical rows produce no changes", func(t *testing.T) {
		wo := baseWorkOrder()
		changes := DiffWorkOrders(wo, wo, nil, nil)
		if len(changes) != 0 {
			t.Fatalf("expected no changes, got %v", changes)
		}
	})

	t.Run("volatile timestamps are ignored", func(t *testing.T) {
		before := baseWorkOrder()
		after := baseWorkOrder()
		after.CreatedAt = time.Now()
		after.UpdatedAt = time.Now()

		if changes := DiffWorkOrders(before, after, nil, nil); len(changes) != 0 {
			t.Fatalf("expected no changes, got %v", changes)
		}
	})

	t.Run("scalar change described with old and new value", func(t *testing.T) {
		before := baseWorkOrder()
		after := baseWorkOrder()
		after.Product = "Pipeta"

		changes := DiffWorkOrders(before, after, nil, nil)
		if len(changes) != 1 {
			t.Fatalf("expected 1 change, got %v", changes)
		}
		want := `Field "Product" changed from "Balanza" to "Pipeta"`
		if changes[0] != want {
			t.Fatalf("expected %q, got %q", want, changes[0])
		}
	})

	t.Run("multiple scalar changes all reported", func(t *testing.T) {
		before := baseWorkOrder()
		after := baseWorkOrder()
		after.Brand = "Sartorius"
		after.Authorized = true
		after.QuotationAmount = 1500

		changes := DiffWorkOrders(before, after, nil, nil)
		if len(changes) != 3 {
			t.Fatalf("expected 3 changes, got %v", changes)
		}
	})
}

func TestDiffWorkOrdersActivities(t *testing.T) {
	wo := baseWorkOrder()

	t.Run("added activity reports its assignees", func(t *testing.T) {
		after := []ActivitySnapshot{{ID: 10, Name: "Calibracion", Assignees: []string{"ana"}}}

		changes := DiffWorkOrders(wo, wo, nil, after)
		if len(changes) != 2 {
			t.Fatalf("expected 2 changes, got %v", changes)
		}
		if changes[0] != `Activity "Calibracion" added` {
			t.Fatalf("unexpected first change: %q", changes[0])
		}
		if changes[1] != `ana assigned to activity "Calibracion"` {
			t.Fatalf("unexpected second change: %q", changes[1])
		}
	})

	t.Run("removed activity named", func(t *testing.T) {
		before := []ActivitySnapshot{{ID: 10, Name: "Emision", Assignees: []string{"bruno"}}}

		changes := DiffWorkOrders(wo, wo, before, nil)
		if len(changes) != 1 {
			t.Fatalf("expected 1 change, got %v", changes)
		}
		if changes[0] != `Activity "Emision" removed` {
			t.Fatalf("unexpected change: %q", changes[0])
		}
	})

	t.Run("rename and reprice reported", func(t *testing.T) {
		before := []ActivitySnapshot{{ID: 10, Name: "Calibracion", Price: 100}}
		after := []ActivitySnapshot{{ID: 10, Name: "Calibracion externa", Price: 120}}

		changes := DiffWorkOrders(wo, wo, before, after)
		if len(changes) != 2 {
			t.Fatalf("expected 2 changes, got %v", changes)
		}
		if !strings.Contains(changes[0], "renamed") {
			t.Fatalf("expected rename change, got %q", changes[0])
		}
		if !strings.Contains(changes[1], "price changed from 100.00 to 120.00") {
			t.Fatalf("expected reprice change, got %q", changes[1])
		}
	})

	t.Run("assignment diff reports only real changes", func(t *testing.T) {
		before := []ActivitySnapshot{{ID: 10, Name: "Calibracion", Assignees: []string{"ana", "bruno"}}}
		after := []ActivitySnapshot{{ID: 10, Name: "Calibracion", Assignees: []string{"bruno", "carla"}}}

		changes := DiffWorkOrders(wo, wo, before, after)
		if len(changes) != 2 {
			t.Fatalf("expected 2 changes, got %v", changes)
		}
		if changes[0] != `carla assigned to activity "Calibracion"` {
			t.Fatalf("unexpected change: %q", changes[0])
		}
		if changes[1] != `ana unassigned from activity "Calibracion"` {
			t.Fatalf("unexpected change: %q", changes[1])
		}
	})

	t.Run("deterministic for the same input", func(t *testing.T) {
		before := []ActivitySnapshot{{ID: 10, Name: "Calibracion", Assignees: []string{"ana"}}}
		after := []ActivitySnapshot{
			{ID: 10, Name: "Calibracion", Assignees: []string{"ana", "bruno"}},
			{ID: 0, Name: "Emision"},
		}

		first := DiffWorkOrders(wo, wo, before, after)
		for i := 0; i < 10; i++ {
			again := DiffWorkOrders(wo, wo, before, after)
			if len(again) != len(first) {
				t.Fatalf("non-deterministic diff: %v vs %v", first, again)
			}
			for j := range first {
				if first[j] != again[j] {
					t.Fatalf("non-deterministic diff at %d: %q vs %q", j, first[j], again[j])
				}
			}
		}
	})
}

func TestSnapshotActivities(t *testing.T) {
	activities := []models.Activity{
		{
			ID:           10,
			Activity:     "Calibracion",
			Norma:        "ISO 17025",
			PrecioSinIVA: 100,
			Assignees: []models.User{
				{ID: 2, Name: "bruno"},
				{ID: 1, Name: "ana"},
			},
		},
	}

	snaps := SnapshotActivities(activities)
	if len(snaps) != 1 {
		t.Fatalf("expected 1 snapshot, got %d", len(snaps))
	}
	s := snaps[0]
	if s.ID != 10 || s.Name != "Calibracion" || s.Norma != "ISO 17025" || s.Price != 100 {
		t.Fatalf("unexpected snapshot: %+v", s)
	}
	// Names come out sorted so diffs are stable.
	if s.Assignees[0] != "ana" || s.Assignees[1] != "bruno" {
		t.Fatalf("expected sorted assignees, got %v", s.Assignees)
	}
}
