package services

import (
	"errors"
	"reflect"
	"sync"
	"testing"
	"time"

	"labtrack-backend/models"
)

type fakeNotificationStore struct {
	mu     sync.Mutex
	rows   []models.Notification
	nextID uint
	fail   bool
}

func (f *fakeNotificationStore) Create(n *models.Notification) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail {
		return errors.New("store down")
	}
	f.nextID++
	n.ID = f.nextID
	f.rows = append(f.rows, *n)
	return nil
}

func (f *fakeNotificationStore) ListByUser(userID uint) ([]models.Notification, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Notification
	for i := len(f.rows) - 1; i >= 0; i-- {
		if f.rows[i].UserID == userID {
			out = append(out, f.rows[i])
		}
	}
	return out, nil
}

func (f *fakeNotificationStore) MarkRead(userID, notificationID uint) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.rows {
		if f.rows[i].ID == notificationID && f.rows[i].UserID == userID {
			f.rows[i].Read = true
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeNotificationStore) UserPhone(userID uint) (string, error) {
	return "", nil
}

func receive(t *testing.T, ch <-chan models.Notification) models.Notification {
	t.Helper()
	select {
	case n := <-ch:
		return n
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for a pushed notification")
		return models.Notification{}
	}
}

func TestNotifier(t *testing.T) {
	t.Run("disconnected user gets a durable row only", func(t *testing.T) {
		store := &fakeNotificationStore{}
		n := &Notifier{store: store, hub: NewHub()}

		n.Notify(5, "work order ready", nil)

		pulled, err := n.Pull(5)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(pulled) != 1 || pulled[0].Message != "work order ready" {
			t.Fatalf("expected the persisted notification, got %v", pulled)
		}
	})

	t.Run("connected user gets the persisted record pushed", func(t *testing.T) {
		store := &fakeNotificationStore{}
		hub := NewHub()
		n := &Notifier{store: store, hub: hub}

		events, cancel := hub.Subscribe(5)
		defer cancel()

		woID := uint(9)
		n.Notify(5, "work order ready", &woID)

		got := receive(t, events)
		if len(store.rows) != 1 {
			t.Fatalf("expected 1 stored row, got %d", len(store.rows))
		}
		if !reflect.DeepEqual(got, store.rows[0]) {
			t.Fatalf("pushed payload %+v does not match persisted row %+v", got, store.rows[0])
		}
		if got.ID == 0 || got.CreatedAt.IsZero() {
			t.Fatalf("pushed payload missing assigned id or timestamp: %+v", got)
		}
	})

	t.Run("pull returns newest first", func(t *testing.T) {
		store := &fakeNotificationStore{}
		n := &Notifier{store: store, hub: NewHub()}

		n.Notify(5, "first", nil)
		n.Notify(5, "second", nil)
		n.Notify(6, "other user", nil)

		pulled, err := n.Pull(5)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(pulled) != 2 || pulled[0].Message != "second" || pulled[1].Message != "first" {
			t.Fatalf("unexpected pull order: %v", pulled)
		}
	})

	t.Run("persist failure is swallowed and nothing pushed", func(t *testing.T) {
		store := &fakeNotificationStore{fail: true}
		hub := NewHub()
		n := &Notifier{store: store, hub: hub}

		events, cancel := hub.Subscribe(5)
		defer cancel()

		n.Notify(5, "never arrives", nil)

		select {
		case got := <-events:
			t.Fatalf("expected no push, got %+v", got)
		case <-time.After(50 * time.Millisecond):
		}
	})

	t.Run("mark read unknown id reports not found", func(t *testing.T) {
		store := &fakeNotificationStore{}
		n := &Notifier{store: store, hub: NewHub()}

		if err := n.MarkRead(5, 99); !errors.Is(err, ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("mark read flags the caller's row", func(t *testing.T) {
		store := &fakeNotificationStore{}
		n := &Notifier{store: store, hub: NewHub()}

		n.Notify(5, "work order ready", nil)
		if err := n.MarkRead(5, 1); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		pulled, _ := n.Pull(5)
		if !pulled[0].Read {
			t.Fatal("expected notification to be marked read")
		}
	})
}

func TestHub(t *testing.T) {
	t.Run("push reaches every live connection of the user", func(t *testing.T) {
		hub := NewHub()
		first, cancelFirst := hub.Subscribe(5)
		second, cancelSecond := hub.Subscribe(5)
		defer cancelFirst()
		defer cancelSecond()

		delivered := hub.Push(models.Notification{ID: 1, UserID: 5, Message: "hello"})
		if delivered != 2 {
			t.Fatalf("expected delivery to 2 connections, got %d", delivered)
		}
		if got := receive(t, first); got.Message != "hello" {
			t.Fatalf("unexpected payload: %+v", got)
		}
		if got := receive(t, second); got.Message != "hello" {
			t.Fatalf("unexpected payload: %+v", got)
		}
	})

	t.Run("push only targets the notification's user", func(t *testing.T) {
		hub := NewHub()
		other, cancel := hub.Subscribe(6)
		defer cancel()

		if delivered := hub.Push(models.Notification{UserID: 5}); delivered != 0 {
			t.Fatalf("expected no deliveries, got %d", delivered)
		}
		select {
		case got := <-other:
			t.Fatalf("expected nothing for user 6, got %+v", got)
		case <-time.After(50 * time.Millisecond):
		}
	})

	t.Run("cancel deregisters the connection", func(t *testing.T) {
		hub := NewHub()
		_, cancel := hub.Subscribe(5)
		cancel()

		if hub.Connected(5) {
			t.Fatal("expected user to be disconnected")
		}
		if delivered := hub.Push(models.Notification{UserID: 5}); delivered != 0 {
			t.Fatalf("expected no deliveries, got %d", delivered)
		}
	})

	t.Run("cancel of one connection leaves the other alive", func(t *testing.T) {
		hub := NewHub()
		survivor, cancelSurvivor := hub.Subscribe(5)
		_, cancelOther := hub.Subscribe(5)
		defer cancelSurvivor()

		cancelOther()

		if delivered := hub.Push(models.Notification{UserID: 5, Message: "still here"}); delivered != 1 {
			t.Fatalf("expected delivery to the surviving connection, got %d", delivered)
		}
		if got := receive(t, survivor); got.Message != "still here" {
			t.Fatalf("unexpected payload: %+v", got)
		}
	})

	t.Run("slow subscriber misses messages instead of blocking", func(t *testing.T) {
		hub := NewHub()
		_, cancel := hub.Subscribe(5)
		defer cancel()

		// Fill the buffer and keep pushing; none of these may block.
		for i := 0; i < 100; i++ {
			hub.Push(models.Notification{UserID: 5})
		}
	})

	t.Run("safe under concurrent use", func(t *testing.T) {
		hub := NewHub()
		var wg sync.WaitGroup
		for i := 0; i < 8; i++ {
			wg.Add(1)
			go func(userID uint) {
				defer wg.Done()
				for j := 0; j < 50; j++ {
					ch, cancel := hub.Subscribe(userID)
					hub.Push(models.Notification{UserID: userID})
					select {
					case <-ch:
					default:
					}
					cancel()
				}
			}(uint(i % 3))
		}
		wg.Wait()
	})
}
