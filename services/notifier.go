package services

import (
	"log"
	"os"
	"sync"
	"time"

	"labtrack-backend/config"
	"labtrack-backend/models"

	"github.com/google/uuid"
	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
	"gorm.io/gorm"
)

// Hub is the registry of live notification subscriptions. A user may hold
// several open connections at once; each gets its own buffered channel and
// each receives every push. Channels are never closed by the hub — a
// subscriber stops reading when its own request context ends and then calls
// the cancel function returned by Subscribe.
type Hub struct {
	mu   sync.RWMutex
	subs map[uint]map[uuid.UUID]chan models.Notification
}

func NewHub() *Hub {
	return &Hub{subs: make(map[uint]map[uuid.UUID]chan models.Notification)}
}

// Subscribe registers a live subscription for the user and returns the
// receive channel plus a function that deregisters it.
func (h *Hub) Subscribe(userID uint) (<-chan models.Notification, func()) {
	ch := make(chan models.Notification, 16)
	id := uuid.New()

	h.mu.Lock()
	if h.subs[userID] == nil {
		h.subs[userID] = make(map[uuid.UUID]chan models.Notification)
	}
	h.subs[userID][id] = ch
	h.mu.Unlock()

	cancel := func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		if conns, ok := h.subs[userID]; ok {
			delete(conns, id)
			if len(conns) == 0 {
				delete(h.subs, userID)
			}
		}
	}
	return ch, cancel
}

// Push delivers the notification to every live subscription of its user.
// Sends never block: a subscriber that stopped draining its channel simply
// misses the message. Returns how many subscriptions received it.
func (h *Hub) Push(n models.Notification) int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	delivered := 0
	for _, ch := range h.subs[n.UserID] {
		select {
		case ch <- n:
			delivered++
		default:
		}
	}
	return delivered
}

// Connected reports whether the user holds at least one live subscription.
func (h *Hub) Connected(userID uint) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs[userID]) > 0
}

// NotificationStore is the persistence surface the notifier needs; tests
// swap in a fake.
type NotificationStore interface {
	Create(n *models.Notification) error
	ListByUser(userID uint) ([]models.Notification, error)
	MarkRead(userID, notificationID uint) (bool, error)
	UserPhone(userID uint) (string, error)
}

type gormNotificationStore struct {
	db *gorm.DB
}

func (s gormNotificationStore) Create(n *models.Notification) error {
	return s.db.Create(n).Error
}

func (s gormNotificationStore) ListByUser(userID uint) ([]models.Notification, error) {
	var notifications []models.Notification
	err := s.db.Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Find(&notifications).Error
	return notifications, err
}

func (s gormNotificationStore) MarkRead(userID, notificationID uint) (bool, error) {
	result := s.db.Model(&models.Notification{}).
		Where("id = ? AND user_id = ?", notificationID, userID).
		Update("read", true)
	return result.RowsAffected > 0, result.Error
}

func (s gormNotificationStore) UserPhone(userID uint) (string, error) {
	var user models.User
	if err := s.db.Select("phone").First(&user, userID).Error; err != nil {
		return "", err
	}
	return user.Phone, nil
}

// Notifier persists every notification and then delivers it best effort:
// pushed to live subscriptions, optionally mirrored over SMS. Delivery
// failures are logged and never propagate to the caller.
type Notifier struct {
	store NotificationStore
	hub   *Hub

	sms     *twilio.RestClient
	smsFrom string
}

func NewNotifier(db *gorm.DB, hub *Hub) *Notifier {
	n := &Notifier{
		store: gormNotificationStore{db: db},
		hub:   hub,
	}

	// SMS mirroring is on only when Twilio credentials are configured.
	accountSid := os.Getenv("TWILIO_ACCOUNT_SID")
	authToken := os.Getenv("TWILIO_AUTH_TOKEN")
	if accountSid != "" && authToken != "" {
		n.sms = twilio.NewRestClientWithParams(twilio.ClientParams{
			Username: accountSid,
			Password: authToken,
		})
		n.smsFrom = os.Getenv("TWILIO_PHONE_NUMBER")
	}

	return n
}

// Notify stores the notification and pushes the persisted record (with its
// assigned id and timestamp) to the user's live subscriptions.
func (n *Notifier) Notify(userID uint, message string, workOrderID *uint) {
	notification := models.Notification{
		UserID:      userID,
		Message:     message,
		WorkOrderID: workOrderID,
		CreatedAt:   time.Now(),
	}
	if err := n.store.Create(&notification); err != nil {
		log.Printf("[NOTIFY] failed to persist notification for user %d: %v", userID, err)
		return
	}

	delivered := n.hub.Push(notification)
	if delivered > 0 {
		config.NotificationsPushed.Add(float64(delivered))
	}

	n.sendSMS(userID, message)
}

func (n *Notifier) sendSMS(userID uint, message string) {
	if n.sms == nil {
		return
	}
	phone, err := n.store.UserPhone(userID)
	if err != nil || phone == "" {
		return
	}

	params := &twilioApi.CreateMessageParams{}
	params.SetTo(phone)
	params.SetFrom(n.smsFrom)
	params.SetBody(message)

	if _, err := n.sms.Api.CreateMessage(params); err != nil {
		log.Printf("[NOTIFY] failed to send SMS to user %d: %v", userID, err)
	}
}

// Pull returns the user's notifications, newest first.
func (n *Notifier) Pull(userID uint) ([]models.Notification, error) {
	return n.store.ListByUser(userID)
}

// MarkRead flags one of the user's notifications as read.
func (n *Notifier) MarkRead(userID, notificationID uint) error {
	ok, err := n.store.MarkRead(userID, notificationID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotFound
	}
	return nil
}
