// services/digest_service.go
package services

import (
	"fmt"
	"log"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

// DigestService reminds workers once a day about the open activities
// assigned to them on authorized, still-open work orders.
type DigestService struct {
	db       *gorm.DB
	notifier *Notifier
}

func NewDigestService(db *gorm.DB, notifier *Notifier) *DigestService {
	return &DigestService{db: db, notifier: notifier}
}

func (s *DigestService) StartScheduler() {
	c := cron.New()

	// Run every day at 9 AM
	c.AddFunc("0 9 * * *", s.SendDailyDigests)

	c.Start()
	log.Println("Digest scheduler started")
}

type openActivityCount struct {
	UserID uint
	Open   int
}

func (s *DigestService) SendDailyDigests() {
	log.Println("Starting daily digest processing...")

	var counts []openActivityCount
	err := s.db.Raw(`
		SELECT aa.user_id AS user_id, COUNT(*) AS open
		FROM activity_assignments aa
		JOIN activities a ON a.id = aa.activity_id
		JOIN work_orders w ON w.id = a.work_order_id
		WHERE a.status <> 'finalized'
		AND w.authorized = true
		AND w.status <> 'closed'
		GROUP BY aa.user_id
	`).Scan(&counts).Error
	if err != nil {
		log.Printf("Failed to compute open activity counts: %v", err)
		return
	}

	for _, c := range counts {
		message := fmt.Sprintf("You have %d open activities assigned to you", c.Open)
		if c.Open == 1 {
			message = "You have 1 open activity assigned to you"
		}
		s.notifier.Notify(c.UserID, message, nil)
	}

	log.Println("Daily digest processing completed")
}
