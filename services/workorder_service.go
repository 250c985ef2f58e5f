package services

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"labtrack-backend/config"
	"labtrack-backend/models"
	"labtrack-backend/utils"

	"gorm.io/gorm"
)

// WorkOrderService owns the work order lifecycle: role-gated transitions,
// the transactional multi-table mutation protocol, identifier allocation,
// history recording and the notification side effects. Notifications are
// always emitted after the mutating transaction commits.
type WorkOrderService struct {
	db       *gorm.DB
	notifier *Notifier
}

func NewWorkOrderService(db *gorm.DB, notifier *Notifier) *WorkOrderService {
	return &WorkOrderService{db: db, notifier: notifier}
}

type ActivityInput struct {
	ID           uint    `json:"id"`
	Activity     string  `json:"activity" binding:"required"`
	Norma        string  `json:"norma"`
	PrecioSinIVA float64 `json:"precioSinIva" binding:"min=0"`
	AssigneeIDs  []uint  `json:"assigneeIds"`
}

type WorkOrderInput struct {
	Date                     time.Time       `json:"date" binding:"required"`
	Type                     string          `json:"type" binding:"required"`
	ClientID                 uint            `json:"clientId" binding:"required"`
	ContactID                *uint           `json:"contactId"`
	Product                  string          `json:"product"`
	Brand                    string          `json:"brand"`
	Model                    string          `json:"model"`
	SealNumber               string          `json:"sealNumber"`
	Observations             string          `json:"observations"`
	CollaboratorObservations string          `json:"collaboratorObservations"`
	QuotationAmount          float64         `json:"quotationAmount" binding:"min=0"`
	QuotationDetails         string          `json:"quotationDetails"`
	Disposition              string          `json:"disposition"`
	ContractType             string          `json:"contractType"`
	Activities               []ActivityInput `json:"activities"`
	FacturaIDs               []uint          `json:"facturaIds"`
}

type assignmentPair struct {
	activityID uint
	userID     uint
}

// Create inserts the work order, its activities, their assignments and the
// invoice links in one transaction, allocating the human-readable identifier
// on the way in. The identifier is only a candidate; a concurrent creation
// for the same day can pick the same sequence number, in which case the
// unique index rejects the insert and the whole transaction is retried once
// with a freshly computed identifier.
func (s *WorkOrderService) Create(input WorkOrderInput, actingUserID uint, actingRole string) (*models.WorkOrder, error) {
	if !models.CanManageWorkOrders(actingRole) {
		return nil, fmt.Errorf("%w: role %q may not create work orders", ErrForbidden, actingRole)
	}

	client, err := s.validateReferences(&input)
	if err != nil {
		return nil, err
	}

	for attempt := 0; attempt < 2; attempt++ {
		customID, err := s.allocateCustomID(input.Date, input.Type, client.Code)
		if err != nil {
			return nil, err
		}

		wo := models.WorkOrder{
			CustomID:                 customID,
			Date:                     input.Date,
			Type:                     input.Type,
			ClientID:                 input.ClientID,
			ContactID:                input.ContactID,
			Product:                  input.Product,
			Brand:                    input.Brand,
			Model:                    input.Model,
			SealNumber:               input.SealNumber,
			Observations:             input.Observations,
			CollaboratorObservations: input.CollaboratorObservations,
			Status:                   models.WorkOrderStatusPending,
			Authorized:               false,
			CreatedBy:                actingUserID,
			QuotationAmount:          input.QuotationAmount,
			QuotationDetails:         input.QuotationDetails,
			Disposition:              input.Disposition,
			ContractType:             input.ContractType,
		}
		for _, a := range input.Activities {
			wo.Activities = append(wo.Activities, models.Activity{
				Activity:     a.Activity,
				Norma:        a.Norma,
				PrecioSinIVA: a.PrecioSinIVA,
				Status:       models.ActivityStatusPending,
			})
		}

		err = s.db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Create(&wo).Error; err != nil {
				return err
			}
			for i, a := range input.Activities {
				for _, userID := range uniqueIDs(a.AssigneeIDs) {
					assignment := models.Assignment{ActivityID: wo.Activities[i].ID, UserID: userID}
					if err := tx.Create(&assignment).Error; err != nil {
						return err
					}
				}
			}
			for _, facturaID := range uniqueIDs(input.FacturaIDs) {
				link := models.WorkOrderFactura{WorkOrderID: wo.ID, FacturaID: facturaID}
				if err := tx.Create(&link).Error; err != nil {
					return err
				}
			}
			return s.appendHistory(tx, wo.ID, actingUserID, []string{
				fmt.Sprintf("Work order %s created", wo.CustomID),
			})
		})
		if err == nil {
			config.WorkOrdersCreated.Inc()
			return &wo, nil
		}
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			if attempt == 0 {
				continue // another creation won the sequence number, recompute
			}
			return nil, fmt.Errorf("%w: could not allocate a unique identifier", ErrConflict)
		}
		return nil, err
	}
	return nil, fmt.Errorf("%w: could not allocate a unique identifier", ErrConflict)
}

// Update replaces the mutable descriptive fields, the activity set and the
// invoice link set in one transaction and records the diff as a history
// entry. Employees may only touch the collaborator observations. Genuinely
// new (activity, user) assignments notify the worker when the order is
// already authorized; newly added @mentions notify the mentioned users.
func (s *WorkOrderService) Update(id uint, input WorkOrderInput, actingUserID uint, actingRole string) error {
	if actingRole == models.RoleEmployee {
		return s.updateCollaboratorObservations(id, input.CollaboratorObservations)
	}
	if !models.CanManageWorkOrders(actingRole) {
		return fmt.Errorf("%w: role %q may not update work orders", ErrForbidden, actingRole)
	}

	var before models.WorkOrder
	if err := s.db.Preload("Activities.Assignees").Preload("Facturas").First(&before, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: work order %d", ErrNotFound, id)
		}
		return err
	}

	if _, err := s.validateReferences(&input); err != nil {
		return err
	}

	beforeActs := SnapshotActivities(before.Activities)
	oldText := before.CollaboratorObservations
	oldPairs := make(map[assignmentPair]bool)
	for _, a := range before.Activities {
		for _, u := range a.Assignees {
			oldPairs[assignmentPair{a.ID, u.ID}] = true
		}
	}

	newPairs := make(map[assignmentPair]bool)
	activityNames := make(map[uint]string)
	var after models.WorkOrder

	err := s.db.Transaction(func(tx *gorm.DB) error {
		// Activities absent from the new set are deleted, assignments first.
		keep := make(map[uint]bool)
		for _, a := range input.Activities {
			if a.ID > 0 {
				keep[a.ID] = true
			}
		}
		var removed []uint
		for _, a := range before.Activities {
			if !keep[a.ID] {
				removed = append(removed, a.ID)
			}
		}
		if len(removed) > 0 {
			if err := tx.Where("activity_id IN ?", removed).Delete(&models.Assignment{}).Error; err != nil {
				return err
			}
			if err := tx.Where("id IN ?", removed).Delete(&models.Activity{}).Error; err != nil {
				return err
			}
		}

		// Present activities are updated in place by id, new ones inserted.
		for _, a := range input.Activities {
			activityID := a.ID
			if a.ID > 0 {
				result := tx.Model(&models.Activity{}).
					Where("id = ? AND work_order_id = ?", a.ID, id).
					Updates(map[string]interface{}{
						"activity":       a.Activity,
						"norma":          a.Norma,
						"precio_sin_iva": a.PrecioSinIVA,
					})
				if result.Error != nil {
					return result.Error
				}
				if result.RowsAffected == 0 {
					return fmt.Errorf("%w: activity %d", ErrNotFound, a.ID)
				}
			} else {
				activity := models.Activity{
					WorkOrderID:  id,
					Activity:     a.Activity,
					Norma:        a.Norma,
					PrecioSinIVA: a.PrecioSinIVA,
					Status:       models.ActivityStatusPending,
				}
				if err := tx.Create(&activity).Error; err != nil {
					return err
				}
				activityID = activity.ID
			}
			activityNames[activityID] = a.Activity
			for _, userID := range uniqueIDs(a.AssigneeIDs) {
				newPairs[assignmentPair{activityID, userID}] = true
			}
		}

		// Assignment diff: drop stale pairs, insert new ones.
		for pair := range oldPairs {
			if keep[pair.activityID] && !newPairs[pair] {
				if err := tx.Where("activity_id = ? AND user_id = ?", pair.activityID, pair.userID).
					Delete(&models.Assignment{}).Error; err != nil {
					return err
				}
			}
		}
		for pair := range newPairs {
			if !oldPairs[pair] {
				assignment := models.Assignment{ActivityID: pair.activityID, UserID: pair.userID}
				if err := tx.Create(&assignment).Error; err != nil {
					return err
				}
			}
		}

		// Invoice links are replaced wholesale, not diffed.
		if err := tx.Where("work_order_id = ?", id).Delete(&models.WorkOrderFactura{}).Error; err != nil {
			return err
		}
		for _, facturaID := range uniqueIDs(input.FacturaIDs) {
			link := models.WorkOrderFactura{WorkOrderID: id, FacturaID: facturaID}
			if err := tx.Create(&link).Error; err != nil {
				return err
			}
		}

		if err := tx.Model(&models.WorkOrder{}).Where("id = ?", id).Updates(map[string]interface{}{
			"date":                      input.Date,
			"type":                      input.Type,
			"client_id":                 input.ClientID,
			"contact_id":                input.ContactID,
			"product":                   input.Product,
			"brand":                     input.Brand,
			"model":                     input.Model,
			"seal_number":               input.SealNumber,
			"observations":              input.Observations,
			"collaborator_observations": input.CollaboratorObservations,
			"quotation_amount":          input.QuotationAmount,
			"quotation_details":         input.QuotationDetails,
			"disposition":               input.Disposition,
			"contract_type":             input.ContractType,
		}).Error; err != nil {
			return err
		}

		if err := tx.Preload("Activities.Assignees").First(&after, id).Error; err != nil {
			return err
		}
		changes := DiffWorkOrders(before, after, beforeActs, SnapshotActivities(after.Activities))
		return s.appendHistory(tx, id, actingUserID, changes)
	})
	if err != nil {
		return err
	}

	if after.Authorized {
		for pair := range newPairs {
			if !oldPairs[pair] {
				s.notifier.Notify(pair.userID,
					fmt.Sprintf("You were assigned to activity %q on work order %s", activityNames[pair.activityID], after.CustomID),
					&after.ID)
			}
		}
	}
	s.notifyMentions(oldText, input.CollaboratorObservations, &after)

	return nil
}

func (s *WorkOrderService) updateCollaboratorObservations(id uint, text string) error {
	var wo models.WorkOrder
	if err := s.db.First(&wo, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: work order %d", ErrNotFound, id)
		}
		return err
	}
	oldText := wo.CollaboratorObservations

	if err := s.db.Model(&wo).Update("collaborator_observations", text).Error; err != nil {
		return err
	}
	s.notifyMentions(oldText, text, &wo)
	return nil
}

func (s *WorkOrderService) notifyMentions(oldText, newText string, wo *models.WorkOrder) {
	for _, name := range NewMentions(oldText, newText) {
		var user models.User
		if err := s.db.Where("name = ?", name).First(&user).Error; err != nil {
			continue // mentions that resolve to nobody are ignored
		}
		s.notifier.Notify(user.ID, fmt.Sprintf("You were mentioned on work order %s", wo.CustomID), &wo.ID)
	}
}

// Authorize flips the gate and tells every assigned worker. The guard is a
// conditional update so an already-authorized order reports not found
// instead of silently succeeding and re-notifying.
func (s *WorkOrderService) Authorize(id, actingUserID uint, actingRole string) (*models.WorkOrder, error) {
	if !models.CanAuthorize(actingRole) {
		return nil, fmt.Errorf("%w: role %q may not authorize work orders", ErrForbidden, actingRole)
	}

	result := s.db.Model(&models.WorkOrder{}).
		Where("id = ? AND authorized = ?", id, false).
		Update("authorized", true)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, fmt.Errorf("%w: work order not found or already authorized", ErrNotFound)
	}

	var wo models.WorkOrder
	if err := s.db.Preload("Activities.Assignees").First(&wo, id).Error; err != nil {
		return nil, err
	}
	if err := s.appendHistory(s.db, id, actingUserID, []string{
		fmt.Sprintf("Work order %s authorized", wo.CustomID),
	}); err != nil {
		return nil, err
	}

	notified := make(map[uint]bool)
	for _, a := range wo.Activities {
		for _, u := range a.Assignees {
			if !notified[u.ID] {
				notified[u.ID] = true
				s.notifier.Notify(u.ID, fmt.Sprintf("Work order %s has been authorized", wo.CustomID), &wo.ID)
			}
		}
	}
	return &wo, nil
}

// Deauthorize flips the gate back. No point or status side effects.
func (s *WorkOrderService) Deauthorize(id, actingUserID uint, actingRole string) error {
	if !models.CanAuthorize(actingRole) {
		return fmt.Errorf("%w: role %q may not deauthorize work orders", ErrForbidden, actingRole)
	}

	result := s.db.Model(&models.WorkOrder{}).
		Where("id = ? AND authorized = ?", id, true).
		Update("authorized", false)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: work order not found or not authorized", ErrNotFound)
	}
	return s.appendHistory(s.db, id, actingUserID, []string{"Work order deauthorized"})
}

// StartActivity moves a pending activity to in_progress. The first start on
// a work order advances the order itself and notifies its creator. An
// unauthorized order may not leave pending, so its activities cannot start.
func (s *WorkOrderService) StartActivity(activityID, actingUserID uint) error {
	activity, wo, err := s.activityWithOrder(activityID)
	if err != nil {
		return err
	}
	if err := CanStartActivity(activity.Status); err != nil {
		return err
	}
	if !wo.Authorized {
		return fmt.Errorf("%w: work order not authorized", ErrInvalidState)
	}

	orderStarted := false
	err = s.db.Transaction(func(tx *gorm.DB) error {
		now := time.Now()
		result := tx.Model(&models.Activity{}).
			Where("id = ? AND status = ?", activityID, models.ActivityStatusPending).
			Updates(map[string]interface{}{
				"status":     models.ActivityStatusInProgress,
				"started_at": now,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return fmt.Errorf("%w: activity already started", ErrInvalidState)
		}

		newStatus, err := s.recomputeOrderStatus(tx, wo)
		if err != nil {
			return err
		}
		orderStarted = wo.Status == models.WorkOrderStatusPending && newStatus == models.WorkOrderStatusInProgress

		if actingUserID != 0 {
			return s.appendHistory(tx, wo.ID, actingUserID, []string{
				fmt.Sprintf("Activity %q started", activity.Activity),
			})
		}
		return nil
	})
	if err != nil {
		return err
	}

	if orderStarted {
		s.notifier.Notify(wo.CreatedBy, fmt.Sprintf("Work order %s has started", wo.CustomID), &wo.ID)
	}
	return nil
}

// StopActivity moves an in_progress activity to finalized. Finishing the last
// open activity finalizes the order and notifies its creator.
func (s *WorkOrderService) StopActivity(activityID, actingUserID uint) error {
	activity, wo, err := s.activityWithOrder(activityID)
	if err != nil {
		return err
	}
	if err := CanStopActivity(activity.Status); err != nil {
		return err
	}

	orderFinalized := false
	err = s.db.Transaction(func(tx *gorm.DB) error {
		now := time.Now()
		result := tx.Model(&models.Activity{}).
			Where("id = ? AND status = ?", activityID, models.ActivityStatusInProgress).
			Updates(map[string]interface{}{
				"status":       models.ActivityStatusFinalized,
				"completed_at": now,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return fmt.Errorf("%w: activity not in progress", ErrInvalidState)
		}

		newStatus, err := s.recomputeOrderStatus(tx, wo)
		if err != nil {
			return err
		}
		orderFinalized = wo.Status != models.WorkOrderStatusFinalized && newStatus == models.WorkOrderStatusFinalized

		if actingUserID != 0 {
			return s.appendHistory(tx, wo.ID, actingUserID, []string{
				fmt.Sprintf("Activity %q finished", activity.Activity),
			})
		}
		return nil
	})
	if err != nil {
		return err
	}

	if orderFinalized {
		s.notifier.Notify(wo.CreatedBy, fmt.Sprintf("All activities for work order %s are finished", wo.CustomID), &wo.ID)
	}
	return nil
}

// Close is director-only and requires a finalized order. In one transaction
// the order is closed, each worker's points balance is incremented by the
// point-table value of their activities, and the closure is recorded. The
// earned-points notifications go out after commit.
func (s *WorkOrderService) Close(id, actingUserID uint, actingRole string) (*models.WorkOrder, error) {
	if actingRole != models.RoleDirector {
		return nil, fmt.Errorf("%w: only the director may close work orders", ErrForbidden)
	}

	var wo models.WorkOrder
	if err := s.db.Preload("Activities.Assignees").First(&wo, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: work order %d", ErrNotFound, id)
		}
		return nil, err
	}
	if wo.Status != models.WorkOrderStatusFinalized {
		return nil, fmt.Errorf("%w: only finalized work orders can be closed", ErrInvalidState)
	}

	var rules []models.PointRule
	if err := s.db.Find(&rules).Error; err != nil {
		return nil, err
	}
	table := make(map[string]int, len(rules))
	for _, r := range rules {
		table[r.Activity] = r.Points
	}

	totals := AccumulatePoints(wo.Activities, table)
	userIDs := make([]uint, 0, len(totals))
	for userID := range totals {
		userIDs = append(userIDs, userID)
	}
	sort.Slice(userIDs, func(i, j int) bool { return userIDs[i] < userIDs[j] })

	userNames := make(map[uint]string)
	for _, a := range wo.Activities {
		for _, u := range a.Assignees {
			userNames[u.ID] = u.Name
		}
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.WorkOrder{}).
			Where("id = ? AND status = ?", id, models.WorkOrderStatusFinalized).
			Update("status", models.WorkOrderStatusClosed)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return fmt.Errorf("%w: only finalized work orders can be closed", ErrInvalidState)
		}

		changes := []string{fmt.Sprintf("Work order %s closed", wo.CustomID)}
		for _, userID := range userIDs {
			if err := tx.Model(&models.User{}).Where("id = ?", userID).
				Update("points", gorm.Expr("points + ?", totals[userID])).Error; err != nil {
				return err
			}
			changes = append(changes, fmt.Sprintf("%d points awarded to %s", totals[userID], userNames[userID]))
		}
		return s.appendHistory(tx, id, actingUserID, changes)
	})
	if err != nil {
		return nil, err
	}

	wo.Status = models.WorkOrderStatusClosed
	for _, userID := range userIDs {
		s.notifier.Notify(userID, fmt.Sprintf("You earned %d points for work order %s", totals[userID], wo.CustomID), &wo.ID)
	}
	return &wo, nil
}

// Delete hard-deletes the work order with its activities, assignments and
// invoice links. Any state may be deleted; history rows are kept.
func (s *WorkOrderService) Delete(id uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var wo models.WorkOrder
		if err := tx.First(&wo, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: work order %d", ErrNotFound, id)
			}
			return err
		}

		var activityIDs []uint
		if err := tx.Model(&models.Activity{}).Where("work_order_id = ?", id).
			Pluck("id", &activityIDs).Error; err != nil {
			return err
		}
		if len(activityIDs) > 0 {
			if err := tx.Where("activity_id IN ?", activityIDs).Delete(&models.Assignment{}).Error; err != nil {
				return err
			}
			if err := tx.Where("work_order_id = ?", id).Delete(&models.Activity{}).Error; err != nil {
				return err
			}
		}
		if err := tx.Where("work_order_id = ?", id).Delete(&models.WorkOrderFactura{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.WorkOrder{}, id).Error
	})
}

// History returns the audit trail of a work order, oldest first.
func (s *WorkOrderService) History(id uint) ([]models.HistoryEntry, error) {
	var entries []models.HistoryEntry
	err := s.db.Where("work_order_id = ?", id).Order("created_at ASC, id ASC").Find(&entries).Error
	return entries, err
}

func (s *WorkOrderService) activityWithOrder(activityID uint) (*models.Activity, *models.WorkOrder, error) {
	var activity models.Activity
	if err := s.db.First(&activity, activityID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, fmt.Errorf("%w: activity %d", ErrNotFound, activityID)
		}
		return nil, nil, err
	}
	var wo models.WorkOrder
	if err := s.db.First(&wo, activity.WorkOrderID).Error; err != nil {
		return nil, nil, err
	}
	return &activity, &wo, nil
}

// recomputeOrderStatus reapplies the aggregate invariant after an activity
// transition and persists the order status when it changed.
func (s *WorkOrderService) recomputeOrderStatus(tx *gorm.DB, wo *models.WorkOrder) (string, error) {
	var activities []models.Activity
	if err := tx.Where("work_order_id = ?", wo.ID).Find(&activities).Error; err != nil {
		return "", err
	}
	newStatus := RecomputeWorkOrderStatus(wo.Status, activities)
	if newStatus != wo.Status {
		if err := tx.Model(&models.WorkOrder{}).Where("id = ?", wo.ID).
			Update("status", newStatus).Error; err != nil {
			return "", err
		}
	}
	return newStatus, nil
}

func (s *WorkOrderService) appendHistory(tx *gorm.DB, workOrderID, userID uint, changes []string) error {
	if len(changes) == 0 {
		return nil
	}
	entry := models.HistoryEntry{
		WorkOrderID: workOrderID,
		UserID:      userID,
		Changes:     changes,
	}
	return tx.Create(&entry).Error
}

// allocateCustomID proposes the next identifier for the day. Not race-free:
// two concurrent creations can read the same committed rows and pick the
// same sequence; the unique index and the retry in Create resolve that.
func (s *WorkOrderService) allocateCustomID(date time.Time, workOrderType, clientCode string) (string, error) {
	var ids []string
	err := s.db.Model(&models.WorkOrder{}).
		Where("date >= ? AND date < ?", utils.BeginningOfDay(date), utils.EndOfDay(date)).
		Pluck("custom_id", &ids).Error
	if err != nil {
		return "", err
	}
	return utils.FormatCustomID(date, utils.NextSequence(ids), workOrderType, clientCode), nil
}

func (s *WorkOrderService) validateReferences(input *WorkOrderInput) (models.Client, error) {
	var client models.Client
	if err := s.db.First(&client, input.ClientID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return client, fmt.Errorf("%w: client %d", ErrInvalidClient, input.ClientID)
		}
		return client, err
	}

	if input.ContactID != nil {
		var contact models.Contact
		if err := s.db.Where("id = ? AND client_id = ?", *input.ContactID, input.ClientID).
			First(&contact).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return client, fmt.Errorf("%w: contact %d does not belong to client %d", ErrInvalidClient, *input.ContactID, input.ClientID)
			}
			return client, err
		}
	}

	if facturaIDs := uniqueIDs(input.FacturaIDs); len(facturaIDs) > 0 {
		var count int64
		if err := s.db.Model(&models.Factura{}).Where("id IN ?", facturaIDs).Count(&count).Error; err != nil {
			return client, err
		}
		if count != int64(len(facturaIDs)) {
			return client, fmt.Errorf("%w: one or more facturas do not exist", ErrNotFound)
		}
	}

	var assigneeIDs []uint
	for _, a := range input.Activities {
		assigneeIDs = append(assigneeIDs, a.AssigneeIDs...)
	}
	if assigneeIDs = uniqueIDs(assigneeIDs); len(assigneeIDs) > 0 {
		var count int64
		if err := s.db.Model(&models.User{}).Where("id IN ?", assigneeIDs).Count(&count).Error; err != nil {
			return client, err
		}
		if count != int64(len(assigneeIDs)) {
			return client, fmt.Errorf("%w: one or more assigned users do not exist", ErrNotFound)
		}
	}

	return client, nil
}

func uniqueIDs(ids []uint) []uint {
	seen := make(map[uint]bool, len(ids))
	var out []uint
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}
