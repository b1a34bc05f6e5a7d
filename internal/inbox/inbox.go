// Package inbox stores delivered contact messages in the database.
package inbox

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"folio/internal/contact"
	"folio/models"
)

// DefaultRecentLimit caps Recent when no positive limit is given.
const DefaultRecentLimit = 20

// Inbox is a contact.Deliverer backed by gorm.
type Inbox struct {
	db *gorm.DB
}

// New returns an Inbox writing to database.
func New(database *gorm.DB) (*Inbox, error) {
	if database == nil {
		return nil, errors.New("inbox: database handle is nil")
	}
	return &Inbox{db: database}, nil
}

// Deliver persists p as a models.Message.
func (i *Inbox) Deliver(ctx context.Context, p contact.Payload) error {
	message := models.Message{
		Name:        p.Name,
		Email:       p.Email,
		Subject:     p.Subject,
		Body:        p.Message,
		Company:     p.Company,
		Budget:      p.Budget,
		Timeline:    p.Timeline,
		Fingerprint: contact.Fingerprint(p.Email),
	}
	if err := i.db.WithContext(ctx).Create(&message).Error; err != nil {
		return fmt.Errorf("store message: %w", err)
	}
	return nil
}

// Recent returns up to limit messages, newest first.
func (i *Inbox) Recent(ctx context.Context, limit int) ([]models.Message, error) {
	if limit <= 0 {
		limit = DefaultRecentLimit
	}
	var messages []models.Message
	err := i.db.WithContext(ctx).
		Order("created_at DESC").
		Order("id DESC").
		Limit(limit).
		Find(&messages).Error
	if err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}
	return messages, nil
}

// Count returns the number of stored messages.
func (i *Inbox) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := i.db.WithContext(ctx).Model(&models.Message{}).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("count messages: %w", err)
	}
	return n, nil
}
