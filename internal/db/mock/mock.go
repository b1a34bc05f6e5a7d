package mock

import (
	"context"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"folio/internal/db"
	applog "folio/internal/log"
	"folio/models"
)

// New returns an in-memory sqlite database with the application schema and a
// welcome message in the inbox, suitable for local development.
func New(ctx context.Context) (*gorm.DB, error) {
	applog.Debug(ctx, "initialising mock database")

	database, err := gorm.Open(sqlite.Open("file:folio-mock?mode=memory&cache=shared"), &gorm.Config{
		Logger:                                   logger.Default.LogMode(logger.Silent),
		PrepareStmt:                              true,
		SkipDefaultTransaction:                   true,
		DisableForeignKeyConstraintWhenMigrating: true,
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	if err != nil {
		return nil, err
	}

	if err := db.AutoMigrate(database); err != nil {
		return nil, err
	}

	if err := seed(ctx, database); err != nil {
		return nil, err
	}

	applog.Debug(ctx, "mock database ready")
	return database, nil
}

func seed(ctx context.Context, database *gorm.DB) error {
	var count int64
	if err := database.WithContext(ctx).Model(&models.Message{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		applog.Debug(ctx, "mock database already seeded", "messages", count)
		return nil
	}

	welcome := models.Message{
		Name:        "Folio",
		Email:       "hello@folio.local",
		Subject:     "Your inbox is ready",
		Body:        "Messages submitted through the contact form will be stored here.",
		Fingerprint: "seed",
	}
	if err := database.WithContext(ctx).Create(&welcome).Error; err != nil {
		return err
	}

	applog.Debug(ctx, "mock database seeded")
	return nil
}
