package migration

import (
	"Cook-App-Backend/entities"
	"Cook-App-Backend/internal/storage/mongostore"
	"context"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Migrate prepares the Postgres ingredient catalog.
func Migrate(db *gorm.DB, logger *zap.Logger) error {
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`).Error; err != nil {
		logger.Warn("uuid-ossp extension unavailable", zap.Error(err))
	}

	if err := db.AutoMigrate(&entities.Ingredient{}); err != nil {
		logger.Error("error migrating ingredient table", zap.Error(err))
		return err
	}

	logger.Info("postgres migration complete")
	return nil
}

// MigrateMongo creates the document store indexes.
func MigrateMongo(ctx context.Context, db *mongo.Database, logger *zap.Logger) error {
	if err := mongostore.EnsureIndexes(ctx, db); err != nil {
		logger.Error("error creating mongo indexes", zap.Error(err))
		return err
	}

	logger.Info("mongo indexes ready")
	return nil
}
