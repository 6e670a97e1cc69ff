package database

import (
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"receiptsplit-backend/models"
)

// schemaUpgrades are one-shot data migrations applied in order on startup,
// tracked in the schema_migrations table. AutoMigrate handles columns; these
// handle backfilling data that predates a column.
var schemaUpgrades = []struct {
	Version int
	Run     func(*gorm.DB) error
}{
	// Items saved before split modes existed have no split_mode; they must
	// load as equal-mode items with no assignments rather than fail share
	// calculations.
	{Version: 1, Run: backfillSplitModes},
	// Quantity was optional in early payloads; zero rows mean "one unit".
	{Version: 2, Run: backfillItemQuantities},
}

func runSchemaUpgrades(db *gorm.DB) error {
	for _, upgrade := range schemaUpgrades {
		var applied int64
		db.Model(&models.SchemaMigration{}).Where("version = ?", upgrade.Version).Count(&applied)
		if applied > 0 {
			continue
		}

		if err := upgrade.Run(db); err != nil {
			return err
		}
		if err := db.Create(&models.SchemaMigration{Version: upgrade.Version}).Error; err != nil {
			return err
		}
		logrus.Infof("Applied schema upgrade v%d", upgrade.Version)
	}
	return nil
}

func backfillSplitModes(db *gorm.DB) error {
	return db.Model(&models.Item{}).
		Where("split_mode IS NULL OR split_mode = ''").
		Update("split_mode", models.SplitModeEqual).Error
}

func backfillItemQuantities(db *gorm.DB) error {
	return db.Model(&models.Item{}).
		Where("quantity IS NULL OR quantity <= 0").
		Update("quantity", 1).Error
}
