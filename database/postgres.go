package database

import (
	"receiptsplit-backend/config"
	"receiptsplit-backend/models"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

func Connect() {
	var err error
	DB, err = gorm.Open(postgres.Open(config.AppConfig.DatabaseURL), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		logrus.Fatal("Failed to connect to database: ", err)
	}

	logrus.Info("✅ Database connected successfully")

	// Auto-migrate all models
	err = DB.AutoMigrate(
		&models.User{},
		&models.Member{},
		&models.Split{},
		&models.SplitMember{},
		&models.Item{},
		&models.Assignment{},
		&models.SchemaMigration{},
	)
	if err != nil {
		logrus.Fatal("Failed to migrate database: ", err)
	}

	if err := runSchemaUpgrades(DB); err != nil {
		logrus.Fatal("Failed to run schema upgrades: ", err)
	}

	logrus.Info("✅ Database migrated successfully")
}
