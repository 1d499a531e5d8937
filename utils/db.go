package utils

import (
	"fmt"

	"smarty/config"
	"smarty/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func InitDB(cfg *config.Config) (*gorm.DB, error) {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		cfg.DBHost, cfg.DBPort, cfg.DBUser, cfg.DBPassword, cfg.DBName)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, err
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}

	return db, nil
}

// Migrate creates or updates the schema. The unique indexes double as the
// store-level backstop for the admission checks under concurrent writers.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Account{},
		&models.Major{},
		&models.StudyStatus{},
		&models.Student{},
		&models.Professor{},
		&models.Course{},
		&models.Engagement{},
		&models.Task{},
		&models.Activity{},
		&models.Exam{},
		&models.Post{},
		&models.Report{},
	)
}
