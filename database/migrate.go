package database

import (
	"github.com/lshigami/surveyhub/internal/model"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

func AutoMigrate(db *gorm.DB) error {
	log.Info().Msg("Running database migrations...")
	err := db.AutoMigrate(
		&model.User{},
		&model.Survey{},
		&model.Question{},
		&model.Choice{},
		&model.Response{},
		&model.Answer{},
		&model.RevokedToken{},
	)
	if err != nil {
		log.Error().Err(err).Msg("Database migration failed")
		return err
	}
	log.Info().Msg("Database migration completed successfully.")
	return nil
}
