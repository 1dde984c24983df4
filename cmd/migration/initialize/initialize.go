package initialize

import (
	"agency/config"
	"agency/internal/logger"
	. "agency/internal/models"
	"errors"

	"gorm.io/gorm"
)

// InitializeTables creates the first admin agent when ADMIN_PASSWORD is set and the login is free.
func InitializeTables(db *gorm.DB, config config.Config, log logger.Logger) error {
	log = log.Function("InitializeTables")
	log.Info("Initializing essential production data")

	if config.AdminPassword == "" {
		log.Info("ADMIN_PASSWORD not set, skipping admin agent")
		return nil
	}

	var existing Agent
	err := db.First(&existing, "login = ?", config.AdminLogin).Error
	if err == nil {
		log.Info("Admin agent already exists", "login", config.AdminLogin)
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return log.Err("failed to look up admin agent", err, "login", config.AdminLogin)
	}

	admin := Agent{
		Login:       config.AdminLogin,
		DisplayName: config.AgentName,
		Password:    config.AdminPassword,
		IsAdmin:     true,
	}
	if err := db.Create(&admin).Error; err != nil {
		return log.Err("failed to create admin agent", err, "login", config.AdminLogin)
	}

	log.Info("Table initialization complete", "adminID", admin.ID)
	return nil
}
