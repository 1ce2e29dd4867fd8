package database

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/meirshuvax/bynet-portal/internal/models"
	"github.com/meirshuvax/bynet-portal/pkg/crypto"
	"github.com/meirshuvax/bynet-portal/pkg/logger"
)

// BootstrapAdminUsername is the account created on a fresh installation so
// the portal can be administered before any other users exist.
const BootstrapAdminUsername = "admin"

// AutoMigrate creates or updates the database schema for all models.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.HonorType{},
		&models.Honor{},
		&models.Wish{},
		&models.ChatMessage{},
		&models.SystemContent{},
	)
}

// SeedData populates the default honor type catalog and, on a fresh install,
// a bootstrap administrator. Seeding is idempotent: existing rows (matched on
// the case-insensitive name key) are left untouched, and the administrator is
// only created while the user table is empty.
func SeedData(db *gorm.DB) error {
	if err := seedBootstrapAdmin(db); err != nil {
		return err
	}
	types := []models.HonorType{
		{
			Name:        "Employee of the Month",
			Description: "Awarded monthly to an outstanding member of staff",
		},
		{
			Name:        "Years of Service",
			Description: "Marks a service anniversary",
		},
		{
			Name:        "Team Spirit",
			Description: "Recognises exceptional collaboration",
		},
	}

	for _, honorType := range types {
		honorType.NameKey = strings.ToLower(strings.TrimSpace(honorType.Name))
		err := db.Where(models.HonorType{NameKey: honorType.NameKey}).
			Attrs(honorType).
			FirstOrCreate(&models.HonorType{}).Error
		if err != nil {
			return err
		}
	}

	return nil
}

// seedBootstrapAdmin creates the first administrator with a generated
// password. The password is logged exactly once and must be rotated after the
// first login.
func seedBootstrapAdmin(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.User{}).Count(&count).Error; err != nil {
		return fmt.Errorf("seed bootstrap admin: count users: %w", err)
	}
	if count > 0 {
		return nil
	}

	password, err := crypto.GenerateToken(18)
	if err != nil {
		return fmt.Errorf("seed bootstrap admin: generate password: %w", err)
	}
	hash, err := crypto.HashPassword(password)
	if err != nil {
		return fmt.Errorf("seed bootstrap admin: hash password: %w", err)
	}

	admin := models.User{
		Username:    BootstrapAdminUsername,
		Email:       "admin@portal.local",
		Password:    hash,
		DisplayName: "Portal Administrator",
		IsAdmin:     true,
		IsActive:    true,
	}
	if err := db.Create(&admin).Error; err != nil {
		return fmt.Errorf("seed bootstrap admin: create user: %w", err)
	}

	logger.WithModule("database").Warn("created bootstrap admin account, rotate this password after first login",
		zap.String("username", admin.Username),
		zap.String("password", password))

	return nil
}
