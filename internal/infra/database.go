package infra

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"tradecore/internal/domain"
	"tradecore/internal/model"
)

// NewDatabase opens the single-file SQLite store, runs AutoMigrate for the
// full schema, and seeds the default administrator. WAL mode keeps readers
// unblocked during write transactions; busy_timeout makes concurrent writers
// (including other OS processes sharing the file) queue instead of failing.
// TranslateError maps unique-constraint violations to gorm.ErrDuplicatedKey so
// the repositories can surface them as domain errors.
func NewDatabase(path string) (*gorm.DB, error) {
	dsn := fmt.Sprintf("%s?_journal_mode=WAL&_busy_timeout=5000&_foreign_keys=on", path)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		return nil, err
	}

	if err := db.AutoMigrate(
		&model.Employee{},
		&model.Client{},
		&model.Product{},
		&model.Order{},
		&model.OrderItem{},
		&model.WebsiteContent{},
		&model.AuditLog{},
		&model.UserSession{},
	); err != nil {
		return nil, fmt.Errorf("automigrate: %w", err)
	}

	if err := seedDefaultAdmin(db); err != nil {
		return nil, err
	}

	return db, nil
}

// seedDefaultAdmin creates the initial admin account on a fresh store. The
// account is flagged must_change_password so the bootstrap credential cannot
// survive first login.
func seedDefaultAdmin(db *gorm.DB) error {
	var count int64
	if err := db.Model(&model.Employee{}).Where("username = ?", "admin").Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("Admin123!"), 12)
	if err != nil {
		return err
	}
	admin := &model.Employee{
		Username:           "admin",
		PasswordHash:       string(hash),
		FullName:           "Administrador del Sistema",
		Role:               domain.RoleAdmin,
		IsActive:           true,
		MustChangePassword: true,
	}
	if err := db.Create(admin).Error; err != nil {
		return err
	}
	log.Info().Msg("default admin account created")
	return nil
}
