package db

import (
	"fmt"

	"github.com/zulandar/corkboard/internal/board"
	"github.com/zulandar/corkboard/internal/config"
	"github.com/zulandar/corkboard/internal/models"
	"gorm.io/gorm"
)

// AllModels returns the list of all GORM models for migration.
func AllModels() []interface{} {
	return []interface{}{
		&models.Project{},
		&models.Board{},
		&models.BoardColumn{},
		&models.User{},
		&models.Card{},
		&models.CardData{},
		&models.CardLabel{},
		&models.CardLabelValue{},
		&models.Event{},
	}
}

// AutoMigrate creates or updates all tables.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(AllModels()...); err != nil {
		return fmt.Errorf("db: auto-migrate: %w", err)
	}
	return nil
}

// SeedDefaults creates the configured project, board, default columns, and
// admin user when they do not already exist. Idempotent.
func SeedDefaults(db *gorm.DB, cfg *config.Config) error {
	var user models.User
	if err := db.Where(models.User{Username: cfg.Seed.AdminUser}).
		FirstOrCreate(&user).Error; err != nil {
		return fmt.Errorf("db: seed user %q: %w", cfg.Seed.AdminUser, err)
	}

	var project models.Project
	if err := db.Where(models.Project{ShortName: cfg.Seed.Project}).
		Attrs(models.Project{Name: cfg.Seed.ProjectName}).
		FirstOrCreate(&project).Error; err != nil {
		return fmt.Errorf("db: seed project %q: %w", cfg.Seed.Project, err)
	}

	var b models.Board
	if err := db.Where(models.Board{ShortName: cfg.Seed.Board}).
		Attrs(models.Board{ProjectID: project.ID, Name: cfg.Seed.BoardName}).
		FirstOrCreate(&b).Error; err != nil {
		return fmt.Errorf("db: seed board %q: %w", cfg.Seed.Board, err)
	}

	var count int64
	if err := db.Model(&models.BoardColumn{}).Where("board_id = ?", b.ID).
		Count(&count).Error; err != nil {
		return fmt.Errorf("db: count columns of board %q: %w", cfg.Seed.Board, err)
	}
	if count == 0 {
		if err := board.SeedDefaultColumns(db, b.ID); err != nil {
			return err
		}
	}
	return nil
}
