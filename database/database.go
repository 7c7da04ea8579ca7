package database

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/rpupo63/signature-homes-backend/config"
	"github.com/rpupo63/signature-homes-backend/content"
	"github.com/rpupo63/signature-homes-backend/gallery"
	"github.com/rpupo63/signature-homes-backend/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type Database struct {
	db                    *gorm.DB
	projectRepo           *ProjectRepo
	galleryImageRepo      *GalleryImageRepo
	contactSubmissionRepo *ContactSubmissionRepo
}

// New initializes a new Database struct with each repository using a shared GORM database instance
func New(db *gorm.DB) Database {
	return Database{
		db:                    db,
		projectRepo:           NewProjectRepo(db),
		galleryImageRepo:      NewGalleryImageRepo(db),
		contactSubmissionRepo: NewContactSubmissionRepo(db),
	}
}

// Accessor methods for each repository

func (d Database) ProjectRepo() *ProjectRepo {
	return d.projectRepo
}

func (d Database) GalleryImageRepo() *GalleryImageRepo {
	return d.galleryImageRepo
}

func (d Database) ContactSubmissionRepo() *ContactSubmissionRepo {
	return d.contactSubmissionRepo
}

// DSN builds the postgres connection string for DB_TYPE. An empty DB_TYPE
// means the site runs without a database and DSN returns "".
func DSN(c map[string]string) (string, error) {
	dbType := config.GetString(c, "DB_TYPE", "")
	switch dbType {
	case "":
		return "", nil
	case "supa":
		return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=require",
			config.GetString(c, "SUPABASE_DB_HOST", ""),
			config.GetString(c, "SUPABASE_DB_USER", ""),
			config.GetString(c, "SUPABASE_DB_PASSWORD", ""),
			config.GetString(c, "SUPABASE_DB_NAME", ""),
			config.GetString(c, "SUPABASE_DB_PORT", "5432"),
		), nil
	case "postgres":
		return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
			config.GetString(c, "DB_HOST", "localhost"),
			config.GetString(c, "DB_USER", "postgres"),
			config.GetString(c, "DB_PASSWORD", ""),
			config.GetString(c, "DB_NAME", "signature_homes"),
			config.GetString(c, "DB_PORT", "5432"),
			config.GetString(c, "DB_SSLMODE", "disable"),
		), nil
	default:
		return "", fmt.Errorf("unsupported DB_TYPE %q", dbType)
	}
}

// Open connects to postgres. It returns a nil *gorm.DB when no database is configured.
func Open(c map[string]string) (*gorm.DB, error) {
	dsn, err := DSN(c)
	if err != nil || dsn == "" {
		return nil, err
	}

	newLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold:             time.Duration(config.GetInt(c, "DB_SLOW_QUERY_MS", 2000)) * time.Millisecond,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  true,
		},
	)

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  dsn,
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		PrepareStmt: false,
		Logger:      newLogger,
	})
	if err != nil {
		return nil, fmt.Errorf("error connecting to database: %w", err)
	}

	if err := ping(db); err != nil {
		return nil, err
	}
	return db, nil
}

// ping runs SELECT 1 and closes the pool when it fails
func ping(db *gorm.DB) error {
	var result int
	if err := db.Raw("SELECT 1").Scan(&result).Error; err != nil {
		if sqlDB, dbErr := db.DB(); dbErr == nil {
			sqlDB.Close()
		}
		return fmt.Errorf("error testing database connection: %w", err)
	}
	return nil
}

// Migrate creates or updates the tables for every model
func (d Database) Migrate() error {
	return d.db.AutoMigrate(
		&models.Project{},
		&models.GalleryImage{},
		&models.ContactSubmission{},
	)
}

// SeedCatalog writes the authored projects and images, keeping catalog order
// in the position column
func (d Database) SeedCatalog(file *content.File) error {
	return d.db.Transaction(func(tx *gorm.DB) error {
		projects := NewProjectRepo(tx)
		for i := range file.Projects {
			if err := projects.Upsert(&file.Projects[i]); err != nil {
				return fmt.Errorf("failed to seed project %s: %w", file.Projects[i].ID, err)
			}
		}

		images := NewGalleryImageRepo(tx)
		for i := range file.Images {
			if err := images.Upsert(&file.Images[i]); err != nil {
				return fmt.Errorf("failed to seed image %d: %w", file.Images[i].ID, err)
			}
		}
		return nil
	})
}

// LoadCatalog reads projects and images and builds the immutable catalog
func (d Database) LoadCatalog() (*gallery.Catalog, error) {
	projects, err := d.projectRepo.FindAll()
	if err != nil {
		return nil, fmt.Errorf("failed to load projects: %w", err)
	}
	images, err := d.galleryImageRepo.FindAll()
	if err != nil {
		return nil, fmt.Errorf("failed to load gallery images: %w", err)
	}
	return gallery.NewCatalog(projects, images)
}
