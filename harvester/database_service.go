package harvester

import (
	"errors"
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type DatabaseService struct {
	db *gorm.DB
}

// NewDatabaseService connects to Postgres via DATABASE_URL.
func NewDatabaseService(databaseURL string) (*DatabaseService, error) {
	db, err := gorm.Open(postgres.Open(databaseURL), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return newDatabaseServiceWithDB(db)
}

// newDatabaseServiceWithDB wraps an already-open gorm handle. Tests use this
// with sqlite.
func newDatabaseServiceWithDB(db *gorm.DB) (*DatabaseService, error) {
	service := &DatabaseService{db: db}

	if err := service.runMigrations(); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return service, nil
}

func (s *DatabaseService) runMigrations() error {
	return s.db.AutoMigrate(&PromptModel{}, &EmailRecordModel{})
}

// PromptExists reports whether a prompt with this source link is already in
// the database.
func (s *DatabaseService) PromptExists(sourceLink string) (bool, error) {
	var count int64
	err := s.db.Model(&PromptModel{}).Where("source_link = ?", sourceLink).Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// SavePrompt inserts a new prompt row. The unique index on source_link makes
// concurrent duplicate inserts fail instead of doubling up.
func (s *DatabaseService) SavePrompt(prompt *PromptModel) error {
	return s.db.Create(prompt).Error
}

func (s *DatabaseService) GetPrompt(sourceLink string) (*PromptModel, error) {
	var prompt PromptModel
	err := s.db.Where("source_link = ?", sourceLink).First(&prompt).Error
	if err != nil {
		return nil, err
	}
	return &prompt, nil
}

func (s *DatabaseService) CountPrompts() (int64, error) {
	var count int64
	err := s.db.Model(&PromptModel{}).Count(&count).Error
	return count, err
}

// EmailProcessed reports whether this Gmail message id was already handled.
func (s *DatabaseService) EmailProcessed(messageID string) (bool, error) {
	var record EmailRecordModel
	err := s.db.Where("message_id = ?", messageID).First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (s *DatabaseService) SaveEmail(record *EmailRecordModel) error {
	return s.db.Create(record).Error
}

type AuthorCount struct {
	Author string
	Count  int64
}

// GetTopAuthors returns authors ranked by how many of their prompts made it
// into the database. The monitor seeds its account list from this.
func (s *DatabaseService) GetTopAuthors(limit int) ([]AuthorCount, error) {
	var authors []AuthorCount
	err := s.db.Model(&PromptModel{}).
		Select("author, count(*) as count").
		Where("author <> ''").
		Group("author").
		Order("count DESC").
		Limit(limit).
		Find(&authors).Error
	if err != nil {
		return nil, err
	}
	return authors, nil
}
