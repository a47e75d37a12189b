package db

import (
	"fmt"

	"gorm.io/gorm"

	types "github.com/yungbote/practice-backend/internal/domain"
)

func AutoMigrateAll(db *gorm.DB) error {
	if err := db.AutoMigrate(types.Models()...); err != nil {
		return err
	}
	return EnsureQuizIndexes(db)
}

// EnsureQuizIndexes creates the indexes AutoMigrate cannot express. The partial
// unique index is what makes start-or-resume safe under concurrent requests.
func EnsureQuizIndexes(db *gorm.DB) error {
	if err := db.Exec(`
		CREATE UNIQUE INDEX IF NOT EXISTS idx_quiz_attempt_in_progress
		ON quiz_attempt (user_id, question_set_id)
		WHERE is_completed = false;
	`).Error; err != nil {
		return fmt.Errorf("create idx_quiz_attempt_in_progress: %w", err)
	}
	if err := db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_quiz_attempt_user_completed
		ON quiz_attempt (user_id, question_set_id, completed_at);
	`).Error; err != nil {
		return fmt.Errorf("create idx_quiz_attempt_user_completed: %w", err)
	}
	if err := db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_question_set_active_order
		ON question (question_set_id, is_active, order_index);
	`).Error; err != nil {
		return fmt.Errorf("create idx_question_set_active_order: %w", err)
	}
	return nil
}

func (s *Service) AutoMigrateAll() error {
	s.log.Info("Auto migrating tables...", "driver", s.driver)
	if err := AutoMigrateAll(s.db); err != nil {
		s.log.Error("Auto migration failed", "error", err)
		return err
	}
	return nil
}
