package repositories

import (
	"context"

	"github.com/zikrhub/backend/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ScoreLedgerRepository defines the interface for the append-only score
// ledger. A user's total for a group is a fold over their entries.
type ScoreLedgerRepository interface {
	Append(ctx context.Context, entry *models.ScoreEntry) error
	GetScore(ctx context.Context, groupID, userID string) (int, error)
}

// PostgresScoreLedgerRepository implements ScoreLedgerRepository for
// PostgreSQL
type PostgresScoreLedgerRepository struct {
	db *gorm.DB
}

// NewPostgresScoreLedgerRepository creates a new PostgresScoreLedgerRepository
func NewPostgresScoreLedgerRepository(db *gorm.DB) *PostgresScoreLedgerRepository {
	return &PostgresScoreLedgerRepository{db: db}
}

// Append inserts one ledger entry. Replays of the same
// (group, user, challenge) cause are dropped by the unique index, keeping
// score increments exactly-once.
func (r *PostgresScoreLedgerRepository) Append(ctx context.Context, entry *models.ScoreEntry) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(entry).Error
}

// GetScore folds the user's entries for the group into a total
func (r *PostgresScoreLedgerRepository) GetScore(ctx context.Context, groupID, userID string) (int, error) {
	var total int
	err := r.db.WithContext(ctx).
		Model(&models.ScoreEntry{}).
		Where("group_id = ? AND user_id = ?", groupID, userID).
		Select("COALESCE(SUM(delta), 0)").
		Scan(&total).Error
	return total, err
}
