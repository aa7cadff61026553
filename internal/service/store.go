package service

import (
	"context"
	"errors"

	"github.com/Rezan-vm/tornado-cash-salary-proposals/internal/model"
	"github.com/Rezan-vm/tornado-cash-salary-proposals/pkg/errno"

	"gorm.io/gorm"
)

// ProposalStore persists accepted proposals and backs the duplicate-batch
// guard. Optional: when no database is configured the pipeline runs without
// history.
type ProposalStore struct {
	db *gorm.DB
}

func NewProposalStore(db *gorm.DB) *ProposalStore {
	return &ProposalStore{db: db}
}

// HasFingerprint reports whether a batch with the same payload fingerprint
// was already submitted.
func (s *ProposalStore) HasFingerprint(ctx context.Context, fingerprint string) (bool, error) {
	var rec model.ProposalRecord
	err := s.db.WithContext(ctx).
		Where("fingerprint = ? AND status = ?", fingerprint, model.ProposalStatusSubmitted).
		First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, errno.ErrDatabase.WithDetail("%v", err)
	}
	return true, nil
}

// Record writes the history row for an accepted proposal.
func (s *ProposalStore) Record(ctx context.Context, rec *model.ProposalRecord) error {
	if err := s.db.WithContext(ctx).Create(rec).Error; err != nil {
		return errno.ErrDatabase.WithDetail("%v", err)
	}
	return nil
}

// List returns the most recent proposals for a safe.
func (s *ProposalStore) List(ctx context.Context, safeAddress string, limit int) ([]model.ProposalRecord, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}

	var recs []model.ProposalRecord
	err := s.db.WithContext(ctx).
		Where("safe_address = ?", safeAddress).
		Order("id DESC").
		Limit(limit).
		Find(&recs).Error
	if err != nil {
		return nil, errno.ErrDatabase.WithDetail("%v", err)
	}
	return recs, nil
}
