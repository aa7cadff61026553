package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Proposal statuses. A record is written only after the transaction service
// acknowledged the proposal, so "submitted" is the only status this pipeline
// produces; "executed" is reserved for an external reconciliation job.
const (
	ProposalStatusSubmitted = "submitted"
	ProposalStatusExecuted  = "executed"
)

// ProposalRecord is the history row written per accepted proposal.
type ProposalRecord struct {
	ID          uint64          `gorm:"primaryKey"`
	SafeAddress string          `gorm:"size:42;index"`
	Nonce       uint64          `gorm:"index"`
	SafeTxHash  string          `gorm:"size:66;uniqueIndex"`
	Fingerprint string          `gorm:"size:64;index"` // blake3 of the batch payload
	ToAddress   string          `gorm:"size:42"`
	SafeTxGas   uint64
	PayoutCount int
	TotalFiat   decimal.Decimal `gorm:"type:numeric(30,10)"`
	TokenPrice  decimal.Decimal `gorm:"type:numeric(30,10)"`
	Status      string          `gorm:"size:16"`
	Origin      string          `gorm:"size:128"`
	CreatedAt   time.Time
}

func (ProposalRecord) TableName() string {
	return "proposals"
}
