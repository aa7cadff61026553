package request

// PayoutItem is one payout of a proposal request.
type PayoutItem struct {
	Label      string `json:"label"`
	Address    string `json:"address" binding:"required"`
	FiatAmount string `json:"fiat_amount" binding:"required"`
}

// CreateProposalRequest triggers one pipeline run over the supplied payouts.
type CreateProposalRequest struct {
	Payouts []PayoutItem `json:"payouts" binding:"required,min=1,dive"`
	DryRun  bool         `json:"dry_run"`
}
