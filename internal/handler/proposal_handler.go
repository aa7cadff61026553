package handler

import (
	"strconv"

	"github.com/Rezan-vm/tornado-cash-salary-proposals/internal/handler/request"
	"github.com/Rezan-vm/tornado-cash-salary-proposals/internal/handler/response"
	"github.com/Rezan-vm/tornado-cash-salary-proposals/internal/payroll"
	"github.com/Rezan-vm/tornado-cash-salary-proposals/internal/service"
	"github.com/Rezan-vm/tornado-cash-salary-proposals/pkg/errno"

	"github.com/ethereum/go-ethereum/common"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type ProposalHandler struct {
	svc   *service.ProposalService
	store *service.ProposalStore
	safe  common.Address
}

func NewProposalHandler(svc *service.ProposalService, store *service.ProposalStore, safeAddr common.Address) *ProposalHandler {
	return &ProposalHandler{svc: svc, store: store, safe: safeAddr}
}

// Create godoc
// @Summary Build, sign and submit a batched payout proposal
// @Accept json
// @Produce json
// @Param body body request.CreateProposalRequest true "payout list"
// @Success 200 {object} response.Response
// @Router /proposals [post]
func (h *ProposalHandler) Create(c *gin.Context) {
	var req request.CreateProposalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, errno.ErrBind)
		return
	}

	payouts := make([]payroll.Payout, 0, len(req.Payouts))
	for _, item := range req.Payouts {
		if !common.IsHexAddress(item.Address) {
			response.Error(c, errno.ErrEncoding.WithDetail("malformed address %q", item.Address))
			return
		}
		amount, err := decimal.NewFromString(item.FiatAmount)
		if err != nil {
			response.Error(c, errno.ErrEncoding.WithDetail("malformed amount %q", item.FiatAmount))
			return
		}
		payouts = append(payouts, payroll.Payout{
			Label:      item.Label,
			Address:    item.Address,
			FiatAmount: amount,
		})
	}

	var (
		result *service.RunResult
		err    error
	)
	if req.DryRun {
		result, err = h.svc.Build(c.Request.Context(), payouts)
	} else {
		result, err = h.svc.Propose(c.Request.Context(), payouts)
	}
	if err != nil {
		response.Error(c, err)
		return
	}

	body := gin.H{
		"nonce":       result.Proposal.Nonce,
		"payouts":     len(result.Transfers),
		"token_price": result.TokenPrice.String(),
		"total_fiat":  result.TotalFiat.String(),
		"fingerprint": result.Fingerprint,
		"dry_run":     req.DryRun,
	}
	if !req.DryRun {
		body["safe_tx_hash"] = result.Proposal.SafeTxHash.Hex()
		body["safe_tx_gas"] = result.Proposal.SafeTxGas
		body["gas_fallback"] = result.GasFallback
	}
	response.Success(c, body)
}

// List godoc
// @Summary List recently submitted proposals
// @Produce json
// @Param limit query int false "max rows" default(50)
// @Success 200 {object} response.Response
// @Router /proposals [get]
func (h *ProposalHandler) List(c *gin.Context) {
	if h.store == nil {
		response.Error(c, errno.ErrDatabase.WithDetail("proposal history is not enabled"))
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	recs, err := h.store.List(c.Request.Context(), h.safe.Hex(), limit)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"proposals": recs})
}
