// Package service runs the proposal pipeline: price the payouts, encode the
// batch, resolve the nonce, obtain the gas budget and the safe transaction
// hash, sign and submit.
package service

import (
	"context"
	"encoding/json"
	"math/big"
	"time"

	"github.com/Rezan-vm/tornado-cash-salary-proposals/internal/convert"
	"github.com/Rezan-vm/tornado-cash-salary-proposals/internal/model"
	"github.com/Rezan-vm/tornado-cash-salary-proposals/internal/payroll"
	"github.com/Rezan-vm/tornado-cash-salary-proposals/internal/safe"
	"github.com/Rezan-vm/tornado-cash-salary-proposals/internal/service/mq"
	"github.com/Rezan-vm/tornado-cash-salary-proposals/internal/txservice"
	"github.com/Rezan-vm/tornado-cash-salary-proposals/pkg/crypto_util"
	"github.com/Rezan-vm/tornado-cash-salary-proposals/pkg/errno"
	"github.com/Rezan-vm/tornado-cash-salary-proposals/pkg/lock"
	"github.com/Rezan-vm/tornado-cash-salary-proposals/pkg/logger"
	"github.com/Rezan-vm/tornado-cash-salary-proposals/pkg/monitor"

	"github.com/ethereum/go-ethereum/common"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// runLockTTL bounds how long a crashed run can block the next one.
const runLockTTL = 2 * time.Minute

// PriceSource yields current unit prices for asset identifiers.
type PriceSource interface {
	Prices(ctx context.Context, ids []string) ([]decimal.Decimal, error)
}

// SafeReader reads the safe's on-chain views.
type SafeReader interface {
	Address() common.Address
	Nonce(ctx context.Context) (uint64, error)
	TransactionHash(ctx context.Context, p *safe.Proposal) (common.Hash, error)
}

// TxService is the coordination-service surface the pipeline consumes.
type TxService interface {
	PendingTransactions(ctx context.Context) ([]txservice.MultisigTransaction, error)
	EstimateSafeTxGas(ctx context.Context, p *safe.Proposal) (uint64, error)
	ProposeTransaction(ctx context.Context, p *safe.Proposal) error
}

// Deps wires the collaborators. Store, Producer and Locker may be nil; the
// pipeline then skips history, events and the run lock respectively.
type Deps struct {
	Prices   PriceSource
	Contract SafeReader
	TxSvc    TxService
	Signer   *safe.Signer

	Token     common.Address
	GeckoID   string
	Decimals  int32
	MultiSend common.Address
	Origin    string

	Store    *ProposalStore
	Producer mq.Producer
	Topic    string
	Locker   lock.DistributedLock
}

type ProposalService struct {
	deps Deps
}

func NewProposalService(deps Deps) *ProposalService {
	return &ProposalService{deps: deps}
}

// RunResult summarizes one pipeline run.
type RunResult struct {
	Proposal    *safe.Proposal
	Transfers   []safe.Transfer
	TokenPrice  decimal.Decimal
	TotalFiat   decimal.Decimal
	Fingerprint string
	GasFallback bool
}

// Build executes the offline half of the pipeline: price lookup, amount
// conversion, batch encoding, nonce resolution. No signature is produced and
// nothing is submitted; the dry-run command stops here.
func (s *ProposalService) Build(ctx context.Context, payouts []payroll.Payout) (*RunResult, error) {
	if len(payouts) == 0 {
		return nil, errno.ErrEncoding.WithDetail("no payouts to propose")
	}

	prices, err := s.deps.Prices.Prices(ctx, []string{s.deps.GeckoID})
	if err != nil {
		return nil, err
	}
	price := prices[0]

	transfers := make([]safe.Transfer, 0, len(payouts))
	totalFiat := decimal.Zero
	for _, p := range payouts {
		units, err := convert.ToTokenUnits(p.FiatAmount, price, s.deps.Decimals)
		if err != nil {
			return nil, err
		}

		amount, ok := new(big.Int).SetString(units, 10)
		if !ok {
			return nil, errno.ErrEncoding.WithDetail("converted amount %q is not an integer", units)
		}

		transfers = append(transfers, safe.Transfer{
			Token:     s.deps.Token,
			Recipient: common.HexToAddress(p.Address),
			Amount:    amount,
		})
		totalFiat = totalFiat.Add(p.FiatAmount)
	}

	data, err := safe.MultiSendCalldata(transfers)
	if err != nil {
		return nil, err
	}

	onChainNonce, err := s.deps.Contract.Nonce(ctx)
	if err != nil {
		return nil, err
	}

	pending, err := s.deps.TxSvc.PendingTransactions(ctx)
	if err != nil {
		return nil, err
	}
	pendingNonces := make([]uint64, 0, len(pending))
	for _, tx := range pending {
		pendingNonces = append(pendingNonces, tx.Nonce)
	}

	nonce := safe.ResolveNonce(onChainNonce, pendingNonces)

	logger.Info("proposal assembled",
		zap.Uint64("onChainNonce", onChainNonce),
		zap.Int("pendingProposals", len(pending)),
		zap.Uint64("nonce", nonce),
		zap.Int("payouts", len(transfers)),
		zap.String("tokenPrice", price.String()))

	proposal := &safe.Proposal{
		To:        s.deps.MultiSend,
		Value:     new(big.Int),
		Data:      data,
		Operation: safe.DelegateCall,
		Nonce:     nonce,
		Origin:    s.deps.Origin,
	}

	return &RunResult{
		Proposal:    proposal,
		Transfers:   transfers,
		TokenPrice:  price,
		TotalFiat:   totalFiat,
		Fingerprint: crypto_util.Fingerprint(data),
	}, nil
}

// Propose runs the full pipeline and submits the signed proposal. Either the
// whole batch ends up at the transaction service or the run fails; there is
// no partial-success state.
func (s *ProposalService) Propose(ctx context.Context, payouts []payroll.Payout) (*RunResult, error) {
	start := time.Now()

	if s.deps.Locker != nil {
		key := s.deps.Contract.Address().Hex()
		ok, err := s.deps.Locker.Acquire(ctx, key, runLockTTL)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, errno.ErrLockHeld
		}
		defer func() {
			if err := s.deps.Locker.Release(context.WithoutCancel(ctx), key); err != nil {
				logger.Warn("failed to release run lock", zap.Error(err))
			}
		}()
	}

	result, err := s.Build(ctx, payouts)
	if err != nil {
		return nil, err
	}

	if s.deps.Store != nil {
		dup, err := s.deps.Store.HasFingerprint(ctx, result.Fingerprint)
		if err != nil {
			return nil, err
		}
		if dup {
			return nil, errno.ErrDuplicateBatch.WithDetail("fingerprint %s", result.Fingerprint)
		}
	}

	proposal := result.Proposal

	gas, err := s.deps.TxSvc.EstimateSafeTxGas(ctx, proposal)
	if err != nil {
		logger.Warn("relay estimation failed, using fixed gas budget",
			zap.Error(err),
			zap.Uint64("fallback", txservice.FallbackSafeTxGas))
		monitor.Business.GasFallbackTotal.Inc()
		gas = txservice.FallbackSafeTxGas
		result.GasFallback = true
	}
	proposal.SafeTxGas = gas

	hash, err := s.deps.Contract.TransactionHash(ctx, proposal)
	if err != nil {
		return nil, err
	}
	proposal.SafeTxHash = hash

	sig, err := s.deps.Signer.Sign(hash)
	if err != nil {
		return nil, err
	}
	proposal.Signature = sig
	proposal.Sender = s.deps.Signer.Address()

	if err := s.deps.TxSvc.ProposeTransaction(ctx, proposal); err != nil {
		return nil, err
	}

	logger.Info("proposal posted to safe",
		zap.Uint64("nonce", proposal.Nonce),
		zap.String("safeTxHash", hash.Hex()),
		zap.Uint64("safeTxGas", gas),
		zap.String("sender", proposal.Sender.Hex()))

	monitor.Business.ProposalsSubmittedTotal.WithLabelValues(s.deps.Contract.Address().Hex()).Inc()
	monitor.Business.ProposalBuildDuration.Observe(time.Since(start).Seconds())
	monitor.Business.BatchPayoutCount.Observe(float64(len(result.Transfers)))

	// Post-acknowledgment bookkeeping. The proposal is already at the
	// service, so failures here are logged and do not fail the run.
	s.recordAndPublish(ctx, result)

	return result, nil
}

func (s *ProposalService) recordAndPublish(ctx context.Context, result *RunResult) {
	proposal := result.Proposal
	safeAddr := s.deps.Contract.Address().Hex()

	if s.deps.Store != nil {
		rec := &model.ProposalRecord{
			SafeAddress: safeAddr,
			Nonce:       proposal.Nonce,
			SafeTxHash:  proposal.SafeTxHash.Hex(),
			Fingerprint: result.Fingerprint,
			ToAddress:   proposal.To.Hex(),
			SafeTxGas:   proposal.SafeTxGas,
			PayoutCount: len(result.Transfers),
			TotalFiat:   result.TotalFiat,
			TokenPrice:  result.TokenPrice,
			Status:      model.ProposalStatusSubmitted,
			Origin:      proposal.Origin,
		}
		if err := s.deps.Store.Record(ctx, rec); err != nil {
			logger.Error("failed to record proposal history", zap.Error(err))
		}
	}

	if s.deps.Producer != nil {
		event := map[string]any{
			"safe":         safeAddr,
			"nonce":        proposal.Nonce,
			"safe_tx_hash": proposal.SafeTxHash.Hex(),
			"fingerprint":  result.Fingerprint,
			"payouts":      len(result.Transfers),
			"total_fiat":   result.TotalFiat.String(),
			"origin":       proposal.Origin,
			"submitted_at": time.Now().UTC().Format(time.RFC3339),
		}
		payload, err := json.Marshal(event)
		if err == nil {
			err = s.deps.Producer.Publish(ctx, s.deps.Topic, safeAddr, payload)
		}
		if err != nil {
			logger.Error("failed to publish proposal event", zap.Error(err))
		}
	}
}
