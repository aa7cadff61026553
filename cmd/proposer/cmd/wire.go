package cmd

import (
	"fmt"
	"net/http"
	"syscall"
	"time"

	"github.com/Rezan-vm/tornado-cash-salary-proposals/internal/delegate"
	"github.com/Rezan-vm/tornado-cash-salary-proposals/internal/pricing"
	"github.com/Rezan-vm/tornado-cash-salary-proposals/internal/safe"
	"github.com/Rezan-vm/tornado-cash-salary-proposals/internal/service"
	"github.com/Rezan-vm/tornado-cash-salary-proposals/internal/service/mq"
	"github.com/Rezan-vm/tornado-cash-salary-proposals/internal/txservice"
	"github.com/Rezan-vm/tornado-cash-salary-proposals/pkg/config"
	"github.com/Rezan-vm/tornado-cash-salary-proposals/pkg/database"
	"github.com/Rezan-vm/tornado-cash-salary-proposals/pkg/lock"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/redis/go-redis/v9"
	"golang.org/x/term"
)

// pipeline bundles everything a run needs, plus the optional collaborators
// the serve mode reuses.
type pipeline struct {
	svc       *service.ProposalService
	store     *service.ProposalStore
	safeAddr  common.Address
	producer  mq.Producer
	ethClient *ethclient.Client
}

func (p *pipeline) Close() {
	if p.producer != nil {
		_ = p.producer.Close()
	}
	if p.ethClient != nil {
		p.ethClient.Close()
	}
}

// buildPipeline constructs every client once and injects them, so tests and
// alternative wiring can substitute any collaborator.
func buildPipeline(cfg *config.Config) (*pipeline, error) {
	if err := cfg.RequireRun(); err != nil {
		return nil, err
	}

	key, err := delegate.Load(cfg.Delegate, promptPassword)
	if err != nil {
		return nil, err
	}
	signer := safe.NewSigner(key)

	ethClient, err := ethclient.Dial(cfg.Eth.RpcURL)
	if err != nil {
		return nil, fmt.Errorf("eth rpc dial failed: %w", err)
	}

	httpClient := &http.Client{Timeout: 30 * time.Second}

	safeAddr := common.HexToAddress(cfg.Safe.Address)
	contract := safe.NewContract(safeAddr, ethClient)
	prices := pricing.NewClient(httpClient, cfg.Pricing.BaseURL, cfg.Pricing.VsCurrency)
	txSvc := txservice.New(httpClient, cfg.Safe.TxServiceURL, cfg.Safe.RelayURL(), safeAddr)

	deps := service.Deps{
		Prices:    prices,
		Contract:  contract,
		TxSvc:     txSvc,
		Signer:    signer,
		Token:     common.HexToAddress(cfg.Token.Address),
		GeckoID:   cfg.Token.GeckoID,
		Decimals:  cfg.Token.Decimals,
		MultiSend: common.HexToAddress(cfg.Safe.MultiSendAddress),
		Origin:    cfg.Safe.Origin,
		Topic:     cfg.Kafka.Topic,
	}

	p := &pipeline{safeAddr: safeAddr, ethClient: ethClient}

	if cfg.DB.Enabled {
		db, err := database.ConnectPostgres(cfg.DB)
		if err != nil {
			ethClient.Close()
			return nil, err
		}
		p.store = service.NewProposalStore(db)
		deps.Store = p.store
	}

	if cfg.Redis.Enabled {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		deps.Locker = lock.NewRedisLock(client)
	}

	if cfg.Kafka.Enabled {
		p.producer = mq.NewKafkaProducer(cfg.Kafka.Brokers, cfg.Kafka.Topic)
		deps.Producer = p.producer
	}

	p.svc = service.NewProposalService(deps)
	return p, nil
}

func promptPassword() (string, error) {
	fmt.Print("Keystore password: ")
	raw, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println()
	if err != nil {
		return "", err
	}
	return string(raw), nil
}
