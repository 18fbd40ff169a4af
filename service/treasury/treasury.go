package treasury

import (
	"context"

	"lend/core"
	"lend/pkg/concurrency"
	"lend/pkg/id"
	"lend/pkg/resthttp"

	"github.com/fox-one/pkg/logger"
	"github.com/fox-one/pkg/store/db"
	"github.com/shopspring/decimal"
)

type service struct {
	cfg           *core.Treasury
	treasuryStore core.ITreasuryStore
	limit         *concurrency.GoLimit
}

// New new treasury service
func New(cfg *core.Treasury, treasuryStore core.ITreasuryStore) core.ITreasuryService {
	return &service{
		cfg:           cfg,
		treasuryStore: treasuryStore,
		limit:         concurrency.NewGoLimit(16),
	}
}

// DepositFee routes a fee to the treasury collaborator keyed by epoch.
// Fire-and-forget: the transfer row commits with the ledger mutation, the
// notification is best effort.
func (s *service) DepositFee(ctx context.Context, tx *db.DB, symbol string, amount decimal.Decimal, epochID int64, memo string) error {
	transfer := &core.TreasuryTransfer{
		TraceID:  id.GenTraceID(),
		Category: core.TransferCategoryFee,
		Symbol:   symbol,
		Amount:   amount,
		EpochID:  epochID,
		Memo:     memo,
	}

	if err := s.treasuryStore.Create(ctx, tx, transfer); err != nil {
		return err
	}

	s.notify(ctx, transfer)
	return nil
}

// DepositPenalty routes a liquidation penalty share to the treasury
// collaborator keyed by epoch.
func (s *service) DepositPenalty(ctx context.Context, tx *db.DB, symbol string, amount decimal.Decimal, epochID int64, recipientHint string) error {
	transfer := &core.TreasuryTransfer{
		TraceID:       id.GenTraceID(),
		Category:      core.TransferCategoryPenalty,
		Symbol:        symbol,
		Amount:        amount,
		EpochID:       epochID,
		RecipientHint: recipientHint,
	}

	if err := s.treasuryStore.Create(ctx, tx, transfer); err != nil {
		return err
	}

	s.notify(ctx, transfer)
	return nil
}

func (s *service) notify(ctx context.Context, transfer *core.TreasuryTransfer) {
	if s.cfg == nil || s.cfg.EndPoint == "" {
		return
	}

	log := logger.FromContext(ctx).WithField("service", "treasury")
	url := s.cfg.EndPoint + "/deposits"

	s.limit.Add()
	go func() {
		defer s.limit.Done()

		request := resthttp.WithRequestID(context.Background(), transfer.TraceID)
		if _, err := resthttp.Execute(request, "POST", url, transfer, nil); err != nil {
			log.WithError(err).Errorln("treasury deposit notify", transfer.TraceID)
		}
	}()
}
