package treasury

import (
	"context"
	"testing"

	"lend/core"

	"github.com/fox-one/pkg/store/db"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

type fakeTreasuryStore struct {
	transfers []*core.TreasuryTransfer
}

func (s *fakeTreasuryStore) Create(ctx context.Context, tx *db.DB, transfer *core.TreasuryTransfer) error {
	transfer.ID = uint64(len(s.transfers) + 1)
	s.transfers = append(s.transfers, transfer)
	return nil
}

func (s *fakeTreasuryStore) List(ctx context.Context, fromID uint64, limit int) ([]*core.TreasuryTransfer, error) {
	transfers := make([]*core.TreasuryTransfer, 0, limit)
	for _, t := range s.transfers {
		if t.ID > fromID && len(transfers) < limit {
			transfers = append(transfers, t)
		}
	}
	return transfers, nil
}

func TestDepositFee(t *testing.T) {
	store := &fakeTreasuryStore{}
	treasuryz := New(&core.Treasury{}, store)

	err := treasuryz.DepositFee(context.Background(), nil, "USDT", decimal.NewFromFloat(0.9), 42, "trace-1")
	require.NoError(t, err)

	require.Len(t, store.transfers, 1)
	transfer := store.transfers[0]
	require.Equal(t, core.TransferCategoryFee, transfer.Category)
	require.Equal(t, "USDT", transfer.Symbol)
	require.Equal(t, int64(42), transfer.EpochID)
	require.Equal(t, "trace-1", transfer.Memo)
	require.NotEmpty(t, transfer.TraceID)
}

func TestDepositPenalty(t *testing.T) {
	store := &fakeTreasuryStore{}
	treasuryz := New(&core.Treasury{}, store)

	err := treasuryz.DepositPenalty(context.Background(), nil, "BTC", decimal.NewFromFloat(0.02), 42, "carl")
	require.NoError(t, err)

	require.Len(t, store.transfers, 1)
	transfer := store.transfers[0]
	require.Equal(t, core.TransferCategoryPenalty, transfer.Category)
	require.Equal(t, "carl", transfer.RecipientHint)
}
