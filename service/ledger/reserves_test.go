package ledger

import (
	"context"
	"testing"

	"lend/core"

	"github.com/stretchr/testify/require"
)

func TestSkimReserves(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	require.NoError(t, env.ledgerz.Supply(ctx, "bob", "USDT", dec("100")))
	env.setPool(t, "USDT", func(pool *core.Pool) {
		pool.Reserves = dec("5")
	})

	err := env.ledgerz.SkimReserves(ctx, core.NewAuth("mallory"), "USDT", dec("3"))
	require.ErrorIs(t, err, core.ErrNotAdmin)

	err = env.ledgerz.SkimReserves(ctx, nil, "USDT", dec("3"))
	require.ErrorIs(t, err, core.ErrNotAdmin)

	err = env.ledgerz.SkimReserves(ctx, core.NewAuth("admin"), "USDT", dec("6"))
	require.ErrorIs(t, err, core.ErrExceedsReserves)

	require.NoError(t, env.ledgerz.SkimReserves(ctx, core.NewAuth("admin"), "USDT", dec("3")))

	pool := env.pool(t, "USDT")
	require.True(t, pool.Reserves.Equal(dec("2")), "reserves %s", pool.Reserves)
	require.True(t, pool.Cash.Equal(dec("97")), "cash %s", pool.Cash)

	require.Len(t, env.treasury.records, 1)
	record := env.treasury.records[0]
	require.Equal(t, core.TransferCategoryFee, record.category)
	require.Equal(t, "reserve skim", record.memo)
	require.True(t, record.amount.Equal(dec("3")))
}

func TestSkimReservesLiquidity(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	// reserves can exceed cash when most of the pool is lent out
	require.NoError(t, env.ledgerz.Supply(ctx, "bob", "USDT", dec("10")))
	env.setPool(t, "USDT", func(pool *core.Pool) {
		pool.Reserves = dec("20")
	})

	err := env.ledgerz.SkimReserves(ctx, core.NewAuth("admin"), "USDT", dec("15"))
	require.ErrorIs(t, err, core.ErrInsufficientLiquidity)
}
