package ledger

import (
	"context"
	"testing"

	"lend/core"

	"github.com/stretchr/testify/require"
)

func TestSupplyAndWithdraw(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	require.ErrorIs(t, env.ledgerz.Supply(ctx, "alice", "USDT", dec("0")), core.ErrZeroAmount)
	require.ErrorIs(t, env.ledgerz.Supply(ctx, "alice", "DOGE", dec("10")), core.ErrAssetNotFound)

	require.NoError(t, env.ledgerz.Supply(ctx, "alice", "USDT", dec("100")))
	require.NoError(t, env.ledgerz.Supply(ctx, "bob", "USDT", dec("50")))

	pool := env.pool(t, "USDT")
	require.True(t, pool.Cash.Equal(dec("150")), "cash %s", pool.Cash)
	require.True(t, pool.TotalSupplyScaled.Equal(dec("150")), "scaled %s", pool.TotalSupplyScaled)
	require.True(t, env.position(t, "alice", "USDT").SupplyScaled.Equal(dec("100")))

	require.NoError(t, env.ledgerz.Withdraw(ctx, "alice", "USDT", dec("40")))
	require.True(t, env.position(t, "alice", "USDT").SupplyScaled.Equal(dec("60")))
	require.True(t, env.pool(t, "USDT").Cash.Equal(dec("110")))

	// more than alice holds, though the pool has the cash
	require.ErrorIs(t, env.ledgerz.Withdraw(ctx, "alice", "USDT", dec("61")), core.ErrInsufficientBalance)

	// more than the pool holds
	require.ErrorIs(t, env.ledgerz.Withdraw(ctx, "alice", "USDT", dec("120")), core.ErrInsufficientLiquidity)
}

func TestSupplyPaused(t *testing.T) {
	env := newTestEnv(t)
	env.registry.paused = true

	err := env.ledgerz.Supply(context.Background(), "alice", "USDT", dec("100"))
	require.ErrorIs(t, err, core.ErrPaused)
}

func TestSupplyCaps(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	env.setAsset(t, "USDT", func(asset *core.AssetConfig) {
		asset.PerTxSupplyCap = dec("50")
		asset.TotalSupplyCap = dec("120")
	})

	require.ErrorIs(t, env.ledgerz.Supply(ctx, "alice", "USDT", dec("60")), core.ErrCapExceeded)

	require.NoError(t, env.ledgerz.Supply(ctx, "alice", "USDT", dec("50")))
	require.NoError(t, env.ledgerz.Supply(ctx, "bob", "USDT", dec("50")))

	// 100 supplied, another 50 would breach the total cap
	require.ErrorIs(t, env.ledgerz.Supply(ctx, "carl", "USDT", dec("50")), core.ErrCapExceeded)
	require.NoError(t, env.ledgerz.Supply(ctx, "carl", "USDT", dec("20")))
}

func TestWithdrawCollateralGuard(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	require.NoError(t, env.ledgerz.Supply(ctx, "bob", "USDT", dec("20000")))
	require.NoError(t, env.ledgerz.Supply(ctx, "alice", "BTC", dec("1")))
	require.NoError(t, env.ledgerz.Borrow(ctx, "alice", "USDT", dec("10000")))

	// borrow limit 21000, debt 10000: at most 11000 of limit may leave,
	// which is 11000 / (30000 * 0.7) = 0.5238 BTC
	require.ErrorIs(t, env.ledgerz.Withdraw(ctx, "alice", "BTC", dec("0.6")), core.ErrLtvViolation)
	require.NoError(t, env.ledgerz.Withdraw(ctx, "alice", "BTC", dec("0.5")))

	// no debt, free to withdraw everything
	require.NoError(t, env.ledgerz.Repay(ctx, "alice", "USDT", dec("10000")))
	require.NoError(t, env.ledgerz.Withdraw(ctx, "alice", "BTC", dec("0.5")))
	require.True(t, env.position(t, "alice", "BTC").SupplyScaled.IsZero())
}
