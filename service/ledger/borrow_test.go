package ledger

import (
	"context"
	"testing"

	"lend/core"

	"github.com/stretchr/testify/require"
)

func TestBorrowAgainstCollateral(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	require.NoError(t, env.ledgerz.Supply(ctx, "bob", "USDT", dec("30000")))
	require.NoError(t, env.ledgerz.Supply(ctx, "alice", "BTC", dec("1")))

	// borrow limit is 30000 * 0.7 = 21000
	require.ErrorIs(t, env.ledgerz.Borrow(ctx, "alice", "USDT", dec("22000")), core.ErrLtvViolation)
	require.NoError(t, env.ledgerz.Borrow(ctx, "alice", "USDT", dec("21000")))

	pool := env.pool(t, "USDT")
	require.True(t, pool.Cash.Equal(dec("9000")), "cash %s", pool.Cash)
	require.True(t, env.position(t, "alice", "USDT").BorrowScaled.Equal(dec("21000")))

	// the limit is exhausted
	require.ErrorIs(t, env.ledgerz.Borrow(ctx, "alice", "USDT", dec("1")), core.ErrLtvViolation)
}

func TestBorrowNotBorrowable(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	require.NoError(t, env.ledgerz.Supply(ctx, "alice", "BTC", dec("1")))
	require.ErrorIs(t, env.ledgerz.Borrow(ctx, "alice", "BTC", dec("0.1")), core.ErrNotBorrowable)
}

func TestBorrowWithoutCollateral(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	require.NoError(t, env.ledgerz.Supply(ctx, "bob", "USDT", dec("10000")))

	// usdt deposits are not collateral
	require.NoError(t, env.ledgerz.Supply(ctx, "alice", "USDT", dec("5000")))
	require.ErrorIs(t, env.ledgerz.Borrow(ctx, "alice", "USDT", dec("100")), core.ErrLtvViolation)
}

func TestBorrowLiquidityAndCaps(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	require.NoError(t, env.ledgerz.Supply(ctx, "bob", "USDT", dec("5000")))
	require.NoError(t, env.ledgerz.Supply(ctx, "alice", "BTC", dec("1")))

	require.ErrorIs(t, env.ledgerz.Borrow(ctx, "alice", "USDT", dec("6000")), core.ErrInsufficientLiquidity)

	env.setAsset(t, "USDT", func(asset *core.AssetConfig) {
		asset.PerTxBorrowCap = dec("1000")
		asset.TotalBorrowCap = dec("1500")
	})

	require.ErrorIs(t, env.ledgerz.Borrow(ctx, "alice", "USDT", dec("2000")), core.ErrCapExceeded)
	require.NoError(t, env.ledgerz.Borrow(ctx, "alice", "USDT", dec("1000")))
	require.ErrorIs(t, env.ledgerz.Borrow(ctx, "alice", "USDT", dec("600")), core.ErrCapExceeded)
}

func TestRepay(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	require.NoError(t, env.ledgerz.Supply(ctx, "bob", "USDT", dec("30000")))
	require.NoError(t, env.ledgerz.Supply(ctx, "alice", "BTC", dec("1")))
	require.NoError(t, env.ledgerz.Borrow(ctx, "alice", "USDT", dec("16000")))

	require.NoError(t, env.ledgerz.Repay(ctx, "alice", "USDT", dec("5000")))
	require.True(t, env.position(t, "alice", "USDT").BorrowScaled.Equal(dec("11000")))

	// overpayment is rejected, never clamped
	require.ErrorIs(t, env.ledgerz.Repay(ctx, "alice", "USDT", dec("11001")), core.ErrRepayExceedsDebt)

	require.NoError(t, env.ledgerz.Repay(ctx, "alice", "USDT", dec("11000")))
	require.True(t, env.position(t, "alice", "USDT").BorrowScaled.IsZero())
	require.True(t, env.pool(t, "USDT").Cash.Equal(dec("30000")))
	require.True(t, env.pool(t, "USDT").TotalBorrowScaled.IsZero())
}
