package codes

import (
	"errors"
	"strconv"

	"lend/core"

	"github.com/twitchtv/twirp"
)

const (
	// CustomCodeKey code key
	CustomCodeKey = "custom_code"
)

// With with specified error code
func With(err error, code int) error {
	twerr, ok := err.(twirp.Error)
	if !ok {
		twerr = twirp.InternalErrorWith(err)
	}

	return twerr.WithMeta(CustomCodeKey, strconv.Itoa(code))
}

// Get get the ledger error code, 0 if none
func Get(err error) int {
	var code core.ErrorCode
	if errors.As(err, &code) {
		return int(code)
	}

	return 0
}

// Twirp map a ledger error onto a twirp error code
func Twirp(err error) twirp.ErrorCode {
	var code core.ErrorCode
	if !errors.As(err, &code) {
		return twirp.Internal
	}

	switch code {
	case core.ErrNotAdmin:
		return twirp.PermissionDenied
	case core.ErrAssetNotFound:
		return twirp.NotFound
	case core.ErrDuplicateAsset:
		return twirp.AlreadyExists
	case core.ErrPaused, core.ErrPositionHealthy,
		core.ErrInsufficientLiquidity, core.ErrInsufficientBalance,
		core.ErrExceedsReserves, core.ErrLtvViolation,
		core.ErrCapExceeded, core.ErrFlashLoanUnderpaid:
		return twirp.FailedPrecondition
	case core.ErrOracle, core.ErrStalePrice, core.ErrUnknownSymbol, core.ErrZeroPrice:
		return twirp.Unavailable
	default:
		return twirp.InvalidArgument
	}
}

// HTTPStatus http status for a ledger error
func HTTPStatus(err error) int {
	return twirp.ServerHTTPStatusFromErrorCode(Twirp(err))
}
