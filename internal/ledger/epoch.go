package ledger

import (
	"errors"
)

// CurrentEpoch epoch id at nowMs for the given genesis and epoch length
func CurrentEpoch(nowMs, genesisMs, epochLengthMs int64) (int64, error) {
	if epochLengthMs <= 0 {
		return 0, errors.New("epochLengthMs should not be less than or equal zero")
	}

	elapsed := nowMs - genesisMs
	if elapsed < 0 {
		return 0, errors.New("invalid epoch: now before genesis")
	}

	return elapsed / epochLengthMs, nil
}
