package core

import (
	"context"
	"time"

	"github.com/fox-one/pkg/store/db"
	"github.com/shopspring/decimal"
)

// TreasuryTransfer a fee or penalty routed to the treasury collaborator,
// keyed by epoch. Fire-and-forget: the ledger never reads treasury state back.
type TreasuryTransfer struct {
	ID            uint64          `sql:"PRIMARY_KEY;AUTO_INCREMENT" json:"id"`
	TraceID       string          `sql:"size:36;unique_index:trace_idx" json:"trace_id"`
	Category      string          `sql:"size:20" json:"category"`
	Symbol        string          `sql:"size:20" json:"symbol"`
	Amount        decimal.Decimal `sql:"type:decimal(20,8)" json:"amount"`
	EpochID       int64           `json:"epoch_id"`
	Memo          string          `sql:"size:200" json:"memo"`
	RecipientHint string          `sql:"size:64" json:"recipient_hint"`
	CreatedAt     time.Time       `sql:"default:CURRENT_TIMESTAMP" json:"created_at"`
}

// treasury transfer categories
const (
	TransferCategoryFee     = "fee"
	TransferCategoryPenalty = "penalty"
	TransferCategoryReserve = "reserve"
)

// ITreasuryStore treasury transfer store interface
type ITreasuryStore interface {
	Create(ctx context.Context, tx *db.DB, transfer *TreasuryTransfer) error
	List(ctx context.Context, fromID uint64, limit int) ([]*TreasuryTransfer, error)
}

// ITreasuryService treasury collaborator interface
type ITreasuryService interface {
	DepositFee(ctx context.Context, tx *db.DB, symbol string, amount decimal.Decimal, epochID int64, memo string) error
	DepositPenalty(ctx context.Context, tx *db.DB, symbol string, amount decimal.Decimal, epochID int64, recipientHint string) error
}
