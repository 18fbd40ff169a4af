package treasury

import (
	"context"

	"lend/core"

	"github.com/fox-one/pkg/store/db"
)

type treasuryStore struct {
	db *db.DB
}

// New new treasury transfer store
func New(db *db.DB) core.ITreasuryStore {
	return &treasuryStore{db: db}
}

func init() {
	db.RegisterMigrate(func(db *db.DB) error {
		tx := db.Update().Model(core.TreasuryTransfer{})
		if err := tx.AutoMigrate(core.TreasuryTransfer{}).Error; err != nil {
			return err
		}

		return nil
	})
}

func (s *treasuryStore) Create(ctx context.Context, tx *db.DB, transfer *core.TreasuryTransfer) error {
	if err := tx.Update().Where("trace_id=?", transfer.TraceID).FirstOrCreate(transfer).Error; err != nil {
		return err
	}

	return nil
}

func (s *treasuryStore) List(ctx context.Context, fromID uint64, limit int) ([]*core.TreasuryTransfer, error) {
	var transfers []*core.TreasuryTransfer
	if err := s.db.View().Where("id > ?", fromID).Limit(limit).Order("id").Find(&transfers).Error; err != nil {
		return nil, err
	}

	return transfers, nil
}
