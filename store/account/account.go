package account

import (
	"context"

	"lend/core"

	"github.com/fox-one/pkg/store/db"
	"github.com/jinzhu/gorm"
)

type accountStore struct {
	db *db.DB
}

// New new account store
func New(db *db.DB) core.IAccountStore {
	return &accountStore{db: db}
}

func init() {
	db.RegisterMigrate(func(db *db.DB) error {
		tx := db.Update().Model(core.Position{})
		if err := tx.AutoMigrate(core.Position{}).Error; err != nil {
			return err
		}

		return nil
	})
}

func (s *accountStore) Save(ctx context.Context, tx *db.DB, position *core.Position) error {
	if err := tx.Update().Where("user_id=? and symbol=?", position.UserID, position.Symbol).FirstOrCreate(position).Error; err != nil {
		return err
	}

	return nil
}

// Find returns a zero-ID position if the user never touched the symbol.
func (s *accountStore) Find(ctx context.Context, userID, symbol string) (*core.Position, error) {
	var position core.Position
	if err := s.db.View().Where("user_id=? and symbol=?", userID, symbol).First(&position).Error; err != nil {
		if gorm.IsRecordNotFoundError(err) {
			return &core.Position{UserID: userID, Symbol: symbol}, nil
		}
		return nil, err
	}

	return &position, nil
}

func (s *accountStore) FindByUser(ctx context.Context, userID string) ([]*core.Position, error) {
	var positions []*core.Position
	if err := s.db.View().Where("user_id=?", userID).Find(&positions).Error; err != nil {
		return nil, err
	}

	return positions, nil
}

func (s *accountStore) Update(ctx context.Context, tx *db.DB, position *core.Position) error {
	version := position.Version
	position.Version++
	if err := tx.Update().Model(core.Position{}).Where("user_id=? and symbol=? and version=?", position.UserID, position.Symbol, version).Update(position).Error; err != nil {
		return err
	}

	return nil
}
