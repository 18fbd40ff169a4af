package pool

import (
	"context"

	"lend/core"

	"github.com/fox-one/pkg/store/db"
	"github.com/jinzhu/gorm"
)

type poolStore struct {
	db *db.DB
}

// New new pool store
func New(db *db.DB) core.IPoolStore {
	return &poolStore{db: db}
}

func init() {
	db.RegisterMigrate(func(db *db.DB) error {
		tx := db.Update().Model(core.Pool{})
		if err := tx.AutoMigrate(core.Pool{}).Error; err != nil {
			return err
		}

		return nil
	})
}

func (s *poolStore) Save(ctx context.Context, tx *db.DB, pool *core.Pool) error {
	if err := tx.Update().Create(pool).Error; err != nil {
		return err
	}
	return nil
}

func (s *poolStore) Find(ctx context.Context, symbol string) (*core.Pool, error) {
	var pool core.Pool
	if err := s.db.View().Where("symbol=?", symbol).First(&pool).Error; err != nil {
		if gorm.IsRecordNotFoundError(err) {
			return &core.Pool{}, nil
		}
		return nil, err
	}

	return &pool, nil
}

func (s *poolStore) All(ctx context.Context) ([]*core.Pool, error) {
	var pools []*core.Pool
	if err := s.db.View().Find(&pools).Error; err != nil {
		return nil, err
	}
	return pools, nil
}

func (s *poolStore) AllAsMap(ctx context.Context) (map[string]*core.Pool, error) {
	pools, e := s.All(ctx)
	if e != nil {
		return nil, e
	}

	maps := make(map[string]*core.Pool)

	for _, p := range pools {
		maps[p.Symbol] = p
	}

	return maps, nil
}

func (s *poolStore) Update(ctx context.Context, tx *db.DB, pool *core.Pool) error {
	version := pool.Version
	pool.Version++
	if err := tx.Update().Model(core.Pool{}).Where("symbol=? and version=?", pool.Symbol, version).Update(pool).Error; err != nil {
		return err
	}

	return nil
}
