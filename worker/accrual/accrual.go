package accrual

import (
	"context"
	"time"

	"lend/core"
	"lend/worker"

	"github.com/fox-one/pkg/logger"
	"github.com/robfig/cron/v3"
)

// Worker accrual keeper. Keeps interest indices fresh on every pool even
// when no ledger traffic touches it.
type Worker struct {
	worker.BaseJob
	Config    *core.Config
	PoolStore core.IPoolStore
	Ledgerz   core.ILedgerService
}

// New new accrual worker
func New(cfg *core.Config, poolStore core.IPoolStore, ledgerz core.ILedgerService) *Worker {
	job := Worker{
		Config:    cfg,
		PoolStore: poolStore,
		Ledgerz:   ledgerz,
	}

	l, _ := time.LoadLocation(job.Config.App.Location)
	job.Cron = cron.New(cron.WithLocation(l))
	spec := "@every 1s"
	job.Cron.AddFunc(spec, job.Run)
	job.OnWork = func() error {
		return job.onWork(context.Background())
	}

	return &job
}

func (w *Worker) onWork(ctx context.Context) error {
	log := logger.FromContext(ctx).WithField("worker", "accrual")

	pools, err := w.PoolStore.All(ctx)
	if err != nil {
		log.WithError(err).Errorln("pools.All")
		return err
	}

	for _, pool := range pools {
		if err := w.Ledgerz.UpdateRates(ctx, pool.Symbol); err != nil {
			log.WithError(err).Errorln("update rates:", pool.Symbol)
		}
	}

	return nil
}
