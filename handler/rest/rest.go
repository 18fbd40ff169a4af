package rest

import (
	"errors"
	"net/http"

	"lend/core"
	"lend/handler/render"

	"github.com/go-chi/chi"
)

// Handle handle rest api request
func Handle(
	system *core.System,
	assetStore core.IAssetStore,
	poolStore core.IPoolStore,
	accountStore core.IAccountStore,
	treasuryStore core.ITreasuryStore,
	poolz core.IPoolService,
	accountz core.IAccountService,
	registryz core.IRegistryService,
	ledgerz core.ILedgerService,
) http.Handler {
	router := chi.NewRouter()

	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		render.NotFoundRequest(w, errors.New("not found"))
	})

	router.Get("/info", infoHandler(system))

	router.Get("/markets/all", allMarketsHandler(assetStore, poolStore, poolz))
	router.Get("/markets/{symbol}", marketHandler(assetStore, poolStore, poolz))
	router.Get("/accounts/{user}", accountHandler(accountStore, poolStore, accountz))
	router.Get("/treasury/transfers", treasuryTransfersHandler(treasuryStore))

	router.Post("/supply", supplyHandler(ledgerz))
	router.Post("/withdraw", withdrawHandler(ledgerz))
	router.Post("/borrow", borrowHandler(ledgerz))
	router.Post("/repay", repayHandler(ledgerz))
	router.Post("/liquidate", liquidateHandler(ledgerz))
	router.Post("/flash-loans", flashLoanHandler(ledgerz))

	router.Post("/admin/assets", addAssetHandler(registryz))
	router.Post("/admin/caps", setCapsHandler(registryz))
	router.Post("/admin/risk-params", setRiskParamsHandler(registryz))
	router.Post("/admin/global-params", setGlobalParamsHandler(registryz))
	router.Post("/admin/pause", setPausedHandler(registryz))
	router.Post("/admin/skim", skimHandler(ledgerz))

	return router
}

func infoHandler(system *core.System) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		render.JSON(w, map[string]interface{}{
			"version":  system.Version,
			"location": system.Location,
		})
	}
}

// admin identity is asserted by the gateway in front of this service;
// the role table decides whether it may mutate anything
func authFromRequest(r *http.Request) *core.AuthContext {
	return core.NewAuth(r.Header.Get("X-Caller-Id"))
}
