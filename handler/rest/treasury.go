package rest

import (
	"net/http"

	"lend/core"
	"lend/handler/render"

	"github.com/spf13/cast"
)

func treasuryTransfersHandler(treasuryStore core.ITreasuryStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		fromID := cast.ToUint64(r.URL.Query().Get("from"))
		limit := cast.ToInt(r.URL.Query().Get("limit"))
		if limit <= 0 || limit > 500 {
			limit = 100
		}

		transfers, err := treasuryStore.List(r.Context(), fromID, limit)
		if err != nil {
			render.BadRequest(w, err)
			return
		}

		render.JSON(w, render.H{"transfers": transfers})
	}
}
