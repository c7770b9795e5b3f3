package rest

import (
	"net/http"

	"burrow/core"
	"burrow/handler/render"
	"burrow/handler/views"

	"github.com/go-chi/chi"
)

const listLimit = 500

func accountHandler(accountStr core.IAccountStore, positionStr core.IPositionStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "account")
		account, err := accountStr.Find(r.Context(), id)
		if err != nil {
			render.NotFoundRequest(w, err)
			return
		}

		positions, err := positionStr.ListByAccount(r.Context(), id)
		if err != nil {
			render.BadRequest(w, err)
			return
		}

		render.JSON(w, &views.Account{
			Account:   *account,
			Positions: positions,
		})
	}
}

func positionsHandler(positionStr core.IPositionStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		positions, err := positionStr.ListByAccount(r.Context(), chi.URLParam(r, "account"))
		if err != nil {
			render.BadRequest(w, err)
			return
		}

		render.JSON(w, positions)
	}
}

func positionHandler(positionStr core.IPositionStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		position, err := positionStr.Find(r.Context(), chi.URLParam(r, "position"))
		if err != nil {
			render.NotFoundRequest(w, core.ErrPositionNotFound)
			return
		}

		render.JSON(w, position)
	}
}

func depositsHandler(flowStr core.IFlowStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		deposits, err := flowStr.ListDepositsByAccount(r.Context(), chi.URLParam(r, "account"), listLimit)
		if err != nil {
			render.BadRequest(w, err)
			return
		}

		render.JSON(w, deposits)
	}
}

func liquidationsHandler(flowStr core.IFlowStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		liquidations, err := flowStr.ListLiquidationsByAccount(r.Context(), chi.URLParam(r, "account"), listLimit)
		if err != nil {
			render.BadRequest(w, err)
			return
		}

		render.JSON(w, liquidations)
	}
}
