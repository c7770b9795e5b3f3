package rest

import (
	"net/http"

	"burrow/core"
	"burrow/handler/render"
	"burrow/handler/views"

	"github.com/go-chi/chi"
)

func allMarketsHandler(marketStr core.IMarketStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		markets, err := marketStr.All(r.Context())
		if err != nil {
			render.BadRequest(w, err)
			return
		}

		marketViews := make([]*views.Market, 0, len(markets))
		for _, m := range markets {
			marketViews = append(marketViews, views.MarketView(m))
		}

		render.JSON(w, marketViews)
	}
}

func marketHandler(marketStr core.IMarketStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := chi.URLParam(r, "token")
		market, err := marketStr.Find(r.Context(), token)
		if err != nil {
			render.NotFoundRequest(w, core.ErrMarketNotFound)
			return
		}

		render.JSON(w, views.MarketView(market))
	}
}

func protocolHandler(protocolStr core.IProtocolStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		protocol, err := protocolStr.Find(r.Context())
		if err != nil {
			render.BadRequest(w, err)
			return
		}

		render.JSON(w, protocol)
	}
}
