package rest

import (
	"errors"
	"net/http"

	"burrow/core"
	"burrow/handler/render"

	"github.com/go-chi/chi"
)

// Handle handle rest api request
func Handle(
	tokenStore core.ITokenStore,
	marketStore core.IMarketStore,
	accountStore core.IAccountStore,
	positionStore core.IPositionStore,
	flowStore core.IFlowStore,
	protocolStore core.IProtocolStore,
) http.Handler {
	router := chi.NewRouter()

	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		render.NotFoundRequest(w, errors.New("not found"))
	})

	router.Get("/protocol", protocolHandler(protocolStore))
	router.Get("/tokens", allTokensHandler(tokenStore))
	router.Get("/tokens/{token}", tokenHandler(tokenStore))
	router.Get("/markets", allMarketsHandler(marketStore))
	router.Get("/markets/{token}", marketHandler(marketStore))
	router.Get("/accounts/{account}", accountHandler(accountStore, positionStore))
	router.Get("/accounts/{account}/positions", positionsHandler(positionStore))
	router.Get("/accounts/{account}/deposits", depositsHandler(flowStore))
	router.Get("/accounts/{account}/liquidations", liquidationsHandler(flowStore))
	router.Get("/positions/{position}", positionHandler(positionStore))

	return router
}
