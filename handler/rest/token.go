package rest

import (
	"net/http"

	"burrow/core"
	"burrow/handler/render"

	"github.com/go-chi/chi"
)

func allTokensHandler(tokenStr core.ITokenStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tokens, err := tokenStr.All(r.Context())
		if err != nil {
			render.BadRequest(w, err)
			return
		}

		render.JSON(w, tokens)
	}
}

func tokenHandler(tokenStr core.ITokenStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token, err := tokenStr.Find(r.Context(), chi.URLParam(r, "token"))
		if err != nil {
			render.NotFoundRequest(w, core.ErrTokenNotFound)
			return
		}

		render.JSON(w, token)
	}
}
