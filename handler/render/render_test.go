package render

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"burrow/core"

	"github.com/stretchr/testify/require"
)

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) H {
	var body H
	require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
	return body
}

func TestErrorCarriesLedgerCode(t *testing.T) {
	w := httptest.NewRecorder()
	NotFoundRequest(w, core.ErrMarketNotFound)

	require.Equal(t, http.StatusNotFound, w.Code)
	body := decodeBody(t, w)
	require.EqualValues(t, int(core.ErrMarketNotFound), body["code"])
}

func TestErrorDefaultsToUnknownCode(t *testing.T) {
	w := httptest.NewRecorder()
	BadRequest(w, errors.New("boom"))

	require.Equal(t, http.StatusBadRequest, w.Code)
	body := decodeBody(t, w)
	require.EqualValues(t, int(core.ErrUnknown), body["code"])
	require.Equal(t, "boom", body["msg"])
}
