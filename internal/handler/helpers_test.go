package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"github.com/osse101/KubeRPG_Go/internal/account"
	"github.com/osse101/KubeRPG_Go/internal/database/memory"
	"github.com/osse101/KubeRPG_Go/internal/stats"
	"github.com/osse101/KubeRPG_Go/internal/testing/fakerand"
)

// newAccountService returns a real service over the in-memory store
func newAccountService() account.Service {
	return account.NewService(memory.NewAccountRepository(), nil, stats.DefaultConfig(), fakerand.New(), account.DefaultCacheConfig())
}

// do sends a request through h; an empty body sends none
func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func decodeBody[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func accountRouter(svc account.Service) http.Handler {
	r := chi.NewRouter()
	r.Post("/accounts", HandleRegisterAccount(svc))
	r.Get("/accounts", HandleListAccounts(svc))
	r.Get("/accounts/{pseudonym}", HandleGetAccount(svc))
	r.Get("/accounts/{pseudonym}/stats", HandleAccountStats(svc))
	r.Post("/accounts/{pseudonym}/equip", HandleEquip(svc))
	r.Post("/accounts/{pseudonym}/unequip", HandleUnequip(svc))
	r.Post("/accounts/{pseudonym}/forge", HandleForge(svc))
	return r
}
