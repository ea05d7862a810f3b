package viacep

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Inovare-Grupo-8/portal-assistencia/internal/adapters/out/logger"
	"github.com/Inovare-Grupo-8/portal-assistencia/internal/config"
	"github.com/Inovare-Grupo-8/portal-assistencia/internal/core/domain"
)

func newTestAdapter(t *testing.T, handler http.HandlerFunc) *ViaCepAdapter {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	cfg := &config.Config{}
	cfg.ViaCep.URL = server.URL
	cfg.ViaCep.Timeout = 5 * time.Second
	return NewViaCepAdapter(cfg, logger.NewZapLogger(zap.NewNop()))
}

func respond(status int, body string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}
}

func TestViaCepAdapter_Lookup(t *testing.T) {
	var path string
	adapter := newTestAdapter(t, func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		respond(http.StatusOK, `{"cep": "01310-100", "logradouro": "Avenida Paulista", "bairro": "Bela Vista", "localidade": "São Paulo", "uf": "SP"}`)(w, r)
	})

	address, err := adapter.LookupPostalCode(context.Background(), "01310-100")
	require.NoError(t, err)
	assert.Equal(t, "/ws/01310100/json/", path)
	assert.Equal(t, domain.PostalAddress{
		Cep:    "01310-100",
		Rua:    "Avenida Paulista",
		Bairro: "Bela Vista",
		Cidade: "São Paulo",
		Estado: "SP",
	}, *address)
}

func TestViaCepAdapter_NotFound(t *testing.T) {
	for _, body := range []string{`{"erro": true}`, `{"erro": "true"}`} {
		adapter := newTestAdapter(t, respond(http.StatusOK, body))
		_, err := adapter.LookupPostalCode(context.Background(), "99999999")
		assert.ErrorIs(t, err, domain.ErrPostalCodeNotFound, body)
	}

	adapter := newTestAdapter(t, respond(http.StatusBadRequest, ``))
	_, err := adapter.LookupPostalCode(context.Background(), "99999999")
	assert.ErrorIs(t, err, domain.ErrPostalCodeNotFound)
}

func TestViaCepAdapter_RejectsShortCodesLocally(t *testing.T) {
	calls := 0
	adapter := newTestAdapter(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
	})

	_, err := adapter.LookupPostalCode(context.Background(), "0131")
	assert.ErrorIs(t, err, domain.ErrPostalCodeNotFound)
	assert.Zero(t, calls)
}

func TestViaCepAdapter_ServerError(t *testing.T) {
	adapter := newTestAdapter(t, respond(http.StatusServiceUnavailable, `{}`))

	_, err := adapter.LookupPostalCode(context.Background(), "01310100")
	nErr, ok := domain.IsNetwork(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusServiceUnavailable, nErr.Status)
}
