package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	jsoniter "github.com/json-iterator/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/desossa-api/infrastructure/repository"
	"github.com/vfg2006/desossa-api/infrastructure/tabular/memory"
	"github.com/vfg2006/desossa-api/internal/api/handler"
	"github.com/vfg2006/desossa-api/internal/config"
	"github.com/vfg2006/desossa-api/internal/domain"
	"github.com/vfg2006/desossa-api/internal/usecases/authenticating"
	"github.com/vfg2006/desossa-api/internal/usecases/projecting"
	"github.com/vfg2006/desossa-api/internal/usecases/reconciling"
	"github.com/vfg2006/desossa-api/pkg/apiErrors"
	"github.com/vfg2006/desossa-api/pkg/log"
	"golang.org/x/crypto/bcrypt"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

func init() {
	log.SetupTestLogger()
}

// newTestServer monta a API completa sobre um armazenamento em memória
func newTestServer(t *testing.T) http.Handler {
	t.Helper()

	registry := projecting.DefaultRegistry()
	cuts := registry.CutNames()

	store := memory.NewStore()
	store.AddSection("Sistema_Desossa", "Rendimento", repository.LedgerHeader(cuts))
	store.AddSection("Estoque_Fisico", "Estoque", []string{"material", "quantidade_kg"},
		[]any{"Pernil com osso", "10"},
	)
	store.AddSection("Pedidos_Pendentes", "Pedidos", []string{"product", "weight", "status"},
		[]any{"Pernil com osso", "30", "PENDENTE"},
	)
	store.AddSection("Pedidos_Pendentes", "De_Para", []string{"descricao_produto", "corte"},
		[]any{"Pernil com osso", "Pernil"},
	)

	entries, err := repository.NewMappingRepository(store, "Pedidos_Pendentes", "De_Para", "descricao_produto", "corte").
		ListMappings(context.Background())
	require.NoError(t, err)
	mapper := reconciling.NewMapper(cuts, entries)

	reconciler := reconciling.NewService(
		repository.NewProductionRepository(store, "Sistema_Desossa", "Rendimento", mapper.Cuts()),
		repository.NewInventoryRepository(store, "Estoque_Fisico", "Estoque", "material", "quantidade_kg"),
		repository.NewOrdersRepository(store, "Pedidos_Pendentes", "Pedidos", repository.OrdersColumns{
			Product: "product",
			Weight:  "weight",
			Status:  "status",
		}),
		mapper,
		reconciling.NewBalanceCalculator(mapper.Cuts(), nil),
		[]string{"PENDENTE"},
	)

	projector := projecting.NewService(registry,
		repository.NewYieldLedgerRepository(store, "Sistema_Desossa", "Rendimento", cuts))

	hash, err := bcrypt.GenerateFromPassword([]byte("senha-correta"), bcrypt.MinCost)
	require.NoError(t, err)
	operators, err := repository.NewOperatorRepository([]string{"gerente@frigorifico.com|admin|" + string(hash)})
	require.NoError(t, err)

	cfg := &config.Config{Cors: config.Cors{AllowedOrigins: []string{"*"}}}

	server, err := New(cfg, authenticating.NewService(operators, "segredo-de-teste"), projector, reconciler, handler.CronJobServices{})
	require.NoError(t, err)

	return server.Handler()
}

func do(t *testing.T, h http.Handler, method, path, token, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestServer_RecordThenReconcile(t *testing.T) {
	h := newTestServer(t)

	rec := do(t, h, http.MethodPost, "/v1/login", "", `{"email":"gerente@frigorifico.com","password":"senha-correta"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var login map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &login))
	token := login["token"]
	require.NotEmpty(t, token)

	rec = do(t, h, http.MethodPost, "/v1/yield/records", token, `{"species":"suino","total_weight":200}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = do(t, h, http.MethodGet, "/v1/availability", token, "")
	require.Equal(t, http.StatusOK, rec.Code)

	var report domain.AvailabilityReport
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &report))

	net := make(map[string]float64, len(report.Balances))
	for _, b := range report.Balances {
		net[b.Cut] = b.Net
	}

	// 200 kg × 0,26 = 52 kg de pernil, mais 10 em estoque, menos 30 pendentes
	assert.Equal(t, 32.0, net["Pernil"])
	assert.Equal(t, 26.0, net["Lombo"])
	assert.Len(t, report.Balances, len(domain.PorkYieldTable().Cuts))

	rec = do(t, h, http.MethodGet, "/v1/yield/records", token, "")
	require.Equal(t, http.StatusOK, rec.Code)

	var records []domain.YieldRecord
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &records))
	require.Len(t, records, 1)
	assert.Equal(t, 200.0, records[0].TotalWeight)
}

func TestServer_Routing(t *testing.T) {
	h := newTestServer(t)

	t.Run("Rota protegida sem token", func(t *testing.T) {
		rec := do(t, h, http.MethodGet, "/v1/availability", "", "")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("Healthcheck público", func(t *testing.T) {
		rec := do(t, h, http.MethodGet, "/healthcheck", "", "")
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("Login com senha incorreta", func(t *testing.T) {
		rec := do(t, h, http.MethodPost, "/v1/login", "", `{"email":"gerente@frigorifico.com","password":"errada"}`)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Contains(t, rec.Body.String(), apiErrors.ErrInvalidCredentials)
	})

	t.Run("Rota inexistente", func(t *testing.T) {
		rec := do(t, h, http.MethodPost, "/v1/login", "", `{"email":"gerente@frigorifico.com","password":"senha-correta"}`)
		require.Equal(t, http.StatusOK, rec.Code)

		var login map[string]string
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &login))

		rec = do(t, h, http.MethodGet, "/v1/inexistente", login["token"], "")
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Contains(t, rec.Body.String(), apiErrors.ErrNotFound)
	})
}
