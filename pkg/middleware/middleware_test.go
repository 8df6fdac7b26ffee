package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/desossa-api/internal/domain"
	"github.com/vfg2006/desossa-api/internal/usecases/authenticating"
	"github.com/vfg2006/desossa-api/internal/usecases/authenticating/mocks"
	"github.com/vfg2006/desossa-api/pkg/apiErrors"
	"github.com/vfg2006/desossa-api/pkg/log"
	"go.uber.org/mock/gomock"
)

func init() {
	log.SetupTestLogger()
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
}

func TestAuthMiddleware(t *testing.T) {
	claims := &domain.Claims{UserEmail: "gerente@frigorifico.com", UserRole: domain.RoleAdmin}

	tests := []struct {
		name           string
		method         string
		path           string
		authorization  string
		setup          func(auth *mocks.MockAuthenticator)
		expectedStatus int
	}{
		{
			name:           "Rota pública não exige token",
			method:         http.MethodGet,
			path:           "/healthcheck",
			setup:          func(auth *mocks.MockAuthenticator) {},
			expectedStatus: http.StatusNoContent,
		},
		{
			name:           "Preflight OPTIONS passa sem token",
			method:         http.MethodOptions,
			path:           "/v1/availability",
			setup:          func(auth *mocks.MockAuthenticator) {},
			expectedStatus: http.StatusNoContent,
		},
		{
			name:           "Sem cabeçalho Authorization",
			method:         http.MethodGet,
			path:           "/v1/availability",
			setup:          func(auth *mocks.MockAuthenticator) {},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "Cabeçalho sem Bearer",
			method:         http.MethodGet,
			path:           "/v1/availability",
			authorization:  "token-abc",
			setup:          func(auth *mocks.MockAuthenticator) {},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:          "Token inválido",
			method:        http.MethodGet,
			path:          "/v1/availability",
			authorization: "Bearer token-abc",
			setup: func(auth *mocks.MockAuthenticator) {
				auth.EXPECT().ValidateToken("token-abc").Return(nil, errors.New("expirado"))
			},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:          "Token expirado",
			method:        http.MethodGet,
			path:          "/v1/availability",
			authorization: "Bearer token-velho",
			setup: func(auth *mocks.MockAuthenticator) {
				auth.EXPECT().ValidateToken("token-velho").Return(nil, authenticating.ErrExpiredToken)
			},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:          "Token válido",
			method:        http.MethodGet,
			path:          "/v1/availability",
			authorization: "Bearer token-abc",
			setup: func(auth *mocks.MockAuthenticator) {
				auth.EXPECT().ValidateToken("token-abc").Return(claims, nil)
			},
			expectedStatus: http.StatusNoContent,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			auth := mocks.NewMockAuthenticator(ctrl)
			tt.setup(auth)

			req := httptest.NewRequest(tt.method, tt.path, nil)
			if tt.authorization != "" {
				req.Header.Set("Authorization", tt.authorization)
			}
			rec := httptest.NewRecorder()

			AuthMiddleware(auth)(okHandler()).ServeHTTP(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
		})
	}
}

func TestAuthMiddleware_ClaimsInContext(t *testing.T) {
	ctrl := gomock.NewController(t)
	auth := mocks.NewMockAuthenticator(ctrl)

	claims := &domain.Claims{UserEmail: "leitura@frigorifico.com", UserRole: domain.RoleViewer}
	auth.EXPECT().ValidateToken("abc").Return(claims, nil)

	var got *domain.Claims
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, _ = ClaimsFromContext(r.Context())
	})

	req := httptest.NewRequest(http.MethodGet, "/v1/yield/tables", nil)
	req.Header.Set("Authorization", "Bearer abc")
	AuthMiddleware(auth)(next).ServeHTTP(httptest.NewRecorder(), req)

	assert.Equal(t, claims, got)
}

func TestRoleMiddleware(t *testing.T) {
	tests := []struct {
		name           string
		claims         *domain.Claims
		middleware     func(http.Handler) http.Handler
		expectedStatus int
		expectedCode   string
	}{
		{
			name:           "Sem operador autenticado",
			middleware:     AllRoles(),
			expectedStatus: http.StatusUnauthorized,
			expectedCode:   apiErrors.ErrInvalidToken,
		},
		{
			name:           "Leitura acessa rota de consulta",
			claims:         &domain.Claims{UserRole: domain.RoleViewer},
			middleware:     AllRoles(),
			expectedStatus: http.StatusNoContent,
		},
		{
			name:           "Leitura não acessa rota de administrador",
			claims:         &domain.Claims{UserRole: domain.RoleViewer},
			middleware:     AdminOnly(),
			expectedStatus: http.StatusForbidden,
			expectedCode:   apiErrors.ErrInsufficientPrivilege,
		},
		{
			name:           "Administrador acessa rota de administrador",
			claims:         &domain.Claims{UserRole: domain.RoleAdmin},
			middleware:     AdminOnly(),
			expectedStatus: http.StatusNoContent,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/v1/yield/records", nil)
			if tt.claims != nil {
				req = req.WithContext(context.WithValue(req.Context(), ContextKeyUser, tt.claims))
			}
			rec := httptest.NewRecorder()

			tt.middleware(okHandler()).ServeHTTP(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			if tt.expectedCode != "" {
				assert.Contains(t, rec.Body.String(), tt.expectedCode)
			}
		})
	}
}

func TestCors(t *testing.T) {
	tests := []struct {
		name          string
		allowed       []string
		method        string
		origin        string
		expectedAllow string
		expectedCode  int
	}{
		{
			name:          "Qualquer origem com curinga",
			allowed:       []string{"*"},
			method:        http.MethodGet,
			origin:        "https://app.exemplo.com",
			expectedAllow: "https://app.exemplo.com",
			expectedCode:  http.StatusNoContent,
		},
		{
			name:          "Origem não liberada",
			allowed:       []string{"https://app.exemplo.com"},
			method:        http.MethodGet,
			origin:        "https://outro.exemplo.com",
			expectedAllow: "",
			expectedCode:  http.StatusNoContent,
		},
		{
			name:          "Preflight responde sem chamar o próximo handler",
			allowed:       []string{"https://app.exemplo.com"},
			method:        http.MethodOptions,
			origin:        "https://app.exemplo.com",
			expectedAllow: "https://app.exemplo.com",
			expectedCode:  http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, "/v1/availability", nil)
			req.Header.Set("Origin", tt.origin)
			rec := httptest.NewRecorder()

			Cors(tt.allowed)(okHandler()).ServeHTTP(rec, req)

			assert.Equal(t, tt.expectedCode, rec.Code)
			assert.Equal(t, tt.expectedAllow, rec.Header().Get("Access-Control-Allow-Origin"))
		})
	}
}

func TestLoggingMiddleware_CorrelationID(t *testing.T) {
	var seen string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = log.GetCorrelationID(r.Context())
		w.WriteHeader(http.StatusAccepted)
	})

	t.Run("Reaproveita o ID recebido", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/v1/availability", nil)
		req.Header.Set(CorrelationHeader, "req-123")
		rec := httptest.NewRecorder()

		LoggingMiddleware()(next).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusAccepted, rec.Code)
		assert.Equal(t, "req-123", seen)
		assert.Equal(t, "req-123", rec.Header().Get(CorrelationHeader))
	})

	t.Run("Gera um ID quando ausente", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/v1/availability", nil)
		rec := httptest.NewRecorder()

		LoggingMiddleware()(next).ServeHTTP(rec, req)

		require.NotEmpty(t, seen)
		assert.Equal(t, seen, rec.Header().Get(CorrelationHeader))
	})
}

func TestLogPanicMiddleware(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("falha inesperada")
	})

	rec := httptest.NewRecorder()
	LogPanicMiddleware()(next).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/availability", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), apiErrors.ErrInternalServer)
}
