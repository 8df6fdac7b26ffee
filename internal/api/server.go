package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/justinas/alice"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/desossa-api/internal/api/handler"
	"github.com/vfg2006/desossa-api/internal/api/handler/router"
	"github.com/vfg2006/desossa-api/internal/config"
	"github.com/vfg2006/desossa-api/internal/usecases/authenticating"
	"github.com/vfg2006/desossa-api/internal/usecases/projecting"
	"github.com/vfg2006/desossa-api/internal/usecases/reconciling"
	"github.com/vfg2006/desossa-api/pkg/apiErrors"
	"github.com/vfg2006/desossa-api/pkg/middleware"
)

// shutdownTimeout limita a espera pelas requisições em andamento.
const shutdownTimeout = 15 * time.Second

type Server struct {
	httpServer *http.Server
}

func New(
	config *config.Config,
	authenticator authenticating.Authenticator,
	projector projecting.Projector,
	reconciler reconciling.Reconciler,
	cronServices handler.CronJobServices,
) (*Server, error) {
	rt := router.New(
		router.WithRoutes(handler.Healthcheck()...),
		router.WithRoutes(handler.Authentication(authenticator)...),
		router.WithRoutes(handler.Yield(projector)...),
		router.WithRoutes(handler.Availability(reconciler)...),
		router.WithRoutes(handler.CronJobs(cronServices)...),
		router.WithNotFound(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			apiErrors.WriteError(w, apiErrors.ErrNotFound, "Rota não encontrada", nil)
		})),
	)

	middlewares := []alice.Constructor{
		middleware.LogPanicMiddleware(),
		middleware.LoggingMiddleware(),
		middleware.Cors(config.Cors.AllowedOrigins),
		middleware.AuthMiddleware(authenticator),
	}

	handler := alice.New(middlewares...).Then(rt)

	srv := &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf("%s:%s", config.Server.Host, config.Server.Port),
			Handler:           handler,
			ReadHeaderTimeout: 2 * time.Second,
		},
	}

	return srv, nil
}

// Handler expõe a cadeia completa de middlewares e rotas
func (s Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Run atende até receber SIGINT/SIGTERM ou o contexto ser cancelado e então desliga
// aguardando as requisições em andamento. Falha ao abrir a porta encerra imediatamente.
func (s Server) Run(ctx context.Context) error {
	serveErr := make(chan error, 1)
	go func() {
		logrus.WithField("address", s.httpServer.Addr).Info("Servidor iniciando")

		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	select {
	case err := <-serveErr:
		if err != nil {
			return fmt.Errorf("erro ao iniciar o servidor: %w", err)
		}
		return nil
	case <-ctx.Done():
		logrus.Info("Sinal de interrupção recebido ou contexto cancelado")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	logrus.WithField("timeout", shutdownTimeout.String()).Info("Iniciando desligamento gracioso do servidor")

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		logrus.WithError(err).Error("Erro durante o desligamento do servidor")
		return err
	}

	logrus.Info("Servidor desligado com sucesso")
	return nil
}
