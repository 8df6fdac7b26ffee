package main

import (
	"context"
	"os"
	"path"
	"runtime"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/desossa-api/infrastructure/database/postgres"
	"github.com/vfg2006/desossa-api/infrastructure/repository"
	"github.com/vfg2006/desossa-api/infrastructure/tabular"
	"github.com/vfg2006/desossa-api/infrastructure/tabular/memory"
	tabularpg "github.com/vfg2006/desossa-api/infrastructure/tabular/postgres"
	"github.com/vfg2006/desossa-api/infrastructure/tabular/sheets"
	"github.com/vfg2006/desossa-api/infrastructure/tabular/xlsx"
	"github.com/vfg2006/desossa-api/internal/api"
	"github.com/vfg2006/desossa-api/internal/api/handler"
	"github.com/vfg2006/desossa-api/internal/config"
	"github.com/vfg2006/desossa-api/internal/scheduler"
	"github.com/vfg2006/desossa-api/internal/usecases/authenticating"
	"github.com/vfg2006/desossa-api/internal/usecases/projecting"
	"github.com/vfg2006/desossa-api/internal/usecases/reconciling"
	"github.com/vfg2006/desossa-api/pkg/log"
	"github.com/vfg2006/desossa-api/pkg/utils"
)

func main() {
	chdirToSource()

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	// Nível e formato dos logs conforme o ambiente
	log.Configure(cfg.App.LogLevel, cfg.App.Env)
	logrus.Infof("Nível de log configurado para: %s", logrus.GetLevel())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store, closeStore := openStore(ctx, cfg)
	defer closeStore()

	registry := projecting.DefaultRegistry()
	src := cfg.Sources

	ledgerRepo := repository.NewYieldLedgerRepository(store, src.LedgerTable, src.LedgerSection, registry.CutNames())
	inventoryRepo := repository.NewInventoryRepository(store, src.InventoryTable, src.InventorySection, src.InventoryMaterialColumn, src.InventoryQuantityColumn)
	ordersRepo := repository.NewOrdersRepository(store, src.OrdersTable, src.OrdersSection, repository.OrdersColumns{
		Product: src.OrdersProductColumn,
		Weight:  src.OrdersWeightColumn,
		Status:  src.OrdersStatusColumn,
	})
	mappingRepo := repository.NewMappingRepository(store, src.OrdersTable, src.MappingSection, src.MappingProductColumn, src.MappingCutColumn)

	// O dicionário de-para é carregado uma única vez na inicialização
	entries, err := mappingRepo.ListMappings(ctx)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao carregar o dicionário de produtos")
	}
	mapper := reconciling.NewMapper(registry.CutNames(), entries)
	logrus.WithFields(logrus.Fields{
		"entries": mapper.Size(),
		"cuts":    len(mapper.Cuts()),
	}).Info("Dicionário de produtos carregado")

	formatter, err := utils.NewNumberFormatter(cfg.Display.Locale)
	if err != nil {
		logrus.WithError(err).Warn("Locale de exibição inválido, saldos sem formatação")
		formatter = nil
	}

	productionRepo := repository.NewProductionRepository(store, src.ProductionTable, src.ProductionSection, mapper.Cuts())
	calculator := reconciling.NewBalanceCalculator(mapper.Cuts(), formatter)
	reconciler := reconciling.NewService(productionRepo, inventoryRepo, ordersRepo, mapper, calculator, src.OrdersPendingStatuses)
	projector := projecting.NewService(registry, ledgerRepo)

	operatorRepo, err := repository.NewOperatorRepository(cfg.Auth.Users)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao carregar operadores")
	}
	authenticator := authenticating.NewService(operatorRepo, cfg.Auth.Secret)

	availabilityAuditService := scheduler.NewAvailabilityAuditService(reconciler, cfg)
	if err := availabilityAuditService.Start(ctx); err != nil {
		logrus.WithError(err).Error("Erro ao iniciar o agendador da auditoria de disponibilidade")
	} else {
		logrus.Info("Agendador da auditoria de disponibilidade iniciado com sucesso")
	}

	server, err := api.New(
		cfg,
		authenticator,
		projector,
		reconciler,
		handler.CronJobServices{
			AvailabilityAuditService: availabilityAuditService,
		},
	)
	if err != nil {
		logrus.Fatal(err)
	}

	if err := server.Run(ctx); err != nil {
		logrus.Error(err)
	}
}

// chdirToSource muda para o diretório do binário em desenvolvimento, onde fica o .env
func chdirToSource() {
	_, file, _, _ := runtime.Caller(0)
	dir := path.Dir(file)
	os.Chdir(dir)
}

// openStore cria o armazenamento tabular conforme o backend configurado
func openStore(ctx context.Context, cfg *config.Config) (tabular.Store, func()) {
	logger := logrus.WithField("backend", cfg.Store.Backend)

	switch cfg.Store.Backend {
	case config.StoreBackendSheets:
		store, err := sheets.NewStore(ctx, cfg.Sheets)
		if err != nil {
			logger.WithError(err).Fatal("Erro ao conectar ao Google Sheets")
		}
		logger.Info("Armazenamento Google Sheets configurado")
		return store, func() {}

	case config.StoreBackendXlsx:
		logger.WithField("dir", cfg.Xlsx.Dir).Info("Armazenamento em arquivos .xlsx configurado")
		return xlsx.NewStore(cfg.Xlsx.Dir), func() {}

	case config.StoreBackendPostgres:
		conn := pgconn(ctx, cfg.Database)
		logger.Info("Armazenamento PostgreSQL configurado")
		return tabularpg.NewStore(conn), func() { conn.Close() }

	case config.StoreBackendMemory:
		logger.Warn("Armazenamento em memória configurado, os dados serão perdidos ao encerrar")
		return memory.NewStore(), func() {}
	}

	logger.Fatal("Backend de armazenamento desconhecido")
	return nil, nil
}

// pgconn cria uma conexão com o banco de dados
func pgconn(ctx context.Context, dbConfig config.Database) *postgres.Connection {
	conn, err := postgres.NewConnection(ctx, dbConfig)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao conectar ao PostgreSQL")
	}

	err = conn.Ping(ctx)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao testar conexão com PostgreSQL")
	}

	logrus.Info("Conexão com PostgreSQL estabelecida com sucesso")
	return conn
}
