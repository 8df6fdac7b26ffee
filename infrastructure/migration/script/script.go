package main

import (
	"context"
	"database/sql"
	"flag"
	"os"
	"path/filepath"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/desossa-api/infrastructure/database/postgres"
	"github.com/vfg2006/desossa-api/infrastructure/repository"
	tabularpg "github.com/vfg2006/desossa-api/infrastructure/tabular/postgres"
	"github.com/vfg2006/desossa-api/infrastructure/tabular/xlsx"
	"github.com/vfg2006/desossa-api/internal/config"
	"github.com/vfg2006/desossa-api/internal/usecases/projecting"
	"github.com/vfg2006/desossa-api/pkg/log"
)

// sectionHeader é uma aba a ser criada com seu cabeçalho
type sectionHeader struct {
	Table   string
	Section string
	Header  []string
}

// sourceSections lista as abas esperadas pela aplicação, com os nomes de colunas configurados
func sourceSections(cfg *config.Config) []sectionHeader {
	src := cfg.Sources
	cuts := projecting.DefaultRegistry().CutNames()

	sections := []sectionHeader{
		{src.LedgerTable, src.LedgerSection, repository.LedgerHeader(cuts)},
		{src.InventoryTable, src.InventorySection, []string{src.InventoryMaterialColumn, src.InventoryQuantityColumn}},
		{src.OrdersTable, src.OrdersSection, []string{src.OrdersProductColumn, src.OrdersWeightColumn, src.OrdersStatusColumn}},
		{src.OrdersTable, src.MappingSection, []string{src.MappingProductColumn, src.MappingCutColumn}},
	}

	// Produção e livro de rendimentos costumam ser a mesma aba
	if src.ProductionTable != src.LedgerTable || src.ProductionSection != src.LedgerSection {
		sections = append(sections, sectionHeader{src.ProductionTable, src.ProductionSection, repository.LedgerHeader(cuts)})
	}

	return sections
}

func setupPostgres(ctx context.Context, cfg *config.Config, sections []sectionHeader) {
	logrus.Info("Conectando ao banco de dados...")

	conn, err := postgres.NewConnection(ctx, cfg.Database)
	if err != nil {
		logrus.WithError(err).Fatal("ERRO ao conectar ao banco de dados")
	}
	defer conn.Close()

	// Tabelas e abas são criadas na mesma transação: ou tudo fica pronto ou nada muda
	err = conn.RunInTransaction(ctx, func(tx *sql.Tx) error {
		q := postgres.TxQueryer(tx)
		if _, err := q.Exec(ctx, tabularpg.Schema); err != nil {
			return errors.Wrap(err, "erro ao criar tabelas do armazenamento")
		}

		store := tabularpg.NewStore(q)
		for _, s := range sections {
			if err := store.CreateSection(ctx, s.Table, s.Section, s.Header); err != nil {
				return err
			}
			logrus.WithFields(logrus.Fields{
				"table":   s.Table,
				"section": s.Section,
				"columns": len(s.Header),
			}).Info("Aba criada")
		}
		return nil
	})
	if err != nil {
		logrus.WithError(err).Fatal("ERRO ao preparar o PostgreSQL, transação revertida")
	}
}

func setupXlsx(cfg *config.Config, sections []sectionHeader) {
	if err := os.MkdirAll(cfg.Xlsx.Dir, 0o755); err != nil {
		logrus.WithError(err).Fatal("ERRO ao criar diretório")
	}

	byTable := make(map[string]map[string][]string)
	for _, s := range sections {
		if byTable[s.Table] == nil {
			byTable[s.Table] = make(map[string][]string)
		}
		byTable[s.Table][s.Section] = s.Header
	}

	for table, tableSections := range byTable {
		path := filepath.Join(cfg.Xlsx.Dir, table+".xlsx")
		if _, err := os.Stat(path); err == nil {
			logrus.WithField("path", path).Warn("Pasta de trabalho já existe, mantendo o arquivo atual")
			continue
		}

		if err := xlsx.CreateWorkbook(path, tableSections); err != nil {
			logrus.WithError(err).WithField("path", path).Fatal("ERRO ao criar pasta de trabalho")
		}
		logrus.WithField("path", path).Info("Pasta de trabalho criada")
	}
}

func main() {
	backend := flag.String("backend", "", "backend a preparar (postgres ou xlsx); padrão: STORE_BACKEND")
	flag.Parse()

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	log.Configure(cfg.App.LogLevel, cfg.App.Env)
	logrus.Info("Iniciando script de preparação das fontes...")

	if *backend == "" {
		*backend = cfg.Store.Backend
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	startTime := time.Now()
	sections := sourceSections(cfg)
	logrus.Infof("Total de %d abas definidas para criação", len(sections))

	switch *backend {
	case config.StoreBackendPostgres:
		setupPostgres(ctx, cfg, sections)
	case config.StoreBackendXlsx:
		setupXlsx(cfg, sections)
	default:
		logrus.Fatalf("Backend %q não precisa de preparação ou é desconhecido", *backend)
	}

	logrus.Infof("Preparação concluída em %v!", time.Since(startTime))
}
