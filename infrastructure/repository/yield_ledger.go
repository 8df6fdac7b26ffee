package repository

//go:generate mockgen -source=yield_ledger.go -destination=mocks/yield_ledger.go -package=mocks

import (
	"context"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/desossa-api/infrastructure/tabular"
	"github.com/vfg2006/desossa-api/internal/domain"
	"github.com/vfg2006/desossa-api/pkg/utils"
)

// YieldLedgerRepository grava e lê o livro de rendimento.
// O livro é somente de inclusão: nenhuma linha gravada é alterada ou reordenada.
type YieldLedgerRepository interface {
	AppendRecord(ctx context.Context, record domain.YieldRecord) error
	ListRecords(ctx context.Context, diag *domain.Diagnostics) ([]domain.YieldRecord, error)
}

type yieldLedgerRepository struct {
	ref        sectionRef
	production *productionRepository
}

func NewYieldLedgerRepository(store tabular.Store, table, section string, cuts []string) YieldLedgerRepository {
	return &yieldLedgerRepository{
		ref:        sectionRef{store: store, table: table, section: section},
		production: newProductionRepository(store, table, section, cuts),
	}
}

// LedgerHeader é a ordem das colunas do livro para os cortes informados
func LedgerHeader(cuts []string) []string {
	header := make([]string, 0, len(cuts)+2)
	header = append(header, ColumnDate, ColumnTotalWeight)
	return append(header, cuts...)
}

// AppendRecord grava o registro ao final da aba, sem nova tentativa em caso de falha
func (r *yieldLedgerRepository) AppendRecord(ctx context.Context, record domain.YieldRecord) error {
	section, err := r.ref.open(ctx)
	if err != nil {
		return domain.NewPersistenceError(r.ref.table, r.ref.section, err)
	}

	cuts := make([]string, 0, len(record.Cuts))
	values := make([]any, 0, len(record.Cuts)+2)
	values = append(values, record.Date.Format(utils.LedgerDateLayout), record.TotalWeight)
	for _, c := range record.Cuts {
		cuts = append(cuts, c.Cut)
		values = append(values, c.Weight)
	}

	header, err := section.Header(ctx)
	if err != nil {
		return domain.NewPersistenceError(r.ref.table, r.ref.section, err)
	}

	expected := LedgerHeader(cuts)
	if !sameHeader(header, expected) {
		return domain.NewPersistenceError(r.ref.table, r.ref.section, fmt.Errorf(
			"cabeçalho [%s] difere do esperado [%s]",
			strings.Join(header, ", "), strings.Join(expected, ", "),
		))
	}

	if err := section.AppendRow(ctx, values); err != nil {
		return err
	}

	logrus.WithFields(logrus.Fields{
		"table":        r.ref.table,
		"section":      r.ref.section,
		"species":      record.Species,
		"total_weight": record.TotalWeight,
	}).Info("Apuração de rendimento gravada")

	return nil
}

func (r *yieldLedgerRepository) ListRecords(ctx context.Context, diag *domain.Diagnostics) ([]domain.YieldRecord, error) {
	columns, rows, err := r.production.list(ctx, diag)
	if err != nil {
		return nil, err
	}

	records := make([]domain.YieldRecord, 0, len(rows))
	for _, row := range rows {
		record := domain.YieldRecord{
			TotalWeight: row.TotalWeight,
			Cuts:        make([]domain.ProjectionRow, 0, len(columns)),
		}
		if row.Date != nil {
			record.Date = *row.Date
		}

		for _, col := range columns {
			record.Cuts = append(record.Cuts, domain.ProjectionRow{
				Cut:    col.cut,
				Weight: row.Cuts[col.cut],
			})
		}

		records = append(records, record)
	}

	return records, nil
}

// sameHeader compara os cabeçalhos pela chave normalizada, ignorando colunas vazias ao final
func sameHeader(actual, expected []string) bool {
	end := len(actual)
	for end > 0 && strings.TrimSpace(actual[end-1]) == "" {
		end--
	}
	actual = actual[:end]

	if len(actual) != len(expected) {
		return false
	}
	for i := range actual {
		if domain.NormalizeKey(actual[i]) != domain.NormalizeKey(expected[i]) {
			return false
		}
	}
	return true
}
