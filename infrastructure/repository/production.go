package repository

//go:generate mockgen -source=production.go -destination=mocks/production.go -package=mocks

import (
	"context"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/desossa-api/infrastructure/tabular"
	"github.com/vfg2006/desossa-api/internal/domain"
	"github.com/vfg2006/desossa-api/pkg/utils"
)

// Colunas fixas do livro de rendimento
const (
	ColumnDate        = "date"
	ColumnTotalWeight = "total_weight"
)

type ProductionRepository interface {
	ListProduction(ctx context.Context, diag *domain.Diagnostics) ([]domain.ProductionRow, error)
}

type productionRepository struct {
	ref  sectionRef
	cuts map[domain.NormalizedKey]string
}

// NewProductionRepository lê o livro de produção; as colunas de corte são casadas com a lista canônica
func NewProductionRepository(store tabular.Store, table, section string, cuts []string) ProductionRepository {
	return newProductionRepository(store, table, section, cuts)
}

func newProductionRepository(store tabular.Store, table, section string, cuts []string) *productionRepository {
	index := make(map[domain.NormalizedKey]string, len(cuts))
	for _, cut := range cuts {
		index[domain.NormalizeKey(cut)] = cut
	}

	return &productionRepository{
		ref:  sectionRef{store: store, table: table, section: section},
		cuts: index,
	}
}

func (r *productionRepository) ListProduction(ctx context.Context, diag *domain.Diagnostics) ([]domain.ProductionRow, error) {
	_, rows, err := r.list(ctx, diag)
	return rows, err
}

// list retorna também as colunas de corte na ordem do cabeçalho
func (r *productionRepository) list(ctx context.Context, diag *domain.Diagnostics) ([]cutColumn, []domain.ProductionRow, error) {
	section, err := r.ref.open(ctx)
	if err != nil {
		return nil, nil, err
	}

	header, err := section.Header(ctx)
	if err != nil {
		return nil, nil, err
	}

	rows, err := section.ReadRows(ctx)
	if err != nil {
		return nil, nil, err
	}

	columns := r.cutColumns(header, diag)
	cells := cellReader{source: domain.SourceProduction, diag: diag}

	result := make([]domain.ProductionRow, 0, len(rows))
	for i, raw := range rows {
		if raw.IsBlank() {
			continue
		}

		line := i + firstDataRow
		row := domain.ProductionRow{
			Row:         line,
			TotalWeight: cells.quantity(raw, line, ColumnTotalWeight),
			Cuts:        make(map[string]float64, len(columns)),
		}

		if v, ok := raw.Lookup(ColumnDate); ok {
			row.Date, _ = utils.ParseCellDate(v)
		}

		for _, col := range columns {
			row.Cuts[col.cut] += cells.quantity(raw, line, col.header)
		}

		result = append(result, row)
	}

	return columns, result, nil
}

type cutColumn struct {
	header string
	cut    string
}

// cutColumns associa cada coluna do cabeçalho a um corte canônico.
// Colunas desconhecidas são registradas no diagnóstico e ignoradas.
// As linhas são indexadas pelo cabeçalho sem espaços nas pontas, então um cabeçalho
// repetido só tem a célula da primeira coluna; a repetição vai para o diagnóstico.
func (r *productionRepository) cutColumns(header []string, diag *domain.Diagnostics) []cutColumn {
	fixed := map[domain.NormalizedKey]bool{
		domain.NormalizeKey(ColumnDate):        true,
		domain.NormalizeKey(ColumnTotalWeight): true,
	}
	seen := make(map[string]bool, len(header))

	columns := make([]cutColumn, 0, len(header))
	for _, raw := range header {
		h := strings.TrimSpace(raw)
		key := domain.NormalizeKey(h)
		if key == "" || fixed[key] {
			continue
		}

		if seen[h] {
			logrus.WithFields(logrus.Fields{
				"source": domain.SourceProduction,
				"column": h,
			}).Warn("Coluna repetida no livro de produção ignorada")

			if diag != nil {
				diag.AddUnmappedColumn(h)
			}
			continue
		}
		seen[h] = true

		cut, ok := r.cuts[key]
		if !ok {
			logrus.WithFields(logrus.Fields{
				"source": domain.SourceProduction,
				"column": h,
			}).Warn("Coluna do livro de produção sem corte correspondente")

			if diag != nil {
				diag.AddUnmappedColumn(h)
			}
			continue
		}

		columns = append(columns, cutColumn{header: h, cut: cut})
	}
	return columns
}
