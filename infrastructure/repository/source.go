package repository

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/desossa-api/infrastructure/tabular"
	"github.com/vfg2006/desossa-api/internal/domain"
	"github.com/vfg2006/desossa-api/pkg/utils"
)

// firstDataRow é a linha da planilha onde começam os dados (a linha 1 é o cabeçalho)
const firstDataRow = 2

// sectionRef localiza uma aba no armazenamento tabular
type sectionRef struct {
	store   tabular.Store
	table   string
	section string
}

func (r sectionRef) open(ctx context.Context) (tabular.Section, error) {
	return tabular.OpenSection(ctx, r.store, r.table, r.section)
}

func (r sectionRef) readRows(ctx context.Context) ([]domain.RawTableRow, error) {
	section, err := r.open(ctx)
	if err != nil {
		return nil, err
	}

	rows, err := section.ReadRows(ctx)
	if err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"table":   r.table,
		"section": r.section,
		"rows":    len(rows),
	}).Debug("Aba lida do armazenamento")

	return rows, nil
}

// cellReader converte células de uma linha registrando coerções no diagnóstico
type cellReader struct {
	source domain.Source
	diag   *domain.Diagnostics
}

// quantity lê uma célula numérica; vazia ou inválida vale 0 e é registrada como coerção
func (c cellReader) quantity(row domain.RawTableRow, line int, column string) float64 {
	raw, _ := row.Lookup(column)
	value, ok := utils.ParseQuantity(raw)
	if ok {
		return value
	}

	text := ""
	if raw != nil {
		text = fmt.Sprint(raw)
	}

	logrus.WithFields(logrus.Fields{
		"source": c.source,
		"row":    line,
		"column": column,
		"raw":    text,
	}).Warn("Célula numérica inválida tratada como zero")

	if c.diag != nil {
		c.diag.AddCoerced(domain.CoercedCell{
			Source: c.source,
			Row:    line,
			Column: column,
			Raw:    text,
		})
	}
	return 0
}
