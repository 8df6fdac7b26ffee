package repository

//go:generate mockgen -source=mapping.go -destination=mocks/mapping.go -package=mocks

import (
	"context"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/desossa-api/infrastructure/tabular"
	"github.com/vfg2006/desossa-api/internal/domain"
)

type MappingRepository interface {
	ListMappings(ctx context.Context) ([]domain.ProductMappingEntry, error)
}

type mappingRepository struct {
	ref           sectionRef
	productColumn string
	cutColumn     string
}

// NewMappingRepository lê o dicionário produto → corte canônico
func NewMappingRepository(store tabular.Store, table, section, productColumn, cutColumn string) MappingRepository {
	return &mappingRepository{
		ref:           sectionRef{store: store, table: table, section: section},
		productColumn: productColumn,
		cutColumn:     cutColumn,
	}
}

func (r *mappingRepository) ListMappings(ctx context.Context) ([]domain.ProductMappingEntry, error) {
	rows, err := r.ref.readRows(ctx)
	if err != nil {
		return nil, err
	}

	entries := make([]domain.ProductMappingEntry, 0, len(rows))
	for i, raw := range rows {
		if raw.IsBlank() {
			continue
		}

		product := strings.TrimSpace(raw.Text(r.productColumn))
		cut := strings.TrimSpace(raw.Text(r.cutColumn))
		if product == "" || cut == "" {
			logrus.WithFields(logrus.Fields{
				"source":  domain.SourceMapping,
				"row":     i + firstDataRow,
				"product": product,
				"cut":     cut,
			}).Warn("Entrada incompleta no mapeamento de produtos ignorada")
			continue
		}

		entries = append(entries, domain.ProductMappingEntry{
			ProductDescription: product,
			CanonicalCut:       cut,
		})
	}

	return entries, nil
}
