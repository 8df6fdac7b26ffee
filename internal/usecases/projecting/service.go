// Package projecting projeta o rendimento de cortes a partir do peso da carcaça
// e grava as apurações confirmadas no livro de rendimento.
package projecting

//go:generate mockgen -source=service.go -destination=mocks/service.go -package=mocks

import (
	"context"
	"math"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/desossa-api/infrastructure/repository"
	"github.com/vfg2006/desossa-api/internal/domain"
	"github.com/vfg2006/desossa-api/pkg/utils"
)

type Projector interface {
	ListTables() []domain.YieldTable
	Project(request domain.ProjectionRequest) (*domain.ProjectionResponse, error)
	RecordYield(ctx context.Context, request domain.ProjectionRequest) (*domain.YieldRecord, error)
	ListRecords(ctx context.Context, startDate, endDate string) ([]domain.YieldRecord, error)
}

type Service struct {
	registry *Registry
	ledger   repository.YieldLedgerRepository
	now      func() time.Time
}

func NewService(registry *Registry, ledger repository.YieldLedgerRepository) *Service {
	return &Service{
		registry: registry,
		ledger:   ledger,
		now:      time.Now,
	}
}

// Verify interface compliance
var _ Projector = (*Service)(nil)

// Project calcula o peso de cada corte: peso total × fração, arredondado em duas casas
// (metade para longe do zero). Não grava nada.
func Project(table domain.YieldTable, totalWeight float64) ([]domain.ProjectionRow, error) {
	if math.IsNaN(totalWeight) || math.IsInf(totalWeight, 0) || totalWeight <= 0 {
		return nil, domain.NewInvalidInputError("total_weight", "o peso total deve ser maior que zero")
	}

	total := decimal.NewFromFloat(totalWeight)
	rows := make([]domain.ProjectionRow, 0, len(table.Cuts))
	for _, c := range table.Cuts {
		weight := total.Mul(decimal.NewFromFloat(c.Fraction)).Round(2)
		rows = append(rows, domain.ProjectionRow{
			Cut:      c.Cut,
			Fraction: c.Fraction,
			Weight:   weight.InexactFloat64(),
		})
	}
	return rows, nil
}

func (s *Service) ListTables() []domain.YieldTable {
	return s.registry.Tables()
}

func (s *Service) Project(request domain.ProjectionRequest) (*domain.ProjectionResponse, error) {
	table, err := s.registry.Table(request.Species)
	if err != nil {
		return nil, err
	}

	rows, err := Project(table, request.TotalWeight)
	if err != nil {
		return nil, err
	}

	projected := decimal.Zero
	for _, r := range rows {
		projected = projected.Add(decimal.NewFromFloat(r.Weight))
	}

	return &domain.ProjectionResponse{
		Species:     table.Species,
		TotalWeight: request.TotalWeight,
		Rows:        rows,
		Unaccounted: decimal.NewFromFloat(request.TotalWeight).Sub(projected).Round(2).InexactFloat64(),
	}, nil
}

// RecordYield projeta e grava a apuração no livro. Falhas de gravação são devolvidas
// ao operador sem nova tentativa.
func (s *Service) RecordYield(ctx context.Context, request domain.ProjectionRequest) (*domain.YieldRecord, error) {
	projection, err := s.Project(request)
	if err != nil {
		return nil, err
	}

	record := domain.YieldRecord{
		Date:        s.now().Truncate(time.Second),
		Species:     projection.Species,
		TotalWeight: projection.TotalWeight,
		Cuts:        projection.Rows,
	}

	if err := s.ledger.AppendRecord(ctx, record); err != nil {
		logrus.WithError(err).WithField("species", record.Species).Error("Erro ao gravar apuração de rendimento")
		return nil, err
	}

	return &record, nil
}

// ListRecords lê o livro de rendimento, opcionalmente filtrando por período (datas AAAA-MM-DD, inclusivas)
func (s *Service) ListRecords(ctx context.Context, startDate, endDate string) ([]domain.YieldRecord, error) {
	start, err := utils.ParseDate(startDate)
	if err != nil {
		return nil, domain.NewInvalidInputError("start_date", "data inválida, use AAAA-MM-DD")
	}

	end, err := utils.ParseDate(endDate)
	if err != nil {
		return nil, domain.NewInvalidInputError("end_date", "data inválida, use AAAA-MM-DD")
	}

	if endDate != "" && startDate != "" && end.Before(*start) {
		return nil, domain.NewInvalidInputError("end_date", "a data final deve ser posterior à inicial")
	}

	records, err := s.ledger.ListRecords(ctx, domain.NewDiagnostics())
	if err != nil {
		return nil, err
	}

	if startDate == "" && endDate == "" {
		return records, nil
	}

	filtered := make([]domain.YieldRecord, 0, len(records))
	for _, r := range records {
		day := time.Date(r.Date.Year(), r.Date.Month(), r.Date.Day(), 0, 0, 0, 0, time.UTC)
		if startDate != "" && day.Before(*start) {
			continue
		}
		if endDate != "" && day.After(*end) {
			continue
		}
		filtered = append(filtered, r)
	}

	return filtered, nil
}
