// Package scheduler contém os serviços agendados da aplicação
package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/desossa-api/internal/config"
	"github.com/vfg2006/desossa-api/internal/domain"
	"github.com/vfg2006/desossa-api/internal/usecases/reconciling"
)

type AvailabilityAuditConfig struct {
	CronSchedule string
	Enabled      bool
}

// AuditSummary resume a última auditoria executada
type AuditSummary struct {
	RunID           string   `json:"run_id"`
	Cuts            int      `json:"cuts"`
	OversoldCuts    []string `json:"oversold_cuts"`
	CoercedCells    int      `json:"coerced_cells"`
	UnmappedRows    int      `json:"unmapped_rows"`
	UnmappedColumns int      `json:"unmapped_columns"`
	SkippedOrders   int      `json:"skipped_orders"`
	Error           string   `json:"error,omitempty"`
}

// AvailabilityAuditService executa a conciliação periodicamente e registra
// os cortes vendidos acima do disponível e os problemas de qualidade das fontes
type AvailabilityAuditService struct {
	scheduler           *gocron.Scheduler
	reconciler          reconciling.Reconciler
	config              AvailabilityAuditConfig
	syncRunning         bool
	syncMutex           sync.Mutex
	lastSyncStartedAt   time.Time
	lastSyncCompletedAt time.Time
	lastSummary         *AuditSummary
}

func NewAvailabilityAuditService(reconciler reconciling.Reconciler, cfg *config.Config) *AvailabilityAuditService {
	auditConfig := AvailabilityAuditConfig{
		CronSchedule: cfg.AvailabilityAudit.CronSchedule,
		Enabled:      cfg.AvailabilityAudit.Enabled,
	}

	logrus.WithFields(logrus.Fields{
		"cron_schedule": auditConfig.CronSchedule,
	}).Info("Configuração da auditoria de disponibilidade carregada")

	return &AvailabilityAuditService{
		scheduler:  gocron.NewScheduler(time.Local),
		reconciler: reconciler,
		config:     auditConfig,
	}
}

func (s *AvailabilityAuditService) Start(ctx context.Context) error {
	if !s.config.Enabled {
		logrus.Info("Auditoria de disponibilidade desabilitada por configuração")
		return nil
	}

	logrus.WithField("cron", s.config.CronSchedule).Info("Iniciando cron da auditoria de disponibilidade")

	gocron.SetPanicHandler(func(jobName string, recoverData any) {
		logrus.WithFields(logrus.Fields{
			"job":   jobName,
			"panic": recoverData,
		}).Error("Pânico na auditoria de disponibilidade agendada")
	})

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		if _, err := s.RunAudit(ctx); err != nil {
			logrus.WithError(err).Error("Erro na auditoria de disponibilidade")
		}
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar auditoria de disponibilidade: %w", err)
	}

	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		logrus.Info("Parando cron da auditoria de disponibilidade")
		s.scheduler.Stop()
	}()

	return nil
}

// RunAudit executa uma conciliação completa. Retorna nil sem erro quando outra execução já está em andamento.
func (s *AvailabilityAuditService) RunAudit(ctx context.Context) (*AuditSummary, error) {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Warn("Auditoria de disponibilidade já está em execução")
		return nil, nil
	}
	s.syncRunning = true
	s.lastSyncStartedAt = time.Now()
	s.syncMutex.Unlock()

	var summary *AuditSummary
	defer func() {
		s.syncMutex.Lock()
		s.syncRunning = false
		s.lastSyncCompletedAt = time.Now()
		s.lastSummary = summary
		s.syncMutex.Unlock()
	}()

	logrus.Info("Iniciando auditoria de disponibilidade")

	report, err := s.reconciler.Reconcile(ctx)
	if err != nil {
		summary = &AuditSummary{Error: err.Error()}
		return summary, err
	}

	summary = summarize(report)

	for _, b := range report.Balances {
		if b.Oversold() {
			logrus.WithFields(logrus.Fields{
				"run_id": report.RunID,
				"cut":    b.Cut,
				"net":    b.Net,
			}).Warn("Corte com pedidos acima do disponível")
		}
	}

	logrus.WithFields(logrus.Fields{
		"run_id":         summary.RunID,
		"oversold_cuts":  len(summary.OversoldCuts),
		"coerced_cells":  summary.CoercedCells,
		"unmapped_rows":  summary.UnmappedRows,
		"skipped_orders": summary.SkippedOrders,
	}).Info("Auditoria de disponibilidade concluída")

	return summary, nil
}

func summarize(report *domain.AvailabilityReport) *AuditSummary {
	summary := &AuditSummary{
		RunID:        report.RunID,
		Cuts:         len(report.Balances),
		OversoldCuts: []string{},
	}

	for _, b := range report.Balances {
		if b.Oversold() {
			summary.OversoldCuts = append(summary.OversoldCuts, b.Cut)
		}
	}

	if d := report.Diagnostics; d != nil {
		summary.CoercedCells = d.CoercedCount()
		summary.UnmappedRows = d.UnmappedCount()
		summary.UnmappedColumns = len(d.UnmappedColumns)
		summary.SkippedOrders = d.SkippedOrders
	}

	return summary
}

// TriggerManualSync inicia manualmente uma auditoria em segundo plano
func (s *AvailabilityAuditService) TriggerManualSync() {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Info("Auditoria de disponibilidade já em andamento, ignorando solicitação manual")
		return
	}
	s.syncMutex.Unlock()

	logrus.Info("Iniciando auditoria manual de disponibilidade")
	go func() {
		defer func() {
			if r := recover(); r != nil {
				logrus.WithField("panic", r).Error("Pânico na auditoria manual de disponibilidade")
			}
		}()

		if _, err := s.RunAudit(context.Background()); err != nil {
			logrus.WithError(err).Error("Erro na auditoria manual de disponibilidade")
		}
	}()
}

// GetStatus retorna o status atual do agendador
func (s *AvailabilityAuditService) GetStatus() map[string]any {
	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()

	return map[string]any{
		"sync_enabled":           s.config.Enabled,
		"sync_cron":              s.config.CronSchedule,
		"sync_running":           s.syncRunning,
		"last_sync_started_at":   s.lastSyncStartedAt,
		"last_sync_completed_at": s.lastSyncCompletedAt,
		"last_summary":           s.lastSummary,
	}
}
