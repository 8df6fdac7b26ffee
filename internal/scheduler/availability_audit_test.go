package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/desossa-api/internal/config"
	"github.com/vfg2006/desossa-api/internal/domain"
	"github.com/vfg2006/desossa-api/internal/usecases/reconciling/mocks"
	"go.uber.org/mock/gomock"
)

func newTestConfig(enabled bool) *config.Config {
	return &config.Config{
		AvailabilityAudit: config.AvailabilityAudit{
			CronSchedule: "0 6 * * *",
			Enabled:      enabled,
		},
	}
}

func TestAvailabilityAuditService_RunAudit(t *testing.T) {
	diag := domain.NewDiagnostics()
	diag.AddCoerced(domain.CoercedCell{Source: domain.SourceInventory, Row: 3, Column: "quantidade_kg", Raw: "dez"})
	diag.AddUnmapped(domain.UnmappedRow{Source: domain.SourceOrders, Row: 4, Identifier: "Picanha", Quantity: 3})
	diag.AddUnmappedColumn("Costela")
	diag.SkippedOrders = 2

	tests := []struct {
		name     string
		setup    func(r *mocks.MockReconciler)
		expected *AuditSummary
		wantErr  bool
	}{
		{
			name: "Resumo com cortes vendidos acima do disponível",
			setup: func(r *mocks.MockReconciler) {
				r.EXPECT().Reconcile(gomock.Any()).Return(&domain.AvailabilityReport{
					RunID: "run-1",
					Balances: []domain.ATPBalance{
						{Cut: "Pernil", Net: 10},
						{Cut: "Lombo", Net: -5},
						{Cut: "Pés/Rabo/Orelha", Net: 0},
					},
					Diagnostics: diag,
				}, nil)
			},
			expected: &AuditSummary{
				RunID:           "run-1",
				Cuts:            3,
				OversoldCuts:    []string{"Lombo"},
				CoercedCells:    1,
				UnmappedRows:    1,
				UnmappedColumns: 1,
				SkippedOrders:   2,
			},
		},
		{
			name: "Falha na conciliação",
			setup: func(r *mocks.MockReconciler) {
				r.EXPECT().Reconcile(gomock.Any()).Return(nil, domain.NewTableNotFoundError("Estoque_Fisico"))
			},
			expected: &AuditSummary{Error: "tabela não encontrada: Estoque_Fisico"},
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			reconciler := mocks.NewMockReconciler(ctrl)
			tt.setup(reconciler)

			service := NewAvailabilityAuditService(reconciler, newTestConfig(true))
			summary, err := service.RunAudit(context.Background())

			if tt.wantErr {
				assert.True(t, errors.Is(err, domain.ErrTableNotFound))
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, tt.expected, summary)

			status := service.GetStatus()
			assert.Equal(t, false, status["sync_running"])
			assert.Equal(t, tt.expected, status["last_summary"])
		})
	}
}

func TestAvailabilityAuditService_StartDisabled(t *testing.T) {
	ctrl := gomock.NewController(t)
	reconciler := mocks.NewMockReconciler(ctrl)
	reconciler.EXPECT().Reconcile(gomock.Any()).Times(0)

	service := NewAvailabilityAuditService(reconciler, newTestConfig(false))
	require.NoError(t, service.Start(context.Background()))

	status := service.GetStatus()
	assert.Equal(t, false, status["sync_enabled"])
	assert.Nil(t, status["last_summary"])
}

func TestAvailabilityAuditService_StartInvalidCron(t *testing.T) {
	ctrl := gomock.NewController(t)
	reconciler := mocks.NewMockReconciler(ctrl)

	cfg := newTestConfig(true)
	cfg.AvailabilityAudit.CronSchedule = "todo dia"

	service := NewAvailabilityAuditService(reconciler, cfg)
	assert.Error(t, service.Start(context.Background()))
}

func TestAvailabilityAuditService_ManualSyncRecoversFromPanic(t *testing.T) {
	ctrl := gomock.NewController(t)
	reconciler := mocks.NewMockReconciler(ctrl)
	reconciler.EXPECT().Reconcile(gomock.Any()).DoAndReturn(func(context.Context) (*domain.AvailabilityReport, error) {
		panic("célula corrompida")
	})

	service := NewAvailabilityAuditService(reconciler, newTestConfig(false))
	service.TriggerManualSync()

	assert.Eventually(t, func() bool {
		status := service.GetStatus()
		completed, _ := status["last_sync_completed_at"].(time.Time)
		return status["sync_running"] == false && !completed.IsZero()
	}, time.Second, 10*time.Millisecond)
}
