package handler

import (
	"net/http"

	"github.com/vfg2006/desossa-api/internal/usecases/reconciling"
	"github.com/vfg2006/desossa-api/pkg/log"
)

// GetAvailability concilia as três fontes e devolve o saldo por corte com o diagnóstico
func GetAvailability(service reconciling.Reconciler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		report, err := service.Reconcile(r.Context())
		if err != nil {
			handleDomainError(w, r, err)
			return
		}

		log.ForContext(r.Context()).WithFields(log.Fields{
			"run_id":        report.RunID,
			"unmapped_rows": report.Diagnostics.UnmappedCount(),
		}).Debug("Relatório de disponibilidade gerado")

		writeJSON(w, http.StatusOK, report)
	})
}
