package handler

import (
	"net/http"

	"github.com/vfg2006/desossa-api/internal/domain"
	"github.com/vfg2006/desossa-api/internal/usecases/projecting"
	"github.com/vfg2006/desossa-api/pkg/apiErrors"
	"github.com/vfg2006/desossa-api/pkg/log"
	"github.com/vfg2006/desossa-api/pkg/middleware"
)

func ListYieldTables(service projecting.Projector) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, service.ListTables())
	})
}

func ProjectYield(service projecting.Projector) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req domain.ProjectionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Formato de requisição inválido", nil)
			return
		}

		projection, err := service.Project(req)
		if err != nil {
			handleDomainError(w, r, err)
			return
		}

		writeJSON(w, http.StatusOK, projection)
	})
}

// RecordYield projeta e grava a apuração no livro de rendimento
func RecordYield(service projecting.Projector) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		var req domain.ProjectionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Formato de requisição inválido", nil)
			return
		}

		record, err := service.RecordYield(r.Context(), req)
		if err != nil {
			handleDomainError(w, r, err)
			return
		}

		fields := log.Fields{
			"species":      record.Species,
			"total_weight": record.TotalWeight,
		}
		if claims, ok := middleware.ClaimsFromContext(r.Context()); ok {
			fields["user_email"] = claims.UserEmail
		}
		logger.WithFields(fields).Info("Apuração de rendimento registrada")

		writeJSON(w, http.StatusCreated, record)
	})
}

func ListYieldRecords(service projecting.Projector) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()

		records, err := service.ListRecords(r.Context(), query.Get("start_date"), query.Get("end_date"))
		if err != nil {
			handleDomainError(w, r, err)
			return
		}

		writeJSON(w, http.StatusOK, records)
	})
}
