package handler

import (
	"net/http"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"github.com/vfg2006/desossa-api/internal/domain"
	"github.com/vfg2006/desossa-api/pkg/apiErrors"
	"github.com/vfg2006/desossa-api/pkg/log"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.L.WithError(err).Error("Erro ao enviar resposta")
	}
}

// handleDomainError converte os erros de domínio no código e status da API.
// Erros de estrutura do armazenamento são repassados com a mensagem original.
func handleDomainError(w http.ResponseWriter, r *http.Request, err error) {
	logger := log.ForContext(r.Context()).WithError(err)

	var invalid *domain.InvalidInputError
	var storeErr *domain.StoreError

	switch {
	case errors.As(err, &invalid):
		logger.Warn("Requisição rejeitada por entrada inválida")
		apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, invalid.Error(), map[string]string{
			"field": invalid.Field,
		})
	case errors.Is(err, domain.ErrTableNotFound):
		logger.Error("Tabela não encontrada no armazenamento")
		apiErrors.WriteError(w, apiErrors.ErrTableNotFound, err.Error(), storeDetails(storeErr, err))
	case errors.Is(err, domain.ErrSectionNotFound):
		logger.Error("Aba não encontrada no armazenamento")
		apiErrors.WriteError(w, apiErrors.ErrSectionNotFound, err.Error(), storeDetails(storeErr, err))
	case errors.Is(err, domain.ErrPersistence):
		logger.Error("Falha ao gravar no armazenamento")
		apiErrors.WriteError(w, apiErrors.ErrPersistence, err.Error(), storeDetails(storeErr, err))
	case errors.Is(err, domain.ErrStoreUnavailable):
		logger.Error("Armazenamento indisponível")
		apiErrors.WriteError(w, apiErrors.ErrStoreUnavailable, err.Error(), storeDetails(storeErr, err))
	default:
		logger.Error("Erro inesperado")
		apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro interno no servidor", nil)
	}
}

func storeDetails(target *domain.StoreError, err error) map[string]string {
	if !errors.As(err, &target) {
		return nil
	}
	details := map[string]string{"table": target.Table}
	if target.Section != "" {
		details["section"] = target.Section
	}
	return details
}
