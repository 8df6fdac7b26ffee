package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Erros de domínio
var (
	// Erros de validação
	ErrInvalidInput = errors.New("entrada inválida")

	// Erros estruturais do armazenamento tabular
	ErrTableNotFound    = errors.New("tabela não encontrada")
	ErrSectionNotFound  = errors.New("aba não encontrada")
	ErrPersistence      = errors.New("falha ao gravar no armazenamento")
	ErrStoreUnavailable = errors.New("armazenamento indisponível")
)

// InvalidInputError é um erro de entrada do chamador, rejeitado antes de qualquer processamento
type InvalidInputError struct {
	Field   string // Campo inválido
	Details string // Detalhes adicionais
}

func (e *InvalidInputError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("%s: %s", ErrInvalidInput.Error(), e.Details)
	}
	return fmt.Sprintf("%s: %s: %s", ErrInvalidInput.Error(), e.Field, e.Details)
}

func (e *InvalidInputError) Unwrap() error {
	return ErrInvalidInput
}

func NewInvalidInputError(field, details string) *InvalidInputError {
	return &InvalidInputError{Field: field, Details: details}
}

// StoreError é uma falha do armazenamento tabular com o contexto da tabela e aba
type StoreError struct {
	Err     error  // Erro base (ErrTableNotFound, ErrSectionNotFound, ...)
	Table   string // Tabela envolvida
	Section string // Aba envolvida (quando aplicável)
	Cause   error  // Erro original do cliente (quando houver)
}

func (e *StoreError) Error() string {
	var b strings.Builder
	b.WriteString(e.Err.Error())
	b.WriteString(": ")
	b.WriteString(e.Table)
	if e.Section != "" {
		b.WriteString("/")
		b.WriteString(e.Section)
	}
	if e.Cause != nil {
		b.WriteString(": ")
		b.WriteString(e.Cause.Error())
	}
	return b.String()
}

func (e *StoreError) Unwrap() []error {
	if e.Cause == nil {
		return []error{e.Err}
	}
	return []error{e.Err, e.Cause}
}

func NewTableNotFoundError(table string) *StoreError {
	return &StoreError{Err: ErrTableNotFound, Table: table}
}

func NewSectionNotFoundError(table, section string) *StoreError {
	return &StoreError{Err: ErrSectionNotFound, Table: table, Section: section}
}

func NewPersistenceError(table, section string, cause error) *StoreError {
	return &StoreError{Err: ErrPersistence, Table: table, Section: section, Cause: cause}
}

func NewStoreUnavailableError(table, section string, cause error) *StoreError {
	return &StoreError{Err: ErrStoreUnavailable, Table: table, Section: section, Cause: cause}
}

// IsSchemaError verifica se o erro indica mudança de estrutura no armazenamento remoto
func IsSchemaError(err error) bool {
	return errors.Is(err, ErrTableNotFound) || errors.Is(err, ErrSectionNotFound)
}
