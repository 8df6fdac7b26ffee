package repository

//go:generate mockgen -source=user.go -destination=mocks/user.go -package=mocks

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/desossa-api/internal/domain"
)

type OperatorRepository interface {
	GetOperatorByEmail(email string) (*domain.Operator, error)
	ListOperators() []*domain.Operator
}

type operatorRepository struct {
	operators []*domain.Operator
	byEmail   map[string]*domain.Operator
}

// NewOperatorRepository monta os operadores a partir das entradas "email|perfil|hash-bcrypt"
func NewOperatorRepository(entries []string) (OperatorRepository, error) {
	repo := &operatorRepository{
		operators: make([]*domain.Operator, 0, len(entries)),
		byEmail:   make(map[string]*domain.Operator, len(entries)),
	}

	for i, entry := range entries {
		operator, err := parseOperator(entry)
		if err != nil {
			return nil, fmt.Errorf("AUTH_USERS[%d]: %w", i, err)
		}

		key := strings.ToLower(operator.Email)
		if _, exists := repo.byEmail[key]; exists {
			logrus.Warnf("Operador %s duplicado em AUTH_USERS, mantendo a primeira entrada", operator.Email)
			continue
		}

		repo.byEmail[key] = operator
		repo.operators = append(repo.operators, operator)
	}

	return repo, nil
}

func parseOperator(entry string) (*domain.Operator, error) {
	parts := strings.SplitN(entry, "|", 3)
	if len(parts) != 3 {
		return nil, fmt.Errorf("formato inválido, esperado email|perfil|hash")
	}

	operator := &domain.Operator{
		Email:        strings.TrimSpace(parts[0]),
		Role:         strings.ToLower(strings.TrimSpace(parts[1])),
		PasswordHash: strings.TrimSpace(parts[2]),
	}

	if operator.Email == "" || operator.PasswordHash == "" {
		return nil, fmt.Errorf("email e hash são obrigatórios")
	}

	if operator.Role != domain.RoleAdmin && operator.Role != domain.RoleViewer {
		return nil, fmt.Errorf("perfil desconhecido %q", operator.Role)
	}

	return operator, nil
}

// GetOperatorByEmail retorna nil quando o operador não existe
func (r *operatorRepository) GetOperatorByEmail(email string) (*domain.Operator, error) {
	operator, ok := r.byEmail[strings.ToLower(strings.TrimSpace(email))]
	if !ok {
		return nil, nil
	}
	return operator, nil
}

func (r *operatorRepository) ListOperators() []*domain.Operator {
	return r.operators
}
