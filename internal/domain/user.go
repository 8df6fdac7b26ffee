package domain

import (
	"github.com/golang-jwt/jwt/v5"
)

// Perfis de acesso
const (
	RoleAdmin  = "admin"
	RoleViewer = "viewer"
)

// Operator é um usuário configurado com acesso à API
type Operator struct {
	Email        string `json:"email"`
	Role         string `json:"role"`
	PasswordHash string `json:"-"`
}

type Claims struct {
	UserEmail string
	UserRole  string
	jwt.RegisteredClaims
}
