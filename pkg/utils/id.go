package utils

import gonanoid "github.com/matoous/go-nanoid/v2"

const (
	runIDAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
	runIDLength   = 10
)

// GenerateRunID gera o identificador curto de uma execução de reconciliação
func GenerateRunID() (string, error) {
	return gonanoid.Generate(runIDAlphabet, runIDLength)
}
