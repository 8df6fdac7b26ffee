package utils

import (
	"math"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseQuantity(t *testing.T) {
	tests := []struct {
		name   string
		value  any
		want   float64
		wantOk bool
	}{
		{name: "Vírgula como separador decimal", value: "12,50", want: 12.5, wantOk: true},
		{name: "Ponto como separador decimal", value: "12.50", want: 12.5, wantOk: true},
		{name: "Espaços nas pontas", value: "  7,25 ", want: 7.25, wantOk: true},
		{name: "Número inteiro", value: 7, want: 7, wantOk: true},
		{name: "Número float", value: 3.75, want: 3.75, wantOk: true},
		{name: "Negativo", value: "-4,5", want: -4.5, wantOk: true},
		{name: "Célula vazia", value: "", want: 0, wantOk: false},
		{name: "Célula nula", value: nil, want: 0, wantOk: false},
		{name: "Texto inválido", value: "abc", want: 0, wantOk: false},
		{name: "Milhar com ponto e decimal com vírgula não é aceito", value: "1.234,56", want: 0, wantOk: false},
		{name: "Expoente fora do alcance", value: "1e400", want: 0, wantOk: false},
		{name: "Expoente negativo fora do alcance", value: "-1e400", want: 0, wantOk: false},
		{name: "Expoente válido", value: "1,5e3", want: 1500, wantOk: true},
		{name: "Decimal fora do alcance", value: decimal.RequireFromString("1e400"), want: 0, wantOk: false},
		{name: "Decimal válido", value: decimal.RequireFromString("2.75"), want: 2.75, wantOk: true},
		{name: "Infinito", value: math.Inf(1), want: 0, wantOk: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseQuantity(tt.value)
			assert.Equal(t, tt.wantOk, ok)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestRoundWithTwoDecimalPlace(t *testing.T) {
	assert.Equal(t, 0.13, RoundWithTwoDecimalPlace(0.125))
	assert.Equal(t, -0.13, RoundWithTwoDecimalPlace(-0.125))
	assert.Equal(t, 26.0, RoundWithTwoDecimalPlace(26))
	assert.Equal(t, 0.0, RoundWithTwoDecimalPlace(0))
}

func TestNumberFormatter(t *testing.T) {
	f, err := NewNumberFormatter("pt-BR")
	require.NoError(t, err)

	assert.Equal(t, "1.234,50", f.Format(1234.5))
	assert.Equal(t, "-3,00", f.Format(-3))
	assert.Equal(t, "0,00", f.Format(0))

	en, err := NewNumberFormatter("en-US")
	require.NoError(t, err)
	assert.Equal(t, "1,234.50", en.Format(1234.5))

	_, err = NewNumberFormatter("não-é-locale")
	assert.Error(t, err)
}
