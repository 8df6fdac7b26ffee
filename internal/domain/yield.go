// Package domain contém as estruturas de dados do domínio da aplicação
package domain

import "time"

// Espécies de matéria-prima conhecidas
const (
	SpeciesPork = "SUINO"
	SpeciesBeef = "BOVINO"
)

// CutShare é a fração esperada de um corte sobre o peso total da carcaça
type CutShare struct {
	Cut      string  `json:"cut"`
	Fraction float64 `json:"fraction"`
}

// YieldTable é a tabela de percentuais de rendimento de uma espécie.
// As frações não precisam somar 1: a diferença é perda (osso, aparas).
type YieldTable struct {
	Species string     `json:"species"`
	Cuts    []CutShare `json:"cuts"`
}

// CutNames retorna os cortes da tabela na ordem definida
func (t YieldTable) CutNames() []string {
	names := make([]string, 0, len(t.Cuts))
	for _, c := range t.Cuts {
		names = append(names, c.Cut)
	}
	return names
}

// FractionSum soma as frações da tabela
func (t YieldTable) FractionSum() float64 {
	var sum float64
	for _, c := range t.Cuts {
		sum += c.Fraction
	}
	return sum
}

// PorkYieldTable retorna a tabela de referência da desossa suína.
// Cada chamada devolve uma cópia nova.
func PorkYieldTable() YieldTable {
	return YieldTable{
		Species: SpeciesPork,
		Cuts: []CutShare{
			{Cut: "Pernil", Fraction: 0.26},
			{Cut: "Paleta", Fraction: 0.15},
			{Cut: "Lombo", Fraction: 0.13},
			{Cut: "Barriga", Fraction: 0.13},
			{Cut: "Costela", Fraction: 0.09},
			{Cut: "Copa/Sobrepaleta", Fraction: 0.07},
			{Cut: "Recortes/Gordura", Fraction: 0.12},
			{Cut: "Pés/Rabo/Orelha", Fraction: 0.05},
		},
	}
}

// ProjectionRow é o peso estimado de um corte
type ProjectionRow struct {
	Cut      string  `json:"cut"`
	Fraction float64 `json:"fraction,omitempty"`
	Weight   float64 `json:"weight"`
}

// YieldRecord é uma apuração confirmada, gravada no livro de rendimento.
// Uma vez gravada nunca é alterada nem removida.
type YieldRecord struct {
	Date        time.Time       `json:"date"`
	Species     string          `json:"species,omitempty"`
	TotalWeight float64         `json:"total_weight"`
	Cuts        []ProjectionRow `json:"cuts"`
}

// CutWeights retorna os pesos por corte como mapa
func (r YieldRecord) CutWeights() map[string]float64 {
	weights := make(map[string]float64, len(r.Cuts))
	for _, c := range r.Cuts {
		weights[c.Cut] = c.Weight
	}
	return weights
}

type ProjectionRequest struct {
	Species     string  `json:"species"`
	TotalWeight float64 `json:"total_weight"`
}

type ProjectionResponse struct {
	Species     string          `json:"species"`
	TotalWeight float64         `json:"total_weight"`
	Rows        []ProjectionRow `json:"rows"`
	Unaccounted float64         `json:"unaccounted_weight"`
}
