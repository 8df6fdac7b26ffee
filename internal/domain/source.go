package domain

import (
	"fmt"
	"strings"
	"time"
)

// Source identifica uma das três fontes reconciliadas
type Source string

const (
	SourceProduction Source = "production"
	SourceInventory  Source = "inventory"
	SourceOrders     Source = "orders"
	SourceMapping    Source = "mapping"
)

// RawTableRow é uma linha lida do armazenamento tabular, indexada pelo cabeçalho.
// Os valores chegam como string ou número, sem esquema fixo.
type RawTableRow map[string]any

// Lookup busca uma coluna ignorando caixa e espaços do cabeçalho
func (r RawTableRow) Lookup(column string) (any, bool) {
	if v, ok := r[column]; ok {
		return v, true
	}

	key := NormalizeKey(column)
	for k, v := range r {
		if NormalizeKey(k) == key {
			return v, true
		}
	}
	return nil, false
}

// Text retorna o valor da coluna como texto
func (r RawTableRow) Text(column string) string {
	v, ok := r.Lookup(column)
	if !ok || v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}

// IsBlank indica linha sem nenhum valor preenchido
func (r RawTableRow) IsBlank() bool {
	for _, v := range r {
		if v == nil {
			continue
		}
		if s, ok := v.(string); ok && strings.TrimSpace(s) == "" {
			continue
		}
		return false
	}
	return true
}

// NormalizedKey é a forma canônica de um identificador livre, usada apenas para comparação
type NormalizedKey string

// NormalizeKey remove espaços das pontas e converte para maiúsculas
func NormalizeKey(identifier string) NormalizedKey {
	return NormalizedKey(strings.ToUpper(strings.TrimSpace(identifier)))
}

// ProductMappingEntry liga a descrição de um produto ao corte canônico
type ProductMappingEntry struct {
	ProductDescription string `json:"product_description"`
	CanonicalCut       string `json:"canonical_cut"`
}

// ProductionRow é uma linha do livro de rendimento já tipada
type ProductionRow struct {
	Row         int
	Date        *time.Time
	TotalWeight float64
	Cuts        map[string]float64
}

// InventoryRow é uma linha do estoque físico já tipada
type InventoryRow struct {
	Row      int
	Material string
	Quantity float64
}

// OrderRow é uma linha de pedido já tipada
type OrderRow struct {
	Row     int
	Product string
	Weight  float64
	Status  string
}
