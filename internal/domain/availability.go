package domain

import (
	"sort"
	"time"
)

// AggregatedQuantity é o total de uma fonte para um corte
type AggregatedQuantity struct {
	Cut   string  `json:"cut"`
	Total float64 `json:"total"`
}

// ATPBalance é o saldo disponível para promessa de um corte.
// Net pode ser negativo: indica posição vendida acima do disponível.
type ATPBalance struct {
	Cut           string  `json:"cut"`
	Production    float64 `json:"production"`
	PhysicalStock float64 `json:"physical_stock"`
	PendingOrders float64 `json:"pending_orders"`
	Net           float64 `json:"net"`
}

// Oversold indica saldo negativo
func (b ATPBalance) Oversold() bool {
	return b.Net < 0
}

// ATPBalanceDisplay é o saldo formatado para exibição em uma localidade
type ATPBalanceDisplay struct {
	Cut           string `json:"cut"`
	Production    string `json:"production"`
	PhysicalStock string `json:"physical_stock"`
	PendingOrders string `json:"pending_orders"`
	Net           string `json:"net"`
	Oversold      bool   `json:"oversold"`
}

// CoercedCell é uma célula numérica inválida tratada como zero
type CoercedCell struct {
	Source Source `json:"source"`
	Row    int    `json:"row"`
	Column string `json:"column"`
	Raw    string `json:"raw"`
}

// UnmappedRow é uma linha cujo identificador não existe no mapeamento de cortes
type UnmappedRow struct {
	Source     Source  `json:"source"`
	Row        int     `json:"row"`
	Identifier string  `json:"identifier"`
	Quantity   float64 `json:"quantity"`
}

// Diagnostics reúne os problemas de qualidade de dados de uma reconciliação.
// Nenhum deles interrompe o cálculo.
type Diagnostics struct {
	CoercedCells        []CoercedCell  `json:"coerced_cells"`
	UnmappedRows        []UnmappedRow  `json:"unmapped_rows"`
	UnmappedIdentifiers []string       `json:"unmapped_identifiers"`
	UnmappedColumns     []string       `json:"unmapped_columns"`
	SkippedOrders       int            `json:"skipped_orders"`
	CoercedBySource     map[Source]int `json:"coerced_by_source"`
	UnmappedBySource    map[Source]int `json:"unmapped_by_source"`
}

func NewDiagnostics() *Diagnostics {
	return &Diagnostics{
		CoercedCells:        []CoercedCell{},
		UnmappedRows:        []UnmappedRow{},
		UnmappedIdentifiers: []string{},
		UnmappedColumns:     []string{},
		CoercedBySource:     map[Source]int{},
		UnmappedBySource:    map[Source]int{},
	}
}

func (d *Diagnostics) AddCoerced(cell CoercedCell) {
	d.CoercedCells = append(d.CoercedCells, cell)
	d.CoercedBySource[cell.Source]++
}

func (d *Diagnostics) AddUnmapped(row UnmappedRow) {
	d.UnmappedRows = append(d.UnmappedRows, row)
	d.UnmappedBySource[row.Source]++

	key := string(NormalizeKey(row.Identifier))
	if key == "" {
		return
	}
	idx := sort.SearchStrings(d.UnmappedIdentifiers, key)
	if idx < len(d.UnmappedIdentifiers) && d.UnmappedIdentifiers[idx] == key {
		return
	}
	d.UnmappedIdentifiers = append(d.UnmappedIdentifiers, "")
	copy(d.UnmappedIdentifiers[idx+1:], d.UnmappedIdentifiers[idx:])
	d.UnmappedIdentifiers[idx] = key
}

// AddUnmappedColumn registra uma coluna de corte desconhecida no livro de produção
func (d *Diagnostics) AddUnmappedColumn(column string) {
	for _, c := range d.UnmappedColumns {
		if c == column {
			return
		}
	}
	d.UnmappedColumns = append(d.UnmappedColumns, column)
}

func (d *Diagnostics) CoercedCount() int {
	return len(d.CoercedCells)
}

func (d *Diagnostics) UnmappedCount() int {
	return len(d.UnmappedRows)
}

// AvailabilityReport é o resultado de uma reconciliação
type AvailabilityReport struct {
	RunID       string              `json:"run_id"`
	GeneratedAt time.Time           `json:"generated_at"`
	Balances    []ATPBalance        `json:"balances"`
	Display     []ATPBalanceDisplay `json:"display,omitempty"`
	Diagnostics *Diagnostics        `json:"diagnostics"`
}
