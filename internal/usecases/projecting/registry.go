package projecting

import (
	"github.com/vfg2006/desossa-api/internal/domain"
)

// Registry guarda as tabelas de rendimento por espécie.
// É montado uma vez na inicialização e apenas lido depois disso.
type Registry struct {
	tables map[domain.NormalizedKey]domain.YieldTable
	order  []domain.NormalizedKey
}

func NewRegistry(tables ...domain.YieldTable) *Registry {
	r := &Registry{
		tables: make(map[domain.NormalizedKey]domain.YieldTable, len(tables)),
	}

	for _, t := range tables {
		key := domain.NormalizeKey(t.Species)
		if _, exists := r.tables[key]; !exists {
			r.order = append(r.order, key)
		}
		r.tables[key] = copyTable(t)
	}
	return r
}

// DefaultRegistry contém as tabelas em uso pela desossa
func DefaultRegistry() *Registry {
	return NewRegistry(domain.PorkYieldTable())
}

// Table retorna a tabela da espécie. Espécie vazia usa a primeira tabela registrada.
func (r *Registry) Table(species string) (domain.YieldTable, error) {
	key := domain.NormalizeKey(species)
	if key == "" && len(r.order) > 0 {
		key = r.order[0]
	}

	if t, ok := r.tables[key]; ok {
		return copyTable(t), nil
	}

	if key == domain.NormalizeKey(domain.SpeciesBeef) {
		return domain.YieldTable{}, domain.NewInvalidInputError("species", "módulo de bovinos em desenvolvimento")
	}

	return domain.YieldTable{}, domain.NewInvalidInputError("species", "espécie desconhecida: "+species)
}

// Tables retorna as tabelas na ordem de registro
func (r *Registry) Tables() []domain.YieldTable {
	tables := make([]domain.YieldTable, 0, len(r.order))
	for _, key := range r.order {
		tables = append(tables, copyTable(r.tables[key]))
	}
	return tables
}

// CutNames retorna todos os cortes das tabelas registradas, sem repetição, na ordem das tabelas
func (r *Registry) CutNames() []string {
	seen := make(map[domain.NormalizedKey]bool)
	var cuts []string
	for _, key := range r.order {
		for _, c := range r.tables[key].Cuts {
			k := domain.NormalizeKey(c.Cut)
			if seen[k] {
				continue
			}
			seen[k] = true
			cuts = append(cuts, c.Cut)
		}
	}
	return cuts
}

func copyTable(t domain.YieldTable) domain.YieldTable {
	return domain.YieldTable{
		Species: t.Species,
		Cuts:    append([]domain.CutShare(nil), t.Cuts...),
	}
}
