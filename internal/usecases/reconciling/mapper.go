package reconciling

import (
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/desossa-api/internal/domain"
)

// Mapper resolve a descrição de um produto (ou material) para o corte canônico.
// É imutável depois de criado e pode ser lido por requisições concorrentes.
type Mapper struct {
	index map[domain.NormalizedKey]string
	cuts  []string
}

// NewMapper monta o dicionário. Os cortes conhecidos resolvem para si mesmos;
// em entradas repetidas vale a primeira.
func NewMapper(knownCuts []string, entries []domain.ProductMappingEntry) *Mapper {
	m := &Mapper{
		index: make(map[domain.NormalizedKey]string, len(knownCuts)+len(entries)),
	}

	canonical := make(map[domain.NormalizedKey]string, len(knownCuts))
	addCut := func(cut string) string {
		key := domain.NormalizeKey(cut)
		if existing, ok := canonical[key]; ok {
			return existing
		}
		canonical[key] = cut
		m.cuts = append(m.cuts, cut)
		return cut
	}

	for _, cut := range knownCuts {
		if domain.NormalizeKey(cut) == "" {
			continue
		}
		cut = addCut(cut)
		m.index[domain.NormalizeKey(cut)] = cut
	}

	for _, e := range entries {
		product := domain.NormalizeKey(e.ProductDescription)
		if product == "" || domain.NormalizeKey(e.CanonicalCut) == "" {
			continue
		}

		cut := addCut(e.CanonicalCut)
		if existing, ok := m.index[product]; ok {
			if existing != cut {
				logrus.WithFields(logrus.Fields{
					"product": e.ProductDescription,
					"kept":    existing,
					"ignored": cut,
				}).Warn("Produto mapeado para cortes diferentes, mantendo o primeiro")
			}
			continue
		}
		m.index[product] = cut
	}

	// o próprio nome do corte também resolve para ele
	for _, cut := range m.cuts {
		key := domain.NormalizeKey(cut)
		if _, ok := m.index[key]; !ok {
			m.index[key] = cut
		}
	}

	return m
}

// Resolve retorna o corte canônico; ok=false indica produto sem mapeamento
func (m *Mapper) Resolve(identifier string) (string, bool) {
	key := domain.NormalizeKey(identifier)
	if key == "" {
		return "", false
	}
	cut, ok := m.index[key]
	return cut, ok
}

// Cuts é a lista canônica: cortes conhecidos na ordem recebida e depois
// os cortes que só aparecem no dicionário, na ordem da primeira ocorrência
func (m *Mapper) Cuts() []string {
	return append([]string(nil), m.cuts...)
}

// Size é o número de identificadores resolvíveis
func (m *Mapper) Size() int {
	return len(m.index)
}
