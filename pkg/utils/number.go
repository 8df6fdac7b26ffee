package utils

import (
	"fmt"
	"math"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// RoundWithTwoDecimalPlace arredonda para duas casas, metade para longe do zero
func RoundWithTwoDecimalPlace(f float64) float64 {
	if f == 0 {
		return 0
	}

	return decimal.NewFromFloat(f).Round(2).InexactFloat64()
}

// ParseQuantity converte uma célula em número aceitando vírgula ou ponto como separador decimal.
// Apenas a troca simples de separador é suportada: "1.234,56" não é um número válido.
// Células vazias ou inválidas retornam 0 e ok=false, para que o chamador registre a coerção.
func ParseQuantity(value any) (float64, bool) {
	switch v := value.(type) {
	case nil:
		return 0, false
	case float64:
		return finite(v)
	case float32:
		return ParseQuantity(float64(v))
	case int:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	case uint:
		return float64(v), true
	case uint32:
		return float64(v), true
	case uint64:
		return float64(v), true
	case decimal.Decimal:
		return finite(v.InexactFloat64())
	case string:
		return parseQuantityText(v)
	default:
		return parseQuantityText(fmt.Sprint(v))
	}
}

func parseQuantityText(s string) (float64, bool) {
	d, ok := parseDecimalText(s)
	if !ok {
		return 0, false
	}
	return finite(d.InexactFloat64())
}

// finite rejeita NaN e infinitos, que surgem de expoentes como "1e400"
func finite(f float64) (float64, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

func parseDecimalText(s string) (decimal.Decimal, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, false
	}

	s = strings.Replace(s, ",", ".", 1)
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}

// NumberFormatter formata quantidades para exibição em uma localidade.
// Só deve ser usado na saída: o valor interno continua com ponto decimal.
type NumberFormatter struct {
	tag     language.Tag
	printer *message.Printer
}

func NewNumberFormatter(locale string) (*NumberFormatter, error) {
	tag, err := language.Parse(locale)
	if err != nil {
		return nil, fmt.Errorf("localidade inválida %q: %w", locale, err)
	}

	return &NumberFormatter{
		tag:     tag,
		printer: message.NewPrinter(tag),
	}, nil
}

// Locale retorna a localidade do formatador
func (f *NumberFormatter) Locale() string {
	return f.tag.String()
}

// Format formata com agrupamento de milhar e duas casas decimais
func (f *NumberFormatter) Format(v float64) string {
	return f.printer.Sprintf("%.2f", RoundWithTwoDecimalPlace(v))
}
