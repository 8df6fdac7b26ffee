package utils

import (
	"strings"
	"time"
)

// LedgerDateLayout é o formato de data gravado no livro de rendimento
const LedgerDateLayout = "2006-01-02 15:04:05"

// Data base dos números de série de planilhas (Sheets e Excel)
var spreadsheetEpoch = time.Date(1899, 12, 30, 0, 0, 0, 0, time.UTC)

var cellDateLayouts = []string{
	LedgerDateLayout,
	time.RFC3339,
	"2006-01-02",
	"02/01/2006 15:04:05",
	"02/01/2006",
}

func ParseDate(dateStr string) (*time.Time, error) {
	var date time.Time

	if dateStr != "" {
		incomingDate, err := time.Parse(time.DateOnly, dateStr)
		if err != nil {
			return nil, err
		}

		date = incomingDate
	}

	return &date, nil
}

// ParseCellDate interpreta uma célula de data em texto ou número de série de planilha
func ParseCellDate(value any) (*time.Time, bool) {
	switch v := value.(type) {
	case nil:
		return nil, false
	case time.Time:
		return &v, true
	case string:
		s := strings.TrimSpace(v)
		if s == "" {
			return nil, false
		}
		for _, layout := range cellDateLayouts {
			if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
				return &t, true
			}
		}
	}

	serial, ok := ParseQuantity(value)
	if !ok || serial <= 0 {
		return nil, false
	}

	t := spreadsheetEpoch.Add(time.Duration(serial * float64(24*time.Hour)))
	return &t, true
}
