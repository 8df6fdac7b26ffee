package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	date, err := ParseDate("2024-03-15")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC), *date)

	empty, err := ParseDate("")
	require.NoError(t, err)
	assert.True(t, empty.IsZero())

	_, err = ParseDate("15/03/2024")
	assert.Error(t, err)
}

func TestParseCellDate(t *testing.T) {
	tests := []struct {
		name   string
		value  any
		want   time.Time
		wantOk bool
	}{
		{
			name:   "Formato do livro de rendimento",
			value:  "2024-03-15 08:30:00",
			want:   time.Date(2024, 3, 15, 8, 30, 0, 0, time.Local),
			wantOk: true,
		},
		{
			name:   "Data brasileira",
			value:  "15/03/2024",
			want:   time.Date(2024, 3, 15, 0, 0, 0, 0, time.Local),
			wantOk: true,
		},
		{
			name:   "Número de série da planilha",
			value:  45366.5,
			want:   time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC),
			wantOk: true,
		},
		{name: "Célula vazia", value: "", wantOk: false},
		{name: "Texto sem data", value: "ontem", wantOk: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseCellDate(tt.value)
			assert.Equal(t, tt.wantOk, ok)
			if tt.wantOk {
				require.NotNil(t, got)
				assert.True(t, tt.want.Equal(*got), "esperado %s, obtido %s", tt.want, got)
			}
		})
	}
}

func TestGenerateRunID(t *testing.T) {
	a, err := GenerateRunID()
	require.NoError(t, err)
	b, err := GenerateRunID()
	require.NoError(t, err)

	assert.Len(t, a, runIDLength)
	assert.NotEqual(t, a, b)
}
