package normalize_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"go-buk-export/internal/normalize"
)

func TestKey(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"lowercases", "Fecha de Ingreso", "fecha de ingreso"},
		{"folds diacritics", "Años de Servicio", "anos de servicio"},
		{"separators become spaces", "NIVEL_PAGO-LOCAL", "nivel pago local"},
		{"collapses whitespace", "  Nivel   de  Pago ", "nivel de pago"},
		{"nbsp", "Nivel de Pago", "nivel de pago"},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, normalize.Key(tt.in))
		})
	}
}

func TestKeyEquatesSpellings(t *testing.T) {
	// all spellings observed for the same logical field must collide
	spellings := []string{"Nivel de Pago Local", "nivel_de_pago_local", "NIVEL-DE-PAGO-LOCAL", "Nível de Pago Local"}
	want := normalize.Key(spellings[0])
	for _, s := range spellings[1:] {
		assert.Equal(t, want, normalize.Key(s), s)
	}
}

func TestDate(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"iso", "2024-06-15", "20240615"},
		{"chilean", "15/06/2024", "20240615"},
		{"slashed iso", "2024/06/15", "20240615"},
		{"dashed chilean", "15-06-2024", "20240615"},
		{"already normalized", "20240615", "20240615"},
		{"whitespace", "  2024-06-15 ", "20240615"},
		{"unparseable", "junio 2024", ""},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, normalize.Date(tt.in))
		})
	}
}

func TestDateOrDefault(t *testing.T) {
	assert.Equal(t, "20240615", normalize.DateOrDefault("2024-06-15", "99991231"))
	assert.Equal(t, "99991231", normalize.DateOrDefault("", "99991231"))
	assert.Equal(t, "99991231", normalize.DateOrDefault("not a date", "99991231"))
}

func TestDecimalTwoPlaces(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"chilean locale", "1.234,56", "1234.56"},
		{"us locale", "1,234.56", "1234.56"},
		{"lone decimal comma", "10,5", "10.50"},
		{"lone thousands comma", "1,234", "1234.00"},
		{"plain integer", "1000", "1000.00"},
		{"already two places", "45.00", "45.00"},
		{"negative", "-12,5", "-12.50"},
		{"bool true", "true", "1.00"},
		{"bool false", "false", "0.00"},
		{"zero survives", "0", "0.00"},
		{"unparseable passes through", "N/A", "N/A"},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, normalize.DecimalTwoPlaces(tt.in))
		})
	}
}

func TestASCII(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"diacritics", "José Martínez", "Jose Martinez"},
		{"enye survives", "Peña Ñuñoa", "Pena Nunoa"},
		{"dashes", "Gerencia – Finanzas", "Gerencia - Finanzas"},
		{"smart quotes", "“La Florida”", `"La Florida"`},
		{"ordinals", "1º piso, oficina 2ª", "1o piso, oficina 2a"},
		{"collapses whitespace", "  dos   palabras ", "dos palabras"},
		{"plain ascii untouched", "Av. Providencia 1234", "Av. Providencia 1234"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, normalize.ASCII(tt.in))
		})
	}
}

func TestCountry(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"chile word", "Chile", "CL"},
		{"chilean feminine", "chilena", "CL"},
		{"legacy CH", "CH", "CL"},
		{"alpha-2 passthrough", "ar", "AR"},
		{"long name truncates", "Argentina", "AR"},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, normalize.Country(tt.in))
		})
	}
}

func TestCountryOfBirth(t *testing.T) {
	table := map[string]string{"CL": "CHL", "AR": "ARG"}
	assert.Equal(t, "CHL", normalize.CountryOfBirth("cl", table))
	assert.Equal(t, "ARG", normalize.CountryOfBirth("AR", table))
	assert.Equal(t, "XX", normalize.CountryOfBirth("XX", table))
	assert.Equal(t, "", normalize.CountryOfBirth("", table))
}
