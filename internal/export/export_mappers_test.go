package export_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-buk-export/internal/employee"
	"go-buk-export/internal/export"
)

func decode(t *testing.T, payload string) *employee.Record {
	t.Helper()
	var rec employee.Record
	require.NoError(t, json.Unmarshal([]byte(payload), &rec))
	return &rec
}

func TestMapGender(t *testing.T) {
	tests := []struct{ in, want string }{
		{"M", "1"}, {"male", "1"}, {"Masculino", "1"}, {"hombre", "1"},
		{"F", "2"}, {"female", "2"}, {"Femenino", "2"}, {"mujer", "2"},
		{"", ""}, {"otro", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, export.MapGender(tt.in), tt.in)
	}
}

func TestSalutation(t *testing.T) {
	assert.Equal(t, "Sr.", export.Salutation("M"))
	assert.Equal(t, "Sra.", export.Salutation("femenino"))
	assert.Equal(t, "", export.Salutation(""))
}

func TestContractTypeCode(t *testing.T) {
	tables := export.DefaultCodeTables()
	tests := []struct{ in, want string }{
		{"Indefinido", "P"},
		{"Contrato Indefinido", "P"},
		{"permanente", "P"},
		{"P", "P"},
		{"Plazo Fijo", "T"},
		{"Contrato a plazo fijo", "T"},
		{"Fixed Term", "T"},
		{"temporal", "T"},
		{"T", "T"},
		{"honorarios", ""},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, tables.ContractTypeCode(tt.in))
		})
	}
}

func TestContractIdentifier(t *testing.T) {
	tables := export.DefaultCodeTables()
	assert.Equal(t, "CHL-03", tables.ContractIdentifier("P"))
	assert.Equal(t, "CHL-04", tables.ContractIdentifier("T"))
	assert.Equal(t, "", tables.ContractIdentifier(""))
}

func TestContractStatus(t *testing.T) {
	tables := export.DefaultCodeTables()

	terminated := decode(t, `{"current_job":{"end_date":"2024-06-15"}}`)
	assert.Equal(t, "0", tables.ContractStatus(terminated))

	dormant := decode(t, `{"status":"Suspenso","current_job":{"start_date":"2022-01-01"}}`)
	assert.Equal(t, "1", tables.ContractStatus(dormant))

	active := decode(t, `{"status":"activo","current_job":{"start_date":"2022-01-01"}}`)
	assert.Equal(t, "3", tables.ContractStatus(active))
}

func TestEmployeeGroup(t *testing.T) {
	assert.Equal(t, "1", export.EmployeeGroup("Indefinido"))
	assert.Equal(t, "2", export.EmployeeGroup("fijo"))
	assert.Equal(t, "", export.EmployeeGroup("Plazo Fijo"))
	assert.Equal(t, "", export.EmployeeGroup(""))
}

func TestEmployeeCategory(t *testing.T) {
	assert.Equal(t, "Individual Contributor", export.EmployeeCategory("O"))
	assert.Equal(t, "Individual Contributor", export.EmployeeCategory(" o "))
	assert.Equal(t, "Management", export.EmployeeCategory("M2"))
	assert.Equal(t, "", export.EmployeeCategory(""))
}

func TestWorkforceType(t *testing.T) {
	t.Run("explicit numeric attribute wins", func(t *testing.T) {
		rec := decode(t, `{"custom_attributes":{"Workforce Type":"2","Tipo de Trabajador":"GASTO"}}`)
		assert.Equal(t, "2", export.WorkforceType(rec))
	})
	t.Run("derived from worker type", func(t *testing.T) {
		rec := decode(t, `{"custom_attributes":{"Tipo de Trabajador":"Gasto"}}`)
		assert.Equal(t, "1", export.WorkforceType(rec))
		rec = decode(t, `{"custom_attributes":{"Tipo de Trabajador":"COSTOS"}}`)
		assert.Equal(t, "2", export.WorkforceType(rec))
	})
	t.Run("unknown", func(t *testing.T) {
		assert.Equal(t, "", export.WorkforceType(decode(t, `{}`)))
	})
}

func TestExitReason(t *testing.T) {
	tables := export.DefaultCodeTables()

	t.Run("active employee has no reason", func(t *testing.T) {
		rec := decode(t, `{"custom_attributes":{"Exit Reason":"renuncia"}}`)
		assert.Equal(t, "", tables.ExitReason(rec, tables.NoExitDate))
	})

	t.Run("mapped attribute reason", func(t *testing.T) {
		rec := decode(t, `{"custom_attributes":{"Exit Reason":"Renuncia"}}`)
		assert.Equal(t, "01", tables.ExitReason(rec, "20240615"))
	})

	t.Run("job termination reason fallback", func(t *testing.T) {
		rec := decode(t, `{"current_job":{"end_date":"2024-06-15","termination_reason":"despido"}}`)
		assert.Equal(t, "02", tables.ExitReason(rec, "20240615"))
	})

	t.Run("root termination reason fallback", func(t *testing.T) {
		rec := decode(t, `{"termination_reason":"mutuo_acuerdo"}`)
		assert.Equal(t, "03", tables.ExitReason(rec, "20240615"))
	})

	t.Run("terminated employee always carries a code", func(t *testing.T) {
		rec := decode(t, `{"custom_attributes":{"Exit Reason":"razon desconocida"}}`)
		assert.Equal(t, "99", tables.ExitReason(rec, "20240615"))
		assert.Equal(t, "99", tables.ExitReason(decode(t, `{}`), "20240615"))
	})
}

func TestBankCode(t *testing.T) {
	tables := export.DefaultCodeTables()
	assert.Equal(t, "37", tables.BankCode("Santander"))
	assert.Equal(t, "1", tables.BankCode("banco de chile"))
	assert.Equal(t, "Banco Desconocido", tables.BankCode("Banco Desconocido"))
	assert.Equal(t, "", tables.BankCode("  "))
}

func TestNationalityCodes(t *testing.T) {
	t.Run("list wins entirely", func(t *testing.T) {
		rec := decode(t, `{"nationalities":["Chilena","Argentina"],"nationality":"peruana"}`)
		n1, n2, n3 := export.NationalityCodes(rec)
		assert.Equal(t, "CL", n1)
		assert.Equal(t, "AR", n2)
		assert.Equal(t, "", n3)
	})

	t.Run("single string", func(t *testing.T) {
		n1, n2, n3 := export.NationalityCodes(decode(t, `{"nationality":"Chile"}`))
		assert.Equal(t, "CL", n1)
		assert.Equal(t, "", n2)
		assert.Equal(t, "", n3)
	})

	t.Run("custom attributes", func(t *testing.T) {
		rec := decode(t, `{"custom_attributes":{"Nationality 1":"CL","Nationality 2":"DE"}}`)
		n1, n2, n3 := export.NationalityCodes(rec)
		assert.Equal(t, "CL", n1)
		assert.Equal(t, "DE", n2)
		assert.Equal(t, "", n3)
	})
}

func TestTargetIncentive(t *testing.T) {
	tables := export.DefaultCodeTables()
	assert.Equal(t, "NOT_APPLICABLE", tables.TargetIncentive(""))
	assert.Equal(t, "NOT_APPLICABLE", tables.TargetIncentive("0"))
	assert.Equal(t, "NOT_APPLICABLE", tables.TargetIncentive("0.00"))
	assert.Equal(t, "1500000", tables.TargetIncentive("1500000"))
	assert.Equal(t, "n/a raw", tables.TargetIncentive("n/a raw"))
}

func TestSplitSurnameAffixes(t *testing.T) {
	tables := export.DefaultCodeTables()
	tests := []struct {
		name       string
		in         string
		wantPrefix string
		wantSuffix string
	}{
		{"longer particle wins", "de la Fuente", "de la", ""},
		{"single particle", "del Valle", "del", ""},
		{"generational suffix", "Soto Jr.", "", "Jr."},
		{"both", "de la Cruz III", "de la", "III"},
		{"plain surname", "González", "", ""},
		{"empty", "", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prefix, suffix := tables.SplitSurnameAffixes(tt.in)
			assert.Equal(t, tt.wantPrefix, prefix)
			assert.Equal(t, tt.wantSuffix, suffix)
		})
	}
}
