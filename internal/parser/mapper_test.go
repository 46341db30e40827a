package parser

import "testing"

func demoHeaders() []string {
	return []string{
		"NRO.",
		"FIN DE VIGENCIA (DD/MM/AAAA)",
		"COMPAÑÍA",
		"RAMO",
		"NO. PÓLIZA",
		"TELEFONO",
		"CORREO/DIRECCION",
		"ASEGURADO",
		"MATERIA ASEGURADA",
		"VALOR ASEGURADO",
		"PRIMA",
		"EJECUTIVO",
		"CARTA DE NO RENOV.",
		"NO RENUEVA",
		"RENUEVA",
		"PENDIENTE",
		"OBSERVACIONES",
	}
}

func TestParseNumber(t *testing.T) {
	cases := []struct {
		in   string
		want float64
	}{
		{"1234.56", 1234.56},
		{"$us 1,234.50", 1234.50},
		{"Bs 500", 500},
		{"-42", -42},
		{"", 0},
		{"sin valor", 0},
	}

	for _, tc := range cases {
		if got := ParseNumber(tc.in); got != tc.want {
			t.Fatalf("ParseNumber(%q): expected %v, got %v", tc.in, tc.want, got)
		}
	}
}

func TestNewRowMapper_RenuevaCollision(t *testing.T) {
	headers := demoHeaders()
	m := NewRowMapper(headers)

	row := make([]string, len(headers))
	for i := range row {
		row[i] = ""
	}
	row[13] = "X" // NO RENUEVA
	row[14] = "SI" // RENUEVA

	record := m.MapRow(row)
	if record.Renueva != "SI" {
		t.Fatalf("RENUEVA must resolve to its exact column, got %q", record.Renueva)
	}
	if record.NoRenueva != "X" {
		t.Fatalf("NO RENUEVA mis-mapped, got %q", record.NoRenueva)
	}
}

func TestMapRow_SentinelDefaults(t *testing.T) {
	m := NewRowMapper(demoHeaders())

	record := m.MapRow(make([]string, len(demoHeaders())))

	if record.Compania != SinEspecificar {
		t.Fatalf("empty compañía: expected %q, got %q", SinEspecificar, record.Compania)
	}
	if record.NoPoliza != SinNumero {
		t.Fatalf("empty póliza: expected %q, got %q", SinNumero, record.NoPoliza)
	}
	if record.Asegurado != SinNombre {
		t.Fatalf("empty asegurado: expected %q, got %q", SinNombre, record.Asegurado)
	}
	if record.Ejecutivo != SinAsignar {
		t.Fatalf("empty ejecutivo: expected %q, got %q", SinAsignar, record.Ejecutivo)
	}
}

func TestMapRow_ShortRow(t *testing.T) {
	m := NewRowMapper(demoHeaders())

	// Las filas reales suelen venir truncadas a la última celda con valor
	record := m.MapRow([]string{"1", "45809", "Alianza"})

	if record.FinDeVigencia != "45809" {
		t.Fatalf("expected raw serial preserved, got %q", record.FinDeVigencia)
	}
	if record.Compania != "Alianza" {
		t.Fatalf("expected Alianza, got %q", record.Compania)
	}
	if record.ValorAsegurado != 0 {
		t.Fatalf("missing cells must map to zero, got %v", record.ValorAsegurado)
	}
}

func TestIsEmptyRow(t *testing.T) {
	if !IsEmptyRow([]string{"", "  ", "\t"}) {
		t.Fatal("whitespace-only row must be empty")
	}
	if IsEmptyRow([]string{"", "x"}) {
		t.Fatal("row with content must not be empty")
	}
}
