package letters

import (
	"testing"
	"time"
)

func TestFormatLetterDate(t *testing.T) {
	got := FormatLetterDate(time.Date(2025, time.June, 3, 0, 0, 0, 0, time.Local))
	if got != "3 de junio de 2025" {
		t.Fatalf("expected %q, got %q", "3 de junio de 2025", got)
	}
	if FormatLetterDate(time.Time{}) != "Sin fecha" {
		t.Fatal("zero time must render as Sin fecha")
	}
}

func TestFormatAmounts(t *testing.T) {
	cases := []struct {
		in   float64
		want string
	}{
		{1234567.5, "Bs. 1.234.567,50"},
		{900, "Bs. 900,00"},
		{0, "Bs. 0,00"},
		{-1500.25, "Bs. -1.500,25"},
	}
	for _, tc := range cases {
		if got := FormatCurrencyBs(tc.in); got != tc.want {
			t.Fatalf("FormatCurrencyBs(%v): expected %q, got %q", tc.in, tc.want, got)
		}
	}

	if got := FormatUSD(35000); got != "$us. 35.000,00" {
		t.Fatalf("FormatUSD: expected %q, got %q", "$us. 35.000,00", got)
	}
}

func TestReferenceNumber(t *testing.T) {
	ref := GenerateReferenceNumber(time.Date(2025, time.June, 1, 0, 0, 0, 0, time.Local))
	if ref != "SCPSA-____/2025" {
		t.Fatalf("expected SCPSA-____/2025, got %q", ref)
	}
	if !HasReferencePlaceholder(ref) {
		t.Fatal("fresh reference must carry the placeholder")
	}
	if HasReferencePlaceholder("SCPSA-0042/2025") {
		t.Fatal("completed reference must not be flagged")
	}
}

func TestLetterFileName(t *testing.T) {
	today := time.Date(2025, time.January, 15, 0, 0, 0, 0, time.Local)

	got := LetterFileName("José Ñandú Pérez", "salud", today)
	if got != "15012025-AVISO_SALUD_JOSE_NANDU_PEREZ.pdf" {
		t.Fatalf("unexpected file name: %q", got)
	}

	got = LetterFileName("TRANSPORTES ORIENTE S.R.L.", "general", today)
	if got != "15012025-AVISO_VCMTO_TRANSPORTES_ORIENTE_SRL.pdf" {
		t.Fatalf("unexpected file name: %q", got)
	}

	got = LetterFileName("日本語", "general", today)
	if got != "15012025-AVISO_VCMTO_SIN_NOMBRE.pdf" {
		t.Fatalf("non-latin name must fall back, got %q", got)
	}
}

func TestZipFileName(t *testing.T) {
	got := ZipFileName(time.Date(2025, time.June, 1, 0, 0, 0, 0, time.Local))
	if got != "Cartas_Vencimiento_2025-06-01.zip" {
		t.Fatalf("unexpected zip name: %q", got)
	}
}
