package parser

import (
	"testing"
	"time"
)

func TestExcelSerialToDate_LeapBugCorrection(t *testing.T) {
	// 1900 no fue bisiesto pero Excel cuenta un 29-feb-1900 ficticio:
	// los seriales 59 y 61 son fechas calendario consecutivas.
	feb28 := ExcelSerialToDate(59)
	mar1 := ExcelSerialToDate(61)

	if feb28.Month() != time.February || feb28.Day() != 28 || feb28.Year() != 1900 {
		t.Fatalf("serial 59: expected 28-feb-1900, got %v", feb28)
	}
	if mar1.Month() != time.March || mar1.Day() != 1 || mar1.Year() != 1900 {
		t.Fatalf("serial 61: expected 1-mar-1900, got %v", mar1)
	}
	if mar1.Sub(feb28) != 24*time.Hour {
		t.Fatalf("serials 59 and 61 should be one calendar day apart, got %v", mar1.Sub(feb28))
	}

	// El serial 60 (el día fantasma) colapsa sobre el 28-feb y queda a
	// exactamente un día del serial 61: la corrección se aplica una sola vez
	phantom := ExcelSerialToDate(60)
	if !phantom.Equal(feb28) {
		t.Fatalf("serial 60: expected 28-feb-1900, got %v", phantom)
	}
	if mar1.Sub(phantom) != 24*time.Hour {
		t.Fatalf("serials 60 and 61 must be one day apart, got %v", mar1.Sub(phantom))
	}
}

func TestExcelSerialToDate_ModernDate(t *testing.T) {
	got := ExcelSerialToDate(45658)
	if got.Year() != 2025 || got.Month() != time.January || got.Day() != 1 {
		t.Fatalf("serial 45658: expected 1-ene-2025, got %v", got)
	}
}

func TestNormalizeExpiryDate_Variants(t *testing.T) {
	want := time.Date(2025, time.June, 1, 0, 0, 0, 0, time.Local)

	cases := []struct {
		name  string
		value any
	}{
		{"serial float", float64(45809)},
		{"serial string", "45809"},
		{"texto DD/MM/YYYY", "01/06/2025"},
		{"texto D/M/YYYY", "1/6/2025"},
		{"texto ISO", "2025-06-01"},
		{"texto con espacios", " 1 / 6 / 2025 "},
		{"fecha ya decodificada", time.Date(2025, time.June, 1, 15, 30, 0, 0, time.Local)},
	}

	for _, tc := range cases {
		got := NormalizeExpiryDate(tc.value)
		if !got.Equal(want) {
			t.Fatalf("%s: expected %v, got %v", tc.name, want, got)
		}
	}
}

func TestNormalizeExpiryDate_DecodedDateKeepsCalendarDay(t *testing.T) {
	// Una fecha decodificada en una zona con offset positivo queda antes
	// de la medianoche UTC; la re-derivación del serial no debe retroceder
	// un día por eso.
	zones := []*time.Location{
		time.UTC,
		time.FixedZone("BOT", -4*3600),
		time.FixedZone("CEST", 2*3600),
		time.FixedZone("NPT", 5*3600+45*60),
	}

	for _, loc := range zones {
		decoded := time.Date(2025, time.June, 1, 0, 0, 0, 0, loc)
		got := NormalizeExpiryDate(decoded)
		if got.Year() != 2025 || got.Month() != time.June || got.Day() != 1 {
			t.Fatalf("zona %s: expected 2025-06-01, got %v", loc, got)
		}
	}
}

func TestNormalizeExpiryDate_Invalid(t *testing.T) {
	for _, value := range []any{"", "no es fecha", "13/13/2025", nil, true} {
		if got := NormalizeExpiryDate(value); !got.IsZero() {
			t.Fatalf("value %v: expected zero time, got %v", value, got)
		}
	}
}

func TestDaysUntil(t *testing.T) {
	today := time.Date(2025, time.June, 1, 14, 45, 0, 0, time.Local)

	cases := []struct {
		expiry time.Time
		want   int
	}{
		{time.Date(2025, time.June, 1, 0, 0, 0, 0, time.Local), 0},
		{time.Date(2025, time.June, 2, 23, 59, 0, 0, time.Local), 1},
		{time.Date(2025, time.May, 31, 0, 0, 0, 0, time.Local), -1},
		{time.Date(2025, time.July, 1, 0, 0, 0, 0, time.Local), 30},
		{time.Date(2026, time.June, 1, 0, 0, 0, 0, time.Local), 365},
	}

	for _, tc := range cases {
		if got := DaysUntil(tc.expiry, today); got != tc.want {
			t.Fatalf("DaysUntil(%v): expected %d, got %d", tc.expiry, tc.want, got)
		}
	}
}
