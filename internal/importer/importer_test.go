package importer

import (
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/xuri/excelize/v2"

	"github.com/patriasa-sist/cartas-vencimiento/internal/config"
	"github.com/patriasa-sist/cartas-vencimiento/internal/model"
)

var testHeaders = []interface{}{
	"NRO.", "FIN DE VIGENCIA", "COMPAÑÍA", "RAMO", "NO. PÓLIZA",
	"TELEFONO", "CORREO/DIRECCION", "ASEGURADO", "MATERIA ASEGURADA",
	"VALOR ASEGURADO", "PRIMA", "EJECUTIVO",
}

func buildWorkbook(t *testing.T, rows [][]interface{}) []byte {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	if err := f.SetSheetRow(sheet, "A1", &testHeaders); err != nil {
		t.Fatalf("set headers: %v", err)
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			t.Fatalf("cell name: %v", err)
		}
		r := row
		if err := f.SetSheetRow(sheet, cell, &r); err != nil {
			t.Fatalf("set row %d: %v", i+2, err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatalf("write workbook: %v", err)
	}
	return buf.Bytes()
}

func dataRow(poliza, asegurado string) []interface{} {
	return []interface{}{
		1, "15/07/2025", "Alianza Seguros", "AUTOMOTORES", poliza,
		"70012345", "cliente@example.com", asegurado, "TOYOTA HILUX 2022",
		35000, 1200, "MARIA LOPEZ",
	}
}

func newTestImporter() *Importer {
	return NewImporter(config.DefaultConfig(), zerolog.Nop())
}

func TestProcessFile_Success(t *testing.T) {
	data := buildWorkbook(t, [][]interface{}{
		dataRow("AUT-001", "JUAN PEREZ"),
		dataRow("AUT-002", "ANA SUAREZ"),
	})

	today := time.Date(2025, time.July, 1, 0, 0, 0, 0, time.Local)
	result := newTestImporter().ProcessFile("planilla.xlsx", data, today)

	if !result.Success {
		t.Fatalf("expected success, errors: %v", result.Errors)
	}
	if result.ValidRecords != 2 || result.TotalRecords != 2 {
		t.Fatalf("expected 2/2 records, got %d/%d", result.ValidRecords, result.TotalRecords)
	}

	first := result.Data[0]
	if first.DaysUntilExpiry != 14 {
		t.Fatalf("expected 14 days until expiry, got %d", first.DaysUntilExpiry)
	}
	if first.Status != model.StatusDueSoon {
		t.Fatalf("expected due_soon, got %s", first.Status)
	}
}

func TestProcessFile_EmptyRowsAndBadRowsDegrade(t *testing.T) {
	data := buildWorkbook(t, [][]interface{}{
		dataRow("AUT-001", "JUAN PEREZ"),
		{"", "", "", "", "", "", "", "", "", "", "", ""},
		{2, "sin fecha", "Alianza Seguros", "AUTOMOTORES", "AUT-003",
			"", "", "CARLOS MAMANI", "", 0, 0, "MARIA LOPEZ"},
	})

	result := newTestImporter().ProcessFile("planilla.xlsx", data, time.Now())

	if !result.Success {
		t.Fatalf("one valid row must keep the batch alive, errors: %v", result.Errors)
	}
	if result.ValidRecords != 1 {
		t.Fatalf("expected 1 valid record, got %d", result.ValidRecords)
	}
	if len(result.Errors) == 0 {
		t.Fatal("invalid-date row must be reported")
	}
	foundEmpty := false
	for _, w := range result.Warnings {
		if strings.Contains(w, "Fila vacía") {
			foundEmpty = true
		}
	}
	if !foundEmpty {
		t.Fatalf("empty row must produce a warning, got %v", result.Warnings)
	}
}

func TestProcessFile_DuplicatePolicyIsWarningNotError(t *testing.T) {
	data := buildWorkbook(t, [][]interface{}{
		dataRow("AUT-001", "JUAN PEREZ"),
		dataRow("AUT-001", "JUAN PEREZ"),
	})

	result := newTestImporter().ProcessFile("planilla.xlsx", data, time.Now())

	if !result.Success {
		t.Fatalf("duplicates must not fail the batch: %v", result.Errors)
	}
	if result.ValidRecords != 2 {
		t.Fatalf("duplicates are kept, expected 2 records, got %d", result.ValidRecords)
	}
	found := false
	for _, w := range result.Warnings {
		if strings.Contains(w, "Póliza duplicada: AUT-001") {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected duplicate warning, got %v", result.Warnings)
	}
}

func TestProcessFile_MissingHeadersFatal(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)
	headers := []interface{}{"NRO.", "COMPAÑÍA", "RAMO"}
	if err := f.SetSheetRow(sheet, "A1", &headers); err != nil {
		t.Fatalf("set headers: %v", err)
	}
	row := []interface{}{1, "Alianza", "AUTOMOTORES"}
	if err := f.SetSheetRow(sheet, "A2", &row); err != nil {
		t.Fatalf("set row: %v", err)
	}
	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatalf("write workbook: %v", err)
	}

	result := newTestImporter().ProcessFile("planilla.xlsx", buf.Bytes(), time.Now())
	if result.Success {
		t.Fatal("missing required headers must abort the batch")
	}
	if len(result.Errors) == 0 || !strings.Contains(result.Errors[0], "Cabeceras faltantes") {
		t.Fatalf("expected missing headers error, got %v", result.Errors)
	}
}

func TestProcessFile_RejectsWrongExtensionAndSize(t *testing.T) {
	im := newTestImporter()

	if result := im.ProcessFile("datos.csv", []byte("a,b"), time.Now()); result.Success {
		t.Fatal("csv extension must be rejected")
	}

	cfg := config.DefaultConfig()
	cfg.Upload.MaxSizeMB = 0
	small := NewImporter(cfg, zerolog.Nop())
	if result := small.ProcessFile("planilla.xlsx", []byte{1, 2, 3}, time.Now()); result.Success {
		t.Fatal("oversize file must be rejected")
	}
}

func TestProcessFile_HeaderOnlyFatal(t *testing.T) {
	data := buildWorkbook(t, nil)

	result := newTestImporter().ProcessFile("planilla.xlsx", data, time.Now())
	if result.Success {
		t.Fatal("header-only workbook must fail")
	}
}

func TestProcessFile_CorruptFileFatal(t *testing.T) {
	result := newTestImporter().ProcessFile("planilla.xlsx", []byte("esto no es un xlsx"), time.Now())
	if result.Success {
		t.Fatal("corrupt workbook must fail as ingestion error")
	}
	if len(result.Errors) == 0 {
		t.Fatal("expected descriptive error")
	}
}
