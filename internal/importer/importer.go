package importer

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/xuri/excelize/v2"

	"github.com/patriasa-sist/cartas-vencimiento/internal/config"
	"github.com/patriasa-sist/cartas-vencimiento/internal/model"
	"github.com/patriasa-sist/cartas-vencimiento/internal/parser"
)

// requiredHeaders cabeceras obligatorias, verificadas por contención
// sin distinguir mayúsculas (las planillas traen anotaciones extra)
var requiredHeaders = []string{
	"FIN DE VIGENCIA",
	"COMPAÑÍA",
	"NO. PÓLIZA",
	"ASEGURADO",
	"EJECUTIVO",
}

// Importer pipeline de ingesta de planillas
type Importer struct {
	cfg    *config.AppConfig
	logger zerolog.Logger
}

// NewImporter crea el pipeline de ingesta
func NewImporter(cfg *config.AppConfig, logger zerolog.Logger) *Importer {
	return &Importer{
		cfg:    cfg,
		logger: logger.With().Str("component", "importer").Logger(),
	}
}

// ProcessFile procesa un archivo Excel completo y devuelve el resultado
// agregado. Los únicos errores fatales (que abortan el lote) son tamaño,
// tipo de archivo, libro vacío, filas insuficientes y cabeceras
// faltantes; todo problema por fila degrada el resultado sin abortarlo.
func (im *Importer) ProcessFile(filename string, data []byte, today time.Time) *model.UploadResult {
	if int64(len(data)) > im.cfg.MaxUploadBytes() {
		return &model.UploadResult{
			Success: false,
			Errors: []string{fmt.Sprintf(
				"El archivo es demasiado grande. Tamaño máximo: %dMB", im.cfg.Upload.MaxSizeMB)},
		}
	}

	if !im.cfg.ExtensionAllowed(filename) {
		return &model.UploadResult{
			Success: false,
			Errors: []string{fmt.Sprintf(
				"Tipo de archivo no soportado. Tipos permitidos: %v", im.cfg.Upload.AllowedExtensions)},
		}
	}

	file, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		// I/O irrecuperable sobre el archivo: se convierte en error fatal
		// de ingesta en vez de propagarse como excepción.
		im.logger.Error().Err(err).Str("file", filename).Msg("no se pudo abrir el libro")
		return &model.UploadResult{
			Success: false,
			Errors:  []string{"Error al procesar el archivo Excel", err.Error()},
		}
	}
	defer file.Close()

	sheets := file.GetSheetList()
	if len(sheets) == 0 {
		return &model.UploadResult{
			Success: false,
			Errors:  []string{"El archivo Excel no contiene hojas válidas"},
		}
	}

	// Solo se lee la primera hoja (usualmente el mes corriente).
	// RawCellValue entrega los seriales de fecha sin formatear.
	sheet := sheets[0]
	rows, err := file.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return &model.UploadResult{
			Success: false,
			Errors:  []string{"Error al procesar el archivo Excel", err.Error()},
		}
	}

	if len(rows) < 2 {
		return &model.UploadResult{
			Success: false,
			Errors:  []string{"El archivo no contiene datos suficientes (mínimo: cabeceras + 1 fila de datos)"},
		}
	}

	headers := rows[0]
	if missing := missingRequiredHeaders(headers); len(missing) > 0 {
		return &model.UploadResult{
			Success: false,
			Errors:  []string{fmt.Sprintf("Cabeceras faltantes: %v", missing)},
		}
	}

	mapper := parser.NewRowMapper(headers)

	var (
		records  []model.ProcessedInsuranceRecord
		errors   []string
		warnings []string
	)

	for i, row := range rows[1:] {
		rowNumber := i + 2

		if parser.IsEmptyRow(row) {
			warnings = append(warnings, fmt.Sprintf("Fila %d: Fila vacía, se omitirá", rowNumber))
			continue
		}

		record, rowErrs := im.processRow(mapper, row, rowNumber, today)
		if len(rowErrs) > 0 {
			errors = append(errors, rowErrs...)
			continue
		}
		records = append(records, *record)
	}

	if len(records) == 0 {
		return &model.UploadResult{
			Success:      false,
			Errors:       append([]string{"No se pudieron procesar registros válidos"}, errors...),
			Warnings:     warnings,
			TotalRecords: len(rows) - 1,
		}
	}

	warnings = append(warnings, duplicatePolicyWarnings(records)...)

	im.logger.Info().
		Str("file", filename).
		Int("total", len(rows)-1).
		Int("valid", len(records)).
		Int("errors", len(errors)).
		Int("warnings", len(warnings)).
		Msg("ingesta completada")

	return &model.UploadResult{
		Success:      true,
		Data:         records,
		Errors:       errors,
		Warnings:     warnings,
		TotalRecords: len(rows) - 1,
		ValidRecords: len(records),
	}
}

// processRow mapea, valida y procesa una sola fila. Un pánico durante
// el procesamiento se captura como error de fila: una fila mala nunca
// aborta el lote.
func (im *Importer) processRow(mapper *parser.RowMapper, row []string, rowNumber int, today time.Time) (record *model.ProcessedInsuranceRecord, errs []string) {
	defer func() {
		if r := recover(); r != nil {
			im.logger.Warn().Int("fila", rowNumber).Any("panic", r).Msg("fila descartada por error inesperado")
			record = nil
			errs = []string{fmt.Sprintf("Fila %d: Error al procesar - %v", rowNumber, r)}
		}
	}()

	mapped := mapper.MapRow(row)

	valid, validationErrs := parser.Validate(mapped, rowNumber)
	if !valid {
		return nil, validationErrs
	}

	processed := parser.ProcessRecord(mapped, today, im.cfg.Business)
	return &processed, nil
}

// duplicatePolicyWarnings detecta números de póliza repetidos entre los
// registros válidos. Los duplicados se reportan, no se eliminan.
func duplicatePolicyWarnings(records []model.ProcessedInsuranceRecord) []string {
	seen := make(map[string]bool, len(records))
	var warnings []string

	for i, record := range records {
		if seen[record.NoPoliza] {
			warnings = append(warnings, fmt.Sprintf(
				"Póliza duplicada: %s (fila %d)", record.NoPoliza, i+2))
			continue
		}
		seen[record.NoPoliza] = true
	}

	return warnings
}

func missingRequiredHeaders(headers []string) []string {
	var missing []string
	for _, want := range requiredHeaders {
		found := false
		for _, h := range headers {
			if containsFold(h, want) {
				found = true
				break
			}
		}
		if !found {
			missing = append(missing, want)
		}
	}
	return missing
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToUpper(strings.TrimSpace(haystack)), strings.ToUpper(needle))
}
