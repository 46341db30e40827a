package exporter

import (
	"archive/zip"
	"bytes"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/patriasa-sist/cartas-vencimiento/internal/letters"
	"github.com/patriasa-sist/cartas-vencimiento/internal/model"
	"github.com/patriasa-sist/cartas-vencimiento/internal/pdf"
)

// ExportOptions parámetros de una generación por lote
type ExportOptions struct {
	Letters  []model.LetterData
	Today    time.Time
	Progress func(ProgressEvent)
}

// ExportOutput paquete ZIP terminado más el detalle por carta
type ExportOutput struct {
	Result   model.GenerationResult
	ZipBytes []byte
	ZipName  string
}

// Exporter genera los PDF de un lote de cartas y los empaqueta en un ZIP
type Exporter struct {
	renderer *pdf.Renderer
	logger   zerolog.Logger
}

func NewExporter(logger zerolog.Logger) *Exporter {
	return &Exporter{
		renderer: pdf.NewRenderer(),
		logger:   logger.With().Str("component", "exporter").Logger(),
	}
}

// Export renderiza cada carta y arma el ZIP. Una carta que falla al
// renderizar se registra como error y no interrumpe el resto del lote.
func (e *Exporter) Export(opts ExportOptions) (*ExportOutput, error) {
	if len(opts.Letters) == 0 {
		return nil, fmt.Errorf("no hay cartas para generar")
	}

	reportProgress(opts.Progress, 0, "Iniciando generación de cartas")

	result := model.GenerationResult{
		Letters: make([]model.GeneratedLetter, 0, len(opts.Letters)),
		Errors:  []string{},
	}

	var zipBuf bytes.Buffer
	zw := zip.NewWriter(&zipBuf)
	usedNames := make(map[string]int)

	total := len(opts.Letters)
	for i, letter := range opts.Letters {
		reportProgress(opts.Progress, (i*90)/total,
			fmt.Sprintf("Generando carta %d de %d: %s", i+1, total, letter.Client.Name))

		pdfBytes, err := e.renderer.Render(letter)
		if err != nil {
			e.logger.Error().Err(err).Str("letterId", letter.ID).Msg("error al renderizar carta")
			result.Errors = append(result.Errors,
				fmt.Sprintf("Carta de %s: %v", letter.Client.Name, err))
			continue
		}

		fileName := uniqueFileName(usedNames,
			letters.LetterFileName(letter.Client.Name, string(letter.TemplateType), opts.Today))

		w, err := zw.Create(fileName)
		if err != nil {
			result.Errors = append(result.Errors,
				fmt.Sprintf("Carta de %s: no se pudo agregar al ZIP: %v", letter.Client.Name, err))
			continue
		}
		if _, err := w.Write(pdfBytes); err != nil {
			result.Errors = append(result.Errors,
				fmt.Sprintf("Carta de %s: no se pudo escribir en el ZIP: %v", letter.Client.Name, err))
			continue
		}

		result.Letters = append(result.Letters, model.GeneratedLetter{
			LetterID:     letter.ID,
			ClientName:   letter.Client.Name,
			TemplateType: letter.TemplateType,
			FileName:     fileName,
			PolicyCount:  len(letter.Policies),
			NeedsReview:  letter.NeedsReview,
			MissingData:  letter.MissingData,
		})
	}

	reportProgress(opts.Progress, 95, "Empaquetando archivo ZIP")
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("cerrando ZIP: %w", err)
	}

	result.TotalGenerated = len(result.Letters)
	result.Success = result.TotalGenerated > 0

	if !result.Success {
		return nil, fmt.Errorf("ninguna carta pudo generarse: %d errores", len(result.Errors))
	}

	reportProgress(opts.Progress, 100, "Generación completa")
	e.logger.Info().
		Int("generated", result.TotalGenerated).
		Int("errors", len(result.Errors)).
		Msg("lote de cartas generado")

	return &ExportOutput{
		Result:   result,
		ZipBytes: zipBuf.Bytes(),
		ZipName:  letters.ZipFileName(opts.Today),
	}, nil
}

// RenderOne renderiza una sola carta para vista previa o descarga directa
func (e *Exporter) RenderOne(letter model.LetterData, today time.Time) ([]byte, string, error) {
	pdfBytes, err := e.renderer.Render(letter)
	if err != nil {
		return nil, "", err
	}
	fileName := letters.LetterFileName(letter.Client.Name, string(letter.TemplateType), today)
	return pdfBytes, fileName, nil
}

// uniqueFileName evita colisiones dentro del ZIP cuando dos clientes
// sanitizan al mismo nombre
func uniqueFileName(used map[string]int, name string) string {
	n := used[name]
	used[name] = n + 1
	if n == 0 {
		return name
	}
	ext := ".pdf"
	base := name[:len(name)-len(ext)]
	return fmt.Sprintf("%s_%d%s", base, n+1, ext)
}
