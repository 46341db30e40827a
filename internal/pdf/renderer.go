package pdf

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"

	"github.com/patriasa-sist/cartas-vencimiento/internal/letters"
	"github.com/patriasa-sist/cartas-vencimiento/internal/model"
)

// Colores corporativos
var (
	patriaBlue  = [3]int{23, 37, 84}
	patriaGreen = [3]int{22, 163, 74}
	borderGray  = [3]int{229, 231, 235}
	textGray    = [3]int{107, 114, 128}
	alertRed    = [3]int{220, 38, 38}
)

// Renderer renderiza cartas de aviso como PDF tamaño carta
type Renderer struct{}

// NewRenderer crea el renderizador
func NewRenderer() *Renderer {
	return &Renderer{}
}

// Render produce el PDF de una carta. Una carta con datos faltantes se
// renderiza igual, con el marcador de revisión manual visible.
func (r *Renderer) Render(letter model.LetterData) ([]byte, error) {
	if len(letter.Policies) == 0 {
		return nil, fmt.Errorf("carta %s sin pólizas", letter.ID)
	}

	doc := gofpdf.New("P", "mm", "Letter", "")
	doc.SetMargins(21, 21, 21)
	doc.SetAutoPageBreak(true, 21)
	doc.AddPage()

	// Las cadenas del dominio traen tildes y eñes; Helvetica usa cp1252
	tr := doc.UnicodeTranslatorFromDescriptor("")

	r.drawHeader(doc, tr, letter)
	r.drawClientBlock(doc, tr, letter)

	if letter.TemplateType == model.TemplateSalud {
		r.drawHealthBody(doc, tr, letter)
	} else {
		r.drawGeneralBody(doc, tr, letter)
	}

	r.drawConditions(doc, tr, letter)
	if letter.NeedsReview {
		r.drawReviewMarker(doc, tr, letter)
	}
	r.drawSignature(doc, tr, letter)

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, fmt.Errorf("renderizando carta %s: %w", letter.ID, err)
	}
	return buf.Bytes(), nil
}

func (r *Renderer) drawHeader(doc *gofpdf.Fpdf, tr func(string) string, letter model.LetterData) {
	doc.SetTextColor(patriaBlue[0], patriaBlue[1], patriaBlue[2])
	doc.SetFont("Helvetica", "B", 14)
	doc.CellFormat(0, 8, tr("PATRIA S.A. CORREDORES DE SEGUROS"), "", 1, "C", false, 0, "")

	doc.SetFont("Helvetica", "", 10)
	doc.SetTextColor(textGray[0], textGray[1], textGray[2])
	doc.CellFormat(0, 5, tr("Aviso de Vencimiento de Póliza"), "", 1, "C", false, 0, "")
	doc.Ln(6)

	doc.SetTextColor(0, 0, 0)
	doc.SetFont("Helvetica", "", 10)
	doc.CellFormat(0, 5, tr("Ref.: "+letter.ReferenceNumber), "", 1, "L", false, 0, "")
	doc.CellFormat(0, 5, tr("Santa Cruz, "+letter.Date), "", 1, "L", false, 0, "")
	doc.Ln(4)
}

func (r *Renderer) drawClientBlock(doc *gofpdf.Fpdf, tr func(string) string, letter model.LetterData) {
	doc.SetFont("Helvetica", "B", 10)
	doc.CellFormat(0, 5, tr("Señor(es):"), "", 1, "L", false, 0, "")
	doc.CellFormat(0, 5, tr(letter.Client.Name), "", 1, "L", false, 0, "")

	doc.SetFont("Helvetica", "", 9)
	if letter.Client.Phone != "" {
		doc.CellFormat(0, 5, tr("Teléfono: "+letter.Client.Phone), "", 1, "L", false, 0, "")
	}
	if letter.Client.Email != "" {
		doc.CellFormat(0, 5, tr(letter.Client.Email), "", 1, "L", false, 0, "")
	}
	doc.Ln(3)

	doc.SetFont("Helvetica", "", 10)
	doc.MultiCell(0, 5, tr("De nuestra mayor consideración:\n\n"+
		"Por medio de la presente le recordamos el próximo vencimiento de la(s) "+
		"póliza(s) detallada(s) a continuación, a fin de coordinar oportunamente su renovación."),
		"", "L", false)
	doc.Ln(4)
}

func (r *Renderer) drawGeneralBody(doc *gofpdf.Fpdf, tr func(string) string, letter model.LetterData) {
	headers := []string{"FECHA DE VENCIMIENTO", "No. DE PÓLIZA", "COMPAÑÍA", "RAMO", "VALOR ASEGURADO"}
	widths := []float64{30, 30, 35, 40, 39}

	doc.SetFillColor(patriaBlue[0], patriaBlue[1], patriaBlue[2])
	doc.SetTextColor(255, 255, 255)
	doc.SetFont("Helvetica", "B", 7)
	for i, h := range headers {
		doc.CellFormat(widths[i], 7, tr(h), "1", 0, "C", true, 0, "")
	}
	doc.Ln(-1)

	doc.SetTextColor(0, 0, 0)
	doc.SetFont("Helvetica", "", 7)
	doc.SetDrawColor(borderGray[0], borderGray[1], borderGray[2])
	for _, p := range letter.Policies {
		doc.CellFormat(widths[0], 6, tr(p.ExpiryDate), "1", 0, "C", false, 0, "")
		doc.CellFormat(widths[1], 6, tr(p.PolicyNumber), "1", 0, "C", false, 0, "")
		doc.CellFormat(widths[2], 6, tr(p.Company), "1", 0, "C", false, 0, "")
		doc.CellFormat(widths[3], 6, tr(p.Branch), "1", 0, "C", false, 0, "")
		doc.CellFormat(widths[4], 6, tr(letters.FormatUSD(p.ManualFields.InsuredValue)), "1", 1, "C", false, 0, "")

		for j, v := range p.ManualFields.Vehicles {
			declared := "a declarar"
			if v.DeclaredValue > 0 {
				declared = letters.FormatUSD(v.DeclaredValue)
			}
			doc.SetFont("Helvetica", "I", 7)
			doc.CellFormat(widths[0]+widths[1], 5,
				tr(fmt.Sprintf("  Vehículo %d: %s", j+1, v.Description)), "1", 0, "L", false, 0, "")
			doc.CellFormat(widths[2]+widths[3]+widths[4], 5,
				tr(fmt.Sprintf("Asegurado: %s / Declarado: %s", letters.FormatUSD(v.InsuredValue), declared)),
				"1", 1, "L", false, 0, "")
			doc.SetFont("Helvetica", "", 7)
		}
	}
	doc.Ln(4)
}

func (r *Renderer) drawHealthBody(doc *gofpdf.Fpdf, tr func(string) string, letter model.LetterData) {
	for i, p := range letter.Policies {
		doc.SetFont("Helvetica", "B", 9)
		doc.SetTextColor(patriaGreen[0], patriaGreen[1], patriaGreen[2])
		doc.CellFormat(0, 6, tr(fmt.Sprintf("Póliza %d: %s — %s", i+1, p.PolicyNumber, p.Company)), "", 1, "L", false, 0, "")

		doc.SetTextColor(0, 0, 0)
		doc.SetFont("Helvetica", "", 9)
		doc.CellFormat(0, 5, tr("Ramo: "+p.Branch), "", 1, "L", false, 0, "")
		doc.CellFormat(0, 5, tr("Fecha de vencimiento: "+p.ExpiryDate), "", 1, "L", false, 0, "")

		premium := "A confirmar"
		if p.ManualFields.RenewalPremium > 0 {
			premium = letters.FormatUSD(p.ManualFields.RenewalPremium)
		}
		doc.CellFormat(0, 5, tr("Prima de renovación anual: "+premium), "", 1, "L", false, 0, "")

		if len(p.InsuredMembers) > 0 {
			doc.SetFont("Helvetica", "B", 9)
			doc.CellFormat(0, 5, tr("Asegurados:"), "", 1, "L", false, 0, "")
			doc.SetFont("Helvetica", "", 9)
			for _, member := range p.InsuredMembers {
				doc.CellFormat(0, 5, tr("  • "+member), "", 1, "L", false, 0, "")
			}
		}
		doc.Ln(3)
	}
}

func (r *Renderer) drawConditions(doc *gofpdf.Fpdf, tr func(string) string, letter model.LetterData) {
	if letter.AdditionalConditions == "" {
		return
	}
	doc.SetFillColor(248, 249, 250)
	doc.SetDrawColor(borderGray[0], borderGray[1], borderGray[2])
	doc.SetFont("Helvetica", "B", 8)
	doc.SetTextColor(patriaBlue[0], patriaBlue[1], patriaBlue[2])
	doc.CellFormat(0, 6, tr("Condiciones adicionales"), "1", 1, "L", true, 0, "")
	doc.SetFont("Helvetica", "", 8)
	doc.SetTextColor(0, 0, 0)
	doc.MultiCell(0, 4.5, tr(letter.AdditionalConditions), "1", "L", false)
	doc.Ln(3)
}

func (r *Renderer) drawReviewMarker(doc *gofpdf.Fpdf, tr func(string) string, letter model.LetterData) {
	doc.SetTextColor(alertRed[0], alertRed[1], alertRed[2])
	doc.SetFont("Helvetica", "B", 8)
	doc.CellFormat(0, 5, tr("** DOCUMENTO PRELIMINAR — REQUIERE REVISIÓN MANUAL **"), "", 1, "L", false, 0, "")

	doc.SetFont("Helvetica", "", 7)
	for _, item := range letter.MissingData {
		doc.CellFormat(0, 4, tr("    - "+item), "", 1, "L", false, 0, "")
	}
	doc.SetTextColor(0, 0, 0)
	doc.Ln(3)
}

func (r *Renderer) drawSignature(doc *gofpdf.Fpdf, tr func(string) string, letter model.LetterData) {
	doc.Ln(6)
	doc.SetFont("Helvetica", "", 10)
	doc.MultiCell(0, 5, tr("Sin otro particular, saludamos a usted(es) con la atención de siempre."), "", "L", false)
	doc.Ln(10)
	doc.SetFont("Helvetica", "B", 10)
	doc.CellFormat(0, 5, tr(letter.Executive), "", 1, "L", false, 0, "")
	doc.SetFont("Helvetica", "", 9)
	doc.SetTextColor(textGray[0], textGray[1], textGray[2])
	doc.CellFormat(0, 5, tr("Ejecutivo de Cuentas — Patria S.A. Corredores de Seguros"), "", 1, "L", false, 0, "")
}
