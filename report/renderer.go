package report

import (
	"bytes"
	"embed"
	"fmt"
	"strings"
	"text/template"

	"github.com/safeops/payloadeye/model"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

// TextRenderer renders payload reports from the embedded text templates.
type TextRenderer struct {
	reportTmpl  *template.Template
	sectionTmpl *template.Template
	rowTmpl     *template.Template
}

func NewTextRenderer() *TextRenderer {
	r := &TextRenderer{}
	r.initTemplates()
	return r
}

func (r *TextRenderer) initTemplates() {
	funcMap := template.FuncMap{
		"renderSection": r.renderSectionHelper,
		"renderRow":     r.renderRowHelper,
	}
	r.reportTmpl = template.Must(template.New("report.tmpl").Funcs(funcMap).ParseFS(templateFS, "templates/report.tmpl"))
	r.sectionTmpl = template.Must(template.New("section.tmpl").Funcs(funcMap).ParseFS(templateFS, "templates/section.tmpl"))
	r.rowTmpl = template.Must(template.New("row.tmpl").Funcs(funcMap).ParseFS(templateFS, "templates/row.tmpl"))
}

// FileTemplateData is one payload's report: a single header followed by its
// handler sections in execution order.
type FileTemplateData struct {
	FileName string
	Chain    string
	Multisig string
	BIP      string
	TxCount  int
	Sections []SectionTemplateData
}

type SectionTemplateData struct {
	Title string
	Rows  []RowTemplateData
}

type RowTemplateData struct {
	TxIndex int
	Fields  []model.ReportField
}

// RenderFile renders one payload report as plain text.
func (r *TextRenderer) RenderFile(data FileTemplateData) string {
	var buf bytes.Buffer
	if err := r.reportTmpl.Execute(&buf, data); err != nil {
		return fmt.Sprintf("Error rendering report: %v", err)
	}
	return buf.String()
}

// renderSectionHelper is a template helper for rendering one handler section.
// The trailing newline is trimmed so section spacing stays with the outer
// template.
func (r *TextRenderer) renderSectionHelper(section SectionTemplateData) string {
	var buf bytes.Buffer
	if err := r.sectionTmpl.Execute(&buf, section); err != nil {
		return fmt.Sprintf("Error rendering section: %v", err)
	}
	return strings.TrimRight(buf.String(), "\n")
}

// renderRowHelper is a template helper for rendering one report row.
func (r *TextRenderer) renderRowHelper(row RowTemplateData) string {
	var buf bytes.Buffer
	if err := r.rowTmpl.Execute(&buf, row); err != nil {
		return fmt.Sprintf("Error rendering row: %v", err)
	}
	return strings.TrimRight(buf.String(), "\n")
}
