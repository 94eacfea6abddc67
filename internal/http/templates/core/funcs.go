// Package core holds the template helpers shared by every page.
package core

import (
	"bytes"
	"errors"
	"html/template"
	"strings"
	"time"

	"github.com/target/invoice-dashboard/internal/domain/invoice"
)

// Deps holds optional dependencies for constructing the core template func map.
type Deps struct {
	Template           **template.Template
	ContentTemplateFor func(string) string
}

// Funcs returns a template.FuncMap containing helpers used across templates.
func Funcs(deps Deps) template.FuncMap {
	funcs := template.FuncMap{
		"sectionTmpl": deps.ContentTemplateFor,
		"formatCents": invoice.FormatCents,
		"formatDate":  FormatDate,
		"statusClass": StatusClass,
		"statusLabel": StatusLabel,
	}

	funcs["renderSection"] = func(page string, data any) (template.HTML, error) {
		if deps.Template == nil || *deps.Template == nil {
			return "", errors.New("template not initialized")
		}
		var buf bytes.Buffer
		if err := (*deps.Template).ExecuteTemplate(&buf, deps.ContentTemplateFor(page), data); err != nil {
			return "", err
		}
		// #nosec G203 - rendered by our own html/template set; values were escaped during ExecuteTemplate.
		return template.HTML(buf.String()), nil
	}

	return funcs
}

// FormatDate renders an invoice date as "Jan 2, 2006". Zero dates render empty.
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format("Jan 2, 2006")
}

// StatusClass maps an invoice status to its badge class.
func StatusClass(s invoice.Status) string {
	switch s {
	case invoice.StatusPaid:
		return "badge-success"
	case invoice.StatusPending:
		return "badge-warning"
	default:
		return "badge-light"
	}
}

// StatusLabel is the display text for a status ("paid" -> "Paid").
func StatusLabel(s invoice.Status) string {
	if s == "" {
		return ""
	}
	return strings.ToUpper(string(s[:1])) + string(s[1:])
}
