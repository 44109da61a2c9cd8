// Package web renders the single tracker page.
package web

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"math"

	"hydration-tracker/internal/ledger"
	"hydration-tracker/internal/model"
)

//go:embed templates/*.html
var files embed.FS

// Page is everything the tracker page shows.
type Page struct {
	Ledger   model.DailyLedger
	Progress ledger.Progress
	Presets  []ledger.Preset
	MinGoal  int
	MaxGoal  int
	MaxAdd   int
}

func NewPage(l model.DailyLedger) Page {
	return Page{
		Ledger:   l,
		Progress: ledger.NewProgress(l.Total, l.Goal),
		Presets:  ledger.Presets,
		MinGoal:  ledger.MinGoal,
		MaxGoal:  ledger.MaxGoal,
		MaxAdd:   ledger.MaxCustom,
	}
}

// ringLength is the circumference of the progress ring (r=45).
var ringLength = 2 * math.Pi * 45

type Templates struct {
	page *template.Template
}

func Load() (*Templates, error) {
	funcMap := template.FuncMap{
		"ring": func() string { return fmt.Sprintf("%.2f", ringLength) },
		"ringOffset": func(pct float64) string {
			return fmt.Sprintf("%.2f", ringLength*(1-pct/100))
		},
	}
	t, err := template.New("index.html").Funcs(funcMap).ParseFS(files, "templates/index.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return &Templates{page: t}, nil
}

func (t *Templates) Render(w io.Writer, p Page) error {
	return t.page.ExecuteTemplate(w, "index.html", p)
}
