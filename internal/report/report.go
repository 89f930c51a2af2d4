// Package report renders an experiment run into a standalone HTML page.
package report

import (
	"bytes"
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"strings"

	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"

	"github.com/ewhitt/promptlab/internal/experiment"
	"github.com/ewhitt/promptlab/internal/history"
)

// Generator builds a run report from the cost ledger and prompt history
// under an output directory.
type Generator struct {
	OutputDir string
	Title     string
}

// NewGenerator creates a Generator for the given run directory.
func NewGenerator(outputDir, title string) *Generator {
	if title == "" {
		title = filepath.Base(outputDir)
	}
	return &Generator{OutputDir: outputDir, Title: title}
}

// Generate writes report.md and report.html into the run directory and
// returns the HTML path.
func (g *Generator) Generate() (string, error) {
	entries, err := experiment.ReadLedger(g.OutputDir)
	if err != nil {
		return "", fmt.Errorf("reading cost ledger: %w", err)
	}

	var records []history.Record
	historyDir := filepath.Join(g.OutputDir, "prompt-history")
	if _, err := os.Stat(historyDir); err == nil {
		store, err := history.NewStore(historyDir)
		if err != nil {
			return "", fmt.Errorf("opening prompt history: %w", err)
		}
		records, err = store.List(0)
		if err != nil {
			return "", fmt.Errorf("listing prompt history: %w", err)
		}
	}

	md := g.markdown(entries, records)
	mdPath := filepath.Join(g.OutputDir, "report.md")
	if err := os.WriteFile(mdPath, []byte(md), 0o644); err != nil {
		return "", fmt.Errorf("writing report markdown: %w", err)
	}

	htmlBody, err := renderMarkdown(md)
	if err != nil {
		return "", err
	}

	var page bytes.Buffer
	if err := pageTemplate.Execute(&page, pageData{
		Title:   g.Title,
		Content: template.HTML(htmlBody),
	}); err != nil {
		return "", fmt.Errorf("rendering report page: %w", err)
	}

	htmlPath := filepath.Join(g.OutputDir, "report.html")
	if err := os.WriteFile(htmlPath, page.Bytes(), 0o644); err != nil {
		return "", fmt.Errorf("writing report html: %w", err)
	}
	return htmlPath, nil
}

// markdown composes the report source.
func (g *Generator) markdown(entries []experiment.CostEntry, records []history.Record) string {
	var out strings.Builder
	fmt.Fprintf(&out, "# Run report: %s\n\n", g.Title)

	fmt.Fprintf(&out, "## Costs\n\n")
	if len(entries) == 0 {
		out.WriteString("No cost entries recorded.\n\n")
	} else {
		fmt.Fprintf(&out, "Total: $%.4f across %d entries.\n\n", experiment.TotalCost(entries), len(entries))
		out.WriteString("| # | Cost (USD) | Metadata |\n|---|---|---|\n")
		for i, e := range entries {
			fmt.Fprintf(&out, "| %d | %.4f | %s |\n", i+1, e.Cost, formatMetadata(e.Metadata))
		}
		out.WriteString("\n")
	}

	fmt.Fprintf(&out, "## Exchanges\n\n")
	if len(records) == 0 {
		out.WriteString("No prompt history recorded.\n")
	} else {
		for _, rec := range records {
			fmt.Fprintf(&out, "### %s — %s\n\n", rec.Time.Format("2006-01-02 15:04:05"), rec.Model)
			fmt.Fprintf(&out, "```\n%s\n```\n\n", rec.PromptText)
			fmt.Fprintf(&out, "**Response** ($%.4f):\n\n```\n%s\n```\n\n", rec.CostUSD, rec.Response)
		}
	}
	return out.String()
}

func formatMetadata(m map[string]string) string {
	if len(m) == 0 {
		return "—"
	}
	parts := make([]string, 0, len(m))
	for k, v := range m {
		parts = append(parts, k+"="+v)
	}
	return strings.Join(parts, ", ")
}

func renderMarkdown(md string) (string, error) {
	engine := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			highlighting.NewHighlighting(
				highlighting.WithStyle("github"),
			),
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
		goldmark.WithRendererOptions(
			html.WithUnsafe(),
		),
	)

	var buf bytes.Buffer
	if err := engine.Convert([]byte(md), &buf); err != nil {
		return "", fmt.Errorf("converting report markdown: %w", err)
	}
	return buf.String(), nil
}

type pageData struct {
	Title   string
	Content template.HTML
}

var pageTemplate = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
body { font-family: -apple-system, sans-serif; max-width: 56rem; margin: 2rem auto; padding: 0 1rem; color: #1f2328; }
pre { background: #f6f8fa; padding: 0.8rem; border-radius: 6px; overflow-x: auto; }
table { border-collapse: collapse; }
th, td { border: 1px solid #d1d9e0; padding: 0.3rem 0.6rem; }
</style>
</head>
<body>
{{.Content}}
</body>
</html>
`))
