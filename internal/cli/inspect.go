package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/aretw0/remat"
	"github.com/muesli/termenv"
	"github.com/qmuntal/gltf"
)

// InspectOptions contains the configuration for the inspect command.
type InspectOptions struct {
	Config Config
	Input  string
	JSON   bool
}

// pairingReport is the JSON shape of an inspection.
type pairingReport struct {
	Path       string          `json:"path"`
	Materials  []pairingRecord `json:"materials"`
	Unresolved []string        `json:"unresolved"`
}

type pairingRecord struct {
	ItemID     string         `json:"item_id"`
	Title      string         `json:"title"`
	Attributes map[string]any `json:"attributes,omitempty"`
}

// Inspect opens a document and reports how its materials resolve against the
// catalog, as JSON or as a rendered markdown report.
func Inspect(ctx context.Context, opts InspectOptions) error {
	logger := createLogger(opts.Config.Verbose)

	cat, err := LoadCatalog(ctx, opts.Config)
	if err != nil {
		return err
	}

	sess, err := remat.Open(opts.Input,
		remat.WithCatalog(cat),
		remat.WithLogger(logger),
	)
	if err != nil {
		return err
	}

	report := buildReport(opts.Input, sess)

	if opts.JSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	}

	fmt.Print(renderMarkdown(reportMarkdown(report)))
	printSummary(report)
	return nil
}

func buildReport(path string, sess *remat.Session) pairingReport {
	report := pairingReport{
		Path:       path,
		Materials:  []pairingRecord{},
		Unresolved: []string{},
	}

	paired := make(map[*gltf.Material]bool)
	for _, pair := range sess.Pairs() {
		report.Materials = append(report.Materials, pairingRecord{
			ItemID:     pair.Definition.ID,
			Title:      pair.Definition.Title,
			Attributes: pair.Definition.Attributes,
		})
		paired[pair.Material] = true
	}
	for _, m := range sess.Document().Materials {
		if !paired[m] {
			report.Unresolved = append(report.Unresolved, m.Name)
		}
	}
	sort.Strings(report.Unresolved)
	return report
}

func reportMarkdown(report pairingReport) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Material Report\n\n`%s`\n\n", report.Path)

	if len(report.Materials) > 0 {
		b.WriteString("| Item ID | Title |\n|---|---|\n")
		for _, m := range report.Materials {
			fmt.Fprintf(&b, "| %s | %s |\n", m.ItemID, m.Title)
		}
		b.WriteString("\n")
	}

	if len(report.Unresolved) > 0 {
		b.WriteString("## Unresolved\n\n")
		for _, name := range report.Unresolved {
			fmt.Fprintf(&b, "- %s\n", name)
		}
	}
	return b.String()
}

func printSummary(report pairingReport) {
	p := termenv.ColorProfile()

	resolved := termenv.String(fmt.Sprintf("%d resolved", len(report.Materials))).
		Foreground(p.Color("#22c55e"))
	fmt.Printf("%s", resolved)

	if n := len(report.Unresolved); n > 0 {
		unresolved := termenv.String(fmt.Sprintf("%d unresolved", n)).
			Foreground(p.Color("#f59e0b"))
		fmt.Printf(", %s", unresolved)
	}
	fmt.Println()
}
