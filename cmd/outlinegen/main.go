// Command outlinegen builds the outlines declared in HCL files, prints a
// summary and optionally writes PNG previews.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/pterm/pterm"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/gogpu/outline"
	"github.com/gogpu/outline/config"
	"github.com/gogpu/outline/model"
	"github.com/gogpu/outline/preview"
)

func main() {
	var (
		configPath = flag.String("config", "outlines.hcl", "HCL file or directory to load")
		outDir     = flag.String("out", "", "directory for PNG previews (none when empty)")
		size       = flag.Int("size", 512, "preview width in pixels")
		tolerance  = flag.Float64("tolerance", outline.DefaultTolerance, "curve flattening tolerance in model units")
		verbose    = flag.Bool("v", false, "enable debug logging")
	)
	flag.Parse()

	if *verbose {
		outline.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	if err := run(*configPath, *outDir, *size, *tolerance); err != nil {
		pterm.Error.Println(err)
		os.Exit(1)
	}
}

func run(configPath, outDir string, size int, tolerance float64) error {
	f, err := config.Load(configPath)
	if err != nil {
		return err
	}

	res, err := outline.Generate(f.Config, f.Points, f.Units, outline.WithTolerance(tolerance))
	if err != nil {
		return err
	}

	if err := summarize(res); err != nil {
		return err
	}

	if outDir == "" {
		return nil
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("cannot create output directory: %w", err)
	}
	for _, name := range res.Names() {
		m, _ := res.Get(name)
		path := filepath.Join(outDir, name+".png")
		if err := writePreview(path, name, m, size); err != nil {
			return err
		}
		pterm.Success.Printf("Preview saved to %s\n", path)
	}
	return nil
}

func summarize(res *outline.Outlines) error {
	p := message.NewPrinter(language.English)
	data := pterm.TableData{{"Outline", "Layers", "Width", "Height", "Area"}}
	for _, name := range res.Names() {
		m, _ := res.Get(name)
		box := model.Extents(m)
		data = append(data, []string{
			name,
			p.Sprintf("%d", m.LayerCount()),
			p.Sprintf("%.2f", box.Width()),
			p.Sprintf("%.2f", box.Height()),
			p.Sprintf("%.2f", m.Area()),
		})
	}
	return pterm.DefaultTable.WithHasHeader().WithData(data).Render()
}

func writePreview(path, name string, m *model.Model, size int) error {
	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("cannot create output file: %w", err)
	}
	defer out.Close()

	opts := preview.DefaultOptions()
	opts.Width = size
	opts.Label = name
	if err := preview.WritePNG(out, m, opts); err != nil {
		return fmt.Errorf("cannot encode png: %w", err)
	}
	return nil
}
