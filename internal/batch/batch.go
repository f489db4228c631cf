// Package batch runs the image-to-QR pipeline over many inputs with a bounded
// worker pool. Each item is isolated: a bad row or unreadable image is logged
// and skipped while the rest of the batch proceeds.
package batch

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/moalkhateeb/qrink/pkg/colour"
	"github.com/moalkhateeb/qrink/pkg/imgproc"
	"github.com/moalkhateeb/qrink/pkg/qrgen"
	"github.com/moalkhateeb/qrink/pkg/svgdoc"
	"github.com/moalkhateeb/qrink/pkg/util"
)

// DefaultMarkerName is used in output filenames when no custom artwork is
// configured.
const DefaultMarkerName = "default"

var imageExtensions = map[string]bool{".png": true, ".jpg": true, ".jpeg": true}

// Config collects everything a batch (or a single generation) needs.
type Config struct {
	URL        string // applied to every image unless a CSV row overrides it
	InputDir   string
	BatchPath  string // CSV of rel_path,url rows; empty means scan InputDir
	OutDir     string
	MarkerPath string // SVG artwork; empty keeps the rendered finder markers

	Width  int
	Height int
	DPI    int

	Dark    *colour.RGB // overrides the derived (or default) dark ink
	Light   *colour.RGB
	Dynamic bool // derive the ink pair from each companion image
	Enhance bool // color-correct the image before palette extraction

	Workers int
}

// Job is one image/URL pair to turn into a QR code.
type Job struct {
	ImagePath string
	URL       string
}

// Result reports the outcome of one job.
type Result struct {
	Job
	OutPath string
	Err     error
}

// Generator executes jobs against a fixed Config. The marker artwork is
// loaded once and shared; ReplaceMarkers clones it per use.
type Generator struct {
	cfg        Config
	marker     *svgdoc.Document
	markerName string
}

// New validates cfg and loads the marker artwork if one is configured.
func New(cfg Config) (*Generator, error) {
	if cfg.OutDir == "" {
		return nil, fmt.Errorf("no output directory configured")
	}

	if err := os.MkdirAll(cfg.OutDir, 0755); err != nil {
		return nil, fmt.Errorf("unable to create %s: %w", cfg.OutDir, err)
	}

	if cfg.Workers < 1 {
		cfg.Workers = 1
	}

	g := &Generator{cfg: cfg, markerName: DefaultMarkerName}

	if cfg.MarkerPath != "" {
		doc, err := svgdoc.Load(cfg.MarkerPath)
		if err != nil {
			return nil, fmt.Errorf("unable to load marker artwork: %w", err)
		}

		g.marker = doc
		g.markerName = stem(cfg.MarkerPath)
	}

	return g, nil
}

// OutPath reports where the QR code for imagePath will be written.
func (g *Generator) OutPath(imagePath string) string {
	base := "qrcode"
	if imagePath != "" {
		base = stem(imagePath)
	}

	name := fmt.Sprintf("QR_%s_%s.png", g.markerName, base)
	return filepath.Join(g.cfg.OutDir, name)
}

// Jobs enumerates the batch: CSV rows when a batch file is configured,
// otherwise every supported image in the input directory paired with the
// configured URL. Malformed CSV rows and missing images are logged and
// dropped.
func (g *Generator) Jobs() ([]Job, error) {
	if g.cfg.BatchPath != "" {
		return g.csvJobs()
	}

	if g.cfg.URL == "" {
		return nil, fmt.Errorf("no URL configured for directory mode")
	}

	entries, err := os.ReadDir(g.cfg.InputDir)
	if err != nil {
		return nil, fmt.Errorf("unable to read %s: %w", g.cfg.InputDir, err)
	}

	var jobs []Job
	for _, entry := range entries {
		if entry.IsDir() || !imageExtensions[strings.ToLower(filepath.Ext(entry.Name()))] {
			continue
		}

		jobs = append(jobs, Job{
			ImagePath: filepath.Join(g.cfg.InputDir, entry.Name()),
			URL:       g.cfg.URL,
		})
	}

	return jobs, nil
}

// Run executes all jobs with at most Workers in flight. Item failures are
// recorded in the returned results, not propagated: the only error returned
// is a failure to enumerate the batch itself. Results keep job order.
func (g *Generator) Run(ctx context.Context) ([]Result, error) {
	jobs, err := g.Jobs()
	if err != nil {
		return nil, err
	}

	results := make([]Result, len(jobs))

	grp, ctx := errgroup.WithContext(ctx)
	grp.SetLimit(g.cfg.Workers)

	for i, job := range jobs {
		i, job := i, job
		results[i].Job = job

		grp.Go(func() error {
			defer util.LogRecover()

			if ctx.Err() != nil {
				results[i].Err = ctx.Err()
				return nil
			}

			out, err := g.GenerateOne(job)
			results[i].OutPath = out
			results[i].Err = err

			if err != nil {
				log.Warn().Err(err).Str("image", job.ImagePath).Msg("skipping")
			} else {
				log.Info().Str("out", out).Msg("generated")
			}

			return nil
		})
	}

	if err := grp.Wait(); err != nil {
		return results, err
	}

	return results, ctx.Err()
}

// GenerateOne runs the full pipeline for a single job: pick the ink pair,
// encode and render the QR code, swap in the marker artwork, and save the
// resized PNG.
func (g *Generator) GenerateOne(job Job) (string, error) {
	dark, light, err := g.inks(job.ImagePath)
	if err != nil {
		return "", err
	}

	code, err := qrgen.New(job.URL, g.cfg.Width, g.cfg.Height, g.cfg.DPI)
	if err != nil {
		return "", err
	}

	if err := code.Render(dark, light); err != nil {
		return "", err
	}

	if g.marker != nil {
		if err := code.ReplaceMarkers(g.marker, dark, light); err != nil {
			return "", err
		}
	}

	out := g.OutPath(job.ImagePath)
	if err := code.Save(out); err != nil {
		return "", err
	}

	return out, nil
}

//--------------------------------------------------------------------------------
// private

// inks resolves the dark/light pair: extracted from the companion image in
// dynamic mode, black/white otherwise, with any configured static colors
// applied on top. Static colors for both inks short-circuit the extraction
// entirely.
func (g *Generator) inks(imagePath string) (colour.RGB, colour.RGB, error) {
	if g.cfg.Dark != nil && g.cfg.Light != nil {
		return *g.cfg.Dark, *g.cfg.Light, nil
	}

	dark, light := colour.Black, colour.White

	if g.cfg.Dynamic && imagePath != "" {
		img, err := imgproc.Load(imagePath)
		if err != nil {
			return colour.RGB{}, colour.RGB{}, err
		}

		if g.cfg.Enhance {
			img = imgproc.ColourCorrect(img)
		}

		dark, light, err = colour.DarkLight(img)
		if err != nil {
			return colour.RGB{}, colour.RGB{}, fmt.Errorf("unable to extract palette from %s: %w", imagePath, err)
		}
	}

	if g.cfg.Dark != nil {
		dark = *g.cfg.Dark
	}
	if g.cfg.Light != nil {
		light = *g.cfg.Light
	}

	return dark, light, nil
}

func (g *Generator) csvJobs() ([]Job, error) {
	f, err := os.Open(g.cfg.BatchPath)
	if err != nil {
		return nil, fmt.Errorf("unable to open batch file: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	var jobs []Job
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			log.Warn().Err(err).Msg("malformed row in batch file: skipping")
			continue
		}

		if len(row) < 2 {
			log.Warn().Strs("row", row).Msg("malformed row in batch file: skipping")
			continue
		}

		rel := strings.TrimSpace(row[0])
		url := strings.TrimSpace(row[1])

		path := filepath.Join(g.cfg.InputDir, rel)
		if info, err := os.Stat(path); err != nil || info.IsDir() {
			log.Warn().Str("image", path).
				Msg("image not found: batch paths must be relative to the input directory")
			continue
		}

		jobs = append(jobs, Job{ImagePath: path, URL: url})
	}

	return jobs, nil
}

func stem(pathname string) string {
	base := filepath.Base(pathname)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
