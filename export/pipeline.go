package export

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/semaphore"

	"lovestudio/models"
	"lovestudio/render"
	"lovestudio/utils"
)

// CardRenderer produces the standalone documents the pipeline exports
type CardRenderer interface {
	RenderCard(w io.Writer, record models.CardRecord) error
	RenderPrint(w io.Writer, record models.CardRecord) error
}

// Options controls raster and page geometry
type Options struct {
	Page           PageSize
	MarginMM       float64
	Scale          float64
	MaxRasterWidth uint
	Timeout        time.Duration
	CacheTTL       time.Duration
	Selector       string
}

// DefaultOptions is A4 portrait, 10mm margin, 4x raster
func DefaultOptions() Options {
	return Options{
		Page:     PageA4,
		MarginMM: 10,
		Scale:    4,
		Timeout:  30 * time.Second,
		CacheTTL: 10 * time.Minute,
		Selector: render.SurfaceSelector,
	}
}

// Document is a finished PDF export
type Document struct {
	ID       string
	Filename string
	Data     []byte
	Layout   Layout
	Cached   bool
}

// Pipeline exports cards. At most one PDF export runs at a time.
type Pipeline struct {
	renderer   CardRenderer
	rasterizer Rasterizer
	opts       Options
	inFlight   *semaphore.Weighted
	cache      *utils.MemoryCache
}

// NewPipeline creates a pipeline. A nil cache disables reuse of finished documents.
func NewPipeline(renderer CardRenderer, rasterizer Rasterizer, opts Options, cache *utils.MemoryCache) *Pipeline {
	if opts.Selector == "" {
		opts.Selector = render.SurfaceSelector
	}
	if opts.Scale <= 0 {
		opts.Scale = 1
	}
	if opts.Page.Width == 0 || opts.Page.Height == 0 {
		opts.Page = PageA4
	}
	return &Pipeline{
		renderer:   renderer,
		rasterizer: rasterizer,
		opts:       opts,
		inFlight:   semaphore.NewWeighted(1),
		cache:      cache,
	}
}

// SavePDF renders, captures and lays out the card as a one page PDF
func (p *Pipeline) SavePDF(ctx context.Context, record models.CardRecord) (*Document, error) {
	key := "pdf:" + record.Fingerprint()
	if doc, ok := p.cached(key); ok {
		return doc, nil
	}

	if !p.inFlight.TryAcquire(1) {
		return nil, ErrExportInProgress
	}
	defer p.inFlight.Release(1)

	id := uuid.NewString()
	log := utils.Log.WithFields(map[string]interface{}{
		"export_id": id,
		"theme":     string(record.Theme),
	})
	start := time.Now()
	log.Debug("Starting PDF export for %s", record.RecipientName)

	var page bytes.Buffer
	if err := p.renderer.RenderCard(&page, record); err != nil {
		return nil, fmt.Errorf("render card: %w", err)
	}

	if p.opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.opts.Timeout)
		defer cancel()
	}

	img, err := p.rasterizer.Rasterize(ctx, RasterRequest{
		HTML:     page.Bytes(),
		Selector: p.opts.Selector,
		Scale:    p.opts.Scale,
	})
	if err != nil {
		if errors.Is(err, ErrSurfaceNotFound) {
			log.Warn("Card surface %s missing from rendered document", p.opts.Selector)
			return nil, err
		}
		return nil, fmt.Errorf("rasterize card: %w", err)
	}
	img = utils.FitWidth(img, p.opts.MaxRasterWidth)

	bounds := img.Bounds()
	layout, err := FitToPage(p.opts.Page, p.opts.MarginMM, bounds.Dx(), bounds.Dy())
	if err != nil {
		return nil, err
	}

	var out bytes.Buffer
	if err := WritePDF(&out, img, layout); err != nil {
		return nil, fmt.Errorf("write pdf: %w", err)
	}

	doc := &Document{
		ID:       id,
		Filename: Filename(record),
		Data:     out.Bytes(),
		Layout:   layout,
	}
	if p.cache != nil && p.opts.CacheTTL > 0 {
		p.cache.Set(key, *doc, p.opts.CacheTTL)
	}

	log.Info("Exported %s (%dx%d px, %d bytes) in %s",
		doc.Filename, bounds.Dx(), bounds.Dy(), len(doc.Data), time.Since(start).Round(time.Millisecond))
	return doc, nil
}

// PrintHTML renders the card-only document that opens the print dialog on load
func (p *Pipeline) PrintHTML(record models.CardRecord) ([]byte, error) {
	var buf bytes.Buffer
	if err := p.renderer.RenderPrint(&buf, record); err != nil {
		return nil, fmt.Errorf("render print document: %w", err)
	}
	return buf.Bytes(), nil
}

func (p *Pipeline) cached(key string) (*Document, bool) {
	if p.cache == nil {
		return nil, false
	}
	value, ok := p.cache.Get(key)
	if !ok {
		return nil, false
	}
	doc, ok := value.(Document)
	if !ok {
		return nil, false
	}
	doc.Cached = true
	return &doc, true
}
