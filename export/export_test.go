package export

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"io"
	"regexp"
	"strconv"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"seehuhn.de/go/pdf"

	"lovestudio/models"
	"lovestudio/render"
	"lovestudio/utils"
)

type fakeRenderer struct {
	err error
}

func (f fakeRenderer) RenderCard(w io.Writer, record models.CardRecord) error {
	if f.err != nil {
		return f.err
	}
	_, err := io.WriteString(w, `<html><body><div id="card">`+record.RecipientName+`</div></body></html>`)
	return err
}

func (f fakeRenderer) RenderPrint(w io.Writer, record models.CardRecord) error {
	if f.err != nil {
		return f.err
	}
	_, err := io.WriteString(w, `<script>window.print()</script>`)
	return err
}

type fakeRasterizer struct {
	mu      sync.Mutex
	calls   int
	last    RasterRequest
	width   int
	height  int
	err     error
	entered chan struct{}
	release chan struct{}
}

func (f *fakeRasterizer) Rasterize(ctx context.Context, req RasterRequest) (image.Image, error) {
	f.mu.Lock()
	f.calls++
	f.last = req
	f.mu.Unlock()

	if f.entered != nil {
		f.entered <- struct{}{}
	}
	if f.release != nil {
		<-f.release
	}
	if f.err != nil {
		return nil, f.err
	}

	img := image.NewRGBA(image.Rect(0, 0, f.width, f.height))
	for y := 0; y < f.height; y++ {
		for x := 0; x < f.width; x++ {
			img.Set(x, y, color.RGBA{R: 0xD4, G: 0xAF, B: 0x37, A: 0xFF})
		}
	}
	return img, nil
}

func (f *fakeRasterizer) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func sampleRecord() models.CardRecord {
	return models.CardRecord{
		SenderName:    "Alex",
		RecipientName: "Sam Lee",
		Message:       "Forever yours",
		Theme:         models.ThemeLuxury,
		SpecialDay:    "Kiss Day",
	}
}

func TestFitToPageA4Scenario(t *testing.T) {
	layout, err := FitToPage(PageA4, 10, 2160, 3057)
	require.NoError(t, err)

	assert.InDelta(t, 190.0/2160.0, layout.Scale, 1e-9)
	assert.InDelta(t, 190.0, layout.Width, 1e-6)
	assert.InDelta(t, 268.90, layout.Height, 0.01)
	assert.InDelta(t, 10.0, layout.X, 1e-6)
	assert.InDelta(t, 14.05, layout.Y, 0.01)
}

func TestFitToPageHeightBound(t *testing.T) {
	layout, err := FitToPage(PageA4, 10, 1000, 4000)
	require.NoError(t, err)

	assert.InDelta(t, 277.0, layout.Height, 1e-6)
	assert.InDelta(t, 69.25, layout.Width, 1e-6)
	assert.InDelta(t, 10.0, layout.Y, 1e-6)
	assert.InDelta(t, (210-69.25)/2, layout.X, 1e-6)
}

func TestFitToPageKeepsMarginsAndAspect(t *testing.T) {
	sizes := [][2]int{{1, 1}, {2160, 3057}, {4000, 100}, {100, 4000}, {3, 7}}
	for _, size := range sizes {
		layout, err := FitToPage(PageA4, 10, size[0], size[1])
		require.NoError(t, err)

		assert.GreaterOrEqual(t, layout.X, 10-1e-9)
		assert.GreaterOrEqual(t, layout.Y, 10-1e-9)
		assert.LessOrEqual(t, layout.X+layout.Width, 200+1e-9)
		assert.LessOrEqual(t, layout.Y+layout.Height, 287+1e-9)
		assert.InDelta(t, float64(size[0])/float64(size[1]), layout.Width/layout.Height, 1e-9)
		assert.InDelta(t, layout.X, PageA4.Width-layout.X-layout.Width, 1e-9)
	}
}

func TestFitToPageRejectsBadInput(t *testing.T) {
	_, err := FitToPage(PageA4, 10, 0, 100)
	assert.ErrorIs(t, err, ErrEmptyImage)

	_, err = FitToPage(PageA4, -1, 100, 100)
	assert.Error(t, err)

	_, err = FitToPage(PageA4, 105, 100, 100)
	assert.Error(t, err)
}

func TestLookupPageSize(t *testing.T) {
	size, err := LookupPageSize(" a4 ")
	require.NoError(t, err)
	assert.Equal(t, PageA4, size)

	_, err = LookupPageSize("Letter")
	assert.Error(t, err)
}

func TestMMToPoints(t *testing.T) {
	assert.InDelta(t, 595.28, MMToPoints(210), 0.01)
	assert.InDelta(t, 841.89, MMToPoints(297), 0.01)
}

func TestFilename(t *testing.T) {
	assert.Equal(t, "Kiss Day_for_Sam_Lee.pdf", Filename(sampleRecord()))

	record := sampleRecord()
	record.SpecialDay = "Valentine's Day"
	record.RecipientName = "Mary  Ann Jo"
	assert.Equal(t, "Valentine's Day_for_Mary_Ann_Jo.pdf", Filename(record))
}

func TestWritePDF(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 20, 30))
	layout, err := FitToPage(PageA4, 10, 20, 30)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WritePDF(&buf, img, layout))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))
	assert.Contains(t, buf.String(), "%%EOF")
}

var (
	mediaBoxPattern  = regexp.MustCompile(`/MediaBox\s*\[\s*0\s+0\s+([0-9.]+)\s+([0-9.]+)\s*\]`)
	pageTypePattern  = regexp.MustCompile(`/Type\s*/Page[^s]`)
	imagePattern     = regexp.MustCompile(`/Subtype\s*/Image`)
	transformPattern = regexp.MustCompile(`(-?[0-9.]+) (-?[0-9.]+) (-?[0-9.]+) (-?[0-9.]+) (-?[0-9.]+) (-?[0-9.]+) cm`)
)

func parseFloats(t *testing.T, values []string) []float64 {
	t.Helper()
	out := make([]float64, 0, len(values))
	for _, v := range values {
		f, err := strconv.ParseFloat(v, 64)
		require.NoError(t, err, v)
		out = append(out, f)
	}
	return out
}

func TestWritePDFStructure(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 216, 306))
	layout, err := FitToPage(PageA4, 10, 216, 306)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, writePDF(&buf, img, layout, &pdf.WriterOptions{HumanReadable: true}))
	out := buf.String()

	box := mediaBoxPattern.FindStringSubmatch(out)
	require.NotNil(t, box, "no MediaBox")
	size := parseFloats(t, box[1:])
	assert.InDelta(t, 595.28, size[0], 0.01)
	assert.InDelta(t, 841.89, size[1], 0.01)

	assert.Len(t, pageTypePattern.FindAllString(out, -1), 1)
	assert.Len(t, imagePattern.FindAllString(out, -1), 1)

	transforms := transformPattern.FindAllStringSubmatch(out, -1)
	require.Len(t, transforms, 2)

	left, bottom := placement(layout)
	translate := parseFloats(t, transforms[0][1:])
	assert.Equal(t, []float64{1, 0, 0, 1}, translate[:4])
	assert.InDelta(t, left, translate[4], 0.01)
	assert.InDelta(t, bottom, translate[5], 0.01)

	scale := parseFloats(t, transforms[1][1:])
	assert.InDelta(t, MMToPoints(layout.Width), scale[0], 0.01)
	assert.InDelta(t, MMToPoints(layout.Height), scale[3], 0.01)
	assert.Equal(t, []float64{0, 0, 0, 0}, []float64{scale[1], scale[2], scale[4], scale[5]})
}

func TestPlacement(t *testing.T) {
	layout, err := FitToPage(PageA4, 10, 2160, 3057)
	require.NoError(t, err)

	left, bottom := placement(layout)
	assert.InDelta(t, 28.35, left, 0.01)
	// centred vertically, so the bottom gap equals the top offset
	assert.InDelta(t, MMToPoints(layout.Y), bottom, 1e-9)
}

func TestWritePDFRejectsEmptyImage(t *testing.T) {
	var buf bytes.Buffer
	err := WritePDF(&buf, image.NewRGBA(image.Rect(0, 0, 0, 0)), Layout{Page: PageA4})
	assert.ErrorIs(t, err, ErrEmptyImage)
	assert.Zero(t, buf.Len())
}

func TestSavePDF(t *testing.T) {
	raster := &fakeRasterizer{width: 54, height: 76}
	opts := DefaultOptions()
	pipeline := NewPipeline(fakeRenderer{}, raster, opts, nil)

	doc, err := pipeline.SavePDF(context.Background(), sampleRecord())
	require.NoError(t, err)

	assert.Equal(t, "Kiss Day_for_Sam_Lee.pdf", doc.Filename)
	assert.NotEmpty(t, doc.ID)
	assert.False(t, doc.Cached)
	assert.True(t, bytes.HasPrefix(doc.Data, []byte("%PDF-")))
	assert.InDelta(t, 190.0, doc.Layout.Width, 1e-6)

	assert.Equal(t, render.SurfaceSelector, raster.last.Selector)
	assert.Equal(t, 4.0, raster.last.Scale)
	assert.Contains(t, string(raster.last.HTML), "Sam Lee")
}

func TestSavePDFDownscalesWideRasters(t *testing.T) {
	raster := &fakeRasterizer{width: 80, height: 40}
	opts := DefaultOptions()
	opts.MaxRasterWidth = 40
	pipeline := NewPipeline(fakeRenderer{}, raster, opts, nil)

	doc, err := pipeline.SavePDF(context.Background(), sampleRecord())
	require.NoError(t, err)
	assert.InDelta(t, 190.0/40.0, doc.Layout.Scale, 1e-9)
}

func TestSavePDFSurfaceNotFound(t *testing.T) {
	raster := &fakeRasterizer{err: ErrSurfaceNotFound}
	pipeline := NewPipeline(fakeRenderer{}, raster, DefaultOptions(), nil)

	doc, err := pipeline.SavePDF(context.Background(), sampleRecord())
	assert.Nil(t, doc)
	assert.ErrorIs(t, err, ErrSurfaceNotFound)
}

func TestSavePDFWrapsFailures(t *testing.T) {
	boom := errors.New("boom")

	pipeline := NewPipeline(fakeRenderer{err: boom}, &fakeRasterizer{width: 1, height: 1}, DefaultOptions(), nil)
	_, err := pipeline.SavePDF(context.Background(), sampleRecord())
	assert.ErrorIs(t, err, boom)

	pipeline = NewPipeline(fakeRenderer{}, &fakeRasterizer{err: boom}, DefaultOptions(), nil)
	_, err = pipeline.SavePDF(context.Background(), sampleRecord())
	assert.ErrorIs(t, err, boom)
	assert.NotErrorIs(t, err, ErrSurfaceNotFound)
}

func TestSavePDFRejectsConcurrentExport(t *testing.T) {
	raster := &fakeRasterizer{
		width:   10,
		height:  10,
		entered: make(chan struct{}, 1),
		release: make(chan struct{}),
	}
	pipeline := NewPipeline(fakeRenderer{}, raster, DefaultOptions(), nil)

	done := make(chan error, 1)
	go func() {
		_, err := pipeline.SavePDF(context.Background(), sampleRecord())
		done <- err
	}()
	<-raster.entered

	_, err := pipeline.SavePDF(context.Background(), sampleRecord())
	assert.ErrorIs(t, err, ErrExportInProgress)

	close(raster.release)
	require.NoError(t, <-done)
	assert.Equal(t, 1, raster.Calls())

	// guard is released once the first export finishes
	raster.entered = nil
	_, err = pipeline.SavePDF(context.Background(), sampleRecord())
	assert.NoError(t, err)
}

func TestSavePDFUsesCache(t *testing.T) {
	cache := utils.NewMemoryCache(0)
	defer cache.Close()

	raster := &fakeRasterizer{width: 12, height: 16}
	pipeline := NewPipeline(fakeRenderer{}, raster, DefaultOptions(), cache)

	first, err := pipeline.SavePDF(context.Background(), sampleRecord())
	require.NoError(t, err)
	second, err := pipeline.SavePDF(context.Background(), sampleRecord())
	require.NoError(t, err)

	assert.Equal(t, 1, raster.Calls())
	assert.True(t, second.Cached)
	assert.Equal(t, first.Data, second.Data)

	changed := sampleRecord()
	changed.Message = "Still yours"
	_, err = pipeline.SavePDF(context.Background(), changed)
	require.NoError(t, err)
	assert.Equal(t, 2, raster.Calls())
}

func TestPrintHTML(t *testing.T) {
	pipeline := NewPipeline(fakeRenderer{}, &fakeRasterizer{}, DefaultOptions(), nil)

	out, err := pipeline.PrintHTML(sampleRecord())
	require.NoError(t, err)
	assert.Contains(t, string(out), "window.print()")
}

func TestPipelineWithCardRenderer(t *testing.T) {
	raster := &fakeRasterizer{width: 27, height: 38}
	pipeline := NewPipeline(render.New(render.NewEngine(false)), raster, DefaultOptions(), nil)

	_, err := pipeline.SavePDF(context.Background(), sampleRecord())
	require.NoError(t, err)
	assert.Contains(t, string(raster.last.HTML), `id="card"`)
	assert.Contains(t, string(raster.last.HTML), `data-theme="luxury"`)
}
