package export

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/png"
	"sync"
	"time"

	"github.com/chromedp/cdproto/cdp"
	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
)

const (
	defaultViewportWidth  = 1024
	defaultViewportHeight = 1400
)

// RasterRequest describes one capture of an element in an HTML document
type RasterRequest struct {
	HTML     []byte
	Selector string
	Scale    float64
}

// Rasterizer captures the element matched by a selector as an image
type Rasterizer interface {
	Rasterize(ctx context.Context, req RasterRequest) (image.Image, error)
}

// ChromiumRasterizer captures elements with a shared headless Chromium instance.
type ChromiumRasterizer struct {
	BrowserPath    string
	Headless       bool
	Timeout        time.Duration
	Args           map[string]interface{}
	ViewportWidth  int64
	ViewportHeight int64

	initOnce      sync.Once
	allocCtx      context.Context
	allocCancel   context.CancelFunc
	browserCtx    context.Context
	browserCancel context.CancelFunc
}

// Rasterize loads req.HTML into a fresh tab and screenshots the element
// matched by req.Selector at req.Scale device pixels per CSS pixel.
func (r *ChromiumRasterizer) Rasterize(ctx context.Context, req RasterRequest) (image.Image, error) {
	if r == nil {
		return nil, errors.New("chromium rasterizer is nil")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	if req.Scale <= 0 {
		req.Scale = 1
	}

	if err := r.ensureBrowser(); err != nil {
		return nil, fmt.Errorf("chromium init failed: %w", err)
	}

	tabCtx, cancel := chromedp.NewContext(r.browserCtx)
	defer cancel()

	execCtx, cancelReq := context.WithCancel(tabCtx)
	defer cancelReq()
	go func() {
		select {
		case <-ctx.Done():
			cancelReq()
		case <-execCtx.Done():
		}
	}()
	if r.Timeout > 0 {
		var cancelTimeout context.CancelFunc
		execCtx, cancelTimeout = context.WithTimeout(execCtx, r.Timeout)
		defer cancelTimeout()
	}

	width, height := r.viewport()
	var nodes []*cdp.Node
	err := chromedp.Run(execCtx,
		chromedp.EmulateViewport(width, height),
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			tree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(tree.Frame.ID, string(req.HTML)).Do(ctx)
		}),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.Nodes(req.Selector, &nodes, chromedp.ByQuery, chromedp.AtLeast(0)),
	)
	if err != nil {
		return nil, fmt.Errorf("chromium load failed: %w", err)
	}
	if len(nodes) == 0 {
		return nil, ErrSurfaceNotFound
	}

	var shot []byte
	if err := chromedp.Run(execCtx, chromedp.ScreenshotScale(req.Selector, req.Scale, &shot, chromedp.ByQuery)); err != nil {
		return nil, fmt.Errorf("chromium capture failed: %w", err)
	}

	img, err := png.Decode(bytes.NewReader(shot))
	if err != nil {
		return nil, fmt.Errorf("decode capture: %w", err)
	}
	return img, nil
}

// Close releases Chromium resources if they have been initialized.
func (r *ChromiumRasterizer) Close() error {
	if r == nil {
		return nil
	}
	if r.browserCancel != nil {
		r.browserCancel()
	}
	if r.allocCancel != nil {
		r.allocCancel()
	}
	return nil
}

func (r *ChromiumRasterizer) viewport() (int64, int64) {
	width, height := r.ViewportWidth, r.ViewportHeight
	if width <= 0 {
		width = defaultViewportWidth
	}
	if height <= 0 {
		height = defaultViewportHeight
	}
	return width, height
}

func (r *ChromiumRasterizer) ensureBrowser() error {
	r.initOnce.Do(func() {
		options := append([]chromedp.ExecAllocatorOption{}, chromedp.DefaultExecAllocatorOptions[:]...)
		if r.BrowserPath != "" {
			options = append(options, chromedp.ExecPath(r.BrowserPath))
		}
		options = append(options, chromedp.Flag("headless", r.Headless))
		for name, value := range r.Args {
			options = append(options, chromedp.Flag(name, value))
		}

		r.allocCtx, r.allocCancel = chromedp.NewExecAllocator(context.Background(), options...)
		r.browserCtx, r.browserCancel = chromedp.NewContext(r.allocCtx)
	})
	if r.allocCtx == nil || r.browserCtx == nil {
		return errors.New("chromium allocator unavailable")
	}
	return nil
}
