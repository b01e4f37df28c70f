package export

import (
	"fmt"
	"math"
	"strings"
)

// PageSize is a page in millimetres, portrait orientation
type PageSize struct {
	Name   string
	Width  float64
	Height float64
}

// PageA4 is ISO A4 portrait
var PageA4 = PageSize{Name: "A4", Width: 210, Height: 297}

var pageSizes = map[string]PageSize{
	"A4": PageA4,
}

// LookupPageSize finds a supported page by name
func LookupPageSize(name string) (PageSize, error) {
	size, ok := pageSizes[strings.ToUpper(strings.TrimSpace(name))]
	if !ok {
		return PageSize{}, fmt.Errorf("unsupported page size: %s", name)
	}
	return size, nil
}

// Layout places an image on a page. Lengths are millimetres measured from the top-left corner.
type Layout struct {
	Page   PageSize
	Margin float64
	Scale  float64 // millimetres per image pixel
	X      float64
	Y      float64
	Width  float64
	Height float64
}

// FitToPage scales an image of imgW×imgH pixels uniformly so it fits inside
// the page minus margin on every side, and centres it.
func FitToPage(page PageSize, margin float64, imgW, imgH int) (Layout, error) {
	if imgW <= 0 || imgH <= 0 {
		return Layout{}, ErrEmptyImage
	}
	if margin < 0 {
		return Layout{}, fmt.Errorf("negative margin %.2fmm", margin)
	}

	maxWidth := page.Width - 2*margin
	maxHeight := page.Height - 2*margin
	if maxWidth <= 0 || maxHeight <= 0 {
		return Layout{}, fmt.Errorf("margin %.2fmm leaves no room on %s", margin, page.Name)
	}

	scale := math.Min(maxWidth/float64(imgW), maxHeight/float64(imgH))
	width := float64(imgW) * scale
	height := float64(imgH) * scale

	return Layout{
		Page:   page,
		Margin: margin,
		Scale:  scale,
		X:      (page.Width - width) / 2,
		Y:      (page.Height - height) / 2,
		Width:  width,
		Height: height,
	}, nil
}

// MMToPoints converts millimetres to PDF points
func MMToPoints(mm float64) float64 {
	return mm * 72 / 25.4
}
