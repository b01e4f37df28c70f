package export

import (
	"image"
	"io"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/pdf"
	"seehuhn.de/go/pdf/document"
	"seehuhn.de/go/pdf/graphics/color"
	pdfimage "seehuhn.de/go/pdf/graphics/image"
)

// WritePDF writes a single page document of the layout's page size with img
// drawn once at the layout position.
func WritePDF(w io.Writer, img image.Image, layout Layout) error {
	return writePDF(w, img, layout, nil)
}

func writePDF(w io.Writer, img image.Image, layout Layout, opt *pdf.WriterOptions) error {
	bounds := img.Bounds()
	if bounds.Dx() <= 0 || bounds.Dy() <= 0 {
		return ErrEmptyImage
	}

	paper := &pdf.Rectangle{
		URx: MMToPoints(layout.Page.Width),
		URy: MMToPoints(layout.Page.Height),
	}
	page, err := document.WriteSinglePage(w, paper, pdf.V1_7, opt)
	if err != nil {
		return err
	}

	left, bottom := placement(layout)

	page.PushGraphicsState()
	page.Transform(matrix.Translate(left, bottom))
	page.Transform(matrix.Scale(MMToPoints(layout.Width), MMToPoints(layout.Height)))
	page.DrawXObject(pdfimage.FromImage(img, color.DeviceRGBSpace, 8))
	page.PopGraphicsState()

	return page.Close()
}

// placement returns the image's lower-left corner in PDF points.
// PDF user space starts at the bottom-left corner of the page.
func placement(layout Layout) (left, bottom float64) {
	return MMToPoints(layout.X), MMToPoints(layout.Page.Height - layout.Y - layout.Height)
}
