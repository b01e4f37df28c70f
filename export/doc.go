// Package export turns a rendered card into output files.
//
// Saving a PDF runs four steps: the card document is rendered to HTML, a
// headless browser captures the card surface as a high resolution raster,
// the raster is scaled uniformly to fit the page inside a fixed margin and
// centred, and a single page PDF embedding the raster as one image is written.
// Printing hands a card-only document to the browser's print dialog.
package export
