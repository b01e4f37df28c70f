// Package render turns a card record into themed HTML. The same engine backs
// the web views and the standalone documents used for printing and export.
package render

import (
	"fmt"
	"html/template"
	"io"
	"math/rand/v2"
	"net/http"

	"github.com/gofiber/template/html/v2"

	"lovestudio/models"
	"lovestudio/templates"
	"lovestudio/theme"
	"lovestudio/utils"
)

// SurfaceSelector locates the card surface inside a rendered document
const SurfaceSelector = "#card"

// CaptureLayout wraps standalone card documents
const CaptureLayout = "layouts/capture"

// NewEngine builds the template engine over the embedded views
func NewEngine(reload bool) *html.Engine {
	engine := html.NewFileSystem(http.FS(templates.FS), ".html")

	engine.AddFunc("t", utils.T)
	engine.AddFunc("css", func(property, value string) template.CSS {
		return template.CSS(property + ":" + value + ";")
	})

	engine.Reload(reload)
	return engine
}

// CardStyle holds the bundle's styles as trusted inline CSS
type CardStyle struct {
	Container template.CSS
	Card      template.CSS
	Title     template.CSS
	Recipient template.CSS
	Message   template.CSS
	Sender    template.CSS
	Caption   template.CSS
	Signature template.CSS
	Toolbar   template.CSS
	Button    template.CSS
	Footer    template.CSS
}

// CardView is the template model for one card
type CardView struct {
	Record models.CardRecord
	Theme  theme.Bundle
	Style  CardStyle
	Title  string
	Footer string
}

// NewCardView resolves the record's theme and prepares the template model
func NewCardView(record models.CardRecord) CardView {
	bundle := theme.Resolve(record.Theme)

	return CardView{
		Record: record,
		Theme:  bundle,
		Title:  utils.TWithData("card_title", map[string]interface{}{"Occasion": record.SpecialDay}),
		Footer: utils.TWithData("card_footer", map[string]interface{}{"Recipient": record.RecipientName}),
		Style: CardStyle{
			Container: template.CSS(fmt.Sprintf("background:%s;", bundle.ContainerBackground)),
			Card: template.CSS(fmt.Sprintf("background:%s;border:%s;box-shadow:%s;color:%s;--accent:%s;",
				bundle.CardBackground, bundle.CardBorder, bundle.CardShadow, bundle.CardColor, bundle.Accent)),
			Title:     template.CSS(bundle.Title.CSS()),
			Recipient: template.CSS(bundle.Recipient.CSS()),
			Message:   template.CSS(bundle.Message.CSS()),
			Sender:    template.CSS(bundle.Sender.CSS()),
			Caption:   template.CSS(bundle.Caption.CSS()),
			Signature: template.CSS(fmt.Sprintf("color:%s;", bundle.SignatureColor)),
			Toolbar: template.CSS(fmt.Sprintf("background:%s;border-color:%s;color:%s;",
				bundle.ToolbarBackground, bundle.ToolbarBorder, bundle.ToolbarColor)),
			Button: template.CSS(fmt.Sprintf("background:%s;", bundle.ButtonBackground)),
			Footer: template.CSS(fmt.Sprintf("color:%s;background:%s;",
				bundle.FooterColor, bundle.FooterBackground)),
		},
	}
}

// Heart is one floating heart of the page background
type Heart struct {
	Style template.CSS
}

// Hearts lays out n background hearts at random positions, delays and sizes
func Hearts(n int) []Heart {
	hearts := make([]Heart, 0, n)
	for i := 0; i < n; i++ {
		x := rand.Float64() * 100
		delay := rand.Float64() * 10
		size := rand.Float64()*20 + 20
		hearts = append(hearts, Heart{
			Style: template.CSS(fmt.Sprintf("left:%.2f%%;animation-delay:%.2fs;width:%.0fpx;height:%.0fpx;", x, delay, size, size)),
		})
	}
	return hearts
}

// Renderer writes standalone card documents
type Renderer struct {
	engine *html.Engine
}

// New creates a renderer sharing the given engine
func New(engine *html.Engine) *Renderer {
	return &Renderer{engine: engine}
}

// RenderCard writes a document containing only the card surface
func (r *Renderer) RenderCard(w io.Writer, record models.CardRecord) error {
	return r.engine.Render(w, "card", NewCardView(record), CaptureLayout)
}

// RenderPrint writes the card document that opens the print dialog on load
func (r *Renderer) RenderPrint(w io.Writer, record models.CardRecord) error {
	return r.engine.Render(w, "print", NewCardView(record), CaptureLayout)
}
