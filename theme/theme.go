// Package theme maps a card theme to the visual styles the renderer applies.
package theme

import (
	"fmt"
	"strings"

	"lovestudio/models"
)

const (
	fontRomantic = "'Great Vibes', 'Brush Script MT', cursive"
	fontElegant  = "'Parisienne', 'Segoe Script', cursive"
	fontSerif    = "'Cormorant Garamond', Georgia, 'Times New Roman', serif"
	fontSans     = "'Helvetica Neue', Arial, sans-serif"

	gold = "#D4AF37"
)

// Typography describes how one text block of the card is set
type Typography struct {
	Family        string `json:"family"`
	Size          string `json:"size"`
	Weight        string `json:"weight"`
	Style         string `json:"style"`
	Color         string `json:"color"`
	LetterSpacing string `json:"letterSpacing"`
	Transform     string `json:"transform"`
}

// CSS renders the typography as inline style declarations
func (t Typography) CSS() string {
	var b strings.Builder
	fmt.Fprintf(&b, "font-family:%s;", t.Family)
	fmt.Fprintf(&b, "font-size:%s;", t.Size)
	fmt.Fprintf(&b, "font-weight:%s;", t.Weight)
	fmt.Fprintf(&b, "font-style:%s;", t.Style)
	fmt.Fprintf(&b, "color:%s;", t.Color)
	fmt.Fprintf(&b, "letter-spacing:%s;", t.LetterSpacing)
	fmt.Fprintf(&b, "text-transform:%s;", t.Transform)
	return b.String()
}

// Decorations toggles the theme-specific ornaments drawn on the card
type Decorations struct {
	CornerHearts   bool `json:"cornerHearts"`
	GlowOrbs       bool `json:"glowOrbs"`
	WatermarkHeart bool `json:"watermarkHeart"`
	HeaderDivider  bool `json:"headerDivider"`
	GoldFrame      bool `json:"goldFrame"`
	CornerBrackets bool `json:"cornerBrackets"`
	StarSparkle    bool `json:"starSparkle"`
	SignatureHeart bool `json:"signatureHeart"`
}

// Bundle is the complete set of styles for one theme
type Bundle struct {
	ID    models.Theme `json:"id"`
	Label string       `json:"label"`

	ContainerBackground string `json:"containerBackground"`
	CardBackground      string `json:"cardBackground"`
	CardBorder          string `json:"cardBorder"`
	CardShadow          string `json:"cardShadow"`
	CardColor           string `json:"cardColor"`

	Title     Typography `json:"title"`
	Recipient Typography `json:"recipient"`
	Message   Typography `json:"message"`
	Sender    Typography `json:"sender"`
	Caption   Typography `json:"caption"`

	Accent         string `json:"accent"`
	SignatureColor string `json:"signatureColor"`

	ToolbarBackground string `json:"toolbarBackground"`
	ToolbarBorder     string `json:"toolbarBorder"`
	ToolbarColor      string `json:"toolbarColor"`
	ButtonBackground  string `json:"buttonBackground"`
	FooterColor       string `json:"footerColor"`
	FooterBackground  string `json:"footerBackground"`

	// Swatch is the small preview tile used by the theme picker
	Swatch string `json:"swatch"`

	Decorations Decorations `json:"decorations"`
}

// Resolve returns the style bundle for a theme. Unknown themes get classic.
func Resolve(t models.Theme) Bundle {
	switch t {
	case models.ThemeModern:
		return Bundle{
			ID:                  models.ThemeModern,
			Label:               models.ThemeModern.Label(),
			ContainerBackground: "linear-gradient(45deg, #f472b6, #fb7185, #fdba74)",
			CardBackground:      "rgba(255, 255, 255, 0.4)",
			CardBorder:          "1px solid rgba(255, 255, 255, 0.5)",
			CardShadow:          "0 25px 50px -12px rgba(0, 0, 0, 0.25)",
			CardColor:           "#881337",
			Title:               Typography{Family: fontSerif, Size: "48px", Weight: "400", Style: "italic", Color: "#4c0519", LetterSpacing: "-0.025em", Transform: "none"},
			Recipient:           Typography{Family: fontSans, Size: "24px", Weight: "700", Style: "normal", Color: "#9f1239", LetterSpacing: "0.025em", Transform: "uppercase"},
			Message:             Typography{Family: fontSans, Size: "20px", Weight: "500", Style: "italic", Color: "#881337", LetterSpacing: "normal", Transform: "none"},
			Sender:              Typography{Family: fontRomantic, Size: "60px", Weight: "400", Style: "normal", Color: "#4c0519", LetterSpacing: "normal", Transform: "none"},
			Caption:             Typography{Family: fontSans, Size: "10px", Weight: "900", Style: "normal", Color: "rgba(136, 19, 55, 0.8)", LetterSpacing: "0.6em", Transform: "uppercase"},
			Accent:              "rgba(249, 115, 22, 0.2)",
			SignatureColor:      "#fb7185",
			ToolbarBackground:   "rgba(255, 255, 255, 0.3)",
			ToolbarBorder:       "rgba(255, 255, 255, 0.4)",
			ToolbarColor:        "#881337",
			ButtonBackground:    "rgba(255, 255, 255, 0.3)",
			FooterColor:         "rgba(251, 113, 133, 0.5)",
			FooterBackground:    "rgba(255, 255, 255, 0.5)",
			Swatch:              "linear-gradient(to top right, #f472b6, #fdba74)",
			Decorations:         Decorations{GlowOrbs: true, SignatureHeart: true},
		}
	case models.ThemeMinimal:
		return Bundle{
			ID:                  models.ThemeMinimal,
			Label:               models.ThemeMinimal.Label(),
			ContainerBackground: "#fff1f2",
			CardBackground:      "#ffffff",
			CardBorder:          "1px solid #ffe4e6",
			CardShadow:          "0 8px 32px rgba(244, 63, 94, 0.04)",
			CardColor:           "#881337",
			Title:               Typography{Family: fontSerif, Size: "14px", Weight: "700", Style: "normal", Color: "#f43f5e", LetterSpacing: "0.4em", Transform: "uppercase"},
			Recipient:           Typography{Family: fontSans, Size: "10px", Weight: "900", Style: "normal", Color: "#fda4af", LetterSpacing: "0.5em", Transform: "uppercase"},
			Message:             Typography{Family: fontSerif, Size: "24px", Weight: "300", Style: "italic", Color: "#9f1239", LetterSpacing: "normal", Transform: "none"},
			Sender:              Typography{Family: fontSans, Size: "10px", Weight: "900", Style: "normal", Color: "#fb7185", LetterSpacing: "0.5em", Transform: "uppercase"},
			Caption:             Typography{Family: fontSans, Size: "10px", Weight: "900", Style: "normal", Color: "rgba(244, 63, 94, 0.6)", LetterSpacing: "0.6em", Transform: "uppercase"},
			Accent:              "#fff1f2",
			SignatureColor:      "#fda4af",
			ToolbarBackground:   "rgba(255, 255, 255, 0.8)",
			ToolbarBorder:       "#ffe4e6",
			ToolbarColor:        "#e11d48",
			ButtonBackground:    "#fff1f2",
			FooterColor:         "rgba(251, 113, 133, 0.5)",
			FooterBackground:    "rgba(255, 255, 255, 0.5)",
			Swatch:              "#fff1f2",
			Decorations:         Decorations{WatermarkHeart: true, HeaderDivider: true},
		}
	case models.ThemeLuxury:
		return Bundle{
			ID:                  models.ThemeLuxury,
			Label:               models.ThemeLuxury.Label(),
			ContainerBackground: "#0A0A0A",
			CardBackground:      "linear-gradient(to bottom, #1A1A1A, #0D0D0D)",
			CardBorder:          "1px solid rgba(212, 175, 55, 0.4)",
			CardShadow:          "0 40px 100px rgba(0, 0, 0, 0.9)",
			CardColor:           gold,
			Title:               Typography{Family: fontSerif, Size: "60px", Weight: "400", Style: "italic", Color: gold, LetterSpacing: "-0.05em", Transform: "none"},
			Recipient:           Typography{Family: fontElegant, Size: "36px", Weight: "400", Style: "normal", Color: "rgba(212, 175, 55, 0.9)", LetterSpacing: "normal", Transform: "none"},
			Message:             Typography{Family: fontSerif, Size: "30px", Weight: "300", Style: "italic", Color: "#F8F5F2", LetterSpacing: "normal", Transform: "none"},
			Sender:              Typography{Family: fontElegant, Size: "60px", Weight: "400", Style: "normal", Color: gold, LetterSpacing: "normal", Transform: "none"},
			Caption:             Typography{Family: fontSans, Size: "10px", Weight: "900", Style: "normal", Color: "rgba(212, 175, 55, 0.7)", LetterSpacing: "0.6em", Transform: "uppercase"},
			Accent:              "rgba(212, 175, 55, 0.1)",
			SignatureColor:      gold,
			ToolbarBackground:   "rgba(0, 0, 0, 0.4)",
			ToolbarBorder:       "rgba(212, 175, 55, 0.3)",
			ToolbarColor:        gold,
			ButtonBackground:    "rgba(212, 175, 55, 0.1)",
			FooterColor:         "rgba(212, 175, 55, 0.4)",
			FooterBackground:    "rgba(255, 255, 255, 0.05)",
			Swatch:              "linear-gradient(to bottom, #2a0808, #120404)",
			Decorations:         Decorations{GoldFrame: true, CornerBrackets: true, StarSparkle: true, SignatureHeart: true},
		}
	default:
		return Bundle{
			ID:                  models.ThemeClassic,
			Label:               models.ThemeClassic.Label(),
			ContainerBackground: "#fff1f2",
			CardBackground:      "#fffafa",
			CardBorder:          "12px double #fecdd3",
			CardShadow:          "0 20px 25px -5px rgba(254, 205, 211, 0.5)",
			CardColor:           "#881337",
			Title:               Typography{Family: fontRomantic, Size: "72px", Weight: "400", Style: "normal", Color: "#f43f5e", LetterSpacing: "normal", Transform: "none"},
			Recipient:           Typography{Family: fontElegant, Size: "36px", Weight: "400", Style: "normal", Color: "#e11d48", LetterSpacing: "normal", Transform: "none"},
			Message:             Typography{Family: fontSerif, Size: "24px", Weight: "400", Style: "italic", Color: "#9f1239", LetterSpacing: "normal", Transform: "none"},
			Sender:              Typography{Family: fontRomantic, Size: "48px", Weight: "400", Style: "normal", Color: "#f43f5e", LetterSpacing: "normal", Transform: "none"},
			Caption:             Typography{Family: fontSans, Size: "10px", Weight: "900", Style: "normal", Color: "rgba(225, 29, 72, 0.7)", LetterSpacing: "0.6em", Transform: "uppercase"},
			Accent:              "#fecdd3",
			SignatureColor:      "#fb7185",
			ToolbarBackground:   "rgba(255, 255, 255, 0.8)",
			ToolbarBorder:       "#ffe4e6",
			ToolbarColor:        "#e11d48",
			ButtonBackground:    "#fff1f2",
			FooterColor:         "rgba(251, 113, 133, 0.5)",
			FooterBackground:    "rgba(255, 255, 255, 0.5)",
			Swatch:              "#fffafa",
			Decorations:         Decorations{CornerHearts: true, SignatureHeart: true},
		}
	}
}

// All returns the bundles of every theme in picker order
func All() []Bundle {
	bundles := make([]Bundle, 0, len(models.Themes))
	for _, t := range models.Themes {
		bundles = append(bundles, Resolve(t))
	}
	return bundles
}
