package models

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"strings"
)

// Theme identifies one of the fixed card styles
type Theme string

const (
	ThemeClassic Theme = "classic"
	ThemeModern  Theme = "modern"
	ThemeMinimal Theme = "minimal"
	ThemeLuxury  Theme = "luxury"
)

// DefaultTheme is used when a record carries no theme
const DefaultTheme = ThemeClassic

// Themes lists the supported themes in picker order
var Themes = []Theme{ThemeClassic, ThemeModern, ThemeMinimal, ThemeLuxury}

// Label returns the display name shown in the theme picker
func (t Theme) Label() string {
	switch t {
	case ThemeModern:
		return "Modern"
	case ThemeMinimal:
		return "Minimal"
	case ThemeLuxury:
		return "Luxury"
	default:
		return "Classic"
	}
}

// ParseTheme maps a raw value to a known theme, falling back to classic
func ParseTheme(raw string) Theme {
	t := Theme(strings.ToLower(strings.TrimSpace(raw)))
	for _, known := range Themes {
		if t == known {
			return t
		}
	}
	return DefaultTheme
}

// DefaultOccasion is used when a record carries no occasion
const DefaultOccasion = "Valentine's Day"

// Occasions lists the days of the week a card can celebrate, in order
var Occasions = []string{
	"Rose Day",
	"Propose Day",
	"Chocolate Day",
	"Teddy Day",
	"Promise Day",
	"Hug Day",
	"Kiss Day",
	"Valentine's Day",
}

// ParseOccasion maps a raw label to a known occasion, falling back to Valentine's Day
func ParseOccasion(raw string) string {
	label := strings.TrimSpace(raw)
	for _, known := range Occasions {
		if strings.EqualFold(label, known) {
			return known
		}
	}
	return DefaultOccasion
}

// CardRecord is the single record a user composes and exports
type CardRecord struct {
	SenderName    string `json:"senderName" validate:"required"`
	RecipientName string `json:"recipientName" validate:"required"`
	Message       string `json:"message" validate:"required"`
	Theme         Theme  `json:"theme" validate:"oneof=classic modern minimal luxury"`
	SpecialDay    string `json:"specialDay" validate:"required"`
}

// WithDefaults returns a copy with theme and occasion defaults applied
func (r CardRecord) WithDefaults() CardRecord {
	r.Theme = ParseTheme(string(r.Theme))
	r.SpecialDay = ParseOccasion(r.SpecialDay)
	return r
}

// Submittable reports whether all free-text fields are non-empty after trimming
func (r CardRecord) Submittable() bool {
	return strings.TrimSpace(r.SenderName) != "" &&
		strings.TrimSpace(r.RecipientName) != "" &&
		strings.TrimSpace(r.Message) != ""
}

// Fingerprint returns a stable hash of the record contents
func (r CardRecord) Fingerprint() string {
	data, err := json.Marshal(r)
	if err != nil {
		// A struct of strings always marshals
		panic(err)
	}
	sum := sha256.Sum256(data)
	return fmt.Sprintf("%x", sum[:16])
}
