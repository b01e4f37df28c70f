package utils

import (
	"github.com/BurntSushi/toml"
	"github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"

	"lovestudio/locales"
)

var (
	// Bundle is the global message bundle
	Bundle *i18n.Bundle
	// Localizer resolves messages from the bundle
	Localizer *i18n.Localizer
)

func init() {
	if err := InitI18n(); err != nil {
		Log.Error("Failed to load message catalog: %v", err)
	}
}

// InitI18n loads the embedded English catalog
func InitI18n() error {
	Bundle = i18n.NewBundle(language.English)
	Bundle.RegisterUnmarshalFunc("toml", toml.Unmarshal)
	Localizer = i18n.NewLocalizer(Bundle, language.English.String())

	if _, err := Bundle.LoadMessageFileFS(locales.FS, "active.en.toml"); err != nil {
		return err
	}
	return nil
}

// T translates a message ID
func T(messageID string) string {
	msg, err := Localizer.Localize(&i18n.LocalizeConfig{
		MessageID: messageID,
	})
	if err != nil {
		Log.Debug("Message lookup error for '%s': %v", messageID, err)
		return messageID
	}
	return msg
}

// TWithData translates a message ID with template data
func TWithData(messageID string, data map[string]interface{}) string {
	msg, err := Localizer.Localize(&i18n.LocalizeConfig{
		MessageID:    messageID,
		TemplateData: data,
	})
	if err != nil {
		Log.Debug("Message lookup error for '%s': %v", messageID, err)
		return messageID
	}
	return msg
}
