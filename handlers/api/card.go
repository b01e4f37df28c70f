package api

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"lovestudio/forms"
	"lovestudio/models"
	"lovestudio/storage"
	"lovestudio/theme"
	"lovestudio/utils"
)

type CardHandler struct {
	cards *storage.CardStore
}

func NewCardHandler(cards *storage.CardStore) *CardHandler {
	return &CardHandler{cards: cards}
}

// GetCard returns the saved card record
func (h *CardHandler) GetCard(c *fiber.Ctx) error {
	record, err := h.cards.Load()
	switch {
	case errors.Is(err, storage.ErrCardNotFound):
		return utils.NotFoundError(utils.T("error_card_missing"), err)
	case errors.Is(err, storage.ErrMalformedCard):
		return utils.InternalServerError(utils.T("error_card_unreadable"), err)
	case err != nil:
		return utils.InternalServerError(utils.T("error_500"), err)
	}

	return c.JSON(record)
}

// PutCard validates a JSON record and replaces the saved card with it
func (h *CardHandler) PutCard(c *fiber.Ctx) error {
	if !c.Is("json") {
		return utils.NewAppError(fiber.StatusUnsupportedMediaType, utils.T("error_unsupported_media"), nil)
	}

	var payload models.CardRecord
	if err := c.BodyParser(&payload); err != nil {
		return utils.BadRequestError("Invalid JSON body", err)
	}

	form := forms.CardForm{
		SenderName:    payload.SenderName,
		RecipientName: payload.RecipientName,
		Message:       payload.Message,
		Theme:         payload.Theme,
		SpecialDay:    payload.SpecialDay,
	}

	var (
		saved   models.CardRecord
		saveErr error
	)
	err := form.Submit(func(record models.CardRecord) {
		saved = record
		saveErr = h.cards.Save(record)
	})

	var validationErr *forms.ValidationError
	if errors.As(err, &validationErr) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":  validationErr.Message,
			"fields": validationErr.Fields,
		})
	}
	if err != nil {
		return utils.InternalServerError(utils.T("error_500"), err)
	}
	if saveErr != nil {
		return utils.InternalServerError(utils.T("error_500"), saveErr)
	}

	utils.Log.Info("Card saved through API for %s", saved.RecipientName)
	return c.JSON(saved)
}

// DeleteCard removes the saved card
func (h *CardHandler) DeleteCard(c *fiber.Ctx) error {
	if err := h.cards.Clear(); err != nil {
		return utils.InternalServerError(utils.T("error_500"), err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ListThemes returns the theme bundles in picker order
func ListThemes(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"themes":  theme.All(),
		"default": models.DefaultTheme,
	})
}

// ListOccasions returns the selectable occasions in order
func ListOccasions(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"occasions": models.Occasions,
		"default":   models.DefaultOccasion,
	})
}
