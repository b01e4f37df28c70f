package web

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"

	"lovestudio/export"
	"lovestudio/forms"
	"lovestudio/models"
	"lovestudio/render"
	"lovestudio/storage"
	"lovestudio/theme"
	"lovestudio/utils"
)

// Exporter produces the PDF and print documents of a card
type Exporter interface {
	SavePDF(ctx context.Context, record models.CardRecord) (*export.Document, error)
	PrintHTML(record models.CardRecord) ([]byte, error)
}

type CardHandler struct {
	cards    *storage.CardStore
	exporter Exporter
}

func NewCardHandler(cards *storage.CardStore, exporter Exporter) *CardHandler {
	return &CardHandler{
		cards:    cards,
		exporter: exporter,
	}
}

// ShowInput renders the form, pre-filled from the saved card when there is one
func (h *CardHandler) ShowInput(c *fiber.Ctx) error {
	record, err := h.cards.Load()
	switch {
	case errors.Is(err, storage.ErrCardNotFound):
		record = nil
	case errors.Is(err, storage.ErrMalformedCard):
		// Start over with an empty form
		utils.Log.Warn("Ignoring unreadable saved card: %v", err)
		record = nil
	case err != nil:
		return utils.InternalServerError(utils.T("error_500"), err)
	}

	return h.renderInput(c, forms.FromRecord(record), "")
}

// HandleGenerate validates the submitted form, saves the card and shows the preview
func (h *CardHandler) HandleGenerate(c *fiber.Ctx) error {
	form := forms.CardForm{
		SenderName:    c.FormValue("senderName"),
		RecipientName: c.FormValue("recipientName"),
		Message:       c.FormValue("message"),
		Theme:         models.ParseTheme(c.FormValue("theme")),
		SpecialDay:    models.ParseOccasion(c.FormValue("specialDay")),
	}

	var saveErr error
	err := form.Submit(func(record models.CardRecord) {
		saveErr = h.cards.Save(record)
	})

	var validationErr *forms.ValidationError
	if errors.As(err, &validationErr) {
		utils.Log.Debug("Card form rejected, missing %v", validationErr.Fields)
		c.Status(fiber.StatusBadRequest)
		return h.renderInput(c, form, validationErr.Message)
	}
	if err != nil {
		return utils.InternalServerError(utils.T("error_500"), err)
	}
	if saveErr != nil {
		return utils.InternalServerError(utils.T("error_500"), saveErr)
	}

	return c.Redirect(models.ViewPreview.Path(), fiber.StatusSeeOther)
}

// ShowPreview renders the themed card with its toolbar
func (h *CardHandler) ShowPreview(c *fiber.Ctx) error {
	record, err := h.savedRecord()
	if errors.Is(err, storage.ErrCardNotFound) {
		return c.Redirect(models.ViewInput.Path(), fiber.StatusSeeOther)
	}
	if err != nil {
		return err
	}

	return c.Render("preview", page(c, fiber.Map{
		"Card": render.NewCardView(*record),
	}))
}

// ShowPrint serves the card-only document that opens the print dialog
func (h *CardHandler) ShowPrint(c *fiber.Ctx) error {
	record, err := h.savedRecord()
	if errors.Is(err, storage.ErrCardNotFound) {
		return c.Redirect(models.ViewInput.Path(), fiber.StatusSeeOther)
	}
	if err != nil {
		return err
	}

	doc, err := h.exporter.PrintHTML(*record)
	if err != nil {
		return utils.InternalServerError(utils.T("error_500"), err)
	}

	c.Type("html", "utf-8")
	return c.Send(doc)
}

// DownloadPDF exports the saved card and sends it as an attachment
func (h *CardHandler) DownloadPDF(c *fiber.Ctx) error {
	record, err := h.savedRecord()
	if errors.Is(err, storage.ErrCardNotFound) {
		return c.Redirect(models.ViewInput.Path(), fiber.StatusSeeOther)
	}
	if err != nil {
		return err
	}

	doc, err := h.exporter.SavePDF(c.UserContext(), *record)
	switch {
	case errors.Is(err, export.ErrExportInProgress):
		return utils.ConflictError(utils.T("error_export_busy"), err)
	case errors.Is(err, export.ErrSurfaceNotFound):
		return utils.UnprocessableError(utils.T("error_export_surface"), err)
	case err != nil:
		return utils.InternalServerError(utils.T("error_export_failed"), err)
	}

	c.Attachment(doc.Filename)
	c.Set("X-Export-ID", doc.ID)
	return c.Send(doc.Data)
}

// savedRecord loads the card, turning an unreadable one into a user-facing error
func (h *CardHandler) savedRecord() (*models.CardRecord, error) {
	record, err := h.cards.Load()
	switch {
	case err == nil:
		return record, nil
	case errors.Is(err, storage.ErrCardNotFound):
		return nil, err
	case errors.Is(err, storage.ErrMalformedCard):
		return nil, utils.InternalServerError(utils.T("error_card_unreadable"), err)
	default:
		return nil, utils.InternalServerError(utils.T("error_500"), err)
	}
}

func (h *CardHandler) renderInput(c *fiber.Ctx, form forms.CardForm, message string) error {
	return c.Render("input", page(c, fiber.Map{
		"Form":      form,
		"Occasions": models.Occasions,
		"Themes":    theme.All(),
		"Error":     message,
	}))
}
