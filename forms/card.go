// Package forms holds the card form: it trims and validates user input and
// hands a finished record to the caller.
package forms

import (
	"errors"
	"sort"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"lovestudio/models"
	"lovestudio/utils"
)

var (
	validatorOnce sync.Once
	validateInst  *validator.Validate
)

func validatorInstance() *validator.Validate {
	validatorOnce.Do(func() {
		validateInst = validator.New()
	})
	return validateInst
}

// ValidationError is returned by Submit when a required field is empty
type ValidationError struct {
	Message string
	Fields  []string
}

func (e *ValidationError) Error() string {
	return e.Message + " (" + strings.Join(e.Fields, ", ") + ")"
}

// CardForm holds the editable state of the input view
type CardForm struct {
	SenderName    string
	RecipientName string
	Message       string
	Theme         models.Theme
	SpecialDay    string
}

// FromRecord pre-populates a form. A nil record gives empty fields and defaults.
func FromRecord(record *models.CardRecord) CardForm {
	if record == nil {
		return CardForm{Theme: models.DefaultTheme, SpecialDay: models.DefaultOccasion}
	}
	rec := record.WithDefaults()
	return CardForm{
		SenderName:    rec.SenderName,
		RecipientName: rec.RecipientName,
		Message:       rec.Message,
		Theme:         rec.Theme,
		SpecialDay:    rec.SpecialDay,
	}
}

// Record assembles the trimmed record without validating it
func (f CardForm) Record() models.CardRecord {
	return models.CardRecord{
		SenderName:    strings.TrimSpace(f.SenderName),
		RecipientName: strings.TrimSpace(f.RecipientName),
		Message:       strings.TrimSpace(f.Message),
		Theme:         f.Theme,
		SpecialDay:    f.SpecialDay,
	}.WithDefaults()
}

// Submit validates the form and calls onComplete once with the record.
// On a validation failure onComplete is not called.
func (f CardForm) Submit(onComplete func(models.CardRecord)) error {
	record := f.Record()

	if err := validatorInstance().Struct(record); err != nil {
		return convertValidationError(err)
	}

	onComplete(record)
	return nil
}

func convertValidationError(err error) error {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	fields := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		fields = append(fields, jsonName(fe.Field()))
	}
	sort.Strings(fields)

	return &ValidationError{
		Message: utils.T("form_error_required"),
		Fields:  fields,
	}
}

func jsonName(field string) string {
	if field == "" {
		return field
	}
	return strings.ToLower(field[:1]) + field[1:]
}
