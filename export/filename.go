package export

import (
	"fmt"

	"lovestudio/models"
	"lovestudio/utils"
)

// Filename names the PDF after the occasion and the recipient
func Filename(record models.CardRecord) string {
	return fmt.Sprintf("%s_for_%s.pdf", record.SpecialDay, utils.UnderscoreSpaces(record.RecipientName))
}
