package onboard_business

import (
	"fmt"
	"net/mail"
	"strings"
)

// validateRequest проверяет поля запроса до разбора документа
func validateRequest(req Request) []string {
	var errs []string

	if strings.TrimSpace(req.SourceText) == "" {
		errs = append(errs, "sourceText: document is required")
	}

	email := strings.TrimSpace(req.OwnerEmail)
	if email == "" {
		errs = append(errs, "ownerEmail: email is required")
	} else if addr, err := mail.ParseAddress(email); err != nil || addr.Address != email {
		errs = append(errs, fmt.Sprintf("ownerEmail: %q is not a valid email address", email))
	}

	return errs
}
