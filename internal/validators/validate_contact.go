package validators

import (
	"fmt"
	"net/mail"
	"storefront/internal/models"
	"strings"
	"unicode/utf8"
)

const (
	MaxContactNameLength    = 100
	MaxContactSubjectLength = 200
	MaxContactMessageLength = 5000
)

// ValidateContactMessage checks a contact form submission before it's published
func ValidateContactMessage(msg models.ContactMessage) error {
	if strings.TrimSpace(msg.Name) == "" {
		return fmt.Errorf("name is required")
	}
	if utf8.RuneCountInString(msg.Name) > MaxContactNameLength {
		return fmt.Errorf("name must be at most %d characters", MaxContactNameLength)
	}
	if strings.TrimSpace(msg.Email) == "" {
		return fmt.Errorf("email is required")
	}
	if !isValidEmail(msg.Email) {
		return fmt.Errorf("email has invalid format")
	}
	if utf8.RuneCountInString(msg.Subject) > MaxContactSubjectLength {
		return fmt.Errorf("subject must be at most %d characters", MaxContactSubjectLength)
	}
	if strings.TrimSpace(msg.Message) == "" {
		return fmt.Errorf("message is required")
	}
	if utf8.RuneCountInString(msg.Message) > MaxContactMessageLength {
		return fmt.Errorf("message must be at most %d characters", MaxContactMessageLength)
	}
	return nil
}

// isValidEmail accepts bare addresses only, "Name <a@b.c>" is rejected
func isValidEmail(email string) bool {
	addr, err := mail.ParseAddress(email)
	return err == nil && addr.Address == email
}
