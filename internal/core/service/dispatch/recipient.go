package dispatch

import (
	"fmt"
	"net/mail"
	"strings"

	"file-researcher/internal/core/domain"
)

// normalizeRecipient returns the bare address of recipient, empty when none was given
func normalizeRecipient(recipient string) (string, error) {
	recipient = strings.TrimSpace(recipient)
	if recipient == "" {
		return "", nil
	}
	addr, err := mail.ParseAddress(recipient)
	if err != nil {
		return "", fmt.Errorf("%w: %s", domain.ErrInvalidRecipient, recipient)
	}
	return addr.Address, nil
}

// resolveRecipient falls back to the default address when none was requested
func resolveRecipient(requested, fallback string) (string, error) {
	if requested != "" {
		return requested, nil
	}
	return normalizeRecipient(fallback)
}
