package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"rastbanken-backend/internal/content"
	"rastbanken-backend/internal/ledger"
)

// Input limits for names entered on the kiosk.
const (
	MaxNameLength        = 30
	MaxClassNameLength   = 10
	MaxEquipmentQuantity = 99
)

// Handler holds shared dependencies for API handlers.
type Handler struct {
	ledger *ledger.Ledger
	pins   *PINGate
}

// NewHandler creates a new API handler.
func NewHandler(l *ledger.Ledger, pins *PINGate) *Handler {
	return &Handler{
		ledger: l,
		pins:   pins,
	}
}

// writeLedgerError maps ledger error kinds onto HTTP statuses.
func writeLedgerError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ledger.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, ledger.ErrUnavailable):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, ledger.ErrInvalidQuantity):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "storage failure"})
	}
}

// cleanName validates and normalizes a user-entered name: trimmed, bounded,
// profanity-filtered, display-cased. Sanitation lives here at the API
// boundary; the ledger takes names as given.
func cleanName(raw string, maxLen int) (string, error) {
	name := strings.TrimSpace(raw)
	if name == "" {
		return "", fmt.Errorf("name is required")
	}
	if len([]rune(name)) > maxLen {
		return "", fmt.Errorf("name exceeds %d characters", maxLen)
	}
	if content.ContainsBlockedWord(name) {
		return "", fmt.Errorf("name contains disallowed words")
	}
	return content.DisplayName(name), nil
}
