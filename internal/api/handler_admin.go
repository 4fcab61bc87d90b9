package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type verifyPINRequest struct {
	PIN string `json:"pin" binding:"required"`
}

// VerifyPIN handles POST /api/admin/verify, the admin panel gate.
func (h *Handler) VerifyPIN(c *gin.Context) {
	var req verifyPINRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	if !h.pins.Verify(req.PIN) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "wrong pin"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

type changePINRequest struct {
	PIN    string `json:"pin" binding:"required"`
	NewPIN string `json:"newPin" binding:"required"`
}

// ChangePIN handles PUT /api/admin/pin. The current PIN must be supplied;
// the new one must be exactly four digits.
func (h *Handler) ChangePIN(c *gin.Context) {
	var req changePINRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	if !h.pins.Verify(req.PIN) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "wrong pin"})
		return
	}
	if err := h.pins.Set(req.NewPIN); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

type resetRequest struct {
	PIN string `json:"pin" binding:"required"`
}

// ResetAll handles POST /api/admin/reset: a full wipe of all four
// collections. PIN-gated; there is no selective rollback.
func (h *Handler) ResetAll(c *gin.Context) {
	var req resetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	if !h.pins.Verify(req.PIN) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "wrong pin"})
		return
	}
	if err := h.ledger.Reset(c.Request.Context()); err != nil {
		writeLedgerError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
