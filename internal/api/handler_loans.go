package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GetLoans handles GET /api/loans.
func (h *Handler) GetLoans(c *gin.Context) {
	c.JSON(http.StatusOK, h.ledger.ActiveLoans())
}

type createLoanRequest struct {
	StudentID   string `json:"studentId" binding:"required"`
	EquipmentID string `json:"equipmentId" binding:"required"`
}

// PostLoan handles POST /api/loans, checking out one unit.
func (h *Handler) PostLoan(c *gin.Context) {
	var req createLoanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	loan, err := h.ledger.CreateLoan(c.Request.Context(), req.StudentID, req.EquipmentID)
	if err != nil {
		writeLedgerError(c, err)
		return
	}
	c.JSON(http.StatusCreated, loan)
}

// DeleteLoan handles DELETE /api/loans/:id, returning the item.
func (h *Handler) DeleteLoan(c *gin.Context) {
	if err := h.ledger.ReturnLoan(c.Request.Context(), c.Param("id")); err != nil {
		writeLedgerError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
