package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GetClasses handles GET /api/classes.
func (h *Handler) GetClasses(c *gin.Context) {
	c.JSON(http.StatusOK, h.ledger.Classes())
}

type createClassRequest struct {
	Name string `json:"name" binding:"required"`
}

// PostClass handles POST /api/classes.
func (h *Handler) PostClass(c *gin.Context) {
	var req createClassRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	name, err := cleanName(req.Name, MaxClassNameLength)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	class, err := h.ledger.AddClass(c.Request.Context(), name)
	if err != nil {
		writeLedgerError(c, err)
		return
	}
	c.JSON(http.StatusCreated, class)
}

// DeleteClass handles DELETE /api/classes/:id. The cascade removes the
// class's students and their loans as well.
func (h *Handler) DeleteClass(c *gin.Context) {
	if err := h.ledger.DeleteClass(c.Request.Context(), c.Param("id")); err != nil {
		writeLedgerError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
