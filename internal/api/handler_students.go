package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GetStudents handles GET /api/students.
func (h *Handler) GetStudents(c *gin.Context) {
	c.JSON(http.StatusOK, h.ledger.Students())
}

type createStudentRequest struct {
	Name    string `json:"name" binding:"required"`
	ClassID string `json:"classId" binding:"required"`
}

// PostStudent handles POST /api/students.
func (h *Handler) PostStudent(c *gin.Context) {
	var req createStudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	name, err := cleanName(req.Name, MaxNameLength)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	student, err := h.ledger.AddStudent(c.Request.Context(), name, req.ClassID)
	if err != nil {
		writeLedgerError(c, err)
		return
	}
	c.JSON(http.StatusCreated, student)
}

// DeleteStudent handles DELETE /api/students/:id. Outstanding loans held by
// the student are returned as part of the delete.
func (h *Handler) DeleteStudent(c *gin.Context) {
	if err := h.ledger.DeleteStudent(c.Request.Context(), c.Param("id")); err != nil {
		writeLedgerError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
