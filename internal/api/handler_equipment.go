package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"rastbanken-backend/internal/content"
)

// DefaultCategory is used when equipment is created without a category.
const DefaultCategory = "Sport"

// GetEquipment handles GET /api/equipment. Every item carries its derived
// availability.
func (h *Handler) GetEquipment(c *gin.Context) {
	c.JSON(http.StatusOK, h.ledger.AvailableEquipment())
}

type createEquipmentRequest struct {
	Name     string `json:"name" binding:"required"`
	Category string `json:"category"`
	Quantity int    `json:"quantity" binding:"required"`
}

// PostEquipment handles POST /api/equipment. A matching icon, if any, is
// resolved from the name and stored as the image URL.
func (h *Handler) PostEquipment(c *gin.Context) {
	var req createEquipmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	name, err := cleanName(req.Name, MaxNameLength)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Quantity < 1 || req.Quantity > MaxEquipmentQuantity {
		c.JSON(http.StatusBadRequest, gin.H{"error": "quantity must be between 1 and 99"})
		return
	}
	category := req.Category
	if category == "" {
		category = DefaultCategory
	}

	item, err := h.ledger.AddEquipment(c.Request.Context(), name, category, req.Quantity, content.IconURL(name))
	if err != nil {
		writeLedgerError(c, err)
		return
	}
	c.JSON(http.StatusCreated, item)
}

type updateEquipmentRequest struct {
	TotalQuantity int `json:"totalQuantity" binding:"required"`
}

// PutEquipment handles PUT /api/equipment/:id, changing total quantity.
func (h *Handler) PutEquipment(c *gin.Context) {
	var req updateEquipmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	if req.TotalQuantity < 1 || req.TotalQuantity > MaxEquipmentQuantity {
		c.JSON(http.StatusBadRequest, gin.H{"error": "quantity must be between 1 and 99"})
		return
	}

	item, err := h.ledger.UpdateEquipment(c.Request.Context(), c.Param("id"), req.TotalQuantity)
	if err != nil {
		writeLedgerError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

// DeleteEquipment handles DELETE /api/equipment/:id.
func (h *Handler) DeleteEquipment(c *gin.Context) {
	if err := h.ledger.DeleteEquipment(c.Request.Context(), c.Param("id")); err != nil {
		writeLedgerError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// GetIcons handles GET /api/icons, the static icon list the admin panel uses
// for previews. Served through the response cache.
func (h *Handler) GetIcons(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"icons": content.IconSlugs()})
}
