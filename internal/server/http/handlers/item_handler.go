package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/solarteam/purchaseline/internal/domain/errors"
	"github.com/solarteam/purchaseline/internal/domain/model"
	"github.com/solarteam/purchaseline/internal/server/http/dto"
)

// ItemHandler manages item and inventory endpoints.
type ItemHandler struct {
	facade ItemFacade
}

// NewItemHandler constructs ItemHandler.
func NewItemHandler(facade ItemFacade) *ItemHandler {
	return &ItemHandler{facade: facade}
}

// CreateInventory handles POST /api/items.
func (h *ItemHandler) CreateInventory(c *gin.Context) {
	var req dto.InventoryItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}
	if req.Name == "" {
		c.Status(http.StatusBadRequest)
		return
	}

	item, err := h.facade.CreateInventoryItem(c.Request.Context(), model.Item{
		Name:        req.Name,
		Vendor:      req.Vendor,
		Quantity:    req.Quantity,
		Price:       req.Price,
		PartNumber:  req.PartNumber,
		Link:        req.Link,
		Notes:       req.Notes,
		InternalSKU: req.InternalSKU,
		Stock:       req.Stock,
		Location:    req.Location,
	})
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}
	c.JSON(http.StatusCreated, toItemResponse(*item))
}

// Inventory handles GET /api/items/inventory.
func (h *ItemHandler) Inventory(c *gin.Context) {
	items, err := h.facade.InventoryItems(c.Request.Context())
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}
	c.JSON(http.StatusOK, toItemResponses(items))
}

// UpdateStatus handles PUT /api/items/:id/status.
func (h *ItemHandler) UpdateStatus(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		c.Status(http.StatusBadRequest)
		return
	}

	var req dto.ItemStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}
	status, ok := model.ParseItemStatus(req.Status)
	if !ok {
		c.Status(http.StatusUnprocessableEntity)
		return
	}

	item, err := h.facade.UpdateItemStatus(c.Request.Context(), id, status)
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrNotFound):
			c.Status(http.StatusNotFound)
		case errors.Is(err, domainErrors.ErrInvalidStatus):
			c.Status(http.StatusUnprocessableEntity)
		default:
			c.Status(http.StatusInternalServerError)
		}
		return
	}
	c.JSON(http.StatusOK, toItemResponse(*item))
}

// Update handles PATCH /api/items/:id.
func (h *ItemHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		c.Status(http.StatusBadRequest)
		return
	}

	var req dto.ItemUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	item, err := h.facade.UpdateItem(c.Request.Context(), id, model.ItemUpdate{
		Name:        req.Name,
		Vendor:      req.Vendor,
		Quantity:    req.Quantity,
		Price:       req.Price,
		PartNumber:  req.PartNumber,
		Link:        req.Link,
		Notes:       req.Notes,
		InternalSKU: req.InternalSKU,
		Stock:       req.Stock,
		Location:    req.Location,
	})
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrNotFound):
			c.Status(http.StatusNotFound)
		default:
			c.Status(http.StatusInternalServerError)
		}
		return
	}
	c.JSON(http.StatusOK, toItemResponse(*item))
}

// Delete handles DELETE /api/items/:id.
func (h *ItemHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		c.Status(http.StatusBadRequest)
		return
	}

	if err := h.facade.DeleteItem(c.Request.Context(), id); err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrNotFound):
			c.Status(http.StatusNotFound)
		default:
			c.Status(http.StatusInternalServerError)
		}
		return
	}
	c.Status(http.StatusNoContent)
}

func toItemResponse(item model.Item) dto.ItemResponse {
	return dto.ItemResponse{
		ID:          item.ID,
		HumanID:     item.HumanID,
		OrderID:     item.OrderID,
		Name:        item.Name,
		Vendor:      item.Vendor,
		Quantity:    item.Quantity,
		Price:       item.Price,
		Status:      string(item.Status),
		PartNumber:  item.PartNumber,
		Link:        item.Link,
		Notes:       item.Notes,
		InternalSKU: item.InternalSKU,
		Stock:       item.Stock,
		Location:    item.Location,
		CreatedAt:   item.CreatedAt,
		UpdatedAt:   item.UpdatedAt,
	}
}

func toItemResponses(items []model.Item) []dto.ItemResponse {
	out := make([]dto.ItemResponse, 0, len(items))
	for _, it := range items {
		out = append(out, toItemResponse(it))
	}
	return out
}
