package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/solarteam/purchaseline/internal/domain/errors"
	"github.com/solarteam/purchaseline/internal/domain/model"
	"github.com/solarteam/purchaseline/internal/export"
	"github.com/solarteam/purchaseline/internal/server/http/dto"
)

// OrderHandler manages order-related endpoints.
type OrderHandler struct {
	facade PurchasingFacade
}

// NewOrderHandler constructs OrderHandler.
func NewOrderHandler(facade PurchasingFacade) *OrderHandler {
	return &OrderHandler{facade: facade}
}

// Create handles POST /api/orders.
func (h *OrderHandler) Create(c *gin.Context) {
	var req dto.OrderCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}
	if req.Name == "" {
		c.Status(http.StatusBadRequest)
		return
	}
	if !model.CostBreakdown(req.CostBreakdown).Valid() {
		c.Status(http.StatusUnprocessableEntity)
		return
	}

	order := model.Order{
		Name:          req.Name,
		Vendor:        req.Vendor,
		CartURL:       req.CartURL,
		Comments:      req.Comments,
		CostBreakdown: req.CostBreakdown,
		UserID:        CurrentUserID(c),
	}
	items := make([]model.Item, 0, len(req.Items))
	for _, it := range req.Items {
		items = append(items, model.Item{
			Name:       it.Name,
			Vendor:     it.Vendor,
			Quantity:   it.Quantity,
			Price:      it.Price,
			PartNumber: it.PartNumber,
			Link:       it.Link,
			Notes:      it.Notes,
		})
	}

	created, createdItems, err := h.facade.CreateOrder(c.Request.Context(), order, items)
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrInvalidCostBreakdown):
			c.Status(http.StatusUnprocessableEntity)
		default:
			c.Status(http.StatusInternalServerError)
		}
		return
	}

	c.JSON(http.StatusCreated, dto.OrderDetailResponse{
		Order:     toOrderResponse(*created),
		Items:     toItemResponses(createdItems),
		Documents: []dto.DocumentResponse{},
	})
}

// List handles GET /api/orders. Admin roles see every order, everyone else
// sees their own.
func (h *OrderHandler) List(c *gin.Context) {
	orders, err := h.visibleOrders(c)
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}

	response := make([]dto.OrderResponse, 0, len(orders))
	for _, o := range orders {
		response = append(response, toOrderResponse(o))
	}
	c.JSON(http.StatusOK, response)
}

// Detail handles GET /api/orders/:id.
func (h *OrderHandler) Detail(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		c.Status(http.StatusBadRequest)
		return
	}

	order, items, docs, err := h.facade.OrderDetail(c.Request.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrNotFound):
			c.Status(http.StatusNotFound)
		default:
			c.Status(http.StatusInternalServerError)
		}
		return
	}

	user, err := h.facade.UserByID(c.Request.Context(), CurrentUserID(c))
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}
	if order.UserID != user.ID && !isAdmin(user.Role) {
		c.Status(http.StatusNotFound)
		return
	}

	c.JSON(http.StatusOK, dto.OrderDetailResponse{
		Order:     toOrderResponse(*order),
		Items:     toItemResponses(items),
		Documents: toDocumentResponses(docs),
	})
}

// UpdateStatus handles PUT /api/orders/:id/status.
func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		c.Status(http.StatusBadRequest)
		return
	}

	var req dto.OrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	status, ok := model.ParseOrderStatus(req.Status)
	if !ok {
		c.Status(http.StatusUnprocessableEntity)
		return
	}
	if !model.CostBreakdown(req.CostBreakdown).Valid() {
		c.Status(http.StatusUnprocessableEntity)
		return
	}

	order, items, err := h.facade.UpdateOrderStatus(c.Request.Context(), id, model.OrderUpdate{
		Status:        status,
		TotalCost:     req.TotalCost,
		CostVerified:  req.CostVerified,
		Carrier:       req.Carrier,
		TrackingID:    req.TrackingID,
		MeenOrderID:   req.MeenOrderID,
		Comments:      req.Comments,
		CostBreakdown: req.CostBreakdown,
	})
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrNotFound):
			c.Status(http.StatusNotFound)
		case errors.Is(err, domainErrors.ErrInvalidStatus), errors.Is(err, domainErrors.ErrInvalidCostBreakdown):
			c.Status(http.StatusUnprocessableEntity)
		default:
			c.Status(http.StatusInternalServerError)
		}
		return
	}

	c.JSON(http.StatusOK, dto.OrderDetailResponse{
		Order:     toOrderResponse(*order),
		Items:     toItemResponses(items),
		Documents: []dto.DocumentResponse{},
	})
}

// Delete handles DELETE /api/orders/:id.
func (h *OrderHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		c.Status(http.StatusBadRequest)
		return
	}

	order, _, _, err := h.facade.OrderDetail(c.Request.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrNotFound):
			c.Status(http.StatusNotFound)
		default:
			c.Status(http.StatusInternalServerError)
		}
		return
	}

	user, err := h.facade.UserByID(c.Request.Context(), CurrentUserID(c))
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}
	if order.UserID != user.ID && !isAdmin(user.Role) {
		c.Status(http.StatusForbidden)
		return
	}

	if err := h.facade.DeleteOrder(c.Request.Context(), id); err != nil {
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

// AttachDocument handles POST /api/orders/:id/documents.
func (h *OrderHandler) AttachDocument(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		c.Status(http.StatusBadRequest)
		return
	}

	var req dto.DocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}
	kind, ok := model.ParseDocumentKind(req.Kind)
	if !ok {
		c.Status(http.StatusUnprocessableEntity)
		return
	}
	if req.Name == "" || req.URL == "" {
		c.Status(http.StatusBadRequest)
		return
	}

	doc, err := h.facade.AttachDocument(c.Request.Context(), model.Document{
		OrderID: id,
		Kind:    kind,
		Name:    req.Name,
		URL:     req.URL,
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

	c.JSON(http.StatusCreated, toDocumentResponse(*doc))
}

// SubteamSpend handles GET /api/budget/subteams.
func (h *OrderHandler) SubteamSpend(c *gin.Context) {
	spend, err := h.facade.SubteamSpend(c.Request.Context())
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}
	c.JSON(http.StatusOK, dto.SubteamSpendResponse{Subteams: spend})
}

// Export handles GET /api/orders/export with an xlsx attachment.
func (h *OrderHandler) Export(c *gin.Context) {
	orders, err := h.visibleOrders(c)
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}

	workbook, err := export.OrdersWorkbook(orders)
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}
	defer workbook.Close()

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", `attachment; filename="orders.xlsx"`)
	c.Status(http.StatusOK)
	if err := workbook.Write(c.Writer); err != nil {
		c.Abort()
	}
}

func (h *OrderHandler) visibleOrders(c *gin.Context) ([]model.Order, error) {
	user, err := h.facade.UserByID(c.Request.Context(), CurrentUserID(c))
	if err != nil {
		return nil, err
	}
	if isAdmin(user.Role) {
		return h.facade.Orders(c.Request.Context())
	}
	return h.facade.OrdersByUser(c.Request.Context(), user.ID)
}

func toOrderResponse(order model.Order) dto.OrderResponse {
	return dto.OrderResponse{
		ID:            order.ID,
		HumanID:       order.HumanID,
		MeenOrderID:   order.MeenOrderID,
		Name:          order.Name,
		Vendor:        order.Vendor,
		CartURL:       order.CartURL,
		Status:        string(order.Status),
		TotalCost:     order.TotalCost,
		CostVerified:  order.CostVerified,
		Comments:      order.Comments,
		Carrier:       order.Carrier,
		TrackingID:    order.TrackingID,
		CostBreakdown: order.CostBreakdown,
		UserID:        order.UserID,
		CreatedAt:     order.CreatedAt,
		UpdatedAt:     order.UpdatedAt,
	}
}

func toDocumentResponse(doc model.Document) dto.DocumentResponse {
	return dto.DocumentResponse{
		ID:        doc.ID,
		OrderID:   doc.OrderID,
		Kind:      string(doc.Kind),
		Name:      doc.Name,
		URL:       doc.URL,
		CreatedAt: doc.CreatedAt,
	}
}

func toDocumentResponses(docs []model.Document) []dto.DocumentResponse {
	out := make([]dto.DocumentResponse, 0, len(docs))
	for _, d := range docs {
		out = append(out, toDocumentResponse(d))
	}
	return out
}
