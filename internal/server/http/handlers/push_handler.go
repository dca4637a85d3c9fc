package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	domainErrors "github.com/solarteam/purchaseline/internal/domain/errors"
	"github.com/solarteam/purchaseline/internal/domain/model"
	"github.com/solarteam/purchaseline/internal/server/http/dto"
)

// PushHandler manages device push token registration.
type PushHandler struct {
	facade PushFacade
}

// NewPushHandler constructs PushHandler.
func NewPushHandler(facade PushFacade) *PushHandler {
	return &PushHandler{facade: facade}
}

// Register handles POST /api/push/register.
func (h *PushHandler) Register(c *gin.Context) {
	var req dto.PushTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}
	if req.Token == "" {
		c.Status(http.StatusBadRequest)
		return
	}
	if req.DeviceID == "" {
		req.DeviceID = uuid.NewString()
	}

	err := h.facade.RegisterPushToken(c.Request.Context(), model.PushToken{
		Token:    req.Token,
		UserID:   CurrentUserID(c),
		Platform: req.Platform,
		DeviceID: req.DeviceID,
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
	c.Status(http.StatusOK)
}

// Unregister handles POST /api/push/unregister.
func (h *PushHandler) Unregister(c *gin.Context) {
	var req dto.PushUnregisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}
	if req.Token == "" {
		c.Status(http.StatusBadRequest)
		return
	}

	if err := h.facade.UnregisterPushToken(c.Request.Context(), req.Token); err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}
	c.Status(http.StatusOK)
}
