package handlers

import (
	"net/http"

	"availability-service/internal/availability"
	"availability-service/internal/models"
	"availability-service/internal/repository"
	"availability-service/pkg/errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// InventoryHandler serves catalog items and their availability
type InventoryHandler struct {
	logger     *zap.Logger
	repository repository.ReadRepository
	service    *availability.Service
}

func NewInventoryHandler(logger *zap.Logger, repo repository.ReadRepository, service *availability.Service) *InventoryHandler {
	return &InventoryHandler{
		logger:     logger,
		repository: repo,
		service:    service,
	}
}

// ListItems handles GET /api/v1/items
// @Summary      List catalog items
// @Description  Lists every item ordered by group position, item position and name, each with its live availability breakdown.
// @Description  Items whose breakdown cannot be resolved report all zeros.
// @Tags         items
// @Produce      json
// @Security     BearerAuth
// @Param        X-Request-ID  header    string  false  "Request ID for request tracking (UUID)"
// @Success      200           {object}  ListItemsResponse
// @Failure      401           {object}  errors.StandardError  "Missing or invalid JWT"
// @Failure      500           {object}  errors.StandardError  "Database error"
// @Router       /items [get]
func (h *InventoryHandler) ListItems(c *gin.Context) {
	ctx := c.Request.Context()

	items, err := h.repository.ListItems(ctx)
	if err != nil {
		h.logger.Error("Failed to list items", zap.Error(err))
		c.Error(errors.NewDatabaseError("list items", err))
		c.Abort()
		return
	}

	ids := make([]uuid.UUID, len(items))
	for i := range items {
		ids[i] = items[i].ID
	}
	resolutions := h.service.ResolveAll(ctx, ids)

	response := ListItemsResponse{
		Items: make([]ItemResponse, len(items)),
		Total: len(items),
	}
	for i := range items {
		res := resolutions[items[i].ID]
		response.Items[i] = newItemResponse(&items[i], breakdownOrZero(res))
	}

	c.JSON(http.StatusOK, response)
}

// GetItem handles GET /api/v1/items/:id
// @Summary      Get item with availability
// @Description  Returns one catalog item and its availability breakdown.
// @Tags         items
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Item ID (UUID)" example(550e8400-e29b-41d4-a716-446655440000)
// @Success      200  {object}  ItemResponse
// @Failure      400  {object}  errors.StandardError  "Malformed UUID"
// @Failure      401  {object}  errors.StandardError  "Missing or invalid JWT"
// @Failure      404  {object}  errors.StandardError  "Item not found"
// @Failure      500  {object}  errors.StandardError  "Database error"
// @Router       /items/{id} [get]
func (h *InventoryHandler) GetItem(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	res := h.service.Resolve(c.Request.Context(), id)
	switch res.Outcome {
	case availability.OutcomeNotFound:
		c.Error(errors.NewItemNotFound(id.String()))
		c.Abort()
		return
	case availability.OutcomeFailed:
		if res.Item == nil {
			c.Error(errors.NewDatabaseError("find item", res.Err))
			c.Abort()
			return
		}
	}

	c.JSON(http.StatusOK, newItemResponse(res.Item, breakdownOrZero(res)))
}

// GetItemAvailability handles GET /api/v1/items/:id/availability
// @Summary      Get item availability breakdown
// @Description  Returns available, reserved, in transit, out of service and total counts.
// @Description  Unknown items and lookup failures yield an all zero breakdown rather than an error.
// @Tags         availability
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Item ID (UUID)"
// @Success      200  {object}  ItemAvailabilityResponse
// @Failure      400  {object}  errors.StandardError  "Malformed UUID"
// @Failure      401  {object}  errors.StandardError  "Missing or invalid JWT"
// @Router       /items/{id}/availability [get]
func (h *InventoryHandler) GetItemAvailability(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	b := h.service.GetItemAvailabilityBreakdown(c.Request.Context(), id)
	c.JSON(http.StatusOK, ItemAvailabilityResponse{
		ItemID:    id.String(),
		Breakdown: newBreakdownResponse(b),
	})
}

// BufferQuery are the inputs of the buffer calculation
type BufferQuery struct {
	Serialized bool `form:"serialized"`
	Total      int  `form:"total" binding:"min=0"`
	Requested  int  `form:"requested" binding:"min=0"`
}

// GetBuffer handles GET /api/v1/availability/buffer
// @Summary      Calculate buffer quantity
// @Description  Serialized items keep one spare unit while the pool has fewer than 5 units.
// @Description  Bulk items add 20% of the request below 10 units and 10% from 10 upward, rounded up.
// @Tags         availability
// @Produce      json
// @Security     BearerAuth
// @Param        serialized  query     bool  false  "Serialized tracking"
// @Param        total       query     int   false  "Total units or stock"  minimum(0)
// @Param        requested   query     int   false  "Requested quantity"    minimum(0)
// @Success      200         {object}  BufferResponse
// @Failure      400         {object}  errors.StandardError  "Invalid query parameters"
// @Failure      401         {object}  errors.StandardError  "Missing or invalid JWT"
// @Router       /availability/buffer [get]
func (h *InventoryHandler) GetBuffer(c *gin.Context) {
	var q BufferQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.Error(errors.NewInvalidRequest("invalid buffer query", err.Error()))
		c.Abort()
		return
	}

	c.JSON(http.StatusOK, BufferResponse{
		Serialized: q.Serialized,
		Total:      q.Total,
		Requested:  q.Requested,
		Buffer:     availability.CalculateBufferQuantity(q.Serialized, q.Total, q.Requested),
	})
}

// breakdownOrZero degrades an unresolved item to the zero breakdown
func breakdownOrZero(res availability.Resolution) models.Breakdown {
	if res.Resolved() {
		return res.Breakdown
	}
	return models.Breakdown{}
}

func parseUUIDParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		c.Error(errors.NewValidationError("invalid "+name+", expected a UUID", name))
		c.Abort()
		return uuid.Nil, false
	}
	return id, true
}
