package handler

import (
	"fmt"
	"net/http"
	"time"

	model "service-market/internal/models"
	order "service-market/internal/orderService"
	"service-market/internal/pricing"
	"service-market/services/market/helpers"
	"service-market/utils"

	"github.com/gin-gonic/gin"
)

type OrderServiceInterface interface {
	CreateOrder(in order.CreateOrderInput) (model.Order, error)
	Accept(orderID, providerID string) (model.Order, error)
	Depart(orderID, providerID string) (model.Order, error)
	Arrive(orderID, providerID string) (model.Order, error)
	ConfirmArrival(orderID, clientID string) (model.Order, error)
	Pause(orderID, providerID, reason string) (model.Order, error)
	Resume(orderID, providerID string) (model.Order, error)
	Complete(orderID, providerID string) (model.Order, error)
	ConfirmCompletion(orderID, clientID string) (model.Order, error)
	CancelByProvider(orderID, providerID, reason string) (model.Order, error)
	CancelByClient(orderID, clientID, reason string) (model.Order, error)
	QuoteByService(serviceID string, req pricing.QuoteRequest) (model.Breakdown, error)
	QuoteWithProvider(serviceID, providerID string, req pricing.QuoteRequest) (model.Breakdown, error)
	GetOrder(orderID string) (model.Order, error)
	ListOrdersByClient(clientID string) ([]model.Order, error)
}

type OrderHandler struct {
	service OrderServiceInterface
}

func NewOrderHandler(service OrderServiceInterface) *OrderHandler {
	return &OrderHandler{service: service}
}

// CreateOrderHandler handles POST /orders
func (h *OrderHandler) CreateOrderHandler(c *gin.Context) {
	var req helpers.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "CreateOrderHandler", err)
		return
	}

	// An omitted quantity means a single unit; an explicit zero or
	// negative is rejected.
	quantity := 1
	if req.Quantity != nil {
		if *req.Quantity < 1 {
			helpers.HandleBindError(c, "CreateOrderHandler", fmt.Errorf("quantity must be at least 1"))
			return
		}
		quantity = *req.Quantity
	}

	in := order.CreateOrderInput{
		ClientID:      req.ClientID,
		ServiceID:     req.ServiceID,
		Mode:          model.PricingMode(req.PricingMode),
		ProviderID:    req.ProviderID,
		Formula:       req.Formula,
		ScheduledAt:   req.ScheduledAt,
		DurationHours: req.DurationHours,
		Quantity:      quantity,
		DistanceKm:    req.DistanceKm,
		Lat:           req.Lat,
		Lng:           req.Lng,
		ProposedPrice: req.ProposedPrice,
		BidExpiry:     time.Duration(req.BidExpiryHours * float64(time.Hour)),
	}

	o, err := h.service.CreateOrder(in)
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		utils.Error("CreateOrderHandler: failed to create order", map[string]any{
			"handler":    "CreateOrderHandler",
			"client_id":  req.ClientID,
			"service_id": req.ServiceID,
			"error":      err.Error(),
		})
		return
	}

	utils.JSONResponse(c, http.StatusCreated, o, "order created successfully")
	helpers.LogSuccess("CreateOrderHandler", "order created successfully", map[string]any{
		"order_id":     o.OrderID,
		"client_id":    o.ClientID,
		"pricing_mode": o.PricingMode,
		"total":        o.Price.Total,
	})
}

// GetOrderHandler handles GET /orders/:order_id
func (h *OrderHandler) GetOrderHandler(c *gin.Context) {
	orderID := c.Param("order_id")
	o, err := h.service.GetOrder(orderID)
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		utils.Warn("GetOrderHandler: failed to fetch order", map[string]any{"order_id": orderID, "error": err.Error()})
		return
	}
	utils.JSONResponse(c, http.StatusOK, o, "order retrieved successfully")
}

// ListClientOrdersHandler handles GET /clients/:client_id/orders
func (h *OrderHandler) ListClientOrdersHandler(c *gin.Context) {
	clientID := c.Param("client_id")
	orders, err := h.service.ListOrdersByClient(clientID)
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		utils.Warn("ListClientOrdersHandler: failed to list orders", map[string]any{"client_id": clientID, "error": err.Error()})
		return
	}
	if orders == nil {
		orders = []model.Order{}
	}
	utils.JSONResponse(c, http.StatusOK, orders, "orders retrieved successfully")
}

// transition is the shared shape of the single-actor lifecycle endpoints.
func (h *OrderHandler) transition(c *gin.Context, handlerName string, needProvider bool, call func(orderID string, req helpers.ActorRequest) (model.Order, error)) {
	orderID := c.Param("order_id")
	var req helpers.ActorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, handlerName, err)
		return
	}
	if needProvider && req.ProviderID == "" || !needProvider && req.ClientID == "" {
		helpers.HandleBindError(c, handlerName, fmt.Errorf("missing actor id"))
		return
	}

	o, err := call(orderID, req)
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		utils.Warn(handlerName+": transition failed", map[string]any{
			"order_id": orderID,
			"error":    err.Error(),
		})
		return
	}

	utils.JSONResponse(c, http.StatusOK, o, "order updated successfully")
	helpers.LogSuccess(handlerName, "order updated successfully", map[string]any{
		"order_id": o.OrderID,
		"status":   o.Status,
	})
}

// AcceptOrderHandler handles POST /orders/:order_id/accept
func (h *OrderHandler) AcceptOrderHandler(c *gin.Context) {
	h.transition(c, "AcceptOrderHandler", true, func(orderID string, req helpers.ActorRequest) (model.Order, error) {
		return h.service.Accept(orderID, req.ProviderID)
	})
}

// DepartHandler handles POST /orders/:order_id/depart
func (h *OrderHandler) DepartHandler(c *gin.Context) {
	h.transition(c, "DepartHandler", true, func(orderID string, req helpers.ActorRequest) (model.Order, error) {
		return h.service.Depart(orderID, req.ProviderID)
	})
}

// ArriveHandler handles POST /orders/:order_id/arrive
func (h *OrderHandler) ArriveHandler(c *gin.Context) {
	h.transition(c, "ArriveHandler", true, func(orderID string, req helpers.ActorRequest) (model.Order, error) {
		return h.service.Arrive(orderID, req.ProviderID)
	})
}

// ConfirmArrivalHandler handles POST /orders/:order_id/confirm-arrival
func (h *OrderHandler) ConfirmArrivalHandler(c *gin.Context) {
	h.transition(c, "ConfirmArrivalHandler", false, func(orderID string, req helpers.ActorRequest) (model.Order, error) {
		return h.service.ConfirmArrival(orderID, req.ClientID)
	})
}

// PauseHandler handles POST /orders/:order_id/pause
func (h *OrderHandler) PauseHandler(c *gin.Context) {
	h.transition(c, "PauseHandler", true, func(orderID string, req helpers.ActorRequest) (model.Order, error) {
		return h.service.Pause(orderID, req.ProviderID, req.Reason)
	})
}

// ResumeHandler handles POST /orders/:order_id/resume
func (h *OrderHandler) ResumeHandler(c *gin.Context) {
	h.transition(c, "ResumeHandler", true, func(orderID string, req helpers.ActorRequest) (model.Order, error) {
		return h.service.Resume(orderID, req.ProviderID)
	})
}

// CompleteHandler handles POST /orders/:order_id/complete
func (h *OrderHandler) CompleteHandler(c *gin.Context) {
	h.transition(c, "CompleteHandler", true, func(orderID string, req helpers.ActorRequest) (model.Order, error) {
		return h.service.Complete(orderID, req.ProviderID)
	})
}

// ConfirmCompletionHandler handles POST /orders/:order_id/confirm-completion
func (h *OrderHandler) ConfirmCompletionHandler(c *gin.Context) {
	h.transition(c, "ConfirmCompletionHandler", false, func(orderID string, req helpers.ActorRequest) (model.Order, error) {
		return h.service.ConfirmCompletion(orderID, req.ClientID)
	})
}

// ProviderCancelHandler handles POST /orders/:order_id/provider-cancel
func (h *OrderHandler) ProviderCancelHandler(c *gin.Context) {
	h.transition(c, "ProviderCancelHandler", true, func(orderID string, req helpers.ActorRequest) (model.Order, error) {
		return h.service.CancelByProvider(orderID, req.ProviderID, req.Reason)
	})
}

// ClientCancelHandler handles POST /orders/:order_id/cancel
func (h *OrderHandler) ClientCancelHandler(c *gin.Context) {
	h.transition(c, "ClientCancelHandler", false, func(orderID string, req helpers.ActorRequest) (model.Order, error) {
		return h.service.CancelByClient(orderID, req.ClientID, req.Reason)
	})
}

// QuoteHandler handles POST /quotes
func (h *OrderHandler) QuoteHandler(c *gin.Context) {
	var req helpers.QuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "QuoteHandler", err)
		return
	}

	quantity := 1
	if req.Quantity != nil {
		if *req.Quantity < 1 {
			helpers.HandleBindError(c, "QuoteHandler", fmt.Errorf("quantity must be at least 1"))
			return
		}
		quantity = *req.Quantity
	}
	pr := pricing.QuoteRequest{
		Formula:       req.Formula,
		ScheduledAt:   req.ScheduledAt,
		DurationHours: req.DurationHours,
		Quantity:      quantity,
		DistanceKm:    req.DistanceKm,
	}

	var breakdown model.Breakdown
	var err error
	if req.ProviderID != "" {
		breakdown, err = h.service.QuoteWithProvider(req.ServiceID, req.ProviderID, pr)
	} else {
		breakdown, err = h.service.QuoteByService(req.ServiceID, pr)
	}
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		utils.Warn("QuoteHandler: failed to compute quote", map[string]any{
			"service_id": req.ServiceID,
			"formula":    req.Formula,
			"error":      err.Error(),
		})
		return
	}

	utils.JSONResponse(c, http.StatusOK, breakdown, "quote computed successfully")
	helpers.LogSuccess("QuoteHandler", "quote computed successfully", map[string]any{
		"service_id": req.ServiceID,
		"formula":    req.Formula,
		"total":      breakdown.Total,
	})
}
