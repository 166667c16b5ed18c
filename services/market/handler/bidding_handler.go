package handler

import (
	"fmt"
	"net/http"
	"time"

	bidding "service-market/internal/biddingService"
	model "service-market/internal/models"
	"service-market/services/market/helpers"
	"service-market/utils"

	"github.com/gin-gonic/gin"
)

type BiddingServiceInterface interface {
	PlaceBid(orderID, providerID string, price float64, etaMinutes int, message string) (model.Bid, error)
	AcceptBid(bidID, clientID string) (model.Order, model.Bid, error)
	WithdrawBid(bidID, providerID string) (model.Bid, error)
	ListBids(orderID, clientID string) ([]bidding.BidView, error)
}

type BiddingHandler struct {
	service BiddingServiceInterface
}

func NewBiddingHandler(service BiddingServiceInterface) *BiddingHandler {
	return &BiddingHandler{service: service}
}

// PlaceBidHandler handles POST /bids
func (h *BiddingHandler) PlaceBidHandler(c *gin.Context) {
	var req helpers.PlaceBidRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "PlaceBidHandler", err)
		return
	}

	bid, err := h.service.PlaceBid(req.OrderID, req.ProviderID, req.Price, req.ETAMinutes, req.Message)
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		utils.Error("PlaceBidHandler: failed to record bid", map[string]any{
			"handler":     "PlaceBidHandler",
			"order_id":    req.OrderID,
			"provider_id": req.ProviderID,
			"error":       err.Error(),
		})
		return
	}

	resp := helpers.BidResponse{
		BidID:      bid.BidID,
		OrderID:    bid.OrderID,
		ProviderID: bid.ProviderID,
		Price:      bid.Price,
		ETAMinutes: bid.ETAMinutes,
		Message:    bid.Message,
		Status:     string(bid.Status),
		CreatedAt:  bid.CreatedAt.UTC().Format(time.RFC3339),
	}

	utils.JSONResponse(c, http.StatusCreated, resp, "bid recorded successfully")
	helpers.LogSuccess("PlaceBidHandler", "bid recorded successfully", map[string]any{
		"bid_id":      bid.BidID,
		"order_id":    bid.OrderID,
		"provider_id": bid.ProviderID,
		"price":       bid.Price,
	})
}

// AcceptBidHandler handles POST /bids/:bid_id/accept
func (h *BiddingHandler) AcceptBidHandler(c *gin.Context) {
	bidID := c.Param("bid_id")
	var req helpers.AcceptBidRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "AcceptBidHandler", err)
		return
	}

	o, bid, err := h.service.AcceptBid(bidID, req.ClientID)
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		utils.Warn("AcceptBidHandler: failed to accept bid", map[string]any{
			"bid_id":    bidID,
			"client_id": req.ClientID,
			"error":     err.Error(),
		})
		return
	}

	utils.JSONResponse(c, http.StatusOK, gin.H{"order": o, "bid": bid}, "bid accepted successfully")
	helpers.LogSuccess("AcceptBidHandler", "bid accepted successfully", map[string]any{
		"bid_id":      bid.BidID,
		"order_id":    o.OrderID,
		"provider_id": bid.ProviderID,
		"total":       o.Price.Total,
	})
}

// WithdrawBidHandler handles POST /bids/:bid_id/withdraw
func (h *BiddingHandler) WithdrawBidHandler(c *gin.Context) {
	bidID := c.Param("bid_id")
	var req helpers.WithdrawBidRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "WithdrawBidHandler", err)
		return
	}

	bid, err := h.service.WithdrawBid(bidID, req.ProviderID)
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		utils.Warn("WithdrawBidHandler: failed to withdraw bid", map[string]any{
			"bid_id":      bidID,
			"provider_id": req.ProviderID,
			"error":       err.Error(),
		})
		return
	}

	utils.JSONResponse(c, http.StatusOK, bid, "bid withdrawn successfully")
	helpers.LogSuccess("WithdrawBidHandler", "bid withdrawn successfully", map[string]any{
		"bid_id":   bid.BidID,
		"order_id": bid.OrderID,
	})
}

// ListBidsHandler handles GET /orders/:order_id/bids
func (h *BiddingHandler) ListBidsHandler(c *gin.Context) {
	orderID := c.Param("order_id")
	clientID := c.Query("client_id")

	bids, err := h.service.ListBids(orderID, clientID)
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		utils.Warn("ListBidsHandler: failed to list bids", map[string]any{"order_id": orderID, "error": err.Error()})
		return
	}
	if bids == nil {
		bids = []bidding.BidView{}
	}

	utils.JSONResponse(c, http.StatusOK, bids, "bids retrieved successfully")
	helpers.LogSuccess("ListBidsHandler", "bids retrieved successfully", map[string]any{
		"order_id": orderID,
		"count":    len(bids),
	})
}
