package server

import (
	bidding "service-market/internal/biddingService"
	order "service-market/internal/orderService"
	handler "service-market/services/market/handler"

	"github.com/gin-gonic/gin"
)

// SetupRouter configures all Gin routes for the application
func SetupRouter(orderService *order.OrderService, biddingService *bidding.BiddingService) *gin.Engine {
	router := gin.New() // New router without default middleware for full control over middleware and logging

	router.Use(gin.Recovery())          // recover from panics
	router.Use(RequestLoggerMiddleware) // custom request logging

	orderHandler := handler.NewOrderHandler(orderService)
	biddingHandler := handler.NewBiddingHandler(biddingService)

	orders := router.Group("/orders")
	{
		orders.POST("", orderHandler.CreateOrderHandler)
		orders.GET("/:order_id", orderHandler.GetOrderHandler)
		orders.GET("/:order_id/bids", biddingHandler.ListBidsHandler)
		orders.POST("/:order_id/accept", orderHandler.AcceptOrderHandler)
		orders.POST("/:order_id/depart", orderHandler.DepartHandler)
		orders.POST("/:order_id/arrive", orderHandler.ArriveHandler)
		orders.POST("/:order_id/confirm-arrival", orderHandler.ConfirmArrivalHandler)
		orders.POST("/:order_id/pause", orderHandler.PauseHandler)
		orders.POST("/:order_id/resume", orderHandler.ResumeHandler)
		orders.POST("/:order_id/complete", orderHandler.CompleteHandler)
		orders.POST("/:order_id/confirm-completion", orderHandler.ConfirmCompletionHandler)
		orders.POST("/:order_id/cancel", orderHandler.ClientCancelHandler)
		orders.POST("/:order_id/provider-cancel", orderHandler.ProviderCancelHandler)
	}

	bids := router.Group("/bids")
	{
		bids.POST("", biddingHandler.PlaceBidHandler)
		bids.POST("/:bid_id/accept", biddingHandler.AcceptBidHandler)
		bids.POST("/:bid_id/withdraw", biddingHandler.WithdrawBidHandler)
	}

	clients := router.Group("/clients")
	{
		clients.GET("/:client_id/orders", orderHandler.ListClientOrdersHandler)
	}

	router.POST("/quotes", orderHandler.QuoteHandler)

	return router
}
