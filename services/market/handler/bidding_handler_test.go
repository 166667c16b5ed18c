package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	bidding "service-market/internal/biddingService"
	"service-market/internal/marketerrors"
	model "service-market/internal/models"
	"service-market/services/market/helpers"

	"github.com/gin-gonic/gin"
	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

// Test PlaceBidHandler
func TestPlaceBidHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockService := NewMockBiddingServiceInterface(ctrl)
	handler := NewBiddingHandler(mockService)

	// Initialize Gin in test mode
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/bids", handler.PlaceBidHandler)

	now := time.Now().UTC()

	tests := []struct {
		name           string
		requestBody    any
		mockSetup      func()
		expectedStatus int
		expectedMsg    string
		validateData   func(t *testing.T, data map[string]any)
	}{
		{
			name: "success_valid_bid",
			requestBody: helpers.PlaceBidRequest{
				OrderID:    "order1",
				ProviderID: "prov1",
				Price:      110,
				ETAMinutes: 25,
				Message:    "Can start right away",
			},
			mockSetup: func() {
				mockService.EXPECT().
					PlaceBid("order1", "prov1", 110.0, 25, "Can start right away").
					Return(model.Bid{
						BidID:      uuid.NewString(),
						OrderID:    "order1",
						ProviderID: "prov1",
						Price:      110,
						ETAMinutes: 25,
						Message:    "Can start right away",
						Status:     model.BidActive,
						CreatedAt:  now,
					}, nil)
			},
			expectedStatus: http.StatusCreated,
			expectedMsg:    "bid recorded successfully",
			validateData: func(t *testing.T, data map[string]any) {
				bidID := data["bid_id"].(string)
				require.NotEmpty(t, bidID)
				_, parseErr := uuid.Parse(bidID)
				require.NoError(t, parseErr, "BidID should be a valid UUID")
				require.Equal(t, "order1", data["order_id"])
				require.Equal(t, "prov1", data["provider_id"])
				require.Equal(t, 110.0, data["price"])
				require.Equal(t, "active", data["status"])
			},
		},
		{
			name:           "invalid_json",
			requestBody:    `{invalid json}`,
			mockSetup:      func() {},
			expectedStatus: http.StatusBadRequest,
			expectedMsg:    "invalid request payload",
		},
		{
			name: "missing_order_id",
			requestBody: helpers.PlaceBidRequest{
				ProviderID: "prov1",
				Price:      110,
			},
			mockSetup:      func() {},
			expectedStatus: http.StatusBadRequest,
			expectedMsg:    "invalid request payload",
		},
		{
			name: "zero_price",
			requestBody: helpers.PlaceBidRequest{
				OrderID:    "order1",
				ProviderID: "prov1",
				Price:      0,
			},
			mockSetup:      func() {},
			expectedStatus: http.StatusBadRequest,
			expectedMsg:    "invalid request payload",
		},
		{
			name: "service_below_floor",
			requestBody: helpers.PlaceBidRequest{
				OrderID:    "order1",
				ProviderID: "prov1",
				Price:      80,
			},
			mockSetup: func() {
				mockService.EXPECT().
					PlaceBid("order1", "prov1", 80.0, 0, "").
					Return(model.Bid{}, fmt.Errorf("bid below floor: %w", marketerrors.ErrValidation))
			},
			expectedStatus: http.StatusBadRequest,
			expectedMsg:    "validation failed",
		},
		{
			name: "service_duplicate_bid",
			requestBody: helpers.PlaceBidRequest{
				OrderID:    "order1",
				ProviderID: "prov1",
				Price:      120,
			},
			mockSetup: func() {
				mockService.EXPECT().
					PlaceBid("order1", "prov1", 120.0, 0, "").
					Return(model.Bid{}, fmt.Errorf("provider already bid: %w", marketerrors.ErrConflict))
			},
			expectedStatus: http.StatusConflict,
			expectedMsg:    "conflict",
		},
		{
			name: "service_window_expired",
			requestBody: helpers.PlaceBidRequest{
				OrderID:    "order1",
				ProviderID: "prov1",
				Price:      130,
			},
			mockSetup: func() {
				mockService.EXPECT().
					PlaceBid("order1", "prov1", 130.0, 0, "").
					Return(model.Bid{}, fmt.Errorf("bidding window closed: %w", marketerrors.ErrInvalidState))
			},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedMsg:    "invalid state for operation",
		},
		{
			name: "service_generic_error",
			requestBody: helpers.PlaceBidRequest{
				OrderID:    "order1",
				ProviderID: "prov1",
				Price:      140,
			},
			mockSetup: func() {
				mockService.EXPECT().
					PlaceBid("order1", "prov1", 140.0, 0, "").
					Return(model.Bid{}, errors.New("storage failure"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedMsg:    "internal server error",
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			var reqBody []byte
			var err error
			switch v := tc.requestBody.(type) {
			case string:
				reqBody = []byte(v)
			default:
				reqBody, err = json.Marshal(v)
				require.NoError(t, err)
			}

			tc.mockSetup()

			req := httptest.NewRequest(http.MethodPost, "/bids", bytes.NewReader(reqBody))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			require.Equal(t, tc.expectedStatus, w.Code)

			var resp map[string]any
			err = json.Unmarshal(w.Body.Bytes(), &resp)
			require.NoError(t, err)

			require.Contains(t, resp["message"], tc.expectedMsg)

			if tc.validateData != nil && w.Code == http.StatusCreated {
				data := resp["data"].(map[string]any)
				tc.validateData(t, data)
			}
		})
	}
}

// Test AcceptBidHandler
func TestAcceptBidHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockService := NewMockBiddingServiceInterface(ctrl)
	handler := NewBiddingHandler(mockService)

	// Initialize Gin in test mode
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/bids/:bid_id/accept", handler.AcceptBidHandler)

	tests := []struct {
		name           string
		bidID          string
		requestBody    any
		mockSetup      func()
		expectedStatus int
		expectedMsg    string
		validateData   func(t *testing.T, data map[string]any)
	}{
		{
			name:        "success_winner_selected",
			bidID:       "bid1",
			requestBody: helpers.AcceptBidRequest{ClientID: "client1"},
			mockSetup: func() {
				mockService.EXPECT().
					AcceptBid("bid1", "client1").
					Return(
						model.Order{
							OrderID:    "order1",
							ClientID:   "client1",
							ProviderID: "prov1",
							Status:     model.OrderAccepted,
							Price:      model.Breakdown{Total: 145, Commission: 29, ProviderNet: 116},
						},
						model.Bid{BidID: "bid1", OrderID: "order1", ProviderID: "prov1", Price: 145, Status: model.BidAccepted},
						nil,
					)
			},
			expectedStatus: http.StatusOK,
			expectedMsg:    "bid accepted successfully",
			validateData: func(t *testing.T, data map[string]any) {
				orderData := data["order"].(map[string]any)
				bidData := data["bid"].(map[string]any)
				require.Equal(t, "accepted", orderData["status"])
				require.Equal(t, "prov1", orderData["provider_id"])
				require.Equal(t, 145.0, orderData["price"].(map[string]any)["total"])
				require.Equal(t, "accepted", bidData["status"])
			},
		},
		{
			name:           "missing_client_id",
			bidID:          "bid1",
			requestBody:    map[string]any{},
			mockSetup:      func() {},
			expectedStatus: http.StatusBadRequest,
			expectedMsg:    "invalid request payload",
		},
		{
			name:        "foreign_client_forbidden",
			bidID:       "bid1",
			requestBody: helpers.AcceptBidRequest{ClientID: "client2"},
			mockSetup: func() {
				mockService.EXPECT().
					AcceptBid("bid1", "client2").
					Return(model.Order{}, model.Bid{}, fmt.Errorf("not your order: %w", marketerrors.ErrForbidden))
			},
			expectedStatus: http.StatusForbidden,
			expectedMsg:    "forbidden",
		},
		{
			name:        "order_already_assigned",
			bidID:       "bid2",
			requestBody: helpers.AcceptBidRequest{ClientID: "client1"},
			mockSetup: func() {
				mockService.EXPECT().
					AcceptBid("bid2", "client1").
					Return(model.Order{}, model.Bid{}, fmt.Errorf("order left pending: %w", marketerrors.ErrInvalidState))
			},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedMsg:    "invalid state for operation",
		},
		{
			name:        "unknown_bid",
			bidID:       "missing",
			requestBody: helpers.AcceptBidRequest{ClientID: "client1"},
			mockSetup: func() {
				mockService.EXPECT().
					AcceptBid("missing", "client1").
					Return(model.Order{}, model.Bid{}, fmt.Errorf("no such bid: %w", marketerrors.ErrNotFound))
			},
			expectedStatus: http.StatusNotFound,
			expectedMsg:    "resource not found",
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			reqBody, err := json.Marshal(tc.requestBody)
			require.NoError(t, err)

			tc.mockSetup()

			req := httptest.NewRequest(http.MethodPost, "/bids/"+tc.bidID+"/accept", bytes.NewReader(reqBody))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			require.Equal(t, tc.expectedStatus, w.Code)

			var resp map[string]any
			err = json.Unmarshal(w.Body.Bytes(), &resp)
			require.NoError(t, err)

			require.Contains(t, resp["message"], tc.expectedMsg)

			if tc.validateData != nil && w.Code == http.StatusOK {
				data := resp["data"].(map[string]any)
				tc.validateData(t, data)
			}
		})
	}
}

// Test WithdrawBidHandler
func TestWithdrawBidHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockService := NewMockBiddingServiceInterface(ctrl)
	handler := NewBiddingHandler(mockService)

	// Initialize Gin in test mode
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/bids/:bid_id/withdraw", handler.WithdrawBidHandler)

	tests := []struct {
		name           string
		bidID          string
		requestBody    any
		mockSetup      func()
		expectedStatus int
		expectedMsg    string
	}{
		{
			name:        "success",
			bidID:       "bid1",
			requestBody: helpers.WithdrawBidRequest{ProviderID: "prov1"},
			mockSetup: func() {
				mockService.EXPECT().
					WithdrawBid("bid1", "prov1").
					Return(model.Bid{BidID: "bid1", OrderID: "order1", ProviderID: "prov1", Status: model.BidWithdrawn}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedMsg:    "bid withdrawn successfully",
		},
		{
			name:           "missing_provider_id",
			bidID:          "bid1",
			requestBody:    map[string]any{},
			mockSetup:      func() {},
			expectedStatus: http.StatusBadRequest,
			expectedMsg:    "invalid request payload",
		},
		{
			name:        "foreign_bid_forbidden",
			bidID:       "bid1",
			requestBody: helpers.WithdrawBidRequest{ProviderID: "prov2"},
			mockSetup: func() {
				mockService.EXPECT().
					WithdrawBid("bid1", "prov2").
					Return(model.Bid{}, fmt.Errorf("not your bid: %w", marketerrors.ErrForbidden))
			},
			expectedStatus: http.StatusForbidden,
			expectedMsg:    "forbidden",
		},
		{
			name:        "already_accepted_conflict",
			bidID:       "bid1",
			requestBody: helpers.WithdrawBidRequest{ProviderID: "prov1"},
			mockSetup: func() {
				mockService.EXPECT().
					WithdrawBid("bid1", "prov1").
					Return(model.Bid{}, fmt.Errorf("bid not active: %w", marketerrors.ErrConflict))
			},
			expectedStatus: http.StatusConflict,
			expectedMsg:    "conflict",
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			reqBody, err := json.Marshal(tc.requestBody)
			require.NoError(t, err)

			tc.mockSetup()

			req := httptest.NewRequest(http.MethodPost, "/bids/"+tc.bidID+"/withdraw", bytes.NewReader(reqBody))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			require.Equal(t, tc.expectedStatus, w.Code)

			var resp map[string]any
			err = json.Unmarshal(w.Body.Bytes(), &resp)
			require.NoError(t, err)
			require.Contains(t, resp["message"], tc.expectedMsg)
		})
	}
}

// Test ListBidsHandler
func TestListBidsHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockService := NewMockBiddingServiceInterface(ctrl)
	handler := NewBiddingHandler(mockService)

	// Initialize Gin in test mode
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/orders/:order_id/bids", handler.ListBidsHandler)

	now := time.Now().UTC()

	tests := []struct {
		name           string
		path           string
		mockSetup      func()
		expectedStatus int
		expectedMsg    string
		validateData   func(t *testing.T, data []map[string]any)
	}{
		{
			name: "success_mixed_acceptability",
			path: "/orders/order1/bids?client_id=client1",
			mockSetup: func() {
				mockService.EXPECT().
					ListBids("order1", "client1").
					Return([]bidding.BidView{
						{Bid: model.Bid{BidID: "bid1", OrderID: "order1", ProviderID: "prov1", Price: 110, Status: model.BidActive, CreatedAt: now}, Acceptable: true},
						{Bid: model.Bid{BidID: "bid2", OrderID: "order1", ProviderID: "prov2", Price: 130, Status: model.BidWithdrawn, CreatedAt: now}, Acceptable: false},
					}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedMsg:    "bids retrieved successfully",
			validateData: func(t *testing.T, data []map[string]any) {
				require.Len(t, data, 2)
				require.Equal(t, true, data[0]["acceptable"])
				require.Equal(t, false, data[1]["acceptable"])
			},
		},
		{
			name: "success_no_bids",
			path: "/orders/order2/bids?client_id=client1",
			mockSetup: func() {
				mockService.EXPECT().ListBids("order2", "client1").Return(nil, nil)
			},
			expectedStatus: http.StatusOK,
			expectedMsg:    "bids retrieved successfully",
			validateData: func(t *testing.T, data []map[string]any) {
				require.Len(t, data, 0)
			},
		},
		{
			name: "foreign_client_forbidden",
			path: "/orders/order1/bids?client_id=client2",
			mockSetup: func() {
				mockService.EXPECT().
					ListBids("order1", "client2").
					Return(nil, fmt.Errorf("not your order: %w", marketerrors.ErrForbidden))
			},
			expectedStatus: http.StatusForbidden,
			expectedMsg:    "forbidden",
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			tc.mockSetup()

			req := httptest.NewRequest(http.MethodGet, tc.path, nil)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			require.Equal(t, tc.expectedStatus, w.Code)

			var resp map[string]any
			err := json.Unmarshal(w.Body.Bytes(), &resp)
			require.NoError(t, err)

			require.Contains(t, resp["message"], tc.expectedMsg)

			if tc.validateData != nil && w.Code == http.StatusOK {
				dataRaw := resp["data"].([]any)
				data := make([]map[string]any, len(dataRaw))
				for i, v := range dataRaw {
					data[i] = v.(map[string]any)
				}
				tc.validateData(t, data)
			}
		})
	}
}
