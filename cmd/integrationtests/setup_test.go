package integrationtests

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	bidding "service-market/internal/biddingService"
	model "service-market/internal/models"
	order "service-market/internal/orderService"
	"service-market/internal/platform"
	"service-market/internal/pricing"
	"service-market/internal/repository"
	"service-market/internal/server"
	"service-market/internal/standing"

	"github.com/gin-gonic/gin"
)

// SetupTestRouter initializes the full engine over the in-memory
// repository with the given services seeded.
func SetupTestRouter(services ...model.Service) (*gin.Engine, *repository.MemoryRepo) {
	gin.SetMode(gin.TestMode)
	repo := repository.NewMemoryRepo()

	for _, svc := range services {
		repo.AddService(svc)
	}

	pricer := pricing.NewEngine(pricing.DefaultCatalog())
	orderSvc := order.NewOrderService(order.Deps{
		Repo:        repo,
		Pricer:      pricer,
		Notifier:    platform.LogNotifier{},
		Payments:    platform.LogPaymentProcessor{},
		Lookup:      platform.StaticLookup{},
		Reviews:     platform.StandingAggregator{Store: repo},
		BlockPolicy: standing.DefaultPolicy(),
	})
	biddingSvc := bidding.NewBiddingService(repo, pricer, orderSvc, platform.LogNotifier{})

	return server.SetupRouter(orderSvc, biddingSvc), repo
}

// ExecuteRequest executes an HTTP request and returns the response recorder.
func ExecuteRequest(t *testing.T, router *gin.Engine, method, url string, body []byte) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, url, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

// ExecuteRequestAndParse executes an HTTP request on the given router and parses the response
func ExecuteRequestAndParse(t *testing.T, router *gin.Engine, method, url string, body any) (map[string]any, *httptest.ResponseRecorder) {
	var reqBody []byte
	var err error

	switch v := body.(type) {
	case []byte:
		reqBody = v
	default:
		reqBody, err = json.Marshal(v)
		if err != nil {
			t.Fatalf("failed to marshal body: %v", err)
		}
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, url, bytes.NewReader(reqBody))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	var resp map[string]any
	if len(w.Body.Bytes()) > 0 {
		err := json.Unmarshal(w.Body.Bytes(), &resp)
		if err != nil {
			t.Fatalf("failed to unmarshal response: %v", err)
		}

		if data, ok := resp["data"].(map[string]any); ok {
			resp = data
		}
	}

	return resp, w
}

// cleaningService is the default seed used across the API tests.
func cleaningService() model.Service {
	return model.Service{
		ServiceID:       "svc-cleaning",
		Title:           "Apartment cleaning",
		BasePrice:       100,
		AllowedFormulas: []string{"standard", "recurring", "premium", "urgent", "night"},
		AllowsBidding:   true,
	}
}
