package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	domainErrors "github.com/solarteam/purchaseline/internal/domain/errors"
	"github.com/solarteam/purchaseline/internal/domain/model"
	"github.com/solarteam/purchaseline/internal/server/http/dto"
	"github.com/solarteam/purchaseline/internal/server/http/middleware"
	testhelpers "github.com/solarteam/purchaseline/internal/test"
	"github.com/solarteam/purchaseline/internal/usecase"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func performRequest(t *testing.T, method, route, url string, handler gin.HandlerFunc, setup func(*gin.Context), body []byte, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	router := gin.New()
	router.Handle(method, route, func(c *gin.Context) {
		if setup != nil {
			setup(c)
		}
		handler(c)
	})

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req := httptest.NewRequest(method, url, reader)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func asUser(id int64) func(*gin.Context) {
	return func(c *gin.Context) { c.Set(middleware.UserIDContextKey, id) }
}

var jsonHeaders = map[string]string{"Content-Type": "application/json"}

func TestCurrentUserID(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	if got := CurrentUserID(c); got != 0 {
		t.Fatalf("expected 0 when not set, got %d", got)
	}

	c.Set(middleware.UserIDContextKey, int64(42))
	if got := CurrentUserID(c); got != 42 {
		t.Fatalf("expected 42, got %d", got)
	}
}

func TestAuthHandlerRegister(t *testing.T) {
	body, _ := json.Marshal(dto.RegisterRequest{Name: "Ana", Email: "ana@team.edu", Password: "pass", Role: "ENGINEER", Subteam: "software"})
	resp := performRequest(t, http.MethodPost, "/register", "/register", NewAuthHandler(testhelpers.PurchasingFacadeStub{}).Register, nil, body, jsonHeaders)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	if resp.Header().Get("Authorization") == "" {
		t.Fatalf("expected auth header to be set")
	}
}

func TestAuthHandlerRegisterPassesInput(t *testing.T) {
	email := testhelpers.RandomASCIIString(5, 10) + "@team.edu"
	password := testhelpers.RandomASCIIString(16, 32)
	body, _ := json.Marshal(dto.RegisterRequest{Name: "Ana", Email: email, Password: password, Role: "FINANCE", Subteam: "business"})
	facade := testhelpers.PurchasingFacadeStub{AuthFacadeStub: testhelpers.AuthFacadeStub{
		RegisterFn: func(_ context.Context, in usecase.RegisterInput) (string, error) {
			if in.Email != email || in.Password != password || in.Role != model.RoleFinance || in.Subteam != "business" {
				t.Fatalf("unexpected input passed to facade: %+v", in)
			}
			return "token", nil
		},
	}}
	resp := performRequest(t, http.MethodPost, "/register", "/register", NewAuthHandler(facade).Register, nil, body, jsonHeaders)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
}

func TestAuthHandlerRegisterErrors(t *testing.T) {
	cases := []struct {
		name string
		body []byte
		err  error
		want int
	}{
		{"malformed json", []byte("{"), nil, http.StatusBadRequest},
		{"unknown role", mustJSON(t, dto.RegisterRequest{Name: "A", Email: "a@b.c", Password: "p", Role: "KING"}), nil, http.StatusUnprocessableEntity},
		{"conflict", mustJSON(t, dto.RegisterRequest{Name: "A", Email: "a@b.c", Password: "p", Role: "ENGINEER"}), domainErrors.ErrAlreadyExists, http.StatusConflict},
		{"bad phone", mustJSON(t, dto.RegisterRequest{Name: "A", Email: "a@b.c", Password: "p", Role: "ENGINEER"}), domainErrors.ErrInvalidPhone, http.StatusUnprocessableEntity},
		{"invalid", mustJSON(t, dto.RegisterRequest{Name: "A", Email: "a@b.c", Password: "p", Role: "ENGINEER"}), domainErrors.ErrInvalidCredentials, http.StatusBadRequest},
		{"internal", mustJSON(t, dto.RegisterRequest{Name: "A", Email: "a@b.c", Password: "p", Role: "ENGINEER"}), errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			facade := testhelpers.PurchasingFacadeStub{AuthFacadeStub: testhelpers.AuthFacadeStub{
				RegisterFn: func(context.Context, usecase.RegisterInput) (string, error) { return "", tc.err },
			}}
			resp := performRequest(t, http.MethodPost, "/register", "/register", NewAuthHandler(facade).Register, nil, tc.body, jsonHeaders)
			if resp.Code != tc.want {
				t.Fatalf("expected %d, got %d", tc.want, resp.Code)
			}
		})
	}
}

func TestAuthHandlerLogin(t *testing.T) {
	body, _ := json.Marshal(dto.LoginRequest{Email: "ana@team.edu", Password: "pass"})
	resp := performRequest(t, http.MethodPost, "/login", "/login", NewAuthHandler(testhelpers.PurchasingFacadeStub{}).Login, nil, body, jsonHeaders)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}

	facade := testhelpers.PurchasingFacadeStub{AuthFacadeStub: testhelpers.AuthFacadeStub{
		AuthenticateFn: func(context.Context, string, string) (string, error) {
			return "", domainErrors.ErrInvalidCredentials
		},
	}}
	resp = performRequest(t, http.MethodPost, "/login", "/login", NewAuthHandler(facade).Login, nil, body, jsonHeaders)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for bad credentials, got %d", resp.Code)
	}
}

func TestOrderHandlerCreate(t *testing.T) {
	body := mustJSON(t, dto.OrderCreateRequest{
		Name:          "motors",
		Vendor:        "ODrive",
		CostBreakdown: map[string]int{"electrical": 100},
		Items: []dto.OrderItemRequest{
			{Name: "motor", Vendor: "ODrive", Quantity: 2, Price: decimal.RequireFromString("99.95")},
		},
	})

	var created model.Order
	facade := testhelpers.PurchasingFacadeStub{OrderFacadeStub: testhelpers.OrderFacadeStub{
		CreateFn: func(_ context.Context, order model.Order, items []model.Item) (*model.Order, []model.Item, error) {
			created = order
			order.ID = 7
			order.HumanID = "PO-00007"
			return &order, items, nil
		},
	}}

	resp := performRequest(t, http.MethodPost, "/orders", "/orders", NewOrderHandler(facade).Create, asUser(3), body, jsonHeaders)
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.Code)
	}
	if created.UserID != 3 {
		t.Fatalf("expected owner from auth context, got %d", created.UserID)
	}

	var detail dto.OrderDetailResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &detail); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if detail.Order.HumanID != "PO-00007" || len(detail.Items) != 1 {
		t.Fatalf("unexpected response %+v", detail)
	}
}

func TestOrderHandlerCreateRejectsBadBreakdown(t *testing.T) {
	body := mustJSON(t, dto.OrderCreateRequest{Name: "motors", CostBreakdown: map[string]int{"electrical": 60}})
	resp := performRequest(t, http.MethodPost, "/orders", "/orders", NewOrderHandler(testhelpers.PurchasingFacadeStub{}).Create, asUser(3), body, jsonHeaders)
	if resp.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 for partial breakdown, got %d", resp.Code)
	}

	resp = performRequest(t, http.MethodPost, "/orders", "/orders", NewOrderHandler(testhelpers.PurchasingFacadeStub{}).Create, asUser(3), []byte("{"), jsonHeaders)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for malformed json, got %d", resp.Code)
	}
}

func TestOrderHandlerListScopesByRole(t *testing.T) {
	var listedAll, listedOwn bool
	facade := testhelpers.PurchasingFacadeStub{
		AuthFacadeStub: testhelpers.AuthFacadeStub{UserByIDFn: func(_ context.Context, id int64) (*model.User, error) {
			return &model.User{ID: id, Role: model.RoleEngineer, Subteam: "software"}, nil
		}},
		OrderFacadeStub: testhelpers.OrderFacadeStub{
			OrdersFn: func(context.Context) ([]model.Order, error) {
				listedAll = true
				return nil, nil
			},
			OrdersByUserFn: func(_ context.Context, userID int64) ([]model.Order, error) {
				listedOwn = true
				return []model.Order{{ID: 1, UserID: userID}}, nil
			},
		},
	}
	resp := performRequest(t, http.MethodGet, "/orders", "/orders", NewOrderHandler(facade).List, asUser(3), nil, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	if listedAll || !listedOwn {
		t.Fatalf("engineer must see own orders only (all=%v own=%v)", listedAll, listedOwn)
	}

	listedAll, listedOwn = false, false
	resp = performRequest(t, http.MethodGet, "/orders", "/orders", NewOrderHandler(testhelpers.PurchasingFacadeStub{OrderFacadeStub: facade.OrderFacadeStub}).List, asUser(3), nil, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	if !listedAll || listedOwn {
		t.Fatalf("admin must see all orders (all=%v own=%v)", listedAll, listedOwn)
	}
}

func TestOrderHandlerDetail(t *testing.T) {
	facade := testhelpers.PurchasingFacadeStub{OrderFacadeStub: testhelpers.OrderFacadeStub{
		DetailFn: func(_ context.Context, id int64) (*model.Order, []model.Item, []model.Document, error) {
			return &model.Order{ID: id, HumanID: "PO-00005", UserID: 3}, []model.Item{{ID: 1, Name: "motor"}}, []model.Document{{ID: 1, OrderID: id, Kind: model.DocumentKindReceipt, Name: "r", URL: "u"}}, nil
		},
	}}
	resp := performRequest(t, http.MethodGet, "/orders/:id", "/orders/5", NewOrderHandler(facade).Detail, asUser(1), nil, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for admin, got %d", resp.Code)
	}
	var detail dto.OrderDetailResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &detail); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if detail.Order.HumanID != "PO-00005" || len(detail.Items) != 1 || len(detail.Documents) != 1 {
		t.Fatalf("unexpected response %+v", detail)
	}
}

func TestOrderHandlerDetailHidesForeignOrders(t *testing.T) {
	facade := testhelpers.PurchasingFacadeStub{
		AuthFacadeStub: testhelpers.AuthFacadeStub{UserByIDFn: func(_ context.Context, id int64) (*model.User, error) {
			return &model.User{ID: id, Role: model.RoleEngineer}, nil
		}},
		OrderFacadeStub: testhelpers.OrderFacadeStub{
			DetailFn: func(_ context.Context, id int64) (*model.Order, []model.Item, []model.Document, error) {
				return &model.Order{ID: id, UserID: 99}, nil, nil, nil
			},
		},
	}
	resp := performRequest(t, http.MethodGet, "/orders/:id", "/orders/5", NewOrderHandler(facade).Detail, asUser(3), nil, nil)
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for foreign order, got %d", resp.Code)
	}

	missing := testhelpers.PurchasingFacadeStub{OrderFacadeStub: testhelpers.OrderFacadeStub{
		DetailFn: func(context.Context, int64) (*model.Order, []model.Item, []model.Document, error) {
			return nil, nil, nil, domainErrors.ErrNotFound
		},
	}}
	resp = performRequest(t, http.MethodGet, "/orders/:id", "/orders/5", NewOrderHandler(missing).Detail, asUser(3), nil, nil)
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for missing order, got %d", resp.Code)
	}
}

func TestOrderHandlerUpdateStatus(t *testing.T) {
	var applied model.OrderUpdate
	facade := testhelpers.PurchasingFacadeStub{OrderFacadeStub: testhelpers.OrderFacadeStub{
		UpdateStatusFn: func(_ context.Context, orderID int64, update model.OrderUpdate) (*model.Order, []model.Item, error) {
			applied = update
			return &model.Order{ID: orderID, Status: update.Status}, nil, nil
		},
	}}
	cost := decimal.RequireFromString("120.50")
	body := mustJSON(t, dto.OrderStatusRequest{Status: "SHIPPED", TotalCost: &cost})
	resp := performRequest(t, http.MethodPut, "/orders/:id/status", "/orders/5/status", NewOrderHandler(facade).UpdateStatus, asUser(1), body, jsonHeaders)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	if applied.Status != model.OrderStatusShipped || applied.TotalCost == nil || !applied.TotalCost.Equal(cost) {
		t.Fatalf("unexpected update %+v", applied)
	}
}

func TestOrderHandlerUpdateStatusErrors(t *testing.T) {
	handler := NewOrderHandler(testhelpers.PurchasingFacadeStub{})

	resp := performRequest(t, http.MethodPut, "/orders/:id/status", "/orders/5/status", handler.UpdateStatus, asUser(1), mustJSON(t, dto.OrderStatusRequest{Status: "TELEPORTED"}), jsonHeaders)
	if resp.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 for unknown status, got %d", resp.Code)
	}

	resp = performRequest(t, http.MethodPut, "/orders/:id/status", "/orders/abc/status", handler.UpdateStatus, asUser(1), mustJSON(t, dto.OrderStatusRequest{Status: "SHIPPED"}), jsonHeaders)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for bad id, got %d", resp.Code)
	}

	missing := NewOrderHandler(testhelpers.PurchasingFacadeStub{OrderFacadeStub: testhelpers.OrderFacadeStub{
		UpdateStatusFn: func(context.Context, int64, model.OrderUpdate) (*model.Order, []model.Item, error) {
			return nil, nil, domainErrors.ErrNotFound
		},
	}})
	resp = performRequest(t, http.MethodPut, "/orders/:id/status", "/orders/5/status", missing.UpdateStatus, asUser(1), mustJSON(t, dto.OrderStatusRequest{Status: "SHIPPED"}), jsonHeaders)
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.Code)
	}
}

func TestOrderHandlerDelete(t *testing.T) {
	var deleted int64
	facade := testhelpers.PurchasingFacadeStub{
		OrderFacadeStub: testhelpers.OrderFacadeStub{
			DetailFn: func(_ context.Context, id int64) (*model.Order, []model.Item, []model.Document, error) {
				return &model.Order{ID: id, UserID: 3}, nil, nil, nil
			},
			DeleteFn: func(_ context.Context, id int64) error {
				deleted = id
				return nil
			},
		},
		AuthFacadeStub: testhelpers.AuthFacadeStub{UserByIDFn: func(_ context.Context, id int64) (*model.User, error) {
			return &model.User{ID: id, Role: model.RoleEngineer}, nil
		}},
	}
	resp := performRequest(t, http.MethodDelete, "/orders/:id", "/orders/8", NewOrderHandler(facade).Delete, asUser(3), nil, nil)
	if resp.Code != http.StatusNoContent {
		t.Fatalf("expected 204 for owner, got %d", resp.Code)
	}
	if deleted != 8 {
		t.Fatalf("expected delete of 8, got %d", deleted)
	}

	resp = performRequest(t, http.MethodDelete, "/orders/:id", "/orders/8", NewOrderHandler(facade).Delete, asUser(4), nil, nil)
	if resp.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for foreign engineer, got %d", resp.Code)
	}
}

func TestOrderHandlerAttachDocument(t *testing.T) {
	facade := testhelpers.PurchasingFacadeStub{}
	body := mustJSON(t, dto.DocumentRequest{Kind: "RECEIPT", Name: "invoice.pdf", URL: "https://files/invoice.pdf"})
	resp := performRequest(t, http.MethodPost, "/orders/:id/documents", "/orders/5/documents", NewOrderHandler(facade).AttachDocument, asUser(1), body, jsonHeaders)
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.Code)
	}

	body = mustJSON(t, dto.DocumentRequest{Kind: "NAPKIN", Name: "n", URL: "u"})
	resp = performRequest(t, http.MethodPost, "/orders/:id/documents", "/orders/5/documents", NewOrderHandler(facade).AttachDocument, asUser(1), body, jsonHeaders)
	if resp.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 for unknown kind, got %d", resp.Code)
	}
}

func TestOrderHandlerSubteamSpend(t *testing.T) {
	facade := testhelpers.PurchasingFacadeStub{OrderFacadeStub: testhelpers.OrderFacadeStub{
		SpendFn: func(context.Context) (map[string]decimal.Decimal, error) {
			return map[string]decimal.Decimal{"electrical": decimal.RequireFromString("120.00")}, nil
		},
	}}
	resp := performRequest(t, http.MethodGet, "/budget/subteams", "/budget/subteams", NewOrderHandler(facade).SubteamSpend, asUser(1), nil, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	var spend dto.SubteamSpendResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &spend); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !spend.Subteams["electrical"].Equal(decimal.RequireFromString("120.00")) {
		t.Fatalf("unexpected spend %+v", spend)
	}
}

func TestOrderHandlerExport(t *testing.T) {
	facade := testhelpers.PurchasingFacadeStub{OrderFacadeStub: testhelpers.OrderFacadeStub{
		OrdersFn: func(context.Context) ([]model.Order, error) {
			return []model.Order{{ID: 1, HumanID: "PO-00001", Name: "motors", Status: model.OrderStatusShipped}}, nil
		},
	}}
	resp := performRequest(t, http.MethodGet, "/orders/export", "/orders/export", NewOrderHandler(facade).Export, asUser(1), nil, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	if ct := resp.Header().Get("Content-Type"); ct != "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet" {
		t.Fatalf("unexpected content type %q", ct)
	}
	if resp.Body.Len() == 0 {
		t.Fatal("expected workbook bytes")
	}
}

func TestItemHandlerCreateInventory(t *testing.T) {
	sku := "SKU-1"
	body := mustJSON(t, dto.InventoryItemRequest{Name: "bolt", Vendor: "McMaster", Quantity: 100, Price: decimal.RequireFromString("0.10"), InternalSKU: &sku})
	resp := performRequest(t, http.MethodPost, "/items", "/items", NewItemHandler(testhelpers.PurchasingFacadeStub{}).CreateInventory, asUser(1), body, jsonHeaders)
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.Code)
	}

	resp = performRequest(t, http.MethodPost, "/items", "/items", NewItemHandler(testhelpers.PurchasingFacadeStub{}).CreateInventory, asUser(1), []byte("{"), jsonHeaders)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
}

func TestItemHandlerInventory(t *testing.T) {
	resp := performRequest(t, http.MethodGet, "/items/inventory", "/items/inventory", NewItemHandler(testhelpers.PurchasingFacadeStub{}).Inventory, asUser(1), nil, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	var items []dto.ItemResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &items); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("unexpected inventory %+v", items)
	}
}

func TestItemHandlerUpdateStatus(t *testing.T) {
	var appliedID int64
	var appliedStatus model.ItemStatus
	facade := testhelpers.PurchasingFacadeStub{ItemFacadeStub: testhelpers.ItemFacadeStub{
		UpdateStatusFn: func(_ context.Context, id int64, status model.ItemStatus) (*model.Item, error) {
			appliedID, appliedStatus = id, status
			return &model.Item{ID: id, Status: status}, nil
		},
	}}
	body := mustJSON(t, dto.ItemStatusRequest{Status: "PICKED_UP"})
	resp := performRequest(t, http.MethodPut, "/items/:id/status", "/items/4/status", NewItemHandler(facade).UpdateStatus, asUser(1), body, jsonHeaders)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	if appliedID != 4 || appliedStatus != model.ItemStatusPickedUp {
		t.Fatalf("unexpected call %d %s", appliedID, appliedStatus)
	}

	body = mustJSON(t, dto.ItemStatusRequest{Status: "ARCHIVED"})
	resp = performRequest(t, http.MethodPut, "/items/:id/status", "/items/4/status", NewItemHandler(facade).UpdateStatus, asUser(1), body, jsonHeaders)
	if resp.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 for order-only status, got %d", resp.Code)
	}
}

func TestItemHandlerUpdateAndDelete(t *testing.T) {
	name := "longer bolt"
	body := mustJSON(t, dto.ItemUpdateRequest{Name: &name})
	resp := performRequest(t, http.MethodPatch, "/items/:id", "/items/4", NewItemHandler(testhelpers.PurchasingFacadeStub{}).Update, asUser(1), body, jsonHeaders)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}

	resp = performRequest(t, http.MethodDelete, "/items/:id", "/items/4", NewItemHandler(testhelpers.PurchasingFacadeStub{}).Delete, asUser(1), nil, nil)
	if resp.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", resp.Code)
	}

	missing := testhelpers.PurchasingFacadeStub{ItemFacadeStub: testhelpers.ItemFacadeStub{
		DeleteFn: func(context.Context, int64) error { return domainErrors.ErrNotFound },
	}}
	resp = performRequest(t, http.MethodDelete, "/items/:id", "/items/4", NewItemHandler(missing).Delete, asUser(1), nil, nil)
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.Code)
	}
}

func TestPushHandlerRegister(t *testing.T) {
	var registered model.PushToken
	facade := testhelpers.PurchasingFacadeStub{PushFacadeStub: testhelpers.PushFacadeStub{
		RegisterFn: func(_ context.Context, token model.PushToken) error {
			registered = token
			return nil
		},
	}}
	body := mustJSON(t, dto.PushTokenRequest{Token: "ExponentPushToken[abc]", Platform: "ios"})
	resp := performRequest(t, http.MethodPost, "/push/register", "/push/register", NewPushHandler(facade).Register, asUser(9), body, jsonHeaders)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	if registered.UserID != 9 || registered.Token != "ExponentPushToken[abc]" {
		t.Fatalf("unexpected registration %+v", registered)
	}
	if registered.DeviceID == "" {
		t.Fatal("expected generated device id")
	}

	resp = performRequest(t, http.MethodPost, "/push/register", "/push/register", NewPushHandler(facade).Register, asUser(9), mustJSON(t, dto.PushTokenRequest{}), jsonHeaders)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for empty token, got %d", resp.Code)
	}
}

func TestPushHandlerUnregister(t *testing.T) {
	var removed string
	facade := testhelpers.PurchasingFacadeStub{PushFacadeStub: testhelpers.PushFacadeStub{
		UnregisterFn: func(_ context.Context, token string) error {
			removed = token
			return nil
		},
	}}
	body := mustJSON(t, dto.PushUnregisterRequest{Token: "ExponentPushToken[abc]"})
	resp := performRequest(t, http.MethodPost, "/push/unregister", "/push/unregister", NewPushHandler(facade).Unregister, asUser(9), body, jsonHeaders)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	if removed != "ExponentPushToken[abc]" {
		t.Fatalf("unexpected token %q", removed)
	}
}

type healthCheckerStub struct{ err error }

func (s healthCheckerStub) HealthCheck(context.Context) error { return s.err }

func TestHealthHandler(t *testing.T) {
	resp := performRequest(t, http.MethodGet, "/health", "/health", NewHealthHandler(healthCheckerStub{}).Check, nil, nil, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}

	resp = performRequest(t, http.MethodGet, "/health", "/health", NewHealthHandler(healthCheckerStub{err: errors.New("down")}).Check, nil, nil, nil)
	if resp.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", resp.Code)
	}
}

func mustJSON(t *testing.T, v interface{}) []byte {
	t.Helper()
	data, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	return data
}
