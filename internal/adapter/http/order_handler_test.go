package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/luckyeats/food-order-api/internal/adapter/queue"
	"github.com/luckyeats/food-order-api/internal/adapter/sheets"
	"github.com/luckyeats/food-order-api/internal/adapter/static"
	"github.com/luckyeats/food-order-api/internal/cart"
	"github.com/luckyeats/food-order-api/internal/logging"
	"github.com/luckyeats/food-order-api/internal/session"
	"github.com/luckyeats/food-order-api/internal/usecase"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	dir, _ := os.MkdirTemp("", "food-order-api-test")
	logging.Init("test", filepath.Join(dir, "app.log"))
	code := m.Run()
	_ = os.RemoveAll(dir)
	os.Exit(code)
}

type memStorage struct {
	mu   sync.Mutex
	data map[string][]byte
}

func (m *memStorage) Load(ctx context.Context, slot string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.data[slot], nil
}

func (m *memStorage) Save(ctx context.Context, slot string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[slot] = data
	return nil
}

type stubGuard struct {
	allow bool
}

func (g stubGuard) TryBegin(ctx context.Context, sessionID string) (bool, error) {
	return g.allow, nil
}

func (g stubGuard) End(ctx context.Context, sessionID string) {}

// newTestRouter wires the full stack on in-memory storage, the static
// catalog, and an unconfigured ledger.
func newTestRouter(t *testing.T, guard usecase.AttemptGuard) *gin.Engine {
	t.Helper()
	log := logging.New("test")
	storage := &memStorage{data: make(map[string][]byte)}
	carts := cart.NewManager(storage, log)
	sessions := session.NewManager(storage, log)
	submit := usecase.NewSubmitOrder(
		static.NewProcessor(),
		sheets.NewLedger("", log),
		guard,
		queue.NewLogNotifier(log),
		carts, sessions,
		200*time.Millisecond, 30,
	)
	return NewRouter(
		NewCatalogHandler(static.NewCatalog()),
		NewCartHandler(carts, 30),
		NewOrderHandler(submit),
		NewSessionHandler(sessions, carts),
	)
}

func doJSON(r *gin.Engine, method, path, sessionID string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if sessionID != "" {
		req.Header.Set("X-Session-Id", sessionID)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func orderBody() map[string]string {
	return map[string]string{
		"customerName":    "王小明",
		"customerPhone":   "0912345678",
		"deliveryAddress": "台北市信義區",
		"paymentMethod":   "現金",
	}
}

func addBurger(t *testing.T, r *gin.Engine, sessionID string) {
	t.Helper()
	w := doJSON(r, http.MethodPost, "/v1/cart/items", sessionID, map[string]any{
		"id": "m1", "name": "經典漢堡", "price": 180, "restaurantName": "熾熱鐵板燒",
	})
	require.Equal(t, http.StatusOK, w.Code)
}

func TestSubmitOrder_EndToEnd(t *testing.T) {
	r := newTestRouter(t, stubGuard{allow: true})
	addBurger(t, r, "s1")
	addBurger(t, r, "s1")

	w := doJSON(r, http.MethodPost, "/v1/orders", "s1", orderBody())

	require.Equal(t, http.StatusCreated, w.Code)
	var order map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &order))
	assert.Regexp(t, `^ORD-\d{6}$`, order["orderNumber"])
	assert.EqualValues(t, 360, order["subtotal"])
	assert.EqualValues(t, 390, order["total"])

	// cart is cleared and the session shows the confirmation screen
	w = doJSON(r, http.MethodGet, "/v1/cart", "s1", nil)
	var cartResp struct {
		Items []any `json:"items"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &cartResp))
	assert.Empty(t, cartResp.Items)

	w = doJSON(r, http.MethodGet, "/v1/session", "s1", nil)
	var state struct {
		View string `json:"view"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &state))
	assert.Equal(t, "confirmation", state.View)
}

func TestSubmitOrder_EmptyCartIs400(t *testing.T) {
	r := newTestRouter(t, stubGuard{allow: true})

	w := doJSON(r, http.MethodPost, "/v1/orders", "s1", orderBody())

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSubmitOrder_InFlightIs409(t *testing.T) {
	r := newTestRouter(t, stubGuard{allow: false})
	addBurger(t, r, "s1")

	w := doJSON(r, http.MethodPost, "/v1/orders", "s1", orderBody())

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestSubmitOrder_MissingFieldsIs400(t *testing.T) {
	r := newTestRouter(t, stubGuard{allow: true})
	addBurger(t, r, "s1")

	w := doJSON(r, http.MethodPost, "/v1/orders", "s1", map[string]string{"customerName": "王小明"})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCart_AddUpdateRemoveFlow(t *testing.T) {
	r := newTestRouter(t, stubGuard{allow: true})
	addBurger(t, r, "s1")
	addBurger(t, r, "s1")

	w := doJSON(r, http.MethodPut, "/v1/cart/items/m1", "s1", map[string]int{"quantity": 5})
	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		ItemCount int   `json:"itemCount"`
		Subtotal  int64 `json:"subtotal"`
		Total     int64 `json:"total"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 5, resp.ItemCount)
	assert.Equal(t, int64(900), resp.Subtotal)
	assert.Equal(t, int64(930), resp.Total)

	w = doJSON(r, http.MethodDelete, "/v1/cart/items/m1", "s1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 0, resp.ItemCount)
}

func TestCarts_AreIsolatedPerSession(t *testing.T) {
	r := newTestRouter(t, stubGuard{allow: true})
	addBurger(t, r, "s1")

	w := doJSON(r, http.MethodGet, "/v1/cart", "s2", nil)

	var resp struct {
		Items []any `json:"items"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Empty(t, resp.Items)
}

func TestSession_BeginCheckoutRequiresItems(t *testing.T) {
	r := newTestRouter(t, stubGuard{allow: true})

	w := doJSON(r, http.MethodPost, "/v1/session/events", "s1", map[string]string{"event": "begin_checkout"})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSession_InvalidTransitionIs409(t *testing.T) {
	r := newTestRouter(t, stubGuard{allow: true})
	addBurger(t, r, "s1")

	// checkout straight from the restaurant list is not a legal move
	w := doJSON(r, http.MethodPost, "/v1/session/events", "s1", map[string]string{"event": "begin_checkout"})

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestSessionID_IssuedWhenAbsent(t *testing.T) {
	r := newTestRouter(t, stubGuard{allow: true})

	w := doJSON(r, http.MethodGet, "/v1/cart", "", nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get("X-Session-Id"))
}

func TestRestaurants_ListAndMenu(t *testing.T) {
	r := newTestRouter(t, stubGuard{allow: true})

	w := doJSON(r, http.MethodGet, "/v1/restaurants", "s1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var list struct {
		Restaurants []struct {
			Name string `json:"name"`
		} `json:"restaurants"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	require.Len(t, list.Restaurants, 8)

	w = doJSON(r, http.MethodGet, "/v1/restaurants/京都花開壽司/menu", "s1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var menu struct {
		Menu []struct {
			Name  string `json:"name"`
			Price int64  `json:"price"`
		} `json:"menu"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &menu))
	require.Len(t, menu.Menu, 6)
}
