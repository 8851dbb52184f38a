package router

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"dialdish/internal/auth"
	"dialdish/internal/call"
	"dialdish/internal/catalog"
	"dialdish/internal/extract"
	"dialdish/internal/order"
	"dialdish/internal/session"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

const menuJSON = `{
	"menu": {
		"Maki Rolls": [{"name": "California Roll", "price": 7.28}]
	}
}`

type countingSink struct {
	mu    sync.Mutex
	calls int
}

func (s *countingSink) Submit(ctx context.Context, ord *order.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	return nil
}

func testRouter(t *testing.T) (*gin.Engine, *countingSink) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	t.Setenv("JWT_SECRET", "test-secret-key-for-testing-only")

	store, err := catalog.NewStore(func() (*catalog.Catalog, error) {
		return catalog.LoadBytes([]byte(menuJSON), catalog.FormatJSON)
	})
	if err != nil {
		t.Fatalf("catalog store: %v", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("sushi-rules"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt: %v", err)
	}

	snk := &countingSink{}
	archive := order.NewMemoryArchive()
	assembler := order.NewAssembler(extract.New(extract.DefaultVocabulary()), 0.13, 20*time.Minute)
	callService := call.NewService(session.NewManager(), store, assembler, snk, archive, time.Second)

	r := New(Handlers{
		Auth:    auth.NewHandler(auth.NewService(string(hash))),
		Call:    call.NewHandler(callService),
		Catalog: catalog.NewHandler(store, "Test Sushi"),
		Orders:  order.NewHandler(archive),
	})
	return r, snk
}

func doJSON(r *gin.Engine, method, path, body, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestHealthCheck(t *testing.T) {
	r, _ := testRouter(t)

	w := doJSON(r, http.MethodGet, "/health", "", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
}

func TestMenuEndpoints(t *testing.T) {
	r, _ := testRouter(t)

	w := doJSON(r, http.MethodGet, "/menu", "", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	w = doJSON(r, http.MethodGet, "/menu/search?q=roll", "", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var resp struct {
		Items []catalog.MenuItem `json:"items"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding search response: %v", err)
	}
	if len(resp.Items) != 1 || resp.Items[0].Name != "California Roll" {
		t.Errorf("unexpected search results: %+v", resp.Items)
	}

	if w := doJSON(r, http.MethodGet, "/menu/search", "", ""); w.Code != http.StatusBadRequest {
		t.Errorf("missing q should be 400, got %d", w.Code)
	}

	if w := doJSON(r, http.MethodGet, "/menu/items/unknown%20thing", "", ""); w.Code != http.StatusNotFound {
		t.Errorf("unknown item should be 404, got %d", w.Code)
	}
}

func TestCallFlowOverHTTP(t *testing.T) {
	r, snk := testRouter(t)

	if w := doJSON(r, http.MethodPost, "/calls/call-9/connected", "", ""); w.Code != http.StatusOK {
		t.Fatalf("connected: expected 200, got %d", w.Code)
	}

	utterances := []string{
		`{"speaker": "customer", "text": "two california roll, my name is hana tanaka"}`,
		`{"speaker": "agent", "text": "Order total is $16.45. Thank you for your order!"}`,
	}
	for _, body := range utterances {
		if w := doJSON(r, http.MethodPost, "/calls/call-9/utterances", body, ""); w.Code != http.StatusOK {
			t.Fatalf("utterance: expected 200, got %d: %s", w.Code, w.Body.String())
		}
	}

	w := doJSON(r, http.MethodPost, "/calls/call-9/disconnected", "", "")
	if w.Code != http.StatusOK {
		t.Fatalf("disconnected: expected 200, got %d", w.Code)
	}
	var resp struct {
		Submitted bool `json:"submitted"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if !resp.Submitted {
		t.Fatalf("expected submitted=true: %s", w.Body.String())
	}
	if snk.calls != 1 {
		t.Fatalf("expected 1 sink call, got %d", snk.calls)
	}

	// transport may retry the event; second disconnect finds no session
	if w := doJSON(r, http.MethodPost, "/calls/call-9/disconnected", "", ""); w.Code != http.StatusNotFound {
		t.Errorf("second disconnect should be 404, got %d", w.Code)
	}
}

func TestUtterance_RejectsUnknownSpeaker(t *testing.T) {
	r, _ := testRouter(t)

	doJSON(r, http.MethodPost, "/calls/call-1/connected", "", "")
	w := doJSON(r, http.MethodPost, "/calls/call-1/utterances", `{"speaker": "narrator", "text": "hm"}`, "")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestAdminRoutesRequireAuth(t *testing.T) {
	r, _ := testRouter(t)

	if w := doJSON(r, http.MethodGet, "/admin/orders", "", ""); w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
	if w := doJSON(r, http.MethodPost, "/admin/menu/reload", "", ""); w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
}

func TestAdminLoginAndAccess(t *testing.T) {
	r, _ := testRouter(t)

	w := doJSON(r, http.MethodPost, "/admin/login", `{"operator": "ops", "password": "wrong"}`, "")
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("bad password: expected 401, got %d", w.Code)
	}

	w = doJSON(r, http.MethodPost, "/admin/login", `{"operator": "ops", "password": "sushi-rules"}`, "")
	if w.Code != http.StatusOK {
		t.Fatalf("login: expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var login struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &login); err != nil || login.Token == "" {
		t.Fatalf("no token in login response: %s", w.Body.String())
	}

	if w := doJSON(r, http.MethodGet, "/admin/orders", "", login.Token); w.Code != http.StatusOK {
		t.Fatalf("authed orders: expected 200, got %d", w.Code)
	}
	if w := doJSON(r, http.MethodPost, "/admin/menu/reload", "", login.Token); w.Code != http.StatusOK {
		t.Fatalf("authed reload: expected 200, got %d", w.Code)
	}
}
