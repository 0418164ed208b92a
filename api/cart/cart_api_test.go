package cart

import (
	"encoding/json"
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"primos.GO/api"
	cartService "primos.GO/cart"
	catalogStore "primos.GO/catalog"
	"primos.GO/checkout"
	"primos.GO/core/kv"
)

func newTestApp(t *testing.T) *echo.Echo {
	t.Helper()

	store := catalogStore.NewStore(30)
	store.Load(catalogStore.Parse(strings.Join([]string{
		"codigo;nome;categoria;preco;qt;descricao;marca;promocao",
		"A1;Mouse;Perifericos;49,90;10;;;nao",
		"A2;Teclado;Perifericos;150,00;5;;;nao",
	}, "\n")))

	app := &api.App{
		Catalog: store,
		Carts:   cartService.NewService(kv.NewMemory()),
		Channels: checkout.Channels{
			StoreName: "Primos Informática",
			Phone:     "556133406740",
			Email:     "marketing.primosinfo@gmail.com",
			SiteURL:   "https://example.test",
		},
	}
	e := echo.New()
	RegisterCartRoutes(e.Group("/api"), app)
	return e
}

func do(e *echo.Echo, method, path, body, session string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if session != "" {
		req.Header.Set("X-Cart-ID", session)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

type cartBody struct {
	Items []struct {
		Code     string  `json:"codigo"`
		Quantity int     `json:"quantity"`
		Price    string  `json:"preco"`
		PriceRaw float64 `json:"precoRaw"`
	} `json:"items"`
	Total     float64 `json:"total"`
	ItemCount int     `json:"item_count"`
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) cartBody {
	t.Helper()
	var body cartBody
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	return body
}

func TestCartAPI_AddAndGet(t *testing.T) {
	e := newTestApp(t)

	rec := do(e, http.MethodPost, "/api/cart/items", `{"codigo":"A1","quantity":2}`, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
	body := decode(t, rec)
	if len(body.Items) != 1 || body.Items[0].Quantity != 2 {
		t.Errorf("body = %+v", body)
	}
	if math.Abs(body.Total-99.80) > 1e-9 {
		t.Errorf("total = %v, want 99.80", body.Total)
	}

	got := decode(t, do(e, http.MethodGet, "/api/cart", "", ""))
	if got.ItemCount != 2 {
		t.Errorf("item_count = %d, want 2", got.ItemCount)
	}
}

func TestCartAPI_AddUnknownCode(t *testing.T) {
	e := newTestApp(t)
	if rec := do(e, http.MethodPost, "/api/cart/items", `{"codigo":"ZZ"}`, ""); rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
	if rec := do(e, http.MethodPost, "/api/cart/items", `{}`, ""); rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestCartAPI_PatchAndDelete(t *testing.T) {
	e := newTestApp(t)
	do(e, http.MethodPost, "/api/cart/items", `{"codigo":"A1"}`, "")
	do(e, http.MethodPost, "/api/cart/items", `{"codigo":"A2"}`, "")

	body := decode(t, do(e, http.MethodPatch, "/api/cart/items/A1", `{"quantity":5}`, ""))
	if body.ItemCount != 6 {
		t.Errorf("item_count = %d, want 6", body.ItemCount)
	}

	body = decode(t, do(e, http.MethodPatch, "/api/cart/items/A1", `{"quantity":0}`, ""))
	if len(body.Items) != 1 || body.Items[0].Code != "A2" {
		t.Errorf("zero quantity should remove the line: %+v", body.Items)
	}

	body = decode(t, do(e, http.MethodDelete, "/api/cart/items/A2", "", ""))
	if len(body.Items) != 0 {
		t.Errorf("items = %+v, want empty", body.Items)
	}
}

func TestCartAPI_Clear(t *testing.T) {
	e := newTestApp(t)
	do(e, http.MethodPost, "/api/cart/items", `{"codigo":"A1","quantity":3}`, "")
	body := decode(t, do(e, http.MethodDelete, "/api/cart", "", ""))
	if body.ItemCount != 0 || body.Total != 0 {
		t.Errorf("after clear: %+v", body)
	}
}

func TestCartAPI_SessionIsolation(t *testing.T) {
	e := newTestApp(t)
	do(e, http.MethodPost, "/api/cart/items", `{"codigo":"A1"}`, "sess-a")

	if body := decode(t, do(e, http.MethodGet, "/api/cart", "", "sess-b")); len(body.Items) != 0 {
		t.Errorf("session b sees session a's cart: %+v", body.Items)
	}
	if body := decode(t, do(e, http.MethodGet, "/api/cart", "", "sess-a")); len(body.Items) != 1 {
		t.Errorf("session a cart lost: %+v", body.Items)
	}
}

func TestCartAPI_Checkout(t *testing.T) {
	e := newTestApp(t)

	if rec := do(e, http.MethodGet, "/api/cart/checkout", "", ""); rec.Code != http.StatusConflict {
		t.Fatalf("empty cart status = %d, want 409", rec.Code)
	}

	do(e, http.MethodPost, "/api/cart/items", `{"codigo":"A1","quantity":2}`, "")
	rec := do(e, http.MethodGet, "/api/cart/checkout", "", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var body struct {
		Summary  string `json:"summary"`
		WhatsApp string `json:"whatsapp_url"`
		Mailto   string `json:"mailto_url"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(body.Summary, "2x Mouse - R$ 49,90") {
		t.Errorf("summary = %q", body.Summary)
	}
	if !strings.HasPrefix(body.WhatsApp, "https://wa.me/556133406740?text=") {
		t.Errorf("whatsapp_url = %q", body.WhatsApp)
	}
	if !strings.HasPrefix(body.Mailto, "mailto:marketing.primosinfo@gmail.com?") {
		t.Errorf("mailto_url = %q", body.Mailto)
	}
}
