package digitalize

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/goliatone/go-digitalize/command"
	"github.com/goliatone/go-digitalize/core"
	"github.com/goliatone/go-digitalize/models"
)

var (
	testAPIKey    = strings.Repeat("a", 40)
	testAPISecret = strings.Repeat("b", 40)
)

type apiCall struct {
	method string
	path   string
	body   map[string]any
}

func testClient(t *testing.T, status int, answer string, options ...Option) (*Client, *apiCall) {
	t.Helper()
	call := &apiCall{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		call.method = r.Method
		call.path = r.URL.Path
		raw, _ := io.ReadAll(r.Body)
		if len(raw) > 0 {
			json.Unmarshal(raw, &call.body)
		}
		w.WriteHeader(status)
		if answer != "" {
			w.Write([]byte(answer))
		}
	}))
	t.Cleanup(server.Close)

	host := strings.TrimPrefix(server.URL, "http://")
	uri := "http://" + testAPIKey + ":" + testAPISecret + "@" + host + "?customerId=42&channel=pos"
	client, err := New(uri, append([]Option{WithLocation(time.UTC)}, options...)...)
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	return client, call
}

func TestNew_RejectsMalformedURI(t *testing.T) {
	_, err := New("http://api.example.test")
	if err == nil {
		t.Fatalf("expected error for incomplete uri")
	}
	if !core.IsConnectionURIError(err) {
		t.Fatalf("expected connection uri error, got %v", err)
	}
}

func TestNewFromConfig_ValidatesFirst(t *testing.T) {
	if _, err := NewFromConfig(core.Config{}); err == nil {
		t.Fatalf("expected validation error for empty config")
	}
}

func TestNewFromConfig_ResolvesOverDefaults(t *testing.T) {
	uri := "http://" + testAPIKey + ":" + testAPISecret + "@api.example.test?customerId=42"

	client, err := NewFromConfig(core.Config{ConnectionURI: uri, Timezone: "UTC"})
	if err != nil {
		t.Fatalf("new from config: %v", err)
	}
	cfg := client.Config()
	if cfg.TimeoutSeconds != 30 {
		t.Fatalf("expected default timeout resolved, got %d", cfg.TimeoutSeconds)
	}
	if cfg.Timezone != "UTC" {
		t.Fatalf("expected configured timezone kept, got %q", cfg.Timezone)
	}
}

func TestNewFromRawConfig_LoadsAndOverlaysRuntime(t *testing.T) {
	uri := "http://" + testAPIKey + ":" + testAPISecret + "@api.example.test?customerId=42"
	loader := core.StaticRawConfigLoader(map[string]any{
		"connection_uri":  uri,
		"timeout_seconds": 10,
	})

	client, err := NewFromRawConfig(context.Background(), loader, core.Config{TimeoutSeconds: 3})
	if err != nil {
		t.Fatalf("new from raw config: %v", err)
	}
	cfg := client.Config()
	if cfg.ConnectionURI != uri {
		t.Fatalf("expected loaded uri, got %q", cfg.ConnectionURI)
	}
	if cfg.TimeoutSeconds != 3 {
		t.Fatalf("expected runtime timeout to win, got %d", cfg.TimeoutSeconds)
	}

	if _, err := NewFromRawConfig(context.Background(), core.StaticRawConfigLoader(nil), core.Config{}); err == nil {
		t.Fatalf("expected load failure without a connection uri")
	}
}

func TestClient_Params(t *testing.T) {
	client, _ := testClient(t, http.StatusOK, `{}`)

	params := client.Params()
	if params["channel"] != "pos" {
		t.Fatalf("expected extra params exposed, got %v", params)
	}
	params["channel"] = "mutated"
	if client.Params()["channel"] != "pos" {
		t.Fatalf("expected a defensive copy")
	}
}

func TestOrders_SaveMergesRequestContext(t *testing.T) {
	client, call := testClient(t, http.StatusCreated, `{"data":{"id":"srv-1","order_id":5}}`)
	client.SetRequestContext(RequestContext{UserID: "user-9", StateID: "state-3"})

	order, err := models.CreateOrder(5, "", "")
	if err != nil {
		t.Fatalf("create order: %v", err)
	}
	order.AddProduct("sku-1", 10.0, 1, 0, "")

	out := client.Orders.Save(context.Background(), order)
	if out == nil || out.ID() != "srv-1" {
		t.Fatalf("expected saved order, got %v", out)
	}
	if call.method != http.MethodPost || call.path != "/customers/42/orders" {
		t.Fatalf("unexpected call %s %s", call.method, call.path)
	}
	if call.body["user_id"] != "user-9" || call.body["state_id"] != "state-3" {
		t.Fatalf("expected request context merged, got %v", call.body)
	}
	if _, ok := call.body["id"]; ok {
		t.Fatalf("the server-side id must never be submitted")
	}
}

func TestOrders_SwallowFailuresToNil(t *testing.T) {
	client, _ := testClient(t, http.StatusNotFound, `{"error":"order not found"}`)

	if out := client.Orders.Refund(context.Background(), 12); out != nil {
		t.Fatalf("expected nil on failure, got %v", out)
	}
	if out := client.Orders.UpdateStatus(context.Background(), 12, models.StatusPayed); out != nil {
		t.Fatalf("expected nil on failure, got %v", out)
	}
	if out := client.Orders.RefundProduct(context.Background(), 12, 3, 1); out != nil {
		t.Fatalf("expected nil on failure, got %v", out)
	}
}

func TestOrders_UpdateProduct(t *testing.T) {
	client, call := testClient(t, http.StatusOK, `{"data":{"id":"srv-1"}}`)

	price := 9.99
	out := client.Orders.UpdateProduct(context.Background(), 12, 3, core.ProductPatch{UnitPrice: &price})
	if out == nil {
		t.Fatalf("expected updated order")
	}
	if call.path != "/customers/42/orders/12/products/3" {
		t.Fatalf("unexpected path %s", call.path)
	}
	if len(call.body) != 1 || call.body["unit_price"] != 9.99 {
		t.Fatalf("expected sparse patch, got %v", call.body)
	}
}

func TestProviders_EmitEvent(t *testing.T) {
	client, call := testClient(t, http.StatusCreated,
		`{"data":{"provider":{"type":"pos","identifier":"till-9"},"type":"sale.completed","date":"2021-03-15 12:00:00"}}`,
		WithClock(func() time.Time { return time.Date(2021, 3, 15, 12, 0, 0, 0, time.UTC) }),
	)
	client.Providers.Configure("pos", "till-9", &core.ProviderUserRef{ID: "42", Name: "clerk"})

	out := client.Providers.EmitEvent(context.Background(), "sale.completed", map[string]any{"total": 12.5}, "")
	if out == nil || out.Type() != "sale.completed" {
		t.Fatalf("expected emitted activity, got %v", out)
	}
	if call.path != "/providers/activity" {
		t.Fatalf("unexpected path %s", call.path)
	}
	provider, _ := call.body["provider"].(map[string]any)
	if provider["type"] != "pos" || provider["identifier"] != "till-9" {
		t.Fatalf("expected configured provider identity, got %v", call.body["provider"])
	}
	user, _ := call.body["user"].(map[string]any)
	if user["id"] != "42" || user["name"] != "clerk" {
		t.Fatalf("expected configured user, got %v", call.body["user"])
	}
	if call.body["date"] != "2021-03-15 12:00:00" {
		t.Fatalf("expected clock stamp, got %v", call.body["date"])
	}
	payload, _ := call.body["payload"].(map[string]any)
	if payload["total"] != 12.5 {
		t.Fatalf("expected payload forwarded, got %v", call.body["payload"])
	}
}

func TestProviders_EmitEventSwallowsFailure(t *testing.T) {
	client, _ := testClient(t, http.StatusBadGateway, `{"error":"upstream down"}`)
	client.Providers.Configure("pos", "till-9", nil)

	if out := client.Providers.EmitEvent(context.Background(), "sale.completed", nil, ""); out != nil {
		t.Fatalf("expected nil on failure, got %v", out)
	}
}

func TestClient_VerbHelpers(t *testing.T) {
	client, call := testClient(t, http.StatusOK, `{"data":{"id":"srv-1"}}`)

	res, err := client.Get(context.Background(), "customers/42/orders", map[string]any{"status": "payed"})
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if call.method != http.MethodGet {
		t.Fatalf("expected GET, got %s", call.method)
	}
	if res.Data["id"] != "srv-1" {
		t.Fatalf("expected data member, got %v", res.Data)
	}

	if _, err := client.Delete(context.Background(), "customers/42/orders/9", nil); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if call.method != http.MethodDelete {
		t.Fatalf("expected DELETE, got %s", call.method)
	}
}

func TestClient_CommandsAreWired(t *testing.T) {
	client, call := testClient(t, http.StatusOK, `{"data":{"id":"srv-1"}}`)

	commands := client.Commands()
	if commands.SaveOrder == nil || commands.EmitActivity == nil {
		t.Fatalf("expected commands wired")
	}
	if err := commands.RefundOrder.Execute(context.Background(), command.RefundOrderMessage{OrderID: 12}); err != nil {
		t.Fatalf("refund command: %v", err)
	}
	if call.path != "/customers/42/orders/12/refund" {
		t.Fatalf("unexpected path %s", call.path)
	}
}
