package remote

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Munazil1/centswise/internal/domain"
)

type staticToken string

func (s staticToken) Token() string { return string(s) }

func newTestClient(t *testing.T, h http.HandlerFunc, token string) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	c, err := NewClient(srv.URL+"/", staticToken(token),
		WithClock(func() time.Time { return time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC) }))
	require.NoError(t, err)
	return c
}

func TestNewClient_RequiresBaseURL(t *testing.T) {
	_, err := NewClient("", nil)
	assert.Error(t, err)
}

func TestClient_Headers(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/health", r.URL.Path)
		assert.Equal(t, "Bearer tok-1", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		_, err := uuid.Parse(r.Header.Get("X-Request-ID"))
		assert.NoError(t, err)
		w.Write([]byte(`{"status":"healthy"}`))
	}, "tok-1")

	out, err := c.Health(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "healthy", out["status"])
}

func TestClient_NoTokenNoAuthorization(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Authorization"))
		w.Write([]byte(`{}`))
	}, "")

	_, err := c.Health(context.Background())
	require.NoError(t, err)
}

func TestClient_ErrorMessages(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"error field", `{"error":"Invalid credentials"}`, "Invalid credentials"},
		{"message field", `{"message":"Token has expired"}`, "Token has expired"},
		{"both prefers error", `{"error":"a","message":"b"}`, "a"},
		{"no json", `<html>oops</html>`, "Request failed"},
		{"empty", ``, "Request failed"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusUnauthorized)
				io.WriteString(w, tt.body)
			}, "")

			_, err := c.Login(context.Background(), "admin", "bad")
			var re *Error
			require.True(t, errors.As(err, &re))
			assert.Equal(t, http.StatusUnauthorized, re.StatusCode)
			assert.Equal(t, tt.want, re.Message)
			assert.Equal(t, http.StatusUnauthorized, StatusCode(err))
		})
	}
}

func TestClient_TransportError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()
	c, err := NewClient(srv.URL, nil)
	require.NoError(t, err)

	_, err = c.ListCredits(context.Background(), domain.ListQuery{})
	require.Error(t, err)
	assert.Zero(t, StatusCode(err))
}

func TestClient_Login(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/auth/login", r.URL.Path)
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "admin", body["username"])
		assert.Equal(t, "secret", body["password"])
		w.Write([]byte(`{"access_token":"abc","user":{"id":1,"username":"admin","email":"a@b.c","last_login":null}}`))
	}, "")

	res, err := c.Login(context.Background(), "admin", "secret")
	require.NoError(t, err)
	assert.Equal(t, "abc", res.AccessToken)
	assert.Equal(t, domain.User{ID: "1", Username: "admin", Email: "a@b.c"}, res.User)
}

func TestClient_ListCredits_SerialFallbacks(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/money/credits", r.URL.Path)
		assert.Equal(t, "200", r.URL.Query().Get("per_page"))
		w.Write([]byte(`{"credits":[
			{"id":3,"serial_number":"RCP-2026-0009","donor_name":"A","amount":10.5,"date":"2026-04-01","purpose":"p","payment_method":"cash","contact_info":null,"created_at":"2026-04-01T10:00:00"},
			{"id":2,"receipt_serial":"RCP-2026-0002","donor_name":"B","amount":20,"date":"2026-03-01","purpose":"p","payment_method":null,"created_at":"2026-03-01T10:00:00"},
			{"id":1,"receipt_serial":null,"donor_name":"C","amount":30,"date":"2026-02-01","purpose":"p","created_at":"2026-02-01T10:00:00"}
		],"total":3,"pages":1,"current_page":1}`))
	}, "")

	credits, err := c.ListCredits(context.Background(), domain.ListQuery{PerPage: 200})
	require.NoError(t, err)
	require.Len(t, credits, 3)
	assert.Equal(t, "RCP-2026-0009", credits[0].SerialNumber)
	assert.True(t, decimal.RequireFromString("10.5").Equal(credits[0].Amount))
	assert.Equal(t, domain.PaymentMethodCash, credits[0].PaymentMethod)
	assert.Equal(t, "RCP-2026-0002", credits[1].SerialNumber)
	assert.Equal(t, "RCP-2026-0001", credits[2].SerialNumber)
	assert.Equal(t, "1", credits[2].ID)
}

func TestClient_CreateCredit(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "A", body["donor_name"])
		assert.Equal(t, 500.0, body["amount"])
		assert.Equal(t, "cash", body["payment_method"])
		assert.NotContains(t, body, "contact_info")
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"message":"Credit added successfully","credit":{"id":41,"donor_name":"A","amount":500,"date":"2026-01-01","purpose":"p","payment_method":"cash","created_at":"2026-01-01T00:00:00"}}`))
	}, "t")

	credit, err := c.CreateCredit(context.Background(), domain.CreditDraft{
		DonorName: "A", Amount: decimal.NewFromInt(500), Date: "2026-01-01", Purpose: "p",
		PaymentMethod: domain.PaymentMethodCash,
	})
	require.NoError(t, err)
	assert.Equal(t, "41", credit.ID)
}

func TestClient_CreateItemSendsAvailableEqualTotal(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, 7.0, body["total_quantity"])
		assert.Equal(t, 7.0, body["available_quantity"])
		w.Write([]byte(`{"item":{"id":"9","name":"Chair","total_quantity":7,"available_quantity":7,"distributed_quantity":0,"created_at":"2026-01-01"}}`))
	}, "t")

	item, err := c.CreateItem(context.Background(), domain.ItemDraft{Name: "Chair", Category: "furniture", TotalQuantity: 7})
	require.NoError(t, err)
	assert.Equal(t, "9", item.ID)
	assert.Equal(t, 7, item.AvailableQuantity)
	assert.Zero(t, item.DistributedQuantity)
}

func TestClient_ListItemsDerivesDistributed(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"items":[{"id":1,"name":"Bed","total_quantity":5,"available_quantity":3}]}`))
	}, "t")

	items, err := c.ListItems(context.Background(), domain.ListQuery{})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 2, items[0].DistributedQuantity)
}

func TestClient_DashboardMetrics(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"financial":{"total_collected":1000,"total_spent":250.5,"available_balance":749.5},
			"inventory":{"total_items":10,"available_items":8,"distributed_items":2,"active_distributions":1}}`))
	}, "t")

	m, err := c.DashboardMetrics(context.Background())
	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("749.5").Equal(m.AvailableBalance))
	assert.Equal(t, 10, m.TotalItems)
	assert.Equal(t, 1, m.ActiveDistributions)
}

func TestClient_Receipts(t *testing.T) {
	pdf := []byte("%PDF-1.4 test")
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/receipts/generate/12":
			assert.Equal(t, http.MethodPost, r.Method)
			w.Write([]byte(`{"receipt":{"id":4,"serial_number":"RCP-2026-0012","donor_name":"A","amount":50,"date":"2026-01-01","pdf_path":"receipts/RCP-2026-0012.pdf","created_at":"2026-01-01"}}`))
		case "/receipts/download/4":
			w.Header().Set("Content-Type", "application/pdf")
			w.Write(pdf)
		default:
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte(`{"error":"Receipt not found"}`))
		}
	}, "t")

	rec, err := c.GenerateReceipt(context.Background(), "12")
	require.NoError(t, err)
	assert.Equal(t, "4", rec.ID)
	assert.Equal(t, "12", rec.CreditID)

	data, err := c.DownloadReceipt(context.Background(), rec.ID)
	require.NoError(t, err)
	assert.Equal(t, pdf, data)

	_, err = c.DownloadReceipt(context.Background(), "99")
	assert.Equal(t, http.StatusNotFound, StatusCode(err))
}
