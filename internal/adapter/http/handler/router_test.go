package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"
	"time"

	"cash-register/internal/adapter/storage/memory"
	"cash-register/internal/core/domain"
	"cash-register/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testServer struct {
	router *gin.Engine
	audit  *memory.AuditRepo
	token  string
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	log := zerolog.Nop()
	ctx := context.Background()

	hashSvc := service.NewArgon2HashServiceWithParams(service.Argon2Params{Time: 1, Memory: 1024, Threads: 1, KeyLen: 16, SaltLen: 8})
	hash, err := hashSvc.Hash("till-password")
	require.NoError(t, err)
	tokenSvc := service.NewJWTTokenService("router-test-secret", time.Hour, "cash-register")

	registerSvc := service.NewRegisterService(memory.NewStore(), nil, nil, service.RegisterOptions{LockTimeout: 2 * time.Second}, log)
	require.NoError(t, registerSvc.Load(ctx))
	require.NoError(t, registerSvc.Seed(ctx, []int64{100000, 20000, 10000, 500, 200}))

	audit := memory.NewAuditRepo()
	s := &testServer{
		router: SetupRouter(RouterDeps{
			AuthSvc:     service.NewAuthService("operator", hash, hashSvc, tokenSvc, log),
			RegisterSvc: registerSvc,
			TokenSvc:    tokenSvc,
			AuditSvc:    service.NewAuditService(audit, log),
			Logger:      log,
		}),
		audit: audit,
	}

	w := s.do(t, http.MethodPost, "/api/v1/auth/token", map[string]string{"username": "operator", "password": "till-password"}, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	s.token = decodeData(t, w)["token"].(string)
	return s
}

func (s *testServer) do(t *testing.T, method, path string, body any, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	var r *bytes.Reader
	if body == nil {
		r = bytes.NewReader(nil)
	} else {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, r)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *testServer) admin(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	return s.do(t, method, path, body, map[string]string{"Authorization": "Bearer " + s.token})
}

func (s *testServer) stock(t *testing.T, quantities map[int64]int64) {
	for value, qty := range quantities {
		w := s.admin(t, http.MethodPut, "/api/v1/inventory/"+jsonInt(value), map[string]int64{"quantity": qty})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	}
}

func jsonInt(v int64) string {
	b, _ := json.Marshal(v)
	return string(b)
}

func totalAmount(t *testing.T, s *testServer) float64 {
	w := s.do(t, http.MethodGet, "/api/v1/register/state", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	return decodeData(t, w)["total_amount"].(float64)
}

func TestRouter_PaymentLifecycle(t *testing.T) {
	s := newTestServer(t)
	s.stock(t, map[int64]int64{20000: 5, 10000: 10, 500: 15, 200: 20})
	require.Equal(t, float64(218000), totalAmount(t, s))

	payment := map[string]any{
		"amount":       49500,
		"payment_form": []map[string]int64{{"currency_type": 100000, "quantity": 2}},
	}
	w := s.do(t, http.MethodPost, "/api/v1/payments", payment, map[string]string{"Idempotency-Key": "order-42"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	data := decodeData(t, w)
	assert.Equal(t, float64(150500), data["total_change"])
	assert.Len(t, data["change"], 3)
	id := data["id"].(string)

	// retry with the same key returns the original payment and moves no cash
	w = s.do(t, http.MethodPost, "/api/v1/payments", payment, map[string]string{"Idempotency-Key": "order-42"})
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, id, decodeData(t, w)["id"])
	assert.Equal(t, float64(218000+49500), totalAmount(t, s))

	w = s.do(t, http.MethodGet, "/api/v1/payments/"+id, nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(200000), decodeData(t, w)["total_payment"])

	w = s.do(t, http.MethodGet, "/api/v1/register/history", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(49500), decodeData(t, w)["total_amount"])

	// change that stock cannot cover leaves the register untouched
	w = s.do(t, http.MethodPost, "/api/v1/payments", map[string]any{
		"amount":       12500,
		"payment_form": []map[string]int64{{"currency_type": 100000, "quantity": 1}},
	}, nil)
	require.Equal(t, http.StatusConflict, w.Code, w.Body.String())
	assert.Equal(t, "PAY_003", errorCode(t, w))
	assert.Equal(t, float64(218000+49500), totalAmount(t, s))
}

func TestRouter_EmptyRegister(t *testing.T) {
	s := newTestServer(t)
	s.stock(t, map[int64]int64{500: 4})
	before := time.Now().UTC()

	w := s.admin(t, http.MethodPost, "/api/v1/register/empty", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, float64(2000), decodeData(t, w)["total_removed"])
	assert.Zero(t, totalAmount(t, s))

	// restocks write no ledger entries, so the balance is the negated empty
	w = s.do(t, http.MethodGet, "/api/v1/register/history", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(-2000), decodeData(t, w)["total_amount"])

	w = s.do(t, http.MethodGet, "/api/v1/register/history?as_of="+url.QueryEscape(before.Add(-time.Hour).Format(time.RFC3339)), nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(0), decodeData(t, w)["total_amount"])

	require.Eventually(t, func() bool {
		for _, l := range s.audit.Logs() {
			if l.Action == domain.AuditActionEmptyRegister && l.Operator == "operator" {
				return true
			}
		}
		return false
	}, 2*time.Second, 10*time.Millisecond)
}

func TestRouter_AdminRoutesRequireToken(t *testing.T) {
	s := newTestServer(t)

	routes := []struct{ method, path string }{
		{http.MethodPost, "/api/v1/denominations"},
		{http.MethodDelete, "/api/v1/denominations/500"},
		{http.MethodPut, "/api/v1/inventory/500"},
		{http.MethodPatch, "/api/v1/inventory/500"},
		{http.MethodPost, "/api/v1/register/empty"},
	}
	for _, r := range routes {
		w := s.do(t, r.method, r.path, map[string]int64{"quantity": 1}, nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code, "%s %s", r.method, r.path)
	}

	w := s.do(t, http.MethodGet, "/api/v1/denominations", nil, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRouter_CatalogManagement(t *testing.T) {
	s := newTestServer(t)

	w := s.admin(t, http.MethodPost, "/api/v1/denominations", map[string]int64{"currency_type": 5000})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = s.admin(t, http.MethodPost, "/api/v1/denominations", map[string]int64{"currency_type": 5000})
	assert.Equal(t, http.StatusConflict, w.Code)

	s.stock(t, map[int64]int64{5000: 1})
	w = s.admin(t, http.MethodDelete, "/api/v1/denominations/5000", nil)
	assert.Equal(t, http.StatusConflict, w.Code, "stocked denomination cannot be removed")

	w = s.admin(t, http.MethodPatch, "/api/v1/inventory/5000", map[string]int64{"delta": -1})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	w = s.admin(t, http.MethodDelete, "/api/v1/denominations/5000", nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = s.do(t, http.MethodPost, "/api/v1/payments", map[string]any{
		"amount":       5000,
		"payment_form": []map[string]int64{{"currency_type": 5000, "quantity": 1}},
	}, nil)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestRouter_ConcurrentPayments(t *testing.T) {
	s := newTestServer(t)
	s.stock(t, map[int64]int64{500: 100, 200: 100})
	start := totalAmount(t, s)

	var wg sync.WaitGroup
	codes := make(chan int, 20)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			w := s.do(t, http.MethodPost, "/api/v1/payments", map[string]any{
				"amount":       800,
				"payment_form": []map[string]int64{{"currency_type": 500, "quantity": 2}},
			}, nil)
			codes <- w.Code
		}()
	}
	wg.Wait()
	close(codes)

	created := 0
	for code := range codes {
		if code == http.StatusCreated {
			created++
		}
	}
	assert.Equal(t, 20, created)
	assert.Equal(t, start+float64(20*800), totalAmount(t, s))
}
