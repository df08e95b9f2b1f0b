package routes

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/malamapl09/donaciones-pola-allande/internal/domain/services/container"
	"github.com/malamapl09/donaciones-pola-allande/internal/infrastructure/config"
	"github.com/malamapl09/donaciones-pola-allande/internal/infrastructure/database"
	"github.com/malamapl09/donaciones-pola-allande/internal/infrastructure/ratelimit"
	"github.com/malamapl09/donaciones-pola-allande/internal/test/testdb"
)

const (
	adminUsername = "admin"
	adminPassword = "s3cret-passw0rd"
)

func init() {
	gin.SetMode(gin.TestMode)
	decimal.MarshalJSONWithoutQuotes = true
}

func newRouter(t *testing.T) *gin.Engine {
	t.Helper()

	pool := testdb.NewPool(t)
	if _, err := database.EnsureAdminExists(pool.GetDB(), adminUsername, "admin@polaallande.org", adminPassword); err != nil {
		t.Fatalf("seed admin: %v", err)
	}

	cfg := &config.Config{
		EnvType:           "LOCAL",
		FrontendURL:       "https://polaallande.org",
		RateLimitBackend:  ratelimit.BackendMemory,
		RateLimitWindow:   15 * time.Minute,
		DonationRateLimit: 5,
		LoginRateLimit:    5,
		GeneralRateLimit:  100,
		JWTSecretKey:      "routes-test-secret",
		JWTExpiry:         time.Hour,
		ReportWorkers:     2,
	}
	c, err := container.NewServiceContainer(pool, cfg, nil)
	if err != nil {
		t.Fatalf("container: %v", err)
	}
	t.Cleanup(c.Close)
	return SetupRouter(c)
}

func do(t *testing.T, r *gin.Engine, method, path string, body interface{}, token string) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("encode body: %v", err)
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var decoded map[string]interface{}
	if w.Body.Len() > 0 && strings.HasPrefix(w.Header().Get("Content-Type"), "application/json") {
		if err := json.Unmarshal(w.Body.Bytes(), &decoded); err != nil {
			t.Fatalf("decode %s %s: %v (%s)", method, path, err, w.Body.String())
		}
	}
	return w, decoded
}

func login(t *testing.T, r *gin.Engine) string {
	t.Helper()
	w, body := do(t, r, http.MethodPost, "/api/admin/login", gin.H{"username": adminUsername, "password": adminPassword}, "")
	if w.Code != http.StatusOK {
		t.Fatalf("login status = %d (%s)", w.Code, w.Body.String())
	}
	token, _ := body["token"].(string)
	if token == "" {
		t.Fatalf("login returned no token: %v", body)
	}
	return token
}

func createDonation(t *testing.T, r *gin.Engine, payload gin.H) map[string]interface{} {
	t.Helper()
	w, body := do(t, r, http.MethodPost, "/api/donations", payload, "")
	if w.Code != http.StatusCreated {
		t.Fatalf("create donation status = %d (%s)", w.Code, w.Body.String())
	}
	return body["donation"].(map[string]interface{})
}

func TestCreateDonationAndLookup(t *testing.T) {
	r := newRouter(t)

	w, body := do(t, r, http.MethodPost, "/api/donations", gin.H{
		"donorName":   "María García",
		"donorEmail":  "maria@example.org",
		"amount":      25.5,
		"isAnonymous": true,
	}, "")
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d (%s)", w.Code, w.Body.String())
	}
	donation := body["donation"].(map[string]interface{})
	ref := donation["referenceNumber"].(string)
	if !strings.HasPrefix(ref, "DON-") || donation["status"] != "pending" {
		t.Errorf("donation = %v", donation)
	}
	if !strings.Contains(body["bankTransferInfo"].(string), ref) {
		t.Errorf("bank info does not carry the reference: %q", body["bankTransferInfo"])
	}

	w, body = do(t, r, http.MethodGet, "/api/donations/"+ref, nil, "")
	if w.Code != http.StatusOK {
		t.Fatalf("lookup status = %d", w.Code)
	}
	if body["donorName"] != nil || body["amount"] != 25.5 {
		t.Errorf("anonymous donation leaked identity: %v", body)
	}

	w, body = do(t, r, http.MethodGet, "/api/donations/DON-NOPE", nil, "")
	if w.Code != http.StatusNotFound || body["error"] != "Donación no encontrada" {
		t.Errorf("missing donation = %d %v", w.Code, body)
	}
}

func TestCreateDonationValidation(t *testing.T) {
	r := newRouter(t)

	cases := []struct {
		name    string
		payload gin.H
		want    string
	}{
		{"too many decimals", gin.H{"amount": 10.001}, "El monto debe estar entre 0,01 € y 100.000 € con máximo dos decimales"},
		{"over maximum", gin.H{"amount": 100000.01}, "El monto debe estar entre 0,01 € y 100.000 € con máximo dos decimales"},
		{"missing amount", gin.H{"donorName": "Ana"}, "El monto debe estar entre 0,01 € y 100.000 € con máximo dos decimales"},
		{"bad email", gin.H{"amount": 10, "donorEmail": "not-an-email"}, "Datos de entrada inválidos"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w, body := do(t, r, http.MethodPost, "/api/donations", tc.payload, "")
			if w.Code != http.StatusBadRequest {
				t.Fatalf("status = %d (%s)", w.Code, w.Body.String())
			}
			if body["error"] != tc.want {
				t.Errorf("error = %q, want %q", body["error"], tc.want)
			}
		})
	}
}

func TestDonationRateLimit(t *testing.T) {
	r := newRouter(t)

	for i := 0; i < 5; i++ {
		createDonation(t, r, gin.H{"amount": 10})
	}

	w, body := do(t, r, http.MethodPost, "/api/donations", gin.H{"amount": 10}, "")
	if w.Code != http.StatusTooManyRequests {
		t.Fatalf("status = %d, want 429", w.Code)
	}
	if body["retryAfter"] == nil || w.Header().Get("Retry-After") == "" {
		t.Errorf("missing retry hint: %v %v", body, w.Header())
	}

	// reads are only subject to the general policy
	if w, _ := do(t, r, http.MethodGet, "/api/donations/stats", nil, ""); w.Code != http.StatusOK {
		t.Errorf("stats status = %d", w.Code)
	}
}

func TestAdminLogin(t *testing.T) {
	r := newRouter(t)

	w, body := do(t, r, http.MethodPost, "/api/admin/login", gin.H{"username": adminUsername, "password": "wrong"}, "")
	if w.Code != http.StatusUnauthorized || body["error"] != "Credenciales inválidas" {
		t.Errorf("bad password = %d %v", w.Code, body)
	}

	w, _ = do(t, r, http.MethodPost, "/api/admin/login", gin.H{"username": adminUsername}, "")
	if w.Code != http.StatusBadRequest {
		t.Errorf("missing password status = %d", w.Code)
	}

	login(t, r)
}

func TestAdminRoutesRequireToken(t *testing.T) {
	r := newRouter(t)

	for _, path := range []string{"/api/admin/donations", "/api/admin/dashboard", "/api/admin/reports", "/api/admin/content"} {
		w, body := do(t, r, http.MethodGet, path, nil, "")
		if w.Code != http.StatusUnauthorized || body["error"] != "Token de acceso requerido" {
			t.Errorf("%s without token = %d %v", path, w.Code, body)
		}
		w, _ = do(t, r, http.MethodGet, path, nil, "garbage")
		if w.Code != http.StatusUnauthorized {
			t.Errorf("%s with bad token = %d", path, w.Code)
		}
	}
}

func TestConfirmDonationFlow(t *testing.T) {
	r := newRouter(t)
	token := login(t, r)

	donation := createDonation(t, r, gin.H{"amount": 40, "donorName": "Luis", "donorCountry": "Argentina"})
	id := int(donation["id"].(float64))

	w, body := do(t, r, http.MethodGet, "/api/admin/donations?status=pending", nil, token)
	if w.Code != http.StatusOK {
		t.Fatalf("list status = %d", w.Code)
	}
	if n := len(body["donations"].([]interface{})); n != 1 {
		t.Errorf("pending donations = %d", n)
	}

	path := fmt.Sprintf("/api/admin/donations/%d/status", id)
	w, body = do(t, r, http.MethodPatch, path, gin.H{"status": "approved"}, token)
	if w.Code != http.StatusBadRequest {
		t.Errorf("invalid status = %d %v", w.Code, body)
	}

	w, body = do(t, r, http.MethodPatch, path, gin.H{"status": "confirmed"}, token)
	if w.Code != http.StatusOK {
		t.Fatalf("confirm status = %d (%s)", w.Code, w.Body.String())
	}
	if body["message"] != "Donación confirmada exitosamente" {
		t.Errorf("message = %v", body["message"])
	}
	updated := body["donation"].(map[string]interface{})
	if updated["status"] != "confirmed" || updated["confirmedBy"] != adminUsername {
		t.Errorf("updated donation = %v", updated)
	}

	w, body = do(t, r, http.MethodGet, "/api/donations/stats", nil, "")
	if w.Code != http.StatusOK || body["totalAmount"] != float64(40) || body["totalDonations"] != float64(1) {
		t.Errorf("stats after confirm = %d %v", w.Code, body)
	}
	countries, _ := body["topCountries"].([]interface{})
	if len(countries) != 1 {
		t.Fatalf("topCountries = %v", body["topCountries"])
	}
	if top := countries[0].(map[string]interface{}); top["country"] != "Argentina" || top["count"] != float64(1) || top["amount"] != float64(40) {
		t.Errorf("top country = %v", top)
	}

	w, _ = do(t, r, http.MethodPatch, "/api/admin/donations/abc/status", gin.H{"status": "confirmed"}, token)
	if w.Code != http.StatusBadRequest {
		t.Errorf("non numeric id = %d", w.Code)
	}
	w, _ = do(t, r, http.MethodPatch, "/api/admin/donations/999/status", gin.H{"status": "confirmed"}, token)
	if w.Code != http.StatusNotFound {
		t.Errorf("unknown id = %d", w.Code)
	}

	for _, path := range []string{"/api/admin/dashboard", "/api/admin/reports"} {
		if w, _ := do(t, r, http.MethodGet, path, nil, token); w.Code != http.StatusOK {
			t.Errorf("%s = %d", path, w.Code)
		}
	}
}

func TestReferralFlow(t *testing.T) {
	r := newRouter(t)

	w, body := do(t, r, http.MethodPost, "/api/referrals", gin.H{"name": "Ana Pérez", "email": "ana@example.org"}, "")
	if w.Code != http.StatusCreated {
		t.Fatalf("create referral = %d (%s)", w.Code, w.Body.String())
	}
	referralCode, _ := body["code"].(string)
	if referralCode == "" || !strings.Contains(body["shareUrl"].(string), "?ref="+referralCode) {
		t.Fatalf("referral = %v", body)
	}

	w, _ = do(t, r, http.MethodPost, "/api/referrals", gin.H{"name": "A"}, "")
	if w.Code != http.StatusBadRequest {
		t.Errorf("short name = %d", w.Code)
	}

	createDonation(t, r, gin.H{"amount": 15, "referralCode": referralCode})

	w, body = do(t, r, http.MethodGet, "/api/referrals/"+referralCode, nil, "")
	if w.Code != http.StatusOK || body["name"] != "Ana Pérez" {
		t.Fatalf("get referral = %d %v", w.Code, body)
	}
	if _, leaked := body["email"]; leaked {
		t.Error("referral page exposes the sponsor email")
	}

	w, body = do(t, r, http.MethodGet, "/api/referrals", nil, "")
	if w.Code != http.StatusOK {
		t.Fatalf("leaderboard = %d", w.Code)
	}
	if _, ok := body["leaderboard"]; !ok {
		t.Errorf("leaderboard body = %v", body)
	}

	w, _ = do(t, r, http.MethodGet, "/api/referrals/NOPE-0000", nil, "")
	if w.Code != http.StatusNotFound {
		t.Errorf("unknown code = %d", w.Code)
	}
}

func TestContentRoutes(t *testing.T) {
	r := newRouter(t)

	w, body := do(t, r, http.MethodGet, "/api/content/section/bank_info", nil, "")
	if w.Code != http.StatusOK || body["title"] != "Información Bancaria" {
		t.Errorf("bank info fallback = %d %v", w.Code, body)
	}

	w, _ = do(t, r, http.MethodGet, "/api/content/missing_section", nil, "")
	if w.Code != http.StatusNotFound {
		t.Errorf("missing section = %d", w.Code)
	}

	token := login(t, r)
	w, body = do(t, r, http.MethodPut, "/api/admin/content", gin.H{
		"section": "hero",
		"title":   "El Día del Inmigrante 2026",
		"content": "Únete a la celebración",
	}, token)
	if w.Code != http.StatusOK {
		t.Fatalf("upsert = %d (%s)", w.Code, w.Body.String())
	}
	if body["message"] != "Contenido actualizado exitosamente" {
		t.Errorf("upsert body = %v", body)
	}

	w, body = do(t, r, http.MethodGet, "/api/content/hero", nil, "")
	if w.Code != http.StatusOK || body["title"] != "El Día del Inmigrante 2026" {
		t.Errorf("published section = %d %v", w.Code, body)
	}

	w, _ = do(t, r, http.MethodPut, "/api/admin/content", gin.H{"section": "hero"}, token)
	if w.Code != http.StatusBadRequest {
		t.Errorf("incomplete upsert = %d", w.Code)
	}
}

func TestPrivacyDataRequest(t *testing.T) {
	r := newRouter(t)
	createDonation(t, r, gin.H{"amount": 20, "donorEmail": "lucia@example.org", "donorName": "Lucía"})

	w, body := do(t, r, http.MethodPost, "/api/privacy/data-request", gin.H{"email": "lucia@example.org", "requestType": "export"}, "")
	if w.Code != http.StatusOK {
		t.Fatalf("export = %d (%s)", w.Code, w.Body.String())
	}
	data := body["data"].(map[string]interface{})
	if n := len(data["donations"].([]interface{})); n != 1 {
		t.Errorf("exported donations = %d", n)
	}

	w, body = do(t, r, http.MethodPost, "/api/privacy/data-request", gin.H{"email": "lucia@example.org", "requestType": "delete"}, "")
	if w.Code != http.StatusOK || !strings.Contains(body["message"].(string), "Artículo 17") {
		t.Errorf("delete = %d %v", w.Code, body)
	}

	w, body = do(t, r, http.MethodPost, "/api/privacy/data-request", gin.H{"email": "lucia@example.org", "requestType": "export"}, "")
	if w.Code != http.StatusOK || len(body["data"].(map[string]interface{})["donations"].([]interface{})) != 0 {
		t.Errorf("export after delete = %d %v", w.Code, body)
	}

	w, body = do(t, r, http.MethodPost, "/api/privacy/data-request", gin.H{"email": "lucia@example.org", "requestType": "sell"}, "")
	if w.Code != http.StatusBadRequest || body["error"] != "Tipo de solicitud inválido" {
		t.Errorf("invalid type = %d %v", w.Code, body)
	}

	w, _ = do(t, r, http.MethodPost, "/api/privacy/data-request", gin.H{"email": "nope", "requestType": "export"}, "")
	if w.Code != http.StatusBadRequest {
		t.Errorf("invalid email = %d", w.Code)
	}

	for _, path := range []string{"/api/privacy/policy", "/api/privacy/cookies"} {
		if w, _ := do(t, r, http.MethodGet, path, nil, ""); w.Code != http.StatusOK {
			t.Errorf("%s = %d", path, w.Code)
		}
	}
}

func TestHealthAndFallbacks(t *testing.T) {
	r := newRouter(t)

	w, body := do(t, r, http.MethodGet, "/api/health", nil, "")
	if w.Code != http.StatusOK || body["status"] != "OK" {
		t.Errorf("health = %d %v", w.Code, body)
	}
	if w.Header().Get("X-GDPR-Compliant") != "true" || w.Header().Get("X-Content-Type-Options") != "nosniff" {
		t.Errorf("security headers missing: %v", w.Header())
	}
	if w.Header().Get("X-Request-ID") == "" {
		t.Error("request id missing")
	}

	w, body = do(t, r, http.MethodGet, "/api/nothing/here", nil, "")
	if w.Code != http.StatusNotFound || body["error"] != "Endpoint no encontrado" {
		t.Errorf("unknown route = %d %v", w.Code, body)
	}

	w, body = do(t, r, http.MethodGet, "/api/content?q=%3Cscript%3E", nil, "")
	if w.Code != http.StatusBadRequest || body["error"] != "Solicitud inválida" {
		t.Errorf("suspicious query = %d %v", w.Code, body)
	}

	if w, _ := do(t, r, http.MethodGet, "/", nil, ""); w.Code != http.StatusOK {
		t.Errorf("index = %d", w.Code)
	}
}
