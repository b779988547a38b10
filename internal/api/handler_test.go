package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/amterp/dairy/internal/config"
	"github.com/amterp/dairy/internal/service"
	"github.com/amterp/dairy/testutil"
)

const (
	ownerUser = "boss"
	ownerPass = "secret"
	staffUser = "sara"
	staffPass = "pw"
)

// testAPI provides a complete test environment for API handler tests.
type testAPI struct {
	handler *Handler
	router  *gin.Engine
	paths   *config.Paths
}

// setupTestAPI creates a test environment with real stores in a temp
// directory, one owner login and one staff login.
func setupTestAPI(t *testing.T) *testAPI {
	t.Helper()

	dir, cleanup := testutil.TempDataDir(t)
	t.Cleanup(cleanup)

	paths := testutil.NewTestPaths(dir)
	if err := service.EnsureStores(paths); err != nil {
		t.Fatalf("EnsureStores failed: %v", err)
	}
	if err := os.WriteFile(paths.OwnerLoginPath(), []byte(ownerUser+","+ownerPass+"\n"), 0644); err != nil {
		t.Fatalf("write owner login: %v", err)
	}

	services := service.NewServices(paths, nil)
	if err := services.Auth.SignUp(staffUser, staffPass); err != nil {
		t.Fatalf("SignUp failed: %v", err)
	}

	settings := config.DefaultSettings()
	settings.PricePerLiter = 2

	handler := NewHandler(services, settings, nil)
	handler.now = func() time.Time { return time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC) }

	return &testAPI{
		handler: handler,
		router:  NewRouter(handler, nil, nil),
		paths:   paths,
	}
}

// credentials identify the caller of a request. A zero value sends none.
type credentials struct {
	user, pass, role string
}

var (
	asOwner = credentials{ownerUser, ownerPass, "owner"}
	asStaff = credentials{staffUser, staffPass, ""}
	anon    = credentials{}
)

// request makes an HTTP request and returns the response.
func (api *testAPI) request(method, path string, body any, creds credentials) *httptest.ResponseRecorder {
	var bodyReader *bytes.Reader
	if body != nil {
		data, _ := json.Marshal(body)
		bodyReader = bytes.NewReader(data)
	} else {
		bodyReader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, bodyReader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if creds.user != "" {
		req.SetBasicAuth(creds.user, creds.pass)
	}
	if creds.role != "" {
		req.Header.Set(RoleHeader, creds.role)
	}

	w := httptest.NewRecorder()
	api.router.ServeHTTP(w, req)
	return w
}

// decodeJSON decodes the response body into the given target.
func decodeJSON(t *testing.T, w *httptest.ResponseRecorder, target any) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(target); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
}

func expectStatus(t *testing.T, w *httptest.ResponseRecorder, want int) {
	t.Helper()
	if w.Code != want {
		t.Fatalf("Expected status %d, got %d: %s", want, w.Code, w.Body.String())
	}
}

func animalBody(id, typ string) map[string]string {
	return map[string]string{"id": id, "type": typ, "gender": "F"}
}

// ============================================================================
// Health and auth
// ============================================================================

func TestHandler_Health(t *testing.T) {
	api := setupTestAPI(t)

	w := api.request("GET", "/healthz", nil, anon)
	expectStatus(t, w, http.StatusOK)
}

func TestHandler_RequiresCredentials(t *testing.T) {
	api := setupTestAPI(t)

	w := api.request("GET", "/api/v1/animals", nil, anon)
	expectStatus(t, w, http.StatusUnauthorized)
	if w.Header().Get("WWW-Authenticate") == "" {
		t.Error("Expected WWW-Authenticate header")
	}

	w = api.request("GET", "/api/v1/animals", nil, credentials{staffUser, "wrong", ""})
	expectStatus(t, w, http.StatusUnauthorized)

	// Staff credentials don't work under the owner role.
	w = api.request("GET", "/api/v1/animals", nil, credentials{staffUser, staffPass, "owner"})
	expectStatus(t, w, http.StatusUnauthorized)
}

func TestHandler_InvalidRoleHeader(t *testing.T) {
	api := setupTestAPI(t)

	w := api.request("GET", "/api/v1/animals", nil, credentials{staffUser, staffPass, "admin"})
	expectStatus(t, w, http.StatusBadRequest)
}

func TestHandler_Signup(t *testing.T) {
	api := setupTestAPI(t)

	w := api.request("POST", "/api/v1/signup", map[string]string{"username": "omar", "password": "pw2"}, anon)
	expectStatus(t, w, http.StatusCreated)

	w = api.request("POST", "/api/v1/signup", map[string]string{"username": "omar", "password": "other"}, anon)
	expectStatus(t, w, http.StatusConflict)

	w = api.request("POST", "/api/v1/signup", map[string]string{"username": "a,b", "password": "pw"}, anon)
	expectStatus(t, w, http.StatusBadRequest)

	// The new login works right away.
	w = api.request("GET", "/api/v1/animals", nil, credentials{"omar", "pw2", ""})
	expectStatus(t, w, http.StatusOK)
}

func TestHandler_Login(t *testing.T) {
	api := setupTestAPI(t)

	w := api.request("POST", "/api/v1/login", map[string]string{"username": ownerUser, "password": ownerPass, "role": "owner"}, anon)
	expectStatus(t, w, http.StatusOK)

	var resp LoginResponse
	decodeJSON(t, w, &resp)
	if resp.Role != "owner" || resp.Username != ownerUser {
		t.Errorf("unexpected login response %+v", resp)
	}
	if len(resp.Actions) != len(service.RoleOwner.Actions()) {
		t.Errorf("Expected %d actions, got %v", len(service.RoleOwner.Actions()), resp.Actions)
	}

	w = api.request("POST", "/api/v1/login", map[string]string{"username": ownerUser, "password": "nope", "role": "owner"}, anon)
	expectStatus(t, w, http.StatusUnauthorized)
}

func TestHandler_InvalidBody(t *testing.T) {
	api := setupTestAPI(t)

	req := httptest.NewRequest("POST", "/api/v1/animals", strings.NewReader("{not json"))
	req.Header.Set("Content-Type", "application/json")
	req.SetBasicAuth(staffUser, staffPass)
	w := httptest.NewRecorder()
	api.router.ServeHTTP(w, req)

	expectStatus(t, w, http.StatusBadRequest)
}

// ============================================================================
// Animals
// ============================================================================

func TestHandler_AnimalLifecycle(t *testing.T) {
	api := setupTestAPI(t)

	expectStatus(t, api.request("POST", "/api/v1/animals", animalBody("A1", "cow"), asStaff), http.StatusCreated)
	expectStatus(t, api.request("POST", "/api/v1/animals", animalBody("B2", "goat"), asStaff), http.StatusCreated)

	w := api.request("GET", "/api/v1/animals/A1", nil, asStaff)
	expectStatus(t, w, http.StatusOK)

	var lookup service.Lookup
	decodeJSON(t, w, &lookup)
	if !lookup.Found || !strings.Contains(lookup.Text, "Animal ID = A1") {
		t.Errorf("unexpected lookup %+v", lookup)
	}

	w = api.request("GET", "/api/v1/animals?type=GOAT", nil, asStaff)
	expectStatus(t, w, http.StatusOK)
	decodeJSON(t, w, &lookup)
	if lookup.Count != 1 || !strings.Contains(lookup.Text, "B2") {
		t.Errorf("unexpected type listing %+v", lookup)
	}

	// Staff may not delete.
	expectStatus(t, api.request("DELETE", "/api/v1/animals/A1", nil, asStaff), http.StatusForbidden)

	w = api.request("DELETE", "/api/v1/animals/A1", nil, asOwner)
	expectStatus(t, w, http.StatusOK)

	var removal service.Removal
	decodeJSON(t, w, &removal)
	if removal.Removed != 1 {
		t.Errorf("Removed = %d, want 1", removal.Removed)
	}

	expectStatus(t, api.request("DELETE", "/api/v1/animals/A1", nil, asOwner), http.StatusNotFound)
	expectStatus(t, api.request("GET", "/api/v1/animals/A1", nil, asStaff), http.StatusNotFound)
}

func TestHandler_AddAnimal_RequiresID(t *testing.T) {
	api := setupTestAPI(t)

	w := api.request("POST", "/api/v1/animals", animalBody("", "cow"), asStaff)
	expectStatus(t, w, http.StatusBadRequest)
}

// ============================================================================
// Staff
// ============================================================================

func TestHandler_StaffOwnerOnly(t *testing.T) {
	api := setupTestAPI(t)

	body := map[string]string{"name": "Amir", "type": "milker"}
	expectStatus(t, api.request("POST", "/api/v1/staff", body, asStaff), http.StatusForbidden)
	expectStatus(t, api.request("POST", "/api/v1/staff", body, asOwner), http.StatusCreated)

	w := api.request("GET", "/api/v1/staff/search?q=amir", nil, asOwner)
	expectStatus(t, w, http.StatusOK)

	var lookup service.Lookup
	decodeJSON(t, w, &lookup)
	if !strings.Contains(lookup.Text, "Staff Name = Amir") {
		t.Errorf("unexpected search result %+v", lookup)
	}

	w = api.request("DELETE", "/api/v1/staff/amir", nil, asOwner)
	expectStatus(t, w, http.StatusOK)

	w = api.request("GET", "/api/v1/staff", nil, asOwner)
	expectStatus(t, w, http.StatusOK)
	decodeJSON(t, w, &lookup)
	if strings.Contains(lookup.Text, "Amir") {
		t.Errorf("Expected Amir to be removed, got %q", lookup.Text)
	}
}

func TestHandler_Profile(t *testing.T) {
	api := setupTestAPI(t)

	w := api.request("POST", "/api/v1/staff/profile", map[string]string{"work_status": "Active", "type": "milker"}, asStaff)
	expectStatus(t, w, http.StatusCreated)

	w = api.request("GET", "/api/v1/staff/profile/"+staffUser, nil, asStaff)
	expectStatus(t, w, http.StatusOK)

	var lookup service.Lookup
	decodeJSON(t, w, &lookup)
	if !strings.Contains(lookup.Text, "Staff Name = "+staffUser) {
		t.Errorf("unexpected profile %+v", lookup)
	}

	expectStatus(t, api.request("GET", "/api/v1/staff/profile/someone", nil, asStaff), http.StatusForbidden)
	expectStatus(t, api.request("GET", "/api/v1/staff/profile/"+ownerUser, nil, asOwner), http.StatusForbidden)
}

// ============================================================================
// Milk
// ============================================================================

func TestHandler_MilkFlow(t *testing.T) {
	api := setupTestAPI(t)

	w := api.request("POST", "/api/v1/milk", map[string]string{"animal_id": "A1", "quantity": "5"}, asStaff)
	expectStatus(t, w, http.StatusCreated)
	w = api.request("POST", "/api/v1/milk", map[string]string{"animal_id": "A1", "quantity": "2.5", "date": "01-01-2024", "price_per_liter": "4"}, asStaff)
	expectStatus(t, w, http.StatusCreated)

	// Staff may not aggregate.
	expectStatus(t, api.request("POST", "/api/v1/milk/aggregate", map[string]string{"date": "01-01-2024"}, asStaff), http.StatusForbidden)

	w = api.request("POST", "/api/v1/milk/aggregate", map[string]string{"date": "01-01-2024"}, asOwner)
	expectStatus(t, w, http.StatusOK)

	var agg service.Aggregation
	decodeJSON(t, w, &agg)
	if !agg.Appended || agg.Summary.Entries != 2 {
		t.Fatalf("unexpected aggregation %+v", agg)
	}
	if agg.Summary.TotalLiters != 7.5 || agg.Summary.TotalPrice != 15 {
		t.Errorf("totals = %v liters, %v price", agg.Summary.TotalLiters, agg.Summary.TotalPrice)
	}

	w = api.request("GET", "/api/v1/milk/animals/A1", nil, asStaff)
	expectStatus(t, w, http.StatusOK)

	var report service.MilkReport
	decodeJSON(t, w, &report)
	if len(report.Entries) != 2 {
		t.Fatalf("Expected 2 report entries, got %+v", report)
	}
	first := report.Entries[0]
	if first.Date != "01-01-2024" || first.StaffName != staffUser || first.Price != "2.0" || first.Total != 10 {
		t.Errorf("defaults not applied: %+v", first)
	}
	if report.Entries[1].Total != 10 {
		t.Errorf("second total = %v, want 10", report.Entries[1].Total)
	}

	expectStatus(t, api.request("GET", "/api/v1/milk/animals/Z9", nil, asStaff), http.StatusNotFound)
}

func TestHandler_AggregateNegativePrice(t *testing.T) {
	api := setupTestAPI(t)

	body := map[string]any{"date": "01-01-2024", "price_per_liter": -1}
	expectStatus(t, api.request("POST", "/api/v1/milk/aggregate", body, asOwner), http.StatusBadRequest)
}

func TestErrorStatus_Internal(t *testing.T) {
	if got := errorStatus(os.ErrPermission); got != http.StatusInternalServerError {
		t.Errorf("errorStatus = %d, want 500", got)
	}
}
