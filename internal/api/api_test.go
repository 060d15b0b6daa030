package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"
	"time"

	"github.com/starford/jcal/internal/calendarservice"
	"github.com/starford/jcal/internal/index"
	"github.com/starford/jcal/internal/testutil"
)

// testEnv sets up a temp occasion directory, SQLite DB, service, and router.
// An empty authToken means disabled mode.
func testEnv(t *testing.T, authToken string) http.Handler {
	t.Helper()
	return testEnvWithSSE(t, authToken != "", authToken, nil)
}

func testEnvWithSSE(t *testing.T, authEnabled bool, token string, sseHandler http.Handler) http.Handler {
	t.Helper()
	dir, store := testutil.TestOccasionDir(t)
	testutil.WriteFile(t, dir, "holidays.yaml", testutil.HolidaysYAML)
	db := testutil.TestDB(t)
	if err := index.Sync(db, store, testutil.QuietLogger()); err != nil {
		t.Fatalf("Sync: %v", err)
	}
	svc := calendarservice.NewService(store, db, testutil.FakeClock(),
		calendarservice.WithLogger(testutil.QuietLogger()))
	return NewRouter(svc, authEnabled, token, sseHandler)
}

func do(t *testing.T, router http.Handler, method, target string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var rd *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatal(err)
		}
		rd = bytes.NewReader(raw)
	} else {
		rd = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, target, rd)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.NewDecoder(w.Body).Decode(&v); err != nil {
		t.Fatalf("decode: %v (body %s)", err, w.Body.String())
	}
	return v
}

func TestNowEndpoint(t *testing.T) {
	router := testEnv(t, "")
	w := do(t, router, http.MethodGet, "/now", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	m := decode[Moment](t, w)
	if m.Jalali != "1392-09-01 16:02:14+03:30" {
		t.Errorf("jalali = %q", m.Jalali)
	}
}

func TestConvertEndpoints(t *testing.T) {
	router := testEnv(t, "")

	w := do(t, router, http.MethodGet, "/convert/gregorian?date=1392-06-30&time=10:20:30", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("gregorian status = %d, body = %s", w.Code, w.Body.String())
	}
	if m := decode[Moment](t, w); m.Gregorian.Format(time.DateTime) != "2013-09-21 10:20:30" {
		t.Errorf("gregorian = %v", m.Gregorian)
	}

	w = do(t, router, http.MethodGet, "/convert/jalali?date=2024-03-20", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("jalali status = %d, body = %s", w.Code, w.Body.String())
	}
	if m := decode[Moment](t, w); m.Jalali != "1403-01-01 00:00:00+03:30" {
		t.Errorf("jalali = %q", m.Jalali)
	}
}

func TestConvertBadInput(t *testing.T) {
	router := testEnv(t, "")
	for _, target := range []string{
		"/convert/gregorian",
		"/convert/gregorian?date=1392-12-30",
		"/convert/jalali?date=soon",
	} {
		if w := do(t, router, http.MethodGet, target, nil); w.Code != http.StatusBadRequest {
			t.Errorf("%s = %d, want 400", target, w.Code)
		}
	}
}

func TestFormatEndpoint(t *testing.T) {
	router := testEnv(t, "")

	w := do(t, router, http.MethodPost, "/format", FormatRequest{DateTime: "1392-09-01 12:32:14", Layout: "%q %d %B %Y"})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	if got := decode[FormatResponse](t, w).Result; got != "Jomeh 01 Aazar 1392" {
		t.Errorf("result = %q", got)
	}

	if w := do(t, router, http.MethodPost, "/format", FormatRequest{DateTime: "1392-09-01"}); w.Code != http.StatusBadRequest {
		t.Errorf("missing layout = %d, want 400", w.Code)
	}
}

// The documented request example must produce the documented response.
func TestFormatEndpoint_DocumentedExample(t *testing.T) {
	router := testEnv(t, "")

	reqType := reflect.TypeOf(FormatRequest{})
	dt, _ := reqType.FieldByName("DateTime")
	layout, _ := reqType.FieldByName("Layout")
	result, _ := reflect.TypeOf(FormatResponse{}).FieldByName("Result")

	w := do(t, router, http.MethodPost, "/format", FormatRequest{
		DateTime: dt.Tag.Get("example"),
		Layout:   layout.Tag.Get("example"),
	})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	if got, want := decode[FormatResponse](t, w).Result, result.Tag.Get("example"); got != want {
		t.Errorf("result = %q, documented %q", got, want)
	}
}

func TestParseEndpoint(t *testing.T) {
	router := testEnv(t, "")

	w := do(t, router, http.MethodPost, "/parse", ParseRequest{Value: "1392/09/01 12:32", Layout: "%Y/%m/%d %H:%M"})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	if m := decode[Moment](t, w); m.Jalali != "1392-09-01 12:32:00+03:30" {
		t.Errorf("jalali = %q", m.Jalali)
	}

	w = do(t, router, http.MethodPost, "/parse", ParseRequest{Value: "x", Layout: "%Y"})
	if w.Code != http.StatusBadRequest {
		t.Errorf("mismatch = %d, want 400", w.Code)
	}
}

func TestYearEndpoint(t *testing.T) {
	router := testEnv(t, "")

	w := do(t, router, http.MethodGet, "/years/1391", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	info := decode[YearSummary](t, w)
	if !info.Leap || info.Days != 366 {
		t.Errorf("1391 = %+v", info)
	}

	if w := do(t, router, http.MethodGet, "/years/abc", nil); w.Code != http.StatusBadRequest {
		t.Errorf("bad year = %d", w.Code)
	}
	if w := do(t, router, http.MethodGet, "/years/10000", nil); w.Code != http.StatusBadRequest {
		t.Errorf("year out of range = %d", w.Code)
	}
}

func TestCalendarEndpoint(t *testing.T) {
	router := testEnv(t, "")

	w := do(t, router, http.MethodGet, "/calendar/1392/1", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	m := decode[Month](t, w)
	if m.Name != "Farvardin" || len(m.Days) != 31 {
		t.Errorf("month = %s with %d days", m.Name, len(m.Days))
	}
	if !m.Days[0].Holiday || m.Days[0].Occasions[0].Title != "Nowruz" {
		t.Errorf("day 1 = %+v", m.Days[0])
	}

	if w := do(t, router, http.MethodGet, "/calendar/1392/13", nil); w.Code != http.StatusBadRequest {
		t.Errorf("month 13 = %d, want 400", w.Code)
	}
}

func TestOccasionsEndpoint(t *testing.T) {
	router := testEnv(t, "")

	w := do(t, router, http.MethodGet, "/occasions?year=1392&month=9", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if occ := decode[OccasionsResponse](t, w).Occasions; len(occ) != 2 {
		t.Errorf("Aazar 1392 occasions = %d, want 2", len(occ))
	}

	// Default year comes from the clock: 1392.
	w = do(t, router, http.MethodGet, "/occasions", nil)
	if occ := decode[OccasionsResponse](t, w).Occasions; len(occ) != 4 {
		t.Errorf("1392 occasions = %d, want 4", len(occ))
	}

	w = do(t, router, http.MethodGet, "/occasions?q=Nowruz", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("search status = %d", w.Code)
	}
	if res := decode[SearchResponse](t, w).Results; len(res) != 1 {
		t.Errorf("search results = %d, want 1", len(res))
	}

	if w := do(t, router, http.MethodGet, "/occasions?month=x", nil); w.Code != http.StatusBadRequest {
		t.Errorf("bad month = %d", w.Code)
	}
}

func TestAddOccasionEndpoint(t *testing.T) {
	router := testEnv(t, "")

	w := do(t, router, http.MethodPost, "/occasions", AddOccasionRequest{Path: "personal.yaml", Date: "05-10", Title: "Birthday"})
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}

	w = do(t, router, http.MethodGet, "/occasions?year=1400&month=5", nil)
	if occ := decode[OccasionsResponse](t, w).Occasions; len(occ) != 1 || occ[0].Title != "Birthday" {
		t.Errorf("occasions = %+v", occ)
	}

	w = do(t, router, http.MethodPost, "/occasions", AddOccasionRequest{Path: "personal.yaml", Date: "02-40", Title: "Bad"})
	if w.Code != http.StatusBadRequest {
		t.Errorf("bad date = %d, want 400", w.Code)
	}
}

func TestFileCRUD(t *testing.T) {
	router := testEnv(t, "")

	w := do(t, router, http.MethodPost, "/files", CreateFileRequest{Path: "family.yaml", Content: "occasions: []\n"})
	if w.Code != http.StatusCreated {
		t.Fatalf("create = %d, body = %s", w.Code, w.Body.String())
	}
	if w := do(t, router, http.MethodPost, "/files", CreateFileRequest{Path: "family.yaml", Content: "occasions: []\n"}); w.Code != http.StatusConflict {
		t.Errorf("duplicate = %d, want 409", w.Code)
	}

	w = do(t, router, http.MethodGet, "/files/family.yaml", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("get = %d", w.Code)
	}
	etag := w.Header().Get("ETag")

	req := httptest.NewRequest(http.MethodPut, "/files/family.yaml", bytes.NewBufferString(`{"content":"title: Family\n"}`))
	req.Header.Set("If-Match", `"stale"`)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusConflict {
		t.Errorf("stale update = %d, want 409", w.Code)
	}

	req = httptest.NewRequest(http.MethodPut, "/files/family.yaml", bytes.NewBufferString(`{"content":"title: Family\n"}`))
	req.Header.Set("If-Match", etag)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Errorf("update = %d, body = %s", w.Code, w.Body.String())
	}

	w = do(t, router, http.MethodGet, "/files", nil)
	if files := decode[FileListResponse](t, w).Files; len(files) != 2 {
		t.Errorf("files = %d, want 2", len(files))
	}

	if w := do(t, router, http.MethodDelete, "/files/family.yaml", nil); w.Code != http.StatusNoContent {
		t.Errorf("delete = %d", w.Code)
	}
	if w := do(t, router, http.MethodDelete, "/files/family.yaml", nil); w.Code != http.StatusNotFound {
		t.Errorf("delete again = %d, want 404", w.Code)
	}
	if w := do(t, router, http.MethodPut, "/files/ghost.yaml", UpdateFileRequest{Content: "x: 1"}); w.Code != http.StatusNotFound {
		t.Errorf("update missing = %d, want 404", w.Code)
	}
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	router := testEnv(t, "secret123")

	req := httptest.NewRequest(http.MethodGet, "/now", nil)
	req.Header.Set("Authorization", "Bearer secret123")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Errorf("authed = %d, want 200", w.Code)
	}
}

func TestAuthMiddleware_MissingToken(t *testing.T) {
	router := testEnv(t, "secret123")

	if w := do(t, router, http.MethodGet, "/now", nil); w.Code != http.StatusUnauthorized {
		t.Errorf("unauthed = %d, want 401", w.Code)
	}
}

func TestAuthMiddleware_WrongToken(t *testing.T) {
	router := testEnv(t, "secret123")

	req := httptest.NewRequest(http.MethodGet, "/now", nil)
	req.Header.Set("Authorization", "Bearer wrong")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("wrong token = %d, want 401", w.Code)
	}
}

func TestAuthMiddleware_QueryToken(t *testing.T) {
	router := testEnv(t, "secret123")

	if w := do(t, router, http.MethodGet, "/now?access_token=secret123", nil); w.Code != http.StatusOK {
		t.Errorf("query token GET = %d, want 200", w.Code)
	}
	w := do(t, router, http.MethodPost, "/format?access_token=secret123", map[string]string{"datetime": "1392-09-01T10:00:00", "layout": "%Y"})
	if w.Code != http.StatusUnauthorized {
		t.Errorf("query token POST = %d, want 401", w.Code)
	}
	if w.Header().Get("WWW-Authenticate") == "" {
		t.Error("missing WWW-Authenticate header")
	}
}

// SSE endpoint auth tests.

// blockingSSE writes stream headers and blocks until the request ends.
var blockingSSE = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/event-stream")
	w.WriteHeader(http.StatusOK)
	if f, ok := w.(http.Flusher); ok {
		f.Flush()
	}
	<-r.Context().Done()
})

func TestSSEEvents_AuthProtected(t *testing.T) {
	router := testEnvWithSSE(t, true, "secret", blockingSSE)

	if w := do(t, router, http.MethodGet, "/events", nil); w.Code != http.StatusUnauthorized {
		t.Errorf("SSE no auth = %d, want 401", w.Code)
	}
}

func TestSSEEvents_ValidToken(t *testing.T) {
	router := testEnvWithSSE(t, true, "tok", blockingSSE)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	req := httptest.NewRequest(http.MethodGet, "/events", nil).WithContext(ctx)
	req.Header.Set("Authorization", "Bearer tok")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Errorf("SSE with valid token = %d, want 200", w.Code)
	}
}

func TestSSEEvents_NotMounted(t *testing.T) {
	router := testEnv(t, "")
	if w := do(t, router, http.MethodGet, "/events", nil); w.Code != http.StatusNotFound {
		t.Errorf("events without broker = %d, want 404", w.Code)
	}
}
