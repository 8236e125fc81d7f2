package httpapi

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/resource-dashboard/backend/internal/config"
	"github.com/resource-dashboard/backend/internal/models"
	"github.com/resource-dashboard/backend/internal/store"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func resolvedOn(day string) *string { return &day }

func newTestRouter(t *testing.T, adminKey string) (*gin.Engine, *store.Store) {
	t.Helper()
	resources := []models.ResourceRecord{
		{ID: "r1", Client: "AARP", Project: "Lead Gen - 2025", ClientPartner: "Komal Singh", Region: "North America",
			EndDate: "2025-06-30", ServiceLine: models.ServiceLineBI, Booking: 1.0, Performance: models.PerformanceA1,
			TotalBudget: 100, BurnedBudget: 50, RemainingBudget: 50, BurnRate: 50},
		{ID: "r2", Client: "AARP", Project: "Lead Gen - 2025", ClientPartner: "Komal Singh", Region: "Europe",
			EndDate: "2025-08-31", ServiceLine: models.ServiceLineDE, Booking: 0.5, Performance: models.PerformanceA3, IsContract: true,
			TotalBudget: 200, BurnedBudget: 100, RemainingBudget: 100, BurnRate: 50},
		{ID: "r3", Client: "Comcast", Project: "Loyalty Platform", ClientPartner: "Neha Rao", Region: "Europe",
			EndDate: "2025-07-31", ServiceLine: models.ServiceLineDS, Booking: 0.6, Performance: models.PerformanceA2,
			TotalBudget: 75000, BurnedBudget: 28500, RemainingBudget: 46500, BurnRate: 38},
	}
	issues := []models.IssueRecord{
		{ID: "i1", Client: "AARP", Project: "Lead Gen - 2025", ClientPartner: "Komal Singh", Escalated: true,
			RAGStatus: models.RAGRed, DateCreated: "2025-05-01",
			History: []models.HistoryEntry{{ID: "h1", User: "John Smith", Action: models.ActionCreated}}},
		{ID: "i2", Client: "Comcast", Project: "Loyalty Platform", ClientPartner: "Neha Rao", Escalated: false,
			RAGStatus: models.RAGAmber, DateCreated: "2025-05-03", DateResolved: resolvedOn("2025-05-04"),
			History: []models.HistoryEntry{{ID: "h2", User: "Michael Brown", Action: models.ActionCreated}}},
	}
	st := store.New(resources, issues, zerolog.Nop()).
		WithClock(func() time.Time { return time.Date(2025, 5, 20, 9, 0, 0, 0, time.UTC) })
	cfg := config.Config{AdminKey: adminKey, CORSAllowed: "*", TrendDays: 7}
	return Router(cfg, st, nil, zerolog.Nop()), st
}

func do(t *testing.T, r http.Handler, method, path string, body any, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

type listResponse[T any] struct {
	Items []T `json:"items"`
	Count int `json:"count"`
}

func TestHealthz(t *testing.T) {
	r, _ := newTestRouter(t, "")
	w := do(t, r, http.MethodGet, "/healthz", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok","resources":3,"issues":2}`, w.Body.String())
}

func TestResourcesList_Filters(t *testing.T) {
	r, _ := newTestRouter(t, "")

	w := do(t, r, http.MethodGet, "/api/resources?client_partner=Komal%20Singh&end_date=2025-07-01", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	got := decode[listResponse[models.ResourceRecord]](t, w)
	require.Equal(t, 1, got.Count)
	assert.Equal(t, "r1", got.Items[0].ID)

	w = do(t, r, http.MethodGet, "/api/resources?client_partner=All&region=Europe", nil, nil)
	got = decode[listResponse[models.ResourceRecord]](t, w)
	assert.Equal(t, 2, got.Count)

	w = do(t, r, http.MethodGet, "/api/resources?end_date=someday", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	got = decode[listResponse[models.ResourceRecord]](t, w)
	assert.Zero(t, got.Count)
}

func TestResourcesSummary(t *testing.T) {
	r, _ := newTestRouter(t, "")
	w := do(t, r, http.MethodGet, "/api/resources/summary?client_partner=Nobody", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	got := decode[models.ResourceOverview](t, w)
	assert.Equal(t, models.SummaryStats{}, got.Summary)
	assert.Zero(t, got.ResourceCount)

	w = do(t, r, http.MethodGet, "/api/resources/summary", nil, nil)
	got = decode[models.ResourceOverview](t, w)
	assert.Equal(t, models.TeamDistribution{DE: 1, BI: 1, DS: 1}, got.Summary.TeamDistribution)
	assert.Equal(t, 1, got.Summary.ContractCount)
	assert.InDelta(t, 0.7, got.Summary.AvgBooking, 1e-9)
	assert.Equal(t, 33, got.ContractShare)
}

func TestResourcesGroups(t *testing.T) {
	r, _ := newTestRouter(t, "")
	w := do(t, r, http.MethodGet, "/api/resources/groups", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	got := decode[listResponse[models.GroupedResources]](t, w)
	require.Equal(t, 2, got.Count)
	assert.Equal(t, models.GroupKey{Client: "AARP", Project: "Lead Gen - 2025"}, got.Items[0].Key)
	assert.Equal(t, models.GroupMetrics{TotalBudget: 300, BurnedBudget: 150, RemainingBudget: 150, AvgBurnRate: 50, ResourceCount: 2}, got.Items[0].Metrics)
	assert.Len(t, got.Items[0].Resources, 2)
	assert.Equal(t, "Comcast", got.Items[1].Key.Client)
}

func TestResourcesHighlightsAndPartners(t *testing.T) {
	r, _ := newTestRouter(t, "")
	w := do(t, r, http.MethodGet, "/api/resources/highlights", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	hl := decode[models.ResourceHighlights](t, w)
	assert.Len(t, hl.ContractResources, 1)
	assert.Len(t, hl.HighPerformers, 1)
	assert.Len(t, hl.LowUtilization, 2)
	assert.Empty(t, hl.HighBurnRate)

	w = do(t, r, http.MethodGet, "/api/resources/client-partners", nil, nil)
	assert.JSONEq(t, `{"items":["Komal Singh","Neha Rao"]}`, w.Body.String())
}

func TestIssuesList(t *testing.T) {
	r, _ := newTestRouter(t, "")

	w := do(t, r, http.MethodGet, "/api/issues?escalated=true&rag_status=Red", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	got := decode[listResponse[models.IssueRecord]](t, w)
	require.Equal(t, 1, got.Count)
	assert.Equal(t, "i1", got.Items[0].ID)

	w = do(t, r, http.MethodGet, "/api/issues?escalated=All&rag_status=All&client_partner=All", nil, nil)
	got = decode[listResponse[models.IssueRecord]](t, w)
	assert.Equal(t, 2, got.Count)

	w = do(t, r, http.MethodGet, "/api/issues?escalated=No", nil, nil)
	got = decode[listResponse[models.IssueRecord]](t, w)
	require.Equal(t, 1, got.Count)
	assert.Equal(t, "i2", got.Items[0].ID)

	w = do(t, r, http.MethodGet, "/api/issues?rag_status=Purple", nil, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestIssuesSummaryUsesFullList(t *testing.T) {
	r, _ := newTestRouter(t, "")
	w := do(t, r, http.MethodGet, "/api/issues/summary?rag_status=Red", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	got := decode[models.IssueSummaryStats](t, w)
	assert.Equal(t, 1, got.TotalOpen)
	assert.Equal(t, 1, got.Escalated)
	assert.Equal(t, models.SeverityCounts{Red: 1, Amber: 1}, got.BySeverity)
	assert.Equal(t, []models.ClientCount{{Client: "AARP", Count: 1}, {Client: "Comcast", Count: 1}}, got.ByClient)
}

func TestIssuesTrend(t *testing.T) {
	r, _ := newTestRouter(t, "")
	w := do(t, r, http.MethodGet, "/api/issues/trend?days=3&end=2025-05-04", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	got := decode[struct {
		Items []models.TrendPoint `json:"items"`
		Days  int                 `json:"days"`
	}](t, w)
	assert.Equal(t, 3, got.Days)
	assert.Equal(t, []models.TrendPoint{
		{Date: "2025-05-02", Open: 1},
		{Date: "2025-05-03", Open: 2},
		{Date: "2025-05-04", Open: 1, Resolved: 1},
	}, got.Items)

	w = do(t, r, http.MethodGet, "/api/issues/trend", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	got = decode[struct {
		Items []models.TrendPoint `json:"items"`
		Days  int                 `json:"days"`
	}](t, w)
	assert.Equal(t, 7, got.Days)
	assert.Equal(t, "2025-05-20", got.Items[6].Date)

	w = do(t, r, http.MethodGet, "/api/issues/trend?days=0&end=yesterday", nil, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestIssueCreateEditResolve(t *testing.T) {
	r, st := newTestRouter(t, "secret")
	auth := map[string]string{"X-Admin-Key": "secret", "X-User": "Ravi Kumar"}
	payload := map[string]any{
		"client":           "Netflix",
		"project":          "Streaming Analytics",
		"client_partner":   "Karan Patel",
		"raised_by":        "David Wilson",
		"description":      "Dashboard loading slowly",
		"resolution_owner": "Shweta Singh",
		"escalated":        false,
		"rag_status":       "Green",
	}

	w := do(t, r, http.MethodPost, "/api/issues", payload, map[string]string{"X-User": "Ravi Kumar"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = do(t, r, http.MethodPost, "/api/issues", payload, map[string]string{"X-Admin-Key": "secret"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, r, http.MethodPost, "/api/issues", payload, auth)
	require.Equal(t, http.StatusCreated, w.Code)
	created := decode[models.IssueRecord](t, w)
	require.NotEmpty(t, created.ID)
	assert.Equal(t, "2025-05-20", created.DateCreated)
	require.Len(t, created.History, 1)
	assert.Equal(t, models.ActionCreated, created.History[0].Action)
	assert.Equal(t, "Ravi Kumar", created.History[0].User)
	assert.Len(t, st.Issues(), 3)

	payload["rag_status"] = "Red"
	payload["escalated"] = true
	w = do(t, r, http.MethodPut, "/api/issues/"+created.ID, payload, auth)
	require.Equal(t, http.StatusOK, w.Code)
	edited := decode[models.IssueRecord](t, w)
	assert.Equal(t, created.ID, edited.ID)
	assert.Equal(t, created.DateCreated, edited.DateCreated)
	assert.Equal(t, models.RAGRed, edited.RAGStatus)
	require.Len(t, edited.History, 2)
	assert.Equal(t, created.History[0], edited.History[0])
	assert.Equal(t, models.ActionUpdated, edited.History[1].Action)

	w = do(t, r, http.MethodPost, "/api/issues/"+created.ID+"/resolve", map[string]string{"note": "cache warmed"}, auth)
	require.Equal(t, http.StatusOK, w.Code)
	resolved := decode[models.IssueRecord](t, w)
	require.NotNil(t, resolved.DateResolved)
	assert.Equal(t, "2025-05-20", *resolved.DateResolved)

	w = do(t, r, http.MethodPost, "/api/issues/"+created.ID+"/resolve", nil, auth)
	assert.Equal(t, http.StatusConflict, w.Code)

	w = do(t, r, http.MethodGet, "/api/issues/"+created.ID+"/history", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	history := decode[listResponse[models.HistoryEntry]](t, w)
	require.Len(t, history.Items, 3)
	assert.Equal(t, []string{models.ActionCreated, models.ActionUpdated, models.ActionResolved},
		[]string{history.Items[0].Action, history.Items[1].Action, history.Items[2].Action})
}

func TestIssueEditValidationAndNotFound(t *testing.T) {
	r, st := newTestRouter(t, "")
	auth := map[string]string{"X-User": "Amy Lee"}

	w := do(t, r, http.MethodPut, "/api/issues/i1", map[string]any{"client": "AARP", "rag_status": "Purple"}, auth)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	valid := map[string]any{
		"client": "AARP", "project": "Lead Gen - 2025", "client_partner": "Komal Singh",
		"raised_by": "John Smith", "description": "x", "resolution_owner": "Ravi Kumar", "rag_status": "Amber",
	}
	before := st.Issues()
	w = do(t, r, http.MethodPut, "/api/issues/missing", valid, auth)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, before, st.Issues())

	w = do(t, r, http.MethodGet, "/api/issues/missing", nil, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestIssueAlerts(t *testing.T) {
	r, _ := newTestRouter(t, "")
	w := do(t, r, http.MethodPost, "/api/issues/alerts", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"sent":1,"issue_ids":["i1"]}`, w.Body.String())
}
