package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/nukigor/ai-voxarena/internal/data/repos"
	"github.com/nukigor/ai-voxarena/internal/data/repos/testutil"
	httpH "github.com/nukigor/ai-voxarena/internal/http/handlers"
	httpMW "github.com/nukigor/ai-voxarena/internal/http/middleware"
	"github.com/nukigor/ai-voxarena/internal/modules/debates"
	"github.com/nukigor/ai-voxarena/internal/modules/personas"
	"github.com/nukigor/ai-voxarena/internal/modules/taxonomy"
	"github.com/nukigor/ai-voxarena/internal/observability"
)

type testAPI struct {
	t      *testing.T
	engine *gin.Engine
	db     *gorm.DB
}

func newTestAPI(t *testing.T, adminSecret string) *testAPI {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := testutil.DB(t)
	log := testutil.Logger(t)

	personaRepo := repos.NewPersonaRepo(db, log)
	linkRepo := repos.NewPersonaTaxonomyRepo(db, log)
	termRepo := repos.NewTaxonomyRepo(db, log)
	participantRepo := repos.NewDebateParticipantRepo(db, log)

	personaUC := personas.New(personas.UsecasesDeps{
		DB:           db,
		Log:          log,
		Personas:     personaRepo,
		PersonaLinks: linkRepo,
		Taxonomies:   termRepo,
		Participants: participantRepo,
	})
	debateUC := debates.New(debates.UsecasesDeps{
		DB:           db,
		Log:          log,
		Debates:      repos.NewDebateRepo(db, log),
		Participants: participantRepo,
		Personas:     personaRepo,
	})
	taxonomyUC := taxonomy.New(taxonomy.UsecasesDeps{
		DB:           db,
		Log:          log,
		Terms:        termRepo,
		Categories:   repos.NewTaxonomyCategoryRepo(db, log),
		PersonaLinks: linkRepo,
	})

	engine := NewRouter(RouterConfig{
		Log:                     log,
		PersonaHandler:          httpH.NewPersonaHandler(personaUC),
		DebateHandler:           httpH.NewDebateHandler(debateUC),
		TaxonomyHandler:         httpH.NewTaxonomyHandler(taxonomyUC),
		TaxonomyCategoryHandler: httpH.NewTaxonomyCategoryHandler(taxonomyUC),
		HealthHandler:           httpH.NewHealthHandler(),
		AdminAuth:               httpMW.NewAdminAuth(log, adminSecret),
		Metrics:                 observability.NewMetrics(),
	})
	return &testAPI{t: t, engine: engine, db: db}
}

func (a *testAPI) do(method, path, body string) (int, []byte) {
	a.t.Helper()
	var rdr *bytes.Reader
	if body != "" {
		rdr = bytes.NewReader([]byte(body))
	} else {
		rdr = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, rdr)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	a.engine.ServeHTTP(rec, req)
	return rec.Code, rec.Body.Bytes()
}

func decode[T any](t *testing.T, raw []byte) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(raw, &out), string(raw))
	return out
}

func TestHealthAndMetrics(t *testing.T) {
	api := newTestAPI(t, "")

	code, body := api.do(http.MethodGet, "/healthcheck", "")
	require.Equal(t, http.StatusOK, code)
	require.Equal(t, "ok", string(body))

	code, body = api.do(http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, code)
	require.Contains(t, string(body), `vox_api_requests_total{method="GET",route="/healthcheck",status="200"} 1`)
}

func TestPersonaLifecycle(t *testing.T) {
	api := newTestAPI(t, "")
	ctx := context.Background()
	uni := testutil.SeedTaxonomy(t, ctx, api.db, "university", "MIT")

	code, body := api.do(http.MethodPost, "/api/personas", `{"name":"Ada","profession":"Engineer","universityId":"`+uni.ID.String()+`"}`)
	require.Equal(t, http.StatusCreated, code, string(body))
	created := decode[map[string]any](t, body)
	id, _ := created["id"].(string)
	require.NotEmpty(t, id)
	require.Equal(t, uni.ID.String(), created["universityId"])
	require.NotEmpty(t, created["description"])
	require.Len(t, created["taxonomies"], 1)

	code, body = api.do(http.MethodPut, "/api/personas/"+id, `{"nickname":"Countess"}`)
	require.Equal(t, http.StatusOK, code, string(body))
	updated := decode[map[string]any](t, body)
	require.Equal(t, "Countess", updated["nickname"])
	require.Equal(t, "Engineer", updated["profession"])
	require.Len(t, updated["taxonomies"], 1)

	code, body = api.do(http.MethodGet, "/api/personas", "")
	require.Equal(t, http.StatusOK, code)
	require.Len(t, decode[[]map[string]any](t, body), 1)

	code, body = api.do(http.MethodDelete, "/api/personas/"+id, "")
	require.Equal(t, http.StatusOK, code)
	require.JSONEq(t, `{"ok":true}`, string(body))

	code, body = api.do(http.MethodGet, "/api/personas/"+id, "")
	require.Equal(t, http.StatusNotFound, code)
	require.Equal(t, "persona_not_found", decode[map[string]any](t, body)["code"])
}

func TestPersonaErrors(t *testing.T) {
	api := newTestAPI(t, "")

	code, body := api.do(http.MethodPost, "/api/personas", `{"name":`)
	require.Equal(t, http.StatusBadRequest, code)
	require.Equal(t, "invalid request body", decode[map[string]any](t, body)["error"])

	code, _ = api.do(http.MethodPost, "/api/personas", `{"nickname":"no name"}`)
	require.Equal(t, http.StatusBadRequest, code)

	code, _ = api.do(http.MethodPut, "/api/personas/not-a-uuid", `{"name":"x"}`)
	require.Equal(t, http.StatusNotFound, code)
}

func TestDeletePersonaInDebateConflicts(t *testing.T) {
	api := newTestAPI(t, "")
	ctx := context.Background()
	p := testutil.SeedPersona(t, ctx, api.db, "Busy")
	d := testutil.SeedDebate(t, ctx, api.db, "podcast")
	testutil.SeedParticipant(t, ctx, api.db, d.ID, p.ID, "HOST", 0)

	code, body := api.do(http.MethodDelete, "/api/personas/"+p.ID.String(), "")
	require.Equal(t, http.StatusConflict, code)
	require.Equal(t, "persona_in_use", decode[map[string]any](t, body)["code"])
}

func TestDebateLifecycle(t *testing.T) {
	api := newTestAPI(t, "")
	ctx := context.Background()
	host := testutil.SeedPersona(t, ctx, api.db, "Host")
	guest := testutil.SeedPersona(t, ctx, api.db, "Guest")

	code, body := api.do(http.MethodPost, "/api/debates", `{"title":"T","topic":"AI","format":"podcast"}`)
	require.Equal(t, http.StatusCreated, code, string(body))
	created := decode[map[string]any](t, body)
	id := created["id"].(string)
	require.Equal(t, "DRAFT", created["status"])

	parts := `[{"personaId":"` + guest.ID.String() + `","role":"GUEST","orderIndex":1},{"personaId":"` + host.ID.String() + `","role":"HOST","orderIndex":0}]`
	code, body = api.do(http.MethodPut, "/api/debates/"+id, `{"participants":`+parts+`}`)
	require.Equal(t, http.StatusOK, code, string(body))
	got := decode[map[string]any](t, body)
	list := got["participants"].([]any)
	require.Len(t, list, 2)
	first := list[0].(map[string]any)
	require.Equal(t, "HOST", first["role"])
	require.Equal(t, "Host", first["persona"].(map[string]any)["name"])

	code, body = api.do(http.MethodPut, "/api/debates/"+id, `{"participants":[{"personaId":"`+guest.ID.String()+`","role":"GUEST"}]}`)
	require.Equal(t, http.StatusBadRequest, code, string(body))

	code, _ = api.do(http.MethodPut, "/api/debates/"+id, `{"status":"ACTIVE"}`)
	require.Equal(t, http.StatusOK, code)
	code, _ = api.do(http.MethodPut, "/api/debates/"+id, `{"status":"DRAFT"}`)
	require.Equal(t, http.StatusBadRequest, code)

	code, body = api.do(http.MethodGet, "/api/debates?status=ACTIVE", "")
	require.Equal(t, http.StatusOK, code)
	require.Len(t, decode[[]map[string]any](t, body), 1)

	code, _ = api.do(http.MethodDelete, "/api/debates/"+id, "")
	require.Equal(t, http.StatusOK, code)
	code, _ = api.do(http.MethodGet, "/api/debates/"+id, "")
	require.Equal(t, http.StatusNotFound, code)

	// personas survive their debate
	code, _ = api.do(http.MethodGet, "/api/personas/"+host.ID.String(), "")
	require.Equal(t, http.StatusOK, code)
}

func TestTaxonomyRoutes(t *testing.T) {
	api := newTestAPI(t, "")

	code, body := api.do(http.MethodPost, "/api/taxonomycategories", `{"fullName":"Universities","key":"university"}`)
	require.Equal(t, http.StatusCreated, code, string(body))

	for _, term := range []string{"MIT", "Oxford", "ETH"} {
		code, body = api.do(http.MethodPost, "/api/taxonomy/terms", `{"category":"university","term":"`+term+`"}`)
		require.Equal(t, http.StatusCreated, code, string(body))
	}

	code, body = api.do(http.MethodGet, "/api/taxonomy/terms?category=university&page=2&pageSize=2", "")
	require.Equal(t, http.StatusOK, code)
	page := decode[map[string]any](t, body)
	require.EqualValues(t, 3, page["total"])
	require.EqualValues(t, 2, page["page"])
	items := page["items"].([]any)
	require.Len(t, items, 1)
	require.Equal(t, "Oxford", items[0].(map[string]any)["term"])

	code, _ = api.do(http.MethodGet, "/api/taxonomy/terms", "")
	require.Equal(t, http.StatusBadRequest, code)

	code, body = api.do(http.MethodGet, "/api/taxonomy?category=university", "")
	require.Equal(t, http.StatusOK, code)
	require.Len(t, decode[[]map[string]any](t, body), 3)

	code, body = api.do(http.MethodGet, "/api/taxonomy/categories", "")
	require.Equal(t, http.StatusOK, code)
	require.Equal(t, []string{"university"}, decode[[]string](t, body))

	code, body = api.do(http.MethodDelete, "/api/taxonomycategories/"+decode[map[string]any](t, mustGetFirstCategory(t, api))["id"].(string), "")
	require.Equal(t, http.StatusConflict, code, string(body))
}

func mustGetFirstCategory(t *testing.T, api *testAPI) []byte {
	t.Helper()
	code, body := api.do(http.MethodGet, "/api/taxonomycategories", "")
	require.Equal(t, http.StatusOK, code)
	page := decode[map[string]any](t, body)
	items := page["items"].([]any)
	require.NotEmpty(t, items)
	raw, err := json.Marshal(items[0])
	require.NoError(t, err)
	return raw
}

func TestTaxonomyWritesRequireAdminWhenConfigured(t *testing.T) {
	api := newTestAPI(t, "s3cret")

	code, _ := api.do(http.MethodPost, "/api/taxonomy/terms", `{"category":"region","term":"Nordic"}`)
	require.Equal(t, http.StatusUnauthorized, code)

	code, _ = api.do(http.MethodGet, "/api/taxonomy/terms?category=region", "")
	require.Equal(t, http.StatusOK, code)
}
