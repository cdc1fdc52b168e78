package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/weblinkcreator/siteapi/internal/adapters/events"
	"github.com/weblinkcreator/siteapi/internal/adapters/repository"
	"github.com/weblinkcreator/siteapi/internal/application/services"
	"github.com/weblinkcreator/siteapi/internal/domain/entities"
	"github.com/weblinkcreator/siteapi/internal/infrastructure/logger"
	"github.com/weblinkcreator/siteapi/internal/ports"
)

type counterIDs struct{ n entities.ID }

func (g *counterIDs) Next() entities.ID {
	g.n++
	return g.n
}

type brokenStore struct {
	ports.DocumentStore
}

func (brokenStore) Read(ctx context.Context) (*entities.Document, error) {
	return nil, &entities.ReadError{Source: "test", Err: fmt.Errorf("unreadable")}
}

func newTestEcho(store ports.DocumentStore) *echo.Echo {
	log := logger.NewNop()
	validator := services.NewValidator()
	catalog := &entities.Catalog{Company: entities.Company{Name: "WebLinkCreator"}}
	svc := services.NewWebsiteService(store, &counterIDs{n: 100}, events.NewNoopPublisher(), catalog, validator, log)

	e := echo.New()
	e.Validator = validator

	data := NewWebsiteDataHandler(svc)
	orders := NewOrderHandler(svc)
	team := NewTeamHandler(svc)

	api := e.Group("/api")
	api.GET("/websiteData", data.GetWebsiteData)
	api.POST("/websiteData", data.UpdateWebsiteData)
	api.GET("/catalog", NewCatalogHandler(svc).GetCatalog)
	api.GET("/stats", NewStatsHandler(svc).GetStats)
	api.GET("/orders", orders.ListOrders)
	api.POST("/orders", orders.CreateOrder)
	api.PATCH("/orders/:id/status", orders.UpdateOrderStatus)
	api.DELETE("/orders/:id", orders.DeleteOrder)
	api.GET("/team", team.ListTeam)
	api.POST("/team", team.CreateTeamMember)
	api.PUT("/team/:id", team.UpdateTeamMember)
	api.DELETE("/team/:id", team.DeleteTeamMember)
	api.POST("/team/:id/move", team.MoveTeamMember)

	return e
}

func do(e *echo.Echo, method, target, body string, headers ...string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func TestGetWebsiteData(t *testing.T) {
	e := newTestEcho(repository.NewMemoryStore(entities.NewDocument()))

	rec := do(e, http.MethodGet, "/api/websiteData", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"orders":[],"team":[]}`, rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get("ETag"))
}

func TestGetWebsiteData_ReadFailure(t *testing.T) {
	e := newTestEcho(brokenStore{})

	rec := do(e, http.MethodGet, "/api/websiteData", "")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"message":"Error reading website data"}`, rec.Body.String())
}

func TestUpdateWebsiteData(t *testing.T) {
	e := newTestEcho(repository.NewMemoryStore(entities.NewDocument()))

	body := `{"orders":[],"team":[{"id":"1","name":"Sam","role":"Designer","experience":"4","bio":"","image":"","social":{}}],"extra":true}`
	rec := do(e, http.MethodPost, "/api/websiteData", body)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.JSONEq(t, `{"message":"Data updated successfully"}`, rec.Body.String())

	rec = do(e, http.MethodGet, "/api/websiteData", "")
	doc := decode[entities.Document](t, rec)
	require.Len(t, doc.Team, 1)
	assert.Equal(t, entities.ID(1), doc.Team[0].ID)
	assert.Equal(t, entities.Years(4), doc.Team[0].Experience)
	assert.NotContains(t, rec.Body.String(), "extra")
}

func TestUpdateWebsiteData_MissingCollections(t *testing.T) {
	e := newTestEcho(repository.NewMemoryStore(entities.NewDocument()))

	rec := do(e, http.MethodPost, "/api/websiteData", `{}`)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = do(e, http.MethodGet, "/api/websiteData", "")
	assert.JSONEq(t, `{"orders":[],"team":[]}`, rec.Body.String())
}

func TestUpdateWebsiteData_Invalid(t *testing.T) {
	e := newTestEcho(repository.NewMemoryStore(entities.NewDocument()))

	rec := do(e, http.MethodPost, "/api/websiteData", `{"orders": "nope"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(e, http.MethodPost, "/api/websiteData", `{"team":[{"id":1,"name":"","role":"Dev"}]}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	resp := decode[ErrorResponse](t, rec)
	assert.Equal(t, MsgValidationFailed, resp.Message)
	assert.NotNil(t, resp.Details)
}

func TestUpdateWebsiteData_IfMatch(t *testing.T) {
	e := newTestEcho(repository.NewMemoryStore(entities.NewDocument()))

	etag := do(e, http.MethodGet, "/api/websiteData", "").Header().Get("ETag")

	rec := do(e, http.MethodPost, "/api/orders", `{"planId":1,"planName":"Starter","planPrice":299,"customerInfo":{"name":"A","email":"a@x.com"}}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = do(e, http.MethodPost, "/api/websiteData", `{"orders":[],"team":[]}`, "If-Match", etag)
	assert.Equal(t, http.StatusPreconditionFailed, rec.Code)

	rec = do(e, http.MethodGet, "/api/orders", "")
	assert.Len(t, decode[[]entities.Order](t, rec), 1)

	fresh := do(e, http.MethodGet, "/api/websiteData", "").Header().Get("ETag")
	rec = do(e, http.MethodPost, "/api/websiteData", `{"orders":[],"team":[]}`, "If-Match", fresh)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestOrderEndpoints(t *testing.T) {
	e := newTestEcho(repository.NewMemoryStore(entities.NewDocument()))

	rec := do(e, http.MethodPost, "/api/orders", `{"planId":1,"planName":"Starter","planPrice":299,"customerInfo":{"name":"A","email":"a@x.com"}}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	order := decode[entities.Order](t, rec)
	assert.Equal(t, entities.OrderStatusPending, order.Status)

	target := fmt.Sprintf("/api/orders/%d/status", order.ID)
	rec = do(e, http.MethodPatch, target, `{"status":"completed"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, entities.OrderStatusCompleted, decode[entities.Order](t, rec).Status)

	rec = do(e, http.MethodGet, "/api/orders?status=completed", "")
	assert.Len(t, decode[[]entities.Order](t, rec), 1)
	rec = do(e, http.MethodGet, "/api/orders?status=pending", "")
	assert.Empty(t, decode[[]entities.Order](t, rec))

	rec = do(e, http.MethodDelete, fmt.Sprintf("/api/orders/%d", order.ID), "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = do(e, http.MethodGet, "/api/websiteData", "")
	assert.JSONEq(t, `{"orders":[],"team":[]}`, rec.Body.String())
}

func TestOrderEndpoints_Errors(t *testing.T) {
	e := newTestEcho(repository.NewMemoryStore(entities.NewDocument()))

	tests := []struct {
		name   string
		method string
		target string
		body   string
		code   int
	}{
		{"bad status filter", http.MethodGet, "/api/orders?status=lost", "", http.StatusBadRequest},
		{"invalid email", http.MethodPost, "/api/orders", `{"planId":1,"planName":"Starter","planPrice":299,"customerInfo":{"name":"A","email":"nope"}}`, http.StatusBadRequest},
		{"malformed body", http.MethodPost, "/api/orders", `{"planId":`, http.StatusBadRequest},
		{"bad id", http.MethodDelete, "/api/orders/abc", "", http.StatusBadRequest},
		{"unknown order", http.MethodDelete, "/api/orders/42", "", http.StatusNotFound},
		{"unknown status", http.MethodPatch, "/api/orders/42/status", `{"status":"shipped"}`, http.StatusBadRequest},
		{"status of unknown order", http.MethodPatch, "/api/orders/42/status", `{"status":"cancelled"}`, http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(e, tt.method, tt.target, tt.body)
			assert.Equal(t, tt.code, rec.Code, rec.Body.String())
		})
	}
}

func TestTeamEndpoints(t *testing.T) {
	e := newTestEcho(repository.NewMemoryStore(entities.NewDocument()))

	for _, name := range []string{"Alex", "Sam", "Kim"} {
		body := fmt.Sprintf(`{"name":%q,"role":"Developer","experience":3,"bio":"","image":"https://example.com/a.jpg","social":{"github":"https://github.com/x","twitter":""}}`, name)
		rec := do(e, http.MethodPost, "/api/team", body)
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	}

	rec := do(e, http.MethodPut, "/api/team/2", `{"role":"Designer"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	member := decode[entities.TeamMember](t, rec)
	assert.Equal(t, "Designer", member.Role)
	assert.Equal(t, "Sam", member.Name)

	rec = do(e, http.MethodPost, "/api/team/3/move", `{"position":0}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	team := decode[[]entities.TeamMember](t, rec)
	require.Len(t, team, 3)
	assert.Equal(t, "Kim", team[0].Name)

	rec = do(e, http.MethodPost, "/api/team/3/move", `{}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(e, http.MethodDelete, "/api/team/1", "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = do(e, http.MethodGet, "/api/team", "")
	team = decode[[]entities.TeamMember](t, rec)
	require.Len(t, team, 2)
	assert.Equal(t, map[string]string{"github": "https://github.com/x"}, team[0].Social)

	rec = do(e, http.MethodDelete, "/api/team/1", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(e, http.MethodPost, "/api/team", `{"name":"Lee","role":"Dev","social":{"myspace":"https://myspace.com/lee"}}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateTeamMember_Multipart(t *testing.T) {
	e := newTestEcho(repository.NewMemoryStore(entities.NewDocument()))

	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	require.NoError(t, w.WriteField("name", "Alex Johnson"))
	require.NoError(t, w.WriteField("role", "Lead Developer"))
	require.NoError(t, w.WriteField("experience", "8"))
	require.NoError(t, w.WriteField("social.linkedin", "https://linkedin.com/in/alex"))
	part, err := w.CreateFormFile("image", "alex.png")
	require.NoError(t, err)
	_, err = part.Write([]byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR"))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/team", &body)
	req.Header.Set(echo.HeaderContentType, w.FormDataContentType())
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	member := decode[entities.TeamMember](t, rec)
	assert.Equal(t, "Alex Johnson", member.Name)
	assert.Equal(t, entities.Years(8), member.Experience)
	assert.True(t, strings.HasPrefix(member.Image, "https://images.pexels.com/"))
	assert.Equal(t, "https://linkedin.com/in/alex", member.Social["linkedin"])
}

func TestCreateTeamMember_MultipartRejectsNonImage(t *testing.T) {
	e := newTestEcho(repository.NewMemoryStore(entities.NewDocument()))

	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	require.NoError(t, w.WriteField("name", "Alex"))
	require.NoError(t, w.WriteField("role", "Dev"))
	part, err := w.CreateFormFile("image", "notes.txt")
	require.NoError(t, err)
	_, err = part.Write([]byte("just some text"))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/team", &body)
	req.Header.Set(echo.HeaderContentType, w.FormDataContentType())
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCatalogAndStats(t *testing.T) {
	e := newTestEcho(repository.NewMemoryStore(entities.NewDocument()))

	rec := do(e, http.MethodGet, "/api/catalog", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "WebLinkCreator", decode[entities.Catalog](t, rec).Company.Name)

	rec = do(e, http.MethodPost, "/api/orders", `{"planId":1,"planName":"Starter","planPrice":299,"customerInfo":{"name":"A","email":"a@x.com"}}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = do(e, http.MethodGet, "/api/stats", "")
	require.Equal(t, http.StatusOK, rec.Code)
	stats := decode[entities.Stats](t, rec)
	assert.Equal(t, 1, stats.TotalOrders)
	assert.Equal(t, 1, stats.PendingOrders)
}

func TestParseIfMatch(t *testing.T) {
	assert.Equal(t, "", parseIfMatch(""))
	assert.Equal(t, "", parseIfMatch("*"))
	assert.Equal(t, "abc", parseIfMatch(`"abc"`))
	assert.Equal(t, "abc", parseIfMatch(`W/"abc"`))
}
