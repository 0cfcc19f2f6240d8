package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"hostelfinder/internal/database"
	"hostelfinder/internal/pkg/jwt"
	"hostelfinder/internal/recommend"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubRecommender struct {
	similarCalls atomic.Int32
	locations    []string
}

func (s *stubRecommender) Recommend(context.Context, recommend.RecommendRequest) (map[string]any, error) {
	return map[string]any{"top": "Sunrise"}, nil
}

func (s *stubRecommender) SimilarLocations(context.Context, string) ([]string, error) {
	s.similarCalls.Add(1)
	return s.locations, nil
}

func (s *stubRecommender) SuggestFacilities(context.Context, []string) ([]string, error) {
	return []string{"wifi"}, nil
}

func (s *stubRecommender) SuggestPrice(context.Context, string, []string) (float64, error) {
	return 5000, nil
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   struct {
		Code string `json:"code"`
	} `json:"error"`
}

type testAPI struct {
	t      *testing.T
	router *gin.Engine
}

func newTestAPI(t *testing.T, rec recommend.Recommender) *testAPI {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := database.Connect(fmt.Sprintf("file:router_%s?mode=memory&cache=shared", t.Name()), "silent")
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	r := NewRouter(Deps{
		DB:           db,
		JWT:          jwt.New("test-secret", time.Hour),
		Recommender:  rec,
		MetricsToken: "ops",
	})
	return &testAPI{t: t, router: r}
}

func (a *testAPI) do(method, path, token, body string) (*httptest.ResponseRecorder, envelope) {
	a.t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)

	var env envelope
	_ = json.Unmarshal(w.Body.Bytes(), &env)
	return w, env
}

func (a *testAPI) register(name, email, userType string) {
	a.t.Helper()
	body := fmt.Sprintf(`{"name":%q,"email":%q,"password":"password123","phone":"9876543210","user_type":%q}`, name, email, userType)
	w, _ := a.do(http.MethodPost, "/users/", "", body)
	require.Equal(a.t, http.StatusCreated, w.Code, w.Body.String())
}

func (a *testAPI) login(email string) string {
	a.t.Helper()
	form := url.Values{"username": {email}, "password": {"password123"}}
	req := httptest.NewRequest(http.MethodPost, "/token", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	require.Equal(a.t, http.StatusOK, w.Code, w.Body.String())

	var tok struct {
		AccessToken string `json:"access_token"`
	}
	require.NoError(a.t, json.Unmarshal(w.Body.Bytes(), &tok))
	return tok.AccessToken
}

func TestRouter_BookingAndReviewFlow(t *testing.T) {
	api := newTestAPI(t, &stubRecommender{})

	api.register("Olga Owner", "owner@example.com", "owner")
	api.register("Sam Seeker", "Sam@Example.com", "seeker")

	w, env := api.do(http.MethodPost, "/users", "", `{"name":"Dup","email":"sam@example.com","password":"password123","phone":"9876543210"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "EMAIL_EXISTS", env.Error.Code)

	ownerTok := api.login("owner@example.com")
	seekerTok := api.login("sam@example.com")

	hostelBody := `{"name":"Sunrise","location":"MG Road","city":"Pune","rent":1000,"available_rooms":1,"pincode":"411001","amenities":["wifi","laundry"]}`
	w, env = api.do(http.MethodPost, "/hostels/", seekerTok, hostelBody)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w, env = api.do(http.MethodPost, "/hostels/", ownerTok, hostelBody)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var created struct {
		ID int64 `json:"id"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &created))

	w, env = api.do(http.MethodGet, "/hostels/search?city=Pune&amenities=wifi,laundry", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	var found []map[string]any
	require.NoError(t, json.Unmarshal(env.Data, &found))
	assert.Len(t, found, 1)

	w, env = api.do(http.MethodPost, "/bookings/", "", `{}`)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	bookingBody := fmt.Sprintf(`{"hostel_id":%d,"check_in":"2024-01-01","check_out":"2024-01-03","number_of_beds":2}`, created.ID)
	w, env = api.do(http.MethodPost, "/bookings/", seekerTok, bookingBody)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var booking struct {
		ID         int64   `json:"id"`
		TotalPrice float64 `json:"total_price"`
		Status     string  `json:"status"`
		CheckIn    string  `json:"check_in"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &booking))
	assert.Equal(t, 4000.0, booking.TotalPrice)
	assert.Equal(t, "pending", booking.Status)
	assert.Equal(t, "2024-01-01", booking.CheckIn)

	w, env = api.do(http.MethodPost, "/bookings", seekerTok, bookingBody)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "NO_AVAILABILITY", env.Error.Code)

	w, env = api.do(http.MethodPut, fmt.Sprintf("/bookings/%d/confirm", booking.ID), seekerTok, "")
	assert.Equal(t, http.StatusForbidden, w.Code)
	w, env = api.do(http.MethodPut, fmt.Sprintf("/bookings/%d/confirm", booking.ID), ownerTok, "")
	assert.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w, env = api.do(http.MethodGet, "/bookings/my", seekerTok, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, string(env.Data), `"status":"confirmed"`)

	reviewBody := fmt.Sprintf(`{"hostel_id":%d,"rating":4,"comment":"Clean and quiet"}`, created.ID)
	w, _ = api.do(http.MethodPost, "/reviews/", seekerTok, reviewBody)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	w, env = api.do(http.MethodPost, "/reviews", seekerTok, reviewBody)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "ALREADY_REVIEWED", env.Error.Code)

	w, env = api.do(http.MethodGet, fmt.Sprintf("/hostels/%d", created.ID), "", "")
	require.Equal(t, http.StatusOK, w.Code)
	var h struct {
		Rating         float64 `json:"rating"`
		ReviewCount    int     `json:"review_count"`
		AvailableRooms int     `json:"available_rooms"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &h))
	assert.Equal(t, 4.0, h.Rating)
	assert.Equal(t, 1, h.ReviewCount)
	assert.Zero(t, h.AvailableRooms)

	w, env = api.do(http.MethodGet, fmt.Sprintf("/hostels/%d/reviews", created.ID), "", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, string(env.Data), "Sam Seeker")
	assert.NotContains(t, string(env.Data), "sam@example.com")
}

func TestRouter_SmartSearch(t *testing.T) {
	rec := &stubRecommender{locations: []string{"Pune"}}
	api := newTestAPI(t, rec)

	api.register("Olga Owner", "owner@example.com", "owner")
	ownerTok := api.login("owner@example.com")
	w, _ := api.do(http.MethodPost, "/hostels", ownerTok, `{"name":"Sunrise","location":"MG Road","city":"Pune","rent":1000,"available_rooms":2,"pincode":"411001"}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w, env := api.do(http.MethodGet, "/smart-search/411001", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, string(env.Data), `"exact_match":true`)
	assert.Zero(t, rec.similarCalls.Load())

	w, env = api.do(http.MethodGet, "/smart-search/999999", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	var res struct {
		ExactMatch         bool             `json:"exact_match"`
		SuggestedResults   []map[string]any `json:"suggested_results"`
		SuggestedLocations []string         `json:"suggested_locations"`
		AISuggestion       string           `json:"ai_suggestion"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &res))
	assert.False(t, res.ExactMatch)
	assert.Len(t, res.SuggestedResults, 1)
	assert.Equal(t, []string{"Pune"}, res.SuggestedLocations)
	assert.Equal(t, "No hostels found in pincode 999999. Here are some suggestions from nearby areas: Pune", res.AISuggestion)
	assert.EqualValues(t, 1, rec.similarCalls.Load())
}

func TestRouter_OperationalEndpoints(t *testing.T) {
	api := newTestAPI(t, &stubRecommender{})

	w, _ := api.do(http.MethodGet, "/health", "", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())

	w, _ = api.do(http.MethodGet, "/metrics", "", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w, _ = api.do(http.MethodGet, "/metrics", "ops", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "hostelfinder_")

	w, env := api.do(http.MethodGet, "/nope", "", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "NOT_FOUND", env.Error.Code)

	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}
