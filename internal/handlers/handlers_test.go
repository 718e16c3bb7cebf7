package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/roomfinder/roomfinder-api/internal/database"
	"github.com/roomfinder/roomfinder-api/internal/models"
	"github.com/roomfinder/roomfinder-api/internal/services"
	"github.com/roomfinder/roomfinder-api/internal/storage"
	"github.com/roomfinder/roomfinder-api/internal/types"
	"github.com/roomfinder/roomfinder-api/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm/logger"
)

const baseURL = "http://localhost:3000"

var (
	owner   = types.Session{UserID: "owner-1", Email: "ravi@example.com", Role: types.RoleOwner}
	other   = types.Session{UserID: "owner-2", Email: "asha@example.com", Role: types.RoleOwner}
	student = types.Session{UserID: "student-1", Email: "neha@example.com", Role: types.RoleStudent}
	admin   = types.Session{UserID: "admin-1", Email: "ops@example.com", Role: types.RoleAdmin}
)

type testEnv struct {
	app      *fiber.App
	store    *services.RecordStore
	listings *services.Listings
	auth     *services.JWTAuthenticator
}

// failingStore rejects every upload.
type failingStore struct {
	storage.ObjectStore
}

func (failingStore) Upload(context.Context, string, string, io.Reader, string, bool) error {
	return errors.New("bucket unavailable")
}

func newTestEnv(t *testing.T, objects storage.ObjectStore) *testEnv {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := database.Open(sqlite.Open(dsn), 1, logger.Silent)
	require.NoError(t, err)
	t.Cleanup(func() { database.Close(db) })
	require.NoError(t, database.AutoMigrate(db))

	store, err := services.NewRecordStore(db)
	require.NoError(t, err)

	if objects == nil {
		objects = storage.NewMemoryStore(baseURL)
	}
	listings := services.NewListings(store, objects, nil)
	listings.Assembler.NewID = func() string { return "rec-1" }
	seq := 0
	listings.NewID = func() string {
		seq++
		return fmt.Sprintf("review-%d", seq)
	}

	auth := services.NewJWTAuthenticator("handler-test-secret")
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler})
	Register(app, Routes{
		Listings: listings,
		Objects:  objects,
		Auth:     auth,
		Health:   services.HealthDeps{DB: db, Objects: objects, Auth: auth},
	})
	app.Use(NotFound)

	return &testEnv{app: app, store: store, listings: listings, auth: auth}
}

func (e *testEnv) token(t *testing.T, s types.Session) string {
	t.Helper()
	token, err := e.auth.SignToken(s, jwt.MapClaims{"exp": time.Now().Add(time.Hour).Unix()})
	require.NoError(t, err)
	return token
}

func (e *testEnv) do(t *testing.T, method, target string, body io.Reader, contentType, token string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(method, target, body)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func (e *testEnv) doJSON(t *testing.T, method, target string, body any, token string) *http.Response {
	t.Helper()
	data, err := json.Marshal(body)
	require.NoError(t, err)
	return e.do(t, method, target, bytes.NewReader(data), "application/json", token)
}

func (e *testEnv) seedProperty(t *testing.T, id, ownerID string, created time.Time) {
	t.Helper()
	_, err := e.store.Insert(context.Background(), services.TableProperties, models.Row{
		"id":           id,
		"title":        "Room " + id,
		"city":         "Gunupur",
		"owner_id":     ownerID,
		"monthly_rent": 4500.0,
		"status":       models.StatusAvailable,
		"verified":     false,
		"amenities":    []string{"WiFi"},
		"created_at":   created,
		"updated_at":   created,
	})
	require.NoError(t, err)
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var v T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&v))
	return v
}

var baseTime = time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)

func TestListPropertiesNewestSix(t *testing.T) {
	env := newTestEnv(t, nil)
	for i := range 8 {
		env.seedProperty(t, fmt.Sprintf("p%d", i), "owner-1", baseTime.Add(time.Duration(i)*time.Hour))
	}

	resp := env.do(t, http.MethodGet, "/api/properties", nil, "", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "1.0.0", resp.Header.Get("X-Api-Version"))

	body := decode[PropertyListResponse](t, resp)
	require.Len(t, body.Properties, 6)
	assert.Equal(t, "p7", body.Properties[0].ID)
	assert.Equal(t, "p2", body.Properties[5].ID)
	assert.Equal(t, 4500.0, body.Properties[0].Price)
	assert.Equal(t, []string{"WiFi"}, body.Properties[0].Amenities)

	resp = env.do(t, http.MethodGet, "/api/properties?limit=2&city=Gunupur", nil, "", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, decode[PropertyListResponse](t, resp).Properties, 2)
}

func TestCreatePropertyUsesSessionOwner(t *testing.T) {
	env := newTestEnv(t, nil)

	resp := env.doJSON(t, http.MethodPost, "/api/properties", map[string]any{
		"title":       "Sunny room near campus",
		"city":        "Gunupur",
		"monthlyRent": "4500",
		"ownerId":     "someone-else",
		"owner_id":    "someone-else",
		"balcony":     "true",
		"amenities":   []string{"WiFi", "Geyser"},
	}, env.token(t, owner))
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body := decode[CreatedPropertyResponse](t, resp)
	assert.True(t, body.Success)
	assert.Equal(t, "rec-1", body.Property["id"])
	assert.Equal(t, "owner-1", body.Property["owner_id"])
	assert.Equal(t, 4500.0, body.Property["monthly_rent"])
	assert.Equal(t, true, body.Property["balcony"])

	resp = env.do(t, http.MethodGet, "/api/me/properties", nil, "", env.token(t, owner))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	mine := decode[PropertyListResponse](t, resp)
	require.Len(t, mine.Properties, 1)
	assert.Equal(t, "Sunny room near campus", mine.Properties[0].Title)
	assert.Equal(t, []string{"WiFi", "Geyser"}, mine.Properties[0].Amenities)

	resp = env.do(t, http.MethodGet, "/api/me/properties", nil, "", env.token(t, other))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Empty(t, decode[PropertyListResponse](t, resp).Properties)
}

func TestCreatePropertyErrors(t *testing.T) {
	env := newTestEnv(t, nil)
	valid := map[string]any{"title": "Room", "city": "Gunupur", "monthlyRent": 3000}

	t.Run("no token", func(t *testing.T) {
		resp := env.doJSON(t, http.MethodPost, "/api/properties", valid, "")
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		body := decode[utils.ErrorResponseStruct](t, resp)
		assert.False(t, body.Ok)
		assert.Equal(t, types.ErrTypeAuth, body.Type)
	})

	t.Run("bad token", func(t *testing.T) {
		resp := env.doJSON(t, http.MethodPost, "/api/properties", valid, "not-a-token")
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("malformed json", func(t *testing.T) {
		resp := env.do(t, http.MethodPost, "/api/properties", strings.NewReader("{"), "application/json", env.token(t, owner))
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("missing rent", func(t *testing.T) {
		resp := env.doJSON(t, http.MethodPost, "/api/properties", map[string]any{"title": "Room", "city": "Gunupur"}, env.token(t, owner))
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		body := decode[utils.ErrorResponseStruct](t, resp)
		assert.Contains(t, body.Error, "monthlyRent")
		assert.Equal(t, types.ErrTypeValidation, body.Type)
	})

	t.Run("upload failure", func(t *testing.T) {
		failing := newTestEnv(t, failingStore{storage.NewMemoryStore(baseURL)})
		var buf bytes.Buffer
		w := multipart.NewWriter(&buf)
		require.NoError(t, w.WriteField("title", "Room"))
		require.NoError(t, w.WriteField("city", "Gunupur"))
		require.NoError(t, w.WriteField("monthlyRent", "3000"))
		fw, err := w.CreateFormFile("images", "front.jpg")
		require.NoError(t, err)
		_, _ = fw.Write([]byte("jpeg"))
		require.NoError(t, w.Close())

		resp := failing.do(t, http.MethodPost, "/api/properties", &buf, w.FormDataContentType(), failing.token(t, owner))
		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
		body := decode[utils.ErrorResponseStruct](t, resp)
		assert.Contains(t, body.Error, "bucket unavailable")

		resp = failing.do(t, http.MethodGet, "/api/properties", nil, "", "")
		assert.Empty(t, decode[PropertyListResponse](t, resp).Properties)
	})
}

func TestCreatePropertyMultipartUploads(t *testing.T) {
	env := newTestEnv(t, nil)

	payload, err := json.Marshal(map[string]any{
		"title":       "Two rooms",
		"city":        "Rayagada",
		"monthlyRent": 5200,
		"images":      []string{"https://cdn.example.com/existing.jpg"},
	})
	require.NoError(t, err)

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	require.NoError(t, w.WriteField("payload", string(payload)))
	for _, name := range []string{"front", "back"} {
		fw, err := w.CreateFormFile("images", name+".jpg")
		require.NoError(t, err)
		_, _ = fw.Write([]byte(name + "-bytes"))
	}
	require.NoError(t, w.Close())

	resp := env.do(t, http.MethodPost, "/api/properties", &buf, w.FormDataContentType(), env.token(t, owner))
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = env.do(t, http.MethodGet, "/api/properties/rec-1", nil, "", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	view := decode[PropertyResponse](t, resp).Property
	assert.Equal(t, []string{
		"https://cdn.example.com/existing.jpg",
		baseURL + "/storage/v1/object/public/property-images/rec-1/images-0-front.jpg",
		baseURL + "/storage/v1/object/public/property-images/rec-1/images-1-back.jpg",
	}, view.Images)

	resp = env.do(t, http.MethodGet, "/storage/v1/object/public/property-images/rec-1/images-1-back.jpg", nil, "", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, "back-bytes", string(data))
	assert.NotEmpty(t, resp.Header.Get("Last-Modified"))
}

func TestGetPropertyNotFound(t *testing.T) {
	env := newTestEnv(t, nil)
	resp := env.do(t, http.MethodGet, "/api/properties/missing", nil, "", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	body := decode[utils.ErrorResponseStruct](t, resp)
	assert.Equal(t, types.ErrTypeNotFound, body.Type)
}

func TestPropertyStatusAndVerified(t *testing.T) {
	env := newTestEnv(t, nil)
	env.seedProperty(t, "p1", "owner-1", baseTime)

	resp := env.doJSON(t, http.MethodPatch, "/api/properties/p1/status", map[string]any{"status": "occupied"}, env.token(t, other))
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp = env.doJSON(t, http.MethodPatch, "/api/properties/p1/status", map[string]any{"status": "rented"}, env.token(t, owner))
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = env.doJSON(t, http.MethodPatch, "/api/properties/p1/status", map[string]any{"status": "Occupied"}, env.token(t, owner))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, models.StatusOccupied, decode[PropertyResponse](t, resp).Property.Status)

	resp = env.doJSON(t, http.MethodPatch, "/api/properties/p1/verified", map[string]any{"verified": true}, env.token(t, owner))
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	selfPicked, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":           "student-9",
		"user_metadata": map[string]any{"role": types.RoleAdmin},
		"exp":           time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte("handler-test-secret"))
	require.NoError(t, err)
	resp = env.doJSON(t, http.MethodPatch, "/api/properties/p1/verified", map[string]any{"verified": true}, selfPicked)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp = env.doJSON(t, http.MethodPatch, "/api/properties/p1/verified", map[string]any{}, env.token(t, admin))
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = env.doJSON(t, http.MethodPatch, "/api/properties/p1/verified", map[string]any{"verified": true}, env.token(t, admin))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, decode[PropertyResponse](t, resp).Property.Verified)
}

func TestReviewsAndReplyOnce(t *testing.T) {
	env := newTestEnv(t, nil)
	env.seedProperty(t, "p1", "owner-1", baseTime)

	resp := env.doJSON(t, http.MethodPost, "/api/properties/p1/reviews", map[string]any{"rating": 4}, env.token(t, owner))
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp = env.doJSON(t, http.MethodPost, "/api/properties/p1/reviews", map[string]any{"rating": 9}, env.token(t, student))
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = env.doJSON(t, http.MethodPost, "/api/properties/missing/reviews", map[string]any{"rating": 4}, env.token(t, student))
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = env.doJSON(t, http.MethodPost, "/api/properties/p1/reviews", map[string]any{"rating": "5", "comment": "Clean and quiet"}, env.token(t, student))
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	review := decode[ReviewResponse](t, resp).Review
	assert.Equal(t, "review-1", review.ID)
	assert.Equal(t, "neha", review.TenantName)
	assert.Equal(t, 5, review.Rating)
	assert.Nil(t, review.OwnerReply)

	resp = env.doJSON(t, http.MethodPost, "/api/reviews/review-1/reply", map[string]any{"reply": "Thanks"}, env.token(t, other))
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp = env.doJSON(t, http.MethodPost, "/api/reviews/review-1/reply", map[string]any{"reply": "Thanks"}, env.token(t, owner))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	reply := decode[ReviewResponse](t, resp).Review.OwnerReply
	require.NotNil(t, reply)
	assert.Equal(t, "Thanks", *reply)

	resp = env.doJSON(t, http.MethodPost, "/api/reviews/review-1/reply", map[string]any{"reply": "Again"}, env.token(t, owner))
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	resp = env.do(t, http.MethodGet, "/api/properties/p1/reviews", nil, "", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	reviews := decode[ReviewListResponse](t, resp).Reviews
	require.Len(t, reviews, 1)
	assert.Equal(t, "Thanks", *reviews[0].OwnerReply)
}

func TestHelperRoutes(t *testing.T) {
	env := newTestEnv(t, nil)

	resp := env.doJSON(t, http.MethodPost, "/api/helpers", map[string]any{"fullName": "Sunita Devi"}, env.token(t, student))
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = env.doJSON(t, http.MethodPost, "/api/helpers", map[string]any{
		"fullName":        "Sunita Devi",
		"city":            "Gunupur",
		"phone":           "9876543210",
		"experienceYears": "6",
		"cookOnly":        "true",
	}, env.token(t, student))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	created := decode[CreatedHelperResponse](t, resp)
	assert.True(t, created.Success)
	assert.Equal(t, "student-1", created.Helper["owner_id"])

	resp = env.do(t, http.MethodGet, "/api/helpers?city=Gunupur", nil, "", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	helpers := decode[HelperListResponse](t, resp).Helpers
	require.Len(t, helpers, 1)
	assert.Equal(t, "Sunita Devi", helpers[0].FullName)

	resp = env.do(t, http.MethodGet, "/api/helpers/rec-1", nil, "", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Gunupur", decode[HelperResponse](t, resp).Helper.City)

	resp = env.do(t, http.MethodGet, "/api/helpers/none", nil, "", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestStorageObjects(t *testing.T) {
	objects := storage.NewMemoryStore(baseURL)
	env := newTestEnv(t, objects)
	require.NoError(t, objects.Upload(context.Background(), storage.BucketHelperImages, "h1/photo one.png",
		strings.NewReader("png"), "image/png", false))

	resp := env.do(t, http.MethodGet, "/storage/v1/object/public/helper-images/h1/photo%20one.png", nil, "", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "image/png", resp.Header.Get("Content-Type"))
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, "png", string(data))

	resp = env.do(t, http.MethodGet, "/storage/v1/object/public/helper-images/h1/missing.png", nil, "", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = env.do(t, http.MethodGet, "/storage/v1/object/public/secrets/h1/photo.png", nil, "", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestSessionEcho(t *testing.T) {
	env := newTestEnv(t, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/me/session", nil)
	req.Header.Set("Authorization", "Bearer "+env.token(t, admin))
	req.Header.Set("X-Api-Version", "1")
	resp, err := env.app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body := decode[SessionResponse](t, resp)
	assert.Equal(t, &admin, body.User)
	assert.Equal(t, "1.0.0", body.APIVersion)

	resp = env.do(t, http.MethodGet, "/api/me/session", nil, "", "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestHealthAndNotFound(t *testing.T) {
	env := newTestEnv(t, nil)

	resp := env.do(t, http.MethodGet, "/health", nil, "", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	result := decode[services.HealthCheckResult](t, resp)
	assert.Equal(t, "healthy", result.Status)
	assert.Equal(t, "ok", result.Database)

	resp = env.do(t, http.MethodGet, "/api/nothing-here", nil, "", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	body := decode[utils.ErrorResponseStruct](t, resp)
	assert.Equal(t, "[404] Resource Not Found", body.Error)
}
