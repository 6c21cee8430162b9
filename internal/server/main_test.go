package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync/atomic"
	"testing"
	"time"

	"inkwell/internal/config"
	"inkwell/internal/database"
	"inkwell/internal/models"
	"inkwell/internal/repository"
	"inkwell/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const testJWTSecret = "test-secret-test-secret-test-secret!"

// newTestServer builds a Server backed by an in-memory sqlite database.
// Prometheus middleware is left nil so repeated constructions in one test
// binary never fight over collector registration.
func newTestServer(t *testing.T) (*Server, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, database.Migrate(db))

	cfg := &config.Config{
		Port:      "0",
		Env:       "test",
		JWTSecret: testJWTSecret,
	}

	userRepo := repository.NewUserRepository(db)
	postRepo := repository.NewPostRepository(db)
	commentRepo := repository.NewCommentRepository(db)

	s := &Server{
		config:      cfg,
		db:          db,
		userRepo:    userRepo,
		postRepo:    postRepo,
		commentRepo: commentRepo,
		lifecycle:   service.NewLifecycleService(postRepo),
		listing:     service.NewListingService(postRepo),
		engagement:  service.NewEngagementService(postRepo, commentRepo),
	}
	return s, db
}

func newTestApp(t *testing.T) (*fiber.App, *Server, *gorm.DB) {
	t.Helper()

	s, db := newTestServer(t)
	app := fiber.New(fiber.Config{ErrorHandler: s.ErrorHandler})
	s.SetupRoutes(app)
	return app, s, db
}

func createUser(t *testing.T, db *gorm.DB, username string, isAdmin bool) *models.User {
	t.Helper()
	u := &models.User{
		Username: username,
		Email:    username + "@example.com",
		Password: "irrelevant",
		IsAdmin:  isAdmin,
	}
	require.NoError(t, db.Create(u).Error)
	return u
}

var postSlugCounter atomic.Int64

func seedPost(t *testing.T, db *gorm.DB, authorID uint, title, status string, hidden bool) *models.Post {
	t.Helper()
	p := &models.Post{
		Title:    title,
		Slug:     fmt.Sprintf("seed-%d", postSlugCounter.Add(1)),
		Content:  "Content for " + title,
		AuthorID: authorID,
		Status:   status,
		IsHidden: hidden,
	}
	require.NoError(t, db.Create(p).Error)
	return p
}

// tokenFor signs a bearer token the identity gate accepts.
func tokenFor(t *testing.T, userID uint) string {
	t.Helper()

	claims := jwt.MapClaims{
		"sub": strconv.FormatUint(uint64(userID), 10),
		"iss": "inkwell-api",
		"aud": "inkwell-client",
		"iat": time.Now().Unix(),
		"exp": time.Now().Add(time.Hour).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(testJWTSecret))
	require.NoError(t, err)
	return signed
}

func doJSON(t *testing.T, app *fiber.App, method, path, token string, body any) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	res, err := app.Test(req, -1)
	require.NoError(t, err)
	return res
}

func decodeBody(t *testing.T, res *http.Response, dest any) {
	t.Helper()
	defer res.Body.Close()
	require.NoError(t, json.NewDecoder(res.Body).Decode(dest))
}
