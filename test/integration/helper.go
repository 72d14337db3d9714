// Package integration drives the assembled HTTP API end to end over an
// in-memory SQLite database.
package integration

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
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/xiebiao/blend/internal/bootstrap"
	"github.com/xiebiao/blend/internal/infrastructure/config"
	"github.com/xiebiao/blend/internal/infrastructure/persistence/postgres"
	"github.com/xiebiao/blend/internal/infrastructure/storage"
	"github.com/xiebiao/blend/pkg/jwt"
)

const (
	adminEmail    = "admin@example.com"
	adminPassword = "admin123"
)

// Envelope mirrors the response body of every endpoint.
type Envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Meta    *struct {
		Page  int   `json:"page"`
		Limit int   `json:"limit"`
		Total int64 `json:"total"`
		Pages int   `json:"pages"`
	} `json:"meta"`
}

// Decode unmarshals Data into v.
func (e Envelope) Decode(t *testing.T, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(e.Data, v), "data: %s", string(e.Data))
}

// outbox records verification codes instead of mailing them.
type outbox struct {
	mu    sync.Mutex
	codes map[string]string
	down  bool
}

func (o *outbox) SendVerification(_ context.Context, to, _, code string, _ int) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.down {
		return errors.New("mail provider unavailable")
	}
	o.codes[to] = code
	return nil
}

func (o *outbox) setDown(down bool) {
	o.mu.Lock()
	o.down = down
	o.mu.Unlock()
}

func (o *outbox) SendWelcome(context.Context, string, string) error { return nil }

func (o *outbox) codeFor(email string) string {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.codes[email]
}

// Server is one isolated application instance.
type Server struct {
	t      *testing.T
	engine *gin.Engine
	DB     *gorm.DB
	Mail   *outbox
}

func NewServer(t *testing.T) *Server {
	t.Helper()

	// 1. private database
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, postgres.Migrate(db))

	// 2. config and local image storage
	cfg := &config.Config{
		Server: config.ServerConfig{Mode: gin.TestMode, CORSOrigins: []string{"*"}},
		JWT:    config.JWTConfig{Secret: "integration-secret", Expiration: time.Hour},
		Storage: config.StorageConfig{
			Driver:      "local",
			LocalDir:    t.TempDir(),
			PublicPath:  "/uploads",
			MaxFileSize: 5 << 20,
		},
		Image: config.ImageConfig{Optimize: true, MaxProductImages: 10},
	}
	log := zap.NewNop()
	images, err := storage.New(context.Background(), cfg, log)
	require.NoError(t, err)

	// 3. assemble
	mail := &outbox{codes: map[string]string{}}
	app := bootstrap.Build(cfg, bootstrap.Infra{
		DB:       db,
		Images:   images,
		Notifier: mail,
		JWT:      jwt.NewManager(cfg.JWT.Secret, cfg.JWT.Expiration),
		Log:      log,
	})
	require.NoError(t, app.Seed.Execute(context.Background(), adminEmail, adminPassword))

	return &Server{t: t, engine: app.Engine, DB: db, Mail: mail}
}

// Do sends a request and decodes the envelope.
func (s *Server) Do(method, path string, body io.Reader, contentType, token string) (int, Envelope) {
	s.t.Helper()
	req := httptest.NewRequest(method, path, body)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)

	var env Envelope
	if w.Body.Len() > 0 && w.Header().Get("Content-Type") != "" && bytes.HasPrefix(w.Body.Bytes(), []byte("{")) {
		require.NoError(s.t, json.Unmarshal(w.Body.Bytes(), &env), "body: %s", w.Body.String())
	}
	return w.Code, env
}

func (s *Server) GetJSON(path, token string) (int, Envelope) {
	s.t.Helper()
	return s.Do(http.MethodGet, path, nil, "", token)
}

func (s *Server) SendJSON(method, path string, payload interface{}, token string) (int, Envelope) {
	s.t.Helper()
	raw, err := json.Marshal(payload)
	require.NoError(s.t, err)
	return s.Do(method, path, bytes.NewReader(raw), "application/json", token)
}

// FormFile is one file part of a multipart request.
type FormFile struct {
	Field, Filename, ContentType string
	Data                         []byte
}

func (s *Server) SendForm(method, path string, fields map[string]string, files []FormFile, token string) (int, Envelope) {
	s.t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(s.t, mw.WriteField(k, v))
	}
	for _, f := range files {
		h := make(map[string][]string)
		h["Content-Disposition"] = []string{fmt.Sprintf(`form-data; name=%q; filename=%q`, f.Field, f.Filename)}
		h["Content-Type"] = []string{f.ContentType}
		part, err := mw.CreatePart(h)
		require.NoError(s.t, err)
		_, err = part.Write(f.Data)
		require.NoError(s.t, err)
	}
	require.NoError(s.t, mw.Close())
	return s.Do(method, path, &buf, mw.FormDataContentType(), token)
}

// AdminToken logs the seeded admin in.
func (s *Server) AdminToken() string {
	s.t.Helper()
	status, env := s.SendJSON(http.MethodPost, "/admin/login", map[string]string{
		"email":    adminEmail,
		"password": adminPassword,
	}, "")
	require.Equal(s.t, http.StatusOK, status, env.Message)

	var data struct {
		AccessToken string `json:"accessToken"`
		Role        string `json:"role"`
	}
	env.Decode(s.t, &data)
	require.Equal(s.t, jwt.RoleAdmin, data.Role)
	return data.AccessToken
}

// CreateCategory creates a category through the API and returns its id
// and slug.
func (s *Server) CreateCategory(token, title string) (string, string) {
	s.t.Helper()
	status, env := s.SendForm(http.MethodPost, "/categories", map[string]string{"title": title}, nil, token)
	require.Equal(s.t, http.StatusCreated, status, env.Message)

	var data struct {
		ID   string `json:"id"`
		Slug string `json:"slug"`
	}
	env.Decode(s.t, &data)
	return data.ID, data.Slug
}

// CreateProduct creates a product through the API and returns its id.
func (s *Server) CreateProduct(token string, fields map[string]string) string {
	s.t.Helper()
	status, env := s.SendForm(http.MethodPost, "/products", fields, nil, token)
	require.Equal(s.t, http.StatusCreated, status, env.Message)

	var data struct {
		ID string `json:"id"`
	}
	env.Decode(s.t, &data)
	return data.ID
}
