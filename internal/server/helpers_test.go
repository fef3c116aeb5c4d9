package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/skillsage/internal/assessment"
	"github.com/jonathan/skillsage/internal/config"
	"github.com/jonathan/skillsage/internal/fetch"
	"github.com/jonathan/skillsage/internal/db"
	"github.com/jonathan/skillsage/internal/llm"
	"github.com/jonathan/skillsage/internal/observability"
	"github.com/jonathan/skillsage/internal/server/ratelimit"
	"github.com/jonathan/skillsage/internal/session"
	"github.com/jonathan/skillsage/internal/types"
)

const testJWTSecret = "test-secret-key-for-server-tests"

// fakeDB is an in-memory DBClient.
type fakeDB struct {
	mu    sync.Mutex
	users map[uuid.UUID]*db.User

	createErr   error
	passwordErr error
	deleted     []uuid.UUID
}

func newFakeDB() *fakeDB {
	return &fakeDB{users: make(map[uuid.UUID]*db.User)}
}

func (f *fakeDB) CheckEmailExists(_ context.Context, email string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.byEmail(email) != nil, nil
}

func (f *fakeDB) CreateUser(_ context.Context, name, email string) (uuid.UUID, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return uuid.Nil, f.createErr
	}
	if f.byEmail(email) != nil {
		return uuid.Nil, db.ErrDuplicateEmail
	}
	now := time.Now()
	u := &db.User{ID: uuid.New(), Name: name, Email: strings.ToLower(email), CreatedAt: now, UpdatedAt: now}
	f.users[u.ID] = u
	return u.ID, nil
}

func (f *fakeDB) UpdatePassword(_ context.Context, id uuid.UUID, hash string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.passwordErr != nil {
		return f.passwordErr
	}
	u, ok := f.users[id]
	if !ok {
		return errors.New("user not found")
	}
	u.PasswordHash = hash
	u.PasswordSet = true
	u.UpdatedAt = time.Now()
	return nil
}

func (f *fakeDB) GetUser(_ context.Context, id uuid.UUID) (*db.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (f *fakeDB) GetUserByEmail(_ context.Context, email string) (*db.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u := f.byEmail(email)
	if u == nil {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (f *fakeDB) DeleteUser(_ context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.users[id]; !ok {
		return errors.New("user not found")
	}
	delete(f.users, id)
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeDB) byEmail(email string) *db.User {
	for _, u := range f.users {
		if strings.EqualFold(u.Email, email) {
			return u
		}
	}
	return nil
}

// fakeLLM returns canned JSON. When gate is set, the first call blocks until
// the channel is closed.
type fakeLLM struct {
	mu       sync.Mutex
	response string
	err      error
	gate     chan struct{}
	started  chan struct{}
	calls    int
}

func (f *fakeLLM) GenerateContent(ctx context.Context, prompt string, tier llm.ModelTier) (string, error) {
	return f.GenerateJSON(ctx, prompt, tier)
}

func (f *fakeLLM) GenerateJSON(ctx context.Context, _ string, _ llm.ModelTier) (string, error) {
	f.mu.Lock()
	f.calls++
	first := f.calls == 1
	gate, started := f.gate, f.started
	resp, err := f.response, f.err
	f.mu.Unlock()

	if first && gate != nil {
		if started != nil {
			close(started)
		}
		select {
		case <-gate:
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	return resp, err
}

func (f *fakeLLM) GetModel(llm.ModelTier) string { return "fake-model" }

func (f *fakeLLM) Close() error { return nil }

func customQuestionsJSON() string {
	qs := make([]types.Question, types.QuestionBatchSize)
	for i := range qs {
		qs[i] = types.Question{ID: i + 1, Question: fmt.Sprintf("Custom question %d?", i+1), Options: []string{"Often", "Rarely"}}
	}
	b, _ := json.Marshal(qs)
	return string(b)
}

type testEnv struct {
	server   *Server
	db       *fakeDB
	sessions *session.MemoryStore
	metrics  *observability.Metrics
	jwt      *JWTService
}

type envOption func(*Deps)

func withLLM(c llm.Client) envOption {
	return func(d *Deps) {
		d.Generator = assessment.NewGenerator(c, nil, assessment.WithRecorder(d.Metrics), assessment.WithRandom(func() float64 { return 0.5 }))
	}
}

// withFetchClient routes resume URL imports through c, typically an httptest
// server's client, which may reach loopback.
func withFetchClient(c *http.Client) envOption {
	return func(d *Deps) {
		d.FetchOptions = &fetch.Options{Client: c}
	}
}

func withLimiter(cfg *ratelimit.Config) envOption {
	return func(d *Deps) {
		d.RateLimiter = ratelimit.NewLimiter(cfg)
	}
}

func newTestEnv(t *testing.T, opts ...envOption) *testEnv {
	t.Helper()

	passwords, err := config.NewPasswordConfig(10, "")
	require.NoError(t, err)
	jwtCfg, err := config.NewJWTConfig(testJWTSecret, 1)
	require.NoError(t, err)

	fdb := newFakeDB()
	store := session.NewMemoryStore(time.Hour)
	metrics := observability.NewMetrics()
	d := Deps{
		Users:     fdb,
		Sessions:  store,
		JWT:       NewJWTService(jwtCfg),
		Passwords: passwords,
		Metrics:   metrics,
	}
	for _, opt := range opts {
		opt(&d)
	}
	s := newServer(d)
	t.Cleanup(s.rateLimiter.Stop)

	return &testEnv{server: s, db: fdb, sessions: store, metrics: metrics, jwt: d.JWT}
}

func (e *testEnv) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	e.server.Handler().ServeHTTP(w, req)
	return w
}

// register creates an account and returns its token and id.
func (e *testEnv) register(t *testing.T, email string) (string, uuid.UUID) {
	t.Helper()
	w := e.do(t, http.MethodPost, "/auth/register", "", map[string]string{
		"name":     "Meera Rao",
		"email":    email,
		"password": "correct-horse-battery",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp types.LoginResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.Token, resp.User.ID
}

// completeProfile fills the fields question generation requires.
func (e *testEnv) completeProfile(t *testing.T, token string) {
	t.Helper()
	w := e.do(t, http.MethodPatch, "/profile", token, map[string]any{
		"branch":        "Computer Science",
		"year":          "3rd Year",
		"careerGoal":    "Backend Engineer",
		"currentSkills": []string{"Go", "SQL"},
		"interests":     []string{"Cloud Computing"},
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}
