package auth

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"

	"blog-backend/internal/config"
	"blog-backend/internal/domains/author/model"
	"blog-backend/internal/shared/middleware"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// ========================================
// FAKES
// ========================================

type memoryStore struct {
	mu     sync.Mutex
	values map[string]string
	ttls   map[string]time.Duration
}

func newMemoryStore() *memoryStore {
	return &memoryStore{values: map[string]string{}, ttls: map[string]time.Duration{}}
}

func (m *memoryStore) Set(_ context.Context, key, value string, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	m.ttls[key] = ttl
	return nil
}

func (m *memoryStore) Take(_ context.Context, key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.values[key]
	delete(m.values, key)
	return v, ok, nil
}

func (m *memoryStore) Ping(context.Context) error { return nil }

type fakeProvider struct {
	profile *model.OAuthProfile
	err     error
	codes   []string
}

func (f *fakeProvider) AuthCodeURL(state string) string {
	return "https://accounts.example.com/auth?state=" + url.QueryEscape(state)
}

func (f *fakeProvider) Exchange(_ context.Context, code string) (*model.OAuthProfile, error) {
	f.codes = append(f.codes, code)
	if f.err != nil {
		return nil, f.err
	}
	p := *f.profile
	return &p, nil
}

// fakeResolver: một provider id ↔ một author
type fakeResolver struct {
	byProvider map[string]*model.Author
	err        error
}

func (f *fakeResolver) FindOrCreateByOAuth(_ context.Context, p model.OAuthProfile) (*model.Author, error) {
	if f.err != nil {
		return nil, f.err
	}
	if a, ok := f.byProvider[p.ProviderID]; ok {
		return a, nil
	}
	a := &model.Author{ID: uuid.New(), Email: p.Email, OAuthID: &p.ProviderID}
	f.byProvider[p.ProviderID] = a
	return a, nil
}

type fakeTokens struct{}

func (fakeTokens) GenerateAccessToken(id string) (string, error) { return "tok-" + id, nil }

type fixture struct {
	router   *gin.Engine
	store    *memoryStore
	provider *fakeProvider
	resolver *fakeResolver
}

func newFixture() fixture {
	store := newMemoryStore()
	provider := &fakeProvider{profile: &model.OAuthProfile{ProviderID: "g-1", Email: "grace@example.com", EmailVerified: true}}
	resolver := &fakeResolver{byProvider: map[string]*model.Author{}}

	h := NewHandler(NewService(provider, store, resolver, fakeTokens{}), "http://frontend.local/oauth")
	r := gin.New()
	r.Use(middleware.ErrorHandler())
	r.GET("/auth/google", h.GoogleLogin)
	r.GET("/auth/google/callback", h.GoogleCallback)

	return fixture{router: r, store: store, provider: provider, resolver: resolver}
}

func (f fixture) get(path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

// begin chạy step 1 và trả state đã lưu
func (f fixture) begin(t *testing.T) string {
	t.Helper()
	w := f.get("/auth/google")
	require.Equal(t, http.StatusFound, w.Code)

	loc, err := url.Parse(w.Header().Get("Location"))
	require.NoError(t, err)
	state := loc.Query().Get("state")
	require.NotEmpty(t, state)
	return state
}

// ========================================
// TESTS
// ========================================

func TestGoogleLogin_StoresState(t *testing.T) {
	f := newFixture()
	state := f.begin(t)

	ttl, ok := f.store.ttls[stateKeyPrefix+state]
	require.True(t, ok)
	assert.Equal(t, 10*time.Minute, ttl)
}

func TestGoogleCallback(t *testing.T) {
	t.Run("success redirects with token", func(t *testing.T) {
		f := newFixture()
		state := f.begin(t)

		w := f.get("/auth/google/callback?state=" + url.QueryEscape(state) + "&code=abc")
		require.Equal(t, http.StatusFound, w.Code)

		loc, err := url.Parse(w.Header().Get("Location"))
		require.NoError(t, err)
		assert.Equal(t, "frontend.local", loc.Host)
		assert.True(t, strings.HasPrefix(loc.Query().Get("token"), "tok-"))
		assert.Equal(t, []string{"abc"}, f.provider.codes)
	})

	t.Run("state is single use", func(t *testing.T) {
		f := newFixture()
		state := f.begin(t)

		require.Equal(t, http.StatusFound, f.get("/auth/google/callback?state="+url.QueryEscape(state)+"&code=abc").Code)
		w := f.get("/auth/google/callback?state=" + url.QueryEscape(state) + "&code=abc")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("unknown state", func(t *testing.T) {
		f := newFixture()

		w := f.get("/auth/google/callback?state=forged&code=abc")
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Empty(t, f.provider.codes)
	})

	t.Run("repeat login reuses author", func(t *testing.T) {
		f := newFixture()

		var tokens []string
		for i := 0; i < 2; i++ {
			state := f.begin(t)
			w := f.get("/auth/google/callback?state=" + url.QueryEscape(state) + "&code=abc")
			require.Equal(t, http.StatusFound, w.Code)
			loc, _ := url.Parse(w.Header().Get("Location"))
			tokens = append(tokens, loc.Query().Get("token"))
		}
		assert.Len(t, f.resolver.byProvider, 1)
		assert.Equal(t, tokens[0], tokens[1])
	})

	t.Run("provider failure is a bad gateway", func(t *testing.T) {
		f := newFixture()
		f.provider.err = &ProviderError{Op: "code exchange", Err: errors.New("boom")}
		state := f.begin(t)

		w := f.get("/auth/google/callback?state=" + url.QueryEscape(state) + "&code=abc")
		assert.Equal(t, http.StatusBadGateway, w.Code)
	})

	t.Run("linked to other provider id is a conflict", func(t *testing.T) {
		f := newFixture()
		f.resolver.err = model.ErrOAuthIDTaken
		state := f.begin(t)

		w := f.get("/auth/google/callback?state=" + url.QueryEscape(state) + "&code=abc")
		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("user denied consent", func(t *testing.T) {
		f := newFixture()

		w := f.get("/auth/google/callback?error=access_denied")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestGoogleProvider_Exchange(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/token":
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"access_token":"at-1","token_type":"Bearer","expires_in":3600}`))
		case "/userinfo":
			if r.Header.Get("Authorization") != "Bearer at-1" {
				w.WriteHeader(http.StatusUnauthorized)
				return
			}
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(map[string]any{
				"sub":            "1234",
				"email":          "grace@example.com",
				"email_verified": true,
				"name":           "Grace Hopper",
				"given_name":     "Grace",
				"family_name":    "Hopper",
			})
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	cfg := config.OAuthConfig{GoogleClientID: "id", GoogleClientSecret: "secret", CallbackPath: "/auth/google/callback"}
	p := NewGoogleProvider(cfg, "http://api.local").(*googleProvider)
	p.oauth.Endpoint = oauth2.Endpoint{AuthURL: srv.URL + "/auth", TokenURL: srv.URL + "/token"}
	p.userInfoURL = srv.URL + "/userinfo"

	assert.Equal(t, "http://api.local/auth/google/callback", p.oauth.RedirectURL)
	assert.Contains(t, p.AuthCodeURL("xyz"), "state=xyz")

	profile, err := p.Exchange(context.Background(), "code-1")
	require.NoError(t, err)
	assert.Equal(t, "1234", profile.ProviderID)
	assert.True(t, profile.EmailVerified)
	assert.Equal(t, "Grace", profile.GivenName)
	assert.Equal(t, "Hopper", profile.FamilyName)

	p.userInfoURL = srv.URL + "/missing"
	_, err = p.Exchange(context.Background(), "code-1")
	var perr *ProviderError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, http.StatusBadGateway, perr.HTTPStatus())
}
