package api

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/pageza/recipeshare/backend/internal/catalog"
	"github.com/pageza/recipeshare/backend/internal/collection"
	"github.com/pageza/recipeshare/backend/internal/identity"
	"github.com/pageza/recipeshare/backend/internal/middleware"
	"github.com/pageza/recipeshare/backend/internal/service"
	"github.com/pageza/recipeshare/backend/internal/testingutils"
	"github.com/pageza/recipeshare/backend/internal/upload"
)

const testUserID = "user_2abc"

type testEnv struct {
	router   *gin.Engine
	provider identity.Provider
	states   *collection.Registry
	uploads  *upload.Service
	token    string
}

// fakeLimiter allows the first limit submissions and counts every check
type fakeLimiter struct {
	mu     sync.Mutex
	limit  int
	checks int
	reset  time.Time
}

func (f *fakeLimiter) Allow(c *gin.Context) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.checks++
	if f.checks > f.limit {
		c.JSON(http.StatusTooManyRequests, gin.H{"error": "rate limit exceeded"})
		return false
	}
	return true
}

func (f *fakeLimiter) Remaining(context.Context, string) (int, time.Time, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return max(f.limit-f.checks, 0), f.reset, nil
}

func (f *fakeLimiter) Checks() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.checks
}

func registerAll(v1 *gin.RouterGroup, cat *catalog.Catalog, states *collection.Registry, uploads *upload.Service, provider identity.Provider, limit SubmitLimiter) {
	log := zerolog.Nop()
	NewRecipeHandler(cat, states).RegisterRoutes(v1)
	NewCollectionHandler(states, log).RegisterRoutes(v1)
	NewSearchHandler(states).RegisterRoutes(v1)
	NewUploadHandler(uploads, limit, false, log).RegisterRoutes(v1)
	NewProfileHandler(provider, log, states, uploads).RegisterRoutes(v1)
}

func setupEnv(t *testing.T, provider identity.Provider) *testEnv {
	t.Helper()
	return setupLimitedEnv(t, provider, nil)
}

func setupLimitedEnv(t *testing.T, provider identity.Provider, limit SubmitLimiter) *testEnv {
	t.Helper()
	cat, err := catalog.Default()
	require.NoError(t, err)

	states := collection.NewRegistry(cat, service.NewMockSearcher(0), collection.DefaultSeed(), zerolog.Nop())
	uploads := upload.NewService(zerolog.Nop(), nil)

	router := testingutils.SetupTestRouter()
	v1 := router.Group("/api/v1", middleware.AuthGate(provider))
	registerAll(v1, cat, states, uploads, provider, limit)

	return &testEnv{router: router, provider: provider, states: states, uploads: uploads}
}

// newTestEnv wires every handler behind a JWT provider and issues a token
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	provider := identity.NewJWTProvider("test-secret")
	env := setupEnv(t, provider)

	token, err := provider.IssueToken(testUserID, "sess_1", time.Hour)
	require.NoError(t, err)
	env.token = token
	return env
}

// staticProvider authenticates every token as testUserID and fails sign-out
type staticProvider struct{}

func (staticProvider) Ready() bool { return true }

func (staticProvider) Authenticate(string) (*identity.Session, error) {
	return &identity.Session{UserID: testUserID, SessionID: "sess_static"}, nil
}

func (staticProvider) SignOut(context.Context, string) error {
	return errors.New("provider unreachable")
}
