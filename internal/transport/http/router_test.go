package httptransport

//go:generate mockgen -source=handlers_admin.go -destination=mocks/mocks.go -package=mocks StatsService

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"recruit/internal/platform/logger"
	submission "recruit/internal/submission/models"
	"recruit/internal/transport/http/mocks"
	dErrors "recruit/pkg/domain-errors"
	"recruit/pkg/platform/middleware/admin"
	"recruit/pkg/platform/middleware/requesttime"
	"recruit/pkg/testutil"
)

type RouterSuite struct {
	suite.Suite
	ctrl    *gomock.Controller
	stats   *mocks.MockStatsService
	webhook int
	router  http.Handler
}

func TestRouterSuite(t *testing.T) {
	suite.Run(t, new(RouterSuite))
}

func (s *RouterSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.stats = mocks.NewMockStatsService(s.ctrl)
	s.webhook = 0
	s.router = NewRouter(RouterConfig{
		Logger:     logger.Discard(),
		Metrics:    http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) { _, _ = w.Write([]byte("# metrics")) }),
		Webhook:    http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) { s.webhook++ }),
		AdminToken: "op-token",
		Stats:      s.stats,
		Checks: map[string]HealthCheck{
			"store": func(context.Context) error { return nil },
		},
	})
}

func (s *RouterSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *RouterSuite) do(method, path string, header map[string]string) *httptest.ResponseRecorder {
	return testutil.DoRequest(s.router, testutil.NewRequest(s.T(), method, path, "{}", header))
}

func (s *RouterSuite) TestHealth() {
	rec := s.do(http.MethodGet, "/healthz", nil)
	s.Equal(http.StatusOK, rec.Code)
	s.NotEmpty(rec.Header().Get(requesttime.HeaderRequestID))

	rec = s.do(http.MethodGet, "/readyz", nil)
	s.Equal(http.StatusOK, rec.Code)
	s.JSONEq(`{"store":"ok"}`, rec.Body.String())
}

func (s *RouterSuite) TestReadinessFailure() {
	router := NewRouter(RouterConfig{
		Logger: logger.Discard(),
		Checks: map[string]HealthCheck{
			"redis": func(context.Context) error { return errors.New("dial tcp: refused") },
			"store": func(context.Context) error { return nil },
		},
	})
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	s.Equal(http.StatusServiceUnavailable, rec.Code)
	s.JSONEq(`{"redis":"unavailable","store":"ok"}`, rec.Body.String())
}

func (s *RouterSuite) TestMetricsAndWebhook() {
	s.Equal("# metrics", s.do(http.MethodGet, "/metrics", nil).Body.String())

	s.do(http.MethodPost, "/telegram/webhook", nil)
	s.Equal(1, s.webhook)
	s.Equal(http.StatusMethodNotAllowed, s.do(http.MethodGet, "/telegram/webhook", nil).Code)
}

func (s *RouterSuite) TestWebhookUnmountedInPollingMode() {
	router := NewRouter(RouterConfig{Logger: logger.Discard()})
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/telegram/webhook", nil))
	s.Equal(http.StatusNotFound, rec.Code)
}

func (s *RouterSuite) TestAdminStats() {
	s.Run("requires the admin token", func() {
		rec := s.do(http.MethodGet, "/admin/stats", nil)
		s.Equal(http.StatusUnauthorized, rec.Code)
	})

	s.Run("returns counts", func() {
		s.stats.EXPECT().Stats(gomock.Any()).Return(submission.Counts{Total: 3, Accepted: 1, Rejected: 1, Pending: 1}, nil)
		rec := s.do(http.MethodGet, "/admin/stats", map[string]string{admin.HeaderAdminToken: "op-token"})
		s.Require().Equal(http.StatusOK, rec.Code)
		got := testutil.UnmarshalResponse[submission.Counts](s.T(), rec)
		s.Equal(submission.Counts{Total: 3, Accepted: 1, Rejected: 1, Pending: 1}, *got)
	})

	s.Run("hides internal errors", func() {
		s.stats.EXPECT().Stats(gomock.Any()).Return(submission.Counts{}, dErrors.New(dErrors.CodeInternal, "db password wrong"))
		rec := s.do(http.MethodGet, "/admin/stats", map[string]string{admin.HeaderAdminToken: "op-token"})
		testutil.AssertStatus(s.T(), rec, http.StatusInternalServerError)
		s.NotContains(rec.Body.String(), "password")
		testutil.AssertErrorCode(s.T(), rec, "internal_error")
	})
}
