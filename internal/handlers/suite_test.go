package handlers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http/httptest"
	"time"

	"github.com/SscSPs/banking_backoffice/internal/core/domain"
	portssvc "github.com/SscSPs/banking_backoffice/internal/core/ports/services"
	"github.com/SscSPs/banking_backoffice/internal/dto"
	"github.com/SscSPs/banking_backoffice/internal/handlers"
	"github.com/SscSPs/banking_backoffice/internal/middleware"
	"github.com/SscSPs/banking_backoffice/internal/platform/config"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

const (
	testJWTSecret = "test-secret-key-that-is-long-enough"
	testSubject   = "admin-1"
	testProvider  = "zitadel"
)

// handlerSuite drives the real router with mocked services behind it.
type handlerSuite struct {
	suite.Suite
	router               *gin.Engine
	mockTransactionSvc   *MockTransactionService
	mockAccountSvc       *MockAccountService
	mockUserSvc          *MockUserService
	mockPrincipalSvc     *MockPrincipalService
	callerPrincipal      *domain.ResolvedPrincipal
	skipDefaultResolving bool
}

func (s *handlerSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.mockTransactionSvc = new(MockTransactionService)
	s.mockAccountSvc = new(MockAccountService)
	s.mockUserSvc = new(MockUserService)
	s.mockPrincipalSvc = new(MockPrincipalService)
	s.callerPrincipal = &domain.ResolvedPrincipal{
		PrincipalID: "principal-admin",
		Identities:  []domain.ResolvedIdentity{{Provider: testProvider, ExternalID: testSubject}},
		Roles:       []string{"admin"},
		Attributes:  map[string]any{},
	}
	if !s.skipDefaultResolving {
		s.mockPrincipalSvc.On("ResolvePrincipal", mock.Anything, testProvider, testSubject).
			Return(s.callerPrincipal, nil).Maybe()
	}

	cfg := &config.Config{
		IsProduction:            true,
		JWTSecret:               testJWTSecret,
		DefaultIdentityProvider: testProvider,
	}
	services := &portssvc.ServiceContainer{
		User:        s.mockUserSvc,
		Account:     s.mockAccountSvc,
		Principal:   s.mockPrincipalSvc,
		Transaction: s.mockTransactionSvc,
	}

	s.router = gin.New()
	s.router.Use(middleware.StructuredLoggingMiddleware(slog.New(slog.NewTextHandler(io.Discard, nil))))
	handlers.RegisterRoutes(s.router, cfg, services, nil)
}

func (s *handlerSuite) TearDownTest() {
	s.mockTransactionSvc.AssertExpectations(s.T())
	s.mockAccountSvc.AssertExpectations(s.T())
	s.mockUserSvc.AssertExpectations(s.T())
	s.mockPrincipalSvc.AssertExpectations(s.T())
}

// generateTestToken creates a signed JWT for subject.
func (s *handlerSuite) generateTestToken(subject string, extra func(*middleware.Claims)) string {
	claims := &middleware.Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	if extra != nil {
		extra(claims)
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testJWTSecret))
	if err != nil {
		s.FailNow("Failed to sign test token", err.Error())
	}
	return signed
}

// do sends an authenticated request as the default caller.
func (s *handlerSuite) do(method, path string, body any) *httptest.ResponseRecorder {
	return s.doAs(s.generateTestToken(testSubject, nil), method, path, body)
}

func (s *handlerSuite) doAs(token, method, path string, body any) *httptest.ResponseRecorder {
	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = bytes.NewBufferString(b)
	default:
		raw, err := json.Marshal(b)
		s.Require().NoError(err)
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
	s.router.ServeHTTP(w, req)
	return w
}

func (s *handlerSuite) decode(w *httptest.ResponseRecorder, v any) {
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), v), w.Body.String())
}

// requireProblem asserts an RFC 9457 response with the given status and title.
func (s *handlerSuite) requireProblem(w *httptest.ResponseRecorder, status int, title string) dto.ProblemDetails {
	s.Require().Equal(status, w.Code, w.Body.String())
	s.Equal(middleware.ProblemContentType, w.Header().Get("Content-Type"))
	var problem dto.ProblemDetails
	s.decode(w, &problem)
	s.Equal(status, problem.Status)
	s.Equal(title, problem.Title)
	s.NotEmpty(problem.RequestID)
	return problem
}

