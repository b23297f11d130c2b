package handlers_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/SscSPs/banking_backoffice/internal/apperrors"
	"github.com/SscSPs/banking_backoffice/internal/core/access/userattrs"
	"github.com/SscSPs/banking_backoffice/internal/core/domain"
	"github.com/SscSPs/banking_backoffice/internal/dto"
	"github.com/SscSPs/banking_backoffice/internal/middleware"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type PrincipalHandlerTestSuite struct {
	handlerSuite
}

func newTestPrincipal() *domain.Principal {
	now := time.Now().UTC()
	return &domain.Principal{
		PrincipalID: "principal-1",
		Identities: []domain.Identity{
			{IdentityID: "id-1", PrincipalID: "principal-1", Provider: "zitadel", ExternalID: "u1", CreatedAt: now},
		},
		Roles: []domain.Role{{RoleID: "r-1", PrincipalID: "principal-1", Name: "teller", CreatedAt: now}},
		Attributes: []domain.Attribute{
			{AttributeID: "a-1", PrincipalID: "principal-1", Domain: "user", Key: "user_id", Value: "user-1", CreatedAt: now, LastUpdatedAt: now},
		},
		CreatedAt: now,
	}
}

func (s *PrincipalHandlerTestSuite) TestCreatePrincipal() {
	req := dto.IdentityRequest{Provider: "zitadel", ExternalID: "u1"}
	s.mockPrincipalSvc.On("CreatePrincipal", mock.Anything, req).Return(newTestPrincipal(), nil).Once()

	w := s.do(http.MethodPost, "/api/v1/principals", req)

	s.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
	var resp dto.PrincipalResponse
	s.decode(w, &resp)
	s.Equal("principal-1", resp.PrincipalID)
	s.Equal([]string{"teller"}, resp.Roles)
	s.Require().Len(resp.Attributes, 1)
	s.Equal("user-1", resp.Attributes[0].Value)
}

func (s *PrincipalHandlerTestSuite) TestCreatePrincipal_IdentityTaken() {
	req := dto.IdentityRequest{Provider: "zitadel", ExternalID: "u1"}
	s.mockPrincipalSvc.On("CreatePrincipal", mock.Anything, req).
		Return(nil, fmt.Errorf("%w: identity zitadel/u1 is already bound", apperrors.ErrConflict)).Once()

	s.requireProblem(s.do(http.MethodPost, "/api/v1/principals", req), http.StatusConflict, "Aggregate Conflict")
}

func (s *PrincipalHandlerTestSuite) TestListPrincipals_Defaults() {
	s.mockPrincipalSvc.On("ListPrincipals", mock.Anything, dto.ListPrincipalsParams{Limit: 50, Offset: 0}).
		Return([]domain.Principal{*newTestPrincipal()}, nil).Once()

	w := s.do(http.MethodGet, "/api/v1/principals", nil)

	s.Require().Equal(http.StatusOK, w.Code)
	var resp dto.ListPrincipalsResponse
	s.decode(w, &resp)
	s.Len(resp.Principals, 1)
}

func (s *PrincipalHandlerTestSuite) TestGetMe_ReturnsResolvedPrincipal() {
	s.callerPrincipal.Attributes[userattrs.Domain] = userattrs.Attributes{UserID: "user-7"}

	w := s.do(http.MethodGet, "/api/v1/principals/me", nil)

	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	var resp struct {
		PrincipalID string                     `json:"principalID"`
		Roles       []string                   `json:"roles"`
		Attributes  map[string]json.RawMessage `json:"attributes"`
	}
	s.decode(w, &resp)
	s.Equal("principal-admin", resp.PrincipalID)
	s.Equal([]string{"admin"}, resp.Roles)
	var attrs userattrs.Attributes
	s.Require().NoError(json.Unmarshal(resp.Attributes[userattrs.Domain], &attrs))
	s.Equal("user-7", attrs.UserID)
	s.False(attrs.Email.Update)
}

func (s *PrincipalHandlerTestSuite) TestGetMe_UnboundIdentity() {
	s.mockPrincipalSvc.On("ResolvePrincipal", mock.Anything, "okta", "newcomer").
		Return(nil, fmt.Errorf("%w: identity okta/newcomer", apperrors.ErrNotFound)).Once()
	token := s.generateTestToken("newcomer", func(c *middleware.Claims) { c.IdentityProvider = "okta" })

	w := s.doAs(token, http.MethodGet, "/api/v1/principals/me", nil)

	problem := s.requireProblem(w, http.StatusNotFound, "Aggregate Not Found")
	s.Contains(problem.Detail, "okta/newcomer")
}

func (s *PrincipalHandlerTestSuite) TestUnboundIdentityCanBootstrap() {
	s.mockPrincipalSvc.On("ResolvePrincipal", mock.Anything, testProvider, "first-admin").
		Return(nil, fmt.Errorf("%w: identity", apperrors.ErrNotFound)).Once()
	req := dto.IdentityRequest{Provider: testProvider, ExternalID: "first-admin"}
	s.mockPrincipalSvc.On("CreatePrincipal", mock.Anything, req).Return(newTestPrincipal(), nil).Once()

	w := s.doAs(s.generateTestToken("first-admin", nil), http.MethodPost, "/api/v1/principals", req)

	s.Equal(http.StatusCreated, w.Code, w.Body.String())
}

func (s *PrincipalHandlerTestSuite) TestIdentitiesAndRoles() {
	idReq := dto.IdentityRequest{Provider: "google", ExternalID: "g-1"}
	s.mockPrincipalSvc.On("AddIdentity", mock.Anything, "principal-1", idReq).Return(newTestPrincipal(), nil).Once()
	s.mockPrincipalSvc.On("RemoveIdentity", mock.Anything, "principal-1", "google", "g-1").Return(newTestPrincipal(), nil).Once()
	roleReq := dto.RoleRequest{Role: "auditor"}
	s.mockPrincipalSvc.On("AddRole", mock.Anything, "principal-1", roleReq).Return(newTestPrincipal(), nil).Once()
	s.mockPrincipalSvc.On("RemoveRole", mock.Anything, "principal-1", "auditor").
		Return(nil, fmt.Errorf("%w: role auditor", apperrors.ErrNotFound)).Once()

	s.Equal(http.StatusOK, s.do(http.MethodPost, "/api/v1/principals/principal-1/identities", idReq).Code)
	s.Equal(http.StatusNoContent, s.do(http.MethodDelete, "/api/v1/principals/principal-1/identities/google/g-1", nil).Code)
	s.Equal(http.StatusOK, s.do(http.MethodPost, "/api/v1/principals/principal-1/roles", roleReq).Code)
	s.requireProblem(s.do(http.MethodDelete, "/api/v1/principals/principal-1/roles/auditor", nil), http.StatusNotFound, "Aggregate Not Found")
}

func (s *PrincipalHandlerTestSuite) TestSetAttribute_AcceptsObjectValues() {
	s.mockPrincipalSvc.On("SetAttribute", mock.Anything, "principal-1",
		mock.MatchedBy(func(r dto.SetAttributeRequest) bool {
			return r.Domain == "user" && r.Key == "email" && r.RawValue() == `{"update":true,"delete":false}`
		}),
	).Return(newTestPrincipal(), nil).Once()

	body := `{"domain":"user","key":"email","value":{"update":true,"delete":false}}`
	w := s.do(http.MethodPut, "/api/v1/principals/principal-1/attributes", body)

	s.Equal(http.StatusOK, w.Code, w.Body.String())
}

func (s *PrincipalHandlerTestSuite) TestSetAttribute_RejectedByResolver() {
	s.mockPrincipalSvc.On("SetAttribute", mock.Anything, "principal-1", mock.Anything).
		Return(nil, fmt.Errorf("%w: unknown attribute key 'colour' in domain 'user'", apperrors.ErrValidation)).Once()

	body := `{"domain":"user","key":"colour","value":"blue"}`
	problem := s.requireProblem(s.do(http.MethodPut, "/api/v1/principals/principal-1/attributes", body),
		http.StatusBadRequest, "Domain Validation Failed")
	s.Contains(problem.Detail, "colour")
}

func (s *PrincipalHandlerTestSuite) TestRemoveAttributeAndDelete() {
	s.mockPrincipalSvc.On("RemoveAttribute", mock.Anything, "principal-1", "user", "user_id").Return(newTestPrincipal(), nil).Once()
	s.mockPrincipalSvc.On("DeletePrincipal", mock.Anything, "principal-1").Return(nil).Once()
	s.mockPrincipalSvc.On("GetPrincipal", mock.Anything, "principal-1").
		Return(nil, fmt.Errorf("%w: principal principal-1", apperrors.ErrNotFound)).Once()

	s.Equal(http.StatusNoContent, s.do(http.MethodDelete, "/api/v1/principals/principal-1/attributes/user/user_id", nil).Code)
	s.Equal(http.StatusNoContent, s.do(http.MethodDelete, "/api/v1/principals/principal-1", nil).Code)
	s.requireProblem(s.do(http.MethodGet, "/api/v1/principals/principal-1", nil), http.StatusNotFound, "Aggregate Not Found")
}

func TestPrincipalHandler(t *testing.T) {
	suite.Run(t, new(PrincipalHandlerTestSuite))
}
