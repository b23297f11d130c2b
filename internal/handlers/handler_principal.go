package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/SscSPs/banking_backoffice/internal/core/domain"
	portssvc "github.com/SscSPs/banking_backoffice/internal/core/ports/services"
	"github.com/SscSPs/banking_backoffice/internal/dto"
	"github.com/SscSPs/banking_backoffice/internal/middleware"
	"github.com/gin-gonic/gin"
)

// principalHandler handles HTTP requests for principals, their identities, roles and attributes.
type principalHandler struct {
	principalService portssvc.PrincipalSvcFacade
}

func newPrincipalHandler(ps portssvc.PrincipalSvcFacade) *principalHandler {
	return &principalHandler{principalService: ps}
}

// registerPrincipalRoutes registers all principal-related routes.
func registerPrincipalRoutes(rg *gin.RouterGroup, principalService portssvc.PrincipalSvcFacade) {
	h := newPrincipalHandler(principalService)

	principals := rg.Group("/principals")
	{
		principals.POST("", h.createPrincipal)
		principals.GET("", h.listPrincipals)
		principals.GET("/me", h.getMe)
		principals.GET("/:id", h.getPrincipal)
		principals.DELETE("/:id", h.deletePrincipal)
		principals.POST("/:id/identities", h.addIdentity)
		principals.DELETE("/:id/identities/:provider/:externalId", h.removeIdentity)
		principals.POST("/:id/roles", h.addRole)
		principals.DELETE("/:id/roles/:role", h.removeRole)
		principals.PUT("/:id/attributes", h.setAttribute)
		principals.DELETE("/:id/attributes/:domain/:key", h.removeAttribute)
	}
}

// createPrincipal godoc
// @Summary Create a principal
// @Description Creates a principal bound to an initial external identity
// @Tags principals
// @Accept  json
// @Produce  json
// @Param   identity body dto.IdentityRequest true "Initial identity"
// @Success 201 {object} dto.PrincipalResponse
// @Failure 400 {object} dto.ProblemDetails "Invalid input"
// @Failure 409 {object} dto.ProblemDetails "Identity already bound"
// @Security BearerAuth
// @Router /principals [post]
func (h *principalHandler) createPrincipal(c *gin.Context) {
	var req dto.IdentityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithBindError(c, err)
		return
	}

	p, err := h.principalService.CreatePrincipal(c.Request.Context(), req)
	if err != nil {
		respondWithError(c, err, "create principal")
		return
	}

	middleware.GetLoggerFromContext(c).Info("Principal created",
		slog.String("new_principal_id", p.PrincipalID), slog.String("identity_provider", req.Provider))
	c.JSON(http.StatusCreated, dto.ToPrincipalResponse(p))
}

// listPrincipals godoc
// @Summary List principals
// @Tags principals
// @Produce  json
// @Param   limit query int false "Limit number of results" default(50)
// @Param   offset query int false "Offset for pagination" default(0)
// @Success 200 {object} dto.ListPrincipalsResponse
// @Failure 400 {object} dto.ProblemDetails "Invalid query parameters"
// @Security BearerAuth
// @Router /principals [get]
func (h *principalHandler) listPrincipals(c *gin.Context) {
	var params dto.ListPrincipalsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondWithBindError(c, err)
		return
	}

	principals, err := h.principalService.ListPrincipals(c.Request.Context(), params)
	if err != nil {
		respondWithError(c, err, "list principals")
		return
	}
	c.JSON(http.StatusOK, dto.ToListPrincipalsResponse(principals))
}

// getMe godoc
// @Summary Get the caller's resolved principal
// @Description Returns the principal bound to the bearer token's identity with its typed attributes
// @Tags principals
// @Produce  json
// @Success 200 {object} domain.ResolvedPrincipal
// @Failure 401 {object} dto.ProblemDetails "Unauthorized"
// @Failure 404 {object} dto.ProblemDetails "Identity is not bound to a principal"
// @Security BearerAuth
// @Router /principals/me [get]
func (h *principalHandler) getMe(c *gin.Context) {
	rp, ok := middleware.GetPrincipalFromContext(c)
	if !ok {
		identity, _ := middleware.GetIdentityFromContext(c)
		middleware.AbortWithProblem(c, http.StatusNotFound,
			"identity "+identity.Provider+"/"+identity.ExternalID+" is not bound to a principal")
		return
	}
	c.JSON(http.StatusOK, rp)
}

// getPrincipal godoc
// @Summary Get a principal
// @Tags principals
// @Produce  json
// @Param   id path string true "Principal ID"
// @Success 200 {object} dto.PrincipalResponse
// @Failure 404 {object} dto.ProblemDetails "Principal not found"
// @Security BearerAuth
// @Router /principals/{id} [get]
func (h *principalHandler) getPrincipal(c *gin.Context) {
	p, err := h.principalService.GetPrincipal(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondWithError(c, err, "get principal")
		return
	}
	c.JSON(http.StatusOK, dto.ToPrincipalResponse(p))
}

// deletePrincipal godoc
// @Summary Delete a principal
// @Description Deletes a principal and releases its identities
// @Tags principals
// @Param   id path string true "Principal ID"
// @Success 204 "No Content"
// @Failure 404 {object} dto.ProblemDetails "Principal not found"
// @Security BearerAuth
// @Router /principals/{id} [delete]
func (h *principalHandler) deletePrincipal(c *gin.Context) {
	principalID := c.Param("id")
	if err := h.principalService.DeletePrincipal(c.Request.Context(), principalID); err != nil {
		respondWithError(c, err, "delete principal")
		return
	}
	middleware.GetLoggerFromContext(c).Info("Principal deleted", slog.String("target_principal_id", principalID))
	c.Status(http.StatusNoContent)
}

// bindAndUpdate binds req and applies update to the principal named in the path.
func bindAndUpdate[R any](c *gin.Context, action string, update func(context.Context, string, R) (*domain.Principal, error)) {
	var req R
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithBindError(c, err)
		return
	}
	p, err := update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		respondWithError(c, err, action)
		return
	}
	c.JSON(http.StatusOK, dto.ToPrincipalResponse(p))
}

// addIdentity godoc
// @Summary Bind another identity to a principal
// @Tags principals
// @Accept  json
// @Produce  json
// @Param   id path string true "Principal ID"
// @Param   identity body dto.IdentityRequest true "Identity"
// @Success 200 {object} dto.PrincipalResponse
// @Failure 404 {object} dto.ProblemDetails "Principal not found"
// @Failure 409 {object} dto.ProblemDetails "Identity already bound"
// @Security BearerAuth
// @Router /principals/{id}/identities [post]
func (h *principalHandler) addIdentity(c *gin.Context) {
	bindAndUpdate(c, "add identity", h.principalService.AddIdentity)
}

// removeIdentity godoc
// @Summary Unbind an identity from a principal
// @Tags principals
// @Param   id path string true "Principal ID"
// @Param   provider path string true "Identity provider"
// @Param   externalId path string true "Subject at the provider"
// @Success 204 "No Content"
// @Failure 404 {object} dto.ProblemDetails "Principal or identity not found"
// @Security BearerAuth
// @Router /principals/{id}/identities/{provider}/{externalId} [delete]
func (h *principalHandler) removeIdentity(c *gin.Context) {
	_, err := h.principalService.RemoveIdentity(c.Request.Context(), c.Param("id"), c.Param("provider"), c.Param("externalId"))
	if err != nil {
		respondWithError(c, err, "remove identity")
		return
	}
	c.Status(http.StatusNoContent)
}

// addRole godoc
// @Summary Grant a role
// @Tags principals
// @Accept  json
// @Produce  json
// @Param   id path string true "Principal ID"
// @Param   role body dto.RoleRequest true "Role"
// @Success 200 {object} dto.PrincipalResponse
// @Failure 404 {object} dto.ProblemDetails "Principal not found"
// @Failure 409 {object} dto.ProblemDetails "Role already granted"
// @Security BearerAuth
// @Router /principals/{id}/roles [post]
func (h *principalHandler) addRole(c *gin.Context) {
	bindAndUpdate(c, "add role", h.principalService.AddRole)
}

// removeRole godoc
// @Summary Revoke a role
// @Tags principals
// @Param   id path string true "Principal ID"
// @Param   role path string true "Role name"
// @Success 204 "No Content"
// @Failure 404 {object} dto.ProblemDetails "Principal or role not found"
// @Security BearerAuth
// @Router /principals/{id}/roles/{role} [delete]
func (h *principalHandler) removeRole(c *gin.Context) {
	if _, err := h.principalService.RemoveRole(c.Request.Context(), c.Param("id"), c.Param("role")); err != nil {
		respondWithError(c, err, "remove role")
		return
	}
	c.Status(http.StatusNoContent)
}

// setAttribute godoc
// @Summary Set an attribute
// @Description Validates the value with the domain's resolver and stores it, replacing any previous value
// @Tags principals
// @Accept  json
// @Produce  json
// @Param   id path string true "Principal ID"
// @Param   attribute body dto.SetAttributeRequest true "Attribute"
// @Success 200 {object} dto.PrincipalResponse
// @Failure 400 {object} dto.ProblemDetails "Value rejected by the domain resolver"
// @Failure 404 {object} dto.ProblemDetails "Principal or domain not found"
// @Security BearerAuth
// @Router /principals/{id}/attributes [put]
func (h *principalHandler) setAttribute(c *gin.Context) {
	bindAndUpdate(c, "set attribute", h.principalService.SetAttribute)
}

// removeAttribute godoc
// @Summary Remove an attribute
// @Tags principals
// @Param   id path string true "Principal ID"
// @Param   domain path string true "Attribute domain"
// @Param   key path string true "Attribute key"
// @Success 204 "No Content"
// @Failure 404 {object} dto.ProblemDetails "Principal or attribute not found"
// @Security BearerAuth
// @Router /principals/{id}/attributes/{domain}/{key} [delete]
func (h *principalHandler) removeAttribute(c *gin.Context) {
	_, err := h.principalService.RemoveAttribute(c.Request.Context(), c.Param("id"), c.Param("domain"), c.Param("key"))
	if err != nil {
		respondWithError(c, err, "remove attribute")
		return
	}
	c.Status(http.StatusNoContent)
}
