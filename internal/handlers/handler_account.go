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

// accountHandler handles HTTP requests related to accounts.
type accountHandler struct {
	accountService portssvc.AccountSvcFacade
}

// newAccountHandler creates a new accountHandler.
func newAccountHandler(as portssvc.AccountSvcFacade) *accountHandler {
	return &accountHandler{accountService: as}
}

// registerAccountRoutes registers all account-related routes.
func registerAccountRoutes(rg *gin.RouterGroup, accountService portssvc.AccountSvcFacade) {
	h := newAccountHandler(accountService)

	accounts := rg.Group("/accounts")
	{
		accounts.POST("", h.createAccount)
		accounts.GET("/:id", h.getAccount)
		accounts.GET("/holder/:holderId", h.listAccountsByHolder)
		accounts.PATCH("/:id/freeze", h.freezeAccount)
		accounts.PATCH("/:id/unfreeze", h.unfreezeAccount)
		accounts.DELETE("/:id", h.closeAccount)
		accounts.POST("/:id/holders/personal", h.addHolder)
		accounts.DELETE("/:id/holders/personal/:holderId", h.removeHolder)
	}
}

// createAccount godoc
// @Summary Open an account
// @Description Opens an active account with its first holder
// @Tags accounts
// @Accept  json
// @Produce  json
// @Param   account body dto.CreateAccountRequest true "Account details"
// @Success 201 {object} dto.AccountResponse
// @Failure 400 {object} dto.ProblemDetails "Invalid input"
// @Failure 401 {object} dto.ProblemDetails "Unauthorized"
// @Failure 500 {object} dto.ProblemDetails "Failed to create account"
// @Security BearerAuth
// @Router /accounts [post]
func (h *accountHandler) createAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)
	var req dto.CreateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithBindError(c, err)
		return
	}

	acc, err := h.accountService.CreateAccount(c.Request.Context(), req)
	if err != nil {
		respondWithError(c, err, "create account")
		return
	}

	logger.Info("Account created successfully", slog.String("account_id", acc.AccountID))
	c.JSON(http.StatusCreated, dto.ToAccountResponse(acc))
}

// getAccount godoc
// @Summary Get an account
// @Description Retrieves an account with its holders and derived balance
// @Tags accounts
// @Produce  json
// @Param   id path string true "Account ID"
// @Success 200 {object} dto.AccountResponse
// @Failure 404 {object} dto.ProblemDetails "Account not found"
// @Failure 500 {object} dto.ProblemDetails "Failed to retrieve account"
// @Security BearerAuth
// @Router /accounts/{id} [get]
func (h *accountHandler) getAccount(c *gin.Context) {
	acc, err := h.accountService.GetAccountByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondWithError(c, err, "get account")
		return
	}
	c.JSON(http.StatusOK, dto.ToAccountResponse(acc))
}

// listAccountsByHolder godoc
// @Summary List a holder's accounts
// @Tags accounts
// @Produce  json
// @Param   holderId path string true "Holder ID"
// @Success 200 {object} dto.ListAccountsResponse
// @Security BearerAuth
// @Router /accounts/holder/{holderId} [get]
func (h *accountHandler) listAccountsByHolder(c *gin.Context) {
	accounts, err := h.accountService.ListAccountsByHolder(c.Request.Context(), c.Param("holderId"))
	if err != nil {
		respondWithError(c, err, "list accounts")
		return
	}
	c.JSON(http.StatusOK, dto.ToListAccountResponse(accounts))
}

func (h *accountHandler) changeStatus(c *gin.Context, action string, apply func(context.Context, string) (*domain.AccountWithBalance, error)) {
	acc, err := apply(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondWithError(c, err, action+" account")
		return
	}
	middleware.GetLoggerFromContext(c).Info("Account status changed",
		slog.String("account_id", acc.AccountID), slog.String("status", string(acc.Status)))
	c.JSON(http.StatusOK, dto.ToAccountResponse(acc))
}

// freezeAccount godoc
// @Summary Freeze an account
// @Tags accounts
// @Produce  json
// @Param   id path string true "Account ID"
// @Success 200 {object} dto.AccountResponse
// @Failure 404 {object} dto.ProblemDetails "Account not found"
// @Failure 422 {object} dto.ProblemDetails "Account is closed or already frozen"
// @Security BearerAuth
// @Router /accounts/{id}/freeze [patch]
func (h *accountHandler) freezeAccount(c *gin.Context) {
	h.changeStatus(c, "freeze", h.accountService.FreezeAccount)
}

// unfreezeAccount godoc
// @Summary Unfreeze an account
// @Tags accounts
// @Produce  json
// @Param   id path string true "Account ID"
// @Success 200 {object} dto.AccountResponse
// @Failure 404 {object} dto.ProblemDetails "Account not found"
// @Failure 422 {object} dto.ProblemDetails "Account is not frozen"
// @Security BearerAuth
// @Router /accounts/{id}/unfreeze [patch]
func (h *accountHandler) unfreezeAccount(c *gin.Context) {
	h.changeStatus(c, "unfreeze", h.accountService.UnfreezeAccount)
}

// closeAccount godoc
// @Summary Close an account
// @Description Closes the account; its ledger history is kept
// @Tags accounts
// @Param   id path string true "Account ID"
// @Success 204 "No Content"
// @Failure 404 {object} dto.ProblemDetails "Account not found"
// @Failure 422 {object} dto.ProblemDetails "Account is already closed"
// @Security BearerAuth
// @Router /accounts/{id} [delete]
func (h *accountHandler) closeAccount(c *gin.Context) {
	accountID := c.Param("id")
	if err := h.accountService.CloseAccount(c.Request.Context(), accountID); err != nil {
		respondWithError(c, err, "close account")
		return
	}
	middleware.GetLoggerFromContext(c).Info("Account closed", slog.String("account_id", accountID))
	c.Status(http.StatusNoContent)
}

// addHolder godoc
// @Summary Add a holder to an account
// @Tags accounts
// @Accept  json
// @Produce  json
// @Param   id path string true "Account ID"
// @Param   holder body dto.AddAccountHolderRequest true "Holder details"
// @Success 201 {object} dto.AccountResponse
// @Failure 400 {object} dto.ProblemDetails "Invalid input"
// @Failure 404 {object} dto.ProblemDetails "Account not found"
// @Failure 409 {object} dto.ProblemDetails "Holder already linked"
// @Failure 422 {object} dto.ProblemDetails "Account is closed"
// @Security BearerAuth
// @Router /accounts/{id}/holders/personal [post]
func (h *accountHandler) addHolder(c *gin.Context) {
	var req dto.AddAccountHolderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithBindError(c, err)
		return
	}

	acc, err := h.accountService.AddHolder(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		respondWithError(c, err, "add account holder")
		return
	}
	c.JSON(http.StatusCreated, dto.ToAccountResponse(acc))
}

// removeHolder godoc
// @Summary Remove a holder from an account
// @Tags accounts
// @Param   id path string true "Account ID"
// @Param   holderId path string true "Holder ID"
// @Success 204 "No Content"
// @Failure 404 {object} dto.ProblemDetails "Account or holder not found"
// @Failure 422 {object} dto.ProblemDetails "Cannot remove the last holder"
// @Security BearerAuth
// @Router /accounts/{id}/holders/personal/{holderId} [delete]
func (h *accountHandler) removeHolder(c *gin.Context) {
	if err := h.accountService.RemoveHolder(c.Request.Context(), c.Param("id"), c.Param("holderId")); err != nil {
		respondWithError(c, err, "remove account holder")
		return
	}
	c.Status(http.StatusNoContent)
}
