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

// transactionHandler handles HTTP requests for the ledger.
type transactionHandler struct {
	transactionService portssvc.TransactionSvcFacade
}

func newTransactionHandler(ts portssvc.TransactionSvcFacade) *transactionHandler {
	return &transactionHandler{transactionService: ts}
}

// registerTransactionRoutes registers all ledger routes.
func registerTransactionRoutes(rg *gin.RouterGroup, transactionService portssvc.TransactionSvcFacade) {
	h := newTransactionHandler(transactionService)

	txns := rg.Group("/transactions")
	{
		txns.POST("/deposit", h.createDeposit)
		txns.POST("/withdrawal", h.createWithdrawal)
		txns.POST("/transfer", h.createTransfer)
		txns.POST("/fee", h.createFee)
		txns.POST("/interest", h.createInterest)
		txns.GET("/:id", h.getTransaction)
		txns.GET("/account/:participantId", h.listTransactionsByParticipant)
		txns.GET("/account/:participantId/balance", h.getBalance)
		txns.PATCH("/:id/complete", h.completeTransaction)
		txns.PATCH("/:id/fail", h.failTransaction)
		txns.PATCH("/:id/reverse", h.reverseTransaction)
	}
}

// recordTransaction binds req, calls create and renders the created transaction.
func recordTransaction[R any](c *gin.Context, kind string, create func(context.Context, R) (*domain.Transaction, error)) {
	var req R
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithBindError(c, err)
		return
	}

	txn, err := create(c.Request.Context(), req)
	if err != nil {
		respondWithError(c, err, "record "+kind)
		return
	}

	middleware.GetLoggerFromContext(c).Info("Transaction recorded",
		slog.String("transaction_id", txn.TransactionID),
		slog.String("type", string(txn.Type)),
		slog.String("reference_number", txn.ReferenceNumber))
	c.JSON(http.StatusCreated, dto.ToTransactionResponse(txn))
}

// createDeposit godoc
// @Summary Record a deposit
// @Description Increases an account balance with money from outside the ledger
// @Tags transactions
// @Accept  json
// @Produce  json
// @Param   deposit body dto.DepositRequest true "Deposit details"
// @Success 201 {object} dto.TransactionResponse
// @Failure 400 {object} dto.ProblemDetails "Invalid input"
// @Failure 401 {object} dto.ProblemDetails "Unauthorized"
// @Failure 500 {object} dto.ProblemDetails "Failed to record deposit"
// @Security BearerAuth
// @Router /transactions/deposit [post]
func (h *transactionHandler) createDeposit(c *gin.Context) {
	recordTransaction(c, "deposit", h.transactionService.CreateDeposit)
}

// createWithdrawal godoc
// @Summary Record a withdrawal
// @Description Decreases an account balance by money leaving the ledger
// @Tags transactions
// @Accept  json
// @Produce  json
// @Param   withdrawal body dto.WithdrawalRequest true "Withdrawal details"
// @Success 201 {object} dto.TransactionResponse
// @Failure 400 {object} dto.ProblemDetails "Invalid input"
// @Failure 422 {object} dto.ProblemDetails "Insufficient funds (strict mode)"
// @Failure 503 {object} dto.ProblemDetails "Participant busy"
// @Security BearerAuth
// @Router /transactions/withdrawal [post]
func (h *transactionHandler) createWithdrawal(c *gin.Context) {
	recordTransaction(c, "withdrawal", h.transactionService.CreateWithdrawal)
}

// createTransfer godoc
// @Summary Record a transfer
// @Description Decreases the source balance and increases the destination balance by the same amount
// @Tags transactions
// @Accept  json
// @Produce  json
// @Param   transfer body dto.TransferRequest true "Transfer details"
// @Success 201 {object} dto.TransactionResponse
// @Failure 400 {object} dto.ProblemDetails "Invalid input or same source and destination"
// @Failure 422 {object} dto.ProblemDetails "Insufficient funds (strict mode)"
// @Failure 503 {object} dto.ProblemDetails "Participant busy"
// @Security BearerAuth
// @Router /transactions/transfer [post]
func (h *transactionHandler) createTransfer(c *gin.Context) {
	recordTransaction(c, "transfer", h.transactionService.CreateTransfer)
}

// createFee godoc
// @Summary Charge a fee
// @Description Decreases an account balance by a fee
// @Tags transactions
// @Accept  json
// @Produce  json
// @Param   fee body dto.ChargeRequest true "Fee details"
// @Success 201 {object} dto.TransactionResponse
// @Failure 400 {object} dto.ProblemDetails "Invalid input"
// @Failure 422 {object} dto.ProblemDetails "Insufficient funds (strict mode)"
// @Security BearerAuth
// @Router /transactions/fee [post]
func (h *transactionHandler) createFee(c *gin.Context) {
	recordTransaction(c, "fee", h.transactionService.CreateFee)
}

// createInterest godoc
// @Summary Pay interest
// @Description Increases an account balance by interest
// @Tags transactions
// @Accept  json
// @Produce  json
// @Param   interest body dto.ChargeRequest true "Interest details"
// @Success 201 {object} dto.TransactionResponse
// @Failure 400 {object} dto.ProblemDetails "Invalid input"
// @Security BearerAuth
// @Router /transactions/interest [post]
func (h *transactionHandler) createInterest(c *gin.Context) {
	recordTransaction(c, "interest", h.transactionService.CreateInterest)
}

// getTransaction godoc
// @Summary Get a transaction
// @Description Retrieves a transaction with its journal entries
// @Tags transactions
// @Produce  json
// @Param   id path string true "Transaction ID"
// @Success 200 {object} dto.TransactionResponse
// @Failure 404 {object} dto.ProblemDetails "Transaction not found"
// @Security BearerAuth
// @Router /transactions/{id} [get]
func (h *transactionHandler) getTransaction(c *gin.Context) {
	txn, err := h.transactionService.GetTransaction(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondWithError(c, err, "get transaction")
		return
	}
	c.JSON(http.StatusOK, dto.ToTransactionResponse(txn))
}

// listTransactionsByParticipant godoc
// @Summary List a participant's transactions
// @Description Lists transactions touching an account, newest first, with token pagination
// @Tags transactions
// @Produce  json
// @Param   participantId path string true "Participant (account) ID"
// @Param   limit query int false "Page size" default(20)
// @Param   nextToken query string false "Token returned by the previous page"
// @Success 200 {object} dto.ListTransactionsResponse
// @Failure 400 {object} dto.ProblemDetails "Invalid query parameters"
// @Security BearerAuth
// @Router /transactions/account/{participantId} [get]
func (h *transactionHandler) listTransactionsByParticipant(c *gin.Context) {
	var params dto.ListTransactionsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondWithBindError(c, err)
		return
	}

	participantID := c.Param("participantId")
	txns, nextToken, err := h.transactionService.ListTransactionsByParticipant(c.Request.Context(), participantID, params)
	if err != nil {
		respondWithError(c, err, "list transactions")
		return
	}
	c.JSON(http.StatusOK, dto.ToListTransactionsResponse(txns, nextToken))
}

// getBalance godoc
// @Summary Get a participant's balance
// @Description Derives the balance from the journal in minor units
// @Tags transactions
// @Produce  json
// @Param   participantId path string true "Participant (account) ID"
// @Success 200 {object} dto.BalanceResponse
// @Failure 500 {object} dto.ProblemDetails "Balance overflow or storage failure"
// @Security BearerAuth
// @Router /transactions/account/{participantId}/balance [get]
func (h *transactionHandler) getBalance(c *gin.Context) {
	participantID := c.Param("participantId")
	balance, err := h.transactionService.GetBalance(c.Request.Context(), participantID)
	if err != nil {
		respondWithError(c, err, "get balance")
		return
	}
	c.JSON(http.StatusOK, dto.BalanceResponse{ParticipantID: participantID, Balance: balance})
}

func (h *transactionHandler) transition(c *gin.Context, action string, apply func(context.Context, string) (*domain.Transaction, error)) {
	txn, err := apply(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondWithError(c, err, action+" transaction")
		return
	}
	middleware.GetLoggerFromContext(c).Info("Transaction status changed",
		slog.String("transaction_id", txn.TransactionID), slog.String("status", string(txn.Status)))
	c.JSON(http.StatusOK, dto.ToTransactionResponse(txn))
}

// completeTransaction godoc
// @Summary Complete a transaction
// @Tags transactions
// @Produce  json
// @Param   id path string true "Transaction ID"
// @Success 200 {object} dto.TransactionResponse
// @Failure 404 {object} dto.ProblemDetails "Transaction not found"
// @Failure 422 {object} dto.ProblemDetails "Transaction is not pending"
// @Security BearerAuth
// @Router /transactions/{id}/complete [patch]
func (h *transactionHandler) completeTransaction(c *gin.Context) {
	h.transition(c, "complete", h.transactionService.CompleteTransaction)
}

// failTransaction godoc
// @Summary Fail a transaction
// @Tags transactions
// @Produce  json
// @Param   id path string true "Transaction ID"
// @Success 200 {object} dto.TransactionResponse
// @Failure 404 {object} dto.ProblemDetails "Transaction not found"
// @Failure 422 {object} dto.ProblemDetails "Transaction is not pending"
// @Security BearerAuth
// @Router /transactions/{id}/fail [patch]
func (h *transactionHandler) failTransaction(c *gin.Context) {
	h.transition(c, "fail", h.transactionService.FailTransaction)
}

// reverseTransaction godoc
// @Summary Reverse a transaction
// @Description Marks a completed transaction reversed. No compensating entries are posted.
// @Tags transactions
// @Produce  json
// @Param   id path string true "Transaction ID"
// @Success 200 {object} dto.TransactionResponse
// @Failure 404 {object} dto.ProblemDetails "Transaction not found"
// @Failure 422 {object} dto.ProblemDetails "Transaction is not completed"
// @Security BearerAuth
// @Router /transactions/{id}/reverse [patch]
func (h *transactionHandler) reverseTransaction(c *gin.Context) {
	h.transition(c, "reverse", h.transactionService.ReverseTransaction)
}
