package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/banking_backoffice/internal/core/ports/services"
	"github.com/SscSPs/banking_backoffice/internal/dto"
	"github.com/SscSPs/banking_backoffice/internal/middleware"

	"github.com/gin-gonic/gin"
)

// userHandler handles HTTP requests related to users.
type userHandler struct {
	userService portssvc.UserSvcFacade
}

// newUserHandler creates a new userHandler.
func newUserHandler(us portssvc.UserSvcFacade) *userHandler {
	return &userHandler{
		userService: us,
	}
}

// registerUserRoutes registers all user-related routes.
func registerUserRoutes(rg *gin.RouterGroup, userService portssvc.UserSvcFacade) {
	h := newUserHandler(userService)

	users := rg.Group("/users")
	{
		users.POST("", h.createUser)
		users.GET("", h.listUsers)
		users.GET("/:id", h.getUser)
		users.PUT("/:id", h.updateUser)
		users.DELETE("/:id", h.deleteUser)
		users.POST("/:id/addresses", h.addAddress)
		users.DELETE("/:id/addresses/:addressId", h.removeAddress)
		users.POST("/:id/emails", h.addEmail)
		users.DELETE("/:id/emails/:emailId", h.removeEmail)
	}
}

// createUser godoc
// @Summary Create a new user
// @Description Registers a user with a name, date of birth and primary email
// @Tags users
// @Accept  json
// @Produce  json
// @Param   user body dto.CreateUserRequest true "User details"
// @Success 201 {object} dto.UserResponse
// @Failure 400 {object} dto.ProblemDetails "Invalid input"
// @Failure 401 {object} dto.ProblemDetails "Unauthorized"
// @Failure 500 {object} dto.ProblemDetails "Failed to create user"
// @Security BearerAuth
// @Router /users [post]
func (h *userHandler) createUser(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)
	var req dto.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithBindError(c, err)
		return
	}

	createdUser, err := h.userService.CreateUser(c.Request.Context(), req)
	if err != nil {
		respondWithError(c, err, "create user")
		return
	}

	logger.Info("User created successfully", slog.String("new_user_id", createdUser.UserID))
	c.JSON(http.StatusCreated, dto.ToUserResponse(createdUser))
}

// getUser godoc
// @Summary Get a user by ID
// @Description Retrieves a user with emails and addresses
// @Tags users
// @Produce  json
// @Param   id path string true "User ID"
// @Success 200 {object} dto.UserResponse
// @Failure 401 {object} dto.ProblemDetails "Unauthorized"
// @Failure 404 {object} dto.ProblemDetails "User not found"
// @Failure 500 {object} dto.ProblemDetails "Failed to retrieve user"
// @Security BearerAuth
// @Router /users/{id} [get]
func (h *userHandler) getUser(c *gin.Context) {
	user, err := h.userService.GetUserByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondWithError(c, err, "get user")
		return
	}
	c.JSON(http.StatusOK, dto.ToUserResponse(user))
}

// listUsers godoc
// @Summary List users
// @Tags users
// @Produce  json
// @Param   limit query int false "Limit number of results" default(20)
// @Param   offset query int false "Offset for pagination" default(0)
// @Success 200 {object} dto.ListUsersResponse
// @Failure 400 {object} dto.ProblemDetails "Invalid query parameters"
// @Failure 401 {object} dto.ProblemDetails "Unauthorized"
// @Security BearerAuth
// @Router /users [get]
func (h *userHandler) listUsers(c *gin.Context) {
	var params dto.ListUsersParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondWithBindError(c, err)
		return
	}

	users, err := h.userService.ListUsers(c.Request.Context(), params.Limit, params.Offset)
	if err != nil {
		respondWithError(c, err, "list users")
		return
	}

	middleware.GetLoggerFromContext(c).Debug("Users listed", slog.Int("count", len(users)))
	c.JSON(http.StatusOK, dto.ToListUserResponse(users))
}

// updateUser godoc
// @Summary Rename a user
// @Tags users
// @Accept  json
// @Produce  json
// @Param   id path string true "User ID to update"
// @Param   user body dto.UpdateUserRequest true "User details to update"
// @Success 200 {object} dto.UserResponse
// @Failure 400 {object} dto.ProblemDetails "Invalid input"
// @Failure 404 {object} dto.ProblemDetails "User not found"
// @Security BearerAuth
// @Router /users/{id} [put]
func (h *userHandler) updateUser(c *gin.Context) {
	var req dto.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithBindError(c, err)
		return
	}

	user, err := h.userService.UpdateUser(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		respondWithError(c, err, "update user")
		return
	}
	c.JSON(http.StatusOK, dto.ToUserResponse(user))
}

// deleteUser godoc
// @Summary Delete a user
// @Description Removes a user with its emails and addresses
// @Tags users
// @Param   id path string true "User ID to delete"
// @Success 204 "No Content"
// @Failure 404 {object} dto.ProblemDetails "User not found"
// @Security BearerAuth
// @Router /users/{id} [delete]
func (h *userHandler) deleteUser(c *gin.Context) {
	userID := c.Param("id")
	if err := h.userService.DeleteUser(c.Request.Context(), userID); err != nil {
		respondWithError(c, err, "delete user")
		return
	}
	middleware.GetLoggerFromContext(c).Info("User deleted", slog.String("target_user_id", userID))
	c.Status(http.StatusNoContent)
}

// addAddress godoc
// @Summary Add an address to a user
// @Tags users
// @Accept  json
// @Produce  json
// @Param   id path string true "User ID"
// @Param   address body dto.AddAddressRequest true "Address"
// @Success 201 {object} dto.UserResponse
// @Failure 400 {object} dto.ProblemDetails "Invalid input"
// @Failure 404 {object} dto.ProblemDetails "User not found"
// @Security BearerAuth
// @Router /users/{id}/addresses [post]
func (h *userHandler) addAddress(c *gin.Context) {
	var req dto.AddAddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithBindError(c, err)
		return
	}

	user, err := h.userService.AddAddress(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		respondWithError(c, err, "add address")
		return
	}
	c.JSON(http.StatusCreated, dto.ToUserResponse(user))
}

// removeAddress godoc
// @Summary Remove an address from a user
// @Tags users
// @Param   id path string true "User ID"
// @Param   addressId path string true "Address ID"
// @Success 204 "No Content"
// @Failure 404 {object} dto.ProblemDetails "User not found"
// @Failure 410 {object} dto.ProblemDetails "Address already removed"
// @Security BearerAuth
// @Router /users/{id}/addresses/{addressId} [delete]
func (h *userHandler) removeAddress(c *gin.Context) {
	if _, err := h.userService.RemoveAddress(c.Request.Context(), c.Param("id"), c.Param("addressId")); err != nil {
		respondWithError(c, err, "remove address")
		return
	}
	c.Status(http.StatusNoContent)
}

// addEmail godoc
// @Summary Add an email to a user
// @Tags users
// @Accept  json
// @Produce  json
// @Param   id path string true "User ID"
// @Param   email body dto.AddEmailRequest true "Email"
// @Success 201 {object} dto.UserResponse
// @Failure 400 {object} dto.ProblemDetails "Invalid input"
// @Failure 404 {object} dto.ProblemDetails "User not found"
// @Failure 409 {object} dto.ProblemDetails "Email already present"
// @Security BearerAuth
// @Router /users/{id}/emails [post]
func (h *userHandler) addEmail(c *gin.Context) {
	var req dto.AddEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithBindError(c, err)
		return
	}

	user, err := h.userService.AddEmail(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		respondWithError(c, err, "add email")
		return
	}
	c.JSON(http.StatusCreated, dto.ToUserResponse(user))
}

// removeEmail godoc
// @Summary Remove an email from a user
// @Tags users
// @Param   id path string true "User ID"
// @Param   emailId path string true "Email ID"
// @Success 204 "No Content"
// @Failure 404 {object} dto.ProblemDetails "User not found"
// @Failure 410 {object} dto.ProblemDetails "Email already removed"
// @Security BearerAuth
// @Router /users/{id}/emails/{emailId} [delete]
func (h *userHandler) removeEmail(c *gin.Context) {
	if _, err := h.userService.RemoveEmail(c.Request.Context(), c.Param("id"), c.Param("emailId")); err != nil {
		respondWithError(c, err, "remove email")
		return
	}
	c.Status(http.StatusNoContent)
}
