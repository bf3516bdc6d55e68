package v1

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/CGECHAGA/week-8-assignment/internal/models"
	"github.com/CGECHAGA/week-8-assignment/internal/services"
)

type getUserResponse struct {
	UserID    int64     `json:"user_id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

func newGetUserResponse(user *models.User) getUserResponse {
	return getUserResponse{
		UserID:    user.ID,
		Username:  user.Username,
		Email:     user.Email,
		CreatedAt: user.CreatedAt,
	}
}

// parseIDParam reads a path parameter as a positive integer id.
// A malformed id names no record, so callers respond with 404.
func parseIDParam(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id < 1 {
		return 0, false
	}
	return id, true
}

type createUserRequest struct {
	Username string `json:"username" binding:"required,max=255"`
	Email    string `json:"email" binding:"required,email,max=255"`
}

func (h *handlerImpl) HandleCreateUser(c *gin.Context) {
	logger := h.requestLogger(c)

	var req createUserRequest
	err := c.ShouldBindJSON(&req)
	if err != nil {
		logger.Error().
			Err(err).
			Msg("failed to bind json")
		abort(c, newBadRequestError(errInvalidRequestBody.Error()))
		return
	}

	user, err := h.users.CreateUser(c, services.CreateUserParams{
		Username: req.Username,
		Email:    req.Email,
	})
	if err != nil {
		logger.Error().
			Err(err).
			Msg("failed to create user")
		if errors.Is(err, services.ErrConstraintViolation) {
			abort(c, newBadRequestError(services.ErrConstraintViolation.Error()))
			return
		}
		abort(c, newStatusTextError(http.StatusInternalServerError))
		return
	}

	logger.Info().Msg("created user")
	c.JSON(http.StatusOK, newGetUserResponse(user))
}

func (h *handlerImpl) HandleGetUsers(c *gin.Context) {
	logger := h.requestLogger(c)

	users, err := h.users.GetUsers(c)
	if err != nil {
		logger.Error().
			Err(err).
			Msg("failed to get users")
		abort(c, newStatusTextError(http.StatusInternalServerError))
		return
	}

	response := make([]getUserResponse, len(users))
	for i, user := range users {
		response[i] = newGetUserResponse(user)
	}

	logger.Info().Msg("fetched users")
	c.JSON(http.StatusOK, response)
}

func (h *handlerImpl) HandleGetUser(c *gin.Context) {
	logger := h.requestLogger(c)

	userID, ok := parseIDParam(c, "user_id")
	if !ok {
		logger.Warn().Msg("invalid user id")
		abort(c, newNotFoundError(services.ErrUserNotFound.Error()))
		return
	}

	user, err := h.users.GetUserByID(c, userID)
	if err != nil {
		logger.Error().
			Err(err).
			Msg("failed to get user")
		if errors.Is(err, services.ErrUserNotFound) {
			abort(c, newNotFoundError(services.ErrUserNotFound.Error()))
			return
		}
		abort(c, newStatusTextError(http.StatusInternalServerError))
		return
	}

	logger.Info().Msg("fetched user")
	c.JSON(http.StatusOK, newGetUserResponse(user))
}

func (h *handlerImpl) HandleUpdateUser(c *gin.Context) {
	logger := h.requestLogger(c)

	userID, ok := parseIDParam(c, "user_id")
	if !ok {
		logger.Warn().Msg("invalid user id")
		abort(c, newNotFoundError(services.ErrUserNotFound.Error()))
		return
	}

	var req createUserRequest
	err := c.ShouldBindJSON(&req)
	if err != nil {
		logger.Error().
			Err(err).
			Msg("failed to bind json")
		abort(c, newBadRequestError(errInvalidRequestBody.Error()))
		return
	}

	user, err := h.users.UpdateUser(c, services.UpdateUserParams{
		ID:       userID,
		Username: req.Username,
		Email:    req.Email,
	})
	if err != nil {
		logger.Error().
			Err(err).
			Msg("failed to update user")
		switch {
		case errors.Is(err, services.ErrUserNotFound):
			abort(c, newNotFoundError(services.ErrUserNotFound.Error()))
		case errors.Is(err, services.ErrConstraintViolation):
			abort(c, newBadRequestError(services.ErrConstraintViolation.Error()))
		default:
			abort(c, newStatusTextError(http.StatusInternalServerError))
		}
		return
	}

	logger.Info().Msg("updated user")
	c.JSON(http.StatusOK, newGetUserResponse(user))
}

func (h *handlerImpl) HandleDeleteUser(c *gin.Context) {
	logger := h.requestLogger(c)

	userID, ok := parseIDParam(c, "user_id")
	if !ok {
		logger.Warn().Msg("invalid user id")
		abort(c, newNotFoundError(services.ErrUserNotFound.Error()))
		return
	}

	err := h.users.DeleteUser(c, userID)
	if err != nil {
		logger.Error().
			Err(err).
			Msg("failed to delete user")
		if errors.Is(err, services.ErrUserNotFound) {
			abort(c, newNotFoundError(services.ErrUserNotFound.Error()))
			return
		}
		abort(c, newStatusTextError(http.StatusInternalServerError))
		return
	}

	logger.Info().Msg("deleted user")
	c.JSON(http.StatusOK, gin.H{"detail": "user deleted"})
}
