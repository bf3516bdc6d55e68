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

type getTaskResponse struct {
	TaskID      int64     `json:"task_id"`
	UserID      int64     `json:"user_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func newGetTaskResponse(task *models.Task) getTaskResponse {
	return getTaskResponse{
		TaskID:      task.ID,
		UserID:      task.UserID,
		Title:       task.Title,
		Description: task.Description,
		Status:      task.Status,
		CreatedAt:   task.CreatedAt,
		UpdatedAt:   task.UpdatedAt,
	}
}

type createTaskRequest struct {
	Title       string  `json:"title" binding:"required,max=255"`
	Description *string `json:"description,omitempty"`
	Status      *string `json:"status,omitempty" binding:"omitempty,max=64"`
	UserID      int64   `json:"user_id" binding:"required,min=1"`
}

func (h *handlerImpl) HandleCreateTask(c *gin.Context) {
	logger := h.requestLogger(c)

	var req createTaskRequest
	err := c.ShouldBindJSON(&req)
	if err != nil {
		logger.Error().
			Err(err).
			Msg("failed to bind json")
		abort(c, newBadRequestError(errInvalidRequestBody.Error()))
		return
	}

	params := services.CreateTaskParams{
		Title:  req.Title,
		Status: models.StatusPending,
		UserID: req.UserID,
	}
	if req.Description != nil {
		params.Description = *req.Description
	}
	if req.Status != nil {
		params.Status = *req.Status
	}

	task, err := h.tasks.CreateTask(c, params)
	if err != nil {
		logger.Error().
			Err(err).
			Msg("failed to create task")
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

	logger.Info().Msg("created task")
	c.JSON(http.StatusOK, newGetTaskResponse(task))
}

func (h *handlerImpl) HandleGetTasks(c *gin.Context) {
	logger := h.requestLogger(c)

	var userID *int64
	if raw, exists := c.GetQuery("user_id"); exists {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			logger.Warn().
				Str("user_id", raw).
				Msg("invalid user id filter")
			abort(c, newBadRequestError("invalid user_id filter"))
			return
		}
		userID = &id
	}

	tasks, err := h.tasks.GetTasks(c, userID)
	if err != nil {
		logger.Error().
			Err(err).
			Msg("failed to get tasks")
		abort(c, newStatusTextError(http.StatusInternalServerError))
		return
	}

	response := make([]getTaskResponse, len(tasks))
	for i, task := range tasks {
		response[i] = newGetTaskResponse(task)
	}

	logger.Info().Msg("fetched tasks")
	c.JSON(http.StatusOK, response)
}

func (h *handlerImpl) HandleGetTask(c *gin.Context) {
	logger := h.requestLogger(c)

	taskID, ok := parseIDParam(c, "task_id")
	if !ok {
		logger.Warn().Msg("invalid task id")
		abort(c, newNotFoundError(services.ErrTaskNotFound.Error()))
		return
	}

	task, err := h.tasks.GetTaskByID(c, taskID)
	if err != nil {
		logger.Error().
			Err(err).
			Msg("failed to get task")
		if errors.Is(err, services.ErrTaskNotFound) {
			abort(c, newNotFoundError(services.ErrTaskNotFound.Error()))
			return
		}
		abort(c, newStatusTextError(http.StatusInternalServerError))
		return
	}

	logger.Info().Msg("fetched task")
	c.JSON(http.StatusOK, newGetTaskResponse(task))
}

func (h *handlerImpl) HandleUpdateTask(c *gin.Context) {
	logger := h.requestLogger(c)

	taskID, ok := parseIDParam(c, "task_id")
	if !ok {
		logger.Warn().Msg("invalid task id")
		abort(c, newNotFoundError(services.ErrTaskNotFound.Error()))
		return
	}

	var req createTaskRequest
	err := c.ShouldBindJSON(&req)
	if err != nil {
		logger.Error().
			Err(err).
			Msg("failed to bind json")
		abort(c, newBadRequestError(errInvalidRequestBody.Error()))
		return
	}

	params := services.UpdateTaskParams{
		ID:     taskID,
		Title:  req.Title,
		Status: models.StatusPending,
		UserID: req.UserID,
	}
	if req.Description != nil {
		params.Description = *req.Description
	}
	if req.Status != nil {
		params.Status = *req.Status
	}

	task, err := h.tasks.UpdateTask(c, params)
	if err != nil {
		logger.Error().
			Err(err).
			Msg("failed to update task")
		switch {
		case errors.Is(err, services.ErrTaskNotFound):
			abort(c, newNotFoundError(services.ErrTaskNotFound.Error()))
		case errors.Is(err, services.ErrUserNotFound):
			abort(c, newNotFoundError(services.ErrUserNotFound.Error()))
		case errors.Is(err, services.ErrConstraintViolation):
			abort(c, newBadRequestError(services.ErrConstraintViolation.Error()))
		default:
			abort(c, newStatusTextError(http.StatusInternalServerError))
		}
		return
	}

	logger.Info().Msg("updated task")
	c.JSON(http.StatusOK, newGetTaskResponse(task))
}

func (h *handlerImpl) HandleDeleteTask(c *gin.Context) {
	logger := h.requestLogger(c)

	taskID, ok := parseIDParam(c, "task_id")
	if !ok {
		logger.Warn().Msg("invalid task id")
		abort(c, newNotFoundError(services.ErrTaskNotFound.Error()))
		return
	}

	err := h.tasks.DeleteTask(c, taskID)
	if err != nil {
		logger.Error().
			Err(err).
			Msg("failed to delete task")
		if errors.Is(err, services.ErrTaskNotFound) {
			abort(c, newNotFoundError(services.ErrTaskNotFound.Error()))
			return
		}
		abort(c, newStatusTextError(http.StatusInternalServerError))
		return
	}

	logger.Info().Msg("deleted task")
	c.JSON(http.StatusOK, gin.H{"detail": "task deleted"})
}
