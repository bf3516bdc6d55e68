package v1

import (
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/CGECHAGA/week-8-assignment/internal/services"
)

type Handler interface {
	HandleRequestIDMiddleware(c *gin.Context)
	HandleHealthCheck(c *gin.Context)

	HandleCreateUser(c *gin.Context)
	HandleGetUsers(c *gin.Context)
	HandleGetUser(c *gin.Context)
	HandleUpdateUser(c *gin.Context)
	HandleDeleteUser(c *gin.Context)

	HandleCreateTask(c *gin.Context)
	HandleGetTasks(c *gin.Context)
	HandleGetTask(c *gin.Context)
	HandleUpdateTask(c *gin.Context)
	HandleDeleteTask(c *gin.Context)
}

type handlerImpl struct {
	logger zerolog.Logger
	users  services.UserService
	tasks  services.TaskService
	// Only the health check touches the pool directly.
	pgPool *pgxpool.Pool
}

func New(
	logger zerolog.Logger,
	pgPool *pgxpool.Pool,
	userService services.UserService,
	taskService services.TaskService,
) Handler {
	return &handlerImpl{
		logger: logger,
		users:  userService,
		tasks:  taskService,
		pgPool: pgPool,
	}
}
