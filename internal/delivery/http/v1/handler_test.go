package v1

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/CGECHAGA/week-8-assignment/internal/models"
	"github.com/CGECHAGA/week-8-assignment/internal/services"
)

type stubUserService struct {
	createFn func(ctx context.Context, params services.CreateUserParams) (*models.User, error)
	listFn   func(ctx context.Context) ([]*models.User, error)
	getFn    func(ctx context.Context, userID int64) (*models.User, error)
	updateFn func(ctx context.Context, params services.UpdateUserParams) (*models.User, error)
	deleteFn func(ctx context.Context, userID int64) error
}

func (s *stubUserService) CreateUser(ctx context.Context, params services.CreateUserParams) (*models.User, error) {
	return s.createFn(ctx, params)
}

func (s *stubUserService) GetUsers(ctx context.Context) ([]*models.User, error) {
	return s.listFn(ctx)
}

func (s *stubUserService) GetUserByID(ctx context.Context, userID int64) (*models.User, error) {
	return s.getFn(ctx, userID)
}

func (s *stubUserService) UpdateUser(ctx context.Context, params services.UpdateUserParams) (*models.User, error) {
	return s.updateFn(ctx, params)
}

func (s *stubUserService) DeleteUser(ctx context.Context, userID int64) error {
	return s.deleteFn(ctx, userID)
}

type stubTaskService struct {
	createFn func(ctx context.Context, params services.CreateTaskParams) (*models.Task, error)
	listFn   func(ctx context.Context, userID *int64) ([]*models.Task, error)
	getFn    func(ctx context.Context, taskID int64) (*models.Task, error)
	updateFn func(ctx context.Context, params services.UpdateTaskParams) (*models.Task, error)
	deleteFn func(ctx context.Context, taskID int64) error
}

func (s *stubTaskService) CreateTask(ctx context.Context, params services.CreateTaskParams) (*models.Task, error) {
	return s.createFn(ctx, params)
}

func (s *stubTaskService) GetTasks(ctx context.Context, userID *int64) ([]*models.Task, error) {
	return s.listFn(ctx, userID)
}

func (s *stubTaskService) GetTaskByID(ctx context.Context, taskID int64) (*models.Task, error) {
	return s.getFn(ctx, taskID)
}

func (s *stubTaskService) UpdateTask(ctx context.Context, params services.UpdateTaskParams) (*models.Task, error) {
	return s.updateFn(ctx, params)
}

func (s *stubTaskService) DeleteTask(ctx context.Context, taskID int64) error {
	return s.deleteFn(ctx, taskID)
}

func newTestRouter(users services.UserService, tasks services.TaskService) *gin.Engine {
	gin.SetMode(gin.TestMode)

	handler := New(zerolog.Nop(), nil, users, tasks)

	router := gin.New()
	router.Use(handler.HandleRequestIDMiddleware)

	usersRouter := router.Group("/users")
	usersRouter.POST("/", handler.HandleCreateUser)
	usersRouter.GET("/", handler.HandleGetUsers)
	usersRouter.GET("/:user_id", handler.HandleGetUser)
	usersRouter.PUT("/:user_id", handler.HandleUpdateUser)
	usersRouter.DELETE("/:user_id", handler.HandleDeleteUser)

	tasksRouter := router.Group("/tasks")
	tasksRouter.POST("/", handler.HandleCreateTask)
	tasksRouter.GET("/", handler.HandleGetTasks)
	tasksRouter.GET("/:task_id", handler.HandleGetTask)
	tasksRouter.PUT("/:task_id", handler.HandleUpdateTask)
	tasksRouter.DELETE("/:task_id", handler.HandleDeleteTask)

	return router
}

func doRequest(router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestHandleRequestIDMiddleware(t *testing.T) {
	users := &stubUserService{
		listFn: func(ctx context.Context) ([]*models.User, error) {
			return nil, nil
		},
	}
	router := newTestRouter(users, &stubTaskService{})

	w := doRequest(router, http.MethodGet, "/users/", "")
	assert.NotEmpty(t, w.Header().Get("X-Request-Id"))
}
