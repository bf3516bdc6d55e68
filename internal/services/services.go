package services

import (
	"context"
	"errors"

	"github.com/CGECHAGA/week-8-assignment/internal/models"
)

var (
	ErrUserNotFound        = errors.New("user not found")
	ErrTaskNotFound        = errors.New("task not found")
	ErrConstraintViolation = errors.New("constraint violation")
)

type UserService interface {
	// CreateUser persists a new user and returns it with
	// the generated identity and creation timestamp.
	//
	// It returns ErrConstraintViolation if the storage
	// rejects the row.
	CreateUser(ctx context.Context, params CreateUserParams) (*models.User, error)

	// GetUsers returns all users in insertion order.
	GetUsers(ctx context.Context) ([]*models.User, error)

	// GetUserByID returns ErrUserNotFound if no user has the given id.
	GetUserByID(ctx context.Context, userID int64) (*models.User, error)

	// UpdateUser replaces all mutable fields of the user in place.
	//
	// It returns ErrUserNotFound if no user has the given id or
	// ErrConstraintViolation if the storage rejects the new values.
	UpdateUser(ctx context.Context, params UpdateUserParams) (*models.User, error)

	// DeleteUser removes the user by id and returns ErrUserNotFound
	// if nothing was deleted. Tasks referencing the user are left
	// in place.
	DeleteUser(ctx context.Context, userID int64) error
}

type TaskService interface {
	// CreateTask persists a new task owned by an existing user.
	//
	// It returns ErrUserNotFound if the referenced user doesn't
	// exist or ErrConstraintViolation if the storage rejects the row.
	CreateTask(ctx context.Context, params CreateTaskParams) (*models.Task, error)

	// GetTasks returns all tasks in insertion order, restricted to
	// one owner when userID is non-nil.
	GetTasks(ctx context.Context, userID *int64) ([]*models.Task, error)

	// GetTaskByID returns ErrTaskNotFound if no task has the given id.
	GetTaskByID(ctx context.Context, taskID int64) (*models.Task, error)

	// UpdateTask replaces all mutable fields of the task in place
	// and refreshes its updated_at timestamp.
	//
	// It returns ErrTaskNotFound if no task has the given id,
	// ErrUserNotFound if the new owner doesn't exist, or
	// ErrConstraintViolation if the storage rejects the new values.
	UpdateTask(ctx context.Context, params UpdateTaskParams) (*models.Task, error)

	// DeleteTask removes the task by id and returns
	// ErrTaskNotFound if nothing was deleted.
	DeleteTask(ctx context.Context, taskID int64) error
}

type CreateUserParams struct {
	Username string
	Email    string
}

type UpdateUserParams struct {
	ID       int64
	Username string
	Email    string
}

type CreateTaskParams struct {
	Title       string
	Description string
	Status      string
	UserID      int64
}

type UpdateTaskParams struct {
	ID          int64
	Title       string
	Description string
	Status      string
	UserID      int64
}
