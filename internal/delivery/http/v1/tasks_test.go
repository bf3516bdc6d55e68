package v1

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CGECHAGA/week-8-assignment/internal/models"
	"github.com/CGECHAGA/week-8-assignment/internal/services"
)

func echoCreateTask(ctx context.Context, params services.CreateTaskParams) (*models.Task, error) {
	now := time.Now()
	return &models.Task{
		ID:          1,
		UserID:      params.UserID,
		Title:       params.Title,
		Description: params.Description,
		Status:      params.Status,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

func TestHandleCreateTask(t *testing.T) {
	tasks := &stubTaskService{createFn: echoCreateTask}
	router := newTestRouter(&stubUserService{}, tasks)

	w := doRequest(router, http.MethodPost, "/tasks/",
		`{"title": "t1", "description": "d1", "status": "done", "user_id": 1}`)
	require.Equal(t, http.StatusOK, w.Code)

	var resp getTaskResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, int64(1), resp.TaskID)
	assert.Equal(t, int64(1), resp.UserID)
	assert.Equal(t, "t1", resp.Title)
	assert.Equal(t, "done", resp.Status)
}

func TestHandleCreateTask_DefaultStatus(t *testing.T) {
	var gotParams services.CreateTaskParams
	tasks := &stubTaskService{
		createFn: func(ctx context.Context, params services.CreateTaskParams) (*models.Task, error) {
			gotParams = params
			return echoCreateTask(ctx, params)
		},
	}
	router := newTestRouter(&stubUserService{}, tasks)

	w := doRequest(router, http.MethodPost, "/tasks/",
		`{"title": "t1", "user_id": 1}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, models.StatusPending, gotParams.Status)
	assert.Empty(t, gotParams.Description)

	var resp getTaskResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, models.StatusPending, resp.Status)
}

func TestHandleCreateTask_UserNotFound(t *testing.T) {
	tasks := &stubTaskService{
		createFn: func(ctx context.Context, params services.CreateTaskParams) (*models.Task, error) {
			return nil, services.ErrUserNotFound
		},
	}
	router := newTestRouter(&stubUserService{}, tasks)

	w := doRequest(router, http.MethodPost, "/tasks/",
		`{"title": "t1", "user_id": 42}`)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "user not found")
}

func TestHandleCreateTask_InvalidBody(t *testing.T) {
	router := newTestRouter(&stubUserService{}, &stubTaskService{})

	tests := []struct {
		name string
		body string
	}{
		{"missing title", `{"user_id": 1}`},
		{"missing user id", `{"title": "t1"}`},
		{"zero user id", `{"title": "t1", "user_id": 0}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doRequest(router, http.MethodPost, "/tasks/", tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestHandleGetTasks_Filter(t *testing.T) {
	var gotUserID *int64
	tasks := &stubTaskService{
		listFn: func(ctx context.Context, userID *int64) ([]*models.Task, error) {
			gotUserID = userID
			return []*models.Task{}, nil
		},
	}
	router := newTestRouter(&stubUserService{}, tasks)

	w := doRequest(router, http.MethodGet, "/tasks/?user_id=3", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, gotUserID)
	assert.Equal(t, int64(3), *gotUserID)

	w = doRequest(router, http.MethodGet, "/tasks/", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Nil(t, gotUserID)
}

func TestHandleGetTasks_InvalidFilter(t *testing.T) {
	router := newTestRouter(&stubUserService{}, &stubTaskService{})

	w := doRequest(router, http.MethodGet, "/tasks/?user_id=abc", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandleGetTask_NotFound(t *testing.T) {
	tasks := &stubTaskService{
		getFn: func(ctx context.Context, taskID int64) (*models.Task, error) {
			return nil, services.ErrTaskNotFound
		},
	}
	router := newTestRouter(&stubUserService{}, tasks)

	w := doRequest(router, http.MethodGet, "/tasks/42", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "task not found")
}

func TestHandleUpdateTask(t *testing.T) {
	var gotParams services.UpdateTaskParams
	tasks := &stubTaskService{
		updateFn: func(ctx context.Context, params services.UpdateTaskParams) (*models.Task, error) {
			gotParams = params
			now := time.Now()
			return &models.Task{
				ID:          params.ID,
				UserID:      params.UserID,
				Title:       params.Title,
				Description: params.Description,
				Status:      params.Status,
				CreatedAt:   now.Add(-time.Hour),
				UpdatedAt:   now,
			}, nil
		},
	}
	router := newTestRouter(&stubUserService{}, tasks)

	w := doRequest(router, http.MethodPut, "/tasks/5",
		`{"title": "t2", "status": "completed", "user_id": 2}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, int64(5), gotParams.ID)
	assert.Equal(t, int64(2), gotParams.UserID)
	assert.Equal(t, "completed", gotParams.Status)

	var resp getTaskResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.UpdatedAt.After(resp.CreatedAt))
}

func TestHandleUpdateTask_NotFound(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"task missing", services.ErrTaskNotFound, "task not found"},
		{"new owner missing", services.ErrUserNotFound, "user not found"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tasks := &stubTaskService{
				updateFn: func(ctx context.Context, params services.UpdateTaskParams) (*models.Task, error) {
					return nil, tt.err
				},
			}
			router := newTestRouter(&stubUserService{}, tasks)

			w := doRequest(router, http.MethodPut, "/tasks/5",
				`{"title": "t2", "user_id": 2}`)
			assert.Equal(t, http.StatusNotFound, w.Code)
			assert.Contains(t, w.Body.String(), tt.want)
		})
	}
}

func TestHandleDeleteTask_Twice(t *testing.T) {
	deleted := false
	tasks := &stubTaskService{
		deleteFn: func(ctx context.Context, taskID int64) error {
			if deleted {
				return services.ErrTaskNotFound
			}
			deleted = true
			return nil
		},
	}
	router := newTestRouter(&stubUserService{}, tasks)

	w := doRequest(router, http.MethodDelete, "/tasks/1", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "task deleted")

	w = doRequest(router, http.MethodDelete, "/tasks/1", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}
