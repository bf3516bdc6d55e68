package services

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/CGECHAGA/week-8-assignment/internal/models"
)

type taskServiceImpl struct {
	logger zerolog.Logger
	pgPool *pgxpool.Pool
}

func NewTaskService(
	logger zerolog.Logger,
	pgPool *pgxpool.Pool,
) TaskService {
	return &taskServiceImpl{
		logger: logger,
		pgPool: pgPool,
	}
}

// userExists checks the referenced owner inside the caller's
// transaction, so the existence check and the task write observe
// the same snapshot.
func (s *taskServiceImpl) userExists(ctx context.Context, tx pgx.Tx, userID int64) (bool, error) {
	const selectUserExistsQuery = `
SELECT EXISTS (SELECT 1 FROM users WHERE user_id = $1)
`
	var exists bool
	err := tx.QueryRow(ctx, selectUserExistsQuery, userID).Scan(&exists)
	if err != nil {
		s.logger.Error().
			Err(err).
			Int64("user_id", userID).
			Msg("failed to check user existence")
		return false, err
	}
	return exists, nil
}

func (s *taskServiceImpl) CreateTask(ctx context.Context, params CreateTaskParams) (*models.Task, error) {
	now := time.Now()
	task := &models.Task{
		UserID:      params.UserID,
		Title:       params.Title,
		Description: params.Description,
		Status:      params.Status,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if task.Status == "" {
		task.Status = models.StatusPending
	}

	tx, err := s.pgPool.Begin(ctx)
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to begin transaction")
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	exists, err := s.userExists(ctx, tx, task.UserID)
	if err != nil {
		return nil, err
	}
	if !exists {
		s.logger.Warn().
			Int64("user_id", task.UserID).
			Msg("referenced user not found")
		return nil, ErrUserNotFound
	}

	const insertTaskQuery = `
INSERT INTO tasks (user_id,
                   title,
                   description,
                   status,
                   created_at,
                   updated_at)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING task_id
`
	err = tx.QueryRow(
		ctx,
		insertTaskQuery,
		task.UserID,
		task.Title,
		task.Description,
		task.Status,
		task.CreatedAt,
		task.UpdatedAt,
	).Scan(&task.ID)
	if err != nil {
		if isConstraintViolation(err) {
			s.logger.Error().
				Err(err).
				Int64("user_id", task.UserID).
				Msg("task rejected by storage")
			return nil, ErrConstraintViolation
		}

		s.logger.Error().
			Err(err).
			Msg("failed to insert task")
		return nil, err
	}

	err = tx.Commit(ctx)
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to commit transaction")
		return nil, err
	}

	s.logger.Info().
		Int64("task_id", task.ID).
		Int64("user_id", task.UserID).
		Msg("created task")
	return task, nil
}

func (s *taskServiceImpl) GetTasks(ctx context.Context, userID *int64) ([]*models.Task, error) {
	const selectTasksQuery = `
SELECT task_id,
       user_id,
       title,
       description,
       status,
       created_at,
       updated_at
FROM tasks
ORDER BY task_id
`
	const selectTasksByUserIDQuery = `
SELECT task_id,
       user_id,
       title,
       description,
       status,
       created_at,
       updated_at
FROM tasks
WHERE user_id = $1
ORDER BY task_id
`
	var (
		rows pgx.Rows
		err  error
	)
	if userID != nil {
		rows, err = s.pgPool.Query(ctx, selectTasksByUserIDQuery, *userID)
	} else {
		rows, err = s.pgPool.Query(ctx, selectTasksQuery)
	}
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to select tasks")
		return nil, err
	}
	defer rows.Close()

	tasks := make([]*models.Task, 0)
	for rows.Next() {
		task := new(models.Task)
		err = rows.Scan(
			&task.ID,
			&task.UserID,
			&task.Title,
			&task.Description,
			&task.Status,
			&task.CreatedAt,
			&task.UpdatedAt,
		)
		if err != nil {
			s.logger.Error().
				Err(err).
				Msg("failed to scan task")
			return nil, err
		}
		tasks = append(tasks, task)
	}

	err = rows.Err()
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to iterate over rows")
		return nil, err
	}

	s.logger.Info().
		Int("count", len(tasks)).
		Msg("selected tasks")
	return tasks, nil
}

func (s *taskServiceImpl) GetTaskByID(ctx context.Context, taskID int64) (*models.Task, error) {
	task := &models.Task{
		ID: taskID,
	}

	const selectTaskByIDQuery = `
SELECT user_id,
       title,
       description,
       status,
       created_at,
       updated_at
FROM tasks
WHERE task_id = $1
`
	err := s.pgPool.QueryRow(
		ctx,
		selectTaskByIDQuery,
		task.ID,
	).Scan(
		&task.UserID,
		&task.Title,
		&task.Description,
		&task.Status,
		&task.CreatedAt,
		&task.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			s.logger.Warn().
				Int64("task_id", task.ID).
				Msg("task not found")
			return nil, ErrTaskNotFound
		}

		s.logger.Error().
			Err(err).
			Int64("task_id", task.ID).
			Msg("failed to select task by id")
		return nil, err
	}

	s.logger.Info().
		Int64("task_id", task.ID).
		Msg("task found")
	return task, nil
}

func (s *taskServiceImpl) UpdateTask(ctx context.Context, params UpdateTaskParams) (*models.Task, error) {
	task := &models.Task{
		ID:          params.ID,
		UserID:      params.UserID,
		Title:       params.Title,
		Description: params.Description,
		Status:      params.Status,
		UpdatedAt:   time.Now(),
	}
	if task.Status == "" {
		task.Status = models.StatusPending
	}

	tx, err := s.pgPool.Begin(ctx)
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to begin transaction")
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	exists, err := s.userExists(ctx, tx, task.UserID)
	if err != nil {
		return nil, err
	}
	if !exists {
		s.logger.Warn().
			Int64("task_id", task.ID).
			Int64("user_id", task.UserID).
			Msg("referenced user not found")
		return nil, ErrUserNotFound
	}

	const updateTaskQuery = `
UPDATE tasks
SET user_id = $1,
    title = $2,
    description = $3,
    status = $4,
    updated_at = $5
WHERE task_id = $6
RETURNING created_at
`
	err = tx.QueryRow(
		ctx,
		updateTaskQuery,
		task.UserID,
		task.Title,
		task.Description,
		task.Status,
		task.UpdatedAt,
		task.ID,
	).Scan(&task.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			s.logger.Warn().
				Int64("task_id", task.ID).
				Msg("task not found")
			return nil, ErrTaskNotFound
		}
		if isConstraintViolation(err) {
			s.logger.Error().
				Err(err).
				Int64("task_id", task.ID).
				Msg("task update rejected by storage")
			return nil, ErrConstraintViolation
		}

		s.logger.Error().
			Err(err).
			Int64("task_id", task.ID).
			Msg("failed to update task")
		return nil, err
	}

	err = tx.Commit(ctx)
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to commit transaction")
		return nil, err
	}

	s.logger.Info().
		Int64("task_id", task.ID).
		Int64("user_id", task.UserID).
		Msg("updated task")
	return task, nil
}

func (s *taskServiceImpl) DeleteTask(ctx context.Context, taskID int64) error {
	tx, err := s.pgPool.Begin(ctx)
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to begin transaction")
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	const deleteTaskQuery = `
DELETE FROM tasks
WHERE task_id = $1
`
	tag, err := tx.Exec(
		ctx,
		deleteTaskQuery,
		taskID,
	)
	if err != nil {
		s.logger.Error().
			Err(err).
			Int64("task_id", taskID).
			Msg("failed to delete task")
		return err
	}
	if tag.RowsAffected() == 0 {
		s.logger.Warn().
			Int64("task_id", taskID).
			Msg("task not found")
		return ErrTaskNotFound
	}

	err = tx.Commit(ctx)
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to commit transaction")
		return err
	}

	s.logger.Info().
		Int64("task_id", taskID).
		Msg("deleted task")
	return nil
}
