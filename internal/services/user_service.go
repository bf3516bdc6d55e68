package services

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/CGECHAGA/week-8-assignment/internal/models"
)

// isConstraintViolation reports whether err is a storage-level
// rejection of the row itself (duplicate key, null, bad value)
// rather than a connectivity or protocol failure.
func isConstraintViolation(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	switch pgErr.Code {
	case pgerrcode.UniqueViolation,
		pgerrcode.NotNullViolation,
		pgerrcode.CheckViolation,
		pgerrcode.ForeignKeyViolation,
		pgerrcode.StringDataRightTruncationDataException:
		return true
	}
	return false
}

type userServiceImpl struct {
	logger zerolog.Logger
	pgPool *pgxpool.Pool
}

func NewUserService(
	logger zerolog.Logger,
	pgPool *pgxpool.Pool,
) UserService {
	return &userServiceImpl{
		logger: logger,
		pgPool: pgPool,
	}
}

func (s *userServiceImpl) CreateUser(ctx context.Context, params CreateUserParams) (*models.User, error) {
	user := &models.User{
		Username:  params.Username,
		Email:     params.Email,
		CreatedAt: time.Now(),
	}

	tx, err := s.pgPool.Begin(ctx)
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to begin transaction")
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	const insertUserQuery = `
INSERT INTO users (username,
                   email,
                   created_at)
VALUES ($1, $2, $3)
RETURNING user_id
`
	err = tx.QueryRow(
		ctx,
		insertUserQuery,
		user.Username,
		user.Email,
		user.CreatedAt,
	).Scan(&user.ID)
	if err != nil {
		if isConstraintViolation(err) {
			s.logger.Error().
				Err(err).
				Str("username", user.Username).
				Msg("user rejected by storage")
			return nil, ErrConstraintViolation
		}

		s.logger.Error().
			Err(err).
			Msg("failed to insert user")
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
		Int64("user_id", user.ID).
		Msg("created user")
	return user, nil
}

func (s *userServiceImpl) GetUsers(ctx context.Context) ([]*models.User, error) {
	const selectUsersQuery = `
SELECT user_id,
       username,
       email,
       created_at
FROM users
ORDER BY user_id
`
	rows, err := s.pgPool.Query(ctx, selectUsersQuery)
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to select users")
		return nil, err
	}
	defer rows.Close()

	users := make([]*models.User, 0)
	for rows.Next() {
		user := new(models.User)
		err = rows.Scan(
			&user.ID,
			&user.Username,
			&user.Email,
			&user.CreatedAt,
		)
		if err != nil {
			s.logger.Error().
				Err(err).
				Msg("failed to scan user")
			return nil, err
		}
		users = append(users, user)
	}

	err = rows.Err()
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to iterate over rows")
		return nil, err
	}

	s.logger.Info().
		Int("count", len(users)).
		Msg("selected users")
	return users, nil
}

func (s *userServiceImpl) GetUserByID(ctx context.Context, userID int64) (*models.User, error) {
	user := &models.User{
		ID: userID,
	}

	const selectUserByIDQuery = `
SELECT username,
       email,
       created_at
FROM users
WHERE user_id = $1
`
	err := s.pgPool.QueryRow(
		ctx,
		selectUserByIDQuery,
		user.ID,
	).Scan(
		&user.Username,
		&user.Email,
		&user.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			s.logger.Warn().
				Int64("user_id", user.ID).
				Msg("user not found")
			return nil, ErrUserNotFound
		}

		s.logger.Error().
			Err(err).
			Int64("user_id", user.ID).
			Msg("failed to select user by id")
		return nil, err
	}

	s.logger.Info().
		Int64("user_id", user.ID).
		Msg("user found")
	return user, nil
}

func (s *userServiceImpl) UpdateUser(ctx context.Context, params UpdateUserParams) (*models.User, error) {
	user := &models.User{
		ID:       params.ID,
		Username: params.Username,
		Email:    params.Email,
	}

	tx, err := s.pgPool.Begin(ctx)
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to begin transaction")
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	const updateUserQuery = `
UPDATE users
SET username = $1,
    email = $2
WHERE user_id = $3
RETURNING created_at
`
	err = tx.QueryRow(
		ctx,
		updateUserQuery,
		user.Username,
		user.Email,
		user.ID,
	).Scan(&user.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			s.logger.Warn().
				Int64("user_id", user.ID).
				Msg("user not found")
			return nil, ErrUserNotFound
		}
		if isConstraintViolation(err) {
			s.logger.Error().
				Err(err).
				Int64("user_id", user.ID).
				Msg("user update rejected by storage")
			return nil, ErrConstraintViolation
		}

		s.logger.Error().
			Err(err).
			Int64("user_id", user.ID).
			Msg("failed to update user")
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
		Int64("user_id", user.ID).
		Msg("updated user")
	return user, nil
}

func (s *userServiceImpl) DeleteUser(ctx context.Context, userID int64) error {
	tx, err := s.pgPool.Begin(ctx)
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to begin transaction")
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	// Tasks owned by the user are deliberately left in place.
	const deleteUserQuery = `
DELETE FROM users
WHERE user_id = $1
`
	tag, err := tx.Exec(
		ctx,
		deleteUserQuery,
		userID,
	)
	if err != nil {
		s.logger.Error().
			Err(err).
			Int64("user_id", userID).
			Msg("failed to delete user")
		return err
	}
	if tag.RowsAffected() == 0 {
		s.logger.Warn().
			Int64("user_id", userID).
			Msg("user not found")
		return ErrUserNotFound
	}

	err = tx.Commit(ctx)
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to commit transaction")
		return err
	}

	s.logger.Info().
		Int64("user_id", userID).
		Msg("deleted user")
	return nil
}
