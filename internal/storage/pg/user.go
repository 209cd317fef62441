package pg

import (
	"database/sql"
	goerrors "errors"
	"fmt"
	"time"

	"github.com/lib/pq"

	"github.com/blogcore-dev/blogcore/internal/domain"
	e "github.com/blogcore-dev/blogcore/internal/errors"
)

const uniqueViolation = "23505"

// CreateUser registers a new account. Username and email uniqueness is
// enforced by the database, a conflict comes back as a validation error.
func (s *Storage) CreateUser(data domain.UserCreationData) (domain.User, error) {
	created := time.Now().UTC().Round(time.Microsecond)
	user := domain.User{
		Username: data.Username,
		Email:    data.Email,
		Created:  created,
	}
	err := s.db.QueryRow(`
		INSERT INTO users (username, email, is_moderator, created)
		VALUES ($1, $2, FALSE, $3)
		RETURNING id`,
		data.Username, data.Email, created,
	).Scan(&user.Id)
	if err != nil {
		var pqErr *pq.Error
		if goerrors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return domain.User{}, e.Validation("Username or email already taken")
		}
		return domain.User{}, fmt.Errorf("failed to insert user: %w", err)
	}
	return user, nil
}

func (s *Storage) GetUser(id domain.UserId) (*domain.User, error) {
	var user domain.User
	err := s.db.QueryRow(`
		SELECT id, username, email, is_moderator, created
		FROM users
		WHERE id = $1`, id,
	).Scan(&user.Id, &user.Username, &user.Email, &user.Moderator, &user.Created)
	if goerrors.Is(err, sql.ErrNoRows) {
		return nil, e.NotFound("User")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch user: %w", err)
	}
	return &user, nil
}
