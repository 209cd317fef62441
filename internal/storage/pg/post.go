package pg

import (
	"database/sql"
	goerrors "errors"
	"fmt"

	"github.com/blogcore-dev/blogcore/internal/domain"
	e "github.com/blogcore-dev/blogcore/internal/errors"
)

const postColumns = `
	p.id, p.title, p.intro, p.body, p.published,
	u.id, u.username, u.email, u.is_moderator, u.created
`

func scanPost(row interface{ Scan(...any) error }) (domain.Post, error) {
	var p domain.Post
	err := row.Scan(
		&p.Id, &p.Title, &p.Intro, &p.Body, &p.Published,
		&p.Author.Id, &p.Author.Username, &p.Author.Email, &p.Author.Moderator, &p.Author.Created,
	)
	return p, err
}

func (s *Storage) GetPost(id domain.PostId) (*domain.Post, error) {
	row := s.db.QueryRow(`
		SELECT `+postColumns+`
		FROM posts p
		JOIN users u ON u.id = p.author_id
		WHERE p.id = $1`, id)
	post, err := scanPost(row)
	if goerrors.Is(err, sql.ErrNoRows) {
		return nil, e.NotFound("Post")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch post: %w", err)
	}
	return &post, nil
}

// SearchPosts matches the query against title and intro, newest first.
func (s *Storage) SearchPosts(query string) ([]domain.Post, error) {
	rows, err := s.db.Query(`
		SELECT `+postColumns+`
		FROM posts p
		JOIN users u ON u.id = p.author_id
		WHERE p.title ILIKE '%' || $1 || '%' OR p.intro ILIKE '%' || $1 || '%'
		ORDER BY p.published DESC`, query)
	if err != nil {
		return nil, fmt.Errorf("failed to search posts: %w", err)
	}
	defer rows.Close()

	posts := make([]domain.Post, 0)
	for rows.Next() {
		post, err := scanPost(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan post: %w", err)
		}
		posts = append(posts, post)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}
	return posts, nil
}
