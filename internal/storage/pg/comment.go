package pg

import (
	"database/sql"
	goerrors "errors"
	"fmt"
	"sort"
	"time"

	"github.com/blogcore-dev/blogcore/internal/domain"
	e "github.com/blogcore-dev/blogcore/internal/errors"
)

// maxAncestorDepth caps the path walk so a malformed parent chain cannot
// keep the recursive query running forever.
const maxAncestorDepth = 100

const commentColumns = `
	c.id, c.post_id, c.parent_id, c.body, c.body_text, c.created, c.approved,
	u.id, u.username, u.email, u.is_moderator, u.created
`

func scanComment(row interface{ Scan(...any) error }) (domain.Comment, error) {
	var c domain.Comment
	var parentId sql.NullInt64
	err := row.Scan(
		&c.Id, &c.PostId, &parentId, &c.Body, &c.BodyText, &c.Created, &c.Approved,
		&c.Author.Id, &c.Author.Username, &c.Author.Email, &c.Author.Moderator, &c.Author.Created,
	)
	if err != nil {
		return domain.Comment{}, err
	}
	if parentId.Valid {
		pid := domain.CommentId(parentId.Int64)
		c.ParentId = &pid
	}
	return c, nil
}

// CreateComment inserts a new pending comment. A reply is only accepted when
// its parent exists and belongs to the same post, checked inside the insert
// transaction so the parent cannot disappear in between.
func (s *Storage) CreateComment(data domain.CommentCreationData) (domain.Comment, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return domain.Comment{}, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if data.ParentId != nil {
		var parentPost domain.PostId
		err := tx.QueryRow("SELECT post_id FROM comments WHERE id = $1", *data.ParentId).Scan(&parentPost)
		if goerrors.Is(err, sql.ErrNoRows) {
			return domain.Comment{}, e.NotFound("Parent comment")
		}
		if err != nil {
			return domain.Comment{}, fmt.Errorf("failed to fetch parent comment: %w", err)
		}
		if parentPost != data.PostId {
			return domain.Comment{}, e.Validation("Parent comment belongs to a different post")
		}
	}

	created := time.Now().UTC().Round(time.Microsecond)
	comment := domain.Comment{
		PostId:   data.PostId,
		Author:   data.Author,
		ParentId: data.ParentId,
		Body:     data.Body,
		BodyText: data.BodyText,
		Created:  created,
		Approved: false,
	}
	var parentId sql.NullInt64
	if data.ParentId != nil {
		parentId = sql.NullInt64{Int64: int64(*data.ParentId), Valid: true}
	}
	err = tx.QueryRow(`
		INSERT INTO comments (post_id, author_id, parent_id, body, body_text, created, approved)
		VALUES ($1, $2, $3, $4, $5, $6, FALSE)
		RETURNING id`,
		data.PostId, data.Author.Id, parentId, data.Body, data.BodyText, created,
	).Scan(&comment.Id)
	if err != nil {
		return domain.Comment{}, fmt.Errorf("failed to insert comment: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return domain.Comment{}, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return comment, nil
}

func (s *Storage) GetComment(id domain.CommentId) (*domain.Comment, error) {
	row := s.db.QueryRow(`
		SELECT `+commentColumns+`
		FROM comments c
		JOIN users u ON u.id = c.author_id
		WHERE c.id = $1`, id)
	comment, err := scanComment(row)
	if goerrors.Is(err, sql.ErrNoRows) {
		return nil, e.NotFound("Comment")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch comment: %w", err)
	}
	return &comment, nil
}

// ApproveComment marks a pending comment as visible. Approving an already
// approved comment is a no-op, not an error.
func (s *Storage) ApproveComment(id domain.CommentId) error {
	result, err := s.db.Exec("UPDATE comments SET approved = TRUE WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to approve comment: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check affected rows: %w", err)
	}
	if affected == 0 {
		return e.NotFound("Comment")
	}
	return nil
}

// DeleteCommentTree removes a comment and every descendant reply in one
// transaction and reports how many rows went away.
func (s *Storage) DeleteCommentTree(id domain.CommentId) (int64, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.Exec(`
		WITH RECURSIVE doomed AS (
			SELECT id FROM comments WHERE id = $1
			UNION ALL
			SELECT c.id FROM comments c JOIN doomed d ON c.parent_id = d.id
		)
		DELETE FROM comments WHERE id IN (SELECT id FROM doomed)`, id)
	if err != nil {
		return 0, fmt.Errorf("failed to delete comment tree: %w", err)
	}
	deleted, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to check affected rows: %w", err)
	}
	if deleted == 0 {
		return 0, e.NotFound("Comment")
	}

	if err = tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return deleted, nil
}

// ListPending returns unapproved comments newest first. A non-empty query
// narrows the list by author name, post title or comment text.
func (s *Storage) ListPending(query string) ([]domain.Comment, error) {
	rows, err := s.db.Query(`
		SELECT `+commentColumns+`
		FROM comments c
		JOIN users u ON u.id = c.author_id
		JOIN posts p ON p.id = c.post_id
		WHERE NOT c.approved
		  AND ($1 = '' OR u.username ILIKE '%' || $1 || '%'
		                OR p.title ILIKE '%' || $1 || '%'
		                OR c.body_text ILIKE '%' || $1 || '%')
		ORDER BY c.created DESC`, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list pending comments: %w", err)
	}
	defer rows.Close()

	comments := make([]domain.Comment, 0)
	for rows.Next() {
		comment, err := scanComment(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan comment: %w", err)
		}
		comments = append(comments, comment)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}
	return comments, nil
}

// CommentPath returns the chain from the thread root down to the given
// comment, root first. The walk is capped at maxAncestorDepth parents.
func (s *Storage) CommentPath(id domain.CommentId) ([]domain.Comment, error) {
	rows, err := s.db.Query(`
		WITH RECURSIVE path AS (
			SELECT c.id, c.post_id, c.parent_id, c.body, c.body_text, c.created, c.approved, c.author_id, 0 AS depth
			FROM comments c WHERE c.id = $1
			UNION ALL
			SELECT c.id, c.post_id, c.parent_id, c.body, c.body_text, c.created, c.approved, c.author_id, path.depth + 1
			FROM comments c
			JOIN path ON c.id = path.parent_id
			WHERE path.depth < $2
		)
		SELECT `+commentColumns+`
		FROM path c
		JOIN users u ON u.id = c.author_id
		ORDER BY c.depth DESC`, id, maxAncestorDepth)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch comment path: %w", err)
	}
	defer rows.Close()

	var path []domain.Comment
	for rows.Next() {
		comment, err := scanComment(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan comment: %w", err)
		}
		path = append(path, comment)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}
	if len(path) == 0 {
		return nil, e.NotFound("Comment")
	}
	if path[0].ParentId != nil {
		// the cap fired before reaching a root, the chain is malformed
		return nil, fmt.Errorf("comment %d ancestor chain exceeds %d levels", id, maxAncestorDepth)
	}
	return path, nil
}

// CommentSubtree fetches a comment with all descendants assembled into a
// tree, children in creation order.
func (s *Storage) CommentSubtree(id domain.CommentId) (*domain.CommentNode, error) {
	rows, err := s.db.Query(`
		WITH RECURSIVE subtree AS (
			SELECT c.id, c.post_id, c.parent_id, c.body, c.body_text, c.created, c.approved, c.author_id
			FROM comments c WHERE c.id = $1
			UNION ALL
			SELECT c.id, c.post_id, c.parent_id, c.body, c.body_text, c.created, c.approved, c.author_id
			FROM comments c
			JOIN subtree s ON c.parent_id = s.id
		)
		SELECT `+commentColumns+`
		FROM subtree c
		JOIN users u ON u.id = c.author_id`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch comment subtree: %w", err)
	}
	defer rows.Close()

	comments, err := collectComments(rows)
	if err != nil {
		return nil, err
	}
	if len(comments) == 0 {
		return nil, e.NotFound("Comment")
	}

	roots := assembleTree(comments)
	for _, root := range roots {
		if root.Id == id {
			return root, nil
		}
	}
	return nil, e.NotFound("Comment")
}

// PostCommentTree returns every comment of a post as a forest of top level
// comments, siblings in creation order. Approval filtering happens above the
// storage layer since moderators see the full thread.
func (s *Storage) PostCommentTree(postId domain.PostId) ([]*domain.CommentNode, error) {
	rows, err := s.db.Query(`
		SELECT `+commentColumns+`
		FROM comments c
		JOIN users u ON u.id = c.author_id
		WHERE c.post_id = $1`, postId)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch post comments: %w", err)
	}
	defer rows.Close()

	comments, err := collectComments(rows)
	if err != nil {
		return nil, err
	}
	return assembleTree(comments), nil
}

func collectComments(rows *sql.Rows) ([]domain.Comment, error) {
	var comments []domain.Comment
	for rows.Next() {
		comment, err := scanComment(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan comment: %w", err)
		}
		comments = append(comments, comment)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}
	return comments, nil
}

// assembleTree links flat comments into nodes by parent reference. Comments
// whose parent is not in the slice become roots, so the same helper serves
// both whole-post forests and single subtrees.
func assembleTree(comments []domain.Comment) []*domain.CommentNode {
	nodes := make(map[domain.CommentId]*domain.CommentNode, len(comments))
	for i := range comments {
		nodes[comments[i].Id] = &domain.CommentNode{Comment: comments[i]}
	}

	var roots []*domain.CommentNode
	for _, node := range nodes {
		if node.ParentId != nil {
			if parent, ok := nodes[*node.ParentId]; ok {
				parent.Children = append(parent.Children, node)
				continue
			}
		}
		roots = append(roots, node)
	}

	sortNodes(roots)
	for _, node := range nodes {
		sortNodes(node.Children)
	}
	return roots
}

func sortNodes(nodes []*domain.CommentNode) {
	sort.Slice(nodes, func(i, j int) bool {
		if nodes[i].Created.Equal(nodes[j].Created) {
			return nodes[i].Id < nodes[j].Id
		}
		return nodes[i].Created.Before(nodes[j].Created)
	})
}
