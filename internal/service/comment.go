package service

import (
	"github.com/blogcore-dev/blogcore/internal/domain"
)

type CommentService interface {
	Get(id domain.CommentId) (*domain.Comment, error)
	Thread(postId domain.PostId, includeUnapproved bool) ([]*domain.CommentNode, error)
	Replies(id domain.CommentId, approvedOnly bool) ([]domain.Comment, error)
	ThreadInfo(id domain.CommentId) (int, *domain.Comment, error)
}

type Comment struct {
	storage CommentStorage
}

type CommentStorage interface {
	GetComment(id domain.CommentId) (*domain.Comment, error)
	PostCommentTree(postId domain.PostId) ([]*domain.CommentNode, error)
	CommentSubtree(id domain.CommentId) (*domain.CommentNode, error)
	CommentPath(id domain.CommentId) ([]domain.Comment, error)
	GetPost(id domain.PostId) (*domain.Post, error)
}

func NewComment(storage CommentStorage) CommentService {
	return &Comment{storage}
}

func (c *Comment) Get(id domain.CommentId) (*domain.Comment, error) {
	comment, err := c.storage.GetComment(id)
	if err != nil {
		return nil, storeErr("get comment", err)
	}
	return comment, nil
}

// Thread returns the post's comment forest. Readers get approved comments
// only, with unapproved subtrees pruned whole; moderators see everything.
func (c *Comment) Thread(postId domain.PostId, includeUnapproved bool) ([]*domain.CommentNode, error) {
	if _, err := c.storage.GetPost(postId); err != nil {
		return nil, storeErr("get post", err)
	}
	forest, err := c.storage.PostCommentTree(postId)
	if err != nil {
		return nil, storeErr("get post comments", err)
	}
	if includeUnapproved {
		return forest, nil
	}
	return pruneUnapproved(forest), nil
}

func (c *Comment) Replies(id domain.CommentId, approvedOnly bool) ([]domain.Comment, error) {
	node, err := c.storage.CommentSubtree(id)
	if err != nil {
		return nil, storeErr("get comment subtree", err)
	}
	return node.Replies(approvedOnly), nil
}

// ThreadInfo reports the comment's nesting depth (the number of ancestors,
// zero for a top level comment) and the top level comment of its thread. A
// top level comment is its own root. Both come from one ancestor path
// lookup.
func (c *Comment) ThreadInfo(id domain.CommentId) (int, *domain.Comment, error) {
	path, err := c.storage.CommentPath(id)
	if err != nil {
		return 0, nil, storeErr("get comment path", err)
	}
	return len(path) - 1, &path[0], nil
}

func pruneUnapproved(nodes []*domain.CommentNode) []*domain.CommentNode {
	kept := make([]*domain.CommentNode, 0, len(nodes))
	for _, node := range nodes {
		if !node.Approved {
			continue
		}
		node.Children = pruneUnapproved(node.Children)
		kept = append(kept, node)
	}
	return kept
}
