package domain

import "time"

type Comment struct {
	Id       CommentId
	PostId   PostId
	Author   User
	ParentId *CommentId
	Body     Document
	BodyText string // tag-stripped body, derived at sanitization time
	Created  time.Time
	Approved bool
}

// IsReply reports whether this comment replies to another comment.
func (c *Comment) IsReply() bool {
	return c.ParentId != nil
}

// to iterate thru layers: handler -> service -> storage
type CommentCreationData struct {
	PostId   PostId
	Author   User
	ParentId *CommentId
	Body     Document
	BodyText string
}

// CommentNode is a comment with its direct children, assembled from stored
// parent references. Children are ordered by creation time.
type CommentNode struct {
	Comment
	Children []*CommentNode
}

// Replies collects every descendant depth-first, each node before its own
// descendants, siblings in creation order. When approvedOnly is set an
// unapproved child is skipped together with its whole subtree, matching how
// nested comments render.
func (n *CommentNode) Replies(approvedOnly bool) []Comment {
	var out []Comment
	for _, child := range n.Children {
		if approvedOnly && !child.Approved {
			continue
		}
		out = append(out, child.Comment)
		out = append(out, child.Replies(approvedOnly)...)
	}
	return out
}
