package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/blogcore-dev/blogcore/internal/domain"
)

// Response shapes. Domain structs carry author emails, which must never
// leave the API, so responses go through these instead.

type userJSON struct {
	Id       domain.UserId   `json:"id"`
	Username domain.Username `json:"username"`
}

type commentJSON struct {
	Id       domain.CommentId  `json:"id"`
	PostId   domain.PostId     `json:"post_id"`
	ParentId *domain.CommentId `json:"parent_id,omitempty"`
	Author   userJSON          `json:"author"`
	Body     domain.Document   `json:"body"`
	Created  time.Time         `json:"created"`
	Approved bool              `json:"approved"`
}

type commentNodeJSON struct {
	commentJSON
	Replies []commentNodeJSON `json:"replies"`
}

type postJSON struct {
	Id        domain.PostId    `json:"id"`
	Title     domain.PostTitle `json:"title"`
	Intro     string           `json:"intro"`
	Author    userJSON         `json:"author"`
	Published time.Time        `json:"published"`
}

// profileJSON is the caller's own account view, userJSON plus the fields
// only the owner should see.
type profileJSON struct {
	Id        domain.UserId   `json:"id"`
	Username  domain.Username `json:"username"`
	Moderator bool            `json:"moderator"`
	Created   time.Time       `json:"created"`
}

func toUserJSON(u domain.User) userJSON {
	return userJSON{Id: u.Id, Username: u.Username}
}

func toProfileJSON(u domain.User) profileJSON {
	return profileJSON{Id: u.Id, Username: u.Username, Moderator: u.Moderator, Created: u.Created}
}

func toCommentJSON(c domain.Comment) commentJSON {
	return commentJSON{
		Id:       c.Id,
		PostId:   c.PostId,
		ParentId: c.ParentId,
		Author:   toUserJSON(c.Author),
		Body:     c.Body,
		Created:  c.Created,
		Approved: c.Approved,
	}
}

func toCommentsJSON(comments []domain.Comment) []commentJSON {
	out := make([]commentJSON, 0, len(comments))
	for _, c := range comments {
		out = append(out, toCommentJSON(c))
	}
	return out
}

func toNodeJSON(node *domain.CommentNode) commentNodeJSON {
	out := commentNodeJSON{commentJSON: toCommentJSON(node.Comment), Replies: []commentNodeJSON{}}
	for _, child := range node.Children {
		out.Replies = append(out.Replies, toNodeJSON(child))
	}
	return out
}

func toForestJSON(nodes []*domain.CommentNode) []commentNodeJSON {
	out := make([]commentNodeJSON, 0, len(nodes))
	for _, node := range nodes {
		out = append(out, toNodeJSON(node))
	}
	return out
}

func toPostJSON(p domain.Post) postJSON {
	return postJSON{Id: p.Id, Title: p.Title, Intro: p.Intro, Author: toUserJSON(p.Author), Published: p.Published}
}

func urlParamInt64(r *http.Request, name string) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, name), 10, 64)
}
