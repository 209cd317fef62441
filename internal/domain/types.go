package domain

type (
	UserId    = int64
	PostId    = int64
	CommentId = int64

	Username  = string
	Email     = string
	PostTitle = string
)
