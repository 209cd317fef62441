package domain

import "time"

type User struct {
	Id        UserId
	Username  Username
	Email     Email
	Moderator bool
	Created   time.Time
}

// to iterate thru layers: handler -> service -> storage
type UserCreationData struct {
	Username Username
	Email    Email
}
