package domain

import "time"

type Post struct {
	Id        PostId
	Title     PostTitle
	Intro     string
	Body      Document
	Author    User
	Published time.Time
}
