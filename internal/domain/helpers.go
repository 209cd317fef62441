package domain

import (
	"fmt"
	"time"
)

// for debug
func (c *Comment) String() string {
	parent := "root"
	if c.ParentId != nil {
		parent = fmt.Sprintf("%d", *c.ParentId)
	}
	return fmt.Sprintf("[id:%d, post:%d, author:%s, parent:%s, approved:%t, created:%s]",
		c.Id, c.PostId, c.Author.Username, parent, c.Approved, c.Created.Format(time.StampMilli))
}
