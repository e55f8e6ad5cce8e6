package board_model

import (
	"time"
)

// Priority values accepted on the wire and stored verbatim.
const (
	PriorityLow    = "LOW"
	PriorityMedium = "MEDIUM"
	PriorityHigh   = "HIGH"
)

func ValidPriority(p string) bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

type Task struct {
	ID          string     `db:"id" json:"id"`
	Content     string     `db:"content" json:"content"`
	Description string     `db:"description" json:"description"`
	Priority    string     `db:"priority" json:"priority"`
	DueDate     *time.Time `db:"due_date" json:"dueDate"`
	Position    int        `db:"position" json:"order"`
	ColumnID    string     `db:"column_id" json:"columnId"`
	BoardID     string     `db:"board_id" json:"boardId"`
}

type Column struct {
	ID       string  `db:"id" json:"id"`
	Title    string  `db:"title" json:"title"`
	Position int     `db:"position" json:"order"`
	BoardID  string  `db:"board_id" json:"boardId"`
	Tasks    []*Task `db:"-" json:"tasks"`
}

type Board struct {
	ID        string    `db:"id" json:"id"`
	Title     string    `db:"title" json:"title"`
	OwnerID   string    `db:"owner_id" json:"ownerId"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	Columns   []*Column `db:"-" json:"columns,omitempty"`
}

// Titles of the columns every new board starts with, in display order.
var DefaultColumnTitles = []string{"To Do", "In Progress", "Done"}
