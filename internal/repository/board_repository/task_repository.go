package board_repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"taskflow/internal/model/board_model"
)

type TaskRepo struct {
	DB *sqlx.DB
}

func NewTaskRepo(db *sqlx.DB) *TaskRepo {
	return &TaskRepo{DB: db}
}

// serializableTx keeps the read-compute-write sequences below atomic against
// concurrent writers touching the same column.
func (r *TaskRepo) serializableTx(ctx context.Context) (*sqlx.Tx, error) {
	return r.DB.BeginTxx(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable})
}

// CreateTask appends a task to the end of the column: its position is one
// past the highest position currently in the column, or 0 for an empty one.
func (r *TaskRepo) CreateTask(ctx context.Context, columnID, boardID, content string) (*board_model.Task, error) {
	tx, err := r.serializableTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("could not start transaction: %w", err)
	}
	defer tx.Rollback()

	var columnBoardID string
	err = tx.GetContext(ctx, &columnBoardID, `SELECT board_id FROM columns WHERE id = $1`, columnID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrColumnNotFound
		}
		return nil, fmt.Errorf("failed to look up column: %w", err)
	}
	if columnBoardID != boardID {
		return nil, ErrColumnNotFound
	}

	var newPosition int
	qPos := `SELECT COALESCE(MAX(position), -1) + 1 FROM tasks WHERE column_id = $1`
	if err := tx.GetContext(ctx, &newPosition, qPos, columnID); err != nil {
		return nil, fmt.Errorf("failed to get max position: %w", err)
	}

	task := &board_model.Task{
		ID:       uuid.New().String(),
		Content:  content,
		Priority: board_model.PriorityLow,
		Position: newPosition,
		ColumnID: columnID,
		BoardID:  boardID,
	}
	qInsert := `INSERT INTO tasks (id, content, description, priority, due_date, position, column_id, board_id)
	            VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err = tx.ExecContext(ctx, qInsert,
		task.ID, task.Content, task.Description, task.Priority, task.DueDate, task.Position, task.ColumnID, task.BoardID)
	if err != nil {
		return nil, fmt.Errorf("failed to insert task: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("transaction commit failed: %w", err)
	}
	return task, nil
}

func (r *TaskRepo) GetTask(ctx context.Context, taskID string) (*board_model.Task, error) {
	var task board_model.Task
	q := `SELECT id, content, description, priority, due_date, position, column_id, board_id
	      FROM tasks WHERE id = $1`
	err := r.DB.GetContext(ctx, &task, q, taskID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("could not query task: %w", err)
	}
	return &task, nil
}

// MoveTask relocates a task into destColumnID so that it reads back at
// destIndex among the tasks already there. The destination column is
// renumbered 0..n-1, which keeps positions distinct regardless of the index
// the client sent; on cross-column moves the source column's gap is closed.
// An out-of-range destIndex is clamped to the end of the column.
func (r *TaskRepo) MoveTask(ctx context.Context, taskID, destColumnID string, destIndex int) (*board_model.Task, error) {
	tx, err := r.serializableTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("could not start transaction: %w", err)
	}
	defer tx.Rollback()

	var task board_model.Task
	err = tx.GetContext(ctx, &task,
		`SELECT id, content, description, priority, due_date, position, column_id, board_id FROM tasks WHERE id = $1`, taskID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to look up task: %w", err)
	}

	var destBoardID string
	err = tx.GetContext(ctx, &destBoardID, `SELECT board_id FROM columns WHERE id = $1`, destColumnID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrColumnNotFound
		}
		return nil, fmt.Errorf("failed to look up column: %w", err)
	}

	var siblingIDs []string
	err = tx.SelectContext(ctx, &siblingIDs,
		`SELECT id FROM tasks WHERE column_id = $1 AND id <> $2 ORDER BY position, id`, destColumnID, taskID)
	if err != nil {
		return nil, fmt.Errorf("failed to read destination column: %w", err)
	}

	if destIndex < 0 {
		destIndex = 0
	}
	if destIndex > len(siblingIDs) {
		destIndex = len(siblingIDs)
	}

	ordered := make([]string, 0, len(siblingIDs)+1)
	ordered = append(ordered, siblingIDs[:destIndex]...)
	ordered = append(ordered, taskID)
	ordered = append(ordered, siblingIDs[destIndex:]...)

	for i, id := range ordered {
		if id == taskID {
			_, err = tx.ExecContext(ctx,
				`UPDATE tasks SET column_id = $1, board_id = $2, position = $3 WHERE id = $4`,
				destColumnID, destBoardID, i, id)
		} else {
			_, err = tx.ExecContext(ctx, `UPDATE tasks SET position = $1 WHERE id = $2`, i, id)
		}
		if err != nil {
			return nil, fmt.Errorf("failed to renumber destination column: %w", err)
		}
	}

	if task.ColumnID != destColumnID {
		_, err = tx.ExecContext(ctx,
			`UPDATE tasks SET position = position - 1 WHERE column_id = $1 AND position > $2`,
			task.ColumnID, task.Position)
		if err != nil {
			return nil, fmt.Errorf("failed to close source column gap: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("transaction commit failed: %w", err)
	}

	task.ColumnID = destColumnID
	task.BoardID = destBoardID
	task.Position = destIndex
	return &task, nil
}

// UpdateTaskDetails writes the editable fields of an already-loaded task.
// Column and position are never touched here.
func (r *TaskRepo) UpdateTaskDetails(ctx context.Context, task *board_model.Task) error {
	q := `UPDATE tasks SET content = $1, description = $2, priority = $3, due_date = $4 WHERE id = $5`
	result, err := r.DB.ExecContext(ctx, q,
		task.Content, task.Description, task.Priority, task.DueDate, task.ID)
	if err != nil {
		return fmt.Errorf("could not update task: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrTaskNotFound
	}
	return nil
}

// DeleteTask removes the task and closes the position gap it leaves behind.
func (r *TaskRepo) DeleteTask(ctx context.Context, taskID string) error {
	tx, err := r.serializableTx(ctx)
	if err != nil {
		return fmt.Errorf("could not start transaction: %w", err)
	}
	defer tx.Rollback()

	var task board_model.Task
	err = tx.GetContext(ctx, &task,
		`SELECT id, column_id, position FROM tasks WHERE id = $1`, taskID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrTaskNotFound
		}
		return fmt.Errorf("failed to look up task: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM tasks WHERE id = $1`, taskID); err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}

	_, err = tx.ExecContext(ctx,
		`UPDATE tasks SET position = position - 1 WHERE column_id = $1 AND position > $2`,
		task.ColumnID, task.Position)
	if err != nil {
		return fmt.Errorf("failed to update positions: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("transaction commit failed: %w", err)
	}
	return nil
}
