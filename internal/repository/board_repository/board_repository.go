package board_repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"taskflow/internal/model/board_model"
)

var (
	ErrBoardNotFound  = errors.New("board not found")
	ErrColumnNotFound = errors.New("column not found")
	ErrTaskNotFound   = errors.New("task not found")
)

type BoardRepo struct {
	DB *sqlx.DB
}

func NewBoardRepo(db *sqlx.DB) *BoardRepo {
	return &BoardRepo{DB: db}
}

// CreateBoard inserts the board together with its three default columns in
// one transaction. The returned board carries the columns, each with an
// empty task list.
func (r *BoardRepo) CreateBoard(ctx context.Context, title, ownerID string) (*board_model.Board, error) {
	tx, err := r.DB.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("could not start transaction: %w", err)
	}
	defer tx.Rollback()

	board := &board_model.Board{
		ID:        uuid.New().String(),
		Title:     title,
		OwnerID:   ownerID,
		CreatedAt: time.Now().UTC(),
	}

	qBoard := `INSERT INTO boards (id, title, owner_id, created_at) VALUES ($1, $2, $3, $4)`
	if _, err := tx.ExecContext(ctx, qBoard, board.ID, board.Title, board.OwnerID, board.CreatedAt); err != nil {
		return nil, fmt.Errorf("failed to create board: %w", err)
	}

	qColumn := `INSERT INTO columns (id, title, board_id, position) VALUES ($1, $2, $3, $4)`
	for i, colTitle := range board_model.DefaultColumnTitles {
		column := &board_model.Column{
			ID:       uuid.New().String(),
			Title:    colTitle,
			BoardID:  board.ID,
			Position: i,
			Tasks:    []*board_model.Task{},
		}
		if _, err := tx.ExecContext(ctx, qColumn, column.ID, column.Title, column.BoardID, column.Position); err != nil {
			return nil, fmt.Errorf("failed to create column: %w", err)
		}
		board.Columns = append(board.Columns, column)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("transaction commit failed: %w", err)
	}
	return board, nil
}

// GetAllUserBoards returns the caller's boards with their columns. Tasks are
// not loaded at this granularity.
func (r *BoardRepo) GetAllUserBoards(ctx context.Context, ownerID string) ([]*board_model.Board, error) {
	boards := []*board_model.Board{}
	q := `SELECT id, title, owner_id, created_at FROM boards WHERE owner_id = $1`
	if err := r.DB.SelectContext(ctx, &boards, q, ownerID); err != nil {
		return nil, err
	}
	if len(boards) == 0 {
		return boards, nil
	}

	boardIDs := make([]string, len(boards))
	boardMap := make(map[string]*board_model.Board)
	for i, b := range boards {
		boardIDs[i] = b.ID
		boardMap[b.ID] = b
		b.Columns = []*board_model.Column{}
	}

	query, args, err := sqlx.In(
		`SELECT id, title, board_id, position FROM columns WHERE board_id IN (?) ORDER BY board_id, position`, boardIDs)
	if err != nil {
		return nil, err
	}
	query = r.DB.Rebind(query)

	var columns []*board_model.Column
	if err := r.DB.SelectContext(ctx, &columns, query, args...); err != nil {
		return nil, err
	}
	for _, col := range columns {
		if b, ok := boardMap[col.BoardID]; ok {
			b.Columns = append(b.Columns, col)
		}
	}
	return boards, nil
}

// GetBoard returns the board with its columns sorted by position and each
// column's tasks sorted by (position, id).
func (r *BoardRepo) GetBoard(ctx context.Context, boardID string) (*board_model.Board, error) {
	var board board_model.Board
	err := r.DB.GetContext(ctx, &board,
		`SELECT id, title, owner_id, created_at FROM boards WHERE id = $1`, boardID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrBoardNotFound
		}
		return nil, err
	}

	columns := []*board_model.Column{}
	err = r.DB.SelectContext(ctx, &columns,
		`SELECT id, title, board_id, position FROM columns WHERE board_id = $1 ORDER BY position`, boardID)
	if err != nil {
		return nil, err
	}
	board.Columns = columns

	if len(columns) > 0 {
		columnIDs := make([]string, len(columns))
		columnMap := make(map[string]*board_model.Column)
		for i, col := range columns {
			columnIDs[i] = col.ID
			columnMap[col.ID] = col
			col.Tasks = []*board_model.Task{}
		}

		query, args, err := sqlx.In(
			`SELECT id, content, description, priority, due_date, position, column_id, board_id
			 FROM tasks WHERE column_id IN (?) ORDER BY column_id, position, id`, columnIDs)
		if err != nil {
			return nil, err
		}
		query = r.DB.Rebind(query)

		var tasks []*board_model.Task
		if err := r.DB.SelectContext(ctx, &tasks, query, args...); err != nil {
			return nil, err
		}
		for _, task := range tasks {
			if col, ok := columnMap[task.ColumnID]; ok {
				col.Tasks = append(col.Tasks, task)
			}
		}
	}
	return &board, nil
}

// DeleteBoard removes the board and every descendant column and task.
func (r *BoardRepo) DeleteBoard(ctx context.Context, boardID string) error {
	tx, err := r.DB.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("could not start transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`DELETE FROM tasks WHERE column_id IN (SELECT id FROM columns WHERE board_id = $1)`, boardID)
	if err != nil {
		return fmt.Errorf("failed to delete board tasks: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM columns WHERE board_id = $1`, boardID); err != nil {
		return fmt.Errorf("failed to delete board columns: %w", err)
	}

	result, err := tx.ExecContext(ctx, `DELETE FROM boards WHERE id = $1`, boardID)
	if err != nil {
		return fmt.Errorf("failed to delete board: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrBoardNotFound
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("transaction commit failed: %w", err)
	}
	return nil
}

func (r *BoardRepo) GetOwnerID(ctx context.Context, boardID string) (string, error) {
	var ownerID string
	err := r.DB.GetContext(ctx, &ownerID, `SELECT owner_id FROM boards WHERE id = $1`, boardID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrBoardNotFound
		}
		return "", fmt.Errorf("failed to get board owner: %w", err)
	}
	return ownerID, nil
}

func (r *BoardRepo) GetOwnerIDByColumnID(ctx context.Context, columnID string) (string, error) {
	var ownerID string
	q := `SELECT b.owner_id FROM boards b JOIN columns c ON b.id = c.board_id WHERE c.id = $1`
	err := r.DB.GetContext(ctx, &ownerID, q, columnID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrColumnNotFound
		}
		return "", fmt.Errorf("failed to get board owner by column: %w", err)
	}
	return ownerID, nil
}

func (r *BoardRepo) GetOwnerIDByTaskID(ctx context.Context, taskID string) (string, error) {
	var ownerID string
	q := `SELECT b.owner_id
	      FROM boards b
	      JOIN columns c ON b.id = c.board_id
	      JOIN tasks t ON c.id = t.column_id
	      WHERE t.id = $1`
	err := r.DB.GetContext(ctx, &ownerID, q, taskID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrTaskNotFound
		}
		return "", fmt.Errorf("failed to get board owner by task: %w", err)
	}
	return ownerID, nil
}
