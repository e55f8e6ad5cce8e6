package task_services

import (
	"context"
	"testing"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskflow/internal/model/board_model"
	"taskflow/internal/repository/board_repository"
)

func setupService(t *testing.T) (*TaskService, *board_repository.BoardRepo) {
	t.Helper()
	db, err := sqlx.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)

	_, err = db.Exec(`
CREATE TABLE boards (
  id TEXT PRIMARY KEY,
  title TEXT NOT NULL,
  owner_id TEXT NOT NULL,
  created_at TIMESTAMP NOT NULL
);
CREATE TABLE columns (
  id TEXT PRIMARY KEY,
  title TEXT NOT NULL,
  board_id TEXT NOT NULL,
  position INTEGER NOT NULL
);
CREATE TABLE tasks (
  id TEXT PRIMARY KEY,
  content TEXT NOT NULL,
  description TEXT NOT NULL DEFAULT '',
  priority TEXT NOT NULL DEFAULT 'LOW',
  due_date TIMESTAMP,
  position INTEGER NOT NULL,
  column_id TEXT NOT NULL,
  board_id TEXT NOT NULL
);`)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	boardRepo := board_repository.NewBoardRepo(db)
	return NewTaskService(board_repository.NewTaskRepo(db), boardRepo), boardRepo
}

func makeBoard(t *testing.T, boardRepo *board_repository.BoardRepo, owner string) *board_model.Board {
	t.Helper()
	board, err := boardRepo.CreateBoard(context.Background(), "Board", owner)
	require.NoError(t, err)
	return board
}

func TestCreateTask_Validation(t *testing.T) {
	svc, boardRepo := setupService(t)
	board := makeBoard(t, boardRepo, "owner-1")

	_, err := svc.CreateTask(context.Background(), "owner-1", board.Columns[0].ID, board.ID, "   ")
	assert.ErrorIs(t, err, ErrContentRequired)

	task, err := svc.CreateTask(context.Background(), "owner-1", board.Columns[0].ID, board.ID, "  trimmed  ")
	require.NoError(t, err)
	assert.Equal(t, "trimmed", task.Content)
	assert.Equal(t, 0, task.Position)
}

func TestCreateTask_ForeignColumnReadsLikeMissing(t *testing.T) {
	svc, boardRepo := setupService(t)
	board := makeBoard(t, boardRepo, "owner-1")

	_, err := svc.CreateTask(context.Background(), "intruder", board.Columns[0].ID, board.ID, "steal")
	assert.ErrorIs(t, err, board_repository.ErrColumnNotFound)

	_, err = svc.CreateTask(context.Background(), "owner-1", "missing", board.ID, "nowhere")
	assert.ErrorIs(t, err, board_repository.ErrColumnNotFound)
}

func TestMoveTask_OwnershipChecks(t *testing.T) {
	svc, boardRepo := setupService(t)
	board := makeBoard(t, boardRepo, "owner-1")

	task, err := svc.CreateTask(context.Background(), "owner-1", board.Columns[0].ID, board.ID, "t")
	require.NoError(t, err)

	_, err = svc.MoveTask(context.Background(), "intruder", task.ID, board.Columns[1].ID, 0)
	assert.ErrorIs(t, err, board_repository.ErrTaskNotFound)

	moved, err := svc.MoveTask(context.Background(), "owner-1", task.ID, board.Columns[1].ID, 0)
	require.NoError(t, err)
	assert.Equal(t, board.Columns[1].ID, moved.ColumnID)
}

func TestUpdateTaskDetails_InvalidPriorityLeavesTaskUnchanged(t *testing.T) {
	svc, boardRepo := setupService(t)
	board := makeBoard(t, boardRepo, "owner-1")

	task, err := svc.CreateTask(context.Background(), "owner-1", board.Columns[0].ID, board.ID, "keep me")
	require.NoError(t, err)

	bad := "URGENT"
	_, err = svc.UpdateTaskDetails(context.Background(), "owner-1", task.ID, TaskUpdate{Priority: &bad})
	assert.ErrorIs(t, err, ErrInvalidPriority)

	got, err := svc.Repo.GetTask(context.Background(), task.ID)
	require.NoError(t, err)
	assert.Equal(t, "keep me", got.Content)
	assert.Equal(t, board_model.PriorityLow, got.Priority)
}

func TestUpdateTaskDetails_PartialUpdate(t *testing.T) {
	svc, boardRepo := setupService(t)
	board := makeBoard(t, boardRepo, "owner-1")

	task, err := svc.CreateTask(context.Background(), "owner-1", board.Columns[0].ID, board.ID, "original")
	require.NoError(t, err)

	priority := board_model.PriorityMedium
	due := "2026-09-15"
	updated, err := svc.UpdateTaskDetails(context.Background(), "owner-1", task.ID, TaskUpdate{
		Priority: &priority,
		DueDate:  &due,
	})
	require.NoError(t, err)
	assert.Equal(t, "original", updated.Content)
	assert.Equal(t, board_model.PriorityMedium, updated.Priority)
	require.NotNil(t, updated.DueDate)
	assert.Equal(t, "2026-09-15", updated.DueDate.Format("2006-01-02"))
	assert.Equal(t, task.Position, updated.Position)
	assert.Equal(t, task.ColumnID, updated.ColumnID)

	// empty string clears the due date
	none := ""
	updated, err = svc.UpdateTaskDetails(context.Background(), "owner-1", task.ID, TaskUpdate{DueDate: &none})
	require.NoError(t, err)
	assert.Nil(t, updated.DueDate)
}

func TestUpdateTaskDetails_BadDueDate(t *testing.T) {
	svc, boardRepo := setupService(t)
	board := makeBoard(t, boardRepo, "owner-1")

	task, err := svc.CreateTask(context.Background(), "owner-1", board.Columns[0].ID, board.ID, "t")
	require.NoError(t, err)

	bad := "next tuesday"
	_, err = svc.UpdateTaskDetails(context.Background(), "owner-1", task.ID, TaskUpdate{DueDate: &bad})
	assert.ErrorIs(t, err, ErrInvalidDueDate)
}

func TestDeleteTask_Ownership(t *testing.T) {
	svc, boardRepo := setupService(t)
	board := makeBoard(t, boardRepo, "owner-1")

	task, err := svc.CreateTask(context.Background(), "owner-1", board.Columns[0].ID, board.ID, "t")
	require.NoError(t, err)

	err = svc.DeleteTask(context.Background(), "intruder", task.ID)
	assert.ErrorIs(t, err, board_repository.ErrTaskNotFound)

	require.NoError(t, svc.DeleteTask(context.Background(), "owner-1", task.ID))
	assert.ErrorIs(t, svc.DeleteTask(context.Background(), "owner-1", task.ID), board_repository.ErrTaskNotFound)
}
