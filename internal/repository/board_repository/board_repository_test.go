package board_repository

import (
	"context"
	"testing"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupDB(t *testing.T) *sqlx.DB {
	t.Helper()
	db, err := sqlx.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	// a second pool connection would see an empty :memory: database
	db.SetMaxOpenConns(1)

	ddl := `
CREATE TABLE users (
  id TEXT PRIMARY KEY,
  email TEXT NOT NULL UNIQUE,
  password TEXT NOT NULL,
  avatar TEXT NOT NULL DEFAULT '',
  created_at TIMESTAMP NOT NULL
);
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
);
`
	_, err = db.Exec(ddl)
	require.NoError(t, err)

	t.Cleanup(func() { db.Close() })
	return db
}

func TestCreateBoard_DefaultColumns(t *testing.T) {
	db := setupDB(t)
	repo := NewBoardRepo(db)

	board, err := repo.CreateBoard(context.Background(), "Launch", "owner-1")
	require.NoError(t, err)
	require.NotEmpty(t, board.ID)
	assert.Equal(t, "Launch", board.Title)
	assert.Equal(t, "owner-1", board.OwnerID)

	require.Len(t, board.Columns, 3)
	for i, title := range []string{"To Do", "In Progress", "Done"} {
		assert.Equal(t, title, board.Columns[i].Title)
		assert.Equal(t, i, board.Columns[i].Position)
		assert.NotNil(t, board.Columns[i].Tasks)
		assert.Empty(t, board.Columns[i].Tasks)
	}
}

func TestGetBoard_OrdersColumnsAndTasks(t *testing.T) {
	db := setupDB(t)
	repo := NewBoardRepo(db)
	taskRepo := NewTaskRepo(db)

	board, err := repo.CreateBoard(context.Background(), "Ordered", "owner-1")
	require.NoError(t, err)
	todo := board.Columns[0]

	first, err := taskRepo.CreateTask(context.Background(), todo.ID, board.ID, "first")
	require.NoError(t, err)
	second, err := taskRepo.CreateTask(context.Background(), todo.ID, board.ID, "second")
	require.NoError(t, err)

	got, err := repo.GetBoard(context.Background(), board.ID)
	require.NoError(t, err)
	require.Len(t, got.Columns, 3)
	for i, col := range got.Columns {
		assert.Equal(t, i, col.Position)
	}

	tasks := got.Columns[0].Tasks
	require.Len(t, tasks, 2)
	assert.Equal(t, first.ID, tasks[0].ID)
	assert.Equal(t, second.ID, tasks[1].ID)
}

func TestGetBoard_NotFound(t *testing.T) {
	db := setupDB(t)
	repo := NewBoardRepo(db)

	_, err := repo.GetBoard(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrBoardNotFound)
}

func TestGetAllUserBoards(t *testing.T) {
	db := setupDB(t)
	repo := NewBoardRepo(db)

	_, err := repo.CreateBoard(context.Background(), "Mine A", "owner-1")
	require.NoError(t, err)
	_, err = repo.CreateBoard(context.Background(), "Mine B", "owner-1")
	require.NoError(t, err)
	_, err = repo.CreateBoard(context.Background(), "Theirs", "owner-2")
	require.NoError(t, err)

	boards, err := repo.GetAllUserBoards(context.Background(), "owner-1")
	require.NoError(t, err)
	require.Len(t, boards, 2)
	for _, b := range boards {
		assert.Equal(t, "owner-1", b.OwnerID)
		assert.Len(t, b.Columns, 3)
	}

	none, err := repo.GetAllUserBoards(context.Background(), "owner-3")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestDeleteBoard_CascadesColumnsAndTasks(t *testing.T) {
	db := setupDB(t)
	repo := NewBoardRepo(db)
	taskRepo := NewTaskRepo(db)

	board, err := repo.CreateBoard(context.Background(), "Doomed", "owner-1")
	require.NoError(t, err)
	_, err = taskRepo.CreateTask(context.Background(), board.Columns[0].ID, board.ID, "orphan-to-be")
	require.NoError(t, err)

	require.NoError(t, repo.DeleteBoard(context.Background(), board.ID))

	_, err = repo.GetBoard(context.Background(), board.ID)
	assert.ErrorIs(t, err, ErrBoardNotFound)

	var columns, tasks int
	require.NoError(t, db.Get(&columns, `SELECT COUNT(*) FROM columns WHERE board_id = $1`, board.ID))
	require.NoError(t, db.Get(&tasks, `SELECT COUNT(*) FROM tasks WHERE board_id = $1`, board.ID))
	assert.Zero(t, columns)
	assert.Zero(t, tasks)
}

func TestDeleteBoard_NotFound(t *testing.T) {
	db := setupDB(t)
	repo := NewBoardRepo(db)
	assert.ErrorIs(t, repo.DeleteBoard(context.Background(), "missing"), ErrBoardNotFound)
}

func TestOwnerLookups(t *testing.T) {
	db := setupDB(t)
	repo := NewBoardRepo(db)
	taskRepo := NewTaskRepo(db)

	board, err := repo.CreateBoard(context.Background(), "Owned", "owner-9")
	require.NoError(t, err)
	task, err := taskRepo.CreateTask(context.Background(), board.Columns[1].ID, board.ID, "probe")
	require.NoError(t, err)

	owner, err := repo.GetOwnerID(context.Background(), board.ID)
	require.NoError(t, err)
	assert.Equal(t, "owner-9", owner)

	owner, err = repo.GetOwnerIDByColumnID(context.Background(), board.Columns[1].ID)
	require.NoError(t, err)
	assert.Equal(t, "owner-9", owner)

	owner, err = repo.GetOwnerIDByTaskID(context.Background(), task.ID)
	require.NoError(t, err)
	assert.Equal(t, "owner-9", owner)

	_, err = repo.GetOwnerID(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrBoardNotFound)
	_, err = repo.GetOwnerIDByColumnID(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrColumnNotFound)
	_, err = repo.GetOwnerIDByTaskID(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrTaskNotFound)
}

func taskOrder(t *testing.T, db *sqlx.DB, columnID string) []string {
	t.Helper()
	var contents []string
	err := db.Select(&contents,
		`SELECT content FROM tasks WHERE column_id = $1 ORDER BY position, id`, columnID)
	require.NoError(t, err)
	return contents
}
