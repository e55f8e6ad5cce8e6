package board_services

import (
	"context"
	"errors"
	"strings"

	"taskflow/internal/model/board_model"
	"taskflow/internal/repository/board_repository"
)

var ErrTitleRequired = errors.New("board title is required")

type BoardService struct {
	Repo *board_repository.BoardRepo
}

func NewBoardService(r *board_repository.BoardRepo) *BoardService {
	return &BoardService{Repo: r}
}

func (s *BoardService) CreateBoard(ctx context.Context, ownerID, title string) (*board_model.Board, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, ErrTitleRequired
	}
	return s.Repo.CreateBoard(ctx, title, ownerID)
}

func (s *BoardService) ListBoards(ctx context.Context, ownerID string) ([]*board_model.Board, error) {
	return s.Repo.GetAllUserBoards(ctx, ownerID)
}

// GetBoard returns the board only to its owner. A board owned by someone
// else reads exactly like a board that does not exist.
func (s *BoardService) GetBoard(ctx context.Context, ownerID, boardID string) (*board_model.Board, error) {
	if err := s.checkOwner(ctx, ownerID, boardID); err != nil {
		return nil, err
	}
	return s.Repo.GetBoard(ctx, boardID)
}

func (s *BoardService) DeleteBoard(ctx context.Context, ownerID, boardID string) error {
	if err := s.checkOwner(ctx, ownerID, boardID); err != nil {
		return err
	}
	return s.Repo.DeleteBoard(ctx, boardID)
}

func (s *BoardService) checkOwner(ctx context.Context, ownerID, boardID string) error {
	actualOwner, err := s.Repo.GetOwnerID(ctx, boardID)
	if err != nil {
		return err
	}
	if actualOwner != ownerID {
		return board_repository.ErrBoardNotFound
	}
	return nil
}
