package board_api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"taskflow/internal/api/middlewares"
	"taskflow/internal/repository/board_repository"
	"taskflow/internal/services/auth_services"
	"taskflow/internal/services/board_services"
	"taskflow/internal/services/task_services"
)

func handleError(w http.ResponseWriter, err error) {
	w.Header().Set("Content-Type", "application/json")

	switch {
	case errors.Is(err, board_repository.ErrBoardNotFound):
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]string{"error": "Board not found"})
	case errors.Is(err, board_repository.ErrColumnNotFound):
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]string{"error": "Column not found"})
	case errors.Is(err, board_repository.ErrTaskNotFound):
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]string{"error": "Task not found"})
	case errors.Is(err, board_services.ErrTitleRequired),
		errors.Is(err, task_services.ErrContentRequired),
		errors.Is(err, task_services.ErrInvalidPriority),
		errors.Is(err, task_services.ErrInvalidDueDate):
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
	default:
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(map[string]string{"error": "Server error"})
	}
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}

func writeBadRequest(w http.ResponseWriter, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusBadRequest)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

func callerID(w http.ResponseWriter, r *http.Request) (string, bool) {
	userID, ok := middlewares.GetUserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "User authentication data missing", http.StatusInternalServerError)
		return "", false
	}
	return userID, true
}

type BoardHandler struct {
	Service     *board_services.BoardService
	AuthService *auth_services.AuthService
}

func NewBoardHandler(s *board_services.BoardService, a *auth_services.AuthService) *BoardHandler {
	return &BoardHandler{Service: s, AuthService: a}
}

func (h *BoardHandler) BoardRoutes(r *mux.Router) {
	r.Handle("/api/boards",
		middlewares.AuthMiddleware(h.AuthService, http.HandlerFunc(h.listBoards)),
	).Methods("GET")
	r.Handle("/api/boards",
		middlewares.AuthMiddleware(h.AuthService, http.HandlerFunc(h.createBoard)),
	).Methods("POST")

	boardRouter := r.PathPrefix("/api/boards/{boardID}").Subrouter()
	boardRouter.Handle("",
		middlewares.AuthMiddleware(h.AuthService, http.HandlerFunc(h.getBoard)),
	).Methods("GET")
	boardRouter.Handle("",
		middlewares.AuthMiddleware(h.AuthService, http.HandlerFunc(h.deleteBoard)),
	).Methods("DELETE")
}

func (h *BoardHandler) listBoards(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}

	boards, err := h.Service.ListBoards(r.Context(), userID)
	if err != nil {
		handleError(w, err)
		return
	}
	writeJSON(w, boards)
}

func (h *BoardHandler) createBoard(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Title string `json:"title"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "Invalid request payload")
		return
	}
	defer r.Body.Close()

	userID, ok := callerID(w, r)
	if !ok {
		return
	}

	board, err := h.Service.CreateBoard(r.Context(), userID, req.Title)
	if err != nil {
		handleError(w, err)
		return
	}
	writeJSON(w, board)
}

func (h *BoardHandler) getBoard(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}
	boardID := mux.Vars(r)["boardID"]

	board, err := h.Service.GetBoard(r.Context(), userID, boardID)
	if err != nil {
		handleError(w, err)
		return
	}
	writeJSON(w, board)
}

func (h *BoardHandler) deleteBoard(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}
	boardID := mux.Vars(r)["boardID"]

	if err := h.Service.DeleteBoard(r.Context(), userID, boardID); err != nil {
		handleError(w, err)
		return
	}
	writeJSON(w, map[string]string{"message": "Board deleted"})
}
