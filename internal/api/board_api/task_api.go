package board_api

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"taskflow/internal/api/middlewares"
	"taskflow/internal/services/auth_services"
	"taskflow/internal/services/task_services"
)

type TaskHandler struct {
	Service     *task_services.TaskService
	AuthService *auth_services.AuthService
}

func NewTaskHandler(s *task_services.TaskService, a *auth_services.AuthService) *TaskHandler {
	return &TaskHandler{Service: s, AuthService: a}
}

func (h *TaskHandler) TaskRoutes(r *mux.Router) {
	r.Handle("/api/tasks",
		middlewares.AuthMiddleware(h.AuthService, http.HandlerFunc(h.createTask)),
	).Methods("POST")

	taskRouter := r.PathPrefix("/api/tasks/{taskID}").Subrouter()
	taskRouter.Handle("/move",
		middlewares.AuthMiddleware(h.AuthService, http.HandlerFunc(h.moveTask)),
	).Methods("PUT")
	taskRouter.Handle("",
		middlewares.AuthMiddleware(h.AuthService, http.HandlerFunc(h.updateTask)),
	).Methods("PUT")
	taskRouter.Handle("",
		middlewares.AuthMiddleware(h.AuthService, http.HandlerFunc(h.deleteTask)),
	).Methods("DELETE")
}

func (h *TaskHandler) createTask(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Content  string `json:"content"`
		ColumnID string `json:"columnId"`
		BoardID  string `json:"boardId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "Invalid request payload")
		return
	}
	defer r.Body.Close()

	if req.ColumnID == "" || req.BoardID == "" {
		writeBadRequest(w, "columnId and boardId are required")
		return
	}

	userID, ok := callerID(w, r)
	if !ok {
		return
	}

	task, err := h.Service.CreateTask(r.Context(), userID, req.ColumnID, req.BoardID, req.Content)
	if err != nil {
		handleError(w, err)
		return
	}
	writeJSON(w, task)
}

func (h *TaskHandler) moveTask(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ColumnID string `json:"columnId"`
		Order    *int   `json:"order"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "Invalid request payload")
		return
	}
	defer r.Body.Close()

	if req.ColumnID == "" || req.Order == nil {
		writeBadRequest(w, "columnId and order are required")
		return
	}

	userID, ok := callerID(w, r)
	if !ok {
		return
	}
	taskID := mux.Vars(r)["taskID"]

	task, err := h.Service.MoveTask(r.Context(), userID, taskID, req.ColumnID, *req.Order)
	if err != nil {
		handleError(w, err)
		return
	}
	writeJSON(w, task)
}

func (h *TaskHandler) updateTask(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Content     *string `json:"content"`
		Description *string `json:"description"`
		Priority    *string `json:"priority"`
		DueDate     *string `json:"dueDate"`
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
	taskID := mux.Vars(r)["taskID"]

	task, err := h.Service.UpdateTaskDetails(r.Context(), userID, taskID, task_services.TaskUpdate{
		Content:     req.Content,
		Description: req.Description,
		Priority:    req.Priority,
		DueDate:     req.DueDate,
	})
	if err != nil {
		handleError(w, err)
		return
	}
	writeJSON(w, task)
}

func (h *TaskHandler) deleteTask(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}
	taskID := mux.Vars(r)["taskID"]

	if err := h.Service.DeleteTask(r.Context(), userID, taskID); err != nil {
		handleError(w, err)
		return
	}
	writeJSON(w, map[string]string{"message": "Task deleted"})
}
