package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/BuzzLyutic/task-tracker/internal/auth"
	"github.com/BuzzLyutic/task-tracker/internal/model"
	"github.com/BuzzLyutic/task-tracker/internal/repo"
	"github.com/BuzzLyutic/task-tracker/internal/service"
	"github.com/BuzzLyutic/task-tracker/pkg/respond"
)

type TaskHandler struct {
	service  *service.TaskService
	validate *validator.Validate
	logger   *zap.Logger
}

func NewTaskHandler(srv *service.TaskService, logger *zap.Logger) *TaskHandler {
	return &TaskHandler{
		service:  srv,
		validate: validator.New(),
		logger:   logger,
	}
}

type taskRequest struct {
	Title              string     `json:"title" validate:"required,max=200"`
	Description        *string    `json:"description" validate:"omitempty,max=1000"`
	DueDate            *time.Time `json:"due_date"`
	ReminderTime       *time.Time `json:"reminder_time"`
	RecurrenceType     string     `json:"recurrence_type" validate:"omitempty,oneof=none daily weekly monthly yearly"`
	RecurrenceInterval int        `json:"recurrence_interval" validate:"omitempty,min=1"`
}

func (req taskRequest) toModel() model.Task {
	return model.Task{
		Title:              req.Title,
		Description:        req.Description,
		DueDate:            req.DueDate,
		ReminderTime:       req.ReminderTime,
		RecurrenceType:     model.RecurrenceType(req.RecurrenceType),
		RecurrenceInterval: req.RecurrenceInterval,
	}
}

// subject возвращает аутентифицированного субъекта и проверяет, что он
// совпадает с владельцем из URL. Несовпадение - всегда 403, независимо от
// того, существует ли такой владелец.
func (h *TaskHandler) subject(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	subject, ok := auth.SubjectFromContext(r.Context())
	if !ok {
		respond.Error(w, r, http.StatusUnauthorized, "missing bearer token")
		return uuid.Nil, false
	}
	if chi.URLParam(r, "userID") != subject.String() {
		respond.Error(w, r, http.StatusForbidden, "access denied: user_id mismatch")
		return uuid.Nil, false
	}
	return subject, true
}

func taskID(r *http.Request) int64 {
	id, _ := strconv.ParseInt(chi.URLParam(r, "taskID"), 10, 64)
	return id
}

func (h *TaskHandler) decode(w http.ResponseWriter, r *http.Request) (taskRequest, bool) {
	var req taskRequest
	if r.ContentLength == 0 {
		respond.Error(w, r, http.StatusBadRequest, "empty request body")
		return req, false
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Error("failed to decode json", zap.Error(err))
		respond.Error(w, r, http.StatusBadRequest, "invalid json")
		return req, false
	}
	if err := h.validate.Struct(req); err != nil {
		respond.Error(w, r, http.StatusBadRequest, "validation error: "+err.Error())
		return req, false
	}
	return req, true
}

func (h *TaskHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.subject(w, r)
	if !ok {
		return
	}

	tasks, err := h.service.List(r.Context(), userID)
	if err != nil {
		h.handleErrors(w, r, err)
		return
	}
	respond.JSON(w, r, http.StatusOK, tasks)
}

func (h *TaskHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.subject(w, r)
	if !ok {
		return
	}

	req, ok := h.decode(w, r)
	if !ok {
		return
	}

	task, err := h.service.Create(r.Context(), userID, req.toModel())
	if err != nil {
		h.handleErrors(w, r, err)
		return
	}
	respond.JSON(w, r, http.StatusCreated, task)
}

func (h *TaskHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.subject(w, r)
	if !ok {
		return
	}

	task, err := h.service.Get(r.Context(), taskID(r), userID)
	if err != nil {
		h.handleErrors(w, r, err)
		return
	}
	respond.JSON(w, r, http.StatusOK, task)
}

func (h *TaskHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.subject(w, r)
	if !ok {
		return
	}

	req, ok := h.decode(w, r)
	if !ok {
		return
	}

	task, err := h.service.Update(r.Context(), taskID(r), userID, req.toModel())
	if err != nil {
		h.handleErrors(w, r, err)
		return
	}
	respond.JSON(w, r, http.StatusOK, task)
}

// Toggle переключает статус завершения; у повторяющейся задачи с due_date
// переход в completed попутно создает задачу следующего повторения
func (h *TaskHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.subject(w, r)
	if !ok {
		return
	}

	task, err := h.service.Toggle(r.Context(), taskID(r), userID)
	if err != nil {
		h.handleErrors(w, r, err)
		return
	}
	respond.JSON(w, r, http.StatusOK, task)
}

func (h *TaskHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.subject(w, r)
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), taskID(r), userID); err != nil {
		h.handleErrors(w, r, err)
		return
	}
	respond.NoContent(w, r)
}

func (h *TaskHandler) handleErrors(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, repo.ErrorNotFound):
		respond.Error(w, r, http.StatusNotFound, "task not found")
	case errors.Is(err, service.ErrValidation):
		respond.Error(w, r, http.StatusBadRequest, err.Error())
	default:
		h.logger.Error("internal error", zap.Error(err))
		respond.Error(w, r, http.StatusInternalServerError, "internal error")
	}
}
