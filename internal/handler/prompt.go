package handler

import (
	"log/slog"
	"net/http"

	promptsSvc "sylo/internal/domain/services/prompts"
	"sylo/internal/httputil"
)

// PromptHandler handles prompt library HTTP requests
type PromptHandler struct {
	promptService promptsSvc.PromptService
	logger        *slog.Logger
}

// NewPromptHandler creates a new prompt handler
func NewPromptHandler(promptService promptsSvc.PromptService, logger *slog.Logger) *PromptHandler {
	return &PromptHandler{
		promptService: promptService,
		logger:        logger,
	}
}

// CreatePrompt adds a prompt to the caller's library
// POST /api/prompts
func (h *PromptHandler) CreatePrompt(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	var req promptsSvc.CreatePromptRequest
	if !httputil.ParseJSON(w, r, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		handleError(w, r, h.logger, validationError(err))
		return
	}

	prompt, err := h.promptService.CreatePrompt(r.Context(), &req, userID)
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, prompt)
}

// ListPrompts lists the caller's prompts
// GET /api/prompts
func (h *PromptHandler) ListPrompts(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	prompts, err := h.promptService.ListPrompts(r.Context(), userID)
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, prompts)
}

// GetPrompt retrieves a prompt
// GET /api/prompts/{id}
func (h *PromptHandler) GetPrompt(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	ids, ok := httputil.PathUUIDs(w, r, "id")
	if !ok {
		return
	}

	prompt, err := h.promptService.GetPrompt(r.Context(), ids[0], userID)
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, prompt)
}

// UpdatePrompt applies a partial update
// PATCH /api/prompts/{id}
func (h *PromptHandler) UpdatePrompt(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	ids, ok := httputil.PathUUIDs(w, r, "id")
	if !ok {
		return
	}

	var req promptsSvc.UpdatePromptRequest
	if !httputil.ParseJSON(w, r, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		handleError(w, r, h.logger, validationError(err))
		return
	}

	prompt, err := h.promptService.UpdatePrompt(r.Context(), ids[0], userID, &req)
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, prompt)
}

// DeletePrompt deletes a prompt
// DELETE /api/prompts/{id}
func (h *PromptHandler) DeletePrompt(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	ids, ok := httputil.PathUUIDs(w, r, "id")
	if !ok {
		return
	}

	result, err := h.promptService.DeletePrompt(r.Context(), ids[0], userID)
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, result)
}
