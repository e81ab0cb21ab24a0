package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/Hamsacgowda/Hamsa-B-C/internal/model"
	"github.com/Hamsacgowda/Hamsa-B-C/internal/moderation"
	"github.com/Hamsacgowda/Hamsa-B-C/internal/repository"
	"github.com/Hamsacgowda/Hamsa-B-C/internal/service"
)

// ContactHandler serves the JSON API over contact submissions.
type ContactHandler struct {
	submissions service.SubmissionService
}

// NewContactHandler creates a ContactHandler with the given service.
func NewContactHandler(submissions service.SubmissionService) *ContactHandler {
	return &ContactHandler{submissions: submissions}
}

// submitRequest is the expected JSON body for POST /api/contact.
type submitRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

// missing returns the first empty field, in form order.
func (req submitRequest) missing() string {
	for _, f := range []struct{ name, value string }{
		{"name", req.Name},
		{"email", req.Email},
		{"subject", req.Subject},
		{"message", req.Message},
	} {
		if strings.TrimSpace(f.value) == "" {
			return f.name
		}
	}
	return ""
}

// Submit handles POST /api/contact. All four fields are required.
func (h *ContactHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req submitRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json")
		return
	}

	if field := req.missing(); field != "" {
		writeError(w, http.StatusBadRequest, field+"_required")
		return
	}

	msg := &model.Submission{
		Name:    req.Name,
		Email:   req.Email,
		Subject: req.Subject,
		Message: req.Message,
	}
	if err := h.submissions.Submit(r.Context(), msg); err != nil {
		slog.Error("failed to store submission", "error", err)
		writeError(w, http.StatusInternalServerError, "submit_failed")
		return
	}

	writeJSON(w, http.StatusCreated, msg)
}

// adminListResponse is the JSON response for GET /api/admin/submissions.
type adminListResponse struct {
	Submissions []*model.Submission `json:"submissions"`
	Total       int                 `json:"total"`
	Unread      int                 `json:"unread"`
}

// AdminList handles GET /api/admin/submissions?filter=all|unread.
// Total and Unread count every submission regardless of the filter.
func (h *ContactHandler) AdminList(w http.ResponseWriter, r *http.Request) {
	all, err := h.submissions.ListRecent(r.Context())
	if err != nil {
		slog.Error("failed to list submissions", "error", err)
		writeError(w, http.StatusInternalServerError, "list_failed")
		return
	}

	filter := model.ParseFilter(r.URL.Query().Get("filter"))
	writeJSON(w, http.StatusOK, adminListResponse{
		Submissions: moderation.Apply(all, filter),
		Total:       len(all),
		Unread:      moderation.UnreadCount(all),
	})
}

// updateRequest is the expected JSON body for PATCH /api/admin/submissions/{id}.
type updateRequest struct {
	Read *bool `json:"read"`
}

// AdminUpdate handles PATCH /api/admin/submissions/{id}.
func (h *ContactHandler) AdminUpdate(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var req updateRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json")
		return
	}
	if req.Read == nil {
		writeError(w, http.StatusBadRequest, "read_required")
		return
	}

	if err := h.submissions.SetRead(r.Context(), id, *req.Read); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeError(w, http.StatusNotFound, "not_found")
			return
		}
		slog.Error("failed to update submission", "id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "update_failed")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"id": id, "read": *req.Read})
}

// AdminDelete handles DELETE /api/admin/submissions/{id}.
func (h *ContactHandler) AdminDelete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	if err := h.submissions.Delete(r.Context(), id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeError(w, http.StatusNotFound, "not_found")
			return
		}
		slog.Error("failed to delete submission", "id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "delete_failed")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
