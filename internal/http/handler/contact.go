package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"ceerion/internal/contact"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ContactHandler struct {
	Svc *contact.Service
}

type contactReq struct {
	Name        string `json:"name" validate:"required,max=200"`
	Email       string `json:"email" validate:"required,email"`
	ProjectType string `json:"projectType" validate:"required,oneof=residential commercial fleet other"`
	Message     string `json:"message" validate:"required,min=10,max=2000"`
	Location    string `json:"location" validate:"omitempty,max=200"`
	Phone       string `json:"phone" validate:"omitempty,max=50"`
}

func (h *ContactHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req contactReq
	if !decodeAndValidate(w, r, &req) {
		return
	}

	res, err := h.Svc.RecordMessage(r.Context(), contact.MessageInput{
		Name:        strings.TrimSpace(req.Name),
		Email:       strings.TrimSpace(req.Email),
		ProjectType: req.ProjectType,
		Message:     req.Message,
		Location:    req.Location,
		Phone:       req.Phone,
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			writeError(w, http.StatusConflict, "Conflict", "A concurrent submission for this email won; please retry")
			return
		}
		writeError(w, http.StatusInternalServerError, "Internal Server Error", "Failed to submit contact form")
		return
	}

	writeData(w, http.StatusCreated, "Contact form submitted successfully", map[string]any{
		"submissionId": res.SubmissionID,
		"createdAt":    res.CreatedAt,
	})
}

func (h *ContactHandler) ListSubmissions(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	limit, _ := strconv.Atoi(q.Get("limit"))
	offset, _ := strconv.Atoi(q.Get("offset"))

	res, err := h.Svc.ListSubmissions(r.Context(), contact.ListQuery{
		Status:      q.Get("status"),
		ProjectType: q.Get("projectType"),
		Limit:       limit,
		Offset:      offset,
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Internal Server Error", "Failed to retrieve contact submissions")
		return
	}

	writeData(w, http.StatusOK, "", map[string]any{
		"submissions": res.Submissions,
		"pagination": map[string]any{
			"total":   res.Total,
			"limit":   res.Limit,
			"offset":  res.Offset,
			"hasMore": int64(res.Offset+res.Limit) < res.Total,
		},
	})
}

type submissionStatusReq struct {
	Status string `json:"status" validate:"required,oneof=new in-progress responded closed"`
}

func (h *ContactHandler) UpdateSubmissionStatus(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Validation Error", "invalid submission id")
		return
	}

	var req submissionStatusReq
	if !decodeAndValidate(w, r, &req) {
		return
	}

	res, err := h.Svc.UpdateSubmissionStatus(r.Context(), id, req.Status)
	if err != nil {
		if errors.Is(err, contact.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Not Found", "Contact submission not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Internal Server Error", "Failed to update submission status")
		return
	}

	writeData(w, http.StatusOK, "Submission status updated", res)
}

func (h *ContactHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, recent, err := h.Svc.Stats(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Internal Server Error", "Failed to retrieve contact statistics")
		return
	}

	writeData(w, http.StatusOK, "", map[string]any{
		"overview":           stats,
		"recent_submissions": recent,
	})
}
