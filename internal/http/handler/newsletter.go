package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"ceerion/internal/newsletter"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type NewsletterHandler struct {
	Svc *newsletter.Service

	// Where the unsubscribe confirmation page links back to.
	FrontendURL string
}

type subscribeReq struct {
	Email     string   `json:"email" validate:"required,email"`
	FirstName string   `json:"firstName" validate:"omitempty,max=100"`
	Location  string   `json:"location" validate:"omitempty,max=200"`
	Interests []string `json:"interests" validate:"omitempty,dive,oneof=residential commercial ev technology incentives company"`
	Frequency string   `json:"frequency" validate:"omitempty,oneof=weekly monthly quarterly announcements"`
}

func (h *NewsletterHandler) Subscribe(w http.ResponseWriter, r *http.Request) {
	var req subscribeReq
	if !decodeAndValidate(w, r, &req) {
		return
	}
	if req.Frequency == "" {
		req.Frequency = "weekly"
	}

	_, err := h.Svc.Subscribe(r.Context(), newsletter.SubscribeInput{
		Email:     strings.TrimSpace(req.Email),
		FirstName: req.FirstName,
		Location:  req.Location,
		Interests: req.Interests,
		Frequency: req.Frequency,
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			writeError(w, http.StatusConflict, "Already Subscribed", "This email is already subscribed to our newsletter")
			return
		}
		writeError(w, http.StatusInternalServerError, "Internal Server Error", "Failed to subscribe to newsletter")
		return
	}

	writeData(w, http.StatusCreated, "Successfully subscribed to newsletter", map[string]any{
		"email":     req.Email,
		"interests": newsletter.NormalizeInterests(req.Interests),
		"frequency": req.Frequency,
	})
}

type unsubscribeReq struct {
	Email string `json:"email" validate:"required,email"`
}

func (h *NewsletterHandler) Unsubscribe(w http.ResponseWriter, r *http.Request) {
	var req unsubscribeReq
	if !decodeAndValidate(w, r, &req) {
		return
	}

	if err := h.Svc.Unsubscribe(r.Context(), req.Email); err != nil {
		if errors.Is(err, newsletter.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Not Found", "No active subscription found for this email")
			return
		}
		writeError(w, http.StatusInternalServerError, "Internal Server Error", "Failed to unsubscribe from newsletter")
		return
	}

	writeData(w, http.StatusOK, "Successfully unsubscribed from newsletter", nil)
}

// UnsubscribeLink serves the one-click link embedded in outbound email, so
// the response is a minimal HTML page rather than JSON.
func (h *NewsletterHandler) UnsubscribeLink(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	contactID, err := uuid.Parse(chi.URLParam(r, "contactId"))
	if err != nil {
		w.WriteHeader(http.StatusNotFound)
		fmt.Fprint(w, unsubscribePage("Subscription Not Found", "No active subscription found for this link.", ""))
		return
	}

	if err := h.Svc.UnsubscribeByContact(r.Context(), contactID); err != nil {
		if errors.Is(err, newsletter.ErrNotFound) {
			w.WriteHeader(http.StatusNotFound)
			fmt.Fprint(w, unsubscribePage("Subscription Not Found", "No active subscription found for this link.", ""))
			return
		}
		w.WriteHeader(http.StatusInternalServerError)
		fmt.Fprint(w, unsubscribePage("Error", "An error occurred while processing your unsubscribe request.", ""))
		return
	}

	fmt.Fprint(w, unsubscribePage(
		"Successfully Unsubscribed",
		"You have been unsubscribed from the CEERION Energy newsletter. If you change your mind, you can always resubscribe on our website.",
		h.FrontendURL,
	))
}

func unsubscribePage(title, body, link string) string {
	var b strings.Builder
	b.WriteString(`<html><body style="font-family: Arial, sans-serif; text-align: center; padding: 50px;">`)
	fmt.Fprintf(&b, "<h2>%s</h2><p>%s</p>", title, body)
	if link != "" {
		fmt.Fprintf(&b, `<a href="%s">Visit CEERION Energy</a>`, link)
	}
	b.WriteString(`</body></html>`)
	return b.String()
}

func (h *NewsletterHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, interests, recent, err := h.Svc.Stats(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Internal Server Error", "Failed to retrieve newsletter statistics")
		return
	}

	writeData(w, http.StatusOK, "", map[string]any{
		"overview":       stats,
		"interests":      interests,
		"recent_signups": recent,
	})
}
