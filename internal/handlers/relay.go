package handlers

import (
	"context"
	"encoding/json"
	"log"
	"net/http"

	"bsk-backend/internal/mailer"

	"github.com/go-playground/validator/v10"
)

// CodeSender hands a message to the mail transport and reports the outcome.
type CodeSender interface {
	Send(ctx context.Context, msg mailer.Message) error
}

type RelayHandler struct {
	sender    CodeSender
	fromEmail string
	validate  *validator.Validate
}

func NewRelayHandler(sender CodeSender, fromEmail string) *RelayHandler {
	return &RelayHandler{
		sender:    sender,
		fromEmail: fromEmail,
		validate:  validator.New(),
	}
}

type SendCodeRequest struct {
	Email string `json:"email" validate:"required,email"`
	Code  string `json:"code" validate:"required"`
}

type RelayResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

// --- POST /send-code ---

func (h *RelayHandler) SendCode(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

	switch r.Method {
	case http.MethodOptions:
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		return
	case http.MethodPost:
	default:
		writeJSON(w, http.StatusMethodNotAllowed, RelayResponse{Error: "Method not allowed"})
		return
	}

	var req SendCodeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, RelayResponse{Error: "Invalid data"})
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeJSON(w, http.StatusBadRequest, RelayResponse{Error: "Invalid data"})
		return
	}

	msg := mailer.VerificationCodeMessage(h.fromEmail, req.Email, req.Code)
	if err := h.sender.Send(r.Context(), msg); err != nil {
		log.Printf("Error sending code to %s: %v", req.Email, err)
		writeJSON(w, http.StatusInternalServerError, RelayResponse{Error: "Email send error"})
		return
	}

	log.Printf("📧 Verification code sent to %s", req.Email)
	writeJSON(w, http.StatusOK, RelayResponse{Success: true, Message: "Code sent"})
}
