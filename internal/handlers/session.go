package handlers

import (
	"context"
	"encoding/json"
	"log"
	"net/http"

	"bsk-backend/internal/guard"
	"bsk-backend/internal/middleware"
	"bsk-backend/internal/models"
	"bsk-backend/internal/notify"
	"bsk-backend/internal/repository"
	"bsk-backend/internal/session"

	"github.com/go-chi/chi/v5"
)

type SessionHandler struct {
	blobs    repository.BlobStore
	notifier notify.Notifier
	opts     []session.Option
}

func NewSessionHandler(blobs repository.BlobStore, notifier notify.Notifier, opts ...session.Option) *SessionHandler {
	return &SessionHandler{
		blobs:    blobs,
		notifier: notifier,
		opts:     opts,
	}
}

// --- Request / Response types ---

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type SetupProfileRequest struct {
	Grade    models.Grade `json:"grade"`
	Exam     models.Exam  `json:"exam"`
	Subjects []string     `json:"subjects"`
}

type SessionResponse struct {
	User         models.UserInfo      `json:"user"`
	Preferences  *models.Preferences  `json:"preferences,omitempty"`
	Notification *notify.Notification `json:"notification,omitempty"`
	Redirect     *guard.Page          `json:"redirect,omitempty"`
	Initials     string               `json:"initials,omitempty"`
	Welcome      string               `json:"welcome,omitempty"`
}

type GuardResponse struct {
	Redirect *guard.Page `json:"redirect"`
}

// Routes returns the /session sub-router. It expects ClientScope upstream.
func (h *SessionHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.GetSession)
	r.Post("/register", h.Register)
	r.Post("/login", h.Login)
	r.Post("/profile", h.SetupProfile)
	r.Post("/logout", h.Logout)
	r.Get("/preferences", h.GetPreferences)
	r.Get("/guard", h.Guard)
	return r
}

// open builds the store for the requesting client and loads its record.
func (h *SessionHandler) open(w http.ResponseWriter, r *http.Request) (*session.Store, bool) {
	clientID := middleware.GetClientID(r.Context())
	if clientID == "" {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "missing client scope"})
		return nil, false
	}

	store := session.NewStore(h.blobs, clientID, h.opts...)
	if err := store.Load(r.Context()); err != nil {
		log.Printf("Error loading session for client %s: %v", clientID, err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return nil, false
	}
	return store, true
}

func (h *SessionHandler) publish(n notify.Notification) *notify.Notification {
	// Fire notification in a background goroutine (non-blocking)
	go func() {
		if err := h.notifier.Publish(context.Background(), n); err != nil {
			log.Printf("Error publishing notification: %v", err)
		}
	}()
	return &n
}

// --- GET /session ---

func (h *SessionHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	store, ok := h.open(w, r)
	if !ok {
		return
	}

	writeJSON(w, http.StatusOK, SessionResponse{
		User:     store.Info(),
		Initials: store.Initials(),
		Welcome:  store.WelcomeMessage(),
	})
}

// --- POST /session/register ---

func (h *SessionHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	store, ok := h.open(w, r)
	if !ok {
		return
	}

	if err := store.Register(r.Context(), req.Name, req.Email, req.Password); err != nil {
		log.Printf("Error registering user: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	redirect := guard.AfterLogin(stateOf(store))
	writeJSON(w, http.StatusOK, SessionResponse{
		User:         store.Info(),
		Notification: h.publish(notify.New("Registration complete", notify.SeveritySuccess)),
		Redirect:     &redirect,
	})
}

// --- POST /session/login ---

func (h *SessionHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	store, ok := h.open(w, r)
	if !ok {
		return
	}

	if err := store.Login(r.Context(), req.Email, req.Password); err != nil {
		log.Printf("Error logging in user: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	redirect := guard.AfterLogin(stateOf(store))
	writeJSON(w, http.StatusOK, SessionResponse{
		User:         store.Info(),
		Notification: h.publish(notify.New(store.WelcomeMessage(), notify.SeveritySuccess)),
		Redirect:     &redirect,
	})
}

// --- POST /session/profile ---

func (h *SessionHandler) SetupProfile(w http.ResponseWriter, r *http.Request) {
	var req SetupProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	store, ok := h.open(w, r)
	if !ok {
		return
	}

	if err := store.SetupProfile(r.Context(), req.Grade, req.Exam, req.Subjects); err != nil {
		log.Printf("Error saving profile: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	prefs, _ := store.Preferences()
	redirect := guard.AfterProfileSetup()
	writeJSON(w, http.StatusOK, SessionResponse{
		User:         store.Info(),
		Preferences:  &prefs,
		Notification: h.publish(notify.New("Profile saved", notify.SeveritySuccess)),
		Redirect:     &redirect,
	})
}

// --- POST /session/logout ---

func (h *SessionHandler) Logout(w http.ResponseWriter, r *http.Request) {
	store, ok := h.open(w, r)
	if !ok {
		return
	}

	if err := store.Logout(r.Context()); err != nil {
		log.Printf("Error logging out user: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	redirect := guard.AfterLogout()
	writeJSON(w, http.StatusOK, SessionResponse{
		User:         store.Info(),
		Notification: h.publish(notify.New("You have logged out", notify.SeverityInfo)),
		Redirect:     &redirect,
	})
}

// --- GET /session/preferences ---

func (h *SessionHandler) GetPreferences(w http.ResponseWriter, r *http.Request) {
	store, ok := h.open(w, r)
	if !ok {
		return
	}

	prefs, found := store.Preferences()
	if !found {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "no user"})
		return
	}
	writeJSON(w, http.StatusOK, prefs)
}

// --- GET /session/guard?page=... ---

func (h *SessionHandler) Guard(w http.ResponseWriter, r *http.Request) {
	store, ok := h.open(w, r)
	if !ok {
		return
	}

	page := guard.PageFromPath(r.URL.Query().Get("page"))
	var resp GuardResponse
	if target, redirect := guard.Evaluate(page, stateOf(store)); redirect {
		resp.Redirect = &target
	}
	writeJSON(w, http.StatusOK, resp)
}

func stateOf(store *session.Store) guard.State {
	return guard.State{
		IsLoggedIn:     store.IsLoggedIn(),
		SetupCompleted: store.IsProfileSetup(),
	}
}
