package api

import (
	"io"
	"net/http"

	"github.com/gorilla/mux"

	"fitness-journal/internal/services"
	"fitness-journal/internal/validation"
)

const maxBodyBytes = 1 << 20

// Handler serves the auth and entry endpoints
type Handler struct {
	entries        services.EntryService
	stats          services.StatsService
	auth           services.AuthService
	entryValidator *validation.EntryValidator
	userValidator  *validation.UserValidator
}

// NewHandler creates a handler backed by the given services
func NewHandler(container *services.ServiceContainer) *Handler {
	return &Handler{
		entries:        container.EntryService,
		stats:          container.StatsService,
		auth:           container.AuthService,
		entryValidator: validation.NewEntryValidator(),
		userValidator:  validation.NewUserValidator(),
	}
}

// readBody reads at most maxBodyBytes of the request body.
func readBody(w http.ResponseWriter, r *http.Request) ([]byte, error) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		ve := validation.NewValidationError()
		ve.AddFormError("Request body could not be read")
		return nil, ve
	}
	return body, nil
}

// ========== Auth ==========

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	body, err := readBody(w, r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	input, err := h.userValidator.ParseRegister(body)
	if err != nil {
		writeError(w, r, err)
		return
	}

	result, err := h.auth.Register(r.Context(), input)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	body, err := readBody(w, r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	input, err := h.userValidator.ParseLogin(body)
	if err != nil {
		writeError(w, r, err)
		return
	}

	result, err := h.auth.Login(r.Context(), input)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *Handler) me(w http.ResponseWriter, r *http.Request) {
	userID, _ := UserIDFromContext(r.Context())

	user, err := h.auth.Me(r.Context(), userID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

// ========== Entries ==========

func (h *Handler) listEntries(w http.ResponseWriter, r *http.Request) {
	userID, _ := UserIDFromContext(r.Context())

	opts, err := h.entryValidator.ParseListQuery(userID, r.URL.Query())
	if err != nil {
		writeError(w, r, err)
		return
	}

	page, err := h.entries.List(r.Context(), opts)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, page)
}

func (h *Handler) entryStats(w http.ResponseWriter, r *http.Request) {
	userID, _ := UserIDFromContext(r.Context())

	stats, err := h.stats.GetStats(r.Context(), userID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func (h *Handler) createEntry(w http.ResponseWriter, r *http.Request) {
	userID, _ := UserIDFromContext(r.Context())

	body, err := readBody(w, r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	input, err := h.entryValidator.ParseCreateEntry(body)
	if err != nil {
		writeError(w, r, err)
		return
	}

	entry, err := h.entries.Create(r.Context(), userID, input)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, entry)
}

func (h *Handler) getEntry(w http.ResponseWriter, r *http.Request) {
	userID, _ := UserIDFromContext(r.Context())

	entry, err := h.entries.Get(r.Context(), userID, mux.Vars(r)["id"])
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, entry)
}

func (h *Handler) updateEntry(w http.ResponseWriter, r *http.Request) {
	userID, _ := UserIDFromContext(r.Context())

	body, err := readBody(w, r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	input, err := h.entryValidator.ParseUpdateEntry(body)
	if err != nil {
		writeError(w, r, err)
		return
	}

	entry, err := h.entries.Update(r.Context(), userID, mux.Vars(r)["id"], input)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, entry)
}

func (h *Handler) deleteEntry(w http.ResponseWriter, r *http.Request) {
	userID, _ := UserIDFromContext(r.Context())

	if err := h.entries.Delete(r.Context(), userID, mux.Vars(r)["id"]); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
