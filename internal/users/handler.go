package users

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/felinefinder/felinefinder/pkg/handlers"
	"github.com/felinefinder/felinefinder/pkg/pagination"
	"github.com/felinefinder/felinefinder/pkg/routes"
)

// Handler exposes the user profile and friendship routes.
type Handler struct {
	users   System
	pageCfg pagination.Config
	logger  *slog.Logger
}

// NewHandler creates a Handler over the given user system.
func NewHandler(sys System, logger *slog.Logger, pageCfg pagination.Config) *Handler {
	return &Handler{
		users:   sys,
		pageCfg: pageCfg,
		logger:  logger,
	}
}

// Routes returns the route group served under /users.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix: "/users",
		Routes: []routes.Route{
			{Method: http.MethodGet, Pattern: "", Handler: h.List},
			{Method: http.MethodPost, Pattern: "", Handler: h.Create},
			{Method: http.MethodPost, Pattern: "/search", Handler: h.Search},
			{Method: http.MethodGet, Pattern: "/{id}", Handler: h.Find},
			{Method: http.MethodPut, Pattern: "/{id}", Handler: h.Update},
			{Method: http.MethodDelete, Pattern: "/{id}", Handler: h.Delete},
			{Method: http.MethodGet, Pattern: "/{id}/avatar", Handler: h.Avatar},
			{Method: http.MethodGet, Pattern: "/{id}/friends", Handler: h.Friends},
			{Method: http.MethodPost, Pattern: "/{id}/friends/{friendId}", Handler: h.AddFriend},
			{Method: http.MethodDelete, Pattern: "/{id}/friends/{friendId}", Handler: h.RemoveFriend},
		},
	}
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	page := pagination.PageRequestFromQuery(r.URL.Query(), h.pageCfg)
	filters := FiltersFromQuery(r.URL.Query())

	result, err := h.users.List(r.Context(), page, filters)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	var body struct {
		pagination.PageRequest
		Filters Filters `json:"filters"`
	}

	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, fmt.Errorf("parse search request: %w", err))
		return
	}

	result, err := h.users.List(r.Context(), body.PageRequest, body.Filters)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

func (h *Handler) Find(w http.ResponseWriter, r *http.Request) {
	user, err := h.users.Find(r.Context(), r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, user)
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var cmd CreateCommand
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, fmt.Errorf("parse user: %w", err))
		return
	}

	user, err := h.users.Create(r.Context(), cmd)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusCreated, user)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	var cmd UpdateCommand
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, fmt.Errorf("parse user: %w", err))
		return
	}

	user, err := h.users.Update(r.Context(), r.PathValue("id"), cmd)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, user)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.users.Delete(r.Context(), r.PathValue("id")); err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) Avatar(w http.ResponseWriter, r *http.Request) {
	result, err := h.users.Avatar(r.Context(), r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}
	defer result.Body.Close()

	w.Header().Set("Content-Type", result.ContentType)
	if result.ContentLength > 0 {
		w.Header().Set("Content-Length", strconv.FormatInt(result.ContentLength, 10))
	}

	if _, err := io.Copy(w, result.Body); err != nil {
		h.logger.Error("avatar stream interrupted", "id", r.PathValue("id"), "error", err)
	}
}

func (h *Handler) Friends(w http.ResponseWriter, r *http.Request) {
	friends, err := h.users.Friends(r.Context(), r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, friends)
}

func (h *Handler) AddFriend(w http.ResponseWriter, r *http.Request) {
	err := h.users.AddFriend(r.Context(), r.PathValue("id"), r.PathValue("friendId"))
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) RemoveFriend(w http.ResponseWriter, r *http.Request) {
	err := h.users.RemoveFriend(r.Context(), r.PathValue("id"), r.PathValue("friendId"))
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
