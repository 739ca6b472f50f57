package cats

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/felinefinder/felinefinder/pkg/formatting"
	"github.com/felinefinder/felinefinder/pkg/handlers"
	"github.com/felinefinder/felinefinder/pkg/pagination"
	"github.com/felinefinder/felinefinder/pkg/routes"
)

// Handler exposes the cat listing routes.
type Handler struct {
	cats          System
	maxUploadSize int64
	pageCfg       pagination.Config
	logger        *slog.Logger
}

// NewHandler creates a Handler over the given listing system.
func NewHandler(sys System, logger *slog.Logger, pageCfg pagination.Config, maxUploadSize int64) *Handler {
	return &Handler{
		cats:          sys,
		maxUploadSize: maxUploadSize,
		pageCfg:       pageCfg,
		logger:        logger,
	}
}

// Routes returns the route group served under /cats.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix: "/cats",
		Routes: []routes.Route{
			{Method: http.MethodGet, Pattern: "", Handler: h.List},
			{Method: http.MethodPost, Pattern: "", Handler: h.Submit},
			{Method: http.MethodPost, Pattern: "/batch", Handler: h.SubmitBatch},
			{Method: http.MethodPost, Pattern: "/search", Handler: h.Search},
			{Method: http.MethodGet, Pattern: "/{id}", Handler: h.Find},
			{Method: http.MethodDelete, Pattern: "/{id}", Handler: h.Delete},
			{Method: http.MethodGet, Pattern: "/{id}/photo", Handler: h.Photo},
		},
	}
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	page := pagination.PageRequestFromQuery(r.URL.Query(), h.pageCfg)
	filters := FiltersFromQuery(r.URL.Query())

	result, err := h.cats.List(r.Context(), page, filters)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// Search accepts pagination and filters as a JSON body for queries too
// unwieldy for URL parameters.
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	var body struct {
		pagination.PageRequest
		Filters Filters `json:"filters"`
	}

	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, fmt.Errorf("parse search request: %w", err))
		return
	}

	result, err := h.cats.List(r.Context(), body.PageRequest, body.Filters)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

func (h *Handler) Find(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	cat, err := h.cats.Find(r.Context(), id)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, cat)
}

func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	cmd, err := h.parseSubmit(w, r)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	result, err := h.cats.Submit(r.Context(), *cmd)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, MapOutcomeStatus(result.Outcome), result)
}

func (h *Handler) SubmitBatch(w http.ResponseWriter, r *http.Request) {
	var entries []jsonSubmission

	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize)
	if err := json.NewDecoder(r.Body).Decode(&entries); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, fmt.Errorf("parse batch request: %w", err))
		return
	}

	if len(entries) == 0 {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, errors.New("batch must contain at least one submission"))
		return
	}

	cmds := make([]SubmitCommand, 0, len(entries))
	for i, entry := range entries {
		cmd, err := entry.command()
		if err != nil {
			handlers.RespondError(w, h.logger, http.StatusBadRequest, fmt.Errorf("batch entry %d: %w", i, err))
			return
		}
		cmds = append(cmds, *cmd)
	}

	results, err := h.cats.SubmitBatch(r.Context(), cmds)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, results)
}

func (h *Handler) Photo(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	result, err := h.cats.Photo(r.Context(), id)
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
		h.logger.Error("photo stream interrupted", "id", id, "error", err)
	}
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	if err := h.cats.Delete(r.Context(), id); err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// parseSubmit accepts either a multipart form with a photo file or a JSON
// body with a base64 data URI photo. The force flag may come from the body
// or a force query parameter.
func (h *Handler) parseSubmit(w http.ResponseWriter, r *http.Request) (*SubmitCommand, error) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize)

	var cmd *SubmitCommand
	var err error

	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/") {
		cmd, err = h.parseMultipart(r)
	} else {
		cmd, err = parseJSON(r)
	}
	if err != nil {
		return nil, err
	}

	if v := r.URL.Query().Get("force"); v != "" {
		cmd.Force, _ = strconv.ParseBool(v)
	}

	return cmd, nil
}

func (h *Handler) parseMultipart(r *http.Request) (*SubmitCommand, error) {
	if err := r.ParseMultipartForm(h.maxUploadSize); err != nil {
		return nil, fmt.Errorf("parse multipart form: %w", err)
	}

	file, header, err := r.FormFile("photo")
	if err != nil {
		return nil, fmt.Errorf("read photo: %w", err)
	}
	defer file.Close()

	photo, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("read photo: %w", err)
	}

	cmd := &SubmitCommand{
		Description: r.FormValue("description"),
		Location:    r.FormValue("location"),
		ListerID:    r.FormValue("lister_id"),
		Photo:       photo,
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
	}

	if name := r.FormValue("name"); name != "" {
		cmd.Name = &name
	}
	if v := r.FormValue("force"); v != "" {
		cmd.Force, _ = strconv.ParseBool(v)
	}

	return cmd, nil
}

// jsonSubmission is the JSON submit contract. Photo is a base64 data URI,
// the format browser canvases and file readers produce.
type jsonSubmission struct {
	Name        *string `json:"name"`
	Description string  `json:"description"`
	Location    string  `json:"location"`
	ListerID    string  `json:"lister_id"`
	Photo       string  `json:"photo"`
	Filename    string  `json:"filename"`
	Force       bool    `json:"force"`
}

func (s jsonSubmission) command() (*SubmitCommand, error) {
	contentType, data, err := formatting.ParseDataURI(s.Photo)
	if err != nil {
		return nil, fmt.Errorf("decode photo: %w", err)
	}

	return &SubmitCommand{
		Name:        s.Name,
		Description: s.Description,
		Location:    s.Location,
		ListerID:    s.ListerID,
		Photo:       data,
		Filename:    s.Filename,
		ContentType: contentType,
		Force:       s.Force,
	}, nil
}

func parseJSON(r *http.Request) (*SubmitCommand, error) {
	var body jsonSubmission
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("parse submission: %w", err)
	}
	return body.command()
}

func parseID(r *http.Request) (uuid.UUID, error) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid cat id: %w", err)
	}
	return id, nil
}
