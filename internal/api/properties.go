package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/starford/laguz/internal/apperr"
)

// ListProperties handles GET /api/properties.
//
// With ?path= it parses that note fresh and returns its properties in
// document order. Without a path it queries the stored index, optionally
// filtered by ?key= and ?type=.
//
//	@Summary		List inline properties
//	@Tags			properties
//	@Produce		json
//	@Param			path	query		string	false	"Note path (parse fresh)"
//	@Param			key		query		string	false	"Filter by property key"
//	@Param			type	query		string	false	"Filter by value type"
//	@Param			limit	query		int		false	"Max results"
//	@Success		200		{object}	PropertyListResponse
//	@Failure		404		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/properties [get]
func (h *Handler) ListProperties(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	path := q.Get("path")

	if path != "" {
		properties, err := h.svc.ListProperties(r.Context(), path)
		if err != nil {
			if errors.Is(err, apperr.ErrNotFound) {
				writeJSON(w, http.StatusNotFound, errorBody("not found"))
			} else {
				slog.Error("list properties failed", slog.String("path", path), slog.String("error", err.Error()))
				writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
			}
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"path":       path,
			"properties": properties,
		})
		return
	}

	limit, _ := strconv.Atoi(q.Get("limit"))
	rows, err := h.svc.QueryProperties(r.Context(), q.Get("key"), q.Get("type"), limit)
	if err != nil {
		slog.Error("query properties failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"properties": rows,
	})
}

// ReplaceProperty handles POST /api/properties/replace.
//
//	@Summary		Rewrite the value of a note's nth property
//	@Tags			properties
//	@Accept			json
//	@Produce		json
//	@Param			body	body		ReplacePropertyRequest	true	"Property to replace"
//	@Success		200		{object}	NoteDetail
//	@Failure		400		{object}	errResponse
//	@Failure		404		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/properties/replace [post]
func (h *Handler) ReplaceProperty(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	var req ReplacePropertyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}
	if req.Path == "" {
		writeJSON(w, http.StatusBadRequest, errorBody("path is required"))
		return
	}
	note, err := h.svc.SetProperty(r.Context(), req.Path, req.Index, req.Value)
	if err != nil {
		switch {
		case errors.Is(err, apperr.ErrNotFound):
			writeJSON(w, http.StatusNotFound, errorBody("not found"))
		case errors.Is(err, apperr.ErrInvalid):
			writeJSON(w, http.StatusBadRequest, errorBody("property index out of range"))
		default:
			slog.Error("replace property failed", slog.String("path", req.Path), slog.String("error", err.Error()))
			writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		}
		return
	}
	writeJSON(w, http.StatusOK, note)
}

// InsertProperty handles POST /api/properties/insert.
//
//	@Summary		Append a [key::value] property to a line of a note
//	@Tags			properties
//	@Accept			json
//	@Produce		json
//	@Param			body	body		InsertPropertyRequest	true	"Property to insert"
//	@Success		200		{object}	NoteDetail
//	@Failure		400		{object}	errResponse
//	@Failure		404		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/properties/insert [post]
func (h *Handler) InsertProperty(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	var req InsertPropertyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}
	if req.Path == "" || req.Key == "" {
		writeJSON(w, http.StatusBadRequest, errorBody("path and key are required"))
		return
	}
	note, err := h.svc.AddProperty(r.Context(), req.Path, req.Line, req.Key, req.Value)
	if err != nil {
		switch {
		case errors.Is(err, apperr.ErrNotFound):
			writeJSON(w, http.StatusNotFound, errorBody("not found"))
		case errors.Is(err, apperr.ErrInvalid):
			writeJSON(w, http.StatusBadRequest, errorBody("line out of range"))
		default:
			slog.Error("insert property failed", slog.String("path", req.Path), slog.String("error", err.Error()))
			writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		}
		return
	}
	writeJSON(w, http.StatusOK, note)
}
