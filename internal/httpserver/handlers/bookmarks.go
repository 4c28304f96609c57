package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/MrSnakeDoc/bookmarkd/internal/domain"
	"github.com/MrSnakeDoc/bookmarkd/internal/gateway"
	"github.com/MrSnakeDoc/bookmarkd/internal/httpserver/deps"
	"github.com/MrSnakeDoc/bookmarkd/internal/httpserver/respond"
	"github.com/MrSnakeDoc/bookmarkd/internal/logger"
)

const (
	maxBodyBytes = 1 << 20

	notFoundMessage    = "Bookmark Not Found"
	serverErrorMessage = "server error"
	invalidJSONMessage = "Request body must be a valid JSON object"
	tooLargeMessage    = "Request body is too large"
)

// CreateBookmark validates the payload, stores it and answers 201 with the
// sanitized record and its Location.
func CreateBookmark(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		payload, err := decodeObject(http.MaxBytesReader(w, r.Body, maxBodyBytes))
		if err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				_ = respond.Text(w, http.StatusRequestEntityTooLarge, tooLargeMessage)
				return
			}
			_ = respond.Text(w, http.StatusBadRequest, invalidJSONMessage)
			return
		}

		nb, err := d.Validator.ValidateNew(payload)
		if err != nil {
			var ve *domain.ValidationError
			if errors.As(err, &ve) {
				d.Logger.Debug("bookmark rejected",
					logger.String("field", ve.Field),
					logger.String("reason", ve.Message),
				)
				_ = respond.Text(w, http.StatusBadRequest, ve.Message)
				return
			}
			serverError(w, r, d, err)
			return
		}

		created, err := d.Gateway.Create(r.Context(), nb)
		if err != nil {
			serverError(w, r, d, err)
			return
		}

		d.Logger.Info("bookmark created", logger.Int64("id", created.ID))
		w.Header().Set("Location", created.Location())
		_ = respond.JSON(w, http.StatusCreated, d.Sanitizer.Bookmark(created))
	}
}

// ListBookmarks answers with every bookmark, [] when there are none.
func ListBookmarks(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		all, err := d.Gateway.List(r.Context())
		if err != nil {
			serverError(w, r, d, err)
			return
		}
		_ = respond.JSON(w, http.StatusOK, d.Sanitizer.Bookmarks(all))
	}
}

// GetBookmark answers 404 in plain text when the id matches nothing.
func GetBookmark(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		b, err := lookup(r, d)
		switch {
		case errors.Is(err, domain.ErrNotFound):
			_ = respond.Text(w, http.StatusNotFound, notFoundMessage)
		case err != nil:
			serverError(w, r, d, err)
		default:
			_ = respond.JSON(w, http.StatusOK, d.Sanitizer.Bookmark(b))
		}
	}
}

// DeleteBookmark answers 204, or 404 with a JSON error body.
func DeleteBookmark(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := domain.ParseID(chi.URLParam(r, "id"))
		if err == nil {
			err = d.Gateway.Delete(r.Context(), id)
		}

		switch {
		case errors.Is(err, domain.ErrNotFound):
			_ = respond.Error(w, http.StatusNotFound, notFoundMessage)
		case err != nil:
			serverError(w, r, d, err)
		default:
			d.Logger.Info("bookmark deleted", logger.Int64("id", id))
			w.WriteHeader(http.StatusNoContent)
		}
	}
}

func lookup(r *http.Request, d deps.Deps) (domain.Bookmark, error) {
	id, err := domain.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		return domain.Bookmark{}, err
	}
	return d.Gateway.Get(r.Context(), id)
}

// decodeObject reads a single JSON object. Numbers stay json.Number so the
// validator can tell 3 from 3.5.
func decodeObject(body io.Reader) (map[string]any, error) {
	raw, err := io.ReadAll(body)
	if err != nil {
		return nil, err
	}
	if len(bytes.TrimSpace(raw)) == 0 || bytes.TrimSpace(raw)[0] != '{' {
		return nil, errors.New("body is not a JSON object")
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var payload map[string]any
	if err := dec.Decode(&payload); err != nil {
		return nil, err
	}
	if dec.More() {
		return nil, errors.New("trailing data after JSON object")
	}
	return payload, nil
}

func serverError(w http.ResponseWriter, r *http.Request, d deps.Deps, err error) {
	fields := []logger.Field{
		logger.String("method", r.Method),
		logger.String("path", r.URL.Path),
		logger.String("request_id", middleware.GetReqID(r.Context())),
		logger.Error(err),
	}
	var se *gateway.StorageError
	if errors.As(err, &se) {
		fields = append(fields, logger.String("op", se.Op))
	}
	d.Logger.Error("request failed", fields...)
	_ = respond.Error(w, http.StatusInternalServerError, serverErrorMessage)
}
