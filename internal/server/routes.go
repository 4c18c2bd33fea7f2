package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/Tomlord1122/assignment-tracker/internal/export"
	"github.com/Tomlord1122/assignment-tracker/internal/service"
)

func (s *Server) RegisterRoutes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://*", "http://*"},
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS", "PATCH"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/health", s.healthHandler)

	r.Route("/tasks", func(r chi.Router) {
		r.Get("/", s.listTasksHandler)
		r.Post("/", s.createTaskHandler)
		r.Patch("/{index}/toggle", s.toggleTaskHandler)
		r.Delete("/{index}", s.deleteTaskHandler)
	})

	r.Route("/assignments", func(r chi.Router) {
		r.Get("/", s.listAssignmentsHandler)
		r.Post("/", s.createAssignmentHandler)
		r.Delete("/{id}", s.deleteAssignmentHandler)
	})

	r.Get("/export", s.exportHandler)

	return r
}

func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	healthStats := s.db.Health()
	if status, ok := healthStats["status"]; ok && status == "down" {
		respondWithJSON(w, http.StatusServiceUnavailable, healthStats)
		return
	}
	respondWithJSON(w, http.StatusOK, healthStats)
}

func (s *Server) listTasksHandler(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, s.taskService.ListTasks(r.Context()))
}

func (s *Server) createTaskHandler(w http.ResponseWriter, r *http.Request) {
	var req service.CreateTaskRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}

	tasks, err := s.taskService.AddTask(r.Context(), req)
	if err != nil {
		s.respondWithServiceError(w, err, "Failed to add task")
		return
	}
	respondWithJSON(w, http.StatusCreated, tasks)
}

func (s *Server) toggleTaskHandler(w http.ResponseWriter, r *http.Request) {
	index, ok := indexParam(w, r)
	if !ok {
		return
	}

	tasks, err := s.taskService.ToggleTask(r.Context(), index)
	if err != nil {
		s.respondWithServiceError(w, err, "Failed to toggle task")
		return
	}
	respondWithJSON(w, http.StatusOK, tasks)
}

func (s *Server) deleteTaskHandler(w http.ResponseWriter, r *http.Request) {
	index, ok := indexParam(w, r)
	if !ok {
		return
	}

	tasks, err := s.taskService.DeleteTask(r.Context(), index)
	if err != nil {
		s.respondWithServiceError(w, err, "Failed to delete task")
		return
	}
	respondWithJSON(w, http.StatusOK, tasks)
}

func (s *Server) listAssignmentsHandler(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, s.assignmentService.ListAssignments(r.Context()))
}

func (s *Server) createAssignmentHandler(w http.ResponseWriter, r *http.Request) {
	var req service.CreateAssignmentRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}

	assignments, err := s.assignmentService.AddAssignment(r.Context(), req)
	if err != nil {
		s.respondWithServiceError(w, err, "Failed to add assignment")
		return
	}
	respondWithJSON(w, http.StatusCreated, assignments)
}

func (s *Server) deleteAssignmentHandler(w http.ResponseWriter, r *http.Request) {
	idStr := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil || id <= 0 {
		respondWithError(w, http.StatusBadRequest, "Invalid assignment ID provided")
		return
	}

	assignments, err := s.assignmentService.DeleteAssignment(r.Context(), id)
	if err != nil {
		s.respondWithServiceError(w, err, "Failed to delete assignment")
		return
	}
	respondWithJSON(w, http.StatusOK, assignments)
}

func (s *Server) exportHandler(w http.ResponseWriter, r *http.Request) {
	format := r.URL.Query().Get("format")
	if format == "" {
		format = "json"
	}

	out, err := s.exporter.Export(r.Context(), format)
	if err != nil {
		if errors.Is(err, export.ErrUnknownFormat) {
			respondWithError(w, http.StatusBadRequest, err.Error())
			return
		}
		s.logger.Error("export failed", "format", format, "error", err)
		respondWithError(w, http.StatusInternalServerError, "Failed to export")
		return
	}

	w.Header().Set("Content-Type", export.ContentType(format))
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=tracker.%s", strings.ToLower(format)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(out)
}

// decodeJSON decodes the request body into dst, writing a 400 and returning
// false when the body is unusable.
func (s *Server) decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	err := decoder.Decode(dst)
	if err == nil {
		return true
	}

	var syntaxError *json.SyntaxError
	var unmarshalTypeError *json.UnmarshalTypeError
	switch {
	case errors.As(err, &syntaxError):
		msg := fmt.Sprintf("Request body contains badly-formed JSON (at position %d)", syntaxError.Offset)
		respondWithError(w, http.StatusBadRequest, msg)
	case errors.Is(err, io.ErrUnexpectedEOF):
		respondWithError(w, http.StatusBadRequest, "Request body contains badly-formed JSON")
	case errors.As(err, &unmarshalTypeError):
		msg := fmt.Sprintf("Request body contains an invalid value for the %q field (at position %d)", unmarshalTypeError.Field, unmarshalTypeError.Offset)
		respondWithError(w, http.StatusBadRequest, msg)
	case strings.HasPrefix(err.Error(), "json: unknown field "):
		fieldName := strings.TrimPrefix(err.Error(), "json: unknown field ")
		respondWithError(w, http.StatusBadRequest, fmt.Sprintf("Request body contains unknown field %s", fieldName))
	case errors.Is(err, io.EOF):
		respondWithError(w, http.StatusBadRequest, "Request body must not be empty")
	default:
		s.logger.Error("error decoding request body", "error", err)
		respondWithError(w, http.StatusInternalServerError, "Error processing request")
	}
	return false
}

func (s *Server) respondWithServiceError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case service.IsValidation(err):
		respondWithError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrIndexOutOfRange), errors.Is(err, service.ErrAssignmentNotFound):
		respondWithError(w, http.StatusNotFound, err.Error())
	default:
		s.logger.Error(fallback, "error", err)
		respondWithError(w, http.StatusInternalServerError, fallback)
	}
}

func indexParam(w http.ResponseWriter, r *http.Request) (int, bool) {
	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil || index < 0 {
		respondWithError(w, http.StatusBadRequest, "Invalid index provided")
		return 0, false
	}
	return index, true
}

func respondWithError(w http.ResponseWriter, code int, message string) {
	respondWithJSON(w, code, map[string]string{"error": message})
}

func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error":"Internal server error preparing response"}`))
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_, _ = w.Write(response)
}
