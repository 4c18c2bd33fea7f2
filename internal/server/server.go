package server

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/Tomlord1122/assignment-tracker/internal/database"
	"github.com/Tomlord1122/assignment-tracker/internal/export"
	"github.com/Tomlord1122/assignment-tracker/internal/service"
)

type Server struct {
	port              int
	taskService       service.TaskService
	assignmentService service.AssignmentService
	exporter          *export.Exporter
	db                database.Service
	logger            *slog.Logger
}

// Deps are the collaborators the HTTP layer calls into.
type Deps struct {
	Tasks       service.TaskService
	Assignments service.AssignmentService
	Exporter    *export.Exporter
	DB          database.Service
	Logger      *slog.Logger
}

func NewServer(port int, deps Deps) *http.Server {
	appServer := &Server{
		port:              port,
		taskService:       deps.Tasks,
		assignmentService: deps.Assignments,
		exporter:          deps.Exporter,
		db:                deps.DB,
		logger:            deps.Logger,
	}

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", appServer.port),
		Handler:      appServer.RegisterRoutes(),
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	return server
}
