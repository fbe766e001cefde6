package http

import (
	"log/slog"
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	"lawflow/internal/delivery/http/controllers"
	"lawflow/internal/delivery/http/helpers"
	"lawflow/internal/delivery/http/middleware"
)

// Controllers groups the handlers mounted by NewRouter.
type Controllers struct {
	Clients   *controllers.ClientController
	Projects  *controllers.ProjectController
	Tasks     *controllers.TaskController
	Checklist *controllers.ChecklistController
	Timeline  *controllers.TimelineController
	Activity  *controllers.ActivityController
	Files     *controllers.FileController
	Templates *controllers.TemplateController
	Exports   *controllers.ExportController
	Health    *controllers.HealthController
}

// NewRouter initializes the HTTP router with all application routes
func NewRouter(c Controllers) *http.ServeMux {
	mux := http.NewServeMux()

	// Clients
	mux.HandleFunc("GET /clients", c.Clients.ListClients)
	mux.HandleFunc("POST /clients", c.Clients.CreateClient)
	mux.HandleFunc("GET /clients/{id}", c.Clients.GetClient)

	// Projects
	mux.HandleFunc("GET /projects", c.Projects.ListProjects)
	mux.HandleFunc("POST /projects", c.Projects.CreateProject)
	mux.HandleFunc("GET /projects/{id}", c.Projects.GetProject)
	mux.HandleFunc("PATCH /projects/{id}", c.Projects.UpdateProject)
	mux.HandleFunc("DELETE /projects/{id}", c.Projects.DeleteProject)

	// Tasks
	mux.HandleFunc("GET /tasks", c.Tasks.ListTasks)
	mux.HandleFunc("POST /tasks", c.Tasks.CreateTask)
	mux.HandleFunc("PATCH /tasks/{id}", c.Tasks.UpdateTask)
	mux.HandleFunc("DELETE /tasks/{id}", c.Tasks.DeleteTask)

	// Checklists, timeline and activity
	mux.HandleFunc("GET /checklists", c.Checklist.ListChecklist)
	mux.HandleFunc("PATCH /checklists/{id}", c.Checklist.UpdateChecklistItem)
	mux.HandleFunc("GET /timeline", c.Timeline.ListTimeline)
	mux.HandleFunc("POST /timeline", c.Timeline.CreateTimelineItem)
	mux.HandleFunc("GET /activity", c.Activity.ListActivity)

	// Files
	mux.HandleFunc("GET /files", c.Files.ListFiles)
	mux.HandleFunc("POST /files/upload", c.Files.UploadFile)
	mux.HandleFunc("GET /files/download/{id}", c.Files.Download)
	// versions, preview and thumbnail share one pattern so it does not
	// overlap /files/download/{id}.
	mux.HandleFunc("GET /files/{id}/{kind}", c.Files.FileResource)

	// Templates and exports
	mux.HandleFunc("GET /templates", c.Templates.GetTemplates)
	mux.HandleFunc("GET /calendar/ics", c.Exports.ProjectCalendar)
	mux.HandleFunc("GET /closing-pack/{project_id}", c.Exports.ClosingPack)
	mux.HandleFunc("POST /closing-pack/{project_id}/notify", c.Exports.NotifyClient)

	// Health
	mux.HandleFunc("GET /health", c.Health.Health)
	mux.HandleFunc("GET /health/detailed", c.Health.HealthDetailed)

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "route not found")
	})

	return mux
}

// NewHandler wraps the router with the request logging, CORS and actor middlewares.
func NewHandler(logger *slog.Logger, allowedOrigins []string, c Controllers) http.Handler {
	var h http.Handler = NewRouter(c)
	h = middleware.Actor(h)
	h = middleware.CORS(allowedOrigins, h)
	return middleware.LoggingMiddleware(logger, h)
}
