package http

import (
	"io"
	"log/slog"
	"os"

	"github.com/cmlabs-hris/hris-workflow-go/internal/domain/user"
	"github.com/cmlabs-hris/hris-workflow-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/hris-workflow-go/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

// RouterOptions carries the deployment knobs of the HTTP surface.
type RouterOptions struct {
	AllowedOrigins []string
	Env            string
	Version        string
	LogOutput      io.Writer // stdout when nil
	LogLevel       slog.Level
}

// Handlers groups everything the router mounts.
type Handlers struct {
	Request      RequestHandler
	Grant        GrantHandler
	Attendance   AttendanceHandler
	Shift        ShiftHandler
	Employee     EmployeeHandler
	Holiday      HolidayHandler
	Notification NotificationHandler
}

func NewRouter(JWTService jwt.Service, h Handlers, opts RouterOptions) *chi.Mux {
	r := chi.NewRouter()

	out := opts.LogOutput
	if out == nil {
		out = os.Stdout
	}
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(out, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "hris-workflow"),
		slog.String("version", opts.Version),
		slog.String("env", opts.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   opts.AllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  opts.LogLevel,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
		r.Use(middleware.AuthRequired(JWTService))

		r.Route("/requests", func(r chi.Router) {
			r.With(middleware.RequirePermission(user.PermissionRequestCreate)).Post("/", h.Request.Submit)
			r.Get("/", h.Request.List)
			r.Get("/my", h.Request.ListMine)
			r.With(middleware.RequirePermission(user.PermissionRequestDecide)).Get("/inbox", h.Request.Inbox)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", h.Request.Get)
				r.With(middleware.RequirePermission(user.PermissionRequestDecide)).Post("/decisions", h.Request.Decide)
			})
		})

		r.Route("/grants", func(r chi.Router) {
			r.Get("/my", h.Grant.ListMine)
			r.Get("/my/claimable", h.Grant.ListClaimable)
			r.Get("/{id}", h.Grant.Get)
			r.With(middleware.RequirePermission(user.PermissionGrantClaim)).Post("/{id}/claim", h.Grant.Claim)
		})

		r.Route("/attendance", func(r chi.Router) {
			r.With(middleware.RequirePermission(user.PermissionPunchRecord)).Post("/punches", h.Attendance.RecordPunch)
			r.Get("/my", h.Attendance.GetMyAttendance)
		})

		r.Route("/shifts", func(r chi.Router) {
			r.Get("/", h.Shift.List)
			r.Get("/assignments/{employeeID}", h.Shift.GetAssignment)
			r.Group(func(r chi.Router) {
				r.Use(middleware.RequirePermission(user.PermissionShiftManage))
				r.Post("/", h.Shift.Create)
				r.Put("/assignments", h.Shift.Assign)
			})
		})

		r.Route("/employees", func(r chi.Router) {
			r.Get("/my/entitlement", h.Employee.MyEntitlement)
			r.Get("/celebrations", h.Employee.Celebrations)
			r.Get("/{id}", h.Employee.Get)
			r.Group(func(r chi.Router) {
				r.Use(middleware.RequirePermission(user.PermissionEmployeeManage))
				r.Get("/", h.Employee.List)
				r.Post("/", h.Employee.Create)
			})
		})

		r.Route("/holidays", func(r chi.Router) {
			r.Get("/", h.Holiday.List)
			r.Get("/check", h.Holiday.Check)
			r.With(middleware.RequirePermission(user.PermissionHolidayManage)).Post("/import", h.Holiday.Import)
		})

		r.Route("/notifications", func(r chi.Router) {
			r.Get("/", h.Notification.List)
			r.Get("/unread-count", h.Notification.UnreadCount)
			r.Post("/read", h.Notification.MarkAsRead)
			r.Get("/preferences", h.Notification.GetPreferences)
			r.Put("/preferences", h.Notification.UpdatePreference)
		})
	})

	return r
}
