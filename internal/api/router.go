package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/starford/jcal/internal/calendarservice"
)

// NewRouter creates a chi router with all API routes mounted.
// authEnabled controls whether Bearer token auth is enforced.
// sseHandler, if non-nil, is mounted at GET /events inside the auth group.
func NewRouter(svc *calendarservice.Service, authEnabled bool, token string, sseHandler http.Handler) chi.Router {
	h := NewHandler(svc)

	r := chi.NewRouter()
	r.Use(AuthMiddleware(authEnabled, token))

	// Conversions.
	r.Get("/now", h.Now)
	r.Get("/convert/gregorian", h.ToGregorian)
	r.Get("/convert/jalali", h.ToJalali)
	r.Post("/format", h.Format)
	r.Post("/parse", h.Parse)

	// Calendar.
	r.Get("/years/{year}", h.YearInfo)
	r.Get("/calendar/{year}/{month}", h.Month)

	// Occasions.
	r.Get("/occasions", h.Occasions)
	r.Post("/occasions", h.AddOccasion)

	// Occasion files.
	r.Get("/files", h.ListFiles)
	r.Post("/files", h.CreateFile)
	r.Get("/files/*", h.GetFile)
	r.Put("/files/*", h.UpdateFile)
	r.Delete("/files/*", h.DeleteFile)

	if sseHandler != nil {
		r.Get("/events", sseHandler.ServeHTTP)
	}

	return r
}
