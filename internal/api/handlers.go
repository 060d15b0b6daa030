package api

import (
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/starford/jcal/internal/calendarservice"
	"github.com/starford/jcal/internal/parser"
)

const defaultSearchLimit = 20

// Handler holds API route handlers.
type Handler struct {
	svc *calendarservice.Service
}

// NewHandler creates a new Handler.
func NewHandler(svc *calendarservice.Service) *Handler {
	return &Handler{svc: svc}
}

// filePath extracts the occasion file path from the URL (everything after /api/files/).
// Supports encoded slashes from OpenAPI clients (e.g. religious%2Fshia.yaml).
func filePath(r *http.Request) string {
	raw := strings.TrimPrefix(chi.URLParam(r, "*"), "/")
	if raw == "" {
		return ""
	}
	decoded, err := url.PathUnescape(raw)
	if err != nil {
		return raw
	}
	return decoded
}

// dateTimeQuery joins the date and optional time query parameters.
func dateTimeQuery(r *http.Request) string {
	q := r.URL.Query()
	if t := q.Get("time"); t != "" {
		return q.Get("date") + " " + t
	}
	return q.Get("date")
}

func intParam(r *http.Request, name string) (int, bool) {
	n, err := strconv.Atoi(chi.URLParam(r, name))
	return n, err == nil
}

// Now handles GET /api/now.
//
//	@Summary		Current time in both calendars
//	@Tags			convert
//	@Produce		json
//	@Success		200	{object}	Moment
//	@Security		BearerAuth
//	@Router			/now [get]
func (h *Handler) Now(w http.ResponseWriter, r *http.Request) {
	m, err := h.svc.Now(r.Context())
	if err != nil {
		writeServiceError(w, "now", err)
		return
	}
	writeJSON(w, http.StatusOK, m)
}

// ToGregorian handles GET /api/convert/gregorian.
//
//	@Summary		Convert a Jalali date to Gregorian
//	@Tags			convert
//	@Produce		json
//	@Param			date	query		string	true	"Jalali date, YYYY-MM-DD"
//	@Param			time	query		string	false	"Wall clock, HH:MM:SS"
//	@Success		200		{object}	Moment
//	@Failure		400		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/convert/gregorian [get]
func (h *Handler) ToGregorian(w http.ResponseWriter, r *http.Request) {
	if r.URL.Query().Get("date") == "" {
		writeJSON(w, http.StatusBadRequest, errorBody("query parameter 'date' is required"))
		return
	}
	m, err := h.svc.ToGregorian(r.Context(), dateTimeQuery(r))
	if err != nil {
		writeServiceError(w, "convert to gregorian", err)
		return
	}
	writeJSON(w, http.StatusOK, m)
}

// ToJalali handles GET /api/convert/jalali.
//
//	@Summary		Convert a Gregorian date to Jalali
//	@Tags			convert
//	@Produce		json
//	@Param			date	query		string	true	"Gregorian date, YYYY-MM-DD or RFC 3339"
//	@Param			time	query		string	false	"Wall clock, HH:MM:SS"
//	@Success		200		{object}	Moment
//	@Failure		400		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/convert/jalali [get]
func (h *Handler) ToJalali(w http.ResponseWriter, r *http.Request) {
	if r.URL.Query().Get("date") == "" {
		writeJSON(w, http.StatusBadRequest, errorBody("query parameter 'date' is required"))
		return
	}
	m, err := h.svc.ToJalali(r.Context(), dateTimeQuery(r))
	if err != nil {
		writeServiceError(w, "convert to jalali", err)
		return
	}
	writeJSON(w, http.StatusOK, m)
}

// Format handles POST /api/format.
//
//	@Summary		Format a Jalali date-time with a strftime layout
//	@Tags			convert
//	@Accept			json
//	@Produce		json
//	@Param			body	body		FormatRequest	true	"Value and layout"
//	@Success		200		{object}	FormatResponse
//	@Failure		400		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/format [post]
func (h *Handler) Format(w http.ResponseWriter, r *http.Request) {
	var req FormatRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	out, err := h.svc.Format(r.Context(), req.DateTime, req.Layout)
	if err != nil {
		writeServiceError(w, "format", err)
		return
	}
	writeJSON(w, http.StatusOK, FormatResponse{Result: out})
}

// Parse handles POST /api/parse.
//
//	@Summary		Parse a Jalali date-time with a strptime layout
//	@Tags			convert
//	@Accept			json
//	@Produce		json
//	@Param			body	body		ParseRequest	true	"Value and layout"
//	@Success		200		{object}	Moment
//	@Failure		400		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/parse [post]
func (h *Handler) Parse(w http.ResponseWriter, r *http.Request) {
	var req ParseRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	m, err := h.svc.Parse(r.Context(), req.Value, req.Layout)
	if err != nil {
		writeServiceError(w, "parse", err)
		return
	}
	writeJSON(w, http.StatusOK, m)
}

// YearInfo handles GET /api/years/{year}.
//
//	@Summary		Leap cycle information of a year
//	@Tags			calendar
//	@Produce		json
//	@Param			year	path		int	true	"Jalali year"
//	@Success		200		{object}	YearSummary
//	@Failure		400		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/years/{year} [get]
func (h *Handler) YearInfo(w http.ResponseWriter, r *http.Request) {
	year, ok := intParam(r, "year")
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorBody("year must be a number"))
		return
	}
	info, err := h.svc.YearInfo(r.Context(), year)
	if err != nil {
		writeServiceError(w, "year info", err, slog.Int("year", year))
		return
	}
	writeJSON(w, http.StatusOK, info)
}

// Month handles GET /api/calendar/{year}/{month}.
//
//	@Summary		Month grid with occasions
//	@Tags			calendar
//	@Produce		json
//	@Param			year	path		int	true	"Jalali year"
//	@Param			month	path		int	true	"Month, 1..12"
//	@Success		200		{object}	Month
//	@Failure		400		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/calendar/{year}/{month} [get]
func (h *Handler) Month(w http.ResponseWriter, r *http.Request) {
	year, ok := intParam(r, "year")
	month, ok2 := intParam(r, "month")
	if !ok || !ok2 {
		writeJSON(w, http.StatusBadRequest, errorBody("year and month must be numbers"))
		return
	}
	m, err := h.svc.Month(r.Context(), year, month)
	if err != nil {
		writeServiceError(w, "month", err, slog.Int("year", year), slog.Int("month", month))
		return
	}
	writeJSON(w, http.StatusOK, m)
}

// Occasions handles GET /api/occasions.
//
// With q set it searches occasion titles; otherwise it lists the occasions
// of year (default: current year) and optionally month.
//
//	@Summary		List or search occasions
//	@Tags			occasions
//	@Produce		json
//	@Param			year	query		int		false	"Jalali year"
//	@Param			month	query		int		false	"Month, 1..12"
//	@Param			q		query		string	false	"Search query"
//	@Param			limit	query		int		false	"Max search results"
//	@Success		200		{object}	OccasionsResponse
//	@Failure		400		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/occasions [get]
func (h *Handler) Occasions(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	if q := query.Get("q"); q != "" {
		limit, _ := strconv.Atoi(query.Get("limit"))
		if limit <= 0 {
			limit = defaultSearchLimit
		}
		results, err := h.svc.Search(r.Context(), q, limit)
		if err != nil {
			writeServiceError(w, "search", err, slog.String("query", q))
			return
		}
		writeJSON(w, http.StatusOK, SearchResponse{Results: results})
		return
	}

	year := h.svc.Today().Year()
	if s := query.Get("year"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, errorBody("year must be a number"))
			return
		}
		year = n
	}
	month := 0
	if s := query.Get("month"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, errorBody("month must be a number"))
			return
		}
		month = n
	}

	occ, err := h.svc.Occasions(r.Context(), year, month)
	if err != nil {
		writeServiceError(w, "list occasions", err)
		return
	}
	writeJSON(w, http.StatusOK, OccasionsResponse{Occasions: occ})
}

// AddOccasion handles POST /api/occasions.
//
//	@Summary		Append an occasion to an occasion file
//	@Tags			occasions
//	@Accept			json
//	@Produce		json
//	@Param			body	body		AddOccasionRequest	true	"Occasion to add"
//	@Success		201		{object}	FileDetail
//	@Failure		400		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/occasions [post]
func (h *Handler) AddOccasion(w http.ResponseWriter, r *http.Request) {
	var req AddOccasionRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	entry := parser.Entry{Date: req.Date, Title: req.Title, Holiday: req.Holiday}
	detail, err := h.svc.AddOccasion(r.Context(), req.Path, entry)
	if err != nil {
		writeServiceError(w, "add occasion", err, slog.String("path", req.Path))
		return
	}
	writeJSON(w, http.StatusCreated, detail)
}

// ListFiles handles GET /api/files.
//
//	@Summary		List occasion files
//	@Tags			files
//	@Produce		json
//	@Success		200	{object}	FileListResponse
//	@Security		BearerAuth
//	@Router			/files [get]
func (h *Handler) ListFiles(w http.ResponseWriter, r *http.Request) {
	files, err := h.svc.ListFiles(r.Context())
	if err != nil {
		writeServiceError(w, "list files", err)
		return
	}
	writeJSON(w, http.StatusOK, FileListResponse{Files: files})
}

// GetFile handles GET /api/files/*.
//
//	@Summary		Get an occasion file by path
//	@Tags			files
//	@Produce		json
//	@Param			path	path		string	true	"File path"
//	@Success		200		{object}	FileDetail
//	@Failure		404		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/files/{path} [get]
func (h *Handler) GetFile(w http.ResponseWriter, r *http.Request) {
	path := filePath(r)
	if path == "" {
		writeJSON(w, http.StatusBadRequest, errorBody("path is required"))
		return
	}
	detail, err := h.svc.GetFile(r.Context(), path)
	if err != nil {
		writeServiceError(w, "get file", err, slog.String("path", path))
		return
	}
	w.Header().Set("ETag", `"`+detail.Checksum+`"`)
	writeJSON(w, http.StatusOK, detail)
}

// CreateFile handles POST /api/files.
//
//	@Summary		Create an occasion file
//	@Tags			files
//	@Accept			json
//	@Produce		json
//	@Param			body	body		CreateFileRequest	true	"File to create"
//	@Success		201		{object}	FileDetail
//	@Failure		400		{object}	errResponse
//	@Failure		409		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/files [post]
func (h *Handler) CreateFile(w http.ResponseWriter, r *http.Request) {
	var req CreateFileRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	detail, err := h.svc.CreateFile(r.Context(), req.Path, []byte(req.Content))
	if err != nil {
		writeServiceError(w, "create file", err, slog.String("path", req.Path))
		return
	}
	writeJSON(w, http.StatusCreated, detail)
}

// UpdateFile handles PUT /api/files/*.
//
//	@Summary		Replace an occasion file with optimistic concurrency
//	@Tags			files
//	@Accept			json
//	@Produce		json
//	@Param			path		path		string				true	"File path"
//	@Param			If-Match	header		string				false	"SHA-256 checksum for optimistic concurrency"
//	@Param			body		body		UpdateFileRequest	true	"Updated content"
//	@Success		200			{object}	FileDetail
//	@Failure		400			{object}	errResponse
//	@Failure		404			{object}	errResponse
//	@Failure		409			{object}	errResponse
//	@Security		BearerAuth
//	@Router			/files/{path} [put]
func (h *Handler) UpdateFile(w http.ResponseWriter, r *http.Request) {
	path := filePath(r)
	if path == "" {
		writeJSON(w, http.StatusBadRequest, errorBody("path is required"))
		return
	}
	var req UpdateFileRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	// Strip surrounding quotes if present (standard ETag format).
	ifMatch := strings.Trim(r.Header.Get("If-Match"), `"`)

	detail, err := h.svc.UpdateFile(r.Context(), path, []byte(req.Content), ifMatch)
	if err != nil {
		writeServiceError(w, "update file", err, slog.String("path", path))
		return
	}
	writeJSON(w, http.StatusOK, detail)
}

// DeleteFile handles DELETE /api/files/*.
//
//	@Summary		Delete an occasion file
//	@Tags			files
//	@Param			path	path	string	true	"File path"
//	@Success		204		"File deleted"
//	@Failure		404		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/files/{path} [delete]
func (h *Handler) DeleteFile(w http.ResponseWriter, r *http.Request) {
	path := filePath(r)
	if path == "" {
		writeJSON(w, http.StatusBadRequest, errorBody("path is required"))
		return
	}
	if err := h.svc.DeleteFile(r.Context(), path); err != nil {
		writeServiceError(w, "delete file", err, slog.String("path", path))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
