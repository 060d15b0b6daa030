// Package mcpserver provides an MCP (Model Context Protocol) server
// that exposes jcal calendar tools for LLM integration via stdio transport.
package mcpserver

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/muesli/termenv"

	"github.com/starford/jcal/internal/calendar"
	"github.com/starford/jcal/internal/calendarservice"
	"github.com/starford/jcal/internal/parser"
)

const (
	contractURI   = "jcal://occasion-format"
	searchLimit   = 20
	serverName    = "jcal"
	serverVersion = "1.0.0"
)

// Server wraps the MCP server with jcal tools.
type Server struct {
	mcp *server.MCPServer
	svc *calendarservice.Service
}

// New creates a new MCP server with all jcal tools registered.
func New(svc *calendarservice.Service) *Server {
	s := &Server{svc: svc}

	s.mcp = server.NewMCPServer(
		serverName,
		serverVersion,
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
	)

	s.mcp.AddTool(mcp.NewTool("now",
		mcp.WithDescription("Current date and time in the Jalali and Gregorian calendars."),
	), s.now)

	s.mcp.AddTool(mcp.NewTool("to_gregorian",
		mcp.WithDescription("Convert a Jalali (Solar Hijri) date to Gregorian."),
		mcp.WithString("date", mcp.Required(), mcp.Description("Jalali date, YYYY-MM-DD")),
		mcp.WithString("time", mcp.Description("Optional wall clock, HH:MM:SS")),
	), s.toGregorian)

	s.mcp.AddTool(mcp.NewTool("to_jalali",
		mcp.WithDescription("Convert a Gregorian date to Jalali (Solar Hijri)."),
		mcp.WithString("date", mcp.Required(), mcp.Description("Gregorian date, YYYY-MM-DD or RFC 3339")),
		mcp.WithString("time", mcp.Description("Optional wall clock, HH:MM:SS")),
	), s.toJalali)

	s.mcp.AddTool(mcp.NewTool("format_jalali",
		mcp.WithDescription("Format a Jalali date-time with a strftime-style layout. "+
			"%Y year, %m month, %d day, %B month name, %A weekday, %H:%M:%S clock, "+
			"%V Farsi month name, %G Farsi weekday."),
		mcp.WithString("datetime", mcp.Required(), mcp.Description("Jalali date-time, YYYY-MM-DD[ HH:MM:SS]")),
		mcp.WithString("layout", mcp.Required(), mcp.Description("strftime-style layout")),
	), s.format)

	s.mcp.AddTool(mcp.NewTool("parse_jalali",
		mcp.WithDescription("Parse a Jalali date-time with a strptime-style layout."),
		mcp.WithString("value", mcp.Required(), mcp.Description("Text to parse")),
		mcp.WithString("layout", mcp.Required(), mcp.Description("strptime-style layout")),
	), s.parse)

	s.mcp.AddTool(mcp.NewTool("year_info",
		mcp.WithDescription("Leap status, length and 2820-year cycle position of a Jalali year."),
		mcp.WithNumber("year", mcp.Required(), mcp.Description("Jalali year")),
	), s.yearInfo)

	s.mcp.AddTool(mcp.NewTool("month_calendar",
		mcp.WithDescription("Render a Jalali month as a text calendar with its occasions."),
		mcp.WithNumber("year", mcp.Required(), mcp.Description("Jalali year")),
		mcp.WithNumber("month", mcp.Required(), mcp.Description("Month, 1..12")),
		mcp.WithBoolean("farsi", mcp.Description("Use Farsi names and digits")),
	), s.monthCalendar)

	s.mcp.AddTool(mcp.NewTool("list_occasions",
		mcp.WithDescription("List occasions and holidays of a Jalali year or month."),
		mcp.WithNumber("year", mcp.Required(), mcp.Description("Jalali year")),
		mcp.WithNumber("month", mcp.Description("Optional month, 1..12")),
	), s.listOccasions)

	s.mcp.AddTool(mcp.NewTool("search_occasions",
		mcp.WithDescription("Full-text search through occasion titles."),
		mcp.WithString("query", mcp.Required(), mcp.Description("Search query string")),
	), s.searchOccasions)

	s.mcp.AddTool(mcp.NewTool("add_occasion",
		mcp.WithDescription("Append an occasion to an occasion file, creating the file if needed. "+
			"Read the contract first via the get_occasion_contract tool or the "+contractURI+" resource."),
		mcp.WithString("path", mcp.Required(), mcp.Description("Occasion file path (must end with .yaml)")),
		mcp.WithString("date", mcp.Required(), mcp.Description("Jalali MM-DD (yearly) or YYYY-MM-DD")),
		mcp.WithString("title", mcp.Required(), mcp.Description("Occasion title")),
		mcp.WithBoolean("holiday", mcp.Description("Whether the day is a day off")),
	), s.addOccasion)

	s.mcp.AddTool(mcp.NewTool("get_occasion_contract",
		mcp.WithDescription("Returns the occasion file format contract."),
	), s.getOccasionContract)

	s.mcp.AddResource(
		mcp.NewResource(contractURI, "Occasion File Format",
			mcp.WithResourceDescription("YAML format of occasion files."),
			mcp.WithMIMEType("text/markdown"),
		),
		s.readContractResource,
	)

	return s
}

// ServeStdio starts the MCP server on stdin/stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcp)
}

// MCPServer returns the underlying server for testing.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcp
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(string(out)), nil
}

func dateTimeArg(req mcp.CallToolRequest) (string, error) {
	date, err := req.RequireString("date")
	if err != nil {
		return "", err
	}
	if t := req.GetString("time", ""); t != "" {
		return date + " " + t, nil
	}
	return date, nil
}

func (s *Server) now(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	m, err := s.svc.Now(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(m)
}

func (s *Server) toGregorian(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	value, err := dateTimeArg(req)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	m, err := s.svc.ToGregorian(ctx, value)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(m)
}

func (s *Server) toJalali(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	value, err := dateTimeArg(req)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	m, err := s.svc.ToJalali(ctx, value)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(m)
}

func (s *Server) format(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	value, err := req.RequireString("datetime")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	layout, err := req.RequireString("layout")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	out, err := s.svc.Format(ctx, value, layout)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(out), nil
}

func (s *Server) parse(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	value, err := req.RequireString("value")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	layout, err := req.RequireString("layout")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	m, err := s.svc.Parse(ctx, value, layout)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(m)
}

func (s *Server) yearInfo(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	year, err := req.RequireInt("year")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	info, err := s.svc.YearInfo(ctx, year)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(info)
}

func (s *Server) monthCalendar(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	year, err := req.RequireInt("year")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	month, err := req.RequireInt("month")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	m, err := s.svc.Month(ctx, year, month)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var buf bytes.Buffer
	r := calendar.NewRenderer(&buf, termenv.Ascii, req.GetBool("farsi", false))
	out := r.Month(m)
	if occ := r.Occasions(m); occ != "" {
		out += "\n\n" + strings.TrimRight(occ, "\n")
	}
	return mcp.NewToolResultText(out), nil
}

func (s *Server) listOccasions(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	year, err := req.RequireInt("year")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	occ, err := s.svc.Occasions(ctx, year, req.GetInt("month", 0))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if len(occ) == 0 {
		return mcp.NewToolResultText("no occasions found"), nil
	}

	lines := make([]string, len(occ))
	for i, o := range occ {
		mark := ""
		if o.Holiday {
			mark = " (holiday)"
		}
		lines[i] = fmt.Sprintf("%04d-%02d-%02d %s%s", year, o.Month, o.Day, o.Title, mark)
	}
	return mcp.NewToolResultText(strings.Join(lines, "\n")), nil
}

func (s *Server) searchOccasions(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := req.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	results, err := s.svc.Search(ctx, query, searchLimit)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(results)
}

func (s *Server) addOccasion(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := req.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	date, err := req.RequireString("date")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	title, err := req.RequireString("title")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	entry := parser.Entry{Date: date, Title: title, Holiday: req.GetBool("holiday", false)}
	if _, err := s.svc.AddOccasion(ctx, path, entry); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("added %q on %s to %s", title, date, path)), nil
}

func (s *Server) getOccasionContract(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText(OccasionFormatContract), nil
}

func (s *Server) readContractResource(context.Context, mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      contractURI,
			MIMEType: "text/markdown",
			Text:     OccasionFormatContract,
		},
	}, nil
}
