// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package server is the single-page web tool: upload a client data file,
// read the generated report on screen, and download it as a document.
package server

import (
	"bytes"
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/pdiddy/report-engine/internal/assistant"
	"github.com/pdiddy/report-engine/internal/generate"
	"github.com/pdiddy/report-engine/internal/ingest"
	"github.com/pdiddy/report-engine/internal/report"
	"github.com/pdiddy/report-engine/internal/session"
	"github.com/pdiddy/report-engine/pkg/types"
)

//go:embed templates/*.html
var templateFS embed.FS

const (
	defaultMaxUploadBytes = 10 << 20
	recentReports         = 10
	shutdownTimeout       = 10 * time.Second

	assistantFailedMessage = "The assistant failed to generate a report. Please try again."
)

// Config holds the web tool settings.
type Config struct {
	// Report is applied to every built report.
	Report report.Options

	// Prefix is the download file name prefix.
	Prefix string

	// Formats are the download formats offered on the report page.
	Formats []string

	// MaxUploadBytes caps the upload size. Zero means 10 MiB.
	MaxUploadBytes int64

	// Log receives request logs. Nil discards them.
	Log io.Writer
}

// Server serves the web tool.
type Server struct {
	gen      *generate.Generator
	sessions session.Store
	cfg      Config
	router   *gin.Engine
}

// New builds the server and its routes. Sessions must be the store the
// generator saves to.
func New(gen *generate.Generator, sessions session.Store, cfg Config) *Server {
	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = defaultMaxUploadBytes
	}
	if len(cfg.Formats) == 0 {
		cfg.Formats = report.Formats()
	}
	if cfg.Log == nil {
		cfg.Log = io.Discard
	}
	s := &Server{gen: gen, sessions: sessions, cfg: cfg}
	s.router = s.routes()
	return s
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return fmt.Errorf("serving on %s: %w", addr, err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutting down: %w", err)
		}
		return nil
	}
}

func (s *Server) routes() *gin.Engine {
	r := gin.New()
	r.Use(gin.LoggerWithWriter(s.cfg.Log), gin.Recovery())
	r.SetHTMLTemplate(template.Must(
		template.New("").Funcs(templateFuncs).ParseFS(templateFS, "templates/*.html"),
	))
	r.MaxMultipartMemory = s.cfg.MaxUploadBytes

	r.GET("/", s.index)
	r.POST("/reports", s.upload)
	r.GET("/reports/:id", s.view)
	r.GET("/reports/:id/download/:format", s.download)

	api := r.Group("/api")
	{
		api.POST("/reports", s.apiUpload)
		api.GET("/reports", s.apiList)
		api.GET("/reports/:id", s.apiGet)
	}

	r.NoRoute(func(c *gin.Context) {
		s.errorPage(c, http.StatusNotFound, "Page not found.")
	})
	return r
}

var templateFuncs = template.FuncMap{
	"when": func(t time.Time) string {
		if t.IsZero() {
			return ""
		}
		return t.Local().Format("02 Jan 2006 15:04")
	},
}

// statusFor maps workflow errors to HTTP status codes.
func statusFor(err error) int {
	var tooLarge *http.MaxBytesError
	switch {
	case errors.As(err, &tooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, ingest.ErrUnsupportedFormat), errors.Is(err, ingest.ErrEmptyInput):
		return http.StatusBadRequest
	case errors.Is(err, generate.ErrAssistantFailed), errors.Is(err, assistant.ErrEmptyReply):
		return http.StatusBadGateway
	case errors.Is(err, session.ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// userMessage is the text shown to the user for a failed request. Assistant
// and internal errors are not described; their causes go to the log.
func userMessage(err error) string {
	switch statusFor(err) {
	case http.StatusRequestEntityTooLarge:
		return "The file is too large."
	case http.StatusBadRequest:
		return err.Error()
	case http.StatusBadGateway:
		return assistantFailedMessage
	case http.StatusNotFound:
		return "Report not found."
	default:
		return "Something went wrong. Please try again."
	}
}

// generateUpload runs the workflow on the "file" form field.
func (s *Server) generateUpload(c *gin.Context) (*types.ReportSession, int, error) {
	if c.Request.ContentLength > s.cfg.MaxUploadBytes {
		return nil, http.StatusRequestEntityTooLarge, &http.MaxBytesError{Limit: s.cfg.MaxUploadBytes}
	}
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, s.cfg.MaxUploadBytes)

	fh, err := c.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, http.StatusRequestEntityTooLarge, err
		}
		return nil, http.StatusBadRequest, errors.New("choose a client data file to upload")
	}
	f, err := fh.Open()
	if err != nil {
		return nil, http.StatusBadRequest, fmt.Errorf("reading upload: %w", err)
	}
	defer f.Close()

	sess, err := s.gen.Generate(c.Request.Context(), fh.Filename, f)
	if err != nil {
		status := statusFor(err)
		fmt.Fprintf(s.cfg.Log, "upload %s failed (%d): %v\n", fh.Filename, status, err)
		return sess, status, err
	}
	return sess, http.StatusOK, nil
}

// loadReport returns a completed session and its report.
func (s *Server) loadReport(c *gin.Context) (*types.ReportSession, *types.Report, error) {
	id := c.Param("id")
	if !session.ValidID(id) {
		return nil, nil, session.ErrNotFound
	}
	sess, err := s.sessions.Get(c.Request.Context(), id)
	if err != nil {
		return nil, nil, err
	}
	if sess.Status != types.ReportCompleted {
		return sess, nil, nil
	}
	rep, err := report.Build(sess, s.cfg.Report)
	if err != nil {
		return sess, nil, err
	}
	return sess, rep, nil
}

func (s *Server) renderDownload(c *gin.Context, rep *types.Report, format string) {
	wr, err := report.WriterFor(format)
	if err != nil {
		s.errorPage(c, http.StatusNotFound, fmt.Sprintf("Unknown format %q.", format))
		return
	}
	var buf bytes.Buffer
	if err := wr.Write(&buf, rep); err != nil {
		s.errorPage(c, http.StatusInternalServerError, userMessage(err))
		return
	}
	name := report.FileName(s.cfg.Prefix, rep.GeneratedAt, wr.Extension())
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	c.Data(http.StatusOK, wr.ContentType(), buf.Bytes())
}
