package server

import (
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/sells-group/transport-report/internal/ingest"
	"github.com/sells-group/transport-report/internal/model"
	"github.com/sells-group/transport-report/internal/report"
	"github.com/sells-group/transport-report/internal/session"
)

// multipartMemory is how much of an upload is buffered in memory before
// spilling to a temp file.
const multipartMemory = 8 << 20

// sessionView is the JSON description of an upload session.
type sessionView struct {
	ID        string    `json:"id"`
	FileName  string    `json:"file_name"`
	CreatedAt time.Time `json:"created_at"`
	Rows      int       `json:"rows"`
	Columns   []string  `json:"columns"`
	Fields    []string  `json:"fields"`
	DateMin   *string   `json:"date_min"`
	DateMax   *string   `json:"date_max"`
	Routes    []string  `json:"routes"`
}

func newSessionView(sess session.Session) sessionView {
	t := sess.Table
	v := sessionView{
		ID:        sess.ID,
		FileName:  sess.FileName,
		CreatedAt: sess.CreatedAt,
		Rows:      t.Len(),
		Columns:   t.Columns,
		Fields:    []string{},
		Routes:    report.RouteOptions(t),
	}
	for _, f := range t.PresentFields() {
		v.Fields = append(v.Fields, string(f))
	}
	lo, hi := report.DateBounds(t)
	v.DateMin, v.DateMax = formatDay(lo), formatDay(hi)
	return v
}

func formatDay(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(model.DateLayout)
	return &s
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	if r.ContentLength > s.opts.MaxUploadBytes {
		writeError(w, http.StatusRequestEntityTooLarge, "upload too large")
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, s.opts.MaxUploadBytes)

	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		if isTooLarge(err) {
			writeError(w, http.StatusRequestEntityTooLarge, "upload too large")
			return
		}
		writeError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "file is required")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		writeError(w, http.StatusBadRequest, "read upload")
		return
	}

	tbl, err := s.reader.Read(r.Context(), data, header.Filename)
	if err != nil {
		var pe *ingest.ParseError
		if errors.As(err, &pe) {
			s.metrics.uploads.WithLabelValues("rejected").Inc()
			zap.L().Info("server: rejected upload",
				zap.String("file", header.Filename),
				zap.Error(err),
			)
			writeError(w, http.StatusUnprocessableEntity, pe.Error())
			return
		}
		s.metrics.uploads.WithLabelValues("error").Inc()
		zap.L().Error("server: read upload", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	sess := s.store.Create(header.Filename, tbl)
	s.metrics.uploads.WithLabelValues("accepted").Inc()
	writeJSON(w, http.StatusCreated, newSessionView(sess))
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, newSessionView(sess))
}

func (s *Server) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	if !s.store.Delete(chi.URLParam(r, "id")) {
		writeError(w, http.StatusNotFound, "session not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	q := r.URL.Query()
	f, err := parseFilter(q)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	top, err := parseTop(q, s.opts.TopN)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	rep := report.Build(sess.Table, f, report.Options{TopN: top})
	s.metrics.reports.Inc()
	writeJSON(w, http.StatusOK, rep)
}

func (s *Server) handleRecords(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	f, err := parseFilter(r.URL.Query())
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	filtered := report.Apply(sess.Table, f)
	columns, rows := report.Records(filtered)
	writeJSON(w, http.StatusOK, map[string]any{
		"columns":   columns,
		"rows":      rows,
		"row_count": len(rows),
	})
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	f, err := parseFilter(r.URL.Query())
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+report.ExportFileName+`"`)
	if err := report.WriteCSV(w, report.Apply(sess.Table, f)); err != nil {
		zap.L().Warn("server: write export", zap.String("session_id", sess.ID), zap.Error(err))
	}
}

// session resolves the {id} URL parameter, writing a 404 when unknown.
func (s *Server) session(w http.ResponseWriter, r *http.Request) (session.Session, bool) {
	sess, err := s.store.Get(chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, session.ErrNotFound) {
			writeError(w, http.StatusNotFound, "session not found")
			return session.Session{}, false
		}
		writeError(w, http.StatusInternalServerError, "internal error")
		return session.Session{}, false
	}
	return sess, true
}

// isTooLarge reports whether err came from the MaxBytesReader limit. Some
// multipart paths return the error without wrapping it.
func isTooLarge(err error) bool {
	var mbe *http.MaxBytesError
	if errors.As(err, &mbe) {
		return true
	}
	return strings.Contains(err.Error(), "request body too large")
}
