package api

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/seekr-dev/seekr/internal/analyzer"
	"github.com/seekr-dev/seekr/internal/report"
	"github.com/seekr-dev/seekr/internal/workspace"
)

// HealthStatus is the GET /health response body.
type HealthStatus struct {
	Status string `json:"status"`
}

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"service": "seekr",
		"description": "Accepts a zipped source project and a requirement description, " +
			"returns a heuristic report mapping features to candidate implementing functions.",
		"endpoints": map[string]string{
			"analyze":                   "POST /analyze - analyze code and generate a report",
			"analyze_with_verification": "POST /analyze-with-verification - analyze plus simulated verification",
			"health":                    "GET /health - health check",
		},
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthStatus{Status: "healthy"})
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	s.runAnalysis(w, r, false)
}

func (s *Server) handleAnalyzeWithVerification(w http.ResponseWriter, r *http.Request) {
	s.runAnalysis(w, r, true)
}

// runAnalysis implements both analysis endpoints; withVerification adds
// the simulated verification section to the report.
func (s *Server) runAnalysis(w http.ResponseWriter, r *http.Request, withVerification bool) {
	logger := s.logger.With("request_id", GetRequestID(r.Context()))

	maxBytes := int64(s.cfg.Server.MaxUploadMB) << 20
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
	if err := r.ParseMultipartForm(maxBytes); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request",
			"expected multipart form with problem_description and code_zip")
		return
	}

	requirement := r.FormValue("problem_description")
	if requirement == "" {
		writeError(w, http.StatusBadRequest, "missing_description",
			"problem_description form field is required")
		return
	}

	upload, header, err := r.FormFile("code_zip")
	if err != nil {
		writeError(w, http.StatusBadRequest, "missing_archive",
			"code_zip file field is required")
		return
	}
	defer upload.Close()

	if !workspace.ValidExtension(header.Filename, []string{"zip"}) {
		writeError(w, http.StatusBadRequest, "invalid_archive_type",
			"only ZIP archives are supported")
		return
	}

	ws, err := workspace.Create(logger)
	if err != nil {
		logger.Error("workspace creation failed", "error", err)
		writeError(w, http.StatusInternalServerError, "workspace_error",
			"could not prepare analysis workspace")
		return
	}
	defer ws.Cleanup()

	zipPath, err := ws.SaveUpload(upload, header.Filename)
	if err != nil {
		logger.Error("saving upload failed", "error", err)
		writeError(w, http.StatusInternalServerError, "workspace_error",
			"could not save uploaded archive")
		return
	}

	codeDir, err := ws.ExtractZip(zipPath)
	if err != nil {
		if errors.Is(err, workspace.ErrBadArchive) {
			writeError(w, http.StatusBadRequest, "bad_archive", err.Error())
			return
		}
		logger.Error("extraction failed", "error", err)
		writeError(w, http.StatusInternalServerError, "extraction_error",
			"could not extract uploaded archive")
		return
	}

	codeDir = ws.ProjectRoot(codeDir)

	ctx, cancel := context.WithTimeout(r.Context(),
		time.Duration(s.cfg.Server.RequestTimeoutSeconds)*time.Second)
	defer cancel()

	a, err := analyzer.New(ctx, codeDir, analyzer.Options{
		Logger:   logger,
		SkipDirs: s.cfg.Scan.SkipDirs,
	})
	if err != nil {
		logger.Error("analysis failed", "error", err)
		writeError(w, http.StatusInternalServerError, "analysis_error",
			"analyzing the uploaded project failed")
		return
	}

	var result *report.AnalysisReport
	var body interface{}
	if withVerification {
		full := a.AnalyzeWithVerification(requirement)
		result = &full.AnalysisReport
		body = full
	} else {
		result = a.Analyze(requirement)
		body = result
	}

	s.recordHistory(logger, requirement, string(a.DetectProjectType()), result)

	writeJSON(w, http.StatusOK, body)
}

// recordHistory stores the finished report if a history store is
// attached. Failures are logged and ignored: history is advisory and must
// never fail a request.
func (s *Server) recordHistory(logger *slog.Logger, requirement, projectType string, r *report.AnalysisReport) {
	if s.history == nil {
		return
	}
	if _, err := s.history.Record(requirement, projectType, r); err != nil {
		logger.Error("recording analysis history failed", "error", err)
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
