package server

import (
	"errors"
	"net/http"
	"strings"

	"github.com/bobmcallan/insight/internal/interfaces"
	"github.com/bobmcallan/insight/internal/models"
)

// reportRequest is the body for POST /api/report.
type reportRequest struct {
	Ticker              string `json:"ticker"`
	MaxVideos           int    `json:"max_videos,omitempty"`
	MaxCommentsPerVideo int    `json:"max_comments_per_video,omitempty"`
}

// handleReport runs the full report pipeline for a ticker.
func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	var req reportRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	ticker := strings.TrimSpace(req.Ticker)
	if ticker == "" {
		WriteError(w, http.StatusBadRequest, "ticker is required")
		return
	}

	report, err := s.app.ReportService.GenerateReport(r.Context(), ticker, interfaces.ReportOptions{
		MaxVideos:           req.MaxVideos,
		MaxCommentsPerVideo: req.MaxCommentsPerVideo,
	})
	if err != nil {
		var validationErr *models.ValidationError
		if errors.As(err, &validationErr) {
			WriteErrorWithCode(w, http.StatusBadRequest, validationErr.Reason, "ticker_validation_failed")
			return
		}
		s.app.Logger.Error().Err(err).Str("ticker", ticker).Msg("Report generation failed")
		WriteError(w, http.StatusInternalServerError, "Report generation failed")
		return
	}

	WriteJSON(w, http.StatusOK, report)
}
