package handlers

import (
	"errors"
	"io/fs"
	"log/slog"
	"net/http"
	"strings"

	"github.com/jwebster45206/outpost-engine/internal/logger"
)

// recentLogLines is how many lines GET /logs returns.
const recentLogLines = 50

// LogSource is the interaction log backing the logs endpoints.
type LogSource interface {
	Tail(n int) ([]string, int, error)
	Clear() error
}

type LogsResponse struct {
	Success    bool     `json:"success"`
	Logs       []string `json:"logs"`
	TotalLines int      `json:"total_lines"`
}

// LogsHandler serves the interaction log for debugging.
// Routes:
// GET /logs        - Last lines of the log
// POST /logs/clear - Truncate the log
type LogsHandler struct {
	source LogSource
	logger *slog.Logger
}

func NewLogsHandler(source LogSource, logger *slog.Logger) *LogsHandler {
	return &LogsHandler{
		source: source,
		logger: logger,
	}
}

func (h *LogsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context(), h.logger)

	if strings.HasSuffix(strings.TrimRight(r.URL.Path, "/"), "/clear") {
		h.clear(w, r, log)
		return
	}
	h.tail(w, r, log)
}

func (h *LogsHandler) tail(w http.ResponseWriter, r *http.Request, log *slog.Logger) {
	if !allowMethod(w, r, log, http.MethodGet) {
		return
	}

	lines, total, err := h.source.Tail(recentLogLines)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			writeJSON(w, log, http.StatusNotFound, ErrorResponse{Message: "No log file found"})
			return
		}
		log.Error("Failed to read log file", "error", err)
		writeError(w, log, http.StatusInternalServerError, "Failed to read log file")
		return
	}

	writeJSON(w, log, http.StatusOK, LogsResponse{
		Success:    true,
		Logs:       lines,
		TotalLines: total,
	})
}

func (h *LogsHandler) clear(w http.ResponseWriter, r *http.Request, log *slog.Logger) {
	if !allowMethod(w, r, log, http.MethodPost) {
		return
	}

	if err := h.source.Clear(); err != nil {
		log.Error("Failed to clear log file", "error", err)
		writeError(w, log, http.StatusInternalServerError, "Failed to clear log file")
		return
	}

	log.Info("Interaction log cleared")
	writeJSON(w, log, http.StatusOK, MessageResponse{Success: true, Message: "Logs cleared"})
}
