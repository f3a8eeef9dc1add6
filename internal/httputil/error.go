package httputil

import (
	"log/slog"
	"net/http"
)

func InternalServerError(w http.ResponseWriter, msg string, err error) {
	slog.Error(msg, "error", err)
	http.Error(w, "Internal Server Error", http.StatusInternalServerError)
}

func BadRequest(w http.ResponseWriter, msg string, err error) {
	if err != nil {
		slog.Warn("bad request", "message", msg, "error", err)
	} else {
		slog.Warn("bad request", "message", msg)
	}
	http.Error(w, msg, http.StatusBadRequest)
}

func NotFound(w http.ResponseWriter, msg string, err error) {
	if err != nil {
		slog.Warn("not found", "message", msg, "error", err)
	} else {
		slog.Warn("not found", "message", msg)
	}
	http.Error(w, msg, http.StatusNotFound)
}

// ErrorBody is the JSON shape of every API error.
type ErrorBody struct {
	Error string `json:"error"`
}

// JSONError writes status with {"error": msg}. Server errors are logged
// with err and hide msg from the client.
func JSONError(w http.ResponseWriter, status int, msg string, err error) {
	switch {
	case status >= http.StatusInternalServerError:
		slog.Error(msg, "status", status, "error", err)
		msg = http.StatusText(status)
	case err != nil:
		slog.Warn(msg, "status", status, "error", err)
		msg = msg + ": " + err.Error()
	default:
		slog.Warn(msg, "status", status)
	}
	WriteJSON(w, status, ErrorBody{Error: msg})
}
