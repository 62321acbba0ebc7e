package middleware

import (
	"net/http"
	"runtime"

	m "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
	log "github.com/sirupsen/logrus"

	"github.com/zjx20/genai-relay/config"
)

const internalError = "Error interno del servidor."

func Logger(next http.Handler) http.Handler {
	return m.RequestLogger(
		&m.DefaultLogFormatter{
			Logger:  log.StandardLogger(),
			NoColor: runtime.GOOS == "windows",
		})(next)
}

// Recover turns a panic that escaped a handler into a JSON 500, so a caller
// always gets a well-formed body.
func Recover(next http.Handler) http.Handler {
	fn := func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				if err == http.ErrAbortHandler {
					panic(err)
				}
				log.Errorln(err)
				if config.GetIsDebug() {
					m.PrintPrettyStack(err)
				}
				render.Status(r, http.StatusInternalServerError)
				render.JSON(w, r, map[string]string{"error": internalError})
			}
		}()
		next.ServeHTTP(w, r)
	}
	return http.HandlerFunc(fn)
}
