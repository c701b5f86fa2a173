package main

import (
	_ "embed"
	"net"
	"net/http"
	"os"
	"strings"

	"github.com/tomz197/speedpong/internal/config"
)

const (
	defaultHost = "0.0.0.0"
	defaultPort = "8080"
)

//go:embed index.html
var htmlPage string

func main() {
	logger := config.NewLogger(os.Stderr, "web")

	host := config.GetEnv("WEB_HOST", defaultHost)
	port := config.GetEnv("WEB_PORT", defaultPort)
	sshHost := config.GetEnv("SSH_DISPLAY_HOST", "your-server.com")

	addr := net.JoinHostPort(host, port)
	logger.Info("starting web server", "addr", "http://"+addr, "sshHost", sshHost)
	if err := http.ListenAndServe(addr, newHandler(sshHost)); err != nil {
		logger.Fatal("server error", "err", err)
	}
}

// newHandler serves the landing page with the SSH host filled in.
func newHandler(sshHost string) http.Handler {
	page := strings.ReplaceAll(htmlPage, "{{.SSHHost}}", sshHost)
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(page))
	})
	return mux
}
