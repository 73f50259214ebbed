package lastfm

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"net"
	"net/http"
	"os/exec"
	"runtime"
	"time"
)

// AuthCallbackPort is where the local server listens for the redirect that
// Last.fm sends after the user grants access.
const AuthCallbackPort = 9847

var callbackPage = template.Must(template.New("callback").Parse(`<!DOCTYPE html>
<html>
<head><title>mpressed - Last.fm</title></head>
<body style="font-family: sans-serif; text-align: center; padding: 50px;">
{{if .}}<h1>Account linked</h1>
<p>You can close this window; mpressed finishes in the terminal.</p>
{{else}}<h1>Authorization failed</h1>
<p>Last.fm sent no token. Run <code>mpressedd lastfm-link</code> again.</p>
{{end}}</body>
</html>
`))

// AuthServer receives the Last.fm authorization callback on localhost.
type AuthServer struct {
	server *http.Server
	tokens chan string
	done   chan struct{}
}

// StartAuthServer listens on AuthCallbackPort. The API account needs
// http://localhost:9847/callback as its callback URL for the redirect to
// land here.
func StartAuthServer() (*AuthServer, error) {
	listener, err := net.Listen("tcp", fmt.Sprintf("127.0.0.1:%d", AuthCallbackPort))
	if err != nil {
		return nil, fmt.Errorf("listen on port %d: %w", AuthCallbackPort, err)
	}
	return serveAuth(listener), nil
}

func serveAuth(listener net.Listener) *AuthServer {
	tokens := make(chan string, 1)
	mux := http.NewServeMux()
	mux.Handle("/callback", callbackHandler(tokens))

	as := &AuthServer{
		server: &http.Server{
			Handler:           mux,
			ReadHeaderTimeout: 10 * time.Second,
		},
		tokens: tokens,
		done:   make(chan struct{}),
	}
	go func() {
		_ = as.server.Serve(listener)
		close(as.done)
	}()
	return as
}

// callbackHandler answers the browser and forwards the first token it sees.
func callbackHandler(tokens chan<- string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := r.URL.Query().Get("token")

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if token == "" {
			w.WriteHeader(http.StatusBadRequest)
		}
		_ = callbackPage.Execute(w, token != "")

		select {
		case tokens <- token:
		default:
		}
	})
}

// TokenChan delivers the token of the first callback.
func (as *AuthServer) TokenChan() <-chan string {
	return as.tokens
}

// ErrAuthTimeout is returned by WaitForToken when no callback arrived in time.
var ErrAuthTimeout = errors.New("timed out waiting for Last.fm authorization")

// WaitForToken blocks until a token arrives on tokens, ctx is done, or
// timeout elapses. An empty token (callback without one) is an error.
func WaitForToken(ctx context.Context, tokens <-chan string, timeout time.Duration) (string, error) {
	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case token := <-tokens:
		if token == "" {
			return "", errors.New("authorization callback carried no token")
		}
		return token, nil
	case <-timer.C:
		return "", ErrAuthTimeout
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

// Shutdown stops the server and waits for it to exit.
func (as *AuthServer) Shutdown() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	_ = as.server.Shutdown(ctx)
	<-as.done
}

// OpenBrowser opens url with the platform's URL handler.
func OpenBrowser(url string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url)
	case "linux", "freebsd", "openbsd":
		cmd = exec.Command("xdg-open", url)
	default:
		return fmt.Errorf("unsupported platform: %s", runtime.GOOS)
	}
	return cmd.Start()
}
