package testutil

import (
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/julienschmidt/httprouter"

	"github.com/fragmede/bridgetui/internal/api"
)

// SessionCookie is set by the fake server on every successful sign in.
const SessionCookie = "bridge-session"

type (
	// Reply is a canned response for one route.
	Reply struct {
		Status int
		Body   string
		Delay  time.Duration
	}

	// Request is what the fake server saw.
	Request struct {
		Method    string
		Path      string
		Body      string
		RequestID string
		Session   string
	}

	// BridgeServer fakes the five auth routes with canned replies.
	BridgeServer struct {
		*httptest.Server

		mu       sync.Mutex
		replies  map[string]Reply
		requests []Request
	}
)

// NewBridgeServer starts a fake server that is closed when t finishes.
// Routes without a reply answer 200 with an empty JSON object.
func NewBridgeServer(t testing.TB) *BridgeServer {
	s := &BridgeServer{replies: map[string]Reply{}}
	router := httprouter.New()
	router.POST(api.SignInPath, s.handle)
	router.GET(api.SignOutPath, s.handle)
	router.POST(api.ResetPasswordPath, s.handle)
	router.GET(api.UserProfilePath, s.handle)
	router.GET(api.BootstrapPath, s.handle)
	s.Server = httptest.NewServer(router)
	t.Cleanup(s.Close)
	return s
}

// Reply sets the response for method and path.
func (s *BridgeServer) Reply(method, path string, status int, body string) {
	s.ReplyWith(method, path, Reply{Status: status, Body: body})
}

// ReplyWith sets the full canned response for method and path.
func (s *BridgeServer) ReplyWith(method, path string, r Reply) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.replies[method+" "+path] = r
}

// Requests returns a copy of every request served so far.
func (s *BridgeServer) Requests() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Request, len(s.requests))
	copy(out, s.requests)
	return out
}

func (s *BridgeServer) handle(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	body, _ := io.ReadAll(r.Body)
	seen := Request{
		Method:    r.Method,
		Path:      r.URL.Path,
		Body:      string(body),
		RequestID: r.Header.Get(api.RequestIDHeader),
	}
	if c, err := r.Cookie(SessionCookie); err == nil {
		seen.Session = c.Value
	}

	s.mu.Lock()
	s.requests = append(s.requests, seen)
	reply, ok := s.replies[r.Method+" "+r.URL.Path]
	s.mu.Unlock()

	if !ok {
		reply = Reply{Status: http.StatusOK, Body: "{}"}
	}
	if reply.Delay > 0 {
		time.Sleep(reply.Delay)
	}
	if r.URL.Path == api.SignInPath && reply.Status >= 200 && reply.Status < 300 {
		http.SetCookie(w, &http.Cookie{Name: SessionCookie, Value: "s3ss10n", Path: "/"})
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(reply.Status)
	io.WriteString(w, reply.Body)
}
