// Package mailcloudtest provides an in-memory stand-in for the Customers
// Mail Cloud API, for tests of code built on the mailcloud client.
package mailcloudtest

import (
	"archive/zip"
	"bytes"
	"encoding/json"
	"io"
	"mime"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/lattiq/mailcloud"
)

// Credentials accepted by a Server unless changed with SetCredentials.
const (
	APIUser = "test-user"
	APIKey  = "test-key"
)

// Route patterns, usable with Server.Handle.
const (
	SendPath                 = "/{subdomain}/api/v2/emails/send.json"
	DeliveriesListPath       = "/transaction/v2/deliveries/list.json"
	BouncesListPath          = "/transaction/v2/bounces/list.json"
	StatisticsListPath       = "/transaction/v2/statistics/list.json"
	AuditlogsListPath        = "/transaction/v2/auditlogs/list.json"
	AuditlogsDownloadPath    = "/transaction/v2/auditlogs/download.json"
	UnsubscribesDownloadPath = "/transaction/v2/unsubscribes/download.json"
	UnsubscribesCancelPath   = "/transaction/v2/unsubscribes/cancel.json"
)

// Request is one request received by the server.
type Request struct {
	// Route is the matched route pattern, e.g. BouncesListPath.
	Route string

	// Path is the request path as sent.
	Path string

	// SubDomain is set for send requests.
	SubDomain string

	ContentType string

	// Fields holds the decoded JSON body, or the form values of a
	// multipart body as strings.
	Fields map[string]any

	// Files holds the file parts of a multipart body in order.
	Files []File

	// Parts lists the part names of a multipart body in order.
	Parts []string
}

// Multipart reports whether the request was sent as multipart/form-data.
func (r Request) Multipart() bool {
	return strings.HasPrefix(r.ContentType, "multipart/form-data")
}

// String returns a field as a string, or "" when absent or not a string.
func (r Request) String(field string) string {
	s, _ := r.Fields[field].(string)
	return s
}

// File is one uploaded file part.
type File struct {
	Field       string
	Filename    string
	ContentType string
	Data        []byte
}

type response struct {
	status      int
	contentType string
	body        []byte
}

// Server is a fake API server. It checks credentials, records requests and
// answers with canned or default responses.
type Server struct {
	server *httptest.Server

	mu        sync.Mutex
	apiUser   string
	apiKey    string
	requests  []Request
	responses map[string]response
}

// New starts a server that is closed when the test ends.
func New(t testing.TB) *Server {
	t.Helper()
	s := NewUnstarted()
	s.server = httptest.NewServer(s.Router())
	t.Cleanup(s.Close)
	return s
}

// NewUnstarted creates a server without listening, for mounting Router
// elsewhere.
func NewUnstarted() *Server {
	return &Server{
		apiUser:   APIUser,
		apiKey:    APIKey,
		responses: make(map[string]response),
	}
}

// Router returns the HTTP handler serving every endpoint.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Post(SendPath, s.serve(SendPath, s.sendDefault))
	r.Post(DeliveriesListPath, s.serve(DeliveriesListPath, listDefault("deliveries")))
	r.Post(BouncesListPath, s.serve(BouncesListPath, listDefault("bounces")))
	r.Post(StatisticsListPath, s.serve(StatisticsListPath, listDefault("statistics")))
	r.Post(AuditlogsListPath, s.serve(AuditlogsListPath, listDefault("loginlogs", "operationlogs")))
	r.Post(AuditlogsDownloadPath, s.serve(AuditlogsDownloadPath, zipDefault("auditlogs.csv")))
	r.Post(UnsubscribesDownloadPath, s.serve(UnsubscribesDownloadPath, zipDefault("unsubscribes.csv")))
	r.Post(UnsubscribesCancelPath, s.serve(UnsubscribesCancelPath, func() response {
		return jsonResponse(http.StatusOK, map[string]any{})
	}))
	return r
}

// URL returns the base URL of a started server.
func (s *Server) URL() string {
	return s.server.URL
}

// Close shuts the server down.
func (s *Server) Close() {
	if s.server != nil {
		s.server.Close()
	}
}

// Options points a mailcloud client at the server.
func (s *Server) Options() []mailcloud.Option {
	return []mailcloud.Option{
		mailcloud.WithBaseURL(s.URL()),
		mailcloud.WithSendEndpoint(s.URL() + SendPath),
		mailcloud.WithoutTracing(),
	}
}

// NewClient returns a client for the server, closed when the test ends.
func (s *Server) NewClient(t testing.TB, opts ...mailcloud.Option) *mailcloud.Client {
	t.Helper()
	client, err := mailcloud.New(APIUser, APIKey, append(s.Options(), opts...)...)
	if err != nil {
		t.Fatalf("mailcloud.New() error = %v", err)
	}
	t.Cleanup(func() { client.Close() })
	return client
}

// SetCredentials changes the accepted API user and key.
func (s *Server) SetCredentials(apiUser, apiKey string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.apiUser, s.apiKey = apiUser, apiKey
}

// Handle makes route answer with status and body encoded as JSON.
func (s *Server) Handle(route string, status int, body any) {
	s.setResponse(route, jsonResponse(status, body))
}

// HandleRaw makes route answer with status and the given bytes.
func (s *Server) HandleRaw(route string, status int, contentType string, body []byte) {
	s.setResponse(route, response{status: status, contentType: contentType, body: body})
}

func (s *Server) setResponse(route string, resp response) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.responses[route] = resp
}

// Requests returns every request received so far.
func (s *Server) Requests() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Request, len(s.requests))
	copy(out, s.requests)
	return out
}

// LastRequest returns the most recent request, if any.
func (s *Server) LastRequest() (Request, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.requests) == 0 {
		return Request{}, false
	}
	return s.requests[len(s.requests)-1], true
}

func (s *Server) serve(route string, fallback func() response) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req, err := readRequest(r)
		if err != nil {
			write(w, jsonResponse(http.StatusBadRequest, errorBody("00-000", "", "malformed request body: "+err.Error())))
			return
		}
		req.Route = route
		if route == SendPath {
			req.SubDomain = chi.URLParam(r, "subdomain")
		}

		s.mu.Lock()
		s.requests = append(s.requests, req)
		authorized := req.String("api_user") == s.apiUser && req.String("api_key") == s.apiKey
		canned, ok := s.responses[route]
		s.mu.Unlock()

		switch {
		case !authorized:
			write(w, jsonResponse(http.StatusUnauthorized, errorBody("01-001", "api_user", "Invalid api_user or api_key")))
		case ok:
			write(w, canned)
		default:
			write(w, fallback())
		}
	}
}

func (s *Server) sendDefault() response {
	return jsonResponse(http.StatusOK, map[string]any{
		"id": "<" + uuid.NewString() + "@mailcloudtest>",
	})
}

func listDefault(keys ...string) func() response {
	return func() response {
		body := make(map[string]any, len(keys))
		for _, key := range keys {
			body[key] = []any{}
		}
		return jsonResponse(http.StatusOK, body)
	}
}

func zipDefault(name string) func() response {
	return func() response {
		var buf bytes.Buffer
		zw := zip.NewWriter(&buf)
		if f, err := zw.Create(name); err == nil {
			io.WriteString(f, "created,email\n")
		}
		zw.Close()
		return response{status: http.StatusOK, contentType: "application/zip", body: buf.Bytes()}
	}
}

func errorBody(code, field, message string) map[string]any {
	return map[string]any{
		"errors": []map[string]string{
			{"code": code, "field": field, "message": message},
		},
	}
}

func jsonResponse(status int, body any) response {
	data, err := json.Marshal(body)
	if err != nil {
		panic("mailcloudtest: cannot encode response: " + err.Error())
	}
	return response{status: status, contentType: "application/json", body: data}
}

func write(w http.ResponseWriter, resp response) {
	if resp.contentType != "" {
		w.Header().Set("Content-Type", resp.contentType)
	}
	w.WriteHeader(resp.status)
	w.Write(resp.body)
}

func readRequest(r *http.Request) (Request, error) {
	req := Request{
		Path:        r.URL.Path,
		ContentType: r.Header.Get("Content-Type"),
		Fields:      map[string]any{},
	}

	mediaType, _, _ := mime.ParseMediaType(req.ContentType)
	if mediaType != "multipart/form-data" {
		dec := json.NewDecoder(r.Body)
		dec.UseNumber()
		if err := dec.Decode(&req.Fields); err != nil && err != io.EOF {
			return req, err
		}
		return req, nil
	}

	mr, err := r.MultipartReader()
	if err != nil {
		return req, err
	}
	for {
		part, err := mr.NextPart()
		if err == io.EOF {
			break
		}
		if err != nil {
			return req, err
		}
		data, err := io.ReadAll(part)
		if err != nil {
			return req, err
		}
		req.Parts = append(req.Parts, part.FormName())
		if part.FileName() == "" {
			req.Fields[part.FormName()] = string(data)
			continue
		}
		req.Files = append(req.Files, File{
			Field:       part.FormName(),
			Filename:    part.FileName(),
			ContentType: part.Header.Get("Content-Type"),
			Data:        data,
		})
	}
	return req, nil
}
