// Package racetracktest provides an in-process fake RaceTrack server for testing code that uses
// the racetrack package.
package racetracktest

import (
	"io"
	"mime"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"sync"

	"github.com/racetrack/racetrack-client/servicedef"

	"github.com/launchdarkly/go-test-helpers/v2/httphelpers"
)

const maxMultipartMemory = 32 << 20

// Request is what the fake server saw of one incoming request.
type Request struct {
	Endpoint    string
	Method      string
	ContentType string
	Form        url.Values
	Files       map[string]File
}

// File is an uploaded multipart file.
type File struct {
	Name string
	Data []byte
}

// IsMultipart returns true if the request body was multipart/form-data.
func (r Request) IsMultipart() bool {
	mediaType, _, _ := mime.ParseMediaType(r.ContentType)
	return mediaType == "multipart/form-data"
}

// Server is a fake RaceTrack server. By default it answers the begin endpoints with sequential
// integer IDs, every other endpoint with "OK", and GET requests to the base URL with 200.
type Server struct {
	server       *httptest.Server
	requests     []Request
	handlers     map[string]http.Handler
	nextTestSet  int
	nextTestCase int
	lock         sync.Mutex
}

// NewServer starts a fake server. Call Close when done with it.
func NewServer() *Server {
	s := &Server{
		handlers:     make(map[string]http.Handler),
		nextTestSet:  1,
		nextTestCase: 1,
	}
	s.server = httptest.NewServer(http.HandlerFunc(s.serveHTTP))
	return s
}

// URL returns the base URL to give to racetrack.Config.
func (s *Server) URL() string {
	return s.server.URL
}

func (s *Server) Close() {
	s.server.Close()
}

// SetNextIDs sets the IDs that will be returned by the next TestSetBegin and TestCaseBegin calls.
func (s *Server) SetNextIDs(testSetID, testCaseID int) {
	s.lock.Lock()
	s.nextTestSet = testSetID
	s.nextTestCase = testCaseID
	s.lock.Unlock()
}

// SetHandler makes the server answer requests to endpoint with handler. The request is still
// recorded.
func (s *Server) SetHandler(endpoint string, handler http.Handler) {
	s.lock.Lock()
	s.handlers[endpoint] = handler
	s.lock.Unlock()
}

// SetResponse makes the server answer requests to endpoint with a fixed status and body.
func (s *Server) SetResponse(endpoint string, status int, body string) {
	s.SetHandler(endpoint, httphelpers.HandlerWithResponse(status, nil, []byte(body)))
}

// Requests returns every POST request received so far, oldest first.
func (s *Server) Requests() []Request {
	s.lock.Lock()
	defer s.lock.Unlock()
	return append([]Request(nil), s.requests...)
}

// RequestsTo returns the POST requests received so far for one endpoint.
func (s *Server) RequestsTo(endpoint string) []Request {
	var ret []Request
	for _, r := range s.Requests() {
		if r.Endpoint == endpoint {
			ret = append(ret, r)
		}
	}
	return ret
}

// LastRequest returns the most recent POST request, if any.
func (s *Server) LastRequest() (Request, bool) {
	s.lock.Lock()
	defer s.lock.Unlock()
	if len(s.requests) == 0 {
		return Request{}, false
	}
	return s.requests[len(s.requests)-1], true
}

func (s *Server) serveHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		w.WriteHeader(http.StatusOK)
		return
	}
	endpoint := strings.TrimPrefix(r.URL.Path, "/")
	recorded, err := readRequest(endpoint, r)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = io.WriteString(w, err.Error())
		return
	}

	s.lock.Lock()
	s.requests = append(s.requests, recorded)
	handler := s.handlers[endpoint]
	var body string
	if handler == nil {
		switch endpoint {
		case servicedef.EndpointTestSetBegin:
			body = strconv.Itoa(s.nextTestSet)
			s.nextTestSet++
		case servicedef.EndpointTestCaseBegin:
			body = strconv.Itoa(s.nextTestCase)
			s.nextTestCase++
		default:
			body = "OK"
		}
	}
	s.lock.Unlock()

	if handler != nil {
		handler.ServeHTTP(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/plain")
	_, _ = io.WriteString(w, body)
}

func readRequest(endpoint string, r *http.Request) (Request, error) {
	ret := Request{
		Endpoint:    endpoint,
		Method:      r.Method,
		ContentType: r.Header.Get("Content-Type"),
		Form:        url.Values{},
	}
	if ret.IsMultipart() {
		if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
			return ret, err
		}
		for k, vs := range r.MultipartForm.Value {
			ret.Form[k] = append([]string(nil), vs...)
		}
		ret.Files = make(map[string]File)
		for field, headers := range r.MultipartForm.File {
			if len(headers) == 0 {
				continue
			}
			f, err := headers[0].Open()
			if err != nil {
				return ret, err
			}
			data, err := io.ReadAll(f)
			_ = f.Close()
			if err != nil {
				return ret, err
			}
			ret.Files[field] = File{Name: headers[0].Filename, Data: data}
		}
		return ret, nil
	}
	if err := r.ParseForm(); err != nil {
		return ret, err
	}
	for k, vs := range r.PostForm {
		ret.Form[k] = append([]string(nil), vs...)
	}
	return ret, nil
}
