package racetracktest

import (
	"bytes"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"testing"

	"github.com/racetrack/racetrack-client/servicedef"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func postForm(t *testing.T, s *Server, endpoint string, form url.Values) (int, string) {
	resp, err := http.PostForm(s.URL()+"/"+endpoint, form)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(body)
}

func TestServerHandsOutSequentialIDs(t *testing.T) {
	s := NewServer()
	defer s.Close()
	s.SetNextIDs(42, 7)

	_, body := postForm(t, s, servicedef.EndpointTestSetBegin, url.Values{"BuildID": {"1"}})
	assert.Equal(t, "42", body)
	_, body = postForm(t, s, servicedef.EndpointTestSetBegin, nil)
	assert.Equal(t, "43", body)
	_, body = postForm(t, s, servicedef.EndpointTestCaseBegin, nil)
	assert.Equal(t, "7", body)
	_, body = postForm(t, s, servicedef.EndpointTestCaseComment, nil)
	assert.Equal(t, "OK", body)

	reqs := s.Requests()
	require.Len(t, reqs, 4)
	assert.Equal(t, "1", reqs[0].Form.Get("BuildID"))
	assert.Len(t, s.RequestsTo(servicedef.EndpointTestSetBegin), 2)
}

func TestServerAnswersGET(t *testing.T) {
	s := NewServer()
	defer s.Close()
	resp, err := http.Get(s.URL())
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, 200, resp.StatusCode)
	_, ok := s.LastRequest()
	assert.False(t, ok)
}

func TestServerRecordsMultipart(t *testing.T) {
	s := NewServer()
	defer s.Close()

	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	require.NoError(t, w.WriteField("ResultID", "7"))
	part, err := w.CreateFormFile("Log", "run.log")
	require.NoError(t, err)
	_, _ = io.Copy(part, strings.NewReader("hello"))
	require.NoError(t, w.Close())

	resp, err := http.Post(s.URL()+"/"+servicedef.EndpointTestCaseLog, w.FormDataContentType(), &body)
	require.NoError(t, err)
	resp.Body.Close()

	r, ok := s.LastRequest()
	require.True(t, ok)
	assert.True(t, r.IsMultipart())
	assert.Equal(t, "7", r.Form.Get("ResultID"))
	assert.Equal(t, File{Name: "run.log", Data: []byte("hello")}, r.Files["Log"])
}

func TestServerCustomResponse(t *testing.T) {
	s := NewServer()
	defer s.Close()
	s.SetResponse(servicedef.EndpointTestSetBegin, 503, "busy")

	status, body := postForm(t, s, servicedef.EndpointTestSetBegin, nil)
	assert.Equal(t, 503, status)
	assert.Equal(t, "busy", body)
	assert.Len(t, s.Requests(), 1)
}
