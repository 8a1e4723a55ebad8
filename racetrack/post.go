package racetrack

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
)

const formContentType = "application/x-www-form-urlencoded; charset=UTF-8"

// Response is the server's answer to a request. RaceTrack answers with plain text: an integer ID
// for the begin requests, and a short diagnostic message otherwise.
type Response struct {
	StatusCode int
	Body       string
}

// OK returns true if the server did not answer with an HTTP error status.
func (r *Response) OK() bool {
	return r != nil && r.StatusCode < 400
}

func (r *Response) String() string {
	if r == nil {
		return "<no response>"
	}
	return fmt.Sprintf("%d %s", r.StatusCode, r.Body)
}

// attachment is a local file sent as one part of a multipart request.
type attachment struct {
	field string
	path  string
}

// post sends one request to the named endpoint. The body is form-encoded, or multipart if
// there is an attachment. Any file is opened and closed within this call.
func (s *Session) post(endpoint string, form url.Values, file *attachment) (*Response, error) {
	requestURL := s.baseURL + "/" + endpoint

	var body bytes.Buffer
	contentType := formContentType
	if file == nil {
		body.WriteString(form.Encode())
	} else {
		ct, err := writeMultipart(&body, form, *file)
		if err != nil {
			s.loggers.Errorf("%s: could not read %s: %s", endpoint, file.path, err)
			return nil, err
		}
		contentType = ct
	}

	req, err := http.NewRequest("POST", requestURL, &body)
	if err != nil {
		s.loggers.Errorf("%s: post request failed: %s", endpoint, err)
		return nil, fmt.Errorf("%w: %s", ErrTransport, err)
	}
	req.Header.Set("Content-Type", contentType)

	s.loggers.Debugf("POST %s %s", requestURL, form.Encode())
	resp, err := s.httpClient.Do(req)
	if err != nil {
		s.loggers.Errorf("%s: post request failed: %s", endpoint, err)
		return nil, fmt.Errorf("%w: %s", ErrTransport, err)
	}
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		s.loggers.Errorf("%s: error reading response body: %s", endpoint, err)
		return nil, fmt.Errorf("%w: %s", ErrTransport, err)
	}
	ret := &Response{StatusCode: resp.StatusCode, Body: string(data)}
	s.loggers.Debugf("%s responded: %s", endpoint, ret)
	return ret, nil
}

func writeMultipart(dest *bytes.Buffer, form url.Values, file attachment) (string, error) {
	f, err := os.Open(file.path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	w := multipart.NewWriter(dest)
	keys := make([]string, 0, len(form))
	for k := range form {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		for _, v := range form[k] {
			if err := w.WriteField(k, v); err != nil {
				return "", err
			}
		}
	}
	part, err := w.CreateFormFile(file.field, filepath.Base(file.path))
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(part, f); err != nil {
		return "", err
	}
	if err := w.Close(); err != nil {
		return "", err
	}
	return w.FormDataContentType(), nil
}

// requireOK turns a non-OK response into a StatusError.
func requireOK(endpoint string, resp *Response) error {
	if resp.OK() {
		return nil
	}
	return StatusError{Endpoint: endpoint, StatusCode: resp.StatusCode, Body: resp.Body}
}

func parseID(endpoint string, resp *Response) (int, error) {
	id, err := strconv.Atoi(strings.TrimSpace(resp.Body))
	if err != nil {
		return 0, fmt.Errorf("%w from %s: %q", ErrMalformedID, endpoint, resp.Body)
	}
	return id, nil
}

func itoa(n int) string {
	return strconv.Itoa(n)
}

func isRegularFile(path string) bool {
	if path == "" {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
