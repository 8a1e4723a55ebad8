package racetrack

import (
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/racetrack/racetrack-client/logging"
	"github.com/racetrack/racetrack-client/servicedef"

	"gopkg.in/launchdarkly/go-sdk-common.v2/ldlog"
	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

const (
	DefaultProbeTimeout = time.Second * 5
	DefaultTimeout      = time.Second * 10
)

// Config contains the settings for a Session. Only BaseURL is required.
type Config struct {
	// BaseURL is the RaceTrack server, such as "https://racetrack.example.com". Endpoint names
	// are appended to it.
	BaseURL string

	// Timeout applies to every POST request. Zero means DefaultTimeout. It is ignored if
	// HTTPClient is set.
	Timeout time.Duration

	// ProbeTimeout applies to the reachability check done by Initialize. Zero means
	// DefaultProbeTimeout.
	ProbeTimeout time.Duration

	// HTTPClient, if not nil, is used for all requests instead of a client created from Timeout.
	HTTPClient *http.Client

	// Loggers receives error and debug output. Nil means logging to stderr at Info level
	// and above.
	Loggers *ldlog.Loggers
}

// Session tracks the active test set and test case on a RaceTrack server.
type Session struct {
	baseURL         string
	httpClient      *http.Client
	probeTimeout    time.Duration
	loggers         ldlog.Loggers
	testSetID       ldvalue.OptionalInt
	testCaseID      ldvalue.OptionalInt
	pendingResult   Result
	serverReachable bool
}

// NewSession creates a Session for the server in config. It makes no requests; call
// Initialize to check that the server is reachable.
func NewSession(config Config) *Session {
	s := &Session{
		baseURL:         strings.TrimSuffix(config.BaseURL, "/"),
		httpClient:      config.HTTPClient,
		probeTimeout:    config.ProbeTimeout,
		serverReachable: true,
	}
	if s.httpClient == nil {
		timeout := config.Timeout
		if timeout <= 0 {
			timeout = DefaultTimeout
		}
		s.httpClient = &http.Client{Timeout: timeout}
	}
	if s.probeTimeout <= 0 {
		s.probeTimeout = DefaultProbeTimeout
	}
	if config.Loggers != nil {
		s.loggers = *config.Loggers
	} else {
		s.loggers = logging.ConsoleLoggers(os.Stderr, false)
	}
	return s
}

// Initialize makes a GET request to the base URL to find out whether the server can be reached,
// and returns the result. Any HTTP response counts as reachable. The result is informational
// only: other operations are attempted either way.
func (s *Session) Initialize() bool {
	probe := *s.httpClient
	probe.Timeout = s.probeTimeout
	resp, err := probe.Get(s.baseURL)
	if err != nil {
		s.loggers.Warnf("RaceTrack server %s is not reachable: %s", s.baseURL, err)
		s.serverReachable = false
		return false
	}
	_ = resp.Body.Close()
	s.loggers.Debugf("Got %d status from %s", resp.StatusCode, s.baseURL)
	s.serverReachable = true
	return true
}

// ServerReachable returns the result of the last Initialize call, or true if it was never
// called.
func (s *Session) ServerReachable() bool {
	return s.serverReachable
}

// TestSetID returns the ID of the active test set, if any.
func (s *Session) TestSetID() ldvalue.OptionalInt {
	return s.testSetID
}

// TestCaseID returns the ID of the active test case, if any.
func (s *Session) TestCaseID() ldvalue.OptionalInt {
	return s.testCaseID
}

// PendingResult returns the result that EndTestCase will submit if it is not given one. It is
// empty if there is no active test case.
func (s *Session) PendingResult() Result {
	return s.pendingResult
}

func (s *Session) fail(operation string, err error) error {
	s.loggers.Errorf("%s: %s", operation, err)
	return err
}

// BeginTestSet creates a test set and makes it the active one. It returns the new ID exactly as
// the server sent it.
//
// An invalid Language or TestType is an error and nothing is sent. Missing required fields are
// logged but the request is still made, leaving it to the server to reject it.
func (s *Session) BeginTestSet(params TestSetParams) (string, error) {
	const op = "BeginTestSet"
	if lang := params.language(); !lang.IsValid() {
		return "", s.fail(op, fmt.Errorf("%w - %s", ErrInvalidLanguage, lang))
	}
	if tt := params.testType(); !tt.IsValid() {
		return "", s.fail(op, fmt.Errorf("%w - %s", ErrInvalidTestType, tt))
	}
	for _, name := range params.missingFields() {
		s.loggers.Errorf("%s: invalid parameters, lack param: %s", op, name)
	}

	id, resp, err := s.begin(servicedef.EndpointTestSetBegin, params.form())
	if err != nil {
		return "", s.fail(op, err)
	}
	s.testSetID = ldvalue.NewOptionalInt(id)
	return resp.Body, nil
}

// TestSetData attaches a name/value pair to the active test set.
func (s *Session) TestSetData(name, value string) (*Response, error) {
	const op = "TestSetData"
	if !s.testSetID.IsDefined() {
		return nil, s.fail(op, ErrNoActiveTestSet)
	}
	form := url.Values{}
	form.Set(servicedef.FieldResultSetID, itoa(s.testSetID.IntValue()))
	form.Set(servicedef.FieldName, name)
	form.Set(servicedef.FieldValue, value)
	resp, err := s.post(servicedef.EndpointTestSetData, form, nil)
	if err != nil {
		return nil, err
	}
	if err := requireOK(servicedef.EndpointTestSetData, resp); err != nil {
		return nil, s.fail(op, err)
	}
	return resp, nil
}

// EndTestSet closes the active test set. The session still remembers its ID afterward, until
// another test set is begun.
func (s *Session) EndTestSet() (*Response, error) {
	if !s.testSetID.IsDefined() {
		return nil, s.fail("EndTestSet", ErrNoActiveTestSet)
	}
	form := url.Values{}
	form.Set(servicedef.FieldID, itoa(s.testSetID.IntValue()))
	return s.post(servicedef.EndpointTestSetEnd, form, nil)
}

// BeginTestCase creates a test case in the active test set and makes it the active one, with a
// pending result of PASS. It returns the new ID exactly as the server sent it.
func (s *Session) BeginTestCase(params TestCaseParams) (string, error) {
	const op = "BeginTestCase"
	if !s.testSetID.IsDefined() {
		return "", s.fail(op, ErrNoActiveTestSet)
	}
	for _, name := range params.missingFields() {
		s.loggers.Errorf("%s: invalid parameters, lack param: %s", op, name)
	}

	id, resp, err := s.begin(servicedef.EndpointTestCaseBegin, params.form(s.testSetID.IntValue()))
	if err != nil {
		return "", s.fail(op, err)
	}
	s.testCaseID = ldvalue.NewOptionalInt(id)
	s.pendingResult = ResultPass
	return resp.Body, nil
}

// begin posts a request that is expected to return a new integer ID.
func (s *Session) begin(endpoint string, form url.Values) (int, *Response, error) {
	resp, err := s.post(endpoint, form, nil)
	if err != nil {
		return 0, nil, err
	}
	if err := requireOK(endpoint, resp); err != nil {
		return 0, nil, err
	}
	id, err := parseID(endpoint, resp)
	if err != nil {
		return 0, nil, err
	}
	return id, resp, nil
}

// EndTestCase closes the active test case with the given result, or with the pending result if
// result is empty. The session forgets the test case only if the server accepted the request;
// otherwise the call can be retried.
func (s *Session) EndTestCase(result Result) (*Response, error) {
	const op = "EndTestCase"
	if !s.testCaseID.IsDefined() {
		return nil, s.fail(op, ErrNoActiveTestCase)
	}
	if result == "" {
		result = s.pendingResult
	}
	if !result.IsValid() {
		return nil, s.fail(op, fmt.Errorf("%w - %s", ErrInvalidResult, result))
	}

	form := url.Values{}
	form.Set(servicedef.FieldID, itoa(s.testCaseID.IntValue()))
	form.Set(servicedef.FieldResult, string(result))
	resp, err := s.post(servicedef.EndpointTestCaseEnd, form, nil)
	if err != nil {
		return nil, err
	}
	if err := requireOK(servicedef.EndpointTestCaseEnd, resp); err != nil {
		return nil, s.fail(op, err)
	}
	s.testCaseID = ldvalue.OptionalInt{}
	s.pendingResult = ""
	return resp, nil
}

// AddComment attaches a comment to the active test case.
func (s *Session) AddComment(comment string) (*Response, error) {
	return s.describe("AddComment", servicedef.EndpointTestCaseComment, comment)
}

// AddWarning attaches a warning to the active test case.
func (s *Session) AddWarning(warning string) (*Response, error) {
	return s.describe("AddWarning", servicedef.EndpointTestCaseWarning, warning)
}

func (s *Session) describe(op, endpoint, text string) (*Response, error) {
	if text == "" {
		return nil, s.fail(op, ErrEmptyArgument)
	}
	if !s.testCaseID.IsDefined() {
		return nil, s.fail(op, ErrNoActiveTestCase)
	}
	form := s.testCaseForm()
	form.Set(servicedef.FieldDescription, text)
	return s.post(endpoint, form, nil)
}

// UploadScreenshot uploads an image file for the active test case.
func (s *Session) UploadScreenshot(description, path string) (*Response, error) {
	return s.upload("UploadScreenshot", servicedef.EndpointTestCaseScreenshot, servicedef.FileFieldScreenshot,
		description, path)
}

// UploadLog uploads a log file for the active test case.
func (s *Session) UploadLog(description, path string) (*Response, error) {
	return s.upload("UploadLog", servicedef.EndpointTestCaseLog, servicedef.FileFieldLog, description, path)
}

func (s *Session) upload(op, endpoint, field, description, path string) (*Response, error) {
	if !s.testCaseID.IsDefined() {
		return nil, s.fail(op, ErrNoActiveTestCase)
	}
	if !isRegularFile(path) {
		return nil, s.fail(op, fmt.Errorf("%w: %q", ErrFileNotFound, path))
	}
	form := s.testCaseForm()
	form.Set(servicedef.FieldDescription, description)
	return s.post(endpoint, form, &attachment{field: field, path: path})
}

// Verification is the record of one Verify call.
type Verification struct {
	Description string
	Actual      string
	Expected    string
	Result      VerifyResult
	Screenshot  string
	Response    *Response
}

// Verify compares actual with expected and records the comparison against the active test case.
// If they differ, the test case's pending result becomes FAIL, and stays FAIL for the rest of
// the test case. If screenshot names an existing file, it is uploaded with the verification;
// otherwise it is ignored.
//
// The returned Verification carries the comparison result even if the request itself failed.
func (s *Session) Verify(description, actual, expected, screenshot string) (Verification, error) {
	const op = "Verify"
	v := Verification{Description: description, Actual: actual, Expected: expected}
	if !s.testCaseID.IsDefined() {
		return v, s.fail(op, ErrNoActiveTestCase)
	}
	if actual == "" || expected == "" {
		return v, s.fail(op, fmt.Errorf("%w: actual and expected values are required", ErrEmptyArgument))
	}

	v.Result = verifyResultOf(actual, expected)
	if v.Result == VerifyFalse {
		s.pendingResult = ResultFail
	}

	form := s.testCaseForm()
	form.Set(servicedef.FieldDescription, description)
	form.Set(servicedef.FieldActual, actual)
	form.Set(servicedef.FieldExpected, expected)
	form.Set(servicedef.FieldResult, string(v.Result))

	var file *attachment
	if screenshot != "" {
		if isRegularFile(screenshot) {
			v.Screenshot = screenshot
			file = &attachment{field: servicedef.FileFieldScreenshot, path: screenshot}
		} else {
			s.loggers.Warnf("%s: screenshot %q does not exist, sending verification without it", op, screenshot)
		}
	}

	resp, err := s.post(servicedef.EndpointTestCaseVerification, form, file)
	v.Response = resp
	return v, err
}

func (s *Session) testCaseForm() url.Values {
	form := url.Values{}
	form.Set(servicedef.FieldResultID, itoa(s.testCaseID.IntValue()))
	return form
}
