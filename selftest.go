package main

import (
	"errors"
	"fmt"

	"github.com/racetrack/racetrack-client/logging"
	"github.com/racetrack/racetrack-client/racetrack"

	"gopkg.in/launchdarkly/go-sdk-common.v2/ldlog"
)

var errServerUnreachable = errors.New("server did not respond to a GET request")

type selfTest struct {
	params  commandParams
	config  runConfig
	session *racetrack.Session
	loggers ldlog.Loggers
	capture *logging.CapturingLogger
	logger  *ConsoleStepLogger
	results Results
}

func newSelfTest(params commandParams, config runConfig, logger *ConsoleStepLogger) *selfTest {
	capture := &logging.CapturingLogger{}
	loggers := logging.CapturingLoggers(capture)
	return &selfTest{
		params:  params,
		config:  config,
		loggers: loggers,
		capture: capture,
		logger:  logger,
		session: racetrack.NewSession(racetrack.Config{
			BaseURL: params.serviceURL,
			Timeout: params.timeout,
			Loggers: &loggers,
		}),
	}
}

// run goes through a whole test set lifecycle against the server. Steps continue after a
// failure, so that every problem shows up in one run.
func (st *selfTest) run() Results {
	st.step("initialize", func() (string, error) {
		if !st.session.Initialize() {
			return "", errServerUnreachable
		}
		return "server is reachable", nil
	})
	st.step("begin test set", func() (string, error) {
		return st.session.BeginTestSet(st.testSetParams())
	})
	st.step("begin test case", func() (string, error) {
		return st.session.BeginTestCase(st.testCaseParams())
	})
	st.step("comment", func() (string, error) {
		return responseDetail(st.session.AddComment("this is a comment."))
	})
	if st.params.screenshot != "" {
		st.step("upload screenshot", func() (string, error) {
			return responseDetail(st.session.UploadScreenshot("Screenshot Test", st.params.screenshot))
		})
	}
	if st.params.logFile != "" {
		st.step("upload log", func() (string, error) {
			return responseDetail(st.session.UploadLog("Upload Log test", st.params.logFile))
		})
	}
	st.step("verify", func() (string, error) {
		v, err := st.session.Verify("des test1", "verify text", "verify text", "")
		if err != nil {
			return "", err
		}
		detail, err := responseDetail(v.Response, nil)
		return fmt.Sprintf("%s %s", v.Result, detail), err
	})
	st.step("end test case", func() (string, error) {
		return responseDetail(st.session.EndTestCase(""))
	})
	st.step("end test set", func() (string, error) {
		return responseDetail(st.session.EndTestSet())
	})
	return st.results
}

func (st *selfTest) step(name string, action func() (string, error)) {
	st.logger.StepStarted(name)
	st.capture.Reset()
	detail, err := action()
	result := StepResult{Name: name, Detail: detail, Err: err}
	st.results.add(result)
	st.logger.StepFinished(result, st.capture.Output())
}

func (st *selfTest) testSetParams() racetrack.TestSetParams {
	if len(st.config.TestSet) == 0 {
		return racetrack.NewTestSetParams("11101", "test", "G11N_vCAC", "For Test", "Win 7")
	}
	params, unknown := racetrack.TestSetParamsFromConfig(st.config.TestSet)
	for _, k := range unknown {
		st.loggers.Warnf("ignoring unknown testSet field %q", k)
	}
	return params
}

func (st *selfTest) testCaseParams() racetrack.TestCaseParams {
	if len(st.config.TestCase) == 0 {
		return racetrack.NewTestCaseParams("case1", "feature1").WithDescription("For test:case1")
	}
	params, unknown := racetrack.TestCaseParamsFromConfig(st.config.TestCase)
	for _, k := range unknown {
		st.loggers.Warnf("ignoring unknown testCase field %q", k)
	}
	return params
}

func responseDetail(resp *racetrack.Response, err error) (string, error) {
	if err != nil {
		return "", err
	}
	if !resp.OK() {
		return "", fmt.Errorf("server returned HTTP status %d: %s", resp.StatusCode, resp.Body)
	}
	return resp.Body, nil
}
