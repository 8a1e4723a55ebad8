package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/racetrack/racetrack-client/racetracktest"
	"github.com/racetrack/racetrack-client/servicedef"

	"github.com/fatih/color"
	helpers "github.com/launchdarkly/go-test-helpers/v2"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	color.NoColor = true
}

func withTempFileData(t *testing.T, data []byte, action func(path string)) {
	helpers.WithTempFile(func(path string) {
		require.NoError(t, os.WriteFile(path, data, 0600))
		action(path)
	})
}

func runCommand(args ...string) (int, string, string) {
	var out, errOut bytes.Buffer
	status := run(append([]string{"racetrack-client"}, args...), &out, &errOut)
	return status, out.String(), errOut.String()
}

func TestSelfTestPasses(t *testing.T) {
	server := racetracktest.NewServer()
	defer server.Close()
	server.SetNextIDs(42, 7)

	status, out, _ := runCommand("-url", server.URL(), "test")
	assert.Equal(t, 0, status, out)
	assert.Contains(t, out, "All 7 steps passed")
	assert.Contains(t, out, "[begin test set]\n  PASS 42\n")

	var endpoints []string
	for _, r := range server.Requests() {
		endpoints = append(endpoints, r.Endpoint)
	}
	assert.Equal(t, []string{
		servicedef.EndpointTestSetBegin,
		servicedef.EndpointTestCaseBegin,
		servicedef.EndpointTestCaseComment,
		servicedef.EndpointTestCaseVerification,
		servicedef.EndpointTestCaseEnd,
		servicedef.EndpointTestSetEnd,
	}, endpoints)
	end := server.RequestsTo(servicedef.EndpointTestSetEnd)
	require.Len(t, end, 1)
	assert.Equal(t, "42", end[0].Form.Get(servicedef.FieldID))
}

func TestSelfTestWithConfigAndUploads(t *testing.T) {
	server := racetracktest.NewServer()
	defer server.Close()

	config := `
testSet:
  BuildID: "999"
  User: ci
  Product: Widget
  Description: nightly
  HostOS: Linux
  TestType: Smoke
testCase:
  Name: login
  Feature: auth
  Remark: flaky on Fridays
`
	withTempFileData(t, []byte(config), func(configPath string) {
		withTempFileData(t, []byte("log line"), func(logPath string) {
			status, out, _ := runCommand("-url", server.URL(), "-config", configPath, "-log", logPath, "test")
			assert.Equal(t, 0, status, out)
			assert.Contains(t, out, "All 8 steps passed")
		})
	})

	set := server.RequestsTo(servicedef.EndpointTestSetBegin)
	require.Len(t, set, 1)
	assert.Equal(t, "999", set[0].Form.Get(servicedef.FieldBuildID))
	assert.Equal(t, "Smoke", set[0].Form.Get(servicedef.FieldTestType))

	tc := server.RequestsTo(servicedef.EndpointTestCaseBegin)
	require.Len(t, tc, 1)
	assert.Equal(t, "login", tc[0].Form.Get(servicedef.FieldName))
	assert.Equal(t, "flaky on Fridays", tc[0].Form.Get(servicedef.FieldRemark))

	logs := server.RequestsTo(servicedef.EndpointTestCaseLog)
	require.Len(t, logs, 1)
	assert.Equal(t, "log line", string(logs[0].Files[servicedef.FileFieldLog].Data))
}

func TestSelfTestReportsFailures(t *testing.T) {
	server := racetracktest.NewServer()
	defer server.Close()
	server.SetResponse(servicedef.EndpointTestSetBegin, 500, "database is down")

	status, out, _ := runCommand("-url", server.URL(), "-debug", "test")
	assert.Equal(t, 1, status)
	assert.Contains(t, out, "FAIL TestSetBegin.php returned HTTP status 500: database is down")
	assert.Contains(t, out, "DEBUG ")
	assert.Contains(t, out, "there is no active test set")
	assert.Contains(t, out, "To see debug output, run:")
	assert.Contains(t, out, "-debug-all test")
	assert.Len(t, server.RequestsTo(servicedef.EndpointTestCaseBegin), 0)
}

func TestSelfTestWithMissingScreenshot(t *testing.T) {
	server := racetracktest.NewServer()
	defer server.Close()

	missing := filepath.Join(t.TempDir(), "missing.png")
	status, out, _ := runCommand("-url", server.URL(), "-screenshot", missing, "test")
	assert.Equal(t, 1, status)
	assert.Contains(t, out, "[upload screenshot]\n  FAIL")
	assert.Len(t, server.RequestsTo(servicedef.EndpointTestCaseScreenshot), 0)
}

func TestInvalidCommandLine(t *testing.T) {
	status, _, errOut := runCommand("test")
	assert.Equal(t, 2, status)
	assert.Contains(t, errOut, "-url is required")

	status, _, errOut = runCommand("-url", "http://localhost", "report")
	assert.Equal(t, 2, status)
	assert.Contains(t, errOut, `expected the "test" command`)
}

func TestInvalidConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("testSet: [1, 2"), 0600))

	status, _, errOut := runCommand("-url", "http://localhost", "-config", path, "test")
	assert.Equal(t, 1, status)
	assert.True(t, strings.HasPrefix(errOut, "Invalid config: malformed config file"), errOut)
}

func TestRerunCommandQuotesArguments(t *testing.T) {
	params := commandParams{program: "racetrack-client", serviceURL: "http://host/race track", debug: true}
	assert.Equal(t, `racetrack-client -url 'http://host/race track' -debug-all test`, params.rerunCommand())
}
