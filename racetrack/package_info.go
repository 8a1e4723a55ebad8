// Package racetrack is a client for the RaceTrack test-management service.
//
// A Session records one test set at a time, and within it one test case at a time:
//
//	s := racetrack.NewSession(racetrack.Config{BaseURL: "https://racetrack.example.com"})
//	s.Initialize()
//	s.BeginTestSet(racetrack.NewTestSetParams("11101", "me", "MyProduct", "nightly", "Linux"))
//	s.BeginTestCase(racetrack.NewTestCaseParams("case1", "login"))
//	s.Verify("title", actual, "Welcome", "")
//	s.EndTestCase("")
//	s.EndTestSet()
//
// Every operation makes at most one synchronous HTTP request. Failures are logged and returned
// as errors; none of them is fatal, so a caller can keep running its tests if reporting fails.
// A Session is not safe for concurrent use.
package racetrack
