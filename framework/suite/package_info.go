// Package suite provides T, the test context used by every scenario in the contract test suite.
//
// T implements the same basic functionality as Go's testing.T, but in an environment that is
// outside of the Go test runner. Its Errorf and FailNow methods let it be passed to the assert
// and require packages of testify: assert records a failure and lets the scenario continue, so
// that several independent checks can all be reported from one run, while require stops the
// scenario immediately.
package suite
