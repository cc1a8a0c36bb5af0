// Package framework contains the low-level implementation of test harness infrastructure
// that is not specific to any one API under test.
//
// The general model is:
//
// 1. The test harness talks to a remote service over HTTP, treating it as a black box.
//
// 2. There is a general notion of a test context, implemented in the suite subpackage, which
// is similar to Go's *testing.T, allowing pieces of test logic to be associated with a test
// identifier and to accumulate success/failure results.
//
// 3. Test output is reported through a TestLogger, and each test gets its own capturing debug
// logger whose output is only shown if the run was configured to show it.
//
// The domain-specific code that knows what is being tested is responsible for making the
// requests and for providing a domain-specific test API on top of the test context.
package framework
