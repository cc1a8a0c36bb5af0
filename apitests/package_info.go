// Package apitests contains the contract tests for the companies and users resources, and the
// helpers they share.
//
// The generic parts of a test run, such as filtering and result collection, are in the
// framework packages; the HTTP client and the response verifier are in apiclient and verify.
package apitests
