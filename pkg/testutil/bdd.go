package testutil

import "testing"

// Step prefixes used in subtest names. Scenario output from the directory
// handler tests reads as "Given a negative budget/Then it is rejected".
const (
	GivenPrefix = "Given "
	WhenPrefix  = "When "
	ThenPrefix  = "Then "
)

// Given runs fn as a subtest describing the fixture a scenario starts from,
// such as a seeded builder catalog or a lead payload.
func Given(t *testing.T, desc string, fn func(t *testing.T)) bool {
	t.Helper()
	return t.Run(GivenPrefix+desc, fn)
}

// When runs fn as a subtest describing the request under test.
func When(t *testing.T, desc string, fn func(t *testing.T)) bool {
	t.Helper()
	return t.Run(WhenPrefix+desc, fn)
}

// Then runs fn as a subtest holding the assertions. It reports whether they
// passed so a scenario can stop before dependent steps.
func Then(t *testing.T, desc string, fn func(t *testing.T)) bool {
	t.Helper()
	return t.Run(ThenPrefix+desc, fn)
}
