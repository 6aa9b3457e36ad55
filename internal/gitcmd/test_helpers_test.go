// Package gitcmd contains helpers for testing git command interactions.
package gitcmd

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// mockRunner is a helper for tests that only need a single mock function.
type mockRunner struct {
	mock func(ctx context.Context, args ...string) (string, error)
}

func (m *mockRunner) run(ctx context.Context, args ...string) (string, error) {
	if m.mock != nil {
		return m.mock(ctx, args...)
	}
	return "", errors.New("mockRunner not implemented")
}

// setupMockRunner swaps the package Runner for the mock and returns a
// teardown function.
func setupMockRunner(_ *testing.T, mockFunc func(_ context.Context, args ...string) (string, error)) func() {
	originalRunner := Runner
	mock := &mockRunner{mock: mockFunc}
	Runner = mock.run
	return func() {
		Runner = originalRunner
	}
}

// commandExpectation defines an expected git command call and its result.
type commandExpectation struct {
	args   []string
	output string
	err    error
}

// setupExpectations sets the package Runner to a mock that verifies
// calls against an ordered sequence of expectations. It returns a
// teardown function that also fails the test if expectations remain
// unmet.
func setupExpectations(t *testing.T, expectations []commandExpectation) func() {
	t.Helper()

	originalRunner := Runner
	currentIndex := 0
	var mu sync.Mutex

	Runner = func(_ context.Context, args ...string) (string, error) {
		mu.Lock()
		defer mu.Unlock()

		if currentIndex >= len(expectations) {
			t.Fatalf("Unexpected git command call: %v. No more expectations.", args)
			return "", errors.New("unexpected call")
		}

		expected := expectations[currentIndex]
		if diff := cmp.Diff(expected.args, args); diff != "" {
			t.Fatalf("Unexpected git command arguments (-want +got):\n%s", diff)
			return "", errors.New("unexpected arguments")
		}

		currentIndex++
		return expected.output, expected.err
	}

	return func() {
		mu.Lock()
		defer mu.Unlock()
		if currentIndex < len(expectations) {
			t.Errorf("Not all expected git commands were called. Expected %d more.", len(expectations)-currentIndex)
			for i := currentIndex; i < len(expectations); i++ {
				t.Logf("Remaining expectation %d: args=%v, output=%q, err=%v",
					i, expectations[i].args, expectations[i].output, expectations[i].err)
			}
		}
		Runner = originalRunner
	}
}
