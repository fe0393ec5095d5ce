package affirm

import "context"

// MockGenerator is a test double that records calls and returns a canned
// affirmation or error.
type MockGenerator struct {
	Response string
	Err      error
	Calls    []Request
}

func (m *MockGenerator) Generate(_ context.Context, req Request) (string, error) {
	m.Calls = append(m.Calls, req)
	if m.Err != nil {
		return "", m.Err
	}
	return m.Response, nil
}

var _ Generator = (*MockGenerator)(nil)
