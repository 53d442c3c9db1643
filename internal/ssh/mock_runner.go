package ssh

import "context"

// MockCall is one recorded Run invocation.
type MockCall struct {
	Port    string
	Command string
}

// MockRunner is a test double that records calls and returns configured results.
type MockRunner struct {
	RunFunc func(ctx context.Context, port, command string) error
	Calls   []MockCall
}

// Run records the call and delegates to RunFunc.
func (m *MockRunner) Run(ctx context.Context, port, command string) error {
	m.Calls = append(m.Calls, MockCall{Port: port, Command: command})
	if m.RunFunc != nil {
		return m.RunFunc(ctx, port, command)
	}
	return nil
}
