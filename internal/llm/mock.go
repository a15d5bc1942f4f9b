package llm

import "context"

// MockGateway permite tests y corridas offline sin un model API real.
type MockGateway struct {
	Response string
	Status   string
}

func (m *MockGateway) Answer(_ context.Context, _ string) string {
	if m.Response == "" {
		return AnswerFallback
	}
	return m.Response
}

func (m *MockGateway) Health(_ context.Context) string {
	if m.Status == "" {
		return StatusHealthy
	}
	return m.Status
}
