package generator

import "context"

// ScriptedClient is a canned Client for local debugging and tests. It
// records how many times it was invoked so cascade short-circuiting can be
// asserted.
type ScriptedClient struct {
	ID       string
	Response string
	Err      error
	Calls    int
}

func (s *ScriptedClient) Name() string {
	if s.ID == "" {
		return "scripted"
	}
	return s.ID
}

func (s *ScriptedClient) Complete(_ context.Context, _ Prompt) (string, error) {
	s.Calls++
	if s.Err != nil {
		return "", s.Err
	}
	return s.Response, nil
}
