// Package endpoints derives the chat backend's endpoint URLs from one base address
// and a fixed table of route templates.
package endpoints

import (
	"fmt"
	"net/url"
	"strings"
)

// DefaultBaseURL is the loopback backend used when nothing is configured.
const DefaultBaseURL = "http://127.0.0.1:3000"

// Table is the route catalog bound to a base URL. It is immutable once built
// and safe for concurrent use.
type Table struct {
	base   string
	routes []Route
	index  map[Name]Route
}

// New validates baseURL and binds the canonical route set to it.
func New(baseURL string) (*Table, error) {
	base, err := normalizeBase(baseURL)
	if err != nil {
		return nil, err
	}

	routes := make([]Route, len(definitions))
	index := make(map[Name]Route, len(definitions))
	for i, r := range definitions {
		routes[i] = r.clone()
		index[r.Name] = routes[i]
	}
	return &Table{base: base, routes: routes, index: index}, nil
}

// MustNew is New for process start-up; it panics on a bad base URL.
func MustNew(baseURL string) *Table {
	t, err := New(baseURL)
	if err != nil {
		panic(err)
	}
	return t
}

func normalizeBase(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("%w: empty", ErrInvalidBaseURL)
	}
	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidBaseURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", fmt.Errorf("%w: scheme must be http or https, got %q", ErrInvalidBaseURL, u.Scheme)
	}
	if u.Host == "" {
		return "", fmt.Errorf("%w: missing host", ErrInvalidBaseURL)
	}
	if u.RawQuery != "" || u.Fragment != "" || u.ForceQuery {
		return "", fmt.Errorf("%w: query and fragment are not allowed", ErrInvalidBaseURL)
	}
	return strings.TrimRight(raw, "/"), nil
}

// BaseURL returns the normalized base, without a trailing slash.
func (t *Table) BaseURL() string { return t.base }

// Routes lists the table in definition order. The slice is a copy.
func (t *Table) Routes() []Route {
	out := make([]Route, len(t.routes))
	for i, r := range t.routes {
		out[i] = r.clone()
	}
	return out
}

// Names lists route names in definition order.
func (t *Table) Names() []Name {
	out := make([]Name, 0, len(t.routes))
	for _, r := range t.routes {
		out = append(out, r.Name)
	}
	return out
}

// Lookup finds a route by name.
func (t *Table) Lookup(name Name) (Route, bool) {
	r, ok := t.index[name]
	if !ok {
		return Route{}, false
	}
	return r.clone(), true
}

// Resolve builds the URL for name with ids substituted in argument order.
func (t *Table) Resolve(name Name, ids ...string) (string, error) {
	r, ok := t.index[name]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownRoute, name)
	}
	return r.Expand(t.base, ids...)
}

// static routes never fail: their templates carry no placeholders.
func (t *Table) static(name Name) string {
	return t.base + t.index[name].Template
}

// CreateSessionList is {base}/chat/sessions.
func (t *Table) CreateSessionList() string { return t.static(CreateSessionList) }

// Config is {base}/config.
func (t *Table) Config() string { return t.static(Config) }

// CreateSession is {base}/chat/session.
func (t *Table) CreateSession() string { return t.static(CreateSession) }

// ChatSession is {base}/chat/session/{id}.
func (t *Table) ChatSession(id string) (string, error) {
	return t.Resolve(ChatSession, id)
}

// AddAIToSession is {base}/chat/session/{sessionId}/ai/{aiProfileId}.
func (t *Table) AddAIToSession(sessionID, aiProfileID string) (string, error) {
	return t.Resolve(AddAIToSession, sessionID, aiProfileID)
}

// SendMessage is {base}/chat/{sessionId}/message.
func (t *Table) SendMessage(sessionID string) (string, error) {
	return t.Resolve(SendMessage, sessionID)
}

// UpdateSession is {base}/chat/session/{sessionId}.
func (t *Table) UpdateSession(sessionID string) (string, error) {
	return t.Resolve(UpdateSession, sessionID)
}

// TestCharacter is {base}/config/chat/{profileId}.
func (t *Table) TestCharacter(profileID string) (string, error) {
	return t.Resolve(TestCharacter, profileID)
}
