package endpoints

import (
	"fmt"
	"net/url"
	"strings"
)

// Name is the symbolic key of a route in the table.
type Name string

const (
	CreateSessionList Name = "CREATE_SESSION_LIST"
	ChatSession       Name = "CHAT_SESSION"
	Config            Name = "CONFIG"
	AddAIToSession    Name = "ADD_AI_TO_SESSION"
	SendMessage       Name = "SEND_MESSAGE"
	CreateSession     Name = "CREATE_SESSION"
	UpdateSession     Name = "UPDATE_SESSION"
	TestCharacter     Name = "TEST_CHARACTER"
)

// ParseName maps user-facing spellings (CHAT_SESSION, chat_session, chat-session) to a Name.
// It does not check the name against any table.
func ParseName(s string) (Name, error) {
	n := strings.ToUpper(strings.TrimSpace(s))
	n = strings.ReplaceAll(n, "-", "_")
	if n == "" {
		return "", fmt.Errorf("%w: empty name", ErrUnknownRoute)
	}
	return Name(n), nil
}

// Route is one entry of the table. Template is relative to the base URL and uses
// {param} placeholders; Params lists them in argument order.
type Route struct {
	Name     Name     `json:"name"`
	Template string   `json:"template"`
	Params   []string `json:"params,omitempty"`
}

// Static reports whether the route takes no identifiers.
func (r Route) Static() bool { return len(r.Params) == 0 }

func (r Route) clone() Route {
	if r.Params != nil {
		r.Params = append([]string(nil), r.Params...)
	}
	return r
}

// Arity is the number of identifiers the route expects.
func (r Route) Arity() int { return len(r.Params) }

// Expand substitutes ids into the template, in argument order, and prefixes base.
// Every id is path-escaped; blank ids and a wrong count are rejected.
func (r Route) Expand(base string, ids ...string) (string, error) {
	if len(ids) != len(r.Params) {
		return "", newInvalidInput([]FieldError{{
			Field:   string(r.Name),
			Message: fmt.Sprintf("expects %d identifier(s), got %d", len(r.Params), len(ids)),
		}})
	}

	var ferrs []FieldError
	for i, id := range ids {
		if strings.TrimSpace(id) == "" {
			ferrs = append(ferrs, FieldError{Field: r.Params[i], Message: "must not be empty"})
		}
	}
	if err := newInvalidInput(ferrs); err != nil {
		return "", err
	}

	path := r.Template
	for i, p := range r.Params {
		path = strings.Replace(path, "{"+p+"}", url.PathEscape(ids[i]), 1)
	}
	return base + path, nil
}

// definitions is the canonical route set, in the order the catalog lists it.
var definitions = []Route{
	{Name: CreateSessionList, Template: "/chat/sessions"},
	{Name: ChatSession, Template: "/chat/session/{id}", Params: []string{"id"}},
	{Name: Config, Template: "/config"},
	{Name: AddAIToSession, Template: "/chat/session/{sessionId}/ai/{aiProfileId}", Params: []string{"sessionId", "aiProfileId"}},
	{Name: SendMessage, Template: "/chat/{sessionId}/message", Params: []string{"sessionId"}},
	{Name: CreateSession, Template: "/chat/session"},
	{Name: UpdateSession, Template: "/chat/session/{sessionId}", Params: []string{"sessionId"}},
	{Name: TestCharacter, Template: "/config/chat/{profileId}", Params: []string{"profileId"}},
}
