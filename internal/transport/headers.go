package transport

import "net/http"

// AuthorizationHeader carries the bearer credential.
const AuthorizationHeader = "Authorization"

type header struct {
	name  string
	value string
}

// Headers is an ordered name/value mapping applied to outgoing requests.
// Set and WithBearer return a new Headers and never modify the receiver.
type Headers struct {
	entries []header
}

// JSONHeaders returns the fixed headers sent with every POST.
func JSONHeaders() Headers {
	return Headers{}.
		Set("Content-Type", "application/json").
		Set("Accept", "application/json")
}

// Set returns a copy of h with name set to value. An existing entry keeps its
// position; a new one is appended.
func (h Headers) Set(name, value string) Headers {
	key := http.CanonicalHeaderKey(name)
	out := Headers{entries: make([]header, 0, len(h.entries)+1)}
	replaced := false
	for _, e := range h.entries {
		if e.name == key {
			e.value = value
			replaced = true
		}
		out.entries = append(out.entries, e)
	}
	if !replaced {
		out.entries = append(out.entries, header{name: key, value: value})
	}
	return out
}

// WithBearer returns a copy of h carrying "Authorization: Bearer <token>".
// Callers skip it entirely when they have no token.
func (h Headers) WithBearer(token string) Headers {
	return h.Set(AuthorizationHeader, "Bearer "+token)
}

func (h Headers) get(name string) (string, bool) {
	key := http.CanonicalHeaderKey(name)
	for _, e := range h.entries {
		if e.name == key {
			return e.value, true
		}
	}
	return "", false
}

func (h Headers) names() []string {
	names := make([]string, 0, len(h.entries))
	for _, e := range h.entries {
		names = append(names, e.name)
	}
	return names
}

func (h Headers) apply(req *http.Request) {
	for _, e := range h.entries {
		req.Header.Set(e.name, e.value)
	}
}
