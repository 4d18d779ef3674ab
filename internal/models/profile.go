package models

import (
	"encoding/json"
	"strconv"
)

// UserProfile is the user object returned by the profile endpoint, passed
// through exactly as the server sent it.
type UserProfile map[string]any

// ID returns the profile identifier as a string, or "" when absent.
func (p UserProfile) ID() string {
	switch v := p["id"].(type) {
	case string:
		return v
	case json.Number:
		return v.String()
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	return ""
}

// Account returns the account name, or "" when absent.
func (p UserProfile) Account() string {
	v, _ := p["account"].(string)
	return v
}
