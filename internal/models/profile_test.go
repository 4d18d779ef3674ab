package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUserProfile_Accessors(t *testing.T) {
	assert.Equal(t, "42", UserProfile{"id": float64(42)}.ID())
	assert.Equal(t, "u-1", UserProfile{"id": "u-1"}.ID())
	assert.Equal(t, "9007199254740993", UserProfile{"id": json.Number("9007199254740993")}.ID())
	assert.Equal(t, "", UserProfile{"id": true}.ID())
	assert.Equal(t, "", UserProfile{}.ID())

	assert.Equal(t, "alice", UserProfile{"account": "alice"}.Account())
	assert.Equal(t, "", UserProfile{"account": 1}.Account())
}
