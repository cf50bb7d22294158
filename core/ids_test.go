package core

import (
	"regexp"
	"strings"
	"testing"

	"github.com/oklog/ulid/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var ulidPattern = regexp.MustCompile(`^[0123456789ABCDEFGHJKMNPQRSTVWXYZ]{26}$`)

func TestNewID_ValidPrefix(t *testing.T) {
	testCases := []struct {
		name     string
		prefix   string
		expected string
	}{
		{name: "todo prefix", prefix: "td", expected: "td"},
		{name: "uppercase prefix gets lowercased", prefix: "TD", expected: "td"},
		{name: "prefix with surrounding spaces gets trimmed", prefix: "  td  ", expected: "td"},
		{name: "single character prefix", prefix: "u", expected: "u"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			id := NewID(tc.prefix)

			parts := strings.Split(id, "_")
			require.Len(t, parts, 2, "ID should have exactly one underscore separating prefix and ULID")
			assert.Equal(t, tc.expected, parts[0])
			assert.True(t, ulidPattern.MatchString(parts[1]), "ULID part should match base32 format")

			_, err := ulid.Parse(parts[1])
			assert.NoError(t, err)
		})
	}
}

func TestNewID_EmptyPrefix_Panics(t *testing.T) {
	for _, prefix := range []string{"", "   ", "\t\t", " \t \n "} {
		t.Run(prefix, func(t *testing.T) {
			assert.Panics(t, func() {
				NewID(prefix)
			})
		})
	}
}

func TestNewID_Uniqueness(t *testing.T) {
	ids := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		id := NewID("td")
		assert.False(t, ids[id], "Generated ID should be unique: %s", id)
		ids[id] = true
	}
	assert.Len(t, ids, 1000)
}

func TestIsValidULID(t *testing.T) {
	tests := []struct {
		name string
		id   string
		want bool
	}{
		{name: "generated todo id", id: NewID("td"), want: true},
		{name: "numeric prefix", id: NewID("v1"), want: true},
		{name: "empty string", id: "", want: false},
		{name: "no underscore separator", id: "td01G0EZ1XTM37C5X11SQTDNCTM1", want: false},
		{name: "multiple underscores", id: "td_01G0_EZ1XTM37C5X11SQTDNCTM1", want: false},
		{name: "empty prefix", id: "_01G0EZ1XTM37C5X11SQTDNCTM1", want: false},
		{name: "uppercase prefix", id: "TD_01G0EZ1XTM37C5X11SQTDNCTM1", want: false},
		{name: "prefix with special chars", id: "t-d_01G0EZ1XTM37C5X11SQTDNCTM1", want: false},
		{name: "ULID part too short", id: "td_01G0EZ1XTM37C5X11SQTDNCT", want: false},
		{name: "ULID part too long", id: "td_01G0EZ1XTM37C5X11SQTDNCTM12", want: false},
		{name: "invalid ULID characters", id: "td_01G0EZ1XTM37C5X11SQTDNCTL1", want: false},
		{name: "lowercase ULID part", id: "td_01g0ez1xtm37c5x11sqtdnctm1", want: false},
		{name: "clerk user id", id: "user_2abcDEF", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsValidULID(tt.id))
		})
	}
}

func TestHasIDPrefix(t *testing.T) {
	id := NewID("td")
	assert.True(t, HasIDPrefix(id, "td"))
	assert.True(t, HasIDPrefix(id, "TD"))
	assert.False(t, HasIDPrefix(id, "u"))
	assert.False(t, HasIDPrefix("td_nope", "td"))
}
