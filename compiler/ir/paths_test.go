package ir

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestColonToBrace(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"/users", "/users"},
		{"/users/:id", "/users/{id}"},
		{"/users/:id/posts/:post_id", "/users/{id}/posts/{post_id}"},
		{"/:a/:b", "/{a}/{b}"},
		{"/users/:", "/users/:"},
		{"/users/:/posts", "/users/:/posts"},
		{"", ""},
		{":id", "{id}"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ColonToBrace(tt.in), "input %q", tt.in)
	}
}

func TestBraceToColon(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"/users/{id}", "/users/:id"},
		{"/users/{id}/posts/{post_id}", "/users/:id/posts/:post_id"},
		{"/users", "/users"},
		{"/users/{id", "/users/{id"},
		{"/users/{}", "/users/:"},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, BraceToColon(tt.in), "input %q", tt.in)
	}
}

func TestBracketToColon(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"/users/[id]", "/users/:id"},
		{"/users/[id]/posts/[post_id]", "/users/:id/posts/:post_id"},
		{"/users", "/users"},
		{"/users/[]", "/users/[]"},
		{"/users/[id", "/users/[id"},
		{"[id]", ":id"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, BracketToColon(tt.in), "input %q", tt.in)
	}
}

func TestNormalizePath(t *testing.T) {
	assert.Equal(t, "/users/:id", NormalizePath("/users/:id"))
	assert.Equal(t, "/users/:id", NormalizePath("/users/{id}"))
	assert.Equal(t, "/users/:id", NormalizePath("/users/[id]"))
	assert.Equal(t, "/a/:b/c/:d", NormalizePath("/a/[b]/c/{d}"))
}

func TestRoundTrip(t *testing.T) {
	paths := []string{"/users/:id", "/a/:b/:c", "/static"}
	for _, p := range paths {
		assert.Equal(t, p, BraceToColon(ColonToBrace(p)), "path %q", p)
	}
}
