package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveID_ExactMatchWinsOverPrefix(t *testing.T) {
	ids := []string{"abc", "abcdef"}
	got, err := resolveID("task", ids, "abc")
	require.NoError(t, err)
	assert.Equal(t, "abc", got)
}

func TestResolveID_UniquePrefix(t *testing.T) {
	ids := []string{"4f3a9c11", "9b2d7e44"}
	got, err := resolveID("task", ids, "4f3")
	require.NoError(t, err)
	assert.Equal(t, "4f3a9c11", got)
}

func TestResolveID_AmbiguousPrefix(t *testing.T) {
	ids := []string{"4f3a9c11", "4f3b7e44"}
	_, err := resolveID("task", ids, "4f3")
	assert.ErrorContains(t, err, "ambiguous")
}

func TestResolveID_NotFound(t *testing.T) {
	_, err := resolveID("project", []string{"aaa"}, "zzz")
	assert.ErrorContains(t, err, "not found")
}

func TestResolveID_EmptyInput(t *testing.T) {
	_, err := resolveID("workspace", []string{"aaa"}, "")
	assert.ErrorContains(t, err, "required")
}
