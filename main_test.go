package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseQueryParams(t *testing.T) {
	params, err := parseQueryParams([]string{`slug="east-legon-villa"`, "$limit=3", "status=sale"})
	require.NoError(t, err)

	assert.Equal(t, "east-legon-villa", params["slug"])
	assert.Equal(t, 3.0, params["limit"])
	assert.Equal(t, "sale", params["status"])
}

func TestParseQueryParamsInvalid(t *testing.T) {
	_, err := parseQueryParams([]string{"no-equals-sign"})
	assert.Error(t, err)

	_, err = parseQueryParams([]string{"=value"})
	assert.Error(t, err)
}
