package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCmdDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("DATA_PATH", "")
	t.Setenv("PARSE_METHOD", "")
	t.Setenv("STRICT_PARSE", "")

	cmd := newRootCmd()
	flags := cmd.Flags()

	port, err := flags.GetString("port")
	require.NoError(t, err)
	assert.Equal(t, "8080", port)

	data, err := flags.GetString("data")
	require.NoError(t, err)
	assert.Equal(t, "assets/data/data.csv", data)

	strict, err := flags.GetBool("strict")
	require.NoError(t, err)
	assert.False(t, strict)
}

func TestRootCmdEnvOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("PARSE_METHOD", "zip")
	t.Setenv("STRICT_PARSE", "true")

	cmd := newRootCmd()
	port, _ := cmd.Flags().GetString("port")
	method, _ := cmd.Flags().GetString("method")
	strict, _ := cmd.Flags().GetBool("strict")

	assert.Equal(t, "9090", port)
	assert.Equal(t, "zip", method)
	assert.True(t, strict)
}

func TestRootCmdFlagsBeatEnv(t *testing.T) {
	t.Setenv("PORT", "9090")
	cmd := newRootCmd()
	require.NoError(t, cmd.Flags().Parse([]string{"--port", "7000"}))
	port, _ := cmd.Flags().GetString("port")
	assert.Equal(t, "7000", port)
}
