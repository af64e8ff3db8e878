package main

import (
	"bytes"
	"os"
	"strings"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("LOG_LEVEL", "error")
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&bytes.Buffer{})
	root.SetArgs(append([]string{"--config", ""}, args...))
	err := root.Execute()
	return out.String(), err
}

func storeFlags(s *miniredis.Miniredis) []string {
	return []string{"--store-host", s.Host(), "--store-port", s.Port()}
}

func TestPushAndPop(t *testing.T) {
	s := miniredis.RunT(t)

	_, err := run(t, append(storeFlags(s), "push", "jobs", "task-42")...)
	require.NoError(t, err)
	list, err := s.DB(0).List("jobs")
	require.NoError(t, err)
	assert.Equal(t, []string{"task-42"}, list)

	_, err = s.SAdd("work", "apk-1")
	require.NoError(t, err)
	out, err := run(t, append(storeFlags(s), "pop", "work")...)
	require.NoError(t, err)
	assert.Equal(t, "apk-1\n", out)

	out, err = run(t, append(storeFlags(s), "pop", "work")...)
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestPush_CredentialFromEnv(t *testing.T) {
	s := miniredis.RunT(t)
	s.RequireAuth("s3cret")

	_, err := run(t, append(storeFlags(s), "push", "jobs", "v")...)
	assert.Error(t, err)

	t.Setenv("STORE_PASSWORD", "s3cret")
	_, err = run(t, append(storeFlags(s), "push", "jobs", "v")...)
	assert.NoError(t, err)
}

func TestPush_BadPort(t *testing.T) {
	_, err := run(t, "--store-port", "not-a-port", "push", "jobs", "v")
	assert.Error(t, err)
}

func TestTmpdir(t *testing.T) {
	out, err := run(t, "tmpdir")
	require.NoError(t, err)
	assert.Equal(t, os.TempDir(), strings.TrimSpace(out))
}

func TestToken(t *testing.T) {
	_, err := run(t, "token", "--subject", "worker-1")
	assert.Error(t, err, "no signing key configured")

	t.Setenv("AUTH_SIGNING_KEY", "k3y")
	out, err := run(t, "token", "--subject", "worker-1")
	require.NoError(t, err)
	assert.Len(t, strings.Split(strings.TrimSpace(out), "."), 3)
}
