package main

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/recipeshare/backend/internal/identity"
)

func TestRunList(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, runList(&buf, "", ""))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 10)
	assert.True(t, strings.HasPrefix(lines[0], "ID"))
	assert.Contains(t, lines[1], "Jollof Rice")

	buf.Reset()
	require.NoError(t, runList(&buf, "nigerian", "hard"))
	lines = strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[1], "Moimoi")

	assert.Error(t, runList(&buf, "", "impossible"))
}

func TestRunShow(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, runShow(&buf, "7"))
	assert.Contains(t, buf.String(), "title: Oha Soup")
	assert.Contains(t, buf.String(), "difficulty: Easy")

	assert.Error(t, runShow(&buf, "missing"))
}

func TestRunDifficulties(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, runDifficulties(&buf))
	assert.Contains(t, buf.String(), "#10b981")
	assert.Contains(t, buf.String(), "#f59e0b")
	assert.Contains(t, buf.String(), "#ef4444")
}

func TestRunToken(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, runToken(&buf, "dev-secret", "user_1", "sess_1", time.Hour))

	session, err := identity.NewJWTProvider("dev-secret").Authenticate(strings.TrimSpace(buf.String()))
	require.NoError(t, err)
	assert.Equal(t, "user_1", session.UserID)
	assert.Equal(t, "sess_1", session.SessionID)

	buf.Reset()
	require.NoError(t, runToken(&buf, "dev-secret", "user_1", "", time.Hour))
	session, err = identity.NewJWTProvider("dev-secret").Authenticate(strings.TrimSpace(buf.String()))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(session.SessionID, "sess_"))

	assert.ErrorIs(t, runToken(&buf, "", "user_1", "", time.Hour), identity.ErrProviderNotReady)
}
