package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/cmlabs-hris/hris-workflow-go/internal/domain/user"
	"github.com/cmlabs-hris/hris-workflow-go/internal/pkg/jwt"
	"github.com/go-chi/jwtauth/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func setupEnv(t *testing.T) {
	t.Helper()
	logger = zap.NewNop()
	t.Setenv("STORE_DRIVER", "sqlite")
	t.Setenv("SQLITE_PATH", filepath.Join(t.TempDir(), "hris.db"))
	t.Setenv("JWT_SECRET_KEY", "cli-secret")
	t.Setenv("APP_TIMEZONE", "Asia/Kolkata")
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestHolidayImportAndCheck(t *testing.T) {
	setupEnv(t)

	file := filepath.Join(t.TempDir(), "holidays.yaml")
	require.NoError(t, os.WriteFile(file, []byte(`holidays:
  - name: Independence Day
    date: 2025-08-15
  - name: Onam
    date: 05-09-2025
    type: restricted
  - name: ""
    date: 2025-10-02
`), 0o600))

	out, err := execute(t, "holiday", "import", file)
	require.NoError(t, err)
	assert.Contains(t, out, "received 3, imported 2, dropped 1")

	out, err = execute(t, "holiday", "check", "2025-08-15")
	require.NoError(t, err)
	assert.Contains(t, out, "holiday (Independence Day)")

	out, err = execute(t, "holiday", "check", "2025-09-05")
	require.NoError(t, err)
	assert.Contains(t, out, "restricted holiday (Onam)")

	out, err = execute(t, "holiday", "check", "2025-08-18")
	require.NoError(t, err)
	assert.Contains(t, out, "working day")

	_, err = execute(t, "holiday", "check", "18-08-2025")
	assert.Error(t, err)
}

func TestHolidayImport_UnknownKey(t *testing.T) {
	setupEnv(t)

	file := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(file, []byte("days:\n  - name: X\n"), 0o600))

	_, err := execute(t, "holiday", "import", file)
	assert.Error(t, err)
}

func TestToken(t *testing.T) {
	setupEnv(t)

	out, err := execute(t, "token", "--employee", "emp-42", "--role", "hod", "--ttl", "10m")
	require.NoError(t, err)
	raw := strings.TrimSpace(out)

	svc := jwt.NewJWTService("cli-secret", time.Hour)
	token, err := jwtauth.VerifyToken(svc.JWTAuth(), raw)
	require.NoError(t, err)
	claims, err := token.AsMap(context.Background())
	require.NoError(t, err)

	actor, err := svc.ActingUser(claims)
	require.NoError(t, err)
	assert.Equal(t, user.ActingUser{EmployeeID: "emp-42", Role: user.RoleHOD}, actor)

	_, err = execute(t, "token", "--employee", "emp-42", "--role", "intern")
	assert.ErrorContains(t, err, "intern")
}

func TestRemind_EmptyStore(t *testing.T) {
	setupEnv(t)

	out, err := execute(t, "remind")
	require.NoError(t, err)
	assert.Contains(t, out, "reminders sent: 0")
}
