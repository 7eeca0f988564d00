package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fitness-journal/internal/config"
	"fitness-journal/internal/domain"
	"fitness-journal/internal/repository/sqlstore"
)

// newTestRoot returns a root command over a fresh SQLite file with output
// captured in the returned buffer.
func newTestRoot(t *testing.T) (*RootCommand, *bytes.Buffer, string) {
	t.Helper()

	t.Setenv("JOURNAL_JWT_SECRET", "test-secret-key-min-32-characters-long")
	t.Setenv("JOURNAL_BCRYPT_COST", "4")
	t.Setenv("JOURNAL_METRICS_ENABLED", "false")

	dsn := filepath.Join(t.TempDir(), "journal.db")
	out := &bytes.Buffer{}
	return NewRootCommand(&config.Loader{}, out), out, dsn
}

func execute(t *testing.T, root *RootCommand, args ...string) error {
	t.Helper()
	root.SetArgs(args)
	return root.Execute()
}

func TestRootCommand_RequiresSecret(t *testing.T) {
	root, _, dsn := newTestRoot(t)
	t.Setenv("JOURNAL_JWT_SECRET", "")

	err := execute(t, root, "migrate", "status", "--db-dsn", dsn)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "auth.jwt_secret")
}

func TestRootCommand_FlagOverrides(t *testing.T) {
	root, _, dsn := newTestRoot(t)

	require.NoError(t, execute(t, root, "migrate", "status", "--db-dsn", dsn, "--timezone", "Europe/Berlin", "--log-level", "warn"))
	assert.Equal(t, dsn, root.config.Database.DSN)
	assert.Equal(t, "Europe/Berlin", root.config.App.Timezone)
	assert.Equal(t, "warn", root.config.App.LogLevel)
	assert.Equal(t, ":8080", root.config.HTTP.Addr, "unset flags keep the loaded value")
}

func TestRootCommand_InvalidTimezoneFlag(t *testing.T) {
	root, _, dsn := newTestRoot(t)

	err := execute(t, root, "migrate", "status", "--db-dsn", dsn, "--timezone", "Mars/Olympus")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "app.timezone")
}

func TestMigrateCommands(t *testing.T) {
	root, out, dsn := newTestRoot(t)

	require.NoError(t, execute(t, root, "migrate", "status", "--db-dsn", dsn))
	assert.Contains(t, out.String(), "000001  create_users         pending")
	assert.Contains(t, out.String(), "000002  create_entries       pending")

	out.Reset()
	require.NoError(t, execute(t, root, "migrate", "up", "--db-dsn", dsn))
	assert.Equal(t, "Applied 2 migration(s)\n", out.String())

	out.Reset()
	require.NoError(t, execute(t, root, "migrate", "up", "--db-dsn", dsn))
	assert.Equal(t, "Schema is up to date\n", out.String())

	out.Reset()
	require.NoError(t, execute(t, root, "migrate", "down", "--db-dsn", dsn))
	assert.Equal(t, "Reverted 1 migration\n", out.String())

	out.Reset()
	require.NoError(t, execute(t, root, "migrate", "status", "--db-dsn", dsn))
	assert.Contains(t, out.String(), "000001  create_users         applied")
	assert.Contains(t, out.String(), "000002  create_entries       pending")
}

// seedUser registers a user through the services and logs the given durations today.
func seedUser(t *testing.T, root *RootCommand, dsn, email string, durations ...int) {
	t.Helper()
	require.NoError(t, execute(t, root, "migrate", "up", "--db-dsn", dsn))

	ctx := context.Background()
	db, err := sqlstore.Open(ctx, sqlstore.Options{Driver: sqlstore.DriverSQLite, DSN: dsn})
	require.NoError(t, err)
	defer db.Close()

	container := newServiceContainer(root.config, db, nil)
	result, err := container.AuthService.Register(ctx, domain.RegisterInput{
		Email:    email,
		Password: "secret123",
		Name:     "Jane",
	})
	require.NoError(t, err)

	for _, d := range durations {
		_, err := container.EntryService.Create(ctx, result.User.ID, domain.CreateEntryInput{
			Date:        time.Now().UTC(),
			WorkoutType: "Running",
			Duration:    d,
		})
		require.NoError(t, err)
	}
}

func TestStatsCommand(t *testing.T) {
	root, out, dsn := newTestRoot(t)
	seedUser(t, root, dsn, "jane@example.com", 30, 1200)

	out.Reset()
	require.NoError(t, execute(t, root, "stats", "--db-dsn", dsn, "--email", "Jane@Example.com"))

	text := out.String()
	assert.Contains(t, text, "Jane <jane@example.com>")
	assert.Regexp(t, `Sessions this week:\s+2\n`, text)
	assert.Regexp(t, `Minutes this week:\s+1,230\n`, text)
	assert.Regexp(t, `Total minutes:\s+1,230\n`, text)
	assert.Regexp(t, `Current streak:\s+1 day\n`, text)
}

func TestStatsCommand_JSON(t *testing.T) {
	root, out, dsn := newTestRoot(t)
	seedUser(t, root, dsn, "jane@example.com", 45)

	out.Reset()
	require.NoError(t, execute(t, root, "stats", "--db-dsn", dsn, "--email", "jane@example.com", "--json"))

	var stats domain.Stats
	require.NoError(t, json.Unmarshal(out.Bytes(), &stats))
	assert.Equal(t, domain.Stats{
		ThisWeekSessions:        1,
		TotalDurationMinutes:    45,
		ThisWeekDurationMinutes: 45,
		StreakDays:              1,
	}, stats)
}

func TestStatsCommand_UnknownEmail(t *testing.T) {
	root, _, dsn := newTestRoot(t)

	err := execute(t, root, "stats", "--db-dsn", dsn, "--email", "ghost@example.com")
	require.Error(t, err)
	assert.Equal(t, "failed to load stats: no user with email ghost@example.com", err.Error())
}

func TestStatsCommand_RequiresEmail(t *testing.T) {
	root, _, dsn := newTestRoot(t)

	err := execute(t, root, "stats", "--db-dsn", dsn)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "email")
}

func TestPluralDays(t *testing.T) {
	assert.Equal(t, "0 days", pluralDays(0))
	assert.Equal(t, "1 day", pluralDays(1))
	assert.Equal(t, "1,000 days", pluralDays(1000))
}
