package config

import (
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/chat")

	cfg, err := Load()
	require.NoError(t, err)

	require.Equal(t, "8747", cfg.Port)
	require.Equal(t, DriverPostgres, cfg.DatabaseDriver)
	require.Equal(t, 5*time.Second, cfg.StoreTimeout)
	require.Equal(t, []string{"http://localhost:5173"}, cfg.Origins)
	require.Equal(t, 256, cfg.WSSendBuffer)
	require.False(t, cfg.RequireAuth)
	require.Equal(t, "zap", cfg.Log.Backend)
}

func TestLoad_MissingDatabaseURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	require.NoError(t, os.Unsetenv("DATABASE_URL"))

	_, err := Load()
	require.Error(t, err)
}

func TestLoad_Validation(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"unknown driver", map[string]string{"DATABASE_DRIVER": "mongo"}},
		{"auth without secret", map[string]string{"CHAT_REQUIRE_AUTH": "true"}},
		{"zero store timeout", map[string]string{"STORE_TIMEOUT": "0s"}},
		{"zero send buffer", map[string]string{"WS_SEND_BUFFER": "0"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("DATABASE_URL", "chat.db")
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			_, err := Load()
			require.Error(t, err)
		})
	}
}

func TestLoad_Origins(t *testing.T) {
	t.Setenv("DATABASE_URL", "chat.db")
	t.Setenv("DATABASE_DRIVER", "sqlite")
	t.Setenv("ORIGIN", "http://a.test, http://b.test")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.Origins)
}

func TestLog_SlogLevel(t *testing.T) {
	require.Equal(t, slog.LevelDebug, Log{Level: "debug"}.SlogLevel())
	require.Equal(t, slog.LevelWarn, Log{Level: "WARN"}.SlogLevel())
	require.Equal(t, slog.LevelInfo, Log{Level: "nonsense"}.SlogLevel())
}
