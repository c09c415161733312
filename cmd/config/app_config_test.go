package config

import (
	"Cook-App-Backend/internal/utils"
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// openHandles counts this process's file descriptors pointing at path.
func openHandles(t *testing.T, path string) int {
	t.Helper()
	entries, err := os.ReadDir("/proc/self/fd")
	require.NoError(t, err)
	n := 0
	for _, e := range entries {
		target, err := os.Readlink(filepath.Join("/proc/self/fd", e.Name()))
		if err == nil && target == path {
			n++
		}
	}
	return n
}

func TestNewAppReleasesLogFileWhenMongoIsUnreachable(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skip("needs /proc/self/fd")
	}
	dir, err := filepath.EvalSymlinks(t.TempDir())
	require.NoError(t, err)
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	t.Setenv("STORE_DRIVER", "mongo")
	t.Setenv("MONGO_URI", "mongodb://127.0.0.1:1/?serverSelectionTimeoutMS=300&connectTimeoutMS=300")
	utils.LoadConfig()

	app, shutdown, err := NewApp(context.Background(), zap.NewNop())
	require.Error(t, err)
	assert.Nil(t, app)
	assert.Nil(t, shutdown)

	logFile := filepath.Join(dir, "logs", "app.log")
	require.FileExists(t, logFile)
	assert.Zero(t, openHandles(t, logFile))
}
