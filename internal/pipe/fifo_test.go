package pipe

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefaultPathRequiresXDGRuntimeDir(t *testing.T) {
	t.Setenv("XDG_RUNTIME_DIR", "")
	_, err := DefaultPath()
	require.Error(t, err)
	require.Contains(t, err.Error(), "XDG_RUNTIME_DIR")

	runtimeDir := t.TempDir()
	t.Setenv("XDG_RUNTIME_DIR", runtimeDir)
	path, err := DefaultPath()
	require.NoError(t, err)
	require.Equal(t, filepath.Join(runtimeDir, "done.fifo"), path)
}

func TestCreateIsIdempotent(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "done.fifo")
	require.NoError(t, Create(path))
	require.NoError(t, Create(path))
	require.NoError(t, Verify(path))
}

func TestCreateMakesParentDirectories(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "nested", "run", "done.fifo")
	require.NoError(t, Create(path))
	require.NoError(t, Verify(path))
}

func TestCreateRejectsExistingNonFIFO(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "occupied")
	require.NoError(t, os.WriteFile(path, []byte("file"), 0o600))

	err := Create(path)
	require.Error(t, err)
	require.Contains(t, err.Error(), "not a named pipe")
}

func TestVerifyMissingPath(t *testing.T) {
	t.Parallel()

	err := Verify(filepath.Join(t.TempDir(), "absent.fifo"))
	require.Error(t, err)
	require.Contains(t, err.Error(), "stat pipe")
}

func TestSendWithoutReaderFailsFast(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "done.fifo")
	require.NoError(t, Create(path))

	err := Send(path, []byte(`{"Command":"GetForegroundWindow"}`))
	require.ErrorIs(t, err, ErrNoReader)
}

func TestSendMissingPipeFails(t *testing.T) {
	t.Parallel()

	err := Send(filepath.Join(t.TempDir(), "absent.fifo"), []byte("x"))
	require.Error(t, err)
	require.NotErrorIs(t, err, ErrNoReader)
	require.Contains(t, err.Error(), "open pipe")
}
