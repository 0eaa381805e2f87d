package lib

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestConfigFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), ConfigFilePath)
	c := DefaultConfig()
	c.LogLevel = "debug"
	c.RPCPort = "50001"
	c.HashAlgorithm = "blake2b-256"
	require.NoError(t, c.WriteToFile(path))
	got, err := NewConfigFromFile(path)
	require.NoError(t, err)
	require.Equal(t, c, got)
}

func TestConfigFileFillsBlanks(t *testing.T) {
	// a partial file keeps defaults for anything it omits
	path := filepath.Join(t.TempDir(), ConfigFilePath)
	require.NoError(t, os.WriteFile(path, []byte(`{"logLevel": "error"}`), os.ModePerm))
	got, err := NewConfigFromFile(path)
	require.NoError(t, err)
	require.Equal(t, "error", got.LogLevel)
	require.Equal(t, DefaultRPCConfig().RPCPort, got.RPCPort)
	require.Equal(t, DefaultMerkleConfig().HashAlgorithm, got.HashAlgorithm)
}

func TestGetLogLevel(t *testing.T) {
	tests := []struct {
		logLevel string
		level    int32
	}{
		{logLevel: "debug", level: DebugLevel},
		{logLevel: "info", level: InfoLevel},
		{logLevel: "warning", level: WarnLevel},
		{logLevel: "error", level: ErrorLevel},
		{logLevel: "", level: DebugLevel},
	}
	for _, test := range tests {
		m := MainConfig{LogLevel: test.logLevel}
		require.Equal(t, test.level, m.GetLogLevel(), "logLevel=%q", test.logLevel)
	}
}
