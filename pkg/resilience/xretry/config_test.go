package xretry

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadPolicyFromBytes(t *testing.T) {
	t.Run("YAMLFixedDelay", func(t *testing.T) {
		data := []byte("retries: 5\ndelay: 500ms\n")

		policy, err := LoadPolicyFromBytes(data, FormatYAML)

		require.NoError(t, err)
		assert.Equal(t, 5, policy.MaxRetries())
		assert.Equal(t, 500*time.Millisecond, policy.Delay().NextDelay(1))
	})

	t.Run("YAMLBackoffOverridesDelay", func(t *testing.T) {
		data := []byte(`
retries: 4
delay: 1s
backoff:
  initial_delay: 100ms
  multiplier: 2.0
`)

		policy, err := LoadPolicyFromBytes(data, FormatYAML)

		require.NoError(t, err)
		assert.Equal(t, 4, policy.MaxRetries())
		assert.Equal(t, 100*time.Millisecond, policy.Delay().NextDelay(1))
		assert.Equal(t, 200*time.Millisecond, policy.Delay().NextDelay(2))
		assert.Equal(t, 400*time.Millisecond, policy.Delay().NextDelay(3))
	})

	t.Run("JSON", func(t *testing.T) {
		data := []byte(`{"retries": 2, "delay": "1s"}`)

		policy, err := LoadPolicyFromBytes(data, FormatJSON)

		require.NoError(t, err)
		assert.Equal(t, 2, policy.MaxRetries())
		assert.Equal(t, time.Second, policy.Delay().NextDelay(1))
	})

	t.Run("EmptyDataUsesDefaults", func(t *testing.T) {
		policy, err := LoadPolicyFromBytes(nil, FormatYAML)

		require.NoError(t, err)
		assert.Equal(t, DefaultMaxRetries, policy.MaxRetries())
		assert.Equal(t, DefaultFixedDelay, policy.Delay().NextDelay(1))
	})

	t.Run("AbsentKeysKeepDefaults", func(t *testing.T) {
		data := []byte("retries: 7\n")

		policy, err := LoadPolicyFromBytes(data, FormatYAML)

		require.NoError(t, err)
		assert.Equal(t, 7, policy.MaxRetries())
		assert.Equal(t, DefaultFixedDelay, policy.Delay().NextDelay(1))
	})

	t.Run("UnsupportedFormat", func(t *testing.T) {
		_, err := LoadPolicyFromBytes([]byte("retries: 1"), Format("toml"))
		assert.ErrorIs(t, err, ErrUnsupportedFormat)
	})

	t.Run("InvalidYAML", func(t *testing.T) {
		_, err := LoadPolicyFromBytes([]byte("[unclosed"), FormatYAML)
		assert.ErrorIs(t, err, ErrParseFailed)
	})
}

func TestLoadPolicy(t *testing.T) {
	t.Run("FromYAMLFile", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "policy.yaml")
		require.NoError(t, os.WriteFile(path, []byte("retries: 1\ndelay: 10ms\n"), 0o600))

		policy, err := LoadPolicy(path)

		require.NoError(t, err)
		assert.Equal(t, 1, policy.MaxRetries())
		assert.Equal(t, 10*time.Millisecond, policy.Delay().NextDelay(1))
	})

	t.Run("FromJSONFile", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "policy.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"retries": 0}`), 0o600))

		policy, err := LoadPolicy(path)

		require.NoError(t, err)
		assert.Equal(t, 0, policy.MaxRetries())
	})

	t.Run("EmptyPath", func(t *testing.T) {
		_, err := LoadPolicy("")
		assert.ErrorIs(t, err, ErrEmptyPath)
	})

	t.Run("UnknownExtension", func(t *testing.T) {
		_, err := LoadPolicy("policy.toml")
		assert.ErrorIs(t, err, ErrUnsupportedFormat)
	})

	t.Run("MissingFile", func(t *testing.T) {
		_, err := LoadPolicy(filepath.Join(t.TempDir(), "absent.yaml"))
		assert.ErrorIs(t, err, ErrLoadFailed)
	})
}

func TestPolicyConfig_Policy(t *testing.T) {
	t.Run("FixedDelay", func(t *testing.T) {
		cfg := PolicyConfig{Retries: 3, Delay: time.Second}
		policy := cfg.Policy()

		assert.Equal(t, 3, policy.MaxRetries())
		assert.Equal(t, time.Second, policy.Delay().NextDelay(5))
	})

	t.Run("BackoffWins", func(t *testing.T) {
		cfg := PolicyConfig{
			Retries: 2,
			Delay:   time.Minute,
			Backoff: &BackoffConfig{InitialDelay: time.Millisecond, Multiplier: 3},
		}
		policy := cfg.Policy()

		assert.Equal(t, time.Millisecond, policy.Delay().NextDelay(1))
		assert.Equal(t, 3*time.Millisecond, policy.Delay().NextDelay(2))
	})

	t.Run("NegativeRetriesClamped", func(t *testing.T) {
		cfg := PolicyConfig{Retries: -2, Delay: 0}
		assert.Equal(t, 0, cfg.Policy().MaxRetries())
	})
}
