package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"defaults", DefaultConfig(), false},
		{"json encoding", Config{Level: "debug", Encoding: "json"}, false},
		{"empty encoding falls back to console", Config{Level: "warn"}, false},
		{"bad level", Config{Level: "loud", Encoding: "console"}, true},
		{"bad encoding", Config{Level: "info", Encoding: "xml"}, true},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			logger, err := New(tt.cfg)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.NotNil(t, logger)
			logger.Info("logger constructed")
		})
	}
}
