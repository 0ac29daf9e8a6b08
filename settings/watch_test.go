package settings_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/oomph-ac/knockback/knockback"
	"github.com/oomph-ac/knockback/settings"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatchReloads(t *testing.T) {
	path := writeFile(t, "knockback.toml", `default = "legacy"`)
	r, err := settings.Open(path)
	require.NoError(t, err)

	log, hook := test.NewNullLogger()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, settings.Watch(ctx, path, r, log))

	require.NoError(t, os.WriteFile(path, []byte(`default = "modern"`), 0644))
	require.Eventually(t, func() bool {
		return defaultOf(t, r).Fallback() == knockback.FallbackLook
	}, 5*time.Second, 20*time.Millisecond)

	require.NoError(t, os.WriteFile(path, []byte(`default = [`), 0644))
	require.Eventually(t, func() bool {
		for _, e := range hook.AllEntries() {
			if e.Level == logrus.ErrorLevel {
				return true
			}
		}
		return false
	}, 5*time.Second, 20*time.Millisecond)
	assert.Equal(t, knockback.ModernProfile(), defaultOf(t, r))
}

func TestWatchMissingDirectory(t *testing.T) {
	r, err := settings.NewRegistry(nil)
	require.NoError(t, err)
	log, _ := test.NewNullLogger()
	assert.Error(t, settings.Watch(context.Background(), "/does/not/exist/knockback.toml", r, log))
}
