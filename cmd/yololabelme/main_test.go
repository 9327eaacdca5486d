package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOptionsConfig(t *testing.T) {
	opts, err := parseArgs([]string{"yololabelme", "--yolo", "labels", "--classes", "classes.txt", "--img_ext", "png"})
	require.NoError(t, err)

	cfg, err := opts.config()
	require.NoError(t, err)
	require.Equal(t, "labels", cfg.YOLODir)
	require.Equal(t, "classes.txt", cfg.ClassesPath)
	require.Equal(t, "png", cfg.ImageExt)
	require.Equal(t, "results", cfg.LabelMeDir)
	require.Equal(t, "5.4.1", cfg.Version)
	require.False(t, cfg.SkipMissingImages)
}

func TestOptionsConfigFileAndOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("yolo: a\nclasses: c.txt\nlabelme: out\nversion: 5.0.0\n"), 0644))

	opts, err := parseArgs([]string{"yololabelme", "--config", path, "--labelme", "other", "--skip_missing_images"})
	require.NoError(t, err)

	cfg, err := opts.config()
	require.NoError(t, err)
	require.Equal(t, "a", cfg.YOLODir)
	require.Equal(t, "other", cfg.LabelMeDir)
	require.Equal(t, "5.0.0", cfg.Version)
	require.True(t, cfg.SkipMissingImages)
}

func TestOptionsConfigMissingRequired(t *testing.T) {
	opts, err := parseArgs([]string{"yololabelme", "--classes", "classes.txt"})
	require.NoError(t, err)

	_, err = opts.config()
	require.Error(t, err)
}
