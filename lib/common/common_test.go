package common

import (
	"bytes"
	"github.com/lni/dragonboat/v4/logger"
	"strings"
	"testing"
)

func TestParseLogLevel(t *testing.T) {
	cases := map[string]logger.LogLevel{
		"debug":   logger.DEBUG,
		"INFO":    logger.INFO,
		"":        logger.INFO,
		"warn":    logger.WARNING,
		"warning": logger.WARNING,
		"error":   logger.ERROR,
	}
	for in, want := range cases {
		got, err := ParseLogLevel(in)
		if err != nil || got != want {
			t.Errorf("ParseLogLevel(%q): expected %v, got %v (%v)", in, want, got, err)
		}
	}
	if _, err := ParseLogLevel("verbose"); err == nil {
		t.Errorf("Expected an error for an unknown level")
	}
}

func TestLoggerLevels(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)

	l := CreateLogger("test")
	l.SetLevel(logger.WARNING)
	l.Infof("hidden %d", 1)
	l.Warningf("shown %d", 2)

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("Expected info message to be filtered, got %q", out)
	}
	if !strings.Contains(out, "shown 2") || !strings.Contains(out, "pkg=test") {
		t.Errorf("Expected warning with package attribute, got %q", out)
	}
}

func TestInitLoggers(t *testing.T) {
	if err := InitLoggers("error"); err != nil {
		t.Fatalf("InitLoggers failed: %v", err)
	}
	if err := InitLoggers("nonsense"); err == nil {
		t.Errorf("Expected an error for an invalid level")
	}
}

func TestConfigString(t *testing.T) {
	cfg := DefaultFarmConfig()
	cfg.Cache = CacheSimple
	cfg.CacheLimit = 2048
	cfg.Blacklist = []string{"*/tmp/*"}

	s := cfg.String()
	for _, want := range []string{"STORAGE", "file", "2048 bytes", "*/tmp/*", "Synchronized"} {
		if !strings.Contains(s, want) {
			t.Errorf("Expected config string to contain %q:\n%s", want, s)
		}
	}
}
