package log

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]int{
		"debug":   LOG_LEVEL_DEBUG,
		"INFO":    LOG_LEVEL_INFO,
		"warning": LOG_LEVEL_WARN,
		"error":   LOG_LEVEL_ERROR,
		"":        LOG_LEVEL_INFO,
		"verbose": LOG_LEVEL_INFO,
	}
	for in, want := range cases {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q) = %d, want %d", in, got, want)
		}
	}
}

func TestFileOutputRespectsLevel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "slidelens.log")
	Init(Options{Path: path, Level: "warn", MaxSizeMB: 1, Stdout: false})
	defer Init(Options{Level: "info", Stdout: true})

	Info("hidden %d", 1)
	Warn("visible %d", 2)
	Error("also visible")

	main_log.Close()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	content := string(data)
	if strings.Contains(content, "hidden") {
		t.Errorf("info line should be filtered: %s", content)
	}
	if !strings.Contains(content, "[WARN]visible 2") {
		t.Errorf("warn line missing: %s", content)
	}
	if !strings.Contains(content, "[ERROR]also visible") {
		t.Errorf("error line missing: %s", content)
	}
}
