package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestPathEnv(t *testing.T) {
	t.Setenv("TABEDIT_LOG_FILE", "/tmp/custom.log")
	p, err := Path()
	if err != nil {
		t.Fatalf("Path error: %v", err)
	}
	if p != "/tmp/custom.log" {
		t.Fatalf("Path = %q, want /tmp/custom.log", p)
	}

	t.Setenv("TABEDIT_LOG_FILE", "")
	t.Setenv("TABEDIT_CONFIG_HOME", "/tmp/cfg")
	p, err = Path()
	if err != nil {
		t.Fatalf("Path error: %v", err)
	}
	if p != "/tmp/cfg/tabedit.log" {
		t.Fatalf("Path = %q, want /tmp/cfg/tabedit.log", p)
	}
}

func TestInitWritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "tabedit.log")
	t.Setenv("TABEDIT_LOG_FILE", path)
	if err := Init(true); err != nil {
		t.Fatalf("Init error: %v", err)
	}
	Debug("tab selected", "index", 3)
	Close()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(data), "tab selected") {
		t.Fatalf("log missing debug entry:\n%s", data)
	}
}

func TestHelpersUseGlobalLogger(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	prevL, prevS := L, S
	defer func() { L, S = prevL, prevS }()
	Set(zap.New(core))

	Info("opened", "path", "/tmp/a.txt")
	Warn("save failed", "path", "/tmp/b.txt")

	entries := logs.All()
	if len(entries) != 2 {
		t.Fatalf("entries = %d, want 2", len(entries))
	}
	if entries[0].Message != "opened" || entries[0].ContextMap()["path"] != "/tmp/a.txt" {
		t.Fatalf("entry = %+v", entries[0])
	}
}

func TestHelpersNoopWithoutLogger(t *testing.T) {
	prevL, prevS := L, S
	defer func() { L, S = prevL, prevS }()
	L, S = nil, nil
	Info("ignored")
	Error("ignored")
}
