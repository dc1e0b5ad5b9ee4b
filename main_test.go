package main

import (
	"bytes"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"chesshud/config"
	"chesshud/logging"
)

func TestFatalWritesToTerminal(t *testing.T) {
	var out bytes.Buffer
	code := -1
	oldStderr, oldExit := stderr, exit
	stderr, exit = &out, func(c int) { code = c }
	defer func() {
		stderr, exit = oldStderr, oldExit
		logger = nil
	}()

	path := filepath.Join(t.TempDir(), "test.log")
	var err error
	logger, err = logging.New(config.LogConfig{Level: "info", File: path})
	if err != nil {
		t.Fatal(err)
	}

	fatal(1, errors.New("terminal unavailable: no tty"))
	if code != 1 {
		t.Fatalf("exit code = %d", code)
	}
	if !strings.Contains(out.String(), "terminal unavailable: no tty") {
		t.Fatalf("stderr = %q", out.String())
	}
}

func TestFatalWithoutLogger(t *testing.T) {
	var out bytes.Buffer
	code := -1
	oldStderr, oldExit := stderr, exit
	stderr, exit = &out, func(c int) { code = c }
	defer func() { stderr, exit = oldStderr, oldExit }()

	fatal(2, errors.New("unknown game mode"))
	if code != 2 || !strings.Contains(out.String(), "unknown game mode") {
		t.Fatalf("code %d, stderr %q", code, out.String())
	}
}
