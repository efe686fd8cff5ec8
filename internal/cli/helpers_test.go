package cli

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/aidanlsb/projrename/internal/config"
)

var captureStdoutMu sync.Mutex

func captureStdout(t *testing.T, fn func()) string {
	t.Helper()
	captureStdoutMu.Lock()
	defer captureStdoutMu.Unlock()

	orig := os.Stdout
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("os.Pipe: %v", err)
	}

	os.Stdout = w

	outputCh := make(chan string, 1)
	errCh := make(chan error, 1)
	go func() {
		var buf bytes.Buffer
		_, copyErr := io.Copy(&buf, r)
		_ = r.Close()
		if copyErr != nil {
			errCh <- copyErr
			return
		}
		outputCh <- buf.String()
	}()

	func() {
		defer func() {
			os.Stdout = orig
			_ = w.Close()
		}()
		fn()
	}()

	select {
	case err := <-errCh:
		t.Fatalf("io.Copy: %v", err)
		return ""
	case output := <-outputCh:
		return output
	}
}

// isolateCLI snapshots every package-level setting a command reads and
// points config and audit at a temp directory.
func isolateCLI(t *testing.T) {
	t.Helper()

	prevJSON := jsonOutput
	prevCfg := cfg
	prevResolved := resolvedConfigPath
	prevConfigPath := configPath
	prevFS := newFileSystem
	prevInteractive := isInteractive
	prevInput := confirmInput
	prevLogger := logger
	prevSkip := skipConfirm
	prevDry := dryRun
	prevLimit := historyLimit
	prevSince := historySince
	prevVerbose := verbose
	t.Cleanup(func() {
		jsonOutput = prevJSON
		cfg = prevCfg
		resolvedConfigPath = prevResolved
		configPath = prevConfigPath
		newFileSystem = prevFS
		isInteractive = prevInteractive
		confirmInput = prevInput
		logger = prevLogger
		skipConfirm = prevSkip
		dryRun = prevDry
		historyLimit = prevLimit
		historySince = prevSince
		verbose = prevVerbose
	})

	jsonOutput = false
	cfg = &config.Config{}
	configPath = ""
	resolvedConfigPath = filepath.Join(t.TempDir(), "config.toml")
	isInteractive = func() bool { return false }
	logger = log.New(io.Discard)
	skipConfirm = false
	dryRun = false
	historyLimit = 20
	historySince = ""
	verbose = false
}

type envelope struct {
	OK       bool            `json:"ok"`
	Data     json.RawMessage `json:"data"`
	Error    *ErrorInfo      `json:"error"`
	Warnings []Warning       `json:"warnings"`
	Meta     *Meta           `json:"meta"`
}

func decodeEnvelope(t *testing.T, out string) envelope {
	t.Helper()
	var resp envelope
	if err := json.Unmarshal([]byte(out), &resp); err != nil {
		t.Fatalf("expected JSON output, got parse error: %v; out=%s", err, out)
	}
	return resp
}

func errorDetail(t *testing.T, resp envelope, key string) string {
	t.Helper()
	if resp.Error == nil {
		t.Fatalf("expected error in response")
	}
	details, ok := resp.Error.Details.(map[string]interface{})
	if !ok {
		t.Fatalf("expected details object, got %#v", resp.Error.Details)
	}
	s, _ := details[key].(string)
	return s
}
