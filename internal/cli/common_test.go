package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/hamiltonia/zoned-sub004/internal/fsops"
	"github.com/hamiltonia/zoned-sub004/internal/state"
)

func TestOutputJSON(t *testing.T) {
	data := map[string]string{"test": "value"}

	// Capture stdout
	oldStdout := os.Stdout
	r, w, _ := os.Pipe()
	os.Stdout = w

	err := outputJSON(data)
	if err != nil {
		t.Fatalf("outputJSON() error = %v", err)
	}

	_ = w.Close()
	os.Stdout = oldStdout

	var buf bytes.Buffer
	_, _ = buf.ReadFrom(r)

	var v map[string]string
	if err := json.Unmarshal(buf.Bytes(), &v); err != nil {
		t.Errorf("outputJSON() produced invalid JSON: %v", err)
	}
	if v["test"] != "value" {
		t.Errorf("outputJSON() round trip = %v", v)
	}
}

func TestPrintFunctions(t *testing.T) {
	// Capture stdout/stderr
	oldStdout := os.Stdout
	oldStderr := os.Stderr
	rOut, wOut, _ := os.Pipe()
	rErr, wErr, _ := os.Pipe()
	os.Stdout = wOut
	os.Stderr = wErr

	PrintSuccess("Success message")
	PrintWarning("Warning message")
	PrintError("Error message")
	PrintInfo("Info message")
	PrintTable([]string{"ID", "NAME"}, [][]string{{"halves", "Halves"}})

	_ = wOut.Close()
	_ = wErr.Close()
	os.Stdout = oldStdout
	os.Stderr = oldStderr

	var bufOut, bufErr bytes.Buffer
	_, _ = bufOut.ReadFrom(rOut)
	_, _ = bufErr.ReadFrom(rErr)

	if bufOut.String() == "" {
		t.Error("PrintSuccess/PrintInfo should write to stdout")
	}
	if !strings.Contains(bufOut.String(), "halves") {
		t.Error("PrintTable should write rows to stdout")
	}
	if bufErr.String() == "" {
		t.Error("PrintError should write to stderr")
	}
}

func TestParseDirection(t *testing.T) {
	tests := []struct {
		arg     string
		want    int
		wantErr bool
	}{
		{"next", 1, false},
		{"prev", -1, false},
		{"previous", -1, false},
		{"3", 3, false},
		{"-2", -2, false},
		{"left", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.arg, func(t *testing.T) {
			got, err := parseDirection(tt.arg)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseDirection(%q) error = %v, wantErr %v", tt.arg, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("parseDirection(%q) = %d, want %d", tt.arg, got, tt.want)
			}
		})
	}
}

func TestParseSpace(t *testing.T) {
	key, err := parseSpace("")
	if err != nil || key != state.GlobalKey {
		t.Errorf("parseSpace(\"\") = %q, %v", key, err)
	}

	key, err = parseSpace("HDMI-A-1:3")
	if err != nil || key != state.MakeKey("HDMI-A-1", 3) {
		t.Errorf("parseSpace = %q, %v", key, err)
	}

	if _, err := parseSpace("nocolon"); err == nil {
		t.Error("expected error for malformed key")
	}
}

func TestReadLayoutFile(t *testing.T) {
	fs := fsops.NewMemFS()
	fs.SetFile("/in/l.json", []byte(`{"id":"a","name":"A","zones":[{"name":"Z","x":0,"y":0,"w":1,"h":1}]}`))
	fs.SetFile("/in/l.yaml", []byte("id: b\nname: B\npadding: 8\nzones:\n  - {name: Z, x: 0, y: 0, w: 1, h: 1}\n"))

	l, err := readLayoutFile(fs, "/in/l.json")
	if err != nil {
		t.Fatalf("readLayoutFile(json) error = %v", err)
	}
	if l.ID != "a" || len(l.Zones) != 1 {
		t.Errorf("unexpected layout %+v", l)
	}

	l, err = readLayoutFile(fs, "/in/l.yaml")
	if err != nil {
		t.Fatalf("readLayoutFile(yaml) error = %v", err)
	}
	if l.ID != "b" || l.Padding == nil || *l.Padding != 8 {
		t.Errorf("unexpected layout %+v", l)
	}

	if _, err := readLayoutFile(fs, "/in/missing.json"); err == nil {
		t.Error("expected error for missing file")
	}

	fs.FailOn(fsops.OpRead, "/in/l.json", errors.New("permission denied"))
	if _, err := readLayoutFile(fs, "/in/l.json"); err == nil {
		t.Error("expected read failure to surface")
	}
}
