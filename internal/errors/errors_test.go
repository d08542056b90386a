package errors

import (
	"bytes"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		code    string
		wantMsg string
		wantCat Category
	}{
		{"runtime error", "E002", "Async component timed out", CategoryRuntime},
		{"config error", "E141", "Configuration file not found", CategoryConfig},
		{"fixture error", "E151", "Invalid fixture node", CategoryFixture},
		{"protocol error", "E010", "Malformed client message", CategoryProtocol},
		{"unknown error code", "E999", "Unknown error", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := New(tt.code)
			if err.Message != tt.wantMsg {
				t.Errorf("Message = %q, want %q", err.Message, tt.wantMsg)
			}
			if err.Category != tt.wantCat {
				t.Errorf("Category = %q, want %q", err.Category, tt.wantCat)
			}
			if err.Code != tt.code {
				t.Errorf("Code = %q, want %q", err.Code, tt.code)
			}
		})
	}
}

func TestErrorString(t *testing.T) {
	cause := fmt.Errorf("connection refused")
	err := New("E160").Wrap(cause)

	want := "E160: Snapshot write failed: connection refused"
	if got := err.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
	if !stderrors.Is(err, cause) {
		t.Error("errors.Is should see the wrapped cause")
	}
}

func TestFromError(t *testing.T) {
	if FromError(nil, "E001") != nil {
		t.Error("FromError(nil) should be nil")
	}

	coded := New("E002")
	if got := FromError(fmt.Errorf("outer: %w", coded), "E001"); got != coded {
		t.Errorf("FromError should return the existing *Error, got %v", got)
	}

	plain := FromError(fmt.Errorf("boom"), "E001")
	if plain.Code != "E001" || plain.Wrapped == nil {
		t.Errorf("FromError(plain) = %+v", plain)
	}
}

func TestHasCode(t *testing.T) {
	inner := New("E002")
	outer := New("E001").Wrap(inner)

	if !HasCode(outer, "E001") || !HasCode(outer, "E002") {
		t.Error("HasCode should find both the outer and wrapped codes")
	}
	if HasCode(outer, "E160") {
		t.Error("HasCode(E160) should be false")
	}
	if HasCode(fmt.Errorf("plain"), "E001") {
		t.Error("HasCode on a plain error should be false")
	}
}

func TestWithLocationReadsContext(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "list.yaml")
	src := "tag: ul\nchildren:\n  - tag: li\n  - text: x\n    tag: li\n  - tag: li\n"
	if err := os.WriteFile(path, []byte(src), 0o644); err != nil {
		t.Fatal(err)
	}

	err := New("E151").WithLocation(path, 4, 5)
	if len(err.Context) == 0 {
		t.Fatal("expected context lines")
	}
	if !strings.Contains(strings.Join(err.Context, "\n"), "text: x") {
		t.Errorf("context %q should include the failing line", err.Context)
	}

	Colors = false
	defer func() { Colors = true }()

	out := err.Format()
	for _, want := range []string{"ERROR E151: Invalid fixture node", "list.yaml:4:5", "→", "^"} {
		if !strings.Contains(out, want) {
			t.Errorf("Format() missing %q:\n%s", want, out)
		}
	}
}

func TestFormatCompact(t *testing.T) {
	err := New("E122").WithDetail("missing port in \"localhost\"")
	want := `[E122] Invalid address (missing port in "localhost")`
	if got := err.FormatCompact(); got != want {
		t.Errorf("FormatCompact() = %q, want %q", got, want)
	}
}

func TestMarshalJSON(t *testing.T) {
	err := New("E011").WithDetailf("node %d", 42)
	data, jerr := json.Marshal(err)
	if jerr != nil {
		t.Fatal(jerr)
	}

	var got map[string]any
	if jerr := json.Unmarshal(data, &got); jerr != nil {
		t.Fatal(jerr)
	}
	if got["code"] != "E011" || got["category"] != "protocol" || got["detail"] != "node 42" {
		t.Errorf("json = %s", data)
	}
}

func TestPrint(t *testing.T) {
	Colors = false
	defer func() { Colors = true }()

	var buf bytes.Buffer
	Print(&buf, fmt.Errorf("plain failure"))
	if !strings.Contains(buf.String(), "ERROR: plain failure") {
		t.Errorf("Print(plain) = %q", buf.String())
	}
}

func TestRegistry(t *testing.T) {
	codes := GetAllCodes()
	for i := 1; i < len(codes); i++ {
		if codes[i-1] >= codes[i] {
			t.Fatalf("codes not sorted: %v", codes)
		}
	}
	for _, code := range codes {
		tmpl, _ := GetTemplate(code)
		if tmpl.Message == "" || tmpl.Category == "" {
			t.Errorf("template %s is incomplete", code)
		}
	}

	Register("E999", ErrorTemplate{Category: CategoryCLI, Message: "test"})
	defer delete(registry, "E999")
	if New("E999").Message != "test" {
		t.Error("Register did not take effect")
	}
}

func TestWrapText(t *testing.T) {
	lines := wrapText("one two three four", 9)
	want := []string{"one two", "three", "four"}
	if strings.Join(lines, "|") != strings.Join(want, "|") {
		t.Errorf("wrapText = %q, want %q", lines, want)
	}
}
