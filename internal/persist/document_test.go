package persist

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestDocumentRoundTrip(t *testing.T) {
	doc := map[string]any{
		"app_name": "chat",
		"config": map[string]any{
			"interface_type": "cli",
		},
		"state": map[string]any{
			"chat_history": []any{
				map[string]any{"role": "user", "content": "hi"},
			},
		},
	}

	dir := t.TempDir()
	for _, name := range []string{"session.yml", "session.json"} {
		path := filepath.Join(dir, name)
		if err := SaveDocument(doc, path); err != nil {
			t.Fatalf("SaveDocument %s failed: %v", name, err)
		}
		got, err := LoadDocument(path)
		if err != nil {
			t.Fatalf("LoadDocument %s failed: %v", name, err)
		}
		if !reflect.DeepEqual(got, doc) {
			t.Fatalf("%s round trip changed document:\ngot:  %v\nwant: %v", name, got, doc)
		}
	}
}

func TestDocumentCreatesDirectories(t *testing.T) {
	path := filepath.Join(t.TempDir(), "deep", "nested", "out.yml")
	if err := SaveDocument(map[string]any{"a": "b"}, path); err != nil {
		t.Fatalf("SaveDocument failed: %v", err)
	}
	if _, err := LoadDocument(path); err != nil {
		t.Fatalf("LoadDocument failed: %v", err)
	}
}

func TestDocumentUnsupportedExtension(t *testing.T) {
	if err := SaveDocument(map[string]any{}, "out.toml"); err == nil {
		t.Fatalf("expected error for unsupported extension")
	}

	path := filepath.Join(t.TempDir(), "doc.txt")
	if err := os.WriteFile(path, []byte("a: b"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := LoadDocument(path); err == nil {
		t.Fatalf("expected error for unsupported extension")
	}
}
