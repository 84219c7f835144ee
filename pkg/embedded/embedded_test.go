package embedded

import (
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"
)

// resetEmbedded 重置包状态，避免测试之间互相影响
func resetEmbedded(t *testing.T) {
	t.Helper()
	dataFS = nil
	initialized = false
	t.Cleanup(func() {
		dataFS = nil
		initialized = false
	})
}

func testFS() fstest.MapFS {
	return fstest.MapFS{
		"data/tower_visuals.yaml": {Data: []byte("geometry:\n  bodyRadius: 20\n")},
		"data/showcase.yaml":      {Data: []byte("columns: 2\n")},
	}
}

// TestIsInitialized 测试初始化状态检测
func TestIsInitialized(t *testing.T) {
	resetEmbedded(t)

	if IsInitialized() {
		t.Error("Expected IsInitialized() to return false before Init()")
	}

	Init(testFS())
	if !IsInitialized() {
		t.Error("Expected IsInitialized() to return true after Init()")
	}

	Init(nil)
	if IsInitialized() {
		t.Error("Init(nil) should leave the package uninitialized")
	}
}

// TestReadFile 测试从嵌入文件系统读取
func TestReadFile(t *testing.T) {
	resetEmbedded(t)
	Init(testFS())

	tests := []struct {
		name    string
		path    string
		want    string
		wantErr bool
	}{
		{"标准路径", "data/showcase.yaml", "columns: 2\n", false},
		{"带 ./ 前缀", "./data/showcase.yaml", "columns: 2\n", false},
		{"文件不存在", "data/missing.yaml", "", true},
		{"非法前缀", "assets/font.ttf", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := ReadFile(tt.path)
			if tt.wantErr {
				if err == nil {
					t.Error("expected an error")
				}
				return
			}
			if err != nil {
				t.Fatalf("ReadFile() error: %v", err)
			}
			if string(data) != tt.want {
				t.Errorf("ReadFile() = %q, want %q", data, tt.want)
			}
		})
	}
}

// TestReadFileFallback 未初始化时从工作目录读取
func TestReadFileFallback(t *testing.T) {
	resetEmbedded(t)

	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "data"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "data", "showcase.yaml"), []byte("columns: 3\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Chdir(dir)

	data, err := ReadFile("data/showcase.yaml")
	if err != nil {
		t.Fatalf("ReadFile() error: %v", err)
	}
	if string(data) != "columns: 3\n" {
		t.Errorf("ReadFile() = %q", data)
	}
	if !Exists("data/showcase.yaml") || Exists("data/missing.yaml") {
		t.Error("Exists() should check the working directory")
	}
}

func TestExists(t *testing.T) {
	resetEmbedded(t)
	Init(testFS())

	if !Exists("data/tower_visuals.yaml") {
		t.Error("Expected tower_visuals.yaml to exist")
	}
	if Exists("data/nope.yaml") || Exists("nope.yaml") {
		t.Error("Exists() should be false for missing or unprefixed paths")
	}
}
