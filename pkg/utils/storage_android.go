//go:build android

package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// EnsureStorageDir 确保 Android 上设置存储目录存在并可写
// gdata 不会预先创建子目录，需要在 gdata.Open 之前调用
func EnsureStorageDir() error {
	root := GetStoragePath()
	if root == "" {
		return fmt.Errorf("cannot detect Android package name")
	}

	dir := filepath.Join(root, "settings")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create storage dir %s: %w", dir, err)
	}

	probe := filepath.Join(dir, ".write_test")
	if err := os.WriteFile(probe, []byte("ok"), 0644); err != nil {
		return fmt.Errorf("storage dir %s is not writable: %w", dir, err)
	}
	os.Remove(probe)
	return nil
}

// GetStoragePath 返回 /data/data/{package}，无法识别包名时返回空字符串
func GetStoragePath() string {
	data, err := os.ReadFile("/proc/self/cmdline")
	if err != nil {
		return ""
	}
	pkg := strings.Trim(strings.ReplaceAll(string(data), "\x00", ""), "\n")
	if pkg == "" {
		return ""
	}
	return filepath.Join("/data/data", pkg)
}
