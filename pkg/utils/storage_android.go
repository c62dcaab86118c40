//go:build android

package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// EnsureStorageDir 在 gdata 打开之前创建 Android 应用私有目录下的存档目录
//
// gdata 在 Android 上使用 /data/data/{package}/ 作为根目录，但不会预先创建子目录。
func EnsureStorageDir() error {
	pkg, err := androidPackageName()
	if err != nil {
		return fmt.Errorf("failed to detect Android package: %w", err)
	}

	dir := filepath.Join("/data/data", pkg, "saves")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create storage directory %s: %w", dir, err)
	}
	return nil
}

// androidPackageName 从 /proc/self/cmdline 读取包名
func androidPackageName() (string, error) {
	data, err := os.ReadFile("/proc/self/cmdline")
	if err != nil {
		return "", err
	}
	name := strings.TrimRight(strings.SplitN(string(data), "\x00", 2)[0], "\n")
	if name == "" {
		return "", fmt.Errorf("empty /proc/self/cmdline")
	}
	return name, nil
}
