//go:build debug

package utils

import "fmt"

// Assert 开发构建（-tags debug）下违反不变量直接 panic
func Assert(cond bool, format string, args ...interface{}) {
	if !cond {
		panic(fmt.Sprintf("assertion failed: "+format, args...))
	}
}

// AssertionsEnabled 返回当前构建是否启用断言
func AssertionsEnabled() bool {
	return true
}
