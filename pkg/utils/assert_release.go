//go:build !debug

package utils

// Assert 发布构建下不做检查，不变量由系统逻辑保证
func Assert(cond bool, format string, args ...interface{}) {}

// AssertionsEnabled 返回当前构建是否启用断言
func AssertionsEnabled() bool {
	return false
}
