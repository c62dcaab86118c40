//go:build !mobile

// stub.go - 普通构建时的占位文件，实际入口在 mobile.go（-tags mobile）
package mobile

// Dummy 空导出函数，保证包在桌面构建时也能被引用
func Dummy() {}
