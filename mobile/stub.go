//go:build !mobile

// Package mobile 的桌面端占位：不带 mobile 标签构建时只导出 Dummy，
// 以便 go build ./... 不需要 mobile/data 目录。
package mobile

// Dummy 与移动端构建导出相同的符号
func Dummy() {}
