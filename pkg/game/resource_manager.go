package game

import (
	"bytes"
	"fmt"
	"os"

	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/goregular"
)

// ResourceManager 负责字体资源的集中管理
//
// 塔视觉全部由矢量绘制，只有标签（DPS、等级、处决型的 "!"）需要字体。
// 默认使用内置的 Go Regular 字体，可以用 SetDefaultFont 换成文件字体。
// 按字号缓存 GoTextFace。
//
// 非线程安全：只在 Ebitengine 主循环中使用。
type ResourceManager struct {
	defaultSource *text.GoTextFaceSource
	sourceCache   map[string]*text.GoTextFaceSource // path -> source
	faceCache     map[string]*text.GoTextFace       // ":size" -> face
}

// NewResourceManager 创建资源管理器并解析内置字体
func NewResourceManager() (*ResourceManager, error) {
	source, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		return nil, fmt.Errorf("failed to create default font source: %w", err)
	}
	return &ResourceManager{
		defaultSource: source,
		sourceCache:   make(map[string]*text.GoTextFaceSource),
		faceCache:     make(map[string]*text.GoTextFace),
	}, nil
}

// DefaultFace 返回内置字体指定字号的字体
func (rm *ResourceManager) DefaultFace(size float64) *text.GoTextFace {
	cacheKey := fmt.Sprintf(":%.1f", size)
	if face, ok := rm.faceCache[cacheKey]; ok {
		return face
	}
	face := &text.GoTextFace{
		Source:    rm.defaultSource,
		Size:      size,
		Direction: text.DirectionLeftToRight,
	}
	rm.faceCache[cacheKey] = face
	return face
}

// SetDefaultFont 从文件加载字体并替换内置字体
// 加载失败时保留原字体；已缓存的默认字号字体会失效
func (rm *ResourceManager) SetDefaultFont(path string) error {
	source, ok := rm.sourceCache[path]
	if !ok {
		fontData, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read font file %s: %w", path, err)
		}
		source, err = text.NewGoTextFaceSource(bytes.NewReader(fontData))
		if err != nil {
			return fmt.Errorf("failed to create font source for %s: %w", path, err)
		}
		rm.sourceCache[path] = source
	}

	rm.defaultSource = source
	clear(rm.faceCache)
	return nil
}
