package utils

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// PointerState 是当前帧统一后的指针输入（触摸优先，其次鼠标）
type PointerState struct {
	// JustPressed 本帧刚发生点击或触摸
	JustPressed bool
	X, Y        int
	// IsTouching 当前指针来自触摸
	IsTouching bool
}

// ReadPointer 读取本帧指针状态
func ReadPointer() PointerState {
	if ids := inpututil.AppendJustPressedTouchIDs(nil); len(ids) > 0 {
		x, y := ebiten.TouchPosition(ids[0])
		return PointerState{JustPressed: true, X: x, Y: y, IsTouching: true}
	}

	// 持续触摸时仍然需要位置，炮管跟随手指
	if ids := ebiten.AppendTouchIDs(nil); len(ids) > 0 {
		x, y := ebiten.TouchPosition(ids[0])
		return PointerState{X: x, Y: y, IsTouching: true}
	}

	x, y := ebiten.CursorPosition()
	return PointerState{
		JustPressed: inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft),
		X:           x,
		Y:           y,
	}
}
