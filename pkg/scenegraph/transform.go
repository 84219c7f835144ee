package scenegraph

import "math"

// Affine 2x3 仿射变换矩阵
//
//	| A C Tx |
//	| B D Ty |
type Affine struct {
	A, B, C, D, Tx, Ty float64
}

// Identity 单位变换
func Identity() Affine {
	return Affine{A: 1, D: 1}
}

// Apply 变换一个点
func (m Affine) Apply(p Point) Point {
	return Point{
		X: m.A*p.X + m.C*p.Y + m.Tx,
		Y: m.B*p.X + m.D*p.Y + m.Ty,
	}
}

// Then 先应用 m 再应用 next
func (m Affine) Then(next Affine) Affine {
	return Affine{
		A:  next.A*m.A + next.C*m.B,
		B:  next.B*m.A + next.D*m.B,
		C:  next.A*m.C + next.C*m.D,
		D:  next.B*m.C + next.D*m.D,
		Tx: next.A*m.Tx + next.C*m.Ty + next.Tx,
		Ty: next.B*m.Tx + next.D*m.Ty + next.Ty,
	}
}

// LocalTransform 节点本地坐标到父坐标的变换：缩放 → 旋转 → 平移
func (n *Node) LocalTransform() Affine {
	cos, sin := math.Cos(n.Rotation), math.Sin(n.Rotation)
	return Affine{
		A:  cos * n.ScaleX,
		B:  sin * n.ScaleX,
		C:  -sin * n.ScaleY,
		D:  cos * n.ScaleY,
		Tx: n.Position.X,
		Ty: n.Position.Y,
	}
}

// ToParent 将节点本地坐标中的点变换到父坐标
func (n *Node) ToParent(p Point) Point {
	return n.LocalTransform().Apply(p)
}
