package utils

// EaseOutQuad 二次方缓出
// 公式：f(t) = 1 - (1-t)²，t 超出 [0,1] 时截断
func EaseOutQuad(t float64) float64 {
	t = Clamp01(t)
	return 1 - (1-t)*(1-t)
}

// Lerp 线性插值：t=0 返回 a，t=1 返回 b，不做截断
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// Clamp01 将 t 限制在 [0,1]
func Clamp01(t float64) float64 {
	if t < 0 {
		return 0
	}
	if t > 1 {
		return 1
	}
	return t
}
