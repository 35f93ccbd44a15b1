package xretry

// 参数绑定适配器
//
// 把"可调用对象 + 固定位置参数"适配为无参操作：参数在绑定时固定，
// 每次尝试都以同样的参数重新调用 fn。执行器只认识无参操作，
// 不感知操作最初的调用形态。超过四个参数时直接写闭包。

// Bind1 绑定一个参数
//
// 示例:
//
//	user, err := xretry.DoWithData(ctx, xretry.Bind1(fetchUser, userID))
func Bind1[A1, T any](fn func(A1) (T, error), a1 A1) func() (T, error) {
	return func() (T, error) {
		return fn(a1)
	}
}

// Bind2 绑定两个参数
func Bind2[A1, A2, T any](fn func(A1, A2) (T, error), a1 A1, a2 A2) func() (T, error) {
	return func() (T, error) {
		return fn(a1, a2)
	}
}

// Bind3 绑定三个参数
func Bind3[A1, A2, A3, T any](fn func(A1, A2, A3) (T, error), a1 A1, a2 A2, a3 A3) func() (T, error) {
	return func() (T, error) {
		return fn(a1, a2, a3)
	}
}

// Bind4 绑定四个参数
func Bind4[A1, A2, A3, A4, T any](fn func(A1, A2, A3, A4) (T, error), a1 A1, a2 A2, a3 A3, a4 A4) func() (T, error) {
	return func() (T, error) {
		return fn(a1, a2, a3, a4)
	}
}

// BindErr1 绑定一个参数（只返回 error 的操作）
//
// 示例:
//
//	err := xretry.Do(ctx, xretry.BindErr1(deleteUser, userID))
func BindErr1[A1 any](fn func(A1) error, a1 A1) func() error {
	return func() error {
		return fn(a1)
	}
}

// BindErr2 绑定两个参数（只返回 error 的操作）
func BindErr2[A1, A2 any](fn func(A1, A2) error, a1 A1, a2 A2) func() error {
	return func() error {
		return fn(a1, a2)
	}
}

// BindErr3 绑定三个参数（只返回 error 的操作）
func BindErr3[A1, A2, A3 any](fn func(A1, A2, A3) error, a1 A1, a2 A2, a3 A3) func() error {
	return func() error {
		return fn(a1, a2, a3)
	}
}

// BindErr4 绑定四个参数（只返回 error 的操作）
func BindErr4[A1, A2, A3, A4 any](fn func(A1, A2, A3, A4) error, a1 A1, a2 A2, a3 A3, a4 A4) func() error {
	return func() error {
		return fn(a1, a2, a3, a4)
	}
}
