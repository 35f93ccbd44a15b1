package xretry_test

import (
	"context"
	"errors"
	"fmt"

	"github.com/omeyang/retrykit/pkg/resilience/xretry"
)

func ExampleNewExecutor() {
	policy := xretry.NewPolicy(3, xretry.NewFixedDelay(0))

	var attempts int
	e := xretry.NewExecutor(func(_ context.Context) error {
		attempts++
		if attempts < 3 {
			return errors.New("temporary error")
		}
		return nil
	}, policy)

	err := e.Run(context.Background())

	fmt.Println("error:", err)
	fmt.Println("attempts:", attempts)
	// Output:
	// error: <nil>
	// attempts: 3
}

func ExampleDo() {
	var attempts int

	// 不传选项：3 次重试、立即重试（零延迟）
	err := xretry.Do(context.Background(), func() error {
		attempts++
		if attempts < 2 {
			return errors.New("temporary error")
		}
		return nil
	})

	fmt.Println("error:", err)
	fmt.Println("attempts:", attempts)
	// Output:
	// error: <nil>
	// attempts: 2
}

func ExampleDoWithData() {
	fetch := func(id int) (string, error) {
		return fmt.Sprintf("user-%d", id), nil
	}

	user, err := xretry.DoWithData(context.Background(), xretry.Bind1(fetch, 42))

	fmt.Println("user:", user)
	fmt.Println("error:", err)
	// Output:
	// user: user-42
	// error: <nil>
}

func ExamplePolicy_WithRetries() {
	policy := xretry.DefaultPolicy().
		WithRetries(5).
		WithDelay(xretry.NewExponentialDelay(100, 2))

	fmt.Println("max retries:", policy.MaxRetries())
	// Output:
	// max retries: 5
}
