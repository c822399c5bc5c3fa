package c

import "fmt"

func Logf(format string, args ...any) {
	fmt.Printf(format, args...)
}

type logger struct{}

func (logger) Logf(format string, args ...any) {}

func use(n int, s string) {
	Logf("%d", n)
	Logf("%d", s) // want `c.Logf: argument type mismatch at position 0: %d expects int, got string`
	logger{}.Logf("%d", s)
	fmt.Printf("%d", s)
}
