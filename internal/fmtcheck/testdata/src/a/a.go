package a

import (
	"fmt"
	"io"
	"log"
)

type Celsius float64

type Meters = float64

func valid(w io.Writer, n int, r float64, s string, m Meters) error {
	fmt.Printf("%d, %f, %s", n, r, s)
	fmt.Printf("100%%: %d", n)
	fmt.Printf("%5.2f|%-3d", r, n)
	fmt.Printf("%f", m)
	fmt.Printf("%d", 42)
	fmt.Fprintf(w, "%s\n", s)
	log.Printf("%s", s)
	_ = fmt.Sprintf("no verbs")
	return fmt.Errorf("%s: %d", s, n)
}

func skipped(format string, n int, args []any, x struct{}) {
	fmt.Printf(format, n)
	fmt.Printf("%d", args...)
	fmt.Printf("%v %d", x, n)
	fmt.Println("%d", "not a format")
}

func invalid(n int, r float64, s string, n64 int64, c Celsius) {
	fmt.Printf("%d %d", n)            // want `fmt.Printf: argument count mismatch: format has 2 specifiers "dd", got 1 arguments`
	fmt.Printf("%d", n, s)            // want `argument count mismatch`
	fmt.Printf("%d", s)               // want `fmt.Printf: argument type mismatch at position 0: %d expects int, got string`
	fmt.Printf("%d", n64)             // want `%d expects int, got int64`
	fmt.Printf("%f", c)               // want `%f expects float64, got a.Celsius`
	fmt.Printf("%f", 1)               // want `%f expects float64, got int`
	_ = fmt.Errorf("%s: %d", s, r)    // want `fmt.Errorf: argument type mismatch at position 1: %d expects int, got float64`
	fmt.Printf("%*d", n, n)           // want `fmt.Printf: unsupported directive "%\*d" at offset 0`
	fmt.Printf("%[1]d", n)            // want `unsupported directive`
	log.Printf("%s %s", n, r)         // want `position 0: %s expects string, got int` `position 1: %s expects string, got float64`
}
