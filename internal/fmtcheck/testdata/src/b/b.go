package b

import "fmt"

type Celsius float64

func f(n int, c Celsius, ok bool) {
	fmt.Printf("%d %g", n, c)
	fmt.Printf("%g", 1.5) // want `%g expects b.Celsius, got float64`
	fmt.Printf("%t", ok)
	fmt.Printf("%f", 1.5)
}
