// Package callsite provides the YAML schema, parsing and structural
// validation of call-site files.
//
// A call-site file declares the functions to generate. Each function wraps
// exactly one sink call whose format string is either assembled from a token
// stream or written out literally and checked against its arguments:
//
//	version: "1"
//	package: report
//	calls:
//	  - name: PrintPoint
//	    sink: fmt.Printf
//	    params: [{name: x, type: int}, {name: y, type: int}]
//	    stream: ["X=", {arg: x}, ", Y=", {arg: y}]
//	  - name: PrintSummary
//	    params:
//	      - {name: n, type: int}
//	      - {name: ratio, type: float64}
//	      - {name: label, type: string}
//	    format: "%d, %f, %s"
//	    args: [n, ratio, label]
//
// Stream items are literal strings, parameter references ({arg: x}) or typed
// constants ({value: "7", type: int}). The optional formats and specifiers
// sections replace the default tables.
package callsite
