package callsite

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"format-generator/internal/kind"
	"format-generator/internal/typedmap"
)

const pointYAML = `
package: report
calls:
  - name: PrintPoint
    params:
      - {name: x, type: int}
      - {name: y, type: int}
    stream: ["X=", {arg: x}, ", Y=", {arg: y}]
  - name: PrintSummary
    sink: log.Printf
    params:
      - {name: n, type: int}
      - {name: ratio, type: float64}
      - {name: label, type: string}
    format: "%d, %f, %s"
    args: [n, {arg: ratio}, label]
`

func TestParse_Defaults(t *testing.T) {
	f, err := Parse([]byte(pointYAML))
	require.NoError(t, err)

	assert.Equal(t, "1", f.Version)
	assert.Equal(t, "report", f.Package)
	require.Len(t, f.Calls, 2)

	assert.Equal(t, DefaultSink, f.Calls[0].Sink)
	assert.Equal(t, "log.Printf", f.Calls[1].Sink)
}

func TestParse_Stream(t *testing.T) {
	f, err := Parse([]byte(pointYAML))
	require.NoError(t, err)

	c := f.Calls[0]
	assert.True(t, c.HasStream())
	assert.False(t, c.HasFormat())
	require.Len(t, c.Stream, 4)

	require.True(t, c.Stream[0].IsLiteral())
	assert.Equal(t, "X=", *c.Stream[0].Literal)

	assert.False(t, c.Stream[1].IsLiteral())
	assert.Equal(t, Operand{Arg: "x"}, c.Stream[1].Operand)

	assert.Equal(t, ", Y=", *c.Stream[2].Literal)
	assert.Equal(t, "y", c.Stream[3].Operand.Arg)
}

func TestParse_FormatArgs(t *testing.T) {
	f, err := Parse([]byte(pointYAML))
	require.NoError(t, err)

	c := f.Calls[1]
	require.True(t, c.HasFormat())
	assert.Equal(t, "%d, %f, %s", *c.Format)
	assert.Equal(t, []Operand{{Arg: "n"}, {Arg: "ratio"}, {Arg: "label"}}, c.Args)
}

func TestParse_ConstantOperand(t *testing.T) {
	f, err := Parse([]byte(`
package: demo
calls:
  - name: PrintAnswer
    stream: ["answer=", {value: "42", type: int}]
`))
	require.NoError(t, err)

	op := f.Calls[0].Stream[1].Operand
	assert.False(t, op.IsParam())
	assert.Equal(t, "42", op.Value)
	assert.Equal(t, "int", op.Type)
}

func TestParse_InvalidYAML(t *testing.T) {
	_, err := Parse([]byte("calls: [\n"))
	assert.Error(t, err)

	_, err = Parse([]byte(`
package: demo
calls:
  - name: Bad
    stream: [[1, 2]]
`))
	assert.Error(t, err)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "calls.yaml")
	require.NoError(t, os.WriteFile(path, []byte(pointYAML), 0o644))

	f, err := LoadFile(path)
	require.NoError(t, err)
	assert.Len(t, f.Calls, 2)

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestFingerprint(t *testing.T) {
	a, err := Parse([]byte(pointYAML))
	require.NoError(t, err)

	b, err := Parse([]byte(pointYAML))
	require.NoError(t, err)

	c, err := Parse([]byte(pointYAML + "\n# edited\n"))
	require.NoError(t, err)

	assert.Equal(t, a.Fingerprint(), b.Fingerprint())
	assert.NotEqual(t, a.Fingerprint(), c.Fingerprint())
}

func TestMarshal_RoundTripsOperands(t *testing.T) {
	f, err := Parse([]byte(pointYAML))
	require.NoError(t, err)

	data, err := Marshal(f)
	require.NoError(t, err)

	again, err := Parse(data)
	require.NoError(t, err)

	assert.Equal(t, f.Calls, again.Calls)
}

func TestFormatTable(t *testing.T) {
	f, err := Parse([]byte(`
package: demo
formats:
  - {type: int, format: "%d"}
  - {type: bool, format: "%t"}
calls: []
`))
	require.NoError(t, err)

	table, err := f.FormatTable()
	require.NoError(t, err)
	assert.Equal(t, []kind.Key{kind.Int, kind.Bool}, table.Keys())

	empty := &File{}
	table, err = empty.FormatTable()
	require.NoError(t, err)
	assert.Equal(t, kind.DefaultFormats().Keys(), table.Keys())
}

func TestFormatTable_Duplicate(t *testing.T) {
	f, err := Parse([]byte(`
package: demo
formats:
  - {type: int, format: "%d"}
  - {type: int, format: "%x"}
calls: []
`))
	require.NoError(t, err)

	_, err = f.FormatTable()
	assert.ErrorIs(t, err, typedmap.ErrDuplicateKey)
}

func TestSpecifierTable(t *testing.T) {
	f, err := Parse([]byte(`
package: demo
specifiers:
  - {char: i, type: int}
  - {char: t, type: bool}
  - {char: xx, type: string}
calls: []
`))
	require.NoError(t, err)

	table, err := f.SpecifierTable()
	require.NoError(t, err)
	assert.Equal(t, []rune{'i', 't'}, table.Keys())

	_, err = (&File{Specifiers: []SpecifierDef{{Char: "d", Type: "int"}, {Char: "d", Type: "int64"}}}).SpecifierTable()
	assert.ErrorIs(t, err, typedmap.ErrDuplicateKey)
}
