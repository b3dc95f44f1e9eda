// Package testutil contains assertion helpers shared by the package
// tests.
package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/davecgh/go-spew/spew"

	"github.com/INIT-FOUNDATION/tealc/errors"
)

var wd, _ = os.Getwd()

// ExpectEqual fails the test when actual and expected differ, dumping
// both values.
func ExpectEqual(t testing.TB, actual, expected interface{}, msg string) {
	t.Helper()
	if !reflect.DeepEqual(actual, expected) {
		t.Errorf("%s:\ngot:\n%sexpected:\n%s", msg, spew.Sdump(actual), spew.Sdump(expected))
	}
}

// ExpectError fails the test unless fn returns an error whose root is
// expected.
func ExpectError(t testing.TB, expected error, msg string, fn func() error) {
	t.Helper()
	actual := fn()
	if errors.Root(actual) != expected {
		t.Errorf("%s: got error %v, expected %v", msg, actual, expected)
	}
}

// FatalErr stops the test, printing err with its recorded stack.
func FatalErr(t testing.TB, err error) {
	t.Helper()
	args := []interface{}{err}
	for _, frame := range errors.Stack(err) {
		file := frame.File
		if rel, relErr := filepath.Rel(wd, file); relErr == nil && !strings.HasPrefix(rel, "../") {
			file = rel
		}
		funcname := frame.Func[strings.IndexByte(frame.Func, '.')+1:]
		args = append(args, fmt.Sprintf("\n%s:%d: %s", file, frame.Line, funcname))
	}
	t.Fatal(args...)
}
