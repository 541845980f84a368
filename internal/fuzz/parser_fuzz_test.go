package fuzztests

import (
	"testing"
	"time"

	"playground/internal/ast"
	"playground/internal/diag"
	"playground/internal/parser"
	"playground/internal/source"
	"playground/internal/testkit"
)

// parseTimeout is the maximum time allowed for parsing a single input.
// If parsing takes longer, it indicates a potential infinite loop.
const parseTimeout = 5 * time.Second

// FuzzParserNoHang tests that the parser terminates on any input and keeps
// every span inside its parent.
func FuzzParserNoHang(f *testing.F) {
	addCorpusSeeds(f)

	// Add specific edge cases for error recovery
	f.Add([]byte("let x = 1\nlet y = 2;"))     // missing semicolon
	f.Add([]byte("x + y\nlet z = 3;"))         // expression without semicolon
	f.Add([]byte("{ let x = 1 }"))             // block without semicolons
	f.Add([]byte("{ { { { } } } }"))           // deeply nested blocks
	f.Add([]byte("while { } if { } else { }")) // missing conditions

	f.Fuzz(func(t *testing.T, input []byte) {
		input = clampInput(input)

		type result struct {
			err error
		}
		done := make(chan result, 1)
		go func() {
			fs := source.NewFileSet()
			file := fs.Get(fs.AddVirtual("fuzz.tb", input))
			builder := ast.NewBuilder(ast.Hints{}, nil)
			bag := diag.NewBag(128)
			res := parser.ParseFile(fs, file, builder, parser.Options{
				Reporter:  diag.BagReporter{Bag: bag},
				MaxErrors: 128,
			})
			done <- result{err: testkit.CheckSpanInvariants(builder, res.File, file)}
		}()

		select {
		case r := <-done:
			if r.err != nil {
				t.Fatalf("span invariant: %v\ninput: %q", r.err, truncateForLog(input, 200))
			}
		case <-time.After(parseTimeout):
			t.Fatalf("parser hang detected: parsing took longer than %v\ninput (%d bytes): %q",
				parseTimeout, len(input), truncateForLog(input, 200))
		}
	})
}

// truncateForLog truncates input for logging purposes
func truncateForLog(input []byte, maxLen int) []byte {
	if len(input) <= maxLen {
		return input
	}
	return append(input[:maxLen:maxLen], []byte("...")...)
}
