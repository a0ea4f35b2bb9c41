package maincmd_test

import (
	"bytes"
	"context"
	"flag"
	"path/filepath"
	"testing"

	"github.com/justinmgarrigus/jgpl/internal/filetest"
	"github.com/justinmgarrigus/jgpl/internal/maincmd"
)

var testUpdateCompileTests = flag.Bool("test.update-compile-tests", false, "If set, replace expected compiler test results with actual results.")

// TestCompileGolden runs the full C1-C5 pipeline over each .jg fixture in
// testdata/in and compares the emitted JGC text (and any reducer
// diagnostics) against the golden files in testdata/out.
func TestCompileGolden(t *testing.T) {
	ctx := context.Background()
	srcDir, resultDir := filepath.Join("testdata", "in"), filepath.Join("testdata", "out")

	for _, fi := range filetest.SourceFiles(t, srcDir, ".jg") {
		t.Run(fi.Name(), func(t *testing.T) {
			var diag bytes.Buffer
			code, err := maincmd.CompileFiles(ctx, &diag, []string{filepath.Join(srcDir, fi.Name())})
			if err != nil {
				t.Fatal(err)
			}
			filetest.DiffOutput(t, fi, code, resultDir, testUpdateCompileTests)
			filetest.DiffErrors(t, fi, diag.String(), resultDir, testUpdateCompileTests)
		})
	}
}
