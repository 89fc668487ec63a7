package audio

import (
	"encoding/binary"
	"go/parser"
	"go/token"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
)

func TestFloat32LE(t *testing.T) {
	samples := []float64{0, 1, -1, 0.25}

	buf := Float32LE(samples)
	if len(buf) != 4*len(samples) {
		t.Fatalf("len = %d, want %d", len(buf), 4*len(samples))
	}

	for i, want := range samples {
		got := math.Float32frombits(binary.LittleEndian.Uint32(buf[4*i:]))
		if float64(got) != want {
			t.Errorf("sample %d = %g, want %g", i, got, want)
		}
	}
}

// The device backend needs cgo and a system sound library, so it must stay
// out of this package's import graph.
func TestImports_NoDeviceBackend(t *testing.T) {
	files, err := filepath.Glob("*.go")
	if err != nil {
		t.Fatal(err)
	}

	fset := token.NewFileSet()

	for _, name := range files {
		if strings.HasSuffix(name, "_test.go") {
			continue
		}

		src, err := os.ReadFile(name)
		if err != nil {
			t.Fatal(err)
		}

		f, err := parser.ParseFile(fset, name, src, parser.ImportsOnly)
		if err != nil {
			t.Fatal(err)
		}

		for _, imp := range f.Imports {
			path, _ := strconv.Unquote(imp.Path.Value)
			if strings.HasPrefix(path, "github.com/ebitengine/oto") {
				t.Errorf("%s imports %s", name, path)
			}
		}
	}
}
