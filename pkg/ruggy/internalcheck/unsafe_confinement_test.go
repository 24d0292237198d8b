package internalcheck

import (
	"fmt"
	"strings"
	"testing"

	"golang.org/x/tools/go/packages"
)

const nativePackage = "github.com/ruggydb/ruggy-go/internal/native"

// TestUnsafeConfinedToNative walks the whole module and verifies that only
// internal/native touches unsafe or cgo. Everything above it works with
// plain Go values, so a handle bug can only ever live in one package.
func TestUnsafeConfinedToNative(t *testing.T) {
	cfg := &packages.Config{
		Mode: packages.NeedName | packages.NeedFiles | packages.NeedImports,
	}

	pkgs, err := packages.Load(cfg, "github.com/ruggydb/ruggy-go/...")
	if err != nil {
		t.Fatalf("load packages: %v", err)
	}

	var findings []string

	for _, pkg := range pkgs {
		if strings.HasPrefix(pkg.PkgPath, nativePackage) {
			continue
		}
		for importPath := range pkg.Imports {
			if importPath == "unsafe" || importPath == "runtime/cgo" {
				findings = append(findings, fmt.Sprintf("%s imports %s", pkg.PkgPath, importPath))
			}
		}
	}

	if len(findings) > 0 {
		t.Fatalf("unsafe confinement policy violation:\n%s", strings.Join(findings, "\n"))
	}
}
