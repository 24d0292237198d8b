package internalcheck

import (
	"fmt"
	"strings"
	"testing"

	"golang.org/x/tools/go/packages"
)

// TestWrapperDoesNotImportEngines verifies the dependency direction between
// the wrapper and the storage engines: engines import pkg/ruggy for its
// Engine interface, never the other way around. A reversal would both create
// an import cycle and drag engine dependencies into every binding user.
func TestWrapperDoesNotImportEngines(t *testing.T) {
	cfg := &packages.Config{
		Mode: packages.NeedName | packages.NeedImports,
	}

	pkgs, err := packages.Load(cfg, "github.com/ruggydb/ruggy-go/pkg/ruggy")
	if err != nil {
		t.Fatalf("load package: %v", err)
	}

	forbidden := []string{
		"github.com/ruggydb/ruggy-go/pkg/ruggy/memengine",
		"github.com/ruggydb/ruggy-go/pkg/ruggy/boltengine",
		"go.etcd.io/bbolt",
		"github.com/google/uuid",
	}

	var findings []string

	for _, pkg := range pkgs {
		for importPath := range pkg.Imports {
			for _, bad := range forbidden {
				if importPath == bad {
					findings = append(findings, fmt.Sprintf("%s imports %s", pkg.PkgPath, importPath))
				}
			}
		}
	}

	if len(findings) > 0 {
		t.Fatalf("wrapper import policy violation:\n%s", strings.Join(findings, "\n"))
	}
}
