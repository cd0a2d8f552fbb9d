package analysis

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/cleared-dev/taxaudit/internal/ledger"
	"github.com/cleared-dev/taxaudit/internal/notes"
)

// DeclarationsDir is the workspace directory holding XML declarations.
const DeclarationsDir = "declarations"

// Discover fills the file lists of an Input from a workspace laid out by
// `taxaudit init`. Missing directories are empty.
func Discover(root string) (Input, error) {
	var in Input
	var err error

	if in.Documents, err = listFiles(filepath.Join(root, DeclarationsDir), ".xml"); err != nil {
		return in, err
	}
	sales, err := ledger.Scan(root, ledger.SalesDir)
	if err != nil {
		return in, err
	}
	purchase, err := ledger.Scan(root, ledger.PurchaseDir)
	if err != nil {
		return in, err
	}
	in.SalesFiles, in.PurchaseFiles = ledger.Paths(sales), ledger.Paths(purchase)

	if in.NotesFiles, err = listFiles(filepath.Join(root, notes.Dir), ".txt", ".md", ".docx", ".pdf"); err != nil {
		return in, err
	}
	return in, nil
}

// listFiles returns the regular files in dir with one of exts, sorted by
// name.
func listFiles(dir string, exts ...string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading %s: %w", dir, err)
	}

	var out []string
	for _, e := range entries {
		if e.IsDir() || strings.HasPrefix(e.Name(), "~$") {
			continue
		}
		ext := strings.ToLower(filepath.Ext(e.Name()))
		for _, want := range exts {
			if ext == want {
				out = append(out, filepath.Join(dir, e.Name()))
				break
			}
		}
	}
	sort.Strings(out)
	return out, nil
}
