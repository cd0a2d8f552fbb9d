package ledger

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/shopspring/decimal"
)

// Registry holds named parsers.
type Registry struct {
	parsers map[string]Parser
}

// NewRegistry creates an empty parser registry.
func NewRegistry() *Registry {
	return &Registry{parsers: make(map[string]Parser)}
}

// Register adds a parser. Panics on duplicate format.
func (r *Registry) Register(p Parser) {
	key := strings.ToLower(p.Format())
	if _, ok := r.parsers[key]; ok {
		panic("duplicate parser format: " + key)
	}
	r.parsers[key] = p
}

// Get returns the parser for format, or nil.
func (r *Registry) Get(format string) Parser {
	return r.parsers[strings.ToLower(format)]
}

// Formats lists the registered sales layouts first, then purchase.
func (r *Registry) Formats() []string {
	var out []string
	for _, f := range []string{FormatSummary, FormatDetailed, FormatPurchase} {
		if _, ok := r.parsers[f]; ok {
			out = append(out, f)
		}
	}
	return out
}

// DefaultRegistry returns a registry with all built-in parsers.
func DefaultRegistry() *Registry {
	return NewDefaultRegistry(DefaultLineTolerance)
}

// NewDefaultRegistry is DefaultRegistry with a custom line-total tolerance.
func NewDefaultRegistry(lineTolerance decimal.Decimal) *Registry {
	r := NewRegistry()
	r.Register(&SummarySalesParser{})
	r.Register(&DetailedSalesParser{Tolerance: lineTolerance})
	r.Register(&PurchaseParser{})
	return r
}

// Workspace directories holding register exports.
const (
	SalesDir    = "ledgers/sales"
	PurchaseDir = "ledgers/purchase"
)

// FileInfo describes a register file in a workspace directory.
type FileInfo struct {
	Name string
	Path string
	Size int64
}

// Scan returns the .csv and .xlsx files in <root>/<dir>, sorted by name.
func Scan(root, dir string) ([]FileInfo, error) {
	full := filepath.Join(root, dir)
	entries, err := os.ReadDir(full)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading ledger dir: %w", err)
	}

	var files []FileInfo
	for _, e := range entries {
		if e.IsDir() || strings.HasPrefix(e.Name(), "~$") {
			continue
		}
		switch strings.ToLower(filepath.Ext(e.Name())) {
		case ".csv", ".xlsx", ".xlsm":
		default:
			continue
		}
		info, err := e.Info()
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", e.Name(), err)
		}
		files = append(files, FileInfo{
			Name: e.Name(),
			Path: filepath.Join(full, e.Name()),
			Size: info.Size(),
		})
	}
	return files, nil
}

// Paths returns the Path of every file.
func Paths(files []FileInfo) []string {
	out := make([]string, 0, len(files))
	for _, f := range files {
		out = append(out, f.Path)
	}
	return out
}
