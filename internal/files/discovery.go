// Package files discovers annual report workbooks in the data directory, so
// report years dropped in after the configured lists were written are still
// picked up.
package files

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Market classifies a discovered workbook by the commodity it reports.
type Market int

const (
	MarketUnknown Market = iota
	MarketElectricity
	MarketGas
)

// Workbook is one discovered annual report file.
type Workbook struct {
	Path   string
	Name   string
	Market Market
}

// Discovery scans a data directory for annual report workbooks.
type Discovery struct {
	dataDir string
}

// NewDiscovery creates a discovery rooted at the data directory.
func NewDiscovery(dataDir string) *Discovery {
	return &Discovery{dataDir: dataDir}
}

// Workbooks returns every annual report workbook in the data directory,
// classified by market and sorted by name so report years process in order.
// Files that do not look like annual reports are ignored.
func (d *Discovery) Workbooks() ([]Workbook, error) {
	entries, err := os.ReadDir(d.dataDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read data directory %s: %w", d.dataDir, err)
	}

	var out []Workbook
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		market := ClassifyWorkbook(name)
		if market == MarketUnknown {
			continue
		}
		out = append(out, Workbook{
			Path:   filepath.Join(d.dataDir, name),
			Name:   name,
			Market: market,
		})
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// ClassifyWorkbook classifies a file name: annual report xlsx files mentioning
// gas report the gas market, other annual report xlsx files the electricity
// markets, anything else is not a report.
func ClassifyWorkbook(name string) Market {
	lower := strings.ToLower(name)
	if !strings.HasSuffix(lower, ".xlsx") {
		return MarketUnknown
	}
	if !strings.Contains(lower, "annual") || !strings.Contains(lower, "report") {
		return MarketUnknown
	}
	if strings.Contains(lower, "gas") {
		return MarketGas
	}
	return MarketElectricity
}
