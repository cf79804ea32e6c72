package project

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/piwi3910/ShopFloor/internal/model"
)

// StockFile is the on-disk layout of a stock snapshot.
type StockFile struct {
	Pieces []model.MaterialPiece `json:"pieces"`
}

// DefaultStockPath returns the default file path for the stock snapshot.
// This is located at ~/.shopfloor/stock.json.
func DefaultStockPath() string {
	return filepath.Join(DefaultConfigDir(), "stock.json")
}

// SaveStock writes the pieces to the specified JSON file.
// It creates parent directories if they do not exist.
func SaveStock(path string, pieces []model.MaterialPiece) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create stock directory: %w", err)
	}
	if pieces == nil {
		pieces = []model.MaterialPiece{}
	}
	data, err := json.MarshalIndent(StockFile{Pieces: pieces}, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal stock: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}

// LoadStock reads pieces from the specified JSON file. A missing file is an
// empty stock. Pieces without an ID get a new one, duplicate IDs are an
// error, and every loaded piece is reclassified against its thresholds.
func LoadStock(path string) ([]model.MaterialPiece, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return []model.MaterialPiece{}, nil
		}
		return nil, fmt.Errorf("read stock: %w", err)
	}
	var file StockFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse stock %s: %w", path, err)
	}
	pieces := make([]model.MaterialPiece, len(file.Pieces))
	seen := make(map[string]bool, len(file.Pieces))
	for i, p := range file.Pieces {
		if p.ID == "" {
			p.ID = model.NewID()
		}
		if seen[p.ID] {
			return nil, fmt.Errorf("stock %s: duplicate piece id %q", path, p.ID)
		}
		seen[p.ID] = true
		pieces[i] = p.Classify()
	}
	return pieces, nil
}

// MergeStock appends incoming pieces to existing ones. Pieces whose ID is
// already present are skipped; the number skipped is returned.
func MergeStock(existing, incoming []model.MaterialPiece) ([]model.MaterialPiece, int) {
	ids := make(map[string]bool, len(existing))
	for _, p := range existing {
		ids[p.ID] = true
	}

	merged := append([]model.MaterialPiece(nil), existing...)
	skipped := 0
	for _, p := range incoming {
		if ids[p.ID] {
			skipped++
			continue
		}
		merged = append(merged, p)
		ids[p.ID] = true
	}
	return merged, skipped
}
