package cli

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/piwi3910/ShopFloor/internal/importer"
	"github.com/piwi3910/ShopFloor/internal/model"
	"github.com/piwi3910/ShopFloor/internal/project"
)

// loadStock reads pieces from a JSON snapshot or a CSV/Excel sheet.
// Import problems are reported as warnings; an import with errors and no
// pieces fails.
func (a *app) loadStock(w io.Writer, path string) ([]model.MaterialPiece, error) {
	if path == "" {
		return nil, fmt.Errorf("no stock file given")
	}
	if strings.EqualFold(filepath.Ext(path), ".json") {
		pieces, err := project.LoadStock(path)
		if err != nil {
			return nil, err
		}
		a.logger.Debug("stock loaded", "path", path, "pieces", len(pieces))
		return pieces, nil
	}

	result := importer.ImportStock(path)
	a.report(w, path, result.Errors, result.Warnings)
	if len(result.Pieces) == 0 && len(result.Errors) > 0 {
		return nil, fmt.Errorf("import stock %s: %s", path, result.Errors[0])
	}
	a.logger.Debug("stock imported", "path", path, "pieces", len(result.Pieces), "errors", len(result.Errors))
	return result.Pieces, nil
}

// loadRequirements reads cutting requirements from a CSV/Excel sheet.
func (a *app) loadRequirements(w io.Writer, path string) ([]model.CuttingRequirement, error) {
	if path == "" {
		return nil, fmt.Errorf("no requirements file given")
	}
	result := importer.ImportRequirements(path)
	a.report(w, path, result.Errors, result.Warnings)
	if len(result.Requirements) == 0 && len(result.Errors) > 0 {
		return nil, fmt.Errorf("import requirements %s: %s", path, result.Errors[0])
	}
	a.logger.Debug("requirements imported", "path", path, "lines", len(result.Requirements))
	return result.Requirements, nil
}

// report echoes importer messages. Header and delimiter notices go to the
// debug log; row problems are shown to the user.
func (a *app) report(w io.Writer, path string, errs, warnings []string) {
	for _, msg := range warnings {
		if strings.HasPrefix(msg, "Detected ") {
			a.logger.Debug(msg, "path", path)
			continue
		}
		warn(w, "%s: %s", filepath.Base(path), msg)
	}
	for _, msg := range errs {
		warn(w, "%s: skipped %s", filepath.Base(path), msg)
	}
}

// loadCards reads a job-card snapshot.
func (a *app) loadCards(path string) ([]model.JobCard, error) {
	if path == "" {
		return nil, fmt.Errorf("no job card file given (use -f)")
	}
	cards, err := project.LoadJobCards(path)
	if err != nil {
		return nil, err
	}
	a.logger.Debug("job cards loaded", "path", path, "cards", len(cards))
	return cards, nil
}
