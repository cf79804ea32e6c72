package project

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/piwi3910/ShopFloor/internal/model"
)

// JobCardFile is the on-disk layout of a job-card snapshot.
type JobCardFile struct {
	JobCards []model.JobCard `json:"job_cards" yaml:"job_cards"`
}

// isYAML reports whether path should be read and written as YAML.
func isYAML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	default:
		return false
	}
}

// LoadJobCards reads a job-card snapshot. Files ending in .yaml or .yml are
// parsed as YAML, anything else as JSON. Nil slices are normalised to empty.
func LoadJobCards(path string) ([]model.JobCard, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read job cards: %w", err)
	}

	var file JobCardFile
	if isYAML(path) {
		err = yaml.Unmarshal(data, &file)
	} else {
		err = json.Unmarshal(data, &file)
	}
	if err != nil {
		return nil, fmt.Errorf("parse job cards %s: %w", path, err)
	}

	cards := file.JobCards
	if cards == nil {
		cards = []model.JobCard{}
	}
	for i := range cards {
		if cards[i].DependsOnJobCardIDs == nil {
			cards[i].DependsOnJobCardIDs = []string{}
		}
		if cards[i].BlockedBy == nil {
			cards[i].BlockedBy = []string{}
		}
		if cards[i].Status == "" {
			cards[i].Status = model.JobCardPending
		}
		if !cards[i].Status.Valid() {
			return nil, fmt.Errorf("job card %s: unknown status %q", cards[i].Label(), cards[i].Status)
		}
	}
	if err := checkCardKeys(cards); err != nil {
		return nil, fmt.Errorf("job cards %s: %w", path, err)
	}
	return cards, nil
}

// checkCardKeys requires every card to carry an ID or a JobCardNo and each
// non-empty ID and JobCardNo to be unique, so references resolve to one card.
func checkCardKeys(cards []model.JobCard) error {
	ids := make(map[string]bool, len(cards))
	nos := make(map[string]bool, len(cards))
	for i, c := range cards {
		if c.ID == "" && c.JobCardNo == "" {
			return fmt.Errorf("card %d has neither id nor job_card_no", i+1)
		}
		if c.ID != "" {
			if ids[c.ID] {
				return fmt.Errorf("duplicate id %q", c.ID)
			}
			ids[c.ID] = true
		}
		if c.JobCardNo != "" {
			if nos[c.JobCardNo] {
				return fmt.Errorf("duplicate job_card_no %q", c.JobCardNo)
			}
			nos[c.JobCardNo] = true
		}
	}
	return nil
}

// SaveJobCards writes a job-card snapshot in the format implied by the path.
func SaveJobCards(path string, cards []model.JobCard) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create job card directory: %w", err)
	}
	if cards == nil {
		cards = []model.JobCard{}
	}

	file := JobCardFile{JobCards: cards}
	var (
		data []byte
		err  error
	)
	if isYAML(path) {
		data, err = yaml.Marshal(file)
	} else {
		data, err = json.MarshalIndent(file, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("marshal job cards: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}
