package service

import (
	_ "embed"
	"fmt"
	"os"
	"storefront/internal/models"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed faq.yaml
var defaultFAQ []byte

// FAQService serves the FAQ entries, loaded once
type FAQService struct {
	entries []models.FAQEntry
}

// NewFAQService loads the FAQ from path, or the embedded default if path is ""
func NewFAQService(path string) (*FAQService, error) {
	raw := defaultFAQ
	if path != "" {
		var err error
		raw, err = os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("error reading faq file: %w", err)
		}
	}

	entries, err := ParseFAQ(raw)
	if err != nil {
		return nil, err
	}
	return &FAQService{entries: entries}, nil
}

// ParseFAQ decodes a YAML list of question/answer pairs, both are required
func ParseFAQ(raw []byte) ([]models.FAQEntry, error) {
	var entries []models.FAQEntry
	if err := yaml.Unmarshal(raw, &entries); err != nil {
		return nil, fmt.Errorf("error parsing faq: %w", err)
	}
	for i, entry := range entries {
		if strings.TrimSpace(entry.Question) == "" || strings.TrimSpace(entry.Answer) == "" {
			return nil, fmt.Errorf("faq entry %d: question and answer are required", i+1)
		}
	}
	return entries, nil
}

// Entries returns a copy of the FAQ entries
func (s *FAQService) Entries() []models.FAQEntry {
	return append([]models.FAQEntry(nil), s.entries...)
}
