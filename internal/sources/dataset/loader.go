package dataset

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/flyee/flights/internal/domain"
)

// Loader reads the flight dataset file. The canonical format is a JSON array
// of flight objects; YAML is accepted too for hand-maintained fixtures.
type Loader struct {
	filePath string
}

func NewLoader(filePath string) *Loader {
	return &Loader{
		filePath: filePath,
	}
}

// Load reads and parses the dataset file.
func (l *Loader) Load() ([]domain.FlightRecord, error) {
	data, err := os.ReadFile(l.filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read dataset file: %w", err)
	}

	switch strings.ToLower(filepath.Ext(l.filePath)) {
	case ".yaml", ".yml":
		return parseYAML(data)
	default:
		return parseJSON(data)
	}
}

func parseJSON(data []byte) ([]domain.FlightRecord, error) {
	var records []domain.FlightRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("failed to parse dataset json: %w", err)
	}
	return records, nil
}

// parseYAML goes through a JSON round trip so both formats share one record
// decoding path (including the unknown-key pass-through).
func parseYAML(data []byte) ([]domain.FlightRecord, error) {
	var generic []map[string]interface{}
	if err := yaml.Unmarshal(data, &generic); err != nil {
		return nil, fmt.Errorf("failed to parse dataset yaml: %w", err)
	}

	encoded, err := json.Marshal(generic)
	if err != nil {
		return nil, fmt.Errorf("failed to re-encode dataset yaml: %w", err)
	}
	return parseJSON(encoded)
}
