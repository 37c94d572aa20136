package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultRequestFile is the request file looked for when --config is not
// given.
const DefaultRequestFile = "gwsetup.yaml"

// LoadRequest reads a Request from a YAML file. Missing fields stay zero;
// the wizard fills the gaps afterwards.
func LoadRequest(path string) (*Request, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading request file: %w", err)
	}

	var req Request
	if err := yaml.Unmarshal(data, &req); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return &req, nil
}

// WriteRequest writes a Request to a YAML file, restricted to the owner.
// Used to persist the wizard's answers for re-runs.
func WriteRequest(req *Request, path string) error {
	data, err := yaml.Marshal(req)
	if err != nil {
		return fmt.Errorf("marshaling request: %w", err)
	}

	header := "# gwsetup provisioning request.\n# Re-run `gwsetup setup --config " + path + "` to reuse these answers.\n"
	if err := os.WriteFile(path, append([]byte(header), data...), 0o600); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
