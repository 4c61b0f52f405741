// Package monorepo implements domain.MonorepoDetector by recognizing the
// handful of manifest conventions the JS ecosystem uses to declare a
// workspace: npm/yarn "workspaces" in package.json, pnpm-workspace.yaml,
// and lerna.json.
package monorepo

import (
	"encoding/json"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Detector implements domain.MonorepoDetector.
type Detector struct{}

func New() *Detector { return &Detector{} }

type packageJSON struct {
	Workspaces json.RawMessage `json:"workspaces"`
}

type pnpmWorkspace struct {
	Packages []string `yaml:"packages"`
}

// IsMonorepo reports whether repoRoot's root manifests declare a
// multi-package workspace. Any read or parse failure is treated as "not a
// monorepo" — this signal only ever adds caution, never certainty.
func (d *Detector) IsMonorepo(repoRoot string) bool {
	if hasWorkspacesField(filepath.Join(repoRoot, "package.json")) {
		return true
	}
	if hasPnpmWorkspace(filepath.Join(repoRoot, "pnpm-workspace.yaml")) {
		return true
	}
	if fileExists(filepath.Join(repoRoot, "lerna.json")) {
		return true
	}
	return false
}

func hasWorkspacesField(path string) bool {
	raw, err := os.ReadFile(path)
	if err != nil {
		return false
	}
	var pkg packageJSON
	if err := json.Unmarshal(raw, &pkg); err != nil {
		return false
	}
	return len(pkg.Workspaces) > 0
}

func hasPnpmWorkspace(path string) bool {
	raw, err := os.ReadFile(path)
	if err != nil {
		return false
	}
	var ws pnpmWorkspace
	if err := yaml.Unmarshal(raw, &ws); err != nil {
		return false
	}
	return len(ws.Packages) > 0
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
