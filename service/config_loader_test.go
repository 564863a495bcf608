package service

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/ludo-technologies/protoscan/domain"
	"github.com/ludo-technologies/protoscan/internal/config"
)

func intPtr(v int) *int { return &v }

func TestNewConfigurationLoader(t *testing.T) {
	if NewConfigurationLoader() == nil {
		t.Fatal("NewConfigurationLoader should not return nil")
	}
}

func TestConfigurationLoader_LoadConfig_NonExistent(t *testing.T) {
	_, err := NewConfigurationLoader().LoadConfig("/nonexistent/protoscan.yaml", "")
	if err == nil {
		t.Fatal("LoadConfig should return error for nonexistent file")
	}
	if domain.ErrorCode(err) != domain.ErrCodeConfigError {
		t.Errorf("expected config error code, got %s", domain.ErrorCode(err))
	}
}

func TestConfigurationLoader_LoadConfig_InvalidJSON(t *testing.T) {
	configFile := filepath.Join(t.TempDir(), "protoscan.json")
	if err := os.WriteFile(configFile, []byte("invalid json"), 0644); err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}

	if _, err := NewConfigurationLoader().LoadConfig(configFile, ""); err == nil {
		t.Error("LoadConfig should return error for invalid JSON")
	}
}

func TestConfigurationLoader_LoadConfig_Valid(t *testing.T) {
	configFile := filepath.Join(t.TempDir(), "protoscan.json")
	content := `{
		"protocols": {
			"files": ["Sources/Protocols.swift"],
			"max_operations": 4
		},
		"implementation": {
			"files": ["Sources/Manager.swift"]
		}
	}`
	if err := os.WriteFile(configFile, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}

	cfg, err := NewConfigurationLoader().LoadConfig(configFile, "")
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Protocols.MaxOperations != 4 {
		t.Errorf("expected MaxOperations 4, got %d", cfg.Protocols.MaxOperations)
	}
	if !reflect.DeepEqual(cfg.Implementation.Files, []string{"Sources/Manager.swift"}) {
		t.Errorf("unexpected implementation files: %v", cfg.Implementation.Files)
	}
}

func TestConfigurationLoader_ApplyOverrides(t *testing.T) {
	loader := NewConfigurationLoader()
	cfg := config.DefaultConfig()

	err := loader.ApplyOverrides(cfg, ThresholdOverrides{
		MaxOperations: intPtr(7),
		MaxComplexity: intPtr(10),
		Strict:        true,
		NoColor:       true,
	})
	if err != nil {
		t.Fatalf("ApplyOverrides failed: %v", err)
	}

	if cfg.Protocols.MaxOperations != 7 {
		t.Errorf("expected MaxOperations 7, got %d", cfg.Protocols.MaxOperations)
	}
	if cfg.Protocols.MaxParameters != config.DefaultMaxParameters {
		t.Errorf("unset override should keep MaxParameters, got %d", cfg.Protocols.MaxParameters)
	}
	if cfg.Implementation.MaxComplexity != 10 {
		t.Errorf("expected MaxComplexity 10, got %d", cfg.Implementation.MaxComplexity)
	}
	if !cfg.Implementation.Blocking {
		t.Error("strict should make complexity blocking")
	}
	if cfg.Output.Color {
		t.Error("no-color should disable color")
	}
}

func TestConfigurationLoader_ApplyOverrides_Invalid(t *testing.T) {
	err := NewConfigurationLoader().ApplyOverrides(config.DefaultConfig(), ThresholdOverrides{
		MaxParameters: intPtr(-1),
	})
	if domain.ErrorCode(err) != domain.ErrCodeConfigError {
		t.Errorf("expected config error, got %v", err)
	}
}

func TestConfigurationLoader_BuildCheckRequest(t *testing.T) {
	loader := NewConfigurationLoader()
	cfg := config.DefaultConfig()
	cfg.Protocols.Files = []string{"Defs.swift"}
	cfg.Implementation.Files = []string{"Impl.swift"}

	req := loader.BuildCheckRequest(cfg, nil, nil)
	if !reflect.DeepEqual(req.DefinitionPaths, []string{"Defs.swift"}) {
		t.Errorf("expected configured definition files, got %v", req.DefinitionPaths)
	}
	if !reflect.DeepEqual(req.ImplementationPaths, []string{"Impl.swift"}) {
		t.Errorf("expected configured implementation files, got %v", req.ImplementationPaths)
	}
	if !req.Recursive || !req.RespectGitignore {
		t.Error("expected analysis options from config")
	}

	req = loader.BuildCheckRequest(cfg, []string{"Other.swift"}, []string{"Busy.swift"})
	if !reflect.DeepEqual(req.DefinitionPaths, []string{"Other.swift"}) {
		t.Errorf("expected argument paths to win, got %v", req.DefinitionPaths)
	}
	if !reflect.DeepEqual(req.ImplementationPaths, []string{"Busy.swift"}) {
		t.Errorf("expected flag paths to win, got %v", req.ImplementationPaths)
	}
}
