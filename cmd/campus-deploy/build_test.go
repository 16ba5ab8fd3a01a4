package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	campusdeploy "github.com/campustime/campus-deploy"
	"github.com/campustime/campus-deploy/config"
)

func TestOutputDescription_JSONFile(t *testing.T) {
	desc := &campusdeploy.Description{
		Version:   campusdeploy.DescriptionFormatVersion,
		Functions: []campusdeploy.FunctionDef{{Name: "fn", MemoryMB: 128, TimeoutSec: 3}},
	}

	path := filepath.Join(t.TempDir(), "description.json")
	if err := outputDescription(desc, "json", path); err != nil {
		t.Fatalf("outputDescription() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	var got campusdeploy.Description
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if len(got.Functions) != 1 || got.Functions[0].Name != "fn" {
		t.Errorf("round trip = %+v", got)
	}
}

func TestOutputDescription_UnknownFormat(t *testing.T) {
	err := outputDescription(&campusdeploy.Description{}, "toml", "")
	if err == nil || !strings.Contains(err.Error(), "unknown format") {
		t.Errorf("expected unknown format error, got %v", err)
	}
}

func TestLoadConfig_EnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "deploy.env")
	if err := os.WriteFile(path, []byte("AWS_REGION=ap-northeast-1\n"), 0600); err != nil {
		t.Fatal(err)
	}

	cfg, err := loadConfig(path)
	if err != nil {
		t.Fatalf("loadConfig() error = %v", err)
	}

	region, ok := cfg.Lookup(config.KeyRegion)
	if !ok || region != "ap-northeast-1" {
		t.Errorf("Lookup(AWS_REGION) = %q, %v", region, ok)
	}
}

func TestLoadConfig_MissingEnvFile(t *testing.T) {
	_, err := loadConfig(filepath.Join(t.TempDir(), "nope.env"))
	if err == nil {
		t.Error("expected error for missing env file")
	}
}
