package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestBuildRules_NoPath(t *testing.T) {
	rules, err := buildRules("")
	if err != nil {
		t.Fatalf("buildRules(\"\") error = %v", err)
	}
	if rules != nil {
		t.Errorf("buildRules(\"\") = %v, want nil", rules)
	}
}

func TestBuildRules_Valid(t *testing.T) {
	dir := t.TempDir()
	ruleFile := filepath.Join(dir, "rules.yaml")
	content := `version: 1
rules:
  nick: '[-\w]+'
`
	if err := os.WriteFile(ruleFile, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	rules, err := buildRules(ruleFile)
	if err != nil {
		t.Fatalf("buildRules() error = %v", err)
	}
	if rules == nil {
		t.Fatal("buildRules() = nil, want non-nil")
	}

	if _, ok := rules.MatchMessage("[12:34] <bob-away> hi"); !ok {
		t.Error("overridden nick pattern should match dashed nicks")
	}
}

func TestBuildRules_FileNotFound(t *testing.T) {
	_, err := buildRules("/nonexistent/rules.yaml")
	if err == nil {
		t.Fatal("buildRules() expected error for nonexistent file")
	}
	// Verify error message does NOT contain the path
	if strings.Contains(err.Error(), "/nonexistent") {
		t.Errorf("error message should not contain path: %s", err.Error())
	}
}

func TestBuildRules_InvalidRegex(t *testing.T) {
	dir := t.TempDir()
	ruleFile := filepath.Join(dir, "rules.yaml")
	content := `version: 1
rules:
  nick: '[unclosed'
`
	if err := os.WriteFile(ruleFile, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := buildRules(ruleFile); err == nil {
		t.Fatal("buildRules() expected error for invalid regex")
	}
}
