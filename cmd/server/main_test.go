package main

import (
	"testing"
)

func TestParseFlagsLeavesUnsetFlagsNil(t *testing.T) {
	overrides, err := parseFlags(nil)
	if err != nil {
		t.Fatalf("parseFlags returned error: %v", err)
	}

	if overrides.ConfigFile != "" {
		t.Fatalf("expected no config file, got %q", overrides.ConfigFile)
	}
	if overrides.Port != nil || overrides.ContainersStr != nil || overrides.MaxStates != nil ||
		overrides.LogLevel != nil || overrides.RateLimitRPS != nil || overrides.RateLimitBurst != nil {
		t.Fatalf("expected unset flags to produce nil overrides, got %+v", overrides)
	}
}

func TestParseFlagsAppliesValues(t *testing.T) {
	overrides, err := parseFlags([]string{
		"--config", "config.yaml",
		"--port", "9000",
		"--containers", "N:10:1,P:5:2,C:5:3",
		"--max-states", "4096",
		"--log-level", "debug",
		"--rate-limit-rps", "0",
		"--rate-limit-burst", "7",
	})
	if err != nil {
		t.Fatalf("parseFlags returned error: %v", err)
	}

	if overrides.ConfigFile != "config.yaml" {
		t.Fatalf("expected config file config.yaml, got %q", overrides.ConfigFile)
	}
	if overrides.Port == nil || *overrides.Port != "9000" {
		t.Fatalf("expected port override 9000")
	}
	if overrides.ContainersStr == nil || *overrides.ContainersStr != "N:10:1,P:5:2,C:5:3" {
		t.Fatalf("expected containers override")
	}
	if overrides.MaxStates == nil || *overrides.MaxStates != 4096 {
		t.Fatalf("expected max states override 4096")
	}
	if overrides.LogLevel == nil || *overrides.LogLevel != "debug" {
		t.Fatalf("expected log level override debug")
	}
	if overrides.RateLimitRPS == nil || *overrides.RateLimitRPS != 0 {
		t.Fatalf("expected zero rate limit override to be kept")
	}
	if overrides.RateLimitBurst == nil || *overrides.RateLimitBurst != 7 {
		t.Fatalf("expected burst override 7")
	}
}

func TestParseFlagsRejectsUnknownFlag(t *testing.T) {
	if _, err := parseFlags([]string{"--items", "250"}); err == nil {
		t.Fatalf("expected error for unknown flag")
	}
}
