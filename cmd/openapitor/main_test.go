package main

import (
	"testing"
)

func TestLastPathSegment(t *testing.T) {
	tests := []struct {
		modulePath string
		want       string
	}{
		{"github.com/example/widget-client", "widgetclient"},
		{"github.com/example/go-widget", "gowidget"},
		{"widgetclient", "widgetclient"},
		{"", "api"},
	}
	for _, tt := range tests {
		got := lastPathSegment(tt.modulePath)
		if got != tt.want {
			t.Errorf("lastPathSegment(%q) = %q, want %q", tt.modulePath, got, tt.want)
		}
	}
}

func TestSetupFlagsDefaults(t *testing.T) {
	_, f := setupFlags()
	if f.requestTimeoutSeconds != 30 {
		t.Errorf("expected registered default 30 before Parse, got %d", f.requestTimeoutSeconds)
	}
}

func TestSetupFlagsParsesValues(t *testing.T) {
	fs, f := setupFlags()
	args := []string{"-i", "spec.yaml", "-o", "./out", "-n", "github.com/example/widget", "--tabled"}
	if err := fs.Parse(args); err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	if f.input != "spec.yaml" {
		t.Errorf("expected input 'spec.yaml', got %q", f.input)
	}
	if f.output != "./out" {
		t.Errorf("expected output './out', got %q", f.output)
	}
	if f.name != "github.com/example/widget" {
		t.Errorf("expected name 'github.com/example/widget', got %q", f.name)
	}
	if !f.tabled {
		t.Error("expected tabled to be true")
	}
	if f.requestTimeoutSeconds != 30 {
		t.Errorf("expected default requestTimeoutSeconds 30, got %d", f.requestTimeoutSeconds)
	}
}
