package registry_test

import (
	"bytes"
	"testing"

	"github.com/zigadel/openxr-zig/internal/registry"
)

func TestSnapshot_RoundTrip(t *testing.T) {
	reg := parseMini(t)
	snap := registry.BuildSnapshot(reg)

	if snap.APIMajor != 1 || snap.APIPatch != 34 {
		t.Errorf("snapshot version = %d.%d.%d", snap.APIMajor, snap.APIMinor, snap.APIPatch)
	}
	if len(snap.Handles) != 3 {
		t.Errorf("handles = %v", snap.Handles)
	}
	if len(snap.Commands) != 1 || snap.Commands[0] != "xrCreateSession" {
		t.Errorf("commands = %v", snap.Commands)
	}

	var buf bytes.Buffer
	if err := snap.Encode(&buf); err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	got, err := registry.DecodeSnapshot(&buf)
	if err != nil {
		t.Fatalf("DecodeSnapshot failed: %v", err)
	}
	if got.Schema != snap.Schema || len(got.Extensions) != len(snap.Extensions) {
		t.Errorf("round trip mismatch: %+v", got)
	}
	if got.Extensions[0].Tag != "KHR" {
		t.Errorf("extension tag = %q", got.Extensions[0].Tag)
	}
}

func TestSnapshot_RejectsUnknownSchema(t *testing.T) {
	reg := parseMini(t)
	snap := registry.BuildSnapshot(reg)
	snap.Schema = 99

	var buf bytes.Buffer
	if err := snap.Encode(&buf); err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	if _, err := registry.DecodeSnapshot(&buf); err == nil {
		t.Fatal("DecodeSnapshot should reject a newer schema")
	}
}
