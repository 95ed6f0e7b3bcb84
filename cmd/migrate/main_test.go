package main

import (
	"crypto/sha256"
	"testing"
)

func TestMigrationFilenamePattern(t *testing.T) {
	tests := []struct {
		filename string
		valid    bool
		version  string
		name     string
	}{
		{"0001_create_transactions.sql", true, "0001", "create_transactions"},
		{"0012_add_index.sql", true, "0012", "add_index"},
		{"001_invalid.sql", false, "", ""},       // wrong number format
		{"0001_test", false, "", ""},             // missing .sql
		{"0001.sql", false, "", ""},              // missing name
		{"invalid_0001_test.sql", false, "", ""}, // wrong order
	}

	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			matches := migrationPattern.FindStringSubmatch(tt.filename)
			if tt.valid {
				if matches == nil {
					t.Fatalf("expected %s to match", tt.filename)
				}
				if matches[1] != tt.version || matches[2] != tt.name {
					t.Errorf("got version=%s name=%s, want %s/%s", matches[1], matches[2], tt.version, tt.name)
				}
			} else if matches != nil {
				t.Errorf("expected %s not to match", tt.filename)
			}
		})
	}
}

func TestMigrationChecksumConsistency(t *testing.T) {
	content1 := []byte("CREATE TABLE test (id uuid);")
	content2 := []byte("CREATE TABLE test (id uuid);")
	content3 := []byte("CREATE TABLE different (id uuid);")

	if sha256.Sum256(content1) != sha256.Sum256(content2) {
		t.Error("same content should produce the same checksum")
	}
	if sha256.Sum256(content1) == sha256.Sum256(content3) {
		t.Error("different content should produce different checksums")
	}
}
