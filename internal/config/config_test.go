package config

import (
	"testing"

	"github.com/studiowebux/redis-nav/internal/protection"
)

func TestLoadMissingFileReturnsEmpty(t *testing.T) {
	f, err := Load("/nonexistent/path/config.toml")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if f.Profiles == nil {
		t.Fatal("expected non-nil empty profile map")
	}
}

func TestResolveDefaultsToLocalhost(t *testing.T) {
	f := &File{Profiles: map[string]Profile{}}
	r, err := Resolve(f, CLI{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.Addr != "127.0.0.1:6379" {
		t.Fatalf("expected default addr, got %s", r.Addr)
	}
	if len(r.Delimiters) != 1 || r.Delimiters[0] != ":" {
		t.Fatalf("expected default delimiter, got %v", r.Delimiters)
	}
}

func TestResolvePositionalURLWins(t *testing.T) {
	f := &File{Profiles: map[string]Profile{}}
	r, err := Resolve(f, CLI{Connection: "redis://example.com:7000", Host: "ignored", Port: 1111})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.Addr != "example.com:7000" {
		t.Fatalf("expected positional URL to win, got %s", r.Addr)
	}
}

func TestResolveProfileByPositionalName(t *testing.T) {
	f := &File{Profiles: map[string]Profile{
		"prod": {Host: "prod.internal", Port: 6380},
	}}
	r, err := Resolve(f, CLI{Connection: "prod", Host: "ignored", Port: 1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.Addr != "prod.internal:6380" {
		t.Fatalf("expected profile addr, got %s", r.Addr)
	}
}

func TestResolveUnknownProfileErrors(t *testing.T) {
	f := &File{Profiles: map[string]Profile{}}
	_, err := Resolve(f, CLI{Profile: "missing"})
	if err == nil {
		t.Fatal("expected error for unknown profile")
	}
}

func TestResolvePasswordPrecedence(t *testing.T) {
	t.Setenv("REDIS_PASSWORD", "env-pw")
	f := &File{Profiles: map[string]Profile{}}

	r, err := Resolve(f, CLI{Password: "cli-pw"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.Password != "cli-pw" {
		t.Fatalf("expected cli password to beat env, got %s", r.Password)
	}

	r, err = Resolve(f, CLI{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.Password != "env-pw" {
		t.Fatalf("expected env password fallback, got %s", r.Password)
	}
}

func TestResolveProfilePasswordBeatsEverything(t *testing.T) {
	t.Setenv("REDIS_PASSWORD", "env-pw")
	f := &File{Profiles: map[string]Profile{
		"prod": {Host: "prod.internal", Password: "profile-pw"},
	}}
	r, err := Resolve(f, CLI{Profile: "prod", Password: "cli-pw"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.Password != "profile-pw" {
		t.Fatalf("expected profile password to win, got %s", r.Password)
	}
}

func TestResolveProtectedNamespacesFromProfile(t *testing.T) {
	f := &File{Profiles: map[string]Profile{
		"prod": {
			Host: "prod.internal",
			ProtectedNamespaces: []ProtectedNamespaceSpec{
				{Prefix: "billing:", Level: "block"},
			},
		},
	}}
	r, err := Resolve(f, CLI{Profile: "prod"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(r.Namespaces) != 1 || r.Namespaces[0].Level != protection.Block {
		t.Fatalf("expected one Block namespace rule, got %+v", r.Namespaces)
	}
}

func TestResolveReadonlyFromEitherSource(t *testing.T) {
	f := &File{Profiles: map[string]Profile{
		"ro": {Host: "x", Readonly: true},
	}}
	r, err := Resolve(f, CLI{Profile: "ro"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !r.Readonly {
		t.Fatal("expected readonly true from profile")
	}

	r, err = Resolve(&File{Profiles: map[string]Profile{}}, CLI{Readonly: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !r.Readonly {
		t.Fatal("expected readonly true from cli flag")
	}
}
