package keyring

import (
	"errors"
	"testing"

	gokeyring "github.com/zalando/go-keyring"

	"github.com/julianstephens/onefocus/internal/constants"
)

func TestSetAndGetConnectionString(t *testing.T) {
	gokeyring.MockInit()

	connStr := "postgres://onefocus@localhost:5432/onefocus?sslmode=disable"
	if err := SetConnectionString("  " + connStr + "\n"); err != nil {
		t.Fatalf("SetConnectionString() failed: %v", err)
	}

	got, err := GetConnectionString()
	if err != nil {
		t.Fatalf("GetConnectionString() failed: %v", err)
	}
	if got != connStr {
		t.Errorf("GetConnectionString() = %q, want %q", got, connStr)
	}
}

func TestSetConnectionStringEmpty(t *testing.T) {
	gokeyring.MockInit()

	if err := SetConnectionString("   "); err == nil {
		t.Error("SetConnectionString with blank input should return an error")
	}
}

func TestDeleteConnectionString(t *testing.T) {
	gokeyring.MockInit()

	if err := DeleteConnectionString(); !errors.Is(err, ErrNotFound) {
		t.Errorf("DeleteConnectionString() on empty keyring error = %v, want %v", err, ErrNotFound)
	}

	if err := SetConnectionString("postgres://onefocus@localhost/onefocus"); err != nil {
		t.Fatalf("SetConnectionString() failed: %v", err)
	}
	if err := DeleteConnectionString(); err != nil {
		t.Fatalf("DeleteConnectionString() failed: %v", err)
	}
	if _, err := GetConnectionString(); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetConnectionString() after delete error = %v, want %v", err, ErrNotFound)
	}
}

func TestIsAvailable(t *testing.T) {
	gokeyring.MockInit()

	if !IsAvailable() {
		t.Error("IsAvailable() = false with the mock keyring")
	}
}

func TestResolveConnectionString(t *testing.T) {
	gokeyring.MockInit()
	t.Setenv(constants.EnvDBConnection, "")

	got, src, err := ResolveConnectionString()
	if err != nil || got != "" || src != SourceNone {
		t.Errorf("empty resolve = %q, %q, %v", got, src, err)
	}

	if err := SetConnectionString("postgres://keyring@localhost/onefocus"); err != nil {
		t.Fatal(err)
	}
	got, src, _ = ResolveConnectionString()
	if got != "postgres://keyring@localhost/onefocus" || src != SourceKeyring {
		t.Errorf("keyring resolve = %q, %q", got, src)
	}

	t.Setenv(constants.EnvDBConnection, "postgres://env@localhost/onefocus")
	got, src, _ = ResolveConnectionString()
	if got != "postgres://env@localhost/onefocus" || src != SourceEnv {
		t.Errorf("env resolve = %q, %q", got, src)
	}
}
