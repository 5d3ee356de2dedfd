package cli

import (
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

// buildBinary compiles the solatku binary to a temp directory for testing.
func buildBinary(t *testing.T, ldflags string) string {
	t.Helper()
	binPath := filepath.Join(t.TempDir(), "solatku")

	args := []string{"build"}
	if ldflags != "" {
		args = append(args, "-ldflags", ldflags)
	}
	args = append(args, "-o", binPath, "../../cmd/solatku")

	cmd := exec.Command("go", args...)
	if out, err := cmd.CombinedOutput(); err != nil {
		t.Fatalf("build failed: %v\n%s", err, out)
	}
	return binPath
}

// TestVersionFlag verifies that --version prints the version string.
func TestVersionFlag(t *testing.T) {
	binPath := buildBinary(t, "-X main.version=v1.2.3-test")

	out, err := exec.Command(binPath, "--version").Output()
	if err != nil {
		t.Fatalf("--version failed: %v", err)
	}

	got := strings.TrimSpace(string(out))
	want := "solatku version v1.2.3-test"
	if got != want {
		t.Errorf("--version = %q, want %q", got, want)
	}
}

// TestHelpFlag verifies that --help shows the expected subcommands.
func TestHelpFlag(t *testing.T) {
	binPath := buildBinary(t, "")

	out, err := exec.Command(binPath, "--help").Output()
	if err != nil {
		t.Fatalf("--help failed: %v", err)
	}

	output := string(out)

	expectedSubcommands := []string{
		"next",
		"watch",
		"month",
		"zones",
		"hijri",
		"theme",
		"config",
	}
	for _, sub := range expectedSubcommands {
		if !strings.Contains(output, sub) {
			t.Errorf("--help output missing subcommand %q", sub)
		}
	}
}

// TestConfigPath verifies 'config path' prints a path without touching the network.
func TestConfigPath(t *testing.T) {
	binPath := buildBinary(t, "")

	out, err := exec.Command(binPath, "config", "path").Output()
	if err != nil {
		t.Fatalf("config path failed: %v", err)
	}

	got := strings.TrimSpace(string(out))
	if !strings.HasSuffix(got, filepath.Join("solatku", "config.json")) {
		t.Errorf("config path = %q, want .../solatku/config.json", got)
	}
}

// TestHijriSubcommand verifies offline Gregorian-to-Hijri conversion.
func TestHijriSubcommand(t *testing.T) {
	binPath := buildBinary(t, "")

	out, err := exec.Command(binPath, "hijri", "2024-09-01").Output()
	if err != nil {
		t.Fatalf("hijri failed: %v", err)
	}

	got := strings.TrimSpace(string(out))
	want := "27 Safar 1446H"
	if got != want {
		t.Errorf("hijri 2024-09-01 = %q, want %q", got, want)
	}
}
