package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/five82/ticktock/internal/state"
)

type cliEnv struct {
	config  string
	logFile string
}

func newCLIEnv(t *testing.T) cliEnv {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	t.Setenv("TICKTOCK_LOG_LEVEL", "")

	dir := t.TempDir()
	env := cliEnv{
		config:  filepath.Join(dir, "config.toml"),
		logFile: filepath.Join(dir, "ticktock.log"),
	}
	body := "[storage]\nbackend = \"sqlite\"\npath = \"" + filepath.Join(dir, "state.db") + "\"\n\n" +
		"[log]\nfile = \"" + env.logFile + "\"\n"
	if err := os.WriteFile(env.config, []byte(body), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return env
}

func (e cliEnv) run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCommand()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(append([]string{"--config", e.config}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func (e cliEnv) snapshot(t *testing.T) state.AppState {
	t.Helper()
	out, err := e.run(t, "show", "--json")
	if err != nil {
		t.Fatalf("show --json: %v", err)
	}
	var fields map[string]any
	if err := json.Unmarshal([]byte(out), &fields); err != nil {
		t.Fatalf("show --json is not JSON: %v\n%s", err, out)
	}
	if fields["version"] != float64(state.SchemaVersion) {
		t.Fatalf("version = %v, want %d", fields["version"], state.SchemaVersion)
	}
	st, err := state.Decode([]byte(out))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	return st
}

func TestShow_DefaultsWhenNothingStored(t *testing.T) {
	env := newCLIEnv(t)

	out, err := env.run(t, "show")
	if err != nil {
		t.Fatalf("show: %v", err)
	}
	for _, want := range []string{"TRAVELLER", "intro", "Big Picture", "not set", "Germany", "persistent"} {
		if !strings.Contains(out, want) {
			t.Fatalf("show output missing %q:\n%s", want, out)
		}
	}
}

func TestUpdate_PersistsAndRecomputesLifeExpectancy(t *testing.T) {
	env := newCLIEnv(t)

	out, err := env.run(t, "update", `{"name":"Ada","age":36,"country":"japan"}`)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if !strings.Contains(out, "Ada") {
		t.Fatalf("update output missing name:\n%s", out)
	}

	st := env.snapshot(t)
	if st.UserData.Name != "Ada" || st.UserData.Age == nil || *st.UserData.Age != 36 {
		t.Fatalf("UserData = %+v", st.UserData)
	}
	if st.UserData.LifeExpectancy <= 80 {
		t.Fatalf("LifeExpectancy = %v, want recomputed for Japan", st.UserData.LifeExpectancy)
	}
}

func TestUpdate_RejectsBadPatch(t *testing.T) {
	env := newCLIEnv(t)

	if _, err := env.run(t, "update", `{"shoeSize": 44}`); err == nil {
		t.Fatal("update accepted an unknown field")
	}
	if _, err := env.run(t, "update", `[1,2]`); err == nil {
		t.Fatal("update accepted a non-object")
	}
	if _, err := env.run(t, "update"); err == nil {
		t.Fatal("update without an argument should fail")
	}
}

func TestModeViewAndReset(t *testing.T) {
	env := newCLIEnv(t)

	if _, err := env.run(t, "mode", "dashboard"); err != nil {
		t.Fatalf("mode: %v", err)
	}
	out, err := env.run(t, "view", "Calendar")
	if err != nil {
		t.Fatalf("view: %v", err)
	}
	if strings.TrimSpace(out) != "View: Calendar" {
		t.Fatalf("view output = %q", out)
	}

	st := env.snapshot(t)
	if st.Mode != state.ModeDashboard || st.CurrentView != state.ViewCalendar {
		t.Fatalf("state = %s/%s, want dashboard/calendar", st.Mode, st.CurrentView)
	}

	if _, err := env.run(t, "mode", "sideways"); err == nil {
		t.Fatal("mode accepted an unknown value")
	}
	if _, err := env.run(t, "view", "daily"); err == nil {
		t.Fatal("view accepted an unknown value")
	}

	if _, err := env.run(t, "reset"); err != nil {
		t.Fatalf("reset: %v", err)
	}
	if st := env.snapshot(t); st.Mode != state.ModeIntro || st.CurrentView != state.ViewBigPicture {
		t.Fatalf("state after reset = %s/%s, want defaults", st.Mode, st.CurrentView)
	}
}

func TestEphemeral_DoesNotPersist(t *testing.T) {
	env := newCLIEnv(t)

	out, err := env.run(t, "--ephemeral", "mode", "dashboard")
	if err != nil {
		t.Fatalf("mode: %v", err)
	}
	if !strings.Contains(out, "dashboard") {
		t.Fatalf("mode output = %q", out)
	}
	if st := env.snapshot(t); st.Mode != state.ModeIntro {
		t.Fatalf("Mode = %q after ephemeral run, want intro", st.Mode)
	}
}

func TestRoot_NonTerminalPrintsSummary(t *testing.T) {
	env := newCLIEnv(t)

	out, err := env.run(t)
	if err != nil {
		t.Fatalf("root: %v", err)
	}
	if !strings.Contains(out, "Name:") || !strings.Contains(out, "Storage:") {
		t.Fatalf("root output is not a summary:\n%s", out)
	}
}

func TestLogs_TailAndFilter(t *testing.T) {
	env := newCLIEnv(t)

	// Any command opens the log file; write our own lines afterwards.
	if _, err := env.run(t, "show"); err != nil {
		t.Fatalf("show: %v", err)
	}
	lines := strings.Join([]string{
		`level=info msg="one"`,
		`level=warning msg="two"`,
		`level=debug msg="three"`,
		`level=error msg="four"`,
	}, "\n") + "\n"
	if err := os.WriteFile(env.logFile, []byte(lines), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	out, err := env.run(t, "logs", "-n", "3")
	if err != nil {
		t.Fatalf("logs: %v", err)
	}
	if strings.Contains(out, `msg="one"`) || !strings.Contains(out, `msg="three"`) {
		t.Fatalf("logs -n 3 output:\n%s", out)
	}

	out, err = env.run(t, "logs", "-n", "0", "--level", "warn")
	if err != nil {
		t.Fatalf("logs --level: %v", err)
	}
	got := strings.Split(strings.TrimSpace(out), "\n")
	if len(got) != 2 || !strings.Contains(got[0], "two") || !strings.Contains(got[1], "four") {
		t.Fatalf("logs --level warn = %q", got)
	}
}

func TestShow_YAML(t *testing.T) {
	env := newCLIEnv(t)
	if _, err := env.run(t, "update", `{"name":"Ada","age":36,"deadline":{"name":"Ship","date":"2030-01-02","time":"09:00","startDate":"2029-12-01"}}`); err != nil {
		t.Fatalf("update: %v", err)
	}

	out, err := env.run(t, "show", "--yaml")
	if err != nil {
		t.Fatalf("show --yaml: %v", err)
	}
	if strings.Contains(out, "{") {
		t.Fatalf("show --yaml printed flow style:\n%s", out)
	}

	var doc struct {
		Mode     string `yaml:"mode"`
		UserData struct {
			Name     string `yaml:"name"`
			Age      int    `yaml:"age"`
			Deadline struct {
				Date string `yaml:"date"`
				Time string `yaml:"time"`
			} `yaml:"deadline"`
		} `yaml:"userData"`
	}
	if err := yaml.Unmarshal([]byte(out), &doc); err != nil {
		t.Fatalf("show --yaml is not YAML: %v\n%s", err, out)
	}
	if doc.Mode != "intro" || doc.UserData.Name != "Ada" || doc.UserData.Age != 36 {
		t.Fatalf("decoded %+v", doc)
	}
	if doc.UserData.Deadline.Date != "2030-01-02" || doc.UserData.Deadline.Time != "09:00" {
		t.Fatalf("deadline = %+v", doc.UserData.Deadline)
	}
}

func TestShow_FormatsAreExclusive(t *testing.T) {
	env := newCLIEnv(t)
	if _, err := env.run(t, "show", "--json", "--yaml"); err == nil {
		t.Fatal("show --json --yaml succeeded, want error")
	}
}
