package cmd

import (
	"bytes"
	"github.com/ValentinKolb/dFarm/lib/doc"
	"github.com/ValentinKolb/dFarm/lib/serializer"
	"path/filepath"
	"strings"
	"testing"
)

// execute runs the farm command line with args against the file farm in root
func execute(t *testing.T, root string, in string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	RootCmd.SetOut(&out)
	RootCmd.SetErr(&out)
	RootCmd.SetIn(strings.NewReader(in))
	RootCmd.SetArgs(append(args, "--backend", "file", "--root", root, "--hive", "users", "--log-level", "error"))
	err := RootCmd.Execute()
	return out.String(), err
}

func mustExecute(t *testing.T, root string, args ...string) string {
	t.Helper()
	out, err := execute(t, root, "", args...)
	if err != nil {
		t.Fatalf("farm %s failed: %v\n%s", strings.Join(args, " "), err, out)
	}
	return out
}

func expectOutput(t *testing.T, out string, want ...string) {
	t.Helper()
	for _, w := range want {
		if !strings.Contains(out, w) {
			t.Errorf("Expected output to contain %q, got:\n%s", w, out)
		}
	}
}

func TestCombAndCellCommands(t *testing.T) {
	root := filepath.Join(t.TempDir(), "farm")

	expectOutput(t, mustExecute(t, root, "comb", "create", "42"), "created successfully")
	expectOutput(t, mustExecute(t, root, "comb", "create", "7"), "created successfully")
	mustExecute(t, root, "comb", "attr", "42", "owner", "alice")

	out := mustExecute(t, root, "comb", "list", "@owner='alice'")
	if strings.TrimSpace(out) != "42" {
		t.Errorf("Expected only comb 42 to match, got %q", out)
	}
	out = mustExecute(t, root, "comb", "list")
	if ids := strings.Fields(out); len(ids) != 2 {
		t.Errorf("Expected combs 42 and 7, got %q", out)
	}

	expectOutput(t, mustExecute(t, root, "cell", "put", "42", "greeting", "hello"), "put successfully")
	expectOutput(t, mustExecute(t, root, "cell", "get", "42", "greeting"), "key=users/42/greeting", "found=true", "value=hello")
	expectOutput(t, mustExecute(t, root, "cell", "has", "42", "missing"), "exists=false")

	out = mustExecute(t, root, "cell", "edit", "42", "profile", "add:user", "attr:name=alice")
	expectOutput(t, out, "<user name='alice'/>")

	expectOutput(t, mustExecute(t, root, "cell", "ls", "42"), "greeting", "profile")
	expectOutput(t, mustExecute(t, root, "comb", "show", "42"), "@id", "@owner", "alice", "cells=", "greeting", "profile")
	expectOutput(t, mustExecute(t, root, "hives"), "users")

	expectOutput(t, mustExecute(t, root, "cell", "rm", "42", "greeting"), "removed successfully")
	expectOutput(t, mustExecute(t, root, "cell", "get", "42", "greeting"), "found=false")

	expectOutput(t, mustExecute(t, root, "comb", "delete", "7"), "deleted successfully")
	if out := mustExecute(t, root, "comb", "list"); strings.TrimSpace(out) != "42" {
		t.Errorf("Expected only comb 42 after delete, got %q", out)
	}
}

func TestDocumentFormats(t *testing.T) {
	root := filepath.Join(t.TempDir(), "farm")

	d := doc.NewWithRoot("settings")
	d.Root.SetAttr("theme", "dark")
	raw, err := serializer.NewJSONSerializer().Serialize(d)
	if err != nil {
		t.Fatalf("Serialize failed: %v", err)
	}

	out, err := execute(t, root, string(raw), "cell", "put-doc", "42", "settings", "-", "--format", "json")
	if err != nil {
		t.Fatalf("put-doc failed: %v\n%s", err, out)
	}
	out, err = execute(t, root, "", "cell", "doc", "42", "settings", "--format", "text")
	if err != nil {
		t.Fatalf("doc failed: %v\n%s", err, out)
	}
	expectOutput(t, out, "<settings theme='dark'/>")

	out, err = execute(t, root, "", "cell", "doc", "42", "settings", "--format", "yaml")
	if err != nil {
		t.Fatalf("doc failed: %v\n%s", err, out)
	}
	expectOutput(t, out, "theme", "dark")
}

func TestCommandErrors(t *testing.T) {
	root := filepath.Join(t.TempDir(), "farm")

	cases := [][]string{
		{"cell", "get", "42"},
		{"cell", "edit", "42", "profile", "jump:1"},
		{"comb", "create", "_reserved"},
		{"comb", "attr", "unknown", "owner", "alice"},
		{"comb", "list", "@owner="},
	}
	for _, args := range cases {
		if out, err := execute(t, root, "", args...); err == nil {
			t.Errorf("farm %s: expected an error, got:\n%s", strings.Join(args, " "), out)
		}
	}
}
