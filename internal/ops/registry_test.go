/*
Copyright © 2025 3 Leaps (hello@3leaps.net and https://3leaps.net)
*/
package ops

import (
	"testing"

	"github.com/spf13/cobra"
)

func newTestRegistry() *Registry {
	return &Registry{
		commands:   make(map[string]*CommandRegistration),
		groupIndex: make(map[CommandGroup][]*CommandRegistration),
	}
}

// TestRegistry_BasicRegistration tests basic command registration functionality
func TestRegistry_BasicRegistration(t *testing.T) {
	registry := newTestRegistry()

	testCmd := &cobra.Command{
		Use:   "archive",
		Short: "Archive unreferenced entries",
	}

	if err := registry.Register("archive", GroupCurate, testCmd, "Archive unreferenced entries"); err != nil {
		t.Fatalf("registration failed: %v", err)
	}

	cmd, exists := registry.GetCommand("archive")
	if !exists {
		t.Fatal("Expected command to exist after registration")
	}
	if cmd.Name != "archive" {
		t.Errorf("Expected command name 'archive', got '%s'", cmd.Name)
	}
	if cmd.Group != GroupCurate {
		t.Errorf("Expected command group 'curate', got '%s'", cmd.Group)
	}
	if cmd.Command != testCmd {
		t.Error("Expected command object to match registered command")
	}
}

// TestRegistry_DuplicateRegistration tests handling of duplicate command registration
func TestRegistry_DuplicateRegistration(t *testing.T) {
	registry := newTestRegistry()

	testCmd1 := &cobra.Command{Use: "purge", Short: "First"}
	testCmd2 := &cobra.Command{Use: "purge", Short: "Second"}

	if err := registry.Register("purge", GroupCurate, testCmd1, "First"); err != nil {
		t.Fatalf("Expected first registration to succeed, got error: %v", err)
	}

	err := registry.Register("purge", GroupSupport, testCmd2, "Second")
	if err == nil {
		t.Fatal("Expected duplicate registration to fail")
	}
	if err.Error() != "command purge already registered" {
		t.Errorf("unexpected error: %v", err)
	}

	cmd, _ := registry.GetCommand("purge")
	if cmd.Command != testCmd1 {
		t.Error("Expected original command to survive duplicate registration")
	}
}

// TestRegistry_GroupIndex tests group-based retrieval
func TestRegistry_GroupIndex(t *testing.T) {
	registry := newTestRegistry()

	mutating := []string{"archive", "purge", "prefix", "organize", "unify", "assign"}
	for _, name := range mutating {
		cmd := &cobra.Command{Use: name}
		if err := registry.Register(name, GroupCurate, cmd, name); err != nil {
			t.Fatalf("register %s: %v", name, err)
		}
	}
	if err := registry.Register("report", GroupReport, &cobra.Command{Use: "report"}, "report"); err != nil {
		t.Fatalf("register report: %v", err)
	}
	if err := registry.Register("version", GroupSupport, &cobra.Command{Use: "version"}, "version"); err != nil {
		t.Fatalf("register version: %v", err)
	}

	curate := registry.GetCommandsByGroup(GroupCurate)
	if len(curate) != len(mutating) {
		t.Errorf("Expected %d curate commands, got %d", len(mutating), len(curate))
	}
	// Registration order is preserved within a group.
	for i, reg := range curate {
		if reg.Name != mutating[i] {
			t.Errorf("curate[%d] = %s, want %s", i, reg.Name, mutating[i])
		}
	}

	groups := registry.ListGroups()
	if groups[GroupCurate] != len(mutating) || groups[GroupReport] != 1 || groups[GroupSupport] != 1 {
		t.Errorf("unexpected group counts: %v", groups)
	}

	if len(registry.GetAllCommands()) != len(mutating)+2 {
		t.Errorf("Expected %d total commands", len(mutating)+2)
	}
}
