// Package commands registers the two host-bindable undo/redo commands
// against a minimal command registry, the same registration idiom the
// teacher editor uses for its own built-in commands (RegisterCommand(name,
// func([]string) error) error), generalized from theme commands to
// history commands gated by stack-empty state.
package commands

import (
	"github.com/inkstage/historycore/internal/change"
	"github.com/inkstage/historycore/internal/history"
	"github.com/inkstage/historycore/internal/logger"
	"github.com/inkstage/historycore/internal/scene"
)

// Registry is the subset of the host's command system this package needs.
type Registry interface {
	RegisterCommand(name string, run func(args []string) error) error
}

// LiveElements returns the current elements collection, called each time a
// command runs so undo/redo always rebase against fresh state.
type LiveElements func() scene.ElementsMap

// Apply is invoked with the entry an undo/redo command produced, so the
// host can commit it to the live editor.
type Apply func(change.HistoryEntry)

// RegisterHistoryCommands registers "undo" and "redo" against reg. Each
// command is a no-op (and returns nil) when its stack is empty, mirroring
// the stack-empty gating the host uses to disable the bound key.
func RegisterHistoryCommands(reg Registry, h *history.History, live LiveElements, apply Apply) {
	undo := func(args []string) error {
		if h.IsUndoStackEmpty() {
			return nil
		}
		entry, err := h.UndoOnce(live())
		if err != nil {
			return err
		}
		if entry != nil {
			apply(*entry)
		}
		return nil
	}
	redo := func(args []string) error {
		if h.IsRedoStackEmpty() {
			return nil
		}
		entry, err := h.RedoOnce(live())
		if err != nil {
			return err
		}
		if entry != nil {
			apply(*entry)
		}
		return nil
	}

	if err := reg.RegisterCommand("undo", undo); err != nil {
		logger.Warnf("commands: failed to register 'undo': %v", err)
	}
	if err := reg.RegisterCommand("redo", redo); err != nil {
		logger.Warnf("commands: failed to register 'redo': %v", err)
	}
}

// UndoEnabled reports whether the undo command should currently be enabled.
func UndoEnabled(h *history.History) bool {
	return !h.IsUndoStackEmpty()
}

// RedoEnabled reports whether the redo command should currently be enabled.
func RedoEnabled(h *history.History) bool {
	return !h.IsRedoStackEmpty()
}
