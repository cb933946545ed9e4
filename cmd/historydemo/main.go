// cmd/historydemo/main.go drives the history core through a scripted
// capture/undo/redo sequence, the non-interactive equivalent of the
// teacher's terminal UI loop.
package main

import (
	stlog "log"
	"os"

	"github.com/inkstage/historycore/internal/appstate"
	"github.com/inkstage/historycore/internal/config"
	"github.com/inkstage/historycore/internal/history"
	"github.com/inkstage/historycore/internal/logger"
	"github.com/inkstage/historycore/internal/scene"
	"github.com/inkstage/historycore/internal/store"
)

func main() {
	flags := &config.Flags{}
	flags.ParseFlags()

	cfg, err := config.LoadConfig(strOrEmpty(flags.ConfigFilePath), flags)
	if err != nil {
		stlog.Fatalf("failed to load config: %v", err)
	}

	logFile := os.Stderr
	if p := cfg.Logger.LogFilePath; p != "" && p != "-" {
		f, err := os.OpenFile(p, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			stlog.Fatalf("failed to open log file: %v", err)
		}
		defer f.Close()
		logFile = f
	}
	logger.InitWithConfig(cfg.Logger, logFile)

	logger.Infof("starting historydemo")

	s := store.New()
	h := history.New(cfg.History.SkipInvisibleEntries)

	unsubscribe := s.Listen(func(inc store.Increment) error {
		h.Record(inc.Elements, inc.AppState)
		logger.Debugf("recorded increment %s", inc.ID)
		return nil
	})
	defer unsubscribe()

	s.ResumeRecording()

	rectID := scene.NewElementID()
	elements := scene.New()
	appState := appstate.ObservedAppState{Name: "untitled"}

	if err := s.Capture(elements, appState, nil, ""); err != nil {
		logger.Fatalf("initial capture failed: %v", err)
	}

	rect := scene.DrawingElement{
		ID:           rectID,
		VersionNonce: 1,
		Props: map[string]any{
			"type":   "rectangle",
			"x":      10,
			"y":      10,
			"width":  100,
			"height": 50,
		},
	}
	elements = elements.WithSet(rect)
	appState.SelectedElementIDs = map[string]bool{string(rectID): true}

	s.ResumeRecording()
	if err := s.Capture(elements, appState, nil, ""); err != nil {
		logger.Fatalf("capture after add failed: %v", err)
	}
	logger.Infof("added rectangle %s", rectID)

	if entry, err := h.UndoOnce(elements); err != nil {
		logger.Fatalf("undo failed: %v", err)
	} else if entry != nil {
		result, _ := entry.ApplyTo(elements, appState)
		elements = result.Value
		logger.Infof("undo applied, elements remaining: %d", elements.Len())
	}

	if entry, err := h.RedoOnce(elements); err != nil {
		logger.Fatalf("redo failed: %v", err)
	} else if entry != nil {
		result, _ := entry.ApplyTo(elements, appState)
		elements = result.Value
		logger.Infof("redo applied, elements remaining: %d", elements.Len())
	}

	logger.Infof("historydemo finished")
}

func strOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
