package cli

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/Maksym-Tykhonenko/ProtouchKeyCycleOlya/internal/config"
	applog "github.com/Maksym-Tykhonenko/ProtouchKeyCycleOlya/internal/log"
	"github.com/Maksym-Tykhonenko/ProtouchKeyCycleOlya/internal/storage"
	"github.com/jmhodges/clock"
)

var loadConfigFn = config.Load

func loadRuntimeConfig(deps commandDeps) (config.Config, error) {
	loadOpts := config.LoadOptions{}
	if deps.globals != nil {
		if configPath := strings.TrimSpace(deps.globals.ConfigPath); configPath != "" {
			loadOpts.ConfigPath = configPath
		}
		if dataPath := strings.TrimSpace(deps.globals.DataPath); dataPath != "" {
			loadOpts.Flags.StoragePath = &dataPath
		}
	}
	return loadConfigFn(loadOpts)
}

// withStore resolves config, builds the logger, opens the store and hands it
// to fn. Every store-backed command runs through here.
func withStore(cmdCtx context.Context, deps commandDeps, fn func(context.Context, *storage.Store, config.Config) error) error {
	cfg, err := loadRuntimeConfig(deps)
	if err != nil {
		return mapCommandError(fmt.Errorf("load config: %w", err))
	}

	logger, err := applog.Setup(applog.Options{
		Level:     cfg.Logging.Level,
		File:      cfg.Logging.File,
		MaxSizeMB: cfg.Logging.MaxSizeMB,
		MaxFiles:  cfg.Logging.MaxFiles,
	})
	if err != nil {
		return mapCommandError(fmt.Errorf("setup logging: %w", err))
	}

	store, err := storage.Open(cfg.Storage.Path, clock.New(), logger)
	if err != nil {
		return mapCommandError(fmt.Errorf("open storage: %w", err))
	}
	defer store.Close()

	return mapCommandError(fn(cmdCtx, store, cfg))
}

// confirm gates destructive commands. The repositories never ask; the
// presentation layer owns the question.
func confirm(deps commandDeps, prompt string) (bool, error) {
	if deps.globals != nil && deps.globals.Yes {
		return true, nil
	}
	if _, err := fmt.Fprintf(deps.out, "%s [y/N]: ", prompt); err != nil {
		return false, err
	}

	reader := bufio.NewReader(deps.in)
	line, err := reader.ReadString('\n')
	if err != nil && err != io.EOF {
		return false, fmt.Errorf("read confirmation: %w", err)
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes", nil
}

func printJSON(w io.Writer, value any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(value)
}

func boolToState(v bool, yes, no string) string {
	if v {
		return yes
	}
	return no
}
