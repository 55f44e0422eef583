package config

import (
	"errors"
	"fmt"

	"groupscout/internal/core"
)

// Validate checks the structural validity of a Config. It verifies the
// version field, ensures modules are present, checks that all referenced
// module IDs exist in the registry, and enforces that Configurable modules
// have a config entry.
func Validate(cfg *Config) error {
	var errs []error

	if cfg.Version == "" {
		errs = append(errs, errors.New("config: version field is required"))
	} else if cfg.Version != "1" {
		errs = append(errs, fmt.Errorf("config: unsupported version %q (supported: \"1\")", cfg.Version))
	}

	if len(cfg.Modules) == 0 {
		errs = append(errs, errors.New("config: at least one module must be configured"))
	}

	for id := range cfg.Modules {
		if _, ok := core.GetModule(id); !ok {
			errs = append(errs, fmt.Errorf("config: unknown module %q", id))
		}
	}

	// Strict check: registered Configurable modules must have a config entry.
	for _, info := range core.GetModules() {
		mod := info.New()
		if _, ok := mod.(core.Configurable); ok {
			if _, exists := cfg.Modules[string(info.ID)]; !exists {
				errs = append(errs, fmt.Errorf("config: module %q requires configuration but has no entry", info.ID))
			}
		}
	}

	errs = append(errs, validateScheduled(cfg.Scheduled)...)

	return errors.Join(errs...)
}

// validateScheduled checks the scheduled-run entries: every job needs a name,
// a cron expression, at least one target, and a chat to report to.
func validateScheduled(jobs []ScheduledRun) []error {
	var errs []error
	seen := make(map[string]struct{}, len(jobs))

	for i, j := range jobs {
		if j.Name == "" {
			errs = append(errs, fmt.Errorf("config: scheduled[%d]: name is required", i))
		} else if _, dup := seen[j.Name]; dup {
			errs = append(errs, fmt.Errorf("config: scheduled[%d]: duplicate name %q", i, j.Name))
		} else {
			seen[j.Name] = struct{}{}
		}
		if j.Schedule == "" {
			errs = append(errs, fmt.Errorf("config: scheduled[%d]: schedule is required", i))
		}
		if len(j.Targets) == 0 {
			errs = append(errs, fmt.Errorf("config: scheduled[%d]: at least one target is required", i))
		}
		if j.ReportChat == 0 {
			errs = append(errs, fmt.Errorf("config: scheduled[%d]: report_chat is required", i))
		}
	}
	return errs
}
