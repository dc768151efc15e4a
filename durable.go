package durable

import (
	"github.com/tidwall/gjson"
	"go.uber.org/zap"

	"github.com/wippyai/durable-transform/errors"
	"github.com/wippyai/durable-transform/internal/engine"
	"github.com/wippyai/durable-transform/js"
)

// Mode selects which pipeline a compilation unit goes through.
type Mode = engine.Mode

const (
	// ModeWorkflow rewrites directive-marked functions for durable execution.
	ModeWorkflow = engine.ModeWorkflow
	// ModeClient replaces workflow imports with invocation descriptors.
	ModeClient = engine.ModeClient
)

// ParseMode converts a configuration string ("workflow", "client") into a
// Mode. The empty string means ModeWorkflow.
func ParseMode(s string) (Mode, error) {
	return engine.ParseMode(s)
}

// ModuleMatcher determines if an import source names a workflow module.
//
// When a source matches in client mode, the whole import is replaced by
// invocation descriptors, one per imported binding.
type ModuleMatcher = engine.ModuleMatcher

// Warning is a non-fatal finding attached to a successful result.
type Warning = engine.Warning

// WorkflowSummary mirrors one emitted __workflowMeta export.
type WorkflowSummary = engine.WorkflowSummary

// Result is the outcome of one successful Transform.
type Result = engine.Result

// Config configures the durable-execution transformation.
type Config struct {
	// Mode selects the workflow or client pipeline. Zero value is
	// ModeWorkflow.
	Mode Mode
	// PackageName overrides the import source for the runtime adapter.
	// Empty means "@cgalceran/aws-durable".
	PackageName string
	// EnvPrefix overrides the prefix of the environment variables referenced
	// by client-mode descriptors. Empty means "WORKFLOW_".
	EnvPrefix string
	// WorkflowModules classifies import sources in client mode. Nil falls
	// back to NewRelativeMatcher: local project imports are assumed to be
	// workflow modules.
	WorkflowModules ModuleMatcher
}

// Transform applies the durable-execution transformation to one module.
//
// In workflow mode it inlines step functions into checkpointed closures at
// their call sites inside workflow bodies, rewrites the built-in special
// calls (invoke, sleep, waitForCallback) to runtime-API calls, wraps each
// workflow in the adapter and emits its metadata export. A unit with no
// directives passes through unchanged.
//
// In client mode it replaces imports from workflow modules with invocation
// descriptors and touches nothing else.
//
// The transform takes ownership of m; on error no partial output is
// produced. file is used in diagnostics only and may be empty.
func Transform(m *js.Module, file string, cfg Config) (*Result, error) {
	matcher := cfg.WorkflowModules
	if matcher == nil && cfg.Mode == ModeClient {
		matcher = NewRelativeMatcher()
	}

	eng, err := engine.New(engine.Config{
		Mode:            cfg.Mode,
		PackageName:     cfg.PackageName,
		EnvPrefix:       cfg.EnvPrefix,
		WorkflowModules: matcher,
	})
	if err != nil {
		return nil, err
	}
	return eng.Transform(m, file)
}

// ConfigFromJSON parses the bundler-plugin configuration document:
//
//	{
//	  "mode": "client",
//	  "packageName": "@cgalceran/aws-durable",
//	  "envPrefix": "WORKFLOW_",
//	  "workflowModules": ["./workflows", "@app/flows/*"]
//	}
//
// All fields are optional; absent fields keep their defaults. Entries in
// workflowModules ending in "*" match by prefix, the rest match exactly.
func ConfigFromJSON(data []byte) (Config, error) {
	var cfg Config
	if len(data) == 0 {
		return cfg, nil
	}
	if !gjson.ValidBytes(data) {
		return cfg, errors.InvalidConfig("configuration is not valid JSON")
	}
	doc := gjson.ParseBytes(data)

	mode, err := engine.ParseMode(doc.Get("mode").String())
	if err != nil {
		return cfg, err
	}
	cfg.Mode = mode
	cfg.PackageName = doc.Get("packageName").String()
	cfg.EnvPrefix = doc.Get("envPrefix").String()

	if mods := doc.Get("workflowModules"); mods.Exists() {
		if !mods.IsArray() {
			return cfg, errors.InvalidConfig("workflowModules must be an array of strings")
		}
		patterns := make([]string, 0, len(mods.Array()))
		for _, v := range mods.Array() {
			patterns = append(patterns, v.String())
		}
		cfg.WorkflowModules = NewPatternMatcher(patterns)
	}
	return cfg, nil
}

// SetLogger configures the package logger used for transform diagnostics.
// This must be called before any Transform calls.
func SetLogger(l *zap.Logger) {
	engine.SetLogger(l)
}
