package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/term"

	durable "github.com/wippyai/durable-transform"
	"github.com/wippyai/durable-transform/estree"
	"github.com/wippyai/durable-transform/js"
)

func main() {
	var (
		inFile      = flag.String("in", "", "Path to ESTree JSON file (\"-\" for stdin)")
		mode        = flag.String("mode", "workflow", "Transform mode: workflow or client")
		pkgName     = flag.String("package", "", "Runtime adapter package name")
		envPrefix   = flag.String("env-prefix", "", "Environment variable prefix for client descriptors")
		wfModules   = flag.String("workflow-modules", "", "Workflow module patterns for client mode (comma-separated, \"*\" suffix matches prefixes)")
		emitJSON    = flag.Bool("json", false, "Emit transformed ESTree JSON instead of source")
		showMeta    = flag.Bool("meta", false, "Print workflow metadata and exit")
		verbose     = flag.Bool("v", false, "Verbose transform logging")
		interactive = flag.Bool("i", false, "Interactive mode with before/after view")
	)
	flag.Parse()

	if *inFile == "" {
		fmt.Fprintln(os.Stderr, "Usage: durable -in <file.json> [-mode workflow|client] [-package name] [-env-prefix P]")
		fmt.Fprintln(os.Stderr, "       durable -in <file.json> -mode client -workflow-modules ./workflows/*")
		fmt.Fprintln(os.Stderr, "       durable -in <file.json> -i  (interactive mode)")
		os.Exit(1)
	}

	if *verbose {
		logger, err := zap.NewDevelopment()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		defer logger.Sync()
		durable.SetLogger(logger)
	}

	cfg, err := buildConfig(*mode, *pkgName, *envPrefix, *wfModules)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if *interactive {
		if !term.IsTerminal(int(os.Stdout.Fd())) {
			fmt.Fprintln(os.Stderr, "Error: interactive mode requires a terminal")
			os.Exit(1)
		}
		if err := runInteractive(*inFile, cfg); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if err := run(*inFile, cfg, *emitJSON, *showMeta); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func buildConfig(mode, pkgName, envPrefix, wfModules string) (durable.Config, error) {
	m, err := durable.ParseMode(mode)
	if err != nil {
		return durable.Config{}, err
	}
	cfg := durable.Config{
		Mode:        m,
		PackageName: pkgName,
		EnvPrefix:   envPrefix,
	}
	if wfModules != "" {
		var patterns []string
		for _, p := range strings.Split(wfModules, ",") {
			if p = strings.TrimSpace(p); p != "" {
				patterns = append(patterns, p)
			}
		}
		cfg.WorkflowModules = durable.NewPatternMatcher(patterns)
	}
	return cfg, nil
}

func decodeFile(inFile string) (*js.Module, error) {
	var (
		data []byte
		err  error
	)
	if inFile == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(inFile)
	}
	if err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}

	module, err := estree.DecodeModule(data)
	if err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	return module, nil
}

func transformFile(inFile string, cfg durable.Config) (*durable.Result, error) {
	module, err := decodeFile(inFile)
	if err != nil {
		return nil, err
	}
	return durable.Transform(module, inFile, cfg)
}

func run(inFile string, cfg durable.Config, emitJSON, showMeta bool) error {
	result, err := transformFile(inFile, cfg)
	if err != nil {
		return err
	}

	for _, w := range result.Warnings {
		fmt.Fprintf(os.Stderr, "warning: %s: %s\n", w.Kind, w.Detail)
	}

	if showMeta {
		if len(result.Workflows) == 0 {
			fmt.Println("No workflows found.")
			return nil
		}
		for _, wf := range result.Workflows {
			fmt.Printf("%s\n", wf.Name)
			for _, step := range wf.Steps {
				fmt.Printf("  step %s\n", step)
			}
		}
		return nil
	}

	if emitJSON {
		data, err := estree.EncodeModule(result.Module)
		if err != nil {
			return err
		}
		os.Stdout.Write(data)
		fmt.Println()
		return nil
	}

	fmt.Print(js.PrintModule(result.Module))
	return nil
}
