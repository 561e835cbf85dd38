package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/trackast/trackast/analytics"
	"github.com/trackast/trackast/callgraph"
	_ "github.com/trackast/trackast/callgraph/adapters/javascript"
	_ "github.com/trackast/trackast/callgraph/adapters/python"
	_ "github.com/trackast/trackast/callgraph/adapters/rust"
	"github.com/trackast/trackast/discovery"
	"github.com/trackast/trackast/render"
)

var (
	analyzeRoot        string
	analyzeModule       string
	analyzeOutput       string
	analyzeFormat       string
	analyzeLanguage     string
	analyzeNoDiscover   bool
	analyzeEntryPoints  []string
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [input file]",
	Short: "Build a call graph from a source file and report reachability",
	Args:  cobra.ExactArgs(1),
	RunE:  runAnalyze,
}

func init() {
	analyzeCmd.Flags().StringVarP(&analyzeRoot, "root", "r", "", "root directory for module resolution (defaults to the input file's directory)")
	analyzeCmd.Flags().StringVarP(&analyzeModule, "module", "m", "", "module path for the input file (auto-detected if not specified)")
	analyzeCmd.Flags().StringVarP(&analyzeOutput, "output", "o", "", "output file path (defaults to stdout)")
	analyzeCmd.Flags().StringVarP(&analyzeFormat, "format", "f", "json", "output format: json or dot")
	analyzeCmd.Flags().StringVarP(&analyzeLanguage, "language", "l", "", "language (auto-detected from file extension if not specified)")
	analyzeCmd.Flags().BoolVar(&analyzeNoDiscover, "no-discover", false, "disable automatic dependency discovery, analyzing only the given file")
	analyzeCmd.Flags().StringArrayVar(&analyzeEntryPoints, "entry-points", nil, "entry point function id(s): 'module::function' (fuzzy) or 'module::function::signature' (exact)")
	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(_ *cobra.Command, args []string) error {
	inputPath := args[0]
	analytics.ReportEvent(analytics.AnalyzeStarted)

	if cfg, err := LoadConfig(".trackastrc.yaml"); err == nil {
		cfg.ApplyDefaults()
	}

	if _, err := os.Stat(inputPath); err != nil {
		analytics.ReportEvent(analytics.AnalyzeFailed)
		return fmt.Errorf("input file does not exist: %s", inputPath)
	}

	if analyzeFormat != "json" && analyzeFormat != "dot" {
		return fmt.Errorf("unknown format %q: use 'json' or 'dot'", analyzeFormat)
	}

	language, translator, err := detectLanguage(analyzeLanguage, inputPath)
	if err != nil {
		analytics.ReportEvent(analytics.AnalyzeFailed)
		return err
	}

	root := analyzeRoot
	if root == "" {
		root = filepath.Dir(inputPath)
	}

	ast, err := loadAST(translator, inputPath, root, analyzeModule, analyzeNoDiscover)
	if err != nil {
		analytics.ReportEvent(analytics.AnalyzeFailed)
		return err
	}

	builder := callgraph.NewCallGraphBuilder()
	if err := builder.AddAST(ast); err != nil {
		analytics.ReportEvent(analytics.AnalyzeFailed)
		return err
	}

	output, err := buildOutput(builder, language, analyzeEntryPoints)
	if err != nil {
		analytics.ReportEvent(analytics.AnalyzeFailed)
		return err
	}

	if analyzeOutput != "" {
		if err := os.WriteFile(analyzeOutput, []byte(output), 0o644); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		fmt.Fprintf(os.Stderr, "output written to %s\n", analyzeOutput)
	} else {
		fmt.Println(output)
	}

	analytics.ReportEvent(analytics.AnalyzeCompleted)
	return nil
}

func detectLanguage(explicit, inputPath string) (string, callgraph.Translator, error) {
	if explicit != "" {
		name := strings.ToLower(explicit)
		switch name {
		case "rust", "rs":
			name = "rust"
		case "python", "py":
			name = "python"
		case "javascript", "js", "typescript", "ts":
			name = "javascript"
		}
		t, ok := callgraph.DefaultRegistry.GetByName(name)
		if !ok {
			return "", nil, fmt.Errorf("unknown language %q", explicit)
		}
		return t.Name(), t, nil
	}

	ext := strings.TrimPrefix(filepath.Ext(inputPath), ".")
	t, ok := callgraph.DefaultRegistry.GetByExtension(ext)
	if !ok {
		return "", nil, fmt.Errorf("could not detect language from file extension %q; use --language to specify", ext)
	}
	return t.Name(), t, nil
}

func loadAST(translator callgraph.Translator, inputPath, root, module string, noDiscover bool) (*callgraph.AbstractAST, error) {
	if noDiscover {
		fmt.Fprintln(os.Stderr, "loading single file (dependency discovery disabled)")
		modulePath := module
		if modulePath == "" {
			modulePath = callgraph.DeriveModulePath(inputPath)
		}
		source, err := os.ReadFile(inputPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", inputPath, err)
		}
		return translator.Translate(source, modulePath)
	}

	fmt.Fprintln(os.Stderr, "auto-discovering module dependencies...")
	walker := discovery.NewWalker(callgraph.DefaultRegistry)
	return walker.LoadAll(root, inputPath)
}

func buildOutput(builder *callgraph.CallGraphBuilder, language string, entryPointSpecs []string) (string, error) {
	if len(entryPointSpecs) == 0 {
		graph := builder.Build()
		switch analyzeFormat {
		case "json":
			return render.ToSummaryJSON(language, graph)
		default:
			return render.ToDOT(graph), nil
		}
	}

	graph := builder.Build()
	fmt.Fprintln(os.Stderr, "resolving entry points...")
	entryIDs, err := ResolveEntryPoints(entryPointSpecs, graph)
	if err != nil {
		return "", err
	}
	fmt.Fprintf(os.Stderr, "using %d entry point(s)\n", len(entryIDs))

	traversal := callgraph.TraversalFromEntries(graph, entryIDs)
	fmt.Fprintf(os.Stderr, "reachable functions from entry points: %d\n", len(traversal.Reachable))
	analytics.ReportEventWithProperties(analytics.EntryPointsResolved, map[string]interface{}{
		"entry_point_count": len(entryIDs),
		"reachable_count":   len(traversal.Reachable),
	})

	switch analyzeFormat {
	case "json":
		return render.ToReachabilityJSON(language, graph, entryPointSpecs, traversal)
	default:
		return render.ToDOT(render.ReachableSubgraph(graph, traversal.Reachable)), nil
	}
}
