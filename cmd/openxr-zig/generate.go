package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/zigadel/openxr-zig/internal/diag"
	"github.com/zigadel/openxr-zig/internal/genpipeline"
	"github.com/zigadel/openxr-zig/internal/source"
	"github.com/zigadel/openxr-zig/internal/ui"
)

var generateOut string

func init() {
	generateCmd.Flags().StringVarP(&generateOut, "out", "o", "", "output path (default from openxr.toml, else stdout)")
}

var generateCmd = &cobra.Command{
	Use:   "generate [registry.xml]",
	Short: "Generate Zig bindings from a registry document",
	Long:  `generate parses the machine-readable registry, resolves the type graph, lowers commands and emits one Zig source file`,
	Args:  cobra.MaximumNArgs(1),
	RunE:  runGenerate,
}

func runGenerate(cmd *cobra.Command, args []string) error {
	useColor, err := applyColorMode(cmd)
	if err != nil {
		return err
	}
	quiet, err := cmd.Flags().GetBool("quiet")
	if err != nil {
		return err
	}
	showTimings, err := cmd.Flags().GetBool("timings")
	if err != nil {
		return err
	}
	maxDiags, err := cmd.Flags().GetInt("max-diagnostics")
	if err != nil {
		return err
	}

	cleanup, err := setupProfiling(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	registryPath, outPath, extraTags, err := resolveGenerateTarget(args)
	if err != nil {
		return err
	}

	doc, err := source.Load(registryPath)
	if err != nil {
		return fmt.Errorf("failed to read registry: %w", err)
	}

	res, genErr := genpipeline.Generate(cmd.Context(), &genpipeline.Request{
		Document:       doc,
		MaxDiagnostics: maxDiags,
		ExtraTags:      extraTags,
	})
	printDiagnostics(res.Bag, doc)
	if genErr != nil {
		return genErr
	}

	if err := writeOutput(outPath, res.Source); err != nil {
		return err
	}

	if !quiet {
		summary := ui.NewSummary(doc.Name, summaryWidth(), useColor)
		fmt.Fprint(os.Stderr, summary.Render(res.Timings, "", ui.StatsFrom(res.Registry, res.Source)))
	}
	if showTimings {
		printStageTimings(os.Stderr, res.Timings)
	}
	return nil
}

// resolveGenerateTarget picks the registry input, output path and
// extra author tags from the positional argument, the --out flag and
// the manifest, in that order of precedence.
func resolveGenerateTarget(args []string) (registryPath, outPath string, extraTags []string, err error) {
	outPath = generateOut

	manifest, found, err := loadProjectManifest(".")
	if err != nil {
		return "", "", nil, err
	}
	if found {
		extraTags = manifest.extraTags()
	}

	if len(args) == 1 {
		return args[0], outPath, extraTags, nil
	}
	if !found {
		return "", "", nil, fmt.Errorf("%s", noOpenxrTomlMessage)
	}
	if outPath == "" {
		outPath = manifest.outPath()
	}
	return manifest.registryPath(), outPath, extraTags, nil
}

func writeOutput(outPath, text string) error {
	if outPath == "" {
		_, err := fmt.Fprint(os.Stdout, text)
		return err
	}
	if dir := filepath.Dir(outPath); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return fmt.Errorf("failed to create output dir: %w", err)
		}
	}
	if err := os.WriteFile(outPath, []byte(text), 0o600); err != nil {
		return fmt.Errorf("failed to write bindings: %w", err)
	}
	return nil
}

func printDiagnostics(bag *diag.Bag, doc *source.Document) {
	if bag == nil || bag.Len() == 0 {
		return
	}
	fmt.Fprint(os.Stderr, diag.Format(bag.Items(), doc, true))
}

func summaryWidth() int {
	if w, _, err := term.GetSize(int(os.Stderr.Fd())); err == nil && w > 0 {
		return w
	}
	return 80
}
