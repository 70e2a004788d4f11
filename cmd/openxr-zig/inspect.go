package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/zigadel/openxr-zig/internal/diag"
	"github.com/zigadel/openxr-zig/internal/observ"
	"github.com/zigadel/openxr-zig/internal/registry"
	"github.com/zigadel/openxr-zig/internal/source"
)

var (
	inspectFormat string
	inspectOut    string
)

func init() {
	inspectCmd.Flags().StringVar(&inspectFormat, "format", "text", "output format (text|msgpack)")
	inspectCmd.Flags().StringVarP(&inspectOut, "out", "o", "", "output path (default stdout)")
}

var inspectCmd = &cobra.Command{
	Use:   "inspect [registry.xml]",
	Short: "Summarize a registry document without generating bindings",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runInspect,
}

func runInspect(cmd *cobra.Command, args []string) (err error) {
	format := strings.ToLower(inspectFormat)
	switch format {
	case "text", "msgpack":
		// supported
	default:
		return fmt.Errorf("unsupported format %q (must be text or msgpack)", inspectFormat)
	}
	maxDiags, err := cmd.Flags().GetInt("max-diagnostics")
	if err != nil {
		return err
	}
	showTimings, err := cmd.Flags().GetBool("timings")
	if err != nil {
		return err
	}

	registryPath, _, _, err := resolveGenerateTarget(args)
	if err != nil {
		return err
	}
	timer := observ.NewTimer()
	stop := timer.Begin("load")
	doc, err := source.Load(registryPath)
	if err != nil {
		return fmt.Errorf("failed to read registry: %w", err)
	}
	stop(fmt.Sprintf("%d bytes", len(doc.Content)))

	bag := diag.NewBag(maxDiags)
	stop = timer.Begin("parse")
	reg, err := registry.Parse(doc, diag.BagReporter{Bag: bag})
	stop("")
	printDiagnostics(bag, doc)
	if err != nil {
		return err
	}
	stop = timer.Begin("snapshot")
	snap := registry.BuildSnapshot(reg)
	stop("")
	if showTimings {
		fmt.Fprint(os.Stderr, timer.Summary())
	}

	out := io.Writer(os.Stdout)
	if inspectOut != "" {
		f, createErr := os.Create(inspectOut)
		if createErr != nil {
			return fmt.Errorf("failed to create output: %w", createErr)
		}
		defer func() {
			if closeErr := f.Close(); closeErr != nil && err == nil {
				err = closeErr
			}
		}()
		out = f
	}

	if format == "msgpack" {
		return snap.Encode(out)
	}
	renderSnapshotText(out, doc.Name, snap)
	return nil
}

func renderSnapshotText(out io.Writer, name string, snap *registry.Snapshot) {
	fmt.Fprintf(out, "%s: OpenXR %d.%d.%d\n", name, snap.APIMajor, snap.APIMinor, snap.APIPatch)
	fmt.Fprintf(out, "tags: %s\n", strings.Join(snap.Tags, ", "))
	fmt.Fprintf(out, "handles: %d  bitmasks: %d  structs: %d  unions: %d  funcpointers: %d  aliases: %d\n",
		len(snap.Handles), len(snap.Bitmasks), len(snap.Structs), len(snap.Unions),
		len(snap.FuncPointers), len(snap.Aliases))
	fmt.Fprintf(out, "enums: %d  commands: %d  constants: %d\n",
		len(snap.Enums), len(snap.Commands), snap.ConstantCount)
	fmt.Fprintf(out, "extensions: %d\n", len(snap.Extensions))
	for _, ext := range snap.Extensions {
		fmt.Fprintf(out, "  %4d %s\n", ext.Number, ext.Name)
	}
}
