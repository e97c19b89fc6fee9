/*
Package main implements gantt2svg, a renderer for work-order Gantt charts.

It reads the data binding of a dashboard widget (state, field metadata and
rows) from a YAML/JSON file, or a CSV export together with its metadata,
runs the gantt pipeline over it and writes the chart as SVG and/or PNG.
An interactive terminal preview can be opened on the same frame.

The pipeline itself lives in package gantt; this package only deals with
files, configuration and output formats.
*/
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"gantt2svg/gantt"
	"gantt2svg/logging"
	"gantt2svg/preview"
)

// options holds the command line flags.
type options struct {
	bindingFile  string
	csvFile      string
	metadataFile string
	configFile   string
	outputs      []string
	now          string
	debug        bool
	logFile      string
	preview      bool
}

func main() {
	var opts options
	cmd := &cobra.Command{
		Use:   "gantt2svg",
		Short: "Render work-order Gantt charts as SVG, PNG or in the terminal",
		Long: `gantt2svg draws one bar per work order on a time axis around "now",
with the order number, the remaining duration and the buffer left of the plot.

If no output is given, the input filename with an .svg extension is used.
The output format follows the file extension (.svg or .png).`,
		Example: `  gantt2svg --binding orders.yaml --config config.yaml --output orders.svg
  gantt2svg --csv orders.csv --metadata fields.yaml -o orders.svg -o orders.png
  gantt2svg --binding orders.yaml --now 20240110100000 --preview`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVar(&opts.bindingFile, "binding", "", "YAML/JSON file with the data binding (state, metadata, data)")
	cmd.Flags().StringVar(&opts.csvFile, "csv", "", "CSV file with one work order per line (needs --metadata)")
	cmd.Flags().StringVar(&opts.metadataFile, "metadata", "", "YAML file with the field metadata of the CSV columns")
	cmd.Flags().StringVar(&opts.configFile, "config", "", "YAML configuration file (optional)")
	cmd.Flags().StringArrayVarP(&opts.outputs, "output", "o", nil, "Output file, .svg or .png (repeatable)")
	cmd.Flags().StringVar(&opts.now, "now", "", "Fixed wall clock, YYYYMMDDhhmmss or RFC 3339 (default: current time)")
	cmd.Flags().BoolVar(&opts.debug, "debug", false, "Enable debug mode for verbose output")
	cmd.Flags().StringVar(&opts.logFile, "log-file", "", "Append JSON logs to this file")
	cmd.Flags().BoolVar(&opts.preview, "preview", false, "Open an interactive terminal preview")
	cmd.MarkFlagsMutuallyExclusive("binding", "csv")
	cmd.MarkFlagsRequiredTogether("csv", "metadata")

	if err := cmd.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

// run loads the input, renders one frame and hands it to every requested
// output. An empty row set is not an error: nothing is drawn.
func run(ctx context.Context, opts options) error {
	cleanup, err := logging.Setup(opts.debug, opts.logFile)
	if err != nil {
		return fmt.Errorf("error setting up logging: %w", err)
	}
	defer cleanup()

	if opts.bindingFile == "" && opts.csvFile == "" {
		return errors.New("an input is required, use --binding or --csv")
	}
	input := opts.bindingFile
	if input == "" {
		input = opts.csvFile
	}

	outputs := opts.outputs
	if len(outputs) == 0 && !opts.preview {
		outputs = []string{getOutputFilename(input, "")}
	}
	for _, path := range outputs {
		if _, err := outputFormat(path); err != nil {
			return err
		}
	}

	config, err := loadConfig(opts.configFile)
	if err != nil {
		return fmt.Errorf("error loading configuration: %w", err)
	}
	settings, err := config.settings()
	if err != nil {
		return fmt.Errorf("error loading configuration: %w", err)
	}
	log.Debug().
		Str("config", opts.configFile).
		Str("location", settings.Location.String()).
		Int("max_value_span", settings.MaxValueSpan).
		Msg("configuration loaded")

	// Font loading for PNG output overlaps with reading the input.
	var initBackend func(context.Context) error
	if lo.SomeBy(outputs, func(path string) bool {
		format, _ := outputFormat(path)
		return format == "png"
	}) {
		initBackend = warmFonts
	}
	gate := gantt.NewGate(initBackend)
	gate.Start(ctx)

	renderer := gantt.NewRenderer(settings, gate)
	if opts.now != "" {
		now, err := parseNow(opts.now, settings.Location)
		if err != nil {
			return err
		}
		renderer.Now = func() time.Time { return now }
	}

	binding, err := loadInput(opts)
	if err != nil {
		return err
	}
	if !gate.Ready() {
		log.Debug().Msg("input loaded, waiting for the renderer backend")
	}

	frame, err := renderer.Render(ctx, binding)
	if errors.Is(err, gantt.ErrEmptyRowSet) {
		log.Warn().Str("input", input).Msg("no rows to draw")
		fmt.Fprintf(os.Stderr, "Warning: no work orders found in %s, nothing rendered\n", input)
		return nil
	}
	if err != nil {
		return fmt.Errorf("error rendering %s: %w", input, err)
	}
	if frame == nil {
		log.Warn().Str("state", binding.State).Msg("binding not ready")
		fmt.Fprintf(os.Stderr, "Warning: binding state is %q, nothing rendered\n", binding.State)
		return nil
	}
	fmt.Printf("Loaded %d work orders from %s\n", len(frame.Rows), input)

	if err := writeOutputs(ctx, frame, config, outputs); err != nil {
		return err
	}
	if opts.preview {
		return preview.Run(frame, config.appearance())
	}
	return nil
}

func loadInput(opts options) (gantt.DataBinding, error) {
	if opts.bindingFile != "" {
		return loadBinding(opts.bindingFile)
	}
	if opts.metadataFile == "" {
		return gantt.DataBinding{}, errors.New("--csv needs --metadata")
	}
	return loadCSVBinding(opts.csvFile, opts.metadataFile)
}

// writeOutputs renders every output concurrently. The frame is only read.
func writeOutputs(ctx context.Context, frame *gantt.Frame, config Config, paths []string) error {
	g, _ := errgroup.WithContext(ctx)
	for _, path := range paths {
		path := path
		g.Go(func() error {
			return writeOutput(frame, config, path)
		})
	}
	return g.Wait()
}

func writeOutput(frame *gantt.Frame, config Config, path string) error {
	format, err := outputFormat(path)
	if err != nil {
		return err
	}
	switch format {
	case "svg":
		if err := os.WriteFile(path, []byte(generateSVG(frame, config)), 0644); err != nil {
			return fmt.Errorf("error writing SVG file: %w", err)
		}
	case "png":
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("error creating PNG file: %w", err)
		}
		if err := renderPNG(f, frame, config); err != nil {
			f.Close()
			return err
		}
		if err := f.Close(); err != nil {
			return fmt.Errorf("error writing PNG file: %w", err)
		}
	}
	fmt.Printf("Gantt chart generated successfully: %s\n", path)
	return nil
}

// outputFormat returns "svg" or "png" from the file extension.
func outputFormat(path string) (string, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".svg", ".png":
		return ext[1:], nil
	default:
		return "", fmt.Errorf("unsupported output format %q for %s, use .svg or .png", ext, path)
	}
}

// parseNow reads the --now flag, either in the host's compact timestamp
// format or as RFC 3339.
func parseNow(s string, loc *time.Location) (time.Time, error) {
	if t, err := gantt.ParseTimestamp(s, loc); err == nil {
		return t, nil
	}
	t, err := time.ParseInLocation(time.RFC3339, s, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --now %q: use YYYYMMDDhhmmss or RFC 3339", s)
	}
	return t, nil
}
