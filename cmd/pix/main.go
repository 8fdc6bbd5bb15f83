package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strings"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/bagtoad/pix/internal/config"
	"github.com/bagtoad/pix/internal/dateclass"
	"github.com/bagtoad/pix/internal/locale"
	"github.com/bagtoad/pix/internal/media"
	"github.com/bagtoad/pix/internal/picker"
	"github.com/bagtoad/pix/internal/report"
	"github.com/bagtoad/pix/internal/scanner"
	"github.com/bagtoad/pix/internal/watch"
)

// modeFlag adapts media.Mode to pflag.
type modeFlag struct{ mode media.Mode }

var _ pflag.Value = (*modeFlag)(nil)

func (f *modeFlag) String() string { return f.mode.String() }
func (f *modeFlag) Type() string   { return "mode" }

func (f *modeFlag) Set(s string) error {
	m, err := media.ParseMode(s)
	if err != nil {
		return err
	}
	f.mode = m
	return nil
}

type options struct {
	flags      config.Config
	mode       modeFlag
	configPath string
	jsonOut    bool
	color      bool
	full       bool
	watch      bool
	progress   bool
	verbose    bool
}

func main() {
	var opts options

	rootCmd := &cobra.Command{
		Use:   "pix [folder...]",
		Short: "List local photos and videos grouped by date, the way the picker shows them",
		Long: `pix scans a media folder (or, with --library, whole directory trees) and
prints the picker list model: items newest first, grouped under
"Recent", "Last week", "Last month" and month-name sections.

Settings come from flags, then ~/.pix/config.yaml, then defaults.
The default folder is ~/Pictures/Pix.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.flags.Folders = args
			if cmd.Flags().Changed("mode") {
				opts.flags.Mode = opts.mode.String()
			}
			return run(cmd.Context(), cmd.OutOrStdout(), opts)
		},
		SilenceUsage: true,
	}

	flags := rootCmd.Flags()
	flags.Var(&opts.mode, "mode", "Media to include: picture, video or all")
	flags.BoolVar(&opts.flags.Library, "library", false, "Walk folders recursively as a media library")
	flags.BoolVar(&opts.flags.CaptureTime, "capture-time", false, "Date library files by EXIF or movie metadata")
	flags.BoolVar(&opts.flags.Verify, "verify", false, "Skip library images that cannot be decoded")
	flags.StringArrayVar(&opts.flags.Selected, "select", nil, "Mark a path or locator as already selected (repeatable)")
	flags.StringVar(&opts.flags.Locale, "locale", "", "Label language, e.g. de or fr_FR (default from $LANG)")
	flags.StringVar(&opts.flags.Labels, "labels", "", "YAML file overriding label strings")
	flags.StringVar(&opts.configPath, "config", "", "Config file (default ~/.pix/config.yaml)")
	flags.BoolVar(&opts.jsonOut, "json", false, "Print the list model as JSON")
	flags.BoolVar(&opts.color, "color", false, "Style section headers")
	flags.BoolVar(&opts.full, "full", false, "Print full locators instead of file names")
	flags.BoolVar(&opts.watch, "watch", false, "Keep running and reprint when the folders change")
	flags.BoolVar(&opts.progress, "progress", false, "Show a progress bar while scanning a library")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "Log scan details to stderr")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func run(ctx context.Context, out io.Writer, opts options) error {
	if !opts.verbose {
		log.SetOutput(io.Discard)
	}

	path := opts.configPath
	if path == "" {
		p, err := config.Path()
		if err != nil {
			return fmt.Errorf("cannot locate config file: %w", err)
		}
		path = p
	}
	file, err := config.Load(path)
	if err != nil {
		return err
	}
	cfg, err := config.Resolve(opts.flags, file)
	if err != nil {
		return err
	}

	mode, err := media.ParseMode(cfg.Mode)
	if err != nil {
		return err
	}
	labels, err := resolveLabels(cfg)
	if err != nil {
		return err
	}

	var bar *progressbar.ProgressBar
	src := newSource(cfg, opts.progress, &bar)

	mgr := picker.New(src, picker.WithLabels(labels), picker.WithPreselected(cfg.Selected...))

	refresh := func(ctx context.Context) error {
		if bar != nil {
			bar.Reset()
		}
		result, err := mgr.Retrieve(ctx, mode)
		if bar != nil {
			bar.Finish()
		}
		if err != nil {
			return err
		}
		if opts.jsonOut {
			return report.JSON(out, result)
		}
		report.Print(out, result, report.Options{Color: opts.color, FullLocators: opts.full})
		return nil
	}

	if err := refresh(ctx); err != nil {
		return err
	}
	if !opts.watch {
		return nil
	}

	dirs := sourceFolders(cfg)
	fmt.Fprintf(os.Stderr, "Watching %s (Ctrl+C to stop)\n", strings.Join(dirs, ", "))
	return watch.Run(ctx, dirs, refresh)
}

// sourceFolders returns the folders the configured source actually reads.
// Folder mode reads only the first one.
func sourceFolders(cfg config.Config) []string {
	if !cfg.Library && len(cfg.Folders) > 1 {
		return cfg.Folders[:1]
	}
	return cfg.Folders
}

func newSource(cfg config.Config, progress bool, bar **progressbar.ProgressBar) scanner.Source {
	if !cfg.Library {
		if len(cfg.Folders) > 1 {
			log.Printf("Warning: folder mode reads only %s; use --library for several folders", cfg.Folders[0])
		}
		return scanner.Folder{Dir: sourceFolders(cfg)[0]}
	}

	lib := scanner.Library{
		Roots:       cfg.Folders,
		CaptureTime: cfg.CaptureTime,
		Verify:      cfg.Verify,
	}
	if progress {
		*bar = progressbar.NewOptions(-1,
			progressbar.OptionSetWriter(os.Stderr),
			progressbar.OptionSetDescription("Scanning"),
			progressbar.OptionShowCount(),
			progressbar.OptionShowIts(),
			progressbar.OptionClearOnFinish(),
		)
		b := *bar
		lib.OnFile = func(string) { b.Add(1) }
	}
	return lib
}

func resolveLabels(cfg config.Config) (dateclass.Resolver, error) {
	base := locale.FromEnv()
	if cfg.Locale != "" {
		base = locale.Lookup(cfg.Locale)
	}
	if cfg.Labels == "" {
		return base, nil
	}
	return locale.Load(cfg.Labels, base)
}
