package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"artlens/internal/config"
	"artlens/internal/httpx"
	"artlens/internal/logging"
	"artlens/internal/proc"
	"artlens/internal/source"
	"artlens/internal/tui"
	"artlens/internal/tui/util"
	"artlens/internal/tui/widgets/infodiff"
	"artlens/internal/watch"
)

type viewFlags struct {
	modal   bool
	noMouse bool
	noWatch bool
}

func newRootCmd() *cobra.Command {
	var cfgFile string
	var vf viewFlags

	root := &cobra.Command{
		Use:   "artlens REFERENCE RENDER",
		Short: "Compare a reference image against a render",
		Long: `artlens shows two images in one terminal viewport: slide a divider across
them, put them side by side, blend one over the other, or flip between them.
Images may be file paths, data: URLs or http(s) URLs.`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runView(cmd, cfgFile, vf, args[0], args[1])
		},
	}
	root.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is "+config.DefaultPath()+")")
	root.PersistentFlags().String("log-file", "", "write logs to this file")
	root.PersistentFlags().String("log-level", "", "log level (debug, info, warn, error)")
	addViewFlags(root, &vf)

	view := &cobra.Command{
		Use:   "view REFERENCE RENDER",
		Short: "Open the interactive comparison viewer",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runView(cmd, cfgFile, vf, args[0], args[1])
		},
	}
	addViewFlags(view, &vf)

	info := &cobra.Command{
		Use:   "info REFERENCE RENDER",
		Short: "Print both images' metadata as a diff, with the pixel match ratio",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, cfgFile)
			if err != nil {
				return err
			}
			httpx.DefaultTimeout = cfg.Fetch.Timeout
			return runInfo(cmd.Context(), cmd.OutOrStdout(), args[0], args[1], util.NoColor(cfg.View.NoColor))
		},
	}

	var force bool
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write a config file with the default settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path := cfgFile
			if path == "" {
				path = config.DefaultPath()
			}
			if force {
				if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
					return err
				}
			}
			written, err := config.Save(path)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Wrote", written)
			return nil
		},
	}
	initCmd.Flags().BoolVar(&force, "force", false, "overwrite an existing config file")

	doctor := &cobra.Command{
		Use:   "doctor",
		Short: "Check clipboard, external viewer and config availability",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runDoctor(cmd.OutOrStdout(), cfgFile)
		},
	}

	version := &cobra.Command{
		Use:   "version",
		Short: "Print version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), "artlens", Version)
		},
	}

	root.AddCommand(view, info, initCmd, doctor, version)
	return root
}

func addViewFlags(cmd *cobra.Command, vf *viewFlags) {
	cmd.Flags().String("mode", "", "initial mode: slide, split, overlay or full")
	cmd.Flags().BoolVar(&vf.modal, "modal", false, "run as if embedded in a modal (fullscreen disabled)")
	cmd.Flags().BoolVar(&vf.noMouse, "no-mouse", false, "disable mouse input")
	cmd.Flags().BoolVar(&vf.noWatch, "no-watch", false, "do not reload local images when they change")
}

// loadConfig layers flags over environment over the config file over
// defaults.
func loadConfig(cmd *cobra.Command, cfgFile string) (*config.Config, error) {
	v := config.New()
	if err := bindFlags(cmd, v); err != nil {
		return nil, err
	}
	if err := config.Read(v, cfgFile); err != nil {
		return nil, err
	}
	return config.Resolve(v)
}

func bindFlags(cmd *cobra.Command, v *viper.Viper) error {
	binds := map[string]string{
		"mode":      "view.default_mode",
		"log-file":  "log.file",
		"log-level": "log.level",
	}
	for flag, key := range binds {
		f := cmd.Flags().Lookup(flag)
		if f == nil {
			continue
		}
		if err := v.BindPFlag(key, f); err != nil {
			return err
		}
	}
	return nil
}

func runView(cmd *cobra.Command, cfgFile string, vf viewFlags, reference, render string) error {
	cfg, err := loadConfig(cmd, cfgFile)
	if err != nil {
		return err
	}
	if vf.noMouse {
		cfg.View.Mouse = false
	}
	if vf.noWatch {
		cfg.View.Watch = false
	}
	httpx.DefaultTimeout = cfg.Fetch.Timeout

	logger, closeLog, err := logging.Setup(cfg.Log.File, cfg.Log.Level)
	if err != nil {
		return err
	}
	defer closeLog()

	var w *watch.Watcher
	if cfg.View.Watch && (source.IsLocal(reference) || source.IsLocal(render)) {
		w, err = watch.New()
		if err != nil {
			logger.WithError(err).Warn("file watching disabled")
			w = nil
		}
	}
	sup := proc.NewSupervisor(func(format string, args ...any) { logger.Debugf(format, args...) })

	return tui.Run(tui.Options{
		Reference:  reference,
		Render:     render,
		Config:     cfg,
		InModal:    vf.modal,
		Logger:     logger,
		Watcher:    w,
		Supervisor: sup,
	})
}

func runInfo(ctx context.Context, out io.Writer, reference, render string, noColor bool) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ref := source.Load(ctx, reference)
	ren := source.Load(ctx, render)
	fmt.Fprint(out, infodiff.View(ref, ren, noColor))
	return nil
}

func runDoctor(out io.Writer, cfgFile string) error {
	ok := true
	check := func(good bool, yes, no string) {
		if good {
			fmt.Fprintf(out, "  ✓ %s\n", yes)
			return
		}
		fmt.Fprintf(out, "  ✗ %s\n", no)
		ok = false
	}

	fmt.Fprintln(out, "Environment checks:")
	check(!clipboard.Unsupported, "clipboard available", "clipboard unsupported (install xclip, xsel or wl-clipboard)")
	opener, found := proc.OpenerAvailable()
	check(found, "external viewer: "+opener, "external viewer not found in PATH")

	path := cfgFile
	if path == "" {
		path = config.DefaultPath()
	}
	v := config.New()
	if err := config.Read(v, cfgFile); err != nil {
		check(false, "", "config: "+err.Error())
	} else if _, err := config.Resolve(v); err != nil {
		check(false, "", "config: "+err.Error())
	} else if _, err := os.Stat(path); err == nil {
		check(true, "config: "+path, "")
	} else {
		fmt.Fprintf(out, "  - config: defaults (no file at %s)\n", path)
	}

	if ok {
		fmt.Fprintln(out, "All checks passed.")
	} else {
		fmt.Fprintln(out, "Some features are unavailable. See the items marked ✗.")
	}
	return nil
}
