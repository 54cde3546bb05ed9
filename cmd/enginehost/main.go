// Command enginehost hosts a rendering engine behind the coordination layer.
//
// Usage:
//
//	enginehost view [model files...]
//	enginehost render -o frame.png [--action toggle_wireframe] [model files...]
//
// Configuration is read from --config (YAML), ENGINEHOST_* environment
// variables and flags, in increasing priority.
//
// Build with -tags gpu to draw the view window's canvases through the gg
// GPU accelerator. render always rasterizes on the CPU.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/gogpu/enginehost"
	"github.com/gogpu/enginehost/colorsync"
)

// app carries state shared by subcommands.
type app struct {
	v          *viper.Viper
	configPath string
	cfg        config
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCommand().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "enginehost:", err)
		os.Exit(1)
	}
}

// newRootCommand builds the command tree.
func newRootCommand() *cobra.Command {
	a := &app{v: newViper()}

	root := &cobra.Command{
		Use:           "enginehost",
		Short:         "Host a rendering engine in a window or off-screen",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.configPath, "config", "", "config file (YAML)")
	pf.String("log-level", "info", "log level: debug, info, warn, error")
	pf.String("log-format", "text", "log format: text or json")
	pf.Int("width", 1024, "viewport width")
	pf.Int("height", 768, "viewport height")
	pf.String("color", colorsync.DefaultColor.Hex(), "initial model colour as #rrggbb")

	root.AddCommand(newViewCommand(a))
	root.AddCommand(newRenderCommand(a))
	return root
}

// setup resolves configuration and installs the logger.
func (a *app) setup(cmd *cobra.Command) error {
	if err := bindFlags(a.v, cmd.Flags(), map[string]string{
		"log-level":  "log.level",
		"log-format": "log.format",
		"width":      "window.width",
		"height":     "window.height",
		"color":      "model.color",
		"title":      "window.title",
		"metrics":    "metrics.addr",
		"watch":      "watch",
	}); err != nil {
		return err
	}
	if err := readConfigFile(a.v, a.configPath); err != nil {
		return err
	}
	cfg, err := resolveConfig(a.v)
	if err != nil {
		return err
	}
	a.cfg = cfg
	enginehost.SetLogger(newLogger(cmd.ErrOrStderr(), cfg))
	return nil
}
