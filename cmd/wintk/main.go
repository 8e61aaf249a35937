package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/1broseidon/wintk/internal/config"
	"github.com/1broseidon/wintk/internal/resource"
)

func main() {
	if len(os.Args) < 2 {
		printMainUsage(os.Stdout)
		os.Exit(0)
	}

	switch os.Args[1] {
	case "run":
		os.Exit(runRun(os.Args[2:]))
	case "config":
		os.Exit(runConfig(os.Args[2:]))
	case "display":
		os.Exit(runDisplay(os.Args[2:]))
	case "layout":
		os.Exit(runLayout(os.Args[2:]))
	case "ctl":
		os.Exit(runCtl(os.Args[2:]))
	case "mcp":
		os.Exit(runMCP(os.Args[2:]))
	case "help", "-h", "--help":
		printMainUsage(os.Stdout)
		os.Exit(0)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printMainUsage(os.Stderr)
		os.Exit(2)
	}
}

func printMainUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: wintk <command> [options]")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  run                 Run the demo desktop in this terminal")
	fmt.Fprintln(w, "  ctl <command>       Send a command to the running desktop")
	fmt.Fprintln(w, "  ctl status          Show the windows of the running desktop")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "  layout dump         Tile windows off-screen and print the result")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "  display modes       List screen modes of the X display")
	fmt.Fprintln(w, "  display monitors    List active outputs")
	fmt.Fprintln(w, "  display set         Switch the screen mode")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "  config validate     Validate configuration")
	fmt.Fprintln(w, "  config print        Print configuration")
	fmt.Fprintln(w, "  config explain      Explain a config value")
	fmt.Fprintln(w, "  config presets      List builtin presets")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "  mcp serve           Serve layout tools over MCP on stdio")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Run 'wintk <command> --help' for command-specific options.")
}

// loadConfig loads path, or the default location when path is empty.
func loadConfig(path string) (*config.LoadResult, error) {
	if path == "" {
		return config.LoadWithSources()
	}
	return config.LoadFromPath(path)
}

// usePreset switches cfg to preset unless it already uses it. An empty
// preset keeps the file's choice.
func usePreset(cfg *config.Config, preset string) error {
	if preset == "" || cfg.Preset == preset {
		return nil
	}
	return cfg.UsePreset(preset)
}

// loadResources loads the fonts and images named in cfg. Failures are logged
// and the resource is skipped.
func loadResources(res *resource.Provider, cfg *config.Config, logger *slog.Logger) {
	for id, f := range cfg.Fonts {
		if _, err := res.LoadFont(id, f.Path, f.Size); err != nil {
			logger.Warn("font not loaded", "id", id, "error", err)
		}
	}
	for id, img := range cfg.Images {
		var err error
		if img.TileWidth > 0 || img.TileHeight > 0 {
			_, err = res.LoadImageMap(id, img.Path, img.TileWidth, img.TileHeight)
		} else {
			_, err = res.LoadImage(id, img.Path)
		}
		if err != nil {
			logger.Warn("image not loaded", "id", id, "error", err)
		}
	}
}

func runConfig(args []string) int {
	if len(args) == 0 || args[0] == "help" || args[0] == "-h" || args[0] == "--help" {
		fmt.Fprintln(os.Stderr, "Usage:")
		fmt.Fprintln(os.Stderr, "  wintk config validate [--path PATH]")
		fmt.Fprintln(os.Stderr, "  wintk config print [--path PATH] [--defaults] [--preset NAME]")
		fmt.Fprintln(os.Stderr, "  wintk config explain [--path PATH] <yaml.path>")
		fmt.Fprintln(os.Stderr, "  wintk config presets")
		return 2
	}

	switch args[0] {
	case "validate":
		fs := flag.NewFlagSet("validate", flag.ContinueOnError)
		fs.SetOutput(os.Stderr)
		path := fs.String("path", "", "Config file path (default: ~/.config/wintk/config.yaml)")
		if err := fs.Parse(args[1:]); err != nil {
			return 2
		}

		res, err := loadConfig(*path)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		if err := res.Config.Validate(); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		fmt.Println("config: ok")
		return 0

	case "print":
		fs := flag.NewFlagSet("print", flag.ContinueOnError)
		fs.SetOutput(os.Stderr)
		path := fs.String("path", "", "Config file path (default: ~/.config/wintk/config.yaml)")
		printDefaults := fs.Bool("defaults", false, "Print built-in defaults (no files)")
		preset := fs.String("preset", "", "Apply a builtin preset before printing")
		if err := fs.Parse(args[1:]); err != nil {
			return 2
		}

		cfg := config.DefaultConfig()
		if !*printDefaults {
			res, err := loadConfig(*path)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				return 1
			}
			cfg = res.Config
		}
		if err := usePreset(cfg, *preset); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		data, err := yaml.Marshal(cfg)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		fmt.Print(string(data))
		return 0

	case "explain":
		fs := flag.NewFlagSet("explain", flag.ContinueOnError)
		fs.SetOutput(os.Stderr)
		path := fs.String("path", "", "Config file path (default: ~/.config/wintk/config.yaml)")
		if err := fs.Parse(args[1:]); err != nil {
			return 2
		}
		if fs.NArg() < 1 {
			fmt.Fprintln(os.Stderr, "explain requires <yaml.path>")
			return 2
		}
		queryPath := fs.Arg(0)

		res, err := loadConfig(*path)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		value, src, err := config.Explain(res, queryPath)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		out, err := yaml.Marshal(value)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}

		fmt.Printf("path: %s\n", queryPath)
		fmt.Printf("source: %s\n", src)
		fmt.Printf("value:\n%s", string(out))
		return 0

	case "presets":
		for _, name := range config.PresetNames() {
			marker := " "
			if name == config.DefaultPreset {
				marker = "*"
			}
			fmt.Printf("%s %s\n", marker, name)
		}
		return 0

	default:
		fmt.Fprintf(os.Stderr, "Unknown config subcommand: %s\n", args[0])
		return 2
	}
}
