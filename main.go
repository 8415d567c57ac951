package main

import (
	"bytes"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"xlsd/internal/colors"
	"xlsd/internal/config"
	"xlsd/internal/fallback"
	"xlsd/internal/icons"
	"xlsd/internal/listing"
	"xlsd/internal/model"
	"xlsd/internal/pager"
	"xlsd/internal/render"
	"xlsd/internal/style"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
	"github.com/spf13/pflag"
	"github.com/tcnksm/go-latest"
	"golang.org/x/term"
)

func checkUpdate(currentVer string) {
	githubTag := &latest.GithubTag{
		Owner:      "cafehaine",
		Repository: "xlsd",
	}

	res, err := latest.Check(githubTag, currentVer)
	if err != nil {
		return // Silently fail
	}

	if res.Outdated {
		fmt.Printf("✨ A new version is available: %s (you have %s)\n", res.Current, currentVer)
		fmt.Println("👉 Download it from https://github.com/cafehaine/xlsd/releases")
	} else {
		fmt.Printf("✅ You are using the latest version: %s\n", currentVer)
	}
}

func main() {
	pflag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: xlsd [options] [path...]\n\n")
		fmt.Fprintf(os.Stderr, "xlsd lists directories with icons, colors and aligned columns.\n")
		fmt.Fprintf(os.Stderr, "When stdout is not a terminal it runs the fallback command (ls) instead.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		pflag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  xlsd                # Grid of the current directory\n")
		fmt.Fprintf(os.Stderr, "  xlsd -la ~          # Long listing, hidden files included\n")
		fmt.Fprintf(os.Stderr, "  xlsd -t -L 2 src    # Tree, two levels deep\n")
		fmt.Fprintf(os.Stderr, "  xlsd -p /usr/bin    # Browse a long listing in a pager\n")
	}

	allFlag := pflag.BoolP("all", "a", false, "Show entries starting with .")
	longFlag := pflag.BoolP("long", "l", false, "Long listing with one entry per line")
	treeFlag := pflag.BoolP("tree", "t", false, "Recurse into directories as a tree")
	depthFlag := pflag.IntP("depth", "L", -1, "Maximum tree depth (0 = unlimited)")
	sortFlag := pflag.StringP("sort", "s", "", "Sort method: directories-first, alphabetical, as-is")
	iconsFlag := pflag.StringSlice("icons", nil, "Icon sources in order (extension, content-sniff, language)")
	columnsFlag := pflag.StringSlice("columns", nil, "Columns of the long listing")
	configFlag := pflag.StringP("config", "c", "", "Config file (default $XLSD_CONFIG or ~/.config/xlsd/config.yaml)")
	widthFlag := pflag.IntP("width", "w", 0, "Terminal width (default: detected)")
	forceFlag := pflag.BoolP("force", "f", false, "Render even when stdout is not a terminal")
	pagerFlag := pflag.BoolP("pager", "p", false, "Show the listing in an interactive pager")
	logLevelFlag := pflag.String("log-level", "", "Log level: debug, info, warn, error")
	versionFlag := pflag.BoolP("version", "V", false, "Print version information")
	updateFlag := pflag.BoolP("update", "u", false, "Check for the latest version")
	helpFlag := pflag.BoolP("help", "h", false, "Show this help message")
	pflag.Parse()

	if *helpFlag {
		pflag.Usage()
		return
	}

	if *versionFlag {
		fmt.Printf("xlsd version %s\n", model.Version)
		return
	}

	if *updateFlag {
		checkUpdate(model.Version)
		return
	}

	logger := log.NewWithOptions(os.Stderr, log.Options{Prefix: "xlsd"})

	configPath := *configFlag
	if configPath == "" {
		configPath = config.DefaultPath()
	}
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Fatal("cannot load config", "err", err)
	}
	if *logLevelFlag != "" {
		cfg.LogLevel = *logLevelFlag
	}
	if len(*iconsFlag) > 0 {
		cfg.IconSources = *iconsFlag
	}
	if len(*columnsFlag) > 0 {
		cfg.Columns = *columnsFlag
	}
	if *sortFlag != "" {
		cfg.SortMethod = *sortFlag
	}
	if *depthFlag >= 0 {
		cfg.TreeDepth = *depthFlag
	}
	if err := cfg.Validate(); err != nil {
		logger.Fatal("invalid configuration", "err", err)
	}
	level, _ := log.ParseLevel(cfg.LogLevel)
	logger.SetLevel(level)
	logger.Debug("config loaded", "path", configPath)

	paths := pflag.Args()
	if len(paths) == 0 {
		paths = []string{"."}
	}

	interactive := isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
	if !interactive && !*forceFlag && !*pagerFlag {
		os.Exit(runFallback(cfg.FallbackCommand, fallback.Args(*allFlag, *longFlag, paths), logger))
	}

	mode := render.ModeGrid
	switch {
	case *treeFlag:
		mode = render.ModeTree
	case *longFlag:
		mode = render.ModeLong
	}

	output := termenv.NewOutput(os.Stdout)
	profile := output.EnvColorProfile()
	lipgloss.SetColorProfile(profile)

	renderer := buildRenderer(cfg, profile, terminalWidth(*widthFlag), logger)
	req := render.Request{Paths: paths, ShowHidden: *allFlag, Mode: mode}

	var renderErr error
	if *pagerFlag {
		var buf bytes.Buffer
		renderErr = renderer.Render(&buf, req)
		if err := pager.Run(strings.Join(paths, " "), buf.String()); err != nil {
			logger.Error("pager failed", "err", err)
			os.Exit(1)
		}
	} else {
		renderErr = renderer.Render(os.Stdout, req)
	}
	if renderErr != nil {
		for _, line := range strings.Split(renderErr.Error(), "\n") {
			logger.Error(line)
		}
		os.Exit(2)
	}
}

func buildRenderer(cfg *config.Config, profile termenv.Profile, width int, logger *log.Logger) *render.Renderer {
	fsys := model.OSFileSystem{}

	glyphs := icons.NewGlyphSet(icons.DefaultGlyphs())
	iconChain := icons.DefaultRegistry(model.MIMESniffer{}, logger).Chain(cfg.IconSources, glyphs, logger)

	rules := colors.DefaultRules()
	if raw := cfg.ColorRules(); raw != "" {
		parsed, err := colors.ParseLSColors(raw)
		if err != nil {
			logger.Warn("ignoring malformed color rules", "err", err)
		}
		rules = parsed
	}

	formatter := &render.Formatter{
		Icons:   iconChain,
		Colors:  colors.NewResolver(rules, logger),
		Styler:  style.NewStyler(profile),
		Palette: style.DefaultPalette().Merge(cfg.Palette),
		Logger:  logger,
	}
	columns := render.DefaultColumns(render.ColumnEnv{
		Formatter: formatter,
		Identity:  model.NewOSIdentity(),
		Now:       time.Now(),
	})

	return render.New(render.Options{
		FS:          fsys,
		Sort:        listing.NewRegistry().Lookup(cfg.SortMethod, logger),
		Formatter:   formatter,
		Columns:     columns,
		ColumnNames: cfg.Columns,
		Width:       width,
		TreeDepth:   cfg.TreeDepth,
		Logger:      logger,
	})
}

// terminalWidth prefers the flag, then the terminal, then $COLUMNS.
func terminalWidth(flagWidth int) int {
	if flagWidth > 0 {
		return flagWidth
	}
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
		return w
	}
	if w, err := strconv.Atoi(os.Getenv("COLUMNS")); err == nil && w > 0 {
		return w
	}
	return render.DefaultWidth
}

// runFallback runs the fallback command on the current stdio and returns its
// exit status.
func runFallback(command string, args []string, logger *log.Logger) int {
	cmd, err := fallback.New(command, args)
	if err != nil {
		logger.Error("invalid fallback command", "err", err)
		return 2
	}
	logger.Debug("stdout is not a terminal, running fallback", "cmd", cmd.String())
	code, err := cmd.Run()
	if err != nil {
		logger.Error("fallback command failed", "cmd", cmd.String(), "err", err)
	}
	return code
}
