package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/goccy/go-json"
	"github.com/pstuifzand/tui-treeselect/internal/app"
	"github.com/pstuifzand/tui-treeselect/internal/config"
	"github.com/pstuifzand/tui-treeselect/internal/ui"
)

func main() {
	logFile, err := os.Create("tts.log")
	if err != nil {
		log.Fatal(err)
	}
	defer logFile.Close()
	log.SetOutput(logFile)
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	debug := flag.Bool("debug", false, "Enable debug mode (shows key events in status)")
	keyword := flag.String("keyword", "", "Initial filter keyword")
	hideRoot := flag.Bool("hide-root", false, "Hide the root node")
	checked := flag.String("checked", "", "Comma separated values checked by default")
	title := flag.String("title", "", "Header title (defaults to the file name)")
	readOnly := flag.Bool("readonly", false, "Disable checking")
	watch := flag.Bool("watch", false, "Reload when the tree file changes")
	output := flag.String("output", "text", "Output format for the selection: text or json")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [flags] <tree-file>\n\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}
	if *output != "text" && *output != "json" {
		fmt.Fprintf(os.Stderr, "Error: unknown output format %q\n", *output)
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Printf("Using default config: %v", err)
		cfg = config.Default()
	}

	opts := app.Options{
		Path:     flag.Arg(0),
		Title:    *title,
		Keyword:  *keyword,
		HideRoot: *hideRoot,
		ReadOnly: *readOnly,
		Watch:    *watch,
		Debug:    *debug,
	}
	if *checked != "" {
		opts.DefaultChecked = splitValues(*checked)
	}

	application, err := app.NewApp(cfg, opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM)
	defer stop()

	if err := application.Run(ctx); err != nil && ctx.Err() == nil {
		fmt.Fprintf(os.Stderr, "Runtime error: %v\n", err)
		os.Exit(1)
	}

	if !application.Confirmed() {
		os.Exit(1)
	}
	if err := writeSelection(os.Stdout, application.Selection(), *output); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// writeSelection prints the checked leaves, one value per line or as JSON
func writeSelection(w io.Writer, leaves []ui.CheckedLeaf, format string) error {
	if format == "json" {
		if leaves == nil {
			leaves = []ui.CheckedLeaf{}
		}
		data, err := json.MarshalIndent(leaves, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal selection: %w", err)
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	}

	for _, leaf := range leaves {
		if _, err := fmt.Fprintln(w, leaf.Value); err != nil {
			return err
		}
	}
	return nil
}

func splitValues(s string) []string {
	var values []string
	for _, v := range strings.Split(s, ",") {
		if v = strings.TrimSpace(v); v != "" {
			values = append(values, v)
		}
	}
	return values
}
