package app

import (
	"fmt"
	"log"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/pstuifzand/tui-treeselect/internal/export"
	"github.com/pstuifzand/tui-treeselect/internal/theme"
	"github.com/pstuifzand/tui-treeselect/internal/treestate"
)

var commandHelp = []string{
	":q, :quit            Quit without selection",
	":accept, :wq         Accept selection and quit",
	":export <file>       Write selection (.json or Markdown)",
	":filter <keyword>    Filter nodes",
	":expand, :collapse   Expand or collapse all nodes",
	":reset               Restore default selection",
	":reload              Reload tree file",
	":set [key[=value]]   Show or change a setting",
	":write-config        Save settings to config file",
	":debug               Toggle debug mode",
	":help                Toggle help",
}

// parseCommand splits a command line into words. Words may be quoted with
// single or double quotes, and a backslash escapes the next character.
func parseCommand(cmd string) []string {
	var (
		parts   []string
		current strings.Builder
		quote   rune
		inWord  bool
		escaped bool
	)

	for _, r := range cmd {
		switch {
		case escaped:
			current.WriteRune(r)
			escaped = false
		case r == '\\':
			escaped = true
			inWord = true
		case quote != 0:
			if r == quote {
				quote = 0
			} else {
				current.WriteRune(r)
			}
		case r == '"' || r == '\'':
			quote = r
			inWord = true
		case r == ' ' || r == '\t':
			if inWord {
				parts = append(parts, current.String())
				current.Reset()
				inWord = false
			}
		default:
			current.WriteRune(r)
			inWord = true
		}
	}
	if inWord {
		parts = append(parts, current.String())
	}
	return parts
}

// handleCommand processes a command from command mode
func (a *App) handleCommand(cmd string) {
	parts := parseCommand(cmd)
	if len(parts) == 0 {
		return
	}

	switch parts[0] {
	case "q", "quit", "q!", "quit!":
		a.quit = true
	case "accept", "wq", "x":
		a.accept()
	case "export":
		a.handleExportCommand(parts[1:])
	case "filter":
		a.applyKeyword(strings.Join(parts[1:], " "))
	case "expand":
		a.tree.ExpandAll(true)
	case "collapse":
		a.tree.ExpandAll(false)
	case "reset":
		a.Reset()
		a.SetStatus("Selection reset")
	case "reload":
		if err := a.Reload(); err != nil {
			log.Printf("Reload failed: %v", err)
			a.SetStatus("Reload failed: " + err.Error())
		} else {
			a.SetStatus("Reloaded")
		}
	case "set":
		a.handleSetCommand(parts[1:])
	case "write-config":
		if err := a.cfg.Save(); err != nil {
			a.SetStatus("Failed to save config: " + err.Error())
		} else {
			a.SetStatus("Config saved")
		}
	case "help":
		a.help.Toggle()
	case "debug":
		a.debugMode = !a.debugMode
		if a.debugMode {
			log.Printf("Store state:\n%s", a.tree.Store().Dump())
			a.SetStatus("Debug mode ON")
		} else {
			a.SetStatus("Debug mode OFF")
		}
	default:
		a.SetStatus("Unknown command: " + parts[0])
	}
}

// accept confirms the current selection and ends the session
func (a *App) accept() {
	a.confirmed = true
	a.quit = true
	log.Printf("Accepted %d leaves", len(a.tree.AllCheckedLeaf()))
}

func (a *App) handleExportCommand(args []string) {
	if len(args) != 1 {
		a.SetStatus("Usage: :export <file>")
		return
	}

	sel := export.NewSelection(a.opts.Title, a.tree.Store().GetCheckedLeafNodes(), time.Now())
	if err := export.ToFile(sel, a.cfg.ExportDateFormat, args[0]); err != nil {
		log.Printf("Export failed: %v", err)
		a.SetStatus("Export failed: " + err.Error())
		return
	}
	a.SetStatus(fmt.Sprintf("Exported %d items to %s", len(sel.Items), args[0]))
}

// handleSetCommand shows settings, or sets key=value / key value
func (a *App) handleSetCommand(args []string) {
	if len(args) == 0 {
		all := a.cfg.GetAll()
		keys := make([]string, 0, len(all))
		for k := range all {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		pairs := make([]string, len(keys))
		for i, k := range keys {
			pairs[i] = k + "=" + all[k]
		}
		if len(pairs) == 0 {
			a.SetStatus("No settings")
		} else {
			a.SetStatus(strings.Join(pairs, " "))
		}
		return
	}

	key, value, found := strings.Cut(args[0], "=")
	if !found {
		if len(args) < 2 {
			a.SetStatus(fmt.Sprintf("%s=%s", key, a.cfg.Get(key)))
			return
		}
		value = strings.Join(args[1:], " ")
	}

	a.cfg.Set(key, value)
	a.applySetting(key)
	a.SetStatus(fmt.Sprintf("%s=%s", key, value))
}

// applySetting pushes a changed config value into the running view
func (a *App) applySetting(key string) {
	switch key {
	case "hide_root":
		a.tree.SetHideRoot(a.cfg.HideRoot)
	case "filter_mode":
		a.tree.SetMatcher(treestate.MatcherByName(a.cfg.FilterMode))
	case "indent_width":
		a.tree.SetIndentWidth(a.cfg.IndentWidth)
	case "expand_all":
		a.tree.ExpandAll(a.cfg.ExpandAll)
	case "default_checked":
		a.tree.SetDefaultChecked(a.cfg.DefaultChecked)
	case "theme":
		a.screen.SetTheme(theme.LoadThemeOrDefault(a.cfg.Theme))
	case "title":
		a.opts.Title = a.cfg.Get("title")
		a.tree.SetTitle(a.opts.Title)
	case "debug":
		if v, err := strconv.ParseBool(a.cfg.Get("debug")); err == nil {
			a.debugMode = v
		}
	}
}
