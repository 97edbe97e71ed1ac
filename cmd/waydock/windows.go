package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"golang.org/x/term"

	"github.com/1broseidon/waydock/internal/ipc"
)

func runWindows(args []string) int {
	fs := flag.NewFlagSet("windows", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	socketPath := fs.String("socket", "", "Control socket path (default: runtime dir)")
	asJSON := fs.Bool("json", false, "Output as JSON")
	appID := fs.String("app-id", "", "Only show windows with this application id")
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: waydock windows [--json] [--app-id ID]")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "List the windows the daemon is tracking.")
	}
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}

	client := ipc.NewClient(*socketPath)
	windows, err := client.Windows()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	if *appID != "" {
		filtered := windows[:0]
		for _, w := range windows {
			if w.AppID == *appID {
				filtered = append(filtered, w)
			}
		}
		windows = filtered
	}

	if *asJSON || !term.IsTerminal(int(os.Stdout.Fd())) {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(windows); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		return 0
	}

	tw := tabwriter.NewWriter(os.Stdout, 2, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tAPP\tWORKSPACE\tSTATE\tTITLE")
	for _, w := range windows {
		ws := "-"
		if w.Workspace >= 0 {
			ws = strconv.Itoa(w.Workspace)
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n", w.ID, w.AppID, ws, stateString(w), w.Title)
	}
	tw.Flush()
	return 0
}

func stateString(w ipc.WindowInfo) string {
	var flags []string
	if w.Activated {
		flags = append(flags, "active")
	}
	if w.Maximized {
		flags = append(flags, "max")
	}
	if w.Minimized {
		flags = append(flags, "min")
	}
	if w.Fullscreen {
		flags = append(flags, "full")
	}
	if len(flags) == 0 {
		return "-"
	}
	return strings.Join(flags, ",")
}

func runWorkspaces(args []string) int {
	fs := flag.NewFlagSet("workspaces", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	socketPath := fs.String("socket", "", "Control socket path (default: runtime dir)")
	asJSON := fs.Bool("json", false, "Output as JSON")
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: waydock workspaces [--json]")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "List workspaces known to the daemon's backend.")
	}
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}

	client := ipc.NewClient(*socketPath)
	workspaces, err := client.Workspaces()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	if *asJSON || !term.IsTerminal(int(os.Stdout.Fd())) {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(workspaces); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		return 0
	}

	for _, ws := range workspaces {
		marker := " "
		if ws.Active {
			marker = "*"
		}
		fmt.Printf("%s %s\t%s\n", marker, ws.ID, ws.Name)
	}
	return 0
}

var actionNames = []string{
	ipc.ActionShow,
	ipc.ActionClose,
	ipc.ActionMinimize,
	ipc.ActionMaximize,
	ipc.ActionUnmaximize,
	ipc.ActionFullscreen,
	ipc.ActionUnfullscreen,
	ipc.ActionMoveToWorkspace,
}

func runAction(args []string) int {
	fs := flag.NewFlagSet("action", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	socketPath := fs.String("socket", "", "Control socket path (default: runtime dir)")
	workspace := fs.Int("workspace", -1, "Target workspace index (move-to-workspace only)")
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: waydock action <%s> <window-id> [--workspace N]\n", strings.Join(actionNames, "|"))
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Perform an action on a window by id (see 'waydock windows').")
	}

	// The action verb and window id come before any flags.
	if len(args) < 2 {
		fs.Usage()
		return 2
	}
	action := args[0]
	windowID, err := strconv.ParseUint(args[1], 10, 32)
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid window id %q\n", args[1])
		return 2
	}
	if err := fs.Parse(args[2:]); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}

	valid := false
	for _, name := range actionNames {
		if action == name {
			valid = true
			break
		}
	}
	if !valid {
		fmt.Fprintf(os.Stderr, "unknown action %q\n", action)
		fs.Usage()
		return 2
	}
	if action == ipc.ActionMoveToWorkspace && *workspace < 0 {
		fmt.Fprintln(os.Stderr, "move-to-workspace requires --workspace N")
		return 2
	}

	client := ipc.NewClient(*socketPath)
	if err := client.WindowAction(action, uint32(windowID), *workspace); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}
