// Package main is the control client for a running glidekbd daemon.
package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/dshills/glidekbd/internal/config"
	"github.com/dshills/glidekbd/internal/ipc"
	"github.com/dshills/glidekbd/internal/keycode"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	var socket string
	var showVersion bool

	flag.StringVar(&socket, "socket", "", "Daemon control socket (default: the running user's)")
	flag.BoolVar(&showVersion, "version", false, "Show version information")
	flag.Usage = usage
	flag.Parse()

	if showVersion {
		fmt.Printf("glidekbdctl %s\n", version)
		fmt.Printf("Commit: %s\n", commit)
		fmt.Printf("Built: %s\n", date)
		return 0
	}

	args := flag.Args()
	if len(args) == 0 {
		usage()
		return 2
	}

	if socket == "" {
		socket = config.Default().Control.SocketPath()
	}
	client := ipc.NewClient(socket)

	var err error
	switch args[0] {
	case "show":
		err = client.Show()
	case "hide":
		err = client.Hide()
	case "toggle":
		var visible bool
		if visible, err = client.Toggle(); err == nil {
			fmt.Println(visibility(visible))
		}
	case "status":
		var status ipc.Status
		if status, err = client.Status(); err == nil {
			printStatus(status)
		}
	case "layer":
		if len(args) != 3 {
			fmt.Fprintln(os.Stderr, "Usage: glidekbdctl layer <left|right> <index>")
			return 2
		}
		var index int
		if index, err = strconv.Atoi(args[2]); err != nil {
			fmt.Fprintf(os.Stderr, "Error: layer index %q is not a number\n", args[2])
			return 2
		}
		err = client.Layer(args[1], index)
	default:
		fmt.Fprintf(os.Stderr, "Error: unknown command %q\n\n", args[0])
		usage()
		return 2
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func printStatus(status ipc.Status) {
	fmt.Printf("state:  %s\n", visibility(status.Visible))
	fmt.Printf("layers: left %d, right %d\n", status.LeftLayer, status.RightLayer)
	fmt.Printf("mods:   %s\n", maskNames(status.Modifiers, modifierNames))
	fmt.Printf("locks:  %s\n", maskNames(status.Locks, lockNames))
}

func visibility(visible bool) string {
	if visible {
		return "visible"
	}
	return "hidden"
}

type maskName struct {
	bit  uint32
	name string
}

var modifierNames = []maskName{
	{keycode.BitShift, "shift"},
	{keycode.BitCtrl, "ctrl"},
	{keycode.BitAlt, "alt"},
	{keycode.BitMeta, "meta"},
}

var lockNames = []maskName{
	{keycode.BitCapsLock, "caps"},
	{keycode.BitNumLock, "num"},
	{keycode.BitScrollLock, "scroll"},
}

func maskNames(mask uint32, table []maskName) string {
	var names []string
	for _, m := range table {
		if mask&m.bit != 0 {
			names = append(names, m.name)
		}
	}
	if len(names) == 0 {
		return "none"
	}
	return strings.Join(names, "+")
}

func usage() {
	fmt.Fprintf(os.Stderr, "glidekbdctl - control a running glidekbd daemon\n\n")
	fmt.Fprintf(os.Stderr, "Usage: glidekbdctl [options] <command>\n\n")
	fmt.Fprintf(os.Stderr, "Commands:\n")
	fmt.Fprintf(os.Stderr, "  show                  Show the key grid\n")
	fmt.Fprintf(os.Stderr, "  hide                  Collapse to the trigger bar\n")
	fmt.Fprintf(os.Stderr, "  toggle                Flip visibility and print the new state\n")
	fmt.Fprintf(os.Stderr, "  status                Print daemon state\n")
	fmt.Fprintf(os.Stderr, "  layer <side> <index>  Switch one side to a layer\n\n")
	fmt.Fprintf(os.Stderr, "Options:\n")
	flag.PrintDefaults()
}
