package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/natefinch/atomic"
	"github.com/peterh/liner"

	"github.com/gustrain/minio/pkg/cache"
)

// REPL is the interactive command loop.
type REPL struct {
	cache         *cache.Cache
	capacityBytes uint64
	liner         *liner.State
}

func historyFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}

	return filepath.Join(home, ".minioctl_history")
}

// Run starts the REPL loop.
func (r *REPL) Run() error {
	r.liner = liner.NewLiner()
	defer r.liner.Close()

	r.liner.SetCtrlCAborts(true)
	r.liner.SetCompleter(r.completer)

	if f, err := os.Open(historyFile()); err == nil {
		r.liner.ReadHistory(f)
		f.Close()
	}

	fmt.Printf("minioctl - shared-memory cache CLI (capacity=%d bytes)\n", r.capacityBytes)
	fmt.Println("Type 'help' for available commands.")
	fmt.Println()

	for {
		line, err := r.liner.Prompt("minioctl> ")
		if err != nil {
			if errors.Is(err, liner.ErrPromptAborted) || errors.Is(err, io.EOF) {
				fmt.Println("\nBye!")

				break
			}

			return fmt.Errorf("reading input: %w", err)
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		r.liner.AppendHistory(line)

		parts := strings.Fields(line)
		cmd := strings.ToLower(parts[0])
		args := parts[1:]

		switch cmd {
		case "exit", "quit", "q":
			fmt.Println("Bye!")
			r.saveHistory()

			return nil

		case "help", "?":
			r.printHelp()

		case "read":
			r.cmdRead(args)

		case "store":
			r.cmdStore(args)

		case "load":
			r.cmdLoad(args)

		case "contains":
			r.cmdContains(args)

		case "flush":
			r.cmdFlush()

		case "stats":
			r.cmdStats()

		case "export":
			r.cmdExport(args)

		case "clear", "cls":
			fmt.Print("\033[H\033[2J")

		default:
			fmt.Printf("Unknown command: %s (type 'help' for commands)\n", cmd)
		}
	}

	r.saveHistory()

	return nil
}

func (r *REPL) saveHistory() {
	if path := historyFile(); path != "" {
		if f, err := os.Create(path); err == nil {
			r.liner.WriteHistory(f)
			f.Close()
		}
	}
}

func (r *REPL) completer(line string) []string {
	commands := []string{
		"read", "store", "load", "contains", "flush", "stats", "export", "help", "exit",
	}

	var matches []string
	for _, c := range commands {
		if strings.HasPrefix(c, line) {
			matches = append(matches, c)
		}
	}

	return matches
}

func (r *REPL) printHelp() {
	fmt.Println(`Commands:
  read <path>              Read a file through the cache
  store <path> <file>      Admit <file>'s contents into the cache under <path>
  load <path>              Print a cached entry's contents
  contains <path>          Report whether <path> has a live entry
  flush                    Evict every entry
  stats                    Show access counters
  export <file>            Atomically write a JSON stats snapshot to <file>
  help                     Show this help
  exit / quit / q          Exit`)
}

// maxPrintSize bounds how many bytes of a read/load result the REPL will
// print directly, to keep a multi-megabyte cached image from flooding the
// terminal.
const maxPrintSize = 64 * 1024

func (r *REPL) cmdRead(args []string) {
	if len(args) != 1 {
		fmt.Println("usage: read <path>")
		return
	}

	buf := make([]byte, maxPrintSize)

	n, err := r.cache.Read(args[0], buf)
	if err != nil {
		fmt.Printf("error: %v\n", err)
		return
	}

	fmt.Printf("%d bytes:\n%s\n", n, buf[:n])
}

func (r *REPL) cmdStore(args []string) {
	if len(args) != 2 {
		fmt.Println("usage: store <path> <file>")
		return
	}

	data, err := os.ReadFile(args[1])
	if err != nil {
		fmt.Printf("error: %v\n", err)
		return
	}

	if err := r.cache.Store(args[0], data); err != nil {
		fmt.Printf("error: %v\n", err)
		return
	}

	fmt.Printf("stored %d bytes under %q\n", len(data), args[0])
}

func (r *REPL) cmdLoad(args []string) {
	if len(args) != 1 {
		fmt.Println("usage: load <path>")
		return
	}

	buf := make([]byte, maxPrintSize)

	n, err := r.cache.Load(args[0], buf)
	if err != nil {
		fmt.Printf("error: %v\n", err)
		return
	}

	fmt.Printf("%d bytes:\n%s\n", n, buf[:n])
}

func (r *REPL) cmdContains(args []string) {
	if len(args) != 1 {
		fmt.Println("usage: contains <path>")
		return
	}

	found, err := r.cache.Contains(args[0])
	if err != nil {
		fmt.Printf("error: %v\n", err)
		return
	}

	fmt.Println(found)
}

func (r *REPL) cmdFlush() {
	if err := r.cache.Flush(); err != nil {
		fmt.Printf("error: %v\n", err)
		return
	}

	fmt.Println("flushed")
}

func (r *REPL) cmdStats() {
	stats, err := r.cache.Stats()
	if err != nil {
		fmt.Printf("error: %v\n", err)
		return
	}

	used, err := r.cache.UsedBytes()
	if err != nil {
		fmt.Printf("error: %v\n", err)
		return
	}

	fmt.Printf("accesses:        %d\n", stats.Accesses)
	fmt.Printf("hits:            %d\n", stats.Hits)
	fmt.Printf("cold misses:     %d\n", stats.ColdMisses)
	fmt.Printf("capacity misses: %d\n", stats.CapacityMisses)
	fmt.Printf("fails:           %d\n", stats.Fails)
	fmt.Printf("used bytes:      %d / %d\n", used, r.capacityBytes)
}

func (r *REPL) cmdExport(args []string) {
	if len(args) != 1 {
		fmt.Println("usage: export <file>")
		return
	}

	stats, err := r.cache.Stats()
	if err != nil {
		fmt.Printf("error: %v\n", err)
		return
	}

	used, err := r.cache.UsedBytes()
	if err != nil {
		fmt.Printf("error: %v\n", err)
		return
	}

	snapshot := struct {
		cache.Stats
		UsedBytes     uint64 `json:"used_bytes"`
		CapacityBytes uint64 `json:"capacity_bytes"`
	}{stats, used, r.capacityBytes}

	encoded, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		fmt.Printf("error: %v\n", err)
		return
	}

	if err := atomic.WriteFile(args[0], bytes.NewReader(encoded)); err != nil {
		fmt.Printf("error: %v\n", err)
		return
	}

	fmt.Printf("wrote %s\n", args[0])
}
