// Package cmd implements the CLI command structure for todo.
package cmd

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/ntodic/todo-cli/internal/config"
	"github.com/ntodic/todo-cli/internal/logging"
	"github.com/ntodic/todo-cli/internal/todo"
	"github.com/ntodic/todo-cli/internal/ui"
)

// Version is set via ldflags at build time.
var Version = "dev"

// Run executes the todo CLI.
func Run(ctx context.Context, args []string) error {
	// Create a flag set for global options
	fs := flag.NewFlagSet("todo", flag.ContinueOnError)
	fs.Usage = func() {
		printUsage(fs, os.Stderr)
	}
	help := fs.Bool("help", false, "Show help")
	fs.BoolVar(help, "h", false, "Show help")
	showVersion := fs.Bool("version", false, "Show version")
	fs.BoolVar(showVersion, "v", false, "Show version")

	// Global flags
	cfg, err := config.Load(fs, args)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if *help {
		printUsage(fs, os.Stdout)
		return nil
	}
	if *showVersion {
		fmt.Printf("todo %s\n", Version)
		return nil
	}

	logger := logging.New(logging.Options{
		Level:  logging.ParseLevel(cfg.LogLevel),
		Prefix: "todo",
	})

	// Determine the subcommand; bare invocation lists the tree.
	subcommand := "list"
	remainingArgs := fs.Args()
	if len(remainingArgs) > 0 {
		subcommand = remainingArgs[0]
		remainingArgs = remainingArgs[1:]
	}

	// One load → mutate → save cycle per invocation. A missing or
	// corrupt file starts as an empty list.
	list := todo.LoadOrNew(cfg.DataFile, logger)

	// Execute the subcommand
	switch subcommand {
	case "list", "ls":
		return listCommand(cfg, list)
	case "add":
		return addCommand(cfg, logger, list, remainingArgs)
	case "sub":
		return subCommand(cfg, logger, list, remainingArgs)
	case "done":
		return doneCommand(cfg, logger, list, remainingArgs)
	case "undone":
		return undoneCommand(cfg, logger, list, remainingArgs)
	case "delete", "rm":
		return deleteCommand(cfg, logger, list, remainingArgs)
	case "tui":
		return ui.RunTUI(ctx, cfg, list, cfg.DataFile)
	case "version", "--version":
		fmt.Printf("todo %s\n", Version)
		return nil
	case "help", "--help", "-h":
		printUsage(fs, os.Stdout)
		return nil
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", subcommand)
		fmt.Fprintln(os.Stderr, "Use 'todo help' to see available commands")
		return fmt.Errorf("unknown command: %s", subcommand)
	}
}

// listCommand renders the tree to stdout.
func listCommand(cfg *config.Config, list *todo.List) error {
	done, open := markers(cfg)
	fmt.Print(list.RenderMarkers(done, open))
	return nil
}

// addCommand inserts a root item.
func addCommand(cfg *config.Config, logger *log.Logger, list *todo.List, args []string) error {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "Usage: todo add <text>")
		return fmt.Errorf("missing text for the todo")
	}

	text := strings.Join(args, " ")
	id := list.Add(text, nil)
	if err := saveList(logger, list, cfg.DataFile); err != nil {
		return err
	}
	fmt.Printf("Added todo [%d]: %s\n", id, text)
	return nil
}

// subCommand inserts a child item under an existing parent. The parent
// is validated here; the store trusts its callers on this.
func subCommand(cfg *config.Config, logger *log.Logger, list *todo.List, args []string) error {
	if len(args) < 2 {
		fmt.Fprintln(os.Stderr, "Usage: todo sub <parent_id> <text>")
		return fmt.Errorf("missing parent ID or text for the sub-todo")
	}

	parentID, err := parseID(args[0])
	if err != nil {
		return fmt.Errorf("invalid parent ID %q", args[0])
	}
	if !list.Has(parentID) {
		return fmt.Errorf("parent todo with ID %d not found", parentID)
	}

	text := strings.Join(args[1:], " ")
	id := list.Add(text, &parentID)
	if err := saveList(logger, list, cfg.DataFile); err != nil {
		return err
	}
	fmt.Printf("Added sub-todo [%d] under [%d]: %s\n", id, parentID, text)
	return nil
}

// doneCommand marks an item as completed.
func doneCommand(cfg *config.Config, logger *log.Logger, list *todo.List, args []string) error {
	id, err := parseIDArg(args, "Usage: todo done <id>")
	if err != nil {
		return err
	}
	if !list.Complete(id) {
		return fmt.Errorf("todo with ID %d not found", id)
	}
	if err := saveList(logger, list, cfg.DataFile); err != nil {
		return err
	}
	fmt.Printf("Marked todo [%d] as completed\n", id)
	return nil
}

// undoneCommand marks an item as not completed.
func undoneCommand(cfg *config.Config, logger *log.Logger, list *todo.List, args []string) error {
	id, err := parseIDArg(args, "Usage: todo undone <id>")
	if err != nil {
		return err
	}
	if !list.Uncomplete(id) {
		return fmt.Errorf("todo with ID %d not found", id)
	}
	if err := saveList(logger, list, cfg.DataFile); err != nil {
		return err
	}
	fmt.Printf("Marked todo [%d] as not completed\n", id)
	return nil
}

// deleteCommand removes an item and all of its sub-items.
func deleteCommand(cfg *config.Config, logger *log.Logger, list *todo.List, args []string) error {
	id, err := parseIDArg(args, "Usage: todo delete <id>")
	if err != nil {
		return err
	}
	if !list.Delete(id) {
		return fmt.Errorf("todo with ID %d not found", id)
	}
	if err := saveList(logger, list, cfg.DataFile); err != nil {
		return err
	}
	fmt.Printf("Deleted todo [%d] and all its sub-todos\n", id)
	return nil
}

// saveList persists the list. A write failure is fatal for the
// invocation; nothing is retried.
func saveList(logger *log.Logger, list *todo.List, path string) error {
	if err := list.Save(path); err != nil {
		return err
	}
	logger.Debug("saved todo file", "path", path, "items", len(list.Items))
	return nil
}

// markers returns the render markers, honoring config overrides.
func markers(cfg *config.Config) (done, open string) {
	done, open = todo.MarkerDone, todo.MarkerTodo
	if cfg.MarkerDone != "" {
		done = cfg.MarkerDone
	}
	if cfg.MarkerTodo != "" {
		open = cfg.MarkerTodo
	}
	return done, open
}

// parseIDArg parses the single required id argument of done, undone,
// and delete.
func parseIDArg(args []string, usage string) (uint32, error) {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, usage)
		return 0, fmt.Errorf("missing todo ID")
	}
	id, err := parseID(args[0])
	if err != nil {
		return 0, fmt.Errorf("invalid todo ID %q", args[0])
	}
	return id, nil
}

func parseID(s string) (uint32, error) {
	v, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return 0, err
	}
	return uint32(v), nil
}

func printUsage(fs *flag.FlagSet, w io.Writer) {
	fmt.Fprintln(w, "todo - command-line hierarchical todo manager")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "USAGE:")
	fmt.Fprintln(w, "  todo [flags] [command] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "COMMANDS:")
	fmt.Fprintln(w, "  list, ls               List all todos (default)")
	fmt.Fprintln(w, "  add <text>             Add a new todo")
	fmt.Fprintln(w, "  sub <parent_id> <text> Add a sub-todo to an existing todo")
	fmt.Fprintln(w, "  done <id>              Mark a todo as completed")
	fmt.Fprintln(w, "  undone <id>            Mark a todo as not completed")
	fmt.Fprintln(w, "  delete, rm <id>        Delete a todo and all its sub-todos")
	fmt.Fprintln(w, "  tui                    Browse todos interactively")
	fmt.Fprintln(w, "  help                   Show this help message")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "FLAGS:")
	fs.SetOutput(w)
	fs.PrintDefaults()
	fmt.Fprintln(w)
	fmt.Fprintln(w, "EXAMPLES:")
	fmt.Fprintln(w, "  todo add \"Buy groceries\"")
	fmt.Fprintln(w, "  todo sub 1 \"Buy milk\"")
	fmt.Fprintln(w, "  todo done 2")
	fmt.Fprintln(w, "  todo delete 1")
}
