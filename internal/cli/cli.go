// Package cli implements marsquery, the terminal front end of the colony
// reports. It works on a local SQLite file.
package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sort"
	"strings"

	"github.com/yukikurage/mars-colony-api/internal/database"
	"github.com/yukikurage/mars-colony-api/internal/logging"
	"github.com/yukikurage/mars-colony-api/internal/models"
	"github.com/yukikurage/mars-colony-api/internal/services"
	"gorm.io/gorm/logger"
)

const usage = `Mars colony queries

Usage:
    marsquery <task> [<db file>]

The database file is asked for when it is not given.`

var (
	banner = strings.Repeat("=", 60)
	alarm  = strings.Repeat("!", 60)
)

// Command runs one report task per invocation.
type Command struct {
	In  io.Reader
	Out io.Writer
	Log *slog.Logger

	in *bufio.Reader
}

// Run executes args (without the program name) and returns the process
// exit code.
func (c *Command) Run(args []string) int {
	if c.Log == nil {
		c.Log = logging.Discard()
	}
	c.in = bufio.NewReader(c.In)

	if len(args) == 0 {
		c.printUsage()
		return 0
	}

	id := args[0]
	t, ok := tasks[id]
	if !ok {
		fmt.Fprintf(c.Out, "Error: task '%s' does not exist\n", id)
		fmt.Fprintf(c.Out, "Available tasks: %s\n", strings.Join(taskIDs(), ", "))
		return 1
	}

	var dbFile string
	if len(args) > 1 {
		dbFile = args[1]
	} else {
		line, err := c.prompt("Enter database name: ")
		if err != nil && !errors.Is(err, io.EOF) {
			fmt.Fprintf(c.Out, "Error: failed to read database name: %v\n", err)
			return 1
		}
		dbFile = line
	}

	fmt.Fprintf(c.Out, "\n%s\nTASK %s: %s\nDatabase: %s\n%s\n\n", banner, id, t.name, dbFile, banner)

	if err := c.execute(t, dbFile); err != nil {
		c.Log.Error("task failed", slog.String("task", id), slog.String("error", err.Error()))
		fmt.Fprintf(c.Out, "\n%s\nERROR while running task %s:\n%v\n%s\n", alarm, id, err, alarm)
		return 1
	}

	fmt.Fprintf(c.Out, "\n%s\nTask %s completed successfully\n%s\n", banner, id, banner)
	return 0
}

func (c *Command) execute(t task, dbFile string) error {
	if strings.TrimSpace(dbFile) == "" {
		return errors.New("a database file is required")
	}
	// The driver would create a missing file; only existing colony data is read.
	info, err := os.Stat(dbFile)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("database file %s does not exist", dbFile)
		}
		return err
	}
	if info.IsDir() {
		return fmt.Errorf("database file %s is a directory", dbFile)
	}

	loc := database.SQLiteLocation(dbFile)
	loc.LogLevel = logger.Silent

	storage := database.NewStorage(c.Log)
	if err := storage.Initialize(loc); err != nil {
		return err
	}
	defer storage.Close()

	db, err := storage.OpenSession()
	if err != nil {
		return err
	}
	if !db.Migrator().HasTable(&models.Colonist{}) {
		return fmt.Errorf("database file %s has no colonists table", dbFile)
	}

	return t.run(c, services.NewReportService(storage, c.Log))
}

func (c *Command) printUsage() {
	fmt.Fprintln(c.Out, usage)
	fmt.Fprintln(c.Out, "\nAvailable tasks:")
	for _, id := range taskIDs() {
		fmt.Fprintf(c.Out, "  %s - %s\n", id, tasks[id].name)
	}
}

// prompt writes question and reads one trimmed line of input.
func (c *Command) prompt(question string) (string, error) {
	fmt.Fprint(c.Out, question)
	line, err := c.in.ReadString('\n')
	return strings.TrimSpace(line), err
}

func (c *Command) printf(format string, args ...any) {
	fmt.Fprintf(c.Out, format, args...)
}

func taskIDs() []string {
	ids := make([]string, 0, len(tasks))
	for id := range tasks {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
