// Package fallback runs the regular listing command when xlsd output is not
// meant for a terminal.
package fallback

import (
	"errors"
	"io"
	"os"
	"os/exec"
	"strings"
)

// Command is an external listing command bound to stdio.
type Command struct {
	Name string
	Args []string

	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// New splits command ("ls --color=never") and appends args. The command
// inherits the process stdio.
func New(command string, args []string) (*Command, error) {
	fields := strings.Fields(command)
	if len(fields) == 0 {
		return nil, errors.New("empty fallback command")
	}
	return &Command{
		Name:   fields[0],
		Args:   append(fields[1:], args...),
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}, nil
}

// String returns the command line.
func (c *Command) String() string {
	return strings.Join(append([]string{c.Name}, c.Args...), " ")
}

// Run waits for the command and returns its exit status. The error is only
// set when the command could not be started.
func (c *Command) Run() (int, error) {
	cmd := exec.Command(c.Name, c.Args...)
	cmd.Stdin, cmd.Stdout, cmd.Stderr = c.Stdin, c.Stdout, c.Stderr

	err := cmd.Run()
	var exitErr *exec.ExitError
	switch {
	case err == nil:
		return 0, nil
	case errors.As(err, &exitErr):
		return exitErr.ExitCode(), nil
	}
	return 127, err
}

// Args translates the listing flags ls understands and appends the paths.
func Args(all, long bool, paths []string) []string {
	var args []string
	if all {
		args = append(args, "-a")
	}
	if long {
		args = append(args, "-l")
	}
	return append(args, paths...)
}
