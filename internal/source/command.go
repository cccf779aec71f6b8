package source

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/google/uuid"
	"mvdan.cc/sh/moreinterp/coreutils"
	"mvdan.cc/sh/v3/expand"
	"mvdan.cc/sh/v3/interp"
	"mvdan.cc/sh/v3/syntax"
)

// Command runs command in dir with a POSIX shell interpreter and returns the
// lines it printed as items. Coreutils are interpreted too, so commands like
// ls or seq behave the same on every platform.
func Command(ctx context.Context, dir, command string) ([]Item, error) {
	file, err := syntax.NewParser().Parse(strings.NewReader(command), "")
	if err != nil {
		return nil, fmt.Errorf("could not parse command: %w", err)
	}
	if dir == "" {
		dir, _ = os.Getwd()
	}

	var stdout, stderr bytes.Buffer
	runner, err := interp.New(
		interp.StdIO(nil, &stdout, &stderr),
		interp.Interactive(false),
		interp.Env(expand.ListEnviron(os.Environ()...)),
		interp.Dir(dir),
		interp.ExecHandlers(coreutils.ExecHandler),
	)
	if err != nil {
		return nil, fmt.Errorf("could not run command: %w", err)
	}

	err = runner.Run(ctx, file)
	slog.Debug("Source command finished", "command", command, "exit_code", exitCode(err))
	if err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return nil, fmt.Errorf("command failed with exit code %d: %s", exitCode(err), msg)
		}
		return nil, fmt.Errorf("command failed with exit code %d: %w", exitCode(err), err)
	}

	out := strings.TrimRight(stdout.String(), "\n")
	if out == "" {
		return nil, nil
	}
	lines := strings.Split(out, "\n")
	items := make([]Item, len(lines))
	for i, line := range lines {
		items[i] = Item{
			ID:     uuid.NewString(),
			Title:  line,
			Detail: fmt.Sprintf("line %d", i+1),
		}
	}
	return items, nil
}

func exitCode(err error) int {
	if err == nil {
		return 0
	}
	var status interp.ExitStatus
	if errors.As(err, &status) {
		return int(status)
	}
	return 1
}
