package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	pathpkg "path/filepath"
	"sort"

	"github.com/nxadm/tail"
	"github.com/spf13/cobra"
)

// ErrNoLogFile is returned when no debug log exists in the directory.
var ErrNoLogFile = errors.New("no n64view debug log found")

// latestLog returns the newest log written with N64VIEW_LOG_TO_FILE=1
// in dir. The timestamped names sort chronologically.
func latestLog(dir string) (string, error) {
	matches, err := pathpkg.Glob(pathpkg.Join(dir, "n64view-*-debug.log"))
	if err != nil {
		return "", err
	}
	if len(matches) == 0 {
		return "", fmt.Errorf("%s: %w", dir, ErrNoLogFile)
	}
	sort.Strings(matches)
	return matches[len(matches)-1], nil
}

// followLog copies path to w. With follow set it keeps reading appended
// lines until ctx is done.
func followLog(ctx context.Context, w io.Writer, path string, follow bool) error {
	t, err := tail.TailFile(path, tail.Config{
		Follow:    follow,
		ReOpen:    follow,
		MustExist: true,
		Logger:    tail.DiscardingLogger,
	})
	if err != nil {
		return fmt.Errorf("tail %s: %w", path, err)
	}
	defer t.Cleanup()

	for {
		select {
		case <-ctx.Done():
			t.Stop()
			return nil
		case line, ok := <-t.Lines:
			if !ok {
				return t.Wait()
			}
			if line.Err != nil {
				return line.Err
			}
			fmt.Fprintln(w, line.Text)
		}
	}
}

var logsCmd = &cobra.Command{
	Use:   "logs [file]",
	Short: "Show the debug log",
	Long: `Print the newest debug log written with N64VIEW_LOG_TO_FILE=1, or the
named file. With --follow, keep printing lines as they are appended.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var path string
		if len(args) > 0 {
			path = args[0]
		} else {
			var err error
			if path, err = latestLog("."); err != nil {
				return err
			}
		}
		follow, _ := cmd.Flags().GetBool("follow")
		return followLog(cmd.Context(), cmd.OutOrStdout(), path, follow)
	},
}

func init() {
	logsCmd.Flags().BoolP("follow", "f", false, "Keep reading appended lines")
	rootCmd.AddCommand(logsCmd)
}
