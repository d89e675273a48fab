package cli

import (
	"fmt"
	"os"
	"os/exec"

	internal "github.com/ZanzyTHEbar/fsutils/fsu"

	"github.com/spf13/cobra"
)

// TempPathEnv names the variable that carries the scoped path to the child
var TempPathEnv = internal.DefaultEnvPrefix + "_TEMP_PATH"

func newTempCmd(a *app, dir bool) *cobra.Command {
	use, kind := "tempfile", "file"
	if dir {
		use, kind = "tempdir", "directory"
	}

	return &cobra.Command{
		Use:   use + " -- COMMAND [ARGS...]",
		Short: fmt.Sprintf("Run a command with a temp %s that is removed afterwards", kind),
		Long: fmt.Sprintf(`Create a temp %[1]s, run COMMAND with its path in $%[2]s, then remove it.

The %[1]s is removed whether the command succeeds or fails.

Example:
  fsu %[3]s -- sh -c 'echo scratch > "$%[2]s"'`, kind, TempPathEnv, use),
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dfs, err := a.fileSystem()
			if err != nil {
				return err
			}

			run := func(path string) error {
				child := exec.CommandContext(cmd.Context(), args[0], args[1:]...)
				child.Env = append(os.Environ(), TempPathEnv+"="+path)
				child.Stdin = cmd.InOrStdin()
				child.Stdout = cmd.OutOrStdout()
				child.Stderr = cmd.ErrOrStderr()
				if err := child.Run(); err != nil {
					return fmt.Errorf("run %s: %w", args[0], err)
				}
				return nil
			}

			if dir {
				return dfs.WithTempDir(run)
			}
			return dfs.WithTempFile(run)
		},
	}
}
