package cli

import (
	"encoding/json"
	"fmt"

	"github.com/ZanzyTHEbar/fsutils/fsu/filesystem/foldersize"

	"github.com/spf13/cobra"
)

func newSizeCmd(a *app) *cobra.Command {
	var (
		ignore     []string
		ignoreFile string
		asJSON     bool
		strict     bool
	)

	cmd := &cobra.Command{
		Use:   "size DIR",
		Short: "Sum the sizes of the files under a directory",
		Long: `Sum the sizes in bytes of every regular file below DIR.

Files whose base name matches any --ignore glob are left out. Symbolic links
are never followed. Unreadable entries are skipped unless --strict is given.

Examples:
  fsu size ./build
  fsu size ./build --ignore '*.o' --ignore '*.a'
  fsu size ./repo --ignore-file .gitignore --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("ignore-file") {
				a.cfg.FolderSize.IgnoreFile = ignoreFile
			}
			if strict {
				skip := false
				a.cfg.FolderSize.SkipUnreadable = &skip
			}

			dfs, err := a.fileSystem()
			if err != nil {
				return err
			}

			report, err := dfs.MeasureFolder(cmd.Context(), args[0], foldersize.Patterns(ignore...))
			if err != nil {
				return err
			}

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(report)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d\t%s\n", report.Bytes, report.Root)
			return nil
		},
	}

	cmd.Flags().StringArrayVarP(&ignore, "ignore", "i", nil, "glob matched against file base names; repeatable")
	cmd.Flags().StringVar(&ignoreFile, "ignore-file", "", "gitignore-style rules file looked up in DIR")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the full report as JSON")
	cmd.Flags().BoolVar(&strict, "strict", false, "fail on unreadable entries instead of skipping them")
	return cmd
}
