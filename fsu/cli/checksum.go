package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

func newChecksumCmd(a *app) *cobra.Command {
	var (
		algorithm string
		text      string
	)

	cmd := &cobra.Command{
		Use:   "checksum [FILE|-]",
		Short: "Print the digest of a file, a string or stdin",
		Long: `Print the hex digest of a file, of the --string value, or of stdin.

With no FILE, or when FILE is -, stdin is read.

Examples:
  fsu checksum archive.tar          # md5 of a file
  fsu checksum --string "hello"     # md5 of a literal string
  cat x | fsu checksum -a sha256    # sha256 of stdin`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			useString := cmd.Flags().Changed("string")
			if useString && len(args) > 0 {
				return errors.New("--string and FILE are mutually exclusive")
			}
			if algorithm != "" {
				a.cfg.Checksum.Algorithm = algorithm
			}

			dfs, err := a.fileSystem()
			if err != nil {
				return err
			}

			switch {
			case useString:
				sum, err := dfs.Checksum(text)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), sum)
			case len(args) == 0 || args[0] == "-":
				sum, err := dfs.ChecksumReader(cmd.InOrStdin())
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), sum)
			default:
				sum, err := dfs.ChecksumFile(args[0])
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s  %s\n", sum, args[0])
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&algorithm, "algorithm", "a", "", "digest algorithm: md5, sha1, sha256 (overrides config)")
	cmd.Flags().StringVarP(&text, "string", "s", "", "digest this literal value instead of a file")
	return cmd
}
