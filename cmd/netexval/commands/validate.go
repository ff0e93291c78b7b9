package commands

import (
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/erraggy/netexval/netexerrors"
)

func newValidateCmd(g *globalFlags) *cobra.Command {
	f := &validatorFlags{}
	cmd := &cobra.Command{
		Use:   "validate [flags] <file|->",
		Short: "Validate a single NeTEx document",
		Long: `Validate a single NeTEx document: XML schema, structural rules, identifiers and
references, and business rules.

References into shared data files cannot resolve when a line file is validated
on its own; use the dataset command, or --external-codespace, for line files.

Exit codes: 0 valid, 1 failure, 2 invalid report, 75 report file locked.`,
		Example: `  netexval validate --codespace FLB _FLB_shared_data.xml
  netexval validate -c FLB --schema xsd/NeTEx_publication.xsd --format json line.xml
  cat line.xml | netexval validate -c FLB --external-codespace FLB -`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name, content, err := readDocument(cmd.InOrStdin(), args[0])
			if err != nil {
				return err
			}

			v, err := f.buildValidator(newLogger(cmd.ErrOrStderr(), g.Verbose))
			if err != nil {
				return err
			}
			reportID := f.reportID(time.Now())
			defer v.CleanUp(reportID)

			rep, err := v.Validate(f.Codespace, reportID, name, content)
			if err != nil {
				return err
			}
			out, err := renderReport(rep, f.Format)
			if err != nil {
				return err
			}
			if err := emit(cmd.Context(), cmd.OutOrStdout(), f.Output, out); err != nil {
				return err
			}
			return checkReport(rep)
		},
	}
	f.register(cmd)
	return cmd
}

// readDocument reads the document at path, or stdin for StdinFilePath.
func readDocument(stdin io.Reader, path string) (string, []byte, error) {
	if path == StdinFilePath {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", nil, netexerrors.Fatalf("validate", netexerrors.ErrInput, "reading stdin: %v", err)
		}
		return "stdin.xml", data, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", nil, netexerrors.Fatalf("validate", netexerrors.ErrInput, "reading %s: %v", path, err)
	}
	return filepath.Base(path), data, nil
}
