package commands

import (
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/erraggy/netexval/dataset"
	"github.com/erraggy/netexval/internal/fileutil"
	"github.com/erraggy/netexval/internal/options"
	"github.com/erraggy/netexval/netexerrors"
)

// datasetFlags contains the dataset assembly flags.
type datasetFlags struct {
	Dir          string
	Bundle       string
	Shared       []string
	SharedPrefix string
	BundleOut    string
}

func newDatasetCmd(g *globalFlags) *cobra.Command {
	f := &validatorFlags{}
	d := &datasetFlags{}
	cmd := &cobra.Command{
		Use:   "dataset [flags] [file...]",
		Short: "Validate a NeTEx dataset of shared data and line files",
		Long: `Validate a NeTEx dataset under one report id. Shared data files are validated
first, then the line files, so references from line files into shared data
resolve.

Provide exactly one source: --dir, --bundle, or a list of files. Declare the
shared files with --shared, with --shared-prefix, or in the comment of a txtar
bundle as "shared: <name>" lines.

Exit codes: 0 valid, 1 failure, 2 invalid report, 75 report file locked.`,
		Example: `  netexval dataset -c FLB --dir ./export --shared-prefix _
  netexval dataset -c FLB --bundle flb.txtar --format yaml -o report.yaml
  netexval dataset -c FLB --shared common.xml common.xml line_1.xml line_2.xml
  netexval dataset -c FLB --dir ./export --shared-prefix _ --bundle-out flb.txtar`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ds, err := d.load(args)
			if err != nil {
				return err
			}
			if d.BundleOut != "" {
				if err := os.WriteFile(d.BundleOut, ds.Txtar(), fileutil.ReadableByAll); err != nil {
					return netexerrors.Fatalf("dataset", netexerrors.ErrInput, "writing %s: %v", d.BundleOut, err)
				}
			}

			v, err := f.buildValidator(newLogger(cmd.ErrOrStderr(), g.Verbose))
			if err != nil {
				return err
			}
			rep, err := v.ValidateDataset(f.Codespace, f.reportID(time.Now()), ds)
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

	fs := cmd.Flags()
	fs.StringVar(&d.Dir, "dir", "", "directory whose .xml files form the dataset")
	fs.StringVar(&d.Bundle, "bundle", "", "txtar bundle holding the dataset")
	fs.StringArrayVar(&d.Shared, "shared", nil, "name of a shared data file; repeatable")
	fs.StringVar(&d.SharedPrefix, "shared-prefix", "", "treat files whose name starts with this prefix as shared data")
	fs.StringVar(&d.BundleOut, "bundle-out", "", "also write the assembled dataset as a txtar bundle")
	return cmd
}

// load assembles the dataset from exactly one source.
func (d *datasetFlags) load(files []string) (*dataset.Dataset, error) {
	if err := options.ValidateSingleInputSource(
		"must specify a dataset source (use --dir, --bundle or file arguments)",
		"must specify exactly one dataset source",
		d.Dir != "", d.Bundle != "", len(files) > 0,
	); err != nil {
		return nil, err
	}

	opts := []dataset.Option{dataset.WithShared(d.Shared...)}
	if d.SharedPrefix != "" {
		opts = append(opts, dataset.WithSharedPrefix(d.SharedPrefix))
	}

	switch {
	case d.Dir != "":
		return dataset.FromDir(d.Dir, opts...)
	case d.Bundle != "":
		return dataset.FromTxtarFile(d.Bundle, opts...)
	}

	members := make([]dataset.File, 0, len(files))
	for _, path := range files {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, netexerrors.Fatalf("dataset", netexerrors.ErrInput, "reading %s: %v", path, err)
		}
		members = append(members, dataset.File{Name: filepath.Base(path), Content: data})
	}
	return dataset.New(members, opts...)
}
