package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/transport-report/internal/report"
)

var (
	exportFlags filterFlags
	exportOut   string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the filtered records of a spreadsheet as CSV",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		if err := cfg.Validate("export"); err != nil {
			return err
		}
		f, err := exportFlags.filter()
		if err != nil {
			return err
		}

		tbl, err := loadTable(ctx, cfg, exportFlags.file)
		if err != nil {
			return err
		}
		filtered := report.Apply(tbl, f)

		out, err := os.Create(exportOut)
		if err != nil {
			return eris.Wrapf(err, "create %s", exportOut)
		}
		if err := report.WriteCSV(out, filtered); err != nil {
			out.Close()
			return err
		}
		if err := out.Close(); err != nil {
			return eris.Wrapf(err, "close %s", exportOut)
		}

		zap.L().Info("export complete",
			zap.String("out", exportOut),
			zap.Int("rows", filtered.Len()),
		)
		return nil
	},
}

func init() {
	addFilterFlags(exportCmd, &exportFlags)
	exportCmd.Flags().StringVar(&exportOut, "out", report.ExportFileName, "output CSV path")
	rootCmd.AddCommand(exportCmd)
}
