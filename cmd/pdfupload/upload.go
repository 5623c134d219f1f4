package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"pdf-uploader/internal/config"
	"pdf-uploader/internal/domain"
	"pdf-uploader/internal/service"
	"pdf-uploader/pkg/logger"

	"github.com/spf13/cobra"
)

// errUploadRejected signals that the workflow ended with an error message
// already shown to the user.
var errUploadRejected = errors.New("upload did not complete")

type uploadOptions struct {
	drop    bool
	backend string
	verbose bool
}

// clientFactory builds the upload client; replaced in tests.
var clientFactory = func(cfg domain.Config, log domain.Logger) (domain.UploadClient, error) {
	return config.NewUploadClient(cfg, log)
}

func newRootCmd() *cobra.Command {
	opts := &uploadOptions{}

	cmd := &cobra.Command{
		Use:   "pdfupload [file]",
		Short: "Upload a PDF document to the indexing service",
		Long: `Upload a single PDF document.

The file goes through the same selection rules as the web form: it must
carry a PDF media type or a .pdf extension. Without a file argument the
submission fails with the "no file selected" message.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.backend != "" {
				os.Setenv("UPLOAD_BACKEND", opts.backend)
			}
			cfg := config.NewConfig()

			level := cfg.GetLogLevel()
			if opts.verbose {
				level = "debug"
			}
			log := logger.NewLoggerWithWriter(level, cmd.ErrOrStderr())

			client, err := clientFactory(cfg, log)
			if err != nil {
				return err
			}

			path := ""
			if len(args) == 1 {
				path = args[0]
			}
			return runUpload(cmd.Context(), cmd.OutOrStdout(), client, log, path, opts.drop)
		},
	}

	cmd.Flags().BoolVar(&opts.drop, "drop", false, "Offer the file as a drop instead of a picker selection")
	cmd.Flags().StringVarP(&opts.backend, "backend", "b", "", "Upload backend: api, supabase or s3")
	cmd.Flags().BoolVarP(&opts.verbose, "verbose", "v", false, "Enable debug logging")

	return cmd
}

// runUpload drives one workflow from selection to submission and prints the
// resulting message.
func runUpload(ctx context.Context, out io.Writer, client domain.UploadClient, log domain.Logger, path string, drop bool) error {
	if ctx == nil {
		ctx = context.Background()
	}
	controller := service.NewWorkflowController(client, nil, log, nil)

	if path != "" {
		file, err := service.FileFromPath(path)
		if err != nil {
			return err
		}
		if drop {
			controller.DropFile(nil, []*domain.File{file})
		} else {
			controller.Picker().Set(file.Name)
			controller.SelectFromPicker(file)
		}

		if snap := controller.Snapshot(); snap.Message.ErrorText != "" {
			fmt.Fprintln(out, snap.Message.ErrorText)
			return errUploadRejected
		}
		if summary := controller.Snapshot().File; summary != nil {
			fmt.Fprintf(out, "%s (%s)\n", summary.Name, summary.SizeLabel)
		}
	}

	if err := controller.Submit(ctx); err != nil {
		return err
	}

	snap := controller.Snapshot()
	if snap.Message.ErrorText != "" {
		fmt.Fprintln(out, snap.Message.ErrorText)
		return errUploadRejected
	}
	fmt.Fprintln(out, snap.Message.SuccessText)
	return nil
}
