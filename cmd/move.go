package cmd

import (
	"errors"

	"sparsemv/internal/app"
	"sparsemv/internal/mover"
	"sparsemv/pkg/logger"

	"github.com/spf13/cobra"
)

type MoveFlags struct {
	Input        string
	InputOffset  int64
	Output       string
	OutputOffset int64
	Length       int64
}

var moveFlags MoveFlags

// moveCmd represents the move command
var moveCmd = &cobra.Command{
	Use:   "move",
	Short: "Move a byte range from the input file to the output file",
	Long: `Move a byte range from the input file to the output file. This will:

1. Punch a hole over the target range of the output
2. Seek to each data region of the input, skipping holes
3. Copy the data chunk by chunk to the same relative offset in the output
4. Punch every copied chunk out of the input right after it is written

The input must be a regular file on a filesystem that supports hole
punching. The output is created if it does not exist and is never
truncated.`,
	PreRunE: func(cmd *cobra.Command, args []string) error {
		return validateMoveFlags(cmd, &moveFlags)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		// usage is only useful for argument errors
		cmd.SilenceUsage = true

		logger.Log.Debug("Running move", "input", moveFlags.Input, "output", moveFlags.Output, "length", moveFlags.Length)
		return runMoverApp(&moveFlags)
	},
}

func init() {
	rootCmd.AddCommand(moveCmd)

	// Define flags with struct binding
	moveCmd.Flags().StringVarP(&moveFlags.Input, "input", "i", "", "input file name (required)")
	moveCmd.Flags().Int64Var(&moveFlags.InputOffset, "input-offset", 0, "input offset in bytes")
	moveCmd.Flags().StringVarP(&moveFlags.Output, "output", "o", "", "output file name (required)")
	moveCmd.Flags().Int64Var(&moveFlags.OutputOffset, "output-offset", 0, "output offset in bytes")
	moveCmd.Flags().Int64Var(&moveFlags.Length, "length", 0, "length in bytes (default: input file size minus input offset)")
}

// validateMoveFlags validates the move command flags
func validateMoveFlags(cmd *cobra.Command, flags *MoveFlags) error {
	if !cmd.Flags().Changed("length") {
		flags.Length = -1
	} else if flags.Length < 0 {
		return mover.ConfigError("length", errors.New("must not be negative"))
	}
	return moverOptions(flags).Validate()
}

func moverOptions(flags *MoveFlags) *app.MoverOptions {
	return &app.MoverOptions{
		Input:        flags.Input,
		InputOffset:  flags.InputOffset,
		Output:       flags.Output,
		OutputOffset: flags.OutputOffset,
		Length:       flags.Length,
	}
}

// runMoverApp creates and runs the mover application
func runMoverApp(flags *MoveFlags) error {
	fileService, consoleUI := createServices()

	moverApp := app.NewMoverApp(cfg, fileService, consoleUI, logger.Log)
	_, err := moverApp.Run(moverOptions(flags))
	return err
}
