package main

import (
	"github.com/spf13/cobra"

	"fwtranscribe/internal/transcribe"
)

func newRootCommand() *cobra.Command {
	var configFlag string
	var verbose bool
	flags := &transcribeFlags{}

	ctx := newCommandContext(&configFlag, &verbose)

	rootCmd := &cobra.Command{
		Use:   "fwtranscribe --audio PATH [flags]",
		Short: "Transcribe an audio file with faster-whisper and print JSON",
		Long: "fwtranscribe transcribes one audio file with the faster-whisper library and\n" +
			"prints {\"text\": ..., \"language\": ...} as a single JSON line on stdout.",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				return newUsageError(cmd, "unrecognized arguments: %q", args)
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("audio") {
				return newUsageError(cmd, "the following arguments are required: --audio")
			}
			return runTranscribe(cmd, ctx, flags)
		},
	}
	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return &usageError{cmd: cmd, err: err}
	})

	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "", "Configuration file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging on stderr")

	fs := rootCmd.Flags()
	fs.StringVar(&flags.audio, "audio", "", "Path to the audio file (required)")
	fs.StringVar(&flags.model, "model", transcribe.DefaultModel, "Model name or local model directory")
	fs.StringVar(&flags.device, "device", transcribe.DefaultDevice, "Inference device: auto, cpu, or cuda")
	fs.StringVar(&flags.computeType, "compute-type", transcribe.DefaultComputeType, "Numeric precision: int8, float16, or float32")
	fs.StringVar(&flags.language, "language", "", "Language hint such as en or zh; region tags and names are reduced to the base code (zh-CN, Chinese -> zh) and auto or none means auto-detect")
	fs.IntVar(&flags.beamSize, "beam-size", transcribe.DefaultBeamSize, "Decoder beam width (values below 1 are raised to 1)")
	fs.Var(newStrictBool(&flags.vadFilter, true), "vad-filter", "Enable voice activity detection: true or false")
	fs.BoolVar(&flags.cache, "cache", false, "Use the transcript cache (default from config)")
	fs.BoolVar(&flags.clipboard, "clipboard", false, "Also copy the transcript text to the clipboard")

	rootCmd.AddCommand(newDoctorCommand(ctx))
	rootCmd.AddCommand(newConfigCommand(ctx))
	rootCmd.AddCommand(newCacheCommand(ctx))

	return rootCmd
}
