package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"speech-kit/cmd/wavconv/cmd/version"
	"speech-kit/internal/app/audio"
	"speech-kit/internal/app/converter"
	"speech-kit/internal/app/logging"
	"speech-kit/internal/app/util/files"
)

var (
	Verbose     bool
	ffmpegPath  string
	ffprobePath string
	showBar     bool
	verify      bool
	reportPath  string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "wavconv [file.mp3 | directory]",
	Short: "Convert MP3 files to 16kHz mono 16-bit PCM WAV with ffmpeg",
	Long: `Convert MP3 files to 16kHz mono 16-bit PCM WAV, the input format expected by
the speech-to-text service.

  wavconv                 convert all MP3s in the current folder
  wavconv file.mp3        convert a single file
  wavconv /path/folder    convert all MP3s in the given folder

Each output is written next to its input as <name>_16k.wav, replacing any
previous output.`,
	Args: cobra.MaximumNArgs(1),
	RunE: run,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(version.Cmd)

	rootCmd.PersistentFlags().BoolVarP(&Verbose, "verbose", "V", false, "verbose output")
	rootCmd.Flags().StringVar(&ffmpegPath, "ffmpeg", audio.DefaultFFmpeg, "ffmpeg binary name or path")
	rootCmd.Flags().StringVar(&ffprobePath, "ffprobe", audio.DefaultFFprobe, "ffprobe binary used by --verify and --report")
	rootCmd.Flags().BoolVarP(&showBar, "progress", "p", false, "show a progress bar for folder runs even when not attached to a terminal")
	rootCmd.Flags().BoolVar(&verify, "verify", false, "probe each output and fail it unless it is 16kHz mono 16-bit PCM")
	rootCmd.Flags().StringVarP(&reportPath, "report", "r", "", "write a per-file report to this .xlsx file")
}

func run(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true

	logger, err := logging.NewLogger(Verbose)
	if err != nil {
		return err
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	runner := audio.ExecRunner{}
	if err := audio.CheckFFmpeg(ctx, runner, ffmpegPath); err != nil {
		fmt.Fprintln(os.Stderr, "ERROR: ffmpeg is not installed or not in PATH.")
		fmt.Fprintln(os.Stderr, "Install it with your package manager, then restart your terminal and try again.")
		logger.Debug("ffmpeg check failed", zap.Error(err))
		return err
	}

	var target string
	if len(args) == 1 {
		target = args[0]
	}

	c := converter.NewConverter(
		audio.NewEncoder(runner, ffmpegPath, ffprobePath),
		logger,
		converter.WithVerify(verify),
		converter.WithDurations(reportPath != ""),
		converter.WithProgress(converter.NewProgressManager(converter.ProgressConfig{
			Enabled: converter.ShouldShowProgress(showBar) && !Verbose,
		})),
	)
	defer c.Close()

	report, err := c.Convert(ctx, target)
	if report != nil && reportPath != "" {
		if exportErr := converter.ExportReport(report, reportPath); exportErr != nil {
			logger.Error("failed to export report", zap.String("path", reportPath), zap.Error(exportErr))
		} else {
			fmt.Printf("Report written to %s\n", reportPath)
		}
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
		return err
	}

	if (target == "" || files.Classify(target) == files.PathDir) && report.Total() > 0 {
		converter.PrintSummary(os.Stdout, report)
	}
	return nil
}
