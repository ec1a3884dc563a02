package main

import (
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/rm-hull/render-postfx/cmd"
	"github.com/spf13/cobra"
)

func main() {
	var settingsFile string
	var format string
	var workers int
	var port int
	var debug bool
	var compareFile string
	var interval time.Duration

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	rootCmd := &cobra.Command{
		Use:          "render-postfx",
		Long:         `Post-processing for rendered images: tonemapping, grading, LUTs, bloom and lens effects`,
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().StringVar(&settingsFile, "settings", "", "Path to YAML/JSON effect settings (default $POSTFX_SETTINGS)")

	processCmd := &cobra.Command{
		Use:   "process <input> <output> [--settings <file>] [--compare <file.png>]",
		Short: "Post-process a single image (input may be a local path or an http(s) URL)",
		Args:  cobra.ExactArgs(2),
		RunE: func(_ *cobra.Command, args []string) error {
			return cmd.Process(args[0], args[1], settingsFile, compareFile)
		},
	}
	processCmd.Flags().StringVar(&compareFile, "compare", "", "Also write a before/after animated PNG to this path")

	batchCmd := &cobra.Command{
		Use:   "batch <input-dir> <output-dir> [--settings <file>] [--format <fmt>] [--workers <n>]",
		Short: "Post-process every image in a directory",
		Args:  cobra.ExactArgs(2),
		RunE: func(_ *cobra.Command, args []string) error {
			return cmd.Batch(args[0], args[1], settingsFile, format, workers)
		},
	}
	batchCmd.Flags().StringVar(&format, "format", "png", "Output format: png, jpeg, tiff or bmp")
	batchCmd.Flags().IntVar(&workers, "workers", 0, "Number of worker goroutines (default $POSTFX_WORKERS or 1)")

	watchCmd := &cobra.Command{
		Use:   "watch <inbox-dir> <output-dir> [--interval <duration>]",
		Short: "Periodically post-process new images arriving in an inbox directory",
		Args:  cobra.ExactArgs(2),
		RunE: func(_ *cobra.Command, args []string) error {
			return cmd.Watch(args[0], args[1], settingsFile, format, workers, interval)
		},
	}
	watchCmd.Flags().StringVar(&format, "format", "png", "Output format: png, jpeg, tiff or bmp")
	watchCmd.Flags().IntVar(&workers, "workers", 0, "Number of worker goroutines (default $POSTFX_WORKERS or 1)")
	watchCmd.Flags().DurationVar(&interval, "interval", time.Minute, "How often to sweep the inbox")

	apiServerCmd := &cobra.Command{
		Use:   "api-server [--port <port>] [--debug]",
		Short: "Start HTTP API server",
		Run: func(_ *cobra.Command, _ []string) {
			cmd.ApiServer(settingsFile, port, debug)
		},
	}
	apiServerCmd.Flags().IntVar(&port, "port", 8080, "Port to run HTTP server on")
	apiServerCmd.Flags().BoolVar(&debug, "debug", false, "Enable debugging (pprof) - WARNING: do not enable in production")

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Run: func(_ *cobra.Command, _ []string) {
			cmd.Version(os.Stdout)
		},
	}

	rootCmd.AddCommand(processCmd, batchCmd, watchCmd, apiServerCmd, versionCmd)
	if err := rootCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
