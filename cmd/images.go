package cmd

import (
	"fmt"
	"net/http"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/mathcards/internal/attribution"
	"github.com/abhisek/mathcards/internal/logging"
)

var imagesCmd = &cobra.Command{
	Use:   "images",
	Short: "Download reference images and write " + attribution.FileName,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		flags := cmd.Flags()
		if flags.Changed("manifest") {
			cfg.Images.Manifest, _ = flags.GetString("manifest")
		}
		if flags.Changed("out") {
			cfg.Images.OutputDir, _ = flags.GetString("out")
		}
		attributions, _ := flags.GetString("attributions")

		logger, err := logging.New(cfg.Logging.Level, cfg.Logging.File)
		if err != nil {
			return fmt.Errorf("init logger: %w", err)
		}
		defer logger.Sync() //nolint:errcheck

		items, err := attribution.LoadManifest(cfg.Images.Manifest)
		if err != nil {
			return err
		}

		client := &http.Client{Timeout: cfg.ImagesTimeout()}
		res, err := attribution.NewDownloader(client, cfg.Images.OutputDir, logger).Run(cmd.Context(), items)
		if err != nil {
			return fmt.Errorf("download images: %w", err)
		}

		if err := attribution.WriteFile(attributions, res.Downloaded, cfg.Images.OutputDir); err != nil {
			return err
		}
		logger.Info("attributions written",
			zap.String("path", attributions),
			zap.Int("downloaded", len(res.Downloaded)),
			zap.Int("failed", len(res.Failed)),
		)

		fmt.Printf("Downloaded %d of %d images into %s\n", len(res.Downloaded), len(items), cfg.Images.OutputDir)
		for _, f := range res.Failed {
			fmt.Printf("  ✗ %s: %v\n", f.Item.Name, f.Err)
		}
		return nil
	},
}

func init() {
	imagesCmd.Flags().String("manifest", "", "Image manifest JSON (defaults to config images.manifest)")
	imagesCmd.Flags().String("out", "", "Directory for downloaded images (defaults to config images.output_dir)")
	imagesCmd.Flags().String("attributions", attribution.FileName, "Path of the attribution document")
}
