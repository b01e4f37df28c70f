package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.etcd.io/bbolt"

	"lovestudio/config"
	"lovestudio/export"
	"lovestudio/render"
	"lovestudio/storage"
	"lovestudio/utils"
)

type rootFlags struct {
	configPath string
	verbose    bool
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}

	cmd := &cobra.Command{
		Use:           "lovestudio",
		Short:         "Love Studio composes themed greeting cards and exports them as PDF",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(flags, serveOptions{})
		},
	}

	cmd.PersistentFlags().StringVarP(&flags.configPath, "config", "c", "config.toml", "Path to configuration file")
	cmd.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "Enable debug logging")

	cmd.AddCommand(newServeCmd(flags))
	cmd.AddCommand(newExportCmd(flags))

	return cmd
}

// appContext holds what both commands open from the configuration
type appContext struct {
	config   *config.Config
	db       *bbolt.DB
	cards    *storage.CardStore
	prefs    *storage.Preferences
	pipeline *export.Pipeline
	browser  *export.ChromiumRasterizer
	cache    *utils.MemoryCache
}

func openAppContext(flags *rootFlags) (*appContext, error) {
	cfg, err := config.LoadConfig(flags.configPath)
	if err != nil {
		return nil, err
	}

	utils.Configure(cfg.Log.Level, cfg.Log.Human)
	if flags.verbose {
		utils.Log.SetLevel(utils.DEBUG)
	}

	db, err := storage.InitDB(cfg.Storage.DataDir)
	if err != nil {
		return nil, fmt.Errorf("failed to open storage: %w", err)
	}

	local := storage.NewLocalStorage(db)

	page, err := export.LookupPageSize(cfg.Export.PageSize)
	if err != nil {
		db.Close()
		return nil, err
	}

	browser := &export.ChromiumRasterizer{
		BrowserPath: cfg.Export.BrowserPath,
		Headless:    cfg.Export.Headless,
		Timeout:     cfg.Export.Timeout(),
	}
	cache := utils.NewMemoryCache(time.Minute)

	opts := export.DefaultOptions()
	opts.Page = page
	opts.MarginMM = cfg.Export.MarginMM
	opts.Scale = cfg.Export.RasterScale
	opts.MaxRasterWidth = cfg.Export.MaxRasterWidth
	opts.Timeout = cfg.Export.Timeout()
	opts.CacheTTL = cfg.Export.CacheTTL()

	renderer := render.New(render.NewEngine(false))

	return &appContext{
		config:   cfg,
		db:       db,
		cards:    storage.NewCardStore(local),
		prefs:    storage.NewPreferences(local),
		pipeline: export.NewPipeline(renderer, browser, opts, cache),
		browser:  browser,
		cache:    cache,
	}, nil
}

func (rt *appContext) Close() {
	rt.cache.Close()
	if err := rt.browser.Close(); err != nil {
		utils.Log.Warn("Failed to stop browser: %v", err)
	}
	if err := rt.db.Close(); err != nil {
		utils.Log.Warn("Failed to close storage: %v", err)
	}
}

type serveOptions struct {
	reload bool
}

func newServeCmd(root *rootFlags) *cobra.Command {
	opts := serveOptions{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the card studio web app",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(root, opts)
		},
	}

	cmd.Flags().BoolVar(&opts.reload, "reload", false, "Reload templates on every request")

	return cmd
}

func runServe(flags *rootFlags, opts serveOptions) error {
	rt, err := openAppContext(flags)
	if err != nil {
		return err
	}
	defer rt.Close()

	app := newApp(services{
		config:   rt.config,
		cards:    rt.cards,
		prefs:    rt.prefs,
		exporter: rt.pipeline,
		reload:   opts.reload,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		utils.Log.Info("Starting Love Studio on http://%s", rt.config.Address())
		errCh <- app.Listen(rt.config.Address())
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		utils.Log.Info("Shutting down...")
		return app.ShutdownWithTimeout(5 * time.Second)
	}
}

type exportOptions struct {
	out string
}

func newExportCmd(root *rootFlags) *cobra.Command {
	opts := exportOptions{}

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the saved card as a PDF without starting the server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(cmd.Context(), root, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.out, "out", "o", "", "Output file or directory (defaults to the generated file name)")

	return cmd
}

func runExport(ctx context.Context, flags *rootFlags, opts exportOptions) error {
	if ctx == nil {
		ctx = context.Background()
	}

	rt, err := openAppContext(flags)
	if err != nil {
		return err
	}
	defer rt.Close()

	record, err := rt.cards.Load()
	if errors.Is(err, storage.ErrCardNotFound) {
		return errors.New("no card saved yet, create one in the web app first")
	}
	if err != nil {
		return err
	}

	doc, err := rt.pipeline.SavePDF(ctx, *record)
	if err != nil {
		return err
	}

	path := exportPath(opts.out, doc.Filename)
	if err := os.WriteFile(path, doc.Data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	utils.Log.Info("Saved %s", path)
	return nil
}

// exportPath resolves the --out flag against the generated file name
func exportPath(out, filename string) string {
	if out == "" {
		return filename
	}
	if info, err := os.Stat(out); err == nil && info.IsDir() {
		return filepath.Join(out, filename)
	}
	return out
}
