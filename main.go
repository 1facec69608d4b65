package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/joho/godotenv/autoload"

	"github.com/spf13/cobra"
	"k8s.io/klog/v2"

	"github.com/Zachkp/work-timeline/internal/catalog"
	"github.com/Zachkp/work-timeline/internal/config"
	"github.com/Zachkp/work-timeline/internal/helpers"
	"github.com/Zachkp/work-timeline/internal/models"
	"github.com/Zachkp/work-timeline/internal/viewer"
)

var dataFile string

func main() {
	klog.InitFlags(nil)

	var rootCmd = &cobra.Command{
		Use:   "work-timeline",
		Short: "Portfolio work experience timeline",
		Long: `work-timeline serves a work experience timeline with clickable project
galleries, or renders the same pages to a static directory.`,
		SilenceUsage: true,
	}

	// Global flags
	rootCmd.PersistentFlags().StringVar(&dataFile, "data", "", "Work data YAML file (default: $DATA_FILE or embedded data)")
	rootCmd.PersistentFlags().AddGoFlagSet(flag.CommandLine)

	var serveCmd = &cobra.Command{
		Use:   "serve",
		Short: "Serve the work timeline over HTTP",
		Args:  cobra.NoArgs,
		RunE:  runServe,
	}
	serveCmd.Flags().String("port", "", "Port to listen on (default: $PORT or 8080)")
	serveCmd.Flags().String("db", "", "SQLite database for visitor stats (default: $DB_PATH)")
	serveCmd.Flags().Bool("no-tracking", false, "Disable visitor tracking and the admin area")
	serveCmd.Flags().Bool("watch", false, "Reload the data file when it changes (default: $WATCH_DATA)")
	rootCmd.AddCommand(serveCmd)

	var validateCmd = &cobra.Command{
		Use:   "validate",
		Short: "Check the work data file and list what the timeline will show",
		Args:  cobra.NoArgs,
		RunE:  runValidate,
	}
	rootCmd.AddCommand(validateCmd)

	var renderCmd = &cobra.Command{
		Use:   "render",
		Short: "Render the timeline and every project page to static HTML",
		Args:  cobra.NoArgs,
		RunE:  runRender,
	}
	renderCmd.Flags().StringP("out", "o", "public", "Output directory")
	renderCmd.Flags().StringSlice("assets", []string{"static", "images"}, "Asset directories to copy into the output")
	rootCmd.AddCommand(renderCmd)

	if err := rootCmd.Execute(); err != nil {
		helpers.PrintError("Error: %v", err)
		os.Exit(1)
	}
}

// loadCatalog reads --data, then $DATA_FILE, falling back to the embedded data
func loadCatalog(cfg *config.Config) (*models.Catalog, string, error) {
	path := dataFile
	if path == "" {
		path = cfg.DataFile
	}

	if path == "" {
		c, err := catalog.Parse(defaultWorkData)
		if err != nil {
			return nil, "", fmt.Errorf("embedded work data: %w", err)
		}
		return c, "", nil
	}

	c, err := catalog.Load(path)
	if err != nil {
		return nil, "", err
	}
	return c, path, nil
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := config.Load()

	if port, _ := cmd.Flags().GetString("port"); port != "" {
		cfg.Port = port
	}
	if db, _ := cmd.Flags().GetString("db"); db != "" {
		cfg.DBPath = db
	}
	if cmd.Flags().Changed("watch") {
		cfg.WatchData, _ = cmd.Flags().GetBool("watch")
	}
	noTracking, _ := cmd.Flags().GetBool("no-tracking")

	c, path, err := loadCatalog(cfg)
	if err != nil {
		return err
	}
	source := catalog.NewSource(c, path)
	klog.Infof("loaded %d experiences and %d projects", len(c.Experiences), len(c.Projects))

	var t *tracker
	if !noTracking {
		t, err = openTracker(cfg.DBPath)
		if err != nil {
			return fmt.Errorf("visitor tracking: %w", err)
		}
		defer t.Close()

		// Clean up old visitor data for privacy compliance (run in background)
		go func() {
			if _, err := t.cleanupOldData(); err != nil {
				klog.Errorf("Error cleaning up old visitor data: %v", err)
			}
		}()
	}

	s, err := newServer(cfg, source, t)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go s.sessions.Run(ctx, time.Minute, cfg.SessionIdle)

	if cfg.WatchData {
		go func() {
			if err := source.Watch(ctx); err != nil {
				klog.Errorf("watch failed: %v", err)
			}
		}()
	}

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           s.router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		klog.Infof("Listening on %s...", srv.Addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	klog.Info("shutting down ...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func runValidate(cmd *cobra.Command, args []string) error {
	cfg := config.Load()

	c, path, err := loadCatalog(cfg)
	if err != nil {
		return err
	}
	if path == "" {
		path = "embedded work data"
	}

	helpers.PrintSuccess("%s is valid: %d experiences, %d projects", path, len(c.Experiences), len(c.Projects))
	helpers.PrintSeparator()

	unresolved := 0
	for _, e := range c.Experiences {
		helpers.PrintTitle("%s · %s at %s", e.Period, e.Role, e.Company)
		for _, cell := range e.Cells {
			if !cell.IsProject() {
				helpers.PrintInfo("image  %s", cell.Image)
				continue
			}
			p, ok := c.Project(cell.Project)
			if !ok {
				unresolved++
				helpers.PrintWarning("unknown project %q (cell will be left empty)", cell.Project)
				continue
			}
			helpers.PrintInfo("project %s: %d image(s), %d tag(s), %d link(s)", p.Title, len(p.Images), len(p.TechStack), len(viewer.Links(p)))
		}
	}

	if unresolved > 0 {
		helpers.PrintSeparator()
		helpers.PrintWarning("%d cell(s) reference unknown projects", unresolved)
	}
	return nil
}

func runRender(cmd *cobra.Command, args []string) error {
	cfg := config.Load()

	c, _, err := loadCatalog(cfg)
	if err != nil {
		return err
	}

	out, _ := cmd.Flags().GetString("out")
	assets, _ := cmd.Flags().GetStringSlice("assets")

	if err := renderSite(c, renderOpts{OutDir: out, AssetDirs: assets}); err != nil {
		return fmt.Errorf("render failed: %w", err)
	}

	helpers.PrintSuccess("Rendered %d projects to %s", len(c.Projects), out)
	return nil
}
