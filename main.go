package main

import (
	"context"
	"net/http"
	"time"

	"imprint/config"
	"imprint/encoder"
	"imprint/fontcache"
	"imprint/logger"
	"imprint/records"
	"imprint/routes"
)

func main() {
	logger.Info("Starting Imprint server initialization")

	// Initialize render record store
	logger.Debug("Initializing render records database")
	if err := records.Init(config.GetRecordsDBPath()); err != nil {
		logger.Fatalf("Failed to initialize render record store: %v", err)
	}
	defer records.Close()
	logger.Info("Render records database initialized successfully")

	// Probe the host for encoders (cwebp may be absent; PNG always works)
	logger.Debug("Registering image encoders")
	encoder.RegisterDefaults()

	// Font registry backed by the on-disk cache
	fonts := fontcache.NewRegistry(config.GetFontCacheDir())
	routes.Init(fonts)

	// Start cleanup routine for old render records (runs every 24 hours)
	logger.Info("Starting cleanup routine (runs every 24 hours)")
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel() // This will stop the cleanup routine when main exits
	go cleanupRoutine(ctx)

	// Register HTTP routes. The render endpoint is the catch-all: any path
	// that is not an operational endpoint names a base image.
	logger.Info("Registering HTTP routes")
	http.HandleFunc("/health", routes.HealthHandler)
	http.HandleFunc("/version", routes.VersionHandler)
	http.HandleFunc("/records", routes.RecordQueryHandler)
	http.HandleFunc("/records/list", routes.RecordListHandler)
	http.HandleFunc("/", routes.RenderHandler)
	logger.Info("HTTP routes registered successfully")

	addr := config.GetListenAddr()
	logger.Infof("Imprint server starting on %s", addr)
	if err := http.ListenAndServe(addr, nil); err != nil {
		logger.Fatalf("Server failed to start: %v", err)
	}
}

// cleanupRoutine periodically prunes old render records
func cleanupRoutine(ctx context.Context) {
	logger.Info("Cleanup routine started - will run every 24 hours")
	ticker := time.NewTicker(24 * time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("Cleanup routine stopped due to context cancellation")
			return
		case <-ticker.C:
			// Keep 30 days of render history
			maxAge := 30 * 24 * time.Hour
			logger.Debugf("Cleaning up render records older than %v", maxAge)
			if err := records.CleanupOldRecords(maxAge); err != nil {
				logger.Errorf("Failed to cleanup old render records: %v", err)
			} else {
				logger.Info("Successfully cleaned up old render records")
			}
		}
	}
}
