package generator

import (
	"context"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/decisionops/dashgen/internal/manifest"
)

// Watch regenerates all dashboards each time the manifest file is written.
// A reload that fails to parse or validate keeps the previous output in
// place. Watch runs until ctx is cancelled.
func (g *Generator) Watch(ctx context.Context, manifestPath string) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer func() {
		if err := watcher.Close(); err != nil {
			g.logger.Warn("Failed to close watcher", zap.Error(err))
		}
	}()

	if err := watcher.Add(manifestPath); err != nil {
		return err
	}

	g.logger.Info("Watching manifest for changes", zap.String("path", manifestPath))

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			// Editors often save via rename, which shows up as Create.
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}

			m, err := manifest.Load(manifestPath)
			if err != nil {
				g.logger.Error("Manifest reload failed, keeping previous dashboards", zap.String("path", manifestPath), zap.Error(err))
				continue
			}

			// Template files may have changed alongside the manifest.
			g.loader.Purge()

			if err := g.Run(ctx, m); err != nil {
				g.logger.Error("Dashboard regeneration failed", zap.Error(err))
				continue
			}
			g.logger.Info("Dashboards regenerated", zap.Int("endpoints", len(m.Endpoints)))

			// Re-add the path in case an atomic save replaced the inode.
			_ = watcher.Add(manifestPath)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			g.logger.Error("Watcher error", zap.Error(err))
		}
	}
}
