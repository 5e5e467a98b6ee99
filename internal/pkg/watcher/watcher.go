package watcher

import (
	"context"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/google/uuid"

	"doc-chat-be/internal/constant"
	"doc-chat-be/internal/pkg/logger"
	"doc-chat-be/internal/service"
)

// settleDelay waits for the writer to finish before registering a file.
const settleDelay = 2 * time.Second

// UploadWatcher registers PDFs dropped straight into a user's upload
// directory, bypassing the HTTP upload endpoint. Files land under
// <dir>/<user_id>/, so the parent directory names the owner.
type UploadWatcher struct {
	dir             string
	documentService service.IDocumentService
	logger          logger.ILogger
}

func NewUploadWatcher(dir string, documentService service.IDocumentService, logger logger.ILogger) *UploadWatcher {
	return &UploadWatcher{
		dir:             dir,
		documentService: documentService,
		logger:          logger,
	}
}

// Watch blocks until ctx is cancelled.
func (w *UploadWatcher) Watch(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer fw.Close()

	if err := fw.Add(w.dir); err != nil {
		return err
	}

	w.logger.Info(constant.ModuleWatcher, "watching upload directory", map[string]interface{}{
		"dir": w.dir,
	})

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if event.Op&fsnotify.Create == 0 {
				continue
			}
			w.handleCreate(ctx, fw, event.Name)

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn(constant.ModuleWatcher, "watch error", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}
}

func (w *UploadWatcher) handleCreate(ctx context.Context, fw *fsnotify.Watcher, path string) {
	// new per-user subdirectory: start watching it
	if filepath.Ext(path) == "" {
		if err := fw.Add(path); err != nil {
			w.logger.Warn(constant.ModuleWatcher, "failed to watch subdirectory", map[string]interface{}{
				"path":  path,
				"error": err.Error(),
			})
		}
		return
	}

	if !strings.EqualFold(filepath.Ext(path), ".pdf") {
		return
	}

	userId, err := uuid.Parse(filepath.Base(filepath.Dir(path)))
	if err != nil {
		w.logger.Warn(constant.ModuleWatcher, "ignoring file outside a user directory", map[string]interface{}{
			"path": path,
		})
		return
	}

	go func() {
		time.Sleep(settleDelay)
		if _, err := w.documentService.Register(ctx, userId, path); err != nil {
			w.logger.Error(constant.ModuleWatcher, "failed to register dropped file", map[string]interface{}{
				"path":  path,
				"error": err.Error(),
			})
			return
		}
		w.logger.Info(constant.ModuleWatcher, "registered dropped file", map[string]interface{}{
			"path": path,
		})
	}()
}
