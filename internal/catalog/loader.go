// Package catalog gathers user API codes from the configured sources and
// registers them once at startup.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/fastygo/apiresponse/domain"
	"github.com/fastygo/apiresponse/internal/registry"
	"github.com/fastygo/apiresponse/repository"
)

// SnapshotStore persists the last catalog read from remote sources.
type SnapshotStore interface {
	Save(codes map[domain.ApiCode]string) error
	Load() (map[domain.ApiCode]string, time.Time, error)
}

// Loader merges static codes with remote sources.
type Loader struct {
	sources  []repository.CatalogSource
	snapshot SnapshotStore
	logger   *zap.Logger
}

// NewLoader creates a loader. snapshot may be nil.
func NewLoader(snapshot SnapshotStore, logger *zap.Logger, sources ...repository.CatalogSource) *Loader {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Loader{sources: sources, snapshot: snapshot, logger: logger}
}

// Load returns static codes merged with every remote source. If a remote
// source fails, the last snapshot replaces the remote part.
func (l *Loader) Load(ctx context.Context, static map[domain.ApiCode]string) (map[domain.ApiCode]string, error) {
	merged := make(map[domain.ApiCode]string, len(static))
	if err := mergeInto(merged, static, "file"); err != nil {
		return nil, err
	}
	if len(l.sources) == 0 {
		return merged, nil
	}

	remote, err := l.loadRemote(ctx)
	if err != nil {
		if l.snapshot == nil {
			return nil, err
		}
		codes, savedAt, snapErr := l.snapshot.Load()
		if snapErr != nil {
			return nil, errors.Join(err, fmt.Errorf("catalog snapshot: %w", snapErr))
		}
		l.logger.Warn("catalog sources unavailable, using snapshot",
			zap.Error(err),
			zap.Time("saved_at", savedAt),
			zap.Int("codes", len(codes)),
		)
		remote = codes
	} else if l.snapshot != nil {
		if err := l.snapshot.Save(remote); err != nil {
			l.logger.Warn("failed to save catalog snapshot", zap.Error(err))
		}
	}

	if err := mergeInto(merged, remote, "remote"); err != nil {
		return nil, err
	}
	return merged, nil
}

// Populate loads the catalog and registers it in reg.
func (l *Loader) Populate(ctx context.Context, reg *registry.Registry, static map[domain.ApiCode]string) error {
	codes, err := l.Load(ctx, static)
	if err != nil {
		return err
	}
	if err := reg.RegisterAll(codes); err != nil {
		return err
	}
	l.logger.Info("api code catalog registered",
		zap.Int("user_codes", len(codes)),
		zap.Int("max_code", int(reg.MaxCode())),
	)
	return nil
}

func (l *Loader) loadRemote(ctx context.Context) (map[domain.ApiCode]string, error) {
	remote := make(map[domain.ApiCode]string)
	for _, src := range l.sources {
		codes, err := src.LoadCodes(ctx)
		if err != nil {
			return nil, fmt.Errorf("catalog source %s: %w", src.Name(), err)
		}
		if err := mergeInto(remote, codes, src.Name()); err != nil {
			return nil, err
		}
		l.logger.Debug("catalog source loaded", zap.String("source", src.Name()), zap.Int("codes", len(codes)))
	}
	return remote, nil
}

// mergeInto copies src into dst. The same code with two different messages
// is a conflict.
func mergeInto(dst, src map[domain.ApiCode]string, origin string) error {
	for code, msg := range src {
		if existing, ok := dst[code]; ok && existing != msg {
			return domain.Errorf(domain.ErrCodeDuplicateCode,
				"api code %d from %s conflicts with an earlier definition", code, origin)
		}
		dst[code] = msg
	}
	return nil
}
