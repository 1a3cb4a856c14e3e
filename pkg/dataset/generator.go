// Package dataset builds synthetic sender/receiver sets for PSI benchmarks.
package dataset

import (
	"context"
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"path/filepath"
	"sync"
	"time"

	"github.com/aretw0/psibench/internal/metrics"
	"github.com/aretw0/psibench/internal/validator"
	"github.com/aretw0/psibench/pkg/adapters/fs"
	"github.com/aretw0/psibench/pkg/core"
)

const (
	// Letters is the alphabet used for items and labels.
	Letters = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"

	DefaultLabelBytes = 32
	DefaultItemBytes  = 8

	// cancelCheckEvery bounds how often long loops look at the context.
	cancelCheckEvery = 4096
)

// Config is the validated shape of a dataset.
type Config struct {
	SenderSize       int `name:"sender_size" validate:"gt=0"`
	ReceiverSize     int `name:"receiver_size" validate:"gt=0"`
	IntersectionSize int `name:"intersection_size" validate:"gte=0"`
	LabelBytes       int `name:"label_byte_count" validate:"gte=0"`
	ItemBytes        int `name:"item_byte_count" validate:"gt=0"`
}

// Params converts the config to the domain parameters.
func (c Config) Params() core.DatasetParams {
	return core.DatasetParams{
		SenderSize:       c.SenderSize,
		ReceiverSize:     c.ReceiverSize,
		IntersectionSize: c.IntersectionSize,
		LabelBytes:       c.LabelBytes,
		ItemBytes:        c.ItemBytes,
	}
}

// Generator draws sender and receiver sets.
type Generator struct {
	cfg     Config
	rng     *rand.Rand
	logger  *slog.Logger
	metrics *metrics.Recorder

	mu   sync.RWMutex
	last core.DatasetStats
}

// New validates cfg and creates a Generator.
func New(cfg Config, opts ...Option) (*Generator, error) {
	if err := validator.Validate(cfg); err != nil {
		return nil, err
	}
	// Only min(intersection, receiver) items are drawn from the sender set.
	if shared := min(cfg.IntersectionSize, cfg.ReceiverSize); shared > cfg.SenderSize {
		return nil, fmt.Errorf("%w: intersection_size %d with receiver_size %d needs %d sender items, sender_size is %d",
			core.ErrInvalidArgument, cfg.IntersectionSize, cfg.ReceiverSize, shared, cfg.SenderSize)
	}
	space := itemSpace(cfg.ItemBytes, max(cfg.SenderSize, cfg.ReceiverSize))
	if space < cfg.SenderSize || space < cfg.ReceiverSize {
		return nil, fmt.Errorf("%w: %w: %d item bytes only allow %d distinct items",
			core.ErrInvalidArgument, core.ErrKeySpaceExhausted, cfg.ItemBytes, space)
	}

	o := &options{}
	for _, opt := range opts {
		opt(o)
	}
	if o.logger == nil {
		o.logger = slog.Default()
	}

	var seed [32]byte
	if o.seed != nil {
		binary.LittleEndian.PutUint64(seed[:], *o.seed)
	} else if _, err := crand.Read(seed[:]); err != nil {
		return nil, fmt.Errorf("failed to seed generator: %w", err)
	}

	return &Generator{
		cfg:     cfg,
		rng:     rand.New(rand.NewChaCha8(seed)),
		logger:  o.logger,
		metrics: o.metrics,
	}, nil
}

// Generate builds the sender database and the receiver query set.
//
// The query set holds min(IntersectionSize, ReceiverSize) distinct sender items; the rest
// is sampled independently and may still hit sender items by chance.
func (g *Generator) Generate(ctx context.Context) (*core.Dataset, error) {
	start := time.Now()
	ds := &core.Dataset{Params: g.cfg.Params()}

	senderItems := make(map[string]struct{}, g.cfg.SenderSize)
	ds.Sender = make([]core.SenderEntry, 0, g.cfg.SenderSize)
	for len(ds.Sender) < g.cfg.SenderSize {
		if len(ds.Sender)%cancelCheckEvery == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		item := g.randomString(g.cfg.ItemBytes)
		if _, dup := senderItems[item]; dup {
			continue
		}
		senderItems[item] = struct{}{}
		ds.Sender = append(ds.Sender, core.SenderEntry{
			Item:  item,
			Label: g.randomString(g.cfg.LabelBytes),
		})
	}
	g.logger.Debug("sender set created", "size", len(ds.Sender))

	query := make(map[string]struct{}, g.cfg.ReceiverSize)
	ds.Query = make([]string, 0, g.cfg.ReceiverSize)

	// Partial Fisher-Yates over sender indices yields distinct shared items.
	shared := min(g.cfg.IntersectionSize, g.cfg.ReceiverSize)
	idx := make([]int, len(ds.Sender))
	for i := range idx {
		idx[i] = i
	}
	for i := 0; i < shared; i++ {
		j := i + g.rng.IntN(len(idx)-i)
		idx[i], idx[j] = idx[j], idx[i]
		item := ds.Sender[idx[i]].Item
		query[item] = struct{}{}
		ds.Query = append(ds.Query, item)
	}

	for len(ds.Query) < g.cfg.ReceiverSize {
		if len(ds.Query)%cancelCheckEvery == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		item := g.randomString(g.cfg.ItemBytes)
		if _, dup := query[item]; dup {
			continue
		}
		query[item] = struct{}{}
		ds.Query = append(ds.Query, item)
	}

	g.rng.Shuffle(len(ds.Query), func(i, j int) {
		ds.Query[i], ds.Query[j] = ds.Query[j], ds.Query[i]
	})
	g.logger.Debug("receiver set created", "size", len(ds.Query))

	stats := core.DatasetStats{
		SenderRows:   len(ds.Sender),
		QueryRows:    len(ds.Query),
		Intersection: ds.Intersection(),
		Elapsed:      time.Since(start),
	}
	g.mu.Lock()
	g.last = stats
	g.mu.Unlock()

	g.metrics.ObserveDataset(stats.SenderRows, stats.QueryRows)
	g.metrics.ObserveDuration("dataset", stats.Elapsed)
	return ds, nil
}

// WriteFile generates a dataset and writes it atomically as dir/FileName(params).
func (g *Generator) WriteFile(ctx context.Context, dir string) (string, core.DatasetStats, error) {
	ds, err := g.Generate(ctx)
	if err != nil {
		return "", core.DatasetStats{}, err
	}

	g.mu.RLock()
	stats := g.last
	g.mu.RUnlock()

	path := filepath.Join(dir, FileName(ds.Params))
	f, err := fs.CreateAtomic(path, 0644)
	if err != nil {
		return "", stats, err
	}
	if err := Write(f, ds); err != nil {
		f.Abort()
		return "", stats, err
	}
	if err := f.Commit(); err != nil {
		return "", stats, err
	}

	g.logger.Info("wrote combined dataset",
		"path", path,
		"sender", stats.SenderRows,
		"query", stats.QueryRows,
		"intersection", stats.Intersection,
	)
	return path, stats, nil
}

func (g *Generator) randomString(n int) string {
	buf := make([]byte, n)
	for i := range buf {
		buf[i] = Letters[g.rng.IntN(len(Letters))]
	}
	return string(buf)
}

// itemSpace returns len(Letters)^itemBytes, saturating at limit.
func itemSpace(itemBytes, limit int) int {
	space := 1
	for i := 0; i < itemBytes; i++ {
		space *= len(Letters)
		if space >= limit {
			return space
		}
	}
	return space
}
