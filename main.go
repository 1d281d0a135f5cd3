package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"pocketcache/internal/backend"
	"pocketcache/internal/cache"
	"pocketcache/internal/config"
	"pocketcache/internal/logger"
	"pocketcache/internal/serializer"
)

func main() {
	// Load configuration
	cfg := config.Load()

	if err := logger.Init(cfg.LogPath); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Close()

	logger.Infof("starting pocketcache demo: backend=%s ttl=%s compress=%t",
		cfg.BackendType, cfg.DefaultTTL, cfg.Compress)

	// Initialize backend and serializer
	store, err := initializeBackend(cfg)
	if err != nil {
		logger.Errorf("failed to initialize backend: %v", err)
		log.Fatalf("Failed to initialize backend: %v", err)
	}

	var ser serializer.Serializer = serializer.NewJSON()
	if cfg.Compress {
		ser = serializer.NewCompressed(ser)
	}

	c := cache.New(store, ser, cfg.DefaultTTL)
	defer func() {
		if err := c.Close(); err != nil {
			logger.Errorf("failed to close cache: %v", err)
		}
	}()

	ctx := context.Background()

	fmt.Printf("🔧 pocketcache demo: backend=%s, default TTL=%s\n", cfg.BackendType, cfg.DefaultTTL)

	// Basic set/get round trip
	type page struct {
		URL   string `json:"url"`
		Title string `json:"title"`
	}
	if err := c.Set(ctx, "page:home", page{URL: "https://example.com", Title: "Home"}, 0); err != nil {
		log.Fatalf("Set failed: %v", err)
	}
	var got page
	if err := c.Get(ctx, "page:home", &got); err != nil {
		log.Fatalf("Get failed: %v", err)
	}
	fmt.Printf("  cached page: %s (%s)\n", got.Title, got.URL)

	// TTL expiry
	if err := c.Set(ctx, "ephemeral", "short-lived", 500*time.Millisecond); err != nil {
		log.Fatalf("Set failed: %v", err)
	}
	time.Sleep(600 * time.Millisecond)
	var gone string
	if err := c.Get(ctx, "ephemeral", &gone); err != nil {
		fmt.Println("  ephemeral entry expired as expected")
	}

	// Memoization
	calls := 0
	slowSquare := cache.Memoize(c, "square", func(ctx context.Context, args ...any) (int, error) {
		calls++
		n := args[0].(int)
		time.Sleep(100 * time.Millisecond)
		return n * n, nil
	}, cache.MemoizeOptions{KeyPrefix: "demo"})

	for i := 0; i < 3; i++ {
		start := time.Now()
		v, err := slowSquare(ctx, 12)
		if err != nil {
			log.Fatalf("memoized call failed: %v", err)
		}
		fmt.Printf("  square(12) = %d in %s\n", v, time.Since(start).Round(time.Millisecond))
	}
	fmt.Printf("  underlying function ran %d time(s)\n", calls)

	if err := c.Clear(ctx); err != nil {
		logger.Warnf("clear failed: %v", err)
	}
	logger.Infof("demo finished")
	fmt.Println("✅ Done")
}

func initializeBackend(cfg *config.Config) (backend.Backend, error) {
	switch cfg.BackendType {
	case "memory":
		return backend.NewMemory(), nil
	case "filesystem":
		return backend.NewFilesystem(backend.FilesystemConfig{
			Dir:       cfg.CacheDir,
			CreateDir: cfg.CreateDir,
			DirMode:   cfg.DirMode,
			FileMode:  cfg.FileMode,
		})
	case "bolt":
		return backend.NewBolt(cfg.BoltPath, cfg.FileMode)
	default:
		return nil, fmt.Errorf("unsupported cache backend: %s", cfg.BackendType)
	}
}
