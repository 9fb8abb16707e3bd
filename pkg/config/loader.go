package config

import (
	"errors"
	"fmt"
	"os"
	"reflect"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// configCache stores parsed configuration values keyed by type name.
type configCache struct {
	mu     sync.RWMutex
	values map[string]any
	onces  map[string]*sync.Once
}

var (
	globalCache = newConfigCache()

	defaultEnvMu     sync.Mutex
	defaultEnvLoaded bool
)

func newConfigCache() *configCache {
	return &configCache{
		values: make(map[string]any),
		onces:  make(map[string]*sync.Once),
	}
}

// LoadEnv loads variables from the given .env files into the process
// environment. Without arguments it loads ".env" from the working directory.
// Variables that are already set are not overridden; when several files set
// the same key, the later file wins.
func LoadEnv(paths ...string) error {
	defaultEnvMu.Lock()
	defer defaultEnvMu.Unlock()

	if len(paths) == 0 {
		defaultEnvLoaded = true
		if err := godotenv.Load(); err != nil {
			return errors.Join(ErrLoadingEnvFile, err)
		}
		return nil
	}

	values, err := godotenv.Read(paths...)
	if err != nil {
		return errors.Join(ErrLoadingEnvFile, err)
	}
	for k, v := range values {
		if _, set := os.LookupEnv(k); set {
			continue
		}
		if err := os.Setenv(k, v); err != nil {
			return errors.Join(ErrLoadingEnvFile, err)
		}
	}
	defaultEnvLoaded = true
	return nil
}

// MustLoadEnv works like LoadEnv but panics on failure.
func MustLoadEnv(paths ...string) {
	if err := LoadEnv(paths...); err != nil {
		panic(fmt.Sprintf("Failed to load env files: %v", err))
	}
}

// Load parses environment variables into the provided configuration struct.
// Each configuration type is parsed once; later calls return the cached value.
//
// The default .env file is loaded on first use if present.
//
// Example:
//
//	type SlugConfig struct {
//		Pattern string `env:"SLUG_PATTERN" envDefault:":name"`
//		Field   string `env:"SLUG_FIELD" envDefault:"slug"`
//	}
//
//	var cfg SlugConfig
//	if err := config.Load(&cfg); err != nil {
//		// Handle error
//	}
func Load[T any](v *T) error {
	loadDefaultEnv()
	if v == nil {
		return ErrNilPointer
	}

	typeName := getTypeName[T]()

	globalCache.mu.RLock()
	if cached, ok := globalCache.values[typeName]; ok {
		*v = cached.(T)
		globalCache.mu.RUnlock()
		return nil
	}
	globalCache.mu.RUnlock()

	globalCache.mu.Lock()
	once, exists := globalCache.onces[typeName]
	if !exists {
		once = new(sync.Once)
		globalCache.onces[typeName] = once
	}
	globalCache.mu.Unlock()

	var err error
	once.Do(func() {
		var parsed T
		if parseErr := env.Parse(&parsed); parseErr != nil {
			err = errors.Join(ErrParsingConfig, parseErr)
			return
		}

		globalCache.mu.Lock()
		globalCache.values[typeName] = parsed
		globalCache.mu.Unlock()
	})

	globalCache.mu.Lock()
	defer globalCache.mu.Unlock()
	if cached, ok := globalCache.values[typeName]; ok {
		*v = cached.(T)
		return nil
	}

	// Parsing failed: forget the once so the next call retries.
	delete(globalCache.onces, typeName)
	if err == nil {
		err = ErrConfigNotLoaded
	}
	return err
}

// MustLoad works like Load but panics if configuration loading fails.
func MustLoad[T any](v *T) {
	if err := Load(v); err != nil {
		panic(fmt.Sprintf("Failed to load required configuration: %v", err))
	}
}

// ForceReloadConfig drops the cached value for T and parses it again.
func ForceReloadConfig[T any](v *T) error {
	typeName := getTypeName[T]()

	globalCache.mu.Lock()
	delete(globalCache.values, typeName)
	delete(globalCache.onces, typeName)
	globalCache.mu.Unlock()

	return Load(v)
}

// ResetCache clears every cached configuration and forgets that the default
// .env file was loaded.
func ResetCache() {
	globalCache.mu.Lock()
	globalCache.values = make(map[string]any)
	globalCache.onces = make(map[string]*sync.Once)
	globalCache.mu.Unlock()

	defaultEnvMu.Lock()
	defaultEnvLoaded = false
	defaultEnvMu.Unlock()
}

func loadDefaultEnv() {
	defaultEnvMu.Lock()
	defer defaultEnvMu.Unlock()
	if defaultEnvLoaded {
		return
	}
	defaultEnvLoaded = true
	// The .env file is optional.
	_ = godotenv.Load()
}

func getTypeName[T any]() string {
	t := reflect.TypeFor[T]()
	return t.PkgPath() + "." + t.String()
}
