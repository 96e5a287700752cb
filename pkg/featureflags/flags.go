// ABOUTME: Feature flag management for toggling optional NewsNex features
// ABOUTME: Provides interface-based feature toggling with env and static backends

package featureflags

import (
	"context"
	"net/http"
	"os"
	"strings"
	"sync"
)

// FeatureFlag represents a single feature flag
type FeatureFlag string

// Defined feature flags
const (
	// FeedExtraction enables batch extraction from RSS/Atom feeds
	FeedExtraction FeatureFlag = "feed_extraction"

	// ShareEnabled enables the share functionality
	ShareEnabled FeatureFlag = "share_enabled"

	// LinkedInEnrichment enables LinkedIn lookups when an extraction asks for them
	LinkedInEnrichment FeatureFlag = "linkedin_enrichment"

	// MetadataFallback fills missing article fields from page metadata
	MetadataFallback FeatureFlag = "metadata_fallback"

	// RateLimitEnabled enables rate limiting
	RateLimitEnabled FeatureFlag = "rate_limit_enabled"

	// CacheEnabled enables caching of fetched feeds
	CacheEnabled FeatureFlag = "cache_enabled"
)

// All lists every defined flag
func All() []FeatureFlag {
	return []FeatureFlag{FeedExtraction, ShareEnabled, LinkedInEnrichment, MetadataFallback, RateLimitEnabled, CacheEnabled}
}

// Defaults returns the state of every flag when nothing overrides it
func Defaults() map[FeatureFlag]bool {
	defaults := make(map[FeatureFlag]bool)
	for _, flag := range All() {
		defaults[flag] = true
	}
	return defaults
}

// Manager defines the interface for feature flag management
type Manager interface {
	// IsEnabled checks if a feature flag is enabled
	IsEnabled(ctx context.Context, flag FeatureFlag) bool

	// SetEnabled sets a feature flag's state (for testing)
	SetEnabled(flag FeatureFlag, enabled bool)

	// GetAllFlags returns the state of all flags
	GetAllFlags() map[FeatureFlag]bool
}

// EnvManager implements Manager using environment variables. A flag whose
// variable is unset takes its default.
type EnvManager struct {
	mu        sync.RWMutex
	overrides map[FeatureFlag]bool
	defaults  map[FeatureFlag]bool
	prefix    string
}

// NewEnvManager creates a new environment-based feature flag manager
func NewEnvManager(prefix string) *EnvManager {
	return NewEnvManagerWithDefaults(prefix, Defaults())
}

// NewEnvManagerWithDefaults creates an env manager with explicit defaults
func NewEnvManagerWithDefaults(prefix string, defaults map[FeatureFlag]bool) *EnvManager {
	if prefix == "" {
		prefix = "FEATURE_"
	}
	if defaults == nil {
		defaults = make(map[FeatureFlag]bool)
	}
	return &EnvManager{
		overrides: make(map[FeatureFlag]bool),
		defaults:  defaults,
		prefix:    prefix,
	}
}

// IsEnabled checks if a feature flag is enabled
func (m *EnvManager) IsEnabled(ctx context.Context, flag FeatureFlag) bool {
	m.mu.RLock()
	if enabled, ok := m.overrides[flag]; ok {
		m.mu.RUnlock()
		return enabled
	}
	fallback := m.defaults[flag]
	m.mu.RUnlock()

	// Check environment variable
	envKey := m.prefix + strings.ToUpper(string(flag))
	value, ok := os.LookupEnv(envKey)
	if !ok || value == "" {
		return fallback
	}

	return strings.ToLower(value) == "true" || value == "1" || strings.ToLower(value) == "enabled"
}

// SetEnabled sets a feature flag's state (mainly for testing)
func (m *EnvManager) SetEnabled(flag FeatureFlag, enabled bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.overrides[flag] = enabled
}

// GetAllFlags returns the state of all defined flags
func (m *EnvManager) GetAllFlags() map[FeatureFlag]bool {
	ctx := context.Background()
	flags := make(map[FeatureFlag]bool)
	for _, flag := range All() {
		flags[flag] = m.IsEnabled(ctx, flag)
	}
	return flags
}

// StaticManager implements Manager with static configuration
type StaticManager struct {
	flags map[FeatureFlag]bool
	mu    sync.RWMutex
}

// NewStaticManager creates a manager with predefined flag states
func NewStaticManager(flags map[FeatureFlag]bool) *StaticManager {
	if flags == nil {
		flags = make(map[FeatureFlag]bool)
	}
	return &StaticManager{
		flags: flags,
	}
}

// IsEnabled checks if a feature flag is enabled
func (m *StaticManager) IsEnabled(ctx context.Context, flag FeatureFlag) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.flags[flag]
}

// SetEnabled sets a feature flag's state
func (m *StaticManager) SetEnabled(flag FeatureFlag, enabled bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.flags[flag] = enabled
}

// GetAllFlags returns all flag states
func (m *StaticManager) GetAllFlags() map[FeatureFlag]bool {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make(map[FeatureFlag]bool)
	for k, v := range m.flags {
		result[k] = v
	}
	return result
}

// ContextKey for storing feature flags in context
type contextKey struct{}

// WithManager adds a feature flag manager to the context
func WithManager(ctx context.Context, manager Manager) context.Context {
	return context.WithValue(ctx, contextKey{}, manager)
}

// FromContext retrieves the feature flag manager from context. Without one,
// every flag takes its default.
func FromContext(ctx context.Context) Manager {
	if manager, ok := ctx.Value(contextKey{}).(Manager); ok {
		return manager
	}
	return NewStaticManager(Defaults())
}

// IsEnabled is a convenience function to check if a feature is enabled
func IsEnabled(ctx context.Context, flag FeatureFlag) bool {
	return FromContext(ctx).IsEnabled(ctx, flag)
}

// Middleware attaches manager to every request context
func Middleware(manager Manager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r.WithContext(WithManager(r.Context(), manager)))
		})
	}
}
