package profile

import "time"

// ============================================================================
// Cache Configuration
// ============================================================================

// CacheSchemaVersion is the current version of the cache schema
// Increment this when the cached profile structure changes to auto-invalidate old entries
const CacheSchemaVersion = "1"

// DefaultCacheSize is the default maximum number of cached profiles
const DefaultCacheSize = 1000

// DefaultCacheTTL is the default time-to-live for cached profiles
const DefaultCacheTTL = 5 * time.Minute

// DefaultMaxRetries is how many times a mutation is attempted when the store reports a version conflict
const DefaultMaxRetries = 3

// ============================================================================
// Codec
// ============================================================================

// zstdMagic opens every zstd frame; documents without it are plain JSON
var zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}

// ============================================================================
// Error Messages
// ============================================================================

const (
	ErrFmtInvalidKey       = "%w: guild and player ids are required (got %q)"
	ErrFmtLoad             = "failed to load profile %s: %w"
	ErrFmtSave             = "failed to save profile %s: %w"
	ErrFmtEncode           = "failed to encode profile %s: %w"
	ErrFmtDecode           = "failed to decode profile: %w"
	ErrFmtNotFound         = "%w: %s"
	ErrFmtStaleVersion     = "%w: %s at version %d, stored %d"
	ErrFmtRetriesExhausted = "profile %s still conflicting after %d attempts: %w"
	ErrFmtStarterTool      = "failed to grant starter tool %s: %w"
)

// ============================================================================
// Log Messages
// ============================================================================

const (
	LogMsgProfileCreated  = "Profile created with catalog defaults"
	LogMsgVersionConflict = "Profile version conflict, retrying mutation"
	LogMsgProfileSaved    = "Profile saved"
)
