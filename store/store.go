package store

import "context"

// Fixed keys for all extension-wide state. Values are whole records: the
// store is atomic per key only, so each logical entity lives under exactly
// one key and is always written wholesale.
const (
	KeyUserProfile  = "stylein_user_profile"
	KeyWardrobe     = "stylein_current_wardrobe"
	KeyHistory      = "stylein_history"
	KeySavedOutfits = "stylein_saved_outfits"
	KeyCollections  = "stylein_collections"
	KeyProfileImage = "stylein_profile_image" // dashboard-variant alias
)

// Store is the persistent key-value store shared by the coordinator and all
// surfaces. Implementations must guarantee atomicity of a single Set; no
// cross-key transaction is provided or assumed anywhere.
type Store interface {
	// Get unmarshals the value under key into out. The bool is false when
	// the key is absent, in which case out is left untouched.
	Get(ctx context.Context, key string, out interface{}) (bool, error)
	// Set replaces the value under key.
	Set(ctx context.Context, key string, value interface{}) error
	// Delete removes the given keys. Missing keys are not an error.
	Delete(ctx context.Context, keys ...string) error
	Close(ctx context.Context) error
}
