package redis

import (
	"fmt"

	"github.com/MrSnakeDoc/georepo/internal/domain"
)

const (
	// KeyPrefixSheet is the prefix for raw sheet snapshot keys
	KeyPrefixSheet = "georepo:sheet:"
	// KeyAllSheets is the key for the set of snapshotted categories
	KeyAllSheets = "georepo:sheets:all"
	// KeyPrefixFavorites is the prefix for per-user ledger keys
	KeyPrefixFavorites = "georepo:favorites:"
	// KeyVisitors is the visitor counter
	KeyVisitors = "georepo:visitors"
)

// SheetKey returns the Redis key for a category's sheet snapshot
func SheetKey(c domain.Category) string {
	return KeyPrefixSheet + string(c)
}

// AllSheetsKey returns the key for the set of snapshotted categories
func AllSheetsKey() string {
	return KeyAllSheets
}

// FavoritesKey returns the Redis key holding a user's ledger
func FavoritesKey(owner string) string {
	return KeyPrefixFavorites + owner
}

// ExtractCategory extracts the category from a sheet snapshot key
func ExtractCategory(key string) (domain.Category, error) {
	if len(key) <= len(KeyPrefixSheet) {
		return "", fmt.Errorf("invalid sheet key: %s", key)
	}
	return domain.ParseCategory(key[len(KeyPrefixSheet):])
}
