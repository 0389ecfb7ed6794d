package config

import (
	"fmt"

	"github.com/google/uuid"
)

type CacheKeyStruct struct{}

func NewCacheKeyStruct() *CacheKeyStruct {
	return &CacheKeyStruct{}
}

// UserSessionKey returns the cache key holding a user's active session JTI.
func (r *CacheKeyStruct) UserSessionKey(userID uuid.UUID) string {
	return fmt.Sprintf("login:%s", userID)
}

// ImpersonationKey returns the cache key recording which admin is
// impersonating the given user.
func (r *CacheKeyStruct) ImpersonationKey(userID uuid.UUID) string {
	return fmt.Sprintf("impersonate:%s", userID)
}

var CacheKey = NewCacheKeyStruct()
