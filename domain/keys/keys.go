package keys

import (
	"strings"
)

const (
	// PfxLedgerLock prefixes the distributed lock serializing one market's calls
	PfxLedgerLock = "ledgerLock"
	// PfxTreasury prefixes cached treasury state
	PfxTreasury = "treasury"
	// PfxHealthCheck is used for prefixing health check redis key
	PfxHealthCheck = "healthcheck"
)

// CustomKey is used to join the customized key by componets with specified delimiter
func CustomKey(delimiter string, components ...string) string {
	return strings.Join(components, delimiter)
}

// RedisKey is used to join the redis key by componets
func RedisKey(components ...string) string {
	return CustomKey(":", components...)
}

// RedisLuaKey is used to join the redis key by componets for redis lua
// If a key created by RedisLuaKey prefix to a set of keys
// then the set of keys will be forced in the same shard for doing lua
func RedisLuaKey(components ...string) string {
	return "{" + CustomKey(":", components...) + "}"
}

// GetPrefix returns the first component of a key, used as a metric tag.
func GetPrefix(key string) string {
	key = strings.TrimPrefix(key, "{")
	if i := strings.IndexAny(key, ":}"); i >= 0 {
		return key[:i]
	}
	return key
}
