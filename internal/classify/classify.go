// Package classify decides whether a transaction type tag looks like a
// token-creation event. Both the collector and the scorer depend on it so the
// two stay consistent without the scorer having to refetch anything.
package classify

import "strings"

// creationTags are type tags the upstream provider emits for token creation,
// minting and mint initialization. Matched exactly or as a prefix, since the
// provider sometimes appends venue-specific suffixes.
var creationTags = []string{
	"TOKEN_MINT",
	"CREATE",
	"COMPRESSED_NFT_MINT",
	"NFT_MINT",
	"INITIALIZE_MINT",
	"INITIALIZE_ACCOUNT",
	"CREATE_POOL",
}

// fallbackNeedles catch taxonomies the tag set above misses. Intentionally
// broad; this overcounts on some venues and that is accepted as a known
// approximation of the creation estimate.
var fallbackNeedles = []string{"MINT", "CREATE", "INITIALIZE"}

// IsCreationEvent reports whether a type tag denotes a token-creation event.
func IsCreationEvent(txType string) bool {
	tag := strings.ToUpper(strings.TrimSpace(txType))
	if tag == "" {
		return false
	}
	for _, known := range creationTags {
		if tag == known || strings.HasPrefix(tag, known+"_") {
			return true
		}
	}
	for _, needle := range fallbackNeedles {
		if strings.Contains(tag, needle) {
			return true
		}
	}
	return false
}

// CountCreationEvents counts creation events in a sample of type tags,
// floored at 1: a wallet that deployed the analyzed token has created at
// least that one, even when the sample missed the deployment.
func CountCreationEvents(txTypes []string) int {
	count := 0
	for _, t := range txTypes {
		if IsCreationEvent(t) {
			count++
		}
	}
	if count < 1 {
		count = 1
	}
	return count
}
