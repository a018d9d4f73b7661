package types

const (
	// ModuleName defines the module name
	ModuleName = "proxy"

	// StoreKey defines the primary module store key
	StoreKey = ModuleName

	// RouterKey defines the module's message routing key
	RouterKey = ModuleName

	// QuerierRoute defines the module's query routing key
	QuerierRoute = ModuleName

	// MemStoreKey defines the in-memory store key
	MemStoreKey = "mem_proxy"
)

var (
	// BadgePrefix stores BadgeHolding by holder address
	BadgePrefix = []byte{0x01}

	// ParamsKey stores module parameters
	ParamsKey = []byte{0x02}
)

// GetBadgeKey returns the store key for holder's BadgeHolding.
func GetBadgeKey(holder string) []byte {
	return append(BadgePrefix, []byte(holder)...)
}
