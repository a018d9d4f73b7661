package types

const (
	// ModuleName defines the module name
	ModuleName = "peg"

	// StoreKey defines the primary module store key
	StoreKey = ModuleName

	// RouterKey defines the module's message routing key
	RouterKey = ModuleName

	// QuerierRoute defines the module's query routing key
	QuerierRoute = ModuleName

	// MemStoreKey defines the in-memory store key
	MemStoreKey = "mem_peg"
)

// Store keys
var (
	// StateKey stores the single PegState record.
	StateKey = []byte{0x01}

	// ParamsKey stores module parameters
	ParamsKey = []byte{0x02}
)
