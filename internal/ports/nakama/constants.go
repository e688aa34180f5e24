package nakama

const (
	// RpcFillSeats is the Nakama RPC id clients call to create AI seats for a table.
	RpcFillSeats = "ai_fill_seats"

	// RpcResetSeatMemory is the Nakama RPC id that forgets a seat's stored memory.
	RpcResetSeatMemory = "ai_reset_memory"
)

const (
	// memoryCollection holds one system-owned object per AI seat, keyed by seat id.
	memoryCollection = "ai_memory"

	// configPathEnv names the environment variable pointing at the plugin's YAML config.
	configPathEnv = "GUANDAN_CONFIG"
)
