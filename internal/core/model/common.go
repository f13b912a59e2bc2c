package model

// Persisted ledger keys
const (
	KeyLastConvertedHandTime = "LastConvertedHandTime"
	KeyLastIdUsed            = "LastIdUsed"
)

// Ledger store backends
const (
	StoreJSON   = "json"
	StoreSQLite = "sqlite"
	StoreMemory = "memory"
)
