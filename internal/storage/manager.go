package storage

type Manager struct {
	ID    int64  `json:"id"`
	Nome  string `json:"nome"`
	Setor string `json:"setor"`
}

// StatusConfig is one entry of the work item status registry.
type StatusConfig struct {
	ID   int64  `json:"id"`
	Nome string `json:"nome"`
	Cor  string `json:"cor"`
}
