package storage

// WorkItem is one fleet-unit under refurbishment inside a lot.
type WorkItem struct {
	ID           int64  `json:"id"`
	Lote         string `json:"lote"`
	Frota        string `json:"frota"`
	Modelo       string `json:"modelo"`
	GestorID     *int64 `json:"gestor_id"`
	DataInicio   string `json:"data_inicio"`
	DataPrevisao string `json:"data_previsao"`
	StatusID     *int64 `json:"status_id"`
	Progresso    int    `json:"progresso"`
	Observacao   string `json:"observacao"`
}

type FleetUnit struct {
	Frota  string `json:"frota"`
	Modelo string `json:"modelo"`
	Obs    string `json:"obs"`
}

type LotRegistration struct {
	Lote         string      `json:"lote"`
	GestorID     int64       `json:"gestor_id"`
	DataPrevisao string      `json:"data_previsao"`
	Units        []FleetUnit `json:"units"`
}

type WorkItemUpdate struct {
	StatusID   int64  `json:"status_id"`
	Progresso  int    `json:"progresso"`
	Observacao string `json:"observacao"`
	GestorID   int64  `json:"gestor_id"`
}

// ManagerReassign moves the listed fleet-units of a lot to another manager.
// An empty Frotas list applies to the whole lot.
type ManagerReassign struct {
	Lote     string   `json:"lote"`
	GestorID int64    `json:"gestor_id"`
	Frotas   []string `json:"frotas"`
}

type FleetRemoval struct {
	Lote   string   `json:"lote"`
	Frotas []string `json:"frotas"`
}
