package storage

// Pendency is a task-board card. FrotaVinculada nil means a general task.
// Dates are ISO calendar dates (2006-01-02), DataPrazo empty means no deadline.
type Pendency struct {
	ID             int64   `json:"id"`
	Titulo         string  `json:"titulo"`
	Descricao      string  `json:"descricao"`
	GestorID       *int64  `json:"gestor_id"`
	FrotaVinculada *string `json:"frota_vinculada"`
	Prioridade     string  `json:"prioridade"`
	Status         string  `json:"status"`
	DataCriacao    string  `json:"data_criacao"`
	DataPrazo      string  `json:"data_prazo,omitempty"`
}

type PendencyInput struct {
	Titulo         string  `json:"titulo"`
	Descricao      string  `json:"descricao"`
	GestorID       int64   `json:"gestor_id"`
	FrotaVinculada *string `json:"frota_vinculada"`
	Prioridade     string  `json:"prioridade"`
	DataPrazo      string  `json:"data_prazo"`
}

type PendencyEdit struct {
	PendencyInput
	Status string `json:"status"`
}
