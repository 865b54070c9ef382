package constants

// Board lanes, in display order.
const (
	LaneAFazer  = "A Fazer"
	LaneFazendo = "Fazendo"
	LaneFeito   = "Feito"
)

var Lanes = []string{LaneAFazer, LaneFazendo, LaneFeito}

const (
	PrioridadeAlta  = "Alta"
	PrioridadeMedia = "Média"
	PrioridadeBaixa = "Baixa"
)

var Prioridades = []string{PrioridadeAlta, PrioridadeMedia, PrioridadeBaixa}

var PrioridadeCores = map[string]string{
	PrioridadeAlta:  "#ff4b4b",
	PrioridadeMedia: "#ffa421",
	PrioridadeBaixa: "#27ae60",
}

// Work item statuses the system itself relies on.
const (
	StatusAguardando = "Aguardando"
	StatusConcluido  = "Concluído"
)

// Display values for references that no longer resolve or were never set.
const (
	Desconhecido = "Desconhecido"
	SemGestor    = "-"
	CorNeutra    = "#cccccc"
	FrotaGeral   = "Geral"
)

type SeedManager struct {
	Nome  string
	Setor string
}

type SeedStatus struct {
	Nome string
	Cor  string
}

var SeedManagers = []SeedManager{
	{Nome: "Wendell", Setor: "Coord"},
	{Nome: "Oficina", Setor: "Manut"},
	{Nome: "Terceiro", Setor: "Ext"},
}

var SeedStatuses = []SeedStatus{
	{Nome: StatusAguardando, Cor: "#95a5a6"},
	{Nome: StatusConcluido, Cor: "#2ecc71"},
}

func IsLane(s string) bool {
	for _, l := range Lanes {
		if l == s {
			return true
		}
	}
	return false
}

func IsPrioridade(s string) bool {
	for _, p := range Prioridades {
		if p == s {
			return true
		}
	}
	return false
}
