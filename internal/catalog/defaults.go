package catalog

const (
	DefaultMarketplaceMargin = 0.83
	DefaultMaterialBonus     = 0.25
	DefaultInfraBonus        = 0.15

	DefaultRegionID = "ate_700"
)

// DefaultItems returns the stock infrastructure catalog.
func DefaultItems() []Item {
	return []Item{
		// Mídia fundamental e médio
		{ID: "midia_padrao_24", Label: "Oficina Padrão - 24 alunos", Category: CategoryMedia, Type: TypeFurnishing, Price: 30000,
			Description: "Mobiliário completo para sala de mídia (mesas, cadeiras, armários) adequado para 24 alunos.", RequiresAssembly: true, IsBase: true, Seats: 24},
		{ID: "midia_up_12", Label: "Upgrade 12 alunos", Category: CategoryMedia, Type: TypeFurnishing, Price: 5000,
			Description: "Expansão de mobiliário para atender +12 alunos adicionais.", RequiresAssembly: true, IsUpgrade: true, Seats: 12},
		{ID: "midia_up_6", Label: "Upgrade 6 alunos", Category: CategoryMedia, Type: TypeFurnishing, Price: 2500,
			Description: "Expansão de mobiliário para atender +6 alunos adicionais.", RequiresAssembly: true, IsUpgrade: true, Seats: 6},
		{ID: "midia_ferr_padrao", Label: "Ferramentas Padrão", Category: CategoryMedia, Type: TypeTools, Price: 24000,
			Description: "Kit de produção audiovisual: Câmeras, Tripés, Iluminação básica e Microfones.", IsBase: true},
		{ID: "midia_ferr_pc", Label: "Upgrade Computadores", Category: CategoryMedia, Type: TypeTools, Price: 14000,
			Description: "Estações de edição: 4 Computadores de alta performance para renderização de vídeo.", IsUpgrade: true},

		// Maker fundamental e médio
		{ID: "maker_padrao_24", Label: "Oficina Padrão - 24 alunos", Category: CategoryMaker, Type: TypeFurnishing, Price: 38000,
			Description: "Bancadas robustas, painéis de ferramentas e armários organizadores para espaço Maker (24 alunos).", RequiresAssembly: true, IsBase: true, Seats: 24},
		{ID: "maker_up_12", Label: "Upgrade 12 alunos", Category: CategoryMaker, Type: TypeFurnishing, Price: 15500,
			Description: "Mobiliário adicional para +12 alunos no espaço Maker.", RequiresAssembly: true, IsUpgrade: true, Seats: 12},
		{ID: "maker_up_6", Label: "Upgrade 6 alunos", Category: CategoryMaker, Type: TypeFurnishing, Price: 4500,
			Description: "Mobiliário adicional para +6 alunos no espaço Maker.", RequiresAssembly: true, IsUpgrade: true, Seats: 6},
		{ID: "maker_minima", Label: "Ambientação Mínima", Category: CategoryMaker, Type: TypeFurnishing, Price: 2500,
			Description: "Kit básico de organização: Caixas, sinalização e painel reduzido. (Não inclui bancadas)."},
		{ID: "maker_ferr_padrao", Label: "Ferramentas Padrão", Category: CategoryMaker, Type: TypeTools, Price: 19000,
			Description: "Kit Maker: Impressora 3D, Cortadora Laser de pequeno porte, Ferramentas manuais e Elétricas.", IsBase: true},
		{ID: "maker_ferr_digitais", Label: "Upgrade P. Digitais", Category: CategoryMaker, Type: TypeTools, Price: 18000,
			Description: "Kit de Fabricação Digital: Plotter de recorte e scanners 3D de mão.", IsUpgrade: true},
		{ID: "maker_ferr_pc", Label: "Upgrade Computadores", Category: CategoryMaker, Type: TypeTools, Price: 14000,
			Description: "4 Notebooks ou Chromebooks para modelagem 3D e programação.", IsUpgrade: true},
		{ID: "maker_ferr_red_18", Label: "Ferramentas Red. - 18 alunos", Category: CategoryMaker, Type: TypeTools, Price: 8500,
			Description: "Kit Maker Reduzido: Impressora 3D e ferramentas manuais essenciais para turmas menores."},

		// Maker infantil
		{ID: "infantil_padrao_18", Label: "Oficina Padrão - 18 alunos", Category: CategoryEarlyChildhood, Type: TypeFurnishing, Price: 22500,
			Description: "Mobiliário ergonômico infantil: Mesas baixas, tapetes de atividade e organizadores acessíveis.", RequiresAssembly: true, IsBase: true, Seats: 18},
		{ID: "infantil_up_12", Label: "Upgrade 12 alunos", Category: CategoryEarlyChildhood, Type: TypeFurnishing, Price: 8500,
			Description: "Expansão infantil para +12 alunos.", RequiresAssembly: true, IsUpgrade: true, Seats: 12},
		{ID: "infantil_up_6", Label: "Upgrade 6 alunos", Category: CategoryEarlyChildhood, Type: TypeFurnishing, Price: 1200,
			Description: "Expansão infantil para +6 alunos.", RequiresAssembly: true, IsUpgrade: true, Seats: 6},
		{ID: "infantil_carrinho", Label: "Carrinho", Category: CategoryEarlyChildhood, Type: TypeFurnishing, Price: 4000,
			Description: "Carrinho Maker Móvel: Armazenamento sobre rodas para levar a oficina até a sala de aula."},
		{ID: "infantil_ferr_18", Label: "Ferramentas 18 alunos", Category: CategoryEarlyChildhood, Type: TypeTools, Price: 8500,
			Description: "Ferramentas seguras para crianças: Serras plásticas, parafusadeiras de baixa rotação e consumíveis.", IsBase: true, Seats: 18},
		{ID: "infantil_ferr_up_6", Label: "Upgrade 6 alunos", Category: CategoryEarlyChildhood, Type: TypeTools, Price: 1500,
			Description: "Kit extra de ferramentas infantis para +6 alunos.", IsUpgrade: true, Seats: 6},
	}
}

// DefaultRegions returns the stock freight table.
func DefaultRegions() []Region {
	return []Region{
		{ID: "ate_700", Label: "Até 700Km", PriceSimple: 1500, PriceAssembly: 4000},
		{ID: "sudeste", Label: "Sudeste", PriceSimple: 1500, PriceAssembly: 8500},
		{ID: "sul", Label: "Sul", PriceSimple: 2500, PriceAssembly: 8500},
		{ID: "centro_oeste", Label: "Centro-Oeste", PriceSimple: 2500, PriceAssembly: 8500},
		{ID: "nordeste", Label: "Nordeste", PriceSimple: 4000, PriceAssembly: 15500},
		{ID: "norte", Label: "Norte", PriceSimple: 5000, PriceAssembly: 21800},
	}
}

// DefaultVariables returns the stock tenant tunables.
func DefaultVariables() Variables {
	return Variables{
		MarketplaceMargin: DefaultMarketplaceMargin,
		MaterialBonus:     DefaultMaterialBonus,
		InfraBonus:        DefaultInfraBonus,
	}
}

var stateRegions = map[string]string{
	"AC": "norte", "AL": "nordeste", "AP": "norte", "AM": "norte",
	"BA": "nordeste", "CE": "nordeste", "DF": "centro_oeste", "ES": "sudeste",
	"GO": "centro_oeste", "MA": "nordeste", "MT": "centro_oeste", "MS": "centro_oeste",
	"MG": "sudeste", "PA": "norte", "PB": "nordeste", "PR": "sul",
	"PE": "nordeste", "PI": "nordeste", "RJ": "sudeste", "RN": "nordeste",
	"RS": "sul", "RO": "norte", "RR": "norte", "SC": "sul",
	"SP": "ate_700", "SE": "nordeste", "TO": "norte",
}

// RegionForState maps a Brazilian state code to its freight region id.
func RegionForState(uf string) (string, bool) {
	id, ok := stateRegions[uf]
	return id, ok
}
