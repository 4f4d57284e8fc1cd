package proposal

import (
	"github.com/littlemaker/configurador/internal/capacity"
	"github.com/littlemaker/configurador/internal/catalog"
	"github.com/littlemaker/configurador/internal/money"
	"github.com/littlemaker/configurador/internal/pricing"
)

var variantTitles = map[string]string{
	capacity.MakerMinimaReduced:  "Espaço Maker Mínimo com Ferramentas Reduzidas ({{numf}} alunos)",
	capacity.MakerMinimaStandard: "Espaço Maker Mínimo com Ferramentas Padrão ({{numf}} alunos)",
	capacity.MakerMinimaSolo:     "Espaço Maker Mínimo",
	capacity.MakerCompletePC:     "Oficina Maker Completa com Computadores ({{num}} alunos)",
	capacity.MakerComplete:       "Oficina Maker Completa ({{num}} alunos)",
	capacity.MakerStandard:       "Oficina Maker ({{num}} alunos)",
	capacity.MediaWithComputers:  "Estúdio de Mídia com Computadores ({{num}} alunos)",
	capacity.MediaStandard:       "Estúdio de Mídia ({{num}} alunos)",
	capacity.EarlyCart:           "Carrinho Maker Infantil ({{numf}} alunos)",
	capacity.EarlyWorkshop:       "Oficina Maker Infantil ({{num}} alunos)",
}

// CategoryQuote is the descriptive block of one workshop category.
type CategoryQuote struct {
	Category catalog.Category  `json:"category"`
	Label    string            `json:"label"`
	Capacity capacity.Capacity `json:"capacity"`
	Variant  string            `json:"variant"`
	Title    string            `json:"title"`
	Items    []catalog.Item    `json:"items"`
}

// Note is a footnote referenced by symbol in the printed proposal.
type Note struct {
	Symbol string `json:"symbol"`
	Text   string `json:"text"`
}

// Formatted holds the BRL strings of the main amounts.
type Formatted struct {
	AppliedRatePerYear  string `json:"appliedRatePerYear"`
	AppliedRatePerMonth string `json:"appliedRatePerMonth"`
	MaterialBonus       string `json:"materialBonus"`
	NetRatePerYear      string `json:"netRatePerYear"`
	NetRatePerMonth     string `json:"netRatePerMonth"`
	Freight             string `json:"freight"`
	InfraGross          string `json:"infraGross"`
	InfraBonus          string `json:"infraBonus"`
	InfraNet            string `json:"infraNet"`
	InfraInstallment    string `json:"infraInstallment"`
}

// Quote is everything a renderer needs to print a proposal.
type Quote struct {
	Pricing            pricing.Result  `json:"pricing"`
	Region             catalog.Region  `json:"region"`
	Categories         []CategoryQuote `json:"categories"`
	ActiveTypes        []string        `json:"activeTypes"`
	MaterialBonusLabel string          `json:"materialBonusLabel"`
	Notes              []Note          `json:"notes"`
	Formatted          Formatted       `json:"formatted"`
}

// BuildQuote prices a state and derives the presentational data around it.
func BuildQuote(st State, settings catalog.Settings) Quote {
	cat := settings.Catalog()
	region := settings.Region(st.RegionID)
	r := pricing.Compute(st.Selection, region, st.Commercial, settings.Variables, cat)

	q := Quote{
		Pricing:            r,
		Region:             region,
		Categories:         []CategoryQuote{},
		ActiveTypes:        []string{},
		MaterialBonusLabel: pricing.MaterialBonusLabel(r),
		Formatted:          format(r),
	}

	items := st.Selection.Items(cat)
	for _, c := range catalog.Categories {
		var inCat []catalog.Item
		for _, it := range items {
			if it.Category == c {
				inCat = append(inCat, it)
			}
		}
		if len(inCat) == 0 {
			continue
		}
		cp := capacity.Compute(st.Selection, c, cat)
		variant := capacity.Variant(st.Selection, c)
		q.ActiveTypes = append(q.ActiveTypes, c.Label())
		q.Categories = append(q.Categories, CategoryQuote{
			Category: c,
			Label:    c.Label(),
			Capacity: cp,
			Variant:  variant,
			Title:    capacity.Fill(variantTitles[variant], cp),
			Items:    inCat,
		})
	}

	assembly := false
	for _, it := range items {
		assembly = assembly || it.RequiresAssembly
	}
	q.Notes = notes(st.Commercial, r, region, settings.Variables, assembly)
	return q
}

func format(r pricing.Result) Formatted {
	f := Formatted{
		AppliedRatePerYear:  money.BRL(r.AppliedRatePerYear),
		AppliedRatePerMonth: money.BRL(r.AppliedRatePerMonth),
		MaterialBonus:       money.BRL(r.MaterialBonus),
		NetRatePerYear:      "-",
		NetRatePerMonth:     "-",
		Freight:             money.BRL(r.Freight),
		InfraGross:          money.BRL(r.InfraGross),
		InfraBonus:          money.BRL(r.InfraBonus),
		InfraNet:            money.BRL(r.InfraNet),
		InfraInstallment:    money.BRL(r.InfraInstallment),
	}
	if r.PerStudentDefined {
		f.NetRatePerYear = money.BRL(r.NetRatePerYear)
		f.NetRatePerMonth = money.BRL(r.NetRatePerMonth)
	}
	return f
}

func notes(c pricing.Commercial, r pricing.Result, region catalog.Region, vars catalog.Variables, assembly bool) []Note {
	symbols := []string{"*", "**", "***", "****"}
	out := []Note{}
	next := func(text string) {
		sym := "*"
		if len(out) < len(symbols) {
			sym = symbols[len(out)]
		}
		out = append(out, Note{Symbol: sym, Text: text})
	}

	threeYears := c.ContractDuration == pricing.ThreeYears
	if c.UseMarketplace || (threeYears && !c.ApplyInfraBonus) {
		text := "Valores por aluno"
		if c.UseMarketplace {
			text += ", comercializados via marketplace"
		}
		if threeYears && !c.ApplyInfraBonus {
			text += ", com bônus fidelidade de " + money.Percent(vars.MaterialBonus*100) + " do contrato de 3 anos"
		}
		next(text + ".")
	}
	if threeYears && c.ApplyInfraBonus && c.UseMarketplace && r.HasInfraItems {
		next("Bônus de infraestrutura de " + money.Percent(vars.InfraBonus*100) + " do contrato de 3 anos; o saldo excedente é convertido em bônus de material.")
	}
	if r.HasInfraItems {
		kind := "frete"
		if assembly {
			kind = "frete e montagem"
		}
		next("Inclui " + kind + " para a região " + region.Label + ". Infraestrutura paga em 3 parcelas.")
	}
	return out
}
