package proposal

import (
	"fmt"
	"strings"

	"github.com/littlemaker/configurador/internal/catalog"
	"github.com/littlemaker/configurador/internal/money"
	"github.com/littlemaker/configurador/internal/pricing"
)

// Card is the dashboard summary of a saved proposal.
type Card struct {
	HasMaker          bool     `json:"hasMaker"`
	HasMedia          bool     `json:"hasMidia"`
	HasEarlyChildhood bool     `json:"hasInfantil"`
	Segments          []string `json:"segments"`
	TotalMaterialYear float64  `json:"totalMaterialYear"`
	TotalInfra        float64  `json:"totalInfra"`
	TotalBonus        float64  `json:"totalBonus"`
	BonusType         string   `json:"bonusType"`
}

// BuildCard summarizes a state with the tenant settings.
func BuildCard(st State, settings catalog.Settings) Card {
	cat := settings.Catalog()
	r := pricing.Compute(st.Selection, settings.Region(st.RegionID), st.Commercial, settings.Variables, cat)

	c := Card{
		Segments:          append([]string{}, st.Client.Segments...),
		TotalMaterialYear: r.AppliedRatePerYear * float64(st.Commercial.TotalStudents),
		TotalInfra:        r.InfraGross,
		TotalBonus:        r.MaterialBonus + r.InfraBonus,
	}
	for _, it := range st.Selection.Items(cat) {
		switch it.Category {
		case catalog.CategoryMaker:
			c.HasMaker = true
		case catalog.CategoryMedia:
			c.HasMedia = true
		case catalog.CategoryEarlyChildhood:
			c.HasEarlyChildhood = true
		}
	}

	switch {
	case r.InfraBonus > 0 && r.MaterialBonus > 0:
		c.BonusType = "Infra + Mat."
	case r.InfraBonus > 0:
		c.BonusType = "Infra"
	case r.MaterialBonus > 0:
		c.BonusType = "Material"
	}
	return c
}

// PlainText renders a printable summary of a proposal.
func PlainText(p Proposal, settings catalog.Settings) string {
	st := p.State
	q := BuildQuote(st, settings)
	r := q.Pricing

	var b strings.Builder
	line := func(format string, args ...any) {
		fmt.Fprintf(&b, format, args...)
		b.WriteByte('\n')
	}

	line("Proposta Comercial - %s", schoolName(st))
	if st.Client.ContactName != "" {
		line("Contato: %s", st.Client.ContactName)
	}
	if st.Client.Date != "" {
		line("Data: %s", st.Client.Date)
	}
	if len(st.Client.Segments) > 0 {
		line("Segmentos: %s", strings.Join(st.Client.Segments, ", "))
	}
	if len(q.ActiveTypes) > 0 {
		line("Oficinas: %s", strings.Join(q.ActiveTypes, ", "))
	}
	years := "1 ano"
	if st.Commercial.ContractDuration == pricing.ThreeYears {
		years = "3 anos"
	}
	line("Alunos: %d | Contrato: %s", st.Commercial.TotalStudents, years)
	line("")

	line("MATERIAL DIDÁTICO")
	line("Valor por aluno/ano: %s", q.Formatted.AppliedRatePerYear)
	if r.MaterialBonus != 0 {
		line("%s: -%s", q.MaterialBonusLabel, q.Formatted.MaterialBonus)
	}
	line("Valor final por aluno/ano: %s (%s/mês)", q.Formatted.NetRatePerYear, q.Formatted.NetRatePerMonth)

	if r.HasInfraItems {
		line("")
		line("INFRAESTRUTURA")
		for _, c := range q.Categories {
			line("%s", c.Title)
			for _, it := range c.Items {
				line("  - %s: %s", it.Label, money.BRL(it.Price))
			}
		}
		line("Frete (%s): %s", q.Region.Label, q.Formatted.Freight)
		line("Total: %s", q.Formatted.InfraGross)
		if r.InfraBonus != 0 {
			line("Bônus infraestrutura: -%s", q.Formatted.InfraBonus)
		}
		line("Total líquido: %s (3x %s)", q.Formatted.InfraNet, q.Formatted.InfraInstallment)
	}

	if len(q.Notes) > 0 {
		line("")
		for _, n := range q.Notes {
			line("%s %s", n.Symbol, n.Text)
		}
	}
	return b.String()
}
