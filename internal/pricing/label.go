package pricing

import (
	"fmt"

	"github.com/littlemaker/configurador/internal/money"
)

// MaterialBonusLabel is the caption printed next to the material discount.
// It is empty when there is no material bonus.
func MaterialBonusLabel(r Result) string {
	if r.MaterialBonus == 0 {
		return ""
	}
	if r.Overflow {
		return "Saldo Bônus Infraestrutura"
	}
	if r.GrossMaterialContract == 0 {
		return "Bônus fidelidade"
	}
	share := r.MaterialBonus / r.GrossMaterialContract
	return fmt.Sprintf("Bônus fidelidade %s (%s meses grátis)", money.Percent(share*100), money.Number(share*36, 1))
}
