package stats

import (
	"github.com/osse101/KubeRPG_Go/internal/domain"
	"github.com/osse101/KubeRPG_Go/internal/utils"
)

// Config holds the tunable stat tables
type Config struct {
	Base              domain.DerivedStats        `json:"base"`
	RarityMultipliers map[domain.Rarity]float64 `json:"rarity_multipliers"`
	HPPerLevel        float64                   `json:"hp_per_level"`
	DamagePerLevel    float64                   `json:"damage_per_level"`
	DefensePerLevel   float64                   `json:"defense_per_level"`
}

// DefaultConfig returns the standard stat tables
func DefaultConfig() Config {
	return Config{
		Base:              domain.DerivedStats{HP: BaseHP, Damage: BaseDamage, Defense: BaseDefense},
		RarityMultipliers: DefaultRarityMultipliers(),
		HPPerLevel:        HPPerLevel,
		DamagePerLevel:    DamagePerLevel,
		DefensePerLevel:   DefensePerLevel,
	}
}

// Deriver computes effective combat stats from level and equipped gear.
// It holds no mutable state and is safe for concurrent use.
type Deriver struct {
	cfg Config
}

// NewDeriver creates a deriver. Missing multipliers fall back to the defaults.
func NewDeriver(cfg Config) *Deriver {
	mults := DefaultRarityMultipliers()
	for r, m := range cfg.RarityMultipliers {
		mults[r] = m
	}
	cfg.RarityMultipliers = mults
	return &Deriver{cfg: cfg}
}

// Multiplier returns the rarity multiplier, 1 for unknown rarities
func (d *Deriver) Multiplier(r domain.Rarity) float64 {
	if m, ok := d.cfg.RarityMultipliers[r]; ok {
		return m
	}
	return MultCommon
}

// Derive returns the account's stats. The account is not modified.
func (d *Deriver) Derive(acc *domain.Account) domain.DerivedStats {
	if acc == nil {
		return d.cfg.Base
	}

	totals := map[domain.StatKind]float64{
		domain.StatHP:      float64(d.cfg.Base.HP),
		domain.StatDamage:  float64(d.cfg.Base.Damage),
		domain.StatDefense: float64(d.cfg.Base.Defense),
	}
	for _, it := range acc.EquippedItems() {
		kind := it.Stat()
		if kind == "" {
			continue
		}
		totals[kind] += float64(it.Power) * d.Multiplier(it.Rarity)
	}

	return d.scale(totals, acc.Progress.Level)
}

// ItemContribution returns how much an item adds to its stat before level scaling
func (d *Deriver) ItemContribution(it domain.Item) float64 {
	return float64(it.Power) * d.Multiplier(it.Rarity)
}

func (d *Deriver) scale(totals map[domain.StatKind]float64, level int) domain.DerivedStats {
	steps := float64(level - 1)
	if steps < 0 {
		steps = 0
	}
	return domain.DerivedStats{
		HP:      utils.CeilStat(totals[domain.StatHP] * (1 + steps*d.cfg.HPPerLevel)),
		Damage:  utils.CeilStat(totals[domain.StatDamage] * (1 + steps*d.cfg.DamagePerLevel)),
		Defense: utils.CeilStat(totals[domain.StatDefense] * (1 + steps*d.cfg.DefensePerLevel)),
	}
}
