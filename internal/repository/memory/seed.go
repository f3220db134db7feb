package memory

import (
	"time"

	"github.com/ikigain/ForestOS/internal/models"
)

func intp(v int) *int       { return &v }
func strp(v string) *string { return &v }

// DefaultCatalog matches the species seeded by the 00002 migration.
func DefaultCatalog() []*models.Plant {
	seeded := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	species := []*models.Plant{
		{
			ID: "plt_seed00000001", SpeciesID: "sansevieria_trifasciata",
			CommonNames:    models.StringList{"Snake Plant", "Mother-in-law's Tongue"},
			ScientificName: "Sansevieria trifasciata", Family: strp("Asparagaceae"),
			WaterFrequencyDaysMin: intp(14), WaterFrequencyDaysMax: intp(21),
			SoilMoistureTargetPct: 25, SoilMoistureMinPct: 10,
			LightLevel: strp(models.LightLow), GrowthRate: strp("slow"),
		},
		{
			ID: "plt_seed00000002", SpeciesID: "zamioculcas_zamiifolia",
			CommonNames:    models.StringList{"ZZ Plant", "Zanzibar Gem"},
			ScientificName: "Zamioculcas zamiifolia", Family: strp("Araceae"),
			WaterFrequencyDaysMin: intp(14), WaterFrequencyDaysMax: intp(21),
			SoilMoistureTargetPct: 30, SoilMoistureMinPct: 15,
			LightLevel: strp(models.LightLow), GrowthRate: strp("slow"),
		},
		{
			ID: "plt_seed00000003", SpeciesID: "epipremnum_aureum",
			CommonNames:    models.StringList{"Golden Pothos", "Devil's Ivy"},
			ScientificName: "Epipremnum aureum", Family: strp("Araceae"),
			WaterFrequencyDaysMin: intp(7), WaterFrequencyDaysMax: intp(10),
			SoilMoistureTargetPct: 40, SoilMoistureMinPct: 25,
			LightLevel: strp(models.LightMedium), GrowthRate: strp("fast"),
		},
		{
			ID: "plt_seed00000004", SpeciesID: "monstera_deliciosa",
			CommonNames:    models.StringList{"Monstera", "Swiss Cheese Plant"},
			ScientificName: "Monstera deliciosa", Family: strp("Araceae"),
			WaterFrequencyDaysMin: intp(7), WaterFrequencyDaysMax: intp(10),
			SoilMoistureTargetPct: 45, SoilMoistureMinPct: 30,
			LightLevel: strp(models.LightBrightIndirect), GrowthRate: strp("fast"),
		},
		{
			ID: "plt_seed00000005", SpeciesID: "calathea_orbifolia",
			CommonNames:    models.StringList{"Calathea Orbifolia", "Prayer Plant"},
			ScientificName: "Goeppertia orbifolia", Family: strp("Marantaceae"),
			WaterFrequencyDaysMin: intp(3), WaterFrequencyDaysMax: intp(4),
			SoilMoistureTargetPct: 60, SoilMoistureMinPct: 45,
			LightLevel: strp(models.LightMedium), GrowthRate: strp("medium"),
		},
		{
			ID: "plt_seed00000006", SpeciesID: "ocimum_basilicum",
			CommonNames:    models.StringList{"Basil", "Sweet Basil"},
			ScientificName: "Ocimum basilicum", Family: strp("Lamiaceae"),
			WaterFrequencyDaysMin: intp(1), WaterFrequencyDaysMax: intp(3),
			SoilMoistureTargetPct: 60, SoilMoistureMinPct: 40,
			LightLevel: strp(models.LightBrightDirect), GrowthRate: strp("fast"),
		},
	}
	for _, p := range species {
		p.DrainageRequired = true
		p.CreatedAt = seeded
		p.UpdatedAt = seeded
	}
	return species
}
