package domain

import (
	"testing"
	"time"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

func TestPartitionCatalog_Sections(t *testing.T) {
	now := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)

	breeding := &Rabbit{ID: "C0001", IsBreedingStock: true, BirthDate: "01-01-2020"}
	recent := &Rabbit{ID: "C0014", BirthDate: now.AddDate(0, 0, -10).Format("02-01-2006")}
	old := &Rabbit{ID: "C0015", BirthDate: "01-01-2020"}
	unparsable := &Rabbit{ID: "C0016", BirthDate: "unknown"}

	sections := PartitionCatalog([]*Rabbit{breeding, recent, old, unparsable}, now)

	if len(sections.BreedingStock) != 1 || sections.BreedingStock[0].ID != "C0001" {
		t.Fatalf("breeding stock section wrong: %+v", sections.BreedingStock)
	}
	if len(sections.NewLitter) != 1 || sections.NewLitter[0].ID != "C0014" {
		t.Fatalf("new litter section wrong: %+v", sections.NewLitter)
	}
	if len(sections.Other) != 2 {
		t.Fatalf("other section should hold old and unparsable, got %+v", sections.Other)
	}
}

func TestPartitionCatalog_BreedingStockIgnoresAge(t *testing.T) {
	now := time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)

	// Born yesterday but flagged as stock: stays in the stock section
	young := &Rabbit{ID: "C0002", IsBreedingStock: true, BirthDate: now.AddDate(0, 0, -1).Format("02-01-2006")}

	sections := PartitionCatalog([]*Rabbit{young}, now)
	if len(sections.BreedingStock) != 1 || len(sections.NewLitter) != 0 {
		t.Fatalf("stock flag must win over age: %+v", sections)
	}
}

func TestPartitionCatalog_CutoffIsCalendarMonths(t *testing.T) {
	now := time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)
	cutoff := now.AddDate(0, -3, 0) // 31-05-2026

	onCutoff := &Rabbit{ID: "A", BirthDate: cutoff.Format("02-01-2006")}
	dayBefore := &Rabbit{ID: "B", BirthDate: cutoff.AddDate(0, 0, -1).Format("02-01-2006")}

	sections := PartitionCatalog([]*Rabbit{onCutoff, dayBefore}, now)
	if len(sections.NewLitter) != 1 || sections.NewLitter[0].ID != "A" {
		t.Fatalf("birth on the cutoff day still counts as new litter: %+v", sections.NewLitter)
	}
	if len(sections.Other) != 1 || sections.Other[0].ID != "B" {
		t.Fatalf("one day past the cutoff is old: %+v", sections.Other)
	}
}

func TestProperty_EveryRabbitLandsInExactlyOneSection(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("partitioning neither drops nor duplicates rabbits", prop.ForAll(
		func(stockFlags []bool) bool {
			now := time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)

			rabbits := make([]*Rabbit, len(stockFlags))
			for i, isStock := range stockFlags {
				birth := now.AddDate(0, 0, -i*20).Format("02-01-2006")
				rabbits[i] = &Rabbit{ID: string(rune('A' + i)), IsBreedingStock: isStock, BirthDate: birth}
			}

			sections := PartitionCatalog(rabbits, now)
			total := len(sections.BreedingStock) + len(sections.NewLitter) + len(sections.Other)
			return total == len(rabbits)
		},
		gen.SliceOf(gen.Bool()),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

func TestDisplayPrice(t *testing.T) {
	if got := DisplayPrice(10000, true, 30); got != 7000 {
		t.Fatalf("30%% off 10000 should be 7000, got %v", got)
	}
	if got := DisplayPrice(10000, true, 0); got != 7000 {
		t.Fatalf("discount without a percent falls back to the default, got %v", got)
	}
	if got := DisplayPrice(10000, true, 50); got != 5000 {
		t.Fatalf("explicit percent applies, got %v", got)
	}
}

func TestProperty_NoDiscountMeansBasePrice(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("without a discount the base price passes through", prop.ForAll(
		func(price float64, percent int) bool {
			return DisplayPrice(price, false, percent) == price
		},
		gen.Float64Range(0, 1e6),
		gen.IntRange(0, 100),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

func TestProperty_DiscountNeverRaisesThePrice(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("a discounted price never exceeds the base price", prop.ForAll(
		func(price float64, percent int) bool {
			return DisplayPrice(price, true, percent) <= price
		},
		gen.Float64Range(0, 1e6),
		gen.IntRange(0, 100),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}
