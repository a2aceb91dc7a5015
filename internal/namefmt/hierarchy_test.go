package namefmt

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/roach88/taxa/internal/taxon"
)

func ancestorChain() []taxon.Record {
	return []taxon.Record{
		taxon.NewRecord(1, "kingdom", "Animalia", ""),
		taxon.NewRecord(2, "phylum", "Chordata", ""),
		taxon.NewRecord(3, "class", "Aves", ""),
		taxon.NewRecord(4, "order", "Passeriformes", ""),
		taxon.NewRecord(5, "family", "Parulidae", ""),
	}
}

func TestHierarchy_PrimaryRanksEmphasized(t *testing.T) {
	f := newFormatter()

	got := f.Hierarchy(ancestorChain(), 0)
	assert.Equal(t,
		"**Animalia** > **Chordata** > **Aves** > **Passeriformes** > **Parulidae**",
		got)
}

func TestHierarchy_NonPrimaryRankPlain(t *testing.T) {
	f := newFormatter()

	chain := []taxon.Record{
		taxon.NewRecord(1, "class", "Aves", ""),
		taxon.NewRecord(2, "suborder", "Passeri", ""),
	}
	assert.Equal(t, "**Aves** > Passeri", f.Hierarchy(chain, 0))
}

func TestHierarchy_TruncatesToFit(t *testing.T) {
	f := newFormatter()

	got := f.Hierarchy(ancestorChain(), 40)
	assert.LessOrEqual(t, len(got), 40)
	assert.Contains(t, got, "more")
	// The head of the chain survives truncation.
	assert.Contains(t, got, "**Animalia**")
}

func TestHierarchy_FitsExactly(t *testing.T) {
	f := newFormatter()

	full := f.Hierarchy(ancestorChain(), 0)
	assert.Equal(t, full, f.Hierarchy(ancestorChain(), len(full)))
}

func TestHierarchy_Empty(t *testing.T) {
	f := newFormatter()
	assert.Equal(t, "", f.Hierarchy(nil, 0))
	assert.Equal(t, "", f.Hierarchy(nil, 10))
}
