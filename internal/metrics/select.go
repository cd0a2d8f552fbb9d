package metrics

import (
	"github.com/cleared-dev/taxaudit/internal/model"
	"github.com/cleared-dev/taxaudit/internal/period"
)

// Latest returns the declaration of category c with the chronologically last
// period. Unparseable periods lose to any valid one; ties keep the earliest
// declaration.
func Latest(decls []model.Declaration, c model.Category) (model.Declaration, bool) {
	var (
		best  model.Declaration
		found bool
	)
	for _, d := range decls {
		if d.Category != c {
			continue
		}
		if !found || later(period.Of(d.Period), period.Of(best.Period)) {
			best, found = d, true
		}
	}
	return best, found
}

func later(p, q period.Period) bool {
	if p.Valid() != q.Valid() {
		return p.Valid()
	}
	return q.Less(p)
}
