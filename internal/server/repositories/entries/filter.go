package entries

import (
	"fmt"
	"strings"

	"github.com/dmitrijs2005/expensekeeper/internal/server/models"
)

// predicate is one optional WHERE condition. clause holds a %s verb per
// argument; the verbs are replaced with numbered placeholders when the
// predicate is applied.
type predicate struct {
	present func(f models.EntryFilter) bool
	clause  string
	args    func(f models.EntryFilter) []any
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

var entryPredicates = []predicate{
	{
		present: func(f models.EntryFilter) bool { return f.StoreName != "" },
		clause:  "store_name ILIKE %s",
		args: func(f models.EntryFilter) []any {
			return []any{"%" + likeEscaper.Replace(f.StoreName) + "%"}
		},
	},
	{
		present: func(f models.EntryFilter) bool { return f.DateOfPurchase != nil },
		clause:  "date_of_purchase = %s",
		args: func(f models.EntryFilter) []any {
			return []any{f.DateOfPurchase.String()}
		},
	},
	{
		present: models.EntryFilter.HasDateRange,
		clause:  "date_of_purchase >= %s AND date_of_purchase <= %s",
		args: func(f models.EntryFilter) []any {
			return []any{f.DateFrom.String(), f.DateTo.String()}
		},
	},
	{
		present: func(f models.EntryFilter) bool { return f.Approved != nil },
		clause:  "approved = %s",
		args: func(f models.EntryFilter) []any {
			return []any{*f.Approved}
		},
	},
}

// buildWhere returns the WHERE clause (with a leading space, or empty when
// no predicate applies) and its arguments in placeholder order.
func buildWhere(f models.EntryFilter) (string, []any) {
	var clauses []string
	var args []any

	for _, p := range entryPredicates {
		if !p.present(f) {
			continue
		}

		pargs := p.args(f)
		placeholders := make([]any, len(pargs))
		for i := range pargs {
			placeholders[i] = fmt.Sprintf("$%d", len(args)+i+1)
		}

		clauses = append(clauses, fmt.Sprintf(p.clause, placeholders...))
		args = append(args, pargs...)
	}

	if len(clauses) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(clauses, " AND "), args
}
