package repository

import (
	"strings"
)

// likeEscape is the escape character used in LIKE patterns. A backslash is
// avoided because MySQL treats it as a string-literal escape.
const likeEscape = "!"

var likeEscaper = strings.NewReplacer(
	likeEscape, likeEscape+likeEscape,
	"%", likeEscape+"%",
	"_", likeEscape+"_",
)

// SearchFilter narrows the user listing. The zero value matches every user.
// Query must appear in name, skills or purpose; at least one of Categories
// must appear in purpose. Both comparisons are case-insensitive substrings.
type SearchFilter struct {
	Query      string
	Categories []string
}

// Normalized trims the query and lowercases, trims and de-duplicates categories,
// dropping blank ones.
func (f SearchFilter) Normalized() SearchFilter {
	out := SearchFilter{Query: strings.TrimSpace(f.Query)}
	seen := make(map[string]bool, len(f.Categories))
	for _, c := range f.Categories {
		c = strings.ToLower(strings.TrimSpace(c))
		if c == "" || seen[c] {
			continue
		}
		seen[c] = true
		out.Categories = append(out.Categories, c)
	}
	return out
}

// conditions accumulates WHERE clauses with positional arguments. Clauses are
// fixed SQL fragments; user input only ever travels through args.
type conditions struct {
	clauses []string
	args    []any
}

func (c *conditions) add(clause string, args ...any) {
	c.clauses = append(c.clauses, clause)
	c.args = append(c.args, args...)
}

// anyOf adds one clause matching when any of the fragments match.
func (c *conditions) anyOf(fragment string, values []any) {
	if len(values) == 0 {
		return
	}
	parts := make([]string, len(values))
	for i := range values {
		parts[i] = fragment
	}
	c.add("("+strings.Join(parts, " OR ")+")", values...)
}

func (c *conditions) where() string {
	if len(c.clauses) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(c.clauses, " AND ")
}

// containsPattern builds a LIKE pattern matching s anywhere, with wildcards in s taken literally.
func containsPattern(s string) string {
	return "%" + likeEscaper.Replace(strings.ToLower(s)) + "%"
}

const userSummaryColumns = `id, name, skills, purpose, contact, profile_picture, email`

// BuildSearchQuery renders the user search as SQL with '?' placeholders in the
// given driver's dialect.
func BuildSearchQuery(driver string, filter SearchFilter) (string, []any) {
	filter = filter.Normalized()
	var c conditions

	if filter.Query != "" {
		p := containsPattern(filter.Query)
		c.add(`(`+lowerExpr(driver, "TRIM(name)")+` LIKE ? ESCAPE '`+likeEscape+`'`+
			` OR `+lowerExpr(driver, "TRIM(skills)")+` LIKE ? ESCAPE '`+likeEscape+`'`+
			` OR `+lowerExpr(driver, "TRIM(purpose)")+` LIKE ? ESCAPE '`+likeEscape+`')`, p, p, p)
	}

	if len(filter.Categories) > 0 {
		values := make([]any, len(filter.Categories))
		for i, category := range filter.Categories {
			values[i] = containsPattern(category)
		}
		c.anyOf(lowerExpr(driver, "purpose")+` LIKE ? ESCAPE '`+likeEscape+`'`, values)
	}

	return `SELECT ` + userSummaryColumns + ` FROM users` + c.where() + ` ORDER BY id`, c.args
}
