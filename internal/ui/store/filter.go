package store

import (
	"strings"

	"insurtrack/internal/domain/customer"
)

// FilterCustomers returns the members of list matching term with a
// case-insensitive substring match over name, email, phone and address. A
// record matches if any field contains the term; an empty (or blank) term
// matches everything. The source list is never mutated.
func FilterCustomers(list []customer.Customer, term string) []customer.Customer {
	term = strings.TrimSpace(term)
	if term == "" {
		out := make([]customer.Customer, len(list))
		copy(out, list)
		return out
	}

	needle := strings.ToLower(term)
	out := []customer.Customer{}
	for _, c := range list {
		if matchesCustomer(c, needle) {
			out = append(out, c)
		}
	}
	return out
}

func matchesCustomer(c customer.Customer, needle string) bool {
	for _, field := range []string{c.Name, c.Email, c.Phone, c.Address} {
		if field != "" && strings.Contains(strings.ToLower(field), needle) {
			return true
		}
	}
	return false
}
