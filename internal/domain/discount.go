package domain

// ValidDiscount reports whether discount lies in the open interval (0, 1)
func ValidDiscount(discount float64) bool {
	return discount > 0 && discount < 1
}

// ApplyDiscount reprices every valid product in place to
// Round2(price * (1 - discount)) and returns how many were repriced.
// An out-of-range discount is ignored and invalid elements are skipped.
func ApplyDiscount(products []*Product, discount float64) int {
	if !ValidDiscount(discount) {
		return 0
	}

	applied := 0
	for _, p := range products {
		if !p.valid() {
			continue
		}
		p.price = Round2(p.price * (1 - discount))
		applied++
	}
	return applied
}
