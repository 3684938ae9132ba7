package utils

import (
	"fmt"
	"strconv"
	"strings"
)

// FormatINR renders an amount with Indian digit grouping (e.g. Rs 1,23,456).
// Fractions are dropped; booking totals are whole rupees in practice.
func FormatINR(amount float64) string {
	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}
	return fmt.Sprintf("%sRs %s", sign, groupIndian(int64(amount)))
}

func groupIndian(n int64) string {
	str := strconv.FormatInt(n, 10)
	if len(str) <= 3 {
		return str
	}
	// last three digits, then groups of two
	head := str[:len(str)-3]
	tail := str[len(str)-3:]
	var groups []string
	for len(head) > 2 {
		groups = append([]string{head[len(head)-2:]}, groups...)
		head = head[:len(head)-2]
	}
	if head != "" {
		groups = append([]string{head}, groups...)
	}
	return strings.Join(groups, ",") + "," + tail
}
