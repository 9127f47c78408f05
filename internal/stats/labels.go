package stats

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// Chart and summary labels stay in the product language so the mobile client
// renders them as-is.
var (
	weekdayShort = [7]string{"Lun", "Mar", "Mer", "Jeu", "Ven", "Sam", "Dim"}

	monthShort = [12]string{
		"janv", "févr", "mars", "avr", "mai", "juin",
		"juil", "août", "sept", "oct", "nov", "déc",
	}

	monthLong = [12]string{
		"janvier", "février", "mars", "avril", "mai", "juin",
		"juillet", "août", "septembre", "octobre", "novembre", "décembre",
	}
)

func displayDate(t time.Time) string {
	return fmt.Sprintf("%d %s %d", t.Day(), monthShort[t.Month()-1], t.Year())
}

// FormatAmount renders a monetary amount rounded to the unit with French
// thousands grouping: 1234567.8 -> "1 234 568".
func FormatAmount(v float64) string {
	n := int64(math.Round(v))
	sign := ""
	if n < 0 {
		sign = "-"
		n = -n
	}

	digits := strconv.FormatInt(n, 10)
	var groups []string
	for len(digits) > 3 {
		groups = append([]string{digits[len(digits)-3:]}, groups...)
		digits = digits[:len(digits)-3]
	}
	groups = append([]string{digits}, groups...)
	return sign + strings.Join(groups, " ")
}
