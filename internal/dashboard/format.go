package dashboard

import (
	"strconv"

	"github.com/dustin/go-humanize"
)

const absent = "n/a"

func number(v float64) string {
	return humanize.FormatFloat("#,###.##", v)
}

func optionalNumber(v *float64) string {
	if v == nil {
		return absent
	}
	return number(*v)
}

func count(n int) string {
	return humanize.Comma(int64(n))
}

func optionalInt(v *int) string {
	if v == nil {
		return absent
	}
	return strconv.Itoa(*v)
}

func percent(v float64) string {
	return humanize.FormatFloat("#,###.#", v) + "%"
}
