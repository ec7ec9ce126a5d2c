package strategy

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/lox/blackjacksim/internal/deck"
)

// Charts are read top to bottom; columns are the dealer upcard
// 2 3 4 5 6 7 8 9 T A.

const hardChart = `
21  S  S  S  S  S  S  S  S  S  S
20  S  S  S  S  S  S  S  S  S  S
19  S  S  S  S  S  S  S  S  S  S
18  S  S  S  S  S  S  S  S  S  S
17  S  S  S  S  S  S  S  S  S  S
16  S  S  S  S  S  H  H  Rh Rh Rh
15  S  S  S  S  S  H  H  H  Rh H
14  S  S  S  S  S  H  H  H  H  H
13  S  S  S  S  S  H  H  H  H  H
12  H  H  S  S  S  H  H  H  H  H
11  Dh Dh Dh Dh Dh Dh Dh Dh Dh H
10  Dh Dh Dh Dh Dh Dh Dh Dh H  H
9   H  Dh Dh Dh Dh H  H  H  H  H
8   H  H  H  H  H  H  H  H  H  H
7   H  H  H  H  H  H  H  H  H  H
6   H  H  H  H  H  H  H  H  H  H
5   H  H  H  H  H  H  H  H  H  H
4   H  H  H  H  H  H  H  H  H  H
`

const softChart = `
21  S  S  S  S  S  S  S  S  S  S
20  S  S  S  S  S  S  S  S  S  S
19  S  S  S  S  Ds S  S  S  S  S
18  Ds Ds Ds Ds Ds S  S  H  H  H
17  H  Dh Dh Dh Dh H  H  H  H  H
16  H  H  Dh Dh Dh H  H  H  H  H
15  H  H  Dh Dh Dh H  H  H  H  H
14  H  H  H  Dh Dh H  H  H  H  H
13  H  H  H  Dh Dh H  H  H  H  H
`

const pairChart = `
A   P  P  P  P  P  P  P  P  P  P
T   S  S  S  S  S  S  S  S  S  S
9   P  P  P  P  P  S  P  P  S  S
8   P  P  P  P  P  P  P  P  P  P
7   P  P  P  P  P  P  H  H  H  H
6   Ph P  P  P  P  H  H  H  H  H
5   Dh Dh Dh Dh Dh Dh Dh Dh H  H
4   H  H  H  Ph Ph H  H  H  H  H
3   Ph Ph P  P  P  P  H  H  H  H
2   Ph Ph P  P  P  P  H  H  H  H
`

const columns = 10

type row [columns]Action

// chart keeps rows in the order they were written, for printing, and an
// index for lookup. Entries that are not charted default to Hit.
type chart struct {
	labels []string
	rows   map[string]row
}

func (c *chart) lookup(label string, col int) (Action, bool) {
	r, ok := c.rows[label]
	return r[col], ok
}

var hard, soft, pairs = mustChart(hardChart), mustChart(softChart), mustChart(pairChart)

func mustChart(text string) *chart {
	c, err := parseChart(text)
	if err != nil {
		panic(err)
	}
	return c
}

func parseChart(text string) (*chart, error) {
	c := &chart{rows: make(map[string]row)}
	for _, line := range strings.Split(strings.TrimSpace(text), "\n") {
		fields := strings.Fields(line)
		if len(fields) != columns+1 {
			return nil, fmt.Errorf("chart row %q has %d columns, want %d", line, len(fields)-1, columns)
		}
		var r row
		for i, code := range fields[1:] {
			a, err := ParseAction(code)
			if err != nil {
				return nil, fmt.Errorf("chart row %q: %w", fields[0], err)
			}
			r[i] = a
		}
		c.labels = append(c.labels, fields[0])
		c.rows[fields[0]] = r
	}
	return c, nil
}

// column maps an upcard to its chart column.
func column(upcard deck.Rank) int {
	switch {
	case upcard == deck.Ace:
		return 9
	case upcard.IsTen():
		return 8
	default:
		return int(upcard) - int(deck.Two)
	}
}

func pairLabel(r deck.Rank) string {
	if r.IsTen() {
		return deck.Ten.String()
	}
	return r.String()
}

// Basic is the standard multi-deck basic strategy: pairs are checked first,
// then soft totals when an ace can count as eleven, then hard totals.
func Basic(cards []deck.Rank, upcard deck.Rank) Action {
	col := column(upcard)

	if len(cards) == 2 && cards[0] == cards[1] {
		a, _ := pairs.lookup(pairLabel(cards[0]), col)
		return a
	}

	total, aces := 0, 0
	for _, r := range cards {
		if r == deck.Ace {
			aces++
		}
		total += r.Points()
	}
	if aces > 0 && total+10 <= 21 {
		if a, ok := soft.lookup(strconv.Itoa(total+10), col); ok {
			return a
		}
	}
	a, _ := hard.lookup(strconv.Itoa(total), col)
	return a
}

var _ Func = Basic
