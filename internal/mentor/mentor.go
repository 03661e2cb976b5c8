// Package mentor answers chat messages from a fixed table of tips.
package mentor

import (
	"math/rand"
	"strings"
)

type trigger struct {
	keyword string
	reply   string
}

// triggers are checked in order; the first keyword found wins.
var triggers = []trigger{
	{"save", "To save more money, try the 50/30/20 rule: 50% for needs, 30% for wants, and 20% for savings. Also, track your expenses daily to identify spending patterns."},
	{"invest", "For beginners, I recommend starting with mutual funds through SIP (Systematic Investment Plan). This approach helps average out market volatility and requires as little as ₹500 monthly."},
	{"loan", "If you have high-interest loans (above 12%), prioritize paying them off first. Consider making extra payments toward the principal to reduce the total interest paid."},
	{"budget", "Create a monthly budget by listing all income sources and expenses. Use the envelope method - allocate specific amounts for each category and stick to them."},
}

// Fallbacks are returned, one picked at random, when no keyword matches.
var Fallbacks = []string{
	"Based on your spending patterns, I recommend focusing on reducing food expenses by 15% and setting up an automated savings transfer. This could help you save an additional ₹2,500 monthly.",
	"Great question! For your financial goals, I suggest creating a diversified investment portfolio with a mix of equity and debt instruments. Consider starting with low-cost index funds.",
	"I've analyzed your expenses and noticed you could save ₹3,000 monthly by optimizing your subscription services and dining expenses. Would you like specific recommendations?",
	"For loan prepayment, I recommend prioritizing high-interest debt first. This strategy will save you the most money in interest payments over time.",
	"Your savings rate is currently 18%, which is good but could be improved. Consider automating transfers to your savings account right after receiving your salary.",
}

// Responder produces chat replies. It is safe for concurrent use when its
// pick function is.
type Responder struct {
	pick func(n int) int
}

// New returns a Responder that picks fallbacks with the global random source.
func New() *Responder {
	return &Responder{pick: rand.Intn}
}

// NewWithPicker returns a Responder that uses pick to choose a fallback
// index in [0, n).
func NewWithPicker(pick func(n int) int) *Responder {
	return &Responder{pick: pick}
}

// Reply returns the canned answer for message.
func (r *Responder) Reply(message string) string {
	if reply, ok := Match(message); ok {
		return reply
	}
	return Fallbacks[r.pick(len(Fallbacks))]
}

// Match returns the keyword reply for message, if any keyword matches.
func Match(message string) (string, bool) {
	lower := strings.ToLower(message)
	for _, t := range triggers {
		if strings.Contains(lower, t.keyword) {
			return t.reply, true
		}
	}
	return "", false
}
