package quotes

import "time"

var quotes = []string{
	"Discipline is choosing between what you want now and what you want most.",
	"Success is built on small efforts repeated daily.",
	"You don't have to be extreme, just consistent.",
	"The pain of discipline weighs ounces. The pain of regret weighs tons.",
	"Study while others sleep. Build while others relax.",
	"Your future self is watching you right now.",
	"Focus on progress, not perfection.",
	"Small daily improvements create massive results.",
	"Dream big. Work quietly. Stay consistent.",
	"Every page you study is one step closer.",
}

// OfTheDay returns the quote for the calendar day containing now. The same
// quote is shown all day and rotates at midnight UTC.
func OfTheDay(now time.Time) string {
	dayIndex := now.UnixMilli() / (1000 * 60 * 60 * 24)
	return quotes[int(dayIndex)%len(quotes)]
}
