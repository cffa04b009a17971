package metrics

import "github.com/prometheus/client_golang/prometheus"

func init() { register(guessesTotal, cooldownChecksTotal, rewardMailsTotal) }

var guessesTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "guesses_total",
		Help: "Resolved guesses by outcome.",
	},
	[]string{"result"}, // correct | incorrect | rejected
)

var cooldownChecksTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "cooldown_checks_total",
		Help: "Cooldown gate decisions.",
	},
	[]string{"result"}, // allowed | blocked | invalid | error
)

var rewardMailsTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "reward_mails_total",
		Help: "Reward discount mails by send outcome.",
	},
	[]string{"result"}, // sent | failed
)

func IncGuess(result string)         { guessesTotal.WithLabelValues(norm(result)).Inc() }
func IncCooldownCheck(result string) { cooldownChecksTotal.WithLabelValues(norm(result)).Inc() }
func IncRewardMail(result string)    { rewardMailsTotal.WithLabelValues(norm(result)).Inc() }
