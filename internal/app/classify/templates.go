package classify

import (
	"context"
	"fmt"
	"hash/fnv"
	"log"
	"time"

	"github.com/spotter-app/spotter/internal/domain"
	"github.com/spotter-app/spotter/internal/infra/metrics"
)

// GenerateTimeout bounds the external text-generator call. Classification
// itself never blocks; only this best-effort call does.
const GenerateTimeout = 5 * time.Second

// Message produces the user-facing text for a request. It asks the external
// generator first; on failure or timeout it substitutes a static template
// keyed by (event, severity), chosen deterministically by the request seed.
// The fallback path cannot fail. Returns the text and whether the fallback
// was used.
func Message(ctx context.Context, gen domain.TextGenerator, req domain.MessageRequest) (string, bool) {
	if gen != nil {
		genCtx, cancel := context.WithTimeout(ctx, GenerateTimeout)
		defer cancel()

		text, err := gen.Generate(genCtx, req)
		if err == nil && text != "" {
			return text, false
		}
		if err != nil {
			// Degraded, not broken: scored state is unaffected.
			log.Printf("[classify] generator degraded for %s/%s: %v", req.Event, req.Severity, err)
			metrics.GeneratorFallbacks.Inc()
		}
	}
	return Fallback(req), true
}

// Fallback returns the static template for a request. Selection is a pure
// function of the seed, so retries produce the same text.
func Fallback(req domain.MessageRequest) string {
	pool := templates[req.Event][req.Severity]
	if len(pool) == 0 {
		// Every (event, severity) pair is covered below; this guards
		// config drift without ever failing.
		return fmt.Sprintf("%s: time to get back to the gym.", req.UserName)
	}
	h := fnv.New32a()
	h.Write([]byte(req.Seed))
	return fmt.Sprintf(pool[int(h.Sum32())%len(pool)], req.UserName)
}

// templates is the total static fallback table: every taxonomy event maps
// every severity tier to at least one template. %s is the user's name.
var templates = map[domain.BehaviorEvent]map[domain.Severity][]string{
	domain.EventStreakBroken: {
		domain.SeverityMild: {
			"%s, your streak slipped. One workout brings it back.",
		},
		domain.SeverityModerate: {
			"%s, that streak you built? Gone. Rebuild starts today.",
			"Streak broken, %s. The gym didn't move — you did.",
		},
		domain.SeveritySevere: {
			"%s, days of work erased. Your streak is dead and you killed it.",
			"%s — remember that streak? Neither does your body anymore.",
		},
		domain.SeverityNuclear: {
			"%s, the streak is a distant memory. So, apparently, is the gym.",
		},
	},
	domain.EventBuddyAhead: {
		domain.SeverityMild: {
			"%s, your buddy is nosing ahead. Close the gap.",
		},
		domain.SeverityModerate: {
			"%s, your buddy is pulling away. This is getting embarrassing.",
			"Heads up %s — your partner is outworking you on every front.",
		},
		domain.SeveritySevere: {
			"%s, your buddy has lapped you. Lapped. You.",
		},
		domain.SeverityNuclear: {
			"%s, at this point your buddy needs binoculars to see you.",
		},
	},
	domain.EventMilestone: {
		domain.SeverityMild: {
			"Badge unlocked, %s. Earned, not given.",
			"%s hit a milestone. Keep stacking.",
		},
		domain.SeverityModerate: {
			"Big milestone, %s. That took real consistency.",
		},
		domain.SeveritySevere: {
			"%s, that was a serious milestone. Respect.",
		},
		domain.SeverityNuclear: {
			"%s just did something almost nobody does. Legendary.",
		},
	},
	domain.EventSlacking: {
		domain.SeverityMild: {
			"%s, one rest day is recovery. Don't let it become a habit.",
		},
		domain.SeverityModerate: {
			"%s, the gym called. It misses you. Mildly.",
			"Two days off, %s. Momentum fades fast.",
		},
		domain.SeveritySevere: {
			"%s, your gym membership is becoming a donation.",
			"Almost a week, %s. Your muscles filed a missing persons report.",
		},
		domain.SeverityNuclear: {
			"%s. A month. The dumbbells don't even remember your face.",
			"%s, at this point re-introducing yourself to the gym counts as cardio.",
		},
	},
	domain.EventCrushingIt: {
		domain.SeverityMild: {
			"%s is on a roll. Keep the streak alive.",
			"Another day, another workout. %s doesn't miss.",
		},
		domain.SeverityModerate: {
			"%s, the consistency is showing. Multiplier climbing.",
		},
		domain.SeveritySevere: {
			"%s is officially a machine. The streak fears nothing.",
		},
		domain.SeverityNuclear: {
			"%s has transcended motivation. This is who they are now.",
		},
	},
	domain.EventDailyCheck: {
		domain.SeverityMild: {
			"%s, yesterday counted. Make today count too.",
			"Quick check-in, %s: the streak is waiting on you.",
		},
		domain.SeverityModerate: {
			"%s, don't overthink it. Shoes on, door, gym.",
		},
		domain.SeveritySevere: {
			"%s, today is the day that decides the streak.",
		},
		domain.SeverityNuclear: {
			"%s, everything rides on today. No pressure.",
		},
	},
}
