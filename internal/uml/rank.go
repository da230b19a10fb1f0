package uml

import "strings"

var (
	highPriority   = []string{"connect", "disconnect", "register", "execute", "route", "subscribe", "unsubscribe"}
	referenceTerms = []string{"module", "manager", "router", "registry", "factory", "connection", "state"}
	eventTerms     = []string{"notify", "on", "set"}
	persistTerms   = []string{"load", "save", "serialize", "deserialize"}
	shellTerms     = []string{"handle", "execute", "setup", "update", "draw", "set", "get"}
)

func containsAny(s string, terms []string) bool {
	for _, t := range terms {
		if strings.Contains(s, t) {
			return true
		}
	}
	return false
}

// RankMethods picks the methods that best show how a class interacts with
// others. At most priority methods that connect, register, execute, route or
// subscribe are taken; the list is then filled up to limit with accessors of
// collaborators, event and setter methods, persistence methods, and finally
// anything else, each in their original order.
func RankMethods(methods []string, priority, limit int) []string {
	var high, medium, other []string
	for _, m := range methods {
		lower := strings.ToLower(m)
		switch {
		case containsAny(lower, highPriority):
			high = append(high, m)
		case strings.HasPrefix(m, "get") && containsAny(lower, referenceTerms):
			medium = append(medium, m)
		case containsAny(lower, eventTerms), containsAny(lower, persistTerms):
			medium = append(medium, m)
		default:
			other = append(other, m)
		}
	}
	return fill(limit, take(high, priority), medium, other)
}

// RankShellMethods ranks methods of interaction-mode classes, which are
// driven by input handlers and the frame loop. When the header yielded
// nothing, the first limit of fallback are used.
func RankShellMethods(methods, fallback []string, priority, limit int) []string {
	if len(methods) == 0 {
		return take(fallback, limit)
	}
	var high, other []string
	for _, m := range methods {
		if containsAny(strings.ToLower(m), shellTerms) {
			high = append(high, m)
		} else {
			other = append(other, m)
		}
	}
	return fill(limit, take(high, priority), other)
}

func take(s []string, n int) []string {
	if n < 0 {
		n = 0
	}
	if len(s) > n {
		s = s[:n]
	}
	return append([]string{}, s...)
}

func fill(limit int, result []string, pools ...[]string) []string {
	for _, pool := range pools {
		if len(result) >= limit {
			break
		}
		result = append(result, take(pool, limit-len(result))...)
	}
	return take(result, limit)
}
