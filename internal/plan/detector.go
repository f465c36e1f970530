package plan

import (
	"sort"
	"strings"
)

// serviceKeywords maps each service kind to the substrings whose mention in
// assistant prose counts as a proposal. This keyword scan is a fallback for
// responses that carry no explicit plan directive; the directive always wins
// when present.
var serviceKeywords = map[ServiceKind][]string{
	ServiceCompute:  {"ec2", "compute instance", "virtual machine", "web server", "app server"},
	ServiceStorage:  {"s3", "object storage", "storage bucket", "bucket"},
	ServiceDatabase: {"rds", "database", "postgres", "mysql"},
	ServiceFunction: {"lambda", "serverless function", "cloud function"},
}

// negationMarkers disqualify a sentence from proposing anything. A sentence
// like "RDS is not needed here" must not be read as a proposal to deploy
// RDS.
var negationMarkers = []string{
	"not ", "n't ", "no need", "without", "instead of", "rather than", "skip",
}

// DetectServices scans assistant prose for proposed service kinds and
// returns them in mention order, deduplicated. Mentions inside negated
// sentences are ignored.
func DetectServices(text string) []ServiceKind {
	lower := strings.ToLower(text)

	type mention struct {
		kind  ServiceKind
		index int
	}
	var mentions []mention

	offset := 0
	for _, sentence := range splitSentences(lower) {
		if !isNegated(sentence) {
			for kind, keywords := range serviceKeywords {
				for _, keyword := range keywords {
					if idx := strings.Index(sentence, keyword); idx >= 0 {
						mentions = append(mentions, mention{kind: kind, index: offset + idx})
					}
				}
			}
		}
		offset += len(sentence) + 1
	}

	sort.Slice(mentions, func(i, j int) bool { return mentions[i].index < mentions[j].index })

	var services []ServiceKind
	for _, m := range mentions {
		services = append(services, m.kind)
	}
	return dedupe(services)
}

func splitSentences(text string) []string {
	return strings.FieldsFunc(text, func(r rune) bool {
		switch r {
		case '.', '!', '?', '\n', ';':
			return true
		}
		return false
	})
}

func isNegated(sentence string) bool {
	for _, marker := range negationMarkers {
		if strings.Contains(sentence, marker) {
			return true
		}
	}
	return false
}

// ParseServiceKind normalizes a service name from an explicit plan
// directive.
func ParseServiceKind(value string) (ServiceKind, bool) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "compute", "instance", "ec2", "vm":
		return ServiceCompute, true
	case "storage", "bucket", "s3", "object-storage":
		return ServiceStorage, true
	case "database", "db", "rds":
		return ServiceDatabase, true
	case "function", "lambda", "serverless":
		return ServiceFunction, true
	default:
		return "", false
	}
}

// ParseServiceKinds converts a plan directive's service list; unknown names
// are dropped.
func ParseServiceKinds(values []string) []ServiceKind {
	var kinds []ServiceKind
	for _, value := range values {
		if kind, ok := ParseServiceKind(value); ok {
			kinds = append(kinds, kind)
		}
	}
	return dedupe(kinds)
}

// confirmationKeywords are the user replies that approve a proposed plan.
var confirmationKeywords = []string{
	"yes", "y", "yes please", "go ahead", "proceed", "confirm", "do it", "deploy it",
}

// declineKeywords are the user replies that explicitly reject a proposal.
// Anything that is neither a confirmation nor a decline is treated as a
// plan revision and goes back to the assistant.
var declineKeywords = []string{
	"no", "nope", "cancel", "stop", "abort", "nevermind", "never mind",
}

// IsConfirmation reports whether a user message approves the pending plan.
func IsConfirmation(message string) bool {
	return matchesKeyword(message, confirmationKeywords)
}

// IsDecline reports whether a user message explicitly rejects the pending
// plan.
func IsDecline(message string) bool {
	return matchesKeyword(message, declineKeywords)
}

func matchesKeyword(message string, keywords []string) bool {
	normalized := strings.ToLower(strings.TrimSpace(message))
	normalized = strings.TrimRight(normalized, ".!")

	for _, keyword := range keywords {
		if normalized == keyword || strings.HasPrefix(normalized, keyword+",") || strings.HasPrefix(normalized, keyword+" ") {
			return true
		}
	}
	return false
}
