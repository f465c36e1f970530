package agent

import "strings"

// fallbackResponses pairs input keywords with canned replies used when the
// model is unreachable, so the session degrades instead of dying.
var fallbackResponses = []struct {
	keywords []string
	reply    string
}{
	{
		keywords: []string{"cost", "price", "estimate", "how much"},
		reply:    "I cannot reach the language model right now, but you can ask for a cost estimate again in a moment, or use the estimate-cost tool directly.",
	},
	{
		keywords: []string{"deploy", "create", "launch", "provision"},
		reply:    "I cannot reach the language model right now, so no resources were created. Please try again shortly.",
	},
	{
		keywords: []string{"status", "list", "show"},
		reply:    "I cannot reach the language model right now. Session state is preserved; try again shortly.",
	},
}

const fallbackDefault = "I am temporarily unable to process requests because the language model is unreachable. Please try again shortly."

// FallbackReply returns a canned response matched to the user's intent.
func FallbackReply(input string) string {
	lower := strings.ToLower(input)
	for _, entry := range fallbackResponses {
		for _, kw := range entry.keywords {
			if strings.Contains(lower, kw) {
				return entry.reply
			}
		}
	}
	return fallbackDefault
}
