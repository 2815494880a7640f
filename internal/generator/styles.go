package generator

// StyleProfile describes one post voice: how the external model is briefed
// and which templates the fallback draws from. Template placeholders:
// {title}, {insight}, {cta}.
type StyleProfile struct {
	Description string
	Tone        string
	Hooks       []string
	CTAs        []string
	Templates   []string
}

const DefaultStyle = "trivance_default"

var styleRegistry = map[string]StyleProfile{
	"trivance_default": {
		Description: "Balanced thought-leadership voice for operators adopting AI",
		Tone:        "confident, practical, no hype",
		Hooks: []string{
			"Worth a closer look:",
			"This one matters for operators:",
			"Filed under signal, not noise:",
		},
		CTAs: []string{
			"How is your team approaching this?",
			"Worth discussing with your ops lead this week.",
			"The teams that move early on this will compound the advantage.",
		},
		Templates: []string{
			"💡 {title}\n\n{insight}\n\nAs more teams embrace AI, smart execution matters. Not just hype — but clarity, automation, and systems thinking.\n\n{cta}",
			"Worth a closer look: {title}\n\n{insight}\n\nThe gap between teams that operationalize AI and teams that talk about it keeps widening.\n\n{cta}",
			"📌 {title}\n\n{insight}\n\nSmall, well-chosen automations beat big transformation programs. This is another data point.\n\n{cta}",
		},
	},
	"consultative": {
		Description: "Advisory tone that frames the news as a decision for leadership",
		Tone:        "measured, analytical, peer-to-peer with executives",
		Hooks: []string{
			"A pattern we keep seeing with clients:",
			"If you advise operators, flag this one:",
		},
		CTAs: []string{
			"If you're weighing a similar move, start with the workflow, not the tool.",
			"Happy to compare notes if your team is evaluating this.",
			"The right question isn't whether to adopt — it's where the first workflow lives.",
		},
		Templates: []string{
			"A pattern worth your attention: {title}\n\n{insight}\n\nThe takeaway for leadership teams: treat this as an operations decision, not an IT purchase.\n\n{cta}",
			"{title} — and what it means for your roadmap.\n\n{insight}\n\nMost teams overestimate the tooling and underestimate the process change.\n\n{cta}",
		},
	},
	"punchy": {
		Description: "Short, declarative, built for fast feeds",
		Tone:        "direct, energetic, one idea per line",
		Hooks: []string{
			"Big move:",
			"Pay attention:",
		},
		CTAs: []string{
			"Adapt or get lapped.",
			"Your move.",
			"Early beats perfect.",
		},
		Templates: []string{
			"🚨 {title}\n\n{insight}\n\nThe signal: execution speed is the new moat.\n\n{cta}",
			"{title}. Read that again.\n\n{insight}\n\n{cta}",
			"Big move: {title}\n\n{insight}\n\nNo fluff — this changes the math.\n\n{cta}",
		},
	},
	"casual": {
		Description: "Conversational voice, like sharing a find with a colleague",
		Tone:        "friendly, curious, first-person",
		Hooks: []string{
			"Okay, this caught my eye:",
			"Came across this today:",
		},
		CTAs: []string{
			"Curious if anyone else is trying this.",
			"Would love to hear how others handle it.",
		},
		Templates: []string{
			"Okay, this caught my eye: {title}\n\n{insight}\n\nFeels like one of those quiet shifts that looks obvious in a year.\n\n{cta}",
			"Came across this today — {title}\n\n{insight}\n\nStill thinking about what it means for smaller teams.\n\n{cta}",
		},
	},
}

// styleFor resolves a requested style key, falling back to the default
// profile for anything unrecognized. The second return is the key actually
// applied.
func styleFor(name string) (StyleProfile, string) {
	if profile, ok := styleRegistry[name]; ok {
		return profile, name
	}
	return styleRegistry[DefaultStyle], DefaultStyle
}

// AvailableStyles lists registered style keys with their descriptions.
func AvailableStyles() map[string]string {
	styles := make(map[string]string, len(styleRegistry))
	for name, profile := range styleRegistry {
		styles[name] = profile.Description
	}
	return styles
}
