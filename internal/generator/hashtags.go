package generator

import "strings"

// Brand tags lead every social post regardless of content.
var brandHashtags = []string{"#TrivanceAI", "#AIForBusiness"}

const maxHashtags = 8

// Ordered keyword→tag table; iteration order is the output order, not
// relevance. Keep entries lowercase.
var hashtagTable = []struct {
	keyword string
	tag     string
}{
	{"chatgpt", "#ChatGPT"},
	{"automation", "#Automation"},
	{"machine learning", "#MachineLearning"},
	{"artificial intelligence", "#ArtificialIntelligence"},
	{"productivity", "#Productivity"},
	{"small business", "#SmallBusiness"},
	{"startup", "#StartupLife"},
	{"data", "#DataDriven"},
	{"marketing", "#MarketingAI"},
	{"customer", "#CustomerExperience"},
	{"leadership", "#Leadership"},
	{"strategy", "#TechStrategy"},
	{"workflow", "#WorkflowAutomation"},
	{"saas", "#SaaS"},
}

var socialPlatforms = map[string]bool{
	"linkedin":  true,
	"twitter":   true,
	"x":         true,
	"threads":   true,
	"facebook":  true,
	"instagram": true,
}

// IsSocialPlatform reports whether hashtags belong on the given platform.
// An unspecified platform is treated as LinkedIn; anything unrecognized
// (newsletter, blog, email) gets no hashtags.
func IsSocialPlatform(platform string) bool {
	if platform == "" {
		return true
	}
	return socialPlatforms[strings.ToLower(platform)]
}

// GenerateHashtags builds the tag line for a post: brand tags first, then
// content tags matched against title+summary, capped at maxHashtags.
func GenerateHashtags(title, summary string) []string {
	tags := make([]string, 0, maxHashtags)
	tags = append(tags, brandHashtags...)

	text := strings.ToLower(title + " " + summary)
	for _, entry := range hashtagTable {
		if len(tags) >= maxHashtags {
			break
		}
		if strings.Contains(text, entry.keyword) {
			tags = append(tags, entry.tag)
		}
	}
	return tags
}
