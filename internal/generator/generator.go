// Package generator turns a scored article into a styled social post draft.
// The external model is attempted first when configured; every failure path
// lands on deterministic templates, so a post is always produced.
package generator

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/trivance/content-engine/internal/ai"
	"github.com/trivance/content-engine/internal/cache"
	"github.com/trivance/content-engine/internal/metrics"
	"github.com/trivance/content-engine/internal/ratelimit"
	"github.com/trivance/content-engine/internal/textutil"
)

// Article carries the fields a generation request needs. The summary is
// expected to be normalized already; Generate normalizes again to be safe
// with direct API input.
type Article struct {
	Title   string `json:"title"`
	Summary string `json:"summary"`
	Source  string `json:"source"`
	Link    string `json:"link"`
}

// Result is the structured outcome of one generation. Method is the only
// signal separating real external output from template fallback.
type Result struct {
	Post             string   `json:"post"`
	Method           string   `json:"method"` // "external" or "template"
	StyleUsed        string   `json:"style_used"`
	Platform         string   `json:"platform"`
	KeyInsights      []string `json:"key_insights"`
	SpecificDetail   string   `json:"specific_detail,omitempty"`
	HashtagsIncluded bool     `json:"hashtags_included"`
	FallbackReason   string   `json:"fallback_reason,omitempty"`

	// Elapsed is wall-clock generation time, kept for archival stats.
	Elapsed time.Duration `json:"-"`
}

const (
	MethodExternal = "external"
	MethodTemplate = "template"
)

type Config struct {
	Enabled          bool // external generation feature flag
	Timeout          time.Duration
	MinResponseChars int
}

type Generator struct {
	cfg      Config
	provider ai.TextGenerator         // nil means template-only
	limiter  *ratelimit.AIRateLimiter // optional
	cache    *cache.Cache             // optional
}

func New(cfg Config, provider ai.TextGenerator, limiter *ratelimit.AIRateLimiter, genCache *cache.Cache) *Generator {
	return &Generator{
		cfg:      cfg,
		provider: provider,
		limiter:  limiter,
		cache:    genCache,
	}
}

// Generate produces a post for the article. It never returns an error: any
// external failure is recorded as FallbackReason and templates take over.
func (g *Generator) Generate(ctx context.Context, article Article, style, platform string) Result {
	start := time.Now()

	profile, styleUsed := styleFor(style)

	article.Title = textutil.Normalize(article.Title)
	article.Summary = textutil.Normalize(article.Summary)

	insights := ExtractKeyInsights(article.Summary)

	body, reason := g.tryExternal(ctx, article, profile, styleUsed, platform, insights)

	method := MethodExternal
	if body == "" {
		body = buildTemplatePost(article, profile, insights)
		method = MethodTemplate
		metrics.Global.IncrementFallbackGenerations()
	} else {
		metrics.Global.IncrementExternalGenerations()
	}

	social := IsSocialPlatform(platform)
	if social {
		body = body + "\n\n" + strings.Join(GenerateHashtags(article.Title, article.Summary), " ")
	}

	detail := ""
	if len(insights) > 0 {
		detail = insights[0]
	}

	elapsed := time.Since(start)
	metrics.Global.RecordGenerationTime(elapsed)

	return Result{
		Post:             body,
		Method:           method,
		StyleUsed:        styleUsed,
		Platform:         platform,
		KeyInsights:      insights,
		SpecificDetail:   detail,
		HashtagsIncluded: social,
		FallbackReason:   reason,
		Elapsed:          elapsed,
	}
}

// tryExternal returns the externally generated body, or "" with the reason
// the attempt was skipped or failed.
func (g *Generator) tryExternal(ctx context.Context, article Article, profile StyleProfile, styleUsed, platform string, insights []string) (string, string) {
	if !g.cfg.Enabled {
		return "", "ai_disabled"
	}
	if g.provider == nil {
		return "", "no_provider_configured"
	}

	key := cache.GenerateKey(article.Title, styleUsed, platform)
	if g.cache != nil {
		if cached, ok := g.cache.Get(key); ok {
			if g.limiter != nil {
				g.limiter.RecordCacheHit()
			}
			log.Printf("Generation cache hit for %q", article.Title)
			return cached, ""
		}
	}

	if g.limiter != nil {
		if err := g.limiter.Allow(g.provider.Name()); err != nil {
			log.Printf("External generation throttled: %v", err)
			return "", "rate_limited"
		}
	}

	genCtx, cancel := context.WithTimeout(ctx, g.cfg.Timeout)
	defer cancel()

	text, err := g.provider.Generate(genCtx, buildPrompt(article, profile, platform, insights))
	if err != nil {
		log.Printf("External generation failed (%s): %v", g.provider.Name(), err)
		return "", "api_error"
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return "", "empty_response"
	}
	if len(text) < g.cfg.MinResponseChars {
		return "", "response_too_short"
	}

	if g.cache != nil {
		g.cache.Set(key, text)
	}
	return text, ""
}

func buildPrompt(article Article, profile StyleProfile, platform string, insights []string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Write a %s post about this article for an audience of business operators adopting AI.\n\n", platformLabel(platform))
	fmt.Fprintf(&b, "ARTICLE\nTitle: %s\nSummary: %s\nSource: %s\n\n", article.Title, article.Summary, article.Source)
	fmt.Fprintf(&b, "VOICE\n%s. Tone: %s.\n\n", profile.Description, profile.Tone)

	if len(insights) > 0 {
		b.WriteString("Work these specific details into the post:\n")
		for _, insight := range insights {
			fmt.Fprintf(&b, "- %s\n", insight)
		}
		b.WriteString("\n")
	}

	if len(profile.Hooks) > 0 {
		b.WriteString("Example openers in this voice:\n")
		for _, hook := range profile.Hooks {
			fmt.Fprintf(&b, "- %s\n", hook)
		}
		b.WriteString("\n")
	}

	b.WriteString("RULES\n")
	b.WriteString("- Lead with the concrete finding, not a generic observation.\n")
	b.WriteString("- No hashtags; they are appended separately.\n")
	b.WriteString("- No preamble like \"Here's a post\". Output only the post text.\n")

	return b.String()
}

func platformLabel(platform string) string {
	if platform == "" {
		return "LinkedIn"
	}
	return platform
}

// buildTemplatePost fills a style template deterministically: the template
// index is derived from the title length so retries reproduce the same post.
func buildTemplatePost(article Article, profile StyleProfile, insights []string) string {
	idx := TemplateIndex(article.Title, profile)
	tpl := profile.Templates[idx]

	insight := ""
	if len(insights) > 0 {
		insight = insights[0]
	}
	if insight == "" {
		insight = textutil.TruncateAtSentence(article.Summary, 180)
	}

	cta := profile.CTAs[len(article.Title)%len(profile.CTAs)]

	post := strings.NewReplacer(
		"{title}", article.Title,
		"{insight}", insight,
		"{cta}", cta,
	).Replace(tpl)

	if article.Source != "" || article.Link != "" {
		post += "\n\nSource: " + article.Source
		if article.Link != "" {
			post += "\n" + article.Link
		}
	}
	return post
}

// TemplateIndex exposes the deterministic template selection used by the
// fallback path.
func TemplateIndex(title string, profile StyleProfile) int {
	return len(title) % len(profile.Templates)
}
