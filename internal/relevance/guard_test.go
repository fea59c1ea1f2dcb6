package relevance

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

const tradeMarketing = "Trade Marketing Executive. Plan FMCG channel activities and retail promotions with distributors."

func TestDetectCareerField(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		field Field
	}{
		{"marketing", tradeMarketing, MarketingSales},
		{"software", "Backend developer building Python microservices on Kubernetes and Docker", ITSoftware},
		{"finance", "Chief accountant: IFRS reporting, audit, payroll and tax", FinanceAccounting},
		{"human resources", "Recruiter handling talent acquisition and onboarding", HumanResources},
		{"vietnamese software", "Lập trình viên phần mềm", ITSoftware},
		{"nothing", "The weather was nice today", Unknown},
		{"empty", "   ", Unknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DetectCareerField(tt.text)
			assert.Equal(t, tt.field, got.Field)
			assert.GreaterOrEqual(t, got.Confidence, 0.0)
			assert.LessOrEqual(t, got.Confidence, 1.0)
			if tt.field == Unknown {
				assert.Zero(t, got.Confidence)
			}
		})
	}
}

func TestDetectCareerFieldTradeMarketingConfidence(t *testing.T) {
	got := DetectCareerField(tradeMarketing)
	assert.Equal(t, MarketingSales, got.Field)
	assert.Greater(t, got.Confidence, 0.3)
}

func TestDetectCareerFieldConfidenceIsNormalizedByVocabulary(t *testing.T) {
	p, ok := ProfileOf(MarketingSales)
	require.True(t, ok)

	got := DetectCareerField("retail")
	assert.Equal(t, MarketingSales, got.Field)
	assert.InDelta(t, 1/(0.3*float64(len(p.Keywords))), got.Confidence, 1e-9)
}

func TestDetectCareerFieldAntiKeywordsPenalize(t *testing.T) {
	// software: 2 keywords, 1 anti keyword. marketing: 1 keyword, 1 anti keyword.
	got := DetectCareerField("software developer for a retail chain")
	assert.Equal(t, Unknown, got.Field)
	assert.Zero(t, got.Confidence)
}

func TestIsContextRelevant(t *testing.T) {
	g := NewGuard(DefaultSettings(), nil)

	assert.False(t, g.IsContextRelevant(ITSoftware, tradeMarketing, 0.75))

	d := g.Evaluate(ITSoftware, tradeMarketing, 0.75)
	assert.Equal(t, ReasonFieldMismatch, d.Reason)
	assert.Equal(t, MarketingSales, d.Detected.Field)
	assert.NotEmpty(t, d.AntiMatch)
}

func TestEvaluateReasons(t *testing.T) {
	g := NewGuard(DefaultSettings(), zap.NewNop())

	tests := []struct {
		name       string
		subject    Field
		text       string
		similarity float64
		relevant   bool
		reason     string
	}{
		{"below threshold", ITSoftware, "Go developer", 0.2, false, ReasonLowSimilarity},
		{"unknown subject", Unknown, tradeMarketing, 0.9, true, ReasonUnknownSubject},
		{"empty subject", "", tradeMarketing, 0.9, true, ReasonUnknownSubject},
		{"unknown context", ITSoftware, "The weather was nice today", 0.9, true, ReasonUnknownContext},
		{"same field", MarketingSales, tradeMarketing, 0.9, true, ReasonSameField},
		{"weak detection", ITSoftware, "retail", 0.9, true, ReasonWeakDetection},
		{
			"mismatch without anti keyword",
			ITSoftware,
			"Prepared IFRS balance sheet, audit and tax reports for the finance team",
			0.9,
			true,
			ReasonNoAntiKeyword,
		},
		{"mismatch with anti keyword", ITSoftware, tradeMarketing, 0.5, false, ReasonFieldMismatch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := g.Evaluate(tt.subject, tt.text, tt.similarity)
			assert.Equal(t, tt.relevant, got.Relevant)
			assert.Equal(t, tt.reason, got.Reason)
		})
	}
}

func TestEvaluateDisabled(t *testing.T) {
	s := DefaultSettings()
	s.Enabled = false
	g := NewGuard(s, nil)

	assert.True(t, g.IsContextRelevant(ITSoftware, tradeMarketing, 0.9))
	assert.False(t, g.IsContextRelevant(ITSoftware, tradeMarketing, 0.1))
}

func TestEvaluateLogsRejections(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	g := NewGuard(DefaultSettings(), zap.New(core))

	g.IsContextRelevant(ITSoftware, tradeMarketing, 0.9)

	entries := logs.FilterMessage("context rejected by career field").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "marketing_sales", entries[0].ContextMap()["context_field"])
}

func TestProfilesReturnsCopy(t *testing.T) {
	ps := Profiles()
	require.NotEmpty(t, ps)
	ps[0].Keywords[0] = "mutated"

	p, ok := ProfileOf(ps[0].Field)
	require.True(t, ok)
	assert.NotEqual(t, "mutated", p.Keywords[0])

	_, ok = ProfileOf(Unknown)
	assert.False(t, ok)
}
