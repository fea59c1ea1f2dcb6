// Package relevance classifies text into coarse career fields and uses the result to reject
// retrieved context that belongs to a different professional domain.
package relevance

// Field is a career field name.
type Field string

const (
	ITSoftware        Field = "it_software"
	MarketingSales    Field = "marketing_sales"
	FinanceAccounting Field = "finance_accounting"
	HumanResources    Field = "human_resources"

	// Unknown is reported when no profile scores above zero.
	Unknown Field = "unknown"
)

// Profile is the vocabulary of one career field. Keywords and anti-keywords are lowercase and
// matched as substrings.
type Profile struct {
	Field        Field
	Keywords     []string
	AntiKeywords []string
}

var profiles = []Profile{
	{
		Field: ITSoftware,
		Keywords: []string{
			"software", "developer", "programming", "engineer", "backend", "frontend", "fullstack",
			"devops", "cloud", "rest api", "database", "python", "java", "javascript", "golang",
			"kubernetes", "docker", "microservice", "lập trình", "phần mềm",
		},
		AntiKeywords: []string{
			"fmcg", "trade marketing", "retail", "sales target", "merchandising", "brand manager",
		},
	},
	{
		Field: MarketingSales,
		Keywords: []string{
			"marketing", "sales", "brand", "campaign", "promotion", "trade marketing", "fmcg",
			"retail", "advertising", "market research", "customer acquisition", "merchandising",
			"distributor", "kinh doanh", "bán hàng", "tiếp thị",
		},
		AntiKeywords: []string{
			"software", "programming", "source code", "kubernetes",
		},
	},
	{
		Field: FinanceAccounting,
		Keywords: []string{
			"accounting", "accountant", "finance", "financial", "audit", "tax", "ledger",
			"budget", "invoice", "payroll", "ifrs", "balance sheet", "kế toán", "tài chính",
		},
		AntiKeywords: []string{
			"software", "programming", "trade marketing",
		},
	},
	{
		Field: HumanResources,
		Keywords: []string{
			"human resources", "recruitment", "recruiter", "talent acquisition", "onboarding",
			"employee relations", "compensation", "c&b", "headhunt", "nhân sự", "tuyển dụng",
		},
		AntiKeywords: []string{
			"programming", "source code", "fmcg",
		},
	},
}

// Profiles returns a copy of the career field catalog in evaluation order.
func Profiles() []Profile {
	out := make([]Profile, len(profiles))
	for i, p := range profiles {
		out[i] = Profile{
			Field:        p.Field,
			Keywords:     append([]string{}, p.Keywords...),
			AntiKeywords: append([]string{}, p.AntiKeywords...),
		}
	}
	return out
}

// ProfileOf returns the profile of field.
func ProfileOf(field Field) (Profile, bool) {
	for _, p := range profiles {
		if p.Field == field {
			return p, true
		}
	}
	return Profile{}, false
}
