package relevance

// Keyword tables and thresholds for the financial-relevance filter. The
// weights and floors are heuristic constants carried over from production
// tuning; they are package variables so callers can swap them wholesale.

// HighValueKeywords maps high-signal financial vocabulary to its score weight.
var HighValueKeywords = map[string]int{
	// Investment actions
	"buy": 3, "sell": 3, "hold": 2, "invest": 2, "investing": 2, "portfolio": 2,
	"bullish": 3, "bearish": 3, "long term": 3, "short term": 2,
	// Valuation
	"overvalued": 3, "undervalued": 3, "valuation": 2, "target price": 3,
	"fair value": 2, "intrinsic value": 3, "discounted": 2,
	// Financial metrics
	"pe ratio": 2, "p/e": 2, "eps": 2, "revenue": 2, "earnings": 2, "profit": 2,
	"dividend": 2, "yield": 2, "cash flow": 2, "debt": 2, "margin": 2,
	// Analysis terms
	"fundamentals": 2, "analysis": 1, "forecast": 2, "prediction": 2, "outlook": 2,
	"due diligence": 3, "dcf": 2, "balance sheet": 2, "income statement": 2,
	// Risk/reward
	"risk": 2, "reward": 2, "opportunity": 2, "upside": 2, "downside": 2,
	"conviction": 2, "thesis": 2, "moat": 3, "competitive advantage": 3,
}

// MediumValueKeywords are generic market vocabulary, each worth one point.
var MediumValueKeywords = []string{
	"stock", "share", "price", "market cap", "growth", "quarter", "quarterly",
	"report", "guidance", "beat", "miss", "estimate", "market", "sector",
	"revenue", "sales", "profit", "margin", "roi", "return", "performance",
	"financial", "investor", "shareholder", "value", "worth", "evaluation",
	"recommendation", "rating", "upgrade", "downgrade", "catalyst", "momentum",
}

// SpamKeywords mark promotional or off-topic comments for outright rejection.
var SpamKeywords = []string{
	"subscribe", "like and subscribe", "check out my", "click here",
	"giveaway", "free money", "get rich", "first!", "early squad",
	"notification squad", "who else", "anyone else", "came here from",
	"full video", "check my channel", "dm me", "contact me", "crypto",
}

// Filter thresholds.
var (
	// MinWords is the noise floor on comment word count.
	MinWords = 10
	// MinChars is the noise floor on trimmed comment length.
	MinChars = 40
	// MinScore is the substantive-content threshold; comments scoring
	// below it are dropped.
	MinScore = 4
)
