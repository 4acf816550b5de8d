package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
)

// faqEntry is the source schema for FAQ records.
type faqEntry struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// helpArticle is the source schema for help articles.
type helpArticle struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// knowledgeRecord is the combined knowledge base schema.
type knowledgeRecord struct {
	Text   string `json:"text"`
	Source string `json:"source"`
}

var defaultFAQ = []faqEntry{
	{
		Question: "What is a Roth IRA?",
		Answer:   "A Roth IRA is a retirement account funded with after-tax dollars. Qualified withdrawals in retirement are tax-free.",
	},
	{
		Question: "What are your fees?",
		Answer:   "We charge a flat 0.25% annual advisory fee with no hidden commissions or trading costs.",
	},
	{
		Question: "How do I open an account?",
		Answer:   "Visit our website, choose an account type, and complete the application. Most accounts are approved within one business day.",
	},
	{
		Question: "What is the difference between a traditional IRA and a Roth IRA?",
		Answer:   "Traditional IRA contributions may be tax-deductible now with taxed withdrawals later; Roth IRA contributions are taxed now with tax-free withdrawals in retirement.",
	},
	{
		Question: "Can I roll over my 401k?",
		Answer:   "Yes. You can roll a 401k from a former employer into an IRA without taxes or penalties when done as a direct rollover.",
	},
}

var defaultHelpArticles = []helpArticle{
	{
		Title:   "Understanding Investment Risk",
		Content: "Every investment carries risk. Diversifying across stocks, bonds, and funds reduces the impact of any single holding. Our portfolios are rebalanced quarterly.",
	},
	{
		Title:   "Funding Your Account",
		Content: "Link a bank account to transfer funds. Transfers typically settle in 1-3 business days. Recurring deposits can be scheduled weekly or monthly.",
	},
	{
		Title:   "Contacting Support",
		Content: "Our support team is available Monday through Friday, 9am to 5pm Eastern, by chat or email. Financial advisors are available by appointment.",
	},
}

var (
	faqFile  = flag.String("faq", "", "path to a faq.json file (question/answer records)")
	helpFile = flag.String("help", "", "path to a help_articles.json file (title/content records)")
	outFile  = flag.String("out", "data/knowledge_base.json", "path of the knowledge base file to write")
)

func init() {
	handler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})
	slog.SetDefault(slog.New(handler))
}

func loadJSON[T any](path string, fallback []T) ([]T, error) {
	if path == "" {
		return fallback, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var entries []T
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return entries, nil
}

// buildRecords flattens FAQ entries and help articles into the combined
// knowledge base schema, FAQ entries first.
func buildRecords(faq []faqEntry, articles []helpArticle) []knowledgeRecord {
	records := make([]knowledgeRecord, 0, len(faq)+len(articles))
	for _, entry := range faq {
		records = append(records, knowledgeRecord{
			Text:   fmt.Sprintf("Q: %s\nA: %s", entry.Question, entry.Answer),
			Source: "FAQ",
		})
	}
	for _, article := range articles {
		records = append(records, knowledgeRecord{
			Text:   fmt.Sprintf("%s\n%s", article.Title, article.Content),
			Source: "Help Article",
		})
	}
	return records
}

func main() {
	flag.Parse()

	faq, err := loadJSON(*faqFile, defaultFAQ)
	if err != nil {
		slog.Error("failed to load FAQ data", "err", err)
		os.Exit(1)
	}

	articles, err := loadJSON(*helpFile, defaultHelpArticles)
	if err != nil {
		slog.Error("failed to load help articles", "err", err)
		os.Exit(1)
	}

	records := buildRecords(faq, articles)

	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		slog.Error("failed to encode knowledge base", "err", err)
		os.Exit(1)
	}

	if err := os.MkdirAll(filepath.Dir(*outFile), 0o755); err != nil {
		slog.Error("failed to create output directory", "err", err)
		os.Exit(1)
	}
	if err := os.WriteFile(*outFile, data, 0o644); err != nil {
		slog.Error("failed to write knowledge base", "err", err)
		os.Exit(1)
	}

	slog.Info("knowledge base written", "path", *outFile, "items", len(records))
}
