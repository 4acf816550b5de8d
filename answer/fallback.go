package answer

import (
	"fmt"
	"strings"
)

// fallbackDisclaimer is appended to every curated fallback answer.
const fallbackDisclaimer = "\n\nNote: This is general information not specific to our services. For personalized advice, please contact our financial advisors."

// fallbackEntry pairs a lowercase topic phrase with its curated answer.
type fallbackEntry struct {
	topic string
	info  string
}

// FallbackProvider serves curated answers for common financial topics when
// retrieval finds nothing relevant. Topics are matched as substrings of the
// lowercased query, scanned in insertion order. Ordering is a contract:
// "roth ira" is seeded before "ira" so the more specific topic wins for
// queries that contain both.
type FallbackProvider struct {
	entries []fallbackEntry
}

// NewFallbackProvider creates a provider seeded with the curated topics.
func NewFallbackProvider() *FallbackProvider {
	return &FallbackProvider{
		entries: []fallbackEntry{
			{topic: "roth ira", info: rothIRAInfo},
			{topic: "ira", info: iraInfo},
			{topic: "401k", info: plan401kInfo},
		},
	}
}

// Lookup returns the first curated answer whose topic occurs in the
// lowercased query, suffixed with a disclaimer. Queries matching no topic
// get a generic apology naming the query and suggesting categories.
func (p *FallbackProvider) Lookup(query string) string {
	queryLower := strings.ToLower(query)

	for _, entry := range p.entries {
		if strings.Contains(queryLower, entry.topic) {
			return entry.info + fallbackDisclaimer
		}
	}

	return fmt.Sprintf("I don't have specific information about '%s' in my knowledge base. "+
		"Please try asking about our investment services, fees, account setup, or contact information. "+
		"For personalized financial advice, please contact our advisors.", query)
}

const rothIRAInfo = `A Roth IRA is a retirement account with tax advantages:
1. Contributions are made with after-tax dollars
2. Qualified withdrawals in retirement are tax-free
3. No required minimum distributions (RMDs) during your lifetime
4. Flexibility to withdraw contributions (not earnings) without penalties
5. Good for those who expect to be in a higher tax bracket in retirement`

const iraInfo = `Individual Retirement Accounts (IRAs) are tax-advantaged accounts designed to help you save for retirement:
1. Traditional IRAs may offer tax-deductible contributions
2. Roth IRAs offer tax-free withdrawals in retirement
3. Contribution limits apply ($6,500 for 2023, $7,500 if over 50)
4. Early withdrawal penalties may apply before age 59½
5. Various investment options available within the account`

const plan401kInfo = `A 401(k) is an employer-sponsored retirement plan with these features:
1. Tax-deferred contributions that reduce your taxable income
2. Employer matching contributions may be available
3. Higher contribution limits than IRAs
4. Limited investment options selected by your employer
5. Loans may be available from your account`
