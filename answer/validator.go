// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package answer

import "strings"

const (
	// InsufficientInfoMessage replaces empty responses.
	InsufficientInfoMessage = "I don't have enough information to answer that question."

	// RedactionMarker replaces responses that mention blocked content.
	RedactionMarker = "[REDACTED: Unsafe Content]"
)

// blockedTerms cause wholesale redaction when present in a response.
var blockedTerms = []string{"malware", "phishing"}

// Validate is the final gate on every outgoing response. Empty text becomes
// a fixed insufficient-information message. Text mentioning a blocked term
// is replaced wholesale with a redaction marker. Both composed and fallback
// answers pass through here, so the check runs after composition, never
// before.
func Validate(text string) string {
	if text == "" {
		return InsufficientInfoMessage
	}

	textLower := strings.ToLower(text)
	for _, term := range blockedTerms {
		if strings.Contains(textLower, term) {
			return RedactionMarker
		}
	}
	return text
}
