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

package api

import (
	"regexp"
	"strings"
)

// MaxQueryLength bounds incoming queries.
const MaxQueryLength = 500

// queryBlacklist rejects obvious injection attempts before the query
// reaches the pipeline. Matched case-insensitively.
var queryBlacklist = []string{"DROP TABLE", "DELETE FROM", "--", ";--", "XP_CMDSHELL"}

var sanitizePattern = regexp.MustCompile(`[^a-zA-Z0-9\s.,!?]`)

// ValidateQuery rejects harmful or oversized queries. Query content
// validation lives here at the edge; the pipeline itself accepts any
// string.
func ValidateQuery(query string) error {
	upper := strings.ToUpper(query)
	for _, term := range queryBlacklist {
		if strings.Contains(upper, term) {
			return ErrQueryRejected
		}
	}
	if len(query) > MaxQueryLength {
		return ErrQueryTooLong
	}
	return nil
}

// SanitizeQuery strips characters outside the allowed set and trims
// surrounding whitespace.
func SanitizeQuery(query string) string {
	return strings.TrimSpace(sanitizePattern.ReplaceAllString(query, ""))
}
