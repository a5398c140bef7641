package rag

import (
	"fmt"
	"strings"

	"github.com/cerebroai/docapi/internal/domain/docModel"
)

// assembleAnswer builds the placeholder response from the query and the
// retrieved context. No language model is involved here.
func assembleAnswer(queryText string, matches []docModel.ScoredChunk) string {
	if len(matches) == 0 {
		return fmt.Sprintf("No relevant content was found for: %q", queryText)
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Based on %d retrieved passage(s) for %q:\n", len(matches), queryText)
	for i, m := range matches {
		excerpt := m.Chunk.Content
		if len(excerpt) > 200 {
			excerpt = excerpt[:200] + "…"
		}
		fmt.Fprintf(&sb, "[%d] %s\n", i+1, excerpt)
	}
	return sb.String()
}
