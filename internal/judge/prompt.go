package judge

import (
	"fmt"
	"strings"
)

// buildPrompt renders the batch of record summaries into the
// instruction sent to the judgment service. The response contract is
// raw JSON with one entry per detected duplicate group.
func buildPrompt(batch []RecordSummary) string {
	var sb strings.Builder

	sb.WriteString(`You are analyzing bibliographic records from a literature review to find duplicates.

RECORDS:
`)

	for _, r := range batch {
		fmt.Fprintf(&sb, "\n[%d] Title: %s\n", r.Index, r.Title)
		if r.Authors != "" {
			fmt.Fprintf(&sb, "    Authors: %s\n", r.Authors)
		}
		if r.Journal != "" {
			fmt.Fprintf(&sb, "    Journal: %s\n", r.Journal)
		}
		if r.Year != 0 {
			fmt.Fprintf(&sb, "    Year: %d\n", r.Year)
		}
		if r.DOI != "" {
			fmt.Fprintf(&sb, "    DOI: %s\n", r.DOI)
		}
		if r.Abstract != "" {
			fmt.Fprintf(&sb, "    Abstract: %s\n", r.Abstract)
		}
	}

	sb.WriteString(`
TASK:
Identify which records describe the SAME underlying work. Group each
set of duplicates under the record that should be kept (the primary).

IMPORTANT GUIDELINES:
1. Records are duplicates when they describe the same published work,
   even with differing titles, author formatting, or metadata gaps
2. The same DOI always means the same work
3. Preprint and published versions of the same study count as duplicates
4. Different studies by the same authors are NOT duplicates
5. A record may appear in at most one group

OUTPUT FORMAT (JSON only, no markdown):
{
  "groups": [
    {
      "primary_index": 0,
      "duplicate_indexes": [3, 7],
      "confidence": 0.95,
      "reasoning": "Brief explanation"
    }
  ]
}

If there are no duplicates, return {"groups": []}.

IMPORTANT: Respond with ONLY raw JSON. Do NOT wrap it in markdown code fences.`)

	return sb.String()
}
