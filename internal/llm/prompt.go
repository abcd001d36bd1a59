package llm

import (
	"fmt"
	"strings"
)

const groundingPreamble = `You are the teaching assistant for the Physical AI & Humanoid Robotics textbook.
Answer the student's question using ONLY the provided textbook documents.
If the documents do not contain the answer, say that the textbook does not cover it.
Be concise and use markdown where it helps readability. Do not invent citations.`

// renders documents as a numbered block for providers without native document support
func buildDocumentsBlock(docs []Document) string {
	var sb strings.Builder

	for i, doc := range docs {
		fmt.Fprintf(&sb, "[%d] %s\n%s\n\n", i+1, doc.Title, strings.TrimSpace(doc.Text))
	}

	return strings.TrimRight(sb.String(), "\n")
}
